package infer

import (
	"wgsla/internal/builtins"
	"wgsla/internal/diag"
	"wgsla/internal/hir"
	"wgsla/internal/resolver"
	"wgsla/internal/source"
	"wgsla/internal/types"
)

// typeCall types a call expression: every argument is typed (and unref'd,
// since arguments are always a value context) up front, then dispatched
// by the callee's shape.
func (inf *inferer) typeCall(id hir.ExprID, e *hir.Expr, d hir.CallData) types.TypeID {
	argTypes := make([]types.TypeID, len(d.Args))
	for i, a := range d.Args {
		argTypes[i] = inf.unref(inf.typeExpr(a))
	}

	switch d.Callee.Kind {
	case hir.CalleeName:
		return inf.typeCallName(id, e, d, argTypes)
	case hir.CalleeTypeRef:
		target := inf.tr.Lower(d.Callee.TypeRef)
		return inf.typeConstructorCall(id, e, target, d.Args, argTypes)
	case hir.CalleeInferredVector:
		return inf.typeInferredVector(id, e, d.Callee.VectorSize, argTypes)
	case hir.CalleeInferredMatrix:
		return inf.typeInferredMatrix(id, e, d.Callee.MatrixCols, d.Callee.MatrixRows, argTypes)
	case hir.CalleeInferredArray:
		return inf.typeInferredArray(id, e, d.Args, argTypes)
	default:
		return inf.in.Error()
	}
}

// typeCallName resolves a bare-name callee through resolve_callable,
// falling back to the builtin function table when no item claims the
// name.
func (inf *inferer) typeCallName(id hir.ExprID, e *hir.Expr, d hir.CallData, argTypes []types.TypeID) types.TypeID {
	cb := inf.res.ResolveCallable(d.Callee.Name)
	switch cb.Kind {
	case resolver.CallableFunction:
		return inf.typeUserFunctionCall(id, e, d, cb, argTypes)
	case resolver.CallableStruct:
		structType := inf.tr.LowerStructItem(cb.Item)
		return inf.typeStructConstructor(id, e, structType, d.Args, argTypes)
	case resolver.CallableAlias:
		aliased := inf.tr.LowerAliasItem(cb.Item)
		return inf.typeConstructorCall(id, e, aliased, d.Args, argTypes)
	default:
		return inf.typeBuiltinFunctionCall(id, e, d, argTypes)
	}
}

func (inf *inferer) typeUserFunctionCall(id hir.ExprID, e *hir.Expr, d hir.CallData, cb resolver.CallableBinding, argTypes []types.TypeID) types.TypeID {
	it := inf.items.Item(cb.Item)
	if it == nil {
		return inf.in.Error()
	}
	if len(argTypes) != len(it.Params) {
		inf.diagnose(e.Span, diag.CallArityMismatch, "function %q expects %d argument(s), found %d",
			inf.strs.Lookup(it.Name), len(it.Params), len(argTypes))
	} else {
		for i, p := range it.Params {
			paramType := inf.tr.Lower(p.Type)
			inf.checkExact(inf.exprSpan(d.Args[i]), paramType, argTypes[i])
		}
	}
	inf.result.CallResolutions[id] = CallResolution{Kind: CallResolutionFunction, Function: cb.Item}
	if it.ReturnType.IsValid() {
		return inf.tr.Lower(it.ReturnType)
	}
	return inf.in.Error()
}

func (inf *inferer) typeBuiltinFunctionCall(id hir.ExprID, e *hir.Expr, d hir.CallData, argTypes []types.TypeID) types.TypeID {
	name := inf.strs.Lookup(d.Callee.Name)
	overloads, known := inf.bi.Function(name)
	if !known {
		inf.diagnose(e.Span, diag.UnresolvedName, "unresolved name %q", name)
		return inf.in.Error()
	}
	result, _, ok := inf.bi.Resolve(overloads, argTypes)
	if !ok {
		inf.diagnoseNoOverload(e.Span, diag.NoBuiltinOverload, sprintf("function %q", name), argTypes)
		return inf.in.Error()
	}
	return result
}

// typeStructConstructor implements the struct field-position
// initializer: one argument per declared field, in declaration order,
// each expected-typed against that field's type.
func (inf *inferer) typeStructConstructor(id hir.ExprID, e *hir.Expr, structType types.TypeID, args []hir.ExprID, argTypes []types.TypeID) types.TypeID {
	st, ok := inf.in.Lookup(structType)
	if !ok || st.Kind != types.KindStruct {
		return inf.in.Error()
	}
	info, ok := inf.in.StructInfo(st.Struct)
	if !ok {
		return inf.in.Error()
	}
	if len(argTypes) != len(info.Fields) {
		inf.diagnose(e.Span, diag.CallArityMismatch, "struct %q expects %d field(s), found %d",
			inf.strs.Lookup(info.Name), len(info.Fields), len(argTypes))
	} else {
		for i, f := range info.Fields {
			inf.checkExact(inf.exprSpan(args[i]), f.Type, argTypes[i])
		}
	}
	inf.result.CallResolutions[id] = CallResolution{Kind: CallResolutionOtherTypeInitializer, Type: structType}
	return structType
}

// typeConstructorCall implements the rest of the "explicit type
// reference" and "type alias" call forms once the target semantic type is
// known: vectors/matrices/scalars go through the builtin construction-or-
// conversion tables, arrays are built componentwise, structs defer
// to typeStructConstructor, and everything else (textures, samplers,
// pointers, atomics, the texel-format placeholder) is never constructible.
func (inf *inferer) typeConstructorCall(id hir.ExprID, e *hir.Expr, target types.TypeID, args []hir.ExprID, argTypes []types.TypeID) types.TypeID {
	tt, ok := inf.in.Lookup(target)
	if !ok {
		return inf.in.Error()
	}

	switch tt.Kind {
	case types.KindStruct:
		return inf.typeStructConstructor(id, e, target, args, argTypes)

	case types.KindVector:
		return inf.resolveConstructorAgainst(id, e, inf.bi.VectorConstructors(tt.Rows.Size), target, argTypes)

	case types.KindMatrix:
		return inf.resolveConstructorAgainst(id, e, inf.bi.MatrixConstructors(tt.Cols.Size, tt.Rows.Size), target, argTypes)

	case types.KindBool, types.KindI32, types.KindU32, types.KindF32, types.KindF16:
		if len(argTypes) != 1 {
			inf.diagnose(e.Span, diag.CallArityMismatch, "scalar conversion takes exactly one argument, found %d", len(argTypes))
			return inf.in.Error()
		}
		return inf.resolveConstructorAgainst(id, e, inf.bi.ScalarConversion(scalarConversionName(tt.Kind)), target, argTypes)

	case types.KindArray:
		return inf.typeArrayConstructor(id, e, target, tt, args, argTypes)

	default:
		inf.diagnose(e.Span, diag.InvalidConstructionType, "%s is not constructible", types.Label(inf.strs, inf.in, target))
		return inf.in.Error()
	}
}

func scalarConversionName(k types.Kind) string {
	switch k {
	case types.KindBool:
		return "bool"
	case types.KindI32:
		return "i32"
	case types.KindU32:
		return "u32"
	case types.KindF32:
		return "f32"
	case types.KindF16:
		return "f16"
	default:
		return ""
	}
}

// resolveConstructorAgainst resolves overloads against argTypes and
// additionally requires the resolved return type to equal
// the caller's explicit target (relevant when target names one specific
// component type but the shared overload list spans every component).
func (inf *inferer) resolveConstructorAgainst(id hir.ExprID, e *hir.Expr, overloads []builtins.Overload, target types.TypeID, argTypes []types.TypeID) types.TypeID {
	result, _, ok := inf.bi.Resolve(overloads, argTypes)
	if !ok || result != target {
		inf.diagnoseNoConstructorOverload(e.Span, target, argTypes)
		return inf.in.Error()
	}
	inf.result.CallResolutions[id] = CallResolution{Kind: CallResolutionOtherTypeInitializer, Type: target}
	return target
}

func (inf *inferer) typeArrayConstructor(id hir.ExprID, e *hir.Expr, target types.TypeID, tt types.Type, args []hir.ExprID, argTypes []types.TypeID) types.TypeID {
	if tt.ArrayHasSize && uint32(len(argTypes)) != tt.ArraySize {
		inf.diagnose(e.Span, diag.CallArityMismatch, "array constructor expects %d element(s), found %d", tt.ArraySize, len(argTypes))
	}
	for i, a := range argTypes {
		inf.checkExact(inf.exprSpan(args[i]), tt.Elem, a)
	}
	inf.result.CallResolutions[id] = CallResolution{Kind: CallResolutionOtherTypeInitializer, Type: target}
	return target
}

// typeInferredVector/Matrix/Array implement the three "inferred-component"
// constructor shorthands (`vec3(1, 2, 3)`, bare `mat2x2(...)`, bare
// `array(...)`): the component type is discovered from the arguments
// rather than named explicitly.
func (inf *inferer) typeInferredVector(id hir.ExprID, e *hir.Expr, size uint8, argTypes []types.TypeID) types.TypeID {
	overloads := inf.bi.VectorConstructors(size)
	result, _, ok := inf.bi.Resolve(overloads, argTypes)
	if !ok {
		inf.diagnoseNoOverload(e.Span, diag.NoConstructorOverload, "vector constructor", argTypes)
		return inf.in.Error()
	}
	inf.result.CallResolutions[id] = CallResolution{Kind: CallResolutionOtherTypeInitializer, Type: result}
	return result
}

func (inf *inferer) typeInferredMatrix(id hir.ExprID, e *hir.Expr, cols, rows uint8, argTypes []types.TypeID) types.TypeID {
	overloads := inf.bi.MatrixConstructors(cols, rows)
	result, _, ok := inf.bi.Resolve(overloads, argTypes)
	if !ok {
		inf.diagnoseNoOverload(e.Span, diag.NoConstructorOverload, "matrix constructor", argTypes)
		return inf.in.Error()
	}
	inf.result.CallResolutions[id] = CallResolution{Kind: CallResolutionOtherTypeInitializer, Type: result}
	return result
}

func (inf *inferer) typeInferredArray(id hir.ExprID, e *hir.Expr, args []hir.ExprID, argTypes []types.TypeID) types.TypeID {
	if len(argTypes) == 0 {
		inf.diagnose(e.Span, diag.NoConstructorOverload, "cannot infer an element type for an empty array constructor")
		return inf.in.Error()
	}
	elem := argTypes[0]
	for i := 1; i < len(argTypes); i++ {
		inf.checkExact(inf.exprSpan(args[i]), elem, argTypes[i])
	}
	result := inf.in.Intern(types.FixedArray(elem, uint32(len(argTypes))))
	inf.result.CallResolutions[id] = CallResolution{Kind: CallResolutionOtherTypeInitializer, Type: result}
	return result
}

func (inf *inferer) diagnoseNoOverload(span source.Span, code diag.Code, subject string, argTypes []types.TypeID) {
	inf.diagnose(span, code, "no overload of %s found for the given arguments (%s)", subject, labelArgs(inf, argTypes))
}

func (inf *inferer) diagnoseNoConstructorOverload(span source.Span, target types.TypeID, argTypes []types.TypeID) {
	inf.diagnose(span, diag.NoConstructorOverload, "no constructor overload of %s found for the given arguments (%s)",
		types.Label(inf.strs, inf.in, target), labelArgs(inf, argTypes))
}

func labelArgs(inf *inferer, argTypes []types.TypeID) string {
	out := ""
	for i, a := range argTypes {
		if i > 0 {
			out += ", "
		}
		out += types.Label(inf.strs, inf.in, a)
	}
	return out
}
