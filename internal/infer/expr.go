package infer

import (
	"strings"

	"wgsla/internal/diag"
	"wgsla/internal/hir"
	"wgsla/internal/itemtree"
	"wgsla/internal/resolver"
	"wgsla/internal/types"
)

// typeExpr implements the expression typing, one HIR kind at a time. It
// always records a type for id before returning — Error where nothing
// better is known — so that no downstream query can ever observe a
// missing entry.
func (inf *inferer) typeExpr(id hir.ExprID) types.TypeID {
	e := inf.body.Expr(id)
	var t types.TypeID
	switch e.Kind {
	case hir.ExprMissing:
		t = inf.in.Error()
	case hir.ExprLiteral:
		t = inf.typeLiteral(e.Data.(hir.LiteralData))
	case hir.ExprPath:
		t = inf.typePath(id, e, e.Data.(hir.PathData))
	case hir.ExprField:
		t = inf.typeField(id, e, e.Data.(hir.FieldData))
	case hir.ExprIndex:
		t = inf.typeIndex(e, e.Data.(hir.IndexData))
	case hir.ExprCall:
		t = inf.typeCall(id, e, e.Data.(hir.CallData))
	case hir.ExprUnary:
		t = inf.typeUnary(e, e.Data.(hir.UnaryData))
	case hir.ExprBinary:
		t = inf.typeBinary(e, e.Data.(hir.BinaryData))
	case hir.ExprBitcast:
		t = inf.typeBitcast(e.Data.(hir.BitcastData))
	default:
		t = inf.in.Error()
	}
	inf.result.ExprTypes[id] = t
	return t
}

// typeLiteral assigns literal kinds their fixed scalar type: an
// unsuffixed or `u`-suffixed integer literal is I32/U32, a float literal
// is F32 unless it carries the `h` (f16) suffix, and a boolean literal is
// Bool. No expectation ever changes a literal's own recorded type — only
// whether it is later flagged as a mismatch against its context.
func (inf *inferer) typeLiteral(d hir.LiteralData) types.TypeID {
	b := inf.in.Builtins()
	switch d.Kind {
	case hir.LitInt:
		if strings.HasSuffix(strings.ToLower(d.Raw), "u") {
			return b.U32
		}
		return b.I32
	case hir.LitFloat:
		if strings.HasSuffix(strings.ToLower(d.Raw), "h") {
			return b.F16
		}
		return b.F32
	case hir.LitBool:
		return b.Bool
	default:
		return inf.in.Error()
	}
}

// typePath types a name use: a local yields its binding's own type
// (already a Reference for `var`, a value for `let`/`const`/parameters); a
// global var yields a Reference wrapping its declared type and qualifier
// (a name denotes a storage location, never the value directly); a global
// const/override yields its value type outright.
func (inf *inferer) typePath(id hir.ExprID, e *hir.Expr, d hir.PathData) types.TypeID {
	vb := inf.res.ResolveValue(d.Name)
	switch vb.Kind {
	case resolver.ValueLocal:
		inf.result.PathResolutions[id] = PathResolution{Kind: PathResolutionLocal, Local: vb.Local}
		if vb.Local.IsValid() && vb.Local == inf.body.MainBinding {
			// The global's own name, inside its own initializer. With a
			// declared type the binding is already typed and the use is
			// ordinary; without one there is nothing to resolve to.
			if _, typed := inf.result.BindingTypes[vb.Local]; !typed {
				inf.diagnose(e.Span, diag.CyclicDefinition, "initializer of %q refers to itself", inf.strs.Lookup(d.Name))
				return inf.in.Error()
			}
		}
		return inf.bindingType(vb.Local)
	case resolver.ValueGlobalVar:
		inf.result.PathResolutions[id] = PathResolution{Kind: PathResolutionItem, Item: vb.Item}
		return inf.typeGlobalVarPath(e, vb.Item)
	case resolver.ValueGlobalConst, resolver.ValueOverride:
		inf.result.PathResolutions[id] = PathResolution{Kind: PathResolutionItem, Item: vb.Item}
		return inf.typeGlobalValuePath(e, vb.Item)
	default:
		inf.diagnose(e.Span, diag.UnresolvedName, "unresolved name %q", inf.strs.Lookup(d.Name))
		return inf.in.Error()
	}
}

func (inf *inferer) typeGlobalVarPath(e *hir.Expr, id itemtree.ItemID) types.TypeID {
	it := inf.items.Item(id)
	if it == nil {
		return inf.in.Error()
	}
	inner := inf.in.Error()
	if it.Type.IsValid() {
		inner = inf.tr.Lower(it.Type)
	}
	space, access := types.AddressSpaceFunction, types.AccessReadWrite
	switch {
	case !it.Qualifier.Present:
		inf.diagnose(e.Span, diag.MissingAddressSpace, "global variable %q has no address space", inf.strs.Lookup(it.Name))
	case !it.Qualifier.AddressSpaceOK:
		inf.diagnose(e.Span, diag.InvalidAddressSpace, "invalid address space %q", inf.strs.Lookup(it.Qualifier.AddressSpaceText))
	default:
		space = it.Qualifier.AddressSpace
		access = it.Qualifier.Access
		if it.Qualifier.AccessExplicit && !it.Qualifier.AccessOK {
			inf.diagnose(e.Span, diag.InvalidAddressSpace, "invalid access mode %q", inf.strs.Lookup(it.Qualifier.AccessText))
			access = space.DefaultAccessMode()
		}
	}
	return inf.in.Intern(types.Reference(space, inner, access))
}

// typeGlobalValuePath resolves a global const/override's value type: if it
// declares an explicit type, that wins outright; otherwise it falls back
// to the lookup callback wired in by the query layer, since the type can
// only come from re-inferring that definition's own initializer.
func (inf *inferer) typeGlobalValuePath(e *hir.Expr, id itemtree.ItemID) types.TypeID {
	it := inf.items.Item(id)
	if it == nil {
		return inf.in.Error()
	}
	if it.Type.IsValid() {
		return inf.tr.Lower(it.Type)
	}
	if inf.globals != nil {
		if t, ok := inf.globals(id); ok {
			return t
		}
	}
	return inf.in.Error()
}

// swizzleIndex maps a single swizzle letter to its component index within
// either alphabet.
func swizzleIndex(c byte) (uint8, bool) {
	switch c {
	case 'x', 'r':
		return 0, true
	case 'y', 'g':
		return 1, true
	case 'z', 'b':
		return 2, true
	case 'w', 'a':
		return 3, true
	default:
		return 0, false
	}
}

// swizzleAlphabet reports which of the two swizzle alphabets ({x,y,z,w} or
// {r,g,b,a}) c belongs to, or neither.
func swizzleAlphabet(c byte) int {
	switch c {
	case 'x', 'y', 'z', 'w':
		return 1
	case 'r', 'g', 'b', 'a':
		return 2
	default:
		return 0
	}
}

func (inf *inferer) typeField(id hir.ExprID, e *hir.Expr, d hir.FieldData) types.TypeID {
	baseType := inf.typeExpr(d.Base)
	inner, isRef, space, access := inf.refInfo(baseType)
	if inner == inf.in.Error() {
		return inf.in.Error()
	}
	bt, ok := inf.in.Lookup(inner)
	if !ok {
		return inf.in.Error()
	}

	name := inf.strs.Lookup(d.Name)

	switch bt.Kind {
	case types.KindStruct:
		info, ok := inf.in.StructInfo(bt.Struct)
		if !ok {
			return inf.in.Error()
		}
		for i, f := range info.Fields {
			if inf.strs.Lookup(f.Name) != name {
				continue
			}
			inf.result.FieldResolutions[id] = FieldResolution{Kind: FieldResolutionStructField, FieldIndex: i}
			if isRef {
				return inf.in.Intern(types.Reference(space, f.Type, access))
			}
			return f.Type
		}
		inf.diagnose(e.Span, diag.NoSuchField, "no field %q on struct %q", name, inf.strs.Lookup(info.Name))
		return inf.in.Error()

	case types.KindVector:
		return inf.typeSwizzle(id, e, name, bt, isRef, space, access)

	default:
		inf.diagnose(e.Span, diag.NoSuchField, "no field %q on type %s", name, types.Label(inf.strs, inf.in, inner))
		return inf.in.Error()
	}
}

func (inf *inferer) typeSwizzle(id hir.ExprID, e *hir.Expr, name string, vec types.Type, isRef bool, space types.AddressSpace, access types.AccessMode) types.TypeID {
	if len(name) < 1 || len(name) > 4 {
		inf.diagnose(e.Span, diag.NoSuchField, "invalid swizzle %q", name)
		return inf.in.Error()
	}
	alphabet := swizzleAlphabet(name[0])
	if alphabet == 0 {
		inf.diagnose(e.Span, diag.NoSuchField, "invalid swizzle %q", name)
		return inf.in.Error()
	}
	arity := vec.Rows.Size
	indices := make([]uint8, 0, len(name))
	seen := map[uint8]bool{}
	repeated := false
	for i := 0; i < len(name); i++ {
		if swizzleAlphabet(name[i]) != alphabet {
			inf.diagnose(e.Span, diag.NoSuchField, "swizzle %q mixes component alphabets", name)
			return inf.in.Error()
		}
		idx, ok := swizzleIndex(name[i])
		if !ok || idx >= arity {
			inf.diagnose(e.Span, diag.NoSuchField, "swizzle component %q out of range for a %d-component vector", string(name[i]), arity)
			return inf.in.Error()
		}
		if seen[idx] {
			repeated = true
		}
		seen[idx] = true
		indices = append(indices, idx)
	}
	inf.result.FieldResolutions[id] = FieldResolution{
		Kind: FieldResolutionSwizzle, Swizzle: indices, SwizzleSameComponent: repeated,
	}

	var resultType types.TypeID
	if len(indices) == 1 {
		resultType = vec.Elem
	} else {
		resultType = inf.in.Intern(types.FixedVector(uint8(len(indices)), vec.Elem))
	}
	if isRef {
		if repeated {
			// A repeated-component swizzle denotes more than one storage
			// location at once; it reads fine but is never a valid
			// assignment target — recorded here, enforced
			// by the assignment check at the use site in typeAssignment.
			return resultType
		}
		return inf.in.Intern(types.Reference(space, resultType, access))
	}
	return resultType
}

func (inf *inferer) typeIndex(e *hir.Expr, d hir.IndexData) types.TypeID {
	baseType := inf.typeExpr(d.Base)
	inf.typeExpr(d.Index)
	inner, isRef, space, access := inf.refInfo(baseType)
	if inner == inf.in.Error() {
		return inf.in.Error()
	}
	bt, ok := inf.in.Lookup(inner)
	if !ok {
		return inf.in.Error()
	}

	var elem types.TypeID
	switch bt.Kind {
	case types.KindVector:
		elem = bt.Elem
	case types.KindMatrix:
		elem = inf.in.Intern(types.Vector(bt.Rows, bt.Elem))
	case types.KindArray:
		elem = bt.Elem
	default:
		inf.diagnose(e.Span, diag.NotIndexable, "cannot index into %s", types.Label(inf.strs, inf.in, inner))
		return inf.in.Error()
	}
	if isRef {
		return inf.in.Intern(types.Reference(space, elem, access))
	}
	return elem
}

func (inf *inferer) typeUnary(e *hir.Expr, d hir.UnaryData) types.TypeID {
	switch d.Op {
	case hir.UnAddrOf:
		operandType := inf.typeExpr(d.Operand)
		inner, isRef, space, access := inf.refInfo(operandType)
		if !isRef {
			if operandType != inf.in.Error() {
				inf.diagnose(e.Span, diag.AddressOfRequiresRef, "address-of requires a reference operand")
			}
			return inf.in.Error()
		}
		return inf.in.Intern(types.Pointer(space, inner, access))

	case hir.UnDeref:
		operandType := inf.typeExpr(d.Operand)
		ot, ok := inf.in.Lookup(operandType)
		if !ok || ot.Kind != types.KindPointer {
			if operandType != inf.in.Error() {
				inf.diagnose(e.Span, diag.DerefRequiresPointer, "dereference requires a pointer operand")
			}
			return inf.in.Error()
		}
		return inf.in.Intern(types.Reference(ot.AddressSpace, ot.Elem, ot.Access))

	default:
		operandType := inf.unref(inf.typeExpr(d.Operand))
		overloads := inf.bi.Unary(d.Op)
		result, _, ok := inf.bi.Resolve(overloads, []types.TypeID{operandType})
		if !ok {
			if operandType != inf.in.Error() {
				inf.diagnose(e.Span, diag.NoBuiltinOverload, "no overload of unary operator found for %s", types.Label(inf.strs, inf.in, operandType))
			}
			return inf.in.Error()
		}
		return result
	}
}

func (inf *inferer) typeBinary(e *hir.Expr, d hir.BinaryData) types.TypeID {
	left := inf.unref(inf.typeExpr(d.Left))
	right := inf.unref(inf.typeExpr(d.Right))
	overloads := inf.bi.Binary(d.Op)
	result, _, ok := inf.bi.Resolve(overloads, []types.TypeID{left, right})
	if !ok {
		if left != inf.in.Error() && right != inf.in.Error() {
			inf.diagnose(e.Span, diag.NoBuiltinOverload, "no overload of binary operator found for (%s, %s)",
				types.Label(inf.strs, inf.in, left), types.Label(inf.strs, inf.in, right))
		}
		return inf.in.Error()
	}
	return result
}

func (inf *inferer) typeBitcast(d hir.BitcastData) types.TypeID {
	// The operand is still inferred so every nested expression gets a
	// type, but the result is the lowered target type regardless of the
	// operand's own type.
	inf.typeExpr(d.Value)
	return inf.tr.Lower(d.TypeRef)
}
