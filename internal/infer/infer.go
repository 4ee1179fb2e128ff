package infer

import (
	"wgsla/internal/builtins"
	"wgsla/internal/diag"
	"wgsla/internal/hir"
	"wgsla/internal/itemtree"
	"wgsla/internal/resolver"
	"wgsla/internal/source"
	"wgsla/internal/syntax"
	"wgsla/internal/typeref"
	"wgsla/internal/types"
)

// GlobalTypeLookup resolves a global const/override/var item's value type,
// as computed by that item's own initializer inference. It lets one body's
// inference reuse another definition's already-computed result instead of
// re-deriving it, the cross-query edge the engine's query layer
// supplies in the real pipeline; callers outside that layer may pass nil
// and fall back to the item's declared type annotation only.
type GlobalTypeLookup func(itemtree.ItemID) (types.TypeID, bool)

// inferer carries everything one body's inference pass needs. It is built
// fresh per body (a Body never outlives the one definition it came from)
// and discarded once Result is returned.
type inferer struct {
	tree    *syntax.Tree
	items   *itemtree.Tree
	strs    *source.Interner
	in      *types.Interner
	bi      *builtins.Registry
	tr      *typeref.Lowerer
	res     *resolver.Resolver
	body    *hir.Body
	globals GlobalTypeLookup

	result *Result

	// returnDeclared is true when the enclosing function spells out a
	// return type; otherwise inference adopts the first `return`
	// expression's type as the body's type.
	returnDeclared bool
	returnAdopted  bool
}

// InferFn runs the inference pass over a lowered function body.
func InferFn(tree *syntax.Tree, items *itemtree.Tree, strs *source.Interner, in *types.Interner, bi *builtins.Registry, it *itemtree.Item, body *hir.Body, globals GlobalTypeLookup) *Result {
	res := resolver.New(items, strs)
	result := newResult()
	inf := &inferer{
		tree: tree, items: items, strs: strs, in: in, bi: bi,
		tr:      typeref.New(tree, items, res, strs, in, result.Diagnostics),
		res:     res,
		body:    body,
		globals: globals,
		result:  result,
	}

	for i, pid := range body.Params {
		if i >= len(it.Params) {
			break
		}
		pt := inf.tr.Lower(it.Params[i].Type)
		inf.setBindingType(pid, pt)
		inf.res.Declare(body.Binding(pid).Name, pid)
	}

	if it.ReturnType.IsValid() {
		inf.returnDeclared = true
		inf.result.BodyType = inf.tr.Lower(it.ReturnType)
	} else {
		inf.result.BodyType = in.Error()
	}

	inf.typeStmt(body.RootStmt)

	if !inf.returnDeclared && !inf.returnAdopted {
		// No declared return type and no `return <expr>` ever observed:
		// the body never produces a value.
		inf.result.BodyType = in.Error()
	}
	return inf.result
}

// InferGlobalInit runs the inference pass over a global var/const/
// override's bare initializer expression body.
func InferGlobalInit(tree *syntax.Tree, items *itemtree.Tree, strs *source.Interner, in *types.Interner, bi *builtins.Registry, it *itemtree.Item, body *hir.Body, globals GlobalTypeLookup) *Result {
	res := resolver.New(items, strs)
	result := newResult()
	inf := &inferer{
		tree: tree, items: items, strs: strs, in: in, bi: bi,
		tr:      typeref.New(tree, items, res, strs, in, result.Diagnostics),
		res:     res,
		body:    body,
		globals: globals,
		result:  result,
	}

	var declType types.TypeID
	haveDecl := it.Type.IsValid()
	if haveDecl {
		declType = inf.tr.Lower(it.Type)
		inf.setBindingType(body.MainBinding, declType)
	}
	inf.res.Declare(body.Binding(body.MainBinding).Name, body.MainBinding)

	var initType types.TypeID
	if body.IsExprRoot {
		initType = inf.typeExpr(body.RootExpr)
	} else {
		initType = in.Error()
	}

	switch {
	case haveDecl:
		inf.checkExact(inf.exprSpan(body.RootExpr), declType, initType)
		inf.result.BodyType = declType
	default:
		inf.result.BodyType = initType
		inf.setBindingType(body.MainBinding, initType)
	}
	return inf.result
}

func (inf *inferer) setBindingType(id hir.BindingID, t types.TypeID) {
	if !id.IsValid() {
		return
	}
	inf.result.BindingTypes[id] = t
}

func (inf *inferer) bindingType(id hir.BindingID) types.TypeID {
	if t, ok := inf.result.BindingTypes[id]; ok {
		return t
	}
	return inf.in.Error()
}

func (inf *inferer) diagnose(span source.Span, code diag.Code, format string, args ...any) {
	inf.result.Diagnostics.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  sprintf(format, args...),
		Primary:  span,
	})
}

// exprSpan and stmtSpan are best-effort: the arena stores a Span per entry
// already, so this just forwards to it, falling back to the zero span for
// the Missing sentinel (id 0).
func (inf *inferer) exprSpan(id hir.ExprID) source.Span { return inf.body.Expr(id).Span }
func (inf *inferer) stmtSpan(id hir.StmtID) source.Span { return inf.body.Stmt(id).Span }

// unref applies the reference-to-value conversion: a Reference yields its
// inner type in a value context, anything else is unchanged.
func (inf *inferer) unref(id types.TypeID) types.TypeID {
	if t, ok := inf.in.Lookup(id); ok && t.Kind == types.KindReference {
		return t.Elem
	}
	return id
}

// refInfo splits id into its reference-ness, inner type, and (when it is a
// Reference) the address space/access mode carried by the reference — used
// by Field/Index to propagate References through struct-field and
// swizzle/element access without losing their storage qualifiers.
func (inf *inferer) refInfo(id types.TypeID) (inner types.TypeID, isRef bool, as types.AddressSpace, access types.AccessMode) {
	if t, ok := inf.in.Lookup(id); ok && t.Kind == types.KindReference {
		return t.Elem, true, t.AddressSpace, t.Access
	}
	return id, false, types.AddressSpaceNone, types.AccessNone
}

// checkExact diagnoses a code-2 type mismatch when actual isn't exactly
// expected, silently accepting Error on either side.
func (inf *inferer) checkExact(span source.Span, expected, actual types.TypeID) {
	if expected == inf.in.Error() || actual == inf.in.Error() {
		return
	}
	if expected == actual {
		return
	}
	inf.diagnose(span, diag.TypeMismatch, "expected %s, found %s",
		types.Label(inf.strs, inf.in, expected), types.Label(inf.strs, inf.in, actual))
}

// checkBool diagnoses a code-2 mismatch unless actual is exactly bool.
func (inf *inferer) checkBool(span source.Span, actual types.TypeID) {
	inf.checkExact(span, inf.in.Builtins().Bool, actual)
}
