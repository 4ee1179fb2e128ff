package hir_test

import (
	"testing"

	"wgsla/internal/hir"
	"wgsla/internal/itemtree"
	"wgsla/internal/parser"
	"wgsla/internal/source"
	"wgsla/internal/syntax"
	"wgsla/internal/types"
)

func lowerFirstFn(t *testing.T, src string) (*hir.Body, *source.Interner, *syntax.Tree) {
	t.Helper()
	strs := source.NewInterner()
	tree, _ := parser.Parse(1, []byte(src))
	items := itemtree.Build(tree, 1, strs)
	for i := range items.Items {
		if items.Items[i].Kind == itemtree.ItemFn {
			return hir.LowerFn(tree, strs, &items.Items[i]), strs, tree
		}
	}
	t.Fatalf("no function item in %q", src)
	return nil, nil, nil
}

func TestLowerFnRootsAtCompound(t *testing.T) {
	body, strs, _ := lowerFirstFn(t, `
fn f(a: i32, b: f32) {
  var x: i32 = a;
  let y = b;
  if x > 0 { x = x - 1; } else { discard; }
  return;
}
`)
	if body.IsExprRoot {
		t.Fatalf("function bodies must root at a statement")
	}
	root := body.Stmt(body.RootStmt)
	if root == nil || root.Kind != hir.StmtCompound {
		t.Fatalf("root statement kind = %v, want Compound", root.Kind)
	}

	children := root.Data.(hir.CompoundData).Children
	wantKinds := []hir.StmtKind{hir.StmtVariable, hir.StmtLet, hir.StmtIf, hir.StmtReturn}
	if len(children) != len(wantKinds) {
		t.Fatalf("root has %d children, want %d", len(children), len(wantKinds))
	}
	for i, id := range children {
		if got := body.Stmt(id).Kind; got != wantKinds[i] {
			t.Errorf("child %d kind = %v, want %v", i, got, wantKinds[i])
		}
	}

	if len(body.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(body.Params))
	}
	first := body.Binding(body.Params[0])
	if first.Kind != hir.BindingParam || first.Name != strs.Intern("a") {
		t.Fatalf("first param binding = %+v", first)
	}
}

func TestLowerVariableQualifierAndInit(t *testing.T) {
	body, _, _ := lowerFirstFn(t, `
fn g() {
  var<workgroup> shared_val: i32 = 1 + 2;
}
`)
	root := body.Stmt(body.RootStmt).Data.(hir.CompoundData)
	v := body.Stmt(root.Children[0])
	if v.Kind != hir.StmtVariable {
		t.Fatalf("stmt kind = %v, want Variable", v.Kind)
	}
	data := v.Data.(hir.BindingStmtData)
	if !data.HasQualifier || data.AddressSpace != types.AddressSpaceWorkgroup {
		t.Fatalf("qualifier = %+v, want workgroup", data)
	}
	if !data.DeclType.IsValid() {
		t.Fatalf("declared type reference was dropped")
	}
	if data.Init == 0 {
		t.Fatalf("initializer was dropped")
	}
	if got := body.Expr(data.Init).Kind; got != hir.ExprBinary {
		t.Fatalf("initializer kind = %v, want Binary", got)
	}
}

func TestLowerGlobalInitRootsAtExpression(t *testing.T) {
	strs := source.NewInterner()
	tree, _ := parser.Parse(1, []byte(`const origin: vec3<f32> = vec3<f32>(0.0, 0.0, 0.0);`))
	items := itemtree.Build(tree, 1, strs)

	var it *itemtree.Item
	for i := range items.Items {
		if items.Items[i].Kind == itemtree.ItemConst {
			it = &items.Items[i]
		}
	}
	if it == nil {
		t.Fatalf("no const item")
	}

	body := hir.LowerGlobalInit(tree, strs, it)
	if !body.IsExprRoot {
		t.Fatalf("global initializers must root at an expression")
	}
	if body.Expr(body.RootExpr).Kind != hir.ExprCall {
		t.Fatalf("root expr kind = %v, want Call", body.Expr(body.RootExpr).Kind)
	}
	main := body.Binding(body.MainBinding)
	if main == nil || main.Name != strs.Intern("origin") {
		t.Fatalf("main binding = %+v, want the item's own name", main)
	}
}

func TestLowerMalformedStatementKeepsFollowingReturn(t *testing.T) {
	body, _, _ := lowerFirstFn(t, "fn broken() { let ; return; }")
	root := body.Stmt(body.RootStmt).Data.(hir.CompoundData)
	if len(root.Children) == 0 {
		t.Fatalf("malformed block lowered to an empty compound")
	}
	// Whatever the parser recovered to, the return must survive.
	foundReturn := false
	for _, id := range root.Children {
		if body.Stmt(id).Kind == hir.StmtReturn {
			foundReturn = true
		}
	}
	if !foundReturn {
		t.Fatalf("return statement lost during recovery")
	}
}
