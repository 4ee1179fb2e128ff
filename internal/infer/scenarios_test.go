package infer_test

import (
	"context"
	"testing"

	"wgsla/internal/itemtree"
	"wgsla/internal/query"
	"wgsla/internal/types"
)

func findFn(t *testing.T, db *query.Database, it *itemtree.Tree, name string) itemtree.ItemID {
	t.Helper()
	nameID := db.Strs.Intern(name)
	for _, item := range it.ByName(nameID) {
		if item.Kind == itemtree.ItemFn {
			return item.ID
		}
	}
	t.Fatalf("function %q not found", name)
	return itemtree.ItemID{}
}

// Scenario 2: reading a two-component swizzle off a local vec3<f32>
// yields a Reference(Vector{2,F32}, Function, ReadWrite) for the swizzle
// expression itself, while the let binding it initializes takes the
// unreferenced Vector{2,F32} value type.
func TestScenarioSwizzleReadYieldsVec2Reference(t *testing.T) {
	db := query.New(nil)
	fid := db.Files.Open("swizzle.wgsl", []byte(`
fn g() {
  var x: vec3<f32> = vec3<f32>(1.0, 2.0, 3.0);
  let y = x.xy;
}
`))
	items, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree: %v", err)
	}
	id := findFn(t, db, items, "g")

	_, body, err := db.Body(context.Background(), id)
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	res, err := db.Infer(context.Background(), id)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if res.Diagnostics.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", res.Diagnostics.Items())
	}

	foundSwizzleRef := false
	for _, tid := range res.ExprTypes {
		if types.Label(db.Strs, db.Types, tid) == "ref<function, vec2<f32>, read_write>" {
			foundSwizzleRef = true
		}
	}
	if !foundSwizzleRef {
		t.Fatalf("expected some expression typed ref<function, vec2<f32>, read_write> (the x.xy swizzle)")
	}

	yName := db.Strs.Intern("y")
	foundBinding := false
	for bid, tid := range res.BindingTypes {
		b := body.Binding(bid)
		if b == nil || b.Name != yName {
			continue
		}
		foundBinding = true
		if got := types.Label(db.Strs, db.Types, tid); got != "vec2<f32>" {
			t.Fatalf("binding y type = %s, want vec2<f32>", got)
		}
	}
	if !foundBinding {
		t.Fatalf("expected to find binding y")
	}
}

// Scenario 3: dereferencing a function-space f32 pointer yields a
// Reference(F32, Function, ReadWrite); the surrounding `+ 1.0` unrefs it
// to F32 and picks the numeric-scalar overload, so the function's
// declared F32 return type checks clean.
func TestScenarioPointerDerefUnrefsForArithmetic(t *testing.T) {
	db := query.New(nil)
	fid := db.Files.Open("deref.wgsl", []byte(`
fn h(p: ptr<function, f32>) -> f32 {
  return *p + 1.0;
}
`))
	items, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree: %v", err)
	}
	id := findFn(t, db, items, "h")

	res, err := db.Infer(context.Background(), id)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if res.Diagnostics.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", res.Diagnostics.Items())
	}

	foundDerefRef := false
	for _, tid := range res.ExprTypes {
		if types.Label(db.Strs, db.Types, tid) == "ref<function, f32, read_write>" {
			foundDerefRef = true
		}
	}
	if !foundDerefRef {
		t.Fatalf("expected some expression typed ref<function, f32, read_write> (the *p dereference)")
	}

	if got := types.Label(db.Strs, db.Types, res.BodyType); got != "f32" {
		t.Fatalf("return type = %s, want f32", got)
	}
}
