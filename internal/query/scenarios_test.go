package query

import (
	"context"
	"testing"

	"wgsla/internal/diag"
	"wgsla/internal/itemtree"
	"wgsla/internal/types"
)

func findFn(t *testing.T, db *Database, it *itemtree.Tree, name string) itemtree.ItemID {
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

func load(t *testing.T, db *Database, src string) *itemtree.Tree {
	t.Helper()
	fid := db.Files.Open("scenario.wgsl", []byte(src))
	it, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree: %v", err)
	}
	return it
}

// Scenario 1: `fn f() -> u32 { return 0; }` — no diagnostics, return type
// U32, the literal itself types as I32.
func TestScenarioReturnLiteralAgainstDeclaredType(t *testing.T) {
	db := New(nil)
	it := load(t, db, `fn f() -> u32 { return 0; }`)
	id := findFn(t, db, it, "f")

	res, err := db.Infer(context.Background(), id)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if res.Diagnostics.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", res.Diagnostics.Items())
	}
	if got := types.Label(db.Strs, db.Types, res.BodyType); got != "u32" {
		t.Fatalf("return type = %s, want u32", got)
	}
}

// Scenario 1 negative: returning a float literal against a declared u32
// return type is a type mismatch (code 2).
func TestScenarioReturnFloatAgainstU32Mismatches(t *testing.T) {
	db := New(nil)
	it := load(t, db, `fn f() -> u32 { return 0.0; }`)
	id := findFn(t, db, it, "f")

	res, err := db.Infer(context.Background(), id)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	found := false
	for _, d := range res.Diagnostics.Items() {
		if d.Code == diag.TypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a type-mismatch diagnostic, got %v", res.Diagnostics.Items())
	}
}

// Scenario 4: assigning to a `let` binding is not a reference target
// (code 1).
func TestScenarioAssignToLetIsNotAReference(t *testing.T) {
	db := New(nil)
	it := load(t, db, `fn bad() { let x: i32 = 1; x = 2; }`)
	id := findFn(t, db, it, "bad")

	res, err := db.Infer(context.Background(), id)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	found := false
	for _, d := range res.Diagnostics.Items() {
		if d.Code == diag.AssignTargetNotReference {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected assign-target-not-reference diagnostic, got %v", res.Diagnostics.Items())
	}
}

// Scenario 5: a storage global indexed and returned through a matching
// declared return type produces no diagnostics.
func TestScenarioStorageArrayIndexRoundTrips(t *testing.T) {
	db := New(nil)
	it := load(t, db, `
@group(0) @binding(0) var<storage, read_write> buf: array<u32>;
fn k(i: u32) -> u32 { return buf[i]; }
`)
	id := findFn(t, db, it, "k")

	res, err := db.Infer(context.Background(), id)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if res.Diagnostics.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", res.Diagnostics.Items())
	}
}

// Scenario 6: an inferred-component vec3 constructor over integer
// literals resolves to Vector{3, I32}.
func TestScenarioInferredComponentConstructor(t *testing.T) {
	db := New(nil)
	it := load(t, db, `fn m() { let v = vec3(1, 2, 3); }`)
	id := findFn(t, db, it, "m")

	res, err := db.Infer(context.Background(), id)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if res.Diagnostics.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", res.Diagnostics.Items())
	}
	found := false
	for _, tid := range res.ExprTypes {
		if types.Label(db.Strs, db.Types, tid) == "vec3<i32>" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected some expression typed vec3<i32>")
	}
}

// Recomputation stability: re-running Infer on an
// unchanged revision returns the identical cached result, and an edit to
// the file invalidates it so a fresh Infer call recomputes.
func TestInferMemoizationAndInvalidation(t *testing.T) {
	db := New(nil)
	src := `fn f() -> u32 { return 0; }`
	fid := db.Files.Open("memo.wgsl", []byte(src))
	it, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree: %v", err)
	}
	id := findFn(t, db, it, "f")

	first, err := db.Infer(context.Background(), id)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	second, err := db.Infer(context.Background(), id)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical cached *Result across unchanged revision")
	}

	db.Files.Open("memo.wgsl", []byte(`fn f() -> u32 { return 1u; }`))
	db.Invalidate(fid)
	it2, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree after edit: %v", err)
	}
	id2 := findFn(t, db, it2, "f")
	third, err := db.Infer(context.Background(), id2)
	if err != nil {
		t.Fatalf("Infer after edit: %v", err)
	}
	if third == first {
		t.Fatalf("expected a fresh *Result after invalidation")
	}
}
