package typeref_test

import (
	"context"
	"testing"

	"wgsla/internal/diag"
	"wgsla/internal/itemtree"
	"wgsla/internal/query"
	"wgsla/internal/types"
)

func inferNamed(t *testing.T, src, fn string) *diag.Bag {
	t.Helper()
	db := query.New(nil)
	fid := db.Files.Open("typeref.wgsl", []byte(src))
	items, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree: %v", err)
	}
	nameID := db.Strs.Intern(fn)
	for _, item := range items.ByName(nameID) {
		if item.Kind != itemtree.ItemFn {
			continue
		}
		res, err := db.Infer(context.Background(), item.ID)
		if err != nil {
			t.Fatalf("Infer: %v", err)
		}
		return res.Diagnostics
	}
	t.Fatalf("function %q not found", fn)
	return nil
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestValidTemplateArgumentsLowerCleanly(t *testing.T) {
	cases := []string{
		`fn f() { var x: array<u32, 4>; }`,
		`fn f() { var x: vec2<bool>; }`,
		`fn f() { var x: mat3x3<f16>; }`,
		`fn f(p: ptr<function, f32>) {}`,
		`fn f(p: ptr<uniform, f32, read>) {}`,
		`fn f() { var x: atomic<u32>; }`,
	}
	for _, src := range cases {
		bag := inferNamed(t, src, "f")
		if hasCode(bag, diag.InvalidTypeLowering) {
			t.Errorf("%q produced an invalid-type diagnostic: %v", src, bag.Items())
		}
	}
}

func TestInvalidTemplateArgumentsDiagnoseAndLowerToError(t *testing.T) {
	cases := []string{
		`fn f() { var x: atomic<f32>; }`,       // atomic takes i32/u32 only
		`fn f() { var x: mat2x2<i32>; }`,       // matrix component must be float
		`fn f() { var x: array<u32, 0>; }`,     // size must be positive
		`fn f(p: ptr<uniform, f32, write>) {}`, // uniform pointers are read-only
		`fn f(p: ptr<nowhere, f32>) {}`,        // unknown address space
	}
	for _, src := range cases {
		bag := inferNamed(t, src, "f")
		if !hasCode(bag, diag.InvalidTypeLowering) {
			t.Errorf("%q lowered without an invalid-type diagnostic", src)
		}
	}
}

func TestPathArraySizeIsNotConstantEvaluated(t *testing.T) {
	// A named size is accepted syntactically; no constant evaluation is
	// attempted, so it lowers without a diagnostic.
	bag := inferNamed(t, `
const n: i32 = 4;
fn f() { var x: array<u32, n>; }
`, "f")
	if hasCode(bag, diag.InvalidTypeLowering) {
		t.Fatalf("path-valued array size diagnosed: %v", bag.Items())
	}
}

func TestAliasAndStructLowerThroughResolver(t *testing.T) {
	db := query.New(nil)
	fid := db.Files.Open("alias.wgsl", []byte(`
struct P { x: f32, y: f32 }
alias Pair = P;
fn f(p: Pair) -> f32 { return p.x; }
`))
	items, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree: %v", err)
	}
	for _, item := range items.ByName(db.Strs.Intern("f")) {
		if item.Kind != itemtree.ItemFn {
			continue
		}
		res, err := db.Infer(context.Background(), item.ID)
		if err != nil {
			t.Fatalf("Infer: %v", err)
		}
		if res.Diagnostics.Len() != 0 {
			t.Fatalf("alias-typed parameter diagnosed: %v", res.Diagnostics.Items())
		}
		if got := types.Label(db.Strs, db.Types, res.BodyType); got != "f32" {
			t.Fatalf("return type = %s, want f32", got)
		}
		return
	}
	t.Fatalf("function f not found")
}
