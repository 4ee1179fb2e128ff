package resolver_test

import (
	"testing"

	"wgsla/internal/hir"
	"wgsla/internal/itemtree"
	"wgsla/internal/parser"
	"wgsla/internal/resolver"
	"wgsla/internal/source"
)

const testFile = `
struct Light { pos: vec3<f32> }

alias Lights = array<Light, 4>;

var<private> counter: i32;
const limit: i32 = 8;
override scale: f32;

fn helper() -> i32 { return limit; }
`

func buildResolver(t *testing.T) (*resolver.Resolver, *source.Interner, *itemtree.Tree) {
	t.Helper()
	strs := source.NewInterner()
	tree, _ := parser.Parse(1, []byte(testFile))
	items := itemtree.Build(tree, 1, strs)
	return resolver.New(items, strs), strs, items
}

func TestResolveValueFindsGlobals(t *testing.T) {
	res, strs, _ := buildResolver(t)

	cases := []struct {
		name string
		kind resolver.ValueKind
	}{
		{"counter", resolver.ValueGlobalVar},
		{"limit", resolver.ValueGlobalConst},
		{"scale", resolver.ValueOverride},
	}
	for _, tc := range cases {
		got := res.ResolveValue(strs.Intern(tc.name))
		if got.Kind != tc.kind {
			t.Errorf("ResolveValue(%s).Kind = %v, want %v", tc.name, got.Kind, tc.kind)
		}
	}

	if res.ResolveValue(strs.Intern("helper")).IsValid() {
		t.Errorf("a function name must not resolve as a value")
	}
	if res.ResolveValue(strs.Intern("nonexistent")).IsValid() {
		t.Errorf("an unknown name must not resolve")
	}
}

func TestLocalsShadowGlobalsAndPopRestores(t *testing.T) {
	res, strs, _ := buildResolver(t)
	name := strs.Intern("counter")

	res.Push()
	res.Declare(name, hir.BindingID(3))

	got := res.ResolveValue(name)
	if got.Kind != resolver.ValueLocal || got.Local != hir.BindingID(3) {
		t.Fatalf("shadowed lookup = %+v, want local binding 3", got)
	}

	// An inner scope re-declaration shadows the outer local.
	res.Push()
	res.Declare(name, hir.BindingID(7))
	if got := res.ResolveValue(name); got.Local != hir.BindingID(7) {
		t.Fatalf("inner shadow = %+v, want local binding 7", got)
	}

	res.Pop()
	if got := res.ResolveValue(name); got.Local != hir.BindingID(3) {
		t.Fatalf("after popping the inner scope = %+v, want binding 3 again", got)
	}

	res.Pop()
	if got := res.ResolveValue(name); got.Kind != resolver.ValueGlobalVar {
		t.Fatalf("after popping all locals = %+v, want the global var again", got)
	}
}

func TestResolveTypeAndCallable(t *testing.T) {
	res, strs, items := buildResolver(t)

	light := res.ResolveType(strs.Intern("Light"))
	if light.Kind != resolver.TypeStruct {
		t.Fatalf("ResolveType(Light) = %+v, want struct", light)
	}
	if items.Item(light.Item) == nil {
		t.Fatalf("struct binding carries no item")
	}

	if got := res.ResolveType(strs.Intern("Lights")); got.Kind != resolver.TypeAlias {
		t.Fatalf("ResolveType(Lights) = %+v, want alias", got)
	}
	if res.ResolveType(strs.Intern("counter")).IsValid() {
		t.Fatalf("a var name must not resolve as a type")
	}

	if got := res.ResolveCallable(strs.Intern("helper")); got.Kind != resolver.CallableFunction {
		t.Fatalf("ResolveCallable(helper) = %+v, want function", got)
	}
	if got := res.ResolveCallable(strs.Intern("Light")); got.Kind != resolver.CallableStruct {
		t.Fatalf("ResolveCallable(Light) = %+v, want struct constructor", got)
	}
	// Builtins deliberately stay out of the resolver; inference falls back
	// to the builtin table on an absent result.
	if res.ResolveCallable(strs.Intern("clamp")).IsValid() {
		t.Fatalf("builtin names must not resolve as callables")
	}
}
