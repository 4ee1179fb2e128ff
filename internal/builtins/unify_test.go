package builtins

import (
	"testing"

	"wgsla/internal/hir"
	"wgsla/internal/types"
)

func newTestRegistry(t *testing.T) (*types.Interner, *Registry) {
	t.Helper()
	in := types.NewInterner()
	return in, NewRegistry(in)
}

// Additive and multiplicative operators resolve the numeric-scalar
// overload for two i32 operands.
func TestResolveScalarAddOverload(t *testing.T) {
	in, reg := newTestRegistry(t)
	b := in.Builtins()

	overloads := reg.Binary(hir.BinAdd)
	result, _, ok := reg.Resolve(overloads, []types.TypeID{b.I32, b.I32})
	if !ok {
		t.Fatalf("expected an overload for (i32, i32)")
	}
	if result != b.I32 {
		t.Fatalf("result = %v, want i32 TypeID %v", result, b.I32)
	}
}

// Unification is symmetric for commutative operators: a
// vector-scalar multiply must resolve the same way regardless of argument
// order, since `*` is commutative in WGSL's overload table.
func TestVectorScalarMultiplyCommutes(t *testing.T) {
	in, reg := newTestRegistry(t)
	b := in.Builtins()
	vecF32 := in.Intern(types.FixedVector(3, b.F32))

	overloads := reg.Binary(hir.BinMul)

	r1, _, ok1 := reg.Resolve(overloads, []types.TypeID{vecF32, b.F32})
	if !ok1 {
		t.Fatalf("expected vec3<f32> * f32 to resolve")
	}
	r2, _, ok2 := reg.Resolve(overloads, []types.TypeID{b.F32, vecF32})
	if !ok2 {
		t.Fatalf("expected f32 * vec3<f32> to resolve")
	}
	if r1 != r2 {
		t.Fatalf("commuted operand order produced different result types: %v vs %v", r1, r2)
	}
	if r1 != vecF32 {
		t.Fatalf("result = %v, want vec3<f32> TypeID %v", r1, vecF32)
	}
}

// A vector-size bound variable must unify consistently across both
// operands: `vec2<f32> + vec3<f32>` has no overload (the sizes disagree).
func TestVectorSizeMismatchHasNoOverload(t *testing.T) {
	in, reg := newTestRegistry(t)
	b := in.Builtins()
	vec2 := in.Intern(types.FixedVector(2, b.F32))
	vec3 := in.Intern(types.FixedVector(3, b.F32))

	overloads := reg.Binary(hir.BinAdd)
	_, _, ok := reg.Resolve(overloads, []types.TypeID{vec2, vec3})
	if ok {
		t.Fatalf("expected no overload to match mismatched vector sizes")
	}
}

// Comparison operators yield bool regardless of the bound scalar/vector
// size involved.
func TestEqualityOverloadYieldsBool(t *testing.T) {
	in, reg := newTestRegistry(t)
	b := in.Builtins()

	overloads := reg.Binary(hir.BinEq)
	result, _, ok := reg.Resolve(overloads, []types.TypeID{b.U32, b.U32})
	if !ok {
		t.Fatalf("expected an overload for (u32, u32) equality")
	}
	if result != b.Bool {
		t.Fatalf("result = %v, want bool TypeID %v", result, b.Bool)
	}
}

// vec3(f32, f32, f32) must select the size-preserving construction
// overload over any conversion overload: construction is tried before
// conversion.
func TestVectorConstructorPrefersComponentConstruction(t *testing.T) {
	in, reg := newTestRegistry(t)
	b := in.Builtins()

	overloads := reg.VectorConstructors(3)
	result, _, ok := reg.Resolve(overloads, []types.TypeID{b.F32, b.F32, b.F32})
	if !ok {
		t.Fatalf("expected vec3 component-construction overload to resolve")
	}
	want := in.Intern(types.FixedVector(3, b.F32))
	if result != want {
		t.Fatalf("result = %v, want vec3<f32> TypeID %v", result, want)
	}
}
