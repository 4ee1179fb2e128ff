package types

import "testing"

func TestInternEqualDescriptorsShareOneID(t *testing.T) {
	in := NewInterner()
	a := in.Intern(FixedVector(3, in.builtins.F32))
	b := in.Intern(FixedVector(3, in.builtins.F32))
	if a != b {
		t.Fatalf("equal vector descriptors got distinct TypeIDs: %d vs %d", a, b)
	}
}

func TestInternDistinctDescriptorsDiffer(t *testing.T) {
	in := NewInterner()
	a := in.Intern(FixedVector(3, in.builtins.F32))
	b := in.Intern(FixedVector(4, in.builtins.F32))
	if a == b {
		t.Fatalf("vec3<f32> and vec4<f32> must not share a TypeID")
	}
}

func TestReferenceNotNestedIsCallerResponsibility(t *testing.T) {
	in := NewInterner()
	inner := in.Intern(Reference(AddressSpaceFunction, in.builtins.F32, AccessReadWrite))
	outer := Reference(AddressSpaceFunction, inner, AccessReadWrite)
	// the interner itself does not forbid this; unref discipline lives in
	// the inference pass, which never constructs a Reference over another
	// Reference.
	if in.Intern(outer) == NoTypeID {
		t.Fatalf("unexpected NoTypeID")
	}
}

func TestRegisterStructDistinctPerDeclaration(t *testing.T) {
	in := NewInterner()
	s1 := in.RegisterStruct(1, []StructField{{Name: 2, Type: in.builtins.F32}})
	s2 := in.RegisterStruct(1, []StructField{{Name: 2, Type: in.builtins.F32}})
	if s1 == s2 {
		t.Fatalf("two struct declarations with identical shape must still be distinct types")
	}
}

func TestErrorTypeIsStableSentinel(t *testing.T) {
	in := NewInterner()
	if in.Error() == NoTypeID {
		t.Fatalf("Error() must not be the zero TypeID")
	}
	tt := in.MustLookup(in.Error())
	if tt.Kind != KindError {
		t.Fatalf("Error() type has kind %v, want KindError", tt.Kind)
	}
}
