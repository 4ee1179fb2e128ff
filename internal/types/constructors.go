package types

// Descriptor constructors. Each returns an un-interned Type value; callers
// pass it to Interner.Intern to obtain a stable TypeID.

// Vector describes a vector of size (2, 3, 4, or an unresolved bound
// variable) over component elem.
func Vector(size SizeVar, elem TypeID) Type {
	return Type{Kind: KindVector, Rows: size, Elem: elem}
}

// FixedVector is a convenience constructor for a concrete-size vector.
func FixedVector(size uint8, elem TypeID) Type {
	return Vector(SizeVar{Size: size}, elem)
}

// Matrix describes a matrix of cols x rows over component elem (f32/f16).
func Matrix(cols, rows SizeVar, elem TypeID) Type {
	return Type{Kind: KindMatrix, Cols: cols, Rows: rows, Elem: elem}
}

// FixedMatrix is a convenience constructor for concrete dimensions.
func FixedMatrix(cols, rows uint8, elem TypeID) Type {
	return Matrix(SizeVar{Size: cols}, SizeVar{Size: rows}, elem)
}

// DynamicArray describes `array<T>` (runtime-sized).
func DynamicArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}

// FixedArray describes `array<T, N>`.
func FixedArray(elem TypeID, n uint32) Type {
	return Type{Kind: KindArray, Elem: elem, ArraySize: n, ArrayHasSize: true}
}

// BindingArray describes `binding_array<T[, N]>`.
func BindingArray(elem TypeID, n uint32, hasSize bool) Type {
	return Type{Kind: KindArray, Elem: elem, ArraySize: n, ArrayHasSize: hasSize, ArrayIsBindingArray: true}
}

// Pointer describes `ptr<AS, T, AM>`.
func Pointer(space AddressSpace, elem TypeID, access AccessMode) Type {
	return Type{Kind: KindPointer, AddressSpace: space, Elem: elem, Access: access}
}

// Reference describes a Reference(inner, AS, AM). A Reference is never
// nested inside another Reference — callers must unref
// before wrapping.
func Reference(space AddressSpace, elem TypeID, access AccessMode) Type {
	return Type{Kind: KindReference, AddressSpace: space, Elem: elem, Access: access}
}

// Atomic describes `atomic<T>` (T is i32 or u32).
func Atomic(elem TypeID) Type {
	return Type{Kind: KindAtomic, Elem: elem}
}

// SampledTexture describes a non-depth, non-storage texture.
func SampledTexture(dim TextureDim, arrayed, multisampled bool, sampledType TypeID) Type {
	return Type{Kind: KindTexture, TexDim: dim, TexArrayed: arrayed, TexMultisampled: multisampled, TexKind: TextureSampled, Elem: sampledType}
}

// StorageTexture describes a storage texture with a texel format and
// access mode (possibly format == bound for overload signatures).
func StorageTexture(dim TextureDim, arrayed bool, format TexelFormat, formatBound bool, access AccessMode) Type {
	return Type{Kind: KindTexture, TexDim: dim, TexArrayed: arrayed, TexKind: TextureStorage, TexFormat: format, TexFormatBound: formatBound, Access: access}
}

// DepthTexture describes a depth texture.
func DepthTexture(dim TextureDim, arrayed, multisampled bool) Type {
	return Type{Kind: KindTexture, TexDim: dim, TexArrayed: arrayed, TexMultisampled: multisampled, TexKind: TextureDepth}
}

// ExternalTexture describes `texture_external`.
func ExternalTexture() Type {
	return Type{Kind: KindTexture, TexKind: TextureExternal}
}

// Sampler describes `sampler` or `sampler_comparison`.
func Sampler(comparison bool) Type {
	return Type{Kind: KindSampler, SamplerComparison: comparison}
}

// BoundVar describes an unresolved `?T` placeholder scoped to one builtin
// signature instantiation.
func BoundVar(v BoundVarID) Type {
	return Type{Kind: KindBoundVar, Var: v}
}

// StorageTypeOfTexelFormat describes the `StorageTypeOfTexelFormat(?F)`
// placeholder used by storage-texture builtins (e.g. textureLoad) whose
// result type is derived from the bound texel format.
func StorageTypeOfTexelFormat(v BoundVarID) Type {
	return Type{Kind: KindStorageTypeOfTexelFormat, Var: v}
}
