// Package types implements the interned, hash-consed semantic type pool
//: scalars, vectors, matrices,
// arrays, pointers, references, atomics, textures, samplers, structs, and
// the bound-variable placeholders overload resolution unifies against.
package types

import "fmt"

// TypeID uniquely identifies a type inside an Interner. Equal descriptors
// always share one TypeID, so equality and hashing of types reduce to
// integer comparison.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind tags which variant of the type sum a Type value holds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindError
	KindBool
	KindI32
	KindU32
	KindF32
	KindF16
	KindVector
	KindMatrix
	KindArray
	KindPointer
	KindReference
	KindAtomic
	KindTexture
	KindSampler
	KindStruct
	KindStorageTypeOfTexelFormat
	KindBoundVar
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindError:
		return "error"
	case KindBool:
		return "bool"
	case KindI32:
		return "i32"
	case KindU32:
		return "u32"
	case KindF32:
		return "f32"
	case KindF16:
		return "f16"
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	case KindArray:
		return "array"
	case KindPointer:
		return "pointer"
	case KindReference:
		return "reference"
	case KindAtomic:
		return "atomic"
	case KindTexture:
		return "texture"
	case KindSampler:
		return "sampler"
	case KindStruct:
		return "struct"
	case KindStorageTypeOfTexelFormat:
		return "storage-type-of-texel-format"
	case KindBoundVar:
		return "bound-var"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// AddressSpace is the memory class a storage location lives in.
type AddressSpace uint8

const (
	AddressSpaceNone AddressSpace = iota
	AddressSpaceFunction
	AddressSpacePrivate
	AddressSpaceWorkgroup
	AddressSpaceUniform
	AddressSpaceStorage
	AddressSpacePushConstant
	AddressSpaceHandle
)

func (a AddressSpace) String() string {
	switch a {
	case AddressSpaceFunction:
		return "function"
	case AddressSpacePrivate:
		return "private"
	case AddressSpaceWorkgroup:
		return "workgroup"
	case AddressSpaceUniform:
		return "uniform"
	case AddressSpaceStorage:
		return "storage"
	case AddressSpacePushConstant:
		return "push_constant"
	case AddressSpaceHandle:
		return "handle"
	default:
		return "none"
	}
}

// DefaultAccessMode returns the access mode a variable qualifier adopts
// when none is spelled out explicitly.
func (a AddressSpace) DefaultAccessMode() AccessMode {
	switch a {
	case AddressSpaceStorage:
		return AccessRead
	case AddressSpaceUniform:
		return AccessRead
	case AddressSpaceHandle:
		return AccessRead
	default:
		return AccessReadWrite
	}
}

// AccessMode is the set of operations permitted on a storage location.
// AccessAny appears only on builtin signatures, never on a user type.
type AccessMode uint8

const (
	AccessNone AccessMode = iota
	AccessRead
	AccessWrite
	AccessReadWrite
	AccessAny
)

func (a AccessMode) String() string {
	switch a {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	case AccessReadWrite:
		return "read_write"
	case AccessAny:
		return "any"
	default:
		return "none"
	}
}

// Accepts reports whether a value declared with access mode a may be used
// where want is required. Written for storage-texture access checks but
// reused for plain references/pointers too.
func (a AccessMode) Accepts(want AccessMode) bool {
	switch want {
	case AccessAny:
		return true
	case AccessRead:
		return a == AccessRead || a == AccessReadWrite
	case AccessWrite:
		return a == AccessWrite || a == AccessReadWrite
	case AccessReadWrite:
		return a == AccessReadWrite
	default:
		return false
	}
}

// TextureDim is a texture's dimensionality.
type TextureDim uint8

const (
	Dim1D TextureDim = iota
	Dim2D
	Dim3D
	DimCube
)

// TextureKind distinguishes sampled, storage, depth, and external textures.
type TextureKind uint8

const (
	TextureSampled TextureKind = iota
	TextureStorage
	TextureDepth
	TextureExternal
)

// TexelFormat enumerates the storage-texture texel formats the engine
// recognizes. The exact set mirrors WGSL's format name list.
type TexelFormat uint8

const (
	TexelFormatNone TexelFormat = iota
	TexelFormatRGBA8Unorm
	TexelFormatRGBA8Snorm
	TexelFormatRGBA8Uint
	TexelFormatRGBA8Sint
	TexelFormatRGBA16Uint
	TexelFormatRGBA16Sint
	TexelFormatRGBA16Float
	TexelFormatR32Uint
	TexelFormatR32Sint
	TexelFormatR32Float
	TexelFormatRG32Uint
	TexelFormatRG32Sint
	TexelFormatRG32Float
	TexelFormatRGBA32Uint
	TexelFormatRGBA32Sint
	TexelFormatRGBA32Float
	TexelFormatBGRA8Unorm
	// The unresolved `?F` placeholder is not a TexelFormat value; a storage
	// texture descriptor marks it with TexFormatBound instead.
)

// ChannelScalar returns the canonical component scalar a texel format
// produces when read: f32 for
// *unorm/*snorm/*float formats, i32 for *sint, u32 for *uint.
func (f TexelFormat) ChannelScalar(in *Interner) TypeID {
	switch f {
	case TexelFormatRGBA8Sint, TexelFormatRGBA16Sint, TexelFormatR32Sint, TexelFormatRG32Sint, TexelFormatRGBA32Sint:
		return in.builtins.I32
	case TexelFormatRGBA8Uint, TexelFormatRGBA16Uint, TexelFormatR32Uint, TexelFormatRG32Uint, TexelFormatRGBA32Uint:
		return in.builtins.U32
	default:
		return in.builtins.F32
	}
}

// SizeVar is either a concrete vector/matrix dimension (2, 3, or 4) or an
// unresolved `?N` bound variable (size == 0 with bound == true).
type SizeVar struct {
	Size  uint8
	Bound bool
}

// Type is the interned descriptor for one semantic type. Only the fields
// relevant to Kind are meaningful; the rest are zero. Struct field lists
// live in a side table on the Interner keyed by StructID, keeping the hot
// descriptor compact; a bound variable is identified by its Var field.
type Type struct {
	Kind Kind

	// Vector / Matrix
	Rows SizeVar
	Cols SizeVar // Matrix only

	// Vector/Matrix/Array/Pointer/Reference/Atomic component or inner type
	Elem TypeID

	// Array
	ArraySize           uint32 // valid when ArrayHasSize
	ArrayHasSize        bool
	ArrayIsBindingArray bool

	// Pointer / Reference
	AddressSpace AddressSpace
	Access       AccessMode

	// Texture
	TexDim          TextureDim
	TexArrayed      bool
	TexMultisampled bool
	TexKind         TextureKind
	TexFormat       TexelFormat
	TexFormatBound  bool // texel format is an unresolved ?F

	// Sampler
	SamplerComparison bool

	// Struct
	Struct StructID

	// BoundVar / StorageTypeOfTexelFormat
	Var BoundVarID
}

// StructID names a struct type registered with the interner.
type StructID uint32

// NoStructID marks the absence of a struct.
const NoStructID StructID = 0

// BoundVarID names one bound variable slot (`?T`, `?N`, `?F`) inside a
// builtin signature, scoped to that signature, not process-wide.
type BoundVarID uint32
