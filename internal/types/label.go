package types

import (
	"fmt"
	"strings"

	"wgsla/internal/source"
)

// Label renders a TypeID as a user-facing WGSL-style type string, used by
// hover and the `type_at` surface.
func Label(strings_ *source.Interner, in *Interner, id TypeID) string {
	return labelDepth(strings_, in, id, 0)
}

func labelDepth(strs *source.Interner, in *Interner, id TypeID, depth int) string {
	if in == nil || id == NoTypeID {
		return "?"
	}
	if depth > 8 {
		return "..."
	}
	t, ok := in.Lookup(id)
	if !ok {
		return "?"
	}
	switch t.Kind {
	case KindError:
		return "{error}"
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
		return fmt.Sprintf("vec%s<%s>", sizeLabel(t.Rows), labelDepth(strs, in, t.Elem, depth+1))
	case KindMatrix:
		return fmt.Sprintf("mat%sx%s<%s>", sizeLabel(t.Cols), sizeLabel(t.Rows), labelDepth(strs, in, t.Elem, depth+1))
	case KindArray:
		inner := labelDepth(strs, in, t.Elem, depth+1)
		if t.ArrayIsBindingArray {
			if t.ArrayHasSize {
				return fmt.Sprintf("binding_array<%s, %d>", inner, t.ArraySize)
			}
			return fmt.Sprintf("binding_array<%s>", inner)
		}
		if t.ArrayHasSize {
			return fmt.Sprintf("array<%s, %d>", inner, t.ArraySize)
		}
		return fmt.Sprintf("array<%s>", inner)
	case KindPointer:
		return fmt.Sprintf("ptr<%s, %s, %s>", t.AddressSpace, labelDepth(strs, in, t.Elem, depth+1), t.Access)
	case KindReference:
		return fmt.Sprintf("ref<%s, %s, %s>", t.AddressSpace, labelDepth(strs, in, t.Elem, depth+1), t.Access)
	case KindAtomic:
		return fmt.Sprintf("atomic<%s>", labelDepth(strs, in, t.Elem, depth+1))
	case KindTexture:
		return textureLabel(strs, in, t, depth)
	case KindSampler:
		if t.SamplerComparison {
			return "sampler_comparison"
		}
		return "sampler"
	case KindStruct:
		info, ok := in.StructInfo(t.Struct)
		if !ok || strs == nil {
			return "struct"
		}
		name := strs.Lookup(info.Name)
		return name
	case KindStorageTypeOfTexelFormat:
		return "{texel-storage-type}"
	case KindBoundVar:
		return "?T"
	default:
		return "invalid"
	}
}

func sizeLabel(s SizeVar) string {
	if s.Bound {
		return "?N"
	}
	return fmt.Sprintf("%d", s.Size)
}

func textureLabel(strs *source.Interner, in *Interner, t Type, depth int) string {
	var b strings.Builder
	b.WriteString("texture_")
	switch t.TexKind {
	case TextureDepth:
		b.WriteString("depth_")
	case TextureStorage:
		b.WriteString("storage_")
	case TextureExternal:
		return "texture_external"
	}
	if t.TexMultisampled {
		b.WriteString("multisampled_")
	}
	switch t.TexDim {
	case Dim1D:
		b.WriteString("1d")
	case Dim2D:
		b.WriteString("2d")
	case Dim3D:
		b.WriteString("3d")
	case DimCube:
		b.WriteString("cube")
	}
	if t.TexArrayed {
		b.WriteString("_array")
	}
	switch t.TexKind {
	case TextureSampled:
		b.WriteString("<" + labelDepth(strs, in, t.Elem, depth+1) + ">")
	case TextureStorage:
		b.WriteString(fmt.Sprintf("<%s, %s>", texelFormatLabel(t.TexFormat, t.TexFormatBound), t.Access))
	}
	return b.String()
}

func texelFormatLabel(f TexelFormat, bound bool) string {
	if bound {
		return "?F"
	}
	switch f {
	case TexelFormatRGBA8Unorm:
		return "rgba8unorm"
	case TexelFormatRGBA8Snorm:
		return "rgba8snorm"
	case TexelFormatRGBA8Uint:
		return "rgba8uint"
	case TexelFormatRGBA8Sint:
		return "rgba8sint"
	case TexelFormatRGBA16Uint:
		return "rgba16uint"
	case TexelFormatRGBA16Sint:
		return "rgba16sint"
	case TexelFormatRGBA16Float:
		return "rgba16float"
	case TexelFormatR32Uint:
		return "r32uint"
	case TexelFormatR32Sint:
		return "r32sint"
	case TexelFormatR32Float:
		return "r32float"
	case TexelFormatRG32Uint:
		return "rg32uint"
	case TexelFormatRG32Sint:
		return "rg32sint"
	case TexelFormatRG32Float:
		return "rg32float"
	case TexelFormatRGBA32Uint:
		return "rgba32uint"
	case TexelFormatRGBA32Sint:
		return "rgba32sint"
	case TexelFormatRGBA32Float:
		return "rgba32float"
	case TexelFormatBGRA8Unorm:
		return "bgra8unorm"
	default:
		return "?"
	}
}

// IsNumericScalar reports whether id is i32, u32, f32, or f16.
func IsNumericScalar(in *Interner, id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case KindI32, KindU32, KindF32, KindF16:
		return true
	default:
		return false
	}
}

// IsIntegerScalar reports whether id is i32 or u32.
func IsIntegerScalar(in *Interner, id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	return t.Kind == KindI32 || t.Kind == KindU32
}
