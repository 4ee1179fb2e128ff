package token

// keywords maps reserved words (keywords plus predeclared type names) to
// their token kind. A lone name not in this table lexes as Ident.
var keywords = map[string]Kind{
	"fn":         KwFn,
	"struct":     KwStruct,
	"var":        KwVar,
	"let":        KwLet,
	"const":      KwConst,
	"constant":   KwConst,
	"override":   KwOverride,
	"alias":      KwAlias,
	"type":       KwAlias,
	"if":         KwIf,
	"else":       KwElse,
	"for":        KwFor,
	"while":      KwWhile,
	"loop":       KwLoop,
	"switch":     KwSwitch,
	"case":       KwCase,
	"default":    KwDefault,
	"return":     KwReturn,
	"break":      KwBreak,
	"continue":   KwContinue,
	"discard":    KwDiscard,
	"continuing": KwContinuing,
	"fallthrough": KwFallthrough,
	"true":       KwTrue,
	"false":      KwFalse,

	"bool": KwBool,
	"i32":  KwI32,
	"u32":  KwU32,
	"f32":  KwF32,
	"f16":  KwF16,

	"vec2": KwVec2, "vec2f": KwVec2, "vec2i": KwVec2, "vec2u": KwVec2, "vec2h": KwVec2,
	"vec3": KwVec3, "vec3f": KwVec3, "vec3i": KwVec3, "vec3u": KwVec3, "vec3h": KwVec3,
	"vec4": KwVec4, "vec4f": KwVec4, "vec4i": KwVec4, "vec4u": KwVec4, "vec4h": KwVec4,

	"mat2x2": KwMat, "mat2x3": KwMat, "mat2x4": KwMat,
	"mat3x2": KwMat, "mat3x3": KwMat, "mat3x4": KwMat,
	"mat4x2": KwMat, "mat4x3": KwMat, "mat4x4": KwMat,
	"mat2x2f": KwMat, "mat2x3f": KwMat, "mat2x4f": KwMat,
	"mat3x2f": KwMat, "mat3x3f": KwMat, "mat3x4f": KwMat,
	"mat4x2f": KwMat, "mat4x3f": KwMat, "mat4x4f": KwMat,
	"mat2x2h": KwMat, "mat2x3h": KwMat, "mat2x4h": KwMat,
	"mat3x2h": KwMat, "mat3x3h": KwMat, "mat3x4h": KwMat,
	"mat4x2h": KwMat, "mat4x3h": KwMat, "mat4x4h": KwMat,

	"ptr":           KwPtr,
	"atomic":        KwAtomic,
	"array":         KwArray,
	"binding_array": KwBindingArray,

	"texture_1d": KwTexture, "texture_2d": KwTexture, "texture_2d_array": KwTexture,
	"texture_3d": KwTexture, "texture_cube": KwTexture, "texture_cube_array": KwTexture,
	"texture_multisampled_2d":   KwTexture,
	"texture_storage_1d":        KwTexture,
	"texture_storage_2d":        KwTexture,
	"texture_storage_2d_array":  KwTexture,
	"texture_storage_3d":        KwTexture,
	"texture_depth_2d":          KwTexture,
	"texture_depth_2d_array":    KwTexture,
	"texture_depth_cube":        KwTexture,
	"texture_depth_cube_array":  KwTexture,
	"texture_depth_multisampled_2d": KwTexture,
	"texture_external":          KwTexture,

	"sampler":            KwSampler,
	"sampler_comparison": KwSamplerComparison,
}

// LookupKeyword returns the keyword/type-name kind for text, or (Ident,
// false) if text is a plain identifier.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}

var keywordTexts = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for text, kind := range keywords {
		if _, exists := m[kind]; !exists {
			m[kind] = text
		}
	}
	return m
}()

func keywordText(k Kind) string {
	if s, ok := keywordTexts[k]; ok {
		return s
	}
	return "keyword"
}
