// Package typeref lowers a syntactic TypeRef CST node to an interned
// semantic Type: scalars and fixed vectors/matrices map directly;
// generic forms (array, ptr, atomic, texture family) validate their
// template arguments and lower to types.KindError with diagnostic 13 on
// mismatch.
package typeref

import (
	"fmt"
	"strconv"

	"wgsla/internal/diag"
	"wgsla/internal/itemtree"
	"wgsla/internal/resolver"
	"wgsla/internal/source"
	"wgsla/internal/syntax"
	"wgsla/internal/token"
	"wgsla/internal/types"
)

// Lowerer converts TypeRef nodes to Types for one file, caching struct and
// alias items so repeated references to the same declaration share one
// TypeID.
type Lowerer struct {
	tree    *syntax.Tree
	items   *itemtree.Tree
	res     *resolver.Resolver
	strs    *source.Interner
	interns *types.Interner
	bag     *diag.Bag

	structCache map[itemtree.ItemID]types.TypeID
	aliasCache  map[itemtree.ItemID]types.TypeID
	resolving   map[itemtree.ItemID]bool
}

// New creates a Lowerer. bag receives diagnostic-13 reports for invalid
// template arguments; it may be nil to silently produce Error types (used
// by speculative lookups that report their own diagnostics).
func New(tree *syntax.Tree, items *itemtree.Tree, res *resolver.Resolver, strs *source.Interner, interns *types.Interner, bag *diag.Bag) *Lowerer {
	return &Lowerer{
		tree: tree, items: items, res: res, strs: strs, interns: interns, bag: bag,
		structCache: make(map[itemtree.ItemID]types.TypeID),
		aliasCache:  make(map[itemtree.ItemID]types.TypeID),
		resolving:   make(map[itemtree.ItemID]bool),
	}
}

func (l *Lowerer) errorf(span source.Span, format string, args ...any) types.TypeID {
	if l.bag != nil {
		l.bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.InvalidTypeLowering,
			Message:  fmt.Sprintf(format, args...),
			Primary:  span,
		})
	}
	return l.interns.Error()
}

// Lower lowers the TypeRef node id to its semantic Type. A zero id (no
// declared type) lowers to Error; callers distinguish "absent" themselves
// before calling Lower.
func (l *Lowerer) Lower(id syntax.NodeID) types.TypeID {
	n := l.tree.Node(id)
	if n == nil || n.Kind != syntax.KindTypeRef {
		return l.interns.Error()
	}
	var kw token.Token
	haveKw := false
	for _, c := range n.Children {
		if c.IsToken {
			kw = c.Token
			haveKw = true
			break
		}
	}
	if !haveKw {
		return l.interns.Error()
	}
	if kw.Kind == token.Ident {
		return l.lowerNamed(n, kw)
	}
	switch kw.Kind {
	case token.KwBool:
		return l.interns.Builtins().Bool
	case token.KwI32:
		return l.interns.Builtins().I32
	case token.KwU32:
		return l.interns.Builtins().U32
	case token.KwF32:
		return l.interns.Builtins().F32
	case token.KwF16:
		return l.interns.Builtins().F16
	case token.KwVec2, token.KwVec3, token.KwVec4:
		return l.lowerVector(n, kw)
	case token.KwMat:
		return l.lowerMatrix(n, kw)
	case token.KwArray:
		return l.lowerArray(n, false)
	case token.KwBindingArray:
		return l.lowerArray(n, true)
	case token.KwPtr:
		return l.lowerPtr(n)
	case token.KwAtomic:
		return l.lowerAtomic(n)
	case token.KwTexture:
		return l.lowerTexture(n, kw)
	case token.KwSampler:
		return l.interns.Intern(types.Type{Kind: types.KindSampler})
	case token.KwSamplerComparison:
		return l.interns.Intern(types.Type{Kind: types.KindSampler, SamplerComparison: true})
	default:
		return l.errorf(n.Span, "invalid type")
	}
}

// genericArgs returns the direct child nodes of n's KindTypeGenericArgs
// child, in source order, or nil if n has no generic argument list.
func (l *Lowerer) genericArgs(n *syntax.Node) []syntax.NodeID {
	for _, c := range n.Children {
		if c.IsToken {
			continue
		}
		gn := l.tree.Node(c.Node)
		if gn.Kind != syntax.KindTypeGenericArgs {
			continue
		}
		var out []syntax.NodeID
		for _, gc := range gn.Children {
			if !gc.IsToken {
				out = append(out, gc.Node)
			}
		}
		return out
	}
	return nil
}

// identText extracts a bare identifier spelling from a generic argument
// that was parsed as a plain expression (address space, access mode, and
// texel format names are not type keywords, so parseGenericArgs routes
// them through ParseExpr, producing a PathExpr wrapping one Ident token).
func (l *Lowerer) identText(id syntax.NodeID) (string, bool) {
	n := l.tree.Node(id)
	if n == nil {
		return "", false
	}
	for _, c := range n.Children {
		if c.IsToken && c.Token.Kind == token.Ident {
			return c.Token.Text, true
		}
	}
	return "", false
}

// intLiteral extracts an integer literal's value from a generic argument
// parsed as a LiteralExpr (an array size).
func (l *Lowerer) intLiteral(id syntax.NodeID) (uint32, bool) {
	n := l.tree.Node(id)
	if n == nil || n.Kind != syntax.KindLiteralExpr {
		return 0, false
	}
	for _, c := range n.Children {
		if c.IsToken && c.Token.Kind == token.IntLit {
			text := c.Token.Text
			// strip a trailing 'u' width suffix if present
			if len(text) > 0 && (text[len(text)-1] == 'u' || text[len(text)-1] == 'U') {
				text = text[:len(text)-1]
			}
			v, err := strconv.ParseUint(text, 0, 32)
			if err != nil {
				return 0, false
			}
			return uint32(v), true
		}
	}
	return 0, false
}

func (l *Lowerer) lowerVector(n *syntax.Node, kw token.Token) types.TypeID {
	size := vectorSize(kw.Kind)
	args := l.genericArgs(n)
	var comp types.TypeID
	switch {
	case len(args) == 1:
		comp = l.Lower(args[0])
		if t, ok := l.interns.Lookup(comp); ok && !isNonAbstractScalar(t.Kind) {
			return l.errorf(n.Span, "vector component must be a non-abstract scalar")
		}
	case len(args) == 0:
		var ok bool
		comp, ok = impliedVectorComponent(kw.Text, l.interns.Builtins())
		if !ok {
			return l.errorf(n.Span, "vector type requires a component type")
		}
	default:
		return l.errorf(n.Span, "vector type takes exactly one component type argument")
	}
	return l.interns.Intern(types.Type{Kind: types.KindVector, Rows: types.SizeVar{Size: size}, Elem: comp})
}

func (l *Lowerer) lowerMatrix(n *syntax.Node, kw token.Token) types.TypeID {
	cols, rows, bare := matrixDims(kw.Text)
	args := l.genericArgs(n)
	var comp types.TypeID
	switch {
	case len(args) == 1:
		comp = l.Lower(args[0])
		if t, ok := l.interns.Lookup(comp); ok && t.Kind != types.KindF32 && t.Kind != types.KindF16 {
			return l.errorf(n.Span, "matrix component must be f32 or f16")
		}
	case len(args) == 0 && !bare:
		var ok bool
		comp, ok = impliedMatrixComponent(kw.Text, l.interns.Builtins())
		if !ok {
			return l.errorf(n.Span, "matrix type requires a component type")
		}
	default:
		return l.errorf(n.Span, "matrix type requires a component type")
	}
	return l.interns.Intern(types.Type{
		Kind: types.KindMatrix,
		Cols: types.SizeVar{Size: cols},
		Rows: types.SizeVar{Size: rows},
		Elem: comp,
	})
}

func (l *Lowerer) lowerArray(n *syntax.Node, binding bool) types.TypeID {
	args := l.genericArgs(n)
	if len(args) == 0 {
		return l.errorf(n.Span, "array type requires an element type")
	}
	elem := l.Lower(args[0])
	if et, ok := l.interns.Lookup(elem); ok && !isStorable(et.Kind) {
		return l.errorf(n.Span, "array element type must be storable")
	}
	out := types.Type{Kind: types.KindArray, Elem: elem, ArrayIsBindingArray: binding}
	if len(args) >= 2 {
		if n2, ok := l.intLiteral(args[1]); ok {
			if n2 == 0 {
				return l.errorf(n.Span, "array size must be a positive integer literal")
			}
			out.ArraySize = n2
			out.ArrayHasSize = true
		} else {
			// Path-valued array sizes are accepted syntactically but not
			// constant-evaluated: treat as Constant(0).
			out.ArraySize = 0
			out.ArrayHasSize = true
		}
	}
	return l.interns.Intern(out)
}

func (l *Lowerer) lowerPtr(n *syntax.Node) types.TypeID {
	args := l.genericArgs(n)
	if len(args) < 2 {
		return l.errorf(n.Span, "ptr requires an address space and an element type")
	}
	asText, ok := l.identText(args[0])
	if !ok {
		return l.errorf(n.Span, "ptr's first argument must be an address space")
	}
	as, ok := parseAddressSpace(asText)
	if !ok {
		return l.errorf(n.Span, "invalid address space %q", asText)
	}
	elem := l.Lower(args[1])
	if et, ok := l.interns.Lookup(elem); ok && !isStorable(et.Kind) {
		return l.errorf(n.Span, "pointer element type must be storable")
	}
	access := as.DefaultAccessMode()
	if len(args) >= 3 {
		amText, ok := l.identText(args[2])
		if !ok {
			return l.errorf(n.Span, "ptr's third argument must be an access mode")
		}
		am, ok := parseAccessMode(amText)
		if !ok {
			return l.errorf(n.Span, "invalid access mode %q", amText)
		}
		if as == types.AddressSpaceUniform && am != types.AccessRead {
			return l.errorf(n.Span, "ptr<uniform, ...> access mode must be read")
		}
		access = am
	}
	return l.interns.Intern(types.Type{Kind: types.KindPointer, Elem: elem, AddressSpace: as, Access: access})
}

func (l *Lowerer) lowerAtomic(n *syntax.Node) types.TypeID {
	args := l.genericArgs(n)
	if len(args) != 1 {
		return l.errorf(n.Span, "atomic requires exactly one component type")
	}
	elem := l.Lower(args[0])
	if et, ok := l.interns.Lookup(elem); ok && et.Kind != types.KindI32 && et.Kind != types.KindU32 {
		return l.errorf(n.Span, "atomic component must be i32 or u32")
	}
	return l.interns.Intern(types.Type{Kind: types.KindAtomic, Elem: elem})
}

func (l *Lowerer) lowerTexture(n *syntax.Node, kw token.Token) types.TypeID {
	dim, arrayed, ms, kind, ok := textureShape(kw.Text)
	if !ok {
		return l.errorf(n.Span, "unrecognized texture type")
	}
	args := l.genericArgs(n)
	switch kind {
	case types.TextureSampled:
		if len(args) != 1 {
			return l.errorf(n.Span, "sampled texture requires one component type")
		}
		comp := l.Lower(args[0])
		if t, ok := l.interns.Lookup(comp); ok && t.Kind != types.KindI32 && t.Kind != types.KindU32 && t.Kind != types.KindF32 {
			return l.errorf(n.Span, "sampled texture component must be i32, u32, or f32")
		}
		return l.interns.Intern(types.Type{
			Kind: types.KindTexture, TexDim: dim, TexArrayed: arrayed, TexMultisampled: ms,
			TexKind: kind, Elem: comp,
		})
	case types.TextureStorage:
		if len(args) != 2 {
			return l.errorf(n.Span, "storage texture requires a texel format and an access mode")
		}
		fmtText, ok := l.identText(args[0])
		if !ok {
			return l.errorf(n.Span, "storage texture's first argument must be a texel format")
		}
		format, ok := parseTexelFormat(fmtText)
		if !ok {
			return l.errorf(n.Span, "invalid texel format %q", fmtText)
		}
		amText, ok := l.identText(args[1])
		if !ok {
			return l.errorf(n.Span, "storage texture's second argument must be an access mode")
		}
		access, ok := parseAccessMode(amText)
		if !ok {
			return l.errorf(n.Span, "invalid access mode %q", amText)
		}
		return l.interns.Intern(types.Type{
			Kind: types.KindTexture, TexDim: dim, TexArrayed: arrayed, TexMultisampled: ms,
			TexKind: kind, TexFormat: format, Access: access,
		})
	case types.TextureDepth, types.TextureExternal:
		if len(args) != 0 {
			return l.errorf(n.Span, "this texture type takes no template arguments")
		}
		return l.interns.Intern(types.Type{Kind: types.KindTexture, TexDim: dim, TexArrayed: arrayed, TexMultisampled: ms, TexKind: kind})
	default:
		return l.errorf(n.Span, "unrecognized texture type")
	}
}

// lowerNamed resolves a plain-identifier TypeRef against the item tree: a
// struct, a type alias, or (if absent) an unresolved name.
func (l *Lowerer) lowerNamed(n *syntax.Node, kw token.Token) types.TypeID {
	name := l.strs.Intern(kw.Text)
	binding := l.res.ResolveType(name)
	switch binding.Kind {
	case resolver.TypeStruct:
		return l.lowerStructItem(binding.Item)
	case resolver.TypeAlias:
		return l.lowerAliasItem(binding.Item)
	default:
		return l.errorf(n.Span, "unresolved type %q", kw.Text)
	}
}

// LowerStructItem resolves id (which must name a struct item) to its
// interned struct type, for callers outside a TypeRef position — e.g.
// resolving a bare `Point(...)` constructor call against resolve_callable
// rather than a parsed type reference.
func (l *Lowerer) LowerStructItem(id itemtree.ItemID) types.TypeID {
	return l.lowerStructItem(id)
}

// LowerAliasItem resolves id (which must name a type alias item) to the
// type it ultimately aliases, for the same "resolved via resolve_callable,
// not a TypeRef node" callers as LowerStructItem.
func (l *Lowerer) LowerAliasItem(id itemtree.ItemID) types.TypeID {
	return l.lowerAliasItem(id)
}

func (l *Lowerer) lowerStructItem(id itemtree.ItemID) types.TypeID {
	if tid, ok := l.structCache[id]; ok {
		return tid
	}
	it := l.items.Item(id)
	if it == nil {
		return l.interns.Error()
	}
	// Reserve the cache slot before lowering fields so a self-referential
	// field through a pointer (the only storable self-reference) doesn't
	// recurse forever; a direct-by-value cycle is an impossible structural
	// state the grammar itself prevents (a struct cannot embed itself by
	// value without infinite size).
	tid := l.interns.RegisterStruct(it.Name, nil)
	l.structCache[id] = tid
	fields := make([]types.StructField, 0, len(it.Fields))
	for _, f := range it.Fields {
		fields = append(fields, types.StructField{Name: f.Name, Type: l.Lower(f.Type)})
	}
	l.interns.SetStructFields(l.interns.MustLookup(tid).Struct, fields)
	return tid
}

func (l *Lowerer) lowerAliasItem(id itemtree.ItemID) types.TypeID {
	if tid, ok := l.aliasCache[id]; ok {
		return tid
	}
	if l.resolving[id] {
		return l.interns.Error() // cyclic alias chain: structurally impossible, degrade to Error
	}
	it := l.items.Item(id)
	if it == nil || !it.Type.IsValid() {
		return l.interns.Error()
	}
	l.resolving[id] = true
	tid := l.Lower(it.Type)
	delete(l.resolving, id)
	l.aliasCache[id] = tid
	return tid
}

func isNonAbstractScalar(k types.Kind) bool {
	switch k {
	case types.KindBool, types.KindI32, types.KindU32, types.KindF32, types.KindF16:
		return true
	default:
		return false
	}
}

func isStorable(k types.Kind) bool {
	switch k {
	case types.KindSampler, types.KindTexture, types.KindError:
		return false
	default:
		return true
	}
}

func vectorSize(k token.Kind) uint8 {
	switch k {
	case token.KwVec2:
		return 2
	case token.KwVec3:
		return 3
	case token.KwVec4:
		return 4
	default:
		return 0
	}
}

func impliedVectorComponent(text string, b types.Builtins) (types.TypeID, bool) {
	if len(text) < 5 {
		return 0, false
	}
	switch text[len(text)-1] {
	case 'f':
		return b.F32, true
	case 'i':
		return b.I32, true
	case 'u':
		return b.U32, true
	case 'h':
		return b.F16, true
	default:
		return 0, false
	}
}

func matrixDims(text string) (cols, rows uint8, bare bool) {
	if len(text) < 7 || text[:3] != "mat" {
		return 0, 0, false
	}
	rest := text[3:]
	if len(rest) < 3 || rest[1] != 'x' {
		return 0, 0, false
	}
	return rest[0] - '0', rest[2] - '0', len(rest) == 3
}

func impliedMatrixComponent(text string, b types.Builtins) (types.TypeID, bool) {
	if len(text) == 0 {
		return 0, false
	}
	switch text[len(text)-1] {
	case 'f':
		return b.F32, true
	case 'h':
		return b.F16, true
	default:
		return 0, false
	}
}

func parseAddressSpace(s string) (types.AddressSpace, bool) {
	switch s {
	case "function":
		return types.AddressSpaceFunction, true
	case "private":
		return types.AddressSpacePrivate, true
	case "workgroup":
		return types.AddressSpaceWorkgroup, true
	case "uniform":
		return types.AddressSpaceUniform, true
	case "storage":
		return types.AddressSpaceStorage, true
	case "push_constant":
		return types.AddressSpacePushConstant, true
	case "handle":
		return types.AddressSpaceHandle, true
	default:
		return types.AddressSpaceNone, false
	}
}

func parseAccessMode(s string) (types.AccessMode, bool) {
	switch s {
	case "read":
		return types.AccessRead, true
	case "write":
		return types.AccessWrite, true
	case "read_write":
		return types.AccessReadWrite, true
	default:
		return types.AccessNone, false
	}
}

func parseTexelFormat(s string) (types.TexelFormat, bool) {
	switch s {
	case "rgba8unorm":
		return types.TexelFormatRGBA8Unorm, true
	case "rgba8snorm":
		return types.TexelFormatRGBA8Snorm, true
	case "rgba8uint":
		return types.TexelFormatRGBA8Uint, true
	case "rgba8sint":
		return types.TexelFormatRGBA8Sint, true
	case "rgba16uint":
		return types.TexelFormatRGBA16Uint, true
	case "rgba16sint":
		return types.TexelFormatRGBA16Sint, true
	case "rgba16float":
		return types.TexelFormatRGBA16Float, true
	case "r32uint":
		return types.TexelFormatR32Uint, true
	case "r32sint":
		return types.TexelFormatR32Sint, true
	case "r32float":
		return types.TexelFormatR32Float, true
	case "rg32uint":
		return types.TexelFormatRG32Uint, true
	case "rg32sint":
		return types.TexelFormatRG32Sint, true
	case "rg32float":
		return types.TexelFormatRG32Float, true
	case "rgba32uint":
		return types.TexelFormatRGBA32Uint, true
	case "rgba32sint":
		return types.TexelFormatRGBA32Sint, true
	case "rgba32float":
		return types.TexelFormatRGBA32Float, true
	case "bgra8unorm":
		return types.TexelFormatBGRA8Unorm, true
	default:
		return types.TexelFormatNone, false
	}
}

func textureShape(text string) (dim types.TextureDim, arrayed, ms bool, kind types.TextureKind, ok bool) {
	switch text {
	case "texture_1d":
		return types.Dim1D, false, false, types.TextureSampled, true
	case "texture_2d":
		return types.Dim2D, false, false, types.TextureSampled, true
	case "texture_2d_array":
		return types.Dim2D, true, false, types.TextureSampled, true
	case "texture_3d":
		return types.Dim3D, false, false, types.TextureSampled, true
	case "texture_cube":
		return types.DimCube, false, false, types.TextureSampled, true
	case "texture_cube_array":
		return types.DimCube, true, false, types.TextureSampled, true
	case "texture_multisampled_2d":
		return types.Dim2D, false, true, types.TextureSampled, true
	case "texture_storage_1d":
		return types.Dim1D, false, false, types.TextureStorage, true
	case "texture_storage_2d":
		return types.Dim2D, false, false, types.TextureStorage, true
	case "texture_storage_2d_array":
		return types.Dim2D, true, false, types.TextureStorage, true
	case "texture_storage_3d":
		return types.Dim3D, false, false, types.TextureStorage, true
	case "texture_depth_2d":
		return types.Dim2D, false, false, types.TextureDepth, true
	case "texture_depth_2d_array":
		return types.Dim2D, true, false, types.TextureDepth, true
	case "texture_depth_cube":
		return types.DimCube, false, false, types.TextureDepth, true
	case "texture_depth_cube_array":
		return types.DimCube, true, false, types.TextureDepth, true
	case "texture_depth_multisampled_2d":
		return types.Dim2D, false, true, types.TextureDepth, true
	case "texture_external":
		return types.Dim2D, false, false, types.TextureExternal, true
	default:
		return 0, false, false, 0, false
	}
}
