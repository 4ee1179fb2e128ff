package builtins

import "wgsla/internal/types"

// typeVar0 is reused as "the" bound type variable across every function
// overload below. Each Resolve call allocates its own unification table,
// so reusing one BoundVarID across unrelated overloads is safe: nothing
// ties a binding made while matching one overload to a binding made while
// matching another.
const typeVar0 types.BoundVarID = 0

func (r *Registry) tvar() types.TypeID { return r.in.Intern(types.BoundVar(typeVar0)) }

// buildFunctions registers the representative intrinsic function catalog:
// enough of WGSL's builtin surface to exercise every shape the unifier
// supports (bound type, bound size, bound texel format, texture/pointer
// parameters), without attempting to enumerate the language's full builtin
// list (noted as a deliberate scope cut in the design ledger).
func (r *Registry) buildFunctions() {
	r.buildMathFunctions()
	r.buildLogicalFunctions()
	r.buildTextureFunctions()
	r.buildArrayFunctions()
}

func (r *Registry) buildMathFunctions() {
	numeric := r.numericScalars()
	floats := r.floatScalars()

	var abs []Overload
	var minMax []Overload
	var clamp []Overload
	for _, s := range numeric {
		vs := r.boundVector(s)
		abs = append(abs,
			Overload{Params: []types.TypeID{s}, Return: s},
			Overload{Params: []types.TypeID{vs}, Return: vs},
		)
		minMax = append(minMax,
			Overload{Params: []types.TypeID{s, s}, Return: s},
			Overload{Params: []types.TypeID{vs, vs}, Return: vs},
		)
		clamp = append(clamp,
			Overload{Params: []types.TypeID{s, s, s}, Return: s},
			Overload{Params: []types.TypeID{vs, vs, vs}, Return: vs},
		)
	}
	r.funcs["abs"] = abs
	r.funcs["min"] = minMax
	r.funcs["max"] = minMax
	r.funcs["clamp"] = clamp

	var dot []Overload
	var length []Overload
	var normalize []Overload
	var cross []Overload
	for _, f := range floats {
		vf := r.boundVector(f)
		dot = append(dot, Overload{Params: []types.TypeID{vf, vf}, Return: f})
		length = append(length,
			Overload{Params: []types.TypeID{f}, Return: f},
			Overload{Params: []types.TypeID{vf}, Return: f},
		)
		normalize = append(normalize, Overload{Params: []types.TypeID{vf}, Return: vf})
		vec3 := r.in.Intern(types.FixedVector(3, f))
		cross = append(cross, Overload{Params: []types.TypeID{vec3, vec3}, Return: vec3})
	}
	r.funcs["dot"] = dot
	r.funcs["length"] = length
	r.funcs["normalize"] = normalize
	r.funcs["cross"] = cross
}

func (r *Registry) buildLogicalFunctions() {
	b := r.in.Builtins()
	boolVec := r.boundVector(b.Bool)

	r.funcs["all"] = []Overload{{Params: []types.TypeID{boolVec}, Return: b.Bool}}
	r.funcs["any"] = []Overload{{Params: []types.TypeID{boolVec}, Return: b.Bool}}

	var sel []Overload
	for _, s := range r.constructorScalars() {
		vs := r.boundVector(s)
		sel = append(sel,
			Overload{Params: []types.TypeID{s, s, b.Bool}, Return: s},
			Overload{Params: []types.TypeID{vs, vs, boolVec}, Return: vs},
		)
	}
	r.funcs["select"] = sel
}

// buildTextureFunctions registers a representative sampled/storage texture
// surface. Statement-only builtins with no expression-level return type
// (textureStore, storageBarrier, workgroupBarrier) have no home in this
// table, since the type system has no Void kind; nothing else in the
// inference pass recognizes them either, so a call to one of them is
// reported as an unresolved name.
func (r *Registry) buildTextureFunctions() {
	b := r.in.Builtins()
	vec2i := r.in.Intern(types.FixedVector(2, b.I32))
	vec2f := r.in.Intern(types.FixedVector(2, b.F32))
	vec3f := r.in.Intern(types.FixedVector(3, b.F32))
	vec2u := r.in.Intern(types.FixedVector(2, b.U32))
	vec3u := r.in.Intern(types.FixedVector(3, b.U32))
	sampler := r.in.Intern(types.Sampler(false))

	sampled2D := r.in.Intern(types.SampledTexture(types.Dim2D, false, false, r.tvar()))
	sampledCube := r.in.Intern(types.SampledTexture(types.DimCube, false, false, r.tvar()))
	sampled2DArray := r.in.Intern(types.SampledTexture(types.Dim2D, true, false, r.tvar()))
	sampled3D := r.in.Intern(types.SampledTexture(types.Dim3D, false, false, r.tvar()))

	vec4 := func(elem types.TypeID) types.TypeID { return r.in.Intern(types.FixedVector(4, elem)) }

	r.funcs["textureSample"] = []Overload{
		{Params: []types.TypeID{sampled2D, sampler, vec2f}, Return: vec4(r.tvar())},
		{Params: []types.TypeID{sampledCube, sampler, vec3f}, Return: vec4(r.tvar())},
		{Params: []types.TypeID{sampled2DArray, sampler, vec2f, b.I32}, Return: vec4(r.tvar())},
	}

	storageFormat2D := r.in.Intern(types.StorageTexture(types.Dim2D, false, types.TexelFormatNone, true, types.AccessRead))
	r.funcs["textureLoad"] = []Overload{
		{Params: []types.TypeID{sampled2D, vec2i, b.I32}, Return: vec4(r.tvar())},
		{Params: []types.TypeID{sampled3D, r.in.Intern(types.FixedVector(3, b.I32)), b.I32}, Return: vec4(r.tvar())},
		{Params: []types.TypeID{storageFormat2D, vec2i}, Return: r.in.Intern(types.StorageTypeOfTexelFormat(0))},
	}

	r.funcs["textureDimensions"] = []Overload{
		{Params: []types.TypeID{sampled2D}, Return: vec2u},
		{Params: []types.TypeID{sampled2D, b.I32}, Return: vec2u},
		{Params: []types.TypeID{sampled3D}, Return: vec3u},
		{Params: []types.TypeID{storageFormat2D}, Return: vec2u},
	}
}

func (r *Registry) buildArrayFunctions() {
	elem := r.tvar()
	arr := r.in.Intern(types.DynamicArray(elem))
	ptr := r.in.Intern(types.Pointer(types.AddressSpaceStorage, arr, types.AccessAny))
	r.funcs["arrayLength"] = []Overload{
		{Params: []types.TypeID{ptr}, Return: r.in.Builtins().U32},
	}
}
