package builtins

import "wgsla/internal/types"

// constructorScalars is the component type set vector/matrix constructors
// range over. Matrices are restricted to the two floating kinds.
func (r *Registry) constructorScalars() []types.TypeID {
	b := r.in.Builtins()
	return []types.TypeID{b.Bool, b.I32, b.U32, b.F32, b.F16}
}

func (r *Registry) floatScalars() []types.TypeID {
	b := r.in.Builtins()
	return []types.TypeID{b.F32, b.F16}
}

// orderedPartitions enumerates every ordered way to write n as a sum of
// parts in [1, maxPart], used to generate vector-constructor overloads
// that mix scalars and smaller vectors (e.g. `vec4(vec2<f32>, f32, f32)`).
func orderedPartitions(n, maxPart uint8) [][]uint8 {
	if n == 0 {
		return [][]uint8{{}}
	}
	var out [][]uint8
	top := maxPart
	if n < top {
		top = n
	}
	for p := uint8(1); p <= top; p++ {
		for _, rest := range orderedPartitions(n-p, maxPart) {
			combo := append([]uint8{p}, rest...)
			out = append(out, combo)
		}
	}
	return out
}

// buildVectorConstructors implements the flexible vector construction:
// arity-matching scalar/sub-vector combinations for each component type,
// plus a same-size conversion from a vector of a different component type.
func (r *Registry) buildVectorConstructors() {
	for size := uint8(2); size <= 4; size++ {
		name := vectorCtorName(size)
		var list []Overload
		combos := orderedPartitions(size, 3)
		for _, comp := range r.constructorScalars() {
			vecType := r.in.Intern(types.FixedVector(size, comp))
			for _, combo := range combos {
				if len(combo) == 1 {
					// A single part spanning the whole arity is a
					// same-size vector argument; only the conversion form
					// below (from a different component type) takes one,
					// so a vector of this exact type matches no overload.
					continue
				}
				params := make([]types.TypeID, 0, len(combo))
				for _, p := range combo {
					if p == 1 {
						params = append(params, comp)
					} else {
						params = append(params, r.in.Intern(types.FixedVector(p, comp)))
					}
				}
				list = append(list, Overload{Params: params, Return: vecType})
			}
			for _, other := range r.constructorScalars() {
				if other == comp {
					continue
				}
				otherVec := r.in.Intern(types.FixedVector(size, other))
				list = append(list, Overload{Params: []types.TypeID{otherVec}, Return: vecType, IsConversion: true})
			}
		}
		r.funcs[name] = list
	}
}

// buildMatrixConstructors builds the all-scalar, all-column-vector, and
// same-shape conversion overloads for each matCxR shape.
func (r *Registry) buildMatrixConstructors() {
	for cols := uint8(2); cols <= 4; cols++ {
		for rows := uint8(2); rows <= 4; rows++ {
			name := matrixCtorName(cols, rows)
			var list []Overload
			for _, comp := range r.floatScalars() {
				matType := r.in.Intern(types.FixedMatrix(cols, rows, comp))
				colVec := r.in.Intern(types.FixedVector(rows, comp))

				scalarParams := make([]types.TypeID, int(cols)*int(rows))
				for i := range scalarParams {
					scalarParams[i] = comp
				}
				list = append(list, Overload{Params: scalarParams, Return: matType})

				colParams := make([]types.TypeID, cols)
				for i := range colParams {
					colParams[i] = colVec
				}
				list = append(list, Overload{Params: colParams, Return: matType})

				for _, other := range r.floatScalars() {
					if other == comp {
						continue
					}
					otherMat := r.in.Intern(types.FixedMatrix(cols, rows, other))
					list = append(list, Overload{Params: []types.TypeID{otherMat}, Return: matType, IsConversion: true})
				}
			}
			r.funcs[name] = list
		}
	}
}

// buildScalarConversions builds the single-argument `i32(x)`/`u32(x)`/
// `f32(x)`/`f16(x)`/`bool(x)` conversions between the five scalar kinds.
func (r *Registry) buildScalarConversions() {
	names := map[types.TypeID]string{}
	b := r.in.Builtins()
	names[b.I32] = "i32"
	names[b.U32] = "u32"
	names[b.F32] = "f32"
	names[b.F16] = "f16"
	names[b.Bool] = "bool"

	scalars := r.constructorScalars()
	for _, target := range scalars {
		var list []Overload
		for _, source := range scalars {
			list = append(list, Overload{
				Params:       []types.TypeID{source},
				Return:       target,
				IsConversion: source != target,
			})
		}
		r.funcs[names[target]] = list
	}
}
