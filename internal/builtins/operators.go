package builtins

import (
	"wgsla/internal/hir"
	"wgsla/internal/types"
)

// numericScalars lists the four scalar kinds WGSL arithmetic operates on,
// in the order overloads are tried (int-like first, matching how the
// corpus' own builtin tables are laid out).
func (r *Registry) numericScalars() []types.TypeID {
	b := r.in.Builtins()
	return []types.TypeID{b.I32, b.U32, b.F32, b.F16}
}

// signedScalars excludes u32: unary minus and, elsewhere, things that need
// a sign bit.
func (r *Registry) signedScalars() []types.TypeID {
	b := r.in.Builtins()
	return []types.TypeID{b.I32, b.F32, b.F16}
}

func (r *Registry) integerScalars() []types.TypeID {
	b := r.in.Builtins()
	return []types.TypeID{b.I32, b.U32}
}

// boundVector returns `vecN<elem>` with N bound, for building a single
// overload that matches any concrete vector size.
func (r *Registry) boundVector(elem types.TypeID) types.TypeID {
	return r.in.Intern(types.Vector(types.SizeVar{Bound: true}, elem))
}

func (r *Registry) buildBinary() {
	r.buildLogical()
	r.buildBitwise()
	r.buildComparison()
	r.buildShift()
	r.buildArithmetic()
}

func (r *Registry) buildLogical() {
	b := r.in.Builtins()
	same2 := []Overload{{Params: []types.TypeID{b.Bool, b.Bool}, Return: b.Bool}}
	r.binary[hir.BinOrOr] = same2
	r.binary[hir.BinAndAnd] = same2
}

func (r *Registry) buildBitwise() {
	b := r.in.Builtins()
	for _, op := range []hir.BinOp{hir.BinBitOr, hir.BinBitXor, hir.BinBitAnd} {
		var list []Overload
		for _, s := range r.integerScalars() {
			list = append(list, Overload{Params: []types.TypeID{s, s}, Return: s})
			vs := r.boundVector(s)
			list = append(list, Overload{Params: []types.TypeID{vs, vs}, Return: vs})
		}
		if op != hir.BinBitXor {
			list = append(list,
				Overload{Params: []types.TypeID{b.Bool, b.Bool}, Return: b.Bool},
				Overload{Params: []types.TypeID{r.boundVector(b.Bool), r.boundVector(b.Bool)}, Return: r.boundVector(b.Bool)},
			)
		}
		r.binary[op] = list
	}
}

func (r *Registry) buildComparison() {
	b := r.in.Builtins()
	var eq []Overload
	for _, s := range []types.TypeID{b.Bool, b.I32, b.U32, b.F32, b.F16} {
		eq = append(eq, Overload{Params: []types.TypeID{s, s}, Return: b.Bool})
		vs := r.boundVector(s)
		eq = append(eq, Overload{Params: []types.TypeID{vs, vs}, Return: r.boundVector(b.Bool)})
	}
	r.binary[hir.BinEq] = eq
	r.binary[hir.BinNe] = eq

	var ord []Overload
	for _, s := range r.numericScalars() {
		ord = append(ord, Overload{Params: []types.TypeID{s, s}, Return: b.Bool})
		vs := r.boundVector(s)
		ord = append(ord, Overload{Params: []types.TypeID{vs, vs}, Return: r.boundVector(b.Bool)})
	}
	r.binary[hir.BinLt] = ord
	r.binary[hir.BinLe] = ord
	r.binary[hir.BinGt] = ord
	r.binary[hir.BinGe] = ord
}

func (r *Registry) buildShift() {
	b := r.in.Builtins()
	shl := []Overload{
		{Params: []types.TypeID{b.I32, b.U32}, Return: b.I32},
		{Params: []types.TypeID{b.U32, b.U32}, Return: b.U32},
		{Params: []types.TypeID{r.boundVector(b.I32), r.boundVector(b.U32)}, Return: r.boundVector(b.I32)},
		{Params: []types.TypeID{r.boundVector(b.U32), r.boundVector(b.U32)}, Return: r.boundVector(b.U32)},
	}
	r.binary[hir.BinShl] = shl
	r.binary[hir.BinShr] = shl
}

func (r *Registry) buildArithmetic() {
	r.binary[hir.BinAdd] = r.arithmeticComponentwise()
	r.binary[hir.BinSub] = r.arithmeticComponentwise()
	r.binary[hir.BinDiv] = r.arithmeticComponentwise()
	r.binary[hir.BinRem] = r.arithmeticComponentwise()
	r.binary[hir.BinMul] = r.buildMul()
}

// arithmeticComponentwise builds the scalar and same-size-vector overloads
// shared by +, -, /, %: componentwise over the four numeric scalars,
// size bound by ?N.
func (r *Registry) arithmeticComponentwise() []Overload {
	var list []Overload
	for _, s := range r.numericScalars() {
		list = append(list, Overload{Params: []types.TypeID{s, s}, Return: s})
		vs := r.boundVector(s)
		list = append(list, Overload{Params: []types.TypeID{vs, vs}, Return: vs})
	}
	return list
}

// buildMul adds, on top of the componentwise forms, the scalar-vector
// broadcast and the matrix-shape-changing forms WGSL's `*` supports.
func (r *Registry) buildMul() []Overload {
	list := r.arithmeticComponentwise()
	for _, s := range r.numericScalars() {
		vs := r.boundVector(s)
		list = append(list,
			Overload{Params: []types.TypeID{vs, s}, Return: vs},
			Overload{Params: []types.TypeID{s, vs}, Return: vs},
		)
	}

	b := r.in.Builtins()
	for _, comp := range []types.TypeID{b.F32, b.F16} {
		for cols := uint8(2); cols <= 4; cols++ {
			for rows := uint8(2); rows <= 4; rows++ {
				mat := r.in.Intern(types.FixedMatrix(cols, rows, comp))
				vecCols := r.in.Intern(types.FixedVector(cols, comp))
				vecRows := r.in.Intern(types.FixedVector(rows, comp))
				list = append(list,
					Overload{Params: []types.TypeID{mat, vecCols}, Return: vecRows},
					Overload{Params: []types.TypeID{vecRows, mat}, Return: vecCols},
					Overload{Params: []types.TypeID{mat, comp}, Return: mat},
					Overload{Params: []types.TypeID{comp, mat}, Return: mat},
				)
				for cols2 := uint8(2); cols2 <= 4; cols2++ {
					rhs := r.in.Intern(types.FixedMatrix(cols2, cols, comp))
					out := r.in.Intern(types.FixedMatrix(cols2, rows, comp))
					list = append(list, Overload{Params: []types.TypeID{mat, rhs}, Return: out})
				}
			}
		}
	}
	return list
}

func (r *Registry) buildUnary() {
	b := r.in.Builtins()

	var neg []Overload
	for _, s := range r.signedScalars() {
		neg = append(neg, Overload{Params: []types.TypeID{s}, Return: s})
		vs := r.boundVector(s)
		neg = append(neg, Overload{Params: []types.TypeID{vs}, Return: vs})
	}
	r.unary[hir.UnNeg] = neg

	r.unary[hir.UnNot] = []Overload{
		{Params: []types.TypeID{b.Bool}, Return: b.Bool},
		{Params: []types.TypeID{r.boundVector(b.Bool)}, Return: r.boundVector(b.Bool)},
	}

	var not []Overload
	for _, s := range r.integerScalars() {
		not = append(not, Overload{Params: []types.TypeID{s}, Return: s})
		vs := r.boundVector(s)
		not = append(not, Overload{Params: []types.TypeID{vs}, Return: vs})
	}
	r.unary[hir.UnBitNot] = not

	// UnAddrOf and UnDeref are not builtin-table operators: their operand
	// must be a Reference/Pointer respectively, checked directly by the
	// inference pass rather than through unification.
}
