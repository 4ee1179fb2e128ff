package builtins

import (
	"sort"

	"wgsla/internal/hir"
	"wgsla/internal/types"
)

// Overload is one entry in an operator's or function's signature list.
// Params and Return may reference bound-variable placeholders (`?T`, `?N`,
// `?F`) interned like any other type; Resolve substitutes them per call.
type Overload struct {
	Params []types.TypeID
	Return types.TypeID

	// IsConversion marks a single-argument overload whose argument is not
	// itself the target type — used to distinguish a constructor call from
	// a same-shape conversion for diagnostics.
	IsConversion bool
}

// Registry holds every operator and function overload table, built once
// against a single Interner instance (bound variables are scoped per call,
// but the concrete scalar/vector TypeIDs the tables reference are scoped to
// this interner, so a Registry is not shareable across interners).
type Registry struct {
	in     *types.Interner
	binary map[hir.BinOp][]Overload
	unary  map[hir.UnaryOp][]Overload
	funcs  map[string][]Overload
}

// NewRegistry builds the full builtin overload catalog against in.
func NewRegistry(in *types.Interner) *Registry {
	r := &Registry{
		in:     in,
		binary: make(map[hir.BinOp][]Overload, 16),
		unary:  make(map[hir.UnaryOp][]Overload, 4),
		funcs:  make(map[string][]Overload, 32),
	}
	r.buildBinary()
	r.buildUnary()
	r.buildFunctions()
	r.buildVectorConstructors()
	r.buildMatrixConstructors()
	r.buildScalarConversions()
	return r
}

// Binary returns the overload list for a binary operator, empty if op is
// unknown to this table (it never is, for any BinOp the parser produces).
func (r *Registry) Binary(op hir.BinOp) []Overload { return r.binary[op] }

// Unary returns the overload list for a unary operator.
func (r *Registry) Unary(op hir.UnaryOp) []Overload { return r.unary[op] }

// Function returns the overload list for a builtin function name, and
// whether that name is a recognized builtin at all (vs. an unresolved
// identifier the caller should diagnose separately).
func (r *Registry) Function(name string) ([]Overload, bool) {
	ov, ok := r.funcs[name]
	return ov, ok
}

// VectorConstructors returns the overload list for `vecN(...)` construction
// with an explicit component type, size 2/3/4.
func (r *Registry) VectorConstructors(size uint8) []Overload {
	return r.funcs[vectorCtorName(size)]
}

// MatrixConstructors returns the overload list for `matCxR(...)`.
func (r *Registry) MatrixConstructors(cols, rows uint8) []Overload {
	return r.funcs[matrixCtorName(cols, rows)]
}

// FunctionNames returns every name the function table answers to — plain
// builtin functions, vector/matrix constructors, and scalar conversions
// alike — sorted, for the IDE surface's completion list.
func (r *Registry) FunctionNames() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScalarConversion returns the single-argument conversion overloads for
// a scalar target kind ("i32", "u32", "f32", "f16", "bool").
func (r *Registry) ScalarConversion(name string) []Overload {
	return r.funcs[name]
}

// Resolve performs the overload resolution: the first overload (in
// declaration order) whose arity and unification both succeed wins. There
// is no ambiguity-detection pass; the tables are built so at most one
// overload ever matches a given concrete argument list, matching how WGSL's
// own builtin overloads are non-overlapping.
func (r *Registry) Resolve(overloads []Overload, args []types.TypeID) (result types.TypeID, index int, ok bool) {
	for i, ov := range overloads {
		if len(ov.Params) != len(args) {
			continue
		}
		t := newTable()
		matched := true
		for pi, p := range ov.Params {
			if !unify(r.in, p, args[pi], t) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		return resolveType(r.in, ov.Return, t), i, true
	}
	return r.in.Error(), -1, false
}

func vectorCtorName(size uint8) string {
	switch size {
	case 2:
		return "vec2"
	case 3:
		return "vec3"
	case 4:
		return "vec4"
	default:
		return ""
	}
}

func matrixCtorName(cols, rows uint8) string {
	return "mat" + digit(cols) + "x" + digit(rows)
}

func digit(n uint8) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return "?"
}
