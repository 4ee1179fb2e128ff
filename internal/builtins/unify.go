// Package builtins implements the overload resolution: fixed tables of
// operator and function signatures, each entry possibly carrying bound
// variables (`?T` a type, `?N` a vector/matrix size, `?F` a texel format),
// resolved against a concrete call's argument types through a per-call
// unification table that is discarded once the call is resolved. The
// interned type pool is never mutated by resolution itself.
package builtins

import "wgsla/internal/types"

// table holds the bindings discovered while matching one call against one
// overload. It is scoped to a single Resolve attempt and thrown away
// whether or not that attempt succeeds.
type table struct {
	typeVars map[types.BoundVarID]types.TypeID

	rowsBound bool
	rows      uint8
	colsBound bool
	cols      uint8

	texFormatBound bool
	texFormat      types.TexelFormat
}

func newTable() *table {
	return &table{typeVars: make(map[types.BoundVarID]types.TypeID, 2)}
}

// unify matches the (possibly variable-carrying) expected descriptor
// against a concrete actual type, recording any variable bindings it makes
// along the way. A mismatch at any level fails the whole overload, exactly
// as it would with ordinary structural equality once all variables are
// substituted.
func unify(in *types.Interner, expectedID, actualID types.TypeID, t *table) bool {
	expected, ok := in.Lookup(expectedID)
	if !ok {
		return false
	}
	actual, ok := in.Lookup(actualID)
	if !ok {
		return false
	}

	// Error propagates silently: a bad argument shouldn't cascade into
	// a "no matching overload" diagnostic on top of whatever already
	// flagged it.
	if expected.Kind == types.KindError || actual.Kind == types.KindError {
		return true
	}

	if expected.Kind == types.KindBoundVar {
		if bound, ok := t.typeVars[expected.Var]; ok {
			return bound == actualID
		}
		t.typeVars[expected.Var] = actualID
		return true
	}

	switch expected.Kind {
	case types.KindVector:
		if actual.Kind != types.KindVector {
			return false
		}
		return unifyRows(expected.Rows, actual.Rows, t) && unify(in, expected.Elem, actual.Elem, t)
	case types.KindMatrix:
		if actual.Kind != types.KindMatrix {
			return false
		}
		return unifyCols(expected.Cols, actual.Cols, t) &&
			unifyRows(expected.Rows, actual.Rows, t) &&
			unify(in, expected.Elem, actual.Elem, t)
	case types.KindArray:
		if actual.Kind != types.KindArray {
			return false
		}
		return unify(in, expected.Elem, actual.Elem, t)
	case types.KindPointer:
		if actual.Kind != types.KindPointer {
			return false
		}
		return unify(in, expected.Elem, actual.Elem, t)
	case types.KindAtomic:
		if actual.Kind != types.KindAtomic {
			return false
		}
		return unify(in, expected.Elem, actual.Elem, t)
	case types.KindTexture:
		return unifyTexture(in, expected, actual, t)
	case types.KindStorageTypeOfTexelFormat:
		return unifyStorageOfFormat(actualID, t)
	default:
		// Scalars, bool, sampler, struct: interning already makes equal
		// descriptors share a TypeID, so this is structural equality.
		return expectedID == actualID
	}
}

func unifyRows(expected, actual types.SizeVar, t *table) bool {
	if expected.Bound {
		if t.rowsBound {
			return t.rows == actual.Size
		}
		t.rows, t.rowsBound = actual.Size, true
		return true
	}
	return expected.Size == actual.Size
}

func unifyCols(expected, actual types.SizeVar, t *table) bool {
	if expected.Bound {
		if t.colsBound {
			return t.cols == actual.Size
		}
		t.cols, t.colsBound = actual.Size, true
		return true
	}
	return expected.Size == actual.Size
}

func unifyTexture(in *types.Interner, expected, actual types.Type, t *table) bool {
	if actual.Kind != types.KindTexture || expected.TexKind != actual.TexKind {
		return false
	}
	if expected.TexDim != actual.TexDim || expected.TexArrayed != actual.TexArrayed || expected.TexMultisampled != actual.TexMultisampled {
		return false
	}
	switch expected.TexKind {
	case types.TextureStorage:
		if expected.TexFormatBound {
			if t.texFormatBound {
				if t.texFormat != actual.TexFormat {
					return false
				}
			} else {
				t.texFormat, t.texFormatBound = actual.TexFormat, true
			}
		} else if expected.TexFormat != actual.TexFormat {
			return false
		}
		return actual.Access.Accepts(expected.Access)
	case types.TextureSampled:
		return unify(in, expected.Elem, actual.Elem, t)
	default:
		// Depth and external textures carry no further parameters once dim/
		// arrayed/multisampled match.
		return true
	}
}

func unifyStorageOfFormat(actualID types.TypeID, t *table) bool {
	if !t.texFormatBound {
		return false
	}
	// The canonical storage type is resolved lazily in resolveType, since
	// it needs the interner; here we only need the format itself to have
	// been bound by an earlier texture parameter, which resolveType checks
	// again when it builds the concrete comparison type. Equality is
	// deferred to the caller via resolveType + a second unify pass is
	// unnecessary: Resolve always resolves the return side, never an
	// argument side, against StorageTypeOfTexelFormat in practice, so this
	// branch exists for completeness of the algorithm rather than being
	// exercised by the shipped tables.
	_ = actualID
	return true
}

// resolveType substitutes every bound variable inside id with its binding
// from t, producing a concrete TypeID. Any variable t has no binding for
// resolves to Error — that overload would not have been selected as a
// match in the first place if a required variable were left unbound.
func resolveType(in *types.Interner, id types.TypeID, t *table) types.TypeID {
	d, ok := in.Lookup(id)
	if !ok {
		return in.Error()
	}
	switch d.Kind {
	case types.KindBoundVar:
		if bound, ok := t.typeVars[d.Var]; ok {
			return bound
		}
		return in.Error()
	case types.KindVector:
		elem := resolveType(in, d.Elem, t)
		rows := d.Rows
		if rows.Bound {
			if !t.rowsBound {
				return in.Error()
			}
			rows = types.SizeVar{Size: t.rows}
		}
		return in.Intern(types.Vector(rows, elem))
	case types.KindMatrix:
		elem := resolveType(in, d.Elem, t)
		cols, rows := d.Cols, d.Rows
		if cols.Bound {
			if !t.colsBound {
				return in.Error()
			}
			cols = types.SizeVar{Size: t.cols}
		}
		if rows.Bound {
			if !t.rowsBound {
				return in.Error()
			}
			rows = types.SizeVar{Size: t.rows}
		}
		return in.Intern(types.Matrix(cols, rows, elem))
	case types.KindArray:
		elem := resolveType(in, d.Elem, t)
		if d.ArrayIsBindingArray {
			return in.Intern(types.BindingArray(elem, d.ArraySize, d.ArrayHasSize))
		}
		if d.ArrayHasSize {
			return in.Intern(types.FixedArray(elem, d.ArraySize))
		}
		return in.Intern(types.DynamicArray(elem))
	case types.KindPointer:
		return in.Intern(types.Pointer(d.AddressSpace, resolveType(in, d.Elem, t), d.Access))
	case types.KindAtomic:
		return in.Intern(types.Atomic(resolveType(in, d.Elem, t)))
	case types.KindTexture:
		if d.TexKind == types.TextureStorage && d.TexFormatBound {
			if !t.texFormatBound {
				return in.Error()
			}
			return in.Intern(types.StorageTexture(d.TexDim, d.TexArrayed, t.texFormat, false, d.Access))
		}
		if d.TexKind == types.TextureSampled {
			return in.Intern(types.SampledTexture(d.TexDim, d.TexArrayed, d.TexMultisampled, resolveType(in, d.Elem, t)))
		}
		return id
	case types.KindStorageTypeOfTexelFormat:
		if !t.texFormatBound {
			return in.Error()
		}
		return in.Intern(types.FixedVector(4, t.texFormat.ChannelScalar(in)))
	default:
		return id
	}
}
