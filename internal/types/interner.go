package types

import (
	"fmt"

	"fortio.org/safecast"

	"wgsla/internal/source"
)

// Builtins caches the TypeIDs of primitive scalars so callers never have
// to re-intern them.
type Builtins struct {
	Error TypeID
	Bool  TypeID
	I32   TypeID
	U32   TypeID
	F32   TypeID
	F16   TypeID
}

// StructField describes one declared field of a struct type.
type StructField struct {
	Name source.StringID
	Type TypeID
}

// StructInfo holds the field list and declaration site for a struct type.
type StructInfo struct {
	Name   source.StringID
	Fields []StructField
}

// Interner is the process-wide, hash-consed pool of semantic types.
// All writes are monotonic (intern-only, no eviction) and guarded by the
// same reader-writer discipline the query engine's suspension-point model
// expects: readers are the hot path, writers are short.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	structs  []StructInfo
}

// NewInterner creates an Interner seeded with the predeclared scalars.
func NewInterner() *Interner {
	in := &Interner{index: make(map[typeKey]TypeID, 256)}
	in.structs = append(in.structs, StructInfo{}) // reserve 0 for NoStructID
	in.types = append(in.types, Type{Kind: KindInvalid})  // reserve 0 for NoTypeID
	in.builtins.Error = in.internRaw(Type{Kind: KindError})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.I32 = in.Intern(Type{Kind: KindI32})
	in.builtins.U32 = in.Intern(Type{Kind: KindU32})
	in.builtins.F32 = in.Intern(Type{Kind: KindF32})
	in.builtins.F16 = in.Intern(Type{Kind: KindF16})
	return in
}

// Builtins returns the cached scalar TypeIDs.
func (in *Interner) Builtins() Builtins { return in.builtins }

// Error returns the sentinel Error type. Any operation on Error silently
// yields Error again rather than emitting a secondary diagnostic.
func (in *Interner) Error() TypeID { return in.builtins.Error }

// Intern ensures t has a stable TypeID, reusing an existing one when an
// equal descriptor was already interned.
func (in *Interner) Intern(t Type) TypeID {
	key := keyOf(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: type pool overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[keyOf(t)] = id
	return id
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics on an invalid TypeID; used where the caller already
// guarantees validity (a TypeID it minted itself).
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// RegisterStruct allocates a new struct type with the given name and
// fields, interned once per (name, declaration) pair — two distinct
// struct declarations with the same name are two distinct struct types.
func (in *Interner) RegisterStruct(name source.StringID, fields []StructField) TypeID {
	n, err := safecast.Conv[uint32](len(in.structs))
	if err != nil {
		panic(fmt.Errorf("types: struct table overflow: %w", err))
	}
	sid := StructID(n)
	in.structs = append(in.structs, StructInfo{Name: name, Fields: fields})
	return in.internRaw(Type{Kind: KindStruct, Struct: sid})
}

// SetStructFields fills in a struct's field list after registration. Used
// to break the recursive-lowering cycle when a struct field's type refers
// back to the struct through a pointer: RegisterStruct first reserves the
// TypeID with an empty field list, then field lowering proceeds, then this
// fills the real list in once lowering completes.
func (in *Interner) SetStructFields(id StructID, fields []StructField) {
	if id == NoStructID || int(id) >= len(in.structs) {
		return
	}
	in.structs[id].Fields = fields
}

// StructInfo returns the field list for a struct type.
func (in *Interner) StructInfo(id StructID) (StructInfo, bool) {
	if id == NoStructID || int(id) >= len(in.structs) {
		return StructInfo{}, false
	}
	return in.structs[id], true
}

// typeKey is the flattened, hashable form of Type used for the intern
// index. Every field of Type that participates in equality must appear
// here.
type typeKey struct {
	kind            Kind
	rowsSize        uint8
	rowsBound       bool
	colsSize        uint8
	colsBound       bool
	elem            TypeID
	arraySize       uint32
	arrayHasSize    bool
	arrayIsBinding  bool
	addressSpace    AddressSpace
	access          AccessMode
	texDim          TextureDim
	texArrayed      bool
	texMultisampled bool
	texKind         TextureKind
	texFormat       TexelFormat
	texFormatBound  bool
	samplerCmp      bool
	structID        StructID
	varID           BoundVarID
}

func keyOf(t Type) typeKey {
	return typeKey{
		kind:            t.Kind,
		rowsSize:        t.Rows.Size,
		rowsBound:       t.Rows.Bound,
		colsSize:        t.Cols.Size,
		colsBound:       t.Cols.Bound,
		elem:            t.Elem,
		arraySize:       t.ArraySize,
		arrayHasSize:    t.ArrayHasSize,
		arrayIsBinding:  t.ArrayIsBindingArray,
		addressSpace:    t.AddressSpace,
		access:          t.Access,
		texDim:          t.TexDim,
		texArrayed:      t.TexArrayed,
		texMultisampled: t.TexMultisampled,
		texKind:         t.TexKind,
		texFormat:       t.TexFormat,
		texFormatBound:  t.TexFormatBound,
		samplerCmp:      t.SamplerComparison,
		structID:        t.Struct,
		varID:           t.Var,
	}
}
