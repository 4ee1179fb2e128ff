package itemtree

import (
	"reflect"

	"wgsla/internal/source"
	"wgsla/internal/syntax"
	"wgsla/internal/types"
)

// Attr is one parsed attribute (`@name(args)` or `[[name(args)]]`), kept
// as raw syntax since attribute argument evaluation is a lowering concern.
type Attr struct {
	Name source.StringID
	Args []syntax.NodeID // argument expression nodes, in source order
	Node syntax.NodeID
}

// Param is one function parameter's declared name and type reference.
type Param struct {
	Name     source.StringID
	NameSpan source.Span
	Type     syntax.NodeID // KindTypeRef node
	Attrs    []Attr
}

// Field is one struct field's declared name and type reference.
type Field struct {
	Name     source.StringID
	NameSpan source.Span
	Type     syntax.NodeID
	Attrs    []Attr
}

// VarQualifier captures a global variable's `<address_space[, access_mode]>`
// qualifier, already resolved from identifier text to the enum.
// Recognition failures are recorded so inference can emit diagnostic 12.
type VarQualifier struct {
	Present          bool
	AddressSpace     types.AddressSpace
	AddressSpaceText source.StringID
	AddressSpaceOK   bool
	Access           types.AccessMode
	AccessText       source.StringID
	AccessExplicit   bool
	AccessOK         bool
	Node             syntax.NodeID
}

// Item is one top-level declaration summary. Only the fields relevant to
// Kind are populated.
type Item struct {
	ID       ItemID
	Kind     ItemKind
	Name     source.StringID
	NameSpan source.Span
	Node     syntax.NodeID // the item's own CST node, for span/back-mapping
	Attrs    []Attr

	// Fn
	Params     []Param
	ReturnType syntax.NodeID // 0 if none
	Body       syntax.NodeID // KindBlock

	// Struct
	Fields []Field

	// Var / Const / Override / Alias
	Type      syntax.NodeID // declared type reference, 0 if none/inferred
	Init      syntax.NodeID // initializer expression, 0 if none
	Qualifier VarQualifier  // Var only

	// Import
	ImportPath     string
	ImportIsPath   bool // true for `::`-separated path, false for string literal
}

// Tree is the per-file item summary produced by Build.
type Tree struct {
	File  source.FileID
	Items []Item // index 0 unused; ItemID.Index is 1-based
}

// Item returns the item for id, or nil if id does not belong to this tree.
func (t *Tree) Item(id ItemID) *Item {
	if id.File != t.File || !id.IsValid() || int(id.Index) >= len(t.Items) {
		return nil
	}
	return &t.Items[id.Index]
}

// ByName returns every item named name, in declaration order. Items are
// unordered within a file — forward references are legal — so
// resolution always consults the full slice rather than assuming one
// match.
func (t *Tree) ByName(name source.StringID) []*Item {
	var out []*Item
	for i := 1; i < len(t.Items); i++ {
		if t.Items[i].Name == name {
			out = append(out, &t.Items[i])
		}
	}
	return out
}

// StructurallyEqual reports whether t and other carry the same items in
// the same order: same kinds, names, spans, declared signatures, and
// syntax back-pointers. Spans and node IDs are part of the comparison, so
// a body-interior edit compares equal only when it keeps the body's byte
// length and its number of CST nodes (e.g. swapping one literal for another
// of the same length); any other body edit shifts the edited item's Body
// node ID and the spans and node IDs of later items, and compares unequal.
// An equal result lets the query layer keep serving the previous Tree
// pointer instead of a distinct-but-identical one.
func (t *Tree) StructurallyEqual(other *Tree) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.File != other.File {
		return false
	}
	return reflect.DeepEqual(t.Items, other.Items)
}
