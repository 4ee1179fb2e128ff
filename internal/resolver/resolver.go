// Package resolver implements the lexical scope model: for any
// expression position inside a body, a chain of local scopes layered over
// the file's item tree maps a name to a value, type, or callable binding.
// Locals shadow items; items themselves are unordered within a file, so
// forward references are legal.
package resolver

import (
	"wgsla/internal/hir"
	"wgsla/internal/itemtree"
	"wgsla/internal/source"
)

// ValueKind tags what resolve_value found.
type ValueKind uint8

const (
	ValueNone ValueKind = iota
	ValueLocal
	ValueGlobalVar
	ValueGlobalConst
	ValueOverride
)

// ValueBinding is the result of resolve_value(name).
type ValueBinding struct {
	Kind  ValueKind
	Local hir.BindingID
	Item  itemtree.ItemID
}

// IsValid reports whether a binding was found.
func (v ValueBinding) IsValid() bool { return v.Kind != ValueNone }

// TypeKind tags what resolve_type found.
type TypeKind uint8

const (
	TypeNone TypeKind = iota
	TypeStruct
	TypeAlias
)

// TypeBinding is the result of resolve_type(name).
type TypeBinding struct {
	Kind TypeKind
	Item itemtree.ItemID
}

// IsValid reports whether a binding was found.
func (t TypeBinding) IsValid() bool { return t.Kind != TypeNone }

// CallableKind tags what resolve_callable found.
type CallableKind uint8

const (
	CallableNone CallableKind = iota
	CallableStruct
	CallableAlias
	CallableFunction
)

// CallableBinding is the result of resolve_callable(name).
type CallableBinding struct {
	Kind CallableKind
	Item itemtree.ItemID
}

// IsValid reports whether a binding was found.
func (c CallableBinding) IsValid() bool { return c.Kind != CallableNone }

// Scope is one lexical frame: a map of locally-declared names to the
// binding arena slot that holds them, chained to its enclosing scope.
type Scope struct {
	parent *Scope
	names  map[source.StringID]hir.BindingID
}

// Resolver is built on demand over one body's item tree plus the caller-
// driven scope chain: the inference pass pushes/pops scopes and
// declares locals as it walks statements in source order, so a name is
// visible only from its declaration point onward, matching real block
// scoping rather than whole-block hoisting.
type Resolver struct {
	items *itemtree.Tree
	strs  *source.Interner
	top   *Scope
}

// New creates a Resolver over a file's item tree with an empty outermost
// scope (typically populated with a function's parameters immediately).
func New(items *itemtree.Tree, strs *source.Interner) *Resolver {
	return &Resolver{items: items, strs: strs, top: &Scope{names: make(map[source.StringID]hir.BindingID, 4)}}
}

// Push opens a new nested scope (entering a compound statement / block).
func (r *Resolver) Push() {
	r.top = &Scope{parent: r.top, names: make(map[source.StringID]hir.BindingID, 4)}
}

// Pop closes the innermost scope (leaving a compound statement / block).
// Popping the outermost scope is a no-op.
func (r *Resolver) Pop() {
	if r.top.parent != nil {
		r.top = r.top.parent
	}
}

// Declare introduces name into the current innermost scope, bound to the
// given binding arena slot. A re-declaration in the same scope shadows
// the earlier one, matching ordinary block-scoped shadowing.
func (r *Resolver) Declare(name source.StringID, b hir.BindingID) {
	if !name.IsValid() {
		return
	}
	r.top.names[name] = b
}

// ResolveValue implements resolve_value(name): walk the scope chain
// innermost-first, then fall back to the item tree for globals.
func (r *Resolver) ResolveValue(name source.StringID) ValueBinding {
	if !name.IsValid() {
		return ValueBinding{}
	}
	for s := r.top; s != nil; s = s.parent {
		if b, ok := s.names[name]; ok {
			return ValueBinding{Kind: ValueLocal, Local: b}
		}
	}
	for _, it := range r.items.ByName(name) {
		switch it.Kind {
		case itemtree.ItemVar:
			return ValueBinding{Kind: ValueGlobalVar, Item: it.ID}
		case itemtree.ItemConst:
			return ValueBinding{Kind: ValueGlobalConst, Item: it.ID}
		case itemtree.ItemOverride:
			return ValueBinding{Kind: ValueOverride, Item: it.ID}
		}
	}
	return ValueBinding{}
}

// ResolveType implements resolve_type(name): items only, no local scope —
// WGSL has no local type declarations.
func (r *Resolver) ResolveType(name source.StringID) TypeBinding {
	if !name.IsValid() {
		return TypeBinding{}
	}
	for _, it := range r.items.ByName(name) {
		switch it.Kind {
		case itemtree.ItemStruct:
			return TypeBinding{Kind: TypeStruct, Item: it.ID}
		case itemtree.ItemAlias:
			return TypeBinding{Kind: TypeAlias, Item: it.ID}
		}
	}
	return TypeBinding{}
}

// ResolveCallable implements resolve_callable(name): struct constructors,
// alias constructors, and user functions; absent means inference falls
// back to the builtin table.
func (r *Resolver) ResolveCallable(name source.StringID) CallableBinding {
	if !name.IsValid() {
		return CallableBinding{}
	}
	for _, it := range r.items.ByName(name) {
		switch it.Kind {
		case itemtree.ItemStruct:
			return CallableBinding{Kind: CallableStruct, Item: it.ID}
		case itemtree.ItemAlias:
			return CallableBinding{Kind: CallableAlias, Item: it.ID}
		case itemtree.ItemFn:
			return CallableBinding{Kind: CallableFunction, Item: it.ID}
		}
	}
	return CallableBinding{}
}
