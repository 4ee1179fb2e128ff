// Package infer implements the per-body inference pass: a single
// bottom-up walk over a lowered Body that assigns every expression and
// binding a type, resolves call callees and field accesses, and records
// diagnostics along the way. Inference never aborts a body partway
// through — every expression ends up with a type, Error where nothing
// better is known, so one bad subexpression never stops the rest of the
// body from being typed.
package infer

import (
	"wgsla/internal/diag"
	"wgsla/internal/hir"
	"wgsla/internal/itemtree"
	"wgsla/internal/types"
)

// CallResolutionKind distinguishes the two entries the call side table
// can hold for a Call expression.
type CallResolutionKind uint8

const (
	CallResolutionNone CallResolutionKind = iota
	// CallResolutionFunction names the user function a call resolved to.
	CallResolutionFunction
	// CallResolutionOtherTypeInitializer names the type a construction call
	// produced a value of — a struct, a type alias, or an explicit
	// vector/matrix/scalar/array constructor.
	CallResolutionOtherTypeInitializer
)

// CallResolution is one Call expression's side-table entry. Builtin
// function/operator calls get no entry: their overload is already fully
// described by the expression's own recorded type.
type CallResolution struct {
	Kind     CallResolutionKind
	Function itemtree.ItemID // valid when Kind == CallResolutionFunction
	Type     types.TypeID    // valid when Kind == CallResolutionOtherTypeInitializer
}

// FieldResolutionKind distinguishes a struct field access from a vector
// swizzle for a Field expression.
type FieldResolutionKind uint8

const (
	FieldResolutionNone FieldResolutionKind = iota
	FieldResolutionStructField
	FieldResolutionSwizzle
)

// FieldResolution records how a Field expression's name was interpreted,
// used by the IDE surface for hover/go-to-field and by assignment checking
// for the repeated-swizzle-component diagnostic (code 20).
type FieldResolution struct {
	Kind FieldResolutionKind

	// FieldIndex is the struct field's position, valid when Kind is
	// FieldResolutionStructField.
	FieldIndex int

	// Swizzle holds each requested component's index (0-3), valid when Kind
	// is FieldResolutionSwizzle.
	Swizzle []uint8

	// SwizzleSameComponent reports whether Swizzle repeats a component
	// (e.g. `.xx`) — such a swizzle denotes more than one storage location
	// at once and cannot be an assignment target.
	SwizzleSameComponent bool
}

// PathResolutionKind distinguishes what a bare-name Path expression
// refers to, for go-to-definition over the IDE surface.
type PathResolutionKind uint8

const (
	PathResolutionNone PathResolutionKind = iota
	// PathResolutionLocal names a binding declared within this same body
	// (a parameter or a let/const/var statement).
	PathResolutionLocal
	// PathResolutionItem names a global var/const/override declared at
	// item-tree level.
	PathResolutionItem
)

// PathResolution is one Path expression's side-table entry, the
// definition-location counterpart to CallResolution/FieldResolution.
type PathResolution struct {
	Kind  PathResolutionKind
	Local hir.BindingID   // valid when Kind == PathResolutionLocal
	Item  itemtree.ItemID // valid when Kind == PathResolutionItem
}

// Result is one body's complete inference output.
type Result struct {
	ExprTypes    map[hir.ExprID]types.TypeID
	BindingTypes map[hir.BindingID]types.TypeID

	CallResolutions  map[hir.ExprID]CallResolution
	FieldResolutions map[hir.ExprID]FieldResolution
	PathResolutions  map[hir.ExprID]PathResolution

	// BodyType is the function's return type (declared, or the first
	// observed `return` expression's type when none is declared) for a
	// function body, or the global's value type for a var/const/override
	// initializer body.
	BodyType types.TypeID

	Diagnostics *diag.Bag
}

func newResult() *Result {
	return &Result{
		ExprTypes:        make(map[hir.ExprID]types.TypeID, 16),
		BindingTypes:     make(map[hir.BindingID]types.TypeID, 4),
		CallResolutions:  make(map[hir.ExprID]CallResolution, 4),
		FieldResolutions: make(map[hir.ExprID]FieldResolution, 4),
		PathResolutions:  make(map[hir.ExprID]PathResolution, 8),
		Diagnostics:      diag.NewBag(),
	}
}

// TypeOf returns the inferred type of id, or types.NoTypeID if id was never
// visited (which should not happen for any id actually reachable from the
// body's root).
func (r *Result) TypeOf(id hir.ExprID) types.TypeID { return r.ExprTypes[id] }
