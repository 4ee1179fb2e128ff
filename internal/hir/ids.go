// Package hir lowers a parsed item's concrete syntax into an arena-based
// body: a typed, name-independent representation that the resolver and
// inference passes operate over instead of walking the CST directly.
// Each arena index is a stable handle into its owning Body; it is
// meaningless outside that Body.
package hir

// StmtID indexes a Body's statement arena. Zero is the Missing sentinel,
// not reserved arena slot 0 as elsewhere — Missing is a real, interned
// statement kind, so StmtID 0 always resolves to it.
type StmtID uint32

// ExprID indexes a Body's expression arena. Same Missing-at-zero
// convention as StmtID.
type ExprID uint32

// BindingID indexes a Body's binding arena. Zero means "no binding".
type BindingID uint32

// NoBindingID marks the absence of a binding.
const NoBindingID BindingID = 0

// IsValid reports whether id names a real binding.
func (id BindingID) IsValid() bool { return id != NoBindingID }
