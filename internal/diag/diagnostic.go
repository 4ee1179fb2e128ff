package diag

import "wgsla/internal/source"

// Note provides auxiliary, secondary context for a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit describes a textual change that can be applied to a source file.
type TextEdit struct {
	Span    source.Span
	NewText string
}

// FixApplicability communicates how safe it is to apply a fix automatically.
type FixApplicability uint8

const (
	FixAlwaysSafe FixApplicability = iota
	FixSafeWithHeuristics
	FixManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixAlwaysSafe:
		return "always-safe"
	case FixSafeWithHeuristics:
		return "safe-with-heuristics"
	case FixManualReview:
		return "manual-review"
	default:
		return "unknown"
	}
}

// FixKind categorizes the intent of a fix, mirroring common LSP quick-fix
// kinds so the IDE surface can pass it through unchanged.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactor
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactor:
		return "refactor"
	default:
		return "unknown"
	}
}

// Fix describes an actionable change that can repair a diagnostic, e.g.
// "insert a missing address space" or "insert parentheses".
type Fix struct {
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	Edits         []TextEdit
}

// Diagnostic is a single issue, optionally with related notes and fixes.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
