package diagfmt

import (
	"encoding/json"
	"io"

	"wgsla/internal/diag"
	"wgsla/internal/source"
)

// PositionJSON is a 1-based line/column position.
type PositionJSON struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

// RangeJSON is a half-open source range.
type RangeJSON struct {
	Start PositionJSON `json:"start"`
	End   PositionJSON `json:"end"`
}

// LocationJSON names a range within a file.
type LocationJSON struct {
	Path  string    `json:"path"`
	Range RangeJSON `json:"range"`
}

// NoteJSON is one diagnostic's related-location note.
type NoteJSON struct {
	Location LocationJSON `json:"location"`
	Message  string       `json:"message"`
}

// FixEditJSON is one edit belonging to a fix.
type FixEditJSON struct {
	Location LocationJSON `json:"location"`
	NewText  string       `json:"newText"`
}

// FixJSON is one diagnostic's suggested fix.
type FixJSON struct {
	Title         string        `json:"title"`
	Kind          string        `json:"kind"`
	Applicability string        `json:"applicability"`
	Edits         []FixEditJSON `json:"edits"`
}

// DiagnosticJSON is one diagnostic — range, severity, code, message,
// related ranges — rendered as one JSON object.
type DiagnosticJSON struct {
	Location LocationJSON `json:"location"`
	Severity string       `json:"severity"`
	Code     uint8        `json:"code"`
	CodeName string       `json:"codeName"`
	Message  string       `json:"message"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, mode PathMode, baseDir string) LocationJSON {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	return LocationJSON{
		Path: formatPath(f.Path, mode, baseDir),
		Range: RangeJSON{
			Start: PositionJSON{Line: start.Line, Column: start.Col},
			End:   PositionJSON{Line: end.Line, Column: end.Col},
		},
	}
}

func toDiagnosticJSON(d diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Location: makeLocation(d.Primary, fs, opts.PathMode, opts.BaseDir),
		Severity: d.Severity.String(),
		Code:     uint8(d.Code),
		CodeName: d.Code.String(),
		Message:  d.Message,
	}
	for _, n := range d.Notes {
		out.Notes = append(out.Notes, NoteJSON{
			Location: makeLocation(n.Span, fs, opts.PathMode, opts.BaseDir),
			Message:  n.Msg,
		})
	}
	for _, fx := range d.Fixes {
		fj := FixJSON{Title: fx.Title, Kind: fx.Kind.String(), Applicability: fx.Applicability.String()}
		for _, e := range fx.Edits {
			fj.Edits = append(fj.Edits, FixEditJSON{
				Location: makeLocation(e.Span, fs, opts.PathMode, opts.BaseDir),
				NewText:  e.NewText,
			})
		}
		out.Fixes = append(out.Fixes, fj)
	}
	return out
}

// ToJSON renders bag's items as DiagnosticJSON values, the slice JSON
// writes and that a multi-file caller (e.g. `wgsla check`'s directory
// mode) can key by path itself before encoding.
func ToJSON(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) []DiagnosticJSON {
	out := make([]DiagnosticJSON, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, toDiagnosticJSON(d, fs, opts))
	}
	return out
}

// JSON renders bag as an indented JSON array of DiagnosticJSON, the
// machine-readable counterpart to Pretty.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToJSON(bag, fs, opts))
}
