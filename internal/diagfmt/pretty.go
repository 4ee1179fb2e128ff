// Package diagfmt renders a diag.Bag for a human (Pretty, a colored
// terminal listing with source context) or a machine (JSON). The Fix
// model is deliberately small: diag.Fix carries only a title,
// applicability, and literal edits, with no preview or build context.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"wgsla/internal/diag"
	"wgsla/internal/source"
)

const tabWidth = 8

// visualWidthUpTo computes the on-screen column width of s up to byte
// column byteCol (1-based), expanding tabs and accounting for
// double-width Unicode runes, so the caret underline lines up under
// multi-byte/East-Asian-width source text.
func visualWidthUpTo(s string, byteCol uint32) int {
	if byteCol <= 1 {
		return 0
	}
	bytePos, visualPos := 0, 0
	for _, r := range s {
		if bytePos >= int(byteCol-1) {
			break
		}
		if r == '\t' {
			visualPos = (visualPos + tabWidth) / tabWidth * tabWidth
		} else {
			visualPos += runewidth.RuneWidth(r)
		}
		bytePos += len(string(r))
	}
	return visualPos
}

// Pretty renders bag (expected already Sort()ed) as a colored,
// human-readable listing: one `path:line:col: severity codeN(name): message`
// header per diagnostic, the offending source line(s) with a caret
// underline, then notes and fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow, color.Bold)
	infoColor := color.New(color.FgCyan, color.Bold)
	pathColor := color.New(color.FgWhite, color.Bold)
	codeColor := color.New(color.FgMagenta)
	lineNumColor := color.New(color.FgBlue)
	underlineColor := color.New(color.FgRed, color.Bold)
	fixColor := color.New(color.FgGreen, color.Bold)

	prevNoColor := color.NoColor
	defer func() { color.NoColor = prevNoColor }()
	color.NoColor = !opts.Color

	context := opts.Context
	if context <= 0 {
		context = 1
	}

	sevColor := func(s diag.Severity) *color.Color {
		switch s {
		case diag.SevError:
			return errorColor
		case diag.SevWarning:
			return warningColor
		default:
			return infoColor
		}
	}

	for idx, d := range bag.Items() {
		if idx > 0 {
			fmt.Fprintln(w)
		}

		f := fs.Get(d.Primary.File)
		start, end := fs.Resolve(d.Primary)
		path := formatPath(f.Path, opts.PathMode, opts.BaseDir)

		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			pathColor.Sprint(path), start.Line, start.Col,
			sevColor(d.Severity).Sprint(d.Severity.String()),
			codeColor.Sprintf("code%d(%s)", uint8(d.Code), d.Code.String()),
			d.Message,
		)

		total := totalLines(f)
		loLine := uint32(1)
		if start.Line > uint32(context) {
			loLine = start.Line - uint32(context)
		}
		hiLine := start.Line + uint32(context)
		if hiLine > total {
			hiLine = total
		}

		if loLine > 1 {
			fmt.Fprintln(w, "...")
		}

		width := len(fmt.Sprintf("%d", hiLine))
		if width < 3 {
			width = 3
		}

		for line := loLine; line <= hiLine; line++ {
			text := lineText(f, line)
			gutter := fmt.Sprintf("%*d | ", width, line)
			fmt.Fprintf(w, "%s%s\n", lineNumColor.Sprint(gutter), text)

			if line != start.Line {
				continue
			}
			endCol := end.Col
			if end.Line > start.Line {
				endCol = uint32(len(text)) + 1
			}
			vStart := visualWidthUpTo(text, start.Col)
			vEnd := visualWidthUpTo(text, endCol)

			var underline strings.Builder
			underline.WriteString(strings.Repeat(" ", width+3+vStart))
			span := vEnd - vStart
			if span <= 0 {
				underline.WriteByte('^')
			} else {
				underline.WriteString(strings.Repeat("~", span-1))
				underline.WriteByte('^')
			}
			fmt.Fprintln(w, underlineColor.Sprint(underline.String()))
		}

		if hiLine < total {
			fmt.Fprintln(w, "...")
		}

		if opts.ShowNotes {
			for _, note := range d.Notes {
				nf := fs.Get(note.Span.File)
				nStart, _ := fs.Resolve(note.Span)
				fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n",
					infoColor.Sprint("note"),
					pathColor.Sprint(formatPath(nf.Path, opts.PathMode, opts.BaseDir)),
					nStart.Line, nStart.Col, note.Msg,
				)
			}
		}

		if opts.ShowFixes {
			for i, fix := range d.Fixes {
				fmt.Fprintf(w, "  %s #%d: %s (%s, %s)\n",
					fixColor.Sprint("fix"), i+1, fix.Title, fix.Kind.String(), fix.Applicability.String())
				for _, edit := range fix.Edits {
					ef := fs.Get(edit.Span.File)
					eStart, eEnd := fs.Resolve(edit.Span)
					preview := edit.NewText
					if len(preview) > 32 {
						preview = preview[:29] + "..."
					}
					fmt.Fprintf(w, "      %s:%d:%d-%d:%d apply=%q\n",
						pathColor.Sprint(formatPath(ef.Path, opts.PathMode, opts.BaseDir)),
						eStart.Line, eStart.Col, eEnd.Line, eEnd.Col, preview,
					)
				}
			}
		}
	}
}
