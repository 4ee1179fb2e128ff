package diagfmt

import "wgsla/internal/source"

// lineText returns line's text (1-based), or "" for an out-of-range line.
// FileSet exposes LineCol resolution but not line extraction, since only
// rendering needs it; diagfmt derives it from the same LineIdx offsets
// FileSet.Resolve consults.
func lineText(f *source.File, line uint32) string {
	if line == 0 {
		return ""
	}
	var start uint32
	if line > 1 {
		if int(line-2) >= len(f.LineIdx) {
			return ""
		}
		start = f.LineIdx[line-2] + 1
	}
	end := uint32(len(f.Content))
	if int(line-1) < len(f.LineIdx) {
		end = f.LineIdx[line-1]
	}
	if int(start) > len(f.Content) {
		return ""
	}
	if int(end) > len(f.Content) {
		end = uint32(len(f.Content))
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// totalLines counts f's lines: one more than its newline count, or zero
// for an empty file.
func totalLines(f *source.File) uint32 {
	if len(f.Content) == 0 {
		return 0
	}
	return uint32(len(f.LineIdx)) + 1
}
