package ide

import (
	"context"
	"sort"

	"wgsla/internal/query"
	"wgsla/internal/source"
	"wgsla/internal/token"
)

// FoldingRange is one collapsible region, expressed as 1-based line
// numbers (matching how editors render folding gutters).
type FoldingRange struct {
	StartLine uint32
	EndLine   uint32
}

// FoldingRanges implements the folding surface by matching brace tokens
// across the whole file's token stream — the CST already tiles every byte,
// so a single linear scan of its tokens finds every `{...}` region without
// needing item-specific cases for function bodies vs. struct bodies vs.
// blocks.
func FoldingRanges(ctx context.Context, db *query.Database, file source.FileID) []FoldingRange {
	tree, _, err := db.Parse(ctx, file)
	if err != nil || tree == nil {
		return nil
	}
	toks := tree.Tokens(tree.Root)

	var stack []uint32 // start lines of open braces
	var ranges []FoldingRange
	for _, tok := range toks {
		switch tok.Kind {
		case token.LBrace:
			stack = append(stack, lineOf(db.Files, file, tok.Span.Start))
		case token.RBrace:
			if len(stack) == 0 {
				continue
			}
			startLine := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			endLine := lineOf(db.Files, file, tok.Span.Start)
			if startLine >= endLine {
				continue
			}
			ranges = append(ranges, FoldingRange{StartLine: startLine, EndLine: endLine})
		}
	}

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].StartLine == ranges[j].StartLine {
			return ranges[i].EndLine < ranges[j].EndLine
		}
		return ranges[i].StartLine < ranges[j].StartLine
	})
	return ranges
}

func lineOf(fs *source.FileSet, file source.FileID, offset uint32) uint32 {
	start, _ := fs.Resolve(source.Span{File: file, Start: offset, End: offset})
	return start.Line
}
