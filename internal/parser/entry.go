package parser

import (
	"wgsla/internal/diag"
	"wgsla/internal/lexer"
	"wgsla/internal/source"
	"wgsla/internal/syntax"
)

// Parse lexes and parses one file's content in a single step, merging
// lexical and syntactic diagnostics into one bag. This is the entry point
// the query layer's `parse` query wraps: callers that already have a
// token stream (incremental re-lex, fuzzing) should use New directly.
func Parse(file source.FileID, content []byte) (*syntax.Tree, *diag.Bag) {
	toks, lexBag := lexer.Tokenize(file, content)
	p := New(file, toks)
	tree := p.ParseFile()
	bag := diag.NewBag()
	bag.Merge(lexBag)
	bag.Merge(p.Bag())
	return tree, bag
}
