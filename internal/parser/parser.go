// Package parser builds a lossless CST from a token stream. Parsing always
// terminates and produces a single root covering the whole input; invalid
// input becomes error nodes rather than aborting the parse.
package parser

import (
	"wgsla/internal/diag"
	"wgsla/internal/source"
	"wgsla/internal/syntax"
	"wgsla/internal/token"
)

// Parser drives a syntax.Builder over a token stream with recovery sets:
// each sub-grammar pushes the token kinds that are safe to resume at, and
// on unexpected input the parser emits an error, closes the current node,
// and skips forward to the nearest token in some active recovery set.
type Parser struct {
	b        *syntax.Builder
	bag      *diag.Bag
	file     source.FileID
	recovery [][]token.Kind

	// binOps remembers the operator of every finished BinaryExpr node so
	// the mixed-precedence check can see through its operands without
	// re-walking the tree. Parenthesized operands are ParenExpr nodes and
	// therefore absent.
	binOps map[syntax.NodeID]BinOp
}

// New creates a Parser over a token stream already produced by the lexer.
func New(file source.FileID, toks []token.Token) *Parser {
	return &Parser{
		b:      syntax.NewBuilder(file, toks),
		bag:    diag.NewBag(),
		file:   file,
		binOps: make(map[syntax.NodeID]BinOp),
	}
}

func (p *Parser) at(k token.Kind) bool  { return p.b.Peek(0) == k }
func (p *Parser) atAny(ks ...token.Kind) bool {
	for _, k := range ks {
		if p.at(k) {
			return true
		}
	}
	return false
}

// eat bumps and returns true if the current token matches k.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.b.Bump()
		return true
	}
	return false
}

// expect bumps k or emits a class-2001 "unexpected token" diagnostic and
// leaves the cursor in place (caller handles recovery).
func (p *Parser) expect(k token.Kind) bool {
	if p.eat(k) {
		return true
	}
	p.errorExpected([]token.Kind{k})
	return false
}

func (p *Parser) errorExpected(kinds []token.Kind) {
	cur := p.b.Current()
	p.b.SetExpected(kinds)
	p.bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.ParseError,
		Message:  "unexpected token",
		Primary:  cur.Span,
	})
}

// pushRecovery installs a new recovery set, active until popped.
func (p *Parser) pushRecovery(kinds []token.Kind) {
	p.recovery = append(p.recovery, kinds)
}

func (p *Parser) popRecovery() {
	p.recovery = p.recovery[:len(p.recovery)-1]
}

// atRecoveryPoint reports whether the current token is in any active
// recovery set (or is EOF, which always stops recovery).
func (p *Parser) atRecoveryPoint() bool {
	if p.at(token.EOF) {
		return true
	}
	for _, set := range p.recovery {
		for _, k := range set {
			if p.at(k) {
				return true
			}
		}
	}
	return false
}

// recoverTo wraps everything up to (not including) the next recovery
// point into an error node of the given kind, then returns. If the cursor
// is already at a recovery point, it emits a zero-width error node.
func (p *Parser) recoverTo(kind syntax.Kind) syntax.NodeID {
	p.b.StartNode(kind)
	for !p.atRecoveryPoint() {
		p.b.Bump()
	}
	return p.b.FinishNode()
}

// Bag returns the accumulated parse diagnostics.
func (p *Parser) Bag() *diag.Bag { return p.bag }

// Tree returns the built CST. Valid only after an entry point has run.
func (p *Parser) Tree() *syntax.Tree { return p.b.Finish() }
