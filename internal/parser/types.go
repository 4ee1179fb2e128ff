package parser

import (
	"wgsla/internal/syntax"
	"wgsla/internal/token"
)

// ParseTypeRef is the "single type reference" entry point. It
// parses a predeclared type name with an optional generic argument list,
// or a path (struct name or alias) with an optional generic argument list
// for future generic-alias support.
func (p *Parser) ParseTypeRef() syntax.NodeID {
	p.b.StartNode(syntax.KindTypeRef)
	switch {
	case p.b.Peek(0).IsTypeKeyword():
		p.b.Bump()
		if p.at(token.Lt) {
			p.parseGenericArgs()
		}
	case p.at(token.Ident):
		p.b.Bump()
	default:
		p.errorExpected([]token.Kind{token.Ident})
	}
	return p.b.FinishNode()
}

// parseGenericArgs parses `< arg, arg, ... >`. Closing is driven purely by
// counting single `>` tokens: since the lexer never merges `>>`
// into one token, each nested generic list simply consumes one `Gt` off
// the front, and what's left over after the innermost list closes is
// still individual `Gt` tokens available to an enclosing list or to the
// expression parser's shift-operator recombination.
func (p *Parser) parseGenericArgs() {
	p.b.StartNode(syntax.KindTypeGenericArgs)
	p.expect(token.Lt)
	for !p.at(token.Gt) && !p.at(token.EOF) {
		if p.b.Peek(0).IsTypeKeyword() || p.at(token.Ident) {
			p.ParseTypeRef()
		} else {
			// address-space keyword, access-mode keyword, or a constant
			// expression (array size, texel format) — accepted as a
			// generic argument token-for-token and refined during lowering.
			// Parsed above the comparison and shift binding powers, so a
			// closing `>` is never taken as an operator.
			p.parseExprBp(90)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Gt)
	p.b.FinishNode()
}
