package parser

import (
	"wgsla/internal/syntax"
	"wgsla/internal/token"
)

// ParseAttrList parses zero or more attributes in either surface syntax:
// `@name(args...)` or the legacy `[[name(args), ...]]`.
func (p *Parser) ParseAttrList() syntax.NodeID {
	p.b.StartNode(syntax.KindAttrList)
	for p.atAny(token.At, token.LBracket2) {
		p.parseOneAttrGroup()
	}
	return p.b.FinishNode()
}

func (p *Parser) parseOneAttrGroup() {
	switch {
	case p.at(token.At):
		p.b.Bump()
		p.parseAttr()
	case p.at(token.LBracket2):
		p.b.Bump()
		p.parseAttr()
		for p.eat(token.Comma) {
			p.parseAttr()
		}
		p.expect(token.RBracket2)
	}
}

func (p *Parser) parseAttr() {
	p.b.StartNode(syntax.KindAttr)
	if !p.eat(token.Ident) {
		p.errorExpected([]token.Kind{token.Ident})
	}
	if p.eat(token.LParen) {
		p.b.StartNode(syntax.KindAttrArgs)
		for !p.at(token.RParen) && !p.at(token.EOF) {
			p.ParseExpr()
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RParen)
		p.b.FinishNode()
	}
	p.b.FinishNode()
}
