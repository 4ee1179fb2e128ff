package parser

import (
	"wgsla/internal/syntax"
	"wgsla/internal/token"
)

var stmtStartSet = []token.Kind{
	token.LBrace, token.KwLet, token.KwConst, token.KwVar, token.KwIf, token.KwWhile,
	token.KwFor, token.KwLoop, token.KwSwitch, token.KwReturn, token.KwBreak,
	token.KwContinue, token.KwDiscard, token.KwContinuing, token.KwFallthrough, token.Semicolon,
}

// ParseStmt is the "single statement" entry point.
func (p *Parser) ParseStmt() syntax.NodeID {
	p.pushRecovery(stmtStartSet)
	defer p.popRecovery()
	return p.parseStmtInner()
}

func (p *Parser) parseStmtInner() syntax.NodeID {
	switch p.b.Peek(0) {
	case token.LBrace:
		return p.parseBlock()
	case token.KwLet:
		return p.parseBinding(token.KwLet, syntax.KindLetStmt)
	case token.KwConst:
		return p.parseBinding(token.KwConst, syntax.KindConstStmt)
	case token.KwVar:
		return p.parseVarStmt()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwLoop:
		return p.parseLoop()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwReturn:
		p.b.StartNode(syntax.KindReturnStmt)
		p.b.Bump()
		if !p.atAny(token.Semicolon, token.RBrace, token.EOF) {
			p.ParseExpr()
		}
		p.expect(token.Semicolon)
		return p.b.FinishNode()
	case token.KwBreak:
		p.b.StartNode(syntax.KindBreakStmt)
		p.b.Bump()
		p.expect(token.Semicolon)
		return p.b.FinishNode()
	case token.KwContinue:
		p.b.StartNode(syntax.KindContinueStmt)
		p.b.Bump()
		p.expect(token.Semicolon)
		return p.b.FinishNode()
	case token.KwDiscard:
		p.b.StartNode(syntax.KindDiscardStmt)
		p.b.Bump()
		p.expect(token.Semicolon)
		return p.b.FinishNode()
	case token.KwContinuing:
		p.b.StartNode(syntax.KindContinuingStmt)
		p.b.Bump()
		p.parseBlock()
		return p.b.FinishNode()
	case token.KwFallthrough:
		p.b.StartNode(syntax.KindFallthroughStmt)
		p.b.Bump()
		p.expect(token.Semicolon)
		return p.b.FinishNode()
	case token.Semicolon:
		p.b.StartNode(syntax.KindExprStmt)
		p.b.Bump()
		return p.b.FinishNode()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseBlock() syntax.NodeID {
	p.b.StartNode(syntax.KindBlock)
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.b.Current().Span
		p.parseStmtInner()
		if p.b.Current().Span == before {
			break // stuck at an item-level recovery point: leave the block
		}
	}
	p.expect(token.RBrace)
	return p.b.FinishNode()
}

// parseBinding parses `let`/`const` name [: type] [= expr] ;
func (p *Parser) parseBinding(kw token.Kind, kind syntax.Kind) syntax.NodeID {
	p.b.StartNode(kind)
	p.expect(kw)
	p.expect(token.Ident)
	if p.eat(token.Colon) {
		p.ParseTypeRef()
	}
	if p.eat(token.Eq) {
		p.ParseExpr()
	}
	p.expect(token.Semicolon)
	return p.b.FinishNode()
}

// parseVarStmt parses `var [<addrspace[, accessmode]>] name [: type] [= expr] ;`
func (p *Parser) parseVarStmt() syntax.NodeID {
	p.b.StartNode(syntax.KindVarStmt)
	p.expect(token.KwVar)
	if p.at(token.Lt) {
		p.b.StartNode(syntax.KindVarQualifier)
		p.b.Bump()
		p.expect(token.Ident)
		if p.eat(token.Comma) {
			p.expect(token.Ident)
		}
		p.expect(token.Gt)
		p.b.FinishNode()
	}
	p.expect(token.Ident)
	if p.eat(token.Colon) {
		p.ParseTypeRef()
	}
	if p.eat(token.Eq) {
		p.ParseExpr()
	}
	p.expect(token.Semicolon)
	return p.b.FinishNode()
}

func (p *Parser) parseIf() syntax.NodeID {
	p.b.StartNode(syntax.KindIfStmt)
	p.expect(token.KwIf)
	p.ParseExpr()
	p.parseBlock()
	for p.at(token.KwElse) {
		p.b.Bump()
		if p.at(token.KwIf) {
			p.b.Bump()
			p.ParseExpr()
			p.parseBlock()
			continue
		}
		p.parseBlock()
		break
	}
	return p.b.FinishNode()
}

func (p *Parser) parseWhile() syntax.NodeID {
	p.b.StartNode(syntax.KindWhileStmt)
	p.expect(token.KwWhile)
	p.ParseExpr()
	p.parseBlock()
	return p.b.FinishNode()
}

// parseFor parses `for (init?; cond?; continuing?) { ... }`, accepting
// either `;` or `,` as the header's part separator.
func (p *Parser) parseFor() syntax.NodeID {
	p.b.StartNode(syntax.KindForStmt)
	p.expect(token.KwFor)
	p.expect(token.LParen)
	p.b.StartNode(syntax.KindForHeader)
	if !p.atAny(token.Semicolon, token.Comma) {
		p.parseStmtInner()
	} else {
		p.eatSep()
	}
	if !p.atAny(token.Semicolon, token.Comma) {
		p.ParseExpr()
	}
	p.eatSep()
	if !p.at(token.RParen) {
		p.parseExprOrAssignStmtNoSemi()
	}
	p.b.FinishNode()
	p.expect(token.RParen)
	p.parseBlock()
	return p.b.FinishNode()
}

func (p *Parser) eatSep() {
	if !p.eat(token.Semicolon) {
		p.eat(token.Comma)
	}
}

func (p *Parser) parseLoop() syntax.NodeID {
	p.b.StartNode(syntax.KindLoopStmt)
	p.expect(token.KwLoop)
	p.parseBlock()
	return p.b.FinishNode()
}

func (p *Parser) parseSwitch() syntax.NodeID {
	p.b.StartNode(syntax.KindSwitchStmt)
	p.expect(token.KwSwitch)
	p.ParseExpr()
	p.expect(token.LBrace)
	for p.atAny(token.KwCase, token.KwDefault) {
		if p.at(token.KwCase) {
			p.b.StartNode(syntax.KindSwitchCase)
			p.b.Bump()
			p.ParseExpr()
			for p.eat(token.Comma) {
				p.ParseExpr()
			}
			p.expect(token.Colon)
			p.parseBlock()
			p.b.FinishNode()
		} else {
			p.b.StartNode(syntax.KindSwitchDefault)
			p.b.Bump()
			p.expect(token.Colon)
			p.parseBlock()
			p.b.FinishNode()
		}
	}
	p.expect(token.RBrace)
	return p.b.FinishNode()
}

var compoundAssignOps = []token.Kind{
	token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq, token.PercentEq,
	token.AmpEq, token.PipeEq, token.CaretEq,
}

// parseExprOrAssignStmt parses an expression statement, a plain
// assignment, a compound assignment, or an increment/decrement,
// terminated by `;`.
func (p *Parser) parseExprOrAssignStmt() syntax.NodeID {
	id := p.parseExprOrAssignStmtNoSemi()
	p.expect(token.Semicolon)
	return id
}

func (p *Parser) parseExprOrAssignStmtNoSemi() syntax.NodeID {
	checkpoint := p.b.Checkpoint()
	p.ParseExpr()
	switch {
	case p.at(token.Eq):
		p.b.StartNodeAt(checkpoint, syntax.KindAssignStmt)
		p.b.Bump()
		p.ParseExpr()
		return p.b.FinishNode()
	case p.atAnyOf(compoundAssignOps):
		p.b.StartNodeAt(checkpoint, syntax.KindCompoundAssignStmt)
		p.b.Bump()
		p.ParseExpr()
		return p.b.FinishNode()
	case p.atAny(token.PlusPlus, token.MinusMinus):
		p.b.StartNodeAt(checkpoint, syntax.KindIncrDecrStmt)
		p.b.Bump()
		return p.b.FinishNode()
	default:
		p.b.StartNodeAt(checkpoint, syntax.KindExprStmt)
		return p.b.FinishNode()
	}
}

func (p *Parser) atAnyOf(kinds []token.Kind) bool {
	for _, k := range kinds {
		if p.at(k) {
			return true
		}
	}
	return false
}
