package parser

import (
	"wgsla/internal/syntax"
	"wgsla/internal/token"
)

var itemStartSet = []token.Kind{
	token.At, token.LBracket2, token.KwFn, token.KwStruct, token.KwVar,
	token.KwConst, token.KwOverride, token.KwAlias, token.HashImport,
}

// ParseFile parses a whole translation unit: a sequence of top-level
// items, each optionally preceded by an attribute list, recovering at
// item boundaries on malformed input.
func (p *Parser) ParseFile() *syntax.Tree {
	p.b.StartNode(syntax.KindFile)
	p.pushRecovery(itemStartSet)
	for !p.at(token.EOF) {
		p.parseItem()
	}
	p.popRecovery()
	p.b.Bump() // the EOF token carries the file's trailing trivia
	p.b.FinishNode()
	return p.Tree()
}

// parseItem parses one optionally-attributed top-level item. The
// attribute list is parsed first but, via Checkpoint/StartNodeAt, ends up
// nested as the item node's first child rather than as the item's
// preceding sibling — the same retroactive-wrap trick used for binary and
// postfix expressions.
func (p *Parser) parseItem() {
	checkpoint := p.b.Checkpoint()
	if p.atAny(token.At, token.LBracket2) {
		p.ParseAttrList()
	}
	switch p.b.Peek(0) {
	case token.KwFn:
		p.parseFnItem(checkpoint)
	case token.KwStruct:
		p.parseStructItem(checkpoint)
	case token.KwVar:
		p.parseGlobalVarItem(checkpoint)
	case token.KwConst:
		p.parseConstItem(checkpoint)
	case token.KwOverride:
		p.parseOverrideItem(checkpoint)
	case token.KwAlias:
		p.parseAliasItem(checkpoint)
	case token.HashImport:
		p.parseImportItem(checkpoint)
	default:
		p.b.StartNodeAt(checkpoint, syntax.KindErrorItem)
		p.errorExpected(itemStartSet)
		if !p.atRecoveryPoint() {
			p.b.Bump()
		}
		p.b.FinishNode()
	}
}

// parseFnItem parses `fn name ( params ) [-> [attrs] type] block`.
func (p *Parser) parseFnItem(checkpoint syntax.Checkpoint) {
	p.b.StartNodeAt(checkpoint, syntax.KindFnItem)
	p.expect(token.KwFn)
	p.expect(token.Ident)
	p.parseParamList()
	if p.eat(token.Arrow) {
		if p.atAny(token.At, token.LBracket2) {
			p.ParseAttrList()
		}
		p.ParseTypeRef()
	}
	p.parseBlock()
	p.b.FinishNode()
}

func (p *Parser) parseParamList() {
	p.b.StartNode(syntax.KindParamList)
	p.expect(token.LParen)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		p.parseParam()
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	p.b.FinishNode()
}

func (p *Parser) parseParam() {
	p.b.StartNode(syntax.KindParam)
	if p.atAny(token.At, token.LBracket2) {
		p.ParseAttrList()
	}
	p.expect(token.Ident)
	p.expect(token.Colon)
	p.ParseTypeRef()
	p.b.FinishNode()
}

// parseStructItem parses `struct name { field : type , ... }`, with a
// trailing comma after the last field optional.
func (p *Parser) parseStructItem(checkpoint syntax.Checkpoint) {
	p.b.StartNodeAt(checkpoint, syntax.KindStructItem)
	p.expect(token.KwStruct)
	p.expect(token.Ident)
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.parseField()
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	p.b.FinishNode()
}

func (p *Parser) parseField() {
	p.b.StartNode(syntax.KindField)
	if p.atAny(token.At, token.LBracket2) {
		p.ParseAttrList()
	}
	p.expect(token.Ident)
	p.expect(token.Colon)
	p.ParseTypeRef()
	p.b.FinishNode()
}

// parseGlobalVarItem parses a module-scope `var [<addrspace[, accessmode]>]
// name [: type] [= expr] ;`. The grammar accepts a global without a type
// annotation; no later pass reports one as missing, and such a global's
// value type lowers to Error.
func (p *Parser) parseGlobalVarItem(checkpoint syntax.Checkpoint) {
	p.b.StartNodeAt(checkpoint, syntax.KindVarItem)
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
	p.b.FinishNode()
}

func (p *Parser) parseConstItem(checkpoint syntax.Checkpoint) {
	p.b.StartNodeAt(checkpoint, syntax.KindConstItem)
	p.expect(token.KwConst)
	p.expect(token.Ident)
	if p.eat(token.Colon) {
		p.ParseTypeRef()
	}
	p.expect(token.Eq)
	p.ParseExpr()
	p.expect(token.Semicolon)
	p.b.FinishNode()
}

func (p *Parser) parseOverrideItem(checkpoint syntax.Checkpoint) {
	p.b.StartNodeAt(checkpoint, syntax.KindOverrideItem)
	p.expect(token.KwOverride)
	p.expect(token.Ident)
	if p.eat(token.Colon) {
		p.ParseTypeRef()
	}
	if p.eat(token.Eq) {
		p.ParseExpr()
	}
	p.expect(token.Semicolon)
	p.b.FinishNode()
}

func (p *Parser) parseAliasItem(checkpoint syntax.Checkpoint) {
	p.b.StartNodeAt(checkpoint, syntax.KindAliasItem)
	p.expect(token.KwAlias)
	p.expect(token.Ident)
	p.expect(token.Eq)
	p.ParseTypeRef()
	p.expect(token.Semicolon)
	p.b.FinishNode()
}

// parseImportItem parses the unofficial `#import PATH` directive, where
// PATH is a string literal or a `::`-separated identifier sequence.
func (p *Parser) parseImportItem(checkpoint syntax.Checkpoint) {
	p.b.StartNodeAt(checkpoint, syntax.KindImportItem)
	p.expect(token.HashImport)
	switch {
	case p.at(token.StringLit):
		p.b.Bump()
	case p.at(token.Ident):
		p.b.Bump()
		for p.eat(token.ColonColon) {
			p.expect(token.Ident)
		}
	default:
		p.errorExpected([]token.Kind{token.StringLit, token.Ident})
	}
	p.eat(token.Semicolon)
	p.b.FinishNode()
}
