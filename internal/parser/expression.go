package parser

import (
	"wgsla/internal/diag"
	"wgsla/internal/syntax"
	"wgsla/internal/token"
)

// ParseExpr is the "single expression" entry point; it parses a full
// expression at the lowest binding power.
func (p *Parser) ParseExpr() syntax.NodeID {
	return p.parseExprBp(0)
}

func (p *Parser) parseExprBp(minBp int) syntax.NodeID {
	checkpoint := p.b.Checkpoint()
	lhs := p.parsePrefix()
	for {
		op, lbp, rbp, ok := p.infixOp()
		if !ok || lbp < minBp {
			break
		}
		p.b.StartNodeAt(checkpoint, syntax.KindBinaryExpr)
		p.bumpOperatorToken(op)
		rhs := p.parseExprBp(rbp)
		inner := lhs
		lhs = p.b.FinishNode()
		p.binOps[lhs] = op
		p.checkMixedPrecedence(lhs, op, inner, rhs)
	}
	return lhs
}

// checkMixedPrecedence enforces the operator pairs that may not be
// combined without explicit grouping: `&&` with `||`, and the three
// bitwise operators with one another. A parenthesized operand is its own
// ParenExpr node, so grouping silences the check naturally.
func (p *Parser) checkMixedPrecedence(node syntax.NodeID, op BinOp, operands ...syntax.NodeID) {
	for _, operand := range operands {
		inner, ok := p.binOps[operand]
		if !ok || inner == op || !mixRequiresParens(op, inner) {
			continue
		}
		p.bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.ParenthesizationRequired,
			Message:  "mixed operators require parentheses",
			Primary:  p.b.Node(node).Span,
		})
		return
	}
}

func mixRequiresParens(a, b BinOp) bool {
	logical := func(o BinOp) bool { return o == OpOrOr || o == OpAndAnd }
	bitwise := func(o BinOp) bool { return o == OpBitOr || o == OpBitXor || o == OpBitAnd }
	return (logical(a) && logical(b)) || (bitwise(a) && bitwise(b))
}

// parsePrefix handles unary prefix operators, which bind tighter than any
// infix operator, then falls through to postfix parsing.
func (p *Parser) parsePrefix() syntax.NodeID {
	switch p.b.Peek(0) {
	case token.Minus, token.Bang, token.Tilde, token.Amp, token.Star:
		p.b.StartNode(syntax.KindUnaryExpr)
		p.b.Bump()
		p.parseExprBp(110) // tighter than multiplicative
		return p.b.FinishNode()
	default:
		return p.parsePostfix()
	}
}

// parsePostfix handles call/index/field, left-to-right, tightest binding.
func (p *Parser) parsePostfix() syntax.NodeID {
	checkpoint := p.b.Checkpoint()
	lhs := p.parseAtom()
	for {
		switch p.b.Peek(0) {
		case token.LParen:
			p.b.StartNodeAt(checkpoint, syntax.KindCallExpr)
			p.parseArgList()
			lhs = p.b.FinishNode()
		case token.LBracket:
			p.b.StartNodeAt(checkpoint, syntax.KindIndexExpr)
			p.b.Bump()
			p.ParseExpr()
			p.expect(token.RBracket)
			lhs = p.b.FinishNode()
		case token.Dot:
			p.b.StartNodeAt(checkpoint, syntax.KindFieldExpr)
			p.b.Bump()
			if !p.eat(token.Ident) {
				p.errorExpected([]token.Kind{token.Ident})
			}
			lhs = p.b.FinishNode()
		default:
			return lhs
		}
	}
}

// parseBitcast parses `bitcast<T>(expr)`. "bitcast" is not a
// reserved word; it is recognized contextually by name, the same way
// type keywords are recognized positionally, to avoid reserving it for
// ordinary identifiers elsewhere.
func (p *Parser) parseBitcast() syntax.NodeID {
	p.b.StartNode(syntax.KindBitcastExpr)
	p.b.Bump() // "bitcast"
	p.parseGenericArgs()
	p.expect(token.LParen)
	p.ParseExpr()
	p.expect(token.RParen)
	return p.b.FinishNode()
}

func (p *Parser) parseArgList() {
	p.b.StartNode(syntax.KindArgList)
	p.expect(token.LParen)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		p.ParseExpr()
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	p.b.FinishNode()
}

// parseAtom parses a literal, parenthesized expression, bitcast, or a
// callee atom: a bare name (resolved later), or a type-keyword-led
// constructor call (`vec3<f32>(...)`, `array<T,N>(...)`, or an
// inferred-component form `vec3(...)`/`array(...)` with no generics).
func (p *Parser) parseAtom() syntax.NodeID {
	switch p.b.Peek(0) {
	case token.IntLit, token.FloatLit, token.BoolLit:
		p.b.StartNode(syntax.KindLiteralExpr)
		p.b.Bump()
		return p.b.FinishNode()
	case token.LParen:
		p.b.StartNode(syntax.KindParenExpr)
		p.b.Bump()
		p.ParseExpr()
		p.expect(token.RParen)
		return p.b.FinishNode()
	case token.Ident:
		if p.b.Current().Text == "bitcast" && p.b.Peek(1) == token.Lt {
			return p.parseBitcast()
		}
		p.b.StartNode(syntax.KindPathExpr)
		p.b.Bump()
		return p.b.FinishNode()
	default:
		if p.b.Peek(0).IsTypeKeyword() {
			p.b.StartNode(syntax.KindPathExpr)
			p.ParseTypeRef()
			return p.b.FinishNode()
		}
		p.b.StartNode(syntax.KindErrorExpr)
		p.errorExpected(nil)
		if !p.atRecoveryPoint() {
			p.b.Bump()
		}
		return p.b.FinishNode()
	}
}
