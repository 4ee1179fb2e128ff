package parser

import "wgsla/internal/token"

// BinOp identifies a binary operator independent of its token spelling,
// used once lowering reduces the CST's token-pair shift operators to a
// single logical operator.
type BinOp uint8

const (
	OpOrOr BinOp = iota
	OpAndAnd
	OpBitOr
	OpBitXor
	OpBitAnd
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpShl
	OpShr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
)

// bindingPower returns the (left, right) binding power for infix parsing
// at the current token, or ok=false if the current token is not an infix
// operator. Low to high: || ; && ; | ; ^ ; & ; ==/!= ; ordering ;
// shift ; additive ; multiplicative.
func (p *Parser) infixOp() (op BinOp, lbp, rbp int, ok bool) {
	switch p.b.Peek(0) {
	case token.PipePipe:
		return OpOrOr, 10, 11, true
	case token.AmpAmp:
		return OpAndAnd, 20, 21, true
	case token.Pipe:
		return OpBitOr, 30, 31, true
	case token.Caret:
		return OpBitXor, 40, 41, true
	case token.Amp:
		return OpBitAnd, 50, 51, true
	case token.EqEq:
		return OpEq, 60, 61, true
	case token.BangEq:
		return OpNe, 60, 61, true
	case token.Lt:
		if p.shiftAhead() == OpShl {
			return OpShl, 80, 81, true
		}
		return OpLt, 70, 71, true
	case token.LtEq:
		return OpLe, 70, 71, true
	case token.Gt:
		if p.shiftAhead() == OpShr {
			return OpShr, 80, 81, true
		}
		return OpGt, 70, 71, true
	case token.GtEq:
		return OpGe, 70, 71, true
	case token.Plus:
		return OpAdd, 90, 91, true
	case token.Minus:
		return OpSub, 90, 91, true
	case token.Star:
		return OpMul, 100, 101, true
	case token.Slash:
		return OpDiv, 100, 101, true
	case token.Percent:
		return OpRem, 100, 101, true
	default:
		return 0, 0, 0, false
	}
}

// shiftAhead reports whether the current Lt/Gt token is immediately
// followed (no trivia in between) by an identical token, which the
// lexer's "lex shift as two single tokens" contract uses to spell
// `<<`/`>>`.
func (p *Parser) shiftAhead() BinOp {
	cur := p.b.Peek(0)
	next := p.b.Peek(1)
	if cur != next {
		return 255
	}
	nextTok := p.b.CurrentAt(1)
	if len(nextTok.Leading) != 0 {
		return 255 // whitespace between them: two real comparisons, e.g. `a < < b` never occurs but stay conservative
	}
	switch cur {
	case token.Lt:
		return OpShl
	case token.Gt:
		return OpShr
	default:
		return 255
	}
}

// bumpOperatorToken consumes the tokens that spell op, merging a shift
// operator's two single-char tokens into one CST child.
func (p *Parser) bumpOperatorToken(op BinOp) {
	p.b.Bump()
	if op == OpShl || op == OpShr {
		p.b.Bump()
	}
}
