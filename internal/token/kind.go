// Package token defines the classified lexeme set produced by the lexer,
// including the WGSL keyword and predeclared-type-name tables.
package token

import "fmt"

// Kind categorizes a token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident

	// Literals
	IntLit    // decimal or hex integer, optional 'u' suffix
	FloatLit  // decimal or hex float, optional 'f'/'h' suffix, optional exponent
	BoolLit   // true / false
	StringLit // only consumed inside #import

	// Keywords
	KwFn
	KwStruct
	KwVar
	KwLet
	KwConst
	KwOverride
	KwAlias
	KwIf
	KwElse
	KwFor
	KwWhile
	KwLoop
	KwSwitch
	KwCase
	KwDefault
	KwReturn
	KwBreak
	KwContinue
	KwDiscard
	KwContinuing
	KwFallthrough
	KwTrue
	KwFalse

	// Predeclared type-name tokens. These are lexed as distinct kinds,
	// not identifiers, so the parser never has to guess.
	KwBool
	KwI32
	KwU32
	KwF32
	KwF16
	KwVec2
	KwVec3
	KwVec4
	KwMat
	KwPtr
	KwAtomic
	KwArray
	KwBindingArray
	KwTexture
	KwSampler
	KwSamplerComparison

	// Punctuation / operators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
	Colon
	Semicolon
	Arrow // ->
	At    // @

	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	Pipe
	Caret
	Tilde
	Bang
	Lt
	Gt
	Eq

	AmpAmp
	PipePipe
	EqEq
	BangEq
	LtEq
	GtEq

	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq

	PlusPlus
	MinusMinus

	// Legacy attribute brackets [[ ]]
	LBracket2
	RBracket2

	// #import directive introducer
	HashImport
	ColonColon

	// Trivia kinds, also emitted as tokens so the CST can tile every byte.
	Whitespace
	LineComment
	BlockComment
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "INVALID"
	case EOF:
		return "EOF"
	case Ident:
		return "ident"
	case IntLit:
		return "int-literal"
	case FloatLit:
		return "float-literal"
	case BoolLit:
		return "bool-literal"
	case StringLit:
		return "string-literal"
	default:
		if k.IsKeyword() {
			return keywordText(k)
		}
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// IsTrivia reports whether the token kind is whitespace or a comment.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, LineComment, BlockComment:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the kind is one of the reserved keywords
// (excluding predeclared type names, which are classified separately).
func (k Kind) IsKeyword() bool {
	return k >= KwFn && k <= KwFalse
}

// IsTypeKeyword reports whether the kind is one of the predeclared type
// tokens.
func (k Kind) IsTypeKeyword() bool {
	return k >= KwBool && k <= KwSamplerComparison
}
