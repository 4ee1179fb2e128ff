package token

import (
	"fmt"

	"wgsla/internal/source"
)

// TriviaKind distinguishes whitespace from line/block comments.
type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaLineComment
	TriviaBlockComment
)

// Trivia is a piece of non-semantic text (whitespace or a comment)
// attached as leading trivia to the token that follows it. Trivia is
// still a first-class part of the lossless tree: every byte it covers is
// reachable through the CST.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

func (k TriviaKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "whitespace"
	case TriviaLineComment:
		return "line-comment"
	case TriviaBlockComment:
		return "block-comment"
	default:
		return fmt.Sprintf("trivia-kind(%d)", uint8(k))
	}
}
