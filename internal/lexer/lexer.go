package lexer

import (
	"wgsla/internal/diag"
	"wgsla/internal/source"
	"wgsla/internal/token"
)

// Lexer classifies one file's bytes into a token sequence. It is total:
// for any input it terminates and produces a stream ending in a single
// EOF token. Unknown bytes become Invalid tokens rather than aborting.
type Lexer struct {
	cur  *cursor
	file source.FileID
	bag  *diag.Bag
}

// New creates a Lexer over content, attributing spans to file.
func New(file source.FileID, content []byte) *Lexer {
	return &Lexer{cur: newCursor(content), file: file, bag: diag.NewBag()}
}

// Tokenize lexes the whole input and returns the token stream (ending in
// an EOF token whose span covers the input's final offset) plus any
// lexical diagnostics, which surface downstream as ParseError reports
// (see internal/diagfmt).
func Tokenize(file source.FileID, content []byte) ([]token.Token, *diag.Bag) {
	l := New(file, content)
	var toks []token.Token
	for {
		leading := l.scanTrivia()
		start := l.cur.pos
		if l.cur.eof() {
			toks = append(toks, token.Token{
				Kind:    token.EOF,
				Span:    l.span(start, l.cur.pos),
				Leading: leading,
			})
			break
		}
		kind := l.scanOne()
		toks = append(toks, token.Token{
			Kind:    kind,
			Span:    l.span(start, l.cur.pos),
			Text:    string(l.cur.src[start:l.cur.pos]),
			Leading: leading,
		})
	}
	return toks, l.bag
}

// scanOne consumes exactly one non-trivia token, advancing the cursor.
func (l *Lexer) scanOne() token.Kind {
	b := l.cur.peek()
	switch {
	case isIdentStart(b):
		return l.scanIdent()
	case isDigit(b):
		return l.scanNumber()
	case b == '.' && isDigit(l.cur.peekAt(1)):
		return l.scanNumber()
	case b == '"':
		kind, terminated := l.scanString()
		if !terminated {
			l.addLex(diagLexUnterminatedString, l.cur.pos)
		}
		return kind
	case b == '#':
		return l.scanImportDirective()
	default:
		start := l.cur.pos
		kind := l.scanOp()
		if kind == token.Invalid && l.cur.pos == start {
			l.cur.bump() // always make progress
			l.addLex(diagLexUnknownChar, start)
		}
		return kind
	}
}

// scanImportDirective recognizes the unofficial `#import` introducer.
// Any other `#`-prefixed text is an Invalid token.
func (l *Lexer) scanImportDirective() token.Kind {
	start := l.cur.pos
	l.cur.bump() // '#'
	for isIdentCont(l.cur.peek()) {
		l.cur.bump()
	}
	text := string(l.cur.src[start:l.cur.pos])
	if text == "#import" {
		return token.HashImport
	}
	return token.Invalid
}

func (l *Lexer) span(start, end int) source.Span {
	return source.Span{File: l.file, Start: u32(start), End: u32(end)}
}

func u32(n int) uint32 {
	if n < 0 {
		return 0
	}
	return uint32(n)
}

const (
	diagLexUnknownChar        = "unrecognized byte in source"
	diagLexUnterminatedString = "unterminated string literal"
)

func (l *Lexer) addLex(message string, pos int) {
	l.bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.ParseError,
		Message:  message,
		Primary:  l.span(pos, pos+1),
	})
}
