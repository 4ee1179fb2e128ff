package lexer

import "wgsla/internal/token"

// scanTrivia consumes any run of whitespace and comments preceding the
// next real token, returning it as leading trivia. An unterminated block
// comment still yields a Trivia covering what was read; the caller is
// responsible for reporting it if desired.
func (l *Lexer) scanTrivia() []token.Trivia {
	var out []token.Trivia
	for {
		start := l.cur.pos
		switch {
		case isSpace(l.cur.peek()):
			for isSpace(l.cur.peek()) {
				l.cur.bump()
			}
			out = append(out, l.trivia(token.TriviaWhitespace, start))
		case l.cur.peek() == '/' && l.cur.peekAt(1) == '/':
			for !l.cur.eof() && l.cur.peek() != '\n' {
				l.cur.bump()
			}
			out = append(out, l.trivia(token.TriviaLineComment, start))
		case l.cur.peek() == '/' && l.cur.peekAt(1) == '*':
			l.cur.bump()
			l.cur.bump()
			depth := 1
			for !l.cur.eof() && depth > 0 {
				if l.cur.peek() == '/' && l.cur.peekAt(1) == '*' {
					l.cur.bump()
					l.cur.bump()
					depth++
					continue
				}
				if l.cur.peek() == '*' && l.cur.peekAt(1) == '/' {
					l.cur.bump()
					l.cur.bump()
					depth--
					continue
				}
				l.cur.bump()
			}
			out = append(out, l.trivia(token.TriviaBlockComment, start))
		default:
			return out
		}
	}
}

func (l *Lexer) trivia(kind token.TriviaKind, start int) token.Trivia {
	return token.Trivia{
		Kind: kind,
		Span: l.span(start, l.cur.pos),
		Text: string(l.cur.src[start:l.cur.pos]),
	}
}
