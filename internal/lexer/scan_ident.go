package lexer

import "wgsla/internal/token"

// scanIdent consumes an identifier or keyword starting at the cursor,
// which must already be positioned on an identifier-start byte.
func (l *Lexer) scanIdent() token.Kind {
	start := l.cur.pos
	l.cur.bump()
	for isIdentCont(l.cur.peek()) {
		l.cur.bump()
	}
	text := string(l.cur.src[start:l.cur.pos])
	if kind, ok := token.LookupKeyword(text); ok {
		return kind
	}
	return token.Ident
}
