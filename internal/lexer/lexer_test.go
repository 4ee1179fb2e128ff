package lexer

import (
	"testing"

	"wgsla/internal/source"
	"wgsla/internal/token"
)

func tokenizeString(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, _ := Tokenize(source.FileID(1), []byte(src))
	return toks
}

func TestTokenizeKeywordsAndTypes(t *testing.T) {
	toks := tokenizeString(t, "fn f(p: ptr<function, f32>) -> vec3<f32> { return vec3<f32>(1.0, 2, 3u); }")
	if toks[0].Kind != token.KwFn {
		t.Fatalf("expected KwFn, got %v", toks[0].Kind)
	}
	var sawPtr, sawVec3, sawF32 bool
	for _, tk := range toks {
		switch tk.Kind {
		case token.KwPtr:
			sawPtr = true
		case token.KwVec3:
			sawVec3 = true
		case token.KwF32:
			sawF32 = true
		}
	}
	if !sawPtr || !sawVec3 || !sawF32 {
		t.Fatalf("missing expected type keywords: ptr=%v vec3=%v f32=%v", sawPtr, sawVec3, sawF32)
	}
}

func TestTokenizeIsTotalAndRoundTrips(t *testing.T) {
	src := "let x = 1 $ 2; // trailing\n"
	toks := tokenizeString(t, src)

	var rebuilt []byte
	for _, tk := range toks {
		for _, tr := range tk.Leading {
			rebuilt = append(rebuilt, tr.Text...)
		}
		rebuilt = append(rebuilt, tk.Text...)
	}
	if string(rebuilt) != src {
		t.Fatalf("round-trip mismatch:\n got: %q\nwant: %q", rebuilt, src)
	}

	var sawInvalid bool
	for _, tk := range toks {
		if tk.Kind == token.Invalid {
			sawInvalid = true
		}
	}
	if !sawInvalid {
		t.Fatalf("expected an Invalid token for '$'")
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("expected stream to end in EOF, got %v", toks[len(toks)-1].Kind)
	}
}

func TestShiftOperatorsLexAsSingleTokens(t *testing.T) {
	toks := tokenizeString(t, "a >> b")
	var kinds []token.Kind
	for _, tk := range toks {
		if tk.Kind != token.EOF {
			kinds = append(kinds, tk.Kind)
		}
	}
	want := []token.Kind{token.Ident, token.Gt, token.Gt, token.Ident}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("at %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestUnterminatedStringStillProducesToken(t *testing.T) {
	toks := tokenizeString(t, `#import "foo`)
	var sawString bool
	for _, tk := range toks {
		if tk.Kind == token.StringLit {
			sawString = true
		}
	}
	if !sawString {
		t.Fatalf("expected a StringLit token even when unterminated")
	}
}
