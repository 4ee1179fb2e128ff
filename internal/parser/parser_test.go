package parser

import (
	"strings"
	"testing"

	"wgsla/internal/lexer"
	"wgsla/internal/source"
)

const sampleShader = `
struct VertexOut {
  @builtin(position) pos: vec4<f32>,
  @location(0) uv: vec2<f32>,
}

@group(0) @binding(0) var tex: texture_2d<f32>;
@group(0) @binding(1) var samp: sampler;

const PI: f32 = 3.14159;

fn square(x: f32) -> f32 {
  return x * x;
}

@fragment
fn main(in: VertexOut) -> @location(0) vec4<f32> {
  var acc = vec4<f32>(0.0, 0.0, 0.0, 1.0);
  for (var i = 0; i < 4; i++) {
    acc = acc + textureSample(tex, samp, in.uv);
  }
  if acc.x > 1.0 {
    acc.x = 1.0;
  } else {
    discard;
  }
  return acc;
}
`

func TestParseFileRoundTripsLosslessly(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Open("shader.wgsl", []byte(sampleShader))
	f := fs.Get(id)
	tree, _ := Parse(f.ID, f.Content)
	got := tree.Text(tree.Root)
	if got != sampleShader {
		t.Fatalf("lossless round-trip mismatch:\nwant %q\ngot  %q", sampleShader, got)
	}
}

func TestParseFileWellFormedHasNoErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Open("shader.wgsl", []byte(sampleShader))
	f := fs.Get(id)
	_, bag := Parse(f.ID, f.Content)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics on well-formed input: %+v", bag.Items())
	}
}

func TestParseFileRecoversFromGarbage(t *testing.T) {
	src := `
fn broken( {
  let x = ;
}

fn ok() -> f32 {
  return 1.0;
}
`
	fs := source.NewFileSet()
	id := fs.Open("broken.wgsl", []byte(src))
	f := fs.Get(id)
	tree, bag := Parse(f.ID, f.Content)

	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics for malformed input")
	}
	if got := tree.Text(tree.Root); got != src {
		t.Fatalf("lossless round-trip mismatch even with errors:\nwant %q\ngot  %q", src, got)
	}
	if !strings.Contains(tree.Text(tree.Root), "fn ok()") {
		t.Fatalf("expected parser to resynchronize and still cover following text")
	}
}

func TestParseTypeRefGenericNesting(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Open("t.wgsl", []byte("array<vec2<f32>, 4>"))
	f := fs.Get(id)
	toks, _ := lexer.Tokenize(f.ID, f.Content)
	p := New(f.ID, toks)
	p.ParseTypeRef()
	if p.Bag().HasErrors() {
		t.Fatalf("unexpected errors parsing nested generics: %+v", p.Bag().Items())
	}
}

func TestShiftOperatorParsesFromAdjacentGtTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Open("t.wgsl", []byte("a >> b"))
	f := fs.Get(id)
	toks, _ := lexer.Tokenize(f.ID, f.Content)
	p := New(f.ID, toks)
	p.ParseExpr()
	if p.Bag().HasErrors() {
		t.Fatalf("unexpected errors parsing shift expression: %+v", p.Bag().Items())
	}
}

func TestParseStmtEntryPoint(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Open("t.wgsl", []byte("x += 1;"))
	f := fs.Get(id)
	toks, _ := lexer.Tokenize(f.ID, f.Content)
	p := New(f.ID, toks)
	p.ParseStmt()
	if p.Bag().HasErrors() {
		t.Fatalf("unexpected errors parsing compound-assign statement: %+v", p.Bag().Items())
	}
}
