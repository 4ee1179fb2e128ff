package ide_test

import (
	"context"
	"strings"
	"testing"

	"wgsla/internal/config"
	"wgsla/internal/ide"
	"wgsla/internal/query"
	"wgsla/internal/source"
)

const workspaceFile = `
struct Light {
  pos: vec3<f32>,
  intensity: f32,
}

var<private> ambient: f32 = 0.1;

fn shade(light: Light) -> f32 {
  let boost = light.intensity;
  return boost + ambient;
}
`

func openWorkspace(t *testing.T) (*query.Database, source.FileID) {
	t.Helper()
	db := query.New(nil)
	return db, db.Files.Open("ws.wgsl", []byte(workspaceFile))
}

// offsetOf returns the byte offset of needle's occurrence-th appearance
// (0-based), pointing at its first byte.
func offsetOf(t *testing.T, needle string, occurrence int) uint32 {
	t.Helper()
	start := 0
	for {
		i := strings.Index(workspaceFile[start:], needle)
		if i < 0 {
			t.Fatalf("needle %q occurrence %d not found", needle, occurrence)
		}
		if occurrence == 0 {
			return uint32(start + i)
		}
		occurrence--
		start += i + len(needle)
	}
}

func TestHoverOnBindingShowsInferredType(t *testing.T) {
	db, fid := openWorkspace(t)
	off := offsetOf(t, "boost", 0)

	h, ok := ide.Hover(context.Background(), db, fid, off, config.HoverMarkdown)
	if !ok {
		t.Fatalf("no hover for the boost binding")
	}
	if !strings.Contains(h.Text, "boost") || !strings.Contains(h.Text, "f32") {
		t.Fatalf("hover text = %q, want the binding name and its f32 type", h.Text)
	}
}

func TestTypeAtFieldAccess(t *testing.T) {
	db, fid := openWorkspace(t)
	off := offsetOf(t, "light.intensity", 0) + uint32(len("light."))

	label, ok := ide.TypeAtLabel(context.Background(), db, fid, off)
	if !ok {
		t.Fatalf("no type at the field access")
	}
	if label != "f32" {
		t.Fatalf("type at field access = %q, want f32", label)
	}
}

func TestCompletionsIncludeItemsLocalsAndBuiltins(t *testing.T) {
	db, fid := openWorkspace(t)
	// Inside shade's body, after boost's declaration.
	off := offsetOf(t, "return boost", 0)

	items := ide.Completions(context.Background(), db, fid, off)
	want := map[string]bool{"shade": false, "Light": false, "ambient": false, "boost": false}
	for _, item := range items {
		if _, tracked := want[item.Label]; tracked {
			want[item.Label] = true
		}
	}
	for label, found := range want {
		if !found {
			t.Errorf("completion %q missing", label)
		}
	}

	foundBuiltin := false
	for _, item := range items {
		if item.Detail == "builtin" {
			foundBuiltin = true
			break
		}
	}
	if !foundBuiltin {
		t.Errorf("no builtin functions offered")
	}
}

func TestResolveAtGoesToDefinition(t *testing.T) {
	db, fid := openWorkspace(t)
	// The `ambient` use inside shade resolves to the global's declaration.
	useOff := offsetOf(t, "ambient", 1)
	declOff := offsetOf(t, "ambient", 0)

	loc, ok := ide.ResolveAt(context.Background(), db, fid, useOff)
	if !ok {
		t.Fatalf("ResolveAt found nothing for the ambient use")
	}
	if loc.File != fid {
		t.Fatalf("definition in file %d, want %d", loc.File, fid)
	}
	if !loc.Span.Contains(declOff) {
		t.Fatalf("definition span %v does not cover the declaration at %d", loc.Span, declOff)
	}
}

func TestInlayHintsOnlyForUnannotatedBindings(t *testing.T) {
	db, fid := openWorkspace(t)

	content := db.Files.Get(fid).Content
	hints := ide.InlayHints(context.Background(), db, fid, 0, uint32(len(content)), config.InlayFull)

	foundBoost := false
	for _, h := range hints {
		if strings.Contains(h.Label, "f32") {
			foundBoost = true
		}
	}
	if !foundBoost {
		t.Fatalf("no f32 hint for the unannotated boost binding, hints = %+v", hints)
	}
	if len(hints) != 1 {
		t.Fatalf("got %d hints, want only the one for boost: %+v", len(hints), hints)
	}

	if off := ide.InlayHints(context.Background(), db, fid, 0, uint32(len(content)), config.InlayOff); len(off) != 0 {
		t.Fatalf("InlayOff still produced %d hints", len(off))
	}
}

func TestFoldingRangesCoverBraceBlocks(t *testing.T) {
	db, fid := openWorkspace(t)

	ranges := ide.FoldingRanges(context.Background(), db, fid)
	if len(ranges) < 2 {
		t.Fatalf("got %d folding ranges, want at least the struct and the function body", len(ranges))
	}
}

func TestSignatureHelpInsideCall(t *testing.T) {
	db := query.New(nil)
	fid := db.Files.Open("sig.wgsl", []byte(`
fn mix2(a: f32, b: f32) -> f32 { return a + b; }
fn use_it() -> f32 { return mix2(1.0, 2.0); }
`))
	content := string(db.Files.Get(fid).Content)
	off := uint32(strings.Index(content, "2.0"))

	sig, ok := ide.SignatureHelp(context.Background(), db, fid, off)
	if !ok {
		t.Fatalf("no signature help inside the call")
	}
	if !strings.Contains(sig.Label, "mix2") {
		t.Fatalf("signature label = %q, want the callee name", sig.Label)
	}
	if len(sig.Params) != 2 {
		t.Fatalf("signature params = %v, want two", sig.Params)
	}
	if sig.ActiveParamOK && sig.ActiveParam != 1 {
		t.Fatalf("active param = %d, want 1 (the second argument)", sig.ActiveParam)
	}
}
