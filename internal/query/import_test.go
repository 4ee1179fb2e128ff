package query

import (
	"context"
	"testing"

	"wgsla/internal/diag"
)

func diagnosticCodes(t *testing.T, db *Database, path string) []diag.Code {
	t.Helper()
	fid, ok := db.Files.Lookup(path)
	if !ok {
		t.Fatalf("file %q not open", path)
	}
	bag, err := db.Diagnostics(context.Background(), fid)
	if err != nil {
		t.Fatalf("Diagnostics: %v", err)
	}
	var codes []diag.Code
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestImportResolvesAgainstLoadedFiles(t *testing.T) {
	db := New(nil)
	db.Files.Open("lib/colors.wgsl", []byte(`const red: f32 = 1.0;`))
	db.Files.Open("lib/main.wgsl", []byte(`
#import "colors.wgsl"
fn f() -> f32 { return 1.0; }
`))

	for _, code := range diagnosticCodes(t, db, "lib/main.wgsl") {
		if code == diag.UnresolvedImport {
			t.Fatalf("a resolvable string import was diagnosed")
		}
	}
}

func TestImportPathFormResolves(t *testing.T) {
	db := New(nil)
	db.Files.Open("shaders/util/noise.wgsl", []byte(`const seed: u32 = 7u;`))
	db.Files.Open("shaders/main.wgsl", []byte("#import util::noise\n"))

	for _, code := range diagnosticCodes(t, db, "shaders/main.wgsl") {
		if code == diag.UnresolvedImport {
			t.Fatalf("a resolvable ::-path import was diagnosed")
		}
	}
}

func TestUnresolvedImportDiagnosed(t *testing.T) {
	db := New(nil)
	db.Files.Open("solo.wgsl", []byte(`#import "missing.wgsl"`+"\n"))

	found := false
	for _, code := range diagnosticCodes(t, db, "solo.wgsl") {
		if code == diag.UnresolvedImport {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing import target produced no unresolved-import diagnostic")
	}
}

func TestMixedLogicalOperatorsRequireParens(t *testing.T) {
	db := New(nil)
	db.Files.Open("mix.wgsl", []byte(`
fn f(a: bool, b: bool, c: bool) -> bool { return a && b || c; }
fn g(a: bool, b: bool, c: bool) -> bool { return (a && b) || c; }
`))

	codes := diagnosticCodes(t, db, "mix.wgsl")
	count := 0
	for _, code := range codes {
		if code == diag.ParenthesizationRequired {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("got %d parenthesization diagnostics, want exactly 1 (f only): %v", count, codes)
	}
}
