package diagfmt_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"wgsla/internal/diagfmt"
	"wgsla/internal/itemtree"
	"wgsla/internal/query"
)

func findFn(t *testing.T, db *query.Database, it *itemtree.Tree, name string) itemtree.ItemID {
	t.Helper()
	nameID := db.Strs.Intern(name)
	for _, item := range it.ByName(nameID) {
		if item.Kind == itemtree.ItemFn {
			return item.ID
		}
	}
	t.Fatalf("function %q not found", name)
	return itemtree.ItemID{}
}

// Explain emits exactly one line per arena expression, each line carrying
// a span and a rendered type, and calls additionally carrying the
// resolved overload.
func TestExplainOneLinePerExpression(t *testing.T) {
	db := query.New(nil)
	fid := db.Files.Open("explain.wgsl", []byte(`
fn add(a: i32, b: i32) -> i32 {
  return a + b;
}
`))
	items, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree: %v", err)
	}
	id := findFn(t, db, items, "add")

	_, body, err := db.Body(context.Background(), id)
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	result, err := db.Infer(context.Background(), id)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}

	var buf bytes.Buffer
	diagfmt.Explain(&buf, db.Files, db.Strs, db.Types, items, body, result)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	wantLines := len(body.Exprs) - 1 // arena slot 0 is the Missing sentinel
	if len(lines) != wantLines {
		t.Fatalf("got %d explain lines, want %d (one per arena expression)\noutput:\n%s", len(lines), wantLines, buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, ":") {
			t.Fatalf("explain line missing a span: %q", line)
		}
		if !strings.Contains(line, "i32") {
			t.Fatalf("explain line for an all-i32 body missing its type: %q", line)
		}
	}
}

// A call expression's explain line names the resolved user function,
// distinguishing it from a bare builtin/constructor line.
func TestExplainCallResolvesToFunctionName(t *testing.T) {
	db := query.New(nil)
	fid := db.Files.Open("explain_call.wgsl", []byte(`
fn helper(x: i32) -> i32 { return x; }
fn caller() -> i32 { return helper(1); }
`))
	items, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree: %v", err)
	}
	id := findFn(t, db, items, "caller")

	_, body, err := db.Body(context.Background(), id)
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	result, err := db.Infer(context.Background(), id)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}

	var buf bytes.Buffer
	diagfmt.Explain(&buf, db.Files, db.Strs, db.Types, items, body, result)

	if !strings.Contains(buf.String(), "fn helper") {
		t.Fatalf("expected explain output to name the resolved callee \"fn helper\", got:\n%s", buf.String())
	}
}
