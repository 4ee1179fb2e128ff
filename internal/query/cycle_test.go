package query

import (
	"context"
	"testing"
	"time"

	"wgsla/internal/diag"
	"wgsla/internal/infer"
	"wgsla/internal/source"
)

// inferAllBounded runs Infer over every definition in the file on its own
// goroutine and fails the test if the pass does not come back promptly —
// a cyclic initializer chain re-entering its own in-flight singleflight
// key would otherwise hang forever, not fail.
func inferAllBounded(t *testing.T, db *Database, fid source.FileID) map[string]*infer.Result {
	t.Helper()
	items, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree: %v", err)
	}

	results := make(map[string]*infer.Result)
	done := make(chan error, 1)
	go func() {
		for i := 1; i < len(items.Items); i++ {
			it := &items.Items[i]
			if !hasBody(it) {
				continue
			}
			res, ierr := db.Infer(context.Background(), it.ID)
			if ierr != nil {
				done <- ierr
				return
			}
			results[db.Strs.Lookup(it.Name)] = res
		}
		done <- nil
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Infer: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("inference hung; cyclic global initializers are not being broken")
	}
	return results
}

func countCode(t *testing.T, db *Database, fid source.FileID, code diag.Code) int {
	t.Helper()
	bag, err := db.Diagnostics(context.Background(), fid)
	if err != nil {
		t.Fatalf("Diagnostics: %v", err)
	}
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func TestSelfReferencingGlobalBreaksToError(t *testing.T) {
	db := New(nil)
	fid := db.Files.Open("self.wgsl", []byte("const a = a;\n"))

	results := inferAllBounded(t, db, fid)
	res, ok := results["a"]
	if !ok {
		t.Fatalf("no inference result for a")
	}
	if res.BodyType != db.Types.Error() {
		t.Fatalf("a's value type should degrade to Error")
	}
	if got := countCode(t, db, fid, diag.CyclicDefinition); got != 1 {
		t.Fatalf("got %d cyclic-definition diagnostics, want exactly 1", got)
	}
}

func TestMutuallyReferencingGlobalsBreakToError(t *testing.T) {
	db := New(nil)
	fid := db.Files.Open("mutual.wgsl", []byte("const a = b;\nconst b = a;\n"))

	results := inferAllBounded(t, db, fid)
	for _, name := range []string{"a", "b"} {
		res, ok := results[name]
		if !ok {
			t.Fatalf("no inference result for %s", name)
		}
		if res.BodyType != db.Types.Error() {
			t.Fatalf("%s's value type should degrade to Error", name)
		}
	}
	// The cycle is reported once, on the definition where the chain
	// closed, not once per member.
	if got := countCode(t, db, fid, diag.CyclicDefinition); got != 1 {
		t.Fatalf("got %d cyclic-definition diagnostics, want exactly 1", got)
	}
}

func TestAcyclicGlobalChainStillResolves(t *testing.T) {
	db := New(nil)
	fid := db.Files.Open("chain.wgsl", []byte("const a = b;\nconst b = 2;\n"))

	results := inferAllBounded(t, db, fid)
	for _, name := range []string{"a", "b"} {
		res, ok := results[name]
		if !ok {
			t.Fatalf("no inference result for %s", name)
		}
		if res.BodyType == db.Types.Error() {
			t.Fatalf("%s should resolve through the chain, not degrade", name)
		}
	}
	if got := countCode(t, db, fid, diag.CyclicDefinition); got != 0 {
		t.Fatalf("acyclic chain produced %d cyclic-definition diagnostics", got)
	}
}

// An edit that removes the cycle must fully recover: the memoized degraded
// results are keyed by the old revision and drop out on the next read.
func TestCycleClearsAfterEdit(t *testing.T) {
	db := New(nil)
	fid := db.Files.Open("fixup.wgsl", []byte("const a = b;\nconst b = a;\n"))
	inferAllBounded(t, db, fid)

	db.Files.Open("fixup.wgsl", []byte("const a = b;\nconst b = 2;\n"))
	db.Invalidate(fid)

	results := inferAllBounded(t, db, fid)
	if res := results["a"]; res == nil || res.BodyType == db.Types.Error() {
		t.Fatalf("a should resolve after the cycle is edited away")
	}
	if got := countCode(t, db, fid, diag.CyclicDefinition); got != 0 {
		t.Fatalf("stale cyclic-definition diagnostic survived the edit")
	}
}
