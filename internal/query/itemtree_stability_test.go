package query

import (
	"context"
	"testing"
)

// An edit limited to the interior of a function body must leave the
// file's item tree pointer-equal to the previous revision's item tree.
// Changing a returned literal's value (not its
// length or kind) touches nothing outside the function's own block, so
// the rebuilt tree must compare structurally equal to the prior one and
// ItemTree must hand back the exact same *itemtree.Tree pointer.
func TestItemTreePointerStableAcrossBodyInteriorEdit(t *testing.T) {
	db := New(nil)
	fid := db.Files.Open("stable.wgsl", []byte(`fn f() -> u32 { return 0; }`))

	before, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree: %v", err)
	}

	db.Files.Open("stable.wgsl", []byte(`fn f() -> u32 { return 7; }`))
	db.Invalidate(fid)

	after, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree after edit: %v", err)
	}

	if before != after {
		t.Fatalf("expected the same *itemtree.Tree pointer after a body-interior-only edit")
	}
}

// A signature-level edit (adding a parameter) is not interior to the
// body: the item tree must change, and ItemTree must hand back a
// distinct pointer with the updated signature reflected.
func TestItemTreePointerChangesAcrossSignatureEdit(t *testing.T) {
	db := New(nil)
	fid := db.Files.Open("changed.wgsl", []byte(`fn f() -> u32 { return 0; }`))

	before, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree: %v", err)
	}

	db.Files.Open("changed.wgsl", []byte(`fn f(x: u32) -> u32 { return 0; }`))
	db.Invalidate(fid)

	after, err := db.ItemTree(context.Background(), fid)
	if err != nil {
		t.Fatalf("ItemTree after edit: %v", err)
	}

	if before == after {
		t.Fatalf("expected a distinct *itemtree.Tree pointer after a signature-changing edit")
	}
	if len(after.Items) < 2 || len(after.Items[1].Params) != 1 {
		t.Fatalf("expected the rebuilt tree to reflect the added parameter, got %+v", after.Items)
	}
}
