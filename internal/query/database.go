// Package query implements the revisioned, memoized, demand-driven query
// engine. A Database owns the session's process-wide interners and a memo
// table per query kind (parse, item tree, body, inference). Every
// exported method is one of the suspension points: it may block briefly
// on the session lock or on an upstream query already in flight on
// another worker, but never on an external resource, and it is cancelled
// at entry when ctx is already done.
//
// The query DAG is acyclic by construction (item tree depends only on
// file text; body on item tree plus file; inference on body, resolver,
// and the interner) so recomputation never deadlocks waiting on itself.
// The one user-reachable exception is the inference-to-inference edge for
// untyped global initializers, where `const a = b; const b = a;` would
// make the chain wait on its own in-flight entry; Infer carries a
// per-chain guard that breaks such cycles to Error with a cyclic-definition
// diagnostic instead.
package query

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"wgsla/internal/builtins"
	"wgsla/internal/diag"
	"wgsla/internal/hir"
	"wgsla/internal/infer"
	"wgsla/internal/itemtree"
	"wgsla/internal/parser"
	"wgsla/internal/source"
	"wgsla/internal/syntax"
	"wgsla/internal/types"
)

type parseEntry struct {
	fileRev source.Revision
	tree    *syntax.Tree
	bag     *diag.Bag
}

type itemTreeEntry struct {
	fileRev source.Revision
	tree    *itemtree.Tree
}

type bodyEntry struct {
	fileRev source.Revision
	item    *itemtree.Item
	body    *hir.Body
}

type inferEntry struct {
	fileRev source.Revision
	result  *infer.Result
}

// Database is one analyzer session. Session stamps every instance with a
// fresh UUID on construction; DiskCache keys are derived from file content
// and item index alone and do not include it.
type Database struct {
	Session uuid.UUID

	Files *source.FileSet
	Strs  *source.Interner
	Types *types.Interner
	Bi    *builtins.Registry

	Disk *DiskCache

	mu        sync.RWMutex
	parseMemo map[source.FileID]*parseEntry
	itemMemo  map[source.FileID]*itemTreeEntry
	bodyMemo  map[itemtree.ItemID]*bodyEntry
	inferMemo map[itemtree.ItemID]*inferEntry

	inflight singleflight.Group
}

// New creates an empty Database: a fresh type interner and builtin
// registry (one process-wide pool per session "global mutable
// state"), an empty FileSet, and empty memo tables. disk may be nil, in
// which case the summary cache is skipped entirely.
func New(disk *DiskCache) *Database {
	in := types.NewInterner()
	return &Database{
		Session:   uuid.New(),
		Files:     source.NewFileSet(),
		Strs:      source.NewInterner(),
		Types:     in,
		Bi:        builtins.NewRegistry(in),
		Disk:      disk,
		parseMemo: make(map[source.FileID]*parseEntry),
		itemMemo:  make(map[source.FileID]*itemTreeEntry),
		bodyMemo:  make(map[itemtree.ItemID]*bodyEntry),
		inferMemo: make(map[itemtree.ItemID]*inferEntry),
	}
}

// Parse implements parse(file_id): a lossless syntax tree plus parse
// diagnostics, memoized per the file's own content revision.
func (db *Database) Parse(ctx context.Context, file source.FileID) (*syntax.Tree, *diag.Bag, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	f := db.Files.Get(file)

	db.mu.RLock()
	if e, ok := db.parseMemo[file]; ok && e.fileRev == f.Rev {
		db.mu.RUnlock()
		return e.tree, e.bag, nil
	}
	db.mu.RUnlock()

	key := fmt.Sprintf("parse:%d@%d", file, f.Rev)
	v, err, _ := db.inflight.Do(key, func() (any, error) {
		tree, bag := parser.Parse(file, f.Content)
		entry := &parseEntry{fileRev: f.Rev, tree: tree, bag: bag}
		db.mu.Lock()
		db.parseMemo[file] = entry
		db.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return nil, nil, err
	}
	e := v.(*parseEntry)
	return e.tree, e.bag, nil
}

// ItemTree implements item_tree(file_id), built atop Parse's tree.
// When the rebuilt tree is StructurallyEqual to the file's previous item
// tree, the previous revision's *itemtree.Tree pointer is reused rather
// than replaced. That comparison includes spans and node IDs, so a
// body-interior edit keeps the pointer only when it leaves the body's byte
// length and CST node count unchanged; any other edit yields a new pointer.
func (db *Database) ItemTree(ctx context.Context, file source.FileID) (*itemtree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := db.Files.Get(file)

	db.mu.RLock()
	prev, hasPrev := db.itemMemo[file]
	db.mu.RUnlock()
	if hasPrev && prev.fileRev == f.Rev {
		return prev.tree, nil
	}

	tree, _, err := db.Parse(ctx, file)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("itemtree:%d@%d", file, f.Rev)
	v, err, _ := db.inflight.Do(key, func() (any, error) {
		built := itemtree.Build(tree, file, db.Strs)
		if hasPrev && prev.tree.StructurallyEqual(built) {
			built = prev.tree
		}
		entry := &itemTreeEntry{fileRev: f.Rev, tree: built}
		db.mu.Lock()
		db.itemMemo[file] = entry
		db.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*itemTreeEntry).tree, nil
}

// hasBody reports whether it is a definition kind body()/infer() apply to:
// functions always lower a body, globals only when they carry an
// initializer (a bare `var x: f32;` has nothing to type).
func hasBody(it *itemtree.Item) bool {
	switch it.Kind {
	case itemtree.ItemFn:
		return true
	case itemtree.ItemVar, itemtree.ItemConst, itemtree.ItemOverride:
		return it.Init.IsValid()
	default:
		return false
	}
}

// Body implements body(definition_id): the item's lowered HIR,
// memoized per the owning file's revision. Returns a nil body, nil error
// for an item kind body() does not apply to (struct/alias/import).
func (db *Database) Body(ctx context.Context, id itemtree.ItemID) (*itemtree.Item, *hir.Body, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	items, err := db.ItemTree(ctx, id.File)
	if err != nil {
		return nil, nil, err
	}
	it := items.Item(id)
	if it == nil {
		return nil, nil, fmt.Errorf("query: %v does not name an item in its file's current item tree", id)
	}
	if !hasBody(it) {
		return it, nil, nil
	}

	f := db.Files.Get(id.File)
	db.mu.RLock()
	if e, ok := db.bodyMemo[id]; ok && e.fileRev == f.Rev {
		db.mu.RUnlock()
		return it, e.body, nil
	}
	db.mu.RUnlock()

	tree, _, err := db.Parse(ctx, id.File)
	if err != nil {
		return nil, nil, err
	}

	key := fmt.Sprintf("body:%d:%d@%d", id.File, id.Index, f.Rev)
	v, err, _ := db.inflight.Do(key, func() (any, error) {
		var body *hir.Body
		switch it.Kind {
		case itemtree.ItemFn:
			body = hir.LowerFn(tree, db.Strs, it)
		default:
			body = hir.LowerGlobalInit(tree, db.Strs, it)
		}
		entry := &bodyEntry{fileRev: f.Rev, item: it, body: body}
		db.mu.Lock()
		db.bodyMemo[id] = entry
		db.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return it, v.(*bodyEntry).body, nil
}

// Infer implements infer(definition_id). A function body's reference
// to an untyped global const/override resolves through GlobalTypeLookup,
// which recurses back into Infer for that global's own item — the one
// place the query DAG's "inference depends on inference" edge (body A
// referencing global B's value type) materializes as a direct call
// rather than a precomputed batch order.
func (db *Database) Infer(ctx context.Context, id itemtree.ItemID) (*infer.Result, error) {
	return db.inferChained(ctx, id, nil)
}

// inferChained is Infer with the call chain's in-flight definitions
// threaded through — the same guard typeref's Lowerer keeps for alias
// chains, lifted to the cross-definition level. Untyped globals may
// reference each other freely (items are unordered, forward references
// are legal), so `const a = b; const b = a;` is syntactically ordinary
// input; without the guard the chain would re-enter its own singleflight
// key and wait on itself forever. resolving is nil on an outermost call
// and shared down the chain by the globals closure; a definition found
// already on the chain takes the Error type and the cycle is reported as
// one definition-level diagnostic where it was detected.
func (db *Database) inferChained(ctx context.Context, id itemtree.ItemID, resolving map[itemtree.ItemID]bool) (*infer.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := db.ItemTree(ctx, id.File)
	if err != nil {
		return nil, err
	}
	it, body, err := db.Body(ctx, id)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}

	f := db.Files.Get(id.File)
	db.mu.RLock()
	if e, ok := db.inferMemo[id]; ok && e.fileRev == f.Rev {
		db.mu.RUnlock()
		return e.result, nil
	}
	db.mu.RUnlock()

	tree, _, err := db.Parse(ctx, id.File)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("infer:%d:%d@%d", id.File, id.Index, f.Rev)
	v, err, _ := db.inflight.Do(key, func() (any, error) {
		if resolving == nil {
			resolving = make(map[itemtree.ItemID]bool, 4)
		}
		resolving[id] = true
		defer delete(resolving, id)

		sawCycle := false
		globals := func(gid itemtree.ItemID) (types.TypeID, bool) {
			if resolving[gid] {
				sawCycle = true
				return db.Types.Error(), true
			}
			res, gerr := db.inferChained(ctx, gid, resolving)
			if gerr != nil || res == nil {
				return types.NoTypeID, false
			}
			return res.BodyType, true
		}

		var result *infer.Result
		if it.Kind == itemtree.ItemFn {
			result = infer.InferFn(tree, items, db.Strs, db.Types, db.Bi, it, body, globals)
		} else {
			result = infer.InferGlobalInit(tree, items, db.Strs, db.Types, db.Bi, it, body, globals)
		}
		if sawCycle {
			result.Diagnostics.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.CyclicDefinition,
				Message:  fmt.Sprintf("initializer of %q depends on a definition that depends back on it", db.Strs.Lookup(it.Name)),
				Primary:  it.NameSpan,
			})
		}
		entry := &inferEntry{fileRev: f.Rev, result: result}
		db.mu.Lock()
		db.inferMemo[id] = entry
		db.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*inferEntry).result, nil
}

// Invalidate drops the file's parse memo and the body and inference memo
// entries of the file's items, called after Files.Open records a new
// revision for it. Those entries would also fail their fileRev comparison
// on next read; clearing them here releases them eagerly.
//
// The item-tree slot is deliberately NOT cleared here: ItemTree needs the
// previous entry still in place to structurally compare against the
// freshly rebuilt tree (the pointer reuse described on ItemTree) before
// deciding whether to replace it. ItemTree's own fileRev
// check already keeps it from ever returning stale content.
func (db *Database) Invalidate(file source.FileID) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.parseMemo, file)
	for id := range db.bodyMemo {
		if id.File == file {
			delete(db.bodyMemo, id)
		}
	}
	for id := range db.inferMemo {
		if id.File == file {
			delete(db.inferMemo, id)
		}
	}
}
