// Package ide implements the external IDE surface — hover, completions,
// inlay hints, go-to-definition, signature help, and folding ranges — as
// plain functions over a query.Database. There is no transport layer here
// (no LSP framing, no JSON-RPC); cmd/wgsla's editor-facing commands call
// these directly and do their own wire encoding.
package ide

import (
	"context"

	"wgsla/internal/hir"
	"wgsla/internal/itemtree"
	"wgsla/internal/query"
	"wgsla/internal/source"
	"wgsla/internal/syntax"
)

// Location names a byte range within a loaded file, the return shape for
// every definition-site lookup in this package.
type Location struct {
	File source.FileID
	Span source.Span
}

// itemAtOffset returns the item whose own CST node contains offset, or nil
// if offset falls outside every item (e.g. leading/trailing file trivia).
func itemAtOffset(tree *syntax.Tree, items *itemtree.Tree, offset uint32) *itemtree.Item {
	var best *itemtree.Item
	var bestLen uint32
	for i := 1; i < len(items.Items); i++ {
		it := &items.Items[i]
		n := tree.Node(it.Node)
		if n == nil || !spanCoversOffset(n.Span, offset) {
			continue
		}
		if best == nil || n.Span.Len() < bestLen {
			best, bestLen = it, n.Span.Len()
		}
	}
	return best
}

// spanCoversOffset treats a span's end as inclusive for this purpose, so a
// cursor sitting immediately after the last character of a token (the
// common case right after typing an identifier) still resolves to it.
func spanCoversOffset(span source.Span, offset uint32) bool {
	return offset >= span.Start && offset <= span.End
}

// exprAtOffset returns the innermost expression in body containing offset.
// Body arenas carry no parent pointers, so this is a linear scan over the
// expression slice picking the shortest containing span — cheap at the
// size of a single function body, and avoids needing a second index
// alongside the arena purely to support IDE queries.
func exprAtOffset(body *hir.Body, offset uint32) (hir.ExprID, bool) {
	var best hir.ExprID
	var bestLen uint32
	found := false
	for i := 1; i < len(body.Exprs); i++ {
		span := body.Exprs[i].Span
		if !spanCoversOffset(span, offset) {
			continue
		}
		if !found || span.Len() < bestLen {
			best, bestLen, found = hir.ExprID(i), span.Len(), true
		}
	}
	return best, found
}

// bindingAtOffset returns the binding declared by a Variable/Const/Let
// statement whose own name span contains offset — the declaration site
// itself, as opposed to a later Path reference to it.
func bindingAtOffset(body *hir.Body, offset uint32) (hir.BindingID, bool) {
	for i := 1; i < len(body.Bindings); i++ {
		b := &body.Bindings[i]
		if spanCoversOffset(b.NameSpan, offset) {
			return hir.BindingID(i), true
		}
	}
	return 0, false
}

// definitionBody loads the item tree and the owning definition's body for
// offset in one call, the common prefix every query in this package needs.
func definitionBody(ctx context.Context, db *query.Database, file source.FileID, offset uint32) (
	items *itemtree.Tree, it *itemtree.Item, body *hir.Body, err error,
) {
	items, err = db.ItemTree(ctx, file)
	if err != nil || items == nil {
		return nil, nil, nil, err
	}
	tree, _, err := db.Parse(ctx, file)
	if err != nil {
		return nil, nil, nil, err
	}
	it = itemAtOffset(tree, items, offset)
	if it == nil {
		return items, nil, nil, nil
	}
	_, body, err = db.Body(ctx, it.ID)
	if err != nil {
		return items, it, nil, err
	}
	return items, it, body, nil
}
