package ide

import (
	"context"
	"sort"

	"wgsla/internal/hir"
	"wgsla/internal/itemtree"
	"wgsla/internal/query"
	"wgsla/internal/source"
)

// CompletionKind classifies a completion entry for client-side icon/sort
// grouping (function, type, variable, keyword).
type CompletionKind uint8

const (
	CompletionVariable CompletionKind = iota
	CompletionFunction
	CompletionType
	CompletionKeyword
)

// CompletionItem is one completion candidate.
type CompletionItem struct {
	Label  string
	Kind   CompletionKind
	Detail string
}

// Completions implements the completion surface at offset: every item
// name visible in the file, every local binding declared before offset in
// the enclosing body, and the builtin function/constructor table.
func Completions(ctx context.Context, db *query.Database, file source.FileID, offset uint32) []CompletionItem {
	items, err := db.ItemTree(ctx, file)
	if err != nil || items == nil {
		return nil
	}

	seen := make(map[string]struct{}, 32)
	var out []CompletionItem
	add := func(label string, kind CompletionKind, detail string) {
		if label == "" {
			return
		}
		if _, ok := seen[label]; ok {
			return
		}
		seen[label] = struct{}{}
		out = append(out, CompletionItem{Label: label, Kind: kind, Detail: detail})
	}

	for i := 1; i < len(items.Items); i++ {
		it := &items.Items[i]
		name := db.Strs.Lookup(it.Name)
		switch it.Kind {
		case itemtree.ItemFn:
			add(name, CompletionFunction, "fn")
		case itemtree.ItemStruct, itemtree.ItemAlias:
			add(name, CompletionType, it.Kind.String())
		case itemtree.ItemVar, itemtree.ItemConst, itemtree.ItemOverride:
			add(name, CompletionVariable, it.Kind.String())
		}
	}

	if it := itemAtCompletionOffset(ctx, db, items, file, offset); it != nil {
		_, body, err := db.Body(ctx, it.ID)
		if err == nil && body != nil {
			for _, name := range localsBefore(body, offset) {
				add(db.Strs.Lookup(name), CompletionVariable, "local")
			}
		}
	}

	for _, name := range db.Bi.FunctionNames() {
		add(name, CompletionFunction, "builtin")
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func itemAtCompletionOffset(ctx context.Context, db *query.Database, items *itemtree.Tree, file source.FileID, offset uint32) *itemtree.Item {
	tree, _, err := db.Parse(ctx, file)
	if err != nil {
		return nil
	}
	return itemAtOffset(tree, items, offset)
}

// localsBefore collects every binding name declared by a statement whose
// span ends at or before offset — an approximation of "in scope" that
// ignores block nesting (it offers locals from sibling blocks too), which
// is the same tradeoff a lightweight completion pass commonly makes in
// exchange for not needing a second resolver pass purely for this query.
func localsBefore(body *hir.Body, offset uint32) []source.StringID {
	var names []source.StringID
	for i := 1; i < len(body.Stmts); i++ {
		s := &body.Stmts[i]
		switch s.Kind {
		case hir.StmtLet, hir.StmtConst, hir.StmtVariable:
		default:
			continue
		}
		if s.Span.End > offset {
			continue
		}
		bd, ok := s.Data.(hir.BindingStmtData)
		if !ok {
			continue
		}
		b := body.Binding(bd.Binding)
		if b == nil {
			continue
		}
		names = append(names, b.Name)
	}
	for _, pid := range body.Params {
		b := body.Binding(pid)
		if b != nil {
			names = append(names, b.Name)
		}
	}
	return names
}
