package ide

import (
	"context"
	"sort"

	"wgsla/internal/config"
	"wgsla/internal/hir"
	"wgsla/internal/infer"
	"wgsla/internal/itemtree"
	"wgsla/internal/query"
	"wgsla/internal/source"
	"wgsla/internal/types"
)

// InlayHint is one inlay annotation: a byte offset to render it at, and
// the label text to show (already including its leading punctuation, e.g.
// ": f32" — the separator is baked into the label rather than
// reconstructed by callers).
type InlayHint struct {
	Offset uint32
	Label  string
}

// InlayHints implements the inlay-hint surface over [start, end): one hint
// per let/const/var binding whose type was not written out explicitly,
// shown after its name. InlayOff produces no hints; InlayCompact,
// InlayFull and InlayInner all render the same full type label, composite
// types (vector/matrix/array) included.
func InlayHints(ctx context.Context, db *query.Database, file source.FileID, start, end uint32, mode config.InlayMode) []InlayHint {
	if mode == config.InlayOff {
		return nil
	}
	items, err := db.ItemTree(ctx, file)
	if err != nil || items == nil {
		return nil
	}

	var hints []InlayHint
	for i := 1; i < len(items.Items); i++ {
		it := &items.Items[i]
		if !hasBody(it) {
			continue
		}
		_, body, err := db.Body(ctx, it.ID)
		if err != nil || body == nil {
			continue
		}
		result, err := db.Infer(ctx, it.ID)
		if err != nil || result == nil {
			continue
		}
		hints = append(hints, bindingHints(db, body, result, start, end, mode)...)
	}

	sort.Slice(hints, func(i, j int) bool { return hints[i].Offset < hints[j].Offset })
	return hints
}

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

func bindingHints(db *query.Database, body *hir.Body, result *infer.Result, start, end uint32, mode config.InlayMode) []InlayHint {
	var out []InlayHint
	for i := 1; i < len(body.Stmts); i++ {
		s := &body.Stmts[i]
		switch s.Kind {
		case hir.StmtLet, hir.StmtConst, hir.StmtVariable:
		default:
			continue
		}
		bd, ok := s.Data.(hir.BindingStmtData)
		if !ok || bd.DeclType != 0 {
			continue // already spelled out, no hint needed
		}
		b := body.Binding(bd.Binding)
		if b == nil {
			continue
		}
		if b.NameSpan.End < start || b.NameSpan.End > end {
			continue
		}
		ty := result.BindingTypes[bd.Binding]
		if ty == types.NoTypeID && bd.Init != 0 {
			ty = result.TypeOf(bd.Init)
		}
		if ty == types.NoTypeID {
			continue
		}
		out = append(out, InlayHint{Offset: b.NameSpan.End, Label: ": " + types.Label(db.Strs, db.Types, ty)})
	}
	return out
}
