package ide

import (
	"fmt"
	"strings"

	"context"

	"wgsla/internal/config"
	"wgsla/internal/hir"
	"wgsla/internal/itemtree"
	"wgsla/internal/query"
	"wgsla/internal/source"
	"wgsla/internal/types"
)

// HoverResult is the rendered content for a hover request: a short
// signature line plus the definition site, formatted per the configured
// doc format.
type HoverResult struct {
	Text  string
	Range source.Span
}

// Hover implements the hover surface: a symbol's kind, name, and inferred
// type when offset sits on a name, falling back to just the inferred type
// of whatever expression contains offset.
func Hover(ctx context.Context, db *query.Database, file source.FileID, offset uint32, format config.HoverDocFormat) (HoverResult, bool) {
	_, it, body, err := definitionBody(ctx, db, file, offset)
	if err != nil || it == nil {
		return HoverResult{}, false
	}

	if spanCoversOffset(it.NameSpan, offset) {
		return HoverResult{Text: formatItemSignature(db, it, format), Range: it.NameSpan}, true
	}
	for _, f := range it.Fields {
		if spanCoversOffset(f.NameSpan, offset) {
			return HoverResult{Text: formatFieldSignature(db, f, format), Range: f.NameSpan}, true
		}
	}
	for _, p := range it.Params {
		if spanCoversOffset(p.NameSpan, offset) {
			return HoverResult{Text: formatParamSignature(db, p, format), Range: p.NameSpan}, true
		}
	}
	if body == nil {
		return HoverResult{}, false
	}
	if bid, ok := bindingAtOffset(body, offset); ok {
		b := body.Binding(bid)
		result, _ := db.Infer(ctx, it.ID)
		ty := types.NoTypeID
		if result != nil {
			ty = result.BindingTypes[bid]
		}
		return HoverResult{Text: formatBindingSignature(db, b, ty, format), Range: b.NameSpan}, true
	}

	result, err := db.Infer(ctx, it.ID)
	if err != nil || result == nil {
		return HoverResult{}, false
	}
	exprID, ok := exprAtOffset(body, offset)
	if !ok {
		return HoverResult{}, false
	}
	e := body.Expr(exprID)
	label := typeLabel(db, result.TypeOf(exprID))
	if label == "" {
		return HoverResult{}, false
	}
	text := "Type: `" + label + "`"
	if format == config.HoverPlain {
		text = "Type: " + label
	}
	return HoverResult{Text: text, Range: e.Span}, true
}

func typeLabel(db *query.Database, id types.TypeID) string {
	if id == types.NoTypeID {
		return ""
	}
	return types.Label(db.Strs, db.Types, id)
}

func formatItemSignature(db *query.Database, it *itemtree.Item, format config.HoverDocFormat) string {
	name := db.Strs.Lookup(it.Name)
	var sig string
	switch it.Kind {
	case itemtree.ItemFn:
		params := make([]string, 0, len(it.Params))
		for _, p := range it.Params {
			params = append(params, db.Strs.Lookup(p.Name))
		}
		sig = fmt.Sprintf("fn %s(%s)", name, strings.Join(params, ", "))
	case itemtree.ItemStruct:
		sig = "struct " + name
	case itemtree.ItemVar:
		sig = "var " + name
	case itemtree.ItemConst:
		sig = "const " + name
	case itemtree.ItemOverride:
		sig = "override " + name
	case itemtree.ItemAlias:
		sig = "alias " + name
	case itemtree.ItemImport:
		sig = "import " + name
	default:
		sig = name
	}
	return wrapSignature(sig, format)
}

func formatFieldSignature(db *query.Database, f itemtree.Field, format config.HoverDocFormat) string {
	return wrapSignature("field "+db.Strs.Lookup(f.Name), format)
}

func formatParamSignature(db *query.Database, p itemtree.Param, format config.HoverDocFormat) string {
	return wrapSignature("param "+db.Strs.Lookup(p.Name), format)
}

func formatBindingSignature(db *query.Database, b *hir.Binding, ty types.TypeID, format config.HoverDocFormat) string {
	label := "let"
	if b.Kind == hir.BindingParam {
		label = "param"
	}
	name := db.Strs.Lookup(b.Name)
	sig := label + " " + name
	if lbl := typeLabel(db, ty); lbl != "" {
		sig += ": " + lbl
	}
	return wrapSignature(sig, format)
}

func wrapSignature(sig string, format config.HoverDocFormat) string {
	if format == config.HoverMarkdown {
		return "```wgsl\n" + sig + "\n```"
	}
	return sig
}
