package ide

import (
	"context"

	"wgsla/internal/hir"
	"wgsla/internal/infer"
	"wgsla/internal/itemtree"
	"wgsla/internal/query"
	"wgsla/internal/source"
	"wgsla/internal/types"
)

// ResolveAt implements resolve_at(file_id, offset): the definition
// site of whatever name sits at offset, whether that is a local binding, a
// global var/const/override, a user function, or a struct field. Calls to
// a struct or alias constructor are not followed to their declaration.
// Returns ok=false when offset names nothing resolvable (a keyword, a
// literal, a syntax error, a constructor call, or simply no match).
func ResolveAt(ctx context.Context, db *query.Database, file source.FileID, offset uint32) (Location, bool) {
	items, it, body, err := definitionBody(ctx, db, file, offset)
	if err != nil || it == nil {
		return Location{}, false
	}

	// A cursor sitting on the item's own declared name, or on a struct
	// field's declared name, is already at its definition.
	if loc, ok := declarationNameAt(it, offset); ok {
		return loc, true
	}

	if body == nil {
		return Location{}, false
	}
	if bid, ok := bindingAtOffset(body, offset); ok {
		b := body.Binding(bid)
		if b != nil {
			return Location{File: file, Span: b.NameSpan}, true
		}
	}

	result, err := db.Infer(ctx, it.ID)
	if err != nil || result == nil {
		return Location{}, false
	}
	exprID, ok := exprAtOffset(body, offset)
	if !ok {
		return Location{}, false
	}

	if pr, ok := result.PathResolutions[exprID]; ok {
		return resolvePathTarget(items, body, file, pr)
	}
	if cr, ok := result.CallResolutions[exprID]; ok && cr.Kind == infer.CallResolutionFunction {
		return itemLocation(items, cr.Function)
	}
	if fr, ok := result.FieldResolutions[exprID]; ok && fr.Kind == infer.FieldResolutionStructField {
		return resolveFieldTarget(db, items, result, body, exprID, fr)
	}
	return Location{}, false
}

func declarationNameAt(it *itemtree.Item, offset uint32) (Location, bool) {
	if spanCoversOffset(it.NameSpan, offset) {
		return Location{File: it.ID.File, Span: it.NameSpan}, true
	}
	for _, f := range it.Fields {
		if spanCoversOffset(f.NameSpan, offset) {
			return Location{File: it.ID.File, Span: f.NameSpan}, true
		}
	}
	for _, p := range it.Params {
		if spanCoversOffset(p.NameSpan, offset) {
			return Location{File: it.ID.File, Span: p.NameSpan}, true
		}
	}
	return Location{}, false
}

func resolvePathTarget(items *itemtree.Tree, body *hir.Body, file source.FileID, pr infer.PathResolution) (Location, bool) {
	switch pr.Kind {
	case infer.PathResolutionLocal:
		b := body.Binding(pr.Local)
		if b == nil {
			return Location{}, false
		}
		return Location{File: file, Span: b.NameSpan}, true
	case infer.PathResolutionItem:
		return itemLocation(items, pr.Item)
	default:
		return Location{}, false
	}
}

func itemLocation(items *itemtree.Tree, id itemtree.ItemID) (Location, bool) {
	target := items.Item(id)
	if target == nil {
		return Location{}, false
	}
	return Location{File: id.File, Span: target.NameSpan}, true
}

// resolveFieldTarget finds the struct item that declared the field a
// FieldResolutionStructField entry names. The type interner records a
// struct's fields by name only (no stored back-pointer to the declaring
// item), so this looks the struct up by name the same way resolve_type
// would — struct names are declared once per file, matching how the rest
// of this engine treats name-based lookups as authoritative.
func resolveFieldTarget(db *query.Database, items *itemtree.Tree, result *infer.Result, body *hir.Body, exprID hir.ExprID, fr infer.FieldResolution) (Location, bool) {
	e := body.Expr(exprID)
	fd, ok := e.Data.(hir.FieldData)
	if !ok {
		return Location{}, false
	}
	baseType := result.TypeOf(fd.Base)
	t, ok := db.Types.Lookup(baseType)
	if !ok || t.Kind != types.KindStruct {
		return Location{}, false
	}
	info, ok := db.Types.StructInfo(t.Struct)
	if !ok {
		return Location{}, false
	}
	for _, item := range items.ByName(info.Name) {
		if item.Kind != itemtree.ItemStruct {
			continue
		}
		if fr.FieldIndex < 0 || fr.FieldIndex >= len(item.Fields) {
			continue
		}
		return Location{File: e.Span.File, Span: item.Fields[fr.FieldIndex].NameSpan}, true
	}
	return Location{}, false
}
