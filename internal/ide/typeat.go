package ide

import (
	"context"

	"wgsla/internal/query"
	"wgsla/internal/source"
	"wgsla/internal/types"
)

// TypeAt implements type_at(file_id, offset): the inferred type of
// the innermost expression containing offset.
func TypeAt(ctx context.Context, db *query.Database, file source.FileID, offset uint32) (types.TypeID, bool) {
	_, it, body, err := definitionBody(ctx, db, file, offset)
	if err != nil || it == nil || body == nil {
		return types.NoTypeID, false
	}
	result, err := db.Infer(ctx, it.ID)
	if err != nil || result == nil {
		return types.NoTypeID, false
	}
	exprID, ok := exprAtOffset(body, offset)
	if !ok {
		return types.NoTypeID, false
	}
	ty := result.TypeOf(exprID)
	if ty == types.NoTypeID {
		return types.NoTypeID, false
	}
	return ty, true
}

// TypeAtLabel is TypeAt rendered as display text, the form most callers
// (hover, a `tokens`-style CLI dump) actually want.
func TypeAtLabel(ctx context.Context, db *query.Database, file source.FileID, offset uint32) (string, bool) {
	ty, ok := TypeAt(ctx, db, file, offset)
	if !ok {
		return "", false
	}
	return types.Label(db.Strs, db.Types, ty), true
}
