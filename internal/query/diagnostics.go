package query

import (
	"context"
	"fmt"
	"path"
	"strings"

	"wgsla/internal/diag"
	"wgsla/internal/itemtree"
	"wgsla/internal/source"
)

// Diagnostics implements diagnostics(file_id): the file's parse
// diagnostics plus every one of its definitions' inference diagnostics,
// merged into a single bag. A bad definition never stops its siblings
// from contributing their own diagnostics; semantic failures surface as
// typed diagnostics, never an abort.
func (db *Database) Diagnostics(ctx context.Context, file source.FileID) (*diag.Bag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree, parseBag, err := db.Parse(ctx, file)
	if err != nil {
		return nil, err
	}
	items, err := db.ItemTree(ctx, file)
	if err != nil {
		return nil, err
	}

	out := diag.NewBag()
	out.Merge(parseBag)
	for i := 1; i < len(items.Items); i++ {
		it := &items.Items[i]
		if it.Kind == itemtree.ItemImport {
			if target := db.resolveImportPath(file, it); target != "" {
				if _, ok := db.Files.Lookup(target); ok {
					continue
				}
			}
			out.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.UnresolvedImport,
				Message:  fmt.Sprintf("unresolved import %s", strings.Trim(it.ImportPath, `"`)),
				Primary:  tree.Node(it.Node).Span,
			})
			continue
		}
		if !hasBody(it) {
			continue
		}
		result, err := db.Infer(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		if result != nil {
			out.Merge(result.Diagnostics)
		}
	}
	out.Sort()
	return out, nil
}

// resolveImportPath maps an import to the FileSet path it names: a
// string-literal import is taken relative to the importing file's
// directory; a `::`-separated one maps each segment to a path element,
// also relative to the importing file, with the .wgsl extension appended.
func (db *Database) resolveImportPath(file source.FileID, it *itemtree.Item) string {
	dir := path.Dir(db.Files.Get(file).Path)
	if it.ImportIsPath {
		if it.ImportPath == "" {
			return ""
		}
		return path.Join(dir, strings.ReplaceAll(it.ImportPath, "::", "/")+".wgsl")
	}
	raw := strings.Trim(it.ImportPath, `"`)
	if raw == "" {
		return ""
	}
	return path.Join(dir, raw)
}
