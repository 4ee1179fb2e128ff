package diagfmt

import (
	"fmt"
	"io"

	"wgsla/internal/hir"
	"wgsla/internal/infer"
	"wgsla/internal/itemtree"
	"wgsla/internal/source"
	"wgsla/internal/types"
)

// Explain renders one line per expression in body's arena — its span, its
// inferred type and, for calls, the resolved overload — as a flat
// line-per-node listing rather than a tree, since a body's arena order
// already gives a stable, readable traversal. Used by the CLI's
// `check --explain` flag.
func Explain(w io.Writer, fs *source.FileSet, strs *source.Interner, in *types.Interner, items *itemtree.Tree, body *hir.Body, result *infer.Result) {
	if body == nil || result == nil {
		return
	}
	for idx := 1; idx < len(body.Exprs); idx++ {
		id := hir.ExprID(idx)
		e := body.Exprs[idx]
		start, end := fs.Resolve(e.Span)
		typ := types.Label(strs, in, result.TypeOf(id))

		fmt.Fprintf(w, "%d:%d-%d:%d %s: %s",
			start.Line, start.Col, end.Line, end.Col, e.Kind.String(), typ)
		if e.Kind == hir.ExprCall {
			fmt.Fprintf(w, " (%s)", explainCall(strs, in, items, result, id))
		}
		fmt.Fprintln(w)
	}
}

// explainCall renders a call expression's resolved overload: the
// user function it names, the type a constructor call produced a value
// of, or "builtin overload" when inference matched a builtin whose
// overload is already fully described by the call's own recorded type.
func explainCall(strs *source.Interner, in *types.Interner, items *itemtree.Tree, result *infer.Result, id hir.ExprID) string {
	res, ok := result.CallResolutions[id]
	if !ok {
		return "builtin overload"
	}
	switch res.Kind {
	case infer.CallResolutionFunction:
		it := items.Item(res.Function)
		if it == nil {
			return "fn <unresolved>"
		}
		return fmt.Sprintf("fn %s", strs.Lookup(it.Name))
	case infer.CallResolutionOtherTypeInitializer:
		return fmt.Sprintf("constructor %s", types.Label(strs, in, res.Type))
	default:
		return "builtin overload"
	}
}
