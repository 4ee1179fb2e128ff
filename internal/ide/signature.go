package ide

import (
	"context"
	"fmt"
	"strings"

	"wgsla/internal/builtins"
	"wgsla/internal/hir"
	"wgsla/internal/itemtree"
	"wgsla/internal/query"
	"wgsla/internal/resolver"
	"wgsla/internal/source"
	"wgsla/internal/types"
)

// Signature is one candidate signature for a call, its parameter labels in
// declaration order, and which parameter offset currently sits in.
type Signature struct {
	Label         string
	Params        []string
	ActiveParam   int
	ActiveParamOK bool
}

// SignatureHelp implements the signature-help surface: when offset sits
// inside a call's argument list, the callee's parameter list plus which
// parameter the cursor is currently inside.
func SignatureHelp(ctx context.Context, db *query.Database, file source.FileID, offset uint32) (Signature, bool) {
	items, it, body, err := definitionBody(ctx, db, file, offset)
	if err != nil || it == nil || body == nil {
		return Signature{}, false
	}
	_, call, ok := enclosingCall(body, offset)
	if !ok {
		return Signature{}, false
	}

	active, activeOK := activeParamIndex(body, call, offset)

	switch call.Callee.Kind {
	case hir.CalleeName:
		res := resolver.New(items, db.Strs)
		cb := res.ResolveCallable(call.Callee.Name)
		if cb.Kind == resolver.CallableFunction {
			target := items.Item(cb.Item)
			if target != nil {
				return userFunctionSignature(db, target, active, activeOK), true
			}
		}
		name := db.Strs.Lookup(call.Callee.Name)
		if overloads, isBuiltin := db.Bi.Function(name); isBuiltin {
			return builtinSignature(db, name, overloads, active, activeOK), true
		}
	}
	return Signature{}, false
}

func enclosingCall(body *hir.Body, offset uint32) (hir.ExprID, hir.CallData, bool) {
	var bestID hir.ExprID
	var best hir.CallData
	var bestLen uint32
	found := false
	for i := 1; i < len(body.Exprs); i++ {
		e := &body.Exprs[i]
		if e.Kind != hir.ExprCall || !spanCoversOffset(e.Span, offset) {
			continue
		}
		if !found || e.Span.Len() < bestLen {
			bestID, best, bestLen, found = hir.ExprID(i), e.Data.(hir.CallData), e.Span.Len(), true
		}
	}
	return bestID, best, found
}

func activeParamIndex(body *hir.Body, call hir.CallData, offset uint32) (int, bool) {
	for i, argID := range call.Args {
		arg := body.Expr(argID)
		if offset <= arg.Span.End {
			return i, true
		}
	}
	if len(call.Args) > 0 {
		return len(call.Args), true
	}
	return 0, false
}

func userFunctionSignature(db *query.Database, target *itemtree.Item, active int, activeOK bool) Signature {
	params := make([]string, 0, len(target.Params))
	for _, p := range target.Params {
		params = append(params, db.Strs.Lookup(p.Name))
	}
	return Signature{
		Label:         "fn " + db.Strs.Lookup(target.Name),
		Params:        params,
		ActiveParam:   active,
		ActiveParamOK: activeOK,
	}
}

func builtinSignature(db *query.Database, name string, overloads []builtins.Overload, active int, activeOK bool) Signature {
	if len(overloads) == 0 {
		return Signature{Label: name, ActiveParam: active, ActiveParamOK: activeOK}
	}
	ov := overloads[0]
	if activeOK && active < len(overloads[0].Params) {
		// prefer the first overload whose arity covers ActiveParam
		for _, candidate := range overloads {
			if active < len(candidate.Params) {
				ov = candidate
				break
			}
		}
	}
	params := make([]string, 0, len(ov.Params))
	for _, p := range ov.Params {
		params = append(params, types.Label(db.Strs, db.Types, p))
	}
	return Signature{
		Label:         fmt.Sprintf("%s(%s) -> %s", name, strings.Join(params, ", "), types.Label(db.Strs, db.Types, ov.Return)),
		Params:        params,
		ActiveParam:   active,
		ActiveParamOK: activeOK,
	}
}
