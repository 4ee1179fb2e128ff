package hir

import (
	"wgsla/internal/itemtree"
	"wgsla/internal/source"
	"wgsla/internal/syntax"
	"wgsla/internal/token"
	"wgsla/internal/types"
)

// LowerFn lowers a function item's parameter list and block body into a
// Body. it.Kind must be itemtree.ItemFn.
func LowerFn(tree *syntax.Tree, strs *source.Interner, it *itemtree.Item) *Body {
	b := newBody()
	l := &lowerer{tree: tree, strs: strs, body: b}
	for _, p := range it.Params {
		bid := b.addBinding(Binding{Name: p.Name, NameSpan: p.NameSpan, Kind: BindingParam})
		b.Params = append(b.Params, bid)
	}
	if it.Body.IsValid() {
		b.RootStmt = l.lowerBlock(it.Body)
	}
	return b
}

// LowerGlobalInit lowers a global var/const/override's initializer
// expression into a single-expression-rooted Body, with the item's own
// name pre-bound as the main binding so the expression can be typed
// against the name it defines.
func LowerGlobalInit(tree *syntax.Tree, strs *source.Interner, it *itemtree.Item) *Body {
	b := newBody()
	l := &lowerer{tree: tree, strs: strs, body: b}
	b.MainBinding = b.addBinding(Binding{Name: it.Name, NameSpan: it.NameSpan, Kind: BindingMain})
	if it.Init.IsValid() {
		b.IsExprRoot = true
		b.RootExpr = l.lowerExpr(it.Init)
	}
	return b
}

type lowerer struct {
	tree *syntax.Tree
	strs *source.Interner
	body *Body
}

func (l *lowerer) spanOf(id syntax.NodeID) source.Span {
	if n := l.tree.Node(id); n != nil {
		return n.Span
	}
	return source.Span{}
}

// lowerBlock wraps a KindBlock node's direct statement children into a
// Compound statement.
func (l *lowerer) lowerBlock(id syntax.NodeID) StmtID {
	n := l.tree.Node(id)
	if n == nil {
		return 0
	}
	var children []StmtID
	for _, c := range n.Children {
		if c.IsToken {
			continue
		}
		children = append(children, l.lowerStmt(c.Node))
	}
	return l.body.addStmt(Stmt{Kind: StmtCompound, Span: n.Span, Data: CompoundData{Children: children}})
}

func (l *lowerer) lowerStmt(id syntax.NodeID) StmtID {
	n := l.tree.Node(id)
	if n == nil {
		return 0
	}
	span := n.Span
	switch n.Kind {
	case syntax.KindBlock:
		return l.lowerBlock(id)
	case syntax.KindLetStmt:
		return l.lowerBinding(n, span, StmtLet, false)
	case syntax.KindConstStmt:
		return l.lowerBinding(n, span, StmtConst, false)
	case syntax.KindVarStmt:
		return l.lowerBinding(n, span, StmtVariable, true)
	case syntax.KindIfStmt:
		return l.lowerIf(n, span)
	case syntax.KindWhileStmt:
		return l.lowerWhile(n, span)
	case syntax.KindForStmt:
		return l.lowerFor(n, span)
	case syntax.KindLoopStmt:
		return l.lowerLoop(n, span)
	case syntax.KindSwitchStmt:
		return l.lowerSwitch(n, span)
	case syntax.KindReturnStmt:
		return l.lowerReturn(n, span)
	case syntax.KindBreakStmt:
		return l.body.addStmt(Stmt{Kind: StmtBreak, Span: span})
	case syntax.KindContinueStmt:
		return l.body.addStmt(Stmt{Kind: StmtContinue, Span: span})
	case syntax.KindDiscardStmt:
		return l.body.addStmt(Stmt{Kind: StmtDiscard, Span: span})
	case syntax.KindFallthroughStmt:
		return l.body.addStmt(Stmt{Kind: StmtFallthrough, Span: span})
	case syntax.KindContinuingStmt:
		return l.lowerContinuing(n, span)
	case syntax.KindAssignStmt:
		return l.lowerAssign(n, span)
	case syntax.KindCompoundAssignStmt:
		return l.lowerCompoundAssign(n, span)
	case syntax.KindIncrDecrStmt:
		return l.lowerIncrDecr(n, span)
	case syntax.KindExprStmt:
		return l.lowerExprStmt(n, span)
	default:
		return l.body.addStmt(Stmt{Kind: StmtMissing, Span: span})
	}
}

// firstChildNode returns the first direct child node of kind k, if any.
func (l *lowerer) firstChildNode(n *syntax.Node, k syntax.Kind) syntax.NodeID {
	for _, c := range n.Children {
		if !c.IsToken && l.tree.Node(c.Node).Kind == k {
			return c.Node
		}
	}
	return 0
}

// firstIdent returns the first direct Ident-token child's text.
func firstIdent(n *syntax.Node) (string, bool) {
	for _, c := range n.Children {
		if c.IsToken && c.Token.Kind == token.Ident {
			return c.Token.Text, true
		}
	}
	return "", false
}

// exprChildAfter returns the first direct expression-shaped child node
// that appears strictly after the given token kind, or 0.
func (l *lowerer) exprChildAfter(n *syntax.Node, after token.Kind) syntax.NodeID {
	seen := false
	for _, c := range n.Children {
		if c.IsToken && c.Token.Kind == after {
			seen = true
			continue
		}
		if seen && !c.IsToken {
			return c.Node
		}
	}
	return 0
}

func (l *lowerer) lowerBinding(n *syntax.Node, span source.Span, kind StmtKind, isVar bool) StmtID {
	name, _ := firstIdent(n)
	nameSpan := span
	for _, c := range n.Children {
		if c.IsToken && c.Token.Kind == token.Ident {
			nameSpan = c.Token.Span
			break
		}
	}
	bid := l.body.addBinding(Binding{Name: l.strs.Intern(name), NameSpan: nameSpan, Kind: BindingLocal})

	data := BindingStmtData{Binding: bid}
	if tr := l.firstChildNode(n, syntax.KindTypeRef); tr.IsValid() {
		data.DeclType = tr
	}
	if isVar {
		if q := l.firstChildNode(n, syntax.KindVarQualifier); q.IsValid() {
			l.fillQualifier(&data, l.tree.Node(q))
		}
	}
	if eq := l.exprChildAfter(n, token.Eq); eq != 0 {
		data.Init = l.lowerExpr(eq)
	}
	return l.body.addStmt(Stmt{Kind: kind, Span: span, Data: data})
}

func (l *lowerer) fillQualifier(data *BindingStmtData, qn *syntax.Node) {
	var idents []string
	for _, c := range qn.Children {
		if c.IsToken && c.Token.Kind == token.Ident {
			idents = append(idents, c.Token.Text)
		}
	}
	if len(idents) == 0 {
		return
	}
	data.HasQualifier = true
	if as, ok := parseAddressSpaceText(idents[0]); ok {
		data.AddressSpace = as
		if len(idents) > 1 {
			if am, ok := parseAccessModeText(idents[1]); ok {
				data.Access = am
			}
		} else {
			data.Access = as.DefaultAccessMode()
		}
	}
}

func (l *lowerer) lowerIf(n *syntax.Node, span source.Span) StmtID {
	var blocks []syntax.NodeID
	var conds []syntax.NodeID
	for _, c := range n.Children {
		if c.IsToken {
			continue
		}
		cn := l.tree.Node(c.Node)
		if cn.Kind == syntax.KindBlock {
			blocks = append(blocks, c.Node)
		} else {
			conds = append(conds, c.Node)
		}
	}
	data := IfData{}
	if len(conds) > 0 {
		data.Cond = l.lowerExpr(conds[0])
	}
	if len(blocks) > 0 {
		data.Then = l.lowerBlock(blocks[0])
	}
	for i := 1; i < len(conds); i++ {
		then := StmtID(0)
		if i < len(blocks) {
			then = l.lowerBlock(blocks[i])
		}
		data.ElseIfs = append(data.ElseIfs, ElseIf{Cond: l.lowerExpr(conds[i]), Then: then})
	}
	if len(blocks) > len(conds) {
		data.Else = l.lowerBlock(blocks[len(blocks)-1])
	}
	return l.body.addStmt(Stmt{Kind: StmtIf, Span: span, Data: data})
}

func (l *lowerer) lowerWhile(n *syntax.Node, span source.Span) StmtID {
	data := WhileData{}
	for _, c := range n.Children {
		if c.IsToken {
			continue
		}
		cn := l.tree.Node(c.Node)
		if cn.Kind == syntax.KindBlock {
			data.Body = l.lowerBlock(c.Node)
		} else {
			data.Cond = l.lowerExpr(c.Node)
		}
	}
	return l.body.addStmt(Stmt{Kind: StmtWhile, Span: span, Data: data})
}

// isForHeaderStmtKind reports whether k is one of the statement forms
// that can appear in a for-header's init or continuing position — the
// same set parseExprOrAssignStmtNoSemi can produce, plus the three
// binding forms parseStmtInner can produce for init.
func isForHeaderStmtKind(k syntax.Kind) bool {
	switch k {
	case syntax.KindLetStmt, syntax.KindConstStmt, syntax.KindVarStmt,
		syntax.KindAssignStmt, syntax.KindCompoundAssignStmt, syntax.KindIncrDecrStmt, syntax.KindExprStmt:
		return true
	default:
		return false
	}
}

// lowerFor splits a ForHeader's children on its LAST bare separator
// token. init/cond's own trailing separator is swallowed inside their
// node when either is present, so at most one bare separator token
// precedes them (emitted only when init is absent); the separator
// following the cond position is always emitted as a bare token
// regardless, making it the unambiguous init/cond vs. continuing
// boundary.
func (l *lowerer) lowerFor(n *syntax.Node, span source.Span) StmtID {
	data := ForData{}
	header := l.firstChildNode(n, syntax.KindForHeader)
	if header.IsValid() {
		hn := l.tree.Node(header)
		lastSep := -1
		for i, c := range hn.Children {
			if c.IsToken && (c.Token.Kind == token.Semicolon || c.Token.Kind == token.Comma) {
				lastSep = i
			}
		}
		before, after := hn.Children, []syntax.Child(nil)
		if lastSep >= 0 {
			before, after = hn.Children[:lastSep], hn.Children[lastSep+1:]
		}
		for _, c := range before {
			if c.IsToken {
				continue
			}
			if isForHeaderStmtKind(l.tree.Node(c.Node).Kind) {
				data.Init = l.lowerStmt(c.Node)
			} else {
				data.Cond = l.lowerExpr(c.Node)
			}
		}
		for _, c := range after {
			if !c.IsToken {
				data.Cont = l.lowerStmt(c.Node)
			}
		}
	}
	if body := l.firstChildNode(n, syntax.KindBlock); body.IsValid() {
		data.Body = l.lowerBlock(body)
	}
	return l.body.addStmt(Stmt{Kind: StmtFor, Span: span, Data: data})
}

func (l *lowerer) lowerLoop(n *syntax.Node, span source.Span) StmtID {
	data := LoopData{}
	if body := l.firstChildNode(n, syntax.KindBlock); body.IsValid() {
		data.Body = l.lowerBlock(body)
	}
	return l.body.addStmt(Stmt{Kind: StmtLoop, Span: span, Data: data})
}

func (l *lowerer) lowerSwitch(n *syntax.Node, span source.Span) StmtID {
	data := SwitchData{}
	first := true
	for _, c := range n.Children {
		if c.IsToken {
			continue
		}
		cn := l.tree.Node(c.Node)
		switch cn.Kind {
		case syntax.KindSwitchCase:
			data.Cases = append(data.Cases, l.lowerSwitchCase(cn))
		case syntax.KindSwitchDefault:
			if body := l.firstChildNode(cn, syntax.KindBlock); body.IsValid() {
				data.Default = l.lowerBlock(body)
			}
		default:
			if first {
				data.Scrutinee = l.lowerExpr(c.Node)
				first = false
			}
		}
	}
	return l.body.addStmt(Stmt{Kind: StmtSwitch, Span: span, Data: data})
}

func (l *lowerer) lowerSwitchCase(cn *syntax.Node) SwitchCase {
	var sc SwitchCase
	for _, c := range cn.Children {
		if c.IsToken {
			continue
		}
		inner := l.tree.Node(c.Node)
		if inner.Kind == syntax.KindBlock {
			sc.Body = l.lowerBlock(c.Node)
		} else {
			sc.Selectors = append(sc.Selectors, l.lowerExpr(c.Node))
		}
	}
	return sc
}

func (l *lowerer) lowerReturn(n *syntax.Node, span source.Span) StmtID {
	data := ReturnData{}
	for _, c := range n.Children {
		if !c.IsToken {
			data.Value = l.lowerExpr(c.Node)
			break
		}
	}
	return l.body.addStmt(Stmt{Kind: StmtReturn, Span: span, Data: data})
}

func (l *lowerer) lowerContinuing(n *syntax.Node, span source.Span) StmtID {
	data := ContinuingData{}
	if body := l.firstChildNode(n, syntax.KindBlock); body.IsValid() {
		data.Body = l.lowerBlock(body)
	}
	return l.body.addStmt(Stmt{Kind: StmtContinuing, Span: span, Data: data})
}

func (l *lowerer) lowerAssign(n *syntax.Node, span source.Span) StmtID {
	var exprs []syntax.NodeID
	for _, c := range n.Children {
		if !c.IsToken {
			exprs = append(exprs, c.Node)
		}
	}
	data := AssignData{}
	if len(exprs) > 0 {
		data.Left = l.lowerExpr(exprs[0])
	}
	if len(exprs) > 1 {
		data.Right = l.lowerExpr(exprs[1])
	}
	return l.body.addStmt(Stmt{Kind: StmtAssignment, Span: span, Data: data})
}

var compoundAssignOps = map[token.Kind]CompoundAssignOp{
	token.PlusEq:    CAAdd,
	token.MinusEq:   CASub,
	token.StarEq:    CAMul,
	token.SlashEq:   CADiv,
	token.PercentEq: CARem,
	token.AmpEq:     CAAnd,
	token.PipeEq:    CAOr,
	token.CaretEq:   CAXor,
}

func (l *lowerer) lowerCompoundAssign(n *syntax.Node, span source.Span) StmtID {
	var exprs []syntax.NodeID
	var op CompoundAssignOp
	for _, c := range n.Children {
		if c.IsToken {
			if o, ok := compoundAssignOps[c.Token.Kind]; ok {
				op = o
			}
			continue
		}
		exprs = append(exprs, c.Node)
	}
	data := CompoundAssignData{Op: op}
	if len(exprs) > 0 {
		data.Left = l.lowerExpr(exprs[0])
	}
	if len(exprs) > 1 {
		data.Right = l.lowerExpr(exprs[1])
	}
	return l.body.addStmt(Stmt{Kind: StmtCompoundAssignment, Span: span, Data: data})
}

func (l *lowerer) lowerIncrDecr(n *syntax.Node, span source.Span) StmtID {
	data := IncrDecrData{}
	for _, c := range n.Children {
		if c.IsToken && c.Token.Kind == token.MinusMinus {
			data.IsDecrement = true
		}
		if !c.IsToken {
			data.Target = l.lowerExpr(c.Node)
		}
	}
	return l.body.addStmt(Stmt{Kind: StmtIncrDecr, Span: span, Data: data})
}

func (l *lowerer) lowerExprStmt(n *syntax.Node, span source.Span) StmtID {
	data := ExprStmtData{}
	for _, c := range n.Children {
		if !c.IsToken {
			data.Expr = l.lowerExpr(c.Node)
			break
		}
	}
	return l.body.addStmt(Stmt{Kind: StmtExprStmt, Span: span, Data: data})
}

// parseAddressSpaceText/parseAccessModeText mirror itemtree's qualifier-
// text parsing (internal/itemtree/build.go): both packages lower the same
// `<address_space[, access_mode]>` grammar, one at module scope and one
// at function scope, so both consult the identical identifier-to-enum
// mapping independently rather than share a helper across a layering
// boundary neither package otherwise needs.
func parseAddressSpaceText(s string) (types.AddressSpace, bool) {
	switch s {
	case "function":
		return types.AddressSpaceFunction, true
	case "private":
		return types.AddressSpacePrivate, true
	case "workgroup":
		return types.AddressSpaceWorkgroup, true
	case "uniform":
		return types.AddressSpaceUniform, true
	case "storage":
		return types.AddressSpaceStorage, true
	case "push_constant":
		return types.AddressSpacePushConstant, true
	case "handle":
		return types.AddressSpaceHandle, true
	default:
		return types.AddressSpaceNone, false
	}
}

func parseAccessModeText(s string) (types.AccessMode, bool) {
	switch s {
	case "read":
		return types.AccessRead, true
	case "write":
		return types.AccessWrite, true
	case "read_write":
		return types.AccessReadWrite, true
	default:
		return types.AccessNone, false
	}
}
