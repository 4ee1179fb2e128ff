package hir

import (
	"wgsla/internal/source"
	"wgsla/internal/syntax"
	"wgsla/internal/token"
)

// lowerExpr lowers one expression-position CST node into the body's
// expression arena. Parenthesized groups are unwrapped here rather
// than given their own HIR node: precedence is already baked into the CST
// shape, so a ParenExpr carries no information inference needs.
func (l *lowerer) lowerExpr(id syntax.NodeID) ExprID {
	n := l.tree.Node(id)
	if n == nil {
		return 0
	}
	span := n.Span
	switch n.Kind {
	case syntax.KindParenExpr:
		if inner := l.onlyChildNode(n); inner.IsValid() {
			return l.lowerExpr(inner)
		}
		return l.body.addExpr(Expr{Kind: ExprMissing, Span: span})
	case syntax.KindLiteralExpr:
		return l.lowerLiteral(n, span)
	case syntax.KindPathExpr:
		return l.lowerPath(n, span)
	case syntax.KindFieldExpr:
		return l.lowerField(n, span)
	case syntax.KindIndexExpr:
		return l.lowerIndexExpr(n, span)
	case syntax.KindCallExpr:
		return l.lowerCallExpr(n, span)
	case syntax.KindUnaryExpr:
		return l.lowerUnaryExpr(n, span)
	case syntax.KindBinaryExpr:
		return l.lowerBinaryExprNode(n, span)
	case syntax.KindBitcastExpr:
		return l.lowerBitcastExpr(n, span)
	default:
		return l.body.addExpr(Expr{Kind: ExprMissing, Span: span})
	}
}

// onlyChildNode returns the single direct child node of n, skipping tokens.
func (l *lowerer) onlyChildNode(n *syntax.Node) syntax.NodeID {
	for _, c := range n.Children {
		if !c.IsToken {
			return c.Node
		}
	}
	return 0
}

func (l *lowerer) lowerLiteral(n *syntax.Node, span source.Span) ExprID {
	for _, c := range n.Children {
		if !c.IsToken {
			continue
		}
		var kind LiteralKind
		switch c.Token.Kind {
		case token.IntLit:
			kind = LitInt
		case token.FloatLit:
			kind = LitFloat
		case token.BoolLit:
			kind = LitBool
		default:
			continue
		}
		return l.body.addExpr(Expr{Kind: ExprLiteral, Span: span, Data: LiteralData{Kind: kind, Raw: c.Token.Text}})
	}
	return l.body.addExpr(Expr{Kind: ExprMissing, Span: span})
}

// lowerPath handles a PathExpr not in callee position: either a bare name
// or (degenerate, e.g. a type keyword used outside a call) a TypeRef whose
// full source text stands in for the unresolvable name.
func (l *lowerer) lowerPath(n *syntax.Node, span source.Span) ExprID {
	for _, c := range n.Children {
		if c.IsToken && c.Token.Kind == token.Ident {
			return l.body.addExpr(Expr{Kind: ExprPath, Span: span, Data: PathData{Name: l.strs.Intern(c.Token.Text)}})
		}
	}
	if tr := l.firstChildNode(n, syntax.KindTypeRef); tr.IsValid() {
		return l.body.addExpr(Expr{Kind: ExprPath, Span: span, Data: PathData{Name: l.strs.Intern(l.tree.Text(tr))}})
	}
	return l.body.addExpr(Expr{Kind: ExprMissing, Span: span})
}

func (l *lowerer) lowerField(n *syntax.Node, span source.Span) ExprID {
	var base syntax.NodeID
	var name string
	for _, c := range n.Children {
		if c.IsToken {
			if c.Token.Kind == token.Ident {
				name = c.Token.Text
			}
			continue
		}
		base = c.Node
	}
	return l.body.addExpr(Expr{Kind: ExprField, Span: span, Data: FieldData{Base: l.lowerExpr(base), Name: l.strs.Intern(name)}})
}

func (l *lowerer) lowerIndexExpr(n *syntax.Node, span source.Span) ExprID {
	nodes := l.childNodes(n)
	data := IndexData{}
	if len(nodes) > 0 {
		data.Base = l.lowerExpr(nodes[0])
	}
	if len(nodes) > 1 {
		data.Index = l.lowerExpr(nodes[1])
	}
	return l.body.addExpr(Expr{Kind: ExprIndex, Span: span, Data: data})
}

func (l *lowerer) childNodes(n *syntax.Node) []syntax.NodeID {
	var out []syntax.NodeID
	for _, c := range n.Children {
		if !c.IsToken {
			out = append(out, c.Node)
		}
	}
	return out
}

func (l *lowerer) lowerCallExpr(n *syntax.Node, span source.Span) ExprID {
	nodes := l.childNodes(n)
	data := CallData{}
	if len(nodes) > 0 {
		data.Callee = l.lowerCallee(nodes[0])
	}
	if len(nodes) > 1 {
		argList := l.tree.Node(nodes[1])
		for _, c := range argList.Children {
			if !c.IsToken {
				data.Args = append(data.Args, l.lowerExpr(c.Node))
			}
		}
	}
	return l.body.addExpr(Expr{Kind: ExprCall, Span: span, Data: data})
}

// lowerCallee classifies a call's callee node into one of the five forms
// the HIR distinguishes: a bare name resolved later, an explicit
// type reference, or one of the three inferred-component constructor
// shorthands (vector/matrix, which carry their size; array, which has no
// size-carrying fields of its own since its arity alone drives
// construction).
func (l *lowerer) lowerCallee(id syntax.NodeID) Callee {
	cn := l.tree.Node(id)
	if cn == nil || cn.Kind != syntax.KindPathExpr {
		return Callee{Kind: CalleeName}
	}
	for _, c := range cn.Children {
		if c.IsToken && c.Token.Kind == token.Ident {
			return Callee{Kind: CalleeName, Name: l.strs.Intern(c.Token.Text)}
		}
	}
	if tr := l.firstChildNode(cn, syntax.KindTypeRef); tr.IsValid() {
		return l.classifyTypeRefCallee(tr)
	}
	return Callee{Kind: CalleeName}
}

func (l *lowerer) classifyTypeRefCallee(tr syntax.NodeID) Callee {
	trn := l.tree.Node(tr)
	var kw token.Token
	hasGenerics := false
	for _, c := range trn.Children {
		if c.IsToken {
			kw = c.Token
			continue
		}
		if l.tree.Node(c.Node).Kind == syntax.KindTypeGenericArgs {
			hasGenerics = true
		}
	}
	if !hasGenerics {
		switch kw.Kind {
		case token.KwVec2, token.KwVec3, token.KwVec4:
			if isBareVectorText(kw.Text) {
				return Callee{Kind: CalleeInferredVector, VectorSize: vectorSizeOf(kw.Kind)}
			}
		case token.KwMat:
			if cols, rows, bare := parseMatrixDimsText(kw.Text); bare {
				return Callee{Kind: CalleeInferredMatrix, MatrixCols: cols, MatrixRows: rows}
			}
		case token.KwArray:
			return Callee{Kind: CalleeInferredArray}
		}
	}
	return Callee{Kind: CalleeTypeRef, TypeRef: tr}
}

// isBareVectorText reports whether text is the unsuffixed vector keyword
// spelling (`vec2`/`vec3`/`vec4`) rather than a scalar-typed alias
// (`vec2f`, `vec3i`, ...), which denotes a concrete type, not an
// inferred-component constructor.
func isBareVectorText(text string) bool {
	switch text {
	case "vec2", "vec3", "vec4":
		return true
	default:
		return false
	}
}

func vectorSizeOf(k token.Kind) uint8 {
	switch k {
	case token.KwVec2:
		return 2
	case token.KwVec3:
		return 3
	case token.KwVec4:
		return 4
	default:
		return 0
	}
}

// parseMatrixDimsText parses a `mat{cols}x{rows}[f|h]` keyword spelling.
// bare reports whether no scalar suffix was present (an inferred-component
// constructor use rather than a concrete typed alias).
func parseMatrixDimsText(text string) (cols, rows uint8, bare bool) {
	if len(text) < 7 || text[:3] != "mat" {
		return 0, 0, false
	}
	rest := text[3:]
	if len(rest) < 3 || rest[1] != 'x' {
		return 0, 0, false
	}
	cols = rest[0] - '0'
	rows = rest[2] - '0'
	return cols, rows, len(rest) == 3
}

func (l *lowerer) lowerUnaryExpr(n *syntax.Node, span source.Span) ExprID {
	var opTok token.Kind
	var operand syntax.NodeID
	for _, c := range n.Children {
		if c.IsToken {
			opTok = c.Token.Kind
			continue
		}
		operand = c.Node
	}
	var op UnaryOp
	switch opTok {
	case token.Minus:
		op = UnNeg
	case token.Bang:
		op = UnNot
	case token.Tilde:
		op = UnBitNot
	case token.Amp:
		op = UnAddrOf
	case token.Star:
		op = UnDeref
	}
	return l.body.addExpr(Expr{Kind: ExprUnary, Span: span, Data: UnaryData{Op: op, Operand: l.lowerExpr(operand)}})
}

func (l *lowerer) lowerBinaryExprNode(n *syntax.Node, span source.Span) ExprID {
	var lhs, rhs syntax.NodeID
	var opToks []token.Kind
	seenLeft := false
	for _, c := range n.Children {
		if c.IsToken {
			opToks = append(opToks, c.Token.Kind)
			continue
		}
		if !seenLeft {
			lhs = c.Node
			seenLeft = true
		} else {
			rhs = c.Node
		}
	}
	return l.body.addExpr(Expr{
		Kind: ExprBinary,
		Span: span,
		Data: BinaryData{Op: binOpFromTokens(opToks), Left: l.lowerExpr(lhs), Right: l.lowerExpr(rhs)},
	})
}

// binOpFromTokens maps a BinaryExpr node's operator token run to a BinOp.
// Shift operators are recombined here from the two single Lt/Gt tokens the
// lexer emits.
func binOpFromTokens(toks []token.Kind) BinOp {
	if len(toks) == 2 {
		switch toks[0] {
		case token.Lt:
			return BinShl
		case token.Gt:
			return BinShr
		}
	}
	if len(toks) == 0 {
		return BinAdd
	}
	switch toks[0] {
	case token.PipePipe:
		return BinOrOr
	case token.AmpAmp:
		return BinAndAnd
	case token.Pipe:
		return BinBitOr
	case token.Caret:
		return BinBitXor
	case token.Amp:
		return BinBitAnd
	case token.EqEq:
		return BinEq
	case token.BangEq:
		return BinNe
	case token.Lt:
		return BinLt
	case token.LtEq:
		return BinLe
	case token.Gt:
		return BinGt
	case token.GtEq:
		return BinGe
	case token.Plus:
		return BinAdd
	case token.Minus:
		return BinSub
	case token.Star:
		return BinMul
	case token.Slash:
		return BinDiv
	case token.Percent:
		return BinRem
	default:
		return BinAdd
	}
}

// lowerBitcastExpr lowers `bitcast<T>(expr)`. The parser emits the
// generic-args node directly as a child (no enclosing TypeRef wrapper)
// since bitcast is not itself a type keyword.
func (l *lowerer) lowerBitcastExpr(n *syntax.Node, span source.Span) ExprID {
	var generics, value syntax.NodeID
	for _, c := range n.Children {
		if c.IsToken {
			continue
		}
		if l.tree.Node(c.Node).Kind == syntax.KindTypeGenericArgs {
			generics = c.Node
		} else {
			value = c.Node
		}
	}
	var typeRef syntax.NodeID
	if generics.IsValid() {
		typeRef = l.firstChildNode(l.tree.Node(generics), syntax.KindTypeRef)
	}
	return l.body.addExpr(Expr{Kind: ExprBitcast, Span: span, Data: BitcastData{TypeRef: typeRef, Value: l.lowerExpr(value)}})
}
