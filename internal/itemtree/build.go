package itemtree

import (
	"wgsla/internal/source"
	"wgsla/internal/syntax"
	"wgsla/internal/token"
	"wgsla/internal/types"
)

// Build walks a parsed file's CST root and produces its item summary.
// Building is a pure function of the tree and the shared string
// interner — the query engine's `item_tree` query wraps this directly.
func Build(tree *syntax.Tree, file source.FileID, strs *source.Interner) *Tree {
	out := &Tree{File: file}
	out.Items = append(out.Items, Item{}) // reserve index 0

	root := tree.Node(tree.Root)
	if root == nil {
		return out
	}
	for _, c := range root.Children {
		if c.IsToken {
			continue
		}
		n := tree.Node(c.Node)
		if n == nil {
			continue
		}
		var it Item
		switch n.Kind {
		case syntax.KindFnItem:
			it = buildFn(tree, c.Node, n, strs)
		case syntax.KindStructItem:
			it = buildStruct(tree, c.Node, n, strs)
		case syntax.KindVarItem:
			it = buildVar(tree, c.Node, n, strs)
		case syntax.KindConstItem:
			it = buildConstLike(tree, c.Node, n, strs, ItemConst)
		case syntax.KindOverrideItem:
			it = buildConstLike(tree, c.Node, n, strs, ItemOverride)
		case syntax.KindAliasItem:
			it = buildAlias(tree, c.Node, n, strs)
		case syntax.KindImportItem:
			it = buildImport(tree, c.Node, n)
		default:
			continue // error items contribute no summary entry
		}
		it.ID = ItemID{File: file, Index: uint32(len(out.Items))}
		it.Node = c.Node
		out.Items = append(out.Items, it)
	}
	return out
}

func buildFn(tree *syntax.Tree, id syntax.NodeID, n *syntax.Node, strs *source.Interner) Item {
	name, nameSpan := findName(n)
	var params []Param
	if pl := findChildNode(tree, n, syntax.KindParamList); pl.IsValid() {
		params = buildParams(tree, pl, strs)
	}
	var ret syntax.NodeID
	for _, c := range n.Children {
		if !c.IsToken && tree.Node(c.Node).Kind == syntax.KindTypeRef {
			ret = c.Node
			break
		}
	}
	body := findChildNode(tree, n, syntax.KindBlock)
	return Item{
		Kind:       ItemFn,
		Name:       strs.Intern(name),
		NameSpan:   nameSpan,
		Attrs:      findAttrs(tree, n, strs),
		Params:     params,
		ReturnType: ret,
		Body:       body,
	}
}

func buildParams(tree *syntax.Tree, listID syntax.NodeID, strs *source.Interner) []Param {
	list := tree.Node(listID)
	if list == nil {
		return nil
	}
	var out []Param
	for _, c := range list.Children {
		if c.IsToken || tree.Node(c.Node).Kind != syntax.KindParam {
			continue
		}
		pn := tree.Node(c.Node)
		name, span := findName(pn)
		out = append(out, Param{
			Name:     strs.Intern(name),
			NameSpan: span,
			Type:     findChildNode(tree, pn, syntax.KindTypeRef),
			Attrs:    findAttrs(tree, pn, strs),
		})
	}
	return out
}

func buildStruct(tree *syntax.Tree, id syntax.NodeID, n *syntax.Node, strs *source.Interner) Item {
	name, nameSpan := findName(n)
	var fields []Field
	for _, c := range n.Children {
		if c.IsToken || tree.Node(c.Node).Kind != syntax.KindField {
			continue
		}
		fn := tree.Node(c.Node)
		fname, fspan := findName(fn)
		fields = append(fields, Field{
			Name:     strs.Intern(fname),
			NameSpan: fspan,
			Type:     findChildNode(tree, fn, syntax.KindTypeRef),
			Attrs:    findAttrs(tree, fn, strs),
		})
	}
	return Item{
		Kind:     ItemStruct,
		Name:     strs.Intern(name),
		NameSpan: nameSpan,
		Attrs:    findAttrs(tree, n, strs),
		Fields:   fields,
	}
}

func buildVar(tree *syntax.Tree, id syntax.NodeID, n *syntax.Node, strs *source.Interner) Item {
	name, nameSpan := findName(n)
	qual := buildQualifier(tree, n, strs)
	return Item{
		Kind:      ItemVar,
		Name:      strs.Intern(name),
		NameSpan:  nameSpan,
		Attrs:     findAttrs(tree, n, strs),
		Type:      findChildNode(tree, n, syntax.KindTypeRef),
		Init:      findInit(tree, n),
		Qualifier: qual,
	}
}

func buildQualifier(tree *syntax.Tree, n *syntax.Node, strs *source.Interner) VarQualifier {
	qID := findChildNode(tree, n, syntax.KindVarQualifier)
	if !qID.IsValid() {
		return VarQualifier{}
	}
	qn := tree.Node(qID)
	var idents []string
	var identSpans []source.Span
	for _, c := range qn.Children {
		if c.IsToken && c.Token.Kind == token.Ident {
			idents = append(idents, c.Token.Text)
			identSpans = append(identSpans, c.Token.Span)
		}
	}
	q := VarQualifier{Present: true, Node: qID}
	if len(idents) > 0 {
		q.AddressSpace, q.AddressSpaceOK = parseAddressSpace(idents[0])
		q.AddressSpaceText = strs.Intern(idents[0])
	}
	if len(idents) > 1 {
		q.AccessExplicit = true
		q.Access, q.AccessOK = parseAccessMode(idents[1])
		q.AccessText = strs.Intern(idents[1])
	} else if q.AddressSpaceOK {
		q.Access = q.AddressSpace.DefaultAccessMode()
		q.AccessOK = true
	}
	return q
}

func parseAddressSpace(s string) (types.AddressSpace, bool) {
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

func parseAccessMode(s string) (types.AccessMode, bool) {
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

func buildConstLike(tree *syntax.Tree, id syntax.NodeID, n *syntax.Node, strs *source.Interner, kind ItemKind) Item {
	name, nameSpan := findName(n)
	return Item{
		Kind:     kind,
		Name:     strs.Intern(name),
		NameSpan: nameSpan,
		Attrs:    findAttrs(tree, n, strs),
		Type:     findChildNode(tree, n, syntax.KindTypeRef),
		Init:     findInit(tree, n),
	}
}

func buildAlias(tree *syntax.Tree, id syntax.NodeID, n *syntax.Node, strs *source.Interner) Item {
	name, nameSpan := findName(n)
	return Item{
		Kind:     ItemAlias,
		Name:     strs.Intern(name),
		NameSpan: nameSpan,
		Attrs:    findAttrs(tree, n, strs),
		Type:     findChildNode(tree, n, syntax.KindTypeRef),
	}
}

func buildImport(tree *syntax.Tree, id syntax.NodeID, n *syntax.Node) Item {
	it := Item{Kind: ItemImport}
	var segments []string
	for _, c := range n.Children {
		if !c.IsToken {
			continue
		}
		switch c.Token.Kind {
		case token.StringLit:
			it.ImportPath = c.Token.Text
			it.ImportIsPath = false
		case token.Ident:
			segments = append(segments, c.Token.Text)
			it.ImportIsPath = true
		}
	}
	if it.ImportIsPath {
		it.ImportPath = joinPath(segments)
	}
	return it
}

func joinPath(segments []string) string {
	out := ""
	for i, s := range segments {
		if i > 0 {
			out += "::"
		}
		out += s
	}
	return out
}

// findName returns the first direct Ident-token child's text and span —
// valid for every item kind, since the name always immediately follows
// the introducing keyword as a bare identifier token.
func findName(n *syntax.Node) (string, source.Span) {
	for _, c := range n.Children {
		if c.IsToken && c.Token.Kind == token.Ident {
			return c.Token.Text, c.Token.Span
		}
	}
	return "", source.Span{}
}

// findInit returns the expression child that follows the item's `=`
// token, if any — the last non-TypeRef expression node in the item.
func findInit(tree *syntax.Tree, n *syntax.Node) syntax.NodeID {
	sawEq := false
	for _, c := range n.Children {
		if c.IsToken && c.Token.Kind == token.Eq {
			sawEq = true
			continue
		}
		if sawEq && !c.IsToken {
			return c.Node
		}
	}
	return 0
}

func findChildNode(tree *syntax.Tree, n *syntax.Node, kind syntax.Kind) syntax.NodeID {
	for _, c := range n.Children {
		if !c.IsToken && tree.Node(c.Node).Kind == kind {
			return c.Node
		}
	}
	return 0
}

func findAttrs(tree *syntax.Tree, n *syntax.Node, strs *source.Interner) []Attr {
	listID := findChildNode(tree, n, syntax.KindAttrList)
	if !listID.IsValid() {
		return nil
	}
	list := tree.Node(listID)
	var out []Attr
	for _, c := range list.Children {
		if c.IsToken || tree.Node(c.Node).Kind != syntax.KindAttr {
			continue
		}
		an := tree.Node(c.Node)
		name, _ := findName(an)
		var args []syntax.NodeID
		if argsID := findChildNode(tree, an, syntax.KindAttrArgs); argsID.IsValid() {
			argsNode := tree.Node(argsID)
			for _, ac := range argsNode.Children {
				if !ac.IsToken {
					args = append(args, ac.Node)
				}
			}
		}
		out = append(out, Attr{Name: strs.Intern(name), Args: args, Node: c.Node})
	}
	return out
}
