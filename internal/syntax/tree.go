package syntax

import (
	"wgsla/internal/source"
	"wgsla/internal/token"
)

// NodeID is a 1-based index into a Tree's node arena; zero is "no node".
type NodeID uint32

// IsValid reports whether id refers to an allocated node.
func (id NodeID) IsValid() bool { return id != 0 }

// Child is either a child node (IsToken == false) or a leaf token.
type Child struct {
	IsToken bool
	Node    NodeID
	Token   token.Token
}

// Node is one CST node: a kind tag, its full span (including any leading
// trivia and error text under it), and its ordered children. Sibling
// children tile the node's span without overlap or gap.
type Node struct {
	Kind     Kind
	Span     source.Span
	Children []Child
	// Expected is populated on error nodes: the set of token kinds the
	// parser would have accepted at this position, used to render useful
	// "expected X, found Y" messages.
	Expected []token.Kind
}

// Tree is the lossless CST for one file.
type Tree struct {
	File  source.FileID
	nodes []Node // index 0 unused; NodeID is 1-based
	Root  NodeID
}

// Node returns the node for id.
func (t *Tree) Node(id NodeID) *Node {
	if !id.IsValid() {
		return nil
	}
	return &t.nodes[id-1]
}

// alloc appends n and returns its NodeID.
func (t *Tree) alloc(n Node) NodeID {
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes)) //nolint:gosec // bounded by source file size
}

// Text renders a node's full source text by concatenating every token
// (with its leading trivia) reachable beneath it — this is what makes the
// tree lossless: Text(Root) always equals the original input.
func (t *Tree) Text(id NodeID) string {
	var out []byte
	t.walkTokens(id, func(tok token.Token) {
		for _, tr := range tok.Leading {
			out = append(out, tr.Text...)
		}
		out = append(out, tok.Text...)
	})
	return string(out)
}

func (t *Tree) walkTokens(id NodeID, f func(token.Token)) {
	n := t.Node(id)
	if n == nil {
		return
	}
	for _, c := range n.Children {
		if c.IsToken {
			f(c.Token)
		} else {
			t.walkTokens(c.Node, f)
		}
	}
}

// Tokens returns every token leaf under id, in source order.
func (t *Tree) Tokens(id NodeID) []token.Token {
	var out []token.Token
	t.walkTokens(id, func(tok token.Token) { out = append(out, tok) })
	return out
}

// Children returns the direct child node IDs of id (tokens are skipped).
func (t *Tree) ChildNodes(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var out []NodeID
	for _, c := range n.Children {
		if !c.IsToken {
			out = append(out, c.Node)
		}
	}
	return out
}

// NodeAtOffset returns the innermost node containing offset.
func (t *Tree) NodeAtOffset(offset uint32) NodeID {
	cur := t.Root
	for {
		n := t.Node(cur)
		if n == nil || !n.Span.Contains(offset) && n.Span.End != offset {
			return cur
		}
		found := NodeID(0)
		for _, c := range n.Children {
			if c.IsToken {
				continue
			}
			child := t.Node(c.Node)
			if child != nil && (child.Span.Contains(offset) || child.Span.End == offset) {
				found = c.Node
				break
			}
		}
		if !found.IsValid() {
			return cur
		}
		cur = found
	}
}
