package syntax

import (
	"wgsla/internal/source"
	"wgsla/internal/token"
)

// Builder constructs a Tree from a flat token stream using a stack of
// open node frames, mirroring the start_node/token/finish_node shape
// common to lossless-tree builders; unlike a rowan green-tree builder it
// allocates directly into the arena rather than building detached,
// shareable subtrees, since this engine's incrementality lives in the
// query layer instead (see package doc).
type Builder struct {
	toks []token.Token
	pos  int
	tree *Tree

	stack []frame
}

type frame struct {
	kind     Kind
	start    int // token index where the node started
	children []Child
	expected []token.Kind
}

// NewBuilder creates a Builder over a token stream for file.
func NewBuilder(file source.FileID, toks []token.Token) *Builder {
	return &Builder{
		toks: toks,
		tree: &Tree{File: file},
	}
}

// Peek returns the kind of the token n positions ahead (0 = current),
// skipping nothing: trivia is attached to tokens, not a token of its own.
func (b *Builder) Peek(n int) token.Kind {
	i := b.pos + n
	if i >= len(b.toks) {
		return token.EOF
	}
	return b.toks[i].Kind
}

// Current returns the full current token.
func (b *Builder) Current() token.Token {
	return b.CurrentAt(0)
}

// CurrentAt returns the full token n positions ahead of the cursor.
func (b *Builder) CurrentAt(n int) token.Token {
	i := b.pos + n
	if i >= len(b.toks) {
		return b.toks[len(b.toks)-1] // EOF
	}
	return b.toks[i]
}

// AtEOF reports whether the cursor has reached the EOF token.
func (b *Builder) AtEOF() bool { return b.Peek(0) == token.EOF }

// StartNode opens a new node frame of the given kind.
func (b *Builder) StartNode(kind Kind) {
	b.stack = append(b.stack, frame{kind: kind, start: b.pos})
}

// Checkpoint marks a position within the innermost open frame's children
// to which a later StartNodeAt can retroactively wrap a new parent. This
// is what lets a Pratt parser build `lhs op rhs` as one BinaryExpr node
// after already having parsed (and "finished") lhs: lhs's top-level nodes
// live in the current frame's children list until StartNodeAt lifts
// everything after the checkpoint into a new child frame.
type Checkpoint int

// Checkpoint returns a marker at the current end of the innermost open
// frame's children.
func (b *Builder) Checkpoint() Checkpoint {
	if len(b.stack) == 0 {
		return 0
	}
	top := &b.stack[len(b.stack)-1]
	return Checkpoint(len(top.children))
}

// StartNodeAt opens a new frame of the given kind, seeded with every child
// the innermost open frame has accumulated since checkpoint. Those
// children are removed from the enclosing frame so they end up nested
// inside the new node once it is finished.
func (b *Builder) StartNodeAt(checkpoint Checkpoint, kind Kind) {
	if len(b.stack) == 0 {
		b.StartNode(kind)
		return
	}
	top := &b.stack[len(b.stack)-1]
	idx := int(checkpoint)
	if idx > len(top.children) {
		idx = len(top.children)
	}
	lifted := append([]Child(nil), top.children[idx:]...)
	top.children = top.children[:idx]
	start := top.start
	if len(lifted) > 0 && !lifted[0].IsToken {
		// best-effort: keep the frame's start token index meaningful for
		// debugging; span computation itself derives purely from children.
		_ = start
	}
	b.stack = append(b.stack, frame{kind: kind, start: top.start, children: lifted})
}

// Bump consumes the current token as a leaf child of the innermost open
// frame and advances the cursor.
func (b *Builder) Bump() token.Token {
	tok := b.Current()
	if b.pos < len(b.toks) {
		b.pos++
	}
	b.pushChild(Child{IsToken: true, Token: tok})
	return tok
}

// SetExpected records the recovery-set kinds expected at an error point,
// attached to the currently-open frame (for error-node rendering).
func (b *Builder) SetExpected(kinds []token.Kind) {
	if len(b.stack) == 0 {
		return
	}
	top := &b.stack[len(b.stack)-1]
	top.expected = kinds
}

func (b *Builder) pushChild(c Child) {
	if len(b.stack) == 0 {
		return
	}
	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, c)
}

// FinishNode closes the innermost open frame, allocates it into the tree,
// and attaches it as a child of the next frame up (or sets it as Root if
// the stack is now empty).
func (b *Builder) FinishNode() NodeID {
	n := len(b.stack)
	top := b.stack[n-1]
	b.stack = b.stack[:n-1]

	span := b.spanOf(top)
	id := b.tree.alloc(Node{
		Kind:     top.kind,
		Span:     span,
		Children: top.children,
		Expected: top.expected,
	})
	if len(b.stack) == 0 {
		b.tree.Root = id
	} else {
		b.pushChild(Child{IsToken: false, Node: id})
	}
	return id
}

func (b *Builder) spanOf(f frame) source.Span {
	if len(f.children) == 0 {
		// empty node: zero-width span at the current token's start,
		// including leading trivia so tiling still holds.
		cur := b.Current()
		start := cur.Span.Start
		if len(cur.Leading) > 0 {
			start = cur.Leading[0].Span.Start
		}
		return source.Span{File: b.tree.File, Start: start, End: start}
	}
	var span source.Span
	first := true
	for _, c := range f.children {
		var s source.Span
		if c.IsToken {
			s = c.Token.Span
			if len(c.Token.Leading) > 0 {
				s.Start = c.Token.Leading[0].Span.Start
			}
		} else {
			s = b.tree.Node(c.Node).Span
		}
		if first {
			span = s
			first = false
		} else {
			span = span.Cover(s)
		}
	}
	return span
}

// Node returns an already-finished node. Finished nodes live in the
// tree's arena immediately, so callers may inspect a subtree they just
// closed while outer frames are still open.
func (b *Builder) Node(id NodeID) *Node {
	return b.tree.Node(id)
}

// Finish returns the completed Tree. The builder must have exactly one
// open-then-closed root frame (StartNode(KindFile) ... FinishNode()).
func (b *Builder) Finish() *Tree {
	return b.tree
}
