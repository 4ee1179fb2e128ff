package hir

import (
	"wgsla/internal/source"
	"wgsla/internal/syntax"
)

// ExprKind enumerates the expression forms a Body's expression arena can
// hold.
type ExprKind uint8

const (
	ExprMissing ExprKind = iota
	ExprLiteral
	ExprPath
	ExprField
	ExprIndex
	ExprCall
	ExprUnary
	ExprBinary
	ExprBitcast
)

func (k ExprKind) String() string {
	switch k {
	case ExprMissing:
		return "Missing"
	case ExprLiteral:
		return "Literal"
	case ExprPath:
		return "Path"
	case ExprField:
		return "Field"
	case ExprIndex:
		return "Index"
	case ExprCall:
		return "Call"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprBitcast:
		return "Bitcast"
	default:
		return "Unknown"
	}
}

// Expr is one arena entry: a kind tag, its span, and a kind-specific
// payload. Types are never stored here — they live in the inference
// result keyed by ExprID, so a Body can be built once and re-typed across
// revisions without touching the arena.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Data ExprData
}

// ExprData tags the per-kind payload types below.
type ExprData interface{ exprData() }

// LiteralKind distinguishes a literal expression's lexical form. The
// actual numeric value is parsed later, during inference, once the
// target type (and therefore width/signedness) is known.
type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
)

// LiteralData holds ExprLiteral.
type LiteralData struct {
	Kind LiteralKind
	Raw  string // exact source spelling, suffix included
}

func (LiteralData) exprData() {}

// PathData holds ExprPath: a bare name, resolved later by the resolver.
type PathData struct {
	Name source.StringID
}

func (PathData) exprData() {}

// FieldData holds ExprField.
type FieldData struct {
	Base ExprID
	Name source.StringID
}

func (FieldData) exprData() {}

// IndexData holds ExprIndex.
type IndexData struct {
	Base  ExprID
	Index ExprID
}

func (IndexData) exprData() {}

// CalleeKind distinguishes the five callee forms a Call expression can
// have: a name to resolve, an explicit type-initializer, or one
// of the three inferred-component constructor shorthands (vector,
// matrix, array).
type CalleeKind uint8

const (
	CalleeName CalleeKind = iota
	CalleeTypeRef
	CalleeInferredVector
	CalleeInferredMatrix
	CalleeInferredArray
)

// Callee is Call's callee payload.
type Callee struct {
	Kind CalleeKind

	Name source.StringID // CalleeName

	TypeRef syntax.NodeID // CalleeTypeRef: the explicit KindTypeRef CST node

	VectorSize uint8 // CalleeInferredVector: 2, 3, or 4

	MatrixCols uint8 // CalleeInferredMatrix
	MatrixRows uint8
}

// CallData holds ExprCall.
type CallData struct {
	Callee Callee
	Args   []ExprID
}

func (CallData) exprData() {}

// UnaryOp enumerates unary operators, independent of token spelling.
type UnaryOp uint8

const (
	UnNeg    UnaryOp = iota // -x
	UnNot                   // !x
	UnBitNot                // ~x
	UnAddrOf                // &x
	UnDeref                 // *x
)

// UnaryData holds ExprUnary.
type UnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

func (UnaryData) exprData() {}

// BinOp enumerates binary operators, independent of token spelling. A
// separate enum from the parser's (rather than a shared import) keeps
// hir decoupled from the parser package — lowering reclassifies straight
// from token.Kind.
type BinOp uint8

const (
	BinOrOr BinOp = iota
	BinAndAnd
	BinBitOr
	BinBitXor
	BinBitAnd
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinShl
	BinShr
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinRem
)

// BinaryData holds ExprBinary.
type BinaryData struct {
	Op          BinOp
	Left, Right ExprID
}

func (BinaryData) exprData() {}

// BitcastData holds ExprBitcast.
type BitcastData struct {
	TypeRef syntax.NodeID // the KindTypeRef inside bitcast<T>(...)'s generic arg
	Value   ExprID
}

func (BitcastData) exprData() {}
