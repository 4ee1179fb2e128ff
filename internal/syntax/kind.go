// Package syntax implements the lossless concrete syntax tree (CST): every
// byte of the input, including trivia and error text, is reachable through
// the tree. The tree is arena-backed rather than a full red-green/rowan
// tree; incremental
// reuse across edits is provided one layer up by the query engine, which
// re-runs `parse` as a single memoized unit per revision.
package syntax

import "fmt"

// Kind tags a syntax node. Token leaves carry their own token.Kind instead.
type Kind uint16

const (
	KindError Kind = iota
	KindFile

	// Items
	KindFnItem
	KindStructItem
	KindVarItem
	KindConstItem
	KindOverrideItem
	KindAliasItem
	KindImportItem
	KindErrorItem

	KindAttrList
	KindAttr
	KindAttrArgs

	KindParamList
	KindParam
	KindFieldList
	KindField
	KindVarQualifier

	// Statements
	KindBlock
	KindLetStmt
	KindConstStmt
	KindVarStmt
	KindAssignStmt
	KindCompoundAssignStmt
	KindIncrDecrStmt
	KindIfStmt
	KindWhileStmt
	KindForStmt
	KindForHeader
	KindLoopStmt
	KindSwitchStmt
	KindSwitchCase
	KindSwitchDefault
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindDiscardStmt
	KindContinuingStmt
	KindFallthroughStmt
	KindExprStmt
	KindErrorStmt

	// Expressions
	KindLiteralExpr
	KindPathExpr
	KindFieldExpr
	KindIndexExpr
	KindCallExpr
	KindArgList
	KindUnaryExpr
	KindBinaryExpr
	KindParenExpr
	KindBitcastExpr
	KindErrorExpr

	// Type references
	KindTypeRef
	KindTypeGenericArgs
	KindErrorType

	KindToken // a bare wrapped token.Token leaf, used when no grouping applies
)

func (k Kind) String() string {
	names := [...]string{
		"Error", "File",
		"FnItem", "StructItem", "VarItem", "ConstItem", "OverrideItem", "AliasItem", "ImportItem", "ErrorItem",
		"AttrList", "Attr", "AttrArgs",
		"ParamList", "Param", "FieldList", "Field", "VarQualifier",
		"Block", "LetStmt", "ConstStmt", "VarStmt", "AssignStmt", "CompoundAssignStmt", "IncrDecrStmt",
		"IfStmt", "WhileStmt", "ForStmt", "ForHeader", "LoopStmt", "SwitchStmt", "SwitchCase", "SwitchDefault",
		"ReturnStmt", "BreakStmt", "ContinueStmt", "DiscardStmt", "ContinuingStmt", "FallthroughStmt", "ExprStmt", "ErrorStmt",
		"LiteralExpr", "PathExpr", "FieldExpr", "IndexExpr", "CallExpr", "ArgList", "UnaryExpr", "BinaryExpr",
		"ParenExpr", "BitcastExpr", "ErrorExpr",
		"TypeRef", "TypeGenericArgs", "ErrorType",
		"Token",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// IsError reports whether the kind denotes a parse-error node.
func (k Kind) IsError() bool {
	switch k {
	case KindError, KindErrorItem, KindErrorStmt, KindErrorExpr, KindErrorType:
		return true
	default:
		return false
	}
}
