package infer

import (
	"wgsla/internal/diag"
	"wgsla/internal/hir"
	"wgsla/internal/syntax"
	"wgsla/internal/types"
)

// typeStmt walks one statement "Statement typing", recursing into
// nested statements and delegating expression positions to typeExpr. It
// never returns early on a diagnosed problem: every reachable sub-
// statement and sub-expression is still visited so the body ends up fully
// typed even when an earlier statement was malformed.
func (inf *inferer) typeStmt(id hir.StmtID) {
	s := inf.body.Stmt(id)
	switch s.Kind {
	case hir.StmtMissing:
		// nothing to type

	case hir.StmtCompound:
		d := s.Data.(hir.CompoundData)
		inf.res.Push()
		for _, child := range d.Children {
			inf.typeStmt(child)
		}
		inf.res.Pop()

	case hir.StmtVariable:
		inf.typeVariable(s, s.Data.(hir.BindingStmtData))

	case hir.StmtConst, hir.StmtLet:
		inf.typeConstLet(s, s.Data.(hir.BindingStmtData))

	case hir.StmtReturn:
		inf.typeReturn(s, s.Data.(hir.ReturnData))

	case hir.StmtAssignment:
		inf.typeAssignment(s, s.Data.(hir.AssignData))

	case hir.StmtCompoundAssignment:
		inf.typeCompoundAssignment(s, s.Data.(hir.CompoundAssignData))

	case hir.StmtIncrDecr:
		inf.typeIncrDecr(s, s.Data.(hir.IncrDecrData))

	case hir.StmtIf:
		inf.typeIf(s.Data.(hir.IfData))

	case hir.StmtWhile:
		d := s.Data.(hir.WhileData)
		inf.checkBool(inf.exprSpan(d.Cond), inf.unref(inf.typeExpr(d.Cond)))
		inf.typeStmt(d.Body)

	case hir.StmtFor:
		inf.typeFor(s.Data.(hir.ForData))

	case hir.StmtLoop:
		inf.typeStmt(s.Data.(hir.LoopData).Body)

	case hir.StmtSwitch:
		inf.typeSwitch(s.Data.(hir.SwitchData))

	case hir.StmtBreak, hir.StmtContinue, hir.StmtDiscard, hir.StmtFallthrough:
		// control statements carry no expressions to type

	case hir.StmtContinuing:
		inf.typeStmt(s.Data.(hir.ContinuingData).Body)

	case hir.StmtExprStmt:
		if d := s.Data.(hir.ExprStmtData); d.Expr != 0 {
			inf.typeExpr(d.Expr)
		}
	}
}

// typeVariable implements `var` declarations: the binding always takes a
// Reference type, qualified with the declared (or default) address space
// and access mode.
func (inf *inferer) typeVariable(s *hir.Stmt, d hir.BindingStmtData) {
	declType, haveDecl := inf.lowerOptionalType(d.DeclType)
	var initType types.TypeID
	haveInit := d.Init != 0
	if haveInit {
		initType = inf.unref(inf.typeExpr(d.Init))
	}

	var valueType types.TypeID
	switch {
	case haveDecl && haveInit:
		inf.checkExact(inf.exprSpan(d.Init), declType, initType)
		valueType = declType
	case haveDecl:
		valueType = declType
	case haveInit:
		valueType = initType
	default:
		valueType = inf.in.Error()
	}

	space := types.AddressSpaceFunction
	access := types.AccessReadWrite
	if d.HasQualifier {
		space = d.AddressSpace
		access = d.Access
	}
	refType := inf.in.Intern(types.Reference(space, valueType, access))
	inf.setBindingType(d.Binding, refType)
	inf.declareBinding(d.Binding)
}

// typeConstLet implements `let`/`const`: the binding stores the value type
// directly, never wrapped in a Reference.
func (inf *inferer) typeConstLet(s *hir.Stmt, d hir.BindingStmtData) {
	declType, haveDecl := inf.lowerOptionalType(d.DeclType)
	var initType types.TypeID
	haveInit := d.Init != 0
	if haveInit {
		initType = inf.unref(inf.typeExpr(d.Init))
	}

	var valueType types.TypeID
	switch {
	case haveDecl && haveInit:
		inf.checkExact(inf.exprSpan(d.Init), declType, initType)
		valueType = declType
	case haveDecl:
		valueType = declType
	case haveInit:
		valueType = initType
	default:
		valueType = inf.in.Error()
	}
	inf.setBindingType(d.Binding, valueType)
	inf.declareBinding(d.Binding)
}

// lowerOptionalType lowers an optional `: type` annotation node, reporting
// whether one was present at all (a zero NodeID means "no annotation",
// distinct from an annotation that itself lowers to Error).
func (inf *inferer) lowerOptionalType(ref syntax.NodeID) (types.TypeID, bool) {
	if !ref.IsValid() {
		return inf.in.Error(), false
	}
	return inf.tr.Lower(ref), true
}

func (inf *inferer) declareBinding(id hir.BindingID) {
	b := inf.body.Binding(id)
	if b == nil {
		return
	}
	inf.res.Declare(b.Name, id)
}

// typeReturn implements the return-type adoption rule: a function with
// a declared return type expected-types every `return <expr>` against it;
// one without adopts the first observed return expression's type as the
// body's type and leaves later returns unchecked against anything but that
// adopted type.
func (inf *inferer) typeReturn(s *hir.Stmt, d hir.ReturnData) {
	span := s.Span
	var valType types.TypeID
	if d.Value != 0 {
		valType = inf.unref(inf.typeExpr(d.Value))
		span = inf.exprSpan(d.Value)
	} else {
		valType = inf.in.Error()
	}

	switch {
	case inf.returnDeclared:
		// An unsuffixed integer literal keeps its I32 type but is accepted
		// against a declared u32 return type.
		if e := inf.body.Expr(d.Value); d.Value != 0 && e.Kind == hir.ExprLiteral && inf.result.BodyType == inf.in.Builtins().U32 {
			if lit, ok := e.Data.(hir.LiteralData); ok && lit.Kind == hir.LitInt && lit.Raw != "" {
				if last := lit.Raw[len(lit.Raw)-1]; last != 'u' && last != 'i' {
					break
				}
			}
		}
		inf.checkExact(span, inf.result.BodyType, valType)
	case !inf.returnAdopted:
		inf.result.BodyType = valType
		inf.returnAdopted = true
	default:
		inf.checkExact(span, inf.result.BodyType, valType)
	}
}

func (inf *inferer) typeAssignment(s *hir.Stmt, d hir.AssignData) {
	leftType := inf.typeExpr(d.Left)
	inner, isRef, _, _ := inf.refInfo(leftType)
	if !isRef {
		if leftType != inf.in.Error() {
			if fr, ok := inf.result.FieldResolutions[d.Left]; ok && fr.Kind == FieldResolutionSwizzle && fr.SwizzleSameComponent {
				inf.diagnose(inf.exprSpan(d.Left), diag.SwizzleWriteTarget, "cannot assign to a swizzle with repeated components")
			} else {
				inf.diagnose(inf.exprSpan(d.Left), diag.AssignTargetNotReference, "assignment target is not a reference")
			}
		}
	}
	rightType := inf.unref(inf.typeExpr(d.Right))
	if isRef {
		inf.checkExact(inf.exprSpan(d.Right), inner, rightType)
	}
}

var binOpByCompoundAssign = map[hir.CompoundAssignOp]hir.BinOp{
	hir.CAAdd: hir.BinAdd,
	hir.CASub: hir.BinSub,
	hir.CAMul: hir.BinMul,
	hir.CADiv: hir.BinDiv,
	hir.CARem: hir.BinRem,
	hir.CAAnd: hir.BinBitAnd,
	hir.CAOr:  hir.BinBitOr,
	hir.CAXor: hir.BinBitXor,
}

// typeCompoundAssignment: the right side is expected-typed against the operator's own
// return type, then that return type is separately required to equal the
// left's inner type, which can double-report a single mismatch. This is
// intentional and must not be "fixed" into one check.
func (inf *inferer) typeCompoundAssignment(s *hir.Stmt, d hir.CompoundAssignData) {
	leftType := inf.typeExpr(d.Left)
	inner, isRef, _, _ := inf.refInfo(leftType)
	if !isRef {
		if leftType != inf.in.Error() {
			if fr, ok := inf.result.FieldResolutions[d.Left]; ok && fr.Kind == FieldResolutionSwizzle && fr.SwizzleSameComponent {
				inf.diagnose(inf.exprSpan(d.Left), diag.SwizzleWriteTarget, "cannot assign to a swizzle with repeated components")
			} else {
				inf.diagnose(inf.exprSpan(d.Left), diag.AssignTargetNotReference, "assignment target is not a reference")
			}
		}
		inf.typeExpr(d.Right)
		return
	}

	rightType := inf.unref(inf.typeExpr(d.Right))
	op := binOpByCompoundAssign[d.Op]
	overloads := inf.bi.Binary(op)
	resultType, _, ok := inf.bi.Resolve(overloads, []types.TypeID{inner, rightType})
	if !ok {
		if inner != inf.in.Error() && rightType != inf.in.Error() {
			inf.diagnose(inf.exprSpan(d.Right), diag.NoBuiltinOverload,
				"no overload of compound-assignment operator found for (%s, %s)",
				types.Label(inf.strs, inf.in, inner), types.Label(inf.strs, inf.in, rightType))
		}
		return
	}
	inf.checkExact(inf.exprSpan(d.Right), inner, resultType)
}

func (inf *inferer) typeIncrDecr(s *hir.Stmt, d hir.IncrDecrData) {
	targetType := inf.typeExpr(d.Target)
	inner, isRef, _, _ := inf.refInfo(targetType)
	if !isRef {
		if targetType != inf.in.Error() {
			inf.diagnose(inf.exprSpan(d.Target), diag.AssignTargetNotReference, "increment/decrement target is not a reference")
		}
		return
	}
	if inner == inf.in.Error() {
		return
	}
	if !types.IsIntegerScalar(inf.in, inner) {
		inf.diagnose(inf.exprSpan(d.Target), diag.TypeMismatch,
			"increment/decrement requires an integer scalar, found %s", types.Label(inf.strs, inf.in, inner))
	}
}

func (inf *inferer) typeIf(d hir.IfData) {
	inf.checkBool(inf.exprSpan(d.Cond), inf.unref(inf.typeExpr(d.Cond)))
	inf.typeStmt(d.Then)
	for _, ei := range d.ElseIfs {
		inf.checkBool(inf.exprSpan(ei.Cond), inf.unref(inf.typeExpr(ei.Cond)))
		inf.typeStmt(ei.Then)
	}
	if d.Else != 0 {
		inf.typeStmt(d.Else)
	}
}

func (inf *inferer) typeFor(d hir.ForData) {
	inf.res.Push()
	if d.Init != 0 {
		inf.typeStmt(d.Init)
	}
	if d.Cond != 0 {
		inf.checkBool(inf.exprSpan(d.Cond), inf.unref(inf.typeExpr(d.Cond)))
	}
	if d.Cont != 0 {
		inf.typeStmt(d.Cont)
	}
	inf.typeStmt(d.Body)
	inf.res.Pop()
}

func (inf *inferer) typeSwitch(d hir.SwitchData) {
	scrutType := inf.unref(inf.typeExpr(d.Scrutinee))
	for _, c := range d.Cases {
		for _, sel := range c.Selectors {
			selType := inf.unref(inf.typeExpr(sel))
			inf.checkExact(inf.exprSpan(sel), scrutType, selType)
		}
		inf.typeStmt(c.Body)
	}
	if d.Default != 0 {
		inf.typeStmt(d.Default)
	}
}
