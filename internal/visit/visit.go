// Package visit implements dispatch over internal/cast's closed
// Expr/Stmt variant sets as a Go type switch, per spec.md §9's design
// note: "a Go type switch is the idiomatic analogue of double
// dispatch here; do not introduce a Visitor/Accept interface pair,"
// grounded on the teacher's internal/validator package, whose
// validateStmt/validateDeclStmt dispatch every ast.Stmt/ast.Decl
// variant the same way.
package visit

import (
	"fmt"

	"github.com/HugoDaniel/gocc/internal/cast"
)

// ExprVisitor holds one callback per cast.Expr variant. A nil callback
// for a variant that is actually encountered is a programmer error and
// panics with the node's Go type, the same failure mode as an
// unhandled case in a hand-written type switch.
type ExprVisitor struct {
	BinaryOp      func(*cast.BinaryOp) error
	UnaryOp       func(*cast.UnaryOp) error
	ConditionalOp func(*cast.ConditionalOp) error
	FuncCall      func(*cast.FuncCall) error
	Identifier    func(*cast.Identifier) error
	Object        func(*cast.Object) error
	Enumerator    func(*cast.Enumerator) error
	Constant      func(*cast.Constant) error
	TempVar       func(*cast.TempVar) error
}

// Expr dispatches e to the matching callback in v.
func Expr(v ExprVisitor, e cast.Expr) error {
	switch n := e.(type) {
	case *cast.BinaryOp:
		return call(v.BinaryOp, n)
	case *cast.UnaryOp:
		return call(v.UnaryOp, n)
	case *cast.ConditionalOp:
		return call(v.ConditionalOp, n)
	case *cast.FuncCall:
		return call(v.FuncCall, n)
	case *cast.Identifier:
		return call(v.Identifier, n)
	case *cast.Object:
		return call(v.Object, n)
	case *cast.Enumerator:
		return call(v.Enumerator, n)
	case *cast.Constant:
		return call(v.Constant, n)
	case *cast.TempVar:
		return call(v.TempVar, n)
	default:
		panic(fmt.Sprintf("visit.Expr: unhandled cast.Expr variant %T", e))
	}
}

// StmtVisitor holds one callback per cast.Stmt variant.
type StmtVisitor struct {
	Declaration     func(*cast.Declaration) error
	IfStmt          func(*cast.IfStmt) error
	JumpStmt        func(*cast.JumpStmt) error
	ReturnStmt      func(*cast.ReturnStmt) error
	LabelStmt       func(*cast.LabelStmt) error
	EmptyStmt       func(*cast.EmptyStmt) error
	CompoundStmt    func(*cast.CompoundStmt) error
	FuncDef         func(*cast.FuncDef) error
	TranslationUnit func(*cast.TranslationUnit) error
}

// Stmt dispatches s to the matching callback in v.
func Stmt(v StmtVisitor, s cast.Stmt) error {
	switch n := s.(type) {
	case *cast.Declaration:
		return call(v.Declaration, n)
	case *cast.IfStmt:
		return call(v.IfStmt, n)
	case *cast.JumpStmt:
		return call(v.JumpStmt, n)
	case *cast.ReturnStmt:
		return call(v.ReturnStmt, n)
	case *cast.LabelStmt:
		return call(v.LabelStmt, n)
	case *cast.EmptyStmt:
		return call(v.EmptyStmt, n)
	case *cast.CompoundStmt:
		return call(v.CompoundStmt, n)
	case *cast.FuncDef:
		return call(v.FuncDef, n)
	case *cast.TranslationUnit:
		return call(v.TranslationUnit, n)
	default:
		panic(fmt.Sprintf("visit.Stmt: unhandled cast.Stmt variant %T", s))
	}
}

func call[T any](fn func(T) error, n T) error {
	if fn == nil {
		return nil
	}
	return fn(n)
}

// WalkChildren visits every direct child expression/statement of n
// without requiring a full ExprVisitor/StmtVisitor — used by passes
// that only care about a subset of variants (e.g. the evaluator's
// "does this subtree contain a FuncCall" scan would instead just type
// switch directly, but structural passes like a free-variable
// collector use this to avoid repeating the variant list).
func WalkChildren(e cast.Expr, onExpr func(cast.Expr)) {
	switch n := e.(type) {
	case *cast.BinaryOp:
		onExpr(n.Left)
		onExpr(n.Right)
	case *cast.UnaryOp:
		onExpr(n.Operand)
	case *cast.ConditionalOp:
		onExpr(n.Cond)
		onExpr(n.Then)
		onExpr(n.Else)
	case *cast.FuncCall:
		onExpr(n.Callee)
		for _, a := range n.Args {
			onExpr(a)
		}
	case *cast.Identifier, *cast.Object, *cast.Enumerator, *cast.Constant, *cast.TempVar:
		// leaves
	default:
		panic(fmt.Sprintf("visit.WalkChildren: unhandled cast.Expr variant %T", e))
	}
}
