package cast

import (
	"testing"

	"github.com/HugoDaniel/gocc/internal/ctype"
	"github.com/HugoDaniel/gocc/internal/token"
	"github.com/stretchr/testify/assert"
)

func TestExprBaseAccessors(t *testing.T) {
	r := ctype.NewRegistry()
	loc := token.Location{}

	c := &Constant{
		ExprBase: NewExprBase(r.IntType(), RValue, loc),
		Kind:     ConstInt,
		Int:      42,
	}

	assert.Equal(t, r.IntType(), c.ExprType())
	assert.Equal(t, RValue, c.Category())
	var _ Expr = c
}

func TestBinaryOpOperandsShareResultType(t *testing.T) {
	// spec.md §8 invariant: in every arithmetic BinaryOp, both operand
	// subtrees carry the same type as the result (conversions made
	// explicit via UnaryOp("cast") rather than left implicit).
	r := ctype.NewRegistry()
	loc := token.Location{}
	longType := r.MustArithmetic(ctype.TagSpec{LongCount: 1})
	intType := r.IntType()

	leftRaw := &Constant{ExprBase: NewExprBase(intType, RValue, loc), Kind: ConstInt, Int: 1}
	left := &UnaryOp{
		ExprBase: NewExprBase(longType, RValue, loc),
		Op:       UnaryCast,
		Operand:  leftRaw,
	}
	right := &Constant{ExprBase: NewExprBase(longType, RValue, loc), Kind: ConstInt, Int: 2}

	add := &BinaryOp{
		ExprBase: NewExprBase(longType, RValue, loc),
		Op:       BinAdd,
		Left:     left,
		Right:    right,
	}

	assert.Equal(t, add.ExprType(), add.Left.ExprType())
	assert.Equal(t, add.ExprType(), add.Right.ExprType())
}

func TestStmtKindsSatisfyStmtInterface(t *testing.T) {
	loc := token.Location{}
	var stmts = []Stmt{
		&Declaration{StmtBase: StmtBase{Loc: loc}},
		&IfStmt{StmtBase: StmtBase{Loc: loc}},
		&JumpStmt{StmtBase: StmtBase{Loc: loc}, Kind: JumpBreak},
		&ReturnStmt{StmtBase: StmtBase{Loc: loc}},
		&LabelStmt{StmtBase: StmtBase{Loc: loc}},
		&EmptyStmt{StmtBase: StmtBase{Loc: loc}},
		&CompoundStmt{StmtBase: StmtBase{Loc: loc}},
		&FuncDef{StmtBase: StmtBase{Loc: loc}},
		&TranslationUnit{StmtBase: StmtBase{Loc: loc}},
	}
	assert.Len(t, stmts, 9)
}

