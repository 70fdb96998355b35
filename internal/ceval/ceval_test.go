package ceval

import (
	"testing"

	"github.com/HugoDaniel/gocc/internal/cast"
	"github.com/HugoDaniel/gocc/internal/ctype"
	"github.com/HugoDaniel/gocc/internal/diag"
	"github.com/HugoDaniel/gocc/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intConst(r *ctype.Registry, v int64) *cast.Constant {
	return &cast.Constant{ExprBase: cast.NewExprBase(r.IntType(), cast.RValue, token.Location{}), Kind: cast.ConstInt, Int: v}
}

func binary(r *ctype.Registry, op cast.BinaryOpKind, l, rr cast.Expr) *cast.BinaryOp {
	return &cast.BinaryOp{ExprBase: cast.NewExprBase(r.IntType(), cast.RValue, token.Location{}), Op: op, Left: l, Right: rr}
}

func TestEvalIntArithmetic(t *testing.T) {
	r := ctype.NewRegistry()
	ev := New(Int32)

	expr := binary(r, cast.BinAdd, intConst(r, 2), binary(r, cast.BinMul, intConst(r, 3), intConst(r, 4)))
	v, err := ev.EvalInt(expr)
	require.NoError(t, err)
	assert.Equal(t, int64(14), v)
}

func TestEvalIntTruncatesToTargetWidth(t *testing.T) {
	r := ctype.NewRegistry()
	ev := New(Int8)

	v, err := ev.EvalInt(intConst(r, 200))
	require.NoError(t, err)
	// 200 doesn't fit in a signed int8; two's-complement wrap gives -56.
	assert.Equal(t, int64(-56), v)
}

func TestEvalDivisionByZeroIsConstantArithmeticError(t *testing.T) {
	r := ctype.NewRegistry()
	ev := New(Int32)

	_, err := ev.EvalInt(binary(r, cast.BinDiv, intConst(r, 1), intConst(r, 0)))
	require.Error(t, err)
	code, ok := diag.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, diag.ConstantArithmetic, code)
}

func TestEvalShiftOutOfRangeIsError(t *testing.T) {
	r := ctype.NewRegistry()
	ev := New(Int32)

	_, err := ev.EvalInt(binary(r, cast.BinShl, intConst(r, 1), intConst(r, 64)))
	require.Error(t, err)
	code, ok := diag.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, diag.ConstantArithmetic, code)
}

func TestEvalFuncCallIsNotConstant(t *testing.T) {
	r := ctype.NewRegistry()
	ev := New(Int32)

	call := &cast.FuncCall{ExprBase: cast.NewExprBase(r.IntType(), cast.RValue, token.Location{})}
	_, err := ev.EvalInt(call)
	require.Error(t, err)
	code, ok := diag.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, diag.NotConstant, code)
}

func TestEvalConditionalDiscardsNonTakenBranch(t *testing.T) {
	r := ctype.NewRegistry()
	ev := New(Int32)

	// The non-taken branch is a FuncCall (would raise NotConstant if
	// evaluated); since the condition is true, it must never be visited.
	cond := &cast.ConditionalOp{
		ExprBase: cast.NewExprBase(r.IntType(), cast.RValue, token.Location{}),
		Cond:     intConst(r, 1),
		Then:     intConst(r, 99),
		Else:     &cast.FuncCall{ExprBase: cast.NewExprBase(r.IntType(), cast.RValue, token.Location{})},
	}

	v, err := ev.EvalInt(cond)
	require.NoError(t, err)
	assert.Equal(t, int64(99), v)
}

func TestEvalShortCircuitLogicalAnd(t *testing.T) {
	r := ctype.NewRegistry()
	ev := New(Int32)

	// false && <FuncCall> must short-circuit without evaluating the right side.
	expr := binary(r, cast.BinLogicalAnd, intConst(r, 0), &cast.FuncCall{ExprBase: cast.NewExprBase(r.IntType(), cast.RValue, token.Location{})})
	v, err := ev.EvalInt(expr)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestEvalAddrIdentifierYieldsLabelWithZeroOffset(t *testing.T) {
	r := ctype.NewRegistry()
	ident := &cast.Identifier{ExprBase: cast.NewExprBase(r.NewPointer(r.IntType()), cast.RValue, token.Location{}), Name: "counter"}

	addr, err := EvalAddr(ident)
	require.NoError(t, err)
	assert.True(t, addr.HasLabel)
	assert.Equal(t, "counter", addr.Label)
	assert.Equal(t, int64(0), addr.Offset)
}

func TestEvalAddrEnumeratorYieldsOffsetNoLabel(t *testing.T) {
	enumr := &cast.Enumerator{Name: "RED", Value: 2}
	addr, err := EvalAddr(enumr)
	require.NoError(t, err)
	assert.False(t, addr.HasLabel)
	assert.Equal(t, int64(2), addr.Offset)
}

func TestEvalAddrPointerArithmeticScalesByPointeeWidth(t *testing.T) {
	r := ctype.NewRegistry()
	intPtr := r.NewPointer(r.IntType())
	base := &cast.Identifier{ExprBase: cast.NewExprBase(intPtr, cast.RValue, token.Location{}), Name: "arr"}
	idx := intConst(r, 3)

	expr := &cast.BinaryOp{
		ExprBase: cast.NewExprBase(intPtr, cast.RValue, token.Location{}),
		Op:       cast.BinAdd,
		Left:     base,
		Right:    idx,
	}

	addr, err := EvalAddr(expr)
	require.NoError(t, err)
	assert.Equal(t, "arr", addr.Label)
	assert.Equal(t, int64(12), addr.Offset) // 3 * sizeof(int) == 12
}

func TestEvalAddrFuncCallIsNotConstant(t *testing.T) {
	r := ctype.NewRegistry()
	call := &cast.FuncCall{ExprBase: cast.NewExprBase(r.IntType(), cast.RValue, token.Location{})}
	_, err := EvalAddr(call)
	require.Error(t, err)
	code, ok := diag.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, diag.NotConstant, code)
}
