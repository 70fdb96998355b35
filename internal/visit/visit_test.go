package visit

import (
	"testing"

	"github.com/HugoDaniel/gocc/internal/cast"
	"github.com/HugoDaniel/gocc/internal/ctype"
	"github.com/HugoDaniel/gocc/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExprDispatchesToMatchingCallback(t *testing.T) {
	r := ctype.NewRegistry()
	c := &cast.Constant{ExprBase: cast.NewExprBase(r.IntType(), cast.RValue, token.Location{}), Kind: cast.ConstInt, Int: 7}

	var seen int64 = -1
	err := Expr(ExprVisitor{
		Constant: func(n *cast.Constant) error {
			seen = n.Int
			return nil
		},
	}, c)

	require.NoError(t, err)
	assert.Equal(t, int64(7), seen)
}

func TestExprDispatchWithNilCallbackIsANoOp(t *testing.T) {
	r := ctype.NewRegistry()
	e := &cast.Enumerator{ExprBase: cast.NewExprBase(r.IntType(), cast.RValue, token.Location{}), Name: "X", Value: 1}

	err := Expr(ExprVisitor{}, e)
	assert.NoError(t, err)
}

func TestWalkChildrenVisitsBinaryOperands(t *testing.T) {
	r := ctype.NewRegistry()
	left := &cast.Constant{ExprBase: cast.NewExprBase(r.IntType(), cast.RValue, token.Location{}), Kind: cast.ConstInt, Int: 1}
	right := &cast.Constant{ExprBase: cast.NewExprBase(r.IntType(), cast.RValue, token.Location{}), Kind: cast.ConstInt, Int: 2}
	add := &cast.BinaryOp{ExprBase: cast.NewExprBase(r.IntType(), cast.RValue, token.Location{}), Op: cast.BinAdd, Left: left, Right: right}

	var visited []cast.Expr
	WalkChildren(add, func(e cast.Expr) { visited = append(visited, e) })

	require.Len(t, visited, 2)
	assert.Same(t, left, visited[0])
	assert.Same(t, right, visited[1])
}
