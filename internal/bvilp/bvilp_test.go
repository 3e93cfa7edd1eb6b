package bvilp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"satlp/internal/expr"
)

func TestTranslateSingleEquality(t *testing.T) {
	a := expr.Var("A", 4)
	conjunct := expr.Eq(expr.Mul(a, expr.Const(7, 4)), expr.Const(3, 4))

	sys, err := Translate([]*expr.Op{conjunct})
	require.NoError(t, err)

	assert.Equal(t, 1, sys.NumOriginal)
	require.Len(t, sys.AEq, 1)
	require.Len(t, sys.BEq, 1)
	assert.Equal(t, float64(7), sys.AEq[0][0])
	assert.Equal(t, float64(15), sys.Hi[0])
	assert.Equal(t, float64(0), sys.Lo[0])
}

func TestTranslateInequalityPair(t *testing.T) {
	a := expr.Var("A", 32)
	b := expr.Var("B", 32)
	le := expr.Le(expr.Add(a, b), expr.Const(5, 32))
	ge := expr.Ge(expr.Add(a, b), expr.Const(2, 32))

	sys, err := Translate([]*expr.Op{le, ge})
	require.NoError(t, err)

	require.Len(t, sys.AUb, 2)
	assert.Equal(t, float64(5), sys.BUb[0])
	assert.Equal(t, float64(-2), sys.BUb[1])
	assert.Equal(t, float64(-1), sys.AUb[1][0])
}

func TestTranslateRejectsTwoVariableMultiply(t *testing.T) {
	a := expr.Var("A", 8)
	b := expr.Var("B", 8)
	conjunct := expr.Eq(expr.Mul(a, b), expr.Const(1, 8))

	_, err := Translate([]*expr.Op{conjunct})
	assert.Error(t, err)
}
