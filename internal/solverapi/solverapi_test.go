package solverapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"satlp/internal/expr"
	"satlp/internal/prop"
)

func TestSolvePropositionalNegatedAnd(t *testing.T) {
	a := prop.Var("a")
	b := prop.Var("b")
	root := prop.Not(prop.And(a, b))

	res := SolvePropositional(root)
	require.True(t, res.SAT)
	assert.False(t, res.Model["a"] && res.Model["b"])
}

func TestSolvePropositionalContradiction(t *testing.T) {
	a := prop.Var("a")
	root := prop.And(a, prop.Not(a))

	res := SolvePropositional(root)
	assert.False(t, res.SAT)
}

func TestBVSolverMultiplyEquality(t *testing.T) {
	a := expr.Var("A", 4)
	conjunct := expr.Eq(expr.Mul(a, expr.Const(7, 4)), expr.Const(3, 4))

	solver := NewBVSolver()
	require.NoError(t, solver.Add(conjunct))

	model, err := solver.Solve()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), model["A"])
}

func TestBVSolverInequalityPair(t *testing.T) {
	a := expr.Var("A", 32)
	b := expr.Var("B", 32)
	le := expr.Le(expr.Add(a, b), expr.Const(5, 32))
	ge := expr.Ge(expr.Add(a, b), expr.Const(2, 32))

	solver := NewBVSolver()
	require.NoError(t, solver.Add(le))
	require.NoError(t, solver.Add(ge))

	model, err := solver.Solve()
	require.NoError(t, err)
	sum := model["A"] + model["B"]
	assert.GreaterOrEqual(t, sum, uint64(2))
	assert.LessOrEqual(t, sum, uint64(5))
}
