package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"satlp/internal/clauseset"
)

func lit(v int) clauseset.Literal { return clauseset.Literal(v) }

func TestSolveSatisfiableTwoClause(t *testing.T) {
	// (a ∨ b) ∧ (¬a ∨ b)  ⇒  b must be true
	delta := clauseset.NewFormula(
		clauseset.NewClause(lit(1), lit(2)),
		clauseset.NewClause(lit(-1), lit(2)),
	)
	solver := New(delta)
	outcome := solver.Solve()

	require.True(t, outcome.SAT)
	assert.True(t, outcome.Assignment[2])
}

func TestSolveUnsatisfiableContradiction(t *testing.T) {
	// a ∧ ¬a
	delta := clauseset.NewFormula(
		clauseset.NewClause(lit(1)),
		clauseset.NewClause(lit(-1)),
	)
	solver := New(delta)
	outcome := solver.Solve()
	assert.False(t, outcome.SAT)
}

func TestSolveRequiresBacktrackAndLearning(t *testing.T) {
	// (¬a ∨ b) ∧ (¬a ∨ c) ∧ (¬b ∨ ¬c): deciding a=true propagates b=c=true,
	// which falsifies (¬b ∨ ¬c); the engine must learn ¬a, backtrack to
	// level 0, and resolve with a=false.
	delta := clauseset.NewFormula(
		clauseset.NewClause(lit(-1), lit(2)),
		clauseset.NewClause(lit(-1), lit(3)),
		clauseset.NewClause(lit(-2), lit(-3)),
	)
	solver := New(delta)
	outcome := solver.Solve()

	require.True(t, outcome.SAT)
	assert.False(t, outcome.Assignment[1])
	assert.True(t, outcome.Assignment[2])
	assert.False(t, outcome.Assignment[3])
}

func TestSolveEmptyFormulaIsTriviallySat(t *testing.T) {
	delta := clauseset.NewFormula()
	solver := New(delta)
	outcome := solver.Solve()
	assert.True(t, outcome.SAT)
	assert.Empty(t, outcome.Assignment)
}
