package tseitin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"satlp/internal/cdcl"
	"satlp/internal/prop"
)

func TestEncodeSimpleAndIsSatisfiable(t *testing.T) {
	root := prop.And(prop.Var("a"), prop.Var("b"))
	res := Encode(root)

	require.NotNil(t, res.Formula)
	assert.Greater(t, res.NumVars, 0)

	solver := cdcl.New(res.Formula)
	outcome := solver.Solve()
	require.True(t, outcome.SAT)

	for id, name := range res.Match {
		val, ok := outcome.Assignment[id]
		require.True(t, ok)
		if name == "a" || name == "b" {
			assert.True(t, val)
		}
	}
}

func TestEncodeUnsatisfiableContradiction(t *testing.T) {
	a := prop.Var("a")
	root := prop.And(a, prop.Not(a))
	res := Encode(root)

	solver := cdcl.New(res.Formula)
	outcome := solver.Solve()
	assert.False(t, outcome.SAT)
}

func TestEncodeConstantRoot(t *testing.T) {
	res := Encode(prop.True())
	solver := cdcl.New(res.Formula)
	outcome := solver.Solve()
	assert.True(t, outcome.SAT)
}
