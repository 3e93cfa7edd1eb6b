package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"satlp/internal/cdcl"
	"satlp/internal/tseitin"
)

func TestParsePropAndSolve(t *testing.T) {
	f, err := ParseProp("test.prop", `!(a && b) || c`)
	require.NoError(t, err)

	root := BuildProp(f)
	encoded := tseitin.Encode(root)
	outcome := cdcl.New(encoded.Formula).Solve()
	assert.True(t, outcome.SAT)
}

func TestParsePropRejectsGarbage(t *testing.T) {
	_, err := ParseProp("test.prop", `a && && b`)
	assert.Error(t, err)
}

func TestParseBVRelationTakesVariableWidth(t *testing.T) {
	c, err := ParseBV("test.bv", `A:u4 * 7 == 3`)
	require.NoError(t, err)

	conjuncts, err := BuildBV(c)
	require.NoError(t, err)
	require.Len(t, conjuncts, 1)
	assert.Equal(t, 4, conjuncts[0].Width())
}

func TestParseBVConjunctionSharesWidthAcrossRelations(t *testing.T) {
	c, err := ParseBV("test.bv", `A:u32 + B:u32 <= 5 && A + B >= 2`)
	require.NoError(t, err)

	conjuncts, err := BuildBV(c)
	require.NoError(t, err)
	require.Len(t, conjuncts, 2)
	assert.Equal(t, 32, conjuncts[0].Width())
	assert.Equal(t, 32, conjuncts[1].Width())
}

func TestBuildBVRejectsUndeclaredWidth(t *testing.T) {
	c, err := ParseBV("test.bv", `A == 3`)
	require.NoError(t, err)

	_, err = BuildBV(c)
	assert.Error(t, err)
}
