package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSimpleMultiply(t *testing.T) {
	// A * 7 = 3, width 4 (scenario 4 of spec §8)
	a := Var("A", 4)
	conjunct := Eq(Mul(a, Const(7, 4)), Const(3, 4))

	norm, err := Normalize(conjunct)
	require.NoError(t, err)

	coeffs, err := ExtractCoefficients(norm.Children[0])
	require.NoError(t, err)
	assert.Equal(t, int64(7), coeffs["A"])

	k, err := ExtractConstant(norm)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), k)
}

func TestNormalizeDistributesConstants(t *testing.T) {
	// 2 * (A + B) = 10  ->  2*A + 2*B = 10
	a := Var("A", 8)
	b := Var("B", 8)
	conjunct := Eq(Mul(Const(2, 8), Add(a, b)), Const(10, 8))

	norm, err := Normalize(conjunct)
	require.NoError(t, err)

	coeffs, err := ExtractCoefficients(norm.Children[0])
	require.NoError(t, err)
	assert.Equal(t, int64(2), coeffs["A"])
	assert.Equal(t, int64(2), coeffs["B"])
}

func TestNormalizeMovesConstantsToRHS(t *testing.T) {
	// A + 5 = B + 2  ->  A - B = -3, i.e. 253 (mod 2^8)
	a := Var("A", 8)
	b := Var("B", 8)
	conjunct := Eq(Add(a, Const(5, 8)), Add(b, Const(2, 8)))

	norm, err := Normalize(conjunct)
	require.NoError(t, err)

	coeffs, err := ExtractCoefficients(norm.Children[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1), coeffs["A"])
	assert.Equal(t, int64(-1), coeffs["B"])

	k, err := ExtractConstant(norm)
	require.NoError(t, err)
	assert.Equal(t, uint64(253), k)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	a := Var("A", 32)
	b := Var("B", 32)
	conjunct := Le(Add(a, b), Const(5, 32))

	once, err := Normalize(conjunct)
	require.NoError(t, err)
	twice, err := Normalize(once)
	require.NoError(t, err)

	assert.Equal(t, once.String(), twice.String())
}

func TestNormalizeRejectsTwoVariableMultiply(t *testing.T) {
	a := Var("A", 8)
	b := Var("B", 8)
	conjunct := Eq(Mul(a, b), Const(1, 8))

	_, err := Normalize(conjunct)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E1101")
}

func TestNormalizeRejectsWidthMismatch(t *testing.T) {
	a := Var("A", 8)
	b := Var("B", 16)
	conjunct := Eq(Add(a, b), Const(1, 16))

	_, err := Normalize(conjunct)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E1102")
}
