package prop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	a := Var("a")
	b := Var("b")

	n := Not(And(a, b))
	assert.Equal(t, "(NOT (a AND b))", n.String())

	o := Or(a, Not(b))
	assert.Equal(t, "(a OR (NOT b))", o.String())
}

func TestConstantString(t *testing.T) {
	assert.Equal(t, "true", True().String())
	assert.Equal(t, "false", False().String())
}
