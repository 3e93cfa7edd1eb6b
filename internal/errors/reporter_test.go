package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporterFormat(t *testing.T) {
	source := "A * 7 = 3\nB + 1 < 5\n"
	reporter := NewReporter("test.bv", source)

	d := Diagnostic{
		Level:    Error,
		Code:     ErrorSyntax,
		Message:  "unexpected token 'C'",
		Position: Position{Line: 2, Column: 1},
		Length:   1,
	}
	formatted := reporter.Format(d)

	assert.Contains(t, formatted, "error["+ErrorSyntax+"]")
	assert.Contains(t, formatted, "unexpected token 'C'")
	assert.Contains(t, formatted, "test.bv:2:1")
	assert.Contains(t, formatted, "B + 1 < 5")
}

func TestReporterNotes(t *testing.T) {
	reporter := NewReporter("test.bv", "A * B = 3\n")

	d := Diagnostic{
		Level:    Error,
		Code:     ErrorUnsupported,
		Message:  "multiplication requires a constant operand",
		Position: Position{Line: 1, Column: 1},
		Length:   9,
		Notes:    []string{"rewrite as a constant times a variable"},
	}
	formatted := reporter.Format(d)

	assert.Contains(t, formatted, "note:")
	assert.Contains(t, formatted, "rewrite as a constant times a variable")
}

func TestMarker(t *testing.T) {
	reporter := NewReporter("test.bv", "variable = value")
	marker := reporter.marker(5, 8, Error)

	assert.Equal(t, 4, len(marker)-len(marker[4:]))
	assert.Contains(t, marker, "^")
}

func TestErrorKinds(t *testing.T) {
	err := NewUnsupported("DIV")
	assert.Contains(t, err.Error(), ErrorUnsupported)
	assert.Contains(t, err.Error(), "DIV")

	werr := NewWidthMismatch(4, 32)
	assert.Contains(t, werr.Error(), "4")
	assert.Contains(t, werr.Error(), "32")

	oerr := NewOracleFailure("singular matrix")
	assert.Contains(t, oerr.Error(), "singular matrix")

	assert.True(t, IsUnsat(ErrUnsat))
	assert.False(t, IsUnsat(err))
}
