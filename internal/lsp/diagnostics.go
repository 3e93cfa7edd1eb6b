package lsp

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ConvertParseError transforms a participle parse error into an LSP
// diagnostic, reusing the position participle attaches to the error.
func ConvertParseError(source string, err error) []protocol.Diagnostic {
	pe, ok := err.(participle.Error)
	if !ok {
		return []protocol.Diagnostic{{
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("satlp-parser"),
			Message:  err.Error(),
		}}
	}

	pos := pe.Position()
	line := pos.Line - 1
	if line < 0 {
		line = 0
	}
	col := pos.Column - 1
	if col < 0 {
		col = 0
	}

	endCol := col + 1
	if pos.Line >= 1 {
		lines := strings.Split(source, "\n")
		if pos.Line <= len(lines) && col < len(lines[pos.Line-1]) {
			endCol = len(lines[pos.Line-1])
		}
	}

	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: uint32(col)},
			End:   protocol.Position{Line: uint32(line), Character: uint32(endCol)},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("satlp-parser"),
		Message:  pe.Message(),
	}}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
