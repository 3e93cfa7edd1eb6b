package lsp

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"satlp/internal/surface"
)

// SemanticToken is a single LSP semantic token entry. Line and StartChar
// are 0-based positions.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask over SemanticTokenModifiers
}

// SemanticTokenTypes is the legend advertised to the client.
var SemanticTokenTypes = []string{
	"variable",
	"number",
	"operator",
	"keyword",
}

// SemanticTokenModifiers is the legend advertised to the client; formula
// files have no modifiers today, but the LSP handshake requires a
// (possibly empty) legend, and listing "declaration" keeps the slice from
// degenerating into a type with no modifiers at all.
var SemanticTokenModifiers = []string{
	"declaration",
}

// collectSemanticTokens lexes source with the shared surface.Lexer and
// classifies each token by its lexical kind. isBV only affects which
// bare words count as keywords ("true"/"false" in the propositional
// syntax have no analogue in the bit-vector syntax).
func collectSemanticTokens(isBV bool, source string) []SemanticToken {
	toks, err := lexAll(source)
	if err != nil {
		return nil
	}

	var out []SemanticToken
	for _, tok := range toks {
		tokenType, ok := classify(tok, isBV)
		if !ok {
			continue
		}
		out = append(out, SemanticToken{
			Line:      uint32(tok.Pos.Line - 1),
			StartChar: uint32(tok.Pos.Column - 1),
			Length:    uint32(len([]rune(tok.Value))),
			TokenType: tokenType,
		})
	}
	return out
}

func lexAll(source string) ([]lexer.Token, error) {
	lex, err := surface.Lexer.Lex("", strings.NewReader(source))
	if err != nil {
		return nil, err
	}
	var out []lexer.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return out, err
		}
		if tok.EOF() {
			return out, nil
		}
		out = append(out, tok)
	}
}

func classify(tok lexer.Token, isBV bool) (int, bool) {
	switch tok.Type {
	case surface.TokenIdent:
		if !isBV && (tok.Value == "true" || tok.Value == "false") {
			return indexOf("keyword", SemanticTokenTypes), true
		}
		return indexOf("variable", SemanticTokenTypes), true
	case surface.TokenInteger, surface.TokenWidth:
		return indexOf("number", SemanticTokenTypes), true
	case surface.TokenOperator:
		return indexOf("operator", SemanticTokenTypes), true
	default:
		return 0, false
	}
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
