// Package surface is the textual front end for both pipelines: one shared
// lexer and two grammars, for propositional formulas (NOT/AND/OR over bare
// names) and for bit-vector constraint sets (width-annotated variables, ADD/SUB/MUL,
// comparisons), lowered to internal/prop and internal/expr trees
// respectively.
package surface

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes both surface syntaxes; which grammar consumes the
// stream is a parser-level choice, not a lexer one.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Width", `[uU][0-9]+`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `0x[0-9a-fA-F]+|[0-9]+`, nil},
		{"Operator", `(<=|>=|==|!=|&&|\|\||[-+*/<>=!&|():])`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})

// Token type symbols, exposed for callers (internal/lsp's semantic
// tokenizer) that classify raw tokens without running the full grammar.
var (
	TokenComment    = Lexer.Symbols()["Comment"]
	TokenWidth      = Lexer.Symbols()["Width"]
	TokenIdent      = Lexer.Symbols()["Ident"]
	TokenInteger    = Lexer.Symbols()["Integer"]
	TokenOperator   = Lexer.Symbols()["Operator"]
	TokenWhitespace = Lexer.Symbols()["Whitespace"]
)
