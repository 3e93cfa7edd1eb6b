package surface

import "github.com/alecthomas/participle/v2/lexer"

// PropFormula is the top-level production for the propositional surface
// syntax: `!`, `&&`, `||`, parens, and bare names for variables.
type PropFormula struct {
	Expr *PropOr `@@`
}

type PropOr struct {
	Left *PropAnd `@@`
	Rest []*PropAnd `{ "||" @@ }`
}

type PropAnd struct {
	Left *PropUnary `@@`
	Rest []*PropUnary `{ "&&" @@ }`
}

type PropUnary struct {
	Not   bool         `[ @"!" ]`
	Value *PropPrimary `@@`
}

type PropPrimary struct {
	Pos    lexer.Position
	EndPos lexer.Position
	True   bool    `  @"true"`
	False  bool    `| @"false"`
	Name   *string `| @Ident`
	Paren  *PropOr `| "(" @@ ")"`
}

// BVConjunction is the top-level production for the bit-vector surface
// syntax: a conjunction of relations over ADD/SUB/MUL terms.
type BVConjunction struct {
	Relations []*BVRelation `@@ { "&&" @@ }`
}

type BVRelation struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *BVSum `@@`
	Op     string `@("==" | "<=" | ">=" | "<" | ">")`
	Right  *BVSum `@@`
}

type BVSum struct {
	Left *BVTerm    `@@`
	Ops  []*BVAddOp `{ @@ }`
}

type BVAddOp struct {
	Operator string  `@("+" | "-")`
	Right    *BVTerm `@@`
}

type BVTerm struct {
	Left *BVAtom    `@@`
	Ops  []*BVMulOp `{ @@ }`
}

type BVMulOp struct {
	Operator string  `@"*"`
	Right    *BVAtom `@@`
}

type BVAtom struct {
	Variable *BVVar  `  @@`
	Number   *string ` | @Integer`
	Paren    *BVSum  ` | "(" @@ ")"`
}

type BVVar struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string  `@Ident`
	Width  *string `[ ":" @Width ]`
}
