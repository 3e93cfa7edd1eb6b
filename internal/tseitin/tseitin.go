// Package tseitin encodes a propositional DAG into an equisatisfiable CNF
// formula over fresh Boolean auxiliaries, per spec §4.4 "Tseitin encoder".
package tseitin

import (
	"fmt"

	"satlp/internal/clauseset"
	"satlp/internal/ident"
	"satlp/internal/prop"
)

// Result is the CNF translation of a propositional DAG.
type Result struct {
	Formula *clauseset.Formula
	// Match maps a dense variable id back to the original variable name,
	// for ids that correspond to user-visible propositional variables.
	Match map[int]string
	// NumVars is the count of distinct dense ids assigned.
	NumVars int
}

// Encode performs the single post-order walk of spec §4.4: allocate a
// fresh auxiliary per internal node, emit its equating clauses, force the
// root auxiliary true, then assign dense positive ids to every atom that
// appears (in any clause) in first-appearance order.
func Encode(root prop.Node) Result {
	e := &encoder{}
	rootAtom := e.walk(root)
	e.clauses = append(e.clauses, []string{rootAtom})

	table := ident.New(1)
	match := make(map[int]string)
	var signed []clauseset.Clause
	for _, rawClause := range e.clauses {
		lits := make([]clauseset.Literal, 0, len(rawClause))
		for _, tok := range rawClause {
			key := tok
			negated := false
			if key[0] == '!' {
				negated = true
				key = key[1:]
			}
			id := table.Intern(key)
			if name, ok := variableName(key); ok {
				match[id] = name
			}
			if negated {
				lits = append(lits, clauseset.Literal(-id))
			} else {
				lits = append(lits, clauseset.Literal(id))
			}
		}
		signed = append(signed, clauseset.NewClause(lits...))
	}

	return Result{
		Formula: clauseset.NewFormula(signed...),
		Match:   match,
		NumVars: table.Len(),
	}
}

// encoder walks the DAG once. Each internal node gets a fresh auxiliary;
// nodes are not deduplicated structurally (the spec treats the DAG as a
// tree for rewrites, and Tseitin follows the same policy).
type encoder struct {
	counter int
	clauses [][]string
	forced  map[string]bool
}

func (e *encoder) freshAux() string {
	e.counter++
	return fmt.Sprintf("aux:%d", e.counter)
}

// walk returns the atom key (an interned-table key, possibly prefixed with
// "!" for negation is never used here; negation is expressed on literals
// inside emitted clauses) representing node's truth value.
func (e *encoder) walk(node prop.Node) string {
	switch n := node.(type) {
	case *prop.Variable:
		return "var:" + n.Name
	case *prop.Constant:
		key := "const:false"
		if n.Value {
			key = "const:true"
		}
		if !e.forced[key] {
			e.forceConstant(key, n.Value)
		}
		return key
	case *prop.Op:
		switch n.Kind {
		case prop.NOT:
			p := e.walk(n.Left)
			a := e.freshAux()
			e.clauses = append(e.clauses, []string{a, p})
			e.clauses = append(e.clauses, []string{"!" + a, "!" + p})
			return a
		case prop.AND:
			p := e.walk(n.Left)
			q := e.walk(n.Right)
			a := e.freshAux()
			e.clauses = append(e.clauses, []string{a, "!" + p, "!" + q})
			e.clauses = append(e.clauses, []string{"!" + a, p})
			e.clauses = append(e.clauses, []string{"!" + a, q})
			return a
		case prop.OR:
			p := e.walk(n.Left)
			q := e.walk(n.Right)
			a := e.freshAux()
			e.clauses = append(e.clauses, []string{"!" + a, p, q})
			e.clauses = append(e.clauses, []string{a, "!" + p})
			e.clauses = append(e.clauses, []string{a, "!" + q})
			return a
		}
	}
	return ""
}

func (e *encoder) forceConstant(key string, value bool) {
	if e.forced == nil {
		e.forced = make(map[string]bool)
	}
	e.forced[key] = true
	if value {
		e.clauses = append(e.clauses, []string{key})
	} else {
		e.clauses = append(e.clauses, []string{"!" + key})
	}
}

// variableName reports the original name for an atom key interned from a
// "var:" prefix, for populating Result.Match.
func variableName(key string) (string, bool) {
	const prefix = "var:"
	if len(key) > len(prefix) && key[:len(prefix)] == prefix {
		return key[len(prefix):], true
	}
	return "", false
}
