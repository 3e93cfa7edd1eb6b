// Package clauseset implements the CNF layer: signed literals, deduplicated
// clauses, and the pair of clause sets (original / learnt) a CDCL solver
// needs. See spec §3 "CNF layer".
package clauseset

import (
	"sort"
	"strconv"
	"strings"
)

// Literal is a signed nonzero integer: positive denotes the variable,
// negative its negation.
type Literal int

// Var returns the (always positive) variable id of l.
func (l Literal) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// Negated reports whether l is a negative literal.
func (l Literal) Negated() bool {
	return l < 0
}

// Negate returns the complementary literal.
func (l Literal) Negate() Literal {
	return -l
}

func (l Literal) String() string {
	if l < 0 {
		return "¬" + strconv.Itoa(int(-l))
	}
	return strconv.Itoa(int(l))
}

// Clause is an unordered, deduplicated set of literals. Two clauses with the
// same literals in any order are the same clause: Key is order-insensitive
// so clauses can be hashed and inserted into a set of learnt clauses (design
// note: "sort literals by absolute value before hashing").
type Clause struct {
	lits []Literal
}

// NewClause builds a clause from lits, deduplicating and canonicalizing the
// order for hashing.
func NewClause(lits ...Literal) Clause {
	seen := make(map[Literal]struct{}, len(lits))
	out := make([]Literal, 0, len(lits))
	for _, l := range lits {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].Var(), out[j].Var()
		if ai != aj {
			return ai < aj
		}
		return out[i] < out[j]
	})
	return Clause{lits: out}
}

// Literals returns a copy of the clause's literals in canonical order.
func (c Clause) Literals() []Literal {
	out := make([]Literal, len(c.lits))
	copy(out, c.lits)
	return out
}

// Len returns the number of (deduplicated) literals in the clause.
func (c Clause) Len() int {
	return len(c.lits)
}

// Key is an order-insensitive identity for the clause, suitable for use as a
// map key in a clause set.
func (c Clause) Key() string {
	var sb strings.Builder
	for i, l := range c.lits {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(l)))
	}
	return sb.String()
}

func (c Clause) String() string {
	parts := make([]string, len(c.lits))
	for i, l := range c.lits {
		parts[i] = l.String()
	}
	return "(" + strings.Join(parts, " ∨ ") + ")"
}

// Resolve returns the clause obtained by resolving c against other on
// variable v: the union of both clauses' literals, excluding v's two
// complementary occurrences. Used by conflict analysis to fold an
// antecedent clause into the pool of unresolved literals.
func (c Clause) Resolve(other Clause, v int) Clause {
	lits := make([]Literal, 0, c.Len()+other.Len())
	for _, l := range c.lits {
		if l.Var() != v {
			lits = append(lits, l)
		}
	}
	for _, l := range other.lits {
		if l.Var() != v {
			lits = append(lits, l)
		}
	}
	return NewClause(lits...)
}
