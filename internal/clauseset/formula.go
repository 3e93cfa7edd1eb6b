package clauseset

import "strings"

// Formula is a set of clauses: insertion-ordered (for deterministic, stable
// scanning during propagation) and deduplicated by Clause.Key.
type Formula struct {
	order []Clause
	index map[string]int
}

// NewFormula builds a formula from an initial clause list.
func NewFormula(clauses ...Clause) *Formula {
	f := &Formula{index: make(map[string]int)}
	for _, c := range clauses {
		f.Add(c)
	}
	return f
}

// Add inserts c if not already present, returning true if it was new.
func (f *Formula) Add(c Clause) bool {
	key := c.Key()
	if _, ok := f.index[key]; ok {
		return false
	}
	f.index[key] = len(f.order)
	f.order = append(f.order, c)
	return true
}

// Contains reports whether a clause with the same literals is already in f.
func (f *Formula) Contains(c Clause) bool {
	_, ok := f.index[c.Key()]
	return ok
}

// All returns the clauses in stable insertion order.
func (f *Formula) All() []Clause {
	out := make([]Clause, len(f.order))
	copy(out, f.order)
	return out
}

// Len returns the number of distinct clauses in f.
func (f *Formula) Len() int {
	return len(f.order)
}

// String renders f as a conjunction of its clauses, in insertion order.
func (f *Formula) String() string {
	parts := make([]string, len(f.order))
	for i, c := range f.order {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ∧ ")
}
