// Package ident assigns dense integer identifiers to names, counting up
// from a base chosen by the caller.
//
// Both the CDCL engine (clause variables) and the BV→ILP translator (matrix
// columns) need a stable name → small-integer mapping; this is that table,
// factored out once instead of duplicated in each engine.
package ident

// Table interns names to dense ids starting at a configurable base.
// Ids are assigned in first-seen order, which keeps iteration deterministic.
type Table struct {
	base  int
	byID  []string
	byName map[string]int
}

// New returns a table whose first interned name receives id base.
func New(base int) *Table {
	return &Table{
		base:   base,
		byName: make(map[string]int),
	}
}

// Intern returns the id for name, assigning a fresh one if name is new.
func (t *Table) Intern(name string) int {
	if id, ok := t.byName[name]; ok {
		return id
	}
	id := t.base + len(t.byID)
	t.byID = append(t.byID, name)
	t.byName[name] = id
	return id
}

// Lookup returns the id already assigned to name, if any.
func (t *Table) Lookup(name string) (int, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Name returns the name interned at id.
func (t *Table) Name(id int) (string, bool) {
	idx := id - t.base
	if idx < 0 || idx >= len(t.byID) {
		return "", false
	}
	return t.byID[idx], true
}

// Len returns the number of distinct names interned so far.
func (t *Table) Len() int {
	return len(t.byID)
}

// Names returns all interned names in id order.
func (t *Table) Names() []string {
	out := make([]string, len(t.byID))
	copy(out, t.byID)
	return out
}
