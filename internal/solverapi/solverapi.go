// Package solverapi wires the two independent pipelines spec §6 exposes
// to callers: a propositional solver (Prop-Tree → Tseitin → CDCL) and a
// bit-vector solver (Expr-Tree → normalize → ILP → branch-and-bound).
package solverapi

import (
	"satlp/internal/bnb"
	"satlp/internal/bvilp"
	"satlp/internal/cdcl"
	"satlp/internal/errors"
	"satlp/internal/expr"
	"satlp/internal/prop"
	"satlp/internal/tseitin"
)

// PropResult is the outcome of submitting a propositional formula.
type PropResult struct {
	SAT   bool
	Model map[string]bool
}

// SolvePropositional encodes root to CNF and runs the CDCL engine,
// projecting the satisfying assignment back onto root's named variables
// (spec §6 "PropositionalSolver.submit").
func SolvePropositional(root prop.Node) PropResult {
	encoded := tseitin.Encode(root)
	outcome := cdcl.New(encoded.Formula).Solve()
	if !outcome.SAT {
		return PropResult{SAT: false}
	}
	model := make(map[string]bool, len(encoded.Match))
	for id, name := range encoded.Match {
		model[name] = outcome.Assignment[id]
	}
	return PropResult{SAT: true, Model: model}
}

// BVSolver accumulates a conjunction of bit-vector relations and solves
// it as an ILP once fully specified (spec §6 "BVSolver").
type BVSolver struct {
	conjuncts []*expr.Op
}

// NewBVSolver returns an empty accumulator.
func NewBVSolver() *BVSolver {
	return &BVSolver{}
}

// Add appends a relation conjunct to the accumulated conjunction.
func (s *BVSolver) Add(conjunct *expr.Op) error {
	if !conjunct.Kind.IsRelation() {
		return errors.NewUnsupported(conjunct.Kind.String())
	}
	s.conjuncts = append(s.conjuncts, conjunct)
	return nil
}

// Solve translates the accumulated conjunction into ILP matrices and runs
// branch-and-bound, returning the satisfying assignment to every original
// (non-slack) variable, or UNSAT.
func (s *BVSolver) Solve() (map[string]uint64, error) {
	sys, err := bvilp.Translate(s.conjuncts)
	if err != nil {
		return nil, err
	}
	x, ok, err := bnb.Solve(sys)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.ErrUnsat
	}
	out := make(map[string]uint64, sys.NumOriginal)
	for _, name := range sys.Columns.Names() {
		idx, _ := sys.Columns.Lookup(name)
		if idx >= sys.NumOriginal {
			continue
		}
		out[name] = uint64(x[idx])
	}
	return out, nil
}
