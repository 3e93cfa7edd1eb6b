package errors

import "fmt"

// UnsupportedError reports an operator outside the supported set reaching
// normalization or extraction (spec §7).
type UnsupportedError struct {
	Op string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("[%s] unsupported operator: %s", ErrorUnsupported, e.Op)
}

// NewUnsupported builds an UnsupportedError for operator op.
func NewUnsupported(op string) error {
	return &UnsupportedError{Op: op}
}

// WidthMismatchError reports two arithmetic subtrees disagreeing on width.
type WidthMismatchError struct {
	Width1 int
	Width2 int
}

func (e *WidthMismatchError) Error() string {
	return fmt.Sprintf("[%s] width mismatch: %d vs %d", ErrorWidthMismatch, e.Width1, e.Width2)
}

// NewWidthMismatch builds a WidthMismatchError for widths w1 and w2.
func NewWidthMismatch(w1, w2 int) error {
	return &WidthMismatchError{Width1: w1, Width2: w2}
}

// OracleFailureError reports the LP oracle failing for a reason other than
// infeasibility.
type OracleFailureError struct {
	Reason string
}

func (e *OracleFailureError) Error() string {
	return fmt.Sprintf("[%s] LP oracle failure: %s", ErrorOracleFailure, e.Reason)
}

// NewOracleFailure builds an OracleFailureError with the given reason.
func NewOracleFailure(reason string) error {
	return &OracleFailureError{Reason: reason}
}

// ErrInfeasible is returned by the LP oracle when a subproblem's relaxation
// has no feasible point. It is distinct from OracleFailureError: infeasible
// is an expected, ordinary outcome of a branch-and-bound search (the branch
// is simply dead), while OracleFailureError reports the oracle itself
// breaking down for reasons unrelated to feasibility (unbounded objective,
// a degenerate linear solve). Grounded on GoMILP's
// expectedFailures map, which separates lp.ErrInfeasible/lp.ErrSingular
// (ordinary "this subproblem is dead" decisions) from everything else.
var ErrInfeasible = infeasibleError{}

type infeasibleError struct{}

func (infeasibleError) Error() string { return "LP relaxation infeasible" }

// IsInfeasible reports whether err is the infeasibility sentinel.
func IsInfeasible(err error) bool {
	_, ok := err.(infeasibleError)
	return ok
}

// ErrUnsat is the sentinel value returned (never via panic/exception) when a
// solve call determines unsatisfiability. It is a normal return, not an
// error in the Go idiom sense, but is represented as one so solverapi can
// return it alongside the three failure kinds above with a single error
// return value (spec §7: "UNSAT (a normal return, not an error)").
var ErrUnsat = unsatError{}

type unsatError struct{}

func (unsatError) Error() string { return "UNSAT" }

// IsUnsat reports whether err is the UNSAT sentinel.
func IsUnsat(err error) bool {
	_, ok := err.(unsatError)
	return ok
}
