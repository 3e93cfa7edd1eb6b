// Package lpsolve is the LP relaxation oracle the branch-and-bound driver
// calls at every node of the search tree. It is not grounded on the
// teacher: kanso never touches numerical optimization, so this package
// adopts gonum's simplex solver, the same library the reference MILP
// solver in the example pack (jjhbw/GoMILP) wires its relaxations to.
package lpsolve

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"satlp/internal/errors"
)

// Problem is a boxed linear program: minimize c^T x subject to A_eq x =
// b_eq, A_ub x ≤ b_ub, lo ≤ x ≤ hi. This is the shape internal/bvilp
// produces; internal/bnb branches by narrowing lo and hi.
type Problem struct {
	C   []float64
	AEq [][]float64
	BEq []float64
	AUb [][]float64
	BUb []float64
	Lo  []float64
	Hi  []float64
}

// Solution is a feasible (optimal, though the objective is a feasibility
// cast per spec §4.2) point of the LP relaxation, expressed in the
// original variable space (not the shifted/slack-augmented one Solve
// builds internally).
type Solution struct {
	X       []float64
	Optimal float64
}

// Solve converts p into gonum's standard form (minimize c^T y, A y = b, y
// ≥ 0) by shifting every variable down by its lower bound and turning
// each upper bound and inequality row into an equality via a nonnegative
// slack column, following the same "convert inequalities to equalities"
// strategy GoMILP's toInitialSubproblem names for its own relaxations.
//
// The returned error is errors.ErrInfeasible for lp.ErrInfeasible and
// lp.ErrSingular (GoMILP's own expectedFailures treats both as an ordinary
// "this subproblem is dead" outcome), and an *errors.OracleFailureError for
// every other failure (a malformed problem, or simplex failing for a reason
// unrelated to feasibility); the two must stay distinguishable so a caller
// doing branch-and-bound can treat the former as a dead branch and
// propagate the latter.
func Solve(p Problem) (Solution, error) {
	n := len(p.C)
	if n == 0 {
		return Solution{}, errors.NewOracleFailure("empty problem")
	}

	shift := make([]float64, n)
	copy(shift, p.Lo)

	// Inequality rows: original A_ub rows (shifted), plus one upper-bound
	// row per variable (y_i ≤ hi_i − lo_i).
	var ubRows [][]float64
	var ubRHS []float64
	for i, row := range p.AUb {
		shifted := make([]float64, n)
		copy(shifted, row)
		rhs := p.BUb[i]
		for j, a := range row {
			rhs -= a * shift[j]
		}
		ubRows = append(ubRows, shifted)
		ubRHS = append(ubRHS, rhs)
	}
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		row[i] = 1
		ubRows = append(ubRows, row)
		ubRHS = append(ubRHS, p.Hi[i]-p.Lo[i])
	}

	numSlack := len(ubRows)
	totalCols := n + numSlack

	var rows [][]float64
	var rhs []float64

	for i, row := range p.AEq {
		full := make([]float64, totalCols)
		copy(full, row)
		r := p.BEq[i]
		for j, a := range row {
			r -= a * shift[j]
		}
		rows = append(rows, full)
		rhs = append(rhs, r)
	}

	for i, row := range ubRows {
		full := make([]float64, totalCols)
		copy(full, row)
		full[n+i] = 1
		rows = append(rows, full)
		rhs = append(rhs, ubRHS[i])
	}

	if len(rows) == 0 {
		return Solution{}, errors.NewOracleFailure("no constraint rows")
	}

	cFull := make([]float64, totalCols)
	copy(cFull, p.C)

	flat := make([]float64, 0, len(rows)*totalCols)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	A := mat.NewDense(len(rows), totalCols, flat)

	_, xFull, err := lp.Simplex(cFull, A, rhs, 0, nil)
	if err != nil {
		if err == lp.ErrInfeasible || err == lp.ErrSingular {
			return Solution{}, errors.ErrInfeasible
		}
		return Solution{}, errors.NewOracleFailure(err.Error())
	}

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = xFull[i] + shift[i]
	}

	optimal := 0.0
	for i, c := range p.C {
		optimal += c * x[i]
	}

	return Solution{X: x, Optimal: optimal}, nil
}
