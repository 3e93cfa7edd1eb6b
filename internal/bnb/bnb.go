// Package bnb implements the recursive branch-and-bound ILP driver of
// spec §4.3: call the LP oracle, branch on the first fractional
// coordinate (down before up), recurse with tightened bounds.
package bnb

import (
	"math"

	"satlp/internal/bvilp"
	"satlp/internal/errors"
	"satlp/internal/lpsolve"
)

const fracTolerance = 1e-7

// Solve searches sys for an integer-feasible point. ok is false when every
// branch of the search turned up infeasible; err is non-nil only when the
// LP oracle itself failed for a reason other than infeasibility, in which
// case it propagates all the way up rather than being reported as an
// ordinary infeasible/UNSAT result (spec §7: "OracleFailure propagates up
// branch-and-bound").
func Solve(sys *bvilp.System) ([]int64, bool, error) {
	x, ok, err := search(sys, sys.Lo, sys.Hi)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	out := make([]int64, len(x))
	for i, v := range x {
		out[i] = int64(math.Round(v))
	}
	return out, true, nil
}

func search(sys *bvilp.System, lo, hi []float64) ([]float64, bool, error) {
	soln, err := lpsolve.Solve(lpsolve.Problem{
		C:   sys.C,
		AEq: sys.AEq,
		BEq: sys.BEq,
		AUb: sys.AUb,
		BUb: sys.BUb,
		Lo:  lo,
		Hi:  hi,
	})
	if err != nil {
		if errors.IsInfeasible(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	fracIdx := -1
	for i, v := range soln.X {
		if math.Abs(v-math.Round(v)) > fracTolerance {
			fracIdx = i
			break
		}
	}
	if fracIdx == -1 {
		return soln.X, true, nil
	}

	downHi := append([]float64(nil), hi...)
	downHi[fracIdx] = math.Floor(soln.X[fracIdx])
	if downHi[fracIdx] >= lo[fracIdx] {
		res, ok, err := search(sys, lo, downHi)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return res, true, nil
		}
	}

	upLo := append([]float64(nil), lo...)
	upLo[fracIdx] = math.Ceil(soln.X[fracIdx])
	if upLo[fracIdx] <= hi[fracIdx] {
		res, ok, err := search(sys, upLo, hi)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return res, true, nil
		}
	}

	return nil, false, nil
}
