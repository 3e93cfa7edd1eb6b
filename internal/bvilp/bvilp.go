// Package bvilp translates a conjunction of normalized bit-vector
// relations into the integer-linear-program matrices spec §4.2 describes:
// dense columns for the original variables, one slack column per equality
// absorbing modular wraparound, and a feasibility objective.
package bvilp

import (
	"fmt"

	"satlp/internal/errors"
	"satlp/internal/expr"
	"satlp/internal/ident"
)

// System is the boxed integer program a branch-and-bound driver searches
// over: minimize C^T x subject to AEq x = BEq, AUb x ≤ BUb, Lo ≤ x ≤ Hi.
type System struct {
	Columns     *ident.Table
	NumOriginal int
	C           []float64
	AEq         [][]float64
	BEq         []float64
	AUb         [][]float64
	BUb         []float64
	Lo          []float64
	Hi          []float64
}

// Translate builds a System from a conjunction of raw (un-normalized)
// relation conjuncts, per spec §4.2 "BV→ILP translator".
func Translate(conjuncts []*expr.Op) (*System, error) {
	widths := make(map[string]int)
	columns := ident.New(0)

	for _, c := range conjuncts {
		if err := collectWidths(c, widths, columns); err != nil {
			return nil, err
		}
	}
	numOriginal := columns.Len()

	normalized := make([]*expr.Op, len(conjuncts))
	for i, c := range conjuncts {
		n, err := expr.Normalize(c)
		if err != nil {
			return nil, err
		}
		normalized[i] = n
	}

	maxWidth := 0
	for _, w := range widths {
		if w > maxWidth {
			maxWidth = w
		}
	}
	// A true wraparound multiple for an equality can be negative (the
	// additive spine can exceed K in either direction once SUB has
	// produced negative coefficients). slackOffset shifts that signed
	// multiple into the nonnegative range the System's bounds require:
	// the column stores (true_multiple + slackOffset) instead of the
	// true multiple directly.
	slackOffset := SlackBoundHeuristic(maxWidth)

	var aEq, aUb [][]float64
	var bEq, bUb []float64
	slackCount := 0

	for _, n := range normalized {
		coeffs, err := expr.ExtractCoefficients(n.Children[0])
		if err != nil {
			return nil, err
		}
		k, err := expr.ExtractConstant(n)
		if err != nil {
			return nil, err
		}
		width := n.WidthBits

		base := make([]float64, numOriginal)
		for name, coeff := range coeffs {
			idx, ok := columns.Lookup(name)
			if !ok {
				return nil, errors.NewOracleFailure("unknown column " + name)
			}
			base[idx] = float64(coeff)
		}

		switch n.Kind {
		case expr.EQ:
			slackCoeff := float64(uint64(1) << uint(width))
			row := append([]float64{}, base...)
			row = append(row, make([]float64, slackCount)...)
			row = append(row, slackCoeff)
			slackCount++
			aEq = append(aEq, row)
			bEq = append(bEq, float64(k)+slackCoeff*slackOffset)
		case expr.LE:
			aUb = append(aUb, append([]float64{}, base...))
			bUb = append(bUb, float64(k))
		case expr.LT:
			aUb = append(aUb, append([]float64{}, base...))
			bUb = append(bUb, float64(k)-1)
		case expr.GE:
			aUb = append(aUb, negate(base))
			bUb = append(bUb, -float64(k))
		case expr.GT:
			aUb = append(aUb, negate(base))
			bUb = append(bUb, -(float64(k) + 1))
		default:
			return nil, errors.NewUnsupported(n.Kind.String())
		}
	}

	totalCols := numOriginal + slackCount
	for i := range aEq {
		padRight(&aEq[i], totalCols)
	}
	for i := range aUb {
		padRight(&aUb[i], totalCols)
	}

	lo := make([]float64, totalCols)
	hi := make([]float64, totalCols)
	for _, name := range columns.Names() {
		idx, _ := columns.Lookup(name)
		hi[idx] = float64((uint64(1) << uint(widths[name])) - 1)
	}
	for i := numOriginal; i < totalCols; i++ {
		hi[i] = 2 * slackOffset
	}

	c := make([]float64, totalCols)
	for i := 0; i < numOriginal; i++ {
		c[i] = 1
	}

	return &System{
		Columns:     columns,
		NumOriginal: numOriginal,
		C:           c,
		AEq:         aEq,
		BEq:         bEq,
		AUb:         aUb,
		BUb:         bUb,
		Lo:          lo,
		Hi:          hi,
	}, nil
}

// SlackBoundHeuristic picks the offset a slack column is shifted by:
// 2^maxWidth, where maxWidth is the widest original variable in the
// system. Translate bounds each shifted slack column to [0, 2·offset],
// so the true multiple ranges over [−offset, offset]. Any feasible modular wraparound fits in a multiple of
// 2^w_j ≤ 2^maxWidth, so this is loose but always sufficient (an Open
// Question the spec leaves to the implementer — see DESIGN.md).
func SlackBoundHeuristic(maxWidth int) float64 {
	if maxWidth <= 0 {
		return 1
	}
	return float64(uint64(1) << uint(maxWidth))
}

func negate(row []float64) []float64 {
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = -v
	}
	return out
}

func padRight(row *[]float64, width int) {
	for len(*row) < width {
		*row = append(*row, 0)
	}
}

// collectWidths walks an un-normalized conjunct, interning every Variable
// it finds (first-appearance order fixes column indices) and recording
// its width, erroring if the same name appears with two different
// widths.
func collectWidths(node expr.Node, widths map[string]int, columns *ident.Table) error {
	switch n := node.(type) {
	case *expr.Variable:
		if existing, ok := widths[n.Name]; ok && existing != n.WidthBits {
			return errors.NewWidthMismatch(existing, n.WidthBits)
		}
		widths[n.Name] = n.WidthBits
		columns.Intern(n.Name)
		return nil
	case *expr.Constant:
		return nil
	case *expr.Op:
		for _, child := range n.Children {
			if err := collectWidths(child, widths, columns); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.NewUnsupported(fmt.Sprintf("%T", node))
	}
}
