package expr

import (
	"satlp/internal/errors"
)

// Normalize runs the four-pass pipeline of spec §4.1 over a single
// conjunct (a comparison whose root is EQ/LT/LE/GT/GE), producing a tree of
// shape Σ_i (k_i * v_i) ◇ K: Skew, then DistributeConstants, then Rotate,
// then ConstantSimplify. The composition is idempotent: normalizing an
// already-normalized conjunct returns an equal tree.
func Normalize(conjunct *Op) (*Op, error) {
	if !conjunct.Kind.IsRelation() {
		return nil, errors.NewUnsupported(conjunct.Kind.String())
	}
	width := conjunct.WidthBits
	if err := checkWidths(conjunct, width); err != nil {
		return nil, err
	}

	skewed, err := Skew(conjunct)
	if err != nil {
		return nil, err
	}
	distributed, err := DistributeConstants(skewed)
	if err != nil {
		return nil, err
	}
	rotated, err := Rotate(distributed)
	if err != nil {
		return nil, err
	}
	return ConstantSimplify(rotated)
}

// Skew rewrites "L ◇ R" as "(L − R) ◇ 0": every variable and constant term
// now lives on the left, the right is a single constant of the conjunct's
// width (spec §4.1 pass 1).
func Skew(conjunct *Op) (*Op, error) {
	width := conjunct.WidthBits
	lhs := &Op{Kind: SUB, Children: []Node{conjunct.Children[0], conjunct.Children[1]}, WidthBits: width}
	return &Op{Kind: conjunct.Kind, Children: []Node{lhs, Const(0, width)}, WidthBits: width}, nil
}

// DistributeConstants pushes c*(a±b) into (c*a)±(c*b) and canonicalizes
// every surviving MUL node to (variable, constant) order (spec §4.1 pass
// 2). MUL with two non-constant operands is Unsupported.
func DistributeConstants(conjunct *Op) (*Op, error) {
	lhs, err := distribute(conjunct.Children[0], conjunct.WidthBits)
	if err != nil {
		return nil, err
	}
	return &Op{Kind: conjunct.Kind, Children: []Node{lhs, conjunct.Children[1]}, WidthBits: conjunct.WidthBits}, nil
}

func distribute(node Node, width int) (Node, error) {
	switch n := node.(type) {
	case *Variable, *Constant:
		return n, nil
	case *Op:
		switch n.Kind {
		case ADD, SUB:
			l, err := distribute(n.Children[0], width)
			if err != nil {
				return nil, err
			}
			r, err := distribute(n.Children[1], width)
			if err != nil {
				return nil, err
			}
			return &Op{Kind: n.Kind, Children: []Node{l, r}, WidthBits: width}, nil
		case MUL:
			l, err := distribute(n.Children[0], width)
			if err != nil {
				return nil, err
			}
			r, err := distribute(n.Children[1], width)
			if err != nil {
				return nil, err
			}
			if lc, ok := l.(*Constant); ok {
				if ro, ok := r.(*Op); ok && (ro.Kind == ADD || ro.Kind == SUB) {
					left, err := distribute(&Op{Kind: MUL, Children: []Node{lc, ro.Children[0]}, WidthBits: width}, width)
					if err != nil {
						return nil, err
					}
					right, err := distribute(&Op{Kind: MUL, Children: []Node{lc, ro.Children[1]}, WidthBits: width}, width)
					if err != nil {
						return nil, err
					}
					return &Op{Kind: ro.Kind, Children: []Node{left, right}, WidthBits: width}, nil
				}
			}
			if rc, ok := r.(*Constant); ok {
				if lo, ok := l.(*Op); ok && (lo.Kind == ADD || lo.Kind == SUB) {
					left, err := distribute(&Op{Kind: MUL, Children: []Node{lo.Children[0], rc}, WidthBits: width}, width)
					if err != nil {
						return nil, err
					}
					right, err := distribute(&Op{Kind: MUL, Children: []Node{lo.Children[1], rc}, WidthBits: width}, width)
					if err != nil {
						return nil, err
					}
					return &Op{Kind: lo.Kind, Children: []Node{left, right}, WidthBits: width}, nil
				}
			}
			return canonicalizeMul(l, r, width)
		default:
			return nil, errors.NewUnsupported(n.Kind.String())
		}
	default:
		return nil, errors.NewUnsupported("unknown node")
	}
}

func canonicalizeMul(l, r Node, width int) (Node, error) {
	_, lVar := l.(*Variable)
	_, rVar := r.(*Variable)
	_, lConst := l.(*Constant)
	_, rConst := r.(*Constant)
	switch {
	case lVar && rConst:
		return &Op{Kind: MUL, Children: []Node{l, r}, WidthBits: width}, nil
	case lConst && rVar:
		return &Op{Kind: MUL, Children: []Node{r, l}, WidthBits: width}, nil
	case lConst && rConst:
		return &Op{Kind: MUL, Children: []Node{l, r}, WidthBits: width}, nil
	default:
		return nil, errors.NewUnsupported("MUL with two non-constant operands")
	}
}

// signedTerm is one monomial on an additive spine, tagged with its sign
// relative to the root (a SUB on the path flips the sign of everything
// under its right child).
type signedTerm struct {
	sign int
	leaf Node
}

func flattenAdditive(node Node, sign int, out *[]signedTerm) {
	if op, ok := node.(*Op); ok {
		switch op.Kind {
		case ADD:
			flattenAdditive(op.Children[0], sign, out)
			flattenAdditive(op.Children[1], sign, out)
			return
		case SUB:
			flattenAdditive(op.Children[0], sign, out)
			flattenAdditive(op.Children[1], -sign, out)
			return
		}
	}
	*out = append(*out, signedTerm{sign: sign, leaf: node})
}

func rebuildSpine(terms []signedTerm, width int) Node {
	if len(terms) == 0 {
		return Const(0, width)
	}
	var acc Node
	if terms[0].sign >= 0 {
		acc = terms[0].leaf
	} else {
		acc = &Op{Kind: SUB, Children: []Node{Const(0, width), terms[0].leaf}, WidthBits: width}
	}
	for _, t := range terms[1:] {
		if t.sign >= 0 {
			acc = &Op{Kind: ADD, Children: []Node{acc, t.leaf}, WidthBits: width}
		} else {
			acc = &Op{Kind: SUB, Children: []Node{acc, t.leaf}, WidthBits: width}
		}
	}
	return acc
}

// Rotate left-associates the additive spine of the left-hand side into a
// flat, deterministically ordered chain, exposing each monomial for
// coefficient extraction (spec §4.1 pass 3).
func Rotate(conjunct *Op) (*Op, error) {
	var terms []signedTerm
	flattenAdditive(conjunct.Children[0], +1, &terms)
	lhs := rebuildSpine(terms, conjunct.WidthBits)
	return &Op{Kind: conjunct.Kind, Children: []Node{lhs, conjunct.Children[1]}, WidthBits: conjunct.WidthBits}, nil
}

// ConstantSimplify folds every purely-constant subtree into a single
// constant and merges all constant monomials on the left into the
// right-hand side, leaving "Σ_i (k_i * v_i) ◇ K" (spec §4.1 pass 4).
func ConstantSimplify(conjunct *Op) (*Op, error) {
	width := conjunct.WidthBits

	var terms []signedTerm
	flattenAdditive(conjunct.Children[0], +1, &terms)

	rhsConst, err := foldConstantLeaf(conjunct.Children[1], width)
	if err != nil {
		return nil, err
	}
	k := rhsConst.(*Constant).Value

	var varTerms []signedTerm
	for _, t := range terms {
		folded, err := foldConstantLeaf(t.leaf, width)
		if err != nil {
			return nil, err
		}
		if c, ok := folded.(*Constant); ok {
			if t.sign >= 0 {
				k = mask(k-c.Value, width)
			} else {
				k = mask(k+c.Value, width)
			}
			continue
		}
		varTerms = append(varTerms, signedTerm{sign: t.sign, leaf: folded})
	}

	lhs := rebuildSpine(varTerms, width)
	return &Op{Kind: conjunct.Kind, Children: []Node{lhs, Const(k, width)}, WidthBits: width}, nil
}

// foldConstantLeaf reduces a spine leaf that is purely constant (Constant,
// or MUL(const, const) left over from distribution) to a single Constant.
// Variable and MUL(variable, const) leaves pass through unchanged.
func foldConstantLeaf(node Node, width int) (Node, error) {
	switch n := node.(type) {
	case *Constant:
		return n, nil
	case *Variable:
		return n, nil
	case *Op:
		if n.Kind != MUL {
			return nil, errors.NewUnsupported(n.Kind.String())
		}
		lc, lok := n.Children[0].(*Constant)
		rc, rok := n.Children[1].(*Constant)
		if lok && rok {
			return Const(lc.Value*rc.Value, width), nil
		}
		return n, nil
	default:
		return nil, errors.NewUnsupported("unknown node")
	}
}

// checkWidths verifies every node reachable from conjunct carries the
// conjunct's width, raising WidthMismatch on the first disagreement found.
func checkWidths(node Node, width int) error {
	if node.Width() != width {
		return errors.NewWidthMismatch(width, node.Width())
	}
	if op, ok := node.(*Op); ok {
		for _, c := range op.Children {
			if err := checkWidths(c, width); err != nil {
				return err
			}
		}
	}
	return nil
}
