package expr

import "satlp/internal/errors"

// ExtractCoefficients walks a normalized conjunct's additive spine and
// returns the linear combination {v_i: k_i} it represents. A MUL(v, c) leaf
// contributes {v: c}; a bare variable contributes {v: 1}; ADD merges by
// summation; SUB negates the right child's coefficients before merging
// (spec §4.1 "Coefficient extraction").
func ExtractCoefficients(spine Node) (map[string]int64, error) {
	switch n := spine.(type) {
	case *Variable:
		return map[string]int64{n.Name: 1}, nil
	case *Constant:
		return map[string]int64{}, nil
	case *Op:
		switch n.Kind {
		case MUL:
			v, vok := n.Children[0].(*Variable)
			c, cok := n.Children[1].(*Constant)
			if !vok || !cok {
				return nil, errors.NewUnsupported("MUL with non (variable, constant) operands")
			}
			return map[string]int64{v.Name: int64(c.Value)}, nil
		case ADD:
			left, err := ExtractCoefficients(n.Children[0])
			if err != nil {
				return nil, err
			}
			right, err := ExtractCoefficients(n.Children[1])
			if err != nil {
				return nil, err
			}
			return mergeCoefficients(left, right, 1), nil
		case SUB:
			left, err := ExtractCoefficients(n.Children[0])
			if err != nil {
				return nil, err
			}
			right, err := ExtractCoefficients(n.Children[1])
			if err != nil {
				return nil, err
			}
			return mergeCoefficients(left, right, -1), nil
		default:
			return nil, errors.NewUnsupported(n.Kind.String())
		}
	default:
		return nil, errors.NewUnsupported("unknown node")
	}
}

func mergeCoefficients(left, right map[string]int64, sign int64) map[string]int64 {
	out := make(map[string]int64, len(left)+len(right))
	for k, v := range left {
		out[k] += v
	}
	for k, v := range right {
		out[k] += sign * v
	}
	return out
}

// ExtractConstant reads the folded right-hand side of a normalized
// conjunct.
func ExtractConstant(conjunct *Op) (uint64, error) {
	c, ok := conjunct.Children[1].(*Constant)
	if !ok {
		return 0, errors.NewUnsupported("right-hand side is not a folded constant")
	}
	return c.Value, nil
}
