package surface

import (
	"strconv"

	"satlp/internal/errors"
	"satlp/internal/expr"
	"satlp/internal/prop"
)

// BuildProp lowers a parsed propositional formula to a prop.Node tree.
func BuildProp(f *PropFormula) prop.Node {
	return buildPropOr(f.Expr)
}

func buildPropOr(o *PropOr) prop.Node {
	node := buildPropAnd(o.Left)
	for _, r := range o.Rest {
		node = prop.Or(node, buildPropAnd(r))
	}
	return node
}

func buildPropAnd(a *PropAnd) prop.Node {
	node := buildPropUnary(a.Left)
	for _, r := range a.Rest {
		node = prop.And(node, buildPropUnary(r))
	}
	return node
}

func buildPropUnary(u *PropUnary) prop.Node {
	node := buildPropPrimary(u.Value)
	if u.Not {
		node = prop.Not(node)
	}
	return node
}

func buildPropPrimary(p *PropPrimary) prop.Node {
	switch {
	case p.True:
		return prop.True()
	case p.False:
		return prop.False()
	case p.Name != nil:
		return prop.Var(*p.Name)
	default:
		return buildPropOr(p.Paren)
	}
}

// BuildBV lowers a parsed bit-vector conjunction to the list of relation
// conjuncts internal/bvilp.Translate consumes. Every variable must carry
// a width annotation (`name:uN`) at least once anywhere in the
// conjunction; subsequent references may omit it.
func BuildBV(c *BVConjunction) ([]*expr.Op, error) {
	widths := make(map[string]int)
	for _, rel := range c.Relations {
		collectSumWidths(rel.Left, widths)
		collectSumWidths(rel.Right, widths)
	}

	out := make([]*expr.Op, 0, len(c.Relations))
	for _, rel := range c.Relations {
		node, err := buildBVRelation(rel, widths)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func collectSumWidths(s *BVSum, widths map[string]int) {
	collectTermWidths(s.Left, widths)
	for _, op := range s.Ops {
		collectTermWidths(op.Right, widths)
	}
}

func collectTermWidths(t *BVTerm, widths map[string]int) {
	collectAtomWidths(t.Left, widths)
	for _, op := range t.Ops {
		collectAtomWidths(op.Right, widths)
	}
}

func collectAtomWidths(a *BVAtom, widths map[string]int) {
	switch {
	case a.Variable != nil && a.Variable.Width != nil:
		widths[a.Variable.Name] = parseWidth(*a.Variable.Width)
	case a.Paren != nil:
		collectSumWidths(a.Paren, widths)
	}
}

func parseWidth(tok string) int {
	n, _ := strconv.Atoi(tok[1:])
	return n
}

// relationWidth infers the common width for a relation's bare integer
// literals: the width of the first declared variable found on either
// side.
func relationWidth(rel *BVRelation, widths map[string]int) (int, error) {
	if w, ok := firstVariableWidth(rel.Left, widths); ok {
		return w, nil
	}
	if w, ok := firstVariableWidth(rel.Right, widths); ok {
		return w, nil
	}
	return 0, errors.NewUnsupported("relation has no variable to infer a width from")
}

func firstVariableWidth(s *BVSum, widths map[string]int) (int, bool) {
	terms := []*BVTerm{s.Left}
	for _, op := range s.Ops {
		terms = append(terms, op.Right)
	}
	for _, t := range terms {
		atoms := []*BVAtom{t.Left}
		for _, op := range t.Ops {
			atoms = append(atoms, op.Right)
		}
		for _, a := range atoms {
			if w, ok := firstAtomWidth(a, widths); ok {
				return w, true
			}
		}
	}
	return 0, false
}

func firstAtomWidth(a *BVAtom, widths map[string]int) (int, bool) {
	switch {
	case a.Variable != nil:
		w, ok := widths[a.Variable.Name]
		return w, ok
	case a.Paren != nil:
		return firstVariableWidth(a.Paren, widths)
	default:
		return 0, false
	}
}

func buildBVRelation(rel *BVRelation, widths map[string]int) (*expr.Op, error) {
	width, err := relationWidth(rel, widths)
	if err != nil {
		return nil, err
	}
	left, err := buildBVSum(rel.Left, widths, width)
	if err != nil {
		return nil, err
	}
	right, err := buildBVSum(rel.Right, widths, width)
	if err != nil {
		return nil, err
	}
	switch rel.Op {
	case "==":
		return expr.Eq(left, right), nil
	case "<=":
		return expr.Le(left, right), nil
	case ">=":
		return expr.Ge(left, right), nil
	case "<":
		return expr.Lt(left, right), nil
	case ">":
		return expr.Gt(left, right), nil
	default:
		return nil, errors.NewUnsupported("relation operator " + rel.Op)
	}
}

func buildBVSum(s *BVSum, widths map[string]int, width int) (expr.Node, error) {
	node, err := buildBVTerm(s.Left, widths, width)
	if err != nil {
		return nil, err
	}
	for _, op := range s.Ops {
		right, err := buildBVTerm(op.Right, widths, width)
		if err != nil {
			return nil, err
		}
		switch op.Operator {
		case "+":
			node = expr.Add(node, right)
		case "-":
			node = expr.Sub(node, right)
		default:
			return nil, errors.NewUnsupported("operator " + op.Operator)
		}
	}
	return node, nil
}

func buildBVTerm(t *BVTerm, widths map[string]int, width int) (expr.Node, error) {
	node, err := buildBVAtom(t.Left, widths, width)
	if err != nil {
		return nil, err
	}
	for _, op := range t.Ops {
		right, err := buildBVAtom(op.Right, widths, width)
		if err != nil {
			return nil, err
		}
		node = expr.Mul(node, right)
	}
	return node, nil
}

func buildBVAtom(a *BVAtom, widths map[string]int, width int) (expr.Node, error) {
	switch {
	case a.Variable != nil:
		w, ok := widths[a.Variable.Name]
		if !ok {
			return nil, errors.NewUnsupported("variable " + a.Variable.Name + " never declared with a width")
		}
		return expr.Var(a.Variable.Name, w), nil
	case a.Number != nil:
		v, err := parseInteger(*a.Number)
		if err != nil {
			return nil, err
		}
		return expr.Const(v, width), nil
	default:
		return buildBVSum(a.Paren, widths, width)
	}
}

func parseInteger(tok string) (uint64, error) {
	v, err := strconv.ParseUint(tok, 0, 64)
	if err != nil {
		return 0, errors.NewUnsupported("malformed integer literal " + tok)
	}
	return v, nil
}
