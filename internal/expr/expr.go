// Package expr implements the arithmetic expression layer: an immutable
// tree of fixed-width unsigned bit-vector variables, constants, and
// ADD/SUB/MUL/EQ/LT/LE/GT/GE nodes, plus the four-pass normalization
// pipeline the BV→ILP translator depends on. See spec §3 "Expression
// layer (arithmetic)" and §4.1.
package expr

import "fmt"

// Kind identifies an arithmetic or relational operator.
type Kind int

const (
	ADD Kind = iota
	SUB
	MUL
	EQ
	LT
	LE
	GT
	GE
)

func (k Kind) String() string {
	switch k {
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case EQ:
		return "="
	case LT:
		return "<"
	case LE:
		return "≤"
	case GT:
		return ">"
	case GE:
		return "≥"
	default:
		return "?"
	}
}

// IsRelation reports whether k is one of the five comparison operators that
// may only ever sit at the root of a conjunct.
func (k Kind) IsRelation() bool {
	switch k {
	case EQ, LT, LE, GT, GE:
		return true
	default:
		return false
	}
}

// Node is an arithmetic expression: a Variable, a Constant, or an Op. Every
// node carries a bit width. Rewrites always copy rather than mutate, so
// sharing in a builder-produced DAG never becomes aliased mutation (design
// note "Expression sharing").
type Node interface {
	isNode()
	Width() int
	String() string
}

// Variable is a named bit-vector leaf of the given width.
type Variable struct {
	Name  string
	WidthBits int
}

// Constant is a literal bit-vector value of the given width.
type Constant struct {
	Value uint64
	WidthBits int
}

// Op is ADD/SUB/MUL or one of the five relations, over Children.
// ADD/SUB are binary and share the parent's width with both children; MUL
// is always (variable, constant) after normalization; relations sit only at
// conjunct roots.
type Op struct {
	Kind     Kind
	Children []Node
	WidthBits int
}

func (*Variable) isNode() {}
func (*Constant) isNode() {}
func (*Op) isNode()       {}

func (v *Variable) Width() int { return v.WidthBits }
func (c *Constant) Width() int { return c.WidthBits }
func (o *Op) Width() int       { return o.WidthBits }

func (v *Variable) String() string { return v.Name }
func (c *Constant) String() string { return fmt.Sprintf("%d", c.Value) }
func (o *Op) String() string {
	parts := make([]string, len(o.Children))
	for i, ch := range o.Children {
		parts[i] = ch.String()
	}
	if len(parts) == 2 {
		return "(" + parts[0] + " " + o.Kind.String() + " " + parts[1] + ")"
	}
	s := o.Kind.String() + "("
	for i, p := range parts {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return s + ")"
}

// Var constructs a named bit-vector variable of the given width.
func Var(name string, width int) *Variable {
	return &Variable{Name: name, WidthBits: width}
}

// Const constructs a bit-vector constant of the given width. The value is
// masked to width bits.
func Const(value uint64, width int) *Constant {
	return &Constant{Value: mask(value, width), WidthBits: width}
}

func bin(kind Kind, l, r Node, width int) *Op {
	return &Op{Kind: kind, Children: []Node{l, r}, WidthBits: width}
}

// Add, Sub, Mul build ADD/SUB/MUL nodes over operands of the same width.
func Add(l, r Node) *Op { return bin(ADD, l, r, l.Width()) }
func Sub(l, r Node) *Op { return bin(SUB, l, r, l.Width()) }
func Mul(l, r Node) *Op { return bin(MUL, l, r, l.Width()) }

// Eq, Lt, Le, Gt, Ge build relation nodes (conjunct roots).
func Eq(l, r Node) *Op { return bin(EQ, l, r, l.Width()) }
func Lt(l, r Node) *Op { return bin(LT, l, r, l.Width()) }
func Le(l, r Node) *Op { return bin(LE, l, r, l.Width()) }
func Gt(l, r Node) *Op { return bin(GT, l, r, l.Width()) }
func Ge(l, r Node) *Op { return bin(GE, l, r, l.Width()) }

func mask(v uint64, width int) uint64 {
	if width >= 64 {
		return v
	}
	return v & ((uint64(1) << uint(width)) - 1)
}
