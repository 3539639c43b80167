package logik

import "github.com/pkg/errors"

// common pin names
const (
	pinA   = "a"
	pinB   = "b"
	pinIn  = "in"
	pinOut = "out"
)

// A Primitive is a built-in boolean function. Fn must be pure and always
// return the same number of outputs for Inputs input values.
//
type Primitive struct {
	Name   string
	Inputs int
	Fn     func(in []bool) []bool
}

func (*Primitive) operator() {}

// Arity returns the input and output counts of p. The output count is
// obtained by calling p.Fn once with all inputs false.
//
func (p *Primitive) Arity() (inputs, outputs int) {
	return p.Inputs, len(p.Fn(make([]bool, p.Inputs)))
}

func (p *Primitive) pinNames() (in, out []string) {
	switch p.Inputs {
	case 1:
		in = []string{pinIn}
	case 2:
		in = []string{pinA, pinB}
	default:
		in = busNames(pinIn, p.Inputs)
	}
	_, n := p.Arity()
	if n == 1 {
		return in, []string{pinOut}
	}
	return in, busNames(pinOut, n)
}

func not(in []bool) []bool { return []bool{!in[0]} }

func and(in []bool) []bool { return []bool{in[0] && in[1]} }

func nand(in []bool) []bool { return not(and(in)) }

func or(in []bool) []bool { return nand(append(not(in[:1]), not(in[1:2])...)) }

func xor(in []bool) []bool { return and(append(nand(in), or(in)...)) }

func nor(in []bool) []bool { return not(or(in)) }

func xnor(in []bool) []bool { return or(append(nor(in), and(in)...)) }

// The primitive library.
var (
	NOT  = &Primitive{Name: "NOT", Inputs: 1, Fn: not}
	AND  = &Primitive{Name: "AND", Inputs: 2, Fn: and}
	NAND = &Primitive{Name: "NAND", Inputs: 2, Fn: nand}
	OR   = &Primitive{Name: "OR", Inputs: 2, Fn: or}
	XOR  = &Primitive{Name: "XOR", Inputs: 2, Fn: xor}
	NOR  = &Primitive{Name: "NOR", Inputs: 2, Fn: nor}
	XNOR = &Primitive{Name: "XNOR", Inputs: 2, Fn: xnor}
)

var primitives = []*Primitive{NOT, AND, NAND, OR, XOR, NOR, XNOR}

// Primitives returns the primitive library.
//
func Primitives() []*Primitive {
	return append([]*Primitive(nil), primitives...)
}

// LookupPrimitive returns the primitive operator with the given name.
//
func LookupPrimitive(name string) (*Primitive, error) {
	for _, p := range primitives {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, errors.WithStack(&UnknownOperatorError{Name: name})
}

// PrimitiveName returns the library name of p, or false if p is not part of
// the primitive library.
//
func PrimitiveName(p *Primitive) (string, bool) {
	for _, q := range primitives {
		if p == q {
			return q.Name, true
		}
	}
	return "", false
}
