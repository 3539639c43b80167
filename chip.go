package logik

import (
	"github.com/pkg/errors"
)

// A Part places a gate in a netlist with the given connections. See
// Library.Chip for the connection syntax.
//
type Part struct {
	Gate  *Gate
	Conns string
}

// Parts is a list of parts.
//
type Parts []Part

// Chip composes existing gates into a new composite gate. The pin names
// specified as inputs and outputs will be the inputs and outputs of the new
// gate. Every part gate must be a live gate of l.
//
// Part connections map the part's pin names to wire names. Wires named after
// the new gate's inputs and outputs connect to them, other names are internal
// wires. Bus declarations and ranges are supported:
//
//	nand, _ := l.Builtin(logik.NAND)
//	xor, err := l.Chip("XOR", "a, b", "out",
//		nand.Part("a=a, b=b, out=nandAB"),
//		nand.Part("a=a, b=nandAB, out=w0"),
//		nand.Part("a=b, b=nandAB, out=w1"),
//		nand.Part("a=w0, b=w1, out=out"),
//	)
//
// Part inputs left unassigned are not connected: the part is never evaluated
// and its outputs read as false.
//
func (l *Library) Chip(name string, inputs, outputs string, parts ...Part) (*Gate, error) {
	ins, err := ParseIO(inputs)
	if err != nil {
		return nil, errors.Wrapf(err, "chip %s inputs", name)
	}
	outs, err := ParseIO(outputs)
	if err != nil {
		return nil, errors.Wrapf(err, "chip %s outputs", name)
	}
	if err = checkUnique(append(append([]string(nil), ins...), outs...)); err != nil {
		return nil, errors.Wrapf(err, "chip %s", name)
	}

	wr := newWiring(ins, outs)
	for pnum, p := range parts {
		g := p.Gate
		if g == nil {
			return nil, errors.Errorf("chip %s: part %d has no gate", name, pnum)
		}
		if lg, ok := l.gates[g.key]; !ok || lg.deleted {
			return nil, errors.Errorf("chip %s: part %s is not a live gate of the library", name, g.Name)
		}
		as, err := parseConnections(p.Conns)
		if err != nil {
			return nil, errors.Wrapf(err, "chip %s, part %s", name, g.Name)
		}
		chip := &Chip{Key: NewKey(), Gate: g.key}
		connected := make(map[int]bool, g.inputs)
		for _, a := range as {
			kind, i, ok := g.pinIndex(a.pin)
			if !ok {
				return nil, errors.New("invalid pin name " + a.pin + " for part " + g.Name)
			}
			switch kind {
			case Input:
				if connected[i] {
					return nil, errors.New(g.Name + " input pin " + a.pin + " connected to more than one wire")
				}
				connected[i] = true
				wr.sink(a.wire, InputPin(chip, i))
			case Output:
				if err := wr.drive(a.wire, OutputPin(chip, i)); err != nil {
					return nil, errors.Wrap(err, g.Name+"."+a.pin+":"+a.wire)
				}
			}
		}
	}

	conns, err := wr.connections()
	if err != nil {
		return nil, errors.Wrapf(err, "chip %s", name)
	}
	op, err := NewComposite(len(ins), len(outs), conns)
	if err != nil {
		return nil, errors.Wrapf(err, "chip %s", name)
	}
	return l.Add(GateSpec{
		Name:         name,
		Operator:     op,
		CanBeDeleted: true,
		InputNames:   ins,
		OutputNames:  outs,
	})
}

// MustChip is like Chip but panics on error.
//
func (l *Library) MustChip(name string, inputs, outputs string, parts ...Part) *Gate {
	g, err := l.Chip(name, inputs, outputs, parts...)
	if err != nil {
		panic(err)
	}
	return g
}
