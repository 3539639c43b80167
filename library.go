// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logik

import (
	"github.com/pkg/errors"
)

// A Library holds a set of gates and resolves chip references to them.
//
// A Library is not safe for concurrent modification. Evaluate only reads the
// library and gate truth tables, so concurrent evaluations are safe as long
// as no gate is added or deleted meanwhile.
//
type Library struct {
	gates map[Key]*Gate
	order []Key

	// OnWarning, if not nil, is called for every chip left unevaluated by a
	// propagation run.
	OnWarning func(w *IncompleteWiringWarning)
}

// NewLibrary returns an empty library.
//
func NewLibrary() *Library {
	return &Library{gates: make(map[Key]*Gate)}
}

// DefaultLibrary returns a library with the non deletable AND and NOT gates.
//
func DefaultLibrary() *Library {
	l := NewLibrary()
	for _, p := range []*Primitive{AND, NOT} {
		if _, err := l.Builtin(p); err != nil {
			panic(err)
		}
	}
	return l
}

// GateSpec describes a gate to add to a library.
//
type GateSpec struct {
	Key          Key // if empty, a new key is assigned
	Name         string
	Color        string
	Operator     Operator
	TruthTable   *TruthTable // built from Operator if nil
	CanBeDeleted bool
	Deleted      bool

	// Pin names. Default names are generated if nil.
	InputNames  []string
	OutputNames []string
}

// Add adds a new gate to the library. Composite operators must only reference
// gates already in l.
//
func (l *Library) Add(spec GateSpec) (*Gate, error) {
	if spec.Operator == nil {
		return nil, configErrorf("gate %s: nil operator", spec.Name)
	}
	key := spec.Key
	if key == "" {
		key = NewKey()
	} else if _, ok := l.gates[key]; ok {
		return nil, configErrorf("gate %s: duplicate key %s", spec.Name, key)
	}
	ins, outs := spec.Operator.Arity()
	if ins < 0 || outs < 0 {
		return nil, configErrorf("gate %s: invalid arity %d/%d", spec.Name, ins, outs)
	}
	g := &Gate{
		key:          key,
		inputs:       ins,
		outputs:      outs,
		op:           spec.Operator,
		table:        spec.TruthTable,
		Name:         spec.Name,
		Color:        spec.Color,
		CanBeDeleted: spec.CanBeDeleted,
	}

	var err error
	g.inNames, g.outNames, err = pinNames(spec)
	if err != nil {
		return nil, errors.Wrapf(err, "gate %s", spec.Name)
	}

	switch op := spec.Operator.(type) {
	case *Primitive:
	case *Composite:
		if err := l.checkComposite(op); err != nil {
			return nil, errors.Wrapf(err, "gate %s", spec.Name)
		}
	case *Tombstone:
		if g.table == nil {
			return nil, configErrorf("gate %s: deleted gate without truth table", spec.Name)
		}
		g.deleted = true
		op.Gate = spec.Name
	default:
		return nil, configErrorf("gate %s: unsupported operator type %T", spec.Name, spec.Operator)
	}

	switch {
	case g.table != nil:
		if g.table.Inputs() != ins || g.table.Outputs() != outs {
			return nil, configErrorf("gate %s: truth table arity %d/%d does not match operator arity %d/%d",
				spec.Name, g.table.Inputs(), g.table.Outputs(), ins, outs)
		}
	case ins <= MaxTableInputs:
		g.table, err = BuildTruthTable(ins, func(in []bool) ([]bool, error) {
			return l.evalOperator(g, in)
		})
		if err != nil {
			return nil, errors.Wrapf(err, "gate %s", spec.Name)
		}
	}

	if spec.Deleted && !g.deleted {
		l.tombstone(g)
	}

	l.gates[key] = g
	l.order = append(l.order, key)
	return g, nil
}

// New adds a new deletable gate with the given operator.
//
func (l *Library) New(name string, op Operator, color string) (*Gate, error) {
	return l.Add(GateSpec{Name: name, Operator: op, Color: color, CanBeDeleted: true})
}

// Builtin returns the gate for primitive p, adding it as a non deletable
// gate if l has none yet.
//
func (l *Library) Builtin(p *Primitive) (*Gate, error) {
	for _, k := range l.order {
		if g := l.gates[k]; g.op == Operator(p) && !g.deleted {
			return g, nil
		}
	}
	return l.Add(GateSpec{Name: p.Name, Operator: p})
}

// checkComposite checks that all chips in op resolve to gates of l and that
// chip pin indices are in range.
//
func (l *Library) checkComposite(op *Composite) error {
	for i := range op.conns {
		for _, p := range [...]Pin{op.conns[i].From, op.conns[i].To} {
			if !p.Kind.OnChip() {
				continue
			}
			g, ok := l.gates[p.Chip.Gate]
			if !ok {
				return configErrorf("chip %s: no gate with key %s", p.Chip.Key, p.Chip.Gate)
			}
			n := g.inputs
			if p.Kind == Output {
				n = g.outputs
			}
			if p.Index >= n {
				return configErrorf("pin %s out of range for gate %s (%d %ss)", p, g.Name, n, p.Kind)
			}
		}
	}
	return nil
}

// Gate returns the gate with the given key.
//
func (l *Library) Gate(key Key) (*Gate, bool) {
	g, ok := l.gates[key]
	return g, ok
}

// Lookup returns the first live gate with the given name.
//
func (l *Library) Lookup(name string) (*Gate, bool) {
	for _, k := range l.order {
		if g := l.gates[k]; g.Name == name && !g.deleted {
			return g, true
		}
	}
	return nil, false
}

// Gates returns all gates in l, including deleted ones, in the order they
// were added.
//
func (l *Library) Gates() []*Gate {
	r := make([]*Gate, len(l.order))
	for i, k := range l.order {
		r[i] = l.gates[k]
	}
	return r
}

// Len returns the number of gates in l.
//
func (l *Library) Len() int { return len(l.order) }

// Delete marks the gate with the given key as deleted. Its wiring is dropped
// but its truth table and arity are kept so that chips referencing it keep
// evaluating.
//
func (l *Library) Delete(key Key) error {
	g, ok := l.gates[key]
	if !ok {
		return errors.Errorf("no gate with key %s", key)
	}
	if g.deleted {
		return nil
	}
	if !g.CanBeDeleted {
		return errors.Errorf("gate %s cannot be deleted", g.Name)
	}
	if g.table == nil {
		return errors.Errorf("gate %s has no truth table and cannot be deleted", g.Name)
	}
	l.tombstone(g)
	return nil
}

func (l *Library) tombstone(g *Gate) {
	g.op = &Tombstone{Inputs: g.inputs, Outputs: g.outputs, Gate: g.Name}
	g.deleted = true
}

// Evaluate returns the outputs of gate g for the input vector in.
//
// The truth table of g is used when present. Otherwise a primitive operator
// is called directly and a composite one is evaluated by propagating in
// through its wiring.
//
func (l *Library) Evaluate(g *Gate, in []bool) ([]bool, error) {
	if len(in) != g.inputs {
		return nil, configErrorf("gate %s expects %d inputs, got %d", g.Name, g.inputs, len(in))
	}
	if g.table != nil {
		out, err := g.table.Lookup(in)
		if err != nil {
			return nil, errors.Wrapf(err, "evaluate %s", g.Name)
		}
		return out, nil
	}
	return l.evalOperator(g, in)
}

// evalOperator evaluates the operator of g, bypassing its truth table.
//
func (l *Library) evalOperator(g *Gate, in []bool) ([]bool, error) {
	switch op := g.op.(type) {
	case *Primitive:
		return op.Fn(append([]bool(nil), in...)), nil
	case *Composite:
		p, err := l.Propagate(op, in)
		if err != nil {
			return nil, errors.Wrapf(err, "evaluate %s", g.Name)
		}
		return p.Outputs(g.outputs), nil
	case *Tombstone:
		_, err := op.Connections()
		return nil, err
	}
	return nil, configErrorf("gate %s: unsupported operator type %T", g.Name, g.op)
}
