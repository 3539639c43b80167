package logik

import (
	"sync"

	"github.com/pkg/errors"
)

// An Operator defines the behavior of a gate. It is one of *Primitive,
// *Composite or *Tombstone.
//
type Operator interface {
	// Arity returns the input and output counts of the operator.
	Arity() (inputs, outputs int)
	operator()
}

// A Composite is an operator defined by an internal graph of chips and
// connections, with Inputs global input pins and Outputs global output pins.
//
type Composite struct {
	inputs  int
	outputs int
	conns   []Connection

	once sync.Once
	idx  *index
}

// NewComposite returns a composite operator with the given boundary and
// wiring. Connections are checked for direction, global pin ranges, and
// consuming pins driven more than once. Chip pin ranges can only be checked
// against resolved gates, see Library.Add.
//
func NewComposite(inputs, outputs int, conns []Connection) (*Composite, error) {
	if inputs < 0 || outputs < 0 {
		return nil, configErrorf("invalid composite arity %d/%d", inputs, outputs)
	}
	drivers := make(map[PinID]Key, len(conns))
	keys := make(map[Key]struct{}, len(conns))
	for i := range conns {
		c := &conns[i]
		if err := c.check(); err != nil {
			return nil, err
		}
		if c.Key == "" {
			return nil, configErrorf("connection %s -> %s has no key", c.From, c.To)
		}
		if _, ok := keys[c.Key]; ok {
			return nil, configErrorf("duplicate connection key %s", c.Key)
		}
		keys[c.Key] = struct{}{}
		if c.From.Kind == GlobalInput && c.From.Index >= inputs {
			return nil, configErrorf("connection %s: global input %d out of range [0, %d)", c.Key, c.From.Index, inputs)
		}
		if c.To.Kind == GlobalOutput && c.To.Index >= outputs {
			return nil, configErrorf("connection %s: global output %d out of range [0, %d)", c.Key, c.To.Index, outputs)
		}
		id := c.To.ID()
		if k, ok := drivers[id]; ok {
			return nil, configErrorf("pin %s driven by both connections %s and %s", c.To, k, c.Key)
		}
		drivers[id] = c.Key
	}
	return &Composite{
		inputs:  inputs,
		outputs: outputs,
		conns:   append([]Connection(nil), conns...),
	}, nil
}

func (*Composite) operator() {}

// Arity implements Operator.
//
func (c *Composite) Arity() (inputs, outputs int) { return c.inputs, c.outputs }

// Connections returns a copy of the internal wiring of c.
//
func (c *Composite) Connections() ([]Connection, error) {
	return append([]Connection(nil), c.conns...), nil
}

// Chips returns the chips referenced by the wiring of c, in order of first
// appearance.
//
func (c *Composite) Chips() []*Chip {
	idx := c.index()
	r := make([]*Chip, len(idx.order))
	for i, k := range idx.order {
		r[i] = idx.chips[k]
	}
	return r
}

// A Tombstone replaces the operator of a deleted gate. Only the arity is
// retained; the gate keeps evaluating through its truth table.
//
type Tombstone struct {
	Inputs  int
	Outputs int
	Gate    string // name of the deleted gate
}

func (*Tombstone) operator() {}

// Arity implements Operator.
//
func (t *Tombstone) Arity() (inputs, outputs int) { return t.Inputs, t.Outputs }

// Connections always fails with a DeletedGateAccessError.
//
func (t *Tombstone) Connections() ([]Connection, error) {
	return nil, errors.WithStack(&DeletedGateAccessError{Gate: t.Gate})
}
