package logik

import (
	"github.com/pkg/errors"
)

// A Builder assembles the wiring of a composite gate by placing chips and
// connecting pins. The zero Builder is not usable, use NewBuilder.
//
type Builder struct {
	inputs  int
	outputs int
	chips   map[Key]*Chip
	order   []Key
	conns   []Connection
}

// NewBuilder returns a builder for a composite gate with the given number of
// global inputs and outputs.
//
func NewBuilder(inputs, outputs int) *Builder {
	return &Builder{inputs: inputs, outputs: outputs, chips: make(map[Key]*Chip)}
}

// Place places a new chip instance of gate g at position (x, y).
//
func (b *Builder) Place(g *Gate, x, y float64) (*Chip, error) {
	if g == nil {
		return nil, errors.New("cannot place nil gate")
	}
	if g.deleted {
		return nil, errors.Errorf("cannot place deleted gate %s", g.Name)
	}
	c := &Chip{Key: NewKey(), Gate: g.key, X: x, Y: y}
	b.chips[c.Key] = c
	b.order = append(b.order, c.Key)
	return c, nil
}

// Remove removes chip c and all connections to or from it.
//
func (b *Builder) Remove(c *Chip) {
	if _, ok := b.chips[c.Key]; !ok {
		return
	}
	delete(b.chips, c.Key)
	for i, k := range b.order {
		if k == c.Key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	conns := b.conns[:0]
	for _, cn := range b.conns {
		if SameChip(cn.From.Chip, c) || SameChip(cn.To.Chip, c) {
			continue
		}
		conns = append(conns, cn)
	}
	b.conns = conns
}

// Chips returns the placed chips in placement order.
//
func (b *Builder) Chips() []*Chip {
	r := make([]*Chip, len(b.order))
	for i, k := range b.order {
		r[i] = b.chips[k]
	}
	return r
}

// Connect connects pin from to pin to. A consuming pin can only be
// connected once.
//
func (b *Builder) Connect(from, to Pin) (Connection, error) {
	c, err := NewConnection(from, to)
	if err != nil {
		return Connection{}, err
	}
	for _, p := range [...]Pin{from, to} {
		if p.Kind.OnChip() {
			if _, ok := b.chips[p.Chip.Key]; !ok {
				return Connection{}, configErrorf("chip %s is not placed", p.Chip.Key)
			}
		}
	}
	for _, cn := range b.conns {
		if cn.To.Equal(to) {
			return Connection{}, configErrorf("pin %s already connected", to)
		}
	}
	b.conns = append(b.conns, c)
	return c, nil
}

// Disconnect removes the connection with the given key and reports whether
// it was found.
//
func (b *Builder) Disconnect(key Key) bool {
	for i, cn := range b.conns {
		if cn.Key == key {
			b.conns = append(b.conns[:i], b.conns[i+1:]...)
			return true
		}
	}
	return false
}

// Connections returns a copy of the current connections.
//
func (b *Builder) Connections() []Connection {
	return append([]Connection(nil), b.conns...)
}

// Composite returns a composite operator for the current wiring.
//
func (b *Builder) Composite() (*Composite, error) {
	return NewComposite(b.inputs, b.outputs, b.conns)
}

// Compose adds a new deletable composite gate built from b.
//
func (l *Library) Compose(name, color string, b *Builder) (*Gate, error) {
	op, err := b.Composite()
	if err != nil {
		return nil, errors.Wrapf(err, "gate %s", name)
	}
	return l.New(name, op, color)
}
