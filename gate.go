package logik

import (
	"github.com/pkg/errors"
)

// A Gate is a named logic definition: a primitive function or a composite
// wiring of other gates. Gates are identified by their key; two Gate values
// with the same key denote the same gate, whatever their other fields.
//
// Gates are created by a Library, which builds their truth table.
//
type Gate struct {
	key     Key
	inputs  int
	outputs int
	op      Operator
	table   *TruthTable
	deleted bool

	inNames  []string
	outNames []string

	Name         string
	Color        string // presentation only
	CanBeDeleted bool
}

// SameGate reports whether a and b are the same gate.
//
func SameGate(a, b *Gate) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.key == b.key
}

// Key returns the key of g.
//
func (g *Gate) Key() Key { return g.key }

// Inputs returns the input count of g.
//
func (g *Gate) Inputs() int { return g.inputs }

// Outputs returns the output count of g.
//
func (g *Gate) Outputs() int { return g.outputs }

// Operator returns the operator of g. For deleted gates, this is a
// *Tombstone.
//
func (g *Gate) Operator() Operator { return g.op }

// TruthTable returns the truth table of g. It is nil only for gates over
// MaxTableInputs inputs.
//
func (g *Gate) TruthTable() *TruthTable { return g.table }

// Deleted reports whether g has been deleted.
//
func (g *Gate) Deleted() bool { return g.deleted }

// Connections returns the internal wiring of a composite gate. It fails with
// a DeletedGateAccessError if g has been deleted.
//
func (g *Gate) Connections() ([]Connection, error) {
	switch op := g.op.(type) {
	case *Composite:
		return op.Connections()
	case *Tombstone:
		return op.Connections()
	case *Primitive:
		return nil, errors.Errorf("gate %s is a primitive and has no connections", g.Name)
	}
	return nil, errors.Errorf("gate %s: unsupported operator type %T", g.Name, g.op)
}

// InputNames returns the input pin names of g.
//
func (g *Gate) InputNames() []string { return append([]string(nil), g.inNames...) }

// OutputNames returns the output pin names of g.
//
func (g *Gate) OutputNames() []string { return append([]string(nil), g.outNames...) }

// Part returns a netlist part placing g with the given connections. See
// Library.Chip.
//
func (g *Gate) Part(connections string) Part {
	return Part{Gate: g, Conns: connections}
}

func (g *Gate) pinIndex(name string) (kind PinKind, i int, ok bool) {
	for i, n := range g.inNames {
		if n == name {
			return Input, i, true
		}
	}
	for i, n := range g.outNames {
		if n == name {
			return Output, i, true
		}
	}
	return 0, 0, false
}

func (g *Gate) String() string { return g.Name + "#" + string(g.key) }
