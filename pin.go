package logik

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Key identifies a gate, a chip or a connection. Keys are assigned at
// creation and never reused.
//
type Key string

// NewKey returns a new random key.
//
func NewKey() Key { return Key(uuid.NewString()) }

// A Chip is an instance of a gate placed inside a composite gate. X and Y are
// presentation only.
//
type Chip struct {
	Key  Key
	Gate Key // key of the placed gate
	X, Y float64
}

// SameChip reports whether a and b are the same chip instance.
//
func SameChip(a, b *Chip) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Key == b.Key
}

// PinKind is the type of a Pin.
//
type PinKind uint8

// Pin kinds.
const (
	GlobalInput  PinKind = iota // input of the enclosing gate
	GlobalOutput                // output of the enclosing gate
	Input                       // input terminal of a chip
	Output                      // output terminal of a chip
)

var pinKinds = [...]string{
	GlobalInput:  "global-input",
	GlobalOutput: "global-output",
	Input:        "input",
	Output:       "output",
}

func (k PinKind) String() string {
	if int(k) < len(pinKinds) {
		return pinKinds[k]
	}
	return "pin-kind(" + strconv.Itoa(int(k)) + ")"
}

// ParsePinKind returns the PinKind named s.
//
func ParsePinKind(s string) (PinKind, error) {
	for k, n := range pinKinds {
		if n == s {
			return PinKind(k), nil
		}
	}
	return 0, errors.Errorf("unknown pin type %q", s)
}

// Source reports whether signals originate from pins of kind k.
//
func (k PinKind) Source() bool { return k == GlobalInput || k == Output }

// OnChip reports whether pins of kind k belong to a chip.
//
func (k PinKind) OnChip() bool { return k == Input || k == Output }

// A Pin is the locus of a single boolean signal in a composite gate.
// Chip is nil for global pins.
//
type Pin struct {
	Kind  PinKind
	Index int
	Chip  *Chip
}

// GlobalInputPin returns the i-th input pin of the enclosing gate.
//
func GlobalInputPin(i int) Pin { return Pin{Kind: GlobalInput, Index: i} }

// GlobalOutputPin returns the i-th output pin of the enclosing gate.
//
func GlobalOutputPin(i int) Pin { return Pin{Kind: GlobalOutput, Index: i} }

// InputPin returns the i-th input pin of chip c.
//
func InputPin(c *Chip, i int) Pin { return Pin{Kind: Input, Index: i, Chip: c} }

// OutputPin returns the i-th output pin of chip c.
//
func OutputPin(c *Chip, i int) Pin { return Pin{Kind: Output, Index: i, Chip: c} }

// Equal reports whether p and q denote the same pin. Chip pins are compared
// by chip key.
//
func (p Pin) Equal(q Pin) bool { return p.ID() == q.ID() }

// ID returns a comparable identifier for p.
//
func (p Pin) ID() PinID {
	id := PinID{Kind: p.Kind, Index: p.Index}
	if p.Kind.OnChip() && p.Chip != nil {
		id.Chip = p.Chip.Key
	}
	return id
}

func (p Pin) String() string { return p.ID().String() }

// PinID is the comparable identity of a Pin.
//
type PinID struct {
	Kind  PinKind
	Index int
	Chip  Key
}

func (id PinID) String() string {
	s := id.Kind.String() + "[" + strconv.Itoa(id.Index) + "]"
	if id.Chip != "" {
		s += "@" + string(id.Chip)
	}
	return s
}

// PinSet is a set of pins.
//
type PinSet map[PinID]struct{}

// Has reports whether p is in s.
//
func (s PinSet) Has(p Pin) bool {
	_, ok := s[p.ID()]
	return ok
}

// A Connection is a directed edge between two pins of a composite gate.
// From must be a GlobalInput or Output pin, To a GlobalOutput or Input pin.
//
type Connection struct {
	Key  Key
	From Pin
	To   Pin
}

// NewConnection returns a new connection from pin from to pin to.
//
func NewConnection(from, to Pin) (Connection, error) {
	c := Connection{Key: NewKey(), From: from, To: to}
	if err := c.check(); err != nil {
		return Connection{}, err
	}
	return c, nil
}

func (c *Connection) check() error {
	if !c.From.Kind.Source() {
		return configErrorf("connection %s: %s pin cannot be a signal source", c.Key, c.From.Kind)
	}
	if c.To.Kind.Source() {
		return configErrorf("connection %s: %s pin cannot be a signal destination", c.Key, c.To.Kind)
	}
	for _, p := range [...]Pin{c.From, c.To} {
		if p.Index < 0 {
			return configErrorf("connection %s: negative pin index %d", c.Key, p.Index)
		}
		if p.Kind.OnChip() && (p.Chip == nil || p.Chip.Key == "") {
			return configErrorf("connection %s: %s pin has no chip", c.Key, p.Kind)
		}
		if p.Kind.OnChip() && p.Chip.Gate == "" {
			return configErrorf("connection %s: chip %s has no gate", c.Key, p.Chip.Key)
		}
	}
	return nil
}
