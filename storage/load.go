package storage

import (
	"github.com/db47h/logik"
	"github.com/pkg/errors"
)

// Store returns the structural form of all gates in l, deleted ones
// included, in library order.
//
func Store(l *logik.Library) ([]Gate, error) {
	gs := l.Gates()
	r := make([]Gate, 0, len(gs))
	for _, g := range gs {
		sg, err := store(g)
		if err != nil {
			return nil, errors.Wrapf(err, "store gate %s", g.Name)
		}
		r = append(r, sg)
	}
	return r, nil
}

func store(g *logik.Gate) (Gate, error) {
	sg := Gate{
		Key:          string(g.Key()),
		Name:         g.Name,
		Color:        g.Color,
		Inputs:       g.Inputs(),
		Outputs:      g.Outputs(),
		CanBeDeleted: g.CanBeDeleted,
		Deleted:      g.Deleted(),
		InputNames:   g.InputNames(),
		OutputNames:  g.OutputNames(),
	}
	if tt := g.TruthTable(); tt != nil {
		sg.TruthTable = tt.Rows()
	}
	switch op := g.Operator().(type) {
	case *logik.Tombstone:
	case *logik.Primitive:
		name, ok := logik.PrimitiveName(op)
		if !ok {
			return Gate{}, errors.Errorf("custom primitive %s cannot be stored", op.Name)
		}
		sg.Operator = &Operator{Primitive: name}
	case *logik.Composite:
		conns, err := op.Connections()
		if err != nil {
			return Gate{}, err
		}
		c := &Composite{Connections: make([]Connection, len(conns))}
		for i, cn := range conns {
			c.Connections[i] = Connection{Key: string(cn.Key), From: storePin(cn.From), To: storePin(cn.To)}
		}
		sg.Operator = &Operator{Composite: c}
	default:
		return Gate{}, errors.Errorf("unsupported operator type %T", op)
	}
	return sg, nil
}

func storePin(p logik.Pin) Pin {
	sp := Pin{Type: p.Kind.String(), Index: p.Index}
	if p.Kind.OnChip() && p.Chip != nil {
		sp.Chip = &Chip{Key: string(p.Chip.Key), X: p.Chip.X, Y: p.Chip.Y, Gate: string(p.Chip.Gate)}
	}
	return sp
}

// check validates a stored gate on its own.
//
func (g *Gate) check() error {
	switch {
	case !g.has("key") || g.Key == "":
		return errors.New("no key defined in gate")
	case !g.has("operator"):
		return errors.New("no operator defined in gate")
	case !g.has("name"):
		return errors.New("no name defined in gate")
	case !g.has("color"):
		return errors.New("no color defined in gate")
	case !g.has("inputs") || !g.has("outputs"):
		return errors.New("no input (or/and) output count set")
	case g.Inputs < 0 || g.Outputs < 0:
		return errors.Errorf("invalid arity %d/%d", g.Inputs, g.Outputs)
	case g.Operator == nil && !g.Deleted:
		return errors.New("unknown operator structure: null operator on a live gate")
	case g.Operator == nil && g.TruthTable == nil:
		return errors.New("deleted gate without truth table")
	case g.Operator != nil && g.Operator.Composite == nil:
		p, err := logik.LookupPrimitive(g.Operator.Primitive)
		if err != nil {
			return err
		}
		if ins, outs := p.Arity(); ins != g.Inputs || outs != g.Outputs {
			return errors.Errorf("primitive %s has arity %d/%d, stored arity is %d/%d", p.Name, ins, outs, g.Inputs, g.Outputs)
		}
	}
	return nil
}

// deps returns the keys of the gates placed in g.
//
func (g *Gate) deps() []string {
	if g.Operator == nil || g.Operator.Composite == nil {
		return nil
	}
	var r []string
	seen := make(map[string]bool)
	for _, c := range g.Operator.Composite.Connections {
		for _, p := range [...]Pin{c.From, c.To} {
			if p.Chip != nil && !seen[p.Chip.Gate] {
				seen[p.Chip.Gate] = true
				r = append(r, p.Chip.Gate)
			}
		}
	}
	return r
}

// Load returns a new library holding gates. It fails if any gate is invalid
// or references a gate that is not in gates.
//
// Gates are added to the library in dependency order, which is the order of
// gates whenever gates are stored only after the gates they use.
//
func Load(gates []Gate) (*logik.Library, error) {
	byKey := make(map[string]*Gate, len(gates))
	for i := range gates {
		g := &gates[i]
		if err := g.check(); err != nil {
			return nil, errors.Wrapf(err, "failed deserializing gate %d", i)
		}
		if _, ok := byKey[g.Key]; ok {
			return nil, errors.Errorf("failed deserializing gate %d: duplicate key %s", i, g.Key)
		}
		byKey[g.Key] = g
	}

	const (
		todo = iota
		visiting
		done
	)
	state := make(map[string]int, len(gates))
	order := make([]*Gate, 0, len(gates))
	var visit func(g *Gate) error
	visit = func(g *Gate) error {
		switch state[g.Key] {
		case done:
			return nil
		case visiting:
			return errors.Errorf("gate %s (%s) depends on itself", g.Name, g.Key)
		}
		state[g.Key] = visiting
		for _, k := range g.deps() {
			d, ok := byKey[k]
			if !ok {
				return errors.Errorf("gate %s (%s): chip references unknown gate %s", g.Name, g.Key, k)
			}
			if err := visit(d); err != nil {
				return err
			}
		}
		state[g.Key] = done
		order = append(order, g)
		return nil
	}
	for i := range gates {
		if err := visit(&gates[i]); err != nil {
			return nil, errors.Wrap(err, "failed deserializing gates")
		}
	}

	l := logik.NewLibrary()
	for _, g := range order {
		if err := load(l, g); err != nil {
			return nil, errors.Wrapf(err, "failed deserializing gate %s (%s)", g.Name, g.Key)
		}
	}
	return l, nil
}

func load(l *logik.Library, g *Gate) error {
	spec := logik.GateSpec{
		Key:          logik.Key(g.Key),
		Name:         g.Name,
		Color:        g.Color,
		CanBeDeleted: g.CanBeDeleted,
		Deleted:      g.Deleted,
		InputNames:   g.InputNames,
		OutputNames:  g.OutputNames,
	}
	if g.TruthTable != nil {
		tt, err := logik.NewTruthTable(g.Inputs, g.TruthTable)
		if err != nil {
			return err
		}
		spec.TruthTable = tt
	}
	switch {
	case g.Operator == nil:
		spec.Operator = &logik.Tombstone{Inputs: g.Inputs, Outputs: g.Outputs}
	case g.Operator.Composite != nil:
		op, err := g.Operator.Composite.composite(g.Inputs, g.Outputs)
		if err != nil {
			return err
		}
		spec.Operator = op
	default:
		p, err := logik.LookupPrimitive(g.Operator.Primitive)
		if err != nil {
			return err
		}
		spec.Operator = p
	}
	_, err := l.Add(spec)
	return err
}

// composite rebuilds the wiring of c. Chips with the same key are the same
// chip.
//
func (c *Composite) composite(inputs, outputs int) (*logik.Composite, error) {
	chips := make(map[string]*logik.Chip)
	pin := func(p Pin) (logik.Pin, error) {
		kind, err := logik.ParsePinKind(p.Type)
		if err != nil {
			return logik.Pin{}, err
		}
		lp := logik.Pin{Kind: kind, Index: p.Index}
		if !kind.OnChip() {
			return lp, nil
		}
		if p.Chip == nil {
			return logik.Pin{}, errors.Errorf("%s pin %d has no chip", kind, p.Index)
		}
		ch := chips[p.Chip.Key]
		if ch == nil {
			ch = &logik.Chip{Key: logik.Key(p.Chip.Key), Gate: logik.Key(p.Chip.Gate), X: p.Chip.X, Y: p.Chip.Y}
			chips[p.Chip.Key] = ch
		} else if string(ch.Gate) != p.Chip.Gate {
			return logik.Pin{}, errors.Errorf("chip %s placed with two different gates", p.Chip.Key)
		}
		lp.Chip = ch
		return lp, nil
	}
	conns := make([]logik.Connection, len(c.Connections))
	for i, sc := range c.Connections {
		from, err := pin(sc.From)
		if err != nil {
			return nil, errors.Wrapf(err, "connection %d", i)
		}
		to, err := pin(sc.To)
		if err != nil {
			return nil, errors.Wrapf(err, "connection %d", i)
		}
		key := logik.Key(sc.Key)
		if key == "" {
			key = logik.NewKey()
		}
		conns[i] = logik.Connection{Key: key, From: from, To: to}
	}
	return logik.NewComposite(inputs, outputs, conns)
}
