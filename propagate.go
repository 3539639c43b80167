package logik

import (
	"sort"
)

// index groups the connections of a composite by the pins they touch.
//
type index struct {
	byDest   map[Key][]int // connections into a chip, by chip key
	byOrigin map[Key][]int // connections out of a chip, by chip key
	byGlobal map[int][]int // connections out of a global input, by pin index
	globals  []int         // sorted keys of byGlobal
	chips    map[Key]*Chip
	order    []Key // chip keys in order of first appearance
}

func (c *Composite) index() *index {
	c.once.Do(func() { c.idx = buildIndex(c.conns) })
	return c.idx
}

func buildIndex(conns []Connection) *index {
	idx := &index{
		byDest:   make(map[Key][]int),
		byOrigin: make(map[Key][]int),
		byGlobal: make(map[int][]int),
		chips:    make(map[Key]*Chip),
	}
	addChip := func(c *Chip) {
		if _, ok := idx.chips[c.Key]; !ok {
			idx.chips[c.Key] = c
			idx.order = append(idx.order, c.Key)
		}
	}
	for i := range conns {
		from, to := conns[i].From, conns[i].To
		switch from.Kind {
		case GlobalInput:
			if _, ok := idx.byGlobal[from.Index]; !ok {
				idx.globals = append(idx.globals, from.Index)
			}
			idx.byGlobal[from.Index] = append(idx.byGlobal[from.Index], i)
		case Output:
			addChip(from.Chip)
			idx.byOrigin[from.Chip.Key] = append(idx.byOrigin[from.Chip.Key], i)
		}
		if to.Kind == Input {
			addChip(to.Chip)
			idx.byDest[to.Chip.Key] = append(idx.byDest[to.Chip.Key], i)
		}
	}
	sort.Ints(idx.globals)
	return idx
}

// Propagation is the result of a propagation run over a composite gate.
// Pins in neither TurnedOn nor TurnedOff are unresolved.
//
type Propagation struct {
	TurnedOn  PinSet
	TurnedOff PinSet
	Evaluated map[Key]bool // chips evaluated during the run
	Warnings  []*IncompleteWiringWarning
}

// State returns the value of pin p and whether it was resolved.
//
func (p *Propagation) State(pin Pin) (on, resolved bool) {
	if p.TurnedOn.Has(pin) {
		return true, true
	}
	return false, p.TurnedOff.Has(pin)
}

// Outputs returns the values of the first n global output pins. Unresolved
// pins read as false.
//
func (p *Propagation) Outputs(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = p.TurnedOn.Has(GlobalOutputPin(i))
	}
	return out
}

// run is the scratch state of one propagation run.
//
type run struct {
	lib   *Library
	conns []Connection
	idx   *index
	in    []bool
	res   *Propagation
	ready map[Key]map[int]struct{} // chip input indices that received a value
	queue []Pin
}

// Propagate resolves the pins of composite c for input vector in. Chip
// gates are resolved through l and evaluated with l.Evaluate. Chips whose
// inputs are never all resolved are left unevaluated and reported in the
// result warnings; they are also passed to l.OnWarning.
//
func (l *Library) Propagate(c *Composite, in []bool) (*Propagation, error) {
	if len(in) != c.inputs {
		return nil, configErrorf("composite expects %d inputs, got %d", c.inputs, len(in))
	}
	r := &run{
		lib:   l,
		conns: c.conns,
		idx:   c.index(),
		in:    in,
		res: &Propagation{
			TurnedOn:  make(PinSet),
			TurnedOff: make(PinSet),
			Evaluated: make(map[Key]bool),
		},
		ready: make(map[Key]map[int]struct{}),
	}

	for _, i := range r.idx.globals {
		r.queue = append(r.queue, GlobalInputPin(i))
	}
	// chips without inputs never receive a signal; evaluate them up front.
	for _, k := range r.idx.order {
		if err := r.evalChip(r.idx.chips[k]); err != nil {
			return nil, err
		}
	}

	for head := 0; head < len(r.queue); head++ {
		p := r.queue[head]
		switch p.Kind {
		case GlobalInput:
			r.global(p)
		case Input:
			if err := r.evalChip(p.Chip); err != nil {
				return nil, err
			}
		}
	}

	for _, k := range r.idx.order {
		if r.res.Evaluated[k] {
			continue
		}
		w, err := r.incomplete(r.idx.chips[k])
		if err != nil {
			return nil, err
		}
		r.res.Warnings = append(r.res.Warnings, w)
		if l.OnWarning != nil {
			l.OnWarning(w)
		}
	}
	return r.res, nil
}

func (r *run) set(p Pin, v bool) {
	id := p.ID()
	if v {
		r.res.TurnedOn[id] = struct{}{}
		delete(r.res.TurnedOff, id)
	} else {
		r.res.TurnedOff[id] = struct{}{}
		delete(r.res.TurnedOn, id)
	}
}

// drive sets both ends of connection i to v and schedules chip inputs.
//
func (r *run) drive(i int, v bool) {
	c := &r.conns[i]
	r.set(c.From, v)
	r.set(c.To, v)
	if c.To.Kind == Input {
		k := c.To.Chip.Key
		rd := r.ready[k]
		if rd == nil {
			rd = make(map[int]struct{})
			r.ready[k] = rd
		}
		rd[c.To.Index] = struct{}{}
		r.queue = append(r.queue, c.To)
	}
}

func (r *run) global(p Pin) {
	v := r.in[p.Index]
	r.set(p, v)
	for _, i := range r.idx.byGlobal[p.Index] {
		r.drive(i, v)
	}
}

func (r *run) gate(c *Chip) (*Gate, error) {
	g, ok := r.lib.Gate(c.Gate)
	if !ok {
		return nil, configErrorf("chip %s: no gate with key %s", c.Key, c.Gate)
	}
	return g, nil
}

// evalChip evaluates chip c once all of its inputs are resolved.
//
func (r *run) evalChip(c *Chip) error {
	if r.res.Evaluated[c.Key] {
		return nil
	}
	g, err := r.gate(c)
	if err != nil {
		return err
	}
	rd := r.ready[c.Key]
	in := make([]bool, g.Inputs())
	for i := range in {
		if _, ok := rd[i]; !ok {
			return nil
		}
		in[i] = r.res.TurnedOn.Has(InputPin(c, i))
	}
	out, err := r.lib.Evaluate(g, in)
	if err != nil {
		return err
	}
	r.res.Evaluated[c.Key] = true
	for _, i := range r.idx.byOrigin[c.Key] {
		from := r.conns[i].From
		if from.Index >= len(out) {
			return configErrorf("chip %s: output %d out of range for gate %s with %d outputs", c.Key, from.Index, g.Name, len(out))
		}
		r.drive(i, out[from.Index])
	}
	return nil
}

func (r *run) incomplete(c *Chip) (*IncompleteWiringWarning, error) {
	g, err := r.gate(c)
	if err != nil {
		return nil, err
	}
	w := &IncompleteWiringWarning{Chip: c.Key, Gate: g.Name}
	rd := r.ready[c.Key]
	for i := 0; i < g.Inputs(); i++ {
		if _, ok := rd[i]; !ok {
			w.Missing = append(w.Missing, i)
		}
	}
	return w, nil
}
