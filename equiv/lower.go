package equiv

import (
	"github.com/db47h/logik"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

type lowerer struct {
	l *logik.Library
	c *logic.C
}

// gate returns the output literals of g given its input literals.
//
func (lw *lowerer) gate(g *logik.Gate, in []z.Lit) ([]z.Lit, error) {
	switch op := g.Operator().(type) {
	case *logik.Primitive:
		if out, ok := lw.primitive(op, in); ok {
			return out, nil
		}
		return lw.table(g, in)
	case *logik.Tombstone:
		return lw.table(g, in)
	case *logik.Composite:
		out, err := lw.composite(op, in)
		return out, errors.Wrapf(err, "lower %s", g.Name)
	}
	return nil, errors.Errorf("gate %s: unsupported operator type %T", g.Name, g.Operator())
}

func (lw *lowerer) primitive(p *logik.Primitive, in []z.Lit) ([]z.Lit, bool) {
	c := lw.c
	var out z.Lit
	switch p {
	case logik.NOT:
		out = in[0].Not()
	case logik.AND:
		out = c.And(in[0], in[1])
	case logik.NAND:
		out = c.And(in[0], in[1]).Not()
	case logik.OR:
		out = c.Or(in[0], in[1])
	case logik.NOR:
		out = c.Or(in[0], in[1]).Not()
	case logik.XOR:
		out = c.Xor(in[0], in[1])
	case logik.XNOR:
		out = c.Xor(in[0], in[1]).Not()
	default:
		return nil, false
	}
	return []z.Lit{out}, true
}

// table lowers g as a sum of the minterms of its truth table.
//
func (lw *lowerer) table(g *logik.Gate, in []z.Lit) ([]z.Lit, error) {
	tt := g.TruthTable()
	if tt == nil {
		return nil, errors.Errorf("gate %s has neither wiring nor truth table", g.Name)
	}
	terms := make([][]z.Lit, g.Outputs())
	ms := make([]z.Lit, len(in))
	tt.Each(func(row, out []bool) bool {
		var term z.Lit
		init := false
		for o, v := range out {
			if !v {
				continue
			}
			if !init {
				for i, b := range row {
					if b {
						ms[i] = in[i]
					} else {
						ms[i] = in[i].Not()
					}
				}
				term = lw.c.Ands(ms...)
				init = true
			}
			terms[o] = append(terms[o], term)
		}
		return true
	})
	out := make([]z.Lit, len(terms))
	for o, ts := range terms {
		out[o] = lw.c.Ors(ts...)
	}
	return out, nil
}

// composite lowers the wiring of op. Chips are lowered once all of their
// inputs are driven. Chips that never get there, and the pins that they
// drive, are false.
//
func (lw *lowerer) composite(op *logik.Composite, in []z.Lit) ([]z.Lit, error) {
	conns, err := op.Connections()
	if err != nil {
		return nil, err
	}
	_, outputs := op.Arity()
	// source pin of every chip input and global output
	src := make(map[logik.PinID]logik.Pin, len(conns))
	for _, cn := range conns {
		src[cn.To.ID()] = cn.From
	}
	chipOut := make(map[logik.Key][]z.Lit)
	lit := func(p logik.Pin) (z.Lit, bool) {
		switch p.Kind {
		case logik.GlobalInput:
			if p.Index >= len(in) {
				return lw.c.F, true
			}
			return in[p.Index], true
		case logik.Output:
			outs, ok := chipOut[p.Chip.Key]
			if !ok {
				return lw.c.F, false
			}
			if p.Index >= len(outs) {
				return lw.c.F, true
			}
			return outs[p.Index], true
		}
		return lw.c.F, false
	}

	chips := op.Chips()
	for progress := true; progress; {
		progress = false
		for _, ch := range chips {
			if _, done := chipOut[ch.Key]; done {
				continue
			}
			g, ok := lw.l.Gate(ch.Gate)
			if !ok {
				return nil, errors.Errorf("chip %s: no gate with key %s", ch.Key, ch.Gate)
			}
			ins := make([]z.Lit, g.Inputs())
			ready := true
			for i := range ins {
				p, ok := src[logik.InputPin(ch, i).ID()]
				if !ok {
					ready = false
					break
				}
				if ins[i], ok = lit(p); !ok {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}
			outs, err := lw.gate(g, ins)
			if err != nil {
				return nil, err
			}
			chipOut[ch.Key] = outs
			progress = true
		}
	}

	out := make([]z.Lit, outputs)
	for i := range out {
		out[i] = lw.c.F
		if p, ok := src[logik.GlobalOutputPin(i).ID()]; ok {
			out[i], _ = lit(p)
		}
	}
	return out, nil
}
