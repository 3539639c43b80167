package logik

import (
	"github.com/pkg/errors"
)

// a wire is a named signal in a netlist. It has at most one driver and any
// number of sinks.
type wire struct {
	name   string
	driver *Pin
	sinks  []Pin
}

type wiring struct {
	wires map[string]*wire
	order []string // wire names in order of creation
}

func newWiring(ins, outs []string) *wiring {
	wr := &wiring{wires: make(map[string]*wire, len(ins)+len(outs))}
	for i, in := range ins {
		p := GlobalInputPin(i)
		wr.get(in).driver = &p
	}
	for i, out := range outs {
		w := wr.get(out)
		w.sinks = append(w.sinks, GlobalOutputPin(i))
	}
	return wr
}

func (wr *wiring) get(name string) *wire {
	w := wr.wires[name]
	if w == nil {
		w = &wire{name: name}
		wr.wires[name] = w
		wr.order = append(wr.order, name)
	}
	return w
}

func (wr *wiring) drive(name string, p Pin) error {
	w := wr.get(name)
	if w.driver != nil {
		if w.driver.Kind == GlobalInput {
			return errors.New("output pin connected to chip input " + name)
		}
		return errors.New("wire " + name + " already driven by another output")
	}
	w.driver = &p
	return nil
}

func (wr *wiring) sink(name string, p Pin) {
	w := wr.get(name)
	w.sinks = append(w.sinks, p)
}

// connections returns one connection per wire sink.
//
func (wr *wiring) connections() ([]Connection, error) {
	var conns []Connection
	for _, name := range wr.order {
		w := wr.wires[name]
		if w.driver == nil {
			for _, s := range w.sinks {
				if s.Kind == Input {
					return nil, errors.New("pin " + name + " not connected to any output")
				}
			}
			// undriven global outputs read as false.
			continue
		}
		if len(w.sinks) == 0 && w.driver.Kind == Output {
			return nil, errors.New("pin " + name + " not connected to any input")
		}
		for _, s := range w.sinks {
			c, err := NewConnection(*w.driver, s)
			if err != nil {
				return nil, err
			}
			conns = append(conns, c)
		}
	}
	return conns, nil
}
