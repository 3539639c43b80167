package gatelib

import (
	"github.com/db47h/logik"
)

// Standard registers a standard set of gates in l: all primitives, MUX,
// DMUX, the adders and 4 bits variants. It returns the gates in registration
// order.
//
func Standard(l *logik.Library) ([]*logik.Gate, error) {
	var gs []*logik.Gate
	for _, p := range logik.Primitives() {
		g, err := l.Builtin(p)
		if err != nil {
			return nil, err
		}
		gs = append(gs, g)
	}
	for _, fn := range []func(l *logik.Library) (*logik.Gate, error){
		Mux,
		DMux,
		HalfAdder,
		FullAdder,
		func(l *logik.Library) (*logik.Gate, error) { return AdderN(l, 4) },
		func(l *logik.Library) (*logik.Gate, error) { return NotN(l, 4) },
		func(l *logik.Library) (*logik.Gate, error) { return GateN(l, logik.AND, 4) },
		func(l *logik.Library) (*logik.Gate, error) { return GateN(l, logik.OR, 4) },
		func(l *logik.Library) (*logik.Gate, error) { return MuxN(l, 4) },
		func(l *logik.Library) (*logik.Gate, error) { return DMuxN(l, 4) },
		func(l *logik.Library) (*logik.Gate, error) { return MuxMWayN(l, 4, 1) },
		func(l *logik.Library) (*logik.Gate, error) { return DMuxNWay(l, 4) },
		func(l *logik.Library) (*logik.Gate, error) { return OrNWay(l, 8) },
		func(l *logik.Library) (*logik.Gate, error) { return AndNWay(l, 8) },
	} {
		g, err := fn(l)
		if err != nil {
			return nil, err
		}
		gs = append(gs, g)
	}
	return gs, nil
}
