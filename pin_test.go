package logik_test

import (
	"testing"

	"github.com/db47h/logik"
)

func TestPin_Equal(t *testing.T) {
	c1 := &logik.Chip{Key: "c1", Gate: "g"}
	c1b := &logik.Chip{Key: "c1", Gate: "g", X: 10}
	c2 := &logik.Chip{Key: "c2", Gate: "g"}
	td := []struct {
		a, b logik.Pin
		eq   bool
	}{
		{logik.GlobalInputPin(0), logik.GlobalInputPin(0), true},
		{logik.GlobalInputPin(0), logik.GlobalOutputPin(0), false},
		{logik.GlobalInputPin(0), logik.GlobalInputPin(1), false},
		{logik.InputPin(c1, 0), logik.InputPin(c1b, 0), true},
		{logik.InputPin(c1, 0), logik.InputPin(c2, 0), false},
		{logik.InputPin(c1, 0), logik.OutputPin(c1, 0), false},
	}
	for _, d := range td {
		if d.a.Equal(d.b) != d.eq {
			t.Errorf("%v.Equal(%v) = %v", d.a, d.b, !d.eq)
		}
	}
	if !logik.SameChip(c1, c1b) || logik.SameChip(c1, c2) || logik.SameChip(c1, nil) || !logik.SameChip(nil, nil) {
		t.Error("SameChip: unexpected result")
	}
	s := logik.PinSet{logik.OutputPin(c1, 1).ID(): {}}
	if !s.Has(logik.OutputPin(c1b, 1)) || s.Has(logik.OutputPin(c2, 1)) {
		t.Error("PinSet.Has: unexpected result")
	}
}

func TestPinKind(t *testing.T) {
	for _, k := range []logik.PinKind{logik.GlobalInput, logik.GlobalOutput, logik.Input, logik.Output} {
		p, err := logik.ParsePinKind(k.String())
		if err != nil || p != k {
			t.Errorf("ParsePinKind(%q) = %v, %v", k, p, err)
		}
	}
	if _, err := logik.ParsePinKind("bidir"); err == nil {
		t.Error("expected error")
	}
	if s := logik.PinKind(7).String(); s != "pin-kind(7)" {
		t.Errorf("got %q", s)
	}
}

func TestNewConnection(t *testing.T) {
	c := &logik.Chip{Key: "c", Gate: "g"}
	orphan := &logik.Chip{Key: "o"}
	td := []struct {
		name     string
		from, to logik.Pin
		ok       bool
	}{
		{"global", logik.GlobalInputPin(0), logik.GlobalOutputPin(0), true},
		{"chip", logik.OutputPin(c, 0), logik.InputPin(c, 1), true},
		{"reverse", logik.GlobalOutputPin(0), logik.GlobalInputPin(0), false},
		{"in_to_in", logik.InputPin(c, 0), logik.InputPin(c, 1), false},
		{"out_to_out", logik.GlobalInputPin(0), logik.OutputPin(c, 0), false},
		{"no_chip", logik.GlobalInputPin(0), logik.Pin{Kind: logik.Input}, false},
		{"no_gate", logik.GlobalInputPin(0), logik.InputPin(orphan, 0), false},
		{"negative", logik.GlobalInputPin(-1), logik.GlobalOutputPin(0), false},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			cn, err := logik.NewConnection(d.from, d.to)
			if d.ok != (err == nil) {
				t.Fatalf("unexpected error status: %v", err)
			}
			if d.ok && cn.Key == "" {
				t.Error("connection has no key")
			}
		})
	}
}
