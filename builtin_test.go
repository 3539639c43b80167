package logik_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/logik"
	"github.com/pkg/errors"
)

const testColor = "#6ca9a9"

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

// testGate checks the outputs of gate for every input combination.
// result[o][i] is the expected value of output o for row i.
//
func testGate(t *testing.T, l *logik.Library, gate *logik.Gate, result [][]bool) {
	t.Helper()
	tot := 1 << uint(gate.Inputs())
	for i := 0; i < tot; i++ {
		in := logik.Row(i, gate.Inputs())
		out, err := l.Evaluate(gate, in)
		if err != nil {
			trace(t, err)
			t.Fatal(err)
		}
		for o := range out {
			if exp := result[o][i]; exp != out[o] {
				t.Errorf("%s %v = %v, got %v", gate.Name, in, exp, out[o])
			}
		}
	}
}

func Test_gate_builtin(t *testing.T) {
	td := []struct {
		op     *logik.Primitive
		result [][]bool // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{logik.NOT, [][]bool{{true, false}}},
		{logik.AND, [][]bool{{false, false, false, true}}},
		{logik.NAND, [][]bool{{true, true, true, false}}},
		{logik.OR, [][]bool{{false, true, true, true}}},
		{logik.NOR, [][]bool{{true, false, false, false}}},
		{logik.XOR, [][]bool{{false, true, true, false}}},
		{logik.XNOR, [][]bool{{true, false, false, true}}},
	}
	l := logik.NewLibrary()
	for _, d := range td {
		t.Run(d.op.Name, func(t *testing.T) {
			g, err := l.Builtin(d.op)
			if err != nil {
				trace(t, err)
				t.Fatal(err)
			}
			if g.CanBeDeleted {
				t.Errorf("builtin %s is deletable", g.Name)
			}
			testGate(t, l, g, d.result)
		})
	}
}

func TestPrimitive_properties(t *testing.T) {
	eval := func(p *logik.Primitive, a, b bool) bool { return p.Fn([]bool{a, b})[0] }
	props := map[string]func(a, b bool) bool{
		"NAND": func(a, b bool) bool { return eval(logik.NAND, a, b) == !(a && b) },
		"OR":   func(a, b bool) bool { return eval(logik.OR, a, b) == (a || b) },
		"XOR":  func(a, b bool) bool { return eval(logik.XOR, a, b) == (a != b) },
		"NOR":  func(a, b bool) bool { return eval(logik.NOR, a, b) == !(a || b) },
		"XNOR": func(a, b bool) bool { return eval(logik.XNOR, a, b) == (a == b) },
	}
	for name, f := range props {
		t.Run(name, func(t *testing.T) {
			if err := quick.Check(f, nil); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestPrimitive_Arity(t *testing.T) {
	for _, p := range logik.Primitives() {
		in, out := p.Arity()
		exp := 2
		if p == logik.NOT {
			exp = 1
		}
		if in != exp || out != 1 {
			t.Errorf("%s: arity %d/%d, expected %d/1", p.Name, in, out, exp)
		}
	}
}

func TestLookupPrimitive(t *testing.T) {
	for _, p := range logik.Primitives() {
		q, err := logik.LookupPrimitive(p.Name)
		if err != nil {
			t.Fatal(err)
		}
		if q != p {
			t.Errorf("LookupPrimitive(%q) returned %s", p.Name, q.Name)
		}
		if n, ok := logik.PrimitiveName(p); !ok || n != p.Name {
			t.Errorf("PrimitiveName(%s) = %q, %v", p.Name, n, ok)
		}
	}
	_, err := logik.LookupPrimitive("MAYBE")
	var e *logik.UnknownOperatorError
	if !errors.As(err, &e) || e.Name != "MAYBE" {
		t.Fatalf("expected UnknownOperatorError, got %v", err)
	}
	custom := &logik.Primitive{Name: "NOT", Inputs: 1, Fn: func(in []bool) []bool { return in }}
	if _, ok := logik.PrimitiveName(custom); ok {
		t.Error("custom primitive found in the primitive library")
	}
}
