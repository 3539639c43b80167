package logik_test

import (
	"reflect"
	"testing"

	"github.com/db47h/logik"
	"github.com/pkg/errors"
)

func mustConnect(t *testing.T, b *logik.Builder, from, to logik.Pin) {
	t.Helper()
	if _, err := b.Connect(from, to); err != nil {
		trace(t, err)
		t.Fatal(err)
	}
}

func mustPlace(t *testing.T, b *logik.Builder, g *logik.Gate) *logik.Chip {
	t.Helper()
	c, err := b.Place(g, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func lookup(t *testing.T, l *logik.Library, name string) *logik.Gate {
	t.Helper()
	g, ok := l.Lookup(name)
	if !ok {
		t.Fatalf("gate %s not found", name)
	}
	return g
}

func evaluate(t *testing.T, l *logik.Library, g *logik.Gate, in ...bool) []bool {
	t.Helper()
	out, err := l.Evaluate(g, in)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	return out
}

func Test_gate_custom(t *testing.T) {
	l := logik.NewLibrary()
	nand, err := l.Builtin(logik.NAND)
	if err != nil {
		t.Fatal(err)
	}
	and := l.MustChip("AND", "a, b", "out",
		nand.Part("a=a, b=b, out=nand"),
		nand.Part("a=nand, b=nand, out=out"),
	)
	or := l.MustChip("OR", "a, b", "out",
		nand.Part("a=a, b=a, out=notA"),
		nand.Part("a=b, b=b, out=notB"),
		nand.Part("a=notA, b=notB, out=out"),
	)
	nor := l.MustChip("NOR", "a, b", "out",
		or.Part("a=a, b=b, out=orAB"),
		nand.Part("a=orAB, b=orAB, out=out"),
	)
	xor := l.MustChip("XOR", "a, b", "out",
		nand.Part("a=a, b=b, out=nandAB"),
		nand.Part("a=a, b=nandAB, out=w0"),
		nand.Part("a=b, b=nandAB, out=w1"),
		nand.Part("a=w0, b=w1, out=out"),
	)
	xnor := l.MustChip("XNOR", "a, b", "out",
		or.Part("a=a, b=b, out=or"),
		nand.Part("a=a, b=b, out=nand"),
		nand.Part("a=or, b=nand, out=out"),
	)
	not := l.MustChip("NOT", "a", "out",
		nand.Part("a=a, b=a, out=out"),
	)
	mux := l.MustChip("MUX", "a, b, sel", "out",
		not.Part("a=sel, out=notSel"),
		and.Part("a=a, b=notSel, out=w0"),
		and.Part("a=b, b=sel, out=w1"),
		or.Part("a=w0, b=w1, out=out"),
	)
	dmux := l.MustChip("DMUX", "in, sel", "a, b",
		not.Part("a=sel, out=notSel"),
		and.Part("a=in, b=notSel, out=a"),
		and.Part("a=in, b=sel, out=b"),
	)
	td := []struct {
		gate   *logik.Gate
		result [][]bool
	}{
		{and, [][]bool{{false, false, false, true}}},
		{or, [][]bool{{false, true, true, true}}},
		{nor, [][]bool{{true, false, false, false}}},
		{xor, [][]bool{{false, true, true, false}}},
		{xnor, [][]bool{{true, false, false, true}}},
		{not, [][]bool{{true, false}}},
		{mux, [][]bool{{false, false, false, true, true, false, true, true}}},
		{dmux, [][]bool{{false, false, true, false}, {false, false, false, true}}},
	}
	for _, d := range td {
		t.Run(d.gate.Name, func(t *testing.T) {
			testGate(t, l, d.gate, d.result)
		})
	}
}

func TestEvaluate_crossed(t *testing.T) {
	l := logik.NewLibrary()
	b := logik.NewBuilder(2, 2)
	mustConnect(t, b, logik.GlobalInputPin(0), logik.GlobalOutputPin(1))
	mustConnect(t, b, logik.GlobalInputPin(1), logik.GlobalOutputPin(0))
	g, err := l.Compose("SWAP", testColor, b)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	if out := evaluate(t, l, g, true, false); !reflect.DeepEqual(out, []bool{false, true}) {
		t.Errorf("SWAP(1, 0) = %v", out)
	}
	if out := evaluate(t, l, g, false, true); !reflect.DeepEqual(out, []bool{true, false}) {
		t.Errorf("SWAP(0, 1) = %v", out)
	}
}

func TestEvaluate_nested(t *testing.T) {
	l := logik.DefaultLibrary()
	not := lookup(t, l, "NOT")
	b := logik.NewBuilder(1, 1)
	c := mustPlace(t, b, not)
	mustConnect(t, b, logik.GlobalInputPin(0), logik.InputPin(c, 0))
	mustConnect(t, b, logik.OutputPin(c, 0), logik.GlobalOutputPin(0))
	g, err := l.Compose("MYNOT", testColor, b)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	for _, in := range []bool{false, true} {
		exp := logik.NOT.Fn([]bool{in})
		if out := evaluate(t, l, g, in); !reflect.DeepEqual(out, exp) {
			t.Errorf("MYNOT(%v) = %v, expected %v", in, out, exp)
		}
	}

	// one level up, with two instances of the composite.
	b = logik.NewBuilder(1, 1)
	c0, c1 := mustPlace(t, b, g), mustPlace(t, b, g)
	mustConnect(t, b, logik.GlobalInputPin(0), logik.InputPin(c0, 0))
	mustConnect(t, b, logik.OutputPin(c0, 0), logik.InputPin(c1, 0))
	mustConnect(t, b, logik.OutputPin(c1, 0), logik.GlobalOutputPin(0))
	buf, err := l.Compose("BUF", testColor, b)
	if err != nil {
		t.Fatal(err)
	}
	testGate(t, l, buf, [][]bool{{false, true}})
}

func TestEvaluate_incomplete(t *testing.T) {
	l := logik.DefaultLibrary()
	and := lookup(t, l, "AND")
	b := logik.NewBuilder(2, 1)
	c := mustPlace(t, b, and)
	mustConnect(t, b, logik.GlobalInputPin(0), logik.InputPin(c, 0))
	mustConnect(t, b, logik.OutputPin(c, 0), logik.GlobalOutputPin(0))

	var warnings []*logik.IncompleteWiringWarning
	l.OnWarning = func(w *logik.IncompleteWiringWarning) { warnings = append(warnings, w) }
	g, err := l.Compose("HALF_WIRED", testColor, b)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	testGate(t, l, g, [][]bool{{false, false, false, false}})

	// one warning per truth table row while building the table.
	if len(warnings) != 4 {
		t.Fatalf("got %d warnings, expected 4", len(warnings))
	}
	w := warnings[0]
	if w.Chip != c.Key || w.Gate != "AND" || !reflect.DeepEqual(w.Missing, []int{1}) {
		t.Errorf("unexpected warning: %s", w)
	}

	p, err := l.Propagate(g.Operator().(*logik.Composite), []bool{true, true})
	if err != nil {
		t.Fatal(err)
	}
	if p.Evaluated[c.Key] {
		t.Error("incomplete chip evaluated")
	}
	if on, resolved := p.State(logik.InputPin(c, 0)); !on || !resolved {
		t.Errorf("chip input 0: on=%v resolved=%v", on, resolved)
	}
	if _, resolved := p.State(logik.OutputPin(c, 0)); resolved {
		t.Error("output of unevaluated chip resolved")
	}
	if len(p.Warnings) != 1 {
		t.Errorf("got %d warnings, expected 1", len(p.Warnings))
	}
}

func TestEvaluate_cycle(t *testing.T) {
	l := logik.DefaultLibrary()
	and := lookup(t, l, "AND")
	b := logik.NewBuilder(1, 1)
	c0, c1 := mustPlace(t, b, and), mustPlace(t, b, and)
	mustConnect(t, b, logik.GlobalInputPin(0), logik.InputPin(c0, 0))
	mustConnect(t, b, logik.GlobalInputPin(0), logik.InputPin(c1, 0))
	mustConnect(t, b, logik.OutputPin(c0, 0), logik.InputPin(c1, 1))
	mustConnect(t, b, logik.OutputPin(c1, 0), logik.InputPin(c0, 1))
	mustConnect(t, b, logik.OutputPin(c1, 0), logik.GlobalOutputPin(0))
	n := 0
	l.OnWarning = func(*logik.IncompleteWiringWarning) { n++ }
	g, err := l.Compose("LOOP", testColor, b)
	if err != nil {
		t.Fatal(err)
	}
	testGate(t, l, g, [][]bool{{false, false}})
	if n != 4 {
		t.Errorf("got %d warnings, expected 4", n)
	}
}

func TestEvaluate_constant(t *testing.T) {
	l := logik.NewLibrary()
	one, err := l.New("ONE", &logik.Primitive{
		Name:   "ONE",
		Inputs: 0,
		Fn:     func([]bool) []bool { return []bool{true} },
	}, testColor)
	if err != nil {
		t.Fatal(err)
	}
	b := logik.NewBuilder(1, 2)
	c := mustPlace(t, b, one)
	mustConnect(t, b, logik.OutputPin(c, 0), logik.GlobalOutputPin(0))
	mustConnect(t, b, logik.GlobalInputPin(0), logik.GlobalOutputPin(1))
	g, err := l.Compose("ONE_AND_WIRE", testColor, b)
	if err != nil {
		t.Fatal(err)
	}
	testGate(t, l, g, [][]bool{{true, true}, {false, true}})
}

func TestEvaluate_tableMatchesOperator(t *testing.T) {
	l := logik.DefaultLibrary()
	and, not := lookup(t, l, "AND"), lookup(t, l, "NOT")
	nand := l.MustChip("NAND", "a, b", "out",
		and.Part("a=a, b=b, out=ab"),
		not.Part("in=ab, out=out"),
	)
	xor := l.MustChip("XOR", "a, b", "out",
		nand.Part("a=a, b=b, out=nab"),
		nand.Part("a=a, b=nab, out=w0"),
		nand.Part("a=b, b=nab, out=w1"),
		nand.Part("a=w0, b=w1, out=out"),
	)
	for _, g := range l.Gates() {
		tt := g.TruthTable()
		if tt == nil {
			t.Fatalf("%s: no truth table", g.Name)
		}
		if tt.Inputs() != g.Inputs() || tt.Outputs() != g.Outputs() {
			t.Errorf("%s: table arity %d/%d", g.Name, tt.Inputs(), tt.Outputs())
		}
		for i := 0; i < 1<<uint(g.Inputs()); i++ {
			in := logik.Row(i, g.Inputs())
			cached, err := tt.Lookup(in)
			if err != nil {
				t.Fatal(err)
			}
			var direct []bool
			switch op := g.Operator().(type) {
			case *logik.Primitive:
				direct = op.Fn(in)
			case *logik.Composite:
				p, err := l.Propagate(op, in)
				if err != nil {
					t.Fatal(err)
				}
				direct = p.Outputs(g.Outputs())
			default:
				t.Fatalf("%s: unexpected operator %T", g.Name, op)
			}
			if !reflect.DeepEqual(cached, direct) {
				t.Errorf("%s(%s): table %v, operator %v", g.Name, logik.Bits(in), cached, direct)
			}
		}
	}
	testGate(t, l, xor, [][]bool{{false, true, true, false}})
}

func TestEvaluate_errors(t *testing.T) {
	l := logik.DefaultLibrary()
	and := lookup(t, l, "AND")
	_, err := l.Evaluate(and, []bool{true})
	var ce *logik.ConfigurationError
	if !errors.As(err, &ce) {
		t.Errorf("expected ConfigurationError, got %v", err)
	}

	// a truth table with a row missing cannot be restored.
	_, err = logik.NewTruthTable(1, map[string][]bool{"0": {true}})
	if !errors.As(err, &ce) {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
}

func TestLibrary_Delete(t *testing.T) {
	l := logik.DefaultLibrary()
	and, not := lookup(t, l, "AND"), lookup(t, l, "NOT")
	if err := l.Delete(and.Key()); err == nil {
		t.Error("deleted builtin AND")
	}
	nand := l.MustChip("NAND", "a, b", "out",
		and.Part("a=a, b=b, out=ab"),
		not.Part("in=ab, out=out"),
	)
	or := l.MustChip("OR", "a, b", "out",
		not.Part("in=a, out=na"),
		not.Part("in=b, out=nb"),
		nand.Part("a=na, b=nb, out=out"),
	)
	if err := l.Delete(nand.Key()); err != nil {
		t.Fatal(err)
	}
	if !nand.Deleted() {
		t.Fatal("NAND not marked deleted")
	}
	if _, ok := l.Lookup("NAND"); ok {
		t.Error("Lookup returned a deleted gate")
	}
	if _, ok := l.Gate(nand.Key()); !ok {
		t.Error("deleted gate no longer resolvable by key")
	}
	testGate(t, l, nand, [][]bool{{true, true, true, false}})
	testGate(t, l, or, [][]bool{{false, true, true, true}})

	_, err := nand.Connections()
	var de *logik.DeletedGateAccessError
	if !errors.As(err, &de) || de.Gate != "NAND" {
		t.Errorf("expected DeletedGateAccessError, got %v", err)
	}
	if _, ok := nand.Operator().(*logik.Tombstone); !ok {
		t.Errorf("operator of deleted gate is %T", nand.Operator())
	}
	if in, out := nand.Operator().Arity(); in != 2 || out != 1 {
		t.Errorf("tombstone arity %d/%d", in, out)
	}

	// chips referencing the tombstone still evaluate through its table.
	p, err := l.Propagate(or.Operator().(*logik.Composite), []bool{false, false})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	if out := p.Outputs(1); out[0] {
		t.Errorf("OR(0, 0) = %v through deleted NAND", out)
	}
	op, err := logik.NewComposite(2, 1, mustConnections(t, or))
	if err != nil {
		t.Fatal(err)
	}
	or2, err := l.New("OR2", op, testColor)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	testGate(t, l, or2, [][]bool{{false, true, true, true}})

	// but new placements are refused.
	if _, err := l.Chip("OR3", "a, b", "out",
		not.Part("in=a, out=na"),
		not.Part("in=b, out=nb"),
		nand.Part("a=na, b=nb, out=out"),
	); err == nil {
		t.Error("placed a deleted gate")
	}
	if _, err := logik.NewBuilder(2, 1).Place(nand, 0, 0); err == nil {
		t.Error("placed a deleted gate")
	}
}

func mustConnections(t *testing.T, g *logik.Gate) []logik.Connection {
	t.Helper()
	conns, err := g.Connections()
	if err != nil {
		t.Fatal(err)
	}
	return conns
}

func TestGate_identity(t *testing.T) {
	l1 := logik.DefaultLibrary()
	and := lookup(t, l1, "AND")

	// a stale copy of AND, as loaded from an older save.
	l2 := logik.NewLibrary()
	stale, err := l2.Add(logik.GateSpec{Key: and.Key(), Name: "OLD AND", Color: "#000000", Operator: logik.OR})
	if err != nil {
		t.Fatal(err)
	}
	if !logik.SameGate(and, stale) {
		t.Error("gates with the same key are not the same gate")
	}

	twin, err := l1.New("AND", logik.AND, and.Color)
	if err != nil {
		t.Fatal(err)
	}
	if logik.SameGate(and, twin) {
		t.Error("gates with different keys are the same gate")
	}
	if twin.Key() == and.Key() {
		t.Error("key reused")
	}
	if _, err = l1.Add(logik.GateSpec{Key: and.Key(), Name: "AND", Operator: logik.AND}); err == nil {
		t.Error("duplicate key accepted")
	}
}
