package equiv_test

import (
	"strconv"
	"testing"

	"github.com/db47h/logik"
	"github.com/db47h/logik/equiv"
	"github.com/db47h/logik/gatelib"
)

func mustEvaluate(t *testing.T, l *logik.Library, g *logik.Gate, in []bool) []bool {
	t.Helper()
	out, err := l.Evaluate(g, in)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func check(t *testing.T, l *logik.Library, a, b *logik.Gate, eq bool) {
	t.Helper()
	r, err := equiv.Check(l, a, b)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if r.Equivalent != eq {
		t.Fatalf("Check(%s, %s) = %v, expected %v", a.Name, b.Name, r.Equivalent, eq)
	}
	if eq {
		if r.Counterexample != nil {
			t.Errorf("counterexample for equivalent gates: %v", r.Counterexample)
		}
		return
	}
	oa, ob := mustEvaluate(t, l, a, r.Counterexample), mustEvaluate(t, l, b, r.Counterexample)
	same := true
	for i := range oa {
		same = same && oa[i] == ob[i]
	}
	if same {
		t.Errorf("counterexample %v does not distinguish %s from %s", r.Counterexample, a.Name, b.Name)
	}
}

func TestCheck_primitives(t *testing.T) {
	l := logik.NewLibrary()
	nand, _ := l.Builtin(logik.NAND)
	and, _ := l.Builtin(logik.AND)
	or, _ := l.Builtin(logik.OR)
	xor, _ := l.Builtin(logik.XOR)

	myOr := l.MustChip("MYOR", "a, b", "out",
		nand.Part("a=a, b=a, out=na"),
		nand.Part("a=b, b=b, out=nb"),
		nand.Part("a=na, b=nb, out=out"),
	)
	myXor := l.MustChip("MYXOR", "a, b", "out",
		nand.Part("a=a, b=b, out=nab"),
		nand.Part("a=a, b=nab, out=w0"),
		nand.Part("a=b, b=nab, out=w1"),
		nand.Part("a=w0, b=w1, out=out"),
	)
	check(t, l, or, myOr, true)
	check(t, l, xor, myXor, true)
	check(t, l, and, or, false)
	check(t, l, myOr, myXor, false)

	if eq, err := equiv.Tables(or, myOr); err != nil || !eq {
		t.Errorf("Tables(OR, MYOR) = %v, %v", eq, err)
	}
	if eq, err := equiv.Tables(and, myOr); err != nil || eq {
		t.Errorf("Tables(AND, MYOR) = %v, %v", eq, err)
	}
}

// Adders with 32 inputs have no truth table and are compared structurally.
func TestCheck_adders(t *testing.T) {
	l := logik.NewLibrary()
	a16, err := gatelib.AdderN(l, 16)
	if err != nil {
		t.Fatal(err)
	}
	fa, _ := gatelib.FullAdder(l)
	ha, _ := gatelib.HalfAdder(l)
	parts := logik.Parts{ha.Part("a=a[0], b=b[0], s=out[0], c=k0")}
	for i := 1; i < 16; i++ {
		cout := "k" + strconv.Itoa(i)
		if i == 15 {
			cout = "c"
		}
		// swap a and b: addition is commutative
		parts = append(parts, fa.Part("a=b["+strconv.Itoa(i)+"], b=a["+strconv.Itoa(i)+"], cin=k"+strconv.Itoa(i-1)+", s=out["+strconv.Itoa(i)+"], cout="+cout))
	}
	mine := l.MustChip("MyAdder16", "a[16], b[16]", "out[16], c", parts...)
	if mine.TruthTable() != nil || a16.TruthTable() != nil {
		t.Fatal("unexpected truth table")
	}
	check(t, l, a16, mine, true)
	if _, err := equiv.Tables(a16, mine); err == nil {
		t.Error("expected error for gates without truth table")
	}

	// swap sum and carry of bit 7
	broken := append(logik.Parts(nil), parts...)
	broken[7] = fa.Part("a=a[7], b=b[7], cin=k6, s=k7, cout=out[7]")
	bad := l.MustChip("BadAdder16", "a[16], b[16]", "out[16], c", broken...)
	check(t, l, a16, bad, false)
}

func TestCheck_deleted(t *testing.T) {
	l := logik.DefaultLibrary()
	and, _ := l.Lookup("AND")
	not, _ := l.Lookup("NOT")
	nand := l.MustChip("NAND", "a, b", "out",
		and.Part("a=a, b=b, out=ab"),
		not.Part("in=ab, out=out"),
	)
	inv := l.MustChip("INV", "in", "out",
		nand.Part("a=in, b=in, out=out"),
	)
	if err := l.Delete(nand.Key()); err != nil {
		t.Fatal(err)
	}
	check(t, l, inv, not, true)
	check(t, l, nand, and, false)
}

func TestCheck_partialWiring(t *testing.T) {
	l := logik.DefaultLibrary()
	and, _ := l.Lookup("AND")
	not, _ := l.Lookup("NOT")
	// AND is missing its b input and never evaluates: out reads false
	zero := l.MustChip("ZERO", "a", "out",
		and.Part("a=a, out=out"),
	)
	zero2, err := l.Chip("ZERO2", "a", "out")
	if err != nil {
		t.Fatal(err)
	}
	check(t, l, zero, zero2, true)
	check(t, l, zero, not, false)
}

func TestCheck_arity(t *testing.T) {
	l := logik.DefaultLibrary()
	and, _ := l.Lookup("AND")
	not, _ := l.Lookup("NOT")
	if _, err := equiv.Check(l, and, not); err == nil {
		t.Error("expected arity error")
	}
}
