// Package equiv checks whether two gates compute the same boolean function.
//
// Gates are lowered to an and-inverter graph over shared inputs. The graph
// of a miter, true whenever any pair of outputs differ, is then handed to a
// SAT solver. Composite gates are lowered through their wiring, which makes
// Check usable on gates too large to have a truth table.
//
package equiv

import (
	"github.com/db47h/logik"
	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// Result is the result of an equivalence check.
//
type Result struct {
	Equivalent bool
	// Counterexample is an input vector for which the gates outputs differ.
	// It is nil if the gates are equivalent.
	Counterexample []bool
}

// Check reports whether gates a and b of library l compute the same
// function. Both gates must have the same arity.
//
func Check(l *logik.Library, a, b *logik.Gate) (Result, error) {
	if a.Inputs() != b.Inputs() || a.Outputs() != b.Outputs() {
		return Result{}, errors.Errorf("cannot compare %s (%d/%d) and %s (%d/%d): arity mismatch",
			a.Name, a.Inputs(), a.Outputs(), b.Name, b.Inputs(), b.Outputs())
	}
	lw := &lowerer{l: l, c: logic.NewC()}
	ins := make([]z.Lit, a.Inputs())
	for i := range ins {
		ins[i] = lw.c.Lit()
	}
	outA, err := lw.gate(a, ins)
	if err != nil {
		return Result{}, err
	}
	outB, err := lw.gate(b, ins)
	if err != nil {
		return Result{}, err
	}
	diffs := make([]z.Lit, len(outA))
	for i := range diffs {
		diffs[i] = lw.c.Xor(outA[i], outB[i])
	}
	m := lw.c.Ors(diffs...)
	switch m {
	case lw.c.F:
		return Result{Equivalent: true}, nil
	case lw.c.T:
		return Result{Counterexample: make([]bool, len(ins))}, nil
	}

	s := gini.New()
	lw.c.ToCnf(s)
	s.Assume(m)
	switch s.Solve() {
	case -1:
		return Result{Equivalent: true}, nil
	case 1:
		cex := make([]bool, len(ins))
		for i, in := range ins {
			cex[i] = s.Value(in)
		}
		return Result{Counterexample: cex}, nil
	}
	return Result{}, errors.New("solver returned an unknown result")
}

// Tables reports whether gates a and b have the same truth table. It fails
// if either gate has none.
//
func Tables(a, b *logik.Gate) (bool, error) {
	ta, tb := a.TruthTable(), b.TruthTable()
	switch {
	case ta == nil:
		return false, errors.Errorf("gate %s has no truth table", a.Name)
	case tb == nil:
		return false, errors.Errorf("gate %s has no truth table", b.Name)
	}
	return ta.Equal(tb), nil
}
