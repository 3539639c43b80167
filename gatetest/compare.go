// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gatetest provides utility functions for testing gates.
//
package gatetest

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/db47h/logik"
)

// TB is the subset of testing.TB used by this package.
//
type TB interface {
	Helper()
	Fatalf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Logf(format string, args ...interface{})
}

// MaxExhaustive is the largest input count for which comparisons go through
// every input combination. Gates with more inputs are checked on all zeroes,
// all ones and 1<<MaxExhaustive random input vectors.
//
const MaxExhaustive = 12

func errString(names []string, in []bool, oname string, ex, got bool) string {
	var b strings.Builder
	for i, n := range names {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n)
		b.WriteRune('=')
		if in[i] {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	}
	return fmt.Sprintf("\nExpected %s => %s=%v\nGot %v", b.String(), oname, ex, got)
}

// vectors calls fn for every input vector to check for a gate with n inputs,
// until fn returns false.
//
func vectors(n int, fn func(in []bool) bool) {
	if n <= MaxExhaustive {
		for i := 0; i < 1<<uint(n); i++ {
			if !fn(logik.Row(i, n)) {
				return
			}
		}
		return
	}
	in := make([]bool, n)
	if !fn(in) {
		return
	}
	for i := range in {
		in[i] = true
	}
	if !fn(in) {
		return
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for iter := 0; iter < 1<<MaxExhaustive; iter++ {
		for i := range in {
			in[i] = rnd.Int63()&(1<<62) != 0
		}
		if !fn(in) {
			return
		}
	}
}

// CompareFunc checks the outputs of gate g against the reference function
// fn. fn must return one value per gate output.
//
func CompareFunc(t TB, l *logik.Library, g *logik.Gate, fn func(in []bool) []bool) {
	t.Helper()
	names, onames := g.InputNames(), g.OutputNames()
	start := time.Now()
	count := 0
	vectors(g.Inputs(), func(in []bool) bool {
		count++
		got, err := l.Evaluate(g, in)
		if err != nil {
			t.Fatalf("%s: %v", g.Name, err)
			return false
		}
		ex := fn(append([]bool(nil), in...))
		if len(ex) != len(got) {
			t.Fatalf("%s: reference function returned %d outputs, expected %d", g.Name, len(ex), len(got))
			return false
		}
		for o := range got {
			if got[o] != ex[o] {
				t.Fatalf("%s: %s", g.Name, errString(names, in, onames[o], ex[o], got[o]))
				return false
			}
		}
		return true
	})
	t.Logf("%s: %d input vectors in %v", g.Name, count, time.Since(start))
}

// CompareGates takes two gates and compares their outputs given the same
// inputs. Both gates must have the same input and output pin names.
//
func CompareGates(t TB, l *logik.Library, g1, g2 *logik.Gate) {
	t.Helper()
	if g1.Inputs() != g2.Inputs() {
		t.Fatalf("%s has %d inputs, %s has %d", g1.Name, g1.Inputs(), g2.Name, g2.Inputs())
		return
	}
	if g1.Outputs() != g2.Outputs() {
		t.Fatalf("%s has %d outputs, %s has %d", g1.Name, g1.Outputs(), g2.Name, g2.Outputs())
		return
	}
	in1, in2 := g1.InputNames(), g2.InputNames()
	for i := range in1 {
		if in1[i] != in2[i] {
			t.Fatalf("%s input %d = %q != %s input %d = %q", g1.Name, i, in1[i], g2.Name, i, in2[i])
			return
		}
	}
	out1, out2 := g1.OutputNames(), g2.OutputNames()
	for i := range out1 {
		if out1[i] != out2[i] {
			t.Fatalf("%s output %d = %q != %s output %d = %q", g1.Name, i, out1[i], g2.Name, i, out2[i])
			return
		}
	}
	CompareFunc(t, l, g2, func(in []bool) []bool {
		out, err := l.Evaluate(g1, in)
		if err != nil {
			t.Fatalf("%s: %v", g1.Name, err)
			return make([]bool, g1.Outputs())
		}
		return out
	})
}

// AssertTable checks the outputs of gate g for every input combination.
// result[o][i] is the expected value of output o for row i, as returned by
// logik.Row.
//
func AssertTable(t TB, l *logik.Library, g *logik.Gate, result [][]bool) {
	t.Helper()
	if len(result) != g.Outputs() {
		t.Fatalf("%s: %d expected output columns, gate has %d outputs", g.Name, len(result), g.Outputs())
		return
	}
	tot := 1 << uint(g.Inputs())
	for i := 0; i < tot; i++ {
		in := logik.Row(i, g.Inputs())
		out, err := l.Evaluate(g, in)
		if err != nil {
			t.Fatalf("%s: %v", g.Name, err)
			return
		}
		for o := range out {
			if exp := result[o][i]; exp != out[o] {
				t.Errorf("%s %v = %v, got %v", g.Name, in, exp, out[o])
			}
		}
	}
}
