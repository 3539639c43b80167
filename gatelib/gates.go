// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gatelib provides a library of reusable composite gates built from
// the logik primitives.
//
// Every function registers its gate in the given library, together with any
// gate it is built from. If the library already has a live gate by the same
// name, that gate is returned instead.
//
package gatelib

import (
	"strconv"
	"strings"

	"github.com/db47h/logik"
	"github.com/pkg/errors"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
)

// make a bus pin name
func pin(name string, i int) string { return name + "[" + strconv.Itoa(i) + "]" }

// make a bus declaration
func bus(name string, bits int) string {
	if bits == 1 {
		return name
	}
	return pin(name, bits)
}

// busPin returns the name of pin i of a bus declared with bus.
func busPin(name string, bits, i int) string {
	if bits == 1 {
		return name
	}
	return pin(name, i)
}

// conns builds a connection string from pin=wire pairs.
func conns(pw ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pw); i += 2 {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pw[i])
		b.WriteByte('=')
		b.WriteString(pw[i+1])
	}
	return b.String()
}

func gate(l *logik.Library, name string, build func() (*logik.Gate, error)) (*logik.Gate, error) {
	if g, ok := l.Lookup(name); ok {
		return g, nil
	}
	g, err := build()
	if err != nil {
		return nil, errors.Wrap(err, "gatelib")
	}
	return g, nil
}

func builtins(l *logik.Library, ps ...*logik.Primitive) ([]*logik.Gate, error) {
	gs := make([]*logik.Gate, len(ps))
	for i, p := range ps {
		g, err := l.Builtin(p)
		if err != nil {
			return nil, err
		}
		gs[i] = g
	}
	return gs, nil
}

// NotN returns a N-bits NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = !in[i] }
//
func NotN(l *logik.Library, bits int) (*logik.Gate, error) {
	if bits < 1 {
		return nil, errors.Errorf("gatelib: invalid bus size %d", bits)
	}
	return gate(l, "NOT"+strconv.Itoa(bits), func() (*logik.Gate, error) {
		not, err := l.Builtin(logik.NOT)
		if err != nil {
			return nil, err
		}
		parts := make(logik.Parts, bits)
		for i := range parts {
			parts[i] = not.Part(conns(pIn, busPin(pIn, bits, i), pOut, busPin(pOut, bits, i)))
		}
		return l.Chip("NOT"+strconv.Itoa(bits), bus(pIn, bits), bus(pOut, bits), parts...)
	})
}

// GateN returns a N-bits logic gate from a two input primitive p.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = p(a[i], b[i]) }
//
func GateN(l *logik.Library, p *logik.Primitive, bits int) (*logik.Gate, error) {
	if bits < 1 {
		return nil, errors.Errorf("gatelib: invalid bus size %d", bits)
	}
	if ins, outs := p.Arity(); ins != 2 || outs != 1 {
		return nil, errors.Errorf("gatelib: %s is not a two input gate", p.Name)
	}
	name := p.Name + strconv.Itoa(bits)
	return gate(l, name, func() (*logik.Gate, error) {
		g, err := l.Builtin(p)
		if err != nil {
			return nil, err
		}
		parts := make(logik.Parts, bits)
		for i := range parts {
			parts[i] = g.Part(conns(
				pA, busPin(pA, bits, i),
				pB, busPin(pB, bits, i),
				pOut, busPin(pOut, bits, i)))
		}
		return l.Chip(name, bus(pA, bits)+", "+bus(pB, bits), bus(pOut, bits), parts...)
	})
}

// nWay chains ways-1 gates g over a bus.
func nWay(l *logik.Library, name string, p *logik.Primitive, ways int) (*logik.Gate, error) {
	if ways < 2 {
		return nil, errors.Errorf("gatelib: %s needs at least 2 inputs, got %d", name, ways)
	}
	return gate(l, name, func() (*logik.Gate, error) {
		g, err := l.Builtin(p)
		if err != nil {
			return nil, err
		}
		parts := make(logik.Parts, 0, ways-1)
		prev := pin(pIn, 0)
		for i := 1; i < ways; i++ {
			w := "w" + strconv.Itoa(i)
			if i == ways-1 {
				w = pOut
			}
			parts = append(parts, g.Part(conns(pA, prev, pB, pin(pIn, i), pOut, w)))
			prev = w
		}
		return l.Chip(name, pin(pIn, ways), pOut, parts...)
	})
}

// OrNWay returns a N-Way OR gate.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] || in[1] || in[2] || ... || in[n-1]
//
func OrNWay(l *logik.Library, ways int) (*logik.Gate, error) {
	return nWay(l, "OR"+strconv.Itoa(ways)+"Way", logik.OR, ways)
}

// AndNWay returns a N-Way AND gate.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] && in[1] && in[2] && ... && in[n-1]
//
func AndNWay(l *logik.Library, ways int) (*logik.Gate, error) {
	return nWay(l, "AND"+strconv.Itoa(ways)+"Way", logik.AND, ways)
}
