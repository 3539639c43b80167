// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"strconv"

	"github.com/db47h/logik"
	"github.com/pkg/errors"
)

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder(l *logik.Library) (*logik.Gate, error) {
	return gate(l, "HalfAdder", func() (*logik.Gate, error) {
		gs, err := builtins(l, logik.XOR, logik.AND)
		if err != nil {
			return nil, err
		}
		xor, and := gs[0], gs[1]
		return l.Chip("HalfAdder", "a, b", "s, c",
			xor.Part("a=a, b=b, out=s"),
			and.Part("a=a, b=b, out=c"),
		)
	})
}

// FullAdder returns a 3 bit adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder(l *logik.Library) (*logik.Gate, error) {
	return gate(l, "FullAdder", func() (*logik.Gate, error) {
		h, err := HalfAdder(l)
		if err != nil {
			return nil, err
		}
		or, err := l.Builtin(logik.OR)
		if err != nil {
			return nil, err
		}
		return l.Chip("FullAdder", "a, b, cin", "s, cout",
			h.Part("a=a, b=b, s=s0, c=c0"),
			h.Part("a=s0, b=cin, s=s, c=c1"),
			or.Part("a=c0, b=c1, out=cout"),
		)
	})
}

// AdderN returns a N-bits ripple carry adder. Bit 0 is the least significant
// bit.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//	Function: out = lsb(a + b)
//	          c = carry out
//
func AdderN(l *logik.Library, bits int) (*logik.Gate, error) {
	if bits < 1 {
		return nil, errors.Errorf("gatelib: invalid bus size %d", bits)
	}
	name := "Adder" + strconv.Itoa(bits)
	return gate(l, name, func() (*logik.Gate, error) {
		h, err := HalfAdder(l)
		if err != nil {
			return nil, err
		}
		fa, err := FullAdder(l)
		if err != nil {
			return nil, err
		}
		carry := func(i int) string {
			if i == bits-1 {
				return "c"
			}
			return "carry" + strconv.Itoa(i)
		}
		parts := logik.Parts{h.Part(conns(
			pA, busPin(pA, bits, 0),
			pB, busPin(pB, bits, 0),
			"s", busPin(pOut, bits, 0),
			"c", carry(0)))}
		for i := 1; i < bits; i++ {
			parts = append(parts, fa.Part(conns(
				pA, busPin(pA, bits, i),
				pB, busPin(pB, bits, i),
				"cin", carry(i-1),
				"s", busPin(pOut, bits, i),
				"cout", carry(i))))
		}
		return l.Chip(name, bus(pA, bits)+", "+bus(pB, bits), bus(pOut, bits)+", c", parts...)
	})
}
