// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"strconv"

	"github.com/db47h/logik"
	"github.com/pkg/errors"
)

// Mux returns a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux(l *logik.Library) (*logik.Gate, error) {
	return gate(l, "MUX", func() (*logik.Gate, error) {
		gs, err := builtins(l, logik.NOT, logik.AND, logik.OR)
		if err != nil {
			return nil, err
		}
		not, and, or := gs[0], gs[1], gs[2]
		return l.Chip("MUX", "a, b, sel", "out",
			not.Part("in=sel, out=nsel"),
			and.Part("a=a, b=nsel, out=selA"),
			and.Part("a=b, b=sel, out=selB"),
			or.Part("a=selA, b=selB, out=out"),
		)
	})
}

// DMux returns a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux(l *logik.Library) (*logik.Gate, error) {
	return gate(l, "DMUX", func() (*logik.Gate, error) {
		gs, err := builtins(l, logik.NOT, logik.AND)
		if err != nil {
			return nil, err
		}
		not, and := gs[0], gs[1]
		return l.Chip("DMUX", "in, sel", "a, b",
			not.Part("in=sel, out=nsel"),
			and.Part("a=in, b=nsel, out=a"),
			and.Part("a=in, b=sel, out=b"),
		)
	})
}

// MuxN returns a N-bits multiplexer.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: for i := range out { if sel == 0 { out[i] = a[i] } else { out[i] = b[i] } }
//
func MuxN(l *logik.Library, bits int) (*logik.Gate, error) {
	if bits < 1 {
		return nil, errors.Errorf("gatelib: invalid bus size %d", bits)
	}
	name := "MUX" + strconv.Itoa(bits)
	return gate(l, name, func() (*logik.Gate, error) {
		mux, err := Mux(l)
		if err != nil {
			return nil, err
		}
		parts := make(logik.Parts, bits)
		for i := range parts {
			parts[i] = mux.Part(conns(
				pA, busPin(pA, bits, i),
				pB, busPin(pB, bits, i),
				pSel, pSel,
				pOut, busPin(pOut, bits, i)))
		}
		return l.Chip(name, bus(pA, bits)+", "+bus(pB, bits)+", sel", bus(pOut, bits), parts...)
	})
}

// DMuxN returns a N-bits demultiplexer.
//
//	Inputs: in[bits], sel
//	Outputs: a[bits], b[bits]
//	Function: for i := range in { if sel == 0 { a[i] = in[i]; b[i] = 0 } else { a[i] = 0; b[i] = in[i] } }
//
func DMuxN(l *logik.Library, bits int) (*logik.Gate, error) {
	if bits < 1 {
		return nil, errors.Errorf("gatelib: invalid bus size %d", bits)
	}
	name := "DMUX" + strconv.Itoa(bits)
	return gate(l, name, func() (*logik.Gate, error) {
		dmux, err := DMux(l)
		if err != nil {
			return nil, err
		}
		parts := make(logik.Parts, bits)
		for i := range parts {
			parts[i] = dmux.Part(conns(
				pIn, busPin(pIn, bits, i),
				pSel, pSel,
				pA, busPin(pA, bits, i),
				pB, busPin(pB, bits, i)))
		}
		return l.Chip(name, bus(pIn, bits)+", sel", bus(pA, bits)+", "+bus(pB, bits), parts...)
	})
}

// wayNames returns the pin names of a n-way multiplexer: a, b, c, ...
func wayNames(ways int) []string {
	names := make([]string, ways)
	for i := range names {
		names[i] = string(rune('a' + i))
	}
	return names
}

// selBits returns log2(ways) if ways is a power of two in [2, 16].
func selBits(ways int) (int, error) {
	for k := 1; k <= 4; k++ {
		if ways == 1<<uint(k) {
			return k, nil
		}
	}
	return 0, errors.Errorf("gatelib: invalid way count %d, must be a power of two in [2, 16]", ways)
}

// MuxMWayN returns a M-way N-bits multiplexer. ways must be a power of two
// between 2 and 16. The inputs are named a, b, c, ... and sel[0] is the
// least significant bit of the selector.
//
//	Inputs: a[bits], b[bits], ..., sel[log2(ways)]
//	Outputs: out[bits]
//	Function: out = input number sel
//
func MuxMWayN(l *logik.Library, ways, bits int) (*logik.Gate, error) {
	k, err := selBits(ways)
	if err != nil {
		return nil, err
	}
	name := "MUX" + strconv.Itoa(ways) + "Way" + strconv.Itoa(bits)
	return gate(l, name, func() (*logik.Gate, error) {
		mux, err := MuxN(l, bits)
		if err != nil {
			return nil, err
		}
		// wire buses feeding the current level
		level := wayNames(ways)
		ins := ""
		for _, n := range level {
			ins += bus(n, bits) + ", "
		}
		ins += pin(pSel, k)
		var parts logik.Parts
		for s := 0; len(level) > 1; s++ {
			next := make([]string, len(level)/2)
			for j := range next {
				next[j] = "m" + strconv.Itoa(s) + "_" + strconv.Itoa(j)
				if len(next) == 1 {
					next[j] = pOut
				}
				var pw []string
				for i := 0; i < bits; i++ {
					pw = append(pw,
						busPin(pA, bits, i), busPin(level[2*j], bits, i),
						busPin(pB, bits, i), busPin(level[2*j+1], bits, i),
						busPin(pOut, bits, i), busPin(next[j], bits, i))
				}
				pw = append(pw, pSel, pin(pSel, s))
				parts = append(parts, mux.Part(conns(pw...)))
			}
			level = next
		}
		return l.Chip(name, ins, bus(pOut, bits), parts...)
	})
}

// DMuxNWay returns a N-way demultiplexer. ways must be a power of two
// between 2 and 16. The outputs are named a, b, c, ... and sel[0] is the
// least significant bit of the selector.
//
//	Inputs: in, sel[log2(ways)]
//	Outputs: a, b, ...
//	Function: output number sel = in, all other outputs = 0
//
func DMuxNWay(l *logik.Library, ways int) (*logik.Gate, error) {
	k, err := selBits(ways)
	if err != nil {
		return nil, err
	}
	name := "DMUX" + strconv.Itoa(ways) + "Way"
	return gate(l, name, func() (*logik.Gate, error) {
		dmux, err := DMux(l)
		if err != nil {
			return nil, err
		}
		outs := wayNames(ways)
		var parts logik.Parts
		var split func(in string, outs []string, s int)
		split = func(in string, outs []string, s int) {
			h := len(outs) / 2
			a, b := outs[0], outs[h]
			if h > 1 {
				d := "d" + strconv.Itoa(s) + "_"
				a, b = d+outs[0], d+outs[h]
			}
			parts = append(parts, dmux.Part(conns(pIn, in, pSel, pin(pSel, s), pA, a, pB, b)))
			if h > 1 {
				split(a, outs[:h], s-1)
				split(b, outs[h:], s-1)
			}
		}
		split(pIn, outs, k-1)
		ons := ""
		for i, n := range outs {
			if i > 0 {
				ons += ", "
			}
			ons += n
		}
		return l.Chip(name, "in, "+pin(pSel, k), ons, parts...)
	})
}
