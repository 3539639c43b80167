package logik

import (
	"strconv"

	"github.com/db47h/logik/internal/hdl"
	"github.com/pkg/errors"
)

func busPinName(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// busNames returns pin names for an n pins bus. A single pin bus is named
// after the bus itself.
//
func busNames(name string, n int) []string {
	if n == 1 {
		return []string{name}
	}
	r := make([]string, n)
	for i := range r {
		r[i] = busPinName(name, i)
	}
	return r
}

// ParseIO parses the pin specification string and returns individual pin
// names in a slice, also expanding bus declarations to individual pin names.
// For example:
//
//	ParseIO("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
func ParseIO(names string) ([]string, error) {
	refs, err := hdl.List(names)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, r := range refs {
		switch r.Kind {
		case hdl.RefName:
			out = append(out, r.Name)
		case hdl.RefIndex:
			if r.Start <= 0 {
				return nil, errors.Errorf("in %q at pos %d: invalid bus size %d", names, r.Pos+1, r.Start)
			}
			for n := 0; n < r.Start; n++ {
				out = append(out, busPinName(r.Name, n))
			}
		default:
			return nil, errors.Errorf("in %q at pos %d: unexpected bus range in pin specification", names, r.Pos+1)
		}
	}
	return out, checkUnique(out)
}

// IO is like ParseIO but panics on error. It is intended for literal pin
// specifications.
//
func IO(names string) []string {
	out, err := ParseIO(names)
	if err != nil {
		panic(err)
	}
	return out
}

func checkUnique(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return errors.Errorf("duplicate pin name %q", n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// pinNames returns the pin names for a gate being added to a library.
//
func pinNames(spec GateSpec) (in, out []string, err error) {
	ins, outs := spec.Operator.Arity()
	in, out = spec.InputNames, spec.OutputNames
	if p, ok := spec.Operator.(*Primitive); ok && in == nil && out == nil {
		in, out = p.pinNames()
	}
	if in == nil {
		in = busNames(pinIn, ins)
	}
	if out == nil {
		out = busNames(pinOut, outs)
	}
	if len(in) != ins || len(out) != outs {
		return nil, nil, errors.Errorf("%d/%d pin names for arity %d/%d", len(in), len(out), ins, outs)
	}
	all := make([]string, 0, ins+outs)
	all = append(append(all, in...), out...)
	if err := checkUnique(all); err != nil {
		return nil, nil, err
	}
	return append([]string(nil), in...), append([]string(nil), out...), nil
}

// an assignment wires a part pin to a named wire.
type assignment struct {
	pin  string
	wire string
}

// expand returns the pin names referenced by r. Ranges may run downwards.
//
func expand(r hdl.Ref) []string {
	if r.Kind == hdl.RefName {
		return []string{r.Name}
	}
	step := 1
	if r.End < r.Start {
		step = -1
	}
	var names []string
	for n := r.Start; ; n += step {
		names = append(names, busPinName(r.Name, n))
		if n == r.End {
			return names
		}
	}
}

// parseConnections parses a connection string like "a=x, b[0..1]=y[2..3]".
// It returns the part pin and wire name pairs, with bus ranges expanded.
//
func parseConnections(conns string) ([]assignment, error) {
	as, err := hdl.Assignments(conns)
	if err != nil {
		return nil, err
	}
	var r []assignment
	for _, a := range as {
		ks, vs := expand(a.Pin), expand(a.Wire)
		switch {
		case len(ks) == len(vs):
			for n := range ks {
				r = append(r, assignment{ks[n], vs[n]})
			}
		case len(ks) == 1:
			// one pin fans out to several wires
			for _, v := range vs {
				r = append(r, assignment{ks[0], v})
			}
		case len(vs) == 1:
			for _, k := range ks {
				r = append(r, assignment{k, vs[0]})
			}
		default:
			return nil, errors.Errorf("in %q: pin count mismatch in pin mapping %d:%d", conns, len(ks), len(vs))
		}
	}
	return r, nil
}
