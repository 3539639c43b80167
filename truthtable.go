package logik

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// MaxTableInputs is the largest input count for which a truth table can be
// built.
//
const MaxTableInputs = 20

// A TruthTable maps every input combination of a gate to its outputs. Keys
// are bit strings, one '0' or '1' per input, input 0 first. A TruthTable is
// immutable once built.
//
type TruthTable struct {
	inputs  int
	outputs int
	rows    map[string][]bool
}

// Row returns the input vector for row i of a table with n inputs. Input 0
// maps to the most significant bit of i.
//
func Row(i, n int) []bool {
	v := make([]bool, n)
	for bit := 0; bit < n; bit++ {
		v[n-bit-1] = i&(1<<uint(bit)) != 0
	}
	return v
}

// Bits returns the table key for input vector v.
//
func Bits(v []bool) string {
	b := make([]byte, len(v))
	for i, x := range v {
		if x {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// ParseBits parses a bit string like "0110" into a vector.
//
func ParseBits(s string) ([]bool, error) {
	v := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			v[i] = true
		default:
			return nil, errors.Errorf("invalid bit %q at position %d in %q", s[i], i, s)
		}
	}
	return v, nil
}

// BuildTruthTable enumerates all 2^inputs input combinations and records
// the outputs of fn.
//
func BuildTruthTable(inputs int, fn func(in []bool) ([]bool, error)) (*TruthTable, error) {
	if inputs < 0 || inputs > MaxTableInputs {
		return nil, configErrorf("cannot build a truth table for %d inputs (max %d)", inputs, MaxTableInputs)
	}
	n := 1 << uint(inputs)
	t := &TruthTable{inputs: inputs, outputs: -1, rows: make(map[string][]bool, n)}
	for i := 0; i < n; i++ {
		in := Row(i, inputs)
		out, err := fn(in)
		if err != nil {
			return nil, errors.Wrapf(err, "truth table row %s", Bits(in))
		}
		if t.outputs < 0 {
			t.outputs = len(out)
		} else if len(out) != t.outputs {
			return nil, configErrorf("truth table row %s has %d outputs, expected %d", Bits(in), len(out), t.outputs)
		}
		t.rows[Bits(in)] = append([]bool(nil), out...)
	}
	return t, nil
}

// NewTruthTable returns a truth table from a set of rows, as produced by
// Rows. All 2^inputs rows must be present with the same output count.
//
func NewTruthTable(inputs int, rows map[string][]bool) (*TruthTable, error) {
	if inputs < 0 || inputs > MaxTableInputs {
		return nil, configErrorf("invalid truth table input count %d", inputs)
	}
	t := &TruthTable{inputs: inputs, outputs: -1, rows: make(map[string][]bool, len(rows))}
	for k, out := range rows {
		if len(k) != inputs {
			return nil, configErrorf("truth table row %q: expected %d bits", k, inputs)
		}
		if _, err := ParseBits(k); err != nil {
			return nil, errors.WithStack(&ConfigurationError{Reason: err.Error()})
		}
		if t.outputs < 0 {
			t.outputs = len(out)
		} else if len(out) != t.outputs {
			return nil, configErrorf("truth table row %q has %d outputs, expected %d", k, len(out), t.outputs)
		}
		t.rows[k] = append([]bool(nil), out...)
	}
	if len(t.rows) != 1<<uint(inputs) {
		return nil, configErrorf("truth table has %d rows, expected %d", len(t.rows), 1<<uint(inputs))
	}
	return t, nil
}

// Inputs returns the input count of t.
//
func (t *TruthTable) Inputs() int { return t.inputs }

// Outputs returns the output count of t.
//
func (t *TruthTable) Outputs() int {
	if t.outputs < 0 {
		return 0
	}
	return t.outputs
}

// Lookup returns the outputs for input vector in. The returned slice can be
// freely modified by the caller.
//
func (t *TruthTable) Lookup(in []bool) ([]bool, error) {
	k := Bits(in)
	out, ok := t.rows[k]
	if !ok {
		return nil, errors.WithStack(&LookupError{Bits: k})
	}
	return append([]bool(nil), out...), nil
}

// Rows returns a copy of the rows of t.
//
func (t *TruthTable) Rows() map[string][]bool {
	r := make(map[string][]bool, len(t.rows))
	for k, v := range t.rows {
		r[k] = append([]bool(nil), v...)
	}
	return r
}

// Each calls fn for every row of t in ascending order, until fn returns
// false. fn must not retain or modify in and out.
//
func (t *TruthTable) Each(fn func(in, out []bool) bool) {
	keys := make([]string, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		in, _ := ParseBits(k)
		if !fn(in, t.rows[k]) {
			return
		}
	}
}

// Equal reports whether t and u describe the same boolean function.
//
func (t *TruthTable) Equal(u *TruthTable) bool {
	if t == nil || u == nil {
		return t == u
	}
	if t.inputs != u.inputs || len(t.rows) != len(u.rows) {
		return false
	}
	for k, a := range t.rows {
		b, ok := u.rows[k]
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

func (t *TruthTable) String() string {
	var b strings.Builder
	t.Each(func(in, out []bool) bool {
		b.WriteString(Bits(in))
		b.WriteString(" | ")
		b.WriteString(Bits(out))
		b.WriteByte('\n')
		return true
	})
	return b.String()
}
