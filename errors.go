package logik

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ConfigurationError is returned when a composite gate's wiring breaks the
// pin direction rules, references pins out of range or chips whose gate
// cannot be resolved.
//
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return e.Reason }

func configErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&ConfigurationError{Reason: fmt.Sprintf(format, args...)})
}

// LookupError is returned when a truth table has no row for an input vector.
// It signals a corrupted or partial table.
//
type LookupError struct {
	Bits string
}

func (e *LookupError) Error() string { return "no truth table row for input " + strconv.Quote(e.Bits) }

// UnknownOperatorError is returned when a primitive operator name does not
// match any operator of the primitive library.
//
type UnknownOperatorError struct {
	Name string
}

func (e *UnknownOperatorError) Error() string { return "unknown primitive operator " + strconv.Quote(e.Name) }

// DeletedGateAccessError is returned when reading the internal wiring of a
// deleted gate.
//
type DeletedGateAccessError struct {
	Gate string
}

func (e *DeletedGateAccessError) Error() string {
	return "cannot get connections of deleted gate " + strconv.Quote(e.Gate) + ": its internal wiring is not retained"
}

// IncompleteWiringWarning reports a chip left unevaluated because some of its
// inputs never received a value. Circular dependencies show up the same way.
//
type IncompleteWiringWarning struct {
	Chip    Key
	Gate    string
	Missing []int // unsatisfied input indices
}

func (w *IncompleteWiringWarning) String() string {
	var b strings.Builder
	b.WriteString("wiring incomplete for chip ")
	b.WriteString(string(w.Chip))
	b.WriteString(" (")
	b.WriteString(w.Gate)
	b.WriteString("): inputs ")
	for i, m := range w.Missing {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(m))
	}
	b.WriteString(" unresolved")
	return b.String()
}
