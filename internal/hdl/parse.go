package hdl

import (
	"fmt"

	"github.com/pkg/errors"
)

// RefKind tells how a Ref addresses a pin.
//
type RefKind int

// Pin reference kinds
const (
	RefName  RefKind = iota // p
	RefIndex                // p[i]
	RefRange                // p[i..j]
)

// A Ref references a single pin or a slice of a bus. For RefIndex, Start
// and End are both the index.
//
type Ref struct {
	Kind  RefKind
	Name  string
	Pos   int
	Start int
	End   int
}

// An Assignment wires a part pin to a chip wire: pin=wire.
//
type Assignment struct {
	Pin  Ref
	Wire Ref
}

type parser struct {
	input string
	lx    *Lexer
	tok   Item
}

func newParser(input string) *parser {
	p := &parser{input: input, lx: NewLexer(input)}
	p.advance()
	return p
}

func (p *parser) advance() { p.tok = p.lx.Lex() }

func (p *parser) errorf(format string, args ...interface{}) error {
	return parseError(p.input, p.tok.Pos, fmt.Sprintf(format, args...))
}

// List parses a comma separated list of pin references like
// "a, b, bus[4]". An empty input yields no references.
//
func List(input string) ([]Ref, error) {
	p := newParser(input)
	var refs []Ref
	err := p.list(func() error {
		r, err := p.ref()
		if err == nil {
			refs = append(refs, r)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// Assignments parses a comma separated list of assignments like
// "a=x, b[0..3]=y[4..7]".
//
func Assignments(input string) ([]Assignment, error) {
	p := newParser(input)
	var as []Assignment
	err := p.list(func() error {
		pin, err := p.ref()
		if err != nil {
			return err
		}
		if p.tok.Type != Equal {
			return p.errorf("expected '=' after pin %s, got %s", pin.Name, p.tok)
		}
		p.advance()
		wire, err := p.ref()
		if err != nil {
			return err
		}
		as = append(as, Assignment{Pin: pin, Wire: wire})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return as, nil
}

// list calls elem for each comma separated element of the input.
//
func (p *parser) list(elem func() error) error {
	if p.tok.Type == EOF {
		return nil
	}
	for {
		if err := elem(); err != nil {
			return err
		}
		switch p.tok.Type {
		case EOF:
			return nil
		case Comma:
			p.advance()
		default:
			return p.errorf("unexpected %s", p.tok)
		}
	}
}

func (p *parser) ref() (Ref, error) {
	if p.tok.Type != Ident {
		return Ref{}, p.errorf("expected pin name")
	}
	r := Ref{Kind: RefName, Name: p.tok.Value.(string), Pos: p.tok.Pos}
	// after ident, expect ',', '[', '=' or EOF
	p.advance()
	if p.tok.Type != BracketOpen {
		return r, nil
	}
	p.advance()
	var err error
	if r.Start, err = p.integer("'['"); err != nil {
		return Ref{}, err
	}
	r.Kind, r.End = RefIndex, r.Start
	if p.tok.Type == Range {
		p.advance()
		if r.End, err = p.integer("'..'"); err != nil {
			return Ref{}, err
		}
		r.Kind = RefRange
	}
	if p.tok.Type != BracketClose {
		return Ref{}, p.errorf("closing ']' expected after index or range")
	}
	p.advance()
	return r, nil
}

func (p *parser) integer(after string) (int, error) {
	if p.tok.Type != Int {
		return 0, p.errorf("integer value expected after %s", after)
	}
	v := p.tok.Value.(int)
	p.advance()
	return v, nil
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
