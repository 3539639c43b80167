// Package hdl implements a lexer and a parser for the small description
// language used by logik to declare gate pins ("a, b, bus[4]") and to wire
// parts ("a=x, b=bus[0..3]").
//
package hdl

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Type is the type of a lexical item.
//
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
	Range
	Equal
)

var typeNames = [...]string{
	EOF:          "end of input",
	Raw:          "character",
	Ident:        "identifier",
	BracketOpen:  "'['",
	BracketClose: "']'",
	Comma:        "','",
	Int:          "integer",
	Range:        "'..'",
	Equal:        "'='",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown token " + strconv.Itoa(int(t))
	}
	return typeNames[t]
}

// Item is a lexical item. Value holds a string for identifiers and raw
// characters, and an int for integers.
//
type Item struct {
	Type  Type
	Pos   int
	Value interface{}
}

func (i Item) String() string {
	switch i.Type {
	case Ident:
		return "identifier " + strconv.Quote(i.Value.(string))
	case Int:
		return "integer " + strconv.Itoa(i.Value.(int))
	case Raw:
		return "character " + strconv.Quote(i.Value.(string))
	}
	return i.Type.String()
}

// stateFn is a lexer state.
//
type stateFn func(l *Lexer) stateFn

// Lexer splits an input string into Items.
//
type Lexer struct {
	input string
	start int // start of the current item
	pos   int // current read offset
	width int // width of the last rune read
	items []Item
	state stateFn
}

// NewLexer returns a new lexer for i/o specs and connection descriptions.
//
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, state: lexInit}
}

// Lex returns the next item in the input. Once the end of input is reached,
// Lex keeps returning EOF items.
//
func (l *Lexer) Lex() Item {
	for len(l.items) == 0 {
		l.state = l.state(l)
	}
	i := l.items[0]
	l.items = l.items[1:]
	return i
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return -1
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

func (l *Lexer) backup() { l.pos -= l.width }

func (l *Lexer) ignore() { l.start = l.pos }

func (l *Lexer) emit(t Type, v interface{}) {
	l.items = append(l.items, Item{Type: t, Pos: l.start, Value: v})
	l.start = l.pos
}

func lexInit(l *Lexer) stateFn {
	r := l.next()
	switch {
	case r < 0:
		return lexEOF
	case unicode.IsSpace(r):
		for unicode.IsSpace(r) {
			r = l.next()
		}
		if r >= 0 {
			l.backup()
		}
		l.ignore()
	case unicode.IsLetter(r) || r == '_':
		return lexIdent
	case '0' <= r && r <= '9':
		return lexNumber
	case r == '[':
		l.emit(BracketOpen, "[")
	case r == ']':
		l.emit(BracketClose, "]")
	case r == ',':
		l.emit(Comma, ",")
	case r == '=':
		l.emit(Equal, "=")
	case r == '.':
		if l.next() == '.' {
			l.emit(Range, "..")
			break
		}
		l.backup()
		fallthrough
	default:
		l.emit(Raw, string(r))
		return lexEOF
	}
	return lexInit
}

func lexNumber(l *Lexer) stateFn {
	r := l.next()
	for '0' <= r && r <= '9' {
		r = l.next()
	}
	if r >= 0 {
		l.backup()
	}
	n, err := strconv.Atoi(l.input[l.start:l.pos])
	if err != nil {
		l.emit(Raw, l.input[l.start:l.pos])
		return lexEOF
	}
	l.emit(Int, n)
	return lexInit
}

func lexIdent(l *Lexer) stateFn {
	r := l.next()
	for unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		r = l.next()
	}
	if r >= 0 {
		l.backup()
	}
	l.emit(Ident, l.input[l.start:l.pos])
	return lexInit
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *Lexer) stateFn {
	l.start = len(l.input)
	l.emit(EOF, "end of input")
	return lexEOF
}
