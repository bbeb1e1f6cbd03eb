// Package grammar provides the symbol, rule, and grammar types for weighted
// context-free grammars, along with conversion of arbitrary grammars to
// Chomsky Normal Form for consumption by a CYK parser.
package grammar

import (
	"fmt"
	"regexp"
)

// Symbol is a single symbol in a grammar rule. It is either a Terminal or a
// NonTerminal; no other type may implement it.
type Symbol interface {
	// Value returns the string content of the symbol; for a Terminal this is
	// its regular expression pattern, for a NonTerminal its name.
	Value() string

	// Equal returns whether the Symbol is equal to another value. Symbols are
	// compared structurally; a Terminal is never equal to a NonTerminal, even
	// when both have the same string content.
	Equal(o any) bool

	// String is the string representation.
	String() string
}

// Terminal is a grammar symbol that matches input tokens against a regular
// expression. The pattern must match the entire token text for the Terminal
// to match; matching a prefix is not sufficient.
type Terminal struct {
	pattern string
	re      *regexp.Regexp
}

// NewTerminal creates a Terminal from the given pattern. It panics if the
// pattern is not a valid regular expression; use CompileTerminal to get an
// error instead.
func NewTerminal(pattern string) Terminal {
	t, err := CompileTerminal(pattern)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// CompileTerminal creates a Terminal from the given pattern, or returns a
// non-nil error if the pattern is not a valid regular expression.
func CompileTerminal(pattern string) (Terminal, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return Terminal{}, fmt.Errorf("compile terminal pattern %q: %w", pattern, err)
	}
	return Terminal{pattern: pattern, re: re}, nil
}

// Matches returns whether the entire string s is matched by the Terminal's
// pattern.
func (t Terminal) Matches(s string) bool {
	return t.re.MatchString(s)
}

// Value returns the Terminal's regular expression pattern.
func (t Terminal) Value() string {
	return t.pattern
}

func (t Terminal) String() string {
	return t.pattern
}

// Equal returns whether the Terminal is equal to another value. It will not
// be equal if the other value cannot be cast to Terminal or *Terminal.
func (t Terminal) Equal(o any) bool {
	other, ok := o.(Terminal)
	if !ok {
		otherPtr, ok := o.(*Terminal)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	return t.pattern == other.pattern
}

// NonTerminal is a named grammar symbol. It carries no matching behavior of
// its own; it only ever matches via the rules that produce it.
type NonTerminal struct {
	name string
}

// NewNonTerminal creates a NonTerminal with the given name.
func NewNonTerminal(name string) NonTerminal {
	return NonTerminal{name: name}
}

// Value returns the NonTerminal's name.
func (nt NonTerminal) Value() string {
	return nt.name
}

func (nt NonTerminal) String() string {
	return nt.name
}

// Equal returns whether the NonTerminal is equal to another value. It will
// not be equal if the other value cannot be cast to NonTerminal or
// *NonTerminal.
func (nt NonTerminal) Equal(o any) bool {
	other, ok := o.(NonTerminal)
	if !ok {
		otherPtr, ok := o.(*NonTerminal)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	return nt.name == other.name
}
