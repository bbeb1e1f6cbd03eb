package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Terminal_Matches(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
		input   string
		expect  bool
	}{
		{
			name:    "literal match",
			pattern: "a",
			input:   "a",
			expect:  true,
		},
		{
			name:    "full match required, not prefix",
			pattern: "a+",
			input:   "aab",
			expect:  false,
		},
		{
			name:    "full match of repeated char",
			pattern: "a+",
			input:   "aaa",
			expect:  true,
		},
		{
			name:    "no partial match from middle",
			pattern: "b",
			input:   "abc",
			expect:  false,
		},
		{
			name:    "alternation covers whole string",
			pattern: "a|aa",
			input:   "aa",
			expect:  true,
		},
		{
			name:    "empty input does not match non-empty pattern",
			pattern: "a",
			input:   "",
			expect:  false,
		},
		{
			name:    "digit class",
			pattern: `\d+`,
			input:   "1234",
			expect:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			term := NewTerminal(tc.pattern)

			assert.Equal(tc.expect, term.Matches(tc.input))
		})
	}
}

func Test_CompileTerminal_badPattern(t *testing.T) {
	assert := assert.New(t)

	_, err := CompileTerminal("(")

	assert.Error(err)
}

func Test_Symbol_Equal(t *testing.T) {
	testCases := []struct {
		name   string
		left   Symbol
		right  any
		expect bool
	}{
		{
			name:   "equal terminals",
			left:   NewTerminal("a"),
			right:  NewTerminal("a"),
			expect: true,
		},
		{
			name:   "unequal terminals",
			left:   NewTerminal("a"),
			right:  NewTerminal("b"),
			expect: false,
		},
		{
			name:   "equal non-terminals",
			left:   NewNonTerminal("S"),
			right:  NewNonTerminal("S"),
			expect: true,
		},
		{
			name:   "terminal never equals non-terminal with same value",
			left:   NewTerminal("S"),
			right:  NewNonTerminal("S"),
			expect: false,
		},
		{
			name:   "non-terminal never equals terminal with same value",
			left:   NewNonTerminal("a"),
			right:  NewTerminal("a"),
			expect: false,
		},
		{
			name:   "not a symbol at all",
			left:   NewNonTerminal("S"),
			right:  "S",
			expect: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, tc.left.Equal(tc.right))
		})
	}
}
