package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Rule_String(t *testing.T) {
	assert := assert.New(t)

	r := NewRule(NewNonTerminal("S"), []Symbol{NewNonTerminal("A"), NewTerminal("b+")}, 2, "r1")

	assert.Equal("S -> A b+", r.String())
}

func Test_Rule_Equal(t *testing.T) {
	skipStep := NewRule(NewNonTerminal("B"), []Symbol{NewTerminal("x")}, 0, "b")

	testCases := []struct {
		name   string
		left   Rule
		right  any
		expect bool
	}{
		{
			name:   "same shape",
			left:   NewRule(NewNonTerminal("S"), []Symbol{NewNonTerminal("A")}, 0, "r1"),
			right:  NewRule(NewNonTerminal("S"), []Symbol{NewNonTerminal("A")}, 0, "r1"),
			expect: true,
		},
		{
			name:   "weight and alias are ignored",
			left:   NewRule(NewNonTerminal("S"), []Symbol{NewNonTerminal("A")}, 0, "r1"),
			right:  NewRule(NewNonTerminal("S"), []Symbol{NewNonTerminal("A")}, 99, "other"),
			expect: true,
		},
		{
			name:   "different LHS",
			left:   NewRule(NewNonTerminal("S"), []Symbol{NewNonTerminal("A")}, 0, "r1"),
			right:  NewRule(NewNonTerminal("X"), []Symbol{NewNonTerminal("A")}, 0, "r1"),
			expect: false,
		},
		{
			name:   "different RHS length",
			left:   NewRule(NewNonTerminal("S"), []Symbol{NewNonTerminal("A")}, 0, "r1"),
			right:  NewRule(NewNonTerminal("S"), []Symbol{NewNonTerminal("A"), NewNonTerminal("A")}, 0, "r1"),
			expect: false,
		},
		{
			name:   "RHS symbol kind matters",
			left:   NewRule(NewNonTerminal("S"), []Symbol{NewNonTerminal("a")}, 0, "r1"),
			right:  NewRule(NewNonTerminal("S"), []Symbol{NewTerminal("a")}, 0, "r1"),
			expect: false,
		},
		{
			name:   "skip rule never equals plain rule of same shape",
			left:   Rule{LHS: NewNonTerminal("S"), RHS: []Symbol{NewTerminal("x")}, Skipped: []Rule{skipStep}},
			right:  NewRule(NewNonTerminal("S"), []Symbol{NewTerminal("x")}, 0, "r1"),
			expect: false,
		},
		{
			name:   "skip rules with equal chains",
			left:   Rule{LHS: NewNonTerminal("S"), RHS: []Symbol{NewTerminal("x")}, Skipped: []Rule{skipStep}},
			right:  Rule{LHS: NewNonTerminal("S"), RHS: []Symbol{NewTerminal("x")}, Skipped: []Rule{skipStep}},
			expect: true,
		},
		{
			name: "skip rules with different chains",
			left: Rule{LHS: NewNonTerminal("S"), RHS: []Symbol{NewTerminal("x")}, Skipped: []Rule{skipStep}},
			right: Rule{LHS: NewNonTerminal("S"), RHS: []Symbol{NewTerminal("x")}, Skipped: []Rule{
				NewRule(NewNonTerminal("C"), []Symbol{NewTerminal("x")}, 0, "c"),
			}},
			expect: false,
		},
		{
			name:   "not a rule at all",
			left:   NewRule(NewNonTerminal("S"), []Symbol{NewNonTerminal("A")}, 0, "r1"),
			right:  "S -> A",
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

func Test_NewRule_emptyRHSPanics(t *testing.T) {
	assert := assert.New(t)

	assert.Panics(func() {
		NewRule(NewNonTerminal("S"), nil, 0, "r1")
	})
}

func Test_Rule_Copy(t *testing.T) {
	assert := assert.New(t)

	r := Rule{
		LHS:    NewNonTerminal("S"),
		RHS:    []Symbol{NewNonTerminal("A"), NewNonTerminal("B")},
		Weight: 3,
		Alias:  "r1",
		Skipped: []Rule{
			NewRule(NewNonTerminal("A"), []Symbol{NewTerminal("x")}, 1, "a"),
		},
	}

	r2 := r.Copy()

	assert.True(r.Equal(r2))
	assert.Equal(r.Weight, r2.Weight)
	assert.Equal(r.Alias, r2.Alias)

	// mutating the copy must not touch the original
	r2.RHS[0] = NewNonTerminal("X")
	assert.Equal("A", r.RHS[0].Value())
}
