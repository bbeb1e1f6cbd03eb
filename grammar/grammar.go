package grammar

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/rosed"
)

// Grammar is an immutable set of context-free grammar rules. Rules are held
// in a canonical order sorted by their string representation, so two
// grammars built from the same rule set in any order print and compare
// identically.
type Grammar struct {
	rules []Rule
}

// NewGrammar creates a Grammar from the given rules. The rules are copied;
// later modification of the passed slice does not affect the Grammar.
func NewGrammar(rules []Rule) Grammar {
	g := Grammar{rules: make([]Rule, len(rules))}
	copy(g.rules, rules)

	// stable so rules that stringify identically (same shape, different
	// weight or alias) keep their relative order
	sort.SliceStable(g.rules, func(i, j int) bool {
		return g.rules[i].String() < g.rules[j].String()
	})

	return g
}

// Rules returns the grammar's rules in canonical order. The returned slice
// is a copy.
func (g Grammar) Rules() []Rule {
	rules := make([]Rule, len(g.rules))
	copy(rules, g.rules)
	return rules
}

// Len returns the number of rules in the grammar.
func (g Grammar) Len() int {
	return len(g.rules)
}

// Equal returns whether the Grammar is equal to another value. It will not be
// equal if the other value cannot be cast to Grammar or *Grammar. Grammars
// are equal if they contain the same set of rules under Rule.Equal; weight
// and alias differences are invisible here, exactly as they are to Rule
// equality.
func (g Grammar) Equal(o any) bool {
	other, ok := o.(Grammar)
	if !ok {
		otherPtr, ok := o.(*Grammar)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	return containsAll(g.rules, other.rules) && containsAll(other.rules, g.rules)
}

// containsAll returns whether every rule in want has an equal rule in have.
func containsAll(have []Rule, want []Rule) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h.Equal(w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (g Grammar) String() string {
	var sb strings.Builder

	sb.WriteRune('\n')
	for _, r := range g.rules {
		sb.WriteString(r.String())
		sb.WriteRune('\n')
	}

	return sb.String()
}

// TableString returns a bordered table listing every rule with its weight
// and alias, suitable for diagnostics output.
func (g Grammar) TableString() string {
	data := [][]string{
		{"Rule", "Weight", "Alias"},
	}

	for _, r := range g.rules {
		data = append(data, []string{r.String(), strconv.Itoa(r.Weight), r.Alias})
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
