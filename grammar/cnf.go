package grammar

import (
	"fmt"
	"strings"
)

// Conversion to Chomsky Normal Form applies three rewriting stages in order:
//
//   - TERM: eliminates non-solitary terminals from all rules
//   - BIN: eliminates rules with more than 2 symbols on their right-hand side
//   - UNIT: eliminates non-terminal unit rules
//
// Grammars with epsilon rules, with the start symbol on any right-hand side,
// or with a cycle purely among unit rules (A -> B, B -> A) are not supported;
// the last of these makes the UNIT stage non-terminating.

// Non-terminals introduced by TERM and BIN carry these name prefixes. Tree
// reversal recognizes introduced rules by them, so they must never be used
// for caller-defined non-terminals.
const (
	termPrefix  = "__T_"
	splitPrefix = "__SP_"
)

// IsTermIntroduced returns whether nt was introduced by the TERM stage.
func IsTermIntroduced(nt NonTerminal) bool {
	return strings.HasPrefix(nt.Value(), termPrefix)
}

// IsSplitIntroduced returns whether nt was introduced by the BIN stage.
func IsSplitIntroduced(nt NonTerminal) bool {
	return strings.HasPrefix(nt.Value(), splitPrefix)
}

// NTPair is an ordered pair of non-terminal names, as found on the
// right-hand side of a CNF binary rule.
type NTPair struct {
	Left  string
	Right string
}

// TerminalGroup is the set of CNF rules that produce one particular terminal.
type TerminalGroup struct {
	Terminal Terminal
	Rules    []Rule
}

// CnfWrapper is a Grammar known to be in Chomsky Normal Form, along with
// lookup indexes a CYK table builder needs. Construct one with ToCnf, or with
// WrapCnf for a grammar already in CNF.
type CnfWrapper struct {
	// Grammar is the CNF grammar the indexes were built from.
	Grammar Grammar

	// TerminalRules groups the grammar's terminal rules by terminal, in
	// canonical rule order. Order matters: the parser's tie-breaking between
	// equal-weight derivations follows it.
	TerminalRules []TerminalGroup

	// PairRules indexes binary rules by the pair of non-terminal names on
	// their right-hand side.
	PairRules map[NTPair][]Rule
}

// WrapCnf validates that g is in Chomsky Normal Form and builds the lookup
// indexes over it. It panics if any rule is not CNF-shaped; a caller must
// only pass grammars produced by ToCnf or otherwise known to be CNF, so a
// violation here is a defect in the converter, not bad user input.
func WrapCnf(g Grammar) CnfWrapper {
	w := CnfWrapper{
		Grammar:   g,
		PairRules: map[NTPair][]Rule{},
	}

	groupIdx := map[string]int{}
	for _, r := range g.rules {
		switch len(r.RHS) {
		case 1:
			t, ok := r.RHS[0].(Terminal)
			if !ok {
				panic(fmt.Sprintf("grammar is not CNF; unit rule remains: %s", r.String()))
			}
			gi, seen := groupIdx[t.Value()]
			if !seen {
				gi = len(w.TerminalRules)
				groupIdx[t.Value()] = gi
				w.TerminalRules = append(w.TerminalRules, TerminalGroup{Terminal: t})
			}
			w.TerminalRules[gi].Rules = append(w.TerminalRules[gi].Rules, r)
		case 2:
			left, lok := r.RHS[0].(NonTerminal)
			right, rok := r.RHS[1].(NonTerminal)
			if !lok || !rok {
				panic(fmt.Sprintf("grammar is not CNF; terminal in binary rule: %s", r.String()))
			}
			key := NTPair{Left: left.Value(), Right: right.Value()}
			w.PairRules[key] = append(w.PairRules[key], r)
		default:
			panic(fmt.Sprintf("grammar is not CNF; RHS has %d symbols: %s", len(r.RHS), r.String()))
		}
	}

	return w
}

// ToCnf converts a general context-free grammar to an equivalent grammar in
// Chomsky Normal Form and wraps it with lookup indexes.
func ToCnf(g Grammar) CnfWrapper {
	return WrapCnf(Unit(Bin(Term(g))))
}

// Term applies the TERM stage: every terminal occurring in a right-hand side
// of length greater than 1 is replaced by a fresh non-terminal, and one unit
// rule producing the terminal is added per distinct terminal so replaced.
// Rules whose right-hand side is a single symbol are left untouched; a
// solitary terminal is already legal in CNF.
func Term(g Grammar) Grammar {
	// introduced unit rules, created on first use of each terminal and added
	// to the grammar exactly once
	introduced := map[string]Rule{}

	var newRules []Rule
	for _, r := range g.rules {
		if len(r.RHS) <= 1 || !hasTerminal(r.RHS) {
			newRules = append(newRules, r)
			continue
		}

		newRHS := make([]Symbol, len(r.RHS))
		for i, sym := range r.RHS {
			t, isTerm := sym.(Terminal)
			if !isTerm {
				newRHS[i] = sym
				continue
			}

			tRule, seen := introduced[t.Value()]
			if !seen {
				tRule = NewRule(NewNonTerminal(termPrefix+t.Value()), []Symbol{t}, 0, TermAlias)
				introduced[t.Value()] = tRule
				newRules = append(newRules, tRule)
			}
			newRHS[i] = tRule.LHS
		}

		newRules = append(newRules, Rule{LHS: r.LHS, RHS: newRHS, Weight: r.Weight, Alias: r.Alias})
	}

	return NewGrammar(newRules)
}

func hasTerminal(rhs []Symbol) bool {
	for _, sym := range rhs {
		if _, ok := sym.(Terminal); ok {
			return true
		}
	}
	return false
}

// Bin applies the BIN stage: every rule with more than 2 symbols on its
// right-hand side is split into a chain of binary rules.
func Bin(g Grammar) Grammar {
	var newRules []Rule
	for _, r := range g.rules {
		if len(r.RHS) > 2 {
			newRules = append(newRules, splitRule(r)...)
		} else {
			newRules = append(newRules, r)
		}
	}
	return NewGrammar(newRules)
}

// splitRule splits a rule whose RHS has more than 2 symbols into a chain of
// binary rules linked by fresh non-terminals. The first fragment keeps the
// original rule's weight and alias; the intermediate fragments carry the
// SplitAlias and zero weight, and their names encode the original rule so
// the chain is both unique per rule and recognizable during reversal.
func splitRule(r Rule) []Rule {
	parts := make([]string, len(r.RHS))
	for i, sym := range r.RHS {
		parts[i] = sym.Value()
	}
	base := splitPrefix + r.LHS.Value() + "__" + strings.Join(parts, "_")
	link := func(i int) NonTerminal {
		return NewNonTerminal(fmt.Sprintf("%s_%d", base, i))
	}

	newRules := []Rule{
		{LHS: r.LHS, RHS: []Symbol{r.RHS[0], link(1)}, Weight: r.Weight, Alias: r.Alias},
	}
	for i := 1; i < len(r.RHS)-2; i++ {
		newRules = append(newRules, Rule{
			LHS:   link(i),
			RHS:   []Symbol{r.RHS[i], link(i + 1)},
			Alias: SplitAlias,
		})
	}
	newRules = append(newRules, Rule{
		LHS:   link(len(r.RHS) - 2),
		RHS:   []Symbol{r.RHS[len(r.RHS)-2], r.RHS[len(r.RHS)-1]},
		Alias: SplitAlias,
	})

	return newRules
}

// Unit applies the UNIT stage: non-terminal unit rules (A -> B) are removed
// one at a time, each replaced by rules going directly to B's expansions with
// the collapsed step recorded on the replacement's skip chain. Termination
// requires that the grammar have no cycle purely among unit rules.
func Unit(g Grammar) Grammar {
	for {
		unit, ok := findUnitRule(g)
		if !ok {
			return g
		}
		g = removeUnitRule(g, unit)
	}
}

// findUnitRule returns a non-terminal unit rule from g, or ok=false if there
// is none.
func findUnitRule(g Grammar) (Rule, bool) {
	for _, r := range g.rules {
		if len(r.RHS) == 1 {
			if _, ok := r.RHS[0].(NonTerminal); ok {
				return r, true
			}
		}
	}
	return Rule{}, false
}

// removeUnitRule removes unit from g without changing the language g
// produces, substituting one rule per expansion of unit's target.
func removeUnitRule(g Grammar, unit Rule) Grammar {
	target := unit.RHS[0].(NonTerminal)

	var newRules []Rule
	for _, r := range g.rules {
		if !r.Equal(unit) {
			newRules = append(newRules, r)
		}
	}
	for _, r := range g.rules {
		if r.LHS.Equal(target) {
			newRules = append(newRules, buildSkipRule(unit, r))
		}
	}

	return NewGrammar(newRules)
}

// buildSkipRule builds the replacement for collapsing unit rule A -> B into
// target rule B -> γ. The replacement is A -> γ with weight summed and the
// full chain of skipped steps threaded through from both sides.
func buildSkipRule(unit Rule, target Rule) Rule {
	var skipped []Rule
	skipped = append(skipped, unit.Skipped...)
	skipped = append(skipped, target)
	skipped = append(skipped, target.Skipped...)

	return Rule{
		LHS:     unit.LHS,
		RHS:     target.RHS,
		Weight:  unit.Weight + target.Weight,
		Alias:   unit.Alias,
		Skipped: skipped,
	}
}
