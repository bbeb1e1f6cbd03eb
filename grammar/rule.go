package grammar

import (
	"fmt"
	"strings"
)

// Aliases assigned to rules introduced by the CNF conversion stages. They
// never survive reversal, so they cannot collide with caller aliases in any
// final parse tree.
const (
	TermAlias  = "Term"
	SplitAlias = "Split"
)

// Rule is a single production of a context-free grammar. The left-hand side
// is always a non-terminal; the right-hand side is an ordered sequence of one
// or more symbols.
//
// A Rule with a non-nil Skipped chain is a unit-skip rule: one produced
// during unit-rule elimination that stands in for the ordered chain of rules
// it collapsed through. The chain is what allows a parse tree over the
// converted grammar to be unrolled back into original-grammar derivation
// steps.
type Rule struct {
	// LHS is the non-terminal this rule produces.
	LHS NonTerminal

	// RHS is the ordered sequence of symbols the rule expands to. It is never
	// empty; epsilon productions are not supported.
	RHS []Symbol

	// Weight is the rule's cost. The parser returns the derivation with the
	// lowest total weight.
	Weight int

	// Alias identifies the original caller-supplied rule this rule descends
	// from, across any CNF rewriting.
	Alias string

	// Skipped is the ordered chain of rules this rule collapsed through
	// during unit-rule elimination, or nil for any other rule.
	Skipped []Rule
}

// NewRule creates a Rule. It panics if rhs is empty; rules without a
// right-hand side are never valid in this grammar model.
func NewRule(lhs NonTerminal, rhs []Symbol, weight int, alias string) Rule {
	if len(rhs) < 1 {
		panic(fmt.Sprintf("rule %s has empty RHS", lhs.Value()))
	}
	return Rule{LHS: lhs, RHS: rhs, Weight: weight, Alias: alias}
}

// IsUnitSkip returns whether the rule records a collapsed unit-rule chain.
func (r Rule) IsUnitSkip() bool {
	return r.Skipped != nil
}

// Copy returns a deep-copied duplicate of this rule.
func (r Rule) Copy() Rule {
	r2 := Rule{
		LHS:    r.LHS,
		RHS:    make([]Symbol, len(r.RHS)),
		Weight: r.Weight,
		Alias:  r.Alias,
	}
	copy(r2.RHS, r.RHS)

	if r.Skipped != nil {
		r2.Skipped = make([]Rule, len(r.Skipped))
		for i := range r.Skipped {
			r2.Skipped[i] = r.Skipped[i].Copy()
		}
	}

	return r2
}

func (r Rule) String() string {
	var sb strings.Builder

	sb.WriteString(r.LHS.Value())
	sb.WriteString(" -> ")
	for i := range r.RHS {
		sb.WriteString(r.RHS[i].Value())
		if i+1 < len(r.RHS) {
			sb.WriteRune(' ')
		}
	}

	return sb.String()
}

// Equal returns whether the Rule is equal to another value. It will not be
// equal if the other value cannot be cast to Rule or *Rule.
//
// Weight and Alias are deliberately excluded from the comparison; two rules
// with the same shape but different weights are the same rule for the
// purposes of deduplication during CNF conversion. Skip chains are compared:
// a unit-skip rule is never equal to a plain rule.
func (r Rule) Equal(o any) bool {
	other, ok := o.(Rule)
	if !ok {
		otherPtr, ok := o.(*Rule)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if !r.LHS.Equal(other.LHS) {
		return false
	}
	if len(r.RHS) != len(other.RHS) {
		return false
	}
	for i := range r.RHS {
		if !r.RHS[i].Equal(other.RHS[i]) {
			return false
		}
	}

	if r.IsUnitSkip() != other.IsUnitSkip() {
		return false
	}
	if r.IsUnitSkip() {
		if len(r.Skipped) != len(other.Skipped) {
			return false
		}
		for i := range r.Skipped {
			if !r.Skipped[i].Equal(other.Skipped[i]) {
				return false
			}
		}
	}

	return true
}
