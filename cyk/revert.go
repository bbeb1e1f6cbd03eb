package cyk

import (
	"github.com/TMiguelT/lark/grammar"
)

// RevertCnf converts a parse tree over a CNF-converted grammar back into a
// tree over the original grammar, undoing each conversion stage in one pass:
//
//   - TERM: a node whose rule's LHS was introduced by TERM is unwrapped to
//     its single terminal child.
//   - BIN: children rooted at a BIN-introduced split name are flattened into
//     the parent's child list, restoring the original rule's arity.
//   - UNIT: a node whose rule is a unit-skip rule is unrolled into the
//     recorded chain of single-child derivation steps.
//
// The result contains only rules of the original grammar: no introduced
// names and no skip chains remain.
func RevertCnf(node TreeNode) TreeNode {
	rn, ok := node.(*RuleNode)
	if !ok {
		// terminal leaf, nothing to revert
		return node
	}

	if grammar.IsTermIntroduced(rn.Rule.LHS) {
		return rn.Children[0]
	}

	var children []TreeNode
	for _, child := range rn.Children {
		reverted := RevertCnf(child)
		if childRN, ok := reverted.(*RuleNode); ok && grammar.IsSplitIntroduced(childRN.Rule.LHS) {
			children = append(children, childRN.Children...)
		} else {
			children = append(children, reverted)
		}
	}

	if rn.Rule.IsUnitSkip() {
		return unrollSkipRule(rn.Rule.LHS, rn.Rule.RHS, rn.Rule.Skipped, children, rn.Rule.Weight, rn.Rule.Alias)
	}

	return &RuleNode{Rule: rn.Rule, Children: children}
}

// unrollSkipRule rebuilds the chain of unit-rule applications a skip rule
// collapsed, one single-child node per skipped step. Each level's weight is
// recovered by subtracting the weight of the step below it; the innermost
// node carries the original pre-UNIT rule with its own RHS shape and alias.
func unrollSkipRule(lhs grammar.NonTerminal, origRHS []grammar.Symbol, skipped []grammar.Rule, children []TreeNode, weight int, alias string) *RuleNode {
	if len(skipped) == 0 {
		r := grammar.Rule{LHS: lhs, RHS: origRHS, Weight: weight, Alias: alias}
		return &RuleNode{Rule: r, Children: children, Weight: weight}
	}

	weight -= skipped[0].Weight
	inner := unrollSkipRule(skipped[0].LHS, origRHS, skipped[1:], children, skipped[0].Weight, skipped[0].Alias)

	r := grammar.Rule{
		LHS:    lhs,
		RHS:    []grammar.Symbol{skipped[0].LHS},
		Weight: weight,
		Alias:  alias,
	}
	return &RuleNode{Rule: r, Children: []TreeNode{inner}, Weight: weight}
}
