// Package cyk implements the CYK (Cocke-Younger-Kasami) dynamic-programming
// parser over grammars in Chomsky Normal Form, with lowest-total-weight
// selection among ambiguous derivations, and the reversal of CNF-converted
// parse trees back into original-grammar shape.
package cyk

import (
	"fmt"
	"strings"

	"github.com/TMiguelT/lark/grammar"
)

// TreeNode is a single node of a CYK parse tree: either an interior
// *RuleNode or a terminal Leaf. No other type may implement it.
type TreeNode interface {
	treeNode()
}

// Leaf is a terminal node of a parse tree. It carries the text of the input
// token it matched.
type Leaf struct {
	Text string
}

func (lf Leaf) treeNode() {}

func (lf Leaf) String() string {
	return fmt.Sprintf("%q", lf.Text)
}

// RuleNode is an interior node of a parse tree. It carries the full rule
// that produced it, not just the rule's left-hand side, so that reversal and
// output mapping can recover rule identity.
type RuleNode struct {
	// Rule is the rule applied at this node.
	Rule grammar.Rule

	// Children holds one subtree per symbol of the rule's right-hand side.
	Children []TreeNode

	// Weight is the total weight of the subtree rooted here: the rule's own
	// weight plus the weights of all child subtrees.
	Weight int
}

func (rn *RuleNode) treeNode() {}

// String returns an indented multi-line rendering of the subtree, one symbol
// per line.
func (rn *RuleNode) String() string {
	var sb strings.Builder
	rn.writeIndented(&sb, 0)
	return sb.String()
}

func (rn *RuleNode) writeIndented(sb *strings.Builder, level int) {
	sb.WriteString(strings.Repeat("  ", level))
	sb.WriteString(rn.Rule.LHS.Value())
	for _, child := range rn.Children {
		sb.WriteRune('\n')
		if childRN, ok := child.(*RuleNode); ok {
			childRN.writeIndented(sb, level+1)
		} else {
			sb.WriteString(strings.Repeat("  ", level+1))
			sb.WriteString(child.(Leaf).String())
		}
	}
}

// Equal returns whether the RuleNode is equal to another value. It will not
// be equal if the other value cannot be cast to *RuleNode. Two RuleNodes are
// equal if they apply equal rules and have equal children; weights are not
// compared.
func (rn *RuleNode) Equal(o any) bool {
	other, ok := o.(*RuleNode)
	if !ok || other == nil {
		return false
	}

	if !rn.Rule.Equal(other.Rule) {
		return false
	}
	if len(rn.Children) != len(other.Children) {
		return false
	}
	for i := range rn.Children {
		switch c := rn.Children[i].(type) {
		case Leaf:
			oc, ok := other.Children[i].(Leaf)
			if !ok || c.Text != oc.Text {
				return false
			}
		case *RuleNode:
			if !c.Equal(other.Children[i]) {
				return false
			}
		}
	}

	return true
}
