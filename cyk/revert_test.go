package cyk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TMiguelT/lark/grammar"
)

// buildAndRevert converts g to CNF, parses tokens, and reverts the best
// parse for start, failing the test if the input is rejected.
func buildAndRevert(t *testing.T, g grammar.Grammar, start string, tokens []string) *RuleNode {
	t.Helper()

	table := BuildTable(tokens, grammar.ToCnf(g))
	best, ok := table.BestParse(grammar.NewNonTerminal(start))
	if !ok {
		t.Fatalf("input %v not accepted", tokens)
	}

	return RevertCnf(best).(*RuleNode)
}

// assertNoArtifacts walks the tree checking that no CNF-introduced names or
// skip chains survived reversal.
func assertNoArtifacts(t *testing.T, node TreeNode) {
	t.Helper()

	rn, ok := node.(*RuleNode)
	if !ok {
		return
	}

	assert.False(t, strings.HasPrefix(rn.Rule.LHS.Value(), "__T_"), "TERM artifact: %s", rn.Rule.String())
	assert.False(t, strings.HasPrefix(rn.Rule.LHS.Value(), "__SP_"), "BIN artifact: %s", rn.Rule.String())
	assert.False(t, rn.Rule.IsUnitSkip(), "UNIT artifact: %s", rn.Rule.String())

	for _, child := range rn.Children {
		assertNoArtifacts(t, child)
	}
}

func Test_RevertCnf_termUnwrapped(t *testing.T) {
	assert := assert.New(t)

	// "+" in a 3-symbol rule forces TERM to introduce __T_ rules
	g := grammar.NewGrammar([]grammar.Rule{
		grammar.NewRule(grammar.NewNonTerminal("sum"), []grammar.Symbol{
			grammar.NewNonTerminal("n"), grammar.NewTerminal(`\+`), grammar.NewNonTerminal("n"),
		}, 0, "sum"),
		grammar.NewRule(grammar.NewNonTerminal("n"), []grammar.Symbol{grammar.NewTerminal(`\d+`)}, 0, "n"),
	})

	tree := buildAndRevert(t, g, "sum", []string{"1", "+", "2"})

	assertNoArtifacts(t, tree)
	assert.Equal("sum", tree.Rule.Alias)
	if assert.Len(tree.Children, 3, "original arity must be restored") {
		// the middle child is the bare terminal leaf again
		assert.Equal(Leaf{Text: "+"}, tree.Children[1])
	}
}

func Test_RevertCnf_splitFlattened(t *testing.T) {
	assert := assert.New(t)

	g := grammar.NewGrammar([]grammar.Rule{
		grammar.NewRule(grammar.NewNonTerminal("S"), []grammar.Symbol{
			grammar.NewNonTerminal("W"), grammar.NewNonTerminal("W"),
			grammar.NewNonTerminal("W"), grammar.NewNonTerminal("W"),
		}, 0, "s"),
		grammar.NewRule(grammar.NewNonTerminal("W"), []grammar.Symbol{grammar.NewTerminal("w")}, 0, "w"),
	})

	tree := buildAndRevert(t, g, "S", []string{"w", "w", "w", "w"})

	assertNoArtifacts(t, tree)
	assert.Equal("s", tree.Rule.Alias)
	if assert.Len(tree.Children, 4, "original arity must be restored") {
		for _, child := range tree.Children {
			childRN := child.(*RuleNode)
			assert.Equal("w", childRN.Rule.Alias)
		}
	}
}

func Test_RevertCnf_unitChainUnrolled(t *testing.T) {
	assert := assert.New(t)

	g := grammar.NewGrammar([]grammar.Rule{
		grammar.NewRule(grammar.NewNonTerminal("S"), []grammar.Symbol{grammar.NewNonTerminal("A")}, 1, "s"),
		grammar.NewRule(grammar.NewNonTerminal("A"), []grammar.Symbol{grammar.NewNonTerminal("B")}, 2, "a"),
		grammar.NewRule(grammar.NewNonTerminal("B"), []grammar.Symbol{grammar.NewTerminal("x")}, 3, "b"),
	})

	tree := buildAndRevert(t, g, "S", []string{"x"})

	assertNoArtifacts(t, tree)

	// S -> A -> B -> "x", one node per original rule with its own weight
	assert.Equal("s", tree.Rule.Alias)
	assert.Equal(1, tree.Rule.Weight)
	if !assert.Len(tree.Children, 1) {
		return
	}

	mid := tree.Children[0].(*RuleNode)
	assert.Equal("a", mid.Rule.Alias)
	assert.Equal(2, mid.Rule.Weight)
	if !assert.Len(mid.Children, 1) {
		return
	}

	inner := mid.Children[0].(*RuleNode)
	assert.Equal("b", inner.Rule.Alias)
	assert.Equal(3, inner.Rule.Weight)
	if assert.Len(inner.Children, 1) {
		assert.Equal(Leaf{Text: "x"}, inner.Children[0])
	}
}

func Test_RevertCnf_combinedStages(t *testing.T) {
	assert := assert.New(t)

	// exercises TERM, BIN, and UNIT together: expr -> term "+" term, with a
	// unit rule term -> num in the middle
	g := grammar.NewGrammar([]grammar.Rule{
		grammar.NewRule(grammar.NewNonTerminal("expr"), []grammar.Symbol{
			grammar.NewNonTerminal("term"), grammar.NewTerminal(`\+`), grammar.NewNonTerminal("term"),
		}, 0, "expr"),
		grammar.NewRule(grammar.NewNonTerminal("term"), []grammar.Symbol{grammar.NewNonTerminal("num")}, 0, "term"),
		grammar.NewRule(grammar.NewNonTerminal("num"), []grammar.Symbol{grammar.NewTerminal(`\d+`)}, 0, "num"),
	})

	tree := buildAndRevert(t, g, "expr", []string{"1", "+", "2"})

	assertNoArtifacts(t, tree)
	assert.Equal("expr", tree.Rule.Alias)
	if !assert.Len(tree.Children, 3) {
		return
	}

	for _, i := range []int{0, 2} {
		termNode := tree.Children[i].(*RuleNode)
		assert.Equal("term", termNode.Rule.Alias)
		if assert.Len(termNode.Children, 1) {
			numNode := termNode.Children[0].(*RuleNode)
			assert.Equal("num", numNode.Rule.Alias)
		}
	}
	assert.Equal(Leaf{Text: "+"}, tree.Children[1])
}

func Test_RevertCnf_leafPassthrough(t *testing.T) {
	assert := assert.New(t)

	leaf := Leaf{Text: "a"}

	assert.Equal(leaf, RevertCnf(leaf))
}
