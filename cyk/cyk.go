package cyk

import (
	"strings"

	"github.com/TMiguelT/lark/grammar"
)

// span is an inclusive range of 0-based input token positions.
type span struct {
	start, end int
}

// cell is one entry of the parse table: every rule derivable over the
// cell's span, plus the lightest tree found so far for each left-hand side.
type cell struct {
	// rules is the ordered set of rules valid over this span.
	rules []grammar.Rule
	seen  map[string]bool

	// best maps a non-terminal name to the lowest-weight tree producing it
	// over this span.
	best map[string]*RuleNode
}

func newCell() *cell {
	return &cell{
		seen: map[string]bool{},
		best: map[string]*RuleNode{},
	}
}

// add inserts r into the cell's rule set if no equal rule is present.
func (c *cell) add(r grammar.Rule) {
	k := ruleKey(r)
	if c.seen[k] {
		return
	}
	c.seen[k] = true
	c.rules = append(c.rules, r)
}

// offer stores tree as the best derivation of its rule's LHS over the cell's
// span if it is strictly lighter than the current best. On equal weight the
// first-seen tree is kept; iteration everywhere is in deterministic order, so
// the tie-break is stable across runs.
func (c *cell) offer(tree *RuleNode) {
	lhs := tree.Rule.LHS.Value()
	cur, ok := c.best[lhs]
	if !ok || tree.Weight < cur.Weight {
		c.best[lhs] = tree
	}
}

// ruleKey is the deduplication key for a cell's rule set. It must agree with
// Rule.Equal: same shape and same skip chain.
func ruleKey(r grammar.Rule) string {
	if !r.IsUnitSkip() {
		return r.String()
	}

	var sb strings.Builder
	sb.WriteString(r.String())
	for _, s := range r.Skipped {
		sb.WriteRune(';')
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Table is the parse chart the CYK algorithm fills over one input sequence.
// It is freshly allocated per BuildTable call and never shared.
type Table struct {
	n     int
	cells map[span]*cell
}

func (tb *Table) cell(i, j int) *cell {
	c, ok := tb.cells[span{i, j}]
	if !ok {
		c = newCell()
		tb.cells[span{i, j}] = c
	}
	return c
}

// Length returns the number of input tokens the table was built over.
func (tb *Table) Length() int {
	return tb.n
}

// RulesAt returns the ordered set of rules derivable over the inclusive span
// (i, j), or nil if none are.
func (tb *Table) RulesAt(i, j int) []grammar.Rule {
	c, ok := tb.cells[span{i, j}]
	if !ok {
		return nil
	}
	return c.rules
}

// BestTree returns the lowest-weight tree deriving nt over the inclusive
// span (i, j).
func (tb *Table) BestTree(i, j int, nt grammar.NonTerminal) (*RuleNode, bool) {
	c, ok := tb.cells[span{i, j}]
	if !ok {
		return nil, false
	}
	t, ok := c.best[nt.Value()]
	return t, ok
}

// Accepts returns whether the full input derives from start.
func (tb *Table) Accepts(start grammar.NonTerminal) bool {
	_, ok := tb.BestTree(0, tb.n-1, start)
	return ok
}

// BestParse returns the lowest-weight parse of the full input starting from
// start, or ok=false if the input is not in the grammar's language.
func (tb *Table) BestParse(start grammar.NonTerminal) (*RuleNode, bool) {
	return tb.BestTree(0, tb.n-1, start)
}

// BuildTable parses the token values in tokens against the CNF grammar g,
// filling a triangular table of derivable rules and lowest-weight partial
// trees for every span. Acceptance and tree extraction are left to the
// caller via the returned Table.
//
// Runs in O(n³ · |g|) time over O(n²) table cells.
func BuildTable(tokens []string, g grammar.CnfWrapper) *Table {
	tb := &Table{
		n:     len(tokens),
		cells: map[span]*cell{},
	}

	// base case: terminal rules whose pattern matches a single token
	for i, tok := range tokens {
		for _, group := range g.TerminalRules {
			if !group.Terminal.Matches(tok) {
				continue
			}
			c := tb.cell(i, i)
			for _, r := range group.Rules {
				c.add(r)
				c.offer(&RuleNode{
					Rule:     r,
					Children: []TreeNode{Leaf{Text: tok}},
					Weight:   r.Weight,
				})
			}
		}
	}

	// spans of length 2..n, each split at every partition point
	for length := 2; length <= tb.n; length++ {
		for i := 0; i+length <= tb.n; i++ {
			j := i + length - 1
			for p := i + 1; p <= j; p++ {
				left, lok := tb.cells[span{i, p - 1}]
				right, rok := tb.cells[span{p, j}]
				if !lok || !rok {
					continue
				}

				for _, r1 := range left.rules {
					for _, r2 := range right.rules {
						key := grammar.NTPair{Left: r1.LHS.Value(), Right: r2.LHS.Value()}
						rules := g.PairRules[key]
						if len(rules) == 0 {
							continue
						}

						c := tb.cell(i, j)
						lTree := left.best[r1.LHS.Value()]
						rTree := right.best[r2.LHS.Value()]
						for _, r := range rules {
							c.add(r)
							c.offer(&RuleNode{
								Rule:     r,
								Children: []TreeNode{lTree, rTree},
								Weight:   r.Weight + lTree.Weight + rTree.Weight,
							})
						}
					}
				}
			}
		}
	}

	return tb
}
