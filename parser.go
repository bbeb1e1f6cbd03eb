// Package lark provides a general context-free-grammar parser based on the
// CYK dynamic-programming algorithm. A Parser is constructed once from a set
// of rule definitions; construction converts the grammar to Chomsky Normal
// Form, and each Parse call fills a fresh CYK table, selects the
// lowest-weight derivation, and reverts it to the shape of the original
// grammar.
//
// Grammars with epsilon (empty) productions, with the start symbol on any
// rule's right-hand side, or with cycles purely among unit rules are not
// supported.
package lark

import (
	"errors"
	"fmt"

	"github.com/TMiguelT/lark/cyk"
	"github.com/TMiguelT/lark/grammar"
)

// ErrParse is the error returned when input does not match the grammar. It
// deliberately carries no partial-derivation detail. Use errors.Is to check
// for it through wrapping.
var ErrParse = errors.New("parsing failed")

// SymbolRef is one symbol of a rule's expansion: either a terminal matched
// by regular expression, or a reference to another rule's origin
// non-terminal.
type SymbolRef struct {
	// Name is the symbol's name. For terminals it is the token type that
	// matched leaves are annotated with in the output tree; for
	// non-terminals it is the origin name being referenced.
	Name string

	// Pattern is the terminal's regular expression. Only consulted when
	// Terminal is true.
	Pattern string

	// Terminal is whether this reference is a terminal.
	Terminal bool
}

// NTRef returns a SymbolRef referencing the non-terminal with the given
// origin name.
func NTRef(name string) SymbolRef {
	return SymbolRef{Name: name}
}

// TermRef returns a terminal SymbolRef with the given token type name and
// regular expression pattern.
func TermRef(name string, pattern string) SymbolRef {
	return SymbolRef{Name: name, Pattern: pattern, Terminal: true}
}

// RuleDef defines one production of the input grammar, in the caller's
// terms.
type RuleDef struct {
	// Origin is the name of the non-terminal the rule produces.
	Origin string

	// Expansion is the ordered sequence of symbols the rule expands to.
	Expansion []SymbolRef

	// Alias uniquely identifies the rule. Nodes of the output tree are
	// mapped back to their defining rule through it.
	Alias string

	// Priority is the rule's weight; among ambiguous derivations the parser
	// returns the one with the lowest total.
	Priority int
}

// Parser parses token sequences against a fixed context-free grammar. It is
// created with New; the zero value is not usable.
//
// A Parser holds no per-input state. Once constructed it may be reused for
// any number of Parse calls, including concurrently.
type Parser struct {
	origRules map[string]RuleDef
	cnf       grammar.CnfWrapper
	start     grammar.NonTerminal
}

// New creates a Parser for the grammar defined by the given rules, with the
// named start symbol. The grammar is converted to Chomsky Normal Form here,
// once; the cost is amortized across all future Parse calls.
//
// A non-nil error is returned if the rule set itself is unusable: no rules,
// an empty expansion, a terminal pattern that does not compile, or a missing
// or duplicate alias. Such problems are never deferred to parse time.
func New(rules []RuleDef, start string) (*Parser, error) {
	if len(rules) < 1 {
		return nil, fmt.Errorf("grammar has no rules")
	}
	if start == "" {
		return nil, fmt.Errorf("grammar has no start symbol")
	}

	p := &Parser{
		origRules: make(map[string]RuleDef),
		start:     grammar.NewNonTerminal(start),
	}

	internalRules := make([]grammar.Rule, len(rules))
	for i, rd := range rules {
		if rd.Origin == "" {
			return nil, fmt.Errorf("rule %d: no origin", i)
		}
		if len(rd.Expansion) < 1 {
			return nil, fmt.Errorf("rule %q: empty expansion; epsilon rules are not supported", rd.Origin)
		}
		if rd.Alias == "" {
			return nil, fmt.Errorf("rule %q: no alias", rd.Origin)
		}
		if _, ok := p.origRules[rd.Alias]; ok {
			return nil, fmt.Errorf("rule %q: duplicate alias %q", rd.Origin, rd.Alias)
		}
		p.origRules[rd.Alias] = rd

		r, err := toInternalRule(rd)
		if err != nil {
			return nil, err
		}
		internalRules[i] = r
	}

	p.cnf = grammar.ToCnf(grammar.NewGrammar(internalRules))
	return p, nil
}

// toInternalRule converts a caller-supplied rule definition to the internal
// rule model, compiling terminal patterns.
func toInternalRule(rd RuleDef) (grammar.Rule, error) {
	rhs := make([]grammar.Symbol, len(rd.Expansion))
	for i, ref := range rd.Expansion {
		if ref.Terminal {
			t, err := grammar.CompileTerminal(ref.Pattern)
			if err != nil {
				return grammar.Rule{}, fmt.Errorf("rule %q: %w", rd.Origin, err)
			}
			rhs[i] = t
		} else {
			rhs[i] = grammar.NewNonTerminal(ref.Name)
		}
	}

	return grammar.NewRule(grammar.NewNonTerminal(rd.Origin), rhs, rd.Priority, rd.Alias), nil
}

// Start returns the name of the parser's start symbol.
func (p *Parser) Start() string {
	return p.start.Value()
}

// CnfGrammar returns the Chomsky Normal Form grammar the parser was compiled
// to. It is useful only for diagnostics; parse results are always expressed
// in terms of the original rules.
func (p *Parser) CnfGrammar() grammar.Grammar {
	return p.cnf.Grammar
}

// Parse parses the given token sequence. On success it returns the parse
// tree with the lowest total rule weight, shaped by the original rule
// definitions. If the input does not derive from the start symbol, the
// returned error matches ErrParse; the Parser remains valid for further
// calls either way.
func (p *Parser) Parse(tokens []Token) (*ParseTree, error) {
	values := make([]string, len(tokens))
	for i := range tokens {
		values[i] = tokens[i].Value
	}

	table := cyk.BuildTable(values, p.cnf)
	best, ok := table.BestParse(p.start)
	if !ok {
		return nil, fmt.Errorf("%w", ErrParse)
	}

	reverted := cyk.RevertCnf(best).(*cyk.RuleNode)
	return p.toTree(reverted), nil
}

// toTree maps a reverted parse tree back onto the caller's rule definitions,
// looking up each node's original rule by alias and annotating each leaf
// with the expansion symbol it matched.
func (p *Parser) toTree(rn *cyk.RuleNode) *ParseTree {
	orig := p.origRules[rn.Rule.Alias]

	pt := &ParseTree{
		Value:    orig.Origin,
		Children: make([]*ParseTree, len(rn.Children)),
	}
	for i, child := range rn.Children {
		switch c := child.(type) {
		case *cyk.RuleNode:
			pt.Children[i] = p.toTree(c)
		case cyk.Leaf:
			ref := orig.Expansion[i]
			pt.Children[i] = &ParseTree{
				Terminal: true,
				Value:    ref.Name,
				Source:   Token{Type: ref.Name, Value: c.Text},
			}
		}
	}

	return pt
}
