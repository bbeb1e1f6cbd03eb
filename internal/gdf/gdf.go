// Package gdf has functions for loading grammar definitions using the GDF
// (Grammar Definition File) format, a TOML-based format that defines the
// terminals and production rules of a context-free grammar for a parser to
// be built from.
package gdf

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/TMiguelT/lark"
)

// Format is the format tag every GDF file must declare.
const Format = "lark"

var (
	// ErrBadFormat is the error returned when a file does not declare the
	// GDF format tag.
	ErrBadFormat = errors.New("file does not have format = " + strconv.Quote(Format))

	// ErrNoRules is the error returned when a file declares no rules at all.
	ErrNoRules = errors.New("file does not define any rules")
)

// Definition contains a grammar loaded from a GDF file, converted to the
// parser's input terms.
type Definition struct {
	// Start is the name of the grammar's start symbol.
	Start string

	// Rules is every production of the grammar, in file order.
	Rules []lark.RuleDef
}

// topLevel is the marshaled shape of an entire GDF file.
type topLevel struct {
	Format    string            `toml:"format"`
	Start     string            `toml:"start"`
	Terminals map[string]string `toml:"terminals"`
	Rules     []marshaledRule   `toml:"rules"`
}

// marshaledRule is the marshaled shape of one [[rules]] entry.
type marshaledRule struct {
	Origin    string   `toml:"origin"`
	Expansion []string `toml:"expansion"`
	Alias     string   `toml:"alias"`
	Priority  int      `toml:"priority"`
}

// LoadFile loads a grammar definition from the GDF file at the given path.
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("reading %s: %w", path, err)
	}

	def, err := Decode(data)
	if err != nil {
		return def, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Decode decodes a grammar definition from the bytes of a GDF file. Every
// reference is checked: an expansion entry is a terminal reference if and
// only if it names a key of the terminals table, otherwise it must name the
// origin of at least one rule.
func Decode(data []byte) (Definition, error) {
	var tl topLevel
	if err := toml.Unmarshal(data, &tl); err != nil {
		return Definition{}, fmt.Errorf("decoding TOML: %w", err)
	}

	if tl.Format != Format {
		return Definition{}, ErrBadFormat
	}
	if len(tl.Rules) < 1 {
		return Definition{}, ErrNoRules
	}
	if tl.Start == "" {
		return Definition{}, fmt.Errorf("no start symbol given")
	}
	if _, ok := tl.Terminals[tl.Start]; ok {
		return Definition{}, fmt.Errorf("start: %q is a terminal, not a rule origin", tl.Start)
	}

	origins := map[string]bool{}
	for _, mr := range tl.Rules {
		origins[mr.Origin] = true
	}
	if !origins[tl.Start] {
		return Definition{}, fmt.Errorf("start: no rule with origin %q exists", tl.Start)
	}

	def := Definition{Start: tl.Start}
	seenAliases := map[string]bool{}
	for i, mr := range tl.Rules {
		rd, err := parseRuleDef(mr, i, tl.Terminals, origins)
		if err != nil {
			return Definition{}, fmt.Errorf("rules[%d]: %w", i, err)
		}

		if seenAliases[rd.Alias] {
			return Definition{}, fmt.Errorf("rules[%d]: duplicate alias %q", i, rd.Alias)
		}
		seenAliases[rd.Alias] = true

		def.Rules = append(def.Rules, rd)
	}

	return def, nil
}

// parseRuleDef validates one marshaled rule and converts it to the parser's
// rule definition type.
func parseRuleDef(mr marshaledRule, idx int, terminals map[string]string, origins map[string]bool) (lark.RuleDef, error) {
	if mr.Origin == "" {
		return lark.RuleDef{}, fmt.Errorf("no origin")
	}
	if _, ok := terminals[mr.Origin]; ok {
		return lark.RuleDef{}, fmt.Errorf("origin: %q is a terminal", mr.Origin)
	}
	if len(mr.Expansion) < 1 {
		return lark.RuleDef{}, fmt.Errorf("empty expansion; epsilon rules are not supported")
	}

	rd := lark.RuleDef{
		Origin:   mr.Origin,
		Alias:    mr.Alias,
		Priority: mr.Priority,
	}
	if rd.Alias == "" {
		rd.Alias = mr.Origin + "_" + strconv.Itoa(idx)
	}

	for _, name := range mr.Expansion {
		if pattern, ok := terminals[name]; ok {
			rd.Expansion = append(rd.Expansion, lark.TermRef(name, pattern))
		} else if origins[name] {
			rd.Expansion = append(rd.Expansion, lark.NTRef(name))
		} else {
			return lark.RuleDef{}, fmt.Errorf("expansion: %q is neither a terminal nor a rule origin", name)
		}
	}

	return rd, nil
}
