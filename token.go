package lark

import "fmt"

// Token is a single unit of parser input, as produced by a tokenizer. The
// parser matches terminals against Value; Type is carried through for the
// caller's benefit and is not consulted during parsing.
type Token struct {
	// Type is the name of the token's class.
	Type string

	// Value is the token's text as it appeared in the input.
	Value string
}

func (tok Token) String() string {
	return fmt.Sprintf("(%s: %q)", tok.Type, tok.Value)
}
