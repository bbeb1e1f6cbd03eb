/*
Larkcyk parses token sequences against a context-free grammar using the CYK
algorithm.

It reads in a grammar definition file, builds a parser from it (converting
the grammar to Chomsky Normal Form), and then parses sentences. A sentence
given as arguments is parsed once and its parse tree printed; with no
arguments, sentences are read interactively from stdin, one per line with
tokens separated by whitespace, until EOF or interrupt.

Usage:

	larkcyk [flags] [TOKENS...]

The flags are:

	-v/--version
		Give the current version of larkcyk and then exit.

	-g/--grammar [FILE]
		Use the provided GDF grammar definition file. Defaults to the file
		"grammar.toml" in the current working directory.

	-c/--cnf
		Print the Chomsky Normal Form the grammar was converted to and then
		exit.

	-d/--direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading sentence input.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/TMiguelT/lark"
	"github.com/TMiguelT/lark/internal/gdf"
	"github.com/TMiguelT/lark/internal/input"
	"github.com/TMiguelT/lark/internal/version"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitParseError indicates an unsuccessful program execution due to a
	// sentence not matching the grammar.
	ExitParseError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue loading the grammar or building the parser.
	ExitInitError
)

var (
	returnCode = ExitSuccess

	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile = pflag.StringP("grammar", "g", "grammar.toml", "the GDF file that contains the definition of the grammar")
	showCnf     = pflag.BoolP("cnf", "c", false, "print the grammar's Chomsky Normal Form and exit")
	forceDirect = pflag.BoolP("direct", "d", false, "force reading directly from stdin instead of going through GNU readline")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic("unrecoverable panic occured")
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	def, err := gdf.LoadFile(*grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	parser, err := lark.New(def.Rules, def.Start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if *showCnf {
		fmt.Println(parser.CnfGrammar().TableString())
		return
	}

	if args := pflag.Args(); len(args) > 0 {
		if !parseSentence(parser, args) {
			returnCode = ExitParseError
		}
		return
	}

	returnCode = runInteractive(parser)
}

// runInteractive reads sentences line by line and parses each one, printing
// trees to stdout and parse failures to stderr, until end of input.
func runInteractive(parser *lark.Parser) int {
	var reader input.Reader
	if *forceDirect {
		reader = input.NewDirectReader(os.Stdin)
	} else {
		var err error
		reader, err = input.NewInteractiveReader()
		if err != nil {
			// readline could not be set up; fall back to direct reads
			reader = input.NewDirectReader(os.Stdin)
		}
	}
	defer reader.Close()

	for {
		line, err := reader.ReadSentence()
		if err == io.EOF {
			return ExitSuccess
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			return ExitInitError
		}

		parseSentence(parser, strings.Fields(line))
	}
}

// parseSentence parses one whitespace-tokenized sentence and prints the
// result, returning whether the sentence was in the grammar's language.
func parseSentence(parser *lark.Parser, words []string) bool {
	tokens := make([]lark.Token, len(words))
	for i, w := range words {
		tokens[i] = lark.Token{Value: w}
	}

	tree, err := parser.Parse(tokens)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return false
	}

	fmt.Println(tree.String())
	return true
}
