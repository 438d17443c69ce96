// Package checker wires the lexer and parser into the single façade
// the rest of the repository depends on.
package checker

import (
	"fmt"

	"github.com/opql-tools/opqlcheck/diag"
	"github.com/opql-tools/opqlcheck/lexer"
	"github.com/opql-tools/opqlcheck/parser"
	"github.com/opql-tools/opqlcheck/token"
)

// CheckResult is the aggregated outcome of checking one query.
type CheckResult struct {
	Valid    bool
	Errors   []diag.Diagnostic
	Warnings []diag.Diagnostic
	Tokens   []token.Token
}

// Checker is stateless and safe for concurrent use: every call builds
// its own sink, lexer, and parser, per spec §2/§5.
type Checker struct{}

// New returns a Checker. It holds no state; constructing it is only a
// naming convenience for call sites that prefer a value to a bare
// function.
func New() Checker {
	return Checker{}
}

// CheckSyntax lexes and parses query, returning the aggregated result.
// valid is true iff no error diagnostic was produced; warnings never
// affect it.
func (Checker) CheckSyntax(query string) CheckResult {
	sink := diag.New()
	toks := lexer.Tokenize(query, sink)
	parser.Parse(toks, sink)

	return CheckResult{
		Valid:    !sink.HasErrors(),
		Errors:   sink.Errors(),
		Warnings: sink.Warnings(),
		Tokens:   toks,
	}
}

// ValidateQuery runs CheckSyntax and, when verbose is true, writes
// every diagnostic to stdout in the format shared with the CLI's
// rendering code path. It returns the same valid flag CheckSyntax
// would have produced.
func (Checker) ValidateQuery(query string, verbose bool) bool {
	result := Checker{}.CheckSyntax(query)
	if verbose {
		for _, e := range result.Errors {
			fmt.Println(e.String())
		}
		for _, w := range result.Warnings {
			fmt.Println(w.String())
		}
	}
	return result.Valid
}
