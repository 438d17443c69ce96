package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opql-tools/opqlcheck/checker"
	"github.com/opql-tools/opqlcheck/internal/batch"
	"github.com/opql-tools/opqlcheck/internal/render"
)

// tokenDisplayLimit bounds how many tokens --verbose prints before
// collapsing the rest, so a single huge query doesn't flood a
// terminal the way an unbounded token dump would.
const tokenDisplayLimit = 20

var checkCmd = &cobra.Command{
	Use:   "check [query]",
	Short: "Check a query string, file, directory, or glob for OverpassQL syntax errors",
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, args)
	},
}

func runCheck(cmd *cobra.Command, args []string) {
	if filePath != "" {
		runCheckPath(cmd, filePath)
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: provide a query string or -f/--file")
		os.Exit(2)
	}
	runCheckQuery(strings.Join(args, " "), "")
}

func runCheckQuery(query, filename string) {
	result := checker.New().CheckSyntax(query)
	if logger != nil {
		logger.Debug("checked query",
			zap.String("file", filename),
			zap.Int("errors", len(result.Errors)),
			zap.Int("warnings", len(result.Warnings)),
			zap.Bool("valid", result.Valid))
	}
	printResult(filename, query, result)
	os.Exit(exitCode(result))
}

func runCheckPath(cmd *cobra.Command, path string) {
	info, err := os.Stat(path)
	if err != nil {
		if matches, globErr := filepath.Glob(path); globErr == nil && len(matches) > 0 {
			runBatch(cmd, []string{path})
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	if info.IsDir() {
		runBatch(cmd, []string{path})
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	if !utf8.Valid(data) {
		fmt.Fprintln(os.Stderr, "error: file is not valid UTF-8")
		os.Exit(2)
	}
	runCheckQuery(string(data), path)
}

func runBatch(cmd *cobra.Command, paths []string) {
	results, err := batch.Run(cmd.Context(), logger, paths, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	anyInvalid := false
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			anyInvalid = true
			continue
		}
		if !r.Result.Valid {
			anyInvalid = true
		}
		status := "OK"
		if !r.Result.Valid {
			status = "FAIL"
		}
		fmt.Printf("%-6s %s (%d errors, %d warnings)\n", status, r.Path, len(r.Result.Errors), len(r.Result.Warnings))
		if verbose {
			render.Diagnostics(os.Stdout, r.Path, "", append(r.Result.Errors, r.Result.Warnings...))
		}
	}
	if anyInvalid {
		os.Exit(1)
	}
}

func printResult(filename, query string, result checker.CheckResult) {
	if jsonOutput {
		printResultJSON(filename, result)
		return
	}

	if result.Valid {
		fmt.Println("Valid")
	} else {
		fmt.Printf("Invalid (%d error(s), %d warning(s))\n", len(result.Errors), len(result.Warnings))
	}

	if verbose {
		render.Diagnostics(os.Stdout, filename, query, append(result.Errors, result.Warnings...))
		printTokens(result)
	}
}

func printTokens(result checker.CheckResult) {
	fmt.Println("Tokens:")
	shown := result.Tokens
	truncated := false
	if len(shown) > tokenDisplayLimit {
		shown = shown[:tokenDisplayLimit]
		truncated = true
	}
	for _, t := range shown {
		fmt.Println("  " + t.String())
	}
	if truncated {
		fmt.Printf("  ... and %d more token(s)\n", len(result.Tokens)-tokenDisplayLimit)
	}
}

func printResultJSON(filename string, result checker.CheckResult) {
	type jsonDiag struct {
		Severity string `json:"severity"`
		Message  string `json:"message"`
		Line     int    `json:"line"`
		Column   int    `json:"column"`
	}
	out := struct {
		File     string     `json:"file,omitempty"`
		Valid    bool       `json:"valid"`
		Errors   []jsonDiag `json:"errors"`
		Warnings []jsonDiag `json:"warnings"`
	}{File: filename, Valid: result.Valid}

	for _, e := range result.Errors {
		out.Errors = append(out.Errors, jsonDiag{Severity: e.Severity.String(), Message: e.Message, Line: e.Line, Column: e.Column})
	}
	for _, w := range result.Warnings {
		out.Warnings = append(out.Warnings, jsonDiag{Severity: w.Severity.String(), Message: w.Message, Line: w.Line, Column: w.Column})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func exitCode(result checker.CheckResult) int {
	if result.Valid {
		return 0
	}
	return 1
}
