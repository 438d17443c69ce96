// Package render prints diagnostics the way the CLI and --verbose mode
// both want them: the plain text form shared with the programmatic
// API, optionally colorized and anchored to the offending source line.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/opql-tools/opqlcheck/diag"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	arrowStyle   = color.New(color.FgBlue, color.Bold)
)

// Plain renders one diagnostic exactly as spec §6 requires, with no
// color codes: the same text as d.String(), which the programmatic
// API prints.
func Plain(d diag.Diagnostic) string {
	return d.String()
}

// Diagnostics writes every diagnostic in diags to w as the Plain line
// with its severity colorized in the teacher's palette (red/bold
// errors, yellow/bold warnings, cyan filenames, blue arrows), then an
// optional "-->" location line, followed by a single-line caret
// pointing at the column within the offending source line when
// source is available. OverpassQL diagnostics are point positions, not
// AST node ranges, so this is a single caret rather than the
// teacher's multi-line underline-and-snippet rendering.
func Diagnostics(w io.Writer, filename string, source string, diags []diag.Diagnostic) {
	var lines []string
	if source != "" {
		lines = strings.Split(source, "\n")
	}
	for _, d := range diags {
		style := errorStyle
		if d.Severity == diag.SeverityWarning {
			style = warningStyle
		}
		fmt.Fprint(w, style.Sprint(d.Severity.String()))
		fmt.Fprintf(w, " at line %d, column %d: %s\n", d.Line, d.Column, d.Message)

		if filename != "" {
			fmt.Fprint(w, arrowStyle.Sprint(" --> "))
			fmt.Fprintf(w, "%s:%d:%d\n", fileStyle.Sprint(filename), d.Line, d.Column)
		}

		if d.Line-1 >= 0 && d.Line-1 < len(lines) {
			src := lines[d.Line-1]
			col := d.Column - 1
			if col < 0 {
				col = 0
			}
			if col > len(src) {
				col = len(src)
			}
			fmt.Fprintf(w, "  %s\n", src)
			fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", col), style.Sprint("^"))
		}
	}
}
