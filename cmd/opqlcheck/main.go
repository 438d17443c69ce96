// Command opqlcheck is a static syntax checker for OverpassQL.
package main

import (
	"fmt"
	"os"

	"github.com/opql-tools/opqlcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
