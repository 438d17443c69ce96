package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opql-tools/opqlcheck/checker"
)

// smokeScenarios mirrors the fixed scenario table checker_test.go
// exercises in depth; --test runs the same shapes end to end as a
// quick sanity check with no test binary required.
var smokeScenarios = []struct {
	name  string
	query string
	valid bool
}{
	{"simple restaurant query", `node[amenity=restaurant];out;`, true},
	{"area search with assignment", `[out:json][timeout:25];area[name="Berlin"]->.searchArea;node(area.searchArea)[amenity=restaurant];out center;`, true},
	{"union shorthand with around filter", `[out:json][bbox:52.5,13.3,52.6,13.5];(node[amenity=cafe][opening_hours~".*"](around:500,52.52,13.41);way[building][addr:city="Berlin"];);out geom;`, true},
	{"missing semicolon before out", `node[amenity=restaurant]out;`, false},
	{"unterminated regex character class", `node[amenity~"[unterminated"];out;`, false},
	{"for loop with make statement and backreference", `[out:json][timeout:25];{{geocodeArea:"Hamburg"}}->.searchArea;way["highway"](area.searchArea);for(t["highway"]){make stat_highway_\1,val=count(ways);}out;`, true},
	{"unknown out format is a warning only", `[out:unknownfmt];node;out;`, true},
	{"unterminated block comment", `/* unterminated comment node;`, false},
}

var smokeTestCmd = &cobra.Command{
	Use:   "smoke-test",
	Short: "Run the built-in scenario suite and print PASS/FAIL for each case",
	Run: func(cmd *cobra.Command, args []string) {
		runSmokeTest()
	},
}

func runSmokeTest() {
	c := checker.New()
	failures := 0
	for _, sc := range smokeScenarios {
		result := c.CheckSyntax(sc.query)
		ok := result.Valid == sc.valid
		status := "PASS"
		if !ok {
			status = "FAIL"
			failures++
		}
		fmt.Printf("%-4s %s\n", status, sc.name)
		if !ok {
			fmt.Printf("     expected valid=%v, got valid=%v (%d error(s))\n", sc.valid, result.Valid, len(result.Errors))
		}
	}
	if failures > 0 {
		fmt.Printf("\n%d of %d scenarios failed\n", failures, len(smokeScenarios))
		os.Exit(1)
	}
	fmt.Printf("\nall %d scenarios passed\n", len(smokeScenarios))
}
