package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opql-tools/opqlcheck/diag"
	"github.com/opql-tools/opqlcheck/lexer"
)

func parse(t *testing.T, src string) *diag.Sink {
	t.Helper()
	sink := diag.New()
	toks := lexer.Tokenize(src, sink)
	Parse(toks, sink)
	return sink
}

func TestScenarioSimpleQuery(t *testing.T) {
	sink := parse(t, `node[amenity=restaurant];out;`)
	assert.False(t, sink.HasErrors())
}

func TestScenarioAreaSearch(t *testing.T) {
	sink := parse(t, `[out:json][timeout:25];area[name="Berlin"]->.searchArea;node(area.searchArea)[amenity=restaurant];out center;`)
	assert.False(t, sink.HasErrors())
}

func TestScenarioUnionShorthandWithAroundFilter(t *testing.T) {
	sink := parse(t, `[out:json][bbox:52.5,13.3,52.6,13.5];(node[amenity=cafe][opening_hours~".*"](around:500,52.52,13.41);way[building][addr:city="Berlin"];);out geom;`)
	assert.False(t, sink.HasErrors())
}

func TestScenarioMissingSemicolonReportsError(t *testing.T) {
	sink := parse(t, `node[amenity=restaurant]out;`)
	assert.True(t, sink.HasErrors())
}

func TestScenarioInvalidRegexInFilter(t *testing.T) {
	sink := parse(t, `node[amenity~"[unterminated"];out;`)
	assert.True(t, sink.HasErrors())
	found := false
	for _, e := range sink.Errors() {
		if containsSubstring(e.Message, "Invalid regex") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScenarioForLoopWithMakeStatement(t *testing.T) {
	sink := parse(t, `[out:json][timeout:25];{{geocodeArea:"Hamburg"}}->.searchArea;way["highway"](area.searchArea);for(t["highway"]){make stat_highway_\1,val=count(ways);}out;`)
	assert.False(t, sink.HasErrors())
}

func TestScenarioUnknownOutFormatIsWarningNotError(t *testing.T) {
	sink := parse(t, `[out:unknownfmt];node;out;`)
	assert.False(t, sink.HasErrors())
	assert.NotEmpty(t, sink.Warnings())
}

func TestScenarioUnterminatedBlockComment(t *testing.T) {
	sink := parse(t, `/* unterminated comment node;`)
	assert.True(t, sink.HasErrors())
}

func TestUnknownSettingKeyWarningReportsUnfusedKeyName(t *testing.T) {
	sink := parse(t, `[foo:bar];node;out;`)
	assert.False(t, sink.HasErrors())
	require.NotEmpty(t, sink.Warnings())
	assert.Contains(t, sink.Warnings()[0].Message, "Unknown setting: foo")
	assert.NotContains(t, sink.Warnings()[0].Message, "foo:bar")
}

func containsSubstring(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func TestRecoveryAfterMissingSemicolonYieldsAtMostOneErrorForThatStatement(t *testing.T) {
	sink := parse(t, `node[amenity=cafe]way[highway];out;`)
	assert.Len(t, sink.Errors(), 1)
}

func TestWhitespaceOnlyInputIsValid(t *testing.T) {
	sink := parse(t, "   \n\t  // comment\n")
	assert.False(t, sink.HasErrors())
}

func TestEmptyInputIsValid(t *testing.T) {
	sink := parse(t, "")
	assert.False(t, sink.HasErrors())
}

func TestTrailingEmptyStatementsDoNotAddErrors(t *testing.T) {
	// Property: a valid program followed by ';' repeated N times stays
	// valid with the same error count (spec §8, property 6).
	base := parse(t, `node;out;`)
	repeated := parse(t, `node;out;`+";;;;;")
	assert.Equal(t, len(base.Errors()), len(repeated.Errors()))
	assert.False(t, repeated.HasErrors())
}

func TestRecursionOperatorsAreStandaloneStatements(t *testing.T) {
	sink := parse(t, `node;<;>;<<;>>;out;`)
	assert.False(t, sink.HasErrors())
}

func TestElseWithoutIfIsError(t *testing.T) {
	sink := parse(t, `else{node;};`)
	assert.True(t, sink.HasErrors())
}

func TestIfElseBlockParsesCleanly(t *testing.T) {
	sink := parse(t, `node;if(count(nodes)>0){out;}else{out;}`)
	assert.False(t, sink.HasErrors())
}

func TestMultipleDashesInShorthandIsError(t *testing.T) {
	sink := parse(t, `(node;-way;-rel;);out;`)
	assert.True(t, sink.HasErrors())
}

func TestMissingClosingBraceIsError(t *testing.T) {
	sink := parse(t, `union{node;`)
	assert.True(t, sink.HasErrors())
}

func TestSetReferenceAsStandaloneStatement(t *testing.T) {
	sink := parse(t, `node->.a;.a;out;`)
	assert.False(t, sink.HasErrors())
}

func TestDeeplyNestedUnionShorthandAtLimitSucceeds(t *testing.T) {
	src := ""
	for i := 0; i < maxNestingDepth; i++ {
		src += "("
	}
	src += "node;"
	for i := 0; i < maxNestingDepth; i++ {
		src += ");"
	}
	sink := parse(t, src)
	for _, e := range sink.Errors() {
		assert.NotContains(t, e.Message, "Nesting too deep")
	}
}

func TestNestingOneDeeperThanLimitFails(t *testing.T) {
	src := ""
	for i := 0; i < maxNestingDepth+1; i++ {
		src += "("
	}
	src += "node;"
	for i := 0; i < maxNestingDepth+1; i++ {
		src += ");"
	}
	sink := parse(t, src)
	found := false
	for _, e := range sink.Errors() {
		if containsSubstring(e.Message, "Nesting too deep") {
			found = true
		}
	}
	assert.True(t, found)
}
