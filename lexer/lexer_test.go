package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opql-tools/opqlcheck/diag"
	"github.com/opql-tools/opqlcheck/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestTokenizeAlwaysTerminatesWithEOF(t *testing.T) {
	for _, src := range []string{"", "   ", "node[amenity=cafe];", "???"} {
		toks := Tokenize(src, diag.New())
		assert.NotEmpty(t, toks)
		assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
		for _, tok := range toks[:len(toks)-1] {
			assert.NotEqual(t, token.EOF, tok.Kind)
		}
	}
}

func TestTokenizePositions(t *testing.T) {
	src := "node\n  [amenity];"
	toks := Tokenize(src, diag.New())

	assert.Equal(t, token.IDENTIFIER, toks[0].Kind)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[0].Column)

	assert.Equal(t, token.LBRACKET, toks[1].Kind)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[1].Column)
}

func TestScanIdentifierWithColon(t *testing.T) {
	toks := Tokenize("addr:city", diag.New())
	assert.Equal(t, token.IDENTIFIER, toks[0].Kind)
	assert.Equal(t, "addr:city", toks[0].Lexeme)
}

func TestScanNumberVariants(t *testing.T) {
	cases := map[string]string{
		"42":     "42",
		"3.14":   "3.14",
		"1e10":   "1e10",
		"1.5e-3": "1.5e-3",
		"1e+3":   "1e+3",
	}
	for src, want := range cases {
		toks := Tokenize(src, diag.New())
		assert.Equal(t, token.NUMBER, toks[0].Kind, src)
		assert.Equal(t, want, toks[0].Lexeme, src)
	}
}

func TestLeadingDotIsNotPartOfNumber(t *testing.T) {
	toks := Tokenize(".5", diag.New())
	assert.Equal(t, []token.Kind{token.DOT, token.NUMBER, token.EOF}, kinds(toks))
}

func TestNumberDoesNotConsumeTrailingJunkExponent(t *testing.T) {
	// "1e" with nothing digit-like after the 'e' is just "1" followed
	// by an identifier, not a malformed exponent.
	toks := Tokenize("1e x", diag.New())
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, "1", toks[0].Lexeme)
	assert.Equal(t, token.IDENTIFIER, toks[1].Kind)
	assert.Equal(t, "e", toks[1].Lexeme)
}

func TestScanStringEscapes(t *testing.T) {
	toks := Tokenize(`"a\nb\tc\\d\"e"`, diag.New())
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "a\nb\tc\\d\"e", toks[0].Lexeme)
}

func TestScanStringUnicodeEscape(t *testing.T) {
	toks := Tokenize("\"\\u00e9\"", diag.New())
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "é", toks[0].Lexeme)
}

func TestScanStringInvalidUnicodeEscapeFallsBackToLiteral(t *testing.T) {
	toks := Tokenize(`"\u12"`, diag.New())
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "\\u12", toks[0].Lexeme)
}

func TestUnterminatedStringReportsError(t *testing.T) {
	sink := diag.New()
	toks := Tokenize(`"unterminated`, sink)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.True(t, sink.HasErrors())
	assert.Contains(t, sink.Errors()[0].Message, "unterminated string literal")
}

func TestSingleAndDoubleQuotesBothWork(t *testing.T) {
	toks := Tokenize(`'abc'`, diag.New())
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "abc", toks[0].Lexeme)
}

func TestLineCommentSkipped(t *testing.T) {
	toks := Tokenize("node // a comment\nway", diag.New())
	assert.Equal(t, []token.Kind{token.IDENTIFIER, token.IDENTIFIER, token.EOF}, kinds(toks))
	assert.Equal(t, "node", toks[0].Lexeme)
	assert.Equal(t, "way", toks[1].Lexeme)
	assert.Equal(t, 2, toks[1].Line)
}

func TestBlockCommentSkipped(t *testing.T) {
	toks := Tokenize("node /* skip\nthis */ way", diag.New())
	assert.Equal(t, []token.Kind{token.IDENTIFIER, token.IDENTIFIER, token.EOF}, kinds(toks))
}

func TestUnterminatedBlockCommentReportsError(t *testing.T) {
	sink := diag.New()
	Tokenize("node /* never closes", sink)
	assert.True(t, sink.HasErrors())
	assert.Contains(t, sink.Errors()[0].Message, "unterminated block comment")
}

func TestBlockCommentClosingExactlyAtEOFIsTerminated(t *testing.T) {
	sink := diag.New()
	toks := Tokenize("/* x */", sink)
	assert.False(t, sink.HasErrors())
	assert.Equal(t, []token.Kind{token.EOF}, kinds(toks))
}

func TestDecimalNumberEndingAtEOFLexesAsOneToken(t *testing.T) {
	toks := Tokenize("1.5", diag.New())
	assert.Equal(t, []token.Kind{token.NUMBER, token.EOF}, kinds(toks))
	assert.Equal(t, "1.5", toks[0].Lexeme)
}

func TestTwoCharOperatorEndingAtEOFLexesAsOneToken(t *testing.T) {
	toks := Tokenize("a<<", diag.New())
	assert.Equal(t, []token.Kind{token.IDENTIFIER, token.RECURSE_UP_REL, token.EOF}, kinds(toks))
}

func TestCompositeOperatorsGreedyMatch(t *testing.T) {
	cases := map[string]token.Kind{
		"->": token.ARROW,
		"<<": token.RECURSE_UP_REL,
		">>": token.RECURSE_DOWN_REL,
		"<=": token.LESS_EQUAL,
		">=": token.GREATER_EQUAL,
		"==": token.EQUAL,
		"!=": token.NOT_EQUAL,
		"!~": token.NOT_TILDE,
	}
	for src, want := range cases {
		toks := Tokenize(src, diag.New())
		assert.Len(t, toks, 2, src)
		assert.Equal(t, want, toks[0].Kind, src)
		assert.Equal(t, src, toks[0].Lexeme, src)
	}
}

func TestBareAngleBracketsAreRecursionOperators(t *testing.T) {
	toks := Tokenize("< >", diag.New())
	assert.Equal(t, []token.Kind{token.RECURSE_UP, token.RECURSE_DOWN, token.EOF}, kinds(toks))
}

func TestDotThenIdentifierIsTwoTokens(t *testing.T) {
	toks := Tokenize(".foo", diag.New())
	assert.Equal(t, []token.Kind{token.DOT, token.IDENTIFIER, token.EOF}, kinds(toks))
}

func TestNestedTemplatePlaceholderIsSingleToken(t *testing.T) {
	toks := Tokenize("{{ {{x}} }}", diag.New())
	assert.Equal(t, []token.Kind{token.TEMPLATE, token.EOF}, kinds(toks))
	assert.Equal(t, "{{ {{x}} }}", toks[0].Lexeme)
}

func TestUnterminatedTemplateReportsError(t *testing.T) {
	sink := diag.New()
	toks := Tokenize("{{oops", sink)
	assert.Equal(t, token.TEMPLATE, toks[0].Kind)
	assert.True(t, sink.HasErrors())
	assert.Contains(t, sink.Errors()[0].Message, "unterminated template placeholder")
}

func TestSingleBraceIsNotATemplate(t *testing.T) {
	toks := Tokenize("{x}", diag.New())
	assert.Equal(t, []token.Kind{token.LBRACE, token.IDENTIFIER, token.RBRACE, token.EOF}, kinds(toks))
}

func TestUnknownCharacterProducesErrorTokenAndDiagnostic(t *testing.T) {
	sink := diag.New()
	toks := Tokenize("node ? way", sink)
	assert.Equal(t, []token.Kind{token.IDENTIFIER, token.ERROR, token.IDENTIFIER, token.EOF}, kinds(toks))
	assert.True(t, sink.HasErrors())
	assert.Contains(t, sink.Errors()[0].Message, "unexpected character")
}

func TestFullQueryTokenStream(t *testing.T) {
	// "around:100" lexes as a single IDENTIFIER: the identifier grammar
	// permits colons and digits to continue a name (addr:city, around:100
	// alike), leaving the split between keyword and value to the parser.
	src := `node[amenity="cafe"](around:100,1.0,2.0)->.a;out body;`
	toks := Tokenize(src, diag.New())
	want := []token.Kind{
		token.IDENTIFIER, token.LBRACKET, token.IDENTIFIER, token.ASSIGN, token.STRING, token.RBRACKET,
		token.LPAREN, token.IDENTIFIER, token.COMMA, token.NUMBER, token.COMMA, token.NUMBER, token.RPAREN,
		token.ARROW, token.DOT, token.IDENTIFIER, token.SEMICOLON,
		token.IDENTIFIER, token.IDENTIFIER, token.SEMICOLON,
		token.EOF,
	}
	assert.Equal(t, want, kinds(toks))

	assert.Equal(t, "around:100", toks[7].Lexeme)
}
