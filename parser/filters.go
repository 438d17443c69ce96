package parser

import (
	"regexp"
	"strings"

	"github.com/opql-tools/opqlcheck/token"
)

// parseFilter consumes one bracketed or parenthesized filter attached
// to a query statement, requiring the matching closer.
func (p *Parser) parseFilter() {
	switch {
	case p.check(token.LBRACKET):
		p.advance()
		p.parseTagFilter()
		if !p.match(token.RBRACKET) {
			t := p.cur()
			p.sink.Error(t.Line, t.Column, "missing ']' to close filter")
			p.recover()
		}
	case p.check(token.LPAREN):
		p.advance()
		p.parseParenFilter()
		if !p.match(token.RPAREN) {
			t := p.cur()
			p.sink.Error(t.Line, t.Column, "missing ')' to close filter")
			p.recover()
		}
	}
}

func (p *Parser) validateRegex(pattern string, line, col int) {
	if _, err := regexp.Compile(pattern); err != nil {
		p.sink.Error(line, col, "Invalid regex: "+err.Error())
	}
}

// parseTagFilter validates the content of a '[' ... ']' filter: a bare
// or negated key, a key/operator/value triple, or the compound
// '~' STRING '~' STRING key-and-value-regex form.
func (p *Parser) parseTagFilter() {
	switch {
	case p.check(token.BANG):
		p.advance()
		p.expectKeyToken()
	case p.check(token.TILDE):
		p.advance()
		p.parseRegexStringOperand()
		p.expect(token.TILDE, "'~'")
		p.parseRegexStringOperand()
	case p.check(token.IDENTIFIER) && isTemporalTagKey(p.cur().Lexeme):
		p.advance()
		p.parseTemporalFilterValue()
	case p.check(token.IDENTIFIER), p.check(token.STRING):
		p.advance()
		switch {
		case p.check(token.ASSIGN), p.check(token.NOT_EQUAL):
			p.advance()
			p.parseTagValue()
		case p.check(token.TILDE), p.check(token.NOT_TILDE):
			p.advance()
			p.parseRegexStringOperand()
		}
	default:
		t := p.cur()
		p.sink.Error(t.Line, t.Column, "expected tag filter, found "+describeToken(t))
	}
}

func (p *Parser) expectKeyToken() {
	if p.check(token.IDENTIFIER) || p.check(token.STRING) {
		p.advance()
		return
	}
	t := p.cur()
	p.sink.Error(t.Line, t.Column, "expected tag key, found "+describeToken(t))
}

// isTemporalTagKey reports whether lexeme is the lexer's merged form
// of the "changed:" temporal filter keyword. The identifier grammar
// swallows a trailing ':' when what follows it isn't itself
// ident-continue, so "changed:" arrives as one IDENTIFIER token ending
// in ':' while "addr:city" arrives as one token with no trailing ':'.
func isTemporalTagKey(lexeme string) bool {
	return strings.HasSuffix(lexeme, ":") && strings.TrimSuffix(lexeme, ":") == "changed"
}

func (p *Parser) parseTemporalFilterValue() {
	p.parseTagValue()
	if p.match(token.COMMA) {
		p.parseTagValue()
	}
}

func (p *Parser) parseTagValue() {
	switch {
	case p.check(token.STRING), p.check(token.IDENTIFIER), p.check(token.NUMBER):
		p.advance()
	default:
		t := p.cur()
		p.sink.Error(t.Line, t.Column, "expected tag value, found "+describeToken(t))
	}
}

func (p *Parser) parseRegexStringOperand() {
	t, ok := p.expect(token.STRING, "regex pattern string")
	if ok {
		p.validateRegex(t.Lexeme, t.Line, t.Column)
	}
}

// parenFilterTokens are the token kinds a '(' ... ')' spatial/temporal/
// identity filter may be built from. Grammar §4.3 enumerates bbox,
// around, poly, id, area, member, date, user, and pivot filters as
// separate paren_filter alternatives, but they share one lexical
// shape: a leading keyword (sometimes fused with its first value by
// the identifier grammar, e.g. "around:500"), then a comma-separated
// run of identifiers, strings, numbers, signed numbers, and set
// references. Recognizing that shared shape structurally, rather than
// one bespoke parser per alternative, covers every form without
// guessing at semantics the core has no business validating (spec's
// non-goal on deep filter-value validation).
func (p *Parser) parseParenFilter() {
	if p.check(token.RPAREN) {
		t := p.cur()
		p.sink.Error(t.Line, t.Column, "empty filter")
		return
	}
	for !p.check(token.RPAREN) && !p.atEnd() {
		switch p.cur().Kind {
		case token.DOT, token.IDENTIFIER, token.STRING, token.NUMBER,
			token.COMMA, token.COLON, token.MINUS, token.PLUS,
			token.ASSIGN, token.NOT_EQUAL, token.TILDE, token.NOT_TILDE:
			p.advance()
		default:
			t := p.cur()
			p.sink.Error(t.Line, t.Column, "unexpected token in filter: "+describeToken(t))
			p.skipToMatchingParen()
			return
		}
	}
}

func (p *Parser) skipToMatchingParen() {
	depth := 0
	for !p.atEnd() {
		switch p.cur().Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}
