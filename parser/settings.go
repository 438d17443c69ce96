package parser

import (
	"strings"

	"github.com/opql-tools/opqlcheck/token"
)

// outFormats are the recognized values of the "out" settings key.
// Anything else is accepted but earns a warning, per spec §4.3.
var outFormats = map[string]bool{
	"json":   true,
	"xml":    true,
	"csv":    true,
	"custom": true,
	"popup":  true,
}

// parseSettings handles the optional settings header: one or more
// bracketed setting groups followed by a single terminating ';'.
func (p *Parser) parseSettings() {
	for p.check(token.LBRACKET) {
		p.parseSettingGroup()
	}
	p.expectSemicolon()
}

func (p *Parser) parseSettingGroup() {
	p.advance() // '['
	p.parseSettingItem()
	if !p.match(token.RBRACKET) {
		t := p.cur()
		p.sink.Error(t.Line, t.Column, "missing ']' in settings header")
		p.recover()
	}
}

// parseSettingItem handles one "key:value" pair. The identifier
// grammar (§4.2) treats ':' as ident-continue, so the lexer usually
// fuses the key, its colon, and as much of the value as still looks
// like an identifier into one IDENTIFIER token ("out:json",
// "timeout:25", "bbox:52") the same way filters.go's isTemporalTagKey
// already has to unmerge "changed:". splitFusedSettingKey recovers the
// key and whatever value prefix rode along with it; a bare key with no
// fused colon (e.g. a spaced "out : json") falls back to consuming a
// real COLON token.
func (p *Parser) parseSettingItem() {
	keyTok, ok := p.expect(token.IDENTIFIER, "setting key")
	if !ok {
		return
	}
	key, fused, hasColon := splitFusedSettingKey(keyTok.Lexeme)
	if !isSettingKey(key) {
		p.sink.Warning(keyTok.Line, keyTok.Column, "Unknown setting: "+key)
	}
	if !hasColon {
		if _, ok := p.expect(token.COLON, "':' after setting key"); !ok {
			return
		}
	}

	p.parseSettingValue(key, fused, keyTok)
	for p.match(token.COMMA) {
		p.parseSettingValue(key, "", token.Token{})
	}
}

// splitFusedSettingKey splits a setting key identifier on its first
// ':'. hasColon reports whether the lexeme carried a colon at all;
// fused is whatever value text followed it inside the same token
// (empty when the colon sat at the very end, as in "changed:"-style
// keys, or when there was no fused colon at all).
func splitFusedSettingKey(lexeme string) (key, fused string, hasColon bool) {
	idx := strings.IndexByte(lexeme, ':')
	if idx < 0 {
		return lexeme, "", false
	}
	return lexeme[:idx], lexeme[idx+1:], true
}

// parseSettingValue consumes one setting value. fused, when non-empty,
// is a value prefix the lexer already swallowed into the preceding key
// token (see parseSettingItem); keyTok carries its position for
// diagnostics. Values accepted generically beyond that prefix are
// whatever NUMBER/DOT/IDENTIFIER tokens continue it, mirroring the
// token-bag treatment filters.go gives paren filters - deep semantic
// validation of setting values is a declared non-goal.
func (p *Parser) parseSettingValue(key, fused string, keyTok token.Token) {
	if key == "out" && fused == "csv" && p.check(token.LPAREN) {
		p.parseCSVOutValue()
		return
	}
	if fused != "" {
		if key == "out" && !outFormats[fused] {
			p.sink.Warning(keyTok.Line, keyTok.Column, "Unknown output format: "+fused)
		}
		for p.check(token.DOT) || p.check(token.NUMBER) || p.check(token.IDENTIFIER) {
			p.advance()
		}
		return
	}

	switch {
	case key == "out" && p.check(token.IDENTIFIER) && p.cur().Lexeme == "csv":
		p.advance()
		p.parseCSVOutValue()
	case p.check(token.STRING), p.check(token.NUMBER):
		p.advance()
	case p.check(token.IDENTIFIER):
		valTok := p.advance()
		if key == "out" && !outFormats[valTok.Lexeme] {
			p.sink.Warning(valTok.Line, valTok.Column, "Unknown output format: "+valTok.Lexeme)
		}
	case p.check(token.MINUS), p.check(token.PLUS):
		p.advance()
		p.expect(token.NUMBER, "number after sign")
	default:
		t := p.cur()
		p.sink.Error(t.Line, t.Column, "expected setting value, found "+describeToken(t))
	}
}

// parseCSVOutValue handles the structured csv(key_list; header?; separator?)
// value that "out" may take in place of a plain format identifier. The
// leading "csv" identifier has already been consumed by the caller,
// whether as its own token or fused into the preceding key token.
func (p *Parser) parseCSVOutValue() {
	if _, ok := p.expect(token.LPAREN, "'(' after csv"); !ok {
		return
	}
	p.parseCSVKeyList()
	if p.match(token.SEMICOLON) {
		if p.check(token.STRING) || p.check(token.IDENTIFIER) {
			p.advance() // header-row flag
		}
		if p.match(token.SEMICOLON) {
			p.expect(token.STRING, "separator string")
		}
	}
	p.expect(token.RPAREN, "')' to close csv(...)")
}

func (p *Parser) parseCSVKeyList() {
	for p.check(token.IDENTIFIER) {
		p.advance()
		if !p.match(token.COMMA) {
			return
		}
	}
}
