package parser

import "github.com/opql-tools/opqlcheck/token"

// outModifiers are the recognized 'out' statement modifiers. Ordering
// among them does not matter (spec §9 open question, resolved by
// following the source: the source accepts them in any order).
var outModifiers = map[string]bool{
	"ids": true, "skel": true, "body": true, "tags": true, "meta": true,
	"count": true, "geom": true, "bb": true, "center": true, "asc": true,
	"qt": true, "noids": true, "pivot": true,
}

func (p *Parser) parseStatement() {
	if p.fatal || p.atEnd() {
		return
	}
	t := p.cur()
	switch {
	case t.Kind == token.SEMICOLON:
		// An empty statement. Tolerated silently so that appending
		// ';' after a valid program never changes its validity.
		p.advance()
	case t.Kind == token.IDENTIFIER && isQueryTypeKeyword(t.Lexeme):
		p.parseQueryStatement()
	case t.Kind == token.IDENTIFIER && isBlockKeyword(t.Lexeme):
		p.parseBlockStatement()
	case t.Kind == token.IDENTIFIER && t.Lexeme == "out":
		p.parseOutStatement()
	case t.Kind == token.IDENTIFIER && isMakeKeyword(t.Lexeme):
		p.parseMakeStatement()
	case t.Kind == token.IDENTIFIER && t.Lexeme == "else":
		p.sink.Error(t.Line, t.Column, "'else' without preceding 'if'")
		p.advance()
		p.recover()
	case t.Kind == token.DOT:
		p.parseDotLedStatement()
	case t.Kind == token.RECURSE_UP || t.Kind == token.RECURSE_UP_REL ||
		t.Kind == token.RECURSE_DOWN || t.Kind == token.RECURSE_DOWN_REL:
		p.advance()
		p.expectSemicolon()
	case t.Kind == token.LPAREN:
		p.parseUnionDifferenceShorthand()
	case t.Kind == token.TEMPLATE:
		p.advance()
		p.parseOptionalAssignmentSuffix()
		p.expectSemicolon()
	case t.Kind == token.IDENTIFIER:
		p.sink.Error(t.Line, t.Column, "unknown query type: "+t.Lexeme)
		p.advance()
		p.recover()
	default:
		p.sink.Error(t.Line, t.Column, "unexpected token to start statement: "+describeToken(t))
		p.advance()
		p.recover()
	}
}

func (p *Parser) expectSemicolon() {
	if p.match(token.SEMICOLON) {
		return
	}
	t := p.cur()
	p.sink.Error(t.Line, t.Column, "missing ';'")
	p.recover()
}

func (p *Parser) parseFilterList() {
	for p.check(token.LBRACKET) || p.check(token.LPAREN) {
		p.parseFilter()
	}
}

// parseOptionalAssignmentSuffix consumes a trailing '->' '.' IDENT if
// present and reports whether one was found.
func (p *Parser) parseOptionalAssignmentSuffix() bool {
	if !p.check(token.ARROW) {
		return false
	}
	p.advance()
	p.expect(token.DOT, "'.'")
	p.expect(token.IDENTIFIER, "set name")
	return true
}

func (p *Parser) parseQueryStatement() {
	p.advance() // query type keyword
	p.parseFilterList()
	p.parseOptionalAssignmentSuffix()
	p.expectSemicolon()
}

// parseDotLedStatement handles a leading set reference, which is
// either a standalone statement ('.name;'), an input to a derived
// query statement carrying its own filters, or the left side of a
// bare assignment.
func (p *Parser) parseDotLedStatement() {
	p.advance() // '.'
	p.expect(token.IDENTIFIER, "set name")
	if p.check(token.LBRACKET) || p.check(token.LPAREN) {
		p.parseFilterList()
		p.parseOptionalAssignmentSuffix()
		p.expectSemicolon()
		return
	}
	p.parseOptionalAssignmentSuffix()
	p.expectSemicolon()
}

func (p *Parser) parseBlockStatement() {
	kw := p.advance()
	switch kw.Lexeme {
	case "union", "difference", "complete":
		p.parseBlockBody(kw.Line, kw.Column)
	case "if":
		p.expect(token.LPAREN, "'('")
		p.parseEvaluator()
		p.expect(token.RPAREN, "')'")
		p.parseBlockBody(kw.Line, kw.Column)
		if p.check(token.IDENTIFIER) && p.cur().Lexeme == "else" {
			elseTok := p.advance()
			p.parseBlockBody(elseTok.Line, elseTok.Column)
		}
	case "foreach":
		if p.check(token.DOT) {
			p.advance()
			p.expect(token.IDENTIFIER, "set name")
		}
		p.parseBlockBody(kw.Line, kw.Column)
	case "for", "retro", "compare":
		p.parseEvaluatorGatedBlock(kw.Line, kw.Column)
	}
}

// parseBlockBody handles the shared "'{' statement* '}'" shape used by
// every block statement.
func (p *Parser) parseBlockBody(line, col int) {
	if !p.enterNesting(line, col) {
		return
	}
	defer p.exitNesting()
	if _, ok := p.expect(token.LBRACE, "'{'"); !ok {
		p.recover()
		return
	}
	for !p.check(token.RBRACE) && !p.atEnd() && !p.fatal {
		p.parseStatement()
	}
	if !p.match(token.RBRACE) {
		t := p.cur()
		p.sink.Error(t.Line, t.Column, "missing '}' to close block")
	}
}

// parseUnionDifferenceShorthand handles '(' stmt_list ')' ';' and its
// difference variant, which marks exactly one operand with a leading
// '-'. A second '-' is an error but parsing continues.
func (p *Parser) parseUnionDifferenceShorthand() {
	open := p.cur()
	if !p.enterNesting(open.Line, open.Column) {
		return
	}
	defer p.exitNesting()
	p.advance() // '('
	dashSeen := false
	for !p.check(token.RPAREN) && !p.atEnd() && !p.fatal {
		if p.check(token.MINUS) {
			if dashSeen {
				t := p.cur()
				p.sink.Error(t.Line, t.Column, "multiple '-' operators in union/difference shorthand")
			}
			dashSeen = true
			p.advance()
			continue
		}
		p.parseStatement()
	}
	if !p.match(token.RPAREN) {
		t := p.cur()
		p.sink.Error(t.Line, t.Column, "missing ')' to close union/difference shorthand")
	}
	p.parseOptionalAssignmentSuffix()
	p.expectSemicolon()
}

func (p *Parser) parseOutStatement() {
	p.advance() // 'out'
	for p.check(token.IDENTIFIER) && outModifiers[p.cur().Lexeme] {
		p.advance()
	}
	if p.check(token.NUMBER) {
		p.advance()
	}
	if p.check(token.LPAREN) {
		p.advance()
		for !p.check(token.RPAREN) && !p.atEnd() {
			p.advance()
		}
		p.expect(token.RPAREN, "')'")
	}
	p.expectSemicolon()
}

// parseMakeStatement handles both 'make' and 'convert', which share
// the same shape: a target name, an optional back-reference suffix
// used inside for/foreach bodies, and an optional comma-separated
// tag_spec list.
func (p *Parser) parseMakeStatement() {
	p.advance() // 'make' or 'convert'
	p.expect(token.IDENTIFIER, "target set name")
	p.consumeOptionalBackref()
	if p.match(token.COMMA) {
		p.parseTagSpecList()
	}
	p.parseOptionalAssignmentSuffix()
	p.expectSemicolon()
}

// consumeOptionalBackref accepts '\' NUMBER as a single back-reference
// token, per spec §4.3's "make statement" note.
func (p *Parser) consumeOptionalBackref() bool {
	if p.check(token.BACKSLASH) && p.peekKind(1) == token.NUMBER {
		p.advance()
		p.advance()
		return true
	}
	return false
}

func (p *Parser) parseTagSpecList() {
	for {
		p.parseTagSpec()
		if !p.match(token.COMMA) {
			return
		}
	}
}

func (p *Parser) parseTagSpec() {
	p.expect(token.IDENTIFIER, "tag name")
	p.expect(token.ASSIGN, "'='")
	p.parseBareEvaluatorExpr()
}
