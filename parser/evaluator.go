package parser

import "github.com/opql-tools/opqlcheck/token"

// parseEvaluator implements balanced-delimiter scanning for the
// expression inside if(...)/for(...)/retro(...)/compare(...): tokens
// are consumed until the matching ')', tracking nested '(' and '['.
// Template placeholders already lex as one atomic TEMPLATE token, so
// they need no separate depth tracking here. The closing ')' is left
// for the caller to consume. Content beyond balance is not further
// validated, per spec's explicit non-goal on evaluator semantics.
func (p *Parser) parseEvaluator() {
	depth := 0
	for {
		if p.atEnd() {
			t := p.cur()
			p.sink.Error(t.Line, t.Column, "unbalanced evaluator expression")
			return
		}
		switch p.cur().Kind {
		case token.LPAREN, token.LBRACKET:
			depth++
		case token.RPAREN:
			if depth == 0 {
				return
			}
			depth--
		case token.RBRACKET:
			if depth > 0 {
				depth--
			}
		}
		p.advance()
	}
}

// parseEvaluatorGatedBlock handles the shared "'(' evaluator ')' block"
// shape used by for/retro/compare. parseBlockStatement's 'if' case
// performs the same steps inline, followed by its optional 'else'.
func (p *Parser) parseEvaluatorGatedBlock(line, col int) {
	p.expect(token.LPAREN, "'('")
	p.parseEvaluator()
	p.expect(token.RPAREN, "')'")
	p.parseBlockBody(line, col)
}

// parseBareEvaluatorExpr consumes a make/convert tag_spec's value
// expression, which is not wrapped in its own parentheses: it runs
// until a top-level ',' or ';', tracking nested '(' and '[' the same
// way parseEvaluator does so a call like count(ways) isn't cut short.
func (p *Parser) parseBareEvaluatorExpr() {
	depth := 0
	for !p.atEnd() {
		switch p.cur().Kind {
		case token.LPAREN, token.LBRACKET:
			depth++
		case token.RPAREN, token.RBRACKET:
			if depth == 0 {
				return
			}
			depth--
		case token.COMMA, token.SEMICOLON:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}
