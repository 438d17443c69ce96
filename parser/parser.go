// Package parser implements a recursive-descent validator for
// OverpassQL. It never builds an AST: each grammar rule is a function
// that consumes tokens and reports diagnostics, returning nothing.
package parser

import (
	"github.com/opql-tools/opqlcheck/diag"
	"github.com/opql-tools/opqlcheck/token"
)

// maxNestingDepth bounds block-statement recursion so adversarial input
// cannot overflow the call stack; see spec §4.3 "Fatal conditions".
const maxNestingDepth = 256

// Parser holds the transient state of one Parse call: a cursor into
// the token list, the sink diagnostics are reported to, the current
// block-nesting depth, and a fatal flag set once that depth is
// exceeded.
type Parser struct {
	toks  []token.Token
	pos   int
	sink  *diag.Sink
	depth int
	fatal bool
}

// Parse validates tokens against the OverpassQL grammar, reporting
// every deviation to sink. tokens must end in exactly one EOF token,
// as produced by lexer.Tokenize.
func Parse(tokens []token.Token, sink *diag.Sink) {
	p := &Parser{toks: tokens, sink: sink}
	p.parseProgram()
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) peekKind(offset int) token.Kind {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return token.EOF
	}
	return p.toks[idx].Kind
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) atEnd() bool {
	return p.check(token.EOF)
}

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it has kind k, reporting an
// error naming what was expected otherwise. The second return value
// reports success.
func (p *Parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	t := p.cur()
	p.sink.Error(t.Line, t.Column, "expected "+what+", found "+describeToken(t))
	return t, false
}

func describeToken(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of input"
	}
	return "'" + t.Lexeme + "'"
}

// enterNesting accounts for one more level of block recursion,
// reporting and latching p.fatal once the implementation limit is
// exceeded. Callers must check the return value and bail out of the
// current construct without recursing further when it is false.
func (p *Parser) enterNesting(line, col int) bool {
	p.depth++
	if p.depth > maxNestingDepth {
		p.sink.Error(line, col, "Nesting too deep")
		p.fatal = true
		return false
	}
	return true
}

func (p *Parser) exitNesting() {
	p.depth--
}

// recover implements the per-statement error recovery policy from
// spec §4.3: advance past tokens, tracking bracket/paren/brace depth
// relative to the error point, until a ';' at depth zero (consumed) or
// a '}' at depth zero (left for the caller) or EOF.
func (p *Parser) recover() {
	if p.fatal {
		return
	}
	depth := 0
	for !p.atEnd() {
		switch p.cur().Kind {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET:
			if depth > 0 {
				depth--
			}
		case token.RBRACE:
			if depth == 0 {
				return
			}
			depth--
		case token.SEMICOLON:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

func (p *Parser) parseProgram() {
	if p.check(token.LBRACKET) {
		p.parseSettings()
	}
	for !p.atEnd() && !p.fatal {
		p.parseStatement()
	}
}
