// Package parser turns a token stream into the ambiguous AST (internal/ast),
// per spec §4.2. It performs pipe desugaring and offside-scope parsing at
// parse time; it never decides prefix-sequence call structure -- that is
// internal/typing's job. Grounded structurally on
// ComedicChimera-chai/bootstrap/syntax.Lexer's cursor idiom
// (mark/eat/peek renamed to at/advance/expect here for a token-level
// cursor rather than a byte-level one) since Chai's own parser commits
// call structure immediately and so cannot be adapted directly.
package parser

import (
	"strconv"

	"github.com/neknaj/NEPLg1/internal/ast"
	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/syntax"
)

type Parser struct {
	toks       []*syntax.Token
	pos        int
	diags      *report.Accumulator
	leadingCol map[int]int // line -> column of its first token
	offside    []offsideScope
}

// offsideScope is one active `:`-scope's dedent boundary: any token
// starting a line (other than the `:` line itself) whose leading
// column is at or below col marks the boundary's end.
type offsideScope struct {
	col  int
	line int
}

func (p *Parser) pushOffside(col, line int) {
	p.offside = append(p.offside, offsideScope{col: col, line: line})
}

func (p *Parser) popOffside() {
	p.offside = p.offside[:len(p.offside)-1]
}

// atOffsideBoundary reports whether the current token starts a line
// dedented to or past the innermost active `:`-scope's head column.
// parseColonBlock's own stop() applies this rule between statements;
// this is the same rule applied *within* parseSeqOrAtom's greedy
// atom-consuming loop, which otherwise never re-consults the enclosing
// stop() and so would pull a dedented sibling statement's tokens into
// the sequence that was still open when the dedent happened.
func (p *Parser) atOffsideBoundary() bool {
	if len(p.offside) == 0 {
		return false
	}
	sc := p.offside[len(p.offside)-1]
	t := p.cur()
	if t.Span.StartLine == sc.line {
		return false
	}
	col, ok := p.leadingCol[t.Span.StartLine]
	if !ok {
		return false
	}
	return col <= sc.col
}

// Parse lexes and parses src in one call, returning the top-level
// expression node.
func Parse(src string, diags *report.Accumulator) ast.Node {
	lx := syntax.NewLexer(src, diags)
	toks := lx.Tokenize()
	p := &Parser{toks: toks, diags: diags, leadingCol: map[int]int{}}
	for _, t := range toks {
		if _, ok := p.leadingCol[t.Span.StartLine]; !ok {
			p.leadingCol[t.Span.StartLine] = t.Span.StartCol
		}
	}
	return p.parseProgram()
}

func (p *Parser) cur() *syntax.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *Parser) at(k syntax.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) advance() *syntax.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k syntax.Kind, what string) *syntax.Token {
	if !p.at(k) {
		p.errorf("expected %s, got '%s'", what, p.cur().Value)
		return p.cur()
	}
	return p.advance()
}

func (p *Parser) errorf(msg string, args ...interface{}) {
	p.diags.Raise(report.ParseError, p.cur().Span, msg, args...)
}

// sync recovers to the next statement boundary per spec §4.2/§7:
// `;`, `}`, or a dedent (a line whose leading column drops to or
// below minCol).
func (p *Parser) sync(minCol int) {
	for {
		t := p.cur()
		if t.Kind == syntax.TokEOF || t.Kind == syntax.TokSemi || t.Kind == syntax.TokRBrace {
			return
		}
		if p.leadingCol[t.Span.StartLine] <= minCol {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseProgram() ast.Node {
	return p.parseStmtList(func() bool { return p.at(syntax.TokEOF) })
}

func parseIntLit(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func parseFloatLit(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
