package parser

import (
	"github.com/neknaj/NEPLg1/internal/ast"
	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/syntax"
)

// parseStmtList parses a `;`-separated list of statements up to stop,
// threading `let`'s implicit body (the rest of the list) through
// directly rather than splicing it in after the fact: a `let` item
// recurses into parseStmtList itself to consume its own body, so by
// the time control returns here there is at most one item left to
// collapse.
func (p *Parser) parseStmtList(stop func() bool) ast.Node {
	var items []ast.Node
	for !stop() && !p.at(syntax.TokEOF) {
		before := p.pos
		items = append(items, p.parseStmtItem(stop))
		if p.pos == before {
			// A malformed statement consumed nothing; recover to the
			// next `;`, `}`, or dedent rather than looping forever.
			p.sync(p.leadingCol[p.cur().Span.StartLine])
		}
		if p.at(syntax.TokSemi) {
			p.advance()
			continue
		}
		break
	}
	return collapseBlock(items)
}

func (p *Parser) parseStmtItem(stop func() bool) ast.Node {
	if p.at(syntax.TokLet) {
		return p.parseLet(stop)
	}
	return p.parseExpr()
}

func collapseBlock(items []ast.Node) ast.Node {
	if len(items) == 0 {
		return ast.NewBlock(report.Span{}, nil)
	}
	if len(items) == 1 {
		return items[0]
	}
	return ast.NewBlock(report.SpanOver(items[0].Span(), items[len(items)-1].Span()), items)
}

// atBlockEnd reports whether the current token can only end a
// statement list rather than start a new one -- the default stop
// condition for a `let` that appears outside an explicit `{}`/`:`
// scope (e.g. as a term inside a pipe chain).
func (p *Parser) atBlockEnd() bool {
	switch p.cur().Kind {
	case syntax.TokEOF, syntax.TokRBrace, syntax.TokRParen, syntax.TokRBracket,
		syntax.TokComma, syntax.TokThen, syntax.TokElse, syntax.TokElseif,
		syntax.TokCase, syntax.TokFatArrow, syntax.TokPipe:
		return true
	default:
		return false
	}
}

// parseLet is `let [mut] name init [;] body`, per the decision logged
// in DESIGN.md: init is exactly one atom (a compound initializer needs
// parens, matching the language's other single-argument positions such
// as `set`), and body is everything remaining in the enclosing scope --
// stop is the enclosing scope's own stop condition, so the recursion
// here naturally consumes the rest of that scope as Body.
func (p *Parser) parseLet(stop func() bool) ast.Node {
	start := p.advance() // 'let'
	mut := false
	if p.at(syntax.TokMut) {
		p.advance()
		mut = true
	}
	nameTok := p.expect(syntax.TokIdent, "identifier")
	init := p.parseAtom()
	if p.at(syntax.TokSemi) {
		p.advance()
	}
	body := p.parseStmtList(stop)
	return ast.NewLet(report.SpanOver(start.Span, body.Span()), nameTok.Value, mut, init, body)
}

// parseSet is `set name value`, value being a single atom for the same
// reason as `let`'s init.
func (p *Parser) parseSet() ast.Node {
	start := p.advance() // 'set'
	nameTok := p.expect(syntax.TokIdent, "identifier")
	val := p.parseAtom()
	return ast.NewSet(report.SpanOver(start.Span, val.Span()), nameTok.Value, val)
}

// parseScopeBody parses a construct's body: an explicit `{}` block, a
// `:`-offside scope, or (for the common one-liner case, e.g.
// `if lt 3 5 then 10 else 20`) a single pipe_chain expression.
func (p *Parser) parseScopeBody() ast.Node {
	if p.at(syntax.TokLBrace) {
		return p.parseBraceBlock()
	}
	if p.at(syntax.TokColon) {
		return p.parseColonBlock()
	}
	return p.parseExpr()
}

// parseColonBlock implements the offside rule (spec §4.2): the scope
// opened by `:` extends over every following line whose leading column
// is strictly greater than the `:` line's leading column -- not the
// colon's own column, since `:` commonly trails other tokens on its
// line (`if cond then: ...`).
func (p *Parser) parseColonBlock() ast.Node {
	colon := p.advance() // ':'
	headCol := p.leadingCol[colon.Span.StartLine]
	stop := func() bool {
		t := p.cur()
		if t.Kind == syntax.TokEOF {
			return true
		}
		if t.Span.StartLine == colon.Span.StartLine {
			return false
		}
		col, ok := p.leadingCol[t.Span.StartLine]
		if !ok {
			return false
		}
		return col <= headCol
	}
	p.pushOffside(headCol, colon.Span.StartLine)
	body := p.parseStmtList(stop)
	p.popOffside()
	return body
}

// parseIf is `if cond then body [elseif cond then body]* [else body]`.
// `else` is syntactically optional, per DESIGN.md divergence #4 --
// TypeError::MissingElse is raised later, at typecheck time, only when
// the branch's result type actually needs one.
func (p *Parser) parseIf() ast.Node {
	start := p.advance() // 'if'
	cond := p.parseExpr()
	p.expect(syntax.TokThen, "'then'")
	then := p.parseScopeBody()

	var elseifs []ast.ElseifArm
	for p.at(syntax.TokElseif) {
		p.advance()
		c := p.parseExpr()
		p.expect(syntax.TokThen, "'then'")
		t := p.parseScopeBody()
		elseifs = append(elseifs, ast.ElseifArm{Cond: c, Then: t})
	}

	end := then.Span()
	if n := len(elseifs); n > 0 {
		end = elseifs[n-1].Then.Span()
	}
	var els ast.Node
	if p.at(syntax.TokElse) {
		p.advance()
		els = p.parseScopeBody()
		end = els.Span()
	}
	return ast.NewIf(report.SpanOver(start.Span, end), cond, then, elseifs, els)
}

func (p *Parser) parseWhile() ast.Node {
	start := p.advance() // 'while'
	cond := p.parseExpr()
	body := p.parseScopeBody()
	return ast.NewWhile(report.SpanOver(start.Span, body.Span()), cond, body)
}

func (p *Parser) parseLoop() ast.Node {
	start := p.advance() // 'loop'
	body := p.parseScopeBody()
	return ast.NewLoop(report.SpanOver(start.Span, body.Span()), body)
}

func (p *Parser) parseReturn() ast.Node {
	start := p.advance() // 'return'
	var val ast.Node
	span := start.Span
	if p.canStartAtom() {
		val = p.parseExpr()
		span = report.SpanOver(start.Span, val.Span())
	}
	return ast.NewReturn(span, val)
}

func (p *Parser) parseBreak() ast.Node {
	start := p.advance() // 'break'
	var val ast.Node
	span := start.Span
	if p.canStartAtom() {
		val = p.parseExpr()
		span = report.SpanOver(start.Span, val.Span())
	}
	return ast.NewBreak(span, val)
}

// parseMatch is `match scrutinee { case pattern => body; ... }`.
func (p *Parser) parseMatch() ast.Node {
	start := p.advance() // 'match'
	scrutinee := p.parseExpr()
	p.expect(syntax.TokLBrace, "'{'")
	var arms []ast.MatchArm
	for p.at(syntax.TokCase) {
		p.advance()
		pat := p.parsePattern()
		p.expect(syntax.TokFatArrow, "'=>'")
		body := p.parseExpr()
		arms = append(arms, ast.MatchArm{Pattern: pat, Body: body})
		if p.at(syntax.TokSemi) {
			p.advance()
		}
	}
	end := p.expect(syntax.TokRBrace, "'}'")
	return ast.NewMatch(report.SpanOver(start.Span, end.Span), scrutinee, arms)
}

func (p *Parser) parsePattern() ast.Pattern {
	t := p.cur()
	switch t.Kind {
	case syntax.TokIdent:
		p.advance()
		if t.Value == "_" {
			return ast.NewWildcardPattern(t.Span)
		}
		return ast.NewIdentPattern(t.Span, t.Value)
	case syntax.TokIntLit:
		p.advance()
		return ast.NewLitPattern(t.Span, ast.NewIntLit(t.Span, parseIntLit(t.Value)))
	case syntax.TokFloatLit:
		p.advance()
		return ast.NewLitPattern(t.Span, ast.NewFloatLit(t.Span, parseFloatLit(t.Value)))
	case syntax.TokStringLit:
		p.advance()
		return ast.NewLitPattern(t.Span, ast.NewStringLit(t.Span, t.Value))
	case syntax.TokBoolLit:
		p.advance()
		return ast.NewLitPattern(t.Span, ast.NewBoolLit(t.Span, t.Value == "true"))
	default:
		p.errorf("expected pattern, got '%s'", t.Value)
		p.advance()
		return ast.NewWildcardPattern(t.Span)
	}
}

// parseFuncLit is `|[mut] type name, ...| (->|*>) resultType body`.
// Parameter order is type-then-name to match the annotation form
// (`i32 x`) used everywhere else a binding needs an explicit type.
func (p *Parser) parseFuncLit() ast.Node {
	start := p.advance() // '|'
	var params []ast.Param
	for !p.at(syntax.TokBar) && !p.at(syntax.TokEOF) {
		mut := false
		if p.at(syntax.TokMut) {
			p.advance()
			mut = true
		}
		te := p.parseTypeExpr()
		nameTok := p.expect(syntax.TokIdent, "parameter name")
		params = append(params, ast.Param{Type: te, Name: nameTok.Value, Mut: mut})
		if p.at(syntax.TokComma) {
			p.advance()
		}
	}
	p.expect(syntax.TokBar, "'|'")
	pure := p.parseArrow()
	result := p.parseTypeExpr()
	body := p.parseScopeBody()
	return ast.NewFuncLit(report.SpanOver(start.Span, body.Span()), params, pure, result, body)
}

// parseArrow consumes '->' or '*>', reporting whether the arrow was
// pure.
func (p *Parser) parseArrow() bool {
	if p.at(syntax.TokPureArrow) {
		p.advance()
		return true
	}
	p.expect(syntax.TokArrow, "'->' or '*>'")
	return false
}

// parseTypeExpr parses the textual type grammar: a plain name, a
// `Vec[T]` element type, or a parenthesised function type.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	t := p.cur()
	if t.Kind == syntax.TokLParen {
		return p.parseFuncTypeExpr()
	}
	if t.Kind == syntax.TokIdent && t.Value == "Vec" {
		p.advance()
		p.expect(syntax.TokLBracket, "'['")
		elem := p.parseTypeExpr()
		end := p.expect(syntax.TokRBracket, "']'")
		return ast.TypeExpr{Span: report.SpanOver(t.Span, end.Span), Name: "Vec", Elem: &elem}
	}
	p.advance()
	return ast.TypeExpr{Span: t.Span, Name: t.Value}
}

func (p *Parser) parseFuncTypeExpr() ast.TypeExpr {
	start := p.expect(syntax.TokLParen, "'('")
	var params []ast.TypeExpr
	for !p.at(syntax.TokRParen) && !p.at(syntax.TokEOF) {
		params = append(params, p.parseTypeExpr())
		if p.at(syntax.TokComma) {
			p.advance()
		}
	}
	p.expect(syntax.TokRParen, "')'")
	pure := p.parseArrow()
	result := p.parseTypeExpr()
	return ast.TypeExpr{
		Span:   report.SpanOver(start.Span, result.Span),
		Params: params,
		Result: &result,
		Pure:   pure,
		IsFunc: true,
	}
}
