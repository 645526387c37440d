package parser

import (
	"github.com/neknaj/NEPLg1/internal/ast"
	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/syntax"
)

// parseExpr = pipe_chain, per spec §4.2.
func (p *Parser) parseExpr() ast.Node {
	return p.parsePipeChain()
}

// parsePipeChain implements `unit ('>' unit)*`, left-associative, with
// pipe desugaring performed here at parse time (spec §4.2), diverging
// from original_source/nepl-core/src/parser.rs which only builds an
// undesugared Pipe node -- see DESIGN.md divergence #3.
func (p *Parser) parsePipeChain() ast.Node {
	left := p.parseSeqOrAtom()
	for p.at(syntax.TokPipe) {
		p.advance()
		right := p.parseSeqOrAtom()
		left = desugarPipe(left, right)
	}
	return left
}

// desugarPipe rewrites `L > R`: if R is a sequence `f a1..ak`, the
// result is `f L a1..ak`; if R is a bare term, the result is `R L`.
func desugarPipe(l, r ast.Node) ast.Node {
	span := report.SpanOver(l.Span(), r.Span())
	if seq, ok := r.(*ast.Seq); ok && len(seq.Terms) > 0 {
		terms := make([]ast.Node, 0, len(seq.Terms)+1)
		terms = append(terms, seq.Terms[0], l)
		terms = append(terms, seq.Terms[1:]...)
		return ast.NewSeq(span, terms)
	}
	return ast.NewSeq(span, []ast.Node{r, l})
}

// parseSeqOrAtom implements `prefix_sequence`: greedily consume atoms
// until a hard separator -- which includes a dedent back out of the
// innermost active `:`-offside scope, not just an explicit `;`/`}`.
// parseStmtList's stop() only runs between statement items, so without
// this check here a sequence that is still open when a dedented
// sibling statement begins would swallow that statement's tokens as
// more of its own terms.
func (p *Parser) parseSeqOrAtom() ast.Node {
	first := p.parseAtom()
	terms := []ast.Node{first}
	for p.cur().Kind.CanStartUnit() && p.canStartAtom() && !p.atOffsideBoundary() {
		terms = append(terms, p.parseAtom())
	}
	if len(terms) == 1 {
		return first
	}
	return ast.NewSeq(report.SpanOver(terms[0].Span(), terms[len(terms)-1].Span()), terms)
}

func (p *Parser) canStartAtom() bool {
	switch p.cur().Kind {
	case syntax.TokIntLit, syntax.TokFloatLit, syntax.TokStringLit, syntax.TokBoolLit,
		syntax.TokIdent, syntax.TokIntrinsic, syntax.TokLParen, syntax.TokLBracket,
		syntax.TokBar, syntax.TokIf, syntax.TokWhile, syntax.TokLoop, syntax.TokMatch,
		syntax.TokReturn, syntax.TokBreak, syntax.TokContinue, syntax.TokLet, syntax.TokSet,
		syntax.TokLBrace, syntax.TokColon:
		return true
	default:
		return false
	}
}

var typeNames = map[string]bool{
	"i32": true, "i64": true, "f32": true, "f64": true, "Int": true, "Float": true,
	"Bool": true, "Unit": true, "unit": true, "Never": true, "String": true, "Vec": true,
}

func (p *Parser) parseAtom() ast.Node {
	t := p.cur()
	switch t.Kind {
	case syntax.TokIntLit:
		p.advance()
		return ast.NewIntLit(t.Span, parseIntLit(t.Value))
	case syntax.TokFloatLit:
		p.advance()
		return ast.NewFloatLit(t.Span, parseFloatLit(t.Value))
	case syntax.TokStringLit:
		p.advance()
		return ast.NewStringLit(t.Span, t.Value)
	case syntax.TokBoolLit:
		p.advance()
		return ast.NewBoolLit(t.Span, t.Value == "true")
	case syntax.TokLBracket:
		return p.parseVecLit()
	case syntax.TokLParen:
		p.advance()
		inner := p.parseExpr()
		end := p.expect(syntax.TokRParen, "')'")
		return ast.NewGroup(report.SpanOver(t.Span, end.Span), inner)
	case syntax.TokLBrace:
		return p.parseBraceBlock()
	case syntax.TokColon:
		return p.parseColonBlock()
	case syntax.TokBar:
		return p.parseFuncLit()
	case syntax.TokIntrinsic:
		p.advance()
		return ast.NewIntrinsic(t.Span, t.Value)
	case syntax.TokIf:
		return p.parseIf()
	case syntax.TokWhile:
		return p.parseWhile()
	case syntax.TokLoop:
		return p.parseLoop()
	case syntax.TokMatch:
		return p.parseMatch()
	case syntax.TokReturn:
		return p.parseReturn()
	case syntax.TokBreak:
		return p.parseBreak()
	case syntax.TokContinue:
		p.advance()
		return ast.NewContinue(t.Span)
	case syntax.TokLet:
		return p.parseLet(func() bool { return p.atBlockEnd() })
	case syntax.TokSet:
		return p.parseSet()
	case syntax.TokIdent:
		if typeNames[t.Value] {
			save := p.pos
			te := p.parseTypeExpr()
			if p.canStartAtom() {
				inner := p.parseAtom()
				return ast.NewTypeAnnotation(report.SpanOver(t.Span, inner.Span()), te, inner)
			}
			p.pos = save
		}
		p.advance()
		return ast.NewIdent(t.Span, t.Value)
	default:
		p.errorf("unexpected token '%s'", t.Value)
		p.advance()
		return ast.NewIdent(t.Span, "")
	}
}

func (p *Parser) parseVecLit() ast.Node {
	start := p.expect(syntax.TokLBracket, "'['")
	var elems []ast.Node
	for !p.at(syntax.TokRBracket) && !p.at(syntax.TokEOF) {
		elems = append(elems, p.parseAtom())
	}
	end := p.expect(syntax.TokRBracket, "']'")
	return ast.NewVecLit(report.SpanOver(start.Span, end.Span), elems)
}

func (p *Parser) parseBraceBlock() ast.Node {
	start := p.expect(syntax.TokLBrace, "'{'")
	body := p.parseStmtList(func() bool { return p.at(syntax.TokRBrace) })
	end := p.expect(syntax.TokRBrace, "'}'")
	_ = start
	return withSpan(body, report.SpanOver(start.Span, end.Span))
}

// withSpan rewraps a Block to carry the enclosing braces' span when the
// body is itself already a Block (cosmetic only; falls back to the
// body unchanged otherwise).
func withSpan(n ast.Node, span report.Span) ast.Node {
	if b, ok := n.(*ast.Block); ok {
		return ast.NewBlock(span, b.Exprs)
	}
	return ast.NewBlock(span, []ast.Node{n})
}
