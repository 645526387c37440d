package syntax

import "github.com/neknaj/NEPLg1/internal/report"

// Token is a single lexical token with its source span. Mirrors
// ComedicChimera-chai/bootstrap/syntax.Token's shape (Kind, Value,
// Span) but carries report.Span by value instead of *report.TextSpan.
type Token struct {
	Kind  Kind
	Value string
	Span  report.Span
}

// Kind enumerates the token kinds of the prefix language.
type Kind int

const (
	TokIdent Kind = iota
	TokIntLit
	TokFloatLit
	TokStringLit
	TokBoolLit
	TokIntrinsic // @name

	TokIf
	TokElseif
	TokElse
	TokThen
	TokWhile
	TokLoop
	TokMatch
	TokCase
	TokReturn
	TokBreak
	TokContinue
	TokLet
	TokMut
	TokHoist
	TokPub
	TokFn
	TokSet
	TokNamespace
	TokUse
	TokAs
	TokInclude
	TokImport
	TokEnum
	TokStruct
	TokWhen

	TokLParen
	TokRParen
	TokLBrace
	TokRBrace
	TokLBracket
	TokRBracket
	TokColon
	TokSemi
	TokComma
	TokPipe      // '>'
	TokBar       // '|'
	TokDot
	TokFatArrow  // '=>'
	TokArrow     // '->'
	TokPureArrow // '*>'
	TokAt

	TokIndent
	TokDedent
	TokNewline

	TokEOF
)

var keywords = map[string]Kind{
	"if": TokIf, "elseif": TokElseif, "else": TokElse, "then": TokThen,
	"while": TokWhile, "loop": TokLoop, "match": TokMatch, "case": TokCase,
	"return": TokReturn, "break": TokBreak, "continue": TokContinue,
	"let": TokLet, "mut": TokMut, "hoist": TokHoist, "pub": TokPub,
	"fn": TokFn, "set": TokSet, "namespace": TokNamespace, "use": TokUse,
	"as": TokAs, "include": TokInclude, "import": TokImport,
	"enum": TokEnum, "struct": TokStruct, "when": TokWhen,
	"true": TokBoolLit, "false": TokBoolLit,
}

// CanStartUnit reports whether a token of this kind can begin a
// `unit` per the grammar -- used by the parser to detect a hard
// separator while greedily consuming a prefix_sequence.
func (k Kind) CanStartUnit() bool {
	switch k {
	case TokRParen, TokRBrace, TokRBracket, TokSemi, TokDedent, TokEOF,
		TokComma, TokThen, TokElse, TokElseif, TokCase, TokFatArrow, TokPipe,
		TokLBrace, TokColon:
		return false
	default:
		return true
	}
}
