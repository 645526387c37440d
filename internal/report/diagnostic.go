package report

import "fmt"

// Kind enumerates the error taxonomy. One Kind per diagnostic; the
// variant-style sub-kinds (ResolveError::NoMatch, etc.) are flattened
// into distinct Kind values rather than a nested tag, since Go has no
// native sum type and a flat enum keeps switch statements exhaustive.
type Kind int

const (
	LexError Kind = iota
	ParseError

	ResolveNoMatch
	ResolveAmbiguous
	ResolveUnclosedFrame
	ResolveExcessArguments
	ResolveNotAFunction

	TypeMismatch
	TypeNeverInNonBottomPosition
	TypeMissingElse

	PurityError

	CompileDivisionByZero
	CompileMainNotI32
	CompileUnsupportedConstruct

	IoError
	StdlibMissing
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case ParseError:
		return "ParseError"
	case ResolveNoMatch:
		return "ResolveError::NoMatch"
	case ResolveAmbiguous:
		return "ResolveError::Ambiguous"
	case ResolveUnclosedFrame:
		return "ResolveError::UnclosedFrame"
	case ResolveExcessArguments:
		return "ResolveError::ExcessArguments"
	case ResolveNotAFunction:
		return "ResolveError::NotAFunction"
	case TypeMismatch:
		return "TypeError::Mismatch"
	case TypeNeverInNonBottomPosition:
		return "TypeError::NeverInNonBottomPosition"
	case TypeMissingElse:
		return "TypeError::MissingElse"
	case PurityError:
		return "PurityError"
	case CompileDivisionByZero:
		return "CompileError::DivisionByZero"
	case CompileMainNotI32:
		return "CompileError::MainNotI32"
	case CompileUnsupportedConstruct:
		return "CompileError::UnsupportedConstruct"
	case IoError:
		return "IoError"
	case StdlibMissing:
		return "StdlibMissing"
	default:
		return "UnknownError"
	}
}

// Diagnostic is a single user-visible compilation message: span + kind
// + message + the candidate/actual type lists where applicable. No
// diagnostic ever carries a stack trace.
type Diagnostic struct {
	Kind       Kind
	Span       Span
	Message    string
	Candidates []string
	Actual     []string
	Warning    bool
}

func (d *Diagnostic) Error() string {
	return d.Message
}

func newDiag(kind Kind, span Span, msg string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Span: span, Message: fmt.Sprintf(msg, args...)}
}
