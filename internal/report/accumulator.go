package report

// Accumulator collects diagnostics produced during a single compile
// call. Unlike the teacher's package-level singleton Reporter
// (bootstrap/report.Reporter, guarded by a shared *sync.Mutex and
// exited on fatal error), an Accumulator is owned by the caller and
// carries no global state, so that internal/compiler.Compile remains a
// pure, concurrency-safe function over its inputs.
type Accumulator struct {
	diags []*Diagnostic
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Raise appends a new error diagnostic and returns it for chaining.
func (a *Accumulator) Raise(kind Kind, span Span, msg string, args ...interface{}) *Diagnostic {
	d := newDiag(kind, span, msg, args...)
	a.diags = append(a.diags, d)
	return d
}

// Warn appends a new warning diagnostic.
func (a *Accumulator) Warn(kind Kind, span Span, msg string, args ...interface{}) *Diagnostic {
	d := newDiag(kind, span, msg, args...)
	d.Warning = true
	a.diags = append(a.diags, d)
	return d
}

// HasErrors reports whether any non-warning diagnostic was raised.
func (a *Accumulator) HasErrors() bool {
	for _, d := range a.diags {
		if !d.Warning {
			return true
		}
	}
	return false
}

// Diagnostics returns every diagnostic raised so far, in the order
// raised. Every pipeline stage visits source left-to-right, so
// insertion order already satisfies spec's source-lexical ordering
// guarantee.
func (a *Accumulator) Diagnostics() []*Diagnostic {
	return a.diags
}

// ICE signals an internal compiler error: a condition that should
// never occur given well-formed input. Grounded on
// bootstrap/report.ReportICE, but raised as a panic value rather than
// an immediate os.Exit; CatchErrors re-raises it unchanged, so it
// propagates to the caller of the stage.
type ICE struct {
	Message string
}

func (e *ICE) Error() string {
	return "internal compiler error: " + e.Message
}

// CatchErrors recovers a panic raised in a pipeline stage: a panicked
// *Diagnostic is appended to the accumulator and any other error value
// becomes an IoError diagnostic at span. An *ICE, or a panic value
// that is not an error, is re-panicked. Mirrors
// bootstrap/report.CatchErrors; must always be deferred.
func (a *Accumulator) CatchErrors(span Span) {
	if x := recover(); x != nil {
		if ice, ok := x.(*ICE); ok {
			panic(ice)
		} else if d, ok := x.(*Diagnostic); ok {
			a.diags = append(a.diags, d)
		} else if err, ok := x.(error); ok {
			a.Raise(IoError, span, "%s", err)
		} else {
			panic(x)
		}
	}
}
