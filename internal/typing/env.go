package typing

import (
	"github.com/neknaj/NEPLg1/internal/hir"
	"github.com/neknaj/NEPLg1/internal/types"
)

// EnvEntry is a bound local's type and mutability, used by Let/Set and
// purity checking (resolveSet in internal/typing/control.go).
type EnvEntry struct {
	Type types.Type
	Mut  bool
	// OwnedByPureScope is true if the local was introduced in a pure function's own
	// body -- a pure function may mutate these but no others, per spec
	// §4.4.3.
	OwnedByPureScope bool
	// Value holds the literal hir.Closure this entry was let-bound to,
	// when statically known, so the resolver's candidate machinery (and
	// in turn codegen's call-site inlining) can reach the lambda's
	// params/body through a Var reference without re-deriving it. Nil
	// for non-function locals and for function-typed parameters, whose
	// callee is only known at runtime and so cannot be inlined.
	Value *hir.Expr
}

// Env is a lexical scope chain of bound locals.
type Env struct {
	vars   map[string]EnvEntry
	parent *Env
	// InPureFn is true while resolving the body of a pure (*>) function
	// literal.
	InPureFn bool
}

func NewEnv(parent *Env) *Env {
	return &Env{vars: map[string]EnvEntry{}, parent: parent, InPureFn: parent != nil && parent.InPureFn}
}

func (e *Env) Define(name string, entry EnvEntry) {
	e.vars[name] = entry
}

func (e *Env) Lookup(name string) (EnvEntry, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return EnvEntry{}, false
}
