// Package typing holds the process-wide overload/intrinsic tables
// (internal/types.Type-based builtin signatures) and the frame-stack
// resolver that turns an ambiguous AST into typed HIR. The resolver is
// the highest-budget component named by spec §4.4 -- no working
// reference implementation exists anywhere in the retrieved sources
// (original_source/nepl-core/src/typecheck.rs::check_pstyle_seq is an
// explicit stub), so it is built directly from spec's prose, using
// ComedicChimera-chai/bootstrap/typing/overloads.go's
// "speculatively unify, roll back on failure, keep survivors" pruning
// idiom as the mechanical pattern.
package typing

import "github.com/neknaj/NEPLg1/internal/types"

// Overload is one signature in a name's overload list, mirroring
// spec §3's "Overload entry" data model exactly.
type Overload struct {
	Params []types.Type
	Result types.Type
	Arrow  types.ArrowKind
	Name   string
}

// Table maps a builtin/intrinsic name to its (immutable, append-only
// at init time) overload list, grounded on
// bootstrap/typing/overloads.go's operatorOverloadSet's "grouped by
// name" shape but as a plain map since our overload sets never need
// the Chai-specific package-qualification machinery.
type Table map[string][]Overload

func unary(name string, t types.Type) Overload {
	return Overload{Params: []types.Type{t}, Result: t, Arrow: types.Pure, Name: name}
}

func binary(name string, t, result types.Type) Overload {
	return Overload{Params: []types.Type{t, t}, Result: result, Arrow: types.Pure, Name: name}
}

// numericTypes is the set of types arithmetic/bitwise operators
// overload over.
var numericTypes = []types.Type{types.TyI32, types.TyI64, types.TyF32, types.TyF64}
var integerTypes = []types.Type{types.TyI32, types.TyI64}

// Builtins is the process-wide, immutable table built once at package
// init per spec §5 ("the only shared state is that built-in table,
// initialised once at process start and never mutated thereafter").
var Builtins = buildBuiltins()

func buildBuiltins() Table {
	t := Table{}
	add := func(name string, ov Overload) { t[name] = append(t[name], ov) }

	for _, name := range []string{"add", "sub", "mul", "div", "mod"} {
		for _, ty := range numericTypes {
			add(name, binary(name, ty, ty))
		}
	}
	for _, ty := range numericTypes {
		add("pow", binary("pow", ty, ty))
		add("neg", unary("neg", ty))
	}

	for _, name := range []string{"lt", "le", "eq", "ne", "gt", "ge"} {
		for _, ty := range numericTypes {
			add(name, binary(name, ty, types.TyBool))
		}
	}

	for _, name := range []string{"and", "or", "xor"} {
		add(name, binary(name, types.TyBool, types.TyBool))
	}
	add("not", unary("not", types.TyBool))

	for _, name := range []string{"bit_and", "bit_or", "bit_xor", "bit_shl", "bit_shr"} {
		for _, ty := range integerTypes {
			add(name, binary(name, ty, ty))
		}
	}
	for _, ty := range integerTypes {
		add("bit_not", unary("bit_not", ty))
	}

	for _, name := range []string{"permutation", "combination", "gcd", "lcm"} {
		for _, ty := range integerTypes {
			add(name, binary(name, ty, ty))
		}
	}
	for _, ty := range integerTypes {
		add("factorial", unary("factorial", ty))
	}

	// string/vector operators
	add("concat", Overload{Params: []types.Type{types.TyString, types.TyString}, Result: types.TyString, Arrow: types.Impure, Name: "concat"})
	add("len", Overload{Params: []types.Type{types.TyString}, Result: types.TyI32, Arrow: types.Impure, Name: "len"})

	for _, elem := range numericTypes {
		vt := types.Vec(elem)
		add("push", Overload{Params: []types.Type{vt, elem}, Result: vt, Arrow: types.Impure, Name: "push"})
		add("pop", Overload{Params: []types.Type{vt}, Result: vt, Arrow: types.Impure, Name: "pop"})
		add("get", Overload{Params: []types.Type{vt, types.TyI32}, Result: elem, Arrow: types.Impure, Name: "get"})
		add("len", Overload{Params: []types.Type{vt}, Result: types.TyI32, Arrow: types.Impure, Name: "len"})
	}

	// convert.nepl's underlying builtins
	add("to_string", Overload{Params: []types.Type{types.TyI32}, Result: types.TyString, Arrow: types.Impure, Name: "to_string"})
	add("parse_i32", Overload{Params: []types.Type{types.TyString}, Result: types.TyI32, Arrow: types.Impure, Name: "parse_i32"})
	add("to_bool", Overload{Params: []types.Type{types.TyI32}, Result: types.TyBool, Arrow: types.Impure, Name: "to_bool"})

	return t
}

// Lookup returns the overload list for name, or nil if name is not a
// builtin. Resolution never mutates the returned slice.
func Lookup(name string) []Overload {
	return Builtins[name]
}
