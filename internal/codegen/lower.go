package codegen

import (
	"math"

	"github.com/neknaj/NEPLg1/internal/hir"
	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/types"
	"github.com/wippyai/wasm-runtime/wasm"
)

// gen lowers one typed HIR expression into e.code. Every case leaves
// exactly the runtime values expr.Type's wasm representation implies
// on the operand stack -- zero values for Unit/Never, one value
// otherwise (valtype.go's valTypeOf convention).
func (e *Emitter) gen(expr hir.Expr) {
	switch k := expr.Kind.(type) {
	case hir.I32:
		e.push(wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: k.Value}})
	case hir.I64:
		e.push(wasm.Instruction{Opcode: wasm.OpI64Const, Imm: wasm.I64Imm{Value: k.Value}})
	case hir.F32:
		e.push(wasm.Instruction{Opcode: wasm.OpF32Const, Imm: wasm.F32Imm{Value: k.Value}})
	case hir.F64:
		e.push(wasm.Instruction{Opcode: wasm.OpF64Const, Imm: wasm.F64Imm{Value: k.Value}})
	case hir.BoolLit:
		v := int32(0)
		if k.Value {
			v = 1
		}
		e.push(wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: v}})
	case hir.UnitLit:
		// carries no runtime value
	case hir.StringLit:
		ptr := e.internString(k.Value)
		e.push(wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: int32(ptr)}})
	case hir.VecLit:
		e.genVecLit(k, expr.Type)
	case hir.Var:
		e.genVar(k.Name, expr.Span)
	case hir.Call:
		e.genCall(k, expr.Type, expr.Span)
	case hir.Let:
		e.genLet(k)
	case hir.Set:
		e.genSet(k)
	case hir.If:
		e.genIf(k, expr.Type)
	case hir.While:
		e.genWhile(k)
	case hir.Loop:
		e.genLoop(k, expr.Type)
	case hir.Break:
		e.genBreak(k, expr.Span)
	case hir.Continue:
		e.genContinue(expr.Span)
	case hir.Return:
		e.genReturn(k, expr.Span)
	case hir.Match:
		e.genMatch(k, expr.Type)
	case hir.Block:
		e.genBlock(k)
	case hir.Closure:
		// A closure value never has a runtime representation of its own
		// (DESIGN.md's call-site inlining decision): it is only ever
		// reached as a CalleeKind.FuncValue, which genCall inlines
		// directly without evaluating this node.
		e.diags.Raise(report.CompileUnsupportedConstruct, expr.Span, "function values cannot be stored or returned, only called directly")
	default:
		e.diags.Raise(report.CompileUnsupportedConstruct, expr.Span, "unsupported construct in codegen")
	}
}

func (e *Emitter) genVar(name string, span report.Span) {
	v, ok := e.sc.lookup(name)
	if !ok {
		panic(&report.ICE{Message: "codegen: unbound variable '" + name + "'"})
	}
	e.push(wasm.Instruction{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: v.idx}})
}

// dropIfValued emits a drop for a non-terminal Block/sequence element
// whose value is discarded, unless it carries no runtime value.
func (e *Emitter) dropIfValued(t types.Type) {
	if _, ok := valTypeOf(t); ok {
		e.push(wasm.Instruction{Opcode: wasm.OpDrop})
	}
}

func (e *Emitter) genBlock(b hir.Block) {
	for i, sub := range b.Exprs {
		e.gen(sub)
		if i < len(b.Exprs)-1 {
			e.dropIfValued(sub.Type)
		}
	}
}

func (e *Emitter) genLet(l hir.Let) {
	e.gen(l.Init)
	e.pushScope()
	idx := e.bind(l.Name, l.Init.Type)
	if _, ok := valTypeOf(l.Init.Type); ok {
		e.push(wasm.Instruction{Opcode: wasm.OpLocalSet, Imm: wasm.LocalImm{LocalIdx: idx}})
	}
	e.gen(l.Body)
	e.sc = e.sc.parent
}

func (e *Emitter) genSet(s hir.Set) {
	v, ok := e.sc.lookup(s.Target)
	if !ok {
		panic(&report.ICE{Message: "codegen: unbound assignment target '" + s.Target + "'"})
	}
	e.gen(s.Value)
	if _, ok := valTypeOf(s.Value.Type); ok {
		e.push(wasm.Instruction{Opcode: wasm.OpLocalSet, Imm: wasm.LocalImm{LocalIdx: v.idx}})
	}
	// Set's own value is Unit (spec §3): nothing pushed for the caller.
}

func (e *Emitter) genIf(n hir.If, resultType types.Type) {
	e.gen(n.Cond)
	e.pushIf(blockType(resultType))
	e.gen(n.Then)
	if n.Else != nil {
		e.pushElse()
		e.gen(*n.Else)
	}
	e.popStructured()
}

// genWhile lowers `while cond body` as
//   block
//     loop
//       cond; br_if 1 (eqz cond -> exit)   -- i.e. i32.eqz + br_if out
//       body (drop any value since While's own type is Unit)
//       br 0
//     end
//   end
// break targets the outer block, continue targets the inner loop.
func (e *Emitter) genWhile(n hir.While) {
	e.pushBlock(-64)
	blockOpenDepth := e.blockDepth
	e.pushLoop(-64)
	loopOpenDepth := e.blockDepth
	e.pushLoopFrame(blockOpenDepth, loopOpenDepth)

	e.gen(n.Cond)
	e.push(wasm.Instruction{Opcode: wasm.OpI32Eqz})
	e.push(wasm.Instruction{Opcode: wasm.OpBrIf, Imm: wasm.BranchImm{LabelIdx: 1}})
	e.gen(n.Body)
	e.dropIfValued(n.Body.Type)
	e.push(wasm.Instruction{Opcode: wasm.OpBr, Imm: wasm.BranchImm{LabelIdx: 0}})

	e.popFrame()
	e.popStructured() // loop
	e.popStructured() // block
}

// genLoop lowers `loop body` as an unconditional loop. The outer
// wrapping block (break's target) is typed with the loop's own result
// type -- Unit for a bare `break`, or the common type of every
// value-carrying `break` the resolver found -- since break pushes that
// value before branching out to it.
func (e *Emitter) genLoop(n hir.Loop, resultType types.Type) {
	e.pushBlock(blockType(resultType))
	blockOpenDepth := e.blockDepth
	e.pushLoop(-64)
	loopOpenDepth := e.blockDepth
	e.pushLoopFrame(blockOpenDepth, loopOpenDepth)

	e.gen(n.Body)
	e.dropIfValued(n.Body.Type)
	e.push(wasm.Instruction{Opcode: wasm.OpBr, Imm: wasm.BranchImm{LabelIdx: 0}})

	e.popFrame()
	e.popStructured() // loop
	// The loop only exits by branching, so the end of the result-typed
	// block is unreachable; say so for the validator.
	e.push(wasm.Instruction{Opcode: wasm.OpUnreachable})
	e.popStructured() // block
}

func (e *Emitter) genBreak(b hir.Break, span report.Span) {
	fr, ok := e.nearestLoop()
	if !ok {
		panic(&report.ICE{Message: "codegen: break outside any loop"})
	}
	if b.Value != nil {
		e.gen(*b.Value)
	}
	e.push(wasm.Instruction{Opcode: wasm.OpBr, Imm: wasm.BranchImm{LabelIdx: e.labelFor(fr.blockOpenDepth)}})
}

func (e *Emitter) genContinue(span report.Span) {
	fr, ok := e.nearestLoop()
	if !ok {
		panic(&report.ICE{Message: "codegen: continue outside any loop"})
	}
	e.push(wasm.Instruction{Opcode: wasm.OpBr, Imm: wasm.BranchImm{LabelIdx: e.labelFor(fr.loopOpenDepth)}})
}

func (e *Emitter) genReturn(r hir.Return, span report.Span) {
	fr, ok := e.nearestReturn()
	if !ok {
		panic(&report.ICE{Message: "codegen: return outside any function scope"})
	}
	if r.Value != nil {
		e.gen(*r.Value)
	}
	e.push(wasm.Instruction{Opcode: wasm.OpBr, Imm: wasm.BranchImm{LabelIdx: e.labelFor(fr.blockOpenDepth)}})
}

// genMatch lowers a match over literal/identifier/wildcard patterns
// (spec §3's restricted pattern set -- no destructuring) as a cascade
// of equality tests against the scrutinee, bound once to a fresh local
// so it is evaluated exactly once regardless of arm count.
func (e *Emitter) genMatch(m hir.Match, resultType types.Type) {
	e.gen(m.Scrutinee)
	tmp := e.declareLocal(m.Scrutinee.Type)
	e.push(wasm.Instruction{Opcode: wasm.OpLocalSet, Imm: wasm.LocalImm{LocalIdx: tmp}})

	bt := blockType(resultType)
	depth := 0
	matched := false
	for _, arm := range m.Arms {
		if _, isWild := arm.Pattern.(hir.WildcardPattern); isWild {
			e.gen(arm.Body)
			matched = true
			break
		}
		if id, isIdent := arm.Pattern.(hir.IdentPattern); isIdent {
			e.pushScope()
			e.sc.vars[id.Name] = localVar{idx: tmp, ty: m.Scrutinee.Type}
			e.gen(arm.Body)
			e.popScope()
			matched = true
			break
		}
		lit := arm.Pattern.(hir.LitPattern)
		e.push(wasm.Instruction{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: tmp}})
		e.gen(lit.Value)
		opc, _ := binOpcode("eq", m.Scrutinee.Type)
		e.push(wasm.Instruction{Opcode: opc})
		e.pushIf(bt)
		e.gen(arm.Body)
		e.pushElse()
		depth++
	}
	if !matched {
		// No wildcard/ident catch-all arm: the scrutinee fell through
		// every literal pattern, which non-exhaustive match typing
		// never rules out. unreachable is stack-polymorphic, so it
		// satisfies the enclosing if's declared result type here
		// without a real value to produce.
		e.push(wasm.Instruction{Opcode: wasm.OpUnreachable})
	}
	for i := 0; i < depth; i++ {
		e.popStructured()
	}
}

// genVecLit constant-folds a vector literal of numeric elements into a
// static data-segment pointer. Non-constant elements make the vector
// unrepresentable under the constant-folding-only Vec model (DESIGN.md
// divergence on runtime Vec mutation), so this raises
// CompileUnsupportedConstruct instead of attempting a heap allocation.
func (e *Emitter) genVecLit(v hir.VecLit, vecType types.Type) {
	elemTy := *vecType.Elem
	vals := make([]uint64, 0, len(v.Elems))
	for _, el := range v.Elems {
		bits, ok := constBits(el)
		if !ok {
			e.diags.Raise(report.CompileUnsupportedConstruct, el.Span, "vector elements must be compile-time constants")
			return
		}
		vals = append(vals, bits)
	}
	ptr := e.internVec(elemTy, vals)
	e.push(wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: int32(ptr)}})
}

// constBits extracts the raw bit pattern of a literal HIR expression,
// for folding into a data segment. Only literal nodes qualify -- this
// is deliberately not a general constant-folder.
func constBits(e hir.Expr) (uint64, bool) {
	switch k := e.Kind.(type) {
	case hir.I32:
		return uint64(uint32(k.Value)), true
	case hir.I64:
		return uint64(k.Value), true
	case hir.F32:
		return uint64(math.Float32bits(k.Value)), true
	case hir.F64:
		return math.Float64bits(k.Value), true
	default:
		return 0, false
	}
}
