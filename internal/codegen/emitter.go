package codegen

import (
	"fmt"

	"github.com/neknaj/NEPLg1/internal/report"
	"github.com/neknaj/NEPLg1/internal/types"
	"github.com/wippyai/wasm-runtime/wasm"
)

// IntrinsicRef records one host import the compiled program actually
// calls, in first-reference order, per spec §4.5/§6 -- Artifact's
// second field (DESIGN.md divergence #8).
type IntrinsicRef struct {
	Module string
	Name   string
	Index  uint32
}

type localVar struct {
	idx uint32
	ty  types.Type
}

// scope is a chain of lexical environments, one per Let/FuncLit
// inlining; all locals across the whole program share one flat wasm
// local index space (there is only ever one emitted function, `main`),
// so a scope only needs to remember which name maps to which index.
type scope struct {
	vars   map[string]localVar
	parent *scope
}

func (s *scope) lookup(name string) (localVar, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return localVar{}, false
}

type frameKind int

const (
	frameLoop frameKind = iota
	frameReturn
)

// ctrlFrame is one entry of the enclosing-block stack used to compute
// relative `br` label indices for break/continue/return, mirroring the
// fact that wasm's branch targets are counted by structural nesting
// depth rather than named labels.
type ctrlFrame struct {
	kind           frameKind
	blockOpenDepth int // br target for break / return
	loopOpenDepth  int // br target for continue (frameLoop only)
}

// Emitter lowers one HIR expression tree into the bytecode for a
// single wasm function (`main`). It also accumulates the import and
// data sections that bytecode ends up referencing.
type Emitter struct {
	diags *report.Accumulator

	localTypes []wasm.ValType
	nextLocal  uint32
	sc         *scope

	frames     []ctrlFrame
	blockDepth int

	types      []wasm.FuncType
	imports    []wasm.Import
	importIdx  map[string]uint32
	intrinsics []IntrinsicRef

	data       []byte
	dataOffset map[string]uint32 // content key -> static offset
	memoryUsed bool

	code []wasm.Instruction
}

func (e *Emitter) push(instrs ...wasm.Instruction) {
	e.code = append(e.code, instrs...)
}

// pushBlock/pushLoop/popFrame keep blockDepth and the ctrlFrame stack
// in sync with the structured instructions actually emitted, so
// genBreak/genContinue/genReturn can compute br label indices by
// counting how many structured blocks separate them from their target.
func (e *Emitter) pushBlock(bt int32) {
	e.push(wasm.Instruction{Opcode: wasm.OpBlock, Imm: wasm.BlockImm{Type: bt}})
	e.blockDepth++
}

func (e *Emitter) pushLoop(bt int32) {
	e.push(wasm.Instruction{Opcode: wasm.OpLoop, Imm: wasm.BlockImm{Type: bt}})
	e.blockDepth++
}

func (e *Emitter) pushIf(bt int32) {
	e.push(wasm.Instruction{Opcode: wasm.OpIf, Imm: wasm.BlockImm{Type: bt}})
	e.blockDepth++
}

func (e *Emitter) pushElse() {
	e.push(wasm.Instruction{Opcode: wasm.OpElse})
}

func (e *Emitter) popStructured() {
	e.push(wasm.Instruction{Opcode: wasm.OpEnd})
	e.blockDepth--
}

// pushReturnFrame records the depth reached right after the block that
// `return` must br out of (the whole program's top-level wrapper in
// Generate, or one inlined lambda body's wrapper in genCall) was opened.
func (e *Emitter) pushReturnFrame(blockOpenDepth int) {
	e.frames = append(e.frames, ctrlFrame{kind: frameReturn, blockOpenDepth: blockOpenDepth})
}

// pushLoopFrame records the depth reached right after the enclosing
// `block` and the nested `loop` were each opened, so break/continue
// sites anywhere inside (including past further nested if/block
// structures) can compute their br label as (current depth - open
// depth) via labelFor.
func (e *Emitter) pushLoopFrame(blockOpenDepth, loopOpenDepth int) {
	e.frames = append(e.frames, ctrlFrame{kind: frameLoop, blockOpenDepth: blockOpenDepth, loopOpenDepth: loopOpenDepth})
}

func (e *Emitter) popFrame() {
	e.frames = e.frames[:len(e.frames)-1]
}

// nearestLoop finds the innermost frameLoop for break/continue targets.
func (e *Emitter) nearestLoop() (ctrlFrame, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if e.frames[i].kind == frameLoop {
			return e.frames[i], true
		}
	}
	return ctrlFrame{}, false
}

// nearestReturn finds the innermost frameReturn for return targets --
// the boundary of the current (possibly inlined-lambda) function scope.
func (e *Emitter) nearestReturn() (ctrlFrame, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if e.frames[i].kind == frameReturn {
			return e.frames[i], true
		}
	}
	return ctrlFrame{}, false
}

// labelFor computes the relative br label index for branching out to
// just past the structured block that was open when target's frame was
// pushed (depth counting: label 0 is the innermost enclosing block).
func (e *Emitter) labelFor(openDepth int) uint32 {
	return uint32(e.blockDepth - openDepth)
}

func newEmitter(diags *report.Accumulator) *Emitter {
	return &Emitter{
		diags:      diags,
		sc:         &scope{vars: map[string]localVar{}},
		importIdx:  map[string]uint32{},
		dataOffset: map[string]uint32{},
		data:       make([]byte, 8), // [0,8) is a reserved null-pointer guard region
	}
}

func (e *Emitter) pushScope() { e.sc = &scope{vars: map[string]localVar{}, parent: e.sc} }
func (e *Emitter) popScope()  { e.sc = e.sc.parent }

func (e *Emitter) declareLocal(ty types.Type) uint32 {
	vt, ok := valTypeOf(ty)
	if !ok {
		vt = wasm.ValI32 // Unit/Never locals are never read; placeholder slot
	}
	idx := e.nextLocal
	e.nextLocal++
	e.localTypes = append(e.localTypes, vt)
	return idx
}

func (e *Emitter) bind(name string, ty types.Type) uint32 {
	idx := e.declareLocal(ty)
	e.sc.vars[name] = localVar{idx: idx, ty: ty}
	return idx
}

// importFunc returns the import-section function index for a host
// intrinsic, registering it (and recording an IntrinsicRef) on first
// reference -- import ordering is therefore exactly first-reference
// order, per spec §6.
func (e *Emitter) importFunc(module, name string, params []types.Type, result types.Type) uint32 {
	key := module + "." + name
	if idx, ok := e.importIdx[key]; ok {
		return idx
	}
	wparams := make([]wasm.ValType, 0, len(params))
	for _, p := range params {
		vt, ok := valTypeOf(p)
		if ok {
			wparams = append(wparams, vt)
		}
	}
	var wresults []wasm.ValType
	if vt, ok := valTypeOf(result); ok {
		wresults = []wasm.ValType{vt}
	}
	typeIdx := e.registerType(wasm.FuncType{Params: wparams, Results: wresults})
	idx := uint32(len(e.imports))
	e.imports = append(e.imports, wasm.Import{
		Module: module,
		Name:   name,
		Desc:   wasm.ImportDesc{Kind: wasm.KindFunc, TypeIdx: typeIdx},
	})
	e.importIdx[key] = idx
	e.intrinsics = append(e.intrinsics, IntrinsicRef{Module: module, Name: name, Index: idx})
	return idx
}

// registerType appends a FuncType to the module's type section,
// returning its index. Every import gets its own entry (intrinsic
// signatures rarely collide and the dedup key would just be the
// stringified signature; not worth the indirection here).
func (e *Emitter) registerType(ft wasm.FuncType) uint32 {
	idx := uint32(len(e.types))
	e.types = append(e.types, ft)
	return idx
}

// internString interns a string constant into the static data segment
// and returns its pointer: [i32 length][bytes...].
func (e *Emitter) internString(s string) uint32 {
	return e.internBytes("str:"+s, append(encodeU32(uint32(len(s))), []byte(s)...))
}

// internVec interns a constant vector literal: [i32 length][elements].
func (e *Emitter) internVec(elemTy types.Type, elems []uint64) uint32 {
	size := elemSize(elemTy)
	buf := encodeU32(uint32(len(elems)))
	for _, v := range elems {
		b := make([]byte, size)
		for i := uint32(0); i < size; i++ {
			b[i] = byte(v >> (8 * i))
		}
		buf = append(buf, b...)
	}
	key := fmt.Sprintf("vec:%d:%v", elemTy.Kind, elems)
	return e.internBytes(key, buf)
}

func (e *Emitter) internBytes(key string, content []byte) uint32 {
	if off, ok := e.dataOffset[key]; ok {
		return off
	}
	e.memoryUsed = true
	off := uint32(len(e.data))
	e.data = append(e.data, content...)
	e.dataOffset[key] = off
	return off
}

func encodeU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
