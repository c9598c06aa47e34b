package machine

import (
	"io"

	"github.com/unlambda-go/unlambda/lang/ast"
	"github.com/unlambda-go/unlambda/lang/compiler"
)

// VM executes a compiled Program: an operand stack, a return stack, a
// program counter, and the cur_char input latch (spec.md §3).
type VM struct {
	code []compiler.Instr

	operand []Value
	rstack  []RFrame
	pc      uint32

	curChar    rune
	hasCurChar bool

	in  *runeReader
	out io.Writer

	intern *interner

	steps, maxSteps uint64
}

// New builds a VM ready to run prog, reading Read-combinator input from in
// and writing Dot-combinator output to out. maxSteps bounds the number of
// VM loop iterations as a divergence guard; 0 means unbounded.
func New(prog *compiler.Program, in io.Reader, out io.Writer, maxSteps uint64) *VM {
	return &VM{
		code:     prog.Code,
		pc:       prog.EntryPC,
		in:       newRuneReader(in),
		out:      out,
		intern:   newInterner(),
		maxSteps: maxSteps,
	}
}

func (vm *VM) push(v Value) { vm.operand = append(vm.operand, v) }

func (vm *VM) pop() Value {
	n := len(vm.operand)
	v := vm.operand[n-1]
	vm.operand = vm.operand[:n-1]
	return v
}

// Run drives the fetch-dispatch-advance loop of spec.md §4.6 to completion
// and returns the program's result: either the sole operand left at Finish,
// or the value E was applied to.
func (vm *VM) Run() (Value, error) {
	// Bottom sentinel so the auto-return check is total (spec.md §3).
	sentinel := uint32(len(vm.code))
	vm.rstack = append(vm.rstack, RFrame{To: sentinel, From: sentinel})

	for {
		if vm.maxSteps != 0 {
			vm.steps++
			if vm.steps > vm.maxSteps {
				return nil, bugf(vm.pc, "exceeded step limit %d", vm.maxSteps)
			}
		}

		if int(vm.pc) >= len(vm.code) {
			return nil, bugf(vm.pc, "program counter %d out of range", vm.pc)
		}
		instr := vm.code[vm.pc]

		switch instr.Op {
		case compiler.Finish:
			if len(vm.operand) != 1 {
				return nil, bugf(vm.pc, "operand stack has %d values at Finish, want 1", len(vm.operand))
			}
			if len(vm.rstack) != 1 {
				return nil, bugf(vm.pc, "return stack has %d frames at Finish, want only the sentinel", len(vm.rstack))
			}
			return vm.operand[0], nil

		case compiler.PushImmediate:
			v, err := vm.pushImmediate(instr.Comb, instr.Char)
			if err != nil {
				return nil, err
			}
			vm.push(v)
			vm.pc++

		case compiler.Swap:
			n := len(vm.operand)
			if n < 2 {
				return nil, bugf(vm.pc, "Swap: operand stack has %d values, need 2", n)
			}
			vm.operand[n-1], vm.operand[n-2] = vm.operand[n-2], vm.operand[n-1]
			vm.pc++

		case compiler.Rot:
			if err := vm.rot(); err != nil {
				return nil, err
			}
			vm.pc++

		case compiler.CheckSuspend:
			if err := vm.checkSuspend(instr.Off); err != nil {
				return nil, err
			}

		case compiler.CheckDynamicSuspend:
			if err := vm.checkDynamicSuspend(instr.Off); err != nil {
				return nil, err
			}

		case compiler.Invoke:
			done, result, err := vm.invoke()
			if err != nil {
				return nil, err
			}
			if done {
				return result, nil
			}

		case compiler.Placeholder:
			return nil, bugf(vm.pc, "Placeholder opcode reached at run time")

		default:
			return nil, bugf(vm.pc, "unknown opcode %v", instr.Op)
		}

		// The auto-return check runs once per iteration regardless of how
		// the instruction above managed pc (spec.md §4.6).
		if n := len(vm.rstack); n > 0 && vm.rstack[n-1].From == vm.pc {
			vm.pc = vm.rstack[n-1].To
			vm.rstack = vm.rstack[:n-1]
		}
	}
}

func (vm *VM) rot() error {
	n := len(vm.operand)
	if n < 3 {
		return bugf(vm.pc, "Rot: operand stack has %d values, need 3", n)
	}
	c, b, a := vm.operand[n-1], vm.operand[n-2], vm.operand[n-3]
	vm.operand[n-3], vm.operand[n-2], vm.operand[n-1] = c, a, b
	return nil
}

func isD(v Value) bool {
	p, ok := v.(*Prim)
	return ok && p.kind == KindD
}

// checkSuspend implements spec.md §4.1's CheckSuspend: if the top is the D
// primitive, replace it with an address promise and skip the argument
// code; otherwise fall through.
func (vm *VM) checkSuspend(off int32) error {
	n := len(vm.operand)
	if n < 1 {
		return bugf(vm.pc, "CheckSuspend: operand stack is empty")
	}
	if isD(vm.operand[n-1]) {
		vm.operand[n-1] = &D1{Expr: PromiseExpr{HasAddr: true, Addr: vm.pc + 1}}
		vm.pc = uint32(int32(vm.pc) + off)
		return nil
	}
	vm.pc++
	return nil
}

// checkDynamicSuspend implements the S2-microcode-only variant described in
// spec.md §4.3: the stack holds [..., v2, x, D1(Application(v2,x)), (v1 x)]
// and this inspects the top, (v1 x).
func (vm *VM) checkDynamicSuspend(off int32) error {
	n := len(vm.operand)
	if n < 4 {
		return bugf(vm.pc, "CheckDynamicSuspend: operand stack has %d values, need 4", n)
	}
	if isD(vm.operand[n-1]) {
		promise := vm.operand[n-2]
		vm.operand = append(vm.operand[:n-4], promise)
		vm.pc = uint32(int32(vm.pc) + off)
		return nil
	}
	// Discard the unused pre-built promise, restoring (v1 x) on top of x.
	top := vm.operand[n-1]
	vm.operand[n-2] = top
	vm.operand = vm.operand[:n-1]
	vm.pc++
	return nil
}

// nullaryKind maps a combinator's ast.Kind to the machine.Kind of its
// runtime value, for the primitives that carry no payload.
var nullaryKind = map[ast.Kind]Kind{
	ast.I: KindI, ast.K: KindK, ast.S: KindS, ast.V: KindV,
	ast.D: KindD, ast.C: KindC, ast.E: KindE,
	ast.Read: KindRead, ast.Reprint: KindReprint,
}

func (vm *VM) pushImmediate(kind ast.Kind, ch rune) (Value, error) {
	switch kind {
	case ast.Compare:
		return vm.intern.compare(ch), nil
	case ast.DotPrint:
		return vm.intern.dot(ch), nil
	default:
		mk, ok := nullaryKind[kind]
		if !ok {
			return nil, bugf(vm.pc, "PushImmediate: unhandled combinator kind %v", kind)
		}
		return vm.intern.nullary(mk), nil
	}
}

func (vm *VM) snapshot() *C1 {
	snap := &C1{
		OperandStack: make([]Value, len(vm.operand)),
		ReturnStack:  make([]RFrame, len(vm.rstack)),
		PC:           vm.pc,
		CurChar:      vm.curChar,
		HasCurChar:   vm.hasCurChar,
	}
	copy(snap.OperandStack, vm.operand)
	copy(snap.ReturnStack, vm.rstack)
	return snap
}

func (vm *VM) restore(snap *C1) {
	vm.operand = make([]Value, len(snap.OperandStack))
	copy(vm.operand, snap.OperandStack)
	vm.rstack = make([]RFrame, len(snap.ReturnStack))
	copy(vm.rstack, snap.ReturnStack)
	vm.pc = snap.PC
	vm.curChar = snap.CurChar
	vm.hasCurChar = snap.HasCurChar
}
