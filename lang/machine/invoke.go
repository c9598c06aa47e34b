package machine

import (
	"github.com/unlambda-go/unlambda/lang/compiler"
)

// invoke implements spec.md §4.4: pop arg then fun, dispatch on fun's kind.
// It returns done=true with the final result when E is invoked (the only
// clean early exit from the run loop); otherwise it always leaves vm.pc in
// a valid state itself, including the default +1 advance, since several
// branches below must redirect or deliberately hold pc instead.
func (vm *VM) invoke() (done bool, result Value, err error) {
	n := len(vm.operand)
	if n < 2 {
		return false, nil, bugf(vm.pc, "Invoke: operand stack has %d values, need 2", n)
	}
	arg := vm.operand[n-1]
	fun := vm.operand[n-2]
	vm.operand = vm.operand[:n-2]

	switch f := fun.(type) {
	case *Prim:
		switch f.kind {
		case KindI:
			vm.push(arg)
			vm.pc++

		case KindK:
			vm.push(&K1{V: arg})
			vm.pc++

		case KindS:
			vm.push(&S1{V: arg})
			vm.pc++

		case KindV:
			vm.push(f)
			vm.pc++

		case KindD:
			// CheckSuspend intercepts D when it is a literal operand; this
			// branch only fires for a D produced at runtime (spec.md §4.4,
			// and scenario 11 of §8: ```sddk).
			vm.push(&D1{Expr: PromiseExpr{Func: arg}})
			vm.pc++

		case KindC:
			snap := vm.snapshot()
			vm.push(arg)
			vm.push(snap)
			// pc unchanged: Invoke re-fires, this time applying arg to snap.

		case KindE:
			return true, arg, nil

		case KindRead:
			c, ok := vm.in.read()
			vm.curChar = c
			vm.hasCurChar = ok
			vm.push(arg)
			if ok {
				vm.push(vm.intern.nullary(KindI))
			} else {
				vm.push(vm.intern.nullary(KindV))
			}
			// pc unchanged: Invoke re-fires, applying arg to I or V.

		case KindReprint:
			vm.push(arg)
			if vm.hasCurChar {
				vm.push(vm.intern.dot(vm.curChar))
			} else {
				vm.push(vm.intern.nullary(KindV))
			}
			// pc unchanged.

		default:
			return false, nil, bugf(vm.pc, "Invoke: unexpected nullary primitive %s", f.kind)
		}

	case *K1:
		vm.push(f.V)
		vm.pc++

	case *S1:
		vm.push(&S2{V1: f.V, V2: arg})
		vm.pc++

	case *S2:
		// [v2, arg, D1(Application(v2,arg)), v1, arg]; push_rstack(pc+1,
		// S2_END); pc = S2_START.
		vm.push(f.V2)
		vm.push(arg)
		vm.push(&D1{Expr: PromiseExpr{Op: f.V2, Arg2: arg}})
		vm.push(f.V1)
		vm.push(arg)
		vm.rstack = pushRStack(vm.rstack, vm.pc+1, compiler.S2End)
		vm.pc = compiler.S2Start

	case *D1:
		switch {
		case f.Expr.HasAddr:
			at := f.Expr.Addr
			if at == 0 || int(at-1) >= len(vm.code) || vm.code[at-1].Op != compiler.CheckSuspend {
				return false, nil, bugf(vm.pc, "D1 promise address %d does not follow a CheckSuspend", at)
			}
			off := vm.code[at-1].Off
			vm.push(arg)
			vm.rstack = pushRStack(vm.rstack, vm.pc+1, compiler.D1PromiseEnd)
			vm.rstack = pushRStack(vm.rstack, compiler.D1PromiseStart, uint32(int32(at)-2+off))
			vm.pc = at

		case f.Expr.Func != nil:
			vm.push(f.Expr.Func)
			vm.push(arg)
			// pc unchanged: Invoke re-fires with (Func, arg).

		default:
			vm.push(arg)
			vm.push(f.Expr.Op)
			vm.push(f.Expr.Arg2)
			vm.rstack = pushRStack(vm.rstack, vm.pc+1, compiler.D1ApplicationEnd)
			vm.pc = compiler.D1ApplicationStart
		}

	case *C1:
		vm.restore(f)
		vm.push(arg)
		// The snapshot's pc is the Invoke that applied C; arg is now that
		// Invoke's result, so continue just past it.
		vm.pc++

	case *DotValue:
		if _, werr := vm.out.Write([]byte(string(f.Char))); werr != nil {
			return false, nil, werr
		}
		vm.push(arg)
		vm.pc++

	case *CompareValue:
		vm.push(arg)
		if vm.hasCurChar && vm.curChar == f.Char {
			vm.push(vm.intern.nullary(KindI))
		} else {
			vm.push(vm.intern.nullary(KindV))
		}
		// pc unchanged: like Read/Reprint, Compare hands back [arg,
		// I-or-V] for this same Invoke to re-fire and apply arg to it —
		// otherwise a `?xe application site would leave two values behind
		// instead of the one every other Application compiles to produce.

	default:
		return false, nil, bugf(vm.pc, "Invoke: value %s is not callable", fun)
	}

	return false, nil, nil
}
