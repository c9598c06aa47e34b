// This follows the teacher's lang/compiler/compiler.go in broad shape (a
// single-pass recursive emitter building a flat instruction slice, with a
// backpatch step for forward jumps) while compiling a completely different
// source language and target instruction set.
package compiler

import (
	"fmt"

	"github.com/unlambda-go/unlambda/lang/ast"
)

type compiler struct {
	code []Instr
}

// Compile lowers expr into a Program per spec.md §4.2: the fixed microcode
// blocks first (see compiled.go), then the code for expr, then Finish.
func Compile(expr ast.Expr) (*Program, error) {
	c := &compiler{code: make([]Instr, microcodeLen)}
	c.emitMicrocode()

	entry := len(c.code)
	if err := c.emitExpr(expr); err != nil {
		return nil, err
	}
	c.emit(Instr{Op: Finish})

	return &Program{Code: c.code, EntryPC: uint32(entry)}, nil
}

// emitMicrocode writes the three fixed blocks described in compiled.go,
// each addressed by its *Start constant. Blocks never fall into one
// another; each block is entered only by an explicit pc assignment to its
// *Start address from lang/machine's Invoke handler.
func (c *compiler) emitMicrocode() {
	// S2: apply x to z, then unless that is D, form (y z) and apply
	// (x z) to it. CheckDynamicSuspend(4) skips Rot, Invoke, Invoke when
	// (x z) is itself D, landing exactly at S2End.
	c.code[S2Start+0] = Instr{Op: Invoke}
	c.code[S2Start+1] = Instr{Op: CheckDynamicSuspend, Off: 4}
	c.code[S2Start+2] = Instr{Op: Rot}
	c.code[S2Start+3] = Instr{Op: Invoke}
	c.code[S2Start+4] = Instr{Op: Invoke}

	// D1 promise forcing: caller's pending argument is already under the
	// forced value on the stack; Swap brings it to the top, Invoke applies.
	c.code[D1PromiseStart+0] = Instr{Op: Swap}
	c.code[D1PromiseStart+1] = Instr{Op: Invoke}

	// D1 application re-entry: stack holds [arg, op, operand]. First
	// Invoke forms (op operand); Swap exposes arg on top; second Invoke
	// applies (op operand) to arg.
	c.code[D1ApplicationStart+0] = Instr{Op: Invoke}
	c.code[D1ApplicationStart+1] = Instr{Op: Swap}
	c.code[D1ApplicationStart+2] = Instr{Op: Invoke}
}

func (c *compiler) emitExpr(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Combinator:
		c.code = append(c.code, Instr{Op: PushImmediate, Comb: n.Kind, Char: n.Char})
		return nil
	case *ast.Application:
		if err := c.emitExpr(n.Func); err != nil {
			return err
		}
		checkAt := len(c.code)
		c.code = append(c.code, Instr{Op: Placeholder}) // overwritten below
		if err := c.emitExpr(n.Arg); err != nil {
			return err
		}
		c.code = append(c.code, Instr{Op: Invoke})
		// The D branch of CheckSuspend and the fallthrough non-D branch
		// both must end up at the same place: right after this Invoke.
		c.code[checkAt] = Instr{Op: CheckSuspend, Off: int32(len(c.code) - checkAt)}
		return nil
	default:
		return fmt.Errorf("compiler: unhandled ast node %T", e)
	}
}
