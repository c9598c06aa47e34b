package compiler

import "github.com/unlambda-go/unlambda/lang/ast"

// Instr is one slot of a compiled Program. Only the fields relevant to Op
// are meaningful:
//
//   - PushImmediate reads Comb (and Char, for Compare/DotPrint combinators).
//   - CheckSuspend and CheckDynamicSuspend read Off, a forward jump distance
//     added to the instruction's own address.
type Instr struct {
	Op   Opcode
	Comb ast.Kind
	Char rune
	Off  int32
}

// Program is a compiled Unlambda expression: a flat instruction array with
// the fixed microcode blocks (see below) at fixed, known addresses, followed
// by the code compiled from the expression itself.
type Program struct {
	Code    []Instr
	EntryPC uint32
}

// The compiler always emits the three fixed microcode blocks described in
// spec.md §4.3 first, in the same relative order, so every compiled Program
// shares the same addresses for them. lang/machine's Invoke handler jumps
// into these blocks by address when it needs to apply an S2 value, force a
// D1 promise, or apply a D1 application promise (spec.md §4.4); they are
// never reached by ordinary control flow falling through from the preceding
// instruction.
const (
	// S2Start is entered whenever S2(x, y) is applied to an argument z: the
	// microcode applies x to z and, unless that yields D, forms (y z) and
	// applies (x z) to it. If (x z) is D, the result is the promise
	// D1(Application(y, z)) instead.
	S2Start = 0
	s2Len   = 5
	S2End   = S2Start + s2Len

	// D1PromiseStart lands just after a forced D1 address-promise's own
	// code has produced its value: Swap brings the caller's pending
	// argument back on top, then Invoke applies the forced value to it.
	D1PromiseStart = S2End
	d1PromiseLen   = 2
	D1PromiseEnd   = D1PromiseStart + d1PromiseLen

	// D1ApplicationStart re-applies a previously suspended application
	// D1(Application(op, operand)) to a fresh argument: run op against
	// operand, then apply the result to the new argument.
	D1ApplicationStart = D1PromiseEnd
	d1ApplicationLen   = 3
	D1ApplicationEnd   = D1ApplicationStart + d1ApplicationLen

	// microcodeLen is the address at which ordinary compiled code begins.
	microcodeLen = D1ApplicationEnd
)
