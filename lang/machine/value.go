// Package machine implements the Unlambda stack VM: the value model, the
// fixed-microcode-aware Invoke handler, the return-stack manager with TCO
// coalescing, and the fetch-dispatch-advance run loop. Structurally this
// generalizes the teacher's lang/machine package (a tagged Value interface
// with per-kind Go types, a Thread/VM driving a fetch-dispatch loop over a
// compiled instruction array) to a completely different value set and
// dispatch table.
package machine

import "fmt"

// Kind tags a Value's variant, mirroring the teacher's per-value Type()
// strings but as a comparable enum so it can key the interning cache.
type Kind uint8

const ( //nolint:revive
	KindI Kind = iota
	KindK
	KindS
	KindV
	KindD
	KindC
	KindE
	KindK1
	KindS1
	KindS2
	KindD1
	KindC1
	KindDot
	KindRead
	KindReprint
	KindCompare
)

var kindNames = [...]string{
	KindI: "I", KindK: "K", KindS: "S", KindV: "V", KindD: "D", KindC: "C", KindE: "E",
	KindK1: "K1", KindS1: "S1", KindS2: "S2", KindD1: "D1", KindC1: "C1",
	KindDot: "Dot", KindRead: "Read", KindReprint: "Reprint", KindCompare: "Compare",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Value is a function value in the Unlambda sense: every combinator,
// partial application, promise and continuation implements it. The debug
// representation (String) names the tag and recursively its children, per
// spec.md §6.
type Value interface {
	Kind() Kind
	String() string
}

// Prim is one of the seven nullary primitives. There is exactly one live
// instance per Kind per machine, handed out by the interning cache.
type Prim struct{ kind Kind }

func (p *Prim) Kind() Kind     { return p.kind }
func (p *Prim) String() string { return p.kind.String() }

// K1 is K applied to one argument: `(K v)`.
type K1 struct{ V Value }

func (k *K1) Kind() Kind     { return KindK1 }
func (k *K1) String() string { return fmt.Sprintf("K1(%s)", k.V) }

// S1 is S applied to one argument.
type S1 struct{ V Value }

func (s *S1) Kind() Kind     { return KindS1 }
func (s *S1) String() string { return fmt.Sprintf("S1(%s)", s.V) }

// S2 is S applied to two arguments, awaiting the third.
type S2 struct{ V1, V2 Value }

func (s *S2) Kind() Kind     { return KindS2 }
func (s *S2) String() string { return fmt.Sprintf("S2(%s, %s)", s.V1, s.V2) }

// PromiseExpr is the sum type carried by D1, per spec.md §3: either a
// not-yet-evaluated code address, an already-evaluated function, or a pair
// of function values awaiting a shared argument.
type PromiseExpr struct {
	// Exactly one of the following is set.
	Addr     uint32 // valid if HasAddr
	HasAddr  bool
	Func     Value // valid if Func != nil
	Op, Arg2 Value // both valid if Op != nil (the Application case)
}

func (e PromiseExpr) String() string {
	switch {
	case e.HasAddr:
		return fmt.Sprintf("Address(%d)", e.Addr)
	case e.Op != nil:
		return fmt.Sprintf("Application(%s, %s)", e.Op, e.Arg2)
	default:
		return fmt.Sprintf("Function(%s)", e.Func)
	}
}

// D1 is an unforced promise created by applying D.
type D1 struct{ Expr PromiseExpr }

func (d *D1) Kind() Kind     { return KindD1 }
func (d *D1) String() string { return fmt.Sprintf("D1(%s)", d.Expr) }

// C1 is a captured continuation: an independent deep copy of the VM state
// at the moment `C` was applied.
type C1 struct {
	OperandStack []Value
	ReturnStack  []RFrame
	PC           uint32
	CurChar      rune
	HasCurChar   bool
}

func (c *C1) Kind() Kind     { return KindC1 }
func (c *C1) String() string { return "C1(...)" }

// DotValue prints Char when applied, then behaves as I.
type DotValue struct{ Char rune }

func (d *DotValue) Kind() Kind     { return KindDot }
func (d *DotValue) String() string { return fmt.Sprintf("Dot(%q)", d.Char) }

// CompareValue yields I when applied if cur_char equals Char, else V.
type CompareValue struct{ Char rune }

func (c *CompareValue) Kind() Kind     { return KindCompare }
func (c *CompareValue) String() string { return fmt.Sprintf("Compare(%q)", c.Char) }
