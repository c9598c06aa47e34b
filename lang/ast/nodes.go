package ast

import (
	"fmt"
	"strings"

	"github.com/unlambda-go/unlambda/lang/token"
)

// Kind identifies which primitive combinator a Combinator node spells.
// 'r' (spec.md §6) is desugared by the parser into Dot('\n') directly, so
// it has no Kind of its own.
type Kind uint8

const ( //nolint:revive
	I Kind = iota
	K
	S
	V
	D
	C
	E
	Read     // @
	Reprint  // |
	Compare  // ?x, Char holds x
	DotPrint // .x, Char holds x
)

var kindNames = [...]string{
	I: "i", K: "k", S: "s", V: "v", D: "d", C: "c", E: "e",
	Read: "@", Reprint: "|", Compare: "?", DotPrint: ".",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("illegal kind (%d)", k)
}

// Combinator is a leaf node: one of the primitive combinators of spec.md
// §6. Char is only meaningful for Compare and DotPrint.
type Combinator struct {
	Kind Kind
	Char rune
	Pos  token.Pos
}

// Application is a binary application node: `func arg (backtick or '[').
type Application struct {
	Func, Arg Expr
	Start     token.Pos // position of the backtick/'[' token
}

func (*Combinator) exprNode()  {}
func (*Application) exprNode() {}

func (n *Combinator) Span() (start, end token.Pos) { return n.Pos, n.Pos }

func (n *Application) Span() (start, end token.Pos) {
	_, end = n.Arg.Span()
	return n.Start, end
}

func (n *Combinator) Walk(v Visitor) {
	if v = v.Visit(n); v == nil {
		return
	}
}

func (n *Application) Walk(v Visitor) {
	if v = v.Visit(n); v == nil {
		return
	}
	Walk(v, n.Func)
	Walk(v, n.Arg)
}

// Format implements fmt.Formatter. Only 'v' and 's' are supported; the
// rendering matches the combinator's source spelling, e.g. ".x" or "?\n".
func (n *Combinator) Format(f fmt.State, verb rune) {
	formatNode(f, verb, n.describe())
}

func (n *Application) Format(f fmt.State, verb rune) {
	var b strings.Builder
	b.WriteByte('`')
	fmt.Fprintf(&b, "%v", n.Func)
	fmt.Fprintf(&b, "%v", n.Arg)
	formatNode(f, verb, b.String())
}

func (n *Combinator) describe() string {
	switch n.Kind {
	case Compare, DotPrint:
		return n.Kind.String() + string(n.Char)
	default:
		return n.Kind.String()
	}
}

func formatNode(f fmt.State, verb rune, s string) {
	switch verb {
	case 'v', 's':
		fmt.Fprint(f, s)
	default:
		fmt.Fprintf(f, "%%!%c(ast.Node=%s)", verb, s)
	}
}
