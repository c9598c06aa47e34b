// Package ast defines the abstract syntax tree produced by lang/parser:
// the two productions of the Unlambda grammar, a leaf Combinator and a
// binary Application. Both implement Node for uniform printing and
// traversal.
package ast

import (
	"fmt"

	"github.com/unlambda-go/unlambda/lang/token"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements fmt.Formatter so it can print a description of
	// itself; only the 'v' and 's' verbs are supported.
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk enters the node (and, for Application, both children) to
	// implement the visitor pattern.
	Walk(v Visitor)
}

// Expr is the common type of every node produced by the parser (there are
// no statements in Unlambda).
type Expr interface {
	Node
	exprNode()
}

// Visitor is called by Walk for each node encountered. If Visit returns a
// non-nil Visitor, Walk continues into the node's children with that
// visitor; if it returns nil, Walk stops descending into this node.
type Visitor interface {
	Visit(n Node) Visitor
}

// Walk traverses the AST in depth-first order, starting at n.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	n.Walk(v)
}
