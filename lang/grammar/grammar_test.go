// Package grammar holds a descriptive EBNF rendering of the Unlambda
// syntax, verified for well-formedness the same way the teacher verifies
// its own lang/grammar/grammar.ebnf: parse it and check every production is
// reachable from a chosen start symbol.
package grammar

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

func TestEBNF(t *testing.T) {
	f, err := os.Open("grammar.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("grammar.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Expr"); err != nil {
		t.Fatal(err)
	}
}
