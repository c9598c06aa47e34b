package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/unlambda-go/unlambda/lang/parser"
)

// Parse prints the parsed syntax tree of each named source file, one tree
// per line, using ast.Node's own Format, which renders the tree back in
// source spelling (e.g. "`ii").
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	_, exprs, err := parser.ParseFiles(args...)
	for _, expr := range exprs {
		if expr == nil {
			continue
		}
		fmt.Fprintf(stdio.Stdout, "%v\n", expr)
	}
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
	}
	return err
}
