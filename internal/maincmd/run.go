package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/unlambda-go/unlambda/lang/compiler"
	"github.com/unlambda-go/unlambda/lang/machine"
	"github.com/unlambda-go/unlambda/lang/parser"
)

// Run parses, compiles and executes a single source file, discarding its
// final value (spec.md §6's file-run mode).
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	name := args[0]
	b, err := os.ReadFile(name)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	expr, err := parser.ParseBytes(b)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	prog, err := compiler.Compile(expr)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	vm := machine.New(prog, stdio.Stdin, stdio.Stdout, stepLimit(c.Steps))
	if _, err := vm.Run(); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	return nil
}

// stepLimit converts the --steps flag (0 meaning unlimited, negative
// treated the same as 0) to the uint64 machine.New expects.
func stepLimit(steps int) uint64 {
	if steps <= 0 {
		return 0
	}
	return uint64(steps)
}
