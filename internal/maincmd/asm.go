package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/unlambda-go/unlambda/lang/compiler"
	"github.com/unlambda-go/unlambda/lang/parser"
)

// Asm compiles each named source file and prints its disassembled opcode
// array (spec.md §4.1's instruction set, plus the fixed microcode blocks
// that every compiled program shares).
func (c *Cmd) Asm(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, name := range args {
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

		if err := compiler.Disassemble(stdio.Stdout, prog); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}
	return nil
}
