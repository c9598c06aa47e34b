package maincmd

import (
	"bufio"
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/mna/mainer"

	"github.com/unlambda-go/unlambda/lang/compiler"
	"github.com/unlambda-go/unlambda/lang/machine"
	"github.com/unlambda-go/unlambda/lang/parser"
)

// Repl reads, compiles and runs one expression per line from stdin,
// mirroring original_source/src/bin/main.rs's repl(): a ">> " prompt, a
// "=> " result line, a "!! " error line, and a case-insensitive "exit" to
// quit. --silent suppresses the prompt and result printing; errors always
// print.
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	prompt := color.New(color.FgCyan)
	okColor := color.New(color.FgGreen)
	errColor := color.New(color.FgRed)
	if c.Color {
		prompt.EnableColor()
		okColor.EnableColor()
		errColor.EnableColor()
	}

	sc := bufio.NewScanner(stdio.Stdin)
	for {
		if ctx.Err() != nil {
			return nil
		}

		if !c.Silent {
			prompt.Fprint(stdio.Stdout, ">> ")
		}
		if !sc.Scan() {
			return sc.Err()
		}

		line := sc.Text()
		if strings.EqualFold(strings.TrimSpace(line), "exit") {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		v, err := evalLine(line, stdio, stepLimit(c.Steps))
		if err != nil {
			errColor.Fprintf(stdio.Stdout, "!! %s\n", err)
			continue
		}
		if !c.Silent {
			okColor.Fprintf(stdio.Stdout, "=> %s\n", v)
		}
	}
}

func evalLine(src string, stdio mainer.Stdio, steps uint64) (machine.Value, error) {
	expr, err := parser.ParseBytes([]byte(src))
	if err != nil {
		return nil, err
	}
	prog, err := compiler.Compile(expr)
	if err != nil {
		return nil, err
	}
	vm := machine.New(prog, stdio.Stdin, stdio.Stdout, steps)
	return vm.Run()
}
