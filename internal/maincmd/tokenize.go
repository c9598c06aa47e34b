package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/unlambda-go/unlambda/lang/scanner"
	"github.com/unlambda-go/unlambda/lang/token"
)

// Tokenize prints the scanned token stream of each named source file.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	fs, toksByFile, err := scanner.ScanFiles(args...)
	for i, toks := range toksByFile {
		var file *token.File
		if i < len(args) {
			file = fs.File(args[i])
		}
		for _, tv := range toks {
			fmt.Fprintf(stdio.Stdout, "%s: %s", token.FormatPos(token.PosLong, file, tv.Value.Pos), tv.Token)
			if tv.Value.Lit != 0 {
				fmt.Fprintf(stdio.Stdout, " %q", tv.Value.Lit)
			}
			fmt.Fprintln(stdio.Stdout)
		}
	}
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
	}
	return err
}
