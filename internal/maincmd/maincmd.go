// Package maincmd wires CLI flags and subcommands (run, repl, parse,
// tokenize, asm) on top of github.com/mna/mainer, the same library and
// dispatch pattern the teacher's internal/maincmd/maincmd.go uses.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "unlambda"

var knownCommands = map[string]bool{
	"run": true, "repl": true, "parse": true, "tokenize": true, "asm": true,
}

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<command>] [<path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<command>] [<path>]
       %[1]s -h|--help
       %[1]s -v|--version

An interpreter for Unlambda, the purely applicative combinator language.
With no arguments, starts a REPL. With a single path argument and no
recognized <command>, runs that file (shorthand for "%[1]s run <path>").

The <command> can be one of:
       run <path>                Parse and execute a source file,
                                 discarding its result.
       repl                      Read, compile and run one expression at a
                                 time from standard input.
       parse <path>              Print the parsed syntax tree.
       tokenize <path>           Print the token stream.
       asm <path>                Print the compiled opcode array.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -s --silent               In repl mode, suppress the prompt and
                                 result printing (errors still print).
       -steps <n>                Cap the VM's step count (0 = unlimited).
       -color                    Force-enable colorized repl output even
                                 when stdout is not a terminal.
`, binName)
)

// Cmd holds the parsed flags and dispatches to the command methods below,
// following the teacher's reflection-based Cmd/buildCmds pattern.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`
	Silent  bool `flag:"s,silent"`
	Steps   int  `flag:"steps"`
	Color   bool `flag:"color"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	cmdName := "repl"
	rest := c.args
	if len(c.args) > 0 {
		if knownCommands[c.args[0]] {
			cmdName = c.args[0]
			rest = c.args[1:]
		} else {
			// A bare path argument is shorthand for "run <path>".
			cmdName = "run"
		}
	}

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}
	c.args = rest

	switch cmdName {
	case "run", "parse", "tokenize", "asm":
		if len(rest) == 0 {
			return fmt.Errorf("%s: a source file path is required", cmdName)
		}
	case "repl":
		if len(rest) != 0 {
			return errors.New("repl: unexpected arguments (did you mean to pass a <path>?)")
		}
	}

	if c.Silent && cmdName != "repl" {
		return fmt.Errorf("%s: --silent is only valid with repl", cmdName)
	}

	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: strings.ToUpper(binName) + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// buildCmds reflects over v's methods, picking out the ones shaped like a
// subcommand (ctx, Stdio, []string) error, exactly as the teacher's
// buildCmds does for its own three commands.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
