// Package parser turns an Unlambda token stream into an ast.Expr, the
// already-validated SyntaxTree that lang/compiler consumes (spec.md §1).
// Its recursive-descent structure follows both the teacher's
// lang/parser/parser.go entry-point style and, grammar-wise, the prototype
// this language was distilled from (original_source/src/parse.rs: consume
// whitespace/comments, dispatch on the lead token, recurse twice on an
// application marker, and reject trailing content after the root
// expression).
package parser

import (
	"fmt"
	"os"

	"github.com/unlambda-go/unlambda/lang/ast"
	"github.com/unlambda-go/unlambda/lang/scanner"
	"github.com/unlambda-go/unlambda/lang/token"
)

// Error reports a parse error with its position.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// Parser consumes a token stream and produces an ast.Expr.
type Parser struct {
	sc   scanner.Scanner
	tok  scanner.Token
	val  scanner.Value
	file *token.File
}

// ParseBytes parses the whole of src as a single Unlambda expression and
// verifies there is no trailing content afterwards.
func ParseBytes(src []byte) (ast.Expr, error) {
	var p Parser
	p.sc.Init(src)
	if err := p.next(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok != scanner.EOF {
		return nil, &Error{Pos: p.val.Pos, Msg: fmt.Sprintf("unexpected trailing content at %s", token.FormatPos(token.PosShort, nil, p.val.Pos))}
	}
	return expr, nil
}

// ParseFiles reads and parses each named file as a single expression,
// mirroring the teacher's ParseFiles entry point used by the parse/tokenize
// CLI commands. Parsing continues across files after an error so all
// independent errors can be reported in one pass.
func ParseFiles(files ...string) (*token.FileSet, []ast.Expr, error) {
	fs := token.NewFileSet()
	exprs := make([]ast.Expr, len(files))
	var firstErr error

	for i, name := range files {
		b, err := os.ReadFile(name)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fs.AddFile(name)

		expr, err := ParseBytes(b)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		exprs[i] = expr
	}
	return fs, exprs, firstErr
}

func (p *Parser) next() error {
	tok, val, err := p.sc.Scan()
	p.tok, p.val = tok, val
	return err
}

// parseExpr implements the grammar:
//
//	Expr := '`' Expr Expr | '[' Expr Expr | Combinator
func (p *Parser) parseExpr() (ast.Expr, error) {
	switch p.tok {
	case scanner.EOF:
		return nil, &Error{Pos: p.val.Pos, Msg: "unexpected EOF"}
	case scanner.ILLEGAL:
		return nil, &Error{Pos: p.val.Pos, Msg: fmt.Sprintf("unexpected token at %s", token.FormatPos(token.PosShort, nil, p.val.Pos))}
	case scanner.APPLY:
		start := p.val.Pos
		if err := p.next(); err != nil {
			return nil, err
		}
		fn, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Application{Func: fn, Arg: arg, Start: start}, nil
	case scanner.DOTCHAR:
		return &ast.Combinator{Kind: ast.DotPrint, Char: p.val.Lit, Pos: p.val.Pos}, nil
	case scanner.QUESTION:
		return &ast.Combinator{Kind: ast.Compare, Char: p.val.Lit, Pos: p.val.Pos}, nil
	case scanner.COMBINATOR:
		if p.val.Lit == 'r' {
			// 'r' is sugar for ".\n" (spec.md §6).
			return &ast.Combinator{Kind: ast.DotPrint, Char: '\n', Pos: p.val.Pos}, nil
		}
		return &ast.Combinator{Kind: letterKind(p.val.Lit), Char: p.val.Lit, Pos: p.val.Pos}, nil
	default:
		return nil, &Error{Pos: p.val.Pos, Msg: fmt.Sprintf("unexpected token at %s", token.FormatPos(token.PosShort, nil, p.val.Pos))}
	}
}

func letterKind(c rune) ast.Kind {
	switch c {
	case 'i':
		return ast.I
	case 'k':
		return ast.K
	case 's':
		return ast.S
	case 'v':
		return ast.V
	case 'd':
		return ast.D
	case 'c':
		return ast.C
	case 'e':
		return ast.E
	case '@':
		return ast.Read
	case '|':
		return ast.Reprint
	default:
		panic(fmt.Sprintf("internal error: scanner produced unknown combinator letter %q", c))
	}
}
