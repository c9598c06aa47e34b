// Package scanner tokenizes Unlambda source text. Much of its structure
// (Init/Scan, the ScanFiles convenience wrapper, TokenAndValue pairing) is
// adapted from the teacher's lang/scanner package, simplified down to the
// six token kinds needed for the alphabet of spec.md §6.
package scanner

import (
	"fmt"
	"os"
	"unicode"

	"github.com/unlambda-go/unlambda/lang/token"
)

// Token identifies the lexical class of a scanned token.
type Token int8

const ( //nolint:revive
	ILLEGAL Token = iota
	EOF
	APPLY      // ` or [
	COMBINATOR // i k s v d c e @ | r, Value.Lit holds the canonical lowercase letter/symbol
	DOTCHAR    // .x, Value.Lit holds x
	QUESTION   // ?x, Value.Lit holds x
)

func (t Token) String() string {
	switch t {
	case ILLEGAL:
		return "illegal token"
	case EOF:
		return "end of file"
	case APPLY:
		return "apply"
	case COMBINATOR:
		return "combinator"
	case DOTCHAR:
		return "dotchar"
	case QUESTION:
		return "question"
	default:
		return fmt.Sprintf("token(%d)", t)
	}
}

// Value carries the per-token payload: its position and, for tokens that
// need one, the associated rune.
type Value struct {
	Pos token.Pos
	Lit rune
}

// TokenAndValue combines the token type with its value, for the tokenize
// CLI command.
type TokenAndValue struct {
	Token Token
	Value Value
}

// Error reports a lexical error at a position.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// Scanner tokenizes a single source text.
type Scanner struct {
	src        []rune
	offset     int
	line, col  int
	sawNewline bool
}

// Init prepares s to scan src.
func (s *Scanner) Init(src []byte) {
	s.src = []rune(string(src))
	s.offset = 0
	s.line, s.col = 1, 1
	s.sawNewline = false
}

func (s *Scanner) peek() (rune, bool) {
	if s.offset >= len(s.src) {
		return 0, false
	}
	return s.src[s.offset], true
}

func (s *Scanner) advance() rune {
	r := s.src[s.offset]
	s.offset++
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *Scanner) pos() token.Pos { return token.MakePos(s.line, s.col) }

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		r, ok := s.peek()
		if !ok {
			return
		}
		switch {
		case r == '#':
			for {
				r, ok := s.peek()
				if !ok || r == '\n' {
					break
				}
				s.advance()
			}
		case unicode.IsSpace(r):
			s.advance()
		default:
			return
		}
	}
}

// Scan returns the next token and its value. It returns (EOF, _, nil) once
// the source is exhausted.
func (s *Scanner) Scan() (Token, Value, error) {
	s.skipWhitespaceAndComments()

	r, ok := s.peek()
	if !ok {
		return EOF, Value{Pos: s.pos()}, nil
	}

	pos := s.pos()
	s.advance()

	switch r {
	case '`', '[':
		return APPLY, Value{Pos: pos}, nil
	case '.':
		c, ok := s.peek()
		if !ok {
			return ILLEGAL, Value{Pos: pos}, &Error{Pos: pos, Msg: "unexpected EOF after '.'"}
		}
		s.advance()
		return DOTCHAR, Value{Pos: pos, Lit: c}, nil
	case '?':
		c, ok := s.peek()
		if !ok {
			return ILLEGAL, Value{Pos: pos}, &Error{Pos: pos, Msg: "unexpected EOF after '?'"}
		}
		s.advance()
		return QUESTION, Value{Pos: pos, Lit: c}, nil
	case 'r', 'R':
		return COMBINATOR, Value{Pos: pos, Lit: 'r'}, nil
	case '@', '|':
		return COMBINATOR, Value{Pos: pos, Lit: r}, nil
	default:
		if lower := unicode.ToLower(r); isPrimLetter(lower) {
			return COMBINATOR, Value{Pos: pos, Lit: lower}, nil
		}
		return ILLEGAL, Value{Pos: pos}, &Error{Pos: pos, Msg: fmt.Sprintf("unexpected token %q", r)}
	}
}

func isPrimLetter(r rune) bool {
	switch r {
	case 'i', 'k', 's', 'v', 'd', 'c', 'e':
		return true
	}
	return false
}

// ScanFiles is a helper that tokenizes the named source files, returning
// one token slice per file, and the first error encountered (scanning
// continues across files after an error, mirroring the teacher's
// ScanFiles).
func ScanFiles(files ...string) (*token.FileSet, [][]TokenAndValue, error) {
	fs := token.NewFileSet()
	tokensByFile := make([][]TokenAndValue, len(files))
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

		var s Scanner
		s.Init(b)
		for {
			tok, val, err := s.Scan()
			if err != nil && firstErr == nil {
				firstErr = err
			}
			tokensByFile[i] = append(tokensByFile[i], TokenAndValue{Token: tok, Value: val})
			if tok == EOF {
				break
			}
		}
	}
	return fs, tokensByFile, firstErr
}
