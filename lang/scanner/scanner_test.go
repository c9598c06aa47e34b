package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	var s Scanner
	s.Init([]byte(src))
	var toks []Token
	for {
		tok, _, err := s.Scan()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok == EOF {
			return toks
		}
	}
}

func TestScanApplicationAndCombinators(t *testing.T) {
	toks := scanAll(t, "`ii")
	require.Equal(t, []Token{APPLY, COMBINATOR, COMBINATOR, EOF}, toks)
}

func TestScanBracketIsAlsoApply(t *testing.T) {
	toks := scanAll(t, "[ii")
	require.Equal(t, []Token{APPLY, COMBINATOR, COMBINATOR, EOF}, toks)
}

func TestScanDotAndQuestionCarryTheirChar(t *testing.T) {
	var s Scanner
	s.Init([]byte(".x?y"))

	tok, val, err := s.Scan()
	require.NoError(t, err)
	require.Equal(t, DOTCHAR, tok)
	require.Equal(t, 'x', val.Lit)

	tok, val, err = s.Scan()
	require.NoError(t, err)
	require.Equal(t, QUESTION, tok)
	require.Equal(t, 'y', val.Lit)
}

func TestScanLettersAreCaseInsensitive(t *testing.T) {
	var s Scanner
	s.Init([]byte("IKSVDCE"))
	for _, want := range []rune{'i', 'k', 's', 'v', 'd', 'c', 'e'} {
		tok, val, err := s.Scan()
		require.NoError(t, err)
		require.Equal(t, COMBINATOR, tok)
		require.Equal(t, want, val.Lit)
	}
}

func TestScanRAliasesToLowercaseR(t *testing.T) {
	var s Scanner
	s.Init([]byte("R"))
	tok, val, err := s.Scan()
	require.NoError(t, err)
	require.Equal(t, COMBINATOR, tok)
	require.Equal(t, 'r', val.Lit)
}

func TestScanSkipsWhitespaceAndComments(t *testing.T) {
	toks := scanAll(t, "  # a comment\n`  i # trailing\n  i")
	require.Equal(t, []Token{APPLY, COMBINATOR, COMBINATOR, EOF}, toks)
}

func TestScanIllegalCharacter(t *testing.T) {
	var s Scanner
	s.Init([]byte("x"))
	tok, _, err := s.Scan()
	require.Equal(t, ILLEGAL, tok)
	require.Error(t, err)
}

func TestScanUnexpectedEOFAfterDot(t *testing.T) {
	var s Scanner
	s.Init([]byte("."))
	tok, _, err := s.Scan()
	require.Equal(t, ILLEGAL, tok)
	require.Error(t, err)
}
