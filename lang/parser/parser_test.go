package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unlambda-go/unlambda/lang/ast"
)

func TestParseCombinator(t *testing.T) {
	expr, err := ParseBytes([]byte("i"))
	require.NoError(t, err)
	c, ok := expr.(*ast.Combinator)
	require.True(t, ok, "expected *ast.Combinator, got %T", expr)
	require.Equal(t, ast.I, c.Kind)
}

func TestParseApplicationBacktickAndBracket(t *testing.T) {
	for _, src := range []string{"`ii", "[ii"} {
		expr, err := ParseBytes([]byte(src))
		require.NoError(t, err)
		app, ok := expr.(*ast.Application)
		require.True(t, ok, "expected *ast.Application, got %T", expr)
		require.IsType(t, &ast.Combinator{}, app.Func)
		require.IsType(t, &ast.Combinator{}, app.Arg)
	}
}

func TestParseNestedApplicationIsLeftRecursiveFree(t *testing.T) {
	// ``iii parses as ((i i) i): the outer application's Func is itself
	// an Application, its Arg a plain Combinator.
	expr, err := ParseBytes([]byte("``iii"))
	require.NoError(t, err)
	outer, ok := expr.(*ast.Application)
	require.True(t, ok)
	inner, ok := outer.Func.(*ast.Application)
	require.True(t, ok, "expected outer.Func to be *ast.Application, got %T", outer.Func)
	require.IsType(t, &ast.Combinator{}, inner.Func)
	require.IsType(t, &ast.Combinator{}, inner.Arg)
	require.IsType(t, &ast.Combinator{}, outer.Arg)
}

func TestParseDotAndQuestionCarryChar(t *testing.T) {
	expr, err := ParseBytes([]byte(".x"))
	require.NoError(t, err)
	c := expr.(*ast.Combinator)
	require.Equal(t, ast.DotPrint, c.Kind)
	require.Equal(t, 'x', c.Char)

	expr, err = ParseBytes([]byte("?y"))
	require.NoError(t, err)
	c = expr.(*ast.Combinator)
	require.Equal(t, ast.Compare, c.Kind)
	require.Equal(t, 'y', c.Char)
}

func TestParseRDesugarsToNewlineDot(t *testing.T) {
	expr, err := ParseBytes([]byte("r"))
	require.NoError(t, err)
	c := expr.(*ast.Combinator)
	require.Equal(t, ast.DotPrint, c.Kind)
	require.Equal(t, '\n', c.Char)
}

func TestParseRejectsTrailingContent(t *testing.T) {
	_, err := ParseBytes([]byte("ii"))
	require.Error(t, err)
}

func TestParseRejectsUnexpectedEOF(t *testing.T) {
	_, err := ParseBytes([]byte("`i"))
	require.Error(t, err)
}

func TestParseSkipsWhitespaceAndComments(t *testing.T) {
	expr, err := ParseBytes([]byte("  # leading comment\n` i i # trailing\n"))
	require.NoError(t, err)
	require.IsType(t, &ast.Application{}, expr)
}
