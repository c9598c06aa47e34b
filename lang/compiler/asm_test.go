package compiler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unlambda-go/unlambda/lang/parser"
)

func TestDisassembleLabelsEntryAndMicrocode(t *testing.T) {
	expr, err := parser.ParseBytes([]byte("`ii"))
	require.NoError(t, err)
	p, err := Compile(expr)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Disassemble(&buf, p))

	out := buf.String()
	require.Contains(t, out, "s2:")
	require.Contains(t, out, "d1promise:")
	require.Contains(t, out, "d1application:")
	require.Contains(t, out, "entry:")
	require.Equal(t, len(p.Code), strings.Count(out, "\n"))
}
