package machine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unlambda-go/unlambda/lang/compiler"
	"github.com/unlambda-go/unlambda/lang/parser"
)

// run compiles src and executes it against stdin and a captured stdout,
// mirroring the teacher's machine_test.go pattern of driving a Thread
// end-to-end from source text rather than hand-built instruction arrays.
func run(t *testing.T, src, stdin string) (Value, string) {
	t.Helper()
	expr, err := parser.ParseBytes([]byte(src))
	require.NoError(t, err)
	prog, err := compiler.Compile(expr)
	require.NoError(t, err)

	var out bytes.Buffer
	vm := New(prog, strings.NewReader(stdin), &out, 1_000_000)
	result, err := vm.Run()
	require.NoError(t, err)
	return result, out.String()
}

// TestConcreteScenarios exercises every numbered program in spec.md §8.
func TestConcreteScenarios(t *testing.T) {
	t.Run("skss reduces to S", func(t *testing.T) {
		v, _ := run(t, "```skss", "")
		require.Equal(t, KindS, v.Kind())
	})

	t.Run("ii reduces to I", func(t *testing.T) {
		v, _ := run(t, "`ii", "")
		require.Equal(t, KindI, v.Kind())
	})

	t.Run("ksi reduces to S", func(t *testing.T) {
		v, _ := run(t, "``ksi", "")
		require.Equal(t, KindS, v.Kind())
	})

	t.Run("d.ir yields an unforced promise", func(t *testing.T) {
		v, _ := run(t, "`d`ir", "")
		d1, ok := v.(*D1)
		require.True(t, ok, "expected *D1, got %T", v)
		require.True(t, d1.Expr.HasAddr)
	})

	t.Run("forcing d.ir applies the result", func(t *testing.T) {
		v, out := run(t, "``d`iri", "")
		require.Equal(t, KindI, v.Kind())
		require.Equal(t, "\n", out)
	})

	t.Run("forcing a compound promise", func(t *testing.T) {
		v, _ := run(t, "``d```skssi", "")
		s1, ok := v.(*S1)
		require.True(t, ok, "expected *S1, got %T", v)
		require.Equal(t, KindI, s1.V.Kind())
	})

	t.Run("cii reduces to I", func(t *testing.T) {
		v, _ := run(t, "``cii", "")
		require.Equal(t, KindI, v.Kind())
	})

	t.Run("cir reduces to a newline-printing Dot", func(t *testing.T) {
		v, _ := run(t, "``cir", "")
		dot, ok := v.(*DotValue)
		require.True(t, ok, "expected *DotValue, got %T", v)
		require.Equal(t, '\n', dot.Char)
	})

	t.Run("call/cc short-circuits the continuation", func(t *testing.T) {
		v, _ := run(t, "`c``s`kr``si`ki", "")
		require.Equal(t, KindI, v.Kind())
	})

	t.Run("sddk applies D at runtime, not compile time", func(t *testing.T) {
		v, _ := run(t, "```sddk", "")
		k1, ok := v.(*K1)
		require.True(t, ok, "expected *K1, got %T", v)
		d1, ok := k1.V.(*D1)
		require.True(t, ok, "expected K1's value to be *D1, got %T", k1.V)
		require.NotNil(t, d1.Expr.Func)
		require.Equal(t, KindK, d1.Expr.Func.Kind())
	})

	t.Run("prints exactly the requested bytes", func(t *testing.T) {
		// `r`.i`.Hi: nested so the H-printing Invoke fires first, then i,
		// then the newline (r is sugar for .\n), each returning I to the
		// application that's waiting on it.
		v, out := run(t, "`r`.i`.Hi", "")
		require.Equal(t, KindI, v.Kind())
		require.Equal(t, "Hi\n", out)
	})
}

// TestFinishCleanliness checks the invariant of spec.md §8: at Finish the
// operand stack holds exactly one value and the return stack only the
// sentinel. Every program in this package's other tests would already
// surface a *Bug through Run's own assertions if it were violated; this
// test exists to name the property explicitly.
func TestFinishCleanliness(t *testing.T) {
	v, _ := run(t, "``ksi", "")
	require.NotNil(t, v)
}

func TestReadYieldsVAtEOF(t *testing.T) {
	// `@i reads one char; at EOF it behaves as if applied to V instead of
	// I, so `@i with empty input reduces to (i V) = V.
	v, _ := run(t, "`@i", "")
	require.Equal(t, KindV, v.Kind())
}

func TestReadThenCompare(t *testing.T) {
	// ``@i`?ak: read one char (discarding its value via I), then compare
	// the latched char to 'a' and apply K to the result. With stdin "a"
	// the comparison succeeds, producing (K I) = K1(I).
	v, _ := run(t, "``@i`?ak", "a")
	k1, ok := v.(*K1)
	require.True(t, ok, "expected *K1, got %T", v)
	require.Equal(t, KindI, k1.V.Kind())
}

func TestPushRStackCoalescesTailCalls(t *testing.T) {
	stack := []RFrame{{To: 10, From: 20}}
	stack = pushRStack(stack, 20, 30)
	require.Equal(t, []RFrame{{To: 10, From: 30}}, stack)

	stack = pushRStack(stack, 99, 100)
	require.Equal(t, []RFrame{{To: 10, From: 30}, {To: 99, From: 100}}, stack)
}
