package ast_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/unlambda-go/unlambda/internal/filetest"
	"github.com/unlambda-go/unlambda/lang/parser"
)

var updateDumps = false

// TestDump golden-tests ast.Node's Format output against testdata/*.unl.want,
// mirroring the teacher's golden-file convention (internal/filetest) for
// its own AST-dump and disassembly tests.
func TestDump(t *testing.T) {
	const dir = "testdata"
	for _, fi := range filetest.SourceFiles(t, dir, ".unl") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			b, err := os.ReadFile(filepath.Join(dir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}
			expr, err := parser.ParseBytes(b)
			if err != nil {
				t.Fatal(err)
			}
			out := fmt.Sprintf("%v\n", expr)
			filetest.DiffCustom(t, fi, "ast", ".want", out, dir, &updateDumps)
		})
	}
}
