package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/miniplc0/compiler/diag"
	"github.com/slowlang/miniplc0/compiler/format"
	"github.com/slowlang/miniplc0/compiler/vm"
)

const sum = `begin
  const a = 1;
  var b = 2;
  var c;
  c = 3;
  print(a+b+c);
end
`

func TestCompileAndRun(t *testing.T) {
	ctx := context.Background()

	code, err := Compile(ctx, "sum", []byte(sum))
	require.NoError(t, err)

	assert.Equal(t, "LIT 1\nLIT 2\nLIT 0\nLIT 3\nSTO 2\nLOD 0\nLOD 1\nADD 0\nLOD 2\nADD 0\nWRT 0\n", string(format.Format(nil, code)))

	out, err := vm.Run(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, []int32{6}, out)
}

func TestCompileFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "sum.plc0")

	err := os.WriteFile(name, []byte(sum), 0o644)
	require.NoError(t, err)

	code, err := CompileFile(context.Background(), name)
	require.NoError(t, err)
	assert.Len(t, code, 11)
}

func TestCompileFileMissing(t *testing.T) {
	code, err := CompileFile(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Nil(t, code)

	e, ok := Diag(err)
	require.True(t, ok)
	assert.Equal(t, diag.StreamError, e.Kind)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompileErrors(t *testing.T) {
	for _, tc := range []struct {
		text string
		exp  *diag.Error
	}{
		{"begin 2147483648 end", diag.New(diag.Pos{Line: 0, Col: 6}, diag.IntegerOverflow)},
		{"begin\n  var x = 1 ?\nend", diag.New(diag.Pos{Line: 1, Col: 12}, diag.InvalidInput)},
		{"begin\n  const x = 1;\n  x = 2;\nend", diag.New(diag.Pos{Line: 2, Col: 3}, diag.AssignToConstant)},
	} {
		code, err := Compile(context.Background(), "", []byte(tc.text))
		assert.Nil(t, code)

		e, ok := Diag(err)
		require.True(t, ok, "%q: %v", tc.text, err)
		assert.Equal(t, tc.exp.Kind, e.Kind, "%q", tc.text)
		assert.Equal(t, tc.exp.Pos, e.Pos, "%q", tc.text)
		assert.ErrorIs(t, err, tc.exp)
	}
}

func TestDiagNone(t *testing.T) {
	_, ok := Diag(nil)
	assert.False(t, ok)
}
