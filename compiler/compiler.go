package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/miniplc0/compiler/analyze"
	"github.com/slowlang/miniplc0/compiler/diag"
	"github.com/slowlang/miniplc0/compiler/ir"
	"github.com/slowlang/miniplc0/compiler/lex"
)

func CompileFile(ctx context.Context, name string) (code []ir.Instruction, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		e := diag.New(diag.Pos{}, diag.StreamError)
		e.Cause = err

		return nil, errors.Wrap(e, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text)
}

// Compile tokenizes and analyzes text.
// The *diag.Error, if any, can be recovered with errors.As.
func Compile(ctx context.Context, name string, text []byte) (code []ir.Instruction, err error) {
	toks, err := lex.Tokenize(ctx, text)
	if err != nil {
		return nil, errors.Wrap(err, "tokenize")
	}

	code, err = analyze.Analyze(ctx, toks)
	if err != nil {
		return nil, errors.Wrap(err, "analyze")
	}

	return code, nil
}

// Diag returns the compilation error wrapped into err.
func Diag(err error) (*diag.Error, bool) {
	var e *diag.Error

	ok := errors.As(err, &e)

	return e, ok
}
