package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/miniplc0/compiler"
	"github.com/slowlang/miniplc0/compiler/format"
	"github.com/slowlang/miniplc0/compiler/ir"
	"github.com/slowlang/miniplc0/compiler/lex"
	"github.com/slowlang/miniplc0/compiler/vm"
)

// ListingExt marks files holding compiled listings rather than source.
const ListingExt = ".lst"

func main() {
	tokenizeCmd := &cli.Command{
		Name:        "tokenize",
		Description: "print source tokens",
		Action:      tokenizeAct,
		Args:        cli.Args{},
	}

	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "print instruction listing",
		Action:      compileAct,
		Args:        cli.Args{},
	}

	runCmd := &cli.Command{
		Name:        "run",
		Description: "compile (or load " + ListingExt + " listing) and execute",
		Action:      runAct,
		Args:        cli.Args{},
	}

	app := &cli.Command{
		Name:        "miniplc0",
		Description: "miniplc0 compiles begin/end programs into stack machine code",
		Commands: []*cli.Command{
			tokenizeCmd,
			compileCmd,
			runCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func tokenizeAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		text, err := os.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "read %v", a)
		}

		toks, err := lex.Tokenize(ctx, text)
		if err != nil {
			return report(a, err)
		}

		for _, t := range toks {
			fmt.Printf("%v\n", t)
		}
	}

	return nil
}

func compileAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		code, err := compiler.CompileFile(ctx, a)
		if err != nil {
			return report(a, err)
		}

		fmt.Printf("%s", format.Format(nil, code))
	}

	return nil
}

func runAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		code, err := load(ctx, a)
		if err != nil {
			return report(a, err)
		}

		out, err := vm.Run(ctx, code)
		if err != nil {
			return errors.Wrap(err, "run %v", a)
		}

		for _, v := range out {
			fmt.Printf("%d\n", v)
		}
	}

	return nil
}

func load(ctx context.Context, name string) ([]ir.Instruction, error) {
	if filepath.Ext(name) != ListingExt {
		return compiler.CompileFile(ctx, name)
	}

	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return format.Parse(text)
}

func report(name string, err error) error {
	if e, ok := compiler.Diag(err); ok {
		return errors.New("%v:%v: %v", name, e.Pos, e.Kind)
	}

	return errors.Wrap(err, "compile %v", name)
}
