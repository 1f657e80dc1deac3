package analyze

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/slowlang/miniplc0/compiler/diag"
	"github.com/slowlang/miniplc0/compiler/ir"
	"github.com/slowlang/miniplc0/compiler/lex"
)

type (
	state struct {
		toks []lex.Token
		i    int

		pos diag.Pos // end of the last read token

		syms *symtab
		code []ir.Instruction

		tr tlog.Span
	}
)

var binops = map[lex.Kind]ir.Op{
	lex.PLUS:  ir.ADD,
	lex.MINUS: ir.SUB,
	lex.STAR:  ir.MUL,
	lex.SLASH: ir.DIV,
}

// Analyze translates tokens into stack machine code.
//
// Code is emitted while parsing; declarations emit only LIT, assignments emit
// the expression followed by STO. The first problem found is returned as
// *diag.Error and no code is returned with it.
func Analyze(ctx context.Context, toks []lex.Token) (code []ir.Instruction, err error) {
	s := &state{
		toks: toks,
		syms: newSymtab(),
		tr:   tlog.SpanFromContext(ctx),
	}

	err = s.program()
	if err != nil {
		return nil, err
	}

	s.tr.Printw("analyzed", "instructions", len(s.code), "slots", s.syms.size())

	return s.code, nil
}

func (s *state) program() error {
	if _, ok := s.accept(lex.BEGIN); !ok {
		return s.fail(diag.NoBegin)
	}

	err := s.main()
	if err != nil {
		return err
	}

	if _, ok := s.accept(lex.END); !ok {
		return s.fail(diag.NoEnd)
	}

	return nil
}

func (s *state) main() (err error) {
	if err = s.constDecls(); err != nil {
		return err
	}

	if err = s.varDecls(); err != nil {
		return err
	}

	return s.stmtSeq()
}

func (s *state) constDecls() error {
	for {
		if _, ok := s.accept(lex.CONST); !ok {
			return nil
		}

		id, ok := s.accept(lex.IDENTIFIER)
		if !ok {
			return s.fail(diag.NeedIdentifier)
		}

		if s.syms.declared(id.Text) {
			return s.fail(diag.DuplicateDeclaration)
		}

		s.syms.addConst(id.Text)

		if _, ok := s.accept(lex.EQUALS); !ok {
			return s.fail(diag.ConstantNeedValue)
		}

		v, err := s.constExpr()
		if err != nil {
			return err
		}

		if _, ok := s.accept(lex.SEMICOLON); !ok {
			return s.fail(diag.NoSemicolon)
		}

		s.emit(ir.LIT, v)
	}
}

func (s *state) varDecls() error {
	for {
		if _, ok := s.accept(lex.VAR); !ok {
			return nil
		}

		id, ok := s.accept(lex.IDENTIFIER)
		if !ok {
			return s.fail(diag.NeedIdentifier)
		}

		if s.syms.declared(id.Text) {
			return s.fail(diag.DuplicateDeclaration)
		}

		if _, ok := s.accept(lex.EQUALS); ok {
			err := s.expr()
			if err != nil {
				return err
			}

			s.syms.addVar(id.Text)
		} else {
			s.syms.addUninit(id.Text)

			s.emit(ir.LIT, 0)
		}

		if _, ok := s.accept(lex.SEMICOLON); !ok {
			return s.fail(diag.NoSemicolon)
		}
	}
}

func (s *state) stmtSeq() (err error) {
	for {
		t, ok := s.accept(lex.SEMICOLON, lex.IDENTIFIER, lex.PRINT)
		if !ok {
			return nil
		}

		switch t.Kind {
		case lex.IDENTIFIER:
			err = s.assignStmt(t)
		case lex.PRINT:
			err = s.outputStmt()
		}

		if err != nil {
			return err
		}
	}
}

func (s *state) assignStmt(id lex.Token) error {
	name := id.Text

	if !s.syms.declared(name) {
		return s.fail(diag.NotDeclared)
	}

	if s.syms.isConst(name) {
		return s.fail(diag.AssignToConstant)
	}

	if _, ok := s.accept(lex.EQUALS); !ok {
		return s.fail(diag.IncompleteExpression)
	}

	err := s.expr()
	if err != nil {
		return err
	}

	s.syms.initialize(name)

	if _, ok := s.accept(lex.SEMICOLON); !ok {
		return s.fail(diag.NoSemicolon)
	}

	slot, _ := s.syms.slot(name)

	s.emit(ir.STO, slot)

	return nil
}

func (s *state) outputStmt() error {
	if _, ok := s.accept(lex.LPAREN); !ok {
		return s.fail(diag.InvalidPrint)
	}

	err := s.expr()
	if err != nil {
		return err
	}

	if _, ok := s.accept(lex.RPAREN); !ok {
		return s.fail(diag.InvalidPrint)
	}

	if _, ok := s.accept(lex.SEMICOLON); !ok {
		return s.fail(diag.NoSemicolon)
	}

	s.emit(ir.WRT, 0)

	return nil
}

// constExpr folds the sign into the literal.
func (s *state) constExpr() (v int32, err error) {
	sign, _ := s.accept(lex.PLUS, lex.MINUS)

	t, ok := s.accept(lex.UNSIGNED_INTEGER)
	if !ok {
		return 0, s.fail(diag.IncompleteExpression)
	}

	v = t.Value

	if sign.Kind == lex.MINUS {
		v = -v
	}

	return v, nil
}

func (s *state) expr() error {
	return s.leftToRight(s.item, lex.PLUS, lex.MINUS)
}

func (s *state) item() error {
	return s.leftToRight(s.factor, lex.STAR, lex.SLASH)
}

// leftToRight emits arg { op arg } as a left fold.
func (s *state) leftToRight(arg func() error, ops ...lex.Kind) error {
	err := arg()
	if err != nil {
		return err
	}

	for {
		op, ok := s.accept(ops...)
		if !ok {
			return nil
		}

		err = arg()
		if err != nil {
			return err
		}

		s.emit(binops[op.Kind], 0)
	}
}

func (s *state) factor() (err error) {
	sign, ok := s.next()
	if !ok {
		return s.fail(diag.IncompleteExpression)
	}

	switch sign.Kind {
	case lex.PLUS:
	case lex.MINUS:
		s.emit(ir.LIT, 0)
	default:
		s.unread()
	}

	t, ok := s.next()
	if !ok {
		return s.fail(diag.IncompleteExpression)
	}

	switch t.Kind {
	case lex.IDENTIFIER:
		err = s.load(t.Text)
	case lex.UNSIGNED_INTEGER:
		s.emit(ir.LIT, t.Value)
	case lex.LPAREN:
		err = s.expr()
		if err != nil {
			return err
		}

		if _, ok := s.accept(lex.RPAREN); !ok {
			return s.fail(diag.IncompleteExpression)
		}
	default:
		return s.fail(diag.IncompleteExpression)
	}

	if err != nil {
		return err
	}

	if sign.Kind == lex.MINUS {
		s.emit(ir.SUB, 0)
	}

	return nil
}

func (s *state) load(name string) error {
	slot, ok := s.syms.slot(name)
	if !ok {
		return s.fail(diag.NotDeclared)
	}

	if s.syms.isUninit(name) {
		return s.fail(diag.NotInitialized)
	}

	s.emit(ir.LOD, slot)

	return nil
}

func (s *state) emit(op ir.Op, arg int32) {
	s.code = append(s.code, ir.Instruction{Op: op, Arg: arg})

	if s.tr.If("emit") {
		s.tr.Printw("emit", "op", op, "arg", arg, "pos", s.pos)
	}
}

func (s *state) fail(k diag.Kind) error {
	return diag.New(s.pos, k)
}
