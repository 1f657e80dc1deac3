package vm

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/miniplc0/compiler/ir"
)

type (
	// Machine executes stack machine code.
	// Slot i is the i-th cell from the bottom of the stack:
	// each declaration leaves its initial value there.
	Machine struct {
		Stack []int32
		IP    int

		Out []int32

		tr tlog.Span
	}
)

var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrBadSlot        = errors.New("bad slot")
	ErrDivByZero      = errors.New("division by zero")
	ErrUnknownOp      = errors.New("unknown op")
)

// Run executes code and returns the printed values.
func Run(ctx context.Context, code []ir.Instruction) ([]int32, error) {
	m := New(ctx)

	err := m.Run(code)
	if err != nil {
		return nil, err
	}

	return m.Out, nil
}

func New(ctx context.Context) *Machine {
	return &Machine{
		tr: tlog.SpanFromContext(ctx),
	}
}

// Reset clears the machine for reuse.
func (m *Machine) Reset() {
	m.Stack = m.Stack[:0]
	m.Out = m.Out[:0]
	m.IP = 0
}

func (m *Machine) Run(code []ir.Instruction) (err error) {
	for m.IP = 0; m.IP < len(code); m.IP++ {
		x := code[m.IP]

		if m.tr.If("vm") {
			m.tr.Printw("step", "ip", m.IP, "op", x.Op, "arg", x.Arg, "stack", m.Stack)
		}

		err = m.step(x)
		if err != nil {
			return errors.Wrap(err, "at %d: %v", m.IP, x)
		}
	}

	return nil
}

func (m *Machine) step(x ir.Instruction) error {
	switch x.Op {
	case ir.LIT:
		m.push(x.Arg)
	case ir.LOD:
		if x.Arg < 0 || int(x.Arg) >= len(m.Stack) {
			return ErrBadSlot
		}

		m.push(m.Stack[x.Arg])
	case ir.STO:
		v, err := m.pop()
		if err != nil {
			return err
		}

		if x.Arg < 0 || int(x.Arg) >= len(m.Stack) {
			return ErrBadSlot
		}

		m.Stack[x.Arg] = v
	case ir.ADD, ir.SUB, ir.MUL, ir.DIV:
		r, err := m.pop()
		if err != nil {
			return err
		}

		l, err := m.pop()
		if err != nil {
			return err
		}

		v, err := binop(x.Op, l, r)
		if err != nil {
			return err
		}

		m.push(v)
	case ir.WRT:
		v, err := m.pop()
		if err != nil {
			return err
		}

		m.Out = append(m.Out, v)
	default:
		return ErrUnknownOp
	}

	return nil
}

func binop(op ir.Op, l, r int32) (int32, error) {
	switch op {
	case ir.ADD:
		return l + r, nil
	case ir.SUB:
		return l - r, nil
	case ir.MUL:
		return l * r, nil
	case ir.DIV:
		if r == 0 {
			return 0, ErrDivByZero
		}

		return l / r, nil
	default:
		return 0, ErrUnknownOp
	}
}

func (m *Machine) push(v int32) {
	m.Stack = append(m.Stack, v)
}

func (m *Machine) pop() (v int32, err error) {
	if len(m.Stack) == 0 {
		return 0, ErrStackUnderflow
	}

	v = m.Stack[len(m.Stack)-1]
	m.Stack = m.Stack[:len(m.Stack)-1]

	return v, nil
}
