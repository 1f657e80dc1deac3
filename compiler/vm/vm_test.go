package vm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/miniplc0/compiler/ir"
)

func TestRun(t *testing.T) {
	code := []ir.Instruction{
		{Op: ir.LIT, Arg: 1},
		{Op: ir.LIT, Arg: 2},
		{Op: ir.LIT, Arg: 0},
		{Op: ir.LIT, Arg: 3},
		{Op: ir.STO, Arg: 2},
		{Op: ir.LOD, Arg: 0},
		{Op: ir.LOD, Arg: 1},
		{Op: ir.ADD},
		{Op: ir.LOD, Arg: 2},
		{Op: ir.ADD},
		{Op: ir.WRT},
	}

	out, err := Run(context.Background(), code)
	require.NoError(t, err)
	assert.Equal(t, []int32{6}, out)
}

func TestArith(t *testing.T) {
	for _, tc := range []struct {
		op   ir.Op
		l, r int32
		exp  int32
	}{
		{ir.ADD, 2, 3, 5},
		{ir.SUB, 2, 3, -1},
		{ir.MUL, -4, 3, -12},
		{ir.DIV, 7, 2, 3},
		{ir.DIV, -7, 2, -3},
		{ir.ADD, 2147483647, 1, -2147483648},
	} {
		out, err := Run(context.Background(), []ir.Instruction{
			{Op: ir.LIT, Arg: tc.l},
			{Op: ir.LIT, Arg: tc.r},
			{Op: tc.op},
			{Op: ir.WRT},
		})
		require.NoError(t, err)
		assert.Equal(t, []int32{tc.exp}, out, "%v %v %v", tc.l, tc.op, tc.r)
	}
}

func TestErrors(t *testing.T) {
	for _, tc := range []struct {
		code []ir.Instruction
		err  error
	}{
		{[]ir.Instruction{{Op: ir.WRT}}, ErrStackUnderflow},
		{[]ir.Instruction{{Op: ir.LIT, Arg: 1}, {Op: ir.ADD}}, ErrStackUnderflow},
		{[]ir.Instruction{{Op: ir.LOD, Arg: 0}}, ErrBadSlot},
		{[]ir.Instruction{{Op: ir.LIT, Arg: 1}, {Op: ir.STO, Arg: 3}}, ErrBadSlot},
		{[]ir.Instruction{{Op: ir.LIT, Arg: 1}, {Op: ir.LIT}, {Op: ir.DIV}}, ErrDivByZero},
		{[]ir.Instruction{{Op: 100}}, ErrUnknownOp},
	} {
		out, err := Run(context.Background(), tc.code)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, tc.err, "%v", tc.code)
	}
}

func TestReset(t *testing.T) {
	m := New(context.Background())

	err := m.Run([]ir.Instruction{{Op: ir.LIT, Arg: 5}, {Op: ir.LIT, Arg: 6}, {Op: ir.WRT}})
	require.NoError(t, err)
	assert.Equal(t, []int32{6}, m.Out)
	assert.Equal(t, []int32{5}, m.Stack)

	m.Reset()

	assert.Empty(t, m.Stack)
	assert.Empty(t, m.Out)
	assert.Equal(t, 0, m.IP)
}
