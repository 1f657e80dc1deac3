package ir

import (
	"fmt"
)

type (
	Op int

	// Instruction is a single stack machine instruction.
	// Arg is the immediate for LIT, the slot for LOD and STO, and zero otherwise.
	Instruction struct {
		Op  Op
		Arg int32
	}
)

const (
	_ Op = iota

	LIT // push Arg
	LOD // push slot Arg
	STO // pop into slot Arg
	ADD
	SUB
	MUL
	DIV
	WRT // pop and print

	numOps
)

var opNames = [numOps]string{
	LIT: "LIT",
	LOD: "LOD",
	STO: "STO",
	ADD: "ADD",
	SUB: "SUB",
	MUL: "MUL",
	DIV: "DIV",
	WRT: "WRT",
}

// ParseOp returns the Op named s.
func ParseOp(s string) (Op, bool) {
	for op := LIT; op < numOps; op++ {
		if opNames[op] == s {
			return op, true
		}
	}

	return 0, false
}

func (op Op) Valid() bool {
	return op > 0 && op < numOps
}

func (op Op) String() string {
	if op.Valid() {
		return opNames[op]
	}

	return fmt.Sprintf("Op(%d)", int(op))
}

func (x Instruction) String() string {
	return fmt.Sprintf("%v %d", x.Op, x.Arg)
}
