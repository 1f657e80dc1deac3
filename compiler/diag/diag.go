package diag

import (
	"fmt"
)

type (
	// Pos is a zero-based line and column in the source text.
	Pos struct {
		Line int
		Col  int
	}

	Kind int

	// Error is a compilation error.
	// At most one is produced per compilation.
	Error struct {
		Pos  Pos
		Kind Kind

		Cause error
	}
)

const (
	_ Kind = iota

	StreamError
	IntegerOverflow
	InvalidInput
	InvalidIdentifier
	NoBegin
	NoEnd
	NeedIdentifier
	ConstantNeedValue
	NoSemicolon
	IncompleteExpression
	NotDeclared
	AssignToConstant
	DuplicateDeclaration
	NotInitialized
	InvalidPrint

	numKinds
)

var kindNames = [numKinds]string{
	StreamError:          "stream error",
	IntegerOverflow:      "integer overflow",
	InvalidInput:         "invalid input",
	InvalidIdentifier:    "invalid identifier",
	NoBegin:              "no begin",
	NoEnd:                "no end",
	NeedIdentifier:       "need identifier",
	ConstantNeedValue:    "constant need value",
	NoSemicolon:          "no semicolon",
	IncompleteExpression: "incomplete expression",
	NotDeclared:          "not declared",
	AssignToConstant:     "assign to constant",
	DuplicateDeclaration: "duplicate declaration",
	NotInitialized:       "not initialized",
	InvalidPrint:         "invalid print",
}

func New(pos Pos, k Kind) *Error {
	return &Error{
		Pos:  pos,
		Kind: k,
	}
}

// Next returns the position after c.
func (p Pos) Next(c byte) Pos {
	if c == '\n' {
		return Pos{Line: p.Line + 1}
	}

	return Pos{Line: p.Line, Col: p.Col + 1}
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

func (k Kind) String() string {
	if k > 0 && k < numKinds {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %v: %v", e.Pos, e.Kind, e.Cause)
	}

	return fmt.Sprintf("%v: %v", e.Pos, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports a match against another *Error with the same position and kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.Pos == e.Pos && t.Kind == e.Kind
}
