package lex

import (
	"fmt"

	"github.com/slowlang/miniplc0/compiler/diag"
)

type (
	Kind int

	// Token is a classified lexeme covering [Pos, End).
	Token struct {
		Kind Kind
		Pos  diag.Pos
		End  diag.Pos

		Text  string
		Value int32 // UNSIGNED_INTEGER only
	}
)

const (
	_ Kind = iota

	BEGIN
	END
	VAR
	CONST
	PRINT
	IDENTIFIER
	UNSIGNED_INTEGER
	PLUS
	MINUS
	STAR
	SLASH
	EQUALS
	LPAREN
	RPAREN
	SEMICOLON

	numKinds
)

var kindNames = [numKinds]string{
	BEGIN:            "BEGIN",
	END:              "END",
	VAR:              "VAR",
	CONST:            "CONST",
	PRINT:            "PRINT",
	IDENTIFIER:       "IDENTIFIER",
	UNSIGNED_INTEGER: "UNSIGNED_INTEGER",
	PLUS:             "PLUS",
	MINUS:            "MINUS",
	STAR:             "STAR",
	SLASH:            "SLASH",
	EQUALS:           "EQUALS",
	LPAREN:           "LPAREN",
	RPAREN:           "RPAREN",
	SEMICOLON:        "SEMICOLON",
}

var keywords = map[string]Kind{
	"begin": BEGIN,
	"end":   END,
	"var":   VAR,
	"const": CONST,
	"print": PRINT,
}

var puncts = [256]Kind{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'=': EQUALS,
	'(': LPAREN,
	')': RPAREN,
	';': SEMICOLON,
}

func (k Kind) String() string {
	if k > 0 && k < numKinds {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

func (t Token) String() string {
	switch t.Kind {
	case IDENTIFIER:
		return fmt.Sprintf("%v %v(%s)", t.Pos, t.Kind, t.Text)
	case UNSIGNED_INTEGER:
		return fmt.Sprintf("%v %v(%d)", t.Pos, t.Kind, t.Value)
	default:
		return fmt.Sprintf("%v %v", t.Pos, t.Kind)
	}
}
