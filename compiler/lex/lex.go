package lex

import (
	"context"
	"io"
	"strconv"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/miniplc0/compiler/diag"
)

type (
	// Lexer reads tokens from a text held entirely in memory.
	Lexer struct {
		b   []byte
		i   int
		pos diag.Pos
	}

	Spaces uint64
)

var Space = NewSpaces(' ', '\t', '\n')

// Tokenize splits text into tokens.
// The first lexical error aborts and no tokens are returned with it.
func Tokenize(ctx context.Context, text []byte) (toks []Token, err error) {
	tr := tlog.SpanFromContext(ctx)

	l := New(text)

	for {
		t, err := l.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if tr.If("lex") {
			tr.Printw("token", "kind", t.Kind, "text", t.Text, "pos", t.Pos, "end", t.End)
		}

		toks = append(toks, t)
	}

	tr.Printw("tokenized", "tokens", len(toks), "size", len(text))

	return toks, nil
}

func New(text []byte) *Lexer {
	return &Lexer{b: text}
}

// Pos returns the position of the next unread byte.
func (l *Lexer) Pos() diag.Pos { return l.pos }

// Next returns the next token or io.EOF at the clean end of input.
// Lexical errors are *diag.Error.
func (l *Lexer) Next() (t Token, err error) {
	l.skipSpaces()

	if l.i == len(l.b) {
		return t, io.EOF
	}

	st := l.i
	t.Pos = l.pos

	c := l.b[l.i]

	switch {
	case isLetter(c):
		l.skipWhile(isAlnum)

		t.Text = string(l.b[st:l.i])
		t.Kind = IDENTIFIER

		if k, ok := keywords[t.Text]; ok {
			t.Kind = k
		}
	case isDigit(c):
		l.skipWhile(isDigit)

		t.Text = string(l.b[st:l.i])
		t.Kind = UNSIGNED_INTEGER

		v, err := strconv.ParseInt(t.Text, 10, 32)
		if errors.Is(err, strconv.ErrRange) {
			return Token{}, diag.New(t.Pos, diag.IntegerOverflow)
		}
		if err != nil {
			return Token{}, diag.New(t.Pos, diag.InvalidInput)
		}

		t.Value = int32(v)
	case puncts[c] != 0:
		l.advance()

		t.Text = string(l.b[st:l.i])
		t.Kind = puncts[c]
	default:
		return Token{}, diag.New(t.Pos, diag.InvalidInput)
	}

	t.End = l.pos

	if err = check(t); err != nil {
		return Token{}, err
	}

	return t, nil
}

func check(t Token) error {
	if t.Kind == IDENTIFIER && (t.Text == "" || isDigit(t.Text[0])) {
		return diag.New(t.Pos, diag.InvalidIdentifier)
	}

	return nil
}

func (l *Lexer) advance() {
	l.pos = l.pos.Next(l.b[l.i])
	l.i++
}

func (l *Lexer) skipWhile(f func(c byte) bool) {
	for l.i < len(l.b) && f(l.b[l.i]) {
		l.advance()
	}
}

func (l *Lexer) skipSpaces() {
	l.skipWhile(Space.Has)
}

func NewSpaces(skip ...byte) (ss Spaces) {
	for _, q := range skip {
		if q >= 64 {
			panic("too high char code")
		}

		ss |= 1 << q
	}

	return
}

func (s Spaces) Has(c byte) bool {
	return c < 64 && s&(1<<c) != 0
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isLetter(c) || isDigit(c)
}
