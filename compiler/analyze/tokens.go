package analyze

import (
	"tlog.app/go/loc"

	"github.com/slowlang/miniplc0/compiler/lex"
)

// next reads the token under the cursor.
// At the end of input it returns ok == false and leaves the error position as is.
func (s *state) next() (t lex.Token, ok bool) {
	if s.i == len(s.toks) {
		return t, false
	}

	t = s.toks[s.i]
	s.i++
	s.pos = t.End

	if s.tr.If("next_token") {
		s.tr.Printw("next token", "i", s.i-1, "tk", t, "from", loc.Callers(1, 3))
	}

	return t, true
}

// unread rewinds the cursor by one token.
func (s *state) unread() {
	if s.i == 0 {
		panic("analyser unreads token from the beginning")
	}

	s.i--
	s.pos = s.toks[s.i].End
}

// accept reads a token and keeps it if it is one of kinds.
// Otherwise the token is pushed back.
func (s *state) accept(kinds ...lex.Kind) (t lex.Token, ok bool) {
	t, ok = s.next()
	if !ok {
		return t, false
	}

	for _, k := range kinds {
		if t.Kind == k {
			return t, true
		}
	}

	s.unread()

	return t, false
}
