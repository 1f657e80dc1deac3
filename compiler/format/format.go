package format

import (
	"bufio"
	"bytes"
	"strconv"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/slowlang/miniplc0/compiler/ir"
)

// Format appends code listing to b, one instruction per line.
func Format(b []byte, code []ir.Instruction) []byte {
	for _, x := range code {
		b = hfmt.Appendf(b, "%v %d\n", x.Op, x.Arg)
	}

	return b
}

// Parse reads a listing produced by Format.
// Blank lines and lines starting with '#' are skipped.
func Parse(text []byte) (code []ir.Instruction, err error) {
	s := bufio.NewScanner(bytes.NewReader(text))

	lnum := 0
	for s.Scan() {
		lnum++

		line := s.Bytes()
		i := skipSpaces(line, 0)

		if i == len(line) || line[i] == '#' {
			continue
		}

		end := findSpace(line, i)

		op, ok := ir.ParseOp(string(line[i:end]))
		if !ok {
			return nil, errors.New("unknown op in line %d: %q", lnum, line[i:end])
		}

		i = skipSpaces(line, end)
		end = findSpace(line, i)

		if i == end {
			return nil, errors.New("no operand in line %d", lnum)
		}

		arg, err := strconv.ParseInt(string(line[i:end]), 10, 32)
		if err != nil {
			return nil, errors.Wrap(err, "operand in line %d", lnum)
		}

		if i = skipSpaces(line, end); i != len(line) {
			return nil, errors.New("unexpected text in line %d: %q", lnum, line[i:])
		}

		code = append(code, ir.Instruction{Op: op, Arg: int32(arg)})
	}

	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "scanner")
	}

	return code, nil
}

func skipSpaces(b []byte, i int) int {
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\r') {
		i++
	}

	return i
}

func findSpace(b []byte, i int) int {
	for i < len(b) && b[i] != ' ' && b[i] != '\t' && b[i] != '\r' {
		i++
	}

	return i
}
