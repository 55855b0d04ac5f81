package quill

import (
	"bufio"
	"io"

	"github.com/quillfmt/quill/token"
)

// scanner is the low level rune reader shared by the markup, code and math lexing routines in
// parser.go. It tracks the current and lookahead rune together with the source position, the way
// a hybrid lexer needs to peek across mode boundaries (e.g. deciding whether '#' starts a code
// expression or is plain text).
type scanner struct {
	r          *bufio.Reader
	cur, next  rune
	eof        bool // true once next has seen EOF
	curLine    int
	curColumn  int
	nextLine   int
	nextColumn int
}

func newScanner(r io.Reader) *scanner {
	sc := &scanner{
		r:          bufio.NewReader(r),
		curLine:    1,
		curColumn:  0,
		nextLine:   1,
		nextColumn: 1,
	}
	sc.readRune()
	sc.readRune()
	return sc
}

// readRune advances cur to next and reads a fresh rune into next, updating position counters.
// cur becomes 0 once the stream is exhausted.
func (sc *scanner) readRune() {
	sc.cur = sc.next
	sc.curLine, sc.curColumn = sc.nextLine, sc.nextColumn

	if sc.eof {
		sc.next = 0
		return
	}

	r, _, err := sc.r.ReadRune()
	if err != nil {
		sc.eof = true
		sc.next = 0
		return
	}
	sc.next = r

	if sc.cur == '\n' {
		sc.nextLine++
		sc.nextColumn = 1
	} else if sc.cur != 0 {
		sc.nextColumn++
	}
}

func (sc *scanner) pos() token.Position {
	return token.Position{Line: sc.curLine, Column: sc.curColumn}
}

func (sc *scanner) isDone() bool {
	return sc.cur == 0
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '-'
}

func isNewline(r rune) bool {
	return r == '\n' || r == '\r'
}

func isHorizontalSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
