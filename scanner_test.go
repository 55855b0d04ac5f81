package quill

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/quillfmt/quill/token"
)

func TestScannerReadRuneAdvancesPositionAcrossLines(t *testing.T) {
	sc := newScanner(strings.NewReader("ab\ncd"))

	var got []token.Position
	for !sc.isDone() {
		got = append(got, sc.pos())
		sc.readRune()
	}

	want := []token.Position{
		{Line: 1, Column: 1}, {Line: 1, Column: 2}, {Line: 1, Column: 3},
		{Line: 2, Column: 1}, {Line: 2, Column: 2},
	}
	assert.Equalf(t, len(got), len(want), "scanned %d positions, want %d", len(got), len(want))
	for i, p := range want {
		assert.EqualValuesf(t, got[i], p, "position at index %d", i)
	}
}

func TestScannerIsDoneAtEOF(t *testing.T) {
	sc := newScanner(strings.NewReader(""))

	assert.Truef(t, sc.isDone(), "a scanner over an empty reader should be done immediately")
}

func TestScannerIsDoneAfterConsumingEverything(t *testing.T) {
	sc := newScanner(strings.NewReader("x"))

	assert.Truef(t, !sc.isDone(), "a scanner with unread input should not be done")
	sc.readRune()
	assert.Truef(t, sc.isDone(), "a scanner should be done after consuming its only rune")
}

func TestIsDigit(t *testing.T) {
	for _, r := range []rune{'0', '5', '9'} {
		assert.Truef(t, isDigit(r), "isDigit(%q) should be true", r)
	}
	for _, r := range []rune{'a', ' ', '-'} {
		assert.Truef(t, !isDigit(r), "isDigit(%q) should be false", r)
	}
}

func TestIsIdentStartAndCont(t *testing.T) {
	assert.Truef(t, isIdentStart('_'), "isIdentStart('_') should be true")
	assert.Truef(t, isIdentStart('a'), "isIdentStart('a') should be true")
	assert.Truef(t, !isIdentStart('1'), "isIdentStart('1') should be false, identifiers cannot start with a digit")

	assert.Truef(t, isIdentCont('1'), "isIdentCont('1') should be true, digits may continue an identifier")
	assert.Truef(t, isIdentCont('-'), "isIdentCont('-') should be true, a hyphen may continue an identifier")
	assert.Truef(t, !isIdentCont(' '), "isIdentCont(' ') should be false")
}

func TestIsNewline(t *testing.T) {
	assert.Truef(t, isNewline('\n'), "isNewline('\\n') should be true")
	assert.Truef(t, isNewline('\r'), "isNewline('\\r') should be true")
	assert.Truef(t, !isNewline(' '), "isNewline(' ') should be false")
}

func TestIsHorizontalSpace(t *testing.T) {
	assert.Truef(t, isHorizontalSpace(' '), "isHorizontalSpace(' ') should be true")
	assert.Truef(t, isHorizontalSpace('\t'), "isHorizontalSpace('\\t') should be true")
	assert.Truef(t, !isHorizontalSpace('\n'), "isHorizontalSpace('\\n') should be false, a newline is vertical")
}
