package printer

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/quillfmt/quill/token"
)

func TestOffsetToPosition(t *testing.T) {
	tests := map[string]struct {
		src    string
		offset int
		want   token.Position
	}{
		"StartOfSource":       {src: "abc", offset: 0, want: token.Position{Line: 1, Column: 1}},
		"MidFirstLine":        {src: "abc", offset: 2, want: token.Position{Line: 1, Column: 3}},
		"StartOfSecondLine":   {src: "ab\ncd", offset: 3, want: token.Position{Line: 2, Column: 1}},
		"MidSecondLine":       {src: "ab\ncd", offset: 4, want: token.Position{Line: 2, Column: 2}},
		"AfterMultipleBreaks": {src: "a\n\nb", offset: 3, want: token.Position{Line: 3, Column: 1}},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := offsetToPosition(test.src, test.offset)
			assert.Equalf(t, got.Line, test.want.Line, "offsetToPosition(%q, %d).Line", test.src, test.offset)
			assert.Equalf(t, got.Column, test.want.Column, "offsetToPosition(%q, %d).Column", test.src, test.offset)
		})
	}
}

func TestPositionToByteOffsetIsTheInverseOfOffsetToPosition(t *testing.T) {
	srcs := []string{"abc", "ab\ncd", "a\n\nb", "hello\nworld\n!"}

	for _, src := range srcs {
		for offset := 0; offset <= len(src); offset++ {
			pos := offsetToPosition(src, offset)
			got := positionToByteOffset(src, pos)
			assert.Equalf(t, got, offset, "positionToByteOffset(offsetToPosition(%q, %d)) should round trip", src, offset)
		}
	}
}

func TestCountSpacesAfterLastNewline(t *testing.T) {
	tests := map[string]struct {
		src    string
		offset int
		want   int
	}{
		"NoIndentation":       {src: "foo", offset: 3, want: 0},
		"IndentedOnce":        {src: "  foo", offset: 5, want: 2},
		"IndentedOnSecondLine": {src: "x\n    foo", offset: 9, want: 4},
		"OffsetAtLineStart":   {src: "x\n    foo", offset: 2, want: 0},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := countSpacesAfterLastNewline(test.src, test.offset)
			assert.Equalf(t, got, test.want, "countSpacesAfterLastNewline(%q, %d)", test.src, test.offset)
		})
	}
}

func TestTrimRangeDropsSurroundingWhitespace(t *testing.T) {
	src := "  foo  "

	start, end := trimRange(src, 0, len(src))

	assert.Equalf(t, start, 2, "trimRange(%q) start", src)
	assert.Equalf(t, end, 5, "trimRange(%q) end", src)
}

func TestTrimRangeOnAnAlreadyTightRangeIsANoop(t *testing.T) {
	src := "foo"

	start, end := trimRange(src, 0, 3)

	assert.Equalf(t, start, 0, "trimRange(%q) start", src)
	assert.Equalf(t, end, 3, "trimRange(%q) end", src)
}

func TestBlankLineCount(t *testing.T) {
	tests := map[string]struct {
		in   string
		want int
	}{
		"NoNewline":        {in: "   ", want: 0},
		"SingleNewline":    {in: " \n ", want: 1},
		"BlankLineBetween": {in: " \n\n ", want: 2},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equalf(t, blankLineCount(test.in), test.want, "blankLineCount(%q)", test.in)
		})
	}
}

func TestHasLinebreak(t *testing.T) {
	assert.Truef(t, hasLinebreak("a\nb"), "hasLinebreak should find an embedded newline")
	assert.Truef(t, !hasLinebreak("a b"), "hasLinebreak should not find a newline where there is none")
}

func TestRepeat(t *testing.T) {
	assert.Equalf(t, repeat("=", 3), "===", "repeat(%q, %d)", "=", 3)
	assert.Equalf(t, repeat("=", 0), "", "repeat(%q, %d)", "=", 0)
}
