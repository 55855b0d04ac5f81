package printer_test

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/quillfmt/quill/printer"
)

func TestFormatSourceMarkup(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"CollapsesRepeatedBlankLines": {
			in:   "Hello\n\n\n\nworld.",
			want: "Hello\n\nworld.\n",
		},
		"HeadingKeepsItsLevel": {
			in:   "== Section\ntext",
			want: "== Section\ntext\n",
		},
		"StrongAndEmphAreKeptTight": {
			in:   "This is *bold* and _emph_.",
			want: "This is *bold* and _emph_.\n",
		},
		"ListItemIsIndentedUnderItsMarker": {
			in:   "- one\n- two",
			want: "- one\n- two\n",
		},
	}

	f := printer.New(printer.DefaultConfig())
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := f.FormatSource(test.in)
			require.NoErrorf(t, err, "FormatSource(%q)", test.in)
			assert.Equalf(t, got, test.want, "FormatSource(%q)", test.in)

			t.Logf("format again with the previous output as the input to confirm idempotence")
			again, err := f.FormatSource(got)
			require.NoErrorf(t, err, "FormatSource(%q) on its own output", got)
			assert.Equalf(t, again, got, "formatting is not idempotent for %q", test.in)
		})
	}
}

func TestFormatSourceCode(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"LetBindingIsKeptOnOneLine": {
			in:   "#let x = 1",
			want: "#let x = 1\n",
		},
		"FuncCallFoldsWhenItFits": {
			in:   "#foo(1,\n2,\n3)",
			want: "#foo(1, 2, 3)\n",
		},
	}

	f := printer.New(printer.DefaultConfig())
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := f.FormatSource(test.in)
			require.NoErrorf(t, err, "FormatSource(%q)", test.in)
			assert.Equalf(t, got, test.want, "FormatSource(%q)", test.in)
		})
	}
}

func TestFormatSourceBreaksFuncCallThatIsTooWide(t *testing.T) {
	f := printer.New(printer.DefaultConfig())
	in := "#foo(aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa, bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb)"

	got, err := f.FormatSource(in)

	require.NoErrorf(t, err, "FormatSource(%q)", in)
	assert.Truef(t, strings.Contains(got, "\n"), "a call too wide for one line should break across lines, got %q", got)
	assert.Truef(t, strings.Contains(got, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"), "broken call should still contain the first argument")
	assert.Truef(t, strings.Contains(got, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"), "broken call should still contain the second argument")
}

func TestFormatSourceReturnsSyntaxErrorOnParseFailure(t *testing.T) {
	f := printer.New(printer.DefaultConfig())

	_, err := f.FormatSource("#let x = ")

	require.Errorf(t, err, "FormatSource on malformed input should fail")
	_, ok := err.(*printer.SyntaxError)
	assert.Truef(t, ok, "error should be a *printer.SyntaxError, got %T", err)
}

func TestFormatWithWidthOverridesConfiguredWidth(t *testing.T) {
	f := printer.New(printer.DefaultConfig())
	in := "#foo(aaaaaaaaaaaaaaaaaaaaaa, bbbbbbbbbbbbbbbbbbbbbb)"

	wide, err := f.FormatWithWidth(in, 120)
	require.NoErrorf(t, err, "FormatWithWidth(wide)")
	assert.Truef(t, !strings.Contains(strings.TrimRight(wide, "\n"), "\n"), "a wide enough width should keep the call on one line, got %q", wide)

	narrow, err := f.FormatWithWidth(in, 20)
	require.NoErrorf(t, err, "FormatWithWidth(narrow)")
	assert.Truef(t, strings.Contains(narrow, "\n"), "a narrow width should force the call to break, got %q", narrow)
}

func TestFormatContentReadsFromAReader(t *testing.T) {
	f := printer.New(printer.DefaultConfig())

	got, err := f.FormatContent(strings.NewReader("#let x = 1"))

	require.NoErrorf(t, err, "FormatContent")
	assert.Equalf(t, got, "#let x = 1\n", "FormatContent")
}

func TestFormatSourceRangeReformatsOnlyTheCoveringNode(t *testing.T) {
	f := printer.New(printer.DefaultConfig())
	src := "Hello #foo(1,\n2,\n3) world."
	start := strings.Index(src, "foo")
	argStart := strings.Index(src, "1")
	argEnd := strings.LastIndex(src, "3") + 1
	end := strings.Index(src, ")") + 1

	got, err := f.FormatSourceRange(src, argStart, argEnd)
	require.NoErrorf(t, err, "FormatSourceRange(%q, %d, %d)", src, argStart, argEnd)

	assert.Equalf(t, got.Text, "foo(1, 2, 3)", "FormatSourceRange should reformat the enclosing call")
	assert.Equalf(t, got.Start, start, "FormatSourceRange.Start")
	assert.Equalf(t, got.End, end, "FormatSourceRange.End")
}

func TestFormatSourceRangeRejectsAnEmptyRange(t *testing.T) {
	f := printer.New(printer.DefaultConfig())

	_, err := f.FormatSourceRange("#let x = 1", 5, 2)

	require.Errorf(t, err, "FormatSourceRange with an inverted range should fail")
	_, ok := err.(*printer.RangeError)
	assert.Truef(t, ok, "error should be a *printer.RangeError, got %T", err)
}

func TestFormatSourceAlignsMathColumns(t *testing.T) {
	f := printer.New(printer.DefaultConfig())
	in := "$ aaa &= b \n\n c &= dddd $"

	got, err := f.FormatSource(in)
	require.NoErrorf(t, err, "FormatSource(%q)", in)

	var ampCols []int
	for _, line := range strings.Split(got, "\n") {
		if i := strings.Index(line, "&"); i >= 0 {
			ampCols = append(ampCols, i)
		}
	}
	require.Truef(t, len(ampCols) >= 2, "expected at least two rows carrying an alignment point, got %q", got)
	for _, col := range ampCols[1:] {
		assert.Equalf(t, col, ampCols[0], "the '&' alignment points should land in the same column across rows, got %q", got)
	}
}

func TestFormatSourceWrapsTextToWidth(t *testing.T) {
	f := printer.New(printer.DefaultConfig().WithWidth(20).WithWrapText(true))
	in := "one two three four five six seven eight nine ten"

	got, err := f.FormatSource(in)
	require.NoErrorf(t, err, "FormatSource(%q)", in)

	for _, line := range strings.Split(strings.TrimRight(got, "\n"), "\n") {
		assert.Truef(t, len(line) <= 20, "no line should exceed the configured width, got line %q in %q", line, got)
	}
	assert.Equalf(t, strings.Join(strings.Fields(got), " "), "one two three four five six seven eight nine ten", "wrapping must not drop or reorder words")
}

func TestFormatSourceKeepsSourceLinesWithoutWrapText(t *testing.T) {
	f := printer.New(printer.DefaultConfig().WithWidth(20))
	in := "one two three four five six seven eight nine ten"

	got, err := f.FormatSource(in)
	require.NoErrorf(t, err, "FormatSource(%q)", in)
	assert.Equalf(t, got, in+"\n", "without wrap_text a long paragraph stays on one line")
}

func TestFormatSourceBreaksChainExceedingChainWidth(t *testing.T) {
	// width 100 gives a chain_width of 60; the chain itself is 77 columns (too wide for
	// chain_width) while the whole "#let x = ..." line is 86 columns (comfortably under width),
	// so only the chain_width guard -- not the ordinary max_width fit check -- can explain a break.
	f := printer.New(printer.DefaultConfig().WithWidth(100))
	chain := strings.Repeat("a", 25) + "." + strings.Repeat("b", 25) + "." + strings.Repeat("c", 25)
	in := "#let x = " + chain

	got, err := f.FormatSource(in)
	require.NoErrorf(t, err, "FormatSource(%q)", in)
	assert.Truef(t, strings.Contains(got, "\n"), "a dot-chain exceeding chain_width should break even though it fits within max_width, got %q", got)
}
