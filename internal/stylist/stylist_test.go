package stylist_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/quillfmt/quill/internal/layout"
	"github.com/quillfmt/quill/internal/stylist"
)

func TestListStylistFoldsFlatWhenItFits(t *testing.T) {
	l := stylist.NewListStylist(1)
	l.PushItem(layout.Text("1"))
	l.SeparatorSeen()
	l.LinebreakSeen(1)
	l.PushItem(layout.Text("2"))
	l.SeparatorSeen()
	l.LinebreakSeen(1)
	l.PushItem(layout.Text("3"))

	got, err := layout.Render(l.Print(stylist.DefaultListStyle()), 80)
	assert.NoErrorf(t, err, "Render")
	assert.Equals(t, got, "(1, 2, 3)", "a short list should fold onto one line")
}

func TestListStylistBreaksWhenTooWide(t *testing.T) {
	l := stylist.NewListStylist(1)
	l.PushItem(layout.Text("aaaaaaaaaa"))
	l.SeparatorSeen()
	l.LinebreakSeen(1)
	l.PushItem(layout.Text("bbbbbbbbbb"))
	l.SeparatorSeen()
	l.LinebreakSeen(1)
	l.PushItem(layout.Text("cccccccccc"))

	got, err := layout.Render(l.Print(stylist.DefaultListStyle()), 10)
	assert.NoErrorf(t, err, "Render")
	want := "(\n aaaaaaaaaa,\n bbbbbbbbbb,\n cccccccccc,\n)"
	assert.Equals(t, got, want, "a list too wide for one line should break one item per line")
}

func TestListStylistNeverFoldsWithLineComment(t *testing.T) {
	l := stylist.NewListStylist(1)
	l.PushItem(layout.Text("1"))
	l.SeparatorSeen()
	l.PushComment(layout.Text("// keep"), true)
	l.LinebreakSeen(1)
	l.PushItem(layout.Text("2"))

	got, err := layout.Render(l.Print(stylist.DefaultListStyle()), 80)
	assert.NoErrorf(t, err, "Render")
	want := "(\n 1, // keep\n 2,\n)"
	assert.Equals(t, got, want, "a line comment forces the list to stay broken even if it would fit flat")
}

func TestListStylistPrintsOnlyDelimitersWhenEmpty(t *testing.T) {
	l := stylist.NewListStylist(1)
	got, err := layout.Render(l.Print(stylist.DefaultListStyle()), 80)
	assert.NoErrorf(t, err, "Render")
	assert.Equals(t, got, "()", "an empty list should print just the delimiters")
}

func TestChainStylistStaysFlatWhenItFits(t *testing.T) {
	c := stylist.NewChainStylist(1, 0)
	c.PushBody(layout.Text("a"))
	c.PushOp(layout.Text("."))
	c.PushBody(layout.Text("b"))
	c.PushOp(layout.Text("."))
	c.PushBody(layout.Text("c"))

	got, err := layout.Render(c.Print(stylist.ChainStyle{}), 80)
	assert.NoErrorf(t, err, "Render")
	assert.Equals(t, got, "a.b.c", "a short chain should stay on one line")
}

func TestChainStylistBreaksBeforeEachOperator(t *testing.T) {
	c := stylist.NewChainStylist(1, 0)
	c.PushBody(layout.Text("aaaaaaaaaa"))
	c.PushOp(layout.Text("."))
	c.PushBody(layout.Text("bbbbbbbbbb"))
	c.PushOp(layout.Text("."))
	c.PushBody(layout.Text("cccccccccc"))

	got, err := layout.Render(c.Print(stylist.ChainStyle{}), 10)
	assert.NoErrorf(t, err, "Render")
	want := "aaaaaaaaaa\n .bbbbbbbbbb\n .cccccccccc"
	assert.Equals(t, got, want, "a chain too wide for one line should break before every operator")
}

func TestChainStylistBreaksWhenExceedingChainWidth(t *testing.T) {
	c := stylist.NewChainStylist(1, 5)
	c.PushBody(layout.Text("aaaaaaaaaa"))
	c.PushOp(layout.Text("."))
	c.PushBody(layout.Text("bbbbbbbbbb"))

	got, err := layout.Render(c.Print(stylist.ChainStyle{}), 80)
	assert.NoErrorf(t, err, "Render")
	want := "aaaaaaaaaa\n .bbbbbbbbbb"
	assert.Equals(t, got, want, "a chain exceeding chain_width breaks even though it fits within max_width")
}

func TestFlowStylistAddsSpaceOnlyWhenBothSidesAllow(t *testing.T) {
	f := stylist.NewFlowStylist()
	f.PushSpaced(layout.Text("if"))
	f.Push(layout.Text("("), true, false)
	f.PushTight(layout.Text("x"))
	f.PushTight(layout.Text(")"))

	got, err := layout.Render(f.Doc(), 80)
	assert.NoErrorf(t, err, "Render")
	assert.Equals(t, got, "if (x)", "a space is inserted between 'if' and '(' since both allow it")
}

func TestTableCollectorGroupsIntoFixedColumns(t *testing.T) {
	tc := stylist.NewTableCollector(2)
	for _, s := range []string{"a", "b", "c", "d"} {
		tc.PushCell(layout.Text(s))
	}

	got, err := layout.Render(tc.Collect(), 80)
	assert.NoErrorf(t, err, "Render")
	want := "a, b,\nc, d,"
	assert.Equals(t, got, want, "cells should be grouped into rows of the configured column count")
}

func TestTableCollectorDoesNotReflowWithoutColumns(t *testing.T) {
	tc := stylist.NewTableCollector(0)
	tc.PushCell(layout.Text("a"))
	tc.PushNewline(1)
	tc.PushCell(layout.Text("b"))
	tc.PushNewline(1)

	got, err := layout.Render(tc.Collect(), 80)
	assert.NoErrorf(t, err, "Render")
	want := "a,\nb,"
	assert.Equals(t, got, want, "with no known column count, a source linebreak after each cell keeps it on its own row")
}

func TestPlainStylistKeepsOriginalShape(t *testing.T) {
	p := stylist.NewPlainStylist(1)
	p.PushItem(layout.Text("a"))
	p.PushComma()
	p.PushLinebreak(1)
	p.PushItem(layout.Text("b"))

	got, err := layout.Render(p.Print(), 80)
	assert.NoErrorf(t, err, "Render")
	assert.Equals(t, got, "\na,\nb\n", "a plain stylist should preserve the multiline shape seen in source")
}

func TestPlainStylistCollapsesSingleLineInput(t *testing.T) {
	p := stylist.NewPlainStylist(1)
	p.PushItem(layout.Text("a"))
	p.PushComma()
	p.PushItem(layout.Text("b"))

	got, err := layout.Render(p.Print(), 80)
	assert.NoErrorf(t, err, "Render")
	assert.Equals(t, got, "a, b", "without any source linebreak, output stays on one line")
}
