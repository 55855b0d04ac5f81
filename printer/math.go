package printer

import (
	"strings"
	"unicode/utf8"

	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/ast"
	"github.com/quillfmt/quill/internal/layout"
	"github.com/quillfmt/quill/token"
)

func (c *converter) convertEquation(ctx context, tree *quill.Tree) *layout.Doc {
	math, ok := ast.Equation{Tree: tree}.Math()
	if !ok {
		return layout.Text("$$")
	}
	mctx := ctx.withMode(ModeMath)
	hasAlign := c.attrs.HasMathAlignPoint(math) && !c.attrs.HasComment(math)
	var body *layout.Doc
	if hasAlign {
		body = c.convertMathAlignGrid(mctx, math)
	} else {
		body = c.convert(mctx, math)
	}
	// A multiline equation always gets the "$" alone on its own line regardless of whether it
	// also has alignment points: nesting the whole grid by one indent level keeps every row's
	// '&' columns lined up, which a "$ " prefix on only the first row would throw off.
	if c.attrs.IsMultiline(math) {
		return layout.Concat(
			layout.Text("$"),
			layout.Nest(c.cfg.TabSpaces(), layout.Concat(layout.Hardline, body)),
			layout.Hardline,
			layout.Text("$"),
		)
	}
	if hasAlign {
		return layout.Concat(layout.Text("$ "), body, layout.Text(" $"))
	}
	return layout.Concat(layout.Text("$"), body, layout.Text("$"))
}

// convertMath flows a sequence of math atoms tightly: unlike markup or code, adjacent math tokens
// are not space-separated unless the source already put a space (an explicit Space token) between
// them.
func (c *converter) convertMath(ctx context, tree *quill.Tree) *layout.Doc {
	var docs []*layout.Doc
	for _, child := range tree.Children {
		switch ch := child.(type) {
		case quill.TreeChild:
			docs = append(docs, c.convert(ctx, ch.Tree))
		case quill.TokenChild:
			if ch.Type == token.Space {
				if !hasLinebreak(ch.Literal) && len(ch.Literal) > 0 {
					docs = append(docs, layout.Text(" "))
				}
				continue
			}
			if ch.Type == token.LineComment || ch.Type == token.BlockComment {
				docs = append(docs, layout.Text(" "), verbatim(ch.Literal))
				continue
			}
			docs = append(docs, layout.Text(ch.String()))
		}
	}
	return layout.Concat(docs...)
}

// convertMathAlignGrid renders a math body containing alignment points ('&') as a column-padded
// grid: cells are split on '&', rows are split on a blank line (a Space token spanning two or more
// newlines) -- math has no dedicated row separator, a blank line is the only unambiguous
// row-boundary signal the grammar gives us. Columns at an odd position (the expression before the
// first '&' of each row, and every other one after) are left-aligned by right-padding; columns at
// an even position (directly after an '&', which is where the operator being aligned on usually
// sits) are right-aligned by left-padding, so the '&' columns themselves line up visually. Rows
// with a single cell are left untouched.
func (c *converter) convertMathAlignGrid(ctx context, tree *quill.Tree) *layout.Doc {
	rows := splitMathAlignRows(tree)
	if len(rows) == 0 {
		return c.convert(ctx, tree)
	}

	rendered := make([][]string, len(rows))
	widths := map[int]int{}
	for ri, row := range rows {
		rendered[ri] = make([]string, len(row))
		for ci, cell := range row {
			text := c.renderMathCellFlat(ctx, cell)
			rendered[ri][ci] = text
			if w := utf8.RuneCountInString(text); w > widths[ci] {
				widths[ci] = w
			}
		}
	}

	var lines []*layout.Doc
	for ri, row := range rendered {
		if ri > 0 {
			lines = append(lines, layout.Hardline, layout.Hardline)
		}
		if len(row) == 1 {
			lines = append(lines, layout.Text(row[0]))
			continue
		}
		var parts []string
		for ci, text := range row {
			w := widths[ci]
			pad := w - utf8.RuneCountInString(text)
			if pad < 0 {
				pad = 0
			}
			if ci%2 == 1 {
				parts = append(parts, strings.Repeat(" ", pad)+text)
			} else if ci == len(row)-1 {
				parts = append(parts, text)
			} else {
				parts = append(parts, text+strings.Repeat(" ", pad))
			}
		}
		lines = append(lines, layout.Text(strings.Join(parts, " & ")))
	}
	return layout.Concat(lines...)
}

// splitMathAlignRows partitions tree's direct children into rows (split on a blank-line Space
// token) and each row into cells (split on a [quill.KindMathAlignPointNode] child), preserving
// every non-trivia child -- tokens and sub-trees alike -- in source order within each cell.
func splitMathAlignRows(tree *quill.Tree) [][][]quill.Child {
	var rows [][][]quill.Child
	var row [][]quill.Child
	var cell []quill.Child

	flushCell := func() {
		row = append(row, cell)
		cell = nil
	}
	flushRow := func() {
		flushCell()
		rows = append(rows, row)
		row = nil
	}

	for _, child := range tree.Children {
		if tok, ok := child.(quill.TokenChild); ok {
			if tok.Type == token.Space && blankLineCount(tok.Literal) >= 2 {
				flushRow()
				continue
			}
			if tok.IsTrivia() && tok.Type != token.LineComment && tok.Type != token.BlockComment {
				if tok.Type == token.Space {
					cell = append(cell, child)
				}
				continue
			}
			cell = append(cell, child)
			continue
		}
		if tc, ok := child.(quill.TreeChild); ok && tc.Type == quill.KindMathAlignPointNode {
			flushCell()
			continue
		}
		cell = append(cell, child)
	}
	flushRow()
	return rows
}

// blankLineCount reports how many newline characters s contains.
func blankLineCount(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

// renderMathCellFlat renders a single grid cell's children to plain text at an effectively
// unbounded width, for measuring and padding -- a cell participating in a column-aligned grid
// never wraps onto its own multiple lines.
func (c *converter) renderMathCellFlat(ctx context, cell []quill.Child) string {
	var docs []*layout.Doc
	for _, child := range cell {
		switch ch := child.(type) {
		case quill.TreeChild:
			docs = append(docs, c.convert(ctx, ch.Tree))
		case quill.TokenChild:
			switch ch.Type {
			case token.Space:
				if !hasLinebreak(ch.Literal) && len(ch.Literal) > 0 {
					docs = append(docs, layout.Text(" "))
				}
			case token.LineComment, token.BlockComment:
				docs = append(docs, layout.Text(" "), verbatim(ch.Literal))
			default:
				docs = append(docs, layout.Text(ch.String()))
			}
		}
	}
	// A cell is flattened at an effectively unbounded width, so it never contains a reachable
	// [layout.Fail]; any render error here would indicate a malformed Doc, not a real width
	// overflow, so the partial text already written is still the best available measurement.
	rendered, _ := layout.Render(layout.Concat(docs...), 1<<30)
	return strings.TrimSpace(rendered)
}

func (c *converter) convertMathDelimited(ctx context, tree *quill.Tree) *layout.Doc {
	var open, close_ string
	var body *quill.Tree
	n := 0
	for _, child := range quill.Children(tree) {
		switch ch := child.(type) {
		case quill.TokenChild:
			if ch.IsTrivia() {
				continue
			}
			if n == 0 {
				open = ch.String()
			} else {
				close_ = ch.String()
			}
			n++
		case quill.TreeChild:
			body = ch.Tree
		}
	}
	var inner *layout.Doc = layout.Nil
	if body != nil {
		inner = c.convert(ctx, body)
	}
	return layout.Concat(layout.Text(open), inner, layout.Text(close_))
}

func (c *converter) convertMathAttach(ctx context, tree *quill.Tree) *layout.Doc {
	return c.convertFlowTight(ctx, tree)
}

func (c *converter) convertMathPrimes(ctx context, tree *quill.Tree) *layout.Doc {
	return verbatim(tree.Text())
}

func (c *converter) convertMathFrac(ctx context, tree *quill.Tree) *layout.Doc {
	var num, den *quill.Tree
	for _, child := range quill.Children(tree) {
		if tc, ok := child.(quill.TreeChild); ok {
			if num == nil {
				num = tc.Tree
			} else {
				den = tc.Tree
			}
		}
	}
	var numDoc, denDoc *layout.Doc = layout.Nil, layout.Nil
	if num != nil {
		numDoc = c.convert(ctx, num)
	}
	if den != nil {
		denDoc = c.convert(ctx, den)
	}
	return layout.Concat(numDoc, layout.Text("/"), denDoc)
}

func (c *converter) convertMathRoot(ctx context, tree *quill.Tree) *layout.Doc {
	var index, radicand *quill.Tree
	trees := childTreesOf(tree)
	switch len(trees) {
	case 1:
		radicand = trees[0]
	case 2:
		index, radicand = trees[0], trees[1]
	}
	var indexDoc *layout.Doc = layout.Nil
	if index != nil {
		indexDoc = layout.Concat(layout.Text("root("), c.convert(ctx, index), layout.Text(", "))
	} else {
		indexDoc = layout.Text("sqrt(")
	}
	var radicandDoc *layout.Doc = layout.Nil
	if radicand != nil {
		radicandDoc = c.convert(ctx, radicand)
	}
	return layout.Concat(indexDoc, radicandDoc, layout.Text(")"))
}

func childTreesOf(tree *quill.Tree) []*quill.Tree {
	var out []*quill.Tree
	for _, child := range quill.Children(tree) {
		if tc, ok := child.(quill.TreeChild); ok {
			out = append(out, tc.Tree)
		}
	}
	return out
}

// convertFlowTight flows a node's children with no space insertion at all, used for math
// constructs (attachments) where adjacency is always tight.
func (c *converter) convertFlowTight(ctx context, tree *quill.Tree) *layout.Doc {
	var docs []*layout.Doc
	for _, child := range quill.Children(tree) {
		switch ch := child.(type) {
		case quill.TreeChild:
			docs = append(docs, c.convert(ctx, ch.Tree))
		case quill.TokenChild:
			if !ch.IsTrivia() {
				docs = append(docs, layout.Text(ch.String()))
			}
		}
	}
	return layout.Concat(docs...)
}
