package printer

import (
	"strings"
	"unicode/utf8"

	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/internal/layout"
	"github.com/quillfmt/quill/internal/stylist"
	"github.com/quillfmt/quill/token"
)

// blockKind reports whether k is one of the constructs that always starts and ends on its own
// source line -- a heading, a list/enum/term item, a code block, or a code statement (let, set,
// show, import, include, if, while, for) -- as opposed to something that flows inline within a
// paragraph (plain text, strong/emph spans, links, references, raw spans and blocks, equations).
func blockKind(k quill.TreeKind) bool {
	switch k {
	case quill.KindHeading, quill.KindListItem, quill.KindEnumItem, quill.KindTermItem,
		quill.KindCodeBlock, quill.KindLetBinding, quill.KindSetRule, quill.KindShowRule,
		quill.KindImport, quill.KindInclude, quill.KindConditional, quill.KindWhileLoop,
		quill.KindForLoop:
		return true
	default:
		return false
	}
}

// convertMarkup lays out the body of a [quill.KindFile] or [quill.KindMarkup] node. It splits the
// child stream into "lines": inline content (text, emphasis, links, inline expressions) flows
// together with single spaces, while block-level constructs (headings, list items, nested code
// blocks, control flow statements spelled directly in markup) each start a fresh line. Inline
// expressions are converted with break suppression (see [context.suppressBreak]) so that nothing
// nested inside them -- a braced statement block, a content block -- can split the text line they
// share with. When [Config.WrapText] is set, the prose is reflowed by [stylist.FillStylist]
// instead of keeping the source's line structure verbatim.
func (c *converter) convertMarkup(ctx context, tree *quill.Tree) *layout.Doc {
	if c.cfg.WrapText() {
		return c.convertMarkupFilled(ctx, tree)
	}
	return c.convertMarkupVerbatim(ctx, tree)
}

// inlineExprContext returns the context a markup child tree t is converted with: code mode for a
// code-expression kind, additionally break-suppressed if t also flows inline rather than starting
// its own line.
func inlineExprContext(ctx context, t *quill.Tree) context {
	if !isExprKind(t.Type) {
		return ctx
	}
	exprCtx := ctx.withMode(ModeCode)
	if !blockKind(t.Type) {
		exprCtx = exprCtx.suppressBreak()
	}
	return exprCtx
}

func (c *converter) convertMarkupVerbatim(ctx context, tree *quill.Tree) *layout.Doc {
	flow := stylist.NewFlowStylist()
	atLineStart := true

	for _, child := range tree.Children {
		switch ch := child.(type) {
		case quill.TokenChild:
			switch ch.Type {
			case token.Space:
				if hasLinebreak(ch.Literal) && !c.cfg.CollapseMarkupSpaces() {
					flow.PushHardline()
					atLineStart = true
				} else {
					flow.Push(layout.Text(" "), false, false)
				}
			case token.Parbreak:
				flow.Push(layout.Concat(layout.Hardline, layout.Hardline), false, false)
				atLineStart = true
			case token.Linebreak:
				flow.Push(layout.Text(`\`), false, false)
				flow.PushHardline()
				atLineStart = true
			case token.LineComment:
				flow.PushSpaced(verbatim(ch.Literal))
				flow.PushHardline()
				atLineStart = true
			case token.BlockComment:
				flow.PushSpaced(verbatim(ch.Literal))
			case token.Hash:
				flow.PushTight(layout.Text("#"))
			default:
				flow.PushSpaced(layout.Text(ch.String()))
			}
		case quill.TreeChild:
			t := ch.Tree
			doc := c.convert(inlineExprContext(ctx, t), t)
			if blockKind(t.Type) {
				if !atLineStart {
					flow.PushHardline()
				}
				flow.Push(doc, false, false)
				flow.PushHardline()
				atLineStart = true
			} else {
				flow.Push(doc, true, true)
				atLineStart = false
			}
		}
	}

	return flow.Doc()
}

// convertMarkupFilled is convertMarkupVerbatim's counterpart for wrap_text: every run of markup
// whitespace, even one spanning a source line break, is just a join point (wrap_text implies
// [Config.CollapseMarkupSpaces]), and inline atoms are packed onto lines of at most [Config.Width]
// columns by [stylist.FillStylist] instead of keeping the source's own line breaks.
func (c *converter) convertMarkupFilled(ctx context, tree *quill.Tree) *layout.Doc {
	fill := stylist.NewFillStylist(c.cfg.Width())
	atLineStart := true

	for _, child := range tree.Children {
		switch ch := child.(type) {
		case quill.TokenChild:
			switch ch.Type {
			case token.Space:
				// a pure join point; FillStylist decides whether it becomes a space or a break.
			case token.Parbreak:
				fill.PushHardline()
				fill.PushHardline()
				atLineStart = true
			case token.Linebreak:
				fill.Push(layout.Text(`\`), 1, true, false)
				fill.PushHardline()
				atLineStart = true
			case token.LineComment:
				doc := verbatim(ch.Literal)
				fill.Push(doc, flatWidth(doc), true, false)
				fill.PushHardline()
				atLineStart = true
			case token.BlockComment:
				doc := verbatim(ch.Literal)
				fill.Push(doc, flatWidth(doc), true, true)
			case token.Hash:
				fill.Push(layout.Text("#"), 1, true, false)
			case token.Text:
				for _, w := range strings.Fields(ch.Literal) {
					fill.Push(layout.Text(w), utf8.RuneCountInString(w), true, true)
				}
			default:
				fill.Push(layout.Text(ch.String()), utf8.RuneCountInString(ch.String()), true, true)
			}
		case quill.TreeChild:
			t := ch.Tree
			doc := c.convert(inlineExprContext(ctx, t), t)
			if blockKind(t.Type) {
				if !atLineStart {
					fill.PushHardline()
				}
				fill.PushBlock(doc)
				fill.PushHardline()
				atLineStart = true
			} else {
				fill.Push(doc, flatWidth(doc), true, true)
				atLineStart = false
			}
		}
	}

	return fill.Doc()
}

// isExprKind reports whether k is a code-expression kind that may appear directly inside markup
// after a '#'.
func isExprKind(k quill.TreeKind) bool {
	switch k {
	case quill.KindFuncCall, quill.KindFieldAccess, quill.KindIdent, quill.KindLetBinding,
		quill.KindSetRule, quill.KindShowRule, quill.KindConditional, quill.KindWhileLoop,
		quill.KindForLoop, quill.KindImport, quill.KindInclude, quill.KindContextual,
		quill.KindReturnStmt, quill.KindBreakStmt, quill.KindContinueStmt, quill.KindCodeBlock:
		return true
	default:
		return false
	}
}

func hasLinebreak(s string) bool {
	for _, r := range s {
		if r == '\n' {
			return true
		}
	}
	return false
}

func (c *converter) convertStrong(ctx context, tree *quill.Tree) *layout.Doc {
	return layout.Concat(layout.Text("*"), c.convertMarkup(ctx, tree), layout.Text("*"))
}

func (c *converter) convertEmph(ctx context, tree *quill.Tree) *layout.Doc {
	return layout.Concat(layout.Text("_"), c.convertMarkup(ctx, tree), layout.Text("_"))
}

func (c *converter) convertHeading(ctx context, tree *quill.Tree) *layout.Doc {
	level := 1
	if tok, ok := quill.TokenFirst(tree, token.Eq); ok {
		level = len(tok.Literal)
	}
	body, _ := quill.TreeFirst(tree, quill.KindMarkup)
	return layout.Concat(layout.Text(repeat("=", level)), layout.Text(" "), c.convert(ctx, body))
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for range n {
		out = append(out, s...)
	}
	return string(out)
}

func (c *converter) convertListItem(ctx context, tree *quill.Tree) *layout.Doc {
	body, _ := quill.TreeFirst(tree, quill.KindMarkup)
	return layout.Concat(layout.Text("- "), layout.Nest(c.cfg.TabSpaces(), c.convert(ctx, body)))
}

func (c *converter) convertEnumItem(ctx context, tree *quill.Tree) *layout.Doc {
	body, _ := quill.TreeFirst(tree, quill.KindMarkup)
	return layout.Concat(layout.Text("+ "), layout.Nest(c.cfg.TabSpaces(), c.convert(ctx, body)))
}

func (c *converter) convertTermItem(ctx context, tree *quill.Tree) *layout.Doc {
	desc, _ := quill.TreeFirst(tree, quill.KindTermDesc)
	var term *layout.Doc = layout.Nil
	for _, child := range quill.Children(tree) {
		if tc, ok := child.(quill.TreeChild); ok && tc.Type == quill.KindMarkup {
			term = c.convert(ctx, tc.Tree)
			break
		}
	}
	var body *layout.Doc = layout.Nil
	if desc != nil {
		body = c.convert(ctx, desc)
	}
	return layout.Concat(layout.Text("/ "), term, layout.Text(": "), layout.Nest(c.cfg.TabSpaces(), body))
}

func (c *converter) convertRaw(_ context, tree *quill.Tree) *layout.Doc {
	return verbatim(tree.Text())
}

func (c *converter) convertRef(_ context, tree *quill.Tree) *layout.Doc {
	return verbatim(tree.Text())
}
