package printer

import (
	"strings"
	"unicode/utf8"

	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/internal/attr"
	"github.com/quillfmt/quill/internal/layout"
)

// converter holds the state shared by every convert* method for a single format invocation: the
// resolved [Config] and the attribute store precomputed over the tree being formatted. It carries
// no mutable fields -- mode and break-suppression travel through [context] parameters instead --
// so a converter is safe to reuse across an invocation's recursive calls without synchronization.
type converter struct {
	cfg   Config
	attrs *attr.Store
}

func newConverter(cfg Config, root *quill.Tree) *converter {
	return &converter{cfg: cfg, attrs: attr.New(root)}
}

// convert is the single entry point every recursive call goes through: it checks
// is_format_disabled first and falls back to the node's verbatim source text, exactly as spec.md
// §4.3 requires of every converter.
func (c *converter) convert(ctx context, tree *quill.Tree) *layout.Doc {
	if tree == nil {
		return layout.Nil
	}
	if c.attrs.IsFormatDisabled(tree) || tree.Erroneous {
		return verbatim(tree.Text())
	}
	return c.convertImpl(ctx, tree)
}

func (c *converter) convertImpl(ctx context, tree *quill.Tree) *layout.Doc {
	switch tree.Type {
	// Root / markup
	case quill.KindFile, quill.KindMarkup:
		return c.convertMarkup(ctx, tree)
	case quill.KindStrong:
		return c.convertStrong(ctx, tree)
	case quill.KindEmph:
		return c.convertEmph(ctx, tree)
	case quill.KindHeading:
		return c.convertHeading(ctx, tree)
	case quill.KindListItem:
		return c.convertListItem(ctx, tree)
	case quill.KindEnumItem:
		return c.convertEnumItem(ctx, tree)
	case quill.KindTermItem:
		return c.convertTermItem(ctx, tree)
	case quill.KindTermDesc:
		return c.convertMarkup(ctx, tree)
	case quill.KindRaw:
		return c.convertRaw(ctx, tree)
	case quill.KindLink, quill.KindLabel:
		return verbatim(tree.Text())
	case quill.KindRef:
		return c.convertRef(ctx, tree)

	// Math
	case quill.KindEquation:
		return c.convertEquation(ctx, tree)
	case quill.KindMath:
		return c.convertMath(ctx, tree)
	case quill.KindMathDelimited:
		return c.convertMathDelimited(ctx, tree)
	case quill.KindMathAttach:
		return c.convertMathAttach(ctx, tree)
	case quill.KindMathPrimes:
		return c.convertMathPrimes(ctx, tree)
	case quill.KindMathFrac:
		return c.convertMathFrac(ctx, tree)
	case quill.KindMathRoot:
		return c.convertMathRoot(ctx, tree)
	case quill.KindMathAlignPointNode:
		return layout.Text("&")
	case quill.KindMathIdent:
		return verbatim(tree.Text())

	// Code containers
	case quill.KindCodeBlock:
		return c.convertCodeBlock(ctx, tree)
	case quill.KindContentBlock:
		return c.convertContentBlock(ctx, tree)
	case quill.KindParenthesized:
		return c.convertParenthesized(ctx, tree)
	case quill.KindArray:
		return c.convertArray(ctx, tree)
	case quill.KindDict:
		return c.convertDict(ctx, tree)
	case quill.KindDestructuring:
		return c.convertDestructuring(ctx, tree)
	case quill.KindDestructItem:
		return c.convertChildrenFlat(ctx, tree)
	case quill.KindParams:
		return c.convertParams(ctx, tree)
	case quill.KindParam:
		return c.convertChildrenFlat(ctx, tree)
	case quill.KindSpread:
		return c.convertSpread(ctx, tree)

	// Code statements/expressions
	case quill.KindIdent:
		return verbatim(tree.Text())
	case quill.KindFieldAccess:
		return c.convertFieldAccess(ctx, tree)
	case quill.KindFuncCall:
		return c.convertFuncCall(ctx, tree)
	case quill.KindArgs:
		return c.convertArgs(ctx, tree)
	case quill.KindNamedArg:
		return c.convertNamedArg(ctx, tree)
	case quill.KindClosure:
		return c.convertClosure(ctx, tree)
	case quill.KindLetBinding:
		return c.convertLetBinding(ctx, tree)
	case quill.KindSetRule:
		return c.convertSetRule(ctx, tree)
	case quill.KindShowRule:
		return c.convertShowRule(ctx, tree)
	case quill.KindConditional:
		return c.convertConditional(ctx, tree)
	case quill.KindWhileLoop:
		return c.convertWhileLoop(ctx, tree)
	case quill.KindForLoop:
		return c.convertForLoop(ctx, tree)
	case quill.KindForPattern:
		return c.convertChildrenFlat(ctx, tree)
	case quill.KindImport:
		return c.convertImport(ctx, tree)
	case quill.KindImportItem:
		return verbatim(tree.Text())
	case quill.KindInclude:
		return c.convertInclude(ctx, tree)
	case quill.KindReturnStmt:
		return c.convertFlow(ctx, tree)
	case quill.KindBreakStmt:
		return layout.Text("break")
	case quill.KindContinueStmt:
		return layout.Text("continue")
	case quill.KindContextual:
		return c.convertFlow(ctx, tree)
	case quill.KindUnary:
		return c.convertUnary(ctx, tree)
	case quill.KindBinary:
		return c.convertBinary(ctx, tree)
	case quill.KindDestructAssign:
		return c.convertDestructAssign(ctx, tree)

	// Literals
	case quill.KindInt, quill.KindFloat, quill.KindStr, quill.KindBool:
		return verbatim(tree.Text())
	case quill.KindNone:
		return layout.Text("none")
	case quill.KindAuto:
		return layout.Text("auto")

	default:
		return verbatim(tree.Text())
	}
}

// verbatim turns s, which may contain embedded newlines (disabled regions, raw text, string
// literals), into a doc that reproduces it exactly: [layout.Text] forbids embedded line breaks, so
// each source line becomes its own Text joined by [layout.Hardline].
func verbatim(s string) *layout.Doc {
	if s == "" {
		return layout.Nil
	}
	lines := strings.Split(s, "\n")
	parts := make([]*layout.Doc, 0, len(lines)*2-1)
	for i, line := range lines {
		if i > 0 {
			parts = append(parts, layout.Hardline)
		}
		parts = append(parts, layout.Text(line))
	}
	return layout.Concat(parts...)
}

// flatWidth measures doc's rendered width as if it never broke, by rendering it against an
// effectively unbounded column limit. [FillStylist] uses this to treat an already-converted span
// (an inline expression, a strong/emph run) as a single atom of known width, the same way
// [ChainStylist] measures a chain's flat form to compare it against chain_width.
func flatWidth(doc *layout.Doc) int {
	flat, err := layout.Render(doc, 1<<30)
	if err != nil {
		return 0
	}
	return utf8.RuneCountInString(flat)
}

// convertChildrenFlat concatenates every non-trivia child of tree with single spaces between
// trees and no separator handling of its own; it is the fallback for small fixed-shape nodes
// (params, destructuring items, for-patterns) that don't need a stylist.
func (c *converter) convertChildrenFlat(ctx context, tree *quill.Tree) *layout.Doc {
	var docs []*layout.Doc
	for _, child := range quill.Children(tree) {
		switch ch := child.(type) {
		case quill.TreeChild:
			docs = append(docs, c.convert(ctx, ch.Tree))
		case quill.TokenChild:
			if ch.IsTrivia() {
				continue
			}
			docs = append(docs, layout.Text(ch.String()))
		}
	}
	parts := make([]*layout.Doc, 0, len(docs)*2)
	for i, d := range docs {
		if i > 0 {
			parts = append(parts, layout.Text(" "))
		}
		parts = append(parts, d)
	}
	return layout.Concat(parts...)
}
