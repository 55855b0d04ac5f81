package printer

import (
	"strings"
	"unicode/utf8"

	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/internal/layout"
	"github.com/quillfmt/quill/token"
)

// FormattedRange is the result of formatting a sub-range of a larger source: Start and End are the
// byte offsets, into the ORIGINAL source, that Text replaces. They may extend beyond the
// originally requested range, since only a complete syntax node can be formatted in isolation.
type FormattedRange struct {
	Start, End int
	Text       string
}

// formatRange implements range-based formatting: find the smallest Markup/expression/pattern node
// that fully covers [start, end), reformat just that node, and report the byte range it covers so
// a caller (an editor, typically) can splice the result back into the untouched remainder of the
// document.
func formatRange(cfg Config, src string, start, end int) (FormattedRange, error) {
	start, end = trimRange(src, start, end)
	if end > len(src) {
		end = len(src)
	}
	if start > end {
		return FormattedRange{}, &RangeError{Msg: "formatter: empty or inverted range"}
	}
	startPos := offsetToPosition(src, start)
	endPos := offsetToPosition(src, end)

	p := quill.NewParser(strings.NewReader(src))
	root := p.Parse()

	node, mode, ok := coverNode(root, ModeMarkup, startPos, endPos)
	if !ok || node.Erroneous {
		return FormattedRange{}, &RangeError{Msg: "formatter: no syntax node covers the requested range"}
	}

	attrsRoot := node
	conv := newConverter(cfg, attrsRoot)
	doc := conv.convert(context{mode: mode}, node)

	indent := countSpacesAfterLastNewline(src, positionToByteOffset(src, node.Start))
	rendered, err := layout.Render(layout.Nest(indent, doc), cfg.Width())
	if err != nil {
		return FormattedRange{}, err
	}

	return FormattedRange{
		Start: positionToByteOffset(src, node.Start),
		End:   positionToByteOffset(src, node.End),
		Text:  rendered,
	}, nil
}

// coverNode finds the deepest descendant of node that both fully contains [startPos, endPos] and
// is a kind eligible for standalone formatting (markup content, an expression, or a binding
// pattern); mode tracks which lexical mode that descendant lives in, updated whenever the walk
// crosses into a Markup/CodeBlock/Equation boundary.
func coverNode(node *quill.Tree, mode Mode, startPos, endPos token.Position) (*quill.Tree, Mode, bool) {
	childMode := mode
	switch node.Type {
	case quill.KindMarkup:
		childMode = ModeMarkup
	case quill.KindCodeBlock:
		childMode = ModeCode
	case quill.KindEquation:
		childMode = ModeMath
	}
	for _, child := range quill.Children(node) {
		if tc, ok := child.(quill.TreeChild); ok {
			if found, m, ok := coverNode(tc.Tree, childMode, startPos, endPos); ok {
				return found, m, true
			}
		}
	}
	if !node.Start.After(startPos) && !node.End.Before(endPos) && isCoverable(node.Type) {
		return node, childMode, true
	}
	return nil, mode, false
}

// isCoverable reports whether k is a Markup, expression, or pattern node: the three categories the
// converter can render in isolation without any enclosing context.
func isCoverable(k quill.TreeKind) bool {
	switch k {
	case quill.KindMarkup,
		quill.KindStrong, quill.KindEmph, quill.KindHeading, quill.KindListItem, quill.KindEnumItem,
		quill.KindTermItem, quill.KindRaw, quill.KindLink, quill.KindRef,
		quill.KindEquation, quill.KindMath, quill.KindMathDelimited, quill.KindMathAttach,
		quill.KindMathPrimes, quill.KindMathFrac, quill.KindMathRoot, quill.KindMathIdent,
		quill.KindCodeBlock, quill.KindContentBlock, quill.KindParenthesized, quill.KindArray,
		quill.KindDict, quill.KindSpread, quill.KindIdent, quill.KindFieldAccess, quill.KindFuncCall,
		quill.KindNamedArg, quill.KindClosure, quill.KindLetBinding, quill.KindSetRule,
		quill.KindShowRule, quill.KindConditional, quill.KindWhileLoop, quill.KindForLoop,
		quill.KindImport, quill.KindInclude, quill.KindReturnStmt, quill.KindBreakStmt,
		quill.KindContinueStmt, quill.KindContextual, quill.KindUnary, quill.KindBinary,
		quill.KindDestructAssign, quill.KindInt, quill.KindFloat, quill.KindStr, quill.KindBool,
		quill.KindNone, quill.KindAuto,
		quill.KindDestructuring, quill.KindDestructItem, quill.KindParams, quill.KindParam,
		quill.KindForPattern:
		return true
	default:
		return false
	}
}

// trimRange narrows [start, end) to exclude any leading/trailing whitespace, so a selection that
// spills a byte or two into surrounding blank space still resolves to the syntax node the caller
// meant.
func trimRange(src string, start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	for start < end && isBlank(src[start]) {
		start++
	}
	for end > start && isBlank(src[end-1]) {
		end--
	}
	return start, end
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// offsetToPosition converts a byte offset into src to the 1-based line/column [token.Position] the
// scanner would report for the rune starting there, counting runes the same way [scanner] does.
func offsetToPosition(src string, offset int) token.Position {
	line, col := 1, 1
	i := 0
	for _, r := range src {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i += utf8.RuneLen(r)
	}
	return token.Position{Line: line, Column: col}
}

// positionToByteOffset is the inverse of [offsetToPosition].
func positionToByteOffset(src string, pos token.Position) int {
	line, col := 1, 1
	i := 0
	for _, r := range src {
		if line == pos.Line && col == pos.Column {
			return i
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i += utf8.RuneLen(r)
	}
	return len(src)
}

// countSpacesAfterLastNewline returns the number of leading space characters between the last
// newline at or before offset and offset itself -- the ambient indentation a covering node was
// written at, used to nest the re-rendered replacement to match.
func countSpacesAfterLastNewline(src string, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	start := 0
	for i := offset - 1; i >= 0; i-- {
		if src[i] == '\n' {
			start = i + 1
			break
		}
	}
	count := 0
	for i := start; i < offset && src[i] == ' '; i++ {
		count++
	}
	return count
}
