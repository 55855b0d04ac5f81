// Package layout provides a declarative toolkit for building pretty printers and code formatters.
//
// It implements a Wadler/Leijen-style document algebra: a [Doc] is a tree of nodes that describe
// layout constraints -- text, forced line breaks, indentation, grouping -- rather than explicit
// formatting decisions. A single-pass renderer then walks the tree once, deciding as it goes
// whether each [Group] fits on the current line.
//
// Beyond the classical primitives ([Text], [Hardline], [Concat], [Nest], [Group]) this package
// adds [Union], a "quick union" operator for the common case of two renderings of the same
// content where only the FIRST LINE determines which one to use (e.g. a call argument list that
// may keep its opening line compact even once trailing arguments spill across several lines).
// Checking fit for [Union] never looks past the first line break, which is what makes it cheaper
// than wrapping both alternatives in equivalent [Group]s.
//
// # Acknowledgments
//
// The node-tree representation and single-pass renderer are a continuation of the tag-array
// layout engine this package replaces; the overall shape (NewFormat/Format, Render, GoString)
// continues that design.
package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format specifies the output representation for rendering a [Doc].
type Format int

const (
	// Default renders the document as text.
	Default Format = iota
	// Tree renders the document's node structure for debugging the fitting algorithm.
	Tree
	// Go renders the document as a Go expression that reconstructs it, for debugging and
	// iterating on a layout outside of the formatter.
	Go
)

var formats = map[string]Format{
	"default": Default,
	"tree":    Tree,
	"go":      Go,
}

var validFormats = [...]string{"default", "tree", "go"}

// NewFormat converts a string to a [Format] constant. Valid values are "default", "tree" and
// "go".
func NewFormat(format string) (Format, error) {
	if f, ok := formats[format]; ok {
		return f, nil
	}
	return Default, fmt.Errorf("invalid format string: %q, valid ones are: %q", format, validFormats)
}

type kind int

const (
	kindNil kind = iota
	kindFail
	kindText
	kindHardline
	kindConcat
	kindNest
	kindGroup
	kindFlatAlt
	kindUnion
	kindColumn
	kindNesting
	kindAnnotated
)

// Doc is an immutable node in the layout tree. Build one with the package-level constructors
// ([Text], [Hardline], [Group], ...) and combine with [Concat] or [Doc.Append]. Docs are safe to
// share and render more than once since nothing mutates them.
type Doc struct {
	k        kind
	text     string
	width    int // rune width of text, precomputed
	children []*Doc
	nest     int
	colFn    func(col int) *Doc
	nestFn   func(indent int) *Doc
	ann      any
}

// Nil is the empty document; it renders nothing.
var Nil = &Doc{k: kindNil}

// Fail is a document that can never be chosen for output. It only has meaning as one branch of a
// [Union] or nested inside a [Group]: reaching it during rendering is a bug in the caller, since a
// well-formed document always has a reachable alternative.
var Fail = &Doc{k: kindFail}

// Hardline is an unconditional line break followed by the current indentation.
var Hardline = &Doc{k: kindHardline}

// Text wraps literal content with no embedded line breaks.
func Text(s string) *Doc {
	return &Doc{k: kindText, text: s, width: len([]rune(s))}
}

// Concat concatenates docs in order. A nil or empty slice yields [Nil].
func Concat(docs ...*Doc) *Doc {
	filtered := make([]*Doc, 0, len(docs))
	for _, d := range docs {
		if d == nil || d.k == kindNil {
			continue
		}
		filtered = append(filtered, d)
	}
	if len(filtered) == 0 {
		return Nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &Doc{k: kindConcat, children: filtered}
}

// Append concatenates d followed by other.
func (d *Doc) Append(other *Doc) *Doc {
	return Concat(d, other)
}

// Nest increases the indentation used by line breaks within d by n columns.
func Nest(n int, d *Doc) *Doc {
	if n == 0 {
		return d
	}
	return &Doc{k: kindNest, nest: n, children: []*Doc{d}}
}

// Group marks d as a candidate for flat rendering: if d (and whatever follows it up to the next
// hardline) fits within the remaining width and d reaches no [Hardline] while flat, every
// [FlatAlt] inside d picks its flat branch; otherwise d renders broken.
func Group(d *Doc) *Doc {
	return &Doc{k: kindGroup, children: []*Doc{d}}
}

// FlatAlt renders as flat when the enclosing [Group] (if any) is rendering flat, or as broken
// otherwise. Outside of any Group, FlatAlt always renders broken -- a top level document is
// considered broken the same way the teacher's original tag-array engine treated its root.
func FlatAlt(flat, broken *Doc) *Doc {
	return &Doc{k: kindFlatAlt, children: []*Doc{flat, broken}}
}

// Union tries first, checking only whether ITS FIRST LINE (up to its first [Hardline] or its end)
// fits in the remaining width together with whatever follows on the same line. If it fits, first
// is rendered in full, including any hardlines deeper inside it; otherwise second is rendered.
// This is cheaper than an equivalent pair of [Group]s, which would each require fitting the WHOLE
// alternative, and is the right tool when only the opening line's shape needs to be decided (e.g.
// "call(" vs "call(\n  " for an argument list whose body may span many lines either way).
func Union(first, second *Doc) *Doc {
	return &Doc{k: kindUnion, children: []*Doc{first, second}}
}

// Column produces a document depending on the current column.
func Column(fn func(col int) *Doc) *Doc {
	return &Doc{k: kindColumn, colFn: fn}
}

// Nesting produces a document depending on the current indentation level.
func Nesting(fn func(indent int) *Doc) *Doc {
	return &Doc{k: kindNesting, nestFn: fn}
}

// Annotate attaches an opaque annotation to d. Annotations are transparent to [Render] (they do
// not affect layout) and exist for callers that want to walk the tree and recover semantic
// markers after the fact, e.g. "this span came from a disabled-formatting region".
func Annotate(ann any, d *Doc) *Doc {
	return &Doc{k: kindAnnotated, ann: ann, children: []*Doc{d}}
}

// mode is the rendering mode a [Doc] is visited in.
type mode int

const (
	modeBreak mode = iota
	modeFlat
)

type frame struct {
	indent int
	m      mode
	doc    *Doc
}

// RenderError reports that a [Fail] node was reached in output position while rendering, meaning
// every [Union]/[Group] alternative the renderer tried to fall back to was itself unreachable.
// This signals a malformed document, not a user-facing formatting failure in the ordinary sense.
type RenderError struct {
	// Text holds whatever had already been rendered before Fail was reached.
	Text string
}

func (e *RenderError) Error() string {
	return "layout: Fail reached during Render; every Union/Group alternative was unreachable"
}

// Render lays d out for the given maximum column width and returns the formatted text. It returns
// a non-nil [*RenderError] if a [Fail] node is reached in output position, which callers should
// treat as a generic rendering failure.
func Render(d *Doc, width int) (string, error) {
	var sb strings.Builder
	col := 0
	stack := []frame{{0, modeBreak, d}}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch fr.doc.k {
		case kindNil:
		case kindFail:
			return sb.String(), &RenderError{Text: sb.String()}
		case kindText:
			sb.WriteString(fr.doc.text)
			col += fr.doc.width
		case kindHardline:
			sb.WriteByte('\n')
			writeIndent(&sb, fr.indent)
			col = fr.indent
		case kindConcat:
			stack = pushChildrenReverse(stack, fr.indent, fr.m, fr.doc.children)
		case kindNest:
			stack = append(stack, frame{fr.indent + fr.doc.nest, fr.m, fr.doc.children[0]})
		case kindGroup:
			child := fr.doc.children[0]
			m := modeFlat
			if !fits(width-col, frame{fr.indent, modeFlat, child}, stack) {
				m = modeBreak
			}
			stack = append(stack, frame{fr.indent, m, child})
		case kindFlatAlt:
			if fr.m == modeFlat {
				stack = append(stack, frame{fr.indent, fr.m, fr.doc.children[0]})
			} else {
				stack = append(stack, frame{fr.indent, fr.m, fr.doc.children[1]})
			}
		case kindUnion:
			first, second := fr.doc.children[0], fr.doc.children[1]
			if firstLineFits(width-col, frame{fr.indent, modeBreak, first}, stack) {
				stack = append(stack, frame{fr.indent, modeBreak, first})
			} else {
				stack = append(stack, frame{fr.indent, modeBreak, second})
			}
		case kindColumn:
			stack = append(stack, frame{fr.indent, fr.m, fr.doc.colFn(col)})
		case kindNesting:
			stack = append(stack, frame{fr.indent, fr.m, fr.doc.nestFn(fr.indent)})
		case kindAnnotated:
			stack = append(stack, frame{fr.indent, fr.m, fr.doc.children[0]})
		default:
			panic(fmt.Sprintf("layout: unhandled node kind %d", fr.doc.k))
		}
	}

	return sb.String(), nil
}

func pushChildrenReverse(stack []frame, indent int, m mode, children []*Doc) []frame {
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, frame{indent, m, children[i]})
	}
	return stack
}

// safeAdd returns a+b, panicking if the sum overflows or underflows int.
func safeAdd(a, b int) int {
	if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
		panic(fmt.Sprintf("layout: integer overflow adding %d and %d", a, b))
	}
	return a + b
}

// writeIndent writes columns space characters. The indent carried in a [frame] is already a space
// count (every [Nest] call site passes [Config.TabSpaces] or a multiple of it), not a nest-level
// count, so one byte is written per column rather than one tab per level.
func writeIndent(sb *strings.Builder, columns int) {
	for range columns {
		sb.WriteByte(' ')
	}
}

// fits reports whether rendering start, followed by whatever is already queued in rest, fits
// within w columns before the next hardline. A hardline reached in flat mode does not fit, since
// flat content has to stay on one line. Nested [Group]s are treated transparently (they
// render in the same forced mode as their parent while fitting is being decided), and [Union]
// picks its first branch, mirroring the decision [Render] itself would make once more budget is
// known to be available.
func fits(w int, start frame, rest []frame) bool {
	stack := make([]frame, 0, len(rest)+1)
	stack = append(stack, rest...)
	stack = append(stack, start)

	for len(stack) > 0 {
		if w < 0 {
			return false
		}
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch fr.doc.k {
		case kindNil:
		case kindFail:
			return false
		case kindText:
			w -= fr.doc.width
		case kindHardline:
			return fr.m == modeBreak
		case kindConcat:
			stack = pushChildrenReverse(stack, fr.indent, fr.m, fr.doc.children)
		case kindNest:
			stack = append(stack, frame{fr.indent + fr.doc.nest, fr.m, fr.doc.children[0]})
		case kindGroup:
			stack = append(stack, frame{fr.indent, fr.m, fr.doc.children[0]})
		case kindFlatAlt:
			if fr.m == modeFlat {
				stack = append(stack, frame{fr.indent, fr.m, fr.doc.children[0]})
			} else {
				stack = append(stack, frame{fr.indent, fr.m, fr.doc.children[1]})
			}
		case kindUnion:
			stack = append(stack, frame{fr.indent, fr.m, fr.doc.children[0]})
		case kindColumn:
			// Column/Nesting depend on the true rendered column, which fits() does not track
			// precisely once it diverges from Render; callers should avoid depending on exact
			// column math inside content that also participates in fitting decisions.
			stack = append(stack, frame{fr.indent, fr.m, fr.doc.colFn(0)})
		case kindNesting:
			stack = append(stack, frame{fr.indent, fr.m, fr.doc.nestFn(fr.indent)})
		case kindAnnotated:
			stack = append(stack, frame{fr.indent, fr.m, fr.doc.children[0]})
		}
	}
	return w >= 0
}

// firstLineFits is fits's [Union] counterpart: it stops as soon as it reaches a hardline INSIDE
// start itself (success: the union's first line fit, whatever comes after the hardline is
// irrelevant to this decision) while still accounting for what follows on the same line in rest
// if start turns out to contain no hardline at all.
func firstLineFits(w int, start frame, rest []frame) bool {
	stack := []frame{start}
	consumedAllOfStart := false

	for len(stack) > 0 {
		if w < 0 {
			return false
		}
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch fr.doc.k {
		case kindNil:
		case kindFail:
			return false
		case kindText:
			w -= fr.doc.width
		case kindHardline:
			return true
		case kindConcat:
			stack = pushChildrenReverse(stack, fr.indent, fr.m, fr.doc.children)
		case kindNest:
			stack = append(stack, frame{fr.indent + fr.doc.nest, fr.m, fr.doc.children[0]})
		case kindGroup:
			stack = append(stack, frame{fr.indent, fr.m, fr.doc.children[0]})
		case kindFlatAlt:
			if fr.m == modeFlat {
				stack = append(stack, frame{fr.indent, fr.m, fr.doc.children[0]})
			} else {
				stack = append(stack, frame{fr.indent, fr.m, fr.doc.children[1]})
			}
		case kindUnion:
			stack = append(stack, frame{fr.indent, fr.m, fr.doc.children[0]})
		case kindColumn:
			stack = append(stack, frame{fr.indent, fr.m, fr.doc.colFn(0)})
		case kindNesting:
			stack = append(stack, frame{fr.indent, fr.m, fr.doc.nestFn(fr.indent)})
		case kindAnnotated:
			stack = append(stack, frame{fr.indent, fr.m, fr.doc.children[0]})
		}
		if len(stack) == 0 {
			consumedAllOfStart = true
		}
	}

	if !consumedAllOfStart {
		return w >= 0
	}
	// start never hit a hardline: fall through to whatever comes after it on the same line.
	return fits(w, frame{0, modeBreak, Nil}, rest)
}

// String renders d with an 80 column width, the common default used by [Doc.GoString]-style
// debugging. A [Fail] reached during rendering shows up inline as "<fail>" rather than as an error,
// since String is meant for quick debugging, not formatting output.
func (d *Doc) String() string {
	s, err := Render(d, 80)
	if err != nil {
		return s + "<fail>"
	}
	return s
}

// GoString renders d as a Go expression that reconstructs it, for copy-pasting into a test or bug
// report.
func (d *Doc) GoString() string {
	var sb strings.Builder
	writeGoString(&sb, d, 0)
	return sb.String()
}

func writeGoString(sb *strings.Builder, d *Doc, depth int) {
	switch d.k {
	case kindNil:
		sb.WriteString("layout.Nil")
	case kindFail:
		sb.WriteString("layout.Fail")
	case kindText:
		sb.WriteString("layout.Text(")
		sb.WriteString(strconv.Quote(d.text))
		sb.WriteString(")")
	case kindHardline:
		sb.WriteString("layout.Hardline")
	case kindConcat:
		sb.WriteString("layout.Concat(\n")
		for _, c := range d.children {
			writeIndentSpaces(sb, depth+1)
			writeGoString(sb, c, depth+1)
			sb.WriteString(",\n")
		}
		writeIndentSpaces(sb, depth)
		sb.WriteString(")")
	case kindNest:
		fmt.Fprintf(sb, "layout.Nest(%d, ", d.nest)
		writeGoString(sb, d.children[0], depth)
		sb.WriteString(")")
	case kindGroup:
		sb.WriteString("layout.Group(")
		writeGoString(sb, d.children[0], depth)
		sb.WriteString(")")
	case kindFlatAlt:
		sb.WriteString("layout.FlatAlt(")
		writeGoString(sb, d.children[0], depth)
		sb.WriteString(", ")
		writeGoString(sb, d.children[1], depth)
		sb.WriteString(")")
	case kindUnion:
		sb.WriteString("layout.Union(")
		writeGoString(sb, d.children[0], depth)
		sb.WriteString(", ")
		writeGoString(sb, d.children[1], depth)
		sb.WriteString(")")
	default:
		sb.WriteString("/* unrepresentable node */")
	}
}

func writeIndentSpaces(sb *strings.Builder, depth int) {
	for range depth {
		sb.WriteString("\t")
	}
}

var kindNames = map[kind]string{
	kindNil:       "Nil",
	kindFail:      "Fail",
	kindText:      "Text",
	kindHardline:  "Hardline",
	kindConcat:    "Concat",
	kindNest:      "Nest",
	kindGroup:     "Group",
	kindFlatAlt:   "FlatAlt",
	kindUnion:     "Union",
	kindColumn:    "Column",
	kindNesting:   "Nesting",
	kindAnnotated: "Annotate",
}

// DumpTree renders d's node structure as an indented tree, one node per line, for inspecting how
// the fitting algorithm will see a document without running the renderer.
func DumpTree(d *Doc) string {
	var sb strings.Builder
	writeDumpTree(&sb, d, 0)
	return sb.String()
}

func writeDumpTree(sb *strings.Builder, d *Doc, depth int) {
	writeIndentSpaces(sb, depth)
	name, ok := kindNames[d.k]
	if !ok {
		name = "?"
	}
	sb.WriteString(name)
	switch d.k {
	case kindText:
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(d.text))
	case kindNest:
		fmt.Fprintf(sb, " %d", d.nest)
	case kindAnnotated:
		fmt.Fprintf(sb, " %v", d.ann)
	}
	sb.WriteString("\n")
	for _, c := range d.children {
		writeDumpTree(sb, c, depth+1)
	}
}
