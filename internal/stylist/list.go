package stylist

import (
	"github.com/quillfmt/quill/internal/layout"
)

// ListStyle configures the shape a [ListStylist] folds its items into: the separator and
// delimiter text, and a handful of toggles for how aggressively the delimiters and trailing
// separator can be omitted.
type ListStyle struct {
	// Separator is written between items, e.g. ",".
	Separator string
	// Open and Close delimit the whole list, e.g. "(" and ")".
	Open, Close string
	// TightDelim suppresses the hardline normally emitted just inside the delimiters when the
	// list is broken.
	TightDelim bool
	// AddDelimSpace adds a space just inside the delimiters when the list renders flat.
	AddDelimSpace bool
	// AddTrailingSepSingle adds a trailing separator when the list has exactly one item.
	AddTrailingSepSingle bool
	// AddTrailingSepAlways adds a trailing separator after the last item in flat and broken
	// layouts alike; a compact layout adds it only once it breaks.
	AddTrailingSepAlways bool
	// OmitDelimSingle omits the delimiters entirely when the list has exactly one item.
	OmitDelimSingle bool
	// NoIndent keeps items at the enclosing indentation instead of nesting one level in.
	NoIndent bool
	// ArgsWidth bounds how far the flat prefix of a [FoldCompact] list may extend before the
	// renderer falls back to breaking every item. Unused by the other fold styles.
	ArgsWidth int
}

// DefaultListStyle mirrors a plain comma-parenthesized list: `(a, b, c)`.
func DefaultListStyle() ListStyle {
	return ListStyle{Separator: ",", Open: "(", Close: ")"}
}

type listItemKind int

const (
	itemComment listItemKind = iota
	itemBody
	itemLinebreak
)

type listItem struct {
	kind  listItemKind
	body  *layout.Doc
	after *layout.Doc // comments attached after body, if any
	n     int         // Linebreak count
}

// ListStylist accumulates a delimited, separator-joined list of items (array elements, call
// arguments, dictionary entries, import names, ...) along with any comments and blank lines
// interleaved between them, then folds the result according to a [ListStyle].
//
// Feed it nodes in source order with [ListStylist.PushItem], [ListStylist.PushComment] and
// [ListStylist.PushLinebreak], then call [ListStylist.Print].
type ListStylist struct {
	tabSpaces  int
	items      []listItem
	realCount  int
	hasComment bool
	hasLineCmt bool
	foldStyle  FoldStyle
	canAttach  bool
	free       []*layout.Doc
	keepBreaks int // max consecutive blank lines to preserve; -1 means ignore
}

// NewListStylist creates an empty stylist that indents broken items by tabSpaces columns.
func NewListStylist(tabSpaces int) *ListStylist {
	return &ListStylist{tabSpaces: tabSpaces, keepBreaks: -1}
}

// WithFoldStyle sets the fold style; the default is [FoldFit].
func (l *ListStylist) WithFoldStyle(style FoldStyle) *ListStylist {
	l.foldStyle = style
	return l
}

// KeepLinebreaks preserves up to max consecutive blank lines between items, instead of collapsing
// every run of blank lines away.
func (l *ListStylist) KeepLinebreaks(max int) *ListStylist {
	l.keepBreaks = max
	return l
}

// PushItem adds a formatted item to the list.
func (l *ListStylist) PushItem(doc *layout.Doc) {
	l.realCount++
	var before *layout.Doc
	if len(l.free) > 0 {
		before = layout.Group(layout.Concat(interleave(l.free, line())...))
		before = before.Append(line())
		l.free = nil
	}
	body := doc
	if before != nil {
		body = before.Append(doc)
	}
	l.items = append(l.items, listItem{kind: itemBody, body: body})
	l.canAttach = true
}

// PushComment records a standalone comment seen between items; it may be attached to the
// preceding item or kept detached, decided once the following separator or linebreak is seen.
func (l *ListStylist) PushComment(doc *layout.Doc, isLineComment bool) {
	l.hasComment = true
	if isLineComment {
		l.hasLineCmt = true
		l.foldStyle = FoldNever
	}
	l.free = append(l.free, doc)
}

// SeparatorSeen should be called when a separator token (usually a comma) is encountered; it
// attempts to attach any pending free comments to the item just pushed.
func (l *ListStylist) SeparatorSeen() {
	l.tryAttach()
}

// LinebreakSeen should be called when whitespace containing one or more linebreaks is
// encountered; count is the number of linebreaks seen (1 for a normal line end, 2+ for blank
// lines in between).
func (l *ListStylist) LinebreakSeen(count int) {
	if !l.tryAttach() {
		l.detach()
	}
	l.canAttach = false
	if l.keepBreaks >= 0 && count >= 2 && len(l.items) > 0 {
		n := count - 1
		if n > l.keepBreaks {
			n = l.keepBreaks
		}
		l.items = append(l.items, listItem{kind: itemLinebreak, n: n})
	}
}

func (l *ListStylist) tryAttach() bool {
	if !l.canAttach || len(l.free) == 0 {
		return false
	}
	added := layout.Concat(layout.Text(" "), interleaveText(l.free, layout.Text(" ")))
	for i := len(l.items) - 1; i >= 0; i-- {
		if l.items[i].kind == itemBody {
			if l.items[i].after == nil {
				l.items[i].after = added
			} else {
				l.items[i].after = l.items[i].after.Append(added)
			}
			l.free = nil
			return true
		}
	}
	return false
}

func (l *ListStylist) detach() {
	for _, c := range l.free {
		l.items = append(l.items, listItem{kind: itemComment, body: c})
	}
	l.free = nil
}

// finish folds in any trailing free comments and trims trailing blank-line markers.
func (l *ListStylist) finish() {
	if !l.tryAttach() {
		l.detach()
	}
	for len(l.items) > 0 && l.items[len(l.items)-1].kind == itemLinebreak {
		l.items = l.items[:len(l.items)-1]
	}
}

// Print folds the accumulated items into a single [layout.Doc] per sty.
func (l *ListStylist) Print(sty ListStyle) *layout.Doc {
	l.finish()

	if len(l.items) == 0 {
		if sty.AddDelimSpace {
			return layout.Text(sty.Open + " " + sty.Close)
		}
		return layout.Text(sty.Open + sty.Close)
	}

	isSingle := l.realCount == 1
	sep := layout.Text(sty.Separator)
	foldStyle := l.foldStyle
	if l.hasLineCmt {
		foldStyle = FoldNever
	}

	switch foldStyle {
	case FoldNever:
		return l.printBroken(sty, sep)
	case FoldAlways:
		return l.printFlat(sty, sep, isSingle)
	case FoldCompact:
		if l.hasComment || l.realCount < 2 {
			// Compact's flat prefix has no room for an attached comment, and a prefix of fewer
			// than two real items degenerates to an ordinary fit decision.
			return l.printFit(sty, sep, isSingle)
		}
		return l.printCompact(sty, sep)
	default:
		return l.printFit(sty, sep, isSingle)
	}
}

// printCompact keeps every item but the last flat on the opening line, letting only the last item
// break onto its own lines; the flat prefix races (via [layout.Union]) against falling back to
// breaking every item once that prefix would run past sty.ArgsWidth.
func (l *ListStylist) printCompact(sty ListStyle, sep *layout.Doc) *layout.Doc {
	var docs []*layout.Doc
	for _, item := range l.items {
		if item.kind != itemBody {
			continue
		}
		d := item.body
		if item.after != nil {
			d = d.Append(item.after)
		}
		docs = append(docs, d)
	}
	rest, last := docs[:len(docs)-1], docs[len(docs)-1]

	restFlat := interleaveText(rest, sep.Append(layout.Text(" ")))
	widthLimiter := layout.Column(func(col int) *layout.Doc {
		if col < sty.ArgsWidth {
			return layout.Nil
		}
		return layout.Fail
	})
	compact := layout.Concat(restFlat, sep, layout.Text(" "), widthLimiter, last)

	restBroken := interleaveText(rest, sep.Append(line()))
	trailingSep := layout.Nil
	if sty.AddTrailingSepAlways {
		trailingSep = sep
	}
	loose := layout.Concat(
		softbreak(),
		restBroken,
		sep,
		widthLimiter,
		line(),
		last,
		trailingSep,
	)
	if !sty.NoIndent {
		loose = layout.Nest(l.tabSpaces, loose)
	}
	loose = layout.Concat(loose, softbreak())

	return layout.Group(enclose(layout.Union(compact, loose), sty.Open, sty.Close))
}

func (l *ListStylist) printBroken(sty ListStyle, sep *layout.Doc) *layout.Doc {
	var inner *layout.Doc
	if sty.TightDelim {
		inner = layout.Nil
	} else {
		inner = layout.Hardline
	}
	// tail holds the break after the last item; it sits outside the Nest so the closing delimiter
	// returns to the enclosing indentation.
	tail := layout.Nil
	n := len(l.items)
	for i, item := range l.items {
		isLast := i+1 == n
		switch item.kind {
		case itemComment:
			inner = inner.Append(item.body)
			if isLast {
				tail = layout.Hardline
			} else {
				inner = inner.Append(layout.Hardline)
			}
		case itemBody:
			inner = inner.Append(item.body).Append(sep)
			if item.after != nil {
				inner = inner.Append(item.after)
			}
			if !isLast {
				inner = inner.Append(layout.Hardline)
			} else if !sty.TightDelim {
				tail = layout.Hardline
			}
		case itemLinebreak:
			for range item.n {
				inner = inner.Append(layout.Hardline)
			}
		}
	}
	if !sty.NoIndent {
		inner = layout.Nest(l.tabSpaces, inner)
	}
	return enclose(inner.Append(tail), sty.Open, sty.Close)
}

func (l *ListStylist) printFlat(sty ListStyle, sep *layout.Doc, isSingle bool) *layout.Doc {
	var inner *layout.Doc = layout.Nil
	seenReal := 0
	for _, item := range l.items {
		switch item.kind {
		case itemComment:
			inner = inner.Append(item.body).Append(layout.Text(" "))
		case itemBody:
			seenReal++
			isLastReal := seenReal == l.realCount
			inner = inner.Append(item.body)
			if item.after != nil {
				inner = inner.Append(item.after)
			}
			if !isLastReal {
				inner = inner.Append(sep).Append(layout.Text(" "))
			} else if sty.AddTrailingSepAlways || (isSingle && sty.AddTrailingSepSingle) {
				inner = inner.Append(sep)
			}
		}
	}
	inner = layout.Group(inner)
	switch {
	case isSingle && sty.OmitDelimSingle:
		return inner
	case sty.AddDelimSpace:
		return enclose(inner, sty.Open+" ", " "+sty.Close)
	default:
		return enclose(inner, sty.Open, sty.Close)
	}
}

func (l *ListStylist) printFit(sty ListStyle, sep *layout.Doc, isSingle bool) *layout.Doc {
	var inner *layout.Doc
	if sty.TightDelim {
		inner = layout.Nil
	} else {
		inner = softbreak()
	}
	tail := layout.Nil // the break after the last item, kept outside the Nest like printBroken's
	seenReal := 0
	for i, item := range l.items {
		isLast := i+1 == len(l.items)
		switch item.kind {
		case itemComment:
			inner = inner.Append(item.body)
			if isLast {
				tail = layout.Hardline
			} else {
				inner = inner.Append(layout.Hardline)
			}
		case itemBody:
			seenReal++
			isLastReal := seenReal == l.realCount
			needSep := !isLastReal || sty.AddTrailingSepAlways || (isSingle && sty.AddTrailingSepSingle)
			var follow *layout.Doc
			if item.after != nil {
				flatFollow := item.after
				if needSep {
					flatFollow = item.after.Append(sep)
				}
				brokenFollow := sep.Append(item.after)
				follow = layout.FlatAlt(flatFollow, brokenFollow)
			} else if isLastReal && sty.TightDelim {
				follow = layout.Nil
			} else if needSep {
				follow = sep
			} else {
				follow = layout.FlatAlt(layout.Nil, sep)
			}
			var ln *layout.Doc
			switch {
			case !isLastReal:
				ln = line()
			case sty.TightDelim:
				ln = layout.Nil
			default:
				ln = softbreak()
			}
			inner = inner.Append(item.body).Append(follow)
			if isLast {
				tail = ln
			} else {
				inner = inner.Append(ln)
			}
		case itemLinebreak:
			for range item.n {
				inner = inner.Append(line())
			}
		}
	}
	if !sty.NoIndent {
		inner = layout.Nest(l.tabSpaces, inner)
	}
	inner = inner.Append(tail)
	if isSingle && sty.OmitDelimSingle {
		return layout.Group(inner)
	}
	if sty.AddDelimSpace {
		open := layout.FlatAlt(layout.Text(sty.Open+" "), layout.Text(sty.Open))
		closeD := layout.FlatAlt(layout.Text(" "+sty.Close), layout.Text(sty.Close))
		return layout.Group(layout.Concat(open, inner, closeD))
	}
	// note: layout.FlatAlt(flat, broken) -- flat branch first, broken branch second.
	return layout.Group(enclose(inner, sty.Open, sty.Close))
}

func enclose(d *layout.Doc, open, close string) *layout.Doc {
	return layout.Concat(layout.Text(open), d, layout.Text(close))
}

func interleave(docs []*layout.Doc, sep *layout.Doc) []*layout.Doc {
	out := make([]*layout.Doc, 0, len(docs)*2-1)
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return out
}

func interleaveText(docs []*layout.Doc, sep *layout.Doc) *layout.Doc {
	return layout.Concat(interleave(docs, sep)...)
}
