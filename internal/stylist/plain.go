package stylist

import (
	"github.com/quillfmt/quill/internal/layout"
)

type plainItemKind int

const (
	plainItem plainItemKind = iota
	plainComma
	plainLinebreak
	plainLineComment
	plainBlockComment
)

type plainEntry struct {
	kind plainItemKind
	doc  *layout.Doc
	n    int
}

// PlainStylist keeps a sequence's original multiline-or-not shape rather than folding it: if the
// source had a blank-line-separated layout, the output keeps it; if the source was all on one
// line, so is the output. It exists for constructs (e.g. parenthesized argument lists whose
// caller has already decided not to reflow them) where imposing a different shape would be
// surprising.
type PlainStylist struct {
	items         []plainEntry
	isMultiline   bool
	maxBlankLines int // linebreak counts are clamped to this + 1
}

// NewPlainStylist creates an empty stylist. maxBlankLines caps how many consecutive blank source
// lines are preserved between items.
func NewPlainStylist(maxBlankLines int) *PlainStylist {
	return &PlainStylist{maxBlankLines: maxBlankLines}
}

// PushItem adds a formatted item.
func (p *PlainStylist) PushItem(doc *layout.Doc) {
	p.items = append(p.items, plainEntry{kind: plainItem, doc: doc})
}

// PushComma adds a literal comma separator.
func (p *PlainStylist) PushComma() {
	p.items = append(p.items, plainEntry{kind: plainComma})
}

// PushLinebreak records n consecutive source linebreaks.
func (p *PlainStylist) PushLinebreak(n int) {
	if len(p.items) == 0 {
		return
	}
	p.isMultiline = true
	if n > p.maxBlankLines+1 {
		n = p.maxBlankLines + 1
	}
	p.items = append(p.items, plainEntry{kind: plainLinebreak, n: n})
}

// PushLineComment adds a line comment, which forces the whole sequence multiline since a line
// comment cannot be followed by more content on the same source line.
func (p *PlainStylist) PushLineComment(doc *layout.Doc) {
	p.isMultiline = true
	p.items = append(p.items, plainEntry{kind: plainLineComment, doc: doc})
}

// PushBlockComment adds a block comment.
func (p *PlainStylist) PushBlockComment(doc *layout.Doc) {
	p.items = append(p.items, plainEntry{kind: plainBlockComment, doc: doc})
}

// Print folds the accumulated items, trimming trailing linebreaks and enclosing the whole result
// in hardlines if the source was multiline.
func (p *PlainStylist) Print() *layout.Doc {
	for len(p.items) > 0 && p.items[len(p.items)-1].kind == plainLinebreak {
		p.items = p.items[:len(p.items)-1]
	}

	flow := NewFlowStylist()
	for _, item := range p.items {
		switch item.kind {
		case plainItem:
			flow.Push(item.doc, true, true)
		case plainComma:
			flow.Push(layout.Text(","), false, true)
		case plainLinebreak:
			d := layout.Nil
			for range item.n {
				d = d.Append(layout.Hardline)
			}
			flow.Push(d, false, false)
		case plainLineComment:
			flow.Push(item.doc, true, false)
		case plainBlockComment:
			flow.Push(item.doc, true, true)
		}
	}

	doc := flow.Doc()
	if p.isMultiline {
		return layout.Concat(layout.Hardline, doc, layout.Hardline)
	}
	return doc
}
