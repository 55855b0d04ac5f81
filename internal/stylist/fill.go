package stylist

import (
	"github.com/quillfmt/quill/internal/layout"
)

// FillStylist greedily reflows a sequence of atoms (words, inline expressions, spans) onto lines
// no wider than width, the way markup prose is rewrapped when wrap_text is enabled. Unlike
// [FlowStylist], which always keeps pushed items on the current line and leaves line breaks to the
// caller, FillStylist decides for itself where to break.
//
// It does this with plain arithmetic on each atom's already-known display width rather than
// through [layout.Group]/[layout.Union]: that machinery picks one winning alternative at a time,
// and a long chain of per-word Union choices would have each decision see every later word as
// already-committed-flat, collapsing to one word per line the moment the paragraph runs long.
// Measuring widths up front and emitting plain [layout.Hardline]s sidesteps that entirely.
type FillStylist struct {
	width      int
	col        int
	doc        *layout.Doc
	atStart    bool
	spaceAfter bool
}

// NewFillStylist creates an empty fill. width <= 0 disables wrapping: atoms are always
// space-joined and never break for width alone.
func NewFillStylist(width int) *FillStylist {
	return &FillStylist{width: width, doc: layout.Nil, atStart: true}
}

// Push adds an atom of the given display width. A space (or, once it would overrun width, a line
// break) is inserted before it only if both this atom's spaceBefore and the previous atom's
// spaceAfter allow one, mirroring [FlowStylist.Push]'s both-sides-must-agree rule.
func (f *FillStylist) Push(doc *layout.Doc, width int, spaceBefore, spaceAfter bool) {
	if !f.atStart && spaceBefore && f.spaceAfter {
		if f.width > 0 && f.col+1+width > f.width {
			f.doc = f.doc.Append(layout.Hardline)
			f.col = width
		} else {
			f.doc = f.doc.Append(layout.Text(" "))
			f.col += 1 + width
		}
	} else {
		f.col += width
	}
	f.doc = f.doc.Append(doc)
	f.atStart = false
	f.spaceAfter = spaceAfter
}

// PushHardline forces a line break regardless of remaining width, e.g. a source paragraph break or
// a trailing line comment that must end its line.
func (f *FillStylist) PushHardline() {
	f.doc = f.doc.Append(layout.Hardline)
	f.col = 0
	f.atStart = true
	f.spaceAfter = false
}

// PushBlock inserts doc as-is, bypassing width accounting: for block-level constructs that already
// manage their own internal line breaks (a nested list item, a code block spelled in markup).
func (f *FillStylist) PushBlock(doc *layout.Doc) {
	f.doc = f.doc.Append(doc)
	f.col = 0
	f.atStart = true
	f.spaceAfter = false
}

// Doc returns the accumulated, reflowed doc.
func (f *FillStylist) Doc() *layout.Doc { return f.doc }
