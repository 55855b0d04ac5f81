package stylist

import (
	"github.com/quillfmt/quill/internal/layout"
)

// FlowStylist joins a sequence of loosely related docs (keywords, expressions, comments) with a
// single space wherever both the preceding and following item allow one, and not otherwise. It is
// the loosest of the stylists: items don't share a delimiter or separator, they just flow.
type FlowStylist struct {
	doc        *layout.Doc
	spaceAfter bool
}

// NewFlowStylist creates an empty flow.
func NewFlowStylist() *FlowStylist {
	return &FlowStylist{doc: layout.Nil}
}

// Push adds doc to the flow. spaceBefore/spaceAfter say whether a space may be inserted
// immediately before/after doc, if its neighbor agrees.
func (f *FlowStylist) Push(doc *layout.Doc, spaceBefore, spaceAfter bool) {
	if spaceBefore && f.spaceAfter {
		f.doc = f.doc.Append(layout.Text(" "))
	}
	f.doc = f.doc.Append(doc)
	f.spaceAfter = spaceAfter
}

// PushSpaced adds doc allowing a space on both sides.
func (f *FlowStylist) PushSpaced(doc *layout.Doc) { f.Push(doc, true, true) }

// PushTight adds doc allowing a space on neither side.
func (f *FlowStylist) PushTight(doc *layout.Doc) { f.Push(doc, false, false) }

// PushHardline forces a line break in the flow, e.g. after a line comment.
func (f *FlowStylist) PushHardline() {
	f.doc = f.doc.Append(layout.Hardline)
	f.spaceAfter = false
}

// Doc returns the accumulated flow.
func (f *FlowStylist) Doc() *layout.Doc { return f.doc }
