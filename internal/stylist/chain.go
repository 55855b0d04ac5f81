package stylist

import (
	"unicode/utf8"

	"github.com/quillfmt/quill/internal/layout"
)

// ChainStyle configures a [ChainStylist].
type ChainStyle struct {
	// NoBreakSingle keeps the chain on one line when it contains only one operator.
	NoBreakSingle bool
	// SpaceAroundOp adds a space before and after each operator (e.g. binary `+`); when false the
	// operator sits directly against its operands except for the line break it may introduce
	// (e.g. method-chain `.field`).
	SpaceAroundOp bool
}

type chainItemKind int

const (
	chainBody chainItemKind = iota
	chainOp
	chainComment
	chainAttached
	chainLinebreak
)

type chainItem struct {
	kind chainItemKind
	doc  *layout.Doc
}

// ChainStylist folds a sequence of `operand op operand op operand ...` pairs (binary expression
// chains, method/field access chains) into a single doc that breaks uniformly before each
// operator once the chain no longer fits on one line.
type ChainStylist struct {
	tabSpaces  int
	chainWidth int
	items      []chainItem
	opCount    int
	hasCmt     bool
}

// NewChainStylist creates an empty stylist that indents wrapped operators by tabSpaces columns.
// chainWidth is the narrower budget a chain must additionally respect (spec.md's chain_width):
// pass 0 to only ever consider the ambient max_width.
func NewChainStylist(tabSpaces, chainWidth int) *ChainStylist {
	return &ChainStylist{tabSpaces: tabSpaces, chainWidth: chainWidth}
}

// PushBody adds an operand.
func (c *ChainStylist) PushBody(doc *layout.Doc) {
	c.items = append(c.items, chainItem{kind: chainBody, doc: doc})
}

// PushOp adds an operator; ops is what separates consecutive operands in the chain.
func (c *ChainStylist) PushOp(doc *layout.Doc) {
	c.opCount++
	c.items = append(c.items, chainItem{kind: chainOp, doc: doc})
}

// PushComment adds a standalone comment. attached indicates it trails the previous operand on the
// same source line, rather than standing on its own line.
func (c *ChainStylist) PushComment(doc *layout.Doc, attached bool) {
	c.hasCmt = true
	if attached {
		c.items = append(c.items, chainItem{kind: chainAttached, doc: doc})
	} else {
		c.items = append(c.items, chainItem{kind: chainComment, doc: doc})
	}
}

// PushLinebreak records that the source had a hard line break at this point in the chain.
func (c *ChainStylist) PushLinebreak() {
	c.items = append(c.items, chainItem{kind: chainLinebreak})
}

// Print folds the accumulated chain into a single [layout.Doc] per sty.
func (c *ChainStylist) Print(sty ChainStyle) *layout.Doc {
	opSep := softbreak()
	if sty.SpaceAroundOp {
		opSep = line()
	}

	simple := c.opCount == 1 && sty.NoBreakSingle && !c.hasCmt

	var docs []*layout.Doc
	hasBreak := false
	leading := true
	spaceAfter := true

	appendLast := func(d *layout.Doc) {
		if len(docs) == 0 {
			docs = append(docs, d)
			return
		}
		docs[len(docs)-1] = docs[len(docs)-1].Append(d)
	}

	for _, item := range c.items {
		switch item.kind {
		case chainBody:
			if leading {
				docs = append(docs, item.doc)
			} else {
				appendLast(item.doc)
			}
			leading = false
			spaceAfter = true
		case chainOp:
			if !((hasBreak && leading) || simple) {
				docs = append(docs, opSep)
			}
			hasBreak = false
			op := item.doc
			if sty.SpaceAroundOp {
				op = op.Append(layout.Text(" "))
			}
			docs = append(docs, op)
			leading = false
			spaceAfter = false
		case chainComment:
			if leading {
				docs = append(docs, item.doc)
			} else if spaceAfter {
				appendLast(layout.Text(" ").Append(item.doc))
			} else {
				appendLast(item.doc)
			}
			leading = false
			spaceAfter = true
		case chainAttached:
			if spaceAfter {
				appendLast(layout.Text(" ").Append(item.doc))
			} else {
				appendLast(item.doc)
			}
		case chainLinebreak:
			hasBreak = true
			leading = true
			docs = append(docs, layout.Hardline)
		}
	}

	if len(docs) == 0 {
		return layout.Nil
	}
	first := docs[0]
	rest := layout.Concat(docs[1:]...)
	var whole *layout.Doc
	if simple {
		whole = first.Append(rest)
	} else {
		whole = first.Append(layout.Nest(c.tabSpaces, rest))
	}

	// chain_width is a narrower budget than max_width: a chain that would fit flat against the
	// ambient line width must still break if its flat form alone exceeds chain_width. [layout.Fail]
	// can't express that here the way [ListStylist.printCompact]'s ArgsWidth guard does, since that
	// guard only ever needs to distinguish "fits" from "doesn't" within the SAME budget a [Group]
	// already checks against; chain_width is a second, smaller budget entirely. So measure the
	// chain's one-line rendering directly and, if it overruns chain_width, return it unwrapped:
	// outside of any enclosing Group every FlatAlt/softbreak here resolves to its broken form,
	// forcing the break regardless of how the real max_width check would have gone.
	if c.chainWidth > 0 && !simple {
		// Measure via a throwaway Group: whole's own FlatAlt/softbreak nodes only flatten under an
		// enclosing Group that has chosen flat mode, and at this point nothing wraps whole yet.
		if flat, err := layout.Render(layout.Group(whole), 1<<30); err == nil && utf8.RuneCountInString(flat) > c.chainWidth {
			return whole
		}
	}
	return layout.Group(whole)
}
