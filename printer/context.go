package printer

// Mode tracks which of the language's three lexical modes a converter is currently inside. It is
// threaded explicitly through every convert* call instead of living on a mutable stack: a
// converter's mode is a pure function of the path from the root, so passing it down as a value
// keeps that invariant visible at every call site instead of relying on push/pop discipline.
type Mode int

const (
	// ModeMarkup is text/paragraph content: the document root, content blocks, headings, etc.
	ModeMarkup Mode = iota
	// ModeCode is a code block's statement sequence.
	ModeCode
	// ModeCodeCont is inside parens/brackets within code (argument lists, array/dict literals):
	// whitespace is insignificant here the way it is not in ModeCode.
	ModeCodeCont
	// ModeMath is inside an equation.
	ModeMath
)

// context carries the ambient state every converter needs beyond the syntax node itself: which
// mode it is in, and whether hard line breaks are currently suppressed (inside a markup line that
// must stay on one source line, e.g. an expression embedded in a text paragraph).
type context struct {
	mode            Mode
	breakSuppressed bool
}

func rootContext() context {
	return context{mode: ModeMarkup}
}

func (c context) withMode(m Mode) context {
	c.mode = m
	return c
}

func (c context) suppressBreak() context {
	c.breakSuppressed = true
	return c
}

func (c context) isMath() bool { return c.mode == ModeMath }
