package printer

// Config controls how a [Formatter] lays out source. A zero Config is invalid; always start from
// [DefaultConfig] and layer on With* calls, the way the original's config.rs builds a Config via
// with_width/with_tab_spaces/with_wrap_text.
type Config struct {
	width                int
	tabSpaces            int
	wrapText             bool
	collapseMarkupSpaces bool
	reorderImports       bool
	blankLinesUpperBound int
}

// DefaultConfig returns the formatter's default settings: 80 column width, tabs worth 2 columns,
// no prose wrapping, import reordering enabled, and at most one blank line preserved between
// items.
func DefaultConfig() Config {
	return Config{
		width:                80,
		tabSpaces:            2,
		wrapText:             false,
		reorderImports:       true,
		blankLinesUpperBound: 1,
	}
}

// WithWidth sets the target line width.
func (c Config) WithWidth(width int) Config {
	c.width = width
	return c
}

// WithTabSpaces sets how many columns one level of indentation costs.
func (c Config) WithTabSpaces(n int) Config {
	c.tabSpaces = n
	return c
}

// WithWrapText enables reflowing markup prose to fit the target width. Off by default: rewrapping
// prose changes the meaning of line breaks in some markup constructs (e.g. inside raw blocks this
// is never applied regardless of the setting), so it is opt-in. Enabling it implies
// WithCollapseMarkupSpaces, since reflowing text only makes sense once runs of markup whitespace
// are first collapsed to single spaces.
func (c Config) WithWrapText(wrap bool) Config {
	c.wrapText = wrap
	if wrap {
		c.collapseMarkupSpaces = true
	}
	return c
}

// WithCollapseMarkupSpaces enables collapsing a run of markup whitespace (including one containing
// a single line break) into a single space. Off by default, since source line breaks inside prose
// are otherwise preserved verbatim.
func (c Config) WithCollapseMarkupSpaces(collapse bool) Config {
	c.collapseMarkupSpaces = collapse
	return c
}

// WithReorderImports enables sorting of comment-free, duplicate-free import item lists by their
// textual form.
func (c Config) WithReorderImports(reorder bool) Config {
	c.reorderImports = reorder
	return c
}

// WithBlankLinesUpperBound sets how many consecutive blank source lines are preserved between
// items; additional ones are collapsed.
func (c Config) WithBlankLinesUpperBound(n int) Config {
	c.blankLinesUpperBound = n
	return c
}

// Width returns the target line width.
func (c Config) Width() int { return c.width }

// TabSpaces returns the indentation width of one nesting level.
func (c Config) TabSpaces() int { return c.tabSpaces }

// WrapText reports whether prose reflowing is enabled.
func (c Config) WrapText() bool { return c.wrapText }

// CollapseMarkupSpaces reports whether runs of markup whitespace collapse to a single space.
func (c Config) CollapseMarkupSpaces() bool { return c.collapseMarkupSpaces }

// ReorderImports reports whether import item lists may be sorted.
func (c Config) ReorderImports() bool { return c.reorderImports }

// BlankLinesUpperBound returns the max number of consecutive blank lines preserved between items.
func (c Config) BlankLinesUpperBound() int { return c.blankLinesUpperBound }

// ChainWidth returns the width budget a [ChainStylist]-formatted dot-chain or binary chain is
// measured against. It is derived lazily from Width rather than cached, so a Config built with
// WithWidth after construction never carries a stale chain budget.
func (c Config) ChainWidth() int {
	return int(float64(c.width) * 0.6)
}
