// Package stylist collects a sequence of child docs plus their trivia (commas, comments,
// linebreaks) and folds them into a single [layout.Doc] according to one of a few reusable
// shapes: a delimited list, a binary-operator chain, a loose space-separated flow, or a table of
// fixed-width columns. Converters build a stylist, feed it nodes in source order, and ask it to
// print once every item has been seen.
package stylist

import (
	"github.com/quillfmt/quill/internal/layout"
)

// FoldStyle controls whether a [ListStylist] keeps its items on one line.
type FoldStyle int

const (
	// FoldFit folds the list onto one line if it fits within the configured width, and expands
	// it onto multiple lines otherwise.
	FoldFit FoldStyle = iota
	// FoldNever always expands the list onto multiple lines, one item per line.
	FoldNever
	// FoldAlways always keeps the list on one line, regardless of width.
	FoldAlways
	// FoldCompact keeps every item but the last flat on the opening line and lets only the last
	// item break, racing that "combinable" shape (via [layout.Union]) against falling back to
	// breaking every item once the flat prefix grows past the configured width.
	FoldCompact
)

func line() *layout.Doc      { return layout.FlatAlt(layout.Text(" "), layout.Hardline) }
func softbreak() *layout.Doc { return layout.FlatAlt(layout.Nil, layout.Hardline) }
