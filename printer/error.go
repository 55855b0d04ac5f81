package printer

import (
	"fmt"
	"strings"

	"github.com/quillfmt/quill"
)

// SyntaxError reports that the source could not be formatted because it failed to parse. It wraps
// every [quill.Error] the parser recovered from, in source order, grounded on the teacher's
// Printer.Print returning the first parser error it sees -- this module surfaces all of them
// instead of just the first, since a formatter is better off telling a caller everything wrong at
// once.
type SyntaxError struct {
	Errs []quill.Error
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	for i, pe := range e.Errs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %s", pe.Pos, pe.Msg)
	}
	return sb.String()
}

// RangeError reports that [Formatter.FormatSourceRange] could not locate or format the requested
// byte range.
type RangeError struct {
	Msg string
}

func (e *RangeError) Error() string { return e.Msg }
