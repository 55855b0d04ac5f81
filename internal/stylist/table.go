package stylist

import (
	"github.com/quillfmt/quill/internal/layout"
)

type tableRowKind int

const (
	rowCells tableRowKind = iota
	rowBlock
	rowComment
	rowLinebreak
)

type tableRow struct {
	kind      tableRowKind
	doc       *layout.Doc
	autoBreak bool
}

// TableCollector reflows the positional arguments of a table/grid-like call into rows of a fixed
// column count, so e.g. a 12-cell call with columns=3 prints as four rows of three cells each
// instead of one cell per source line. When columns is 0, cells are never grouped into rows of a
// fixed width: they gather on the current row until [TableCollector.PushNewline] ends it.
type TableCollector struct {
	columns  int
	rows     []tableRow
	curCells []*layout.Doc
}

// NewTableCollector creates a collector grouping cells into rows of the given width.
func NewTableCollector(columns int) *TableCollector {
	initial := columns
	if initial < 2 {
		initial = 2
	}
	return &TableCollector{columns: columns, curCells: make([]*layout.Doc, 0, initial)}
}

// PushCell adds a single positional cell, flushing a completed row once columns cells have
// accumulated.
func (tc *TableCollector) PushCell(doc *layout.Doc) {
	tc.curCells = append(tc.curCells, doc)
	if len(tc.curCells) == tc.columns {
		tc.flushCells()
	}
}

// PushRow adds a doc that occupies an entire row by itself (e.g. a named argument, or a spread
// argument, which cannot be reflowed as a cell).
func (tc *TableCollector) PushRow(doc *layout.Doc) {
	tc.flushCells()
	tc.rows = append(tc.rows, tableRow{kind: rowBlock, doc: doc})
}

// PushComment adds a standalone comment row.
func (tc *TableCollector) PushComment(doc *layout.Doc) {
	tc.flushCells()
	tc.disableLastAutoBreak()
	tc.rows = append(tc.rows, tableRow{kind: rowComment, doc: doc})
}

// PushNewline records n consecutive source linebreaks between cells.
func (tc *TableCollector) PushNewline(n int) {
	if (n == 1 && tc.columns == 0) || n > 1 {
		tc.flushCells()
	}
	if n > 1 {
		tc.disableLastAutoBreak()
		tc.rows = append(tc.rows, tableRow{kind: rowLinebreak})
	}
}

func (tc *TableCollector) flushCells() {
	if len(tc.curCells) == 0 {
		return
	}
	parts := make([]*layout.Doc, 0, len(tc.curCells)*2-1)
	for i, cell := range tc.curCells {
		if i > 0 {
			parts = append(parts, layout.Text(","), line())
		}
		parts = append(parts, cell)
	}
	tc.rows = append(tc.rows, tableRow{
		kind:      rowCells,
		doc:       layout.Concat(parts...),
		autoBreak: tc.columns > 1,
	})
	tc.curCells = tc.curCells[:0]
}

func (tc *TableCollector) disableLastAutoBreak() {
	if n := len(tc.rows); n > 0 && tc.rows[n-1].kind == rowCells {
		tc.rows[n-1].autoBreak = false
	}
}

// Collect folds all pushed rows into a single doc, one row per source line.
func (tc *TableCollector) Collect() *layout.Doc {
	tc.flushCells()
	for len(tc.rows) > 0 && tc.rows[len(tc.rows)-1].kind == rowLinebreak {
		tc.rows = tc.rows[:len(tc.rows)-1]
	}

	n := len(tc.rows)
	onlyOneRow := n == 1
	var parts []*layout.Doc
	for i, row := range tc.rows {
		if i > 0 {
			parts = append(parts, layout.Hardline)
		}
		switch row.kind {
		case rowCells:
			d := row.doc
			if onlyOneRow {
				d = d.Append(layout.FlatAlt(layout.Text(","), layout.Nil))
			} else {
				d = d.Append(layout.Text(","))
			}
			if i+1 < n && row.autoBreak {
				d = d.Append(softbreak())
			}
			parts = append(parts, layout.Group(d))
		case rowBlock:
			parts = append(parts, row.doc.Append(layout.Text(",")))
		case rowComment:
			parts = append(parts, row.doc)
		case rowLinebreak:
			parts = append(parts, layout.Nil)
		}
	}
	return layout.Concat(parts...)
}
