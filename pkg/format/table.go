// Package format renders the plain-text tables and strings used by the
// summary command.
package format

import (
	"fmt"
	"io"
	"strings"
)

// CharMap holds the characters used to draw table borders.
type CharMap struct {
	Horizontal string
	Vertical   string
	Cross      string
}

var ASCIICharMap = CharMap{Horizontal: "-", Vertical: "|", Cross: "+"}
var PrettyCharMap = CharMap{Horizontal: "─", Vertical: "│", Cross: "┼"}

// Table is a rows-of-strings table. The first appended row is the header.
// It implements sort.Interface over the body rows once SetSort is called.
type Table struct {
	rows    [][]string
	sortCol int
	less    func(a string, b string) bool
}

func NewTable() *Table {
	return &Table{less: func(a string, b string) bool { return a < b }}
}

func (t *Table) AppendRow(values ...string) {
	t.rows = append(t.rows, values)
}

// SetSort selects the column and ordering used by sort.Sort. The header
// row never moves.
func (t *Table) SetSort(column int, less func(a string, b string) bool) {
	t.sortCol = column
	t.less = less
}

func (t *Table) Len() int {
	if len(t.rows) == 0 {
		return 0
	}
	return len(t.rows) - 1
}

func (t *Table) Swap(i int, j int) {
	t.rows[i+1], t.rows[j+1] = t.rows[j+1], t.rows[i+1]
}

func (t *Table) Less(i int, j int) bool {
	return t.less(t.cell(i+1, t.sortCol), t.cell(j+1, t.sortCol))
}

func (t *Table) cell(row int, col int) string {
	if col >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][col]
}

// NewCatagoricLess orders values by their position in the given category
// list; values outside the list sort last.
func NewCatagoricLess(categories []string) func(a string, b string) bool {
	rank := func(v string) int {
		for i, category := range categories {
			if v == category {
				return i
			}
		}
		return len(categories)
	}
	return func(a string, b string) bool {
		return rank(a) < rank(b)
	}
}

// TableWriter renders a table with column-width alignment and a separator
// under the header row.
type TableWriter struct {
	charMap CharMap
	table   *Table
}

func NewTableWriter(table *Table) *TableWriter {
	return &TableWriter{charMap: PrettyCharMap, table: table}
}

func (w *TableWriter) WithCharMap(charMap CharMap) *TableWriter {
	w.charMap = charMap
	return w
}

func (w *TableWriter) WithTable(table *Table) *TableWriter {
	w.table = table
	return w
}

func (w *TableWriter) WriteTo(out io.Writer) (int64, error) {
	if w.table == nil || len(w.table.rows) == 0 {
		return 0, nil
	}
	widths := w.columnWidths()

	var written int64
	writeRow := func(values []string) error {
		cells := make([]string, len(widths))
		for i, width := range widths {
			v := ""
			if i < len(values) {
				v = values[i]
			}
			cells[i] = fmt.Sprintf("%-*s", width, v)
		}
		n, err := fmt.Fprintf(out, "%s\n", strings.Join(cells, " "+w.charMap.Vertical+" "))
		written += int64(n)
		return err
	}

	if err := writeRow(w.table.rows[0]); err != nil {
		return written, err
	}
	separators := make([]string, len(widths))
	for i, width := range widths {
		separators[i] = strings.Repeat(w.charMap.Horizontal, width)
	}
	n, err := fmt.Fprintf(out, "%s\n", strings.Join(separators, w.charMap.Horizontal+w.charMap.Cross+w.charMap.Horizontal))
	written += int64(n)
	if err != nil {
		return written, err
	}
	for _, row := range w.table.rows[1:] {
		if err := writeRow(row); err != nil {
			return written, err
		}
	}
	return written, nil
}

func (w *TableWriter) columnWidths() []int {
	var widths []int
	for _, row := range w.table.rows {
		for i, v := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}
	return widths
}
