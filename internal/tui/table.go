package tui

import (
	"fmt"
	"io"
)

// TableColumn defines a column in a table.
type TableColumn struct {
	Name  string
	Width int
	Align Alignment
}

// Alignment defines text alignment in a column.
type Alignment int

// Alignment constants.
const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table provides styled table rendering.
type Table struct {
	w       io.Writer
	styles  *TableStyles
	columns []TableColumn
}

// NewTable creates a new table with the given columns.
func NewTable(w io.Writer, columns []TableColumn) *Table {
	return &Table{
		w:       w,
		styles:  NewTableStyles(),
		columns: columns,
	}
}

// WriteHeader writes the table header row.
func (t *Table) WriteHeader() {
	header := ""
	for i, col := range t.columns {
		if i > 0 {
			header += " "
		}
		header += t.formatCell(col, col.Name)
	}
	_, _ = fmt.Fprintln(t.w, t.styles.Header.Render(header))
}

// WriteRow writes a data row to the table.
func (t *Table) WriteRow(values ...string) {
	row := ""
	for i, col := range t.columns {
		if i > 0 {
			row += " "
		}
		value := ""
		if i < len(values) {
			value = values[i]
		}
		row += t.formatCell(col, value)
	}
	_, _ = fmt.Fprintln(t.w, row)
}

// formatCell truncates and aligns a single cell value.
func (t *Table) formatCell(col TableColumn, value string) string {
	// Truncate if needed (require Width > 1 to avoid slice bounds panic)
	if col.Width > 1 {
		value = truncate(value, col.Width)
	}
	if col.Align == AlignRight {
		padded := pad(value, col.Width)
		// Move padding to the front for right alignment
		return padded[len(value):] + value
	}
	return pad(value, col.Width)
}
