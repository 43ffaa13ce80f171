// Package cli provides the command-line interface for Swatch.
package cli

import "strings"

// table is a minimal column-aligned text table for CLI summaries.
type table struct {
	headers []string
	rows    [][]string
	padding int
}

// newTable creates a table with the given headers.
func newTable(headers []string) *table {
	return &table{
		headers: headers,
		padding: 2,
	}
}

// addRow appends a row, padded or truncated to the header count.
func (t *table) addRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// render formats the table with column widths sized to the longest cell.
func (t *table) render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			sb.WriteString(cell)
			if i < len(cells)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)+t.padding))
			}
		}
		sb.WriteByte('\n')
	}

	writeRow(t.headers)
	for _, row := range t.rows {
		writeRow(row)
	}
	return sb.String()
}
