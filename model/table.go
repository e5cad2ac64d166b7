package model

import (
	"strings"
)

// Zone is a cell zone: a rectangle of cells sharing a border fill.
type Zone struct {
	StartCol, StartRow uint16
	EndCol, EndRow     uint16
	BorderFillID       uint16
}

// Table represents a table control
type Table struct {
	Object       ObjectHeader
	Attr         uint32
	Rows         int
	Cols         int
	CellSpacing  uint16
	Padding      [4]uint16
	RowSizes     []uint16
	BorderFillID uint16
	Zones        []Zone

	Caption *Caption
	// Cells is nil until the TABLE record has been decoded.
	Cells []*Cell
}

// DeclaredCells returns the cell count announced by the row sizes
func (t *Table) DeclaredCells() int {
	n := 0
	for _, s := range t.RowSizes {
		n += int(s)
	}
	return n
}

// Cell returns the cell covering (row, col), or nil
func (t *Table) Cell(row, col int) *Cell {
	for _, c := range t.Cells {
		if row >= c.Row && row < c.Row+c.RowSpan && col >= c.Col && col < c.Col+c.ColSpan {
			return c
		}
	}
	return nil
}

// Grid lays the cell text out on a rows x cols grid. Spanned positions
// other than the top-left one are left empty.
func (t *Table) Grid() [][]string {
	rows, cols := t.Rows, t.Cols
	for _, c := range t.Cells {
		if c.Row+c.RowSpan > rows {
			rows = c.Row + c.RowSpan
		}
		if c.Col+c.ColSpan > cols {
			cols = c.Col + c.ColSpan
		}
	}
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, cols)
	}
	for _, c := range t.Cells {
		if c.Row < 0 || c.Col < 0 {
			continue
		}
		grid[c.Row][c.Col] = c.Text()
	}
	return grid
}

// GetText returns the table text, tab separated
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Grid() {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the table to markdown format
func (t *Table) ToMarkdown() string {
	grid := t.Grid()
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		for _, text := range row {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(strings.ReplaceAll(text, "\n", " "), "|", "\\|"))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	// Header row
	writeRow(grid[0])

	// Separator
	for range grid[0] {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")

	// Data rows
	for _, row := range grid[1:] {
		writeRow(row)
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Grid() {
		for j, text := range row {
			// Escape quotes and wrap in quotes if necessary
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Cell represents a table cell
type Cell struct {
	List         ListHeader
	Col          int
	Row          int
	ColSpan      int
	RowSpan      int
	Width        uint32
	Height       uint32
	Margins      [4]uint16
	BorderFillID uint16
	Paragraphs   []*Paragraph
}

// VerticalAlign returns the vertical alignment of the cell content
func (c *Cell) VerticalAlign() VerticalAlignment {
	return c.List.VerticalAlign()
}

// Text joins the cell's paragraph text
func (c *Cell) Text() string {
	return ParagraphsText(c.Paragraphs)
}
