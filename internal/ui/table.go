package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableColumn is a column title and its minimum width.
type TableColumn struct {
	Title string
	Width int
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.Foreground(ColorPrimary)
	s.Selected = s.Selected.
		Foreground(ColorPrimary).
		Background(ColorMuted).
		Bold(false)
	return s
}

func toColumns(columns []TableColumn) []table.Column {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}
	return cols
}

// FitColumns widens each column to its title and longest cell. Columns
// never get narrower than their Width.
func FitColumns(columns []TableColumn, rows [][]string) []TableColumn {
	fitted := make([]TableColumn, len(columns))
	for i, c := range columns {
		c.Width = max(c.Width, lipgloss.Width(c.Title))
		for _, row := range rows {
			if i < len(row) {
				c.Width = max(c.Width, lipgloss.Width(row[i]))
			}
		}
		fitted[i] = c
	}
	return fitted
}

// NewTable creates an unfocused Bubbles table. A height of zero fits all rows.
func NewTable(columns []TableColumn, rows []table.Row, height int) table.Model {
	if height <= 0 {
		height = len(rows) + 1
	}
	return table.New(
		table.WithColumns(toColumns(columns)),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithStyles(tableStyles()),
	)
}

// RenderSimpleTable renders rows for plain CLI output, sizing columns to
// their content. It returns "" when there are no rows.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}
	return NewTable(FitColumns(columns, rows), tableRows, 0).View()
}
