// Package table renders plain terminal tables for the cli.
package table

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Padding(0, 1).Faint(true)
)

// Render headers and rows as a bordered table, rows shorter than headers are padded
func Render(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return mutedStyle
			default:
				return cellStyle
			}
		})

	for _, row := range rows {
		for len(row) < len(headers) {
			row = append(row, "")
		}
		t.Row(row...)
	}

	return t.String()
}

// Title bold line above a table
func Title(s string) string {
	return headerStyle.Render(s)
}
