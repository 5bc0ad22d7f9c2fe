package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formatting constants.
const (
	tablePadding   = 2
	lightSeparator = "-"
)

// FormatTable formats rows under a header as aligned columns. The last
// column is not padded. Widths are measured with lipgloss so styled cells
// align.
func (s *Styles) FormatTable(header []string, rows [][]string) string {
	if len(header) == 0 {
		return ""
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var builder strings.Builder

	writeRow := func(cells []string, style func(col int, cell string) string) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			builder.WriteString(style(i, cell))
			if i < len(widths)-1 {
				builder.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+tablePadding))
			}
		}
		builder.WriteString("\n")
	}

	writeRow(header, func(_ int, cell string) string { return s.Bold.Render(cell) })

	total := 0
	for _, w := range widths {
		total += w
	}
	total += tablePadding * (len(widths) - 1)
	builder.WriteString(s.Dim.Render(strings.Repeat(lightSeparator, total)))
	builder.WriteString("\n")

	for _, row := range rows {
		writeRow(row, func(col int, cell string) string {
			switch col {
			case 0:
				return s.Attr.Render(cell)
			case len(widths) - 1:
				return s.Dim.Render(cell)
			default:
				return cell
			}
		})
	}

	return builder.String()
}
