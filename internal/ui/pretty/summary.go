package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/redmark/pkg/printer"
)

const summaryDividerWidth = 40

// plural returns word with an "s" unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// FormatSummaryOneLine formats parse statistics as a single line.
// Example: "3 blocks, 17 nodes in 12 lines (340 bytes), no diagnostics".
func (s *Styles) FormatSummaryOneLine(stats printer.Stats) string {
	parts := []string{
		fmt.Sprintf("%d %s", stats.Blocks, plural(stats.Blocks, "block")),
		fmt.Sprintf("%d %s in %d %s (%d %s)",
			stats.Nodes, plural(stats.Nodes, "node"),
			stats.Lines, plural(stats.Lines, "line"),
			stats.Bytes, plural(stats.Bytes, "byte")),
	}

	if stats.Diagnostics == 0 {
		parts = append(parts, s.Success.Render("no diagnostics"))
	} else {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s", stats.Diagnostics, plural(stats.Diagnostics, "diagnostic"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatRunSummary formats file counts of a multi-file run as one line.
// Example: "12 files parsed, 1 with diagnostics, 2 unreadable".
func (s *Styles) FormatRunSummary(parsed, withDiagnostics, unreadable int) string {
	parts := []string{fmt.Sprintf("%d %s parsed", parsed, plural(parsed, "file"))}

	if withDiagnostics > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d with diagnostics", withDiagnostics)))
	}
	if unreadable > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable", unreadable)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats parse statistics as a summary block with node
// counts per kind.
func (s *Styles) FormatSummary(stats printer.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Bytes:             " + s.SummaryValue.Render(strconv.Itoa(stats.Bytes)) + "\n")
	builder.WriteString("  Lines:             " + s.SummaryValue.Render(strconv.Itoa(stats.Lines)) + "\n")
	builder.WriteString("  Blocks:            " + s.SummaryValue.Render(strconv.Itoa(stats.Blocks)) + "\n")
	builder.WriteString("  Nodes:             " + s.SummaryValue.Render(strconv.Itoa(stats.Nodes)) + "\n")

	kinds := make([]string, 0, len(stats.ByKind))
	for kind := range stats.ByKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		builder.WriteString(fmt.Sprintf("    %-17s%s\n", kind+":", s.Dim.Render(strconv.Itoa(stats.ByKind[kind]))))
	}

	builder.WriteString("\n")

	if stats.Diagnostics > 0 {
		builder.WriteString(s.Failure.Render(fmt.Sprintf("Parsed with %d %s", stats.Diagnostics, plural(stats.Diagnostics, "diagnostic"))))
	} else {
		builder.WriteString(s.Success.Render("Parsed cleanly"))
	}
	builder.WriteString("\n")

	return builder.String()
}
