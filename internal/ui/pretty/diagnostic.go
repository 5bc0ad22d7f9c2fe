package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/redmark/pkg/mdast"
)

// FormatDiagnostic formats a parse diagnostic for terminal output. The
// source line and a caret are shown when showContext is set.
func (s *Styles) FormatDiagnostic(path string, doc *mdast.Document, diag mdast.Diagnostic, showContext bool) string {
	var builder strings.Builder

	line, col := doc.LineAt(diag.Offset)

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), line, col)

	// Main line: location  warning  message  (code)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Warning.Render("warning"),
		s.Message.Render(diag.Message),
		s.Code.Render("("+diag.Code+")"),
	))

	if showContext {
		if sourceLine := doc.LineContent(line); sourceLine != "" {
			builder.WriteString(s.FormatSourceContext(sourceLine, col))
		}
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d diagnostics)", issueCount))
	}
	return header
}
