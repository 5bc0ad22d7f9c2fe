// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/redmark/pkg/printer"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Tree styles
	Kind  lipgloss.Style
	Attr  lipgloss.Style
	Value lipgloss.Style
	Range lipgloss.Style

	// Diagnostic components
	Warning    lipgloss.Style
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Code       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Kind:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Attr:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Value: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Range: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		FilePath:   lipgloss.NewStyle().Bold(true),
		Location:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Code:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Message:    lipgloss.NewStyle(),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Kind:         plain,
		Attr:         plain,
		Value:        plain,
		Range:        plain,
		Warning:      plain,
		FilePath:     plain,
		Location:     plain,
		Code:         plain,
		Message:      plain,
		SourceLine:   plain,
		Caret:        plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		Success:      plain,
		Failure:      plain,
		Dim:          plain,
		Bold:         plain,
	}
}

// TreeTheme returns the renderers for the text tree printer.
func (s *Styles) TreeTheme() printer.Theme {
	return printer.Theme{
		Kind:  s.Kind,
		Attr:  s.Attr,
		Value: s.Value,
		Range: s.Range,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
