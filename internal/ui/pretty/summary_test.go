package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/redmark/internal/ui/pretty"
	"github.com/yaklabco/redmark/pkg/mdast"
	"github.com/yaklabco/redmark/pkg/parser"
	"github.com/yaklabco/redmark/pkg/printer"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := printer.Summarize(parser.Parse("# A\n\n- b\n- c\n"))
	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Blocks:            2")
	assert.Contains(t, result, "ListItem:        2")
	assert.Contains(t, result, "Parsed cleanly")
}

func TestFormatSummary_Diagnostics(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(printer.Stats{Diagnostics: 1})
	assert.Contains(t, result, "Parsed with 1 diagnostic\n")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats printer.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: printer.Stats{Bytes: 10, Lines: 2, Blocks: 1, Nodes: 2},
			want:  "1 block, 2 nodes in 2 lines (10 bytes), no diagnostics\n",
		},
		{
			name:  "singular counts",
			stats: printer.Stats{Bytes: 1, Lines: 1, Blocks: 3, Nodes: 1, Diagnostics: 2},
			want:  "3 blocks, 1 node in 1 line (1 byte), 2 diagnostics\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatDiagnostic(t *testing.T) {
	styles := pretty.NewStyles(false)

	doc := mdast.NewDocument("first\nsecond line\n", nil)
	diag := mdast.Diagnostic{Code: "no-progress", Message: "stuck", Offset: 9}

	result := styles.FormatDiagnostic("post.md", doc, diag, true)
	assert.Equal(t,
		"  post.md:2:4  warning  stuck  (no-progress)\n"+
			"        second line\n"+
			"           ^\n",
		result)

	result = styles.FormatDiagnostic("post.md", doc, diag, false)
	assert.NotContains(t, result, "second line")
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.md", styles.FormatFileHeader("a.md", 0))
	assert.Equal(t, "a.md (3 diagnostics)", styles.FormatFileHeader("a.md", 3))
}

func TestFormatRunSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "1 file parsed\n", styles.FormatRunSummary(1, 0, 0))
	assert.Equal(t, "3 files parsed, 1 with diagnostics, 2 unreadable\n", styles.FormatRunSummary(3, 1, 2))
}
