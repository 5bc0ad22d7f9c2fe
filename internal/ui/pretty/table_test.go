package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/redmark/internal/ui/pretty"
)

func TestFormatTable(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	got := styles.FormatTable(
		[]string{"NAME", "FIELD", "DESCRIPTION"},
		[][]string{
			{"REDMARK_FORMAT", "output.format", "Output format"},
			{"REDMARK_WIDTH", "output.width", "Text width"},
		},
	)

	want := "NAME            FIELD          DESCRIPTION\n" +
		strings.Repeat("-", 44) + "\n" +
		"REDMARK_FORMAT  output.format  Output format\n" +
		"REDMARK_WIDTH   output.width   Text width\n"
	assert.Equal(t, want, got)
}

func TestFormatTable_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pretty.NewStyles(false).FormatTable(nil, nil))
	assert.Equal(t, "A\n-\n", pretty.NewStyles(false).FormatTable([]string{"A"}, nil))
}
