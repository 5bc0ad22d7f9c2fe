package printer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yaklabco/redmark/pkg/mdast"
)

// Renderer styles a piece of output. lipgloss.Style satisfies it.
type Renderer interface {
	Render(strs ...string) string
}

// Theme holds the renderers used by the text format. Nil renderers print
// plain text.
type Theme struct {
	Kind  Renderer
	Attr  Renderer
	Value Renderer
	Range Renderer
}

func render(r Renderer, s string) string {
	if r == nil {
		return s
	}
	return r.Render(s)
}

const indentUnit = "  "

// ellipsis marks truncated text.
const ellipsis = "…"

func writeText(w io.Writer, doc *mdast.Document, opts Options) error {
	tree := Build(doc, opts.ShowRanges)
	if err := writeTree(w, tree, 0, opts); err != nil {
		return err
	}

	for _, d := range doc.Diagnostics {
		line, col := doc.LineAt(d.Offset)
		if _, err := fmt.Fprintf(w, "%d:%d %s %s\n", line, col, d.Code, d.Message); err != nil {
			return fmt.Errorf("write diagnostic: %w", err)
		}
	}
	return nil
}

func writeTree(w io.Writer, t *Tree, depth int, opts Options) error {
	indent := strings.Repeat(indentUnit, depth)

	var sb strings.Builder
	sb.WriteString(indent)
	sb.WriteString(render(opts.Theme.Kind, t.Kind))

	keys := make([]string, 0, len(t.Attrs))
	for k := range t.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	budget := 0
	if opts.Width > 0 {
		budget = opts.Width - len(indent) - len(t.Kind)
	}
	for _, k := range keys {
		value := formatValue(t.Attrs[k], budget-len(k)-2)
		sb.WriteString(" ")
		sb.WriteString(render(opts.Theme.Attr, k+"="))
		sb.WriteString(render(opts.Theme.Value, value))
	}

	if t.Range != nil {
		sb.WriteString(" ")
		sb.WriteString(render(opts.Theme.Range, fmt.Sprintf("[%d,%d)", t.Range.Start, t.Range.End)))
	}
	sb.WriteByte('\n')

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write node: %w", err)
	}

	for _, child := range t.Children {
		if err := writeTree(w, child, depth+1, opts); err != nil {
			return err
		}
	}
	return nil
}

// formatValue renders an attribute value. Strings are quoted and, when
// budget is positive, truncated to fit in it. Enums print their name.
func formatValue(v any, budget int) string {
	switch val := v.(type) {
	case string:
		return truncateQuoted(val, budget)
	case []string:
		return "[" + strings.Join(val, " ") + "]"
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// minTruncatedRunes is the shortest text kept when truncating.
const minTruncatedRunes = 8

func truncateQuoted(s string, budget int) string {
	quoted := fmt.Sprintf("%q", s)
	if budget <= 0 || len(quoted) <= budget {
		return quoted
	}

	keep := budget - len(`""`) - len(ellipsis)
	if keep < minTruncatedRunes {
		keep = minTruncatedRunes
	}
	runes := 0
	for i := range s {
		if runes == keep {
			return fmt.Sprintf("%q", s[:i]+ellipsis)
		}
		runes++
	}
	return quoted
}
