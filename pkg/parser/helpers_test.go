package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/redmark/pkg/mdast"
)

// sexpr renders blocks as a compact string for table-driven assertions.
func sexpr(blocks []mdast.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, blockExpr(b))
	}
	return strings.Join(parts, " ")
}

func blockExpr(b mdast.Block) string {
	switch n := b.(type) {
	case *mdast.Paragraph:
		return "P(" + inlineExpr(n.Inlines) + ")"
	case *mdast.Header:
		return fmt.Sprintf("H%d(%s)", n.Level, inlineExpr(n.Inlines))
	case *mdast.Quote:
		return "Q(" + sexpr(n.Blocks) + ")"
	case *mdast.CodeBlock:
		return fmt.Sprintf("Code(%q)", n.Text)
	case *mdast.HorizontalRule:
		return "HR"
	case *mdast.List:
		name := "UL"
		if n.Style == mdast.ListNumbered {
			name = "OL"
		}
		items := make([]string, 0, len(n.Items))
		for _, item := range n.Items {
			items = append(items, "LI("+sexpr(item.Blocks)+")")
		}
		return name + "(" + strings.Join(items, " ") + ")"
	case *mdast.Table:
		rows := make([]string, 0, len(n.Rows))
		for _, row := range n.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				cells = append(cells, "["+inlineExpr(cell.Inlines)+"]")
			}
			rows = append(rows, strings.Join(cells, ""))
		}
		return "Table(" + strings.Join(rows, " ") + ")"
	case *mdast.LinkReference:
		return "Ref(" + n.ID + ")"
	default:
		return "?"
	}
}

func inlineExpr(inlines []mdast.Inline) string {
	parts := make([]string, 0, len(inlines))
	for _, in := range inlines {
		switch n := in.(type) {
		case *mdast.TextRun:
			parts = append(parts, fmt.Sprintf("%q", n.Text))
		case *mdast.Bold:
			parts = append(parts, "B("+inlineExpr(n.Inlines)+")")
		case *mdast.Italic:
			parts = append(parts, "I("+inlineExpr(n.Inlines)+")")
		case *mdast.Strikethrough:
			parts = append(parts, "S("+inlineExpr(n.Inlines)+")")
		case *mdast.Superscript:
			parts = append(parts, "Sup("+inlineExpr(n.Inlines)+")")
		case *mdast.CodeSpan:
			parts = append(parts, fmt.Sprintf("C(%q)", n.Text))
		case *mdast.MarkdownLink:
			parts = append(parts, "Link<"+n.URL+">("+inlineExpr(n.Inlines)+")")
		case *mdast.RawHyperlink:
			parts = append(parts, "URL<"+n.URL+">")
		case *mdast.RedditLink:
			prefix := "R/"
			if n.LinkKind == mdast.RedditUser {
				prefix = "U/"
			}
			parts = append(parts, prefix+n.Name)
		case *mdast.LineBreak:
			parts = append(parts, "BR")
		default:
			parts = append(parts, "?")
		}
	}
	return strings.Join(parts, " ")
}

// requirePartition checks that sibling ranges are contiguous, stay inside
// their parent, and that top-level blocks cover the whole source.
func requirePartition(t *testing.T, doc *mdast.Document) {
	t.Helper()

	if len(doc.Blocks) > 0 {
		assert.Equal(t, 0, doc.Blocks[0].Range().StartOffset, "first block must start at 0")
		assert.Equal(t, len(doc.Source), doc.Blocks[len(doc.Blocks)-1].Range().EndOffset,
			"last block must end at the source end")
	}

	err := mdast.Walk(doc, func(n mdast.Node) error {
		parent := n.Range()
		require.LessOrEqual(t, parent.StartOffset, parent.EndOffset, "%s has an inverted range", n.Kind())

		prev := -1
		for _, child := range mdast.Children(n) {
			r := child.Range()
			if _, isCell := child.(*mdast.TableCell); isCell {
				continue
			}
			assert.GreaterOrEqual(t, r.StartOffset, parent.StartOffset, "%s starts before its parent %s", child.Kind(), n.Kind())
			assert.LessOrEqual(t, r.EndOffset, parent.EndOffset, "%s ends after its parent %s", child.Kind(), n.Kind())
			if prev >= 0 {
				assert.Equal(t, prev, r.StartOffset, "%s does not start where its sibling ended", child.Kind())
			}
			prev = r.EndOffset
		}
		return nil
	})
	require.NoError(t, err)
}
