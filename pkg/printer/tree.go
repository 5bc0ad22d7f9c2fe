package printer

import (
	"github.com/yaklabco/redmark/pkg/mdast"
)

// Tree is a serializable view of a document node.
type Tree struct {
	Kind     string         `json:"kind" yaml:"kind"`
	Range    *Range         `json:"range,omitempty" yaml:"range,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Children []*Tree        `json:"children,omitempty" yaml:"children,omitempty"`
}

// Range is a half-open byte range.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// kindTableRow names the synthetic row nodes under a table.
const kindTableRow = "TableRow"

// Build converts a node and its descendants into a Tree. Ranges are
// included when withRanges is set.
func Build(n mdast.Node, withRanges bool) *Tree {
	t := &Tree{Kind: n.Kind().String(), Attrs: attrsOf(n)}
	if withRanges {
		r := n.Range()
		t.Range = &Range{Start: r.StartOffset, End: r.EndOffset}
	}

	if table, ok := n.(*mdast.Table); ok {
		for _, row := range table.Rows {
			rowTree := &Tree{Kind: kindTableRow}
			for _, cell := range row.Cells {
				rowTree.Children = append(rowTree.Children, Build(cell, withRanges))
			}
			t.Children = append(t.Children, rowTree)
		}
		return t
	}

	for _, child := range mdast.Children(n) {
		t.Children = append(t.Children, Build(child, withRanges))
	}
	return t
}

// attrsOf returns the scalar fields of a node, or nil when it has none.
// Enum values are stored as is: the text format prints them unquoted and the
// encoders use their MarshalText.
func attrsOf(n mdast.Node) map[string]any {
	switch node := n.(type) {
	case *mdast.Header:
		attrs := map[string]any{"level": node.Level}
		if node.Setext {
			attrs["setext"] = true
		}
		return attrs
	case *mdast.CodeBlock:
		attrs := map[string]any{"text": node.Text}
		if node.Fenced {
			attrs["fenced"] = true
		} else {
			attrs["indent_level"] = node.IndentLevel
		}
		if node.Info != "" {
			attrs["info"] = node.Info
		}
		if node.Language != "" {
			attrs["language"] = node.Language
		}
		return attrs
	case *mdast.List:
		return map[string]any{"style": node.Style}
	case *mdast.Table:
		columns := make([]string, 0, len(node.Columns))
		for _, col := range node.Columns {
			columns = append(columns, col.Alignment.String())
		}
		return map[string]any{"columns": columns}
	case *mdast.LinkReference:
		attrs := map[string]any{"id": node.ID, "url": node.URL}
		if node.Tooltip != "" {
			attrs["tooltip"] = node.Tooltip
		}
		return attrs
	case *mdast.TextRun:
		return map[string]any{"text": node.Text}
	case *mdast.CodeSpan:
		return map[string]any{"text": node.Text}
	case *mdast.MarkdownLink:
		attrs := map[string]any{"url": node.URL}
		if node.Tooltip != "" {
			attrs["tooltip"] = node.Tooltip
		}
		if node.RefID != "" {
			attrs["ref"] = node.RefID
		}
		return attrs
	case *mdast.RawHyperlink:
		return map[string]any{"url": node.URL, "text": node.Text, "form": node.LinkKind}
	case *mdast.RedditLink:
		return map[string]any{"name": node.Name, "text": node.Text, "target": node.LinkKind}
	default:
		return nil
	}
}

// Stats summarizes a parsed document.
type Stats struct {
	Bytes       int
	Lines       int
	Blocks      int
	Nodes       int
	Diagnostics int

	// ByKind counts nodes per kind name.
	ByKind map[string]int
}

// Summarize counts the nodes of doc.
func Summarize(doc *mdast.Document) Stats {
	stats := Stats{
		Bytes:       len(doc.Source),
		Lines:       doc.LineCount(),
		Blocks:      len(doc.Blocks),
		Diagnostics: len(doc.Diagnostics),
		ByKind:      make(map[string]int),
	}
	_ = mdast.Walk(doc, func(n mdast.Node) error {
		if n.Kind() == mdast.KindDocument {
			return nil
		}
		stats.Nodes++
		stats.ByKind[n.Kind().String()]++
		return nil
	})
	return stats
}
