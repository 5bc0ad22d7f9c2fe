package parser

import (
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/redmark/pkg/mdast"
)

// linkDefinition is a parsed `[id]: url "title"` line.
type linkDefinition struct {
	id    string
	url   string
	title string
}

// refKey normalizes a reference id: case folded with inner whitespace collapsed.
func refKey(id string) string {
	return string(util.ToLinkReference([]byte(id)))
}

// linkDefinitionAt recognizes a reference definition spanning the rest of
// the line: `[id]:`, a URL (optionally in angle brackets), then an optional
// title in double quotes, single quotes or parentheses.
func (s *state) linkDefinitionAt(first, end int) (linkDefinition, bool) {
	if first >= end || s.src[first] != '[' {
		return linkDefinition{}, false
	}

	closeIdx := strings.IndexByte(s.src[first+1:end], ']')
	if closeIdx <= 0 {
		return linkDefinition{}, false
	}
	idEnd := first + 1 + closeIdx
	id := s.src[first+1 : idEnd]
	if strings.ContainsRune(id, '[') || strings.TrimSpace(id) == "" {
		return linkDefinition{}, false
	}
	if idEnd+1 >= end || s.src[idEnd+1] != ':' {
		return linkDefinition{}, false
	}

	i := s.trimLeft(idEnd+2, end)
	if i >= end {
		return linkDefinition{}, false
	}

	var url string
	if s.src[i] == '<' {
		gt := strings.IndexByte(s.src[i+1:end], '>')
		if gt < 0 {
			return linkDefinition{}, false
		}
		url = s.src[i+1 : i+1+gt]
		i += gt + 2
	} else {
		urlStart := i
		for i < end && !isSpaceByte(s.src[i]) {
			i++
		}
		url = s.src[urlStart:i]
	}
	if url == "" {
		return linkDefinition{}, false
	}

	def := linkDefinition{id: id, url: url}

	i = s.trimLeft(i, end)
	if i == end {
		return def, true
	}
	if i == idEnd+2 || !isSpaceByte(s.src[i-1]) {
		return linkDefinition{}, false
	}

	var closer byte
	switch s.src[i] {
	case '"', '\'':
		closer = s.src[i]
	case '(':
		closer = ')'
	default:
		return linkDefinition{}, false
	}

	tail := s.trimRight(i+1, end)
	if tail <= i+1 || s.src[tail-1] != closer {
		return linkDefinition{}, false
	}
	def.title = s.src[i+1 : tail-1]
	return def, true
}

// parseLinkReference records a definition so later reference links can
// resolve against it. A repeated id replaces the earlier definition.
func (s *state) parseLinkReference(start int, ln line, limit int, ctx blockContext) (mdast.Block, int) {
	_, first := s.indentation(ln)
	def, ok := s.linkDefinitionAt(first, ln.end)
	if !ok {
		s.report(DiagMissingToken, first, "link reference parser found no definition")
		return s.parseParagraph(start, ln, limit, ctx, false)
	}

	if target, ok := s.resolveLinkTarget(def.url); ok {
		def.url = target
	}
	s.refs[refKey(def.id)] = def

	end := s.absorbTrailing(ln.next, limit, ctx)
	return &mdast.LinkReference{
		Span:    mdast.NewRange(start, end),
		ID:      def.id,
		URL:     def.url,
		Tooltip: def.title,
	}, end
}

// resolveReferences fills in reference-style links once every definition in
// the document is known. Links without a matching definition are replaced by
// their literal source text.
func (s *state) resolveReferences(blocks []mdast.Block) {
	if len(s.deferred) == 0 {
		return
	}

	unresolved := make(map[*mdast.MarkdownLink]bool)
	for _, link := range s.deferred {
		def, ok := s.refs[refKey(link.RefID)]
		if !ok {
			unresolved[link] = true
			continue
		}
		link.URL = def.url
		link.Tooltip = def.title
	}
	if len(unresolved) == 0 {
		return
	}

	s.logger.Debug("unresolved reference links", "count", len(unresolved))
	for _, b := range blocks {
		s.replaceInBlock(b, unresolved)
	}
}

func (s *state) replaceInBlock(b mdast.Block, unresolved map[*mdast.MarkdownLink]bool) {
	switch n := b.(type) {
	case *mdast.Paragraph:
		n.Inlines = s.replaceInlines(n.Inlines, unresolved)
	case *mdast.Header:
		n.Inlines = s.replaceInlines(n.Inlines, unresolved)
	case *mdast.Quote:
		for _, child := range n.Blocks {
			s.replaceInBlock(child, unresolved)
		}
	case *mdast.List:
		for _, item := range n.Items {
			for _, child := range item.Blocks {
				s.replaceInBlock(child, unresolved)
			}
		}
	case *mdast.Table:
		for _, row := range n.Rows {
			for _, cell := range row.Cells {
				cell.Inlines = s.replaceInlines(cell.Inlines, unresolved)
			}
		}
	}
}

// replaceInlines swaps unresolved links for text and merges the result with
// adjacent text runs.
func (s *state) replaceInlines(inlines []mdast.Inline, unresolved map[*mdast.MarkdownLink]bool) []mdast.Inline {
	out := inlines[:0]
	for _, in := range inlines {
		switch n := in.(type) {
		case *mdast.MarkdownLink:
			if unresolved[n] {
				in = &mdast.TextRun{Span: n.Span, Text: s.visibleText(n.Span.StartOffset, n.Span.EndOffset, true)}
			} else {
				n.Inlines = s.replaceInlines(n.Inlines, unresolved)
			}
		case *mdast.Bold:
			n.Inlines = s.replaceInlines(n.Inlines, unresolved)
		case *mdast.Italic:
			n.Inlines = s.replaceInlines(n.Inlines, unresolved)
		case *mdast.Strikethrough:
			n.Inlines = s.replaceInlines(n.Inlines, unresolved)
		case *mdast.Superscript:
			n.Inlines = s.replaceInlines(n.Inlines, unresolved)
		}
		out = appendText(out, in)
	}
	return out
}

// appendText appends in, merging it into a preceding text run when both are
// text and their ranges touch.
func appendText(out []mdast.Inline, in mdast.Inline) []mdast.Inline {
	run, ok := in.(*mdast.TextRun)
	if !ok || len(out) == 0 {
		return append(out, in)
	}
	prev, ok := out[len(out)-1].(*mdast.TextRun)
	if !ok || prev.Span.EndOffset != run.Span.StartOffset {
		return append(out, in)
	}
	out[len(out)-1] = &mdast.TextRun{
		Span: mdast.NewRange(prev.Span.StartOffset, run.Span.EndOffset),
		Text: prev.Text + run.Text,
	}
	return out
}
