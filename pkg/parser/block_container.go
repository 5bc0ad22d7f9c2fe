package parser

import "github.com/yaklabco/redmark/pkg/mdast"

// maxOrderedDigits bounds the number in an ordered list marker.
const maxOrderedDigits = 9

// parseQuote consumes `>` lines, and lazy lines without the marker, up to
// the next blank line. The content is parsed as blocks with one more quote
// prefix stripped from each line.
func (s *state) parseQuote(start int, ln line, limit int, ctx blockContext) (mdast.Block, int) {
	_, first := s.indentation(ln)
	if first >= ln.end || s.src[first] != '>' {
		s.report(DiagMissingToken, first, "quote parser found no '>'")
		return s.parseParagraph(start, ln, limit, ctx, false)
	}

	inner := first + 1
	if inner < ln.end && (s.src[inner] == ' ' || s.src[inner] == '\t') {
		inner++
	}

	next := ln.next
	for next < limit {
		cur := s.lineAt(next, limit, ctx)
		if s.isBlank(cur) {
			break
		}
		next = cur.next
	}

	end := s.absorbTrailing(next, limit, ctx)
	return &mdast.Quote{
		Span:   mdast.NewRange(start, end),
		Blocks: s.parseBlocks(inner, next, ctx.quote()),
	}, end
}

// listMarker is a bullet or ordered marker found at the start of a line.
type listMarker struct {
	style mdast.ListStyle

	// content is the first byte after the marker and its space.
	content int
}

// listMarkerAt recognizes `*`, `-` or `+` followed by whitespace, or digits
// followed by `.` and whitespace.
func (s *state) listMarkerAt(first, end int) (listMarker, bool) {
	if first >= end {
		return listMarker{}, false
	}

	switch s.src[first] {
	case '*', '-', '+':
		if first+1 < end && (s.src[first+1] == ' ' || s.src[first+1] == '\t') {
			return listMarker{style: mdast.ListBulleted, content: first + 2}, true
		}
		return listMarker{}, false
	}

	i := first
	for i < end && isDigit(s.src[i]) && i-first < maxOrderedDigits {
		i++
	}
	if i == first || i+1 >= end || s.src[i] != '.' {
		return listMarker{}, false
	}
	if s.src[i+1] != ' ' && s.src[i+1] != '\t' {
		return listMarker{}, false
	}
	return listMarker{style: mdast.ListNumbered, content: i + 2}, true
}

// columns measures src[from:to] in columns.
func (s *state) columns(from, to int) int {
	col := 0
	for i := from; i < to; i++ {
		if s.src[i] == '\t' {
			col += tabWidth
			continue
		}
		col++
	}
	return col
}

// listItemSpan tracks an item while the list is being scanned.
type listItemSpan struct {
	start   int
	content int
	width   int
}

// parseList consumes list items until a blank line. A line indented less than
// the current item's content that carries a marker starts the next item; any
// other non-blank line continues the current item. A horizontal rule ends the
// list. The first marker fixes the list style.
func (s *state) parseList(start int, ln line, limit int, ctx blockContext) (mdast.Block, int) {
	_, first := s.indentation(ln)
	marker, ok := s.listMarkerAt(first, ln.end)
	if !ok {
		s.report(DiagMissingToken, first, "list parser found no marker")
		return s.parseParagraph(start, ln, limit, ctx, false)
	}

	spans := []listItemSpan{{
		start:   start,
		content: marker.content,
		width:   s.columns(ln.content, marker.content),
	}}

	next := ln.next
	for next < limit {
		cur := s.lineAt(next, limit, ctx)
		if s.isBlank(cur) {
			break
		}

		indent, curFirst := s.indentation(cur)
		if !cur.lazy && indent < spans[len(spans)-1].width {
			if s.isRuleLine(curFirst, cur.end) {
				break
			}
			if m, ok := s.listMarkerAt(curFirst, cur.end); ok {
				spans = append(spans, listItemSpan{
					start:   next,
					content: m.content,
					width:   s.columns(cur.content, m.content),
				})
			}
		}
		next = cur.next
	}

	end := s.absorbTrailing(next, limit, ctx)
	list := &mdast.List{
		Span:  mdast.NewRange(start, end),
		Style: marker.style,
		Items: make([]*mdast.ListItem, 0, len(spans)),
	}

	for i, sp := range spans {
		contentEnd, itemEnd := next, end
		if i+1 < len(spans) {
			contentEnd, itemEnd = spans[i+1].start, spans[i+1].start
		}
		list.Items = append(list.Items, &mdast.ListItem{
			Span:   mdast.NewRange(sp.start, itemEnd),
			Blocks: s.parseBlocks(sp.content, contentEnd, ctx.indent(sp.width)),
		})
	}

	return list, end
}
