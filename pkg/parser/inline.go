package parser

import (
	"bytes"

	"github.com/yaklabco/redmark/pkg/mdast"
)

// parseInlines scans a canonicalized span and returns inlines that partition
// it. Text between matches becomes TextRun and LineBreak nodes.
func (s *state) parseInlines(start, end, depth int) []mdast.Inline {
	if depth >= s.opts.MaxNesting {
		return s.textNodes(start, end)
	}

	saved := s.memo
	s.memo = newScanMemo(start, end)
	defer func() { s.memo = saved }()

	var out []mdast.Inline
	textStart := start
	for textStart < end {
		c, ok := s.findNext(textStart, end)
		if !ok {
			break
		}
		whole := mdast.NewRange(c.start, c.end)
		if !s.withinRange("inline", whole, mdast.NewRange(textStart, end)) {
			break
		}
		if c.container() && !s.withinRange("inline content", mdast.NewRange(c.inner, c.innerEnd), whole) {
			break
		}
		out = append(out, s.textNodes(textStart, c.start)...)
		out = append(out, s.buildInline(c, depth))
		textStart = s.ensureProgress("inline", c.start, c.end, end)
	}
	return append(out, s.textNodes(textStart, end)...)
}

// findNext returns the first verified candidate at the leftmost trigger
// position at or after floor. Rules for one trigger byte are tried in
// priority order.
func (s *state) findNext(floor, limit int) (candidate, bool) {
	chars := s.triggers.chars
	pos := floor
	for pos < limit {
		idx := bytes.IndexAny(s.buf[pos:limit], chars)
		if idx < 0 {
			return candidate{}, false
		}
		at := pos + idx
		escaped := s.isEscaped(at, floor)
		for _, rule := range s.triggers.rules[s.buf[at]] {
			if escaped && !rule.ignoreEscape {
				continue
			}
			if c, ok := rule.verify(s, at, floor, limit); ok {
				return c, true
			}
		}
		pos = at + 1
	}
	return candidate{}, false
}

// buildInline turns a candidate into its node, recursing into the content
// of container kinds.
func (s *state) buildInline(c candidate, depth int) mdast.Inline {
	span := mdast.NewRange(c.start, c.end)
	switch c.kind {
	case inlineBold:
		return &mdast.Bold{Span: span, Inlines: s.parseInlines(c.inner, c.innerEnd, depth+1)}
	case inlineItalic:
		return &mdast.Italic{Span: span, Inlines: s.parseInlines(c.inner, c.innerEnd, depth+1)}
	case inlineStrike:
		return &mdast.Strikethrough{Span: span, Inlines: s.parseInlines(c.inner, c.innerEnd, depth+1)}
	case inlineSuper:
		return &mdast.Superscript{Span: span, Inlines: s.parseInlines(c.inner, c.innerEnd, depth+1)}
	case inlineCode:
		return &mdast.CodeSpan{Span: span, Text: c.text}
	case inlineLink:
		link := &mdast.MarkdownLink{
			Span:    span,
			URL:     c.url,
			Tooltip: c.tooltip,
			RefID:   c.refID,
			Inlines: s.parseInlines(c.inner, c.innerEnd, depth+1),
		}
		if c.refID != "" {
			s.deferred = append(s.deferred, link)
		}
		return link
	case inlineHyperlink:
		return &mdast.RawHyperlink{Span: span, URL: c.url, Text: c.text, LinkKind: c.hyperlink}
	case inlineReddit:
		return &mdast.RedditLink{Span: span, Text: c.text, Name: c.name, LinkKind: c.reddit}
	default:
		s.report(DiagMissingToken, c.start, "unknown inline kind %d", c.kind)
		return &mdast.TextRun{Span: span, Text: s.visibleText(c.start, c.end, true)}
	}
}

// textNodes splits plain text at hard-break newlines. Each LineBreak covers
// the collapsed whitespace around its newline. Segments with no visible text
// are dropped.
func (s *state) textNodes(start, end int) []mdast.Inline {
	var out []mdast.Inline
	segStart := start
	for i := start; i < end; i++ {
		if s.buf[i] != '\n' {
			continue
		}

		runStart := i
		for runStart > segStart && s.buf[runStart-1] == zeroWidth {
			runStart--
		}
		runEnd := i + 1
		for runEnd < end && s.buf[runEnd] == zeroWidth {
			runEnd++
		}

		out = s.appendTextRun(out, segStart, runStart)
		out = append(out, &mdast.LineBreak{Span: mdast.NewRange(runStart, runEnd)})
		segStart = runEnd
		i = runEnd - 1
	}
	return s.appendTextRun(out, segStart, end)
}

func (s *state) appendTextRun(out []mdast.Inline, start, end int) []mdast.Inline {
	if start >= end {
		return out
	}
	text := s.visibleText(start, end, true)
	if text == "" {
		return out
	}
	return append(out, &mdast.TextRun{Span: mdast.NewRange(start, end), Text: text})
}
