package parser

// tabWidth is the column width of a tab when measuring indentation.
const tabWidth = 4

// codeIndent is the indentation that turns a line into code.
const codeIndent = 4

type prefixKind uint8

const (
	prefixQuote prefixKind = iota
	prefixIndent
)

// prefixRule strips one level of container syntax from the start of a line.
type prefixRule struct {
	kind  prefixKind
	width int
}

// blockContext describes the container a span of blocks lives in. Each line
// start inside the span has the prefixes stripped in order: a quote rule
// removes one `>` marker, an indent rule removes up to width columns.
type blockContext struct {
	prefixes []prefixRule
	depth    int
}

func rootContext() blockContext {
	return blockContext{}
}

func (c blockContext) with(rule prefixRule) blockContext {
	prefixes := make([]prefixRule, len(c.prefixes), len(c.prefixes)+1)
	copy(prefixes, c.prefixes)
	return blockContext{
		prefixes: append(prefixes, rule),
		depth:    c.depth + 1,
	}
}

func (c blockContext) quote() blockContext {
	return c.with(prefixRule{kind: prefixQuote})
}

func (c blockContext) indent(width int) blockContext {
	return c.with(prefixRule{kind: prefixIndent, width: width})
}

// line is one source line seen through a blockContext.
type line struct {
	// start is the first byte of the line or of the span, whichever is later.
	start int

	// content is the first byte after the container prefixes.
	content int

	// end is the end of the line content, excluding the newline.
	end int

	// next is the start of the following line, or the span end.
	next int

	// lazy is true when a quote prefix was expected but missing.
	lazy bool
}

func isLineStart(src string, pos int) bool {
	return pos == 0 || src[pos-1] == '\n'
}

// lineAt returns the line beginning at pos, clipped to limit. Prefixes are
// only stripped when pos is at a real line start; a span that begins mid-line
// (after a list marker, say) keeps its first line intact.
func (s *state) lineAt(pos, limit int, ctx blockContext) line {
	ln := line{start: pos, content: pos}

	end := pos
	for end < limit && s.src[end] != '\n' {
		end++
	}
	ln.end = end
	ln.next = end
	if end < limit {
		ln.next = end + 1
	}
	if end > pos && s.src[end-1] == '\r' {
		ln.end = end - 1
	}

	if isLineStart(s.src, pos) {
		ln.content, ln.lazy = s.stripPrefixes(pos, ln.end, ctx)
	}
	return ln
}

// stripPrefixes applies the context's prefix rules from pos and returns the
// content start.
func (s *state) stripPrefixes(pos, end int, ctx blockContext) (int, bool) {
	for _, rule := range ctx.prefixes {
		switch rule.kind {
		case prefixQuote:
			next, ok := s.skipQuoteMarker(pos, end)
			if !ok {
				return pos, true
			}
			pos = next
		case prefixIndent:
			pos = s.skipColumns(pos, end, rule.width)
		}
	}
	return pos, false
}

// skipQuoteMarker skips up to three spaces, a `>` and one optional space.
func (s *state) skipQuoteMarker(pos, end int) (int, bool) {
	i := pos
	for i < end && i-pos < 3 && s.src[i] == ' ' {
		i++
	}
	if i >= end || s.src[i] != '>' {
		return pos, false
	}
	i++
	if i < end && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}
	return i, true
}

// skipColumns skips whitespace worth up to width columns.
func (s *state) skipColumns(pos, end, width int) int {
	col := 0
	for pos < end && col < width {
		switch s.src[pos] {
		case ' ':
			col++
		case '\t':
			col += tabWidth
		default:
			return pos
		}
		pos++
	}
	return pos
}

// indentation measures the leading whitespace of a line's content in columns
// and returns the first non-whitespace offset.
func (s *state) indentation(ln line) (int, int) {
	col := 0
	i := ln.content
	for i < ln.end {
		switch s.src[i] {
		case ' ':
			col++
		case '\t':
			col += tabWidth
		default:
			return col, i
		}
		i++
	}
	return col, i
}

func (s *state) isBlank(ln line) bool {
	for i := ln.content; i < ln.end; i++ {
		if !isSpaceByte(s.src[i]) {
			return false
		}
	}
	return true
}

// skipBlankLines returns the start of the first non-blank line at or after pos.
func (s *state) skipBlankLines(pos, limit int, ctx blockContext) int {
	for pos < limit {
		ln := s.lineAt(pos, limit, ctx)
		if !s.isBlank(ln) {
			return pos
		}
		pos = ln.next
	}
	return limit
}

// absorbTrailing extends a block end over trailing blank lines when nothing
// but blank lines remains before limit, so sibling blocks cover the span.
func (s *state) absorbTrailing(next, limit int, ctx blockContext) int {
	if s.skipBlankLines(next, limit, ctx) >= limit {
		return limit
	}
	return next
}

// trimRight returns end moved left over whitespace, not past start.
func (s *state) trimRight(start, end int) int {
	for end > start && isSpaceByte(s.src[end-1]) {
		end--
	}
	return end
}

// trimLeft returns start moved right over whitespace, not past end.
func (s *state) trimLeft(start, end int) int {
	for start < end && isSpaceByte(s.src[start]) {
		start++
	}
	return start
}
