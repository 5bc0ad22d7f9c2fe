package parser

import (
	"strings"

	"github.com/yaklabco/redmark/pkg/langdetect"
	"github.com/yaklabco/redmark/pkg/mdast"
)

// maxHeaderLevel caps `#` runs; longer runs still parse as level 6.
const maxHeaderLevel = 6

// minRuleMarkers is the number of markers a horizontal rule needs.
const minRuleMarkers = 3

// minFenceLength is the number of backticks or tildes that open a fence.
const minFenceLength = 3

// parseParagraph consumes lines until a blank line or, unless plain, a line
// that starts another block. Plain paragraphs skip inline parsing; they are
// used once the nesting limit is reached.
func (s *state) parseParagraph(start int, ln line, limit int, ctx blockContext, plain bool) (mdast.Block, int) {
	contentStart := s.trimLeft(ln.content, ln.end)
	contentEnd := ln.end
	next := ln.next

	for next < limit {
		cur := s.lineAt(next, limit, ctx)
		if s.isBlank(cur) {
			break
		}
		if !plain && s.interruptsParagraph(cur, limit, ctx) {
			break
		}
		contentEnd = cur.end
		next = cur.next
	}

	contentEnd = s.trimRight(contentStart, contentEnd)
	end := s.absorbTrailing(next, limit, ctx)

	return &mdast.Paragraph{
		Span:    mdast.NewRange(start, end),
		Inlines: s.inlineContent(contentStart, contentEnd, ctx, plain),
	}, end
}

// parseHeader parses an ATX header: one to six (or more) `#`, then text,
// with an optional closing run of `#`.
func (s *state) parseHeader(start int, ln line, limit int, ctx blockContext) (mdast.Block, int) {
	_, first := s.indentation(ln)
	if first >= ln.end || s.src[first] != '#' {
		s.report(DiagMissingToken, first, "header parser found no '#'")
		return s.parseParagraph(start, ln, limit, ctx, false)
	}

	i := first
	for i < ln.end && s.src[i] == '#' {
		i++
	}
	level := min(i-first, maxHeaderLevel)

	contentStart := s.trimLeft(i, ln.end)
	contentEnd := s.trimRight(contentStart, ln.end)

	closing := contentEnd
	for closing > contentStart && s.src[closing-1] == '#' {
		closing--
	}
	if closing < contentEnd && (closing == contentStart || isSpaceByte(s.src[closing-1])) {
		contentEnd = s.trimRight(contentStart, closing)
	}

	end := s.absorbTrailing(ln.next, limit, ctx)
	return &mdast.Header{
		Span:    mdast.NewRange(start, end),
		Level:   level,
		Inlines: s.inlineContent(contentStart, contentEnd, ctx, false),
	}, end
}

// setextLevel reports whether a line is a setext underline: only `=`
// (level 1) or only `-` (level 2), with optional trailing whitespace.
func (s *state) setextLevel(ln line) (int, bool) {
	if ln.lazy {
		return 0, false
	}
	indent, first := s.indentation(ln)
	if indent >= codeIndent || first >= ln.end {
		return 0, false
	}

	marker := s.src[first]
	if marker != '=' && marker != '-' {
		return 0, false
	}

	i := first
	for i < ln.end && s.src[i] == marker {
		i++
	}
	if s.trimLeft(i, ln.end) != ln.end {
		return 0, false
	}

	if marker == '=' {
		return 1, true
	}
	return 2, true
}

// parseSetextHeader parses a text line followed by its underline.
func (s *state) parseSetextHeader(start int, ln line, limit int, ctx blockContext) (mdast.Block, int) {
	under := s.lineAt(ln.next, limit, ctx)
	level, ok := s.setextLevel(under)
	if !ok {
		s.report(DiagMissingToken, under.content, "setext header parser found no underline")
		return s.parseParagraph(start, ln, limit, ctx, false)
	}

	contentStart := s.trimLeft(ln.content, ln.end)
	contentEnd := s.trimRight(contentStart, ln.end)

	end := s.absorbTrailing(under.next, limit, ctx)
	return &mdast.Header{
		Span:    mdast.NewRange(start, end),
		Level:   level,
		Setext:  true,
		Inlines: s.inlineContent(contentStart, contentEnd, ctx, false),
	}, end
}

// isRuleLine reports a row of three or more `*`, `-` or `_`, optionally
// separated by spaces, and nothing else.
func (s *state) isRuleLine(first, end int) bool {
	if first >= end {
		return false
	}
	marker := s.src[first]
	if marker != '*' && marker != '-' && marker != '_' {
		return false
	}

	count := 0
	for i := first; i < end; i++ {
		switch c := s.src[i]; {
		case c == marker:
			count++
		case isSpaceByte(c):
		default:
			return false
		}
	}
	return count >= minRuleMarkers
}

func (s *state) parseRule(start int, ln line, limit int, ctx blockContext) (mdast.Block, int) {
	end := s.absorbTrailing(ln.next, limit, ctx)
	return &mdast.HorizontalRule{Span: mdast.NewRange(start, end)}, end
}

// parseIndentedCode consumes lines indented by four or more columns. Blank
// lines inside the block are kept; trailing blank lines are not part of the text.
func (s *state) parseIndentedCode(start int, ln line, limit int, ctx blockContext) (mdast.Block, int) {
	indent, _ := s.indentation(ln)

	var lines []string
	kept := 0
	next := ln.next
	pos := ln.start
	for pos < limit {
		cur := s.lineAt(pos, limit, ctx)
		if s.isBlank(cur) {
			lines = append(lines, "")
			pos = cur.next
			continue
		}
		if ind, _ := s.indentation(cur); ind < codeIndent || cur.lazy {
			break
		}
		body := s.skipColumns(cur.content, cur.end, codeIndent)
		lines = append(lines, s.src[body:cur.end])
		kept = len(lines)
		next = cur.next
		pos = cur.next
	}

	end := s.absorbTrailing(next, limit, ctx)
	text := strings.Join(lines[:kept], "\n")
	return &mdast.CodeBlock{
		Span:        mdast.NewRange(start, end),
		Text:        text,
		IndentLevel: indent / codeIndent,
		Language:    s.codeLanguage("", text),
	}, end
}

type fence struct {
	marker byte
	length int
	info   string
}

// fenceAt recognizes an opening fence of three or more backticks or tildes.
// A backtick fence's info string may not contain backticks.
func (s *state) fenceAt(first, end int) (fence, bool) {
	if first >= end {
		return fence{}, false
	}
	marker := s.src[first]
	if marker != '`' && marker != '~' {
		return fence{}, false
	}

	i := first
	for i < end && s.src[i] == marker {
		i++
	}
	if i-first < minFenceLength {
		return fence{}, false
	}

	info := strings.TrimSpace(s.src[i:end])
	if marker == '`' && strings.ContainsRune(info, '`') {
		return fence{}, false
	}
	return fence{marker: marker, length: i - first, info: info}, true
}

// isClosingFence reports a fence line of the same marker, at least as long
// as the opener, with nothing after it.
func (s *state) isClosingFence(ln line, open fence) bool {
	indent, first := s.indentation(ln)
	if indent >= codeIndent {
		return false
	}
	i := first
	for i < ln.end && s.src[i] == open.marker {
		i++
	}
	return i-first >= open.length && s.trimLeft(i, ln.end) == ln.end
}

// parseFencedCode consumes a fenced block up to its closing fence, or to the
// end of the span when the fence is never closed.
func (s *state) parseFencedCode(start int, ln line, limit int, ctx blockContext) (mdast.Block, int) {
	fenceIndent, first := s.indentation(ln)
	open, ok := s.fenceAt(first, ln.end)
	if !ok {
		s.report(DiagMissingToken, first, "fenced code parser found no fence")
		return s.parseParagraph(start, ln, limit, ctx, false)
	}

	var lines []string
	pos := ln.next
	next := limit
	for pos < limit {
		cur := s.lineAt(pos, limit, ctx)
		if cur.lazy {
			next = pos
			break
		}
		if s.isClosingFence(cur, open) {
			next = cur.next
			break
		}
		body := s.skipColumns(cur.content, cur.end, fenceIndent)
		lines = append(lines, s.src[body:cur.end])
		pos = cur.next
	}

	end := s.absorbTrailing(next, limit, ctx)
	text := strings.Join(lines, "\n")
	return &mdast.CodeBlock{
		Span:     mdast.NewRange(start, end),
		Text:     text,
		Fenced:   true,
		Info:     open.info,
		Language: s.codeLanguage(open.info, text),
	}, end
}

// codeLanguage returns the first word of the info string, or a detected
// language when detection is enabled.
func (s *state) codeLanguage(info, text string) string {
	if fields := strings.Fields(info); len(fields) > 0 {
		return fields[0]
	}
	if !s.opts.DetectCodeLanguage || strings.TrimSpace(text) == "" {
		return ""
	}
	return langdetect.Detect([]byte(text))
}

// inlineContent canonicalizes a leaf span and parses its inlines.
func (s *state) inlineContent(start, end int, ctx blockContext, plain bool) []mdast.Inline {
	if start >= end {
		return nil
	}
	s.canonicalize(start, end, ctx)
	if plain {
		return s.textNodes(start, end)
	}
	return s.parseInlines(start, end, ctx.depth)
}
