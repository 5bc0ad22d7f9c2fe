package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"
)

// zeroWidth marks a byte of the working buffer that was collapsed away by
// canonicalize. It keeps buf the same length as src so every offset stays
// valid; text extraction skips it.
const zeroWidth = 0x00

func isSpaceByte(c byte) bool {
	return util.IsSpace(c)
}

// isBlankByte reports whitespace in the canonical buffer, markers included.
func isBlankByte(c byte) bool {
	return c == zeroWidth || util.IsSpace(c)
}

// isWordByte reports letters and digits. Bytes of multi-byte UTF-8
// sequences count as letters.
func isWordByte(c byte) bool {
	return util.IsAlphaNumeric(c) || c >= utf8.RuneSelf
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isEscapable(c byte) bool {
	return util.IsPunct(c)
}

// canonicalize prepares buf[start:end] for inline scanning: container
// prefixes on continuation lines are dropped, leading whitespace is dropped,
// and runs of whitespace collapse to a single space. A newline preceded by two
// or more spaces survives as '\n' to mark a hard line break. Dropped bytes are
// overwritten with zeroWidth rather than removed.
func (s *state) canonicalize(start, end int, ctx blockContext) {
	for i := start; i < end-1; i++ {
		if s.src[i] != '\n' {
			continue
		}
		ln := s.lineAt(i+1, end, ctx)
		for j := i + 1; j < ln.content; j++ {
			s.buf[j] = zeroWidth
		}
	}

	i := start
	for i < end {
		if !isBlankByte(s.buf[i]) {
			i++
			continue
		}

		runStart := i
		newline := -1
		for i < end && isBlankByte(s.buf[i]) {
			if s.buf[i] == '\n' && newline < 0 {
				newline = i
			}
			i++
		}

		switch {
		case runStart == start:
			s.blank(runStart, i)
		case newline >= 0 && s.hardBreakAt(newline):
			s.blank(runStart, i)
			s.buf[newline] = '\n'
		default:
			s.buf[runStart] = ' '
			s.blank(runStart+1, i)
		}
	}
}

func (s *state) blank(start, end int) {
	for i := start; i < end; i++ {
		s.buf[i] = zeroWidth
	}
}

// hardBreakAt reports whether the newline at nl is preceded by two spaces.
func (s *state) hardBreakAt(nl int) bool {
	i := nl
	if i > 0 && s.src[i-1] == '\r' {
		i--
	}
	return i >= 2 && s.src[i-1] == ' ' && s.src[i-2] == ' '
}

// prevVisible returns the nearest byte before i that is not a marker, not
// looking before floor. ok is false at the floor.
func (s *state) prevVisible(i, floor int) (byte, bool) {
	for i--; i >= floor; i-- {
		if s.buf[i] != zeroWidth {
			return s.buf[i], true
		}
	}
	return 0, false
}

// nextVisible returns the nearest byte at or after i that is not a marker,
// stopping at limit.
func (s *state) nextVisible(i, limit int) (byte, bool) {
	for ; i < limit; i++ {
		if s.buf[i] != zeroWidth {
			return s.buf[i], true
		}
	}
	return 0, false
}

// precededByWord reports whether the visible byte before i is a letter or digit.
func (s *state) precededByWord(i, floor int) bool {
	c, ok := s.prevVisible(i, floor)
	return ok && isWordByte(c)
}

// isEscaped reports whether the byte at i follows an odd number of backslashes.
func (s *state) isEscaped(i, floor int) bool {
	n := 0
	for j := i - 1; j >= floor && s.buf[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// visibleText returns buf[start:end] without markers. Hard-break newlines
// become spaces. With unescape, a backslash before punctuation is dropped.
func (s *state) visibleText(start, end int, unescape bool) string {
	var sb strings.Builder
	sb.Grow(end - start)
	for i := start; i < end; i++ {
		c := s.buf[i]
		switch {
		case c == zeroWidth:
			continue
		case c == '\n':
			sb.WriteByte(' ')
		case unescape && c == '\\' && i+1 < end && isEscapable(s.buf[i+1]):
			sb.WriteByte(s.buf[i+1])
			i++
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// rawText returns the visible text of a span with escapes kept, for URLs.
func (s *state) rawText(start, end int) string {
	return strings.TrimSpace(s.visibleText(start, end, false))
}

// hasPrefixFold reports whether buf at i starts with the ASCII prefix,
// ignoring case.
func (s *state) hasPrefixFold(i, limit int, prefix string) bool {
	if limit-i < len(prefix) {
		return false
	}
	return strings.EqualFold(string(s.buf[i:i+len(prefix)]), prefix)
}
