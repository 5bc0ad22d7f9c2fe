package parser

import (
	"fmt"

	"github.com/yaklabco/redmark/internal/logging"
	"github.com/yaklabco/redmark/pkg/mdast"
)

// Diagnostic codes reported in mdast.Document.Diagnostics.
const (
	// DiagNoProgress means a parser returned an end offset that did not move
	// past its start. The scanner forces one byte of progress.
	DiagNoProgress = "no-progress"

	// DiagMissingToken means an element parser did not find the token its
	// scanner promised at the given offset.
	DiagMissingToken = "missing-token"

	// DiagBadRange means a parser produced a child range outside its parent.
	DiagBadRange = "bad-range"
)

// report records an invariant violation. It is never surfaced as an error.
func (s *state) report(code string, offset int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.diags = append(s.diags, mdast.Diagnostic{
		Code:    code,
		Message: msg,
		Offset:  offset,
	})

	line, col := s.lineCol(offset)
	s.logger.Debug("parser invariant violated",
		logging.FieldCode, code,
		logging.FieldOffset, offset,
		logging.FieldLine, line,
		logging.FieldColumn, col,
		logging.FieldMessage, msg,
	)
}

// lineCol converts an offset to a 1-based line and column without building a
// full line index; diagnostics are rare.
func (s *state) lineCol(offset int) (int, int) {
	if offset > len(s.src) {
		offset = len(s.src)
	}
	line, lineStart := 1, 0
	for i := 0; i < offset; i++ {
		if s.src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, offset - lineStart + 1
}

// withinRange reports whether child lies inside parent. A child that escapes
// its parent is recorded as DiagBadRange.
func (s *state) withinRange(what string, child, parent mdast.SourceRange) bool {
	if child.StartOffset >= parent.StartOffset && child.EndOffset <= parent.EndOffset &&
		child.StartOffset <= child.EndOffset {
		return true
	}
	s.report(DiagBadRange, child.StartOffset, "%s range [%d,%d) outside [%d,%d)",
		what, child.StartOffset, child.EndOffset, parent.StartOffset, parent.EndOffset)
	return false
}

// ensureProgress returns next, or start+1 with a diagnostic when next does
// not advance past start.
func (s *state) ensureProgress(what string, start, next, limit int) int {
	if next > start {
		return next
	}
	s.report(DiagNoProgress, start, "%s parser did not advance (start %d, end %d)", what, start, next)
	if start+1 > limit {
		return limit
	}
	return start + 1
}
