package mdast

import "sort"

// LineInfo holds metadata for a single line of the source.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of source).
	EndOffset int
}

// BuildLines constructs line metadata from source text.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(source string) []LineInfo {
	if len(source) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx := 0; idx < len(source); idx++ {
		if source[idx] != '\n' {
			continue
		}

		newlineStart := idx
		if idx > 0 && source[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// Handle last line (may not have trailing newline).
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(source),
		EndOffset:    len(source),
	})

	return lines
}

// LineCount returns the number of lines in the document source.
func (d *Document) LineCount() int {
	return len(d.lineIndex())
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (d *Document) LineAt(offset int) (int, int) {
	lines := d.lineIndex()
	if offset < 0 || len(lines) == 0 {
		return 0, 0
	}

	// Handle offset at or past end of content.
	if offset >= len(d.Source) {
		lastLine := lines[len(lines)-1]
		return len(lines), offset - lastLine.StartOffset + 1
	}

	// Binary search to find the line containing the offset.
	lineIdx := sort.Search(len(lines), func(i int) bool {
		return lines[i].EndOffset > offset
	})

	if lineIdx >= len(lines) {
		lineIdx = len(lines) - 1
	}

	lineInfo := lines[lineIdx]
	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns an empty string if the line number is out of range.
func (d *Document) LineContent(line int) string {
	lines := d.lineIndex()
	if line < 1 || line > len(lines) {
		return ""
	}

	lineInfo := lines[line-1]
	return d.Source[lineInfo.StartOffset:lineInfo.NewlineStart]
}

func (d *Document) lineIndex() []LineInfo {
	if d.lines == nil {
		return BuildLines(d.Source)
	}
	return d.lines
}
