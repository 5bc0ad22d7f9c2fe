package mdast

// SourceRange represents a byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// NewRange returns the range [start, end).
func NewRange(start, end int) SourceRange {
	return SourceRange{StartOffset: start, EndOffset: end}
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Text returns the source text covered by the range.
// Returns an empty string if the range does not fit the source.
func (r SourceRange) Text(source string) string {
	if r.StartOffset < 0 || r.EndOffset > len(source) || r.StartOffset > r.EndOffset {
		return ""
	}
	return source[r.StartOffset:r.EndOffset]
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition represents a range in terms of line/column positions.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid returns true if both start and end positions are valid.
func (sp SourcePosition) IsValid() bool {
	return sp.StartLine > 0 && sp.StartColumn > 0 &&
		sp.EndLine > 0 && sp.EndColumn > 0
}

// IsSingleLine returns true if start and end are on the same line.
func (sp SourcePosition) IsSingleLine() bool {
	return sp.StartLine == sp.EndLine
}

// PositionOf returns the line/column range for a node of this document.
func (d *Document) PositionOf(n Node) SourcePosition {
	if n == nil {
		return SourcePosition{}
	}

	r := n.Range()
	startLine, startCol := d.LineAt(r.StartOffset)
	endLine, endCol := d.LineAt(r.EndOffset)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// TextOf returns the raw source text of a node of this document.
func (d *Document) TextOf(n Node) string {
	if n == nil {
		return ""
	}
	return n.Range().Text(d.Source)
}
