package mdast

// Paragraph is a run of text lines terminated by a blank line or another block.
type Paragraph struct {
	Span    SourceRange
	Inlines []Inline
}

// Header is an ATX (`# text`) or setext (`text` over `===`) header.
type Header struct {
	Span SourceRange

	// Level is the header level, 1 through 6.
	Level int

	// Setext is true when the header was written with an underline.
	Setext bool

	Inlines []Inline
}

// Quote is a `>` block quote. Its content is parsed as blocks.
type Quote struct {
	Span   SourceRange
	Blocks []Block
}

// CodeBlock is an indented or fenced code block. Its text is never parsed further.
type CodeBlock struct {
	Span SourceRange

	// Text is the raw code with the block indentation removed.
	Text string

	// IndentLevel is the leading indentation of the first line in units of four spaces.
	// Fenced blocks always report 0.
	IndentLevel int

	// Fenced is true for ``` and ~~~ blocks.
	Fenced bool

	// Info is the info string following an opening fence.
	Info string

	// Language is the info string's first word, or a detected language hint.
	Language string
}

// HorizontalRule is a thematic break such as `***` or `---`.
type HorizontalRule struct {
	Span SourceRange
}

// ListStyle distinguishes bulleted from numbered lists.
type ListStyle uint8

const (
	// ListBulleted lists use `*`, `-` or `+` markers.
	ListBulleted ListStyle = iota

	// ListNumbered lists use `1.` style markers.
	ListNumbered
)

// String returns a human-readable name for the style.
func (s ListStyle) String() string {
	switch s {
	case ListBulleted:
		return "bulleted"
	case ListNumbered:
		return "numbered"
	default:
		return "unknown"
	}
}

// MarshalText encodes the style by name.
func (s ListStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// List is a sequence of items sharing the style of its first marker.
type List struct {
	Span  SourceRange
	Style ListStyle
	Items []*ListItem
}

// ListItem holds the blocks of a single list entry.
type ListItem struct {
	Span   SourceRange
	Blocks []Block
}

// Alignment is the horizontal alignment of a table column.
type Alignment uint8

const (
	AlignUnspecified Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns a human-readable name for the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unspecified"
	}
}

// MarshalText encodes the alignment by name.
func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ColumnDef describes a table column.
type ColumnDef struct {
	Alignment Alignment
}

// TableRow is a single row of cells. The first row of a table is its header.
type TableRow struct {
	Cells []*TableCell
}

// TableCell holds the inline content of one cell.
type TableCell struct {
	Span    SourceRange
	Inlines []Inline
}

// Table is a pipe table with a header row and a separator row.
type Table struct {
	Span    SourceRange
	Columns []ColumnDef
	Rows    []TableRow
}

// Header returns the header row, or an empty row if the table has none.
func (t *Table) Header() TableRow {
	if len(t.Rows) == 0 {
		return TableRow{}
	}
	return t.Rows[0]
}

// LinkReference is a `[id]: url "title"` definition line. It renders nothing.
type LinkReference struct {
	Span    SourceRange
	ID      string
	URL     string
	Tooltip string
}

func (*Paragraph) Kind() Kind      { return KindParagraph }
func (*Header) Kind() Kind         { return KindHeader }
func (*Quote) Kind() Kind          { return KindQuote }
func (*CodeBlock) Kind() Kind      { return KindCodeBlock }
func (*HorizontalRule) Kind() Kind { return KindHorizontalRule }
func (*List) Kind() Kind           { return KindList }
func (*ListItem) Kind() Kind       { return KindListItem }
func (*Table) Kind() Kind          { return KindTable }
func (*TableCell) Kind() Kind      { return KindTableCell }
func (*LinkReference) Kind() Kind  { return KindLinkReference }

func (b *Paragraph) Range() SourceRange      { return b.Span }
func (b *Header) Range() SourceRange         { return b.Span }
func (b *Quote) Range() SourceRange          { return b.Span }
func (b *CodeBlock) Range() SourceRange      { return b.Span }
func (b *HorizontalRule) Range() SourceRange { return b.Span }
func (b *List) Range() SourceRange           { return b.Span }
func (b *ListItem) Range() SourceRange       { return b.Span }
func (b *Table) Range() SourceRange          { return b.Span }
func (b *TableCell) Range() SourceRange      { return b.Span }
func (b *LinkReference) Range() SourceRange  { return b.Span }

func (*Paragraph) blockNode()      {}
func (*Header) blockNode()         {}
func (*Quote) blockNode()          {}
func (*CodeBlock) blockNode()      {}
func (*HorizontalRule) blockNode() {}
func (*List) blockNode()           {}
func (*Table) blockNode()          {}
func (*LinkReference) blockNode()  {}
