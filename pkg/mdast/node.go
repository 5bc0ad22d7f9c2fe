// Package mdast provides the Reddit-flavored Markdown AST produced by the parser.
//
// A Document owns an ordered sequence of Block nodes. Blocks own either nested
// blocks (Quote, List items) or Inline nodes (Paragraph, Header, table cells).
// Every node records the byte range of the source it was built from.
package mdast

// Kind classifies the type of an AST node.
type Kind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	KindDocument Kind = iota

	// Block-level nodes.
	KindParagraph
	KindHeader
	KindQuote
	KindCodeBlock
	KindHorizontalRule
	KindList
	KindListItem
	KindTable
	KindTableCell
	KindLinkReference

	// Inline-level nodes.
	KindTextRun
	KindBold
	KindItalic
	KindStrikethrough
	KindSuperscript
	KindCodeSpan
	KindMarkdownLink
	KindRawHyperlink
	KindRedditLink
	KindLineBreak
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindDocument:       "Document",
	KindParagraph:      "Paragraph",
	KindHeader:         "Header",
	KindQuote:          "Quote",
	KindCodeBlock:      "CodeBlock",
	KindHorizontalRule: "HorizontalRule",
	KindList:           "List",
	KindListItem:       "ListItem",
	KindTable:          "Table",
	KindTableCell:      "TableCell",
	KindLinkReference:  "LinkReference",
	KindTextRun:        "TextRun",
	KindBold:           "Bold",
	KindItalic:         "Italic",
	KindStrikethrough:  "Strikethrough",
	KindSuperscript:    "Superscript",
	KindCodeSpan:       "CodeSpan",
	KindMarkdownLink:   "MarkdownLink",
	KindRawHyperlink:   "RawHyperlink",
	KindRedditLink:     "RedditLink",
	KindLineBreak:      "LineBreak",
}

// String returns the node kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// IsBlock returns true for block-level kinds.
func (k Kind) IsBlock() bool {
	return k >= KindParagraph && k <= KindLinkReference && k != KindListItem && k != KindTableCell
}

// IsInline returns true for inline-level kinds.
func (k Kind) IsInline() bool {
	return k >= KindTextRun && k <= KindLineBreak
}

// Node is implemented by every element of the tree.
type Node interface {
	// Kind identifies what type of node this is.
	Kind() Kind

	// Range is the source byte range the node was parsed from.
	Range() SourceRange
}

// Block is a line-oriented structural unit.
// The set of implementations is closed to this package.
type Block interface {
	Node
	blockNode()
}

// Inline is a span-level formatting unit inside a block's text.
// The set of implementations is closed to this package.
type Inline interface {
	Node
	inlineNode()
}

// Diagnostic records an internal invariant violation noticed during parsing.
// Diagnostics never change the shape of the returned tree.
type Diagnostic struct {
	// Code is a stable identifier for the violation.
	Code string

	// Message is a human-readable description.
	Message string

	// Offset is the source byte offset where the violation was detected.
	Offset int
}

// Document is the root of a parsed tree.
type Document struct {
	// Source is the text the document was parsed from.
	Source string

	// Blocks are the top-level blocks in source order.
	Blocks []Block

	// Diagnostics lists invariant violations recorded while parsing.
	Diagnostics []Diagnostic

	lines []LineInfo
}

// NewDocument creates a document for source with the given blocks.
func NewDocument(source string, blocks []Block) *Document {
	return &Document{
		Source: source,
		Blocks: blocks,
		lines:  BuildLines(source),
	}
}

// Kind implements Node.
func (d *Document) Kind() Kind { return KindDocument }

// Range implements Node.
func (d *Document) Range() SourceRange {
	return SourceRange{StartOffset: 0, EndOffset: len(d.Source)}
}

// IsEmpty returns true if the document has no blocks.
func (d *Document) IsEmpty() bool {
	return len(d.Blocks) == 0
}
