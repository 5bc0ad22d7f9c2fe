package mdast

import "strings"

// TextRun is literal text with whitespace collapsed and escapes removed.
type TextRun struct {
	Span SourceRange
	Text string
}

// Bold is `**text**` or `__text__`.
type Bold struct {
	Span    SourceRange
	Inlines []Inline
}

// Italic is `*text*` or `_text_`.
type Italic struct {
	Span    SourceRange
	Inlines []Inline
}

// Strikethrough is `~~text~~`.
type Strikethrough struct {
	Span    SourceRange
	Inlines []Inline
}

// Superscript is `^word` or `^(some text)`.
type Superscript struct {
	Span    SourceRange
	Inlines []Inline
}

// CodeSpan is `` `code` ``. Its text is never parsed further.
type CodeSpan struct {
	Span SourceRange
	Text string
}

// MarkdownLink is `[text](url "tooltip")` or a reference link `[text][id]`.
type MarkdownLink struct {
	Span SourceRange

	// URL is the resolved link target.
	URL string

	// Tooltip is the optional title.
	Tooltip string

	// RefID is the reference id for `[text][id]` links; empty for inline links.
	RefID string

	Inlines []Inline
}

// HyperlinkKind records how a raw hyperlink was written.
type HyperlinkKind uint8

const (
	// HyperlinkAngle is `<http://example.com>`.
	HyperlinkAngle HyperlinkKind = iota

	// HyperlinkFull is a bare URL with a scheme, `http://example.com`.
	HyperlinkFull

	// HyperlinkPartial is a bare `www.example.com` URL.
	HyperlinkPartial
)

// String returns a human-readable name for the hyperlink kind.
func (k HyperlinkKind) String() string {
	switch k {
	case HyperlinkAngle:
		return "angle"
	case HyperlinkFull:
		return "full"
	case HyperlinkPartial:
		return "partial"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k HyperlinkKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// RawHyperlink is a URL written directly in the text.
type RawHyperlink struct {
	Span SourceRange

	// URL is the navigable target; partial URLs get an http:// scheme.
	URL string

	// Text is the URL as displayed.
	Text string

	// LinkKind records how the URL was written.
	LinkKind HyperlinkKind
}

// RedditLinkKind distinguishes subreddit from user links.
type RedditLinkKind uint8

const (
	RedditSubreddit RedditLinkKind = iota
	RedditUser
)

// String returns a human-readable name for the reddit link kind.
func (k RedditLinkKind) String() string {
	switch k {
	case RedditSubreddit:
		return "subreddit"
	case RedditUser:
		return "user"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k RedditLinkKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// RedditLink is a `/r/name` or `/u/name` mention, with or without the leading slash.
type RedditLink struct {
	Span SourceRange

	// Text is the mention as written, e.g. "/r/golang".
	Text string

	// Name is the subreddit or user name.
	Name string

	// LinkKind is subreddit or user.
	LinkKind RedditLinkKind
}

// LineBreak is a hard break written as two trailing spaces before a newline.
type LineBreak struct {
	Span SourceRange
}

func (*TextRun) Kind() Kind       { return KindTextRun }
func (*Bold) Kind() Kind          { return KindBold }
func (*Italic) Kind() Kind        { return KindItalic }
func (*Strikethrough) Kind() Kind { return KindStrikethrough }
func (*Superscript) Kind() Kind   { return KindSuperscript }
func (*CodeSpan) Kind() Kind      { return KindCodeSpan }
func (*MarkdownLink) Kind() Kind  { return KindMarkdownLink }
func (*RawHyperlink) Kind() Kind  { return KindRawHyperlink }
func (*RedditLink) Kind() Kind    { return KindRedditLink }
func (*LineBreak) Kind() Kind     { return KindLineBreak }

func (n *TextRun) Range() SourceRange       { return n.Span }
func (n *Bold) Range() SourceRange          { return n.Span }
func (n *Italic) Range() SourceRange        { return n.Span }
func (n *Strikethrough) Range() SourceRange { return n.Span }
func (n *Superscript) Range() SourceRange   { return n.Span }
func (n *CodeSpan) Range() SourceRange      { return n.Span }
func (n *MarkdownLink) Range() SourceRange  { return n.Span }
func (n *RawHyperlink) Range() SourceRange  { return n.Span }
func (n *RedditLink) Range() SourceRange    { return n.Span }
func (n *LineBreak) Range() SourceRange     { return n.Span }

func (*TextRun) inlineNode()       {}
func (*Bold) inlineNode()          {}
func (*Italic) inlineNode()        {}
func (*Strikethrough) inlineNode() {}
func (*Superscript) inlineNode()   {}
func (*CodeSpan) inlineNode()      {}
func (*MarkdownLink) inlineNode()  {}
func (*RawHyperlink) inlineNode()  {}
func (*RedditLink) inlineNode()    {}
func (*LineBreak) inlineNode()     {}

// PlainText flattens inlines to their visible text. Line breaks become "\n".
func PlainText(inlines []Inline) string {
	var sb strings.Builder
	writePlainText(&sb, inlines)
	return sb.String()
}

func writePlainText(sb *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch n := in.(type) {
		case *TextRun:
			sb.WriteString(n.Text)
		case *CodeSpan:
			sb.WriteString(n.Text)
		case *RawHyperlink:
			sb.WriteString(n.Text)
		case *RedditLink:
			sb.WriteString(n.Text)
		case *LineBreak:
			sb.WriteByte('\n')
		default:
			writePlainText(sb, InlineChildren(in))
		}
	}
}

// InlineChildren returns the nested inlines of a container inline, or nil for leaves.
func InlineChildren(in Inline) []Inline {
	switch n := in.(type) {
	case *Bold:
		return n.Inlines
	case *Italic:
		return n.Inlines
	case *Strikethrough:
		return n.Inlines
	case *Superscript:
		return n.Inlines
	case *MarkdownLink:
		return n.Inlines
	default:
		return nil
	}
}
