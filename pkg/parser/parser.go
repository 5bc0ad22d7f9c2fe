// Package parser turns Reddit-flavored Markdown text into an mdast.Document.
//
// Parsing is a two-level recursive descent over byte offsets of the input:
// the block scanner classifies line-oriented units and recurses into quotes
// and list items, and the inline scanner picks span-level elements using a
// shared trigger table. Malformed markup never fails; it degrades to
// paragraphs and text runs.
package parser

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/redmark/internal/logging"
	"github.com/yaklabco/redmark/pkg/mdast"
)

// Default option values.
const (
	DefaultMaxNesting    = 32
	DefaultRedditBaseURL = "https://www.reddit.com"
)

// Options configures a Parser.
type Options struct {
	// MaxNesting bounds recursion through quotes, list items and inline
	// containers. Deeper content is kept as plain paragraphs and text.
	MaxNesting int

	// DetectCodeLanguage fills CodeBlock.Language from the code content when
	// no fence info string names one.
	DetectCodeLanguage bool

	// RedditBaseURL is prefixed to relative /r/ and /u/ link targets.
	RedditBaseURL string

	// Logger receives debug entries for invariant violations.
	// Defaults to the package-level logger.
	Logger *log.Logger
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		MaxNesting:    DefaultMaxNesting,
		RedditBaseURL: DefaultRedditBaseURL,
	}
}

// Parser parses Markdown text. A Parser is immutable and safe for concurrent
// use; each Parse call owns its own state.
type Parser struct {
	opts     Options
	triggers *triggerTable
}

// New creates a parser. Zero-valued options fall back to their defaults.
func New(opts Options) *Parser {
	if opts.MaxNesting <= 0 {
		opts.MaxNesting = DefaultMaxNesting
	}
	if opts.RedditBaseURL == "" {
		opts.RedditBaseURL = DefaultRedditBaseURL
	}
	return &Parser{
		opts:     opts,
		triggers: sharedTriggers(),
	}
}

// Options returns the parser's effective options.
func (p *Parser) Options() Options {
	return p.opts
}

// Parse builds the document tree for text. It never fails: empty or
// whitespace-only input yields a document with no blocks.
func (p *Parser) Parse(text string) *mdast.Document {
	s := newState(text, &p.opts, p.triggers)

	blocks := s.parseBlocks(0, len(text), rootContext())
	s.resolveReferences(blocks)

	doc := mdast.NewDocument(text, blocks)
	doc.Diagnostics = s.diags
	return doc
}

// Parse parses text with a default parser.
func Parse(text string) *mdast.Document {
	return New(DefaultOptions()).Parse(text)
}

// state is the per-call parse state. It is never shared between calls.
type state struct {
	// src is the immutable input; block classification reads only src.
	src string

	// buf is a working copy of src. Inline spans are canonicalized in place
	// before they are scanned, keeping a 1:1 offset correspondence with src.
	buf []byte

	opts     *Options
	triggers *triggerTable
	logger   *log.Logger

	// memo caches closer searches for the inline span being scanned.
	memo *scanMemo

	refs     map[string]linkDefinition
	deferred []*mdast.MarkdownLink
	diags    []mdast.Diagnostic
}

func newState(text string, opts *Options, triggers *triggerTable) *state {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &state{
		src:      text,
		buf:      []byte(text),
		opts:     opts,
		triggers: triggers,
		logger:   logger,
		refs:     make(map[string]linkDefinition),
	}
}
