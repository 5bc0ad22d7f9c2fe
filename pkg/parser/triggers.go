package parser

import (
	"sync"

	"github.com/yaklabco/redmark/pkg/mdast"
)

// inlineKind identifies the element a verified candidate builds.
type inlineKind uint8

const (
	inlineBold inlineKind = iota + 1
	inlineItalic
	inlineStrike
	inlineSuper
	inlineCode
	inlineLink
	inlineHyperlink
	inlineReddit
)

// candidate is an inline match confirmed by a verifier. [start, end) is the
// whole element; [inner, innerEnd) is the content parsed recursively for
// container kinds.
type candidate struct {
	kind       inlineKind
	start, end int

	inner, innerEnd int

	// Link and hyperlink data.
	url     string
	tooltip string
	refID   string
	text    string

	hyperlink mdast.HyperlinkKind

	// Reddit mention data.
	name   string
	reddit mdast.RedditLinkKind
}

// container reports whether the content span is parsed into child inlines.
func (c candidate) container() bool {
	switch c.kind {
	case inlineBold, inlineItalic, inlineStrike, inlineSuper, inlineLink:
		return true
	default:
		return false
	}
}

// verifyFunc checks for a well-formed element whose trigger byte is at at.
// floor is the earliest offset a look-back verifier may claim; limit bounds
// the search for terminators.
type verifyFunc func(s *state, at, floor, limit int) (candidate, bool)

// triggerRule is one candidate type for a trigger byte.
type triggerRule struct {
	kind inlineKind

	// ignoreEscape keeps the rule live after a backslash.
	ignoreEscape bool

	verify verifyFunc
}

// triggerTable maps trigger bytes to their rules in priority order.
type triggerTable struct {
	rules [256][]triggerRule

	// chars holds every trigger byte for the multi-byte search.
	chars string
}

func (t *triggerTable) register(c byte, rules ...triggerRule) {
	if len(t.rules[c]) == 0 {
		t.chars += string(c)
	}
	t.rules[c] = append(t.rules[c], rules...)
}

func buildTriggers() *triggerTable {
	t := &triggerTable{}

	for _, c := range []byte{'*', '_'} {
		t.register(c,
			triggerRule{kind: inlineBold, verify: verifyDelimited(inlineBold, 2)},
			triggerRule{kind: inlineItalic, verify: verifyDelimited(inlineItalic, 1)},
		)
	}
	t.register('~', triggerRule{kind: inlineStrike, verify: verifyDelimited(inlineStrike, 2)})
	t.register('^', triggerRule{kind: inlineSuper, verify: verifySuperscript})
	t.register('`', triggerRule{kind: inlineCode, ignoreEscape: true, verify: verifyCodeSpan})
	t.register('[', triggerRule{kind: inlineLink, verify: verifyMarkdownLink})
	t.register('<', triggerRule{kind: inlineHyperlink, verify: verifyAngleURL})
	t.register(':', triggerRule{kind: inlineHyperlink, verify: verifySchemeURL})
	t.register('.', triggerRule{kind: inlineHyperlink, verify: verifyPartialURL})
	t.register('/', triggerRule{kind: inlineReddit, verify: verifyRedditLink})

	return t
}

// sharedTriggers builds the trigger table on first use. It is read-only
// afterwards and shared by every Parser.
var sharedTriggers = sync.OnceValue(buildTriggers)
