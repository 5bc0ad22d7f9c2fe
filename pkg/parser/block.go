package parser

import "github.com/yaklabco/redmark/pkg/mdast"

// blockKind is the classification the block scanner settles on for a line.
type blockKind uint8

const (
	blockNone blockKind = iota
	blockCode
	blockFence
	blockQuote
	blockHeader
	blockRule
	blockList
	blockSetext
	blockReference
	blockTable
	blockParagraph
)

// parseBlocks parses [start, limit) into consecutive blocks whose ranges
// partition the span. Leading blank lines belong to the block after them and
// trailing blank lines to the last block.
func (s *state) parseBlocks(start, limit int, ctx blockContext) []mdast.Block {
	var blocks []mdast.Block
	pos := start
	for pos < limit {
		block, next := s.nextBlock(pos, limit, ctx)
		if block == nil {
			break
		}
		if !s.withinRange("block", block.Range(), mdast.NewRange(pos, limit)) {
			next = min(next, limit)
		}
		next = s.ensureProgress("block", pos, next, limit)
		blocks = append(blocks, block)
		pos = next
	}
	return blocks
}

// nextBlock classifies and parses the block starting at or after start.
// It returns nil when only blank lines remain.
func (s *state) nextBlock(start, limit int, ctx blockContext) (mdast.Block, int) {
	pos := s.skipBlankLines(start, limit, ctx)
	if pos >= limit {
		return nil, limit
	}

	ln := s.lineAt(pos, limit, ctx)
	if ctx.depth >= s.opts.MaxNesting {
		s.logger.Debug("nesting limit reached", "depth", ctx.depth, "offset", pos)
		return s.parseParagraph(start, ln, limit, ctx, true)
	}

	switch s.classify(ln, limit, ctx) {
	case blockCode:
		return s.parseIndentedCode(start, ln, limit, ctx)
	case blockFence:
		return s.parseFencedCode(start, ln, limit, ctx)
	case blockQuote:
		return s.parseQuote(start, ln, limit, ctx)
	case blockHeader:
		return s.parseHeader(start, ln, limit, ctx)
	case blockRule:
		return s.parseRule(start, ln, limit, ctx)
	case blockList:
		return s.parseList(start, ln, limit, ctx)
	case blockSetext:
		return s.parseSetextHeader(start, ln, limit, ctx)
	case blockReference:
		return s.parseLinkReference(start, ln, limit, ctx)
	case blockTable:
		return s.parseTable(start, ln, limit, ctx)
	default:
		return s.parseParagraph(start, ln, limit, ctx, false)
	}
}

// classify looks ahead from a non-blank line and picks its block type.
// Checks run in priority order; anything unrecognized is a paragraph.
func (s *state) classify(ln line, limit int, ctx blockContext) blockKind {
	indent, first := s.indentation(ln)
	if indent >= codeIndent {
		return blockCode
	}

	if _, ok := s.fenceAt(first, ln.end); ok {
		return blockFence
	}

	switch s.src[first] {
	case '>':
		return blockQuote
	case '#':
		return blockHeader
	}

	if s.isRuleLine(first, ln.end) {
		return blockRule
	}

	if _, ok := s.listMarkerAt(first, ln.end); ok {
		return blockList
	}

	if ln.next < limit {
		under := s.lineAt(ln.next, limit, ctx)
		if _, ok := s.setextLevel(under); ok {
			return blockSetext
		}
	}

	if _, ok := s.linkDefinitionAt(first, ln.end); ok {
		return blockReference
	}

	if _, ok := s.tableStart(ln, limit, ctx); ok {
		return blockTable
	}

	return blockParagraph
}

// interruptsParagraph reports whether a non-blank line starts a block that
// ends the paragraph before it.
func (s *state) interruptsParagraph(ln line, limit int, ctx blockContext) bool {
	indent, first := s.indentation(ln)
	if indent >= codeIndent || first >= ln.end {
		return false
	}

	switch s.src[first] {
	case '>', '#':
		return true
	}

	if _, ok := s.fenceAt(first, ln.end); ok {
		return true
	}
	if s.isRuleLine(first, ln.end) {
		return true
	}
	if _, ok := s.listMarkerAt(first, ln.end); ok {
		return true
	}
	if _, ok := s.linkDefinitionAt(first, ln.end); ok {
		return true
	}
	if ln.next < limit {
		under := s.lineAt(ln.next, limit, ctx)
		if _, ok := s.setextLevel(under); ok {
			return true
		}
	}
	_, ok := s.tableStart(ln, limit, ctx)
	return ok
}
