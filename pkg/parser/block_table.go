package parser

import "github.com/yaklabco/redmark/pkg/mdast"

// cellSpan is the trimmed content range of one table cell.
type cellSpan struct {
	start, end int
}

// tableHead is a recognized header row and separator line.
type tableHead struct {
	header    []cellSpan
	dividers  []cellSpan
	separator line
}

// tableStart recognizes a header line containing `|` followed by a separator
// line of dashes, colons and pipes. The table is rejected when the separator
// has fewer dividers than the header has cells.
func (s *state) tableStart(ln line, limit int, ctx blockContext) (tableHead, bool) {
	if ln.next >= limit || !s.hasPipe(ln.content, ln.end) {
		return tableHead{}, false
	}

	sep := s.lineAt(ln.next, limit, ctx)
	if sep.lazy || !s.isSeparatorLine(sep) {
		return tableHead{}, false
	}

	header := s.splitCells(ln.content, ln.end)
	dividers := s.splitCells(sep.content, sep.end)
	if len(dividers) < len(header) {
		return tableHead{}, false
	}
	for _, d := range dividers {
		if !s.isDivider(d) {
			return tableHead{}, false
		}
	}

	return tableHead{header: header, dividers: dividers, separator: sep}, true
}

// isSeparatorLine reports a line made only of `-`, `:`, `|` and whitespace
// with at least one `-`.
func (s *state) isSeparatorLine(ln line) bool {
	dash := false
	for i := ln.content; i < ln.end; i++ {
		switch c := s.src[i]; {
		case c == '-':
			dash = true
		case c == ':' || c == '|' || isSpaceByte(c):
		default:
			return false
		}
	}
	return dash
}

func (s *state) isDivider(d cellSpan) bool {
	if d.start >= d.end {
		return false
	}
	for i := d.start; i < d.end; i++ {
		if s.src[i] != '-' && s.src[i] != ':' {
			return false
		}
	}
	return true
}

// alignment reads a divider's colons: `:--` left, `--:` right, `:-:` center.
func (s *state) alignment(d cellSpan) mdast.Alignment {
	left := s.src[d.start] == ':'
	right := d.end-d.start > 1 && s.src[d.end-1] == ':'
	switch {
	case left && right:
		return mdast.AlignCenter
	case left:
		return mdast.AlignLeft
	case right:
		return mdast.AlignRight
	default:
		return mdast.AlignUnspecified
	}
}

// hasPipe reports an unescaped `|` in [start, end).
func (s *state) hasPipe(start, end int) bool {
	for i := start; i < end; i++ {
		if s.src[i] == '|' && !s.srcEscaped(i, start) {
			return true
		}
	}
	return false
}

// srcEscaped is isEscaped over the untouched source.
func (s *state) srcEscaped(i, floor int) bool {
	n := 0
	for j := i - 1; j >= floor && s.src[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// splitCells splits a table row on unescaped pipes outside code spans. One
// leading and one trailing pipe are dropped. Each cell is trimmed.
func (s *state) splitCells(start, end int) []cellSpan {
	start = s.trimLeft(start, end)
	end = s.trimRight(start, end)
	if start < end && s.src[start] == '|' {
		start++
	}
	if end > start && s.src[end-1] == '|' && !s.srcEscaped(end-1, start) {
		end--
	}

	var cells []cellSpan
	cellStart := start
	for i := start; i < end; i++ {
		switch s.src[i] {
		case '`':
			run := s.srcRun(i, end, '`')
			if closing := s.findSrcRun(i+run, end, '`', run); closing >= 0 {
				i = closing + run - 1
				continue
			}
			i += run - 1
		case '|':
			if s.srcEscaped(i, start) {
				continue
			}
			cells = append(cells, s.trimCell(cellStart, i))
			cellStart = i + 1
		}
	}
	return append(cells, s.trimCell(cellStart, end))
}

func (s *state) trimCell(start, end int) cellSpan {
	start = s.trimLeft(start, end)
	return cellSpan{start: start, end: s.trimRight(start, end)}
}

// srcRun counts consecutive c bytes from i.
func (s *state) srcRun(i, end int, c byte) int {
	n := 0
	for i+n < end && s.src[i+n] == c {
		n++
	}
	return n
}

// findSrcRun finds a run of exactly n c bytes at or after i.
func (s *state) findSrcRun(i, end int, c byte, n int) int {
	for i < end {
		if s.src[i] != c {
			i++
			continue
		}
		run := s.srcRun(i, end, c)
		if run == n {
			return i
		}
		i += run
	}
	return -1
}

// parseTable consumes the header, separator and body rows. Body rows run
// until a blank line or a line without a pipe. The column count follows the
// header; body rows keep every cell they have.
func (s *state) parseTable(start int, ln line, limit int, ctx blockContext) (mdast.Block, int) {
	head, ok := s.tableStart(ln, limit, ctx)
	if !ok {
		s.report(DiagMissingToken, ln.content, "table parser found no separator")
		return s.parseParagraph(start, ln, limit, ctx, false)
	}

	table := &mdast.Table{
		Columns: make([]mdast.ColumnDef, len(head.header)),
	}
	for i := range table.Columns {
		table.Columns[i].Alignment = s.alignment(head.dividers[i])
	}
	table.Rows = append(table.Rows, s.tableRow(head.header, ctx))

	next := head.separator.next
	for next < limit {
		cur := s.lineAt(next, limit, ctx)
		if cur.lazy || s.isBlank(cur) || !s.hasPipe(cur.content, cur.end) {
			break
		}
		table.Rows = append(table.Rows, s.tableRow(s.splitCells(cur.content, cur.end), ctx))
		next = cur.next
	}

	end := s.absorbTrailing(next, limit, ctx)
	table.Span = mdast.NewRange(start, end)
	return table, end
}

func (s *state) tableRow(cells []cellSpan, ctx blockContext) mdast.TableRow {
	row := mdast.TableRow{Cells: make([]*mdast.TableCell, 0, len(cells))}
	for _, c := range cells {
		row.Cells = append(row.Cells, &mdast.TableCell{
			Span:    mdast.NewRange(c.start, c.end),
			Inlines: s.inlineContent(c.start, c.end, ctx, false),
		})
	}
	return row
}
