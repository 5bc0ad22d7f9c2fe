package parser

import "sort"

// unvisited marks bracket positions the pairing pass stepped over.
const unvisited = -2

// scanMemo caches closer searches for one parseInlines span. The buffer does
// not change while a span is scanned, so a closer search that reached the end
// of the span gives the same answer to every later opener it walked past.
type scanMemo struct {
	start, limit int

	misses map[delimKey][]delimMiss
	pairs  map[byte][]int
}

// delimKey identifies a delimiter verifier: its marker byte and run length.
type delimKey struct {
	marker byte
	n      int
}

// delimMiss records a closer search that found nothing before the limit.
// An opener whose content starts at or after from fails the same way,
// unless it starts inside a code span the search jumped over.
type delimMiss struct {
	from    int
	skipped []skipSpan
}

// skipSpan is a code span, in buffer offsets, that a search jumped over.
type skipSpan struct {
	start, end int
}

func newScanMemo(start, limit int) *scanMemo {
	return &scanMemo{start: start, limit: limit}
}

// covers reports whether a search from inner is known to fail.
func (d delimMiss) covers(inner int) bool {
	if inner < d.from {
		return false
	}
	i := sort.Search(len(d.skipped), func(i int) bool { return d.skipped[i].end > inner })
	return i == len(d.skipped) || d.skipped[i].start >= inner
}

// missed reports whether a delimiter search from inner is known to fail.
func (m *scanMemo) missed(key delimKey, inner, limit int) bool {
	if m == nil || limit != m.limit {
		return false
	}
	for _, miss := range m.misses[key] {
		if miss.covers(inner) {
			return true
		}
	}
	return false
}

// miss records a failed delimiter search from inner.
func (m *scanMemo) miss(key delimKey, inner, limit int, skipped []skipSpan) {
	if m == nil || limit != m.limit {
		return
	}
	if m.misses == nil {
		m.misses = make(map[delimKey][]delimMiss)
	}
	m.misses[key] = append(m.misses[key], delimMiss{from: inner, skipped: skipped})
}

// pair returns the cached match for the open byte at i. ok is false when the
// span has no pairing for it or the pairing pass did not stop at i.
func (m *scanMemo) pair(s *state, i, limit int, open, closeByte byte) (int, bool) {
	if m == nil || limit != m.limit || i < m.start || i >= m.limit {
		return 0, false
	}
	pairs, ok := m.pairs[open]
	if !ok {
		if m.pairs == nil {
			m.pairs = make(map[byte][]int)
		}
		pairs = s.pairBrackets(m.start, m.limit, open, closeByte)
		m.pairs[open] = pairs
	}
	match := pairs[i-m.start]
	if match == unvisited {
		return 0, false
	}
	return match, true
}

// pairBrackets matches every open byte in [start, limit) with its closer in
// one pass, stepping over escapes and code spans the way scanClose does.
// Unmatched openers get -1 and positions the pass jumped over get unvisited.
func (s *state) pairBrackets(start, limit int, open, closeByte byte) []int {
	pairs := make([]int, limit-start)
	for k := range pairs {
		pairs[k] = unvisited
	}

	var stack []int
	for j := start; j < limit; j++ {
		switch c := s.buf[j]; {
		case c == '`' && open != '`':
			j = s.skipCodeSpan(j, limit) - 1
		case c == '\\':
			j++
		case c == open:
			pairs[j-start] = -1
			stack = append(stack, j)
		case c == closeByte:
			if n := len(stack); n > 0 {
				pairs[stack[n-1]-start] = j
				stack = stack[:n-1]
			}
		}
	}
	return pairs
}
