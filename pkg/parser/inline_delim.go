package parser

// verifyDelimited builds a verifier for elements wrapped in n copies of the
// trigger byte: `**bold**`, `*italic*`, `__bold__`, `_italic_`, `~~strike~~`.
//
// The opener may not be followed by whitespace and the closer may not be
// preceded by it. A closing run must be exactly n long, or three or more,
// in which case its last n bytes close, so `***x***` nests an italic inside
// a bold. An underscore may not touch a letter or digit on its outer side.
func verifyDelimited(kind inlineKind, n int) verifyFunc {
	return func(s *state, at, floor, limit int) (candidate, bool) {
		marker := s.buf[at]
		if at+n >= limit || s.runLength(at, limit, marker) < n {
			return candidate{}, false
		}
		if n == 1 && s.buf[at+1] == marker {
			return candidate{}, false
		}
		if marker == '_' && s.precededByWord(at, floor) {
			return candidate{}, false
		}
		if c, ok := s.nextVisible(at+n, limit); !ok || isBlankByte(c) {
			return candidate{}, false
		}

		inner := at + n
		key := delimKey{marker: marker, n: n}
		if s.memo.missed(key, inner, limit) {
			return candidate{}, false
		}

		var skipped []skipSpan
		for j := inner; j < limit; {
			if s.buf[j] == '`' {
				next := s.skipCodeSpan(j, limit)
				skipped = append(skipped, skipSpan{start: j, end: next})
				j = next
				continue
			}
			if s.buf[j] != marker || s.isEscaped(j, floor) {
				j++
				continue
			}

			run := s.runLength(j, limit, marker)
			runEnd := j + run
			closer := runEnd - n
			if (run == n || run > 2) && closer > inner && s.validCloser(j, inner, runEnd, limit, marker) {
				return candidate{
					kind:     kind,
					start:    at,
					end:      runEnd,
					inner:    inner,
					innerEnd: closer,
				}, true
			}
			j = runEnd
		}
		s.memo.miss(key, inner, limit, skipped)
		return candidate{}, false
	}
}

// validCloser checks the run of closing markers starting at runStart.
func (s *state) validCloser(runStart, inner, runEnd, limit int, marker byte) bool {
	if c, ok := s.prevVisible(runStart, inner); !ok || isBlankByte(c) {
		return false
	}
	if marker == '_' {
		if c, ok := s.nextVisible(runEnd, limit); ok && isWordByte(c) {
			return false
		}
	}
	return true
}

// runLength counts consecutive c bytes in buf from i.
func (s *state) runLength(i, limit int, c byte) int {
	n := 0
	for i+n < limit && s.buf[i+n] == c {
		n++
	}
	return n
}

// skipCodeSpan returns the offset after the code span starting at i, or
// i+1 past the backtick run when it has no matching closer.
func (s *state) skipCodeSpan(i, limit int) int {
	n := s.runLength(i, limit, '`')
	if closing := s.findRun(i+n, limit, '`', n); closing >= 0 {
		return closing + n
	}
	return i + n
}

// findRun finds a run of exactly n c bytes in buf at or after i.
func (s *state) findRun(i, limit int, c byte, n int) int {
	for i < limit {
		if s.buf[i] != c {
			i++
			continue
		}
		run := s.runLength(i, limit, c)
		if run == n {
			return i
		}
		i += run
	}
	return -1
}

// matchClose finds the close byte balancing the open byte at i, skipping
// escaped bytes and code spans. It returns -1 when there is none.
func (s *state) matchClose(i, limit int, open, closeByte byte) int {
	if match, ok := s.memo.pair(s, i, limit, open, closeByte); ok {
		return match
	}
	return s.scanClose(i, limit, open, closeByte)
}

func (s *state) scanClose(i, limit int, open, closeByte byte) int {
	depth := 0
	for j := i; j < limit; j++ {
		switch c := s.buf[j]; {
		case c == '`' && open != '`':
			j = s.skipCodeSpan(j, limit) - 1
		case c == '\\':
			j++
		case c == open:
			depth++
		case c == closeByte:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// verifyCodeSpan matches a backtick run with a closing run of equal length.
// The content is kept verbatim apart from whitespace collapsing.
func verifyCodeSpan(s *state, at, floor, limit int) (candidate, bool) {
	if at > floor && s.buf[at-1] == '`' {
		return candidate{}, false
	}
	n := s.runLength(at, limit, '`')
	closing := s.findRun(at+n, limit, '`', n)
	if closing < 0 {
		return candidate{}, false
	}

	text := s.visibleText(at+n, closing, false)
	if len(text) >= 2 && text[0] == ' ' && text[len(text)-1] == ' ' {
		text = text[1 : len(text)-1]
	}
	return candidate{
		kind:     inlineCode,
		start:    at,
		end:      closing + n,
		inner:    at + n,
		innerEnd: closing,
		text:     text,
	}, true
}

// verifySuperscript matches `^(text)` with balanced parentheses, or `^word`
// running to the next whitespace.
func verifySuperscript(s *state, at, _, limit int) (candidate, bool) {
	next := at + 1
	if next >= limit || isBlankByte(s.buf[next]) {
		return candidate{}, false
	}

	if s.buf[next] == '(' {
		closing := s.matchClose(next, limit, '(', ')')
		if closing > next+1 {
			return candidate{
				kind:     inlineSuper,
				start:    at,
				end:      closing + 1,
				inner:    next + 1,
				innerEnd: closing,
			}, true
		}
	}

	end := next
	for end < limit && !isBlankByte(s.buf[end]) {
		end++
	}
	return candidate{
		kind:     inlineSuper,
		start:    at,
		end:      end,
		inner:    next,
		innerEnd: end,
	}, true
}
