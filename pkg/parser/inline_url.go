package parser

import (
	"bytes"
	"strings"

	"github.com/yaklabco/redmark/pkg/mdast"
)

// bareSchemes are the schemes recognized in bare URLs.
var bareSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"ftp":    true,
	"steam":  true,
	"irc":    true,
	"news":   true,
	"mumble": true,
	"ssh":    true,
}

// maxSchemeLength bounds the look-back from a `:` trigger.
const maxSchemeLength = 6

// minSubredditName and minUserName are the shortest names a mention accepts.
const (
	minSubredditName = 2
	minUserName      = 1
)

// verifyAngleURL matches `<scheme://...>` or `<www....>` with no whitespace inside.
func verifyAngleURL(s *state, at, _, limit int) (candidate, bool) {
	end := at + 1
	for end < limit && s.buf[end] != '>' {
		if isBlankByte(s.buf[end]) || s.buf[end] == '<' {
			return candidate{}, false
		}
		end++
	}
	if end >= limit || end == at+1 {
		return candidate{}, false
	}

	text := string(s.buf[at+1 : end])
	url, ok := s.resolveLinkTarget(text)
	if !ok || !strings.Contains(url, ":") || isRedditRelative(text) {
		return candidate{}, false
	}
	return candidate{
		kind:      inlineHyperlink,
		start:     at,
		end:       end + 1,
		url:       url,
		text:      text,
		hyperlink: mdast.HyperlinkAngle,
	}, true
}

func isRedditRelative(text string) bool {
	lower := strings.ToLower(text)
	return strings.HasPrefix(lower, "/r/") || strings.HasPrefix(lower, "/u/") ||
		strings.HasPrefix(lower, "r/") || strings.HasPrefix(lower, "u/")
}

// verifySchemeURL looks back from a `:` for a known scheme and forward for
// `//` and a host containing a dot followed by at least one character.
func verifySchemeURL(s *state, at, floor, limit int) (candidate, bool) {
	start := at
	for start > floor && at-start < maxSchemeLength && isASCIILetter(s.buf[start-1]) {
		start--
	}
	if start == at || !bareSchemes[strings.ToLower(string(s.buf[start:at]))] {
		return candidate{}, false
	}
	if s.precededByWord(start, floor) {
		return candidate{}, false
	}
	if at+2 >= limit || s.buf[at+1] != '/' || s.buf[at+2] != '/' {
		return candidate{}, false
	}

	end := s.urlEnd(at+3, limit)
	if !hasDottedHost(s.buf[at+3 : end]) {
		return candidate{}, false
	}

	text := string(s.buf[start:end])
	return candidate{
		kind:      inlineHyperlink,
		start:     start,
		end:       end,
		url:       text,
		text:      text,
		hyperlink: mdast.HyperlinkFull,
	}, true
}

// verifyPartialURL matches `www.host` from the dot after `www`.
func verifyPartialURL(s *state, at, floor, limit int) (candidate, bool) {
	start := at - len("www")
	if start < floor || !strings.EqualFold(string(s.buf[start:at]), "www") {
		return candidate{}, false
	}
	if c, ok := s.prevVisible(start, floor); ok && (isWordByte(c) || c == '/' || c == '.' || c == ':') {
		return candidate{}, false
	}

	end := s.urlEnd(at+1, limit)
	if end == at+1 {
		return candidate{}, false
	}

	text := string(s.buf[start:end])
	return candidate{
		kind:      inlineHyperlink,
		start:     start,
		end:       end,
		url:       "http://" + text,
		text:      text,
		hyperlink: mdast.HyperlinkPartial,
	}, true
}

// urlEnd returns the end of a bare URL starting at i: it stops at whitespace
// or angle brackets, then drops trailing punctuation and a closing paren
// that has no opener inside the URL.
func (s *state) urlEnd(i, limit int) int {
	end := i
	for end < limit {
		c := s.buf[end]
		if isBlankByte(c) || c == '<' || c == '>' {
			break
		}
		end++
	}

	opens := bytes.Count(s.buf[i:end], []byte{'('})
	closes := bytes.Count(s.buf[i:end], []byte{')'})
	for end > i {
		switch s.buf[end-1] {
		case '.', ',', ';', ':', '!', '?', '\'', '"', '*', '_', '~':
			end--
			continue
		case ')':
			if opens < closes {
				end--
				closes--
				continue
			}
		}
		break
	}
	return end
}

// hasDottedHost reports a `.` in the host part with at least one character
// after it.
func hasDottedHost(rest []byte) bool {
	host := string(rest)
	if slash := strings.IndexAny(host, "/?#"); slash >= 0 {
		host = host[:slash]
	}
	dot := strings.IndexByte(host, '.')
	return dot > 0 && dot < len(host)-1
}

// verifyRedditLink matches `/r/name`, `r/name`, `/u/name` and `u/name`. The
// mention may not follow a letter or digit, and the short form may not
// follow a slash.
func verifyRedditLink(s *state, at, floor, limit int) (candidate, bool) {
	var start, nameStart int
	var letter byte

	switch {
	case at+2 < limit && isMentionLetter(s.buf[at+1]) && s.buf[at+2] == '/':
		start, nameStart, letter = at, at+3, s.buf[at+1]
	case at-1 >= floor && isMentionLetter(s.buf[at-1]):
		start, nameStart, letter = at-1, at+1, s.buf[at-1]
		if c, ok := s.prevVisible(start, floor); ok && c == '/' {
			return candidate{}, false
		}
	default:
		return candidate{}, false
	}

	if s.precededByWord(start, floor) {
		return candidate{}, false
	}

	kind := mdast.RedditSubreddit
	minName := minSubredditName
	if letter == 'u' || letter == 'U' {
		kind = mdast.RedditUser
		minName = minUserName
	}

	end := nameStart
	for end < limit && isNameByte(s.buf[end], kind) {
		end++
	}
	if end-nameStart < minName {
		return candidate{}, false
	}

	return candidate{
		kind:   inlineReddit,
		start:  start,
		end:    end,
		text:   string(s.buf[start:end]),
		name:   string(s.buf[nameStart:end]),
		reddit: kind,
	}, true
}

func isMentionLetter(c byte) bool {
	switch c {
	case 'r', 'R', 'u', 'U':
		return true
	}
	return false
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isNameByte reports bytes allowed in subreddit names, plus `-` for users.
func isNameByte(c byte, kind mdast.RedditLinkKind) bool {
	switch {
	case isASCIILetter(c), isDigit(c), c == '_':
		return true
	case c == '-':
		return kind == mdast.RedditUser
	}
	return false
}
