package parser

import (
	"strings"
)

// linkSchemes are the URL prefixes accepted in links without rewriting.
var linkSchemes = []string{
	"http://",
	"https://",
	"ftp://",
	"steam://",
	"irc://",
	"news://",
	"mumble://",
	"ssh://",
	"mailto:",
}

// resolveLinkTarget validates a link target and returns the URL to use.
// Scheme URLs pass through, `www.` gets an http scheme, and reddit-relative
// targets (`/r/x`, `r/x`, `/u/x`, `u/x`) are joined to the base URL.
// Anything else is not a link.
func (s *state) resolveLinkTarget(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "<") && strings.HasSuffix(raw, ">") {
		raw = raw[1 : len(raw)-1]
	}
	if raw == "" || strings.ContainsAny(raw, " \t\n") {
		return "", false
	}

	lower := strings.ToLower(raw)
	for _, scheme := range linkSchemes {
		if strings.HasPrefix(lower, scheme) && len(raw) > len(scheme) {
			return raw, true
		}
	}

	switch {
	case strings.HasPrefix(lower, "www.") && len(raw) > len("www."):
		return "http://" + raw, true
	case strings.HasPrefix(lower, "/r/"), strings.HasPrefix(lower, "/u/"):
		return strings.TrimSuffix(s.opts.RedditBaseURL, "/") + raw, true
	case strings.HasPrefix(lower, "r/"), strings.HasPrefix(lower, "u/"):
		return strings.TrimSuffix(s.opts.RedditBaseURL, "/") + "/" + raw, true
	}
	return "", false
}

// verifyMarkdownLink matches `[text](url "tooltip")`, `[text][id]` and
// `[text][]`. Inline targets must resolve; reference links are checked once
// the whole document has been read.
func verifyMarkdownLink(s *state, at, _, limit int) (candidate, bool) {
	labelEnd := s.matchClose(at, limit, '[', ']')
	if labelEnd < 0 || labelEnd+1 >= limit {
		return candidate{}, false
	}

	c := candidate{
		kind:     inlineLink,
		start:    at,
		inner:    at + 1,
		innerEnd: labelEnd,
	}

	switch s.buf[labelEnd+1] {
	case '(':
		closing := s.matchClose(labelEnd+1, limit, '(', ')')
		if closing < 0 {
			return candidate{}, false
		}
		rawURL, tooltip := s.splitTooltip(labelEnd+2, closing)
		url, ok := s.resolveLinkTarget(rawURL)
		if !ok {
			return candidate{}, false
		}
		c.url, c.tooltip = url, tooltip
		c.end = closing + 1

	case '[':
		closing := s.matchClose(labelEnd+1, limit, '[', ']')
		if closing < 0 {
			return candidate{}, false
		}
		id := strings.TrimSpace(s.visibleText(labelEnd+2, closing, true))
		if id == "" {
			id = strings.TrimSpace(s.visibleText(at+1, labelEnd, true))
		}
		if id == "" {
			return candidate{}, false
		}
		c.refID = id
		c.end = closing + 1

	default:
		return candidate{}, false
	}

	return c, true
}

// splitTooltip separates `url "tooltip"` inside link parentheses. A tooltip
// is a final double-quoted string preceded by whitespace.
func (s *state) splitTooltip(start, end int) (string, string) {
	target := s.rawText(start, end)
	if !strings.HasSuffix(target, `"`) || len(target) < 2 {
		return target, ""
	}

	open := strings.LastIndex(target[:len(target)-1], ` "`)
	if open < 0 {
		return target, ""
	}
	tooltip := unescapeText(target[open+2 : len(target)-1])
	return strings.TrimSpace(target[:open]), tooltip
}

// unescapeText drops backslashes in front of punctuation.
func unescapeText(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) && isEscapable(text[i+1]) {
			i++
		}
		sb.WriteByte(text[i])
	}
	return sb.String()
}
