// Package langdetect guesses the language of code block content so that
// unlabelled code in a parsed document can still carry a highlighting hint.
// It wraps go-enry with a few cheap pattern checks for short snippets, which
// the classifier handles poorly.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// candidates limits the classifier to languages that commonly show up in
// posts and comments.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "C#", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Lua", "Dockerfile",
}

// pattern is a cheap content check that identifies a language outright.
type pattern struct {
	lang  string
	match func(code, trimmed []byte) bool
}

var patterns = []pattern{
	{"go", func(_, t []byte) bool {
		return bytes.HasPrefix(t, []byte("package ")) || bytes.Contains(t, []byte("func main() {"))
	}},
	{"python", func(c, _ []byte) bool {
		return (bytes.Contains(c, []byte("def ")) && bytes.Contains(c, []byte("):"))) ||
			bytes.Contains(c, []byte("__name__"))
	}},
	{"html", func(_, t []byte) bool {
		lower := bytes.ToLower(t)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
	}},
	{"json", func(_, t []byte) bool {
		return (bytes.HasPrefix(t, []byte("{")) && bytes.HasSuffix(t, []byte("}")) ||
			bytes.HasPrefix(t, []byte("[")) && bytes.HasSuffix(t, []byte("]"))) &&
			bytes.Contains(t, []byte(`":`))
	}},
	{"sql", func(_, t []byte) bool {
		upper := strings.ToUpper(string(t))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(c, _ []byte) bool {
		return bytes.Contains(c, []byte("fn main()")) || bytes.Contains(c, []byte("println!"))
	}},
	{"javascript", func(c, _ []byte) bool {
		return bytes.Contains(c, []byte("console.log")) || bytes.Contains(c, []byte("=> {"))
	}},
}

// Detect returns a lowercase language name for code, or "" when no guess is
// confident enough.
func Detect(code []byte) string {
	trimmed := bytes.TrimSpace(code)
	if len(trimmed) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return normalize(lang)
	}

	for _, p := range patterns {
		if p.match(code, trimmed) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(code, candidates); safe && lang != "" {
		return normalize(lang)
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	case "C#":
		return "csharp"
	}
	return strings.ToLower(lang)
}
