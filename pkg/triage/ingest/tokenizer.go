package ingest

import "strings"

// MinTokenLen is the shortest token Tokenize keeps.
const MinTokenLen = 3

// FullText joins a report's title and description the way every analysis
// module sees them: separated by one space and lower-cased.
func FullText(title, description string) string {
	return strings.ToLower(title + " " + description)
}

// Tokenize lower-cases text and splits it into word tokens.
//
// A word character is an ASCII letter, digit or underscore. Every other rune
// (punctuation, whitespace, non-ASCII letters) separates tokens. Tokens shorter
// than MinTokenLen are dropped. Order and duplicates are preserved because
// repeated keywords count again during scoring.
func Tokenize(text string) []string {
	tokens := make([]string, 0, len(text)/6)
	var current strings.Builder

	flush := func() {
		if current.Len() >= MinTokenLen {
			tokens = append(tokens, current.String())
		}
		current.Reset()
	}

	for _, r := range strings.ToLower(text) {
		if isWordRune(r) {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// IsWordToken reports whether s would survive Tokenize unchanged as a single
// token. Lexicon lint uses it to find keywords that can never match.
func IsWordToken(s string) bool {
	if len(s) < MinTokenLen {
		return false
	}
	for _, r := range s {
		if !isWordRune(r) {
			return false
		}
	}
	return s == strings.ToLower(s)
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	}
	return false
}
