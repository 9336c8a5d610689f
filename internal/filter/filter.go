package filter

import "strings"

// Mask replaces every disallowed token
const Mask = "****"

// MaxWords is the word ceiling shared by posts, comments and messages
const MaxWords = 50

func isAlnum(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// scan calls fn with the byte bounds of every maximal run of ASCII letters and digits
func scan(text string, fn func(start, end int) bool) {
	for i := 0; i < len(text); {
		if !isAlnum(text[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(text) && isAlnum(text[j]) {
			j++
		}
		if !fn(i, j) {
			return
		}
		i = j
	}
}

// Tokens returns the maximal ASCII alphanumeric runs of text in order
func Tokens(text string) []string {
	var out []string
	scan(text, func(start, end int) bool {
		out = append(out, text[start:end])
		return true
	})
	return out
}

// ContainsDisallowed reports whether any token of text is in words.
// A disallowed word embedded in a longer alphanumeric run does not match.
func ContainsDisallowed(text string, words WordSet) bool {
	if words.Len() == 0 {
		return false
	}
	found := false
	scan(text, func(start, end int) bool {
		found = words.Has(text[start:end])
		return !found
	})
	return found
}

// Redact replaces each disallowed token with Mask and reports how many were
// replaced. Everything between tokens passes through unchanged.
func Redact(text string, words WordSet) (string, int) {
	if words.Len() == 0 {
		return text, 0
	}
	var b strings.Builder
	last, n := 0, 0
	scan(text, func(start, end int) bool {
		if words.Has(text[start:end]) {
			b.WriteString(text[last:start])
			b.WriteString(Mask)
			last = end
			n++
		}
		return true
	})
	if n == 0 {
		return text, 0
	}
	b.WriteString(text[last:])
	return b.String(), n
}

// WordCount counts whitespace-delimited words
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// WithinLimit reports whether text has at most MaxWords words, along with the count
func WithinLimit(text string) (int, bool) {
	n := WordCount(text)
	return n, n <= MaxWords
}
