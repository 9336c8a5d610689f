// Package filter detects and masks disallowed words in user-submitted text.
package filter

import (
	"bufio"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// WordSet is an immutable set of lower-cased disallowed tokens. It is safe for
// concurrent use once built.
type WordSet struct {
	words map[string]struct{}
}

// NewWordSet builds a set from the given words, normalising each the same way Load does
func NewWordSet(words ...string) WordSet {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			set[w] = struct{}{}
		}
	}
	return WordSet{words: set}
}

// Load parses a newline-delimited word list. Lines are trimmed and lower-cased;
// blank lines are skipped.
func Load(r io.Reader) (WordSet, error) {
	set := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return WordSet{}, err
	}
	return WordSet{words: set}, nil
}

// LoadFile reads the word list at path. A missing or unreadable file is not
// fatal: it is logged and an empty set is returned, which disables filtering.
func LoadFile(path string, log *zap.Logger) WordSet {
	f, err := os.Open(path)
	if err != nil {
		log.Warn("could not load word list, filtering disabled", zap.String("path", path), zap.Error(err))
		return WordSet{}
	}
	defer f.Close()

	set, err := Load(f)
	if err != nil {
		log.Warn("could not read word list, filtering disabled", zap.String("path", path), zap.Error(err))
		return WordSet{}
	}
	log.Info("word list loaded", zap.String("path", path), zap.Int("words", set.Len()))
	return set
}

// Len returns the number of distinct words
func (s WordSet) Len() int {
	return len(s.words)
}

// Has reports whether token, case-folded, is disallowed
func (s WordSet) Has(token string) bool {
	if len(s.words) == 0 {
		return false
	}
	_, ok := s.words[strings.ToLower(token)]
	return ok
}
