// Package search implements approximate text matching for cross-entity
// marketplace search: a fuzzy regex pattern builder and a tiered relevance
// scorer. Everything here is a pure function over the query string.
package search

import (
	"regexp"
	"strings"
)

// Score values per match tier, in strictly descending specificity.
const (
	ScoreExactMatch       = 100
	ScoreStartsWith       = 75
	ScoreContainsPhrase   = 50
	ScoreContainsAllWords = 25
	ScoreContainsAnyWord  = 10
)

// Normalize escapes regex metacharacters and collapses runs of whitespace
// into single spaces.
func Normalize(query string) string {
	escaped := regexp.QuoteMeta(strings.TrimSpace(query))
	return strings.Join(strings.Fields(escaped), " ")
}

// Words splits a normalized query into its words
func Words(query string) []string {
	return strings.Fields(Normalize(query))
}

// FuzzyPattern builds the case-insensitive interleaved regex for a
// single-word query, tolerating characters between each letter
// ("cat" -> c.*a.*t). Multi-word queries have no regex form here; their
// every-word-in-any-order conjunction lives in Matcher, since Go's RE2
// engine has no lookaheads to express it.
// The function is pure: the same word always yields the same pattern.
func FuzzyPattern(word string) string {
	words := Words(word)
	if len(words) == 0 {
		return ""
	}
	letters := strings.Split(words[0], "")
	return "(?i)" + strings.Join(letters, ".*")
}

// Matcher decides whether a field value approximately matches a query.
// A single-word query matches values containing the word's letters in
// order with anything between them; a multi-word query matches values
// containing every word, in any order.
type Matcher struct {
	re    *regexp.Regexp
	words []string
}

// NewMatcher builds a Matcher for the query. Returns nil when the query
// has no words.
func NewMatcher(query string) *Matcher {
	normalized := Words(query)
	if len(normalized) == 0 {
		return nil
	}

	if len(normalized) == 1 {
		re, err := regexp.Compile(FuzzyPattern(query))
		if err != nil {
			return nil
		}
		return &Matcher{re: re}
	}

	// Containment checks need the raw words, not the regex-escaped ones.
	return &Matcher{words: strings.Fields(strings.ToLower(strings.TrimSpace(query)))}
}

// MatchString reports whether the value matches the query
func (m *Matcher) MatchString(value string) bool {
	if m.re != nil {
		return m.re.MatchString(value)
	}
	return containsAll(strings.ToLower(value), m.words)
}

// LikePatterns builds SQL LIKE patterns for candidate recall, mirroring
// FuzzyPattern's recall semantics: a single word becomes an interleaved
// %c%a%t% pattern, a multi-word query one %word% pattern per word (OR'd by
// the repository so the any-word tier can still match).
func LikePatterns(query string) []string {
	words := Words(query)
	if len(words) == 0 {
		return nil
	}

	if len(words) == 1 {
		letters := strings.Split(words[0], "")
		return []string{"%" + strings.Join(letters, "%") + "%"}
	}

	patterns := make([]string, len(words))
	for idx, word := range words {
		patterns[idx] = "%" + word + "%"
	}
	return patterns
}

// FieldScore computes the relevance score of one field value against the
// query. Tiers are tested from most to least specific and the first match
// wins: an exact field is 100, not 100 plus every weaker tier it also
// satisfies. Relevance compounds across fields, never within one.
func FieldScore(query, value string) int {
	q := strings.ToLower(strings.Join(strings.Fields(strings.TrimSpace(query)), " "))
	v := strings.ToLower(value)
	if q == "" || v == "" {
		return 0
	}

	words := strings.Fields(q)

	switch {
	case v == q:
		return ScoreExactMatch
	case strings.HasPrefix(v, q):
		return ScoreStartsWith
	case strings.Contains(v, q):
		return ScoreContainsPhrase
	case containsAll(v, words):
		return ScoreContainsAllWords
	case containsAny(v, words):
		return ScoreContainsAnyWord
	}
	return 0
}

// Score sums FieldScore across all target fields of a document
func Score(query string, fields []string) int {
	total := 0
	for _, field := range fields {
		total += FieldScore(query, field)
	}
	return total
}

func containsAll(value string, words []string) bool {
	for _, word := range words {
		if !strings.Contains(value, word) {
			return false
		}
	}
	return len(words) > 0
}

func containsAny(value string, words []string) bool {
	for _, word := range words {
		if strings.Contains(value, word) {
			return true
		}
	}
	return false
}
