// Package analysis holds the SEO feature extractors. Text functions operate on
// plain strings; page functions operate on a parsed goquery document.
package analysis

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// nonWord matches every rune that is neither a word rune nor whitespace.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s\p{Z}]`)

// Normalizer lower-cases text with language-specific rules before stripping
// punctuation. The zero value uses language.Und.
type Normalizer struct {
	Lang language.Tag
}

// NewNormalizer parses a BCP 47 tag such as "id" or "en"; unknown or empty
// tags fall back to language.Und.
func NewNormalizer(tag string) Normalizer {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return Normalizer{Lang: language.Und}
	}
	return Normalizer{Lang: t}
}

// Clean lower-cases s, removes punctuation and collapses whitespace runs to a
// single space.
func (n Normalizer) Clean(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	s = cases.Lower(n.Lang).String(s)
	s = nonWord.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// CleanText is Normalizer{}.Clean.
func CleanText(s string) string {
	return Normalizer{Lang: language.Und}.Clean(s)
}

// WordCount counts whitespace-separated fields.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// FindSequence returns the 1-based token index of the first occurrence of
// keyword's tokens inside text, or -1. Both arguments are expected to be
// cleaned already. A keyword with no tokens is never found.
func FindSequence(text, keyword string) int {
	words := strings.Fields(text)
	kw := strings.Fields(keyword)
	if len(kw) == 0 {
		return -1
	}
	for i := 0; i+len(kw) <= len(words); i++ {
		if matchAt(words, kw, i) {
			return i + 1
		}
	}
	return -1
}

// KeywordDensity returns the share of text tokens covered by occurrences of
// keyword's token sequence, as a percentage rounded to 2 decimals. Every
// starting position is counted, so overlapping occurrences each count.
func KeywordDensity(text, keyword string) float64 {
	if text == "" || keyword == "" {
		return 0
	}
	words := strings.Fields(text)
	kw := strings.Fields(keyword)
	if len(words) == 0 || len(kw) == 0 {
		return 0
	}
	count := 0
	for i := 0; i+len(kw) <= len(words); i++ {
		if matchAt(words, kw, i) {
			count++
		}
	}
	return round2(float64(count) / float64(len(words)) * 100)
}

func matchAt(words, kw []string, i int) bool {
	for j := range kw {
		if words[i+j] != kw[j] {
			return false
		}
	}
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
