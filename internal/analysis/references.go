package analysis

import (
	"regexp"
	"strings"
)

// DefaultReferencePatterns detect attribution phrases in Indonesian and
// English sentences. A phrase counts when it starts at a word boundary and is
// followed by whitespace and a word rune, letters outside ASCII included.
var DefaultReferencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(mengutip(?: dari)?|dikutip(?: dari)?|dilansir(?: dari)?|lansir|menurut|dihimpun dari|berdasarkan data dari)\s+(?:(?:situs resmi|buku|jurnal)\s+)?[\p{L}\p{N}_]`),
	regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(according to|cited from|quoted from|reported by|based on data from)\s+[\p{L}\p{N}_]`),
}

var sentenceSplit = regexp.MustCompile(`[.\n]`)

// References is the outcome of reference-sentence detection.
type References struct {
	Count     int      `json:"count"`
	Sentences []string `json:"sentences"`
}

// FindReferences splits text on periods and newlines and returns the
// sentences that match any of patterns (DefaultReferencePatterns when nil).
// Matching is done on the lower-cased sentence.
func FindReferences(text string, patterns []*regexp.Regexp) References {
	if patterns == nil {
		patterns = DefaultReferencePatterns
	}
	refs := References{Sentences: []string{}}
	for _, sentence := range sentenceSplit.Split(text, -1) {
		lower := strings.ToLower(sentence)
		for _, p := range patterns {
			if p.MatchString(lower) {
				refs.Sentences = append(refs.Sentences, strings.TrimSpace(sentence))
				break
			}
		}
	}
	refs.Count = len(refs.Sentences)
	return refs
}

// CompilePatterns compiles extra attribution patterns from configuration.
func CompilePatterns(exprs []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		re, err := regexp.Compile(e)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}
