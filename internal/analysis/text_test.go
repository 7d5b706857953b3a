package analysis_test

import (
	"testing"

	"github.com/hyperifyio/goseo/internal/analysis"
	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and strips punctuation", "Cara Membuat Website: Panduan (Lengkap)!", "cara membuat website panduan lengkap"},
		{"collapses whitespace", "  satu\t\tdua \n\n tiga  ", "satu dua tiga"},
		{"keeps digits and underscore", "Top_10 tips, 2024.", "top_10 tips 2024"},
		{"keeps non-latin letters", "Café — naïve", "café naïve"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, analysis.CleanText(tc.in))
		})
	}
}

func TestNormalizer_TurkishDotlessI(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ıstanbul", analysis.NewNormalizer("tr").Clean("ISTANBUL"))
	assert.Equal(t, "istanbul", analysis.NewNormalizer("id").Clean("ISTANBUL"))
	assert.Equal(t, "istanbul", analysis.NewNormalizer("not a tag!").Clean("ISTANBUL"))
}

func TestWordCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, analysis.WordCount(""))
	assert.Equal(t, 0, analysis.WordCount("   "))
	assert.Equal(t, 4, analysis.WordCount(" Cara membuat\nwebsite  mudah "))
}

func TestFindSequence(t *testing.T) {
	t.Parallel()

	text := "panduan cara membuat website dan cara membuat blog"
	assert.Equal(t, 2, analysis.FindSequence(text, "cara membuat"))
	assert.Equal(t, 1, analysis.FindSequence(text, "panduan"))
	assert.Equal(t, 4, analysis.FindSequence(text, "website"))
	assert.Equal(t, 6, analysis.FindSequence(text, "cara membuat blog"))
	assert.Equal(t, -1, analysis.FindSequence(text, "membuat toko"))
	assert.Equal(t, -1, analysis.FindSequence(text, ""))
	assert.Equal(t, -1, analysis.FindSequence("", "cara"))
	// Token match, not substring match.
	assert.Equal(t, -1, analysis.FindSequence("websites", "website"))
	// Keyword longer than text.
	assert.Equal(t, -1, analysis.FindSequence("cara", "cara membuat"))
}

func TestKeywordDensity(t *testing.T) {
	t.Parallel()

	t.Run("single token", func(t *testing.T) {
		t.Parallel()
		// 2 of 8 tokens.
		assert.Equal(t, 25.0, analysis.KeywordDensity("seo tips seo guide for every web fan", "seo"))
	})
	t.Run("multi token sequence", func(t *testing.T) {
		t.Parallel()
		text := "cara membuat website cara membuat website mudah"
		// 2 occurrences / 7 tokens = 28.571...
		assert.Equal(t, 28.57, analysis.KeywordDensity(text, "cara membuat website"))
	})
	t.Run("overlapping occurrences each count", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 50.0, analysis.KeywordDensity("a a a b", "a a"))
	})
	t.Run("rounds to two decimals", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 33.33, analysis.KeywordDensity("x y z", "x"))
	})
	t.Run("empty inputs", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, analysis.KeywordDensity("", "x"))
		assert.Equal(t, 0.0, analysis.KeywordDensity("x y", ""))
		assert.Equal(t, 0.0, analysis.KeywordDensity("x y", "z"))
	})
}
