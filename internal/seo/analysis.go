// Package seo analyzes one search-result article for a keyword.
package seo

// Analysis is the per-article SEO record. Every field has a usable default so
// a failed analysis still serializes to a complete object with Error set.
type Analysis struct {
	URL                    string   `json:"url"`
	Keyword                string   `json:"keyword"`
	Error                  string   `json:"error,omitempty"`
	Title                  string   `json:"title"`
	TitleWordCount         int      `json:"title_word_count"`
	KeywordPositionInTitle int      `json:"keyword_position_in_title"`
	MetaDescription        string   `json:"meta_description"`
	MetaWordCount          int      `json:"meta_word_count"`
	Text                   string   `json:"text"`
	TextWordCount          int      `json:"text_word_count"`
	KeywordDensity         float64  `json:"keyword_density"`
	FirstKeywordPosition   int      `json:"first_keyword_position"`
	InternalLinks          []string `json:"internal_links"`
	InternalLinkCount      int      `json:"internal_link_count"`
	H2Headings             []string `json:"h2_headings"`
	H3Headings             []string `json:"h3_headings"`
	H2Count                int      `json:"h2_count"`
	H3Count                int      `json:"h3_count"`
	Images                 []string `json:"images"`
	ImageCount             int      `json:"image_count"`
	ReferenceCount         int      `json:"reference_count"`
	ReferenceSentences     []string `json:"reference_sentences"`
	Authors                []string `json:"authors"`
	PublishDate            *string  `json:"publish_date"`
	TopImage               string   `json:"top_image"`
}

// Failed reports whether the analysis carries an error.
func (a Analysis) Failed() bool { return a.Error != "" }

func newAnalysis(url, keyword string) Analysis {
	return Analysis{
		URL:                    url,
		Keyword:                keyword,
		KeywordPositionInTitle: -1,
		FirstKeywordPosition:   -1,
		InternalLinks:          []string{},
		H2Headings:             []string{},
		H3Headings:             []string{},
		Images:                 []string{},
		ReferenceSentences:     []string{},
		Authors:                []string{},
	}
}
