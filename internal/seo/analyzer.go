package seo

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goseo/internal/analysis"
	"github.com/hyperifyio/goseo/internal/extract"
)

// Getter downloads one page.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

// Analyzer fetches an article once and runs every feature extractor over the
// same body.
type Analyzer struct {
	Fetcher   Getter
	Extractor extract.Extractor
	// Normalizer controls language-aware lower-casing; zero value is fine.
	Normalizer analysis.Normalizer
	// ReferencePatterns overrides analysis.DefaultReferencePatterns when set.
	ReferencePatterns []*regexp.Regexp
}

// Analyze never fails: fetch and parse errors are recorded in Analysis.Error
// and the remaining fields keep their defaults.
func (a *Analyzer) Analyze(ctx context.Context, url, keyword string) Analysis {
	res := newAnalysis(url, keyword)

	if a.Fetcher == nil {
		res.Error = "failed to analyze article: fetcher not configured"
		return res
	}
	body, _, err := a.Fetcher.Get(ctx, url)
	if err != nil {
		res.Error = fmt.Sprintf("failed to analyze article: %v", err)
		return res
	}
	ex := a.Extractor
	if ex == nil {
		ex = extract.ArticleExtractor{}
	}
	art, err := ex.Extract(url, body)
	if err != nil {
		res.Error = fmt.Sprintf("failed to analyze article: %v", err)
		return res
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		res.Error = fmt.Sprintf("failed to analyze article: parse html: %v", err)
		return res
	}
	a.fill(&res, art, doc)
	return res
}

func (a *Analyzer) fill(res *Analysis, art extract.Article, doc *goquery.Document) {
	res.Title = art.Title
	res.TitleWordCount = analysis.WordCount(art.Title)
	if len(art.Authors) > 0 {
		res.Authors = art.Authors
	}
	if art.PublishDate != nil {
		s := art.PublishDate.Format(time.RFC3339)
		res.PublishDate = &s
	}
	res.Text = art.Text
	res.TextWordCount = analysis.WordCount(art.Text)
	res.TopImage = art.TopImage

	keyword := a.Normalizer.Clean(res.Keyword)
	res.KeywordPositionInTitle = analysis.FindSequence(a.Normalizer.Clean(art.Title), keyword)

	res.MetaDescription = analysis.MetaDescription(doc)
	res.MetaWordCount = analysis.WordCount(res.MetaDescription)

	text := a.Normalizer.Clean(art.Text)
	res.KeywordDensity = analysis.KeywordDensity(text, keyword)
	res.FirstKeywordPosition = analysis.FindSequence(text, keyword)

	res.InternalLinks = analysis.InternalLinks(doc, res.URL)
	res.InternalLinkCount = len(res.InternalLinks)

	headings := analysis.ExtractHeadings(doc)
	if headings.H2 != nil {
		res.H2Headings = headings.H2
	}
	if headings.H3 != nil {
		res.H3Headings = headings.H3
	}
	res.H2Count, res.H3Count = len(res.H2Headings), len(res.H3Headings)

	res.Images = analysis.ContentImages(art.ContentHTML, art.TopImage)
	res.ImageCount = len(res.Images)

	refs := analysis.FindReferences(art.Text, a.ReferencePatterns)
	res.ReferenceCount = refs.Count
	res.ReferenceSentences = refs.Sentences

	log.Debug().Str("url", res.URL).Int("words", res.TextWordCount).Float64("density", res.KeywordDensity).Msg("analyzed article")
}
