// Package export flattens a report into spreadsheet rows and writes them as
// XLSX and PDF.
package export

import (
	"sort"

	"github.com/hyperifyio/goseo/internal/aggregate"
	"github.com/hyperifyio/goseo/internal/analysis"
)

// Columns is the header row, in output order.
var Columns = []string{
	"Keyword",
	"Position Google",
	"Url",
	"Title",
	"Title Word Count",
	"first_keyword_position_on_title",
	"Meta Description",
	"meta_desc_word_count",
	"Content Word Count",
	"first_keyword_position",
	"Keyword Density",
	"Internal Links",
	"H2 Count",
	"H3 Count",
	"Image Count",
	"Book Source Count",
}

// Row is one successfully analyzed article.
type Row struct {
	Keyword                string
	Position               int
	URL                    string
	Title                  string
	TitleWordCount         int
	KeywordPositionInTitle int
	MetaDescription        string
	MetaWordCount          int
	ContentWordCount       int
	FirstKeywordPosition   int
	KeywordDensity         float64
	InternalLinks          int
	H2Count                int
	H3Count                int
	ImageCount             int
	ReferenceCount         int
}

// Values returns the cells of r in Columns order.
func (r Row) Values() []interface{} {
	return []interface{}{
		r.Keyword,
		r.Position,
		r.URL,
		r.Title,
		r.TitleWordCount,
		r.KeywordPositionInTitle,
		r.MetaDescription,
		r.MetaWordCount,
		r.ContentWordCount,
		r.FirstKeywordPosition,
		r.KeywordDensity,
		r.InternalLinks,
		r.H2Count,
		r.H3Count,
		r.ImageCount,
		r.ReferenceCount,
	}
}

// Rows flattens rep. Articles whose analysis failed are skipped. The result is
// sorted by keyword and then search rank; ties keep report order.
func Rows(rep *aggregate.Report) []Row {
	if rep == nil {
		return nil
	}
	rows := make([]Row, 0, 16)
	for _, kr := range rep.Results {
		for _, art := range kr.Articles {
			a := art.Analysis
			if a.Failed() {
				continue
			}
			rows = append(rows, Row{
				Keyword:                kr.Keyword,
				Position:               art.Rank,
				URL:                    a.URL,
				Title:                  a.Title,
				TitleWordCount:         a.TitleWordCount,
				KeywordPositionInTitle: a.KeywordPositionInTitle,
				MetaDescription:        a.MetaDescription,
				MetaWordCount:          analysis.WordCount(a.MetaDescription),
				ContentWordCount:       a.TextWordCount,
				FirstKeywordPosition:   a.FirstKeywordPosition,
				KeywordDensity:         a.KeywordDensity,
				InternalLinks:          a.InternalLinkCount,
				H2Count:                a.H2Count,
				H3Count:                a.H3Count,
				ImageCount:             a.ImageCount,
				ReferenceCount:         a.ReferenceCount,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Keyword != rows[j].Keyword {
			return rows[i].Keyword < rows[j].Keyword
		}
		return rows[i].Position < rows[j].Position
	})
	return rows
}
