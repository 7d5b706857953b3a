package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/goseo/internal/aggregate"
)

// WritePDF renders a printable per-keyword summary of rep. Only rows are
// tabulated; keywords without rows list their status instead.
func WritePDF(path string, rep *aggregate.Report, rows []Row) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 9)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "SEO analysis", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if rep != nil {
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Analyzed at %s. %s.",
			rep.AnalyzedAt.Format("2006-01-02 15:04 MST"), rep.Summary())), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	byKeyword := map[string][]Row{}
	for _, r := range rows {
		byKeyword[r.Keyword] = append(byKeyword[r.Keyword], r)
	}

	headers := []string{"#", "Title", "Words", "Density", "Pos", "Links", "H2", "H3", "Img", "Refs"}
	widths := []float64{10, 135, 18, 18, 14, 14, 12, 12, 12, 12}

	var results []aggregate.KeywordResult
	if rep != nil {
		results = rep.Results
	}
	for _, kr := range results {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(kr.Keyword), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		kw := byKeyword[kr.Keyword]
		if len(kw) == 0 {
			msg := "No analyzed articles (" + kr.Status + ")"
			if kr.Error != "" {
				msg += ": " + kr.Error
			}
			pdf.MultiCell(0, 5, tr(msg), "", "L", false)
			pdf.Ln(2)
			continue
		}
		pdf.SetFont("Helvetica", "B", 9)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		for _, r := range kw {
			cells := []string{
				fmt.Sprint(r.Position),
				truncate(r.Title, 80),
				fmt.Sprint(r.ContentWordCount),
				fmt.Sprintf("%.2f%%", r.KeywordDensity),
				fmt.Sprint(r.FirstKeywordPosition),
				fmt.Sprint(r.InternalLinks),
				fmt.Sprint(r.H2Count),
				fmt.Sprint(r.H3Count),
				fmt.Sprint(r.ImageCount),
				fmt.Sprint(r.ReferenceCount),
			}
			for i, c := range cells {
				align := "R"
				if i == 1 {
					align = "L"
				}
				link := ""
				if i == 1 {
					link = r.URL
				}
				pdf.CellFormat(widths[i], 6, tr(c), "1", 0, align, false, 0, link)
			}
			pdf.Ln(-1)
		}
		pdf.Ln(3)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	return pdf.OutputFileAndClose(path)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
