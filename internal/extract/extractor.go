package extract

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// ErrEmptyDocument is returned when a page body has nothing to parse.
var ErrEmptyDocument = errors.New("empty document")

// Article is the parsed form of one fetched page.
type Article struct {
	URL         string
	Title       string
	Text        string
	Authors     []string
	PublishDate *time.Time
	TopImage    string
	// HTML is the raw page as fetched.
	HTML []byte
	// ContentHTML is the cleaned main-content HTML produced by readability,
	// empty when readability could not isolate one.
	ContentHTML string
}

// Extractor turns a fetched page into an Article.
type Extractor interface {
	Extract(pageURL string, body []byte) (Article, error)
}

// ArticleExtractor combines trafilatura (title, text, metadata), readability
// (clean content HTML, byline, lead image) and the FromHTML heuristic as a
// last resort. Only a page that none of them can read is an error.
type ArticleExtractor struct{}

func (ArticleExtractor) Extract(pageURL string, body []byte) (Article, error) {
	return Parse(pageURL, body)
}

// Parse extracts an Article from body fetched from pageURL.
func Parse(pageURL string, body []byte) (Article, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Article{}, ErrEmptyDocument
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("parse url: %w", err)
	}
	a := Article{URL: pageURL, HTML: body}

	traf, trafErr := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
		EnableFallback: true,
		OriginalURL:    u,
	})
	if trafErr == nil && traf != nil {
		a.Title = strings.TrimSpace(traf.Metadata.Title)
		a.Text = strings.TrimSpace(traf.ContentText)
		a.Authors = splitAuthors(traf.Metadata.Author)
		if !traf.Metadata.Date.IsZero() {
			d := traf.Metadata.Date
			a.PublishDate = &d
		}
		a.TopImage = strings.TrimSpace(traf.Metadata.Image)
	}

	read, readErr := readability.FromReader(bytes.NewReader(body), u)
	if readErr == nil {
		a.ContentHTML = read.Content
		if a.Title == "" {
			a.Title = strings.TrimSpace(read.Title)
		}
		if a.Text == "" {
			a.Text = strings.TrimSpace(read.TextContent)
		}
		if len(a.Authors) == 0 {
			a.Authors = splitAuthors(read.Byline)
		}
		if a.TopImage == "" {
			a.TopImage = strings.TrimSpace(read.Image)
		}
	}

	if a.ContentHTML == "" && trafErr == nil && traf != nil && traf.ContentNode != nil {
		if rendered, err := renderNode(traf.ContentNode); err == nil {
			a.ContentHTML = rendered
		}
	}

	if trafErr != nil && readErr != nil {
		doc := FromHTML(body)
		if doc.Title == "" && doc.Text == "" {
			return Article{}, fmt.Errorf("extract article: %w", errors.Join(trafErr, readErr))
		}
		a.Title = doc.Title
		a.Text = doc.Text
	}
	if a.Authors == nil {
		a.Authors = []string{}
	}
	return a, nil
}

// splitAuthors splits trafilatura's "; "-joined author list.
func splitAuthors(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// renderNode converts an html.Node back to markup.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
