package analysis

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MetaDescription returns the content of <meta name="description">, or "".
func MetaDescription(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find(`meta[name="description"]`).First().AttrOr("content", ""))
}

// Headings lists the h2 and h3 texts of the main content block.
type Headings struct {
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
}

// ExtractHeadings picks the element with the most direct <p> children as the
// main content block (the first one wins on ties) and collects its h2 and h3
// texts in document order.
func ExtractHeadings(doc *goquery.Document) Headings {
	h := Headings{H2: []string{}, H3: []string{}}
	var root *goquery.Selection
	best := -1
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if n := s.ChildrenFiltered("p").Length(); n > best {
			best = n
			root = s
		}
	})
	if root == nil {
		return h
	}
	root.Find("h2").Each(func(_ int, s *goquery.Selection) {
		h.H2 = append(h.H2, headingText(s))
	})
	root.Find("h3").Each(func(_ int, s *goquery.Selection) {
		h.H3 = append(h.H3, headingText(s))
	})
	return h
}

func headingText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

var (
	excludedImageClasses = []string{"logo", "icon", "ad"}
	excludedImageSrc     = []string{"logo", "icon", "spacer"}
)

// ContentImages lists the <img src> values inside the cleaned content HTML,
// skipping logos, icons, ads and spacers. topImage is prepended when it is
// set and not already listed.
func ContentImages(contentHTML, topImage string) []string {
	images := []string{}
	if strings.TrimSpace(contentHTML) != "" {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
		if err == nil {
			doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
				src, _ := s.Attr("src")
				if hasAnyClass(s.AttrOr("class", ""), excludedImageClasses) {
					return
				}
				lower := strings.ToLower(src)
				for _, bad := range excludedImageSrc {
					if strings.Contains(lower, bad) {
						return
					}
				}
				images = append(images, src)
			})
		}
	}
	if topImage != "" && !contains(images, topImage) {
		images = append([]string{topImage}, images...)
	}
	return images
}

func hasAnyClass(class string, names []string) bool {
	for _, c := range strings.Fields(class) {
		for _, n := range names {
			if c == n {
				return true
			}
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// InternalLinks resolves every <a href> against pageURL and keeps the ones
// whose host equals the page host. Fragment-only and javascript: links are
// ignored. The result is de-duplicated and sorted.
func InternalLinks(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return []string{}
	}
	seen := map[string]struct{}{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Host != base.Host {
			return
		}
		seen[abs.String()] = struct{}{}
	})
	links := make([]string, 0, len(seen))
	for l := range seen {
		links = append(links, l)
	}
	sort.Strings(links)
	return links
}
