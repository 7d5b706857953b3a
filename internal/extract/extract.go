package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Document is the result of the heuristic DOM walk used when the article
// extractors give up.
type Document struct {
	Title string
	Text  string
}

// FromHTML extracts readable text from HTML, preferring <article> or <main>,
// falling back to <body>. Paragraph, heading and list-item boundaries become
// newlines; navigation, scripts and consent banners are skipped.
func FromHTML(input []byte) Document {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil || node == nil {
		return Document{}
	}

	title := strings.TrimSpace(findTitle(node))
	var content *html.Node
	for _, tag := range []string{"article", "main", "body"} {
		if content = findFirst(node, tag); content != nil {
			break
		}
	}
	var b strings.Builder
	if content != nil {
		collectText(&b, content)
	}
	return Document{Title: title, Text: normalizeWhitespace(b.String())}
}

func findTitle(n *html.Node) string {
	head := findFirst(n, "head")
	if head == nil {
		return ""
	}
	if t := findFirst(head, "title"); t != nil && t.FirstChild != nil {
		return t.FirstChild.Data
	}
	return ""
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if res := findFirst(c, tag); res != nil {
			return res
		}
	}
	return nil
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		if isBoilerplateContainer(n) {
			return
		}
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "nav", "header", "footer", "aside", "iframe", "form":
			return
		case "br", "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "blockquote":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(strings.NewReplacer("\t", " ", "\r", " ").Replace(n.Data))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
			b.WriteString("\n\n")
		case "li":
			b.WriteString("\n")
		}
	}
}

// isBoilerplateContainer returns true if the element looks like a cookie,
// consent or share widget.
func isBoilerplateContainer(n *html.Node) bool {
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if key != "id" && key != "class" && key != "role" && key != "aria-label" {
			continue
		}
		val := strings.ToLower(attr.Val)
		for _, marker := range []string{"cookie", "consent", "gdpr", "share-buttons", "social-share"} {
			if strings.Contains(val, marker) {
				return true
			}
		}
	}
	return false
}

// normalizeWhitespace collapses runs of spaces and keeps at most one blank
// line between paragraphs.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			continue
		}
		out = append(out, strings.Join(fields, " "))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
