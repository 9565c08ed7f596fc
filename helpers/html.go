package helpers

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	lineSpaceRegex = regexp.MustCompile(`[^\S\n]+`)

	// Elements whose end starts a new line in the extracted text.
	blockSelector = "p, div, li, br, h1, h2, h3, h4, h5, h6, blockquote, tr, td, th"
)

// StripMarkup removes HTML tags from a string and decodes entities. Line
// breaks survive; block elements end a line and blank lines are dropped.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return NormalizeLines(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return NormalizeLines(s)
	}

	doc.Find("script, style").Remove()
	for _, n := range doc.Find(blockSelector).Nodes {
		if n.Parent != nil {
			n.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: "\n"}, n.NextSibling)
		}
	}

	return NormalizeLines(doc.Text())
}

// NormalizeLines collapses whitespace within each line, trims every line
// and drops the empty ones.
func NormalizeLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(lineSpaceRegex.ReplaceAllString(line, " ")); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
