package cleaner

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	tagPattern   = regexp.MustCompile("<[^>]*>")
	spacePattern = regexp.MustCompile(`[ \t]+`)
	blankLines   = regexp.MustCompile(`\n{3,}`)
)

type Cleaner struct{}

func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// LooksLikeHTML reports whether s carries markup worth stripping.
func LooksLikeHTML(s string) bool {
	return tagPattern.MatchString(s)
}

const blockElements = "p, div, li, ul, ol, h1, h2, h3, h4, h5, h6, section, article, blockquote, pre, table, tr"

// CleanHTML turns a job description with markup into plain text. All visible
// text is kept in document order; block elements become paragraph breaks.
// Plain text passes through with whitespace normalised.
func (c *Cleaner) CleanHTML(html string) string {
	if !LooksLikeHTML(html) {
		return cleanText(html)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return stripTags(html)
	}
	doc.Find("script, style, noscript, iframe, template").Remove()

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockElements).Each(func(i int, s *goquery.Selection) {
		s.PrependHtml("\n\n")
		s.AppendHtml("\n\n")
	})

	return cleanText(doc.Find("body").Text())
}

// CleanLlmResponse removes markdown code fences models like to wrap JSON in.
func (c *Cleaner) CleanLlmResponse(response string) string {
	if !strings.Contains(response, "```") {
		return strings.TrimSpace(response)
	}

	start := -1
	if strings.Contains(response, "```json") {
		start = strings.Index(response, "```json") + 7
	} else {
		start = strings.Index(response, "```") + 3
	}

	end := strings.LastIndex(response, "```")

	if start != -1 && end != -1 && end > start {
		return strings.TrimSpace(response[start:end])
	}

	return strings.TrimSpace(response)
}

func stripTags(html string) string {
	return cleanText(tagPattern.ReplaceAllString(html, " "))
}

func cleanText(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(spacePattern.ReplaceAllString(l, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
