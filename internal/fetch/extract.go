package fetch

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Selectors tried in order when looking for the article body. Most news
// sites wrap the story text in one of these containers.
var contentSelectors = []string{
	"article p",
	".article-content p",
	".post-content p",
	".entry-content p",
	".content p",
	"main p",
	".story-body p",
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// Article is the title and body text extracted from an HTML page.
type Article struct {
	Title   string
	Content string
	URL     string
}

// ExtractArticle pulls the title and readable body text out of raw HTML.
// It tries the known article selectors first, then any paragraph, then
// falls back to stripping every tag. maxChars bounds the content length;
// zero means unbounded. A page with no textual content is an error.
func ExtractArticle(htmlSrc, pageURL string, maxChars int) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	var content string
	for _, selector := range contentSelectors {
		paragraphs := doc.Find(selector)
		if paragraphs.Length() == 0 {
			continue
		}
		parts := make([]string, 0, paragraphs.Length())
		paragraphs.Each(func(_ int, s *goquery.Selection) {
			parts = append(parts, s.Text())
		})
		content = strings.Join(parts, " ")
		break
	}

	if strings.TrimSpace(content) == "" {
		parts := make([]string, 0, 16)
		doc.Find("p").Each(func(_ int, s *goquery.Selection) {
			parts = append(parts, s.Text())
		})
		content = strings.Join(parts, " ")
	}

	if strings.TrimSpace(content) == "" {
		content = stripTags(htmlSrc)
	}

	content = strings.TrimSpace(whitespacePattern.ReplaceAllString(content, " "))
	if content == "" {
		return nil, fmt.Errorf("no textual content found")
	}
	content = truncateRunes(content, maxChars)

	return &Article{
		Title:   title,
		Content: content,
		URL:     pageURL,
	}, nil
}

// stripTags removes every tag from the document, skipping script and
// style bodies.
func stripTags(src string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(src))
	var sb strings.Builder
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				sb.Write(tokenizer.Text())
				sb.WriteByte(' ')
			}
		}
	}
}

// truncateRunes cuts the string at maxChars bytes without splitting a
// rune.
func truncateRunes(s string, maxChars int) string {
	if maxChars <= 0 || len(s) <= maxChars {
		return s
	}
	cut := maxChars
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut])
}
