package fetch

import (
	"strings"
	"testing"
)

func TestExtractArticle_SelectorPriority(t *testing.T) {
	src := `<html><head><title>Page Title</title></head><body>
		<nav><p>navigation junk</p></nav>
		<article>
			<p>First story paragraph.</p>
			<p>Second story paragraph.</p>
		</article>
	</body></html>`

	article, err := ExtractArticle(src, "https://example.com/story", 0)
	if err != nil {
		t.Fatalf("ExtractArticle failed: %v", err)
	}

	if article.Title != "Page Title" {
		t.Errorf("title = %q", article.Title)
	}
	if !strings.Contains(article.Content, "First story paragraph.") ||
		!strings.Contains(article.Content, "Second story paragraph.") {
		t.Errorf("content = %q", article.Content)
	}
	if strings.Contains(article.Content, "navigation junk") {
		t.Error("nav content leaked into the article body")
	}
	if article.URL != "https://example.com/story" {
		t.Errorf("url = %q", article.URL)
	}
}

func TestExtractArticle_H1TitleFallback(t *testing.T) {
	src := `<html><body><h1>Headline Only</h1><p>Body text here.</p></body></html>`

	article, err := ExtractArticle(src, "https://example.com", 0)
	if err != nil {
		t.Fatalf("ExtractArticle failed: %v", err)
	}
	if article.Title != "Headline Only" {
		t.Errorf("title = %q, want h1 fallback", article.Title)
	}
}

func TestExtractArticle_AnyParagraphFallback(t *testing.T) {
	src := `<html><body><div><p>Loose paragraph one.</p><p>Loose paragraph two.</p></div></body></html>`

	article, err := ExtractArticle(src, "", 0)
	if err != nil {
		t.Fatalf("ExtractArticle failed: %v", err)
	}
	if !strings.Contains(article.Content, "Loose paragraph one.") {
		t.Errorf("content = %q", article.Content)
	}
}

func TestExtractArticle_StripTagsFallback(t *testing.T) {
	src := `<html><body>
		<script>var x = "should not appear";</script>
		<style>.hidden { display: none }</style>
		<div>Bare text outside any paragraph.</div>
	</body></html>`

	article, err := ExtractArticle(src, "", 0)
	if err != nil {
		t.Fatalf("ExtractArticle failed: %v", err)
	}
	if !strings.Contains(article.Content, "Bare text outside any paragraph.") {
		t.Errorf("content = %q", article.Content)
	}
	if strings.Contains(article.Content, "should not appear") {
		t.Error("script body leaked into content")
	}
	if strings.Contains(article.Content, "display: none") {
		t.Error("style body leaked into content")
	}
}

func TestExtractArticle_NoContent(t *testing.T) {
	_, err := ExtractArticle(`<html><body><script>only code</script></body></html>`, "", 0)
	if err == nil {
		t.Fatal("expected error for a page with no text")
	}
}

func TestExtractArticle_Truncation(t *testing.T) {
	long := strings.Repeat("word ", 100)
	src := "<html><body><p>" + long + "</p></body></html>"

	article, err := ExtractArticle(src, "", 50)
	if err != nil {
		t.Fatalf("ExtractArticle failed: %v", err)
	}
	if len(article.Content) > 50 {
		t.Errorf("content length = %d, want <= 50", len(article.Content))
	}
}

func TestTruncateRunes_RuneBoundary(t *testing.T) {
	s := "héllo wörld, multibyte content here"
	got := truncateRunes(s, 10)
	if len(got) > 10 {
		t.Errorf("length = %d, want <= 10", len(got))
	}
	if !strings.HasPrefix(s, got) {
		t.Errorf("truncation split a rune: %q", got)
	}
	if truncateRunes("short", 0) != "short" {
		t.Error("zero budget must mean unbounded")
	}
}

func TestWhitespaceCollapse(t *testing.T) {
	src := "<html><body><p>spaced   \n\n  out\ttext</p></body></html>"

	article, err := ExtractArticle(src, "", 0)
	if err != nil {
		t.Fatalf("ExtractArticle failed: %v", err)
	}
	if article.Content != "spaced out text" {
		t.Errorf("content = %q, want collapsed whitespace", article.Content)
	}
}
