package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
)

// maxBodyBytes caps how much of a page we are willing to buffer before
// parsing. Anything larger is not a news article.
const maxBodyBytes = 4 << 20

type Scraper struct {
	logger     *slog.Logger
	httpClient *http.Client
	detector   lingua.LanguageDetector
}

func NewScraper(logger *slog.Logger, httpClient *http.Client) *Scraper {
	// GNews is asked for lang=en, but scraped pages can still turn out to be
	// localized shells or consent interstitials. Detect and drop those.
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.French,
			lingua.German,
			lingua.Spanish,
			lingua.Portuguese,
			lingua.Italian,
			lingua.Japanese,
		).
		Build()

	return &Scraper{
		logger:     logger,
		httpClient: httpClient,
		detector:   detector,
	}
}

// Extract downloads the page at rawURL and reduces it to readable plain text.
// Best effort only: any transport, content-type, or parse problem comes back
// as an error for the caller to treat as a per-article skip.
func (s *Scraper) Extract(ctx context.Context, rawURL string) (string, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse article url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	// Make the request look like a real browser to avoid blocks
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("article fetch returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "html") {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read article body: %w", err)
	}

	text, err := s.extractText(string(body), pageURL)
	if err != nil {
		return "", err
	}

	if lang, ok := s.detector.DetectLanguageOf(text); ok && lang != lingua.English {
		return "", fmt.Errorf("article body is %s, not english", lang)
	}

	s.logger.Debug("extracted article", "url", rawURL, "chars", len(text))
	return text, nil
}

// extractText strips non-content nodes with goquery, then lets readability
// pick out the main article body.
func (s *Scraper) extractText(raw string, pageURL *url.URL) (string, error) {
	cleaned := raw

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err == nil {
		doc.Find("script, style, noscript, iframe, embed, object, nav, header, footer, aside").Remove()
		doc.Find("[class*='social'], [class*='share'], [class*='comment'], [id*='comment']").Remove()
		if html, err := doc.Html(); err == nil && html != "" {
			cleaned = html
		}
	}

	article, err := readability.FromReader(strings.NewReader(cleaned), pageURL)
	if err != nil {
		return "", fmt.Errorf("parse article: %w", err)
	}

	text := normalizeWhitespace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no readable content")
	}

	return text, nil
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			blank = true
			continue
		}
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, strings.Join(strings.Fields(line), " "))
	}
	return strings.Join(out, "\n")
}
