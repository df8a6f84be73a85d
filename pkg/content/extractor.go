package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blog-backlinks/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// ErrTitleNotFound is returned when a page carries no usable title
var ErrTitleNotFound = errors.New("title not found in HTML")

// TitleExtractor finds the title of an article page
type TitleExtractor interface {
	ExtractTitle(htmlContent string) (string, error)
}

// DefaultExtractor implements TitleExtractor using ExtractTitle
type DefaultExtractor struct{}

// NewDefaultExtractor creates a new default extractor
func NewDefaultExtractor() *DefaultExtractor {
	return &DefaultExtractor{}
}

// ExtractTitle extracts the article title using the default extraction logic
func (e *DefaultExtractor) ExtractTitle(htmlContent string) (string, error) {
	return ExtractTitle(htmlContent)
}

// ExtractTitle extracts the article title from HTML content with fallback mechanisms
func ExtractTitle(htmlContent string) (string, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return "", ErrTitleNotFound
	}

	// Try readability first
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err == nil {
		if title := CleanTitle(article.Title); title != "" {
			return title, nil
		}
	}

	// Fallback: Try parsing HTML directly with goquery
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	if title := CleanTitle(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}

	if title := CleanTitle(doc.Find("h1").First().Text()); title != "" {
		return title, nil
	}

	if title, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && CleanTitle(title) != "" {
		return CleanTitle(title), nil
	}

	return "", ErrTitleNotFound
}

// CleanTitle collapses runs of whitespace into single spaces
func CleanTitle(title string) string {
	return strings.Join(strings.Fields(title), " ")
}

// PageTitleFetcher downloads article pages and extracts their titles
type PageTitleFetcher struct {
	client    *httpclient.HTTPClient
	extractor TitleExtractor
}

// NewPageTitleFetcher creates a fetcher; a nil extractor means DefaultExtractor
func NewPageTitleFetcher(client *httpclient.HTTPClient, extractor TitleExtractor) *PageTitleFetcher {
	if extractor == nil {
		extractor = NewDefaultExtractor()
	}
	return &PageTitleFetcher{
		client:    client,
		extractor: extractor,
	}
}

// FetchTitle returns the title of the page at pageURL
func (f *PageTitleFetcher) FetchTitle(ctx context.Context, pageURL string) (string, error) {
	body, err := f.client.FetchBody(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}

	title, err := f.extractor.ExtractTitle(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to extract title: %w", err)
	}

	return title, nil
}
