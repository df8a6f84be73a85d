package urls

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// UrlFilter defines the interface for URL filtering
type UrlFilter interface {
	ShouldKeep(ctx context.Context, url string) (bool, error)
}

// ApplyFilters keeps the entries every filter agrees on, preserving order
func ApplyFilters(ctx context.Context, entries []URL, filters ...UrlFilter) ([]URL, error) {
	if len(filters) == 0 {
		return entries, nil
	}

	filtered := make([]URL, 0, len(entries))
	for _, entry := range entries {
		keep := true
		for _, f := range filters {
			shouldKeep, err := f.ShouldKeep(ctx, entry.Location)
			if err != nil {
				return nil, fmt.Errorf("filter error for URL %s: %w", entry.Location, err)
			}
			if !shouldKeep {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, entry)
		}
	}

	return filtered, nil
}

// BaseURLFilter filters out base/root URLs
type BaseURLFilter struct{}

// NewBaseURLFilter creates a new base URL filter
func NewBaseURLFilter() *BaseURLFilter {
	return &BaseURLFilter{}
}

// ShouldKeep returns false if URL is a base/root URL
func (f *BaseURLFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false, nil
	}

	path := strings.Trim(parsed.Path, "/")
	return path != "", nil
}

// ArticlePathFilter keeps URLs whose path contains one of the configured hints.
// Matching is case-insensitive. With no hints every non-root path is kept.
type ArticlePathFilter struct {
	hints []string
}

// NewArticlePathFilter creates a filter for the given path hints (e.g. "/blog/")
func NewArticlePathFilter(hints []string) *ArticlePathFilter {
	lowered := make([]string, 0, len(hints))
	for _, h := range hints {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			lowered = append(lowered, h)
		}
	}
	return &ArticlePathFilter{hints: lowered}
}

// ShouldKeep returns true if the URL path looks like an article
func (f *ArticlePathFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false, nil
	}

	path := strings.ToLower(parsed.Path)
	if strings.Trim(path, "/") == "" {
		return false, nil
	}
	if len(f.hints) == 0 {
		return true, nil
	}

	for _, hint := range f.hints {
		if strings.Contains(path, hint) {
			return true, nil
		}
	}
	return false, nil
}

// SameSiteFilter keeps absolute http(s) URLs on the same host as the site
type SameSiteFilter struct {
	host string
}

// NewSameSiteFilter creates a filter bound to the host of baseURL
func NewSameSiteFilter(baseURL string) (*SameSiteFilter, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}
	return &SameSiteFilter{host: normalizeHost(parsed.Hostname())}, nil
}

// ShouldKeep returns true if URL points at the same site
func (f *SameSiteFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false, nil
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false, nil
	}
	return normalizeHost(parsed.Hostname()) == f.host, nil
}

// normalizeHost lower-cases a host and drops a leading "www."
func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
