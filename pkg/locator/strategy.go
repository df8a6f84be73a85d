package locator

import (
	"context"
	"fmt"
	"log"

	"blog-backlinks/pkg/urls"
)

// Strategy is one source of candidate article URLs
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, baseURL string) ([]urls.URL, error)
}

// FetcherStrategy adapts a urls.URLsFetcher into a Strategy and applies
// source specific filters to whatever the fetcher returns
type FetcherStrategy struct {
	name    string
	fetcher urls.URLsFetcher
	filters []urls.UrlFilter
}

// NewFetcherStrategy creates a named strategy around fetcher
func NewFetcherStrategy(name string, fetcher urls.URLsFetcher, filters ...urls.UrlFilter) *FetcherStrategy {
	return &FetcherStrategy{
		name:    name,
		fetcher: fetcher,
		filters: filters,
	}
}

// Name returns the strategy name used in logs and LinkList.Source
func (s *FetcherStrategy) Name() string {
	return s.name
}

// Attempt fetches candidates from baseURL and applies the filters
func (s *FetcherStrategy) Attempt(ctx context.Context, baseURL string) ([]urls.URL, error) {
	found, err := s.fetcher.Fetch(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to fetch URLs: %w", s.name, err)
	}

	kept, err := urls.ApplyFilters(ctx, found, s.filters...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}

	if len(kept) != len(found) {
		log.Printf("Locator: %s kept %d of %d URLs after filtering", s.name, len(kept), len(found))
	}
	return kept, nil
}
