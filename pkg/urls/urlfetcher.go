package urls

import (
	"context"
	"errors"
)

// ErrNoURLs is returned by a fetcher whose source parsed but listed nothing usable
var ErrNoURLs = errors.New("no URLs found")

// URL represents a URL entry from a parser (sitemap, feed or homepage)
type URL struct {
	Location string // URL of the article
	Title    string // Title of the article (optional)
	LastMod  string // Last modification date as written by the source (optional)
}

// URLsFetcher defines the interface for URL sources (sitemap, RSS, homepage)
type URLsFetcher interface {
	Fetch(ctx context.Context, baseURL string) ([]URL, error)
}
