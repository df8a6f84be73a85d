package urls

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"blog-backlinks/pkg/httpclient"

	"github.com/mmcdole/gofeed"
)

// DefaultFeedPaths are tried in order against the site root
var DefaultFeedPaths = []string{"/feed", "/rss.xml", "/atom.xml", "/feed.xml"}

// RSSParser handles RSS/Atom feed parsing operations
type RSSParser struct {
	client     *httpclient.HTTPClient
	feedParser *gofeed.Parser
	paths      []string
}

// NewRSSParser creates a new RSS parser
func NewRSSParser(client *httpclient.HTTPClient, paths ...string) *RSSParser {
	if len(paths) == 0 {
		paths = DefaultFeedPaths
	}
	return &RSSParser{
		client:     client,
		feedParser: gofeed.NewParser(),
		paths:      paths,
	}
}

// Fetch tries each feed path under baseURL and returns the items of the first
// feed that has any, in feed order
func (p *RSSParser) Fetch(ctx context.Context, baseURL string) ([]URL, error) {
	var lastErr error
	for _, path := range p.paths {
		feedURL := strings.TrimRight(baseURL, "/") + path
		urls, err := p.FetchFeed(ctx, feedURL)
		if err != nil {
			lastErr = err
			continue
		}
		return urls, nil
	}

	if lastErr == nil {
		lastErr = ErrNoURLs
	}
	return nil, lastErr
}

// FetchFeed fetches and parses an RSS/Atom feed from the given URL
func (p *RSSParser) FetchFeed(ctx context.Context, feedURL string) ([]URL, error) {
	body, err := p.client.FetchBody(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	feed, err := p.feedParser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	urls := make([]URL, 0, len(feed.Items))
	for _, item := range feed.Items {
		link := itemLink(item)
		if link == "" {
			continue
		}
		lastMod := item.Published
		if lastMod == "" {
			lastMod = item.Updated
		}
		urls = append(urls, URL{
			Location: link,
			Title:    strings.TrimSpace(item.Title),
			LastMod:  lastMod,
		})
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("%w in feed items", ErrNoURLs)
	}

	return urls, nil
}

// itemLink returns the item's primary link, falling back to the first
// alternate link an Atom entry carries
func itemLink(item *gofeed.Item) string {
	if link := strings.TrimSpace(item.Link); link != "" {
		return link
	}
	for _, l := range item.Links {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return ""
}
