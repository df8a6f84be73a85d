package locator

import (
	"blog-backlinks/pkg/content"
	"blog-backlinks/pkg/httpclient"
	"blog-backlinks/pkg/urls"
)

// Strategy names, also reported as domain.LinkList.Source
const (
	SourceSitemap  = "sitemap"
	SourceFeed     = "feed"
	SourceHomepage = "homepage"
)

// Settings describes the default sitemap -> feed -> homepage cascade
type Settings struct {
	ArticlePaths []string // Path hints an article URL must contain; empty accepts any non-root path
	SitemapPaths []string // Defaults to urls.DefaultSitemapPaths
	FeedPaths    []string // Defaults to urls.DefaultFeedPaths
	FetchTitles  bool     // Download pages whose source gave no title
	TitleWorkers int      // Concurrent title lookups; below 1 means one
}

// DefaultStrategies builds the cascade in preference order.
// Feed entries are not path filtered, only the site root is dropped.
func DefaultStrategies(client *httpclient.HTTPClient, settings Settings) []Strategy {
	articles := urls.NewArticlePathFilter(settings.ArticlePaths)

	return []Strategy{
		NewFetcherStrategy(SourceSitemap, urls.NewSitemapParser(client, settings.SitemapPaths...), articles),
		NewFetcherStrategy(SourceFeed, urls.NewRSSParser(client, settings.FeedPaths...), urls.NewBaseURLFilter()),
		NewFetcherStrategy(SourceHomepage, urls.NewHomepageFetcher(client, urls.ExtractAnchorURLs), articles),
	}
}

// NewDefault builds a locator with the default cascade
func NewDefault(client *httpclient.HTTPClient, settings Settings) *Locator {
	var titles TitleFetcher
	if settings.FetchTitles {
		titles = content.NewPageTitleFetcher(client, nil)
	}
	return New(DefaultStrategies(client, settings), titles).WithTitleWorkers(settings.TitleWorkers)
}
