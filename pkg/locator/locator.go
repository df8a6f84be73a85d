package locator

import (
	"context"
	"log"

	"blog-backlinks/pkg/content"
	"blog-backlinks/pkg/domain"
	"blog-backlinks/pkg/urls"
	"blog-backlinks/pkg/worker"
)

// TitleFetcher resolves the title of a page that no source named
type TitleFetcher = worker.TitleFetcher

// Locator tries its strategies in order and keeps the first non-empty result
type Locator struct {
	strategies   []Strategy
	titles       TitleFetcher
	titleWorkers int
}

// New creates a locator. titles may be nil, in which case untitled links
// are named after their URL slug.
func New(strategies []Strategy, titles TitleFetcher) *Locator {
	return &Locator{
		strategies:   strategies,
		titles:       titles,
		titleWorkers: 1,
	}
}

// WithTitleWorkers sets how many title lookups may run at once
func (l *Locator) WithTitleWorkers(n int) *Locator {
	if n < 1 {
		n = 1
	}
	l.titleWorkers = n
	return l
}

// Locate returns at most maxCount article links for the site at baseURL.
// Source failures are logged and skipped; when every source fails the
// returned list is empty. maxCount <= 0 disables truncation.
func (l *Locator) Locate(ctx context.Context, baseURL string, maxCount int) domain.LinkList {
	siteFilter, err := urls.NewSameSiteFilter(baseURL)
	if err != nil {
		log.Printf("Locator: ERROR %v", err)
		return domain.LinkList{}
	}

	for _, strategy := range l.strategies {
		if ctx.Err() != nil {
			log.Printf("Locator: stopping before %s: %v", strategy.Name(), ctx.Err())
			break
		}

		log.Printf("Locator: trying %s for %s", strategy.Name(), baseURL)
		found, err := strategy.Attempt(ctx, baseURL)
		if err != nil {
			log.Printf("Locator: %s unavailable: %v", strategy.Name(), err)
			continue
		}

		candidates := l.normalize(ctx, baseURL, found, siteFilter)
		if len(candidates) == 0 {
			log.Printf("Locator: %s yielded no usable URLs", strategy.Name())
			continue
		}

		if maxCount > 0 && len(candidates) > maxCount {
			candidates = candidates[:maxCount]
		}

		log.Printf("Locator: %s yielded %d URLs", strategy.Name(), len(candidates))
		return domain.LinkList{
			Links:  l.resolveTitles(ctx, candidates),
			Source: strategy.Name(),
		}
	}

	log.Printf("Locator: no source yielded any URLs for %s", baseURL)
	return domain.LinkList{}
}

// normalize canonicalises locations, drops off-site links and duplicates
func (l *Locator) normalize(ctx context.Context, baseURL string, found []urls.URL, siteFilter urls.UrlFilter) []urls.URL {
	canonical := make([]urls.URL, 0, len(found))
	for _, u := range found {
		loc, err := urls.Canonicalize(u.Location, baseURL)
		if err != nil {
			continue
		}
		u.Location = loc
		canonical = append(canonical, u)
	}

	onSite, err := urls.ApplyFilters(ctx, canonical, siteFilter)
	if err != nil {
		return nil
	}

	return urls.Dedupe(onSite)
}

// resolveTitles fills every missing title, fetching the page when a
// TitleFetcher is configured and falling back to the URL slug
func (l *Locator) resolveTitles(ctx context.Context, candidates []urls.URL) []domain.ArticleLink {
	links := make([]domain.ArticleLink, len(candidates))
	var missing []int
	for i, c := range candidates {
		links[i] = domain.ArticleLink{Title: content.CleanTitle(c.Title), URL: c.Location}
		if links[i].Title == "" {
			missing = append(missing, i)
		}
	}

	if len(missing) > 0 && l.titles != nil {
		pending := make([]string, len(missing))
		for j, i := range missing {
			pending[j] = links[i].URL
		}
		results := worker.NewManager(l.titleWorkers, l.titles).ProcessURLs(ctx, pending)
		for j, res := range results {
			if res.Err == nil {
				links[missing[j]].Title = content.CleanTitle(res.Title)
			}
		}
	}

	for i := range links {
		if links[i].Title == "" {
			links[i].Title = content.SlugTitle(links[i].URL)
		}
	}
	return links
}
