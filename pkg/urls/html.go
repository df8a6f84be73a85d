package urls

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"blog-backlinks/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
)

// URLExtractor is a function type that extracts URLs from HTML content.
// pageURL is the address the HTML was served from and resolves relative links.
type URLExtractor func(pageURL, html string) ([]URL, error)

// HTMLFetcher handles fetching HTML pages and extracting URLs using a provided extractor
type HTMLFetcher struct {
	client    *httpclient.HTTPClient
	extractor URLExtractor
}

// NewHTMLFetcher creates a new HTML fetcher with the given extractor function.
// A nil extractor means ExtractAnchorURLs.
func NewHTMLFetcher(client *httpclient.HTTPClient, extractor URLExtractor) *HTMLFetcher {
	if extractor == nil {
		extractor = ExtractAnchorURLs
	}
	return &HTMLFetcher{
		client:    client,
		extractor: extractor,
	}
}

// Fetch implements URLsFetcher interface - fetches HTML from the given URL and extracts URLs
func (f *HTMLFetcher) Fetch(ctx context.Context, pageURL string) ([]URL, error) {
	body, err := f.client.FetchBody(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch HTML: %w", err)
	}

	urls, err := f.extractor(pageURL, string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to extract URLs: %w", err)
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("%w in HTML", ErrNoURLs)
	}

	return urls, nil
}

// ExtractAnchorURLs returns every <a href> of the page in document order.
// Relative links are resolved against <base href> when present, else pageURL.
// Fragment-only, javascript:, mailto: and tel: links are skipped and a URL is
// reported once, with the title of its first anchor.
func ExtractAnchorURLs(pageURL, html string) ([]URL, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base := pageURL
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok && strings.TrimSpace(href) != "" {
		if resolved := resolveLink(href, pageURL); resolved != "" {
			base = resolved
		}
	}

	var result []URL
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(i int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || skipHref(href) {
			return
		}

		resolved := resolveLink(href, base)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		result = append(result, URL{
			Location: resolved,
			Title:    anchorTitle(link),
		})
	})

	return result, nil
}

// skipHref reports links that never point at a page
func skipHref(href string) bool {
	lower := strings.ToLower(href)
	for _, prefix := range []string{"#", "javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// resolveLink makes href absolute against base and strips the fragment
func resolveLink(href, base string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	parsed.Fragment = ""

	if !parsed.IsAbs() {
		if base == "" {
			return ""
		}
		baseURL, err := url.Parse(base)
		if err != nil {
			return ""
		}
		parsed = baseURL.ResolveReference(parsed)
		parsed.Fragment = ""
	}

	return parsed.String()
}

// anchorTitle picks the visible text of a link, then its title attribute,
// then the alt text of an image inside it
func anchorTitle(link *goquery.Selection) string {
	if title := collapseSpace(link.Text()); title != "" {
		return title
	}
	if title, ok := link.Attr("title"); ok {
		if title = collapseSpace(title); title != "" {
			return title
		}
	}
	if alt, ok := link.Find("img[alt]").First().Attr("alt"); ok {
		return collapseSpace(alt)
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// HomepageFetcher extracts anchors from the site root
type HomepageFetcher struct {
	html *HTMLFetcher
}

// NewHomepageFetcher creates a homepage fetcher; a nil extractor means ExtractAnchorURLs
func NewHomepageFetcher(client *httpclient.HTTPClient, extractor URLExtractor) *HomepageFetcher {
	return &HomepageFetcher{html: NewHTMLFetcher(client, extractor)}
}

// Fetch implements URLsFetcher for "{baseURL}/"
func (f *HomepageFetcher) Fetch(ctx context.Context, baseURL string) ([]URL, error) {
	return f.html.Fetch(ctx, strings.TrimRight(baseURL, "/")+"/")
}
