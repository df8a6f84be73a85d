package urls

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"blog-backlinks/pkg/httpclient"

	"github.com/araddon/dateparse"
	"golang.org/x/net/html/charset"
)

// DefaultSitemapPaths are tried in order against the site root
var DefaultSitemapPaths = []string{"/sitemap.xml", "/sitemap_index.xml"}

// SitemapParser handles sitemap parsing operations
type SitemapParser struct {
	client *httpclient.HTTPClient
	paths  []string
}

// NewSitemapParser creates a new sitemap parser
func NewSitemapParser(client *httpclient.HTTPClient, paths ...string) *SitemapParser {
	if len(paths) == 0 {
		paths = DefaultSitemapPaths
	}
	return &SitemapParser{
		client: client,
		paths:  paths,
	}
}

// Fetch reads every sitemap path under baseURL and returns their combined
// entries, newest first when lastmod dates are present. Paths that fail are
// skipped; an error is returned only when none yields an entry.
func (p *SitemapParser) Fetch(ctx context.Context, baseURL string) ([]URL, error) {
	var all []URL
	var lastErr error
	for _, path := range p.paths {
		sitemapURL := strings.TrimRight(baseURL, "/") + path
		urls, err := p.FetchSitemap(ctx, sitemapURL)
		if err != nil {
			lastErr = err
			continue
		}
		if len(urls) == 0 {
			lastErr = fmt.Errorf("%w in %s", ErrNoURLs, sitemapURL)
			continue
		}
		all = append(all, urls...)
	}

	if len(all) == 0 {
		if lastErr == nil {
			lastErr = ErrNoURLs
		}
		return nil, lastErr
	}
	return SortByLastMod(all), nil
}

// FetchSitemap fetches and parses a single sitemap or sitemap index URL
func (p *SitemapParser) FetchSitemap(ctx context.Context, sitemapURL string) ([]URL, error) {
	return p.fetchSitemap(ctx, sitemapURL, true)
}

func (p *SitemapParser) fetchSitemap(ctx context.Context, sitemapURL string, followIndex bool) ([]URL, error) {
	body, err := p.client.FetchBody(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sitemap: %w", err)
	}

	root, err := rootElement(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to read sitemap XML: %w", err)
	}

	if root != "sitemapindex" {
		return p.parseSitemap(bytes.NewReader(body))
	}

	if !followIndex {
		return nil, fmt.Errorf("nested sitemap index at %s not followed", sitemapURL)
	}

	sitemapURLs, err := p.parseSitemapIndex(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse sitemap index: %w", err)
	}

	if len(sitemapURLs) == 0 {
		return nil, fmt.Errorf("sitemap index contained no sitemap URLs")
	}

	// Parse all sitemaps in the index and combine their entries
	var allURLs []URL
	for _, childURL := range sitemapURLs {
		urls, err := p.fetchSitemap(ctx, childURL, false)
		if err != nil {
			log.Printf("SitemapParser: skipping %s: %v", childURL, err)
			continue
		}
		allURLs = append(allURLs, urls...)
	}

	if len(allURLs) == 0 {
		return nil, fmt.Errorf("no entries found in any sitemap from index")
	}

	return allURLs, nil
}

// newXMLDecoder returns a decoder that also accepts non UTF-8 encodings
// such as windows-1254
func newXMLDecoder(reader io.Reader) *xml.Decoder {
	decoder := newXMLDecoder(reader)
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder
}

// rootElement returns the local name of the document's first element
func rootElement(reader io.Reader) (string, error) {
	decoder := newXMLDecoder(reader)
	for {
		tok, err := decoder.Token()
		if err != nil {
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

// parseSitemapIndex parses a sitemap index file
func (p *SitemapParser) parseSitemapIndex(reader io.Reader) ([]string, error) {
	var index sitemapIndex
	decoder := newXMLDecoder(reader)

	if err := decoder.Decode(&index); err != nil {
		return nil, fmt.Errorf("failed to decode sitemap index XML: %w", err)
	}

	urls := make([]string, 0, len(index.Sitemaps))
	for _, ref := range index.Sitemaps {
		if loc := strings.TrimSpace(ref.Location); loc != "" {
			urls = append(urls, loc)
		}
	}

	return urls, nil
}

// parseSitemap parses a regular sitemap XML
func (p *SitemapParser) parseSitemap(reader io.Reader) ([]URL, error) {
	var set urlSet
	decoder := newXMLDecoder(reader)

	if err := decoder.Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to decode sitemap XML: %w", err)
	}

	urls := make([]URL, 0, len(set.URLs))
	for _, entry := range set.URLs {
		loc := strings.TrimSpace(entry.Location)
		if loc == "" {
			continue
		}
		urls = append(urls, URL{
			Location: loc,
			Title:    entry.title(),
			LastMod:  strings.TrimSpace(entry.LastMod),
		})
	}

	return urls, nil
}

// SortByLastMod orders entries newest first. Entries without a parsable
// lastmod keep their relative order after the dated ones. When no entry is
// dated the input order is returned unchanged.
func SortByLastMod(urls []URL) []URL {
	dates := make([]time.Time, len(urls))
	anyDated := false
	for i, u := range urls {
		if u.LastMod == "" {
			continue
		}
		if ts, err := dateparse.ParseAny(u.LastMod); err == nil {
			dates[i] = ts
			anyDated = true
		}
	}
	if !anyDated {
		return urls
	}

	idx := make([]int, len(urls))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		da, db := dates[idx[a]], dates[idx[b]]
		if da.IsZero() || db.IsZero() {
			return !da.IsZero() && db.IsZero()
		}
		return da.After(db)
	})

	sorted := make([]URL, len(urls))
	for i, j := range idx {
		sorted[i] = urls[j]
	}
	return sorted
}

// XML structures for parsing sitemap XML

// urlSet represents a regular sitemap structure
type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	URLs    []urlEntry `xml:"url"`
}

// urlEntry represents a single URL entry in XML
type urlEntry struct {
	Location    string   `xml:"loc"`
	LastMod     string   `xml:"lastmod,omitempty"`
	Priority    string   `xml:"priority,omitempty"`
	ChangeFreq  string   `xml:"changefreq,omitempty"`
	NewsTitle   string   `xml:"news>title,omitempty"`  // Google News sitemap extension
	ImageTitles []string `xml:"image>title,omitempty"` // Google Image sitemap extension
}

// title prefers the news title, then the first image title
func (e urlEntry) title() string {
	if title := strings.TrimSpace(e.NewsTitle); title != "" {
		return title
	}
	for _, title := range e.ImageTitles {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	return ""
}

// sitemapIndex represents a sitemap index structure
type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

// sitemapRef represents a reference to another sitemap in an index
type sitemapRef struct {
	Location string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
}
