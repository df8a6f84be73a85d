// Package render turns a located link list into the backlink index document.
package render

import (
	"fmt"
	"strings"
	"time"

	"blog-backlinks/pkg/domain"
)

// TimestampLayout is how the last update time is printed, always in UTC
const TimestampLayout = "2006-01-02 15:04:05Z"

// Options holds the static parts of the document
type Options struct {
	SiteName  string // e.g. "cengizyilmaz.net"
	BaseURL   string // e.g. "https://cengizyilmaz.net"
	Generator string // what produced the file, e.g. "blog-backlinks"
}

// Render builds the whole document. The same links, timestamp and options
// always produce the same bytes.
func Render(links []domain.ArticleLink, timestamp time.Time, opts Options) string {
	lines := make([]string, 0, len(links)+20)

	lines = append(lines,
		fmt.Sprintf("## %s Bağlantı Dizini", opts.SiteName),
		"",
		fmt.Sprintf("Bu depo, `%s` üzerindeki yazıların konu başlıklarını ve bağlantılarını bir araya getirir. Arama motorlarına yardımcı olacak hafif bir backlink listesi olarak tasarlanmıştır.", opts.SiteName),
		"",
		fmt.Sprintf("- Kaynak: `%s`", opts.BaseURL),
		fmt.Sprintf("- Üretim: `%s` ile otomatik oluşturulur", opts.Generator),
		"",
		"### Güncel Liste",
		"",
		fmt.Sprintf("Toplam %d kayıt | Son güncelleme: %s", len(links), timestamp.UTC().Format(TimestampLayout)),
		"",
	)

	for _, link := range links {
		lines = append(lines, ListItem(link))
	}

	lines = append(lines,
		"",
		"### Notlar",
		"",
		"- Betik önce `sitemap.xml` üzerinden yazı linklerini bulmayı dener; uygun değilse RSS/Atom kayıtlarına ve son çare olarak ana sayfadaki bağlantılara başvurur.",
		"- README içeriği her çalıştırmada yeniden üretilir.",
		"",
	)

	return strings.Join(lines, "\n")
}

// ListItem renders one "- [title](url)" line
func ListItem(link domain.ArticleLink) string {
	return fmt.Sprintf("- [%s](%s)", escapeTitle(link.Title), destination(link.URL))
}

var titleEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)

// escapeTitle keeps a title on one line and inside its link text
func escapeTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		title = "-"
	}
	return titleEscaper.Replace(title)
}

// destination wraps URLs that would otherwise end the link early
func destination(url string) string {
	if strings.ContainsAny(url, " ()<>") {
		return "<" + strings.NewReplacer("<", "%3C", ">", "%3E").Replace(url) + ">"
	}
	return url
}
