package content

import (
	"net/url"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-slug"
)

// SlugTitle derives a readable title from the last path segment of rawURL,
// e.g. "https://site/blog/exchange-online-rehberi.html" -> "Exchange online rehberi".
// The host is used when the path has no segment, rawURL itself when unparsable.
func SlugTitle(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	segment := path.Base(strings.TrimRight(parsed.Path, "/"))
	if segment == "." || segment == "/" || segment == "" {
		if parsed.Host != "" {
			return parsed.Host
		}
		return rawURL
	}

	if unescaped, err := url.PathUnescape(segment); err == nil {
		segment = unescaped
	}
	switch strings.ToLower(path.Ext(segment)) {
	case ".html", ".htm", ".php", ".aspx":
		segment = strings.TrimSuffix(segment, path.Ext(segment))
	}

	normalized, err := slug.Normalize(segment)
	if err != nil || normalized == "" {
		normalized = strings.ToLower(segment)
	}

	words := strings.FieldsFunc(normalized, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return rawURL
	}

	return upperFirst(strings.Join(words, " "))
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
