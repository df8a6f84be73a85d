package urls

import (
	"fmt"
	"net/url"
	"strings"
)

// Canonicalize resolves href against base and normalises it so that two
// spellings of the same article compare equal: scheme and host are
// lower-cased, default ports and the fragment are dropped. A host that differs
// from the base host only by a leading "www." takes the base host's spelling.
func Canonicalize(href, base string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL %q: %w", href, err)
	}

	var baseURL *url.URL
	if base != "" {
		baseURL, err = url.Parse(base)
		if err != nil {
			return "", fmt.Errorf("failed to parse base URL %q: %w", base, err)
		}
	}

	if !parsed.IsAbs() {
		if baseURL == nil {
			return "", fmt.Errorf("relative URL %q without base", href)
		}
		parsed = baseURL.ResolveReference(parsed)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("URL %q has no host", href)
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = canonicalHost(parsed.Scheme, parsed.Host)
	if baseURL != nil && baseURL.Host != "" {
		baseHost := canonicalHost(strings.ToLower(baseURL.Scheme), baseURL.Host)
		if baseHost != parsed.Host && normalizeHost(baseHost) == normalizeHost(parsed.Host) {
			parsed.Host = baseHost
		}
	}
	if parsed.Path == "" {
		parsed.Path = "/"
	}
	parsed.Fragment = ""
	parsed.RawFragment = ""

	return parsed.String(), nil
}

// canonicalHost lower-cases host and drops the scheme's default port
func canonicalHost(scheme, host string) string {
	host = strings.ToLower(host)
	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}
	return host
}

// Dedupe drops repeated locations, keeping the first occurrence
func Dedupe(entries []URL) []URL {
	seen := make(map[string]bool, len(entries))
	result := make([]URL, 0, len(entries))
	for _, entry := range entries {
		if seen[entry.Location] {
			continue
		}
		seen[entry.Location] = true
		result = append(result, entry)
	}
	return result
}
