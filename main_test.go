package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"blog-backlinks/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	cfg := config.Default()
	cfg.BaseURL = baseURL
	cfg.SiteName = "example"
	cfg.Output = filepath.Join(t.TempDir(), "README.md")
	cfg.Timeout = 2 * time.Second
	cfg.FetchTitles = false
	return cfg
}

func TestRun_WritesIndexFromSitemap(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
<url><loc>` + server.URL + `/blog/a</loc></url>
<url><loc>` + server.URL + `/blog/b</loc></url>
<url><loc>` + server.URL + `/blog/c</loc></url>
</urlset>`))
	})

	cfg := testConfig(t, server.URL)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, run(context.Background(), cfg, now))

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	doc := string(data)

	assert.Contains(t, doc, "Toplam 3 kayıt")
	a := strings.Index(doc, "- [A]("+server.URL+"/blog/a)")
	b := strings.Index(doc, "- [B]("+server.URL+"/blog/b)")
	c := strings.Index(doc, "- [C]("+server.URL+"/blog/c)")
	require.True(t, a >= 0 && b >= 0 && c >= 0, "missing list items in:\n%s", doc)
	assert.True(t, a < b && b < c)
}

func TestRun_UnreachableSiteStillWritesDocument(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	cfg := testConfig(t, base)
	require.NoError(t, run(context.Background(), cfg, time.Now()))

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Toplam 0 kayıt")
	assert.NotContains(t, string(data), "- [")
}

func TestRun_UnwritableOutput(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	cfg := testConfig(t, server.URL)
	cfg.Output = filepath.Join(t.TempDir(), "missing", "README.md")

	err := run(context.Background(), cfg, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), cfg.Output)
}

func TestRun_UsesConfiguredClientType(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sitemap.xml" {
			gotUA = r.Header.Get("User-Agent")
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	cfg.ClientType = "cloudflare"

	require.NoError(t, run(context.Background(), cfg, time.Now()))
	assert.Equal(t, "curl/8.7.1", gotUA)
}

func TestRun_UnknownClientType(t *testing.T) {
	cfg := testConfig(t, "https://example.com")
	cfg.ClientType = "wget"

	assert.Error(t, run(context.Background(), cfg, time.Now()))
}
