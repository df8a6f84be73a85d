package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-backlinks/pkg/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle_TitleTag(t *testing.T) {
	html := `<html><head><title>Exchange Online Rehberi</title></head>
<body><article><p>Exchange Online ile ilgili uzun bir yazı.</p></article></body></html>`

	title, err := ExtractTitle(html)
	require.NoError(t, err)
	assert.Equal(t, "Exchange Online Rehberi", title)
}

func TestExtractTitle_FallsBackToHeading(t *testing.T) {
	html := `<html><head></head><body><h1>  Azure
		AD Notları </h1><p>text</p></body></html>`

	title, err := ExtractTitle(html)
	require.NoError(t, err)
	assert.Equal(t, "Azure AD Notları", title)
}

func TestExtractTitle_NotFound(t *testing.T) {
	_, err := ExtractTitle(`<html><body><p>no title</p></body></html>`)
	assert.True(t, errors.Is(err, ErrTitleNotFound))

	_, err = ExtractTitle("   ")
	assert.True(t, errors.Is(err, ErrTitleNotFound))
}

func TestPageTitleFetcher_FetchTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/blog/post" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`<html><head><title>Post Title</title></head><body><p>x</p></body></html>`))
	}))
	defer server.Close()

	fetcher := NewPageTitleFetcher(httpclient.NewClient(httpclient.BrowserClient), nil)

	title, err := fetcher.FetchTitle(context.Background(), server.URL+"/blog/post")
	require.NoError(t, err)
	assert.Equal(t, "Post Title", title)

	_, err = fetcher.FetchTitle(context.Background(), server.URL+"/blog/missing")
	assert.Error(t, err)
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "a b c", CleanTitle("  a\n\tb   c "))
	assert.Equal(t, "", CleanTitle(" \n "))
}
