package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchBody_OK(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	client := NewClient(BrowserClient)
	body, err := client.FetchBody(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, browserUserAgent, gotUA)
}

func TestFetchBody_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(CloudflareClient)
	_, err := client.FetchBody(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))
	assert.Contains(t, err.Error(), "404")
}

func TestFetchBody_UserAgentOverride(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	client := NewClientWithOptions(CloudflareClient, Options{UserAgent: "backlinks-bot/1.0"})
	_, err := client.FetchBody(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "backlinks-bot/1.0", gotUA)
}

func TestFetchBody_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClientWithOptions(BrowserClient, Options{Timeout: 20 * time.Millisecond})
	_, err := client.FetchBody(context.Background(), server.URL)
	require.Error(t, err)
}

func TestFetchBody_BodyOverCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0123456789"))
	}))
	defer server.Close()

	client := NewClientWithOptions(BrowserClient, Options{MaxBodyBytes: 4})
	_, err := client.FetchBody(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestFetchBody_BodyAtCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0123"))
	}))
	defer server.Close()

	client := NewClientWithOptions(BrowserClient, Options{MaxBodyBytes: 4})
	body, err := client.FetchBody(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(body))
}

func TestParseClientType(t *testing.T) {
	ct, err := ParseClientType(" Cloudflare ")
	require.NoError(t, err)
	assert.Equal(t, CloudflareClient, ct)

	ct, err = ParseClientType("browser")
	require.NoError(t, err)
	assert.Equal(t, BrowserClient, ct)

	_, err = ParseClientType("wget")
	assert.ErrorIs(t, err, ErrUnknownClientType)
}
