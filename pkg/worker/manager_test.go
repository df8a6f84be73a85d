package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	titles   map[string]string
	delay    time.Duration
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	mu       sync.Mutex
	calls    []string
}

func (f *fakeFetcher) FetchTitle(ctx context.Context, pageURL string) (string, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, pageURL)
	f.mu.Unlock()

	time.Sleep(f.delay)
	if title, ok := f.titles[pageURL]; ok {
		return title, nil
	}
	return "", errors.New("not found")
}

func TestProcessURLs_KeepsInputOrder(t *testing.T) {
	fetcher := &fakeFetcher{titles: map[string]string{}, delay: time.Millisecond}
	var input []string
	for i := 0; i < 12; i++ {
		url := fmt.Sprintf("https://example.com/blog/%d", i)
		fetcher.titles[url] = fmt.Sprintf(" Post %d ", i)
		input = append(input, url)
	}

	results := NewManager(4, fetcher).ProcessURLs(context.Background(), input)

	require.Len(t, results, len(input))
	for i, res := range results {
		assert.NoError(t, res.Err)
		assert.Equal(t, input[i], res.URL)
		assert.Equal(t, fmt.Sprintf("Post %d", i), res.Title)
	}
}

func TestProcessURLs_ReportsFailures(t *testing.T) {
	fetcher := &fakeFetcher{titles: map[string]string{
		"https://example.com/a": "A",
		"https://example.com/c": "   ",
	}}

	results := NewManager(2, fetcher).ProcessURLs(context.Background(), []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	})

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "A", results[0].Title)
	assert.Error(t, results[1].Err)
	assert.Error(t, results[2].Err)
	assert.Empty(t, results[2].Title)
}

func TestProcessURLs_BoundsConcurrency(t *testing.T) {
	fetcher := &fakeFetcher{titles: map[string]string{}, delay: 10 * time.Millisecond}
	input := make([]string, 9)
	for i := range input {
		input[i] = fmt.Sprintf("https://example.com/%d", i)
	}

	NewManager(3, fetcher).ProcessURLs(context.Background(), input)

	assert.LessOrEqual(t, fetcher.maxSeen.Load(), int32(3))
	assert.Len(t, fetcher.calls, 9)
}

func TestProcessURLs_SingleWorkerIsSequential(t *testing.T) {
	fetcher := &fakeFetcher{titles: map[string]string{}}
	input := []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}

	NewManager(0, fetcher).ProcessURLs(context.Background(), input)

	assert.Equal(t, int32(1), fetcher.maxSeen.Load())
	assert.Equal(t, input, fetcher.calls)
}

func TestProcessURLs_CancelledContext(t *testing.T) {
	fetcher := &fakeFetcher{titles: map[string]string{"https://example.com/a": "A"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewManager(2, fetcher).ProcessURLs(ctx, []string{"https://example.com/a"})

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
	assert.Empty(t, fetcher.calls)
}

func TestProcessURLs_Empty(t *testing.T) {
	results := NewManager(2, &fakeFetcher{}).ProcessURLs(context.Background(), nil)
	assert.Empty(t, results)
}
