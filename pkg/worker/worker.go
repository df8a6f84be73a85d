package worker

import (
	"context"
	"fmt"
	"strings"
)

// TitleFetcher resolves the title of a single page
type TitleFetcher interface {
	FetchTitle(ctx context.Context, pageURL string) (string, error)
}

// Worker looks up page titles
type Worker struct {
	fetcher TitleFetcher
}

// NewWorker creates a new worker
func NewWorker(fetcher TitleFetcher) *Worker {
	return &Worker{
		fetcher: fetcher,
	}
}

// ProcessURL fetches the title of a single URL
func (w *Worker) ProcessURL(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	title, err := w.fetcher.FetchTitle(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch title: %w", err)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("empty title for %s", url)
	}

	return title, nil
}
