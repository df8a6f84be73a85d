package worker

import (
	"context"
	"log"
	"sync"
)

// Result is the outcome of one title lookup
type Result struct {
	URL   string
	Title string
	Err   error
}

// Manager manages workers and distributes URLs to them
type Manager struct {
	workerCount int
	fetcher     TitleFetcher
}

// NewManager creates a new manager. workerCount below 1 means a single worker.
func NewManager(workerCount int, fetcher TitleFetcher) *Manager {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Manager{
		workerCount: workerCount,
		fetcher:     fetcher,
	}
}

// ProcessURLs looks up the title of every URL and returns the results in
// input order. Failed lookups carry their error; ProcessURLs itself never fails.
func (m *Manager) ProcessURLs(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))
	if len(urls) == 0 {
		return results
	}

	type job struct {
		index int
		url   string
	}

	// Create job channel
	jobChan := make(chan job, len(urls))
	for i, url := range urls {
		jobChan <- job{index: i, url: url}
	}
	close(jobChan)

	workers := m.workerCount
	if workers > len(urls) {
		workers = len(urls)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			w := NewWorker(m.fetcher)

			// Each job owns its slot in results
			for j := range jobChan {
				title, err := w.ProcessURL(ctx, j.url)
				if err != nil {
					log.Printf("Worker %d: Error processing %s: %v", workerID, j.url, err)
				}
				results[j.index] = Result{URL: j.url, Title: title, Err: err}
			}
		}(i)
	}
	wg.Wait()

	var successCount, errorCount int
	for _, res := range results {
		if res.Err == nil {
			successCount++
		} else {
			errorCount++
		}
	}
	log.Printf("Completed: %d titles, %d errors (total: %d)", successCount, errorCount, len(urls))

	return results
}
