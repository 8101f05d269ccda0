package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
	"github.com/jwhalen/go-docket-metrics/internal/util"
)

// CaseSource is the slice of the API the fetcher needs. *Client satisfies it;
// tests substitute a stub.
type CaseSource interface {
	CaseEntries(ctx context.Context, caseID int) ([]model.RawDocketRow, error)
	CaseDeadlines(ctx context.Context, caseID int, class string) ([]model.ScheduledEvent, error)
}

// CaseBundle is everything fetched for one case. Err is set when any of the
// three requests failed; the bundle is then excluded from analysis but still
// counted and logged.
type CaseBundle struct {
	CaseID    int                    `json:"caseId"`
	Entries   []model.RawDocketRow   `json:"entries"`
	Deadlines []model.ScheduledEvent `json:"deadlines"`
	Hearings  []model.ScheduledEvent `json:"hearings"`
	Err       error                  `json:"-"`
}

// Fetcher retrieves case bundles concurrently under a bounded-concurrency
// policy. All requests complete (or individually fail) before the result
// returns; nothing downstream sees a partial batch.
type Fetcher struct {
	source      CaseSource
	concurrency int
}

// NewFetcher wraps a case source with a concurrency bound. A bound below 1 is
// coerced to 1.
func NewFetcher(source CaseSource, concurrency int) *Fetcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Fetcher{source: source, concurrency: concurrency}
}

// FetchAll retrieves bundles for every case id. Results come back in the
// input order regardless of completion order.
func (f *Fetcher) FetchAll(ctx context.Context, caseIDs []int) []CaseBundle {
	start := time.Now()
	util.LogInfof("Fetching %d cases, concurrency %d", len(caseIDs), f.concurrency)

	bundles := make([]CaseBundle, len(caseIDs))
	semaphore := make(chan struct{}, f.concurrency)
	var wg sync.WaitGroup

	for i, caseID := range caseIDs {
		wg.Add(1)
		go func(slot, id int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			bundles[slot] = f.fetchCase(ctx, id)
		}(i, caseID)
	}
	wg.Wait()

	failed := 0
	for i := range bundles {
		if bundles[i].Err != nil {
			failed++
		}
	}
	util.LogInfof("Fetch finished in %v, %d of %d cases failed",
		time.Since(start), failed, len(caseIDs))
	return bundles
}

func (f *Fetcher) fetchCase(ctx context.Context, caseID int) CaseBundle {
	bundle := CaseBundle{CaseID: caseID}

	entries, err := f.source.CaseEntries(ctx, caseID)
	if err != nil {
		bundle.Err = fmt.Errorf("entries: %w", err)
		util.LogWarnf("Case %d fetch failed: %v", caseID, bundle.Err)
		return bundle
	}
	bundle.Entries = entries

	bundle.Deadlines, err = f.source.CaseDeadlines(ctx, caseID, "ddl")
	if err != nil {
		bundle.Err = fmt.Errorf("deadlines: %w", err)
		util.LogWarnf("Case %d fetch failed: %v", caseID, bundle.Err)
		return bundle
	}

	bundle.Hearings, err = f.source.CaseDeadlines(ctx, caseID, "hrg")
	if err != nil {
		bundle.Err = fmt.Errorf("hearings: %w", err)
		util.LogWarnf("Case %d fetch failed: %v", caseID, bundle.Err)
	}
	return bundle
}
