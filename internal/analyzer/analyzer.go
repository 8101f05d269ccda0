// Package analyzer orchestrates a batch run: take fetched case bundles,
// normalize the docket entries, resolve milestones case by case, merge the
// scheduling deadlines, and hand the rows to a formatter.
package analyzer

import (
	"encoding/json"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/jwhalen/go-docket-metrics/internal/core/assemble"
	"github.com/jwhalen/go-docket-metrics/internal/core/deadline"
	"github.com/jwhalen/go-docket-metrics/internal/core/extract"
	"github.com/jwhalen/go-docket-metrics/internal/core/interval"
	"github.com/jwhalen/go-docket-metrics/internal/core/model"
	"github.com/jwhalen/go-docket-metrics/internal/data/fetch"
	"github.com/jwhalen/go-docket-metrics/internal/data/normalize"
	"github.com/jwhalen/go-docket-metrics/internal/presentation/formatter"
	"github.com/jwhalen/go-docket-metrics/internal/util"
)

type Config struct {
	OutputFormat string
	Concurrency  int
}

// Analyzer turns fetched bundles into resolved output rows. Cases are
// independent, so resolution runs case-parallel under a bounded worker count.
type Analyzer struct {
	config *Config
}

// Stats counts the outcome of one batch run.
type Stats struct {
	Processed int
	Skipped   int
}

func New(config *Config) *Analyzer {
	if config.Concurrency == 0 {
		config.Concurrency = runtime.NumCPU()
	}
	return &Analyzer{config: config}
}

// Run analyzes the batch and writes formatted output. Case metadata is
// matched to bundles by case id; bundles without metadata still process,
// just unlabeled.
func (a *Analyzer) Run(bundles []fetch.CaseBundle, cases []model.CaseMeta) (Stats, error) {
	rows, stats := a.Resolve(bundles, cases)
	if err := a.formatAndOutput(rows); err != nil {
		return stats, err
	}
	util.LogInfof("Batch finished: %d cases processed, %d skipped", stats.Processed, stats.Skipped)
	return stats, nil
}

// Resolve produces the output rows without formatting them.
func (a *Analyzer) Resolve(bundles []fetch.CaseBundle, cases []model.CaseMeta) ([]formatter.CaseRow, Stats) {
	start := time.Now()

	metaByCase := make(map[int]*model.CaseMeta, len(cases))
	for i := range cases {
		metaByCase[cases[i].CaseID] = &cases[i]
	}

	results := make([]*formatter.CaseRow, len(bundles))
	semaphore := make(chan struct{}, a.config.Concurrency)
	var wg sync.WaitGroup

	for i := range bundles {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[slot] = a.resolveCase(&bundles[slot], metaByCase[bundles[slot].CaseID])
		}(i)
	}
	wg.Wait()

	var stats Stats
	rows := make([]formatter.CaseRow, 0, len(bundles))
	for _, row := range results {
		if row == nil {
			stats.Skipped++
			continue
		}
		stats.Processed++
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Milestones.CaseID < rows[j].Milestones.CaseID
	})

	util.LogDebugf("Resolution finished in %v", time.Since(start))
	return rows, stats
}

// natureOfSuitMotionToVacate is the 28 U.S.C. 2255 nature-of-suit code.
// Those cases carry no screening milestones.
const natureOfSuitMotionToVacate = 510

// resolveCase runs the full per-case pipeline. A nil return means the case
// was skipped; the reason is already logged.
func (a *Analyzer) resolveCase(bundle *fetch.CaseBundle, meta *model.CaseMeta) *formatter.CaseRow {
	if meta != nil && meta.NatureOfSuit == natureOfSuitMotionToVacate {
		util.LogInfof("Case %d is a motion to vacate case and will not be processed", bundle.CaseID)
		return nil
	}
	if bundle.Err != nil {
		util.LogWarnf("Skipping case %d: fetch failed: %v", bundle.CaseID, bundle.Err)
		return nil
	}
	if len(bundle.Entries) == 0 {
		util.LogWarnf("Skipping case %d: no docket entries", bundle.CaseID)
		return nil
	}

	entries := normalize.Entries(bundle.Entries)
	rec := extract.Run(bundle.CaseID, entries, meta)

	ms, err := assemble.Resolve(rec)
	if err != nil {
		util.LogWarnf("Skipping case %d: %v", bundle.CaseID, err)
		return nil
	}

	interval.Compute(ms)

	return &formatter.CaseRow{
		Milestones: *ms,
		Deadlines:  deadline.Resolve(bundle.CaseID, bundle.Deadlines, bundle.Hearings),
	}
}

func (a *Analyzer) formatAndOutput(rows []formatter.CaseRow) error {
	switch a.config.OutputFormat {
	case "json":
		return formatter.NewJSONFormatter().Format(rows)
	case "csv":
		return formatter.NewCSVFormatter().Format(rows)
	case "summary":
		return formatter.NewSummaryFormatter().Format(rows)
	default:
		return formatter.NewTableFormatter().Format(rows)
	}
}

// ValidateBundles checks the stored batch's entry schema before any case
// processing starts. The stored bundles keep the raw API column names, so
// the first bundle with entries decides for the batch; a payload missing
// required docket columns aborts the run.
func ValidateBundles(raw []byte) error {
	var bundles []struct {
		Entries json.RawMessage `json:"entries"`
	}
	if err := sonic.Unmarshal(raw, &bundles); err != nil {
		return fmt.Errorf("failed to decode stored batch: %w", err)
	}
	for _, b := range bundles {
		if len(b.Entries) == 0 || string(b.Entries) == "null" || string(b.Entries) == "[]" {
			continue
		}
		if err := normalize.ValidateEntrySchema(b.Entries); err != nil {
			return fmt.Errorf("input schema check failed: %w", err)
		}
		return nil
	}
	return nil
}
