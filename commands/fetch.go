package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwhalen/go-docket-metrics/internal/config"
	"github.com/jwhalen/go-docket-metrics/internal/data/fetch"
	"github.com/jwhalen/go-docket-metrics/internal/data/normalize"
	"github.com/jwhalen/go-docket-metrics/internal/data/store"
	"github.com/jwhalen/go-docket-metrics/internal/util"
)

var (
	startDate        string
	endDate          string
	proSeOnly        bool
	fetchConcurrency int
	skipGrouping     bool

	fetchCmd = &cobra.Command{
		Use:   "fetch",
		Short: "Fetch case data from the case-management API into a batch",
		Long: `fetch lists civil cases filed in the date range, labels them with their
nature-of-suit group from the lookup database, then retrieves docket entries,
deadlines, and hearings for each case and stores everything as a batch for
offline analysis.

Credentials and endpoints come from the environment (or a .env file):
API_TOKEN_URL, BASE_API_URL, API_USERNAME, API_PASSWORD, and POSTGRES_* for
the lookup database.`,
		RunE: runFetch,
	}
)

func init() {
	fetchCmd.Flags().StringVar(&startDate, "start", "2018-01-01",
		"Earliest filing date (YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&endDate, "end", time.Now().Format("2006-01-02"),
		"Latest filing date (YYYY-MM-DD)")
	fetchCmd.Flags().BoolVar(&proSeOnly, "prose-only", true,
		"Restrict to pro se cases")
	fetchCmd.Flags().IntVar(&fetchConcurrency, "concurrency", 10,
		"Number of cases fetched in parallel")
	fetchCmd.Flags().BoolVar(&skipGrouping, "skip-grouping", false,
		"Skip the nature-of-suit lookup database")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	initLogging()
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := fetch.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to case API: %w", err)
	}

	cases, err := client.CivilCasesByDate(ctx, startDate, endDate)
	if err != nil {
		return err
	}
	util.LogInfof("Found %d civil cases filed %s..%s", len(cases), startDate, endDate)

	if proSeOnly {
		filtered := cases[:0]
		for _, c := range cases {
			if c.IsProSe {
				filtered = append(filtered, c)
			}
		}
		cases = filtered
		util.LogInfof("%d cases after pro se filter", len(cases))
	}

	if !skipGrouping {
		db, err := store.Open(ctx, cfg.PostgresDSN())
		if err != nil {
			return err
		}
		defer db.Close()

		lookup, err := store.NewNOSStore(db).GroupLookup(ctx)
		if err != nil {
			return err
		}
		store.ApplyGrouping(cases, lookup)

		before := len(cases)
		cases = store.ExcludeHabeas(cases)
		if dropped := before - len(cases); dropped > 0 {
			util.LogInfof("%d habeas corpus cases excluded from the batch", dropped)
		}
	}

	caseIDs := make([]int, len(cases))
	for i, c := range cases {
		caseIDs[i] = c.CaseID
	}

	fetcher := fetch.NewFetcher(client, fetchConcurrency)
	bundles := fetcher.FetchAll(ctx, caseIDs)

	// A missing-column payload means every case decodes wrong, not just one.
	for _, b := range bundles {
		if errors.Is(b.Err, normalize.ErrMissingColumns) {
			return fmt.Errorf("aborting batch: case %d: %w", b.CaseID, b.Err)
		}
	}

	batchStore, err := openStore()
	if err != nil {
		return err
	}
	if err := batchStore.SaveCases(cases); err != nil {
		return err
	}
	if err := batchStore.SaveBundles(bundles); err != nil {
		return err
	}

	fmt.Printf("Stored batch of %d cases in %s\n", len(bundles), expandPath(batchDir))
	return nil
}
