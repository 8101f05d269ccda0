// Package commands wires the CLI: analyze (default), fetch, and watch.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwhalen/go-docket-metrics/internal/analyzer"
	"github.com/jwhalen/go-docket-metrics/internal/data/batch"
	"github.com/jwhalen/go-docket-metrics/internal/util"
)

var (
	debug bool

	batchDir     string
	outputFormat string
	concurrency  int
	reset        bool

	rootCmd = &cobra.Command{
		Use:   "docket-metrics [flags]",
		Short: "Civil case milestone analysis tool",
		Long: `docket-metrics resolves milestone dates for civil cases from their docket
entries: complaint, screening, under advisement, leave to proceed, dismissals,
fee events, and scheduling deadlines, plus elapsed-time metrics between them.

Analysis runs against a stored batch of fetched case data (see "fetch").

Examples:
  docket-metrics                            # Analyze the stored batch, table output
  docket-metrics --output csv > cases.csv   # Full record as CSV
  docket-metrics --output summary           # Aggregate statistics
  docket-metrics fetch --start 2018-01-01 --end 2022-12-31
  docket-metrics watch                      # Re-analyze when the batch changes`,
		RunE: runAnalyze,
	}
)

const (
	defaultLogFile  = "~/.docket-metrics/logs/app.log"
	defaultBatchDir = "~/.docket-metrics/batches"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&batchDir, "batch-dir", defaultBatchDir,
		"Directory holding fetched batch payloads")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(),
		"Number of cases resolved in parallel")
	rootCmd.Flags().BoolVarP(&reset, "reset", "r", false,
		"Clear the stored batch before running")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	initLogging()

	store, err := openStore()
	if err != nil {
		return err
	}

	if reset {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear batch: %w", err)
		}
		util.LogInfo("Batch cleared")
		return nil
	}

	if !store.HasBundles() {
		return fmt.Errorf("no stored batch found in %s, run \"docket-metrics fetch\" first", expandPath(batchDir))
	}

	raw, err := store.RawBundles()
	if err != nil {
		return fmt.Errorf("failed to load batch: %w", err)
	}
	if err := analyzer.ValidateBundles(raw); err != nil {
		return err
	}

	bundles, err := store.LoadBundles()
	if err != nil {
		return fmt.Errorf("failed to load batch: %w", err)
	}
	cases, err := store.LoadCases()
	if err != nil {
		util.LogWarnf("No case metadata in batch: %v", err)
	}

	a := analyzer.New(&analyzer.Config{
		OutputFormat: outputFormat,
		Concurrency:  concurrency,
	})
	_, err = a.Run(bundles, cases)
	return err
}

func Execute() error {
	return rootCmd.Execute()
}

func initLogging() {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)
}

func openStore() (*batch.Store, error) {
	dir := expandPath(batchDir)
	store, err := batch.NewStore(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch directory %s: %w", dir, err)
	}
	return store, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
