package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jwhalen/go-docket-metrics/internal/analyzer"
	"github.com/jwhalen/go-docket-metrics/internal/util"
)

var (
	watchDebounce time.Duration

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Re-run analysis whenever the stored batch changes",
		Long: `watch monitors the batch directory and re-runs the analysis each time a
fetch replaces the stored payloads. Useful alongside a scheduled fetch job.`,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second,
		"Quiet period after a change before re-analyzing")
	watchCmd.Flags().StringVarP(&outputFormat, "output", "o", "summary",
		"Output format (table, json, csv, summary)")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	initLogging()

	store, err := openStore()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := expandPath(batchDir)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	util.LogInfof("Watching %s", dir)

	analyze := func() {
		if !store.HasBundles() {
			util.LogInfo("No stored batch yet")
			return
		}
		raw, err := store.RawBundles()
		if err != nil {
			util.LogWarnf("Failed to load batch: %v", err)
			return
		}
		if err := analyzer.ValidateBundles(raw); err != nil {
			util.LogErrorf("Batch rejected: %v", err)
			return
		}
		bundles, err := store.LoadBundles()
		if err != nil {
			util.LogWarnf("Failed to load batch: %v", err)
			return
		}
		cases, err := store.LoadCases()
		if err != nil {
			util.LogWarnf("No case metadata in batch: %v", err)
		}

		a := analyzer.New(&analyzer.Config{OutputFormat: outputFormat, Concurrency: concurrency})
		if _, err := a.Run(bundles, cases); err != nil {
			util.LogErrorf("Analysis failed: %v", err)
		}
	}

	// analyze whatever is already stored, then follow changes
	analyze()

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// batch writes land as several events in quick succession;
			// wait for the quiet period before re-running
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			analyze()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			util.LogErrorf("Watch error: %v", err)

		case <-cmd.Context().Done():
			return nil
		}
	}
}
