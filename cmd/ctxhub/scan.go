package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ctxhub/internal/config"
	"ctxhub/internal/errors"
	"ctxhub/internal/logging"
	"ctxhub/internal/rules"
	"ctxhub/internal/scanner"
	"ctxhub/internal/store"
	"ctxhub/internal/watcher"
)

var (
	scanWatch        bool
	scanPollInterval time.Duration
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the Swift source tree and build the index",
	Long: `Walks the configured source tree, extracts symbols and module metadata,
indexes documentation rules, and persists everything under .ctxhub/.

The scanning stage is required: its failure aborts the run. The rules stage
is optional: its failure is recorded in the master index and the run
continues.

Examples:
  ctxhub scan           # One full scan
  ctxhub scan --watch   # Rescan automatically when source files change`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanWatch, "watch", false, "Watch for changes and rescan automatically")
	scanCmd.Flags().DurationVar(&scanPollInterval, "poll-interval", 2*time.Second,
		"Watch mode polling interval (min 500ms, max 1m)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	projectRoot := mustGetProjectRoot()

	cfg, err := config.LoadConfig(projectRoot)
	if err != nil {
		return errors.New(errors.ConfigInvalid, "Failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return errors.New(errors.ConfigInvalid, "Invalid configuration", err)
	}

	logger := newLogger(cfg)

	index, err := runScanPipeline(cfg, projectRoot, logger)
	if err != nil {
		return err
	}
	printScanSummary(index)

	if scanWatch {
		fmt.Println()
		runScanWatchLoop(cfg, projectRoot, logger)
	}

	return nil
}

// runScanPipeline performs one full orchestrated run: scan (required), rules
// (optional), persist, master index update.
func runScanPipeline(cfg *config.Config, projectRoot string, logger *logging.Logger) (*store.MasterIndex, error) {
	start := time.Now()
	st := store.New(projectRoot)
	var runErrors []string

	// Required stage: source scan
	sc := scanner.New(cfg, projectRoot, logger)
	result, err := sc.ScanProject()
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.New(errors.SourceMissing, "Source root not found", err)
		}
		return nil, errors.New(errors.ScanFailed, "Scanning failed", err)
	}

	// Optional stage: documentation rules
	rulesPath := filepath.Join(projectRoot, cfg.Rules.SourcePath)
	indexer := rules.NewIndexer(rulesPath, logger)
	agg, patterns, rulesErr := indexer.IndexAll()
	if rulesErr != nil {
		logger.Warn("Rules indexing failed, continuing without rules", map[string]interface{}{
			"error": rulesErr.Error(),
		})
		runErrors = append(runErrors, fmt.Sprintf("rules: %v", rulesErr))
		agg = &rules.Aggregate{}
		patterns = rules.PatternsByCategory{}
	}

	// Persist per-module documents and the symbol lookup
	moduleNames := make([]string, 0, len(result.Modules))
	totalLOC := 0
	for name, record := range result.Modules {
		moduleNames = append(moduleNames, name)
		totalLOC += record.TotalLOC
		if saveErr := st.SaveModuleSummary(store.NewModuleSummary(record)); saveErr != nil {
			return nil, errors.New(errors.ScanFailed, "Failed to persist module summary", saveErr).
				WithDetails(map[string]string{"module": name})
		}
	}
	sort.Strings(moduleNames)

	if err := st.SaveSymbols(result.SymbolLookup); err != nil {
		return nil, errors.New(errors.ScanFailed, "Failed to persist symbol lookup", err)
	}
	if err := st.SaveRules(agg); err != nil {
		return nil, errors.New(errors.ScanFailed, "Failed to persist rules", err)
	}
	if err := st.SavePatterns(patterns); err != nil {
		return nil, errors.New(errors.ScanFailed, "Failed to persist patterns", err)
	}
	if err := st.SaveQuickReference(rules.BuildQuickReference(agg)); err != nil {
		return nil, errors.New(errors.ScanFailed, "Failed to persist quick reference", err)
	}

	now := time.Now().UTC()
	index := &store.MasterIndex{
		Project:       cfg.Project.Name,
		Architecture:  cfg.Project.Architecture,
		Modules:       len(moduleNames),
		ModuleList:    moduleNames,
		TotalFiles:    result.FilesScanned,
		TotalLOC:      totalLOC,
		IndexedAt:     now,
		ConfigVersion: cfg.Version,
		LastFullIndex: now,
		Stats: store.RunStats{
			RunID:          uuid.New().String(),
			ModulesIndexed: len(moduleNames),
			FilesProcessed: result.FilesScanned,
			RulesIndexed:   agg.Total(),
			Duration:       time.Since(start).Round(time.Millisecond).String(),
		},
		Errors: runErrors,
	}

	if err := st.SaveMasterIndex(index); err != nil {
		return nil, errors.New(errors.ScanFailed, "Failed to persist master index", err)
	}

	return index, nil
}

func printScanSummary(index *store.MasterIndex) {
	fmt.Println("Scan complete!")
	fmt.Printf("  Modules: %d\n", index.Modules)
	fmt.Printf("  Files:   %d\n", index.TotalFiles)
	fmt.Printf("  LOC:     %d\n", index.TotalLOC)
	fmt.Printf("  Rules:   %d\n", index.Stats.RulesIndexed)
	fmt.Printf("  Took:    %s\n", index.Stats.Duration)
	if len(index.Errors) > 0 {
		fmt.Println("  Warnings:")
		for _, e := range index.Errors {
			fmt.Printf("    - %s\n", e)
		}
	}
	fmt.Println("\nRun 'ctxhub context \"your task\"' to generate a digest.")
}

// runScanWatchLoop rescans whenever the source tree changes, until interrupted.
func runScanWatchLoop(cfg *config.Config, projectRoot string, logger *logging.Logger) {
	interval := scanPollInterval
	if interval < 500*time.Millisecond {
		interval = 500 * time.Millisecond
	}
	if interval > time.Minute {
		interval = time.Minute
	}

	sourceRoot := scanner.New(cfg, projectRoot, logger).SourceRoot()
	fmt.Printf("Watching %s (polling every %s, Ctrl+C to stop)\n", sourceRoot, interval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nStopping watch...")
		cancel()
	}()

	w := watcher.New(sourceRoot, watcher.Config{
		PollInterval: interval,
		DebounceMs:   watcher.DefaultConfig().DebounceMs,
	}, logger, func() {
		index, err := runScanPipeline(cfg, projectRoot, logger)
		if err != nil {
			logger.Error("Rescan failed", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		fmt.Printf("Rescanned: %d modules, %d files (%s)\n",
			index.Modules, index.TotalFiles, index.Stats.Duration)
	})

	w.Run(ctx)
}
