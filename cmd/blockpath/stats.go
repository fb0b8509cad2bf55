package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockpath/internal/config"
	"github.com/vovakirdan/blockpath/internal/layout"
	"github.com/vovakirdan/blockpath/internal/level"
	"github.com/vovakirdan/blockpath/internal/metrics"
	"github.com/vovakirdan/blockpath/internal/scene"
	"github.com/vovakirdan/blockpath/internal/storage"
)

var (
	flagStatsLevel int
	flagStatsRuns  int
	flagStatsDB    string
	flagStatsProm  string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Sample layouts and print statistics",
	Long: `Lay out a level many times, record every layout in SQLite and print
block count and double-step statistics per level.

By default the samples live in an in-memory database and are gone when the
command exits. Pass --db to keep them in a file, and --metrics-file to
write Prometheus metrics for node_exporter's textfile collector.

Examples:
  blockpath stats
  blockpath stats --level 2 --runs 10000 --seed 1
  blockpath stats --db ./samples.db
  blockpath stats --metrics-file /var/lib/node_exporter/blockpath.prom`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLevel, "level", -1, "Level index (-1 = all levels)")
	statsCmd.Flags().IntVar(&flagStatsRuns, "runs", 1000, "Layouts to sample per level")
	statsCmd.Flags().StringVar(&flagStatsDB, "db", storage.MemoryPath, "Path to samples database")
	statsCmd.Flags().StringVar(&flagStatsProm, "metrics-file", "", "Write Prometheus text metrics to this file")
}

func runStats(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(os.Stderr, cfg)

	if flagStatsRuns <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --runs must be positive")
		os.Exit(1)
	}

	s := seed()
	sel := level.NewSelector(cfg, newSource(s), logger)

	levels := make([]int, 0, len(cfg.Levels))
	if flagStatsLevel >= 0 {
		lvl, err := sel.Parse(flagStatsLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		levels = append(levels, int(lvl))
	} else {
		for _, e := range sel.Levels() {
			levels = append(levels, e.Index)
		}
	}

	store, err := storage.Open(flagStatsDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening samples database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	batchID := uuid.NewString()
	logger.Info("sampling layouts", "batch", batchID, "seed", s, "runs", flagStatsRuns, "levels", len(levels))

	rec := metrics.NewRecorder(cfg.Scene.Blocks)
	results := make([]*storage.LevelStats, 0, len(levels))
	for _, lvl := range levels {
		if err := sample(store, rec, sel, cfg, batchID, lvl, flagStatsRuns, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		st, err := store.Stats(batchID, lvl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading statistics: %v\n", err)
			os.Exit(1)
		}
		results = append(results, st)
	}

	printStats(os.Stdout, batchID, s, results)

	if flagStatsProm != "" {
		if err := rec.WriteFile(flagStatsProm); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("metrics written", "path", flagStatsProm)
	}
}

// sample lays out lvl runs times on a fresh pool and records each layout.
func sample(store *storage.Store, rec *metrics.Recorder, sel *level.Selector, cfg config.Config, batchID string, lvl, runs int, logger *log.Logger) error {
	pool := scene.NewDetachedPool(cfg.Scene.Blocks)
	for i := 0; i < runs; i++ {
		if _, err := sel.Select(pool, lvl); err != nil {
			rec.Fail(lvl)
			return fmt.Errorf("level %d run %d: %w", lvl, i, err)
		}
		snap := layout.Capture(pool, sel.LayoutOptions())
		rec.Observe(lvl, snap)
		if _, err := store.SaveRun(batchID, lvl, snap); err != nil {
			return err
		}
	}
	logger.Debug("level sampled", "level", lvl, "runs", runs)
	return nil
}

// printStats writes one row per level.
func printStats(w io.Writer, batchID string, s uint64, results []*storage.LevelStats) {
	fmt.Fprintf(w, "Batch %s, seed %d\n\n", batchID, s)

	fmt.Fprintf(w, "  %-5s  %-6s  %-5s  %-7s  %-5s  %-11s  %s\n",
		"Level", "Runs", "Min", "Avg", "Max", "Double rate", "Longest run")
	fmt.Fprintf(w, "  %-5s  %-6s  %-5s  %-7s  %-5s  %-11s  %s\n",
		"-----", "----", "---", "---", "---", "-----------", "-----------")

	for _, st := range results {
		fmt.Fprintf(w, "  %-5d  %-6d  %-5d  %-7.2f  %-5d  %-11s  %d\n",
			st.Level, st.Runs, st.MinBlocks, st.AvgBlocks, st.MaxBlocks,
			fmt.Sprintf("%.1f%%", st.DoubleRate*100), st.LongestRun)
	}
}
