package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockpath/internal/core"
	"github.com/vovakirdan/blockpath/internal/effect"
	"github.com/vovakirdan/blockpath/internal/level"
	"github.com/vovakirdan/blockpath/internal/platform/tui"
)

var (
	flagViewLevel int
	flagLogFile   string
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the scene interactively",
	Long: `Open the block path scene in the terminal.

Controls:
  Left/Right  - Previous/next level
  1/2/3       - Select a level
  Space/T     - Tap the shadow button
  R           - Re-roll the current level
  Tab         - Show/hide the placement table
  Q/Ctrl+C    - Quit

Logs are discarded unless --log-file is given.

Examples:
  blockpath view
  blockpath view --level 2 --seed 7
  blockpath view --log-file /tmp/blockpath.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runView,
}

func init() {
	viewCmd.Flags().IntVar(&flagViewLevel, "level", -1, "Initial level index (-1 = configured default)")
	viewCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func runView(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	logFile := flagLogFile
	if logFile == "" {
		logFile = cfg.Log.File
	}
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, cfg)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	s := seed()
	e := effect.New(cfg, effect.NewHostGraph(cfg), newSource(s), logger)

	lvl, err := initialLevel(e.Selector(), flagViewLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'blockpath levels' to see available levels.")
		os.Exit(1)
	}

	rc := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    int64(s),
		Level:   lvl,
	}
	logger.Info("starting view", "seed", s, "level", lvl, "width", width, "height", height)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tui.Run(ctx, e, rc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initialLevel checks a --level value. Negative values keep the configured
// default and are returned as -1.
func initialLevel(sel *level.Selector, index int) (int, error) {
	if index < 0 {
		return -1, nil
	}
	lvl, err := sel.Parse(index)
	if err != nil {
		return 0, err
	}
	return int(lvl), nil
}
