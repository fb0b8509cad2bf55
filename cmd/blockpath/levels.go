package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockpath/internal/config"
	"github.com/vovakirdan/blockpath/internal/layout"
	"github.com/vovakirdan/blockpath/internal/level"
	"github.com/vovakirdan/blockpath/internal/scene"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List configured levels",
	Long:  `Shows every level with its step count and worst-case block use.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	printLevels(os.Stdout, cfg)
}

// printLevels writes the level table for cfg.
func printLevels(w io.Writer, cfg config.Config) {
	sel := level.NewSelector(cfg, layout.NewSequence(), nil)
	entries := sel.Levels()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No levels configured.")
		return
	}

	pool := scene.NewDetachedPool(cfg.Scene.Blocks)
	poolLen := pool.Len()
	fixed := 0
	if err := layout.LayoutDefault(pool, sel.LayoutOptions()); err == nil {
		fixed = len(pool.Visible())
	}
	maxRun := cfg.Layout.MaxConsecutiveDoubles

	fmt.Fprintf(w, "Levels (pool of %d blocks incl. home, max %d doubles in a row):\n\n", poolLen, maxRun)

	maxNameLen := 4 // "Name" header
	for _, e := range entries {
		maxNameLen = max(maxNameLen, len(e.Name))
	}

	fmt.Fprintf(w, "  %-5s  %-*s  %-10s  %-7s  %s\n", "Index", maxNameLen, "Name", "Title", "Steps", "Worst case")
	fmt.Fprintf(w, "  %-5s  %-*s  %-10s  %-7s  %s\n", "-----", maxNameLen, "----", "-----", "-----", "----------")

	for _, e := range entries {
		steps := "fixed"
		worst := fmt.Sprintf("%d", fixed)
		if e.Steps > 0 {
			steps = fmt.Sprintf("%d", e.Steps)
			need := layout.RequiredBlocks(e.Steps, maxRun)
			worst = fmt.Sprintf("%d", need)
			if need > poolLen {
				worst += " (exceeds pool)"
			}
		}
		marker := " "
		if e.Index == cfg.Picker.DefaultLevel {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-5d  %-*s  %-10s  %-7s  %s\n", marker, e.Index, maxNameLen, e.Name, e.Title, steps, worst)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "* default level")
}
