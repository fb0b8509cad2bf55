package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/blockpath/internal/config"
	"github.com/vovakirdan/blockpath/internal/layout"
	"github.com/vovakirdan/blockpath/internal/level"
	"github.com/vovakirdan/blockpath/internal/metrics"
	"github.com/vovakirdan/blockpath/internal/scene"
	"github.com/vovakirdan/blockpath/internal/storage"
)

func TestPrintLevels(t *testing.T) {
	var buf bytes.Buffer
	printLevels(&buf, config.DefaultConfig())
	out := buf.String()

	for _, want := range []string{"easy", "normal", "hard", "fixed", "* 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "exceeds pool") {
		t.Errorf("default levels should fit the pool:\n%s", out)
	}
}

func TestPrintLevelsFlagsOversizedLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Levels = append(cfg.Levels, config.LevelConfig{Name: "huge", Steps: 30})

	var buf bytes.Buffer
	printLevels(&buf, cfg)
	if !strings.Contains(buf.String(), "exceeds pool") {
		t.Errorf("oversized level not flagged:\n%s", buf.String())
	}
}

func TestInitialLevel(t *testing.T) {
	sel := level.NewSelector(config.DefaultConfig(), layout.NewSequence(), nil)

	tests := []struct {
		index    int
		expected int
		wantErr  bool
	}{
		{-1, -1, false},
		{0, 0, false},
		{2, 2, false},
		{7, 0, true},
	}
	for _, tc := range tests {
		got, err := initialLevel(sel, tc.index)
		if tc.wantErr {
			if !errors.Is(err, level.ErrUnknownLevel) {
				t.Errorf("initialLevel(%d) error = %v, expected ErrUnknownLevel", tc.index, err)
			}
			continue
		}
		if err != nil || got != tc.expected {
			t.Errorf("initialLevel(%d) = %d, %v; expected %d", tc.index, got, err, tc.expected)
		}
	}
}

func TestPrintLayout(t *testing.T) {
	pool := scene.NewDetachedPool(scene.OrdinaryBlocks)
	opts := layout.DefaultOptions()
	if err := layout.LayoutDefault(pool, opts); err != nil {
		t.Fatalf("LayoutDefault failed: %v", err)
	}

	var buf bytes.Buffer
	printLayout(&buf, 0, "easy", 42, layout.Capture(pool, opts))
	out := buf.String()

	if !strings.Contains(out, "9 blocks over 7 steps, 2 doubles") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if !strings.Contains(out, scene.HomeBlockName) {
		t.Errorf("home row missing:\n%s", out)
	}
}

func TestSampleAndPrintStats(t *testing.T) {
	cfg := config.DefaultConfig()
	store, err := storage.Open(storage.MemoryPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	sel := level.NewSelector(cfg, layout.NewRNG(3), nil)
	logger := newLogger(&bytes.Buffer{}, cfg)
	rec := metrics.NewRecorder(cfg.Scene.Blocks)
	if err := sample(store, rec, sel, cfg, "test", 2, 50, logger); err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	st, err := store.Stats("test", 2)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if st.Runs != 50 {
		t.Errorf("Runs = %d, expected 50", st.Runs)
	}
	if st.MinBlocks < 15 || st.MaxBlocks > scene.OrdinaryBlocks {
		t.Errorf("block range %d..%d outside [15, 25]", st.MinBlocks, st.MaxBlocks)
	}
	if st.LongestRun > 1 {
		t.Errorf("LongestRun = %d, doubles must not repeat", st.LongestRun)
	}

	var buf bytes.Buffer
	printStats(&buf, "test", 3, []*storage.LevelStats{st})
	if !strings.Contains(buf.String(), "Batch test, seed 3") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	path := filepath.Join(t.TempDir(), "stats.prom")
	if err := rec.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), `blockpath_layouts_total{level="2"} 50`) {
		t.Errorf("metrics missing layout count:\n%s", data)
	}
}
