package effect

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/blockpath/internal/config"
	"github.com/vovakirdan/blockpath/internal/event"
	"github.com/vovakirdan/blockpath/internal/layout"
	"github.com/vovakirdan/blockpath/internal/level"
	"github.com/vovakirdan/blockpath/internal/scene"
)

func startEffect(t *testing.T, cfg config.Config, src layout.Source) *Effect {
	t.Helper()
	e := New(cfg, NewHostGraph(cfg), src, nil)
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return e
}

func TestStartLaysOutDefaultLevel(t *testing.T) {
	e := startEffect(t, config.DefaultConfig(), layout.NewSequence(0.9))

	if !e.Started() {
		t.Fatal("effect should be started")
	}
	if e.Level() != level.Default {
		t.Errorf("Level() = %d, expected Default", e.Level())
	}
	if n := len(e.Pool().Visible()); n != 10 {
		t.Errorf("visible blocks = %d, expected 10", n)
	}
	if !e.Picker().Visible || len(e.Picker().Items()) != 3 {
		t.Errorf("picker not configured: visible=%v items=%d", e.Picker().Visible, len(e.Picker().Items()))
	}
	if e.Picker().Items()[2].Texture.Name != "level-3" {
		t.Errorf("third picker texture = %s", e.Picker().Items()[2].Texture.Name)
	}
	if e.Shadow().Enabled() {
		t.Error("shadow should start disabled")
	}
	if e.Pool().Home().Name != scene.HomeBlockName {
		t.Errorf("last pool element = %s, expected home", e.Pool().Home().Name)
	}
}

func TestStartMissingAsset(t *testing.T) {
	cfg := config.DefaultConfig()

	for _, missing := range []string{"segmentation", "level-2", "block-8", scene.HomeBlockName} {
		t.Run(missing, func(t *testing.T) {
			var assets []Asset
			for _, a := range RequiredAssets(cfg) {
				if a.Name != missing {
					assets = append(assets, a)
				}
			}

			e := New(cfg, BuildGraph(assets), layout.NewSequence(0.9), nil)
			err := e.Start(context.Background())

			if !errors.Is(err, scene.ErrAssetNotFound) {
				t.Fatalf("expected ErrAssetNotFound, got %v", err)
			}
			var target *scene.AssetResolutionError
			if !errors.As(err, &target) || target.Name != missing {
				t.Errorf("expected resolution error naming %s, got %v", missing, err)
			}
			if e.Started() {
				t.Error("effect must not start with missing assets")
			}
		})
	}
}

func TestStartCancelled(t *testing.T) {
	cfg := config.DefaultConfig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(cfg, NewHostGraph(cfg), layout.NewSequence(0.9), nil)
	err := e.Start(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if e.Started() {
		t.Error("cancelled start must not mark the effect started")
	}
}

func TestPickerChangeRelaysOut(t *testing.T) {
	e := startEffect(t, config.DefaultConfig(), layout.NewSequence(0.9))

	var events []event.LevelChanged
	e.Bus().Subscribe(event.KindLevelChanged, func(ev event.Event) {
		events = append(events, ev.(event.LevelChanged))
	})

	e.Picker().SetSelectedIndex(2)
	if e.Level() != level.Hard {
		t.Errorf("Level() = %d, expected Hard", e.Level())
	}
	if n := e.Snapshot().BlockCount(); n != 15 {
		t.Errorf("block count = %d, expected 15", n)
	}

	// same index: no notification, no relayout
	e.Picker().SetSelectedIndex(2)
	if len(events) != 1 {
		t.Errorf("got %d level events, expected 1", len(events))
	}

	e.Picker().Prev()
	if e.Level() != level.Medium {
		t.Errorf("Level() = %d, expected Medium", e.Level())
	}
	if n := len(e.Pool().Visible()); n != 11 {
		t.Errorf("visible = %d, expected 11", n)
	}
}

func TestTapTogglesShadow(t *testing.T) {
	e := startEffect(t, config.DefaultConfig(), layout.NewSequence(0.9))

	if err := e.Tap("block-1"); err != nil {
		t.Fatalf("Tap failed: %v", err)
	}
	if e.Shadow().Enabled() {
		t.Error("tap on another object must not toggle the shadow")
	}

	if err := e.TapShadow(); err != nil {
		t.Fatalf("TapShadow failed: %v", err)
	}
	if !e.Shadow().Enabled() {
		t.Error("shadow should be enabled after one tap")
	}
	_ = e.TapShadow()
	if e.Shadow().Enabled() {
		t.Error("shadow should be disabled after two taps")
	}
}

func TestLayoutErrorDoesNotStopHandlers(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Levels = append(cfg.Levels, config.LevelConfig{Name: "huge", Title: "Huge", Steps: 40})
	cfg.Picker.Textures = append(cfg.Picker.Textures, "level-4")

	e := startEffect(t, cfg, layout.NewSequence(0.9))

	e.Picker().SetSelectedIndex(3)
	if !errors.Is(e.Err(), layout.ErrOutOfCapacity) {
		t.Fatalf("Err() = %v, expected ErrOutOfCapacity", e.Err())
	}
	if n := len(e.Pool().Visible()); n != 0 {
		t.Errorf("visible = %d after failed layout, expected 0", n)
	}

	e.Picker().SetSelectedIndex(0)
	if e.Err() != nil {
		t.Errorf("Err() = %v after valid level", e.Err())
	}
	if n := len(e.Pool().Visible()); n != 10 {
		t.Errorf("visible = %d, expected 10", n)
	}
}

func TestStartWithBrokenDefaultLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Levels[0].Steps = 20

	e := New(cfg, NewHostGraph(cfg), layout.NewSequence(0.1), nil)
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !e.Started() {
		t.Fatal("effect should be started")
	}
	if !errors.Is(e.Err(), layout.ErrOutOfCapacity) {
		t.Fatalf("Err() = %v, expected ErrOutOfCapacity", e.Err())
	}
	if n := len(e.Pool().Visible()); n != 0 {
		t.Errorf("visible = %d after failed layout, expected 0", n)
	}

	// handlers are live
	e.Picker().SetSelectedIndex(1)
	if e.Err() != nil {
		t.Errorf("Err() = %v after valid level", e.Err())
	}
	if e.Level() != level.Medium {
		t.Errorf("Level() = %d, expected Medium", e.Level())
	}
	if err := e.TapShadow(); err != nil || !e.Shadow().Enabled() {
		t.Errorf("tap after broken start: err=%v enabled=%v", err, e.Shadow().Enabled())
	}
}

func TestRerollDrawsFreshLayout(t *testing.T) {
	cfg := config.DefaultConfig()
	e := startEffect(t, cfg, layout.NewRNG(7))

	if err := e.Reroll(); err != nil {
		t.Fatalf("Reroll on default level failed: %v", err)
	}
	if n := len(e.Pool().Visible()); n != 10 {
		t.Errorf("default level reroll changed the layout: %d visible", n)
	}

	e.Picker().SetSelectedIndex(1)
	if err := e.Reroll(); err != nil {
		t.Fatalf("Reroll failed: %v", err)
	}
	if e.Snapshot().Steps() != 10 {
		t.Errorf("rerolled layout has %d steps, expected 10", e.Snapshot().Steps())
	}
}

func TestOperationsBeforeStart(t *testing.T) {
	cfg := config.DefaultConfig()
	e := New(cfg, NewHostGraph(cfg), layout.NewSequence(), nil)

	if err := e.Reroll(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Reroll before Start = %v", err)
	}
	if err := e.TapShadow(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("TapShadow before Start = %v", err)
	}
	if e.Snapshot().BlockCount() != 0 {
		t.Error("snapshot before Start should be empty")
	}
}

func TestStopRemovesSubscriptions(t *testing.T) {
	e := startEffect(t, config.DefaultConfig(), layout.NewSequence(0.9))
	e.Stop()

	if n := e.Bus().Subscribers(event.KindTap); n != 0 {
		t.Errorf("tap subscribers after Stop = %d", n)
	}
	_ = e.TapShadow()
	if e.Shadow().Enabled() {
		t.Error("tap after Stop must not toggle")
	}
}
