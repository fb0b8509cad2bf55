// Package effect wires the scene, the level selector and the shadow toggle
// together. Start resolves every asset the effect needs, registers the
// picker and tap handlers, and lays out the default level.
package effect

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockpath/internal/config"
	"github.com/vovakirdan/blockpath/internal/event"
	"github.com/vovakirdan/blockpath/internal/layout"
	"github.com/vovakirdan/blockpath/internal/level"
	"github.com/vovakirdan/blockpath/internal/scene"
	"github.com/vovakirdan/blockpath/internal/shadow"
)

// ErrNotStarted is returned by operations that need a started effect.
var ErrNotStarted = errors.New("effect: not started")

// Effect is the top-level controller. It is driven from a single goroutine:
// Start, then picker changes, taps and rerolls.
type Effect struct {
	cfg      config.Config
	resolver scene.Resolver
	selector *level.Selector
	bus      *event.Bus
	logger   *log.Logger

	pool    *scene.Pool
	picker  *scene.Picker
	toggle  *shadow.Toggle
	current level.Level
	lastErr error
	started bool
	unsubs  []func()
}

// New creates an effect that resolves assets from r and draws layout
// randomness from src.
func New(cfg config.Config, r scene.Resolver, src layout.Source, logger *log.Logger) *Effect {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Effect{
		cfg:      cfg,
		resolver: r,
		selector: level.NewSelector(cfg, src, logger.WithPrefix("level")),
		bus:      event.NewBus(),
		logger:   logger,
	}
}

// Start runs the startup sequence: shadow, picker, block pool, handlers,
// default level. Any failed lookup aborts startup with the
// *scene.AssetResolutionError that caused it. A failed default layout does
// not: the effect is started and the error is reported by Err.
func (e *Effect) Start(ctx context.Context) error {
	if e.started {
		return nil
	}

	toggle, err := shadow.Resolve(ctx, e.resolver, e.cfg.Scene)
	if err != nil {
		return fmt.Errorf("effect: shadow: %w", err)
	}
	toggle.Init(e.cfg.Scene.ShadowInitiallyOn)
	e.toggle = toggle

	picker, err := e.initPicker(ctx)
	if err != nil {
		return fmt.Errorf("effect: picker: %w", err)
	}
	e.picker = picker

	pool, err := scene.ResolvePool(ctx, e.resolver, e.cfg.Scene.Blocks)
	if err != nil {
		return fmt.Errorf("effect: blocks: %w", err)
	}
	e.pool = pool

	e.picker.Monitor(func(oldIndex, newIndex int) {
		e.bus.Publish(event.LevelChanged{Old: oldIndex, New: newIndex})
	})
	e.unsubs = append(e.unsubs,
		e.bus.Subscribe(event.KindLevelChanged, e.onLevelChanged),
		e.bus.Subscribe(event.KindTap, e.onTap),
	)
	e.started = true

	e.logger.Info("effect started",
		"blocks", pool.Len(),
		"levels", len(e.cfg.Levels),
		"default_level", e.cfg.Picker.DefaultLevel,
	)

	// recorded in lastErr
	_ = e.apply(e.picker.SelectedIndex())
	return nil
}

func (e *Effect) initPicker(ctx context.Context) (*scene.Picker, error) {
	items := make([]scene.PickerItem, 0, len(e.cfg.Picker.Textures))
	for _, name := range e.cfg.Picker.Textures {
		tex, err := e.resolver.FindTexture(ctx, name)
		if err != nil {
			return nil, err
		}
		items = append(items, scene.PickerItem{Texture: tex})
	}

	p := scene.NewPicker()
	p.Configure(e.cfg.Picker.DefaultLevel, items)
	p.Visible = true
	return p, nil
}

// Stop removes the event subscriptions. The scene is left as it is.
func (e *Effect) Stop() {
	for _, unsub := range e.unsubs {
		unsub()
	}
	e.unsubs = nil
}

func (e *Effect) onLevelChanged(ev event.Event) {
	changed, ok := ev.(event.LevelChanged)
	if !ok {
		return
	}
	e.logger.Debug("picker changed", "old", changed.Old, "new", changed.New)
	// errors are recorded, the event loop keeps running
	_ = e.apply(changed.New)
}

func (e *Effect) onTap(ev event.Event) {
	tap, ok := ev.(event.Tap)
	if !ok || tap.Target != e.cfg.Scene.ShadowButton {
		return
	}
	enabled := e.toggle.Flip()
	e.logger.Debug("shadow toggled", "enabled", enabled)
}

func (e *Effect) apply(index int) error {
	lvl, err := e.selector.Select(e.pool, index)
	e.current = lvl
	e.lastErr = err
	if err != nil {
		e.logger.Error("layout failed", "index", index, "error", err)
	}
	return err
}

// Tap publishes a tap on the named scene object.
func (e *Effect) Tap(target string) error {
	if !e.started {
		return ErrNotStarted
	}
	e.bus.Publish(event.Tap{Target: target})
	return nil
}

// TapShadow taps the shadow button.
func (e *Effect) TapShadow() error {
	return e.Tap(e.cfg.Scene.ShadowButton)
}

// Reroll lays out the current level again with fresh randomness.
func (e *Effect) Reroll() error {
	if !e.started {
		return ErrNotStarted
	}
	return e.apply(e.picker.SelectedIndex())
}

// Pool returns the block pool, nil before Start.
func (e *Effect) Pool() *scene.Pool { return e.pool }

// Picker returns the level picker, nil before Start.
func (e *Effect) Picker() *scene.Picker { return e.picker }

// Shadow returns the shadow toggle, nil before Start.
func (e *Effect) Shadow() *shadow.Toggle { return e.toggle }

// Bus returns the event bus.
func (e *Effect) Bus() *event.Bus { return e.bus }

// Selector returns the level selector.
func (e *Effect) Selector() *level.Selector { return e.selector }

// Level returns the level of the last layout.
func (e *Effect) Level() level.Level { return e.current }

// Err returns the error of the last layout, if any.
func (e *Effect) Err() error { return e.lastErr }

// Snapshot captures the visible placements.
func (e *Effect) Snapshot() layout.Snapshot {
	if e.pool == nil {
		return layout.Snapshot{}
	}
	return layout.Capture(e.pool, e.selector.LayoutOptions())
}

// Started reports whether Start completed.
func (e *Effect) Started() bool { return e.started }
