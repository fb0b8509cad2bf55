// Package level maps picker indices to layouts. Every selection clears the
// whole pool before laying out, so repeated selections never accumulate state.
package level

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockpath/internal/config"
	"github.com/vovakirdan/blockpath/internal/layout"
	"github.com/vovakirdan/blockpath/internal/registry"
	"github.com/vovakirdan/blockpath/internal/scene"
)

// Level is a picker index.
type Level int

// Built-in levels.
const (
	Default Level = iota // hand-authored layout
	Medium               // 10 random steps
	Hard                 // 15 random steps
)

// ErrUnknownLevel is returned by Parse for indices with no registered level.
var ErrUnknownLevel = errors.New("level: unknown level")

// Options converts layout configuration into generator options.
func Options(cfg config.LayoutConfig) layout.Options {
	return layout.Options{
		Unit:                  cfg.StepUnit,
		Compensation:          cfg.LineCompensation,
		Threshold:             cfg.DoubleThreshold,
		MaxConsecutiveDoubles: cfg.MaxConsecutiveDoubles,
	}
}

// Selector dispatches level indices to layouts on a pool.
type Selector struct {
	levels *registry.Registry
	src    layout.Source
	opts   layout.Options
	logger *log.Logger
}

// NewSelector builds a selector from configuration. Levels with zero steps
// use the canned default layout; the rest are generated from src.
func NewSelector(cfg config.Config, src layout.Source, logger *log.Logger) *Selector {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Selector{
		levels: registry.New(),
		src:    src,
		opts:   Options(cfg.Layout),
		logger: logger,
	}

	for i, lc := range cfg.Levels {
		entry := registry.Entry{
			Index: i,
			Name:  lc.Name,
			Title: lc.Title,
			Steps: lc.Steps,
		}
		if lc.Canned() {
			entry.Apply = s.applyDefault
		} else {
			entry.Apply = s.applyGenerated(lc.Steps)
		}
		s.levels.Register(entry)
	}
	return s
}

func (s *Selector) applyDefault(pool *scene.Pool, _ layout.Source) error {
	return layout.LayoutDefault(pool, s.opts)
}

func (s *Selector) applyGenerated(steps int) registry.LayoutFunc {
	return func(pool *scene.Pool, src layout.Source) error {
		return layout.Generate(pool, steps, src, s.opts)
	}
}

// Levels returns the registered levels in index order.
func (s *Selector) Levels() []registry.Entry {
	return s.levels.List()
}

// LayoutOptions returns the generator options in use.
func (s *Selector) LayoutOptions() layout.Options {
	return s.opts
}

// Normalize maps any index to a registered level. Unknown indices, negative
// ones included, become the highest level.
func (s *Selector) Normalize(index int) Level {
	if s.levels.Exists(index) {
		return Level(index)
	}
	hi, ok := s.levels.Highest()
	if !ok {
		return Default
	}
	return Level(hi.Index)
}

// Parse is the strict counterpart of Normalize.
func (s *Selector) Parse(index int) (Level, error) {
	if !s.levels.Exists(index) {
		return 0, fmt.Errorf("%w: %d (have %d levels)", ErrUnknownLevel, index, s.levels.Len())
	}
	return Level(index), nil
}

// Select hides every block in pool, then applies the layout for index.
// Unknown indices are normalized. The pool is left fully hidden if the
// layout fails.
func (s *Selector) Select(pool *scene.Pool, index int) (Level, error) {
	lvl := s.Normalize(index)
	if int(lvl) != index {
		s.logger.Warn("unknown level index, using fallback", "index", index, "level", int(lvl))
	}

	pool.HideAll()

	entry, ok := s.levels.Lookup(int(lvl))
	if !ok {
		return lvl, fmt.Errorf("%w: %d", ErrUnknownLevel, index)
	}
	if err := entry.Apply(pool, s.src); err != nil {
		pool.HideAll()
		return lvl, fmt.Errorf("level %q: %w", entry.Name, err)
	}

	s.logger.Debug("level laid out",
		"level", int(lvl),
		"name", entry.Name,
		"visible", len(pool.Visible()),
	)
	return lvl, nil
}
