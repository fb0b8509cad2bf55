// Package layout places blocks along a path. It is pure computation over a
// scene.Pool: it only toggles visibility and overwrites positions, and it
// never creates blocks. Callers must not run it concurrently on one pool.
package layout

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/blockpath/internal/scene"
)

// Layout constants tuned for visual fidelity.
const (
	StepUnit         = 0.1
	LineCompensation = 0.002469135802
	DoubleThreshold  = 0.6
)

var (
	// ErrOutOfCapacity is returned when the worst case for a step count
	// needs more blocks than the pool holds.
	ErrOutOfCapacity = errors.New("layout: not enough blocks in pool")

	// ErrInvalidSteps is returned for negative step counts.
	ErrInvalidSteps = errors.New("layout: step count must not be negative")
)

// Shift is the horizontal placement of a block within its step.
type Shift int

const (
	ShiftLeft   Shift = -1
	ShiftCenter Shift = 0
	ShiftRight  Shift = 1
)

// String returns a short name for the shift.
func (s Shift) String() string {
	switch {
	case s < 0:
		return "left"
	case s > 0:
		return "right"
	default:
		return "center"
	}
}

// MarshalYAML encodes the shift by name.
func (s Shift) MarshalYAML() (any, error) {
	return s.String(), nil
}

// Options tunes the generator.
type Options struct {
	Unit         float64 // vertical distance between steps
	Compensation float64 // per-step drift correction
	Threshold    float64 // draws above this force a single block

	// MaxConsecutiveDoubles is the longest allowed run of double steps.
	// 0 disables doubles entirely.
	MaxConsecutiveDoubles int
}

// DefaultOptions returns the canonical constants with no back-to-back doubles.
func DefaultOptions() Options {
	return Options{
		Unit:                  StepUnit,
		Compensation:          LineCompensation,
		Threshold:             DoubleThreshold,
		MaxConsecutiveDoubles: 1,
	}
}

// RequiredBlocks returns the worst-case number of pool slots a generation of
// the given length can touch, home marker included. The first step is always
// single; after that the densest layout repeats maxRun doubles then a single.
func RequiredBlocks(steps, maxRun int) int {
	if steps <= 0 {
		return 1
	}
	if maxRun < 0 {
		maxRun = 0
	}
	rest := steps - 1
	cycle := maxRun + 1
	doubles := (rest/cycle)*maxRun + min(rest%cycle, maxRun)
	return steps + doubles + 1
}

// PlaceBlock makes the block at index visible and positions it at step with
// the given horizontal shift.
func PlaceBlock(pool *scene.Pool, index, step int, shift Shift, opts Options) {
	block := pool.At(index)
	block.Hidden = false
	block.Position.Y = opts.Unit*float64(step) - opts.Compensation*float64(step)

	half := opts.Unit/2 - opts.Compensation/2
	switch {
	case shift > 0:
		block.Position.X = half
	case shift < 0:
		block.Position.X = -half
	default:
		block.Position.X = 0
	}
}

// PlaceHome positions the pool's home marker, centered, at step.
func PlaceHome(pool *scene.Pool, step int, opts Options) {
	PlaceBlock(pool, pool.HomeIndex(), step, ShiftCenter, opts)
}

// Generate lays out steps random steps on pool and puts the home marker one
// step past the last one. One value is drawn from src per step. Blocks the
// generation does not reach are left as they are; callers hide the pool first.
func Generate(pool *scene.Pool, steps int, src Source, opts Options) error {
	if steps < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSteps, steps)
	}
	if need := RequiredBlocks(steps, opts.MaxConsecutiveDoubles); need > pool.Len() {
		return fmt.Errorf("%w: %d steps need up to %d blocks, pool has %d",
			ErrOutOfCapacity, steps, need, pool.Len())
	}

	currentBlock := 0
	doubleBlocks := opts.MaxConsecutiveDoubles + 1 // first step is always single
	for i := 0; i < steps; i++ {
		if src.Float() > opts.Threshold || doubleBlocks >= opts.MaxConsecutiveDoubles {
			PlaceBlock(pool, currentBlock, i, ShiftCenter, opts)
			currentBlock++
			doubleBlocks = 0
		} else {
			doubleBlocks++
			PlaceBlock(pool, currentBlock, i, ShiftLeft, opts)
			PlaceBlock(pool, currentBlock+1, i, ShiftRight, opts)
			currentBlock += 2
		}
	}
	PlaceHome(pool, steps, opts)
	return nil
}

// defaultPlan is the hand-authored level: index, step, shift.
var defaultPlan = []struct {
	index, step int
	shift       Shift
}{
	{0, 0, ShiftCenter},
	{1, 1, ShiftCenter},
	{2, 2, ShiftCenter},
	{3, 3, ShiftRight},
	{4, 3, ShiftLeft},
	{5, 4, ShiftCenter},
	{6, 5, ShiftRight},
	{7, 5, ShiftLeft},
	{8, 6, ShiftCenter},
}

// DefaultHomeStep is the step of the home marker in the canned layout.
const DefaultHomeStep = 7

// LayoutDefault applies the fixed canned layout. It consumes no randomness.
func LayoutDefault(pool *scene.Pool, opts Options) error {
	if need := len(defaultPlan) + 1; need > pool.Len() {
		return fmt.Errorf("%w: default layout needs %d blocks, pool has %d",
			ErrOutOfCapacity, need, pool.Len())
	}
	for _, p := range defaultPlan {
		PlaceBlock(pool, p.index, p.step, p.shift, opts)
	}
	PlaceHome(pool, DefaultHomeStep, opts)
	return nil
}
