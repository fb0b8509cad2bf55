package layout

import (
	"math"
	"sort"

	"github.com/vovakirdan/blockpath/internal/scene"
)

// Placement is the derived position of one visible block.
type Placement struct {
	Index int     `yaml:"index"`
	Name  string  `yaml:"name"`
	Step  int     `yaml:"step"`
	Shift Shift   `yaml:"shift"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

// Snapshot is a read-only view of a laid-out pool.
type Snapshot struct {
	Blocks []Placement `yaml:"blocks"` // ordinary blocks, ordered by step then X
	Home   *Placement  `yaml:"home,omitempty"`
}

// Capture reads the visible blocks of pool. Steps are recovered from Y using
// opts, so the snapshot is only meaningful for pools laid out with the same
// options.
func Capture(pool *scene.Pool, opts Options) Snapshot {
	var snap Snapshot
	perStep := opts.Unit - opts.Compensation

	for _, i := range pool.Visible() {
		b := pool.At(i)
		p := Placement{
			Index: i,
			Name:  b.Name,
			X:     b.Position.X,
			Y:     b.Position.Y,
		}
		if perStep != 0 {
			p.Step = int(math.Round(b.Position.Y / perStep))
		}
		switch {
		case b.Position.X > 0:
			p.Shift = ShiftRight
		case b.Position.X < 0:
			p.Shift = ShiftLeft
		}

		if i == pool.HomeIndex() {
			home := p
			snap.Home = &home
			continue
		}
		snap.Blocks = append(snap.Blocks, p)
	}

	sort.SliceStable(snap.Blocks, func(a, b int) bool {
		if snap.Blocks[a].Step != snap.Blocks[b].Step {
			return snap.Blocks[a].Step < snap.Blocks[b].Step
		}
		return snap.Blocks[a].X < snap.Blocks[b].X
	})
	return snap
}

// BlockCount returns the number of visible ordinary blocks.
func (s Snapshot) BlockCount() int {
	return len(s.Blocks)
}

// StepSizes returns how many blocks sit on each step, indexed by step.
func (s Snapshot) StepSizes() []int {
	if len(s.Blocks) == 0 {
		return nil
	}
	last := s.Blocks[len(s.Blocks)-1].Step
	sizes := make([]int, last+1)
	for _, b := range s.Blocks {
		if b.Step >= 0 && b.Step <= last {
			sizes[b.Step]++
		}
	}
	return sizes
}

// Steps returns the number of content steps.
func (s Snapshot) Steps() int {
	return len(s.StepSizes())
}

// Doubles returns the number of steps holding two blocks.
func (s Snapshot) Doubles() int {
	n := 0
	for _, size := range s.StepSizes() {
		if size == 2 {
			n++
		}
	}
	return n
}

// LongestDoubleRun returns the longest run of consecutive double steps.
func (s Snapshot) LongestDoubleRun() int {
	longest, run := 0, 0
	for _, size := range s.StepSizes() {
		if size == 2 {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}
