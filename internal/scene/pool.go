package scene

import (
	"context"
	"fmt"
)

// Pool sizing for the block path.
const (
	OrdinaryBlocks = 25
	PoolSize       = OrdinaryBlocks + 1 // plus the home marker
	HomeBlockName  = "block-home"
)

// BlockName returns the scene name of the ordinary block at pool index i
// (0-based). Names are 1-based: block-1 .. block-25.
func BlockName(i int) string {
	return fmt.Sprintf("block-%d", i+1)
}

// Pool is a fixed-size, indexed arena of block objects. The home marker is
// always the last element. A Pool never grows or shrinks after creation.
type Pool struct {
	blocks []*Object
}

// NewPool wraps an ordered set of objects. The last one is the home marker.
func NewPool(blocks []*Object) (*Pool, error) {
	if len(blocks) < 1 {
		return nil, fmt.Errorf("scene: pool needs at least a home block")
	}
	for i, b := range blocks {
		if b == nil {
			return nil, fmt.Errorf("scene: pool slot %d is nil", i)
		}
	}
	cp := make([]*Object, len(blocks))
	copy(cp, blocks)
	return &Pool{blocks: cp}, nil
}

// NewDetachedPool creates a pool of n ordinary blocks plus a home block that
// is not attached to any scene graph. Used by the CLI and tests.
func NewDetachedPool(n int) *Pool {
	blocks := make([]*Object, 0, n+1)
	for i := 0; i < n; i++ {
		blocks = append(blocks, NewObject(BlockName(i)))
	}
	blocks = append(blocks, NewObject(HomeBlockName))
	return &Pool{blocks: blocks}
}

// ResolvePool looks up block-1..block-n and block-home from r.
// The first failed lookup aborts resolution.
func ResolvePool(ctx context.Context, r Resolver, n int) (*Pool, error) {
	blocks := make([]*Object, 0, n+1)
	for i := 0; i < n; i++ {
		o, err := r.FindObject(ctx, BlockName(i))
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, o)
	}
	home, err := r.FindObject(ctx, HomeBlockName)
	if err != nil {
		return nil, err
	}
	blocks = append(blocks, home)
	return &Pool{blocks: blocks}, nil
}

// Len returns the total number of slots, home included.
func (p *Pool) Len() int {
	return len(p.blocks)
}

// Capacity returns the number of ordinary (non-home) slots.
func (p *Pool) Capacity() int {
	return len(p.blocks) - 1
}

// At returns the block at index i. Panics on out-of-range indices, like a slice.
func (p *Pool) At(i int) *Object {
	return p.blocks[i]
}

// Home returns the home marker.
func (p *Pool) Home() *Object {
	return p.blocks[len(p.blocks)-1]
}

// HomeIndex returns the index of the home marker.
func (p *Pool) HomeIndex() int {
	return len(p.blocks) - 1
}

// HideAll marks every block hidden. Positions are left untouched.
func (p *Pool) HideAll() {
	for _, b := range p.blocks {
		b.Hidden = true
	}
}

// Visible returns the indices of all visible blocks in pool order.
func (p *Pool) Visible() []int {
	var idx []int
	for i, b := range p.blocks {
		if !b.Hidden {
			idx = append(idx, i)
		}
	}
	return idx
}
