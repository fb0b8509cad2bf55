// Package registry keeps the level definitions the picker can select.
// Each entry knows how to lay itself out on a block pool, so the selector
// can dispatch by index without hardcoding level behavior.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/blockpath/internal/layout"
	"github.com/vovakirdan/blockpath/internal/scene"
)

// LayoutFunc applies a level's layout to a pool that has already been cleared.
type LayoutFunc func(pool *scene.Pool, src layout.Source) error

// Entry describes one selectable level.
type Entry struct {
	Index int
	Name  string
	Title string
	Steps int // 0 for canned layouts
	Apply LayoutFunc
}

// Registry maps level indices to entries. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[int]Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[int]Entry)}
}

// Register adds a level entry.
// Panics if a level with the same index is already registered or Apply is nil.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.Apply == nil {
		panic(fmt.Sprintf("registry: level %d has no layout", e.Index))
	}
	if _, exists := r.entries[e.Index]; exists {
		panic(fmt.Sprintf("registry: level %d already registered", e.Index))
	}
	r.entries[e.Index] = e
}

// List returns all entries sorted by index.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Index < result[j].Index
	})

	return result
}

// Lookup returns the entry for index.
func (r *Registry) Lookup(index int) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[index]
	return e, ok
}

// Exists checks if a level with the given index is registered.
func (r *Registry) Exists(index int) bool {
	_, ok := r.Lookup(index)
	return ok
}

// Highest returns the entry with the largest index.
func (r *Registry) Highest() (Entry, bool) {
	list := r.List()
	if len(list) == 0 {
		return Entry{}, false
	}
	return list[len(list)-1], true
}

// Len returns the number of registered levels.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
