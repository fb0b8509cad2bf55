package scene

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrAssetNotFound is returned when a named object, material or texture
// does not exist in the scene.
var ErrAssetNotFound = errors.New("scene: asset not found")

// AssetKind names the category of a resolvable asset.
type AssetKind string

const (
	KindObject   AssetKind = "object"
	KindMaterial AssetKind = "material"
	KindTexture  AssetKind = "texture"
)

// AssetResolutionError reports a failed startup lookup.
// It unwraps to ErrAssetNotFound or to the context error that aborted it.
type AssetResolutionError struct {
	Kind AssetKind
	Name string
	Err  error
}

func (e *AssetResolutionError) Error() string {
	return fmt.Sprintf("scene: cannot resolve %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *AssetResolutionError) Unwrap() error {
	return e.Err
}

// Resolver looks up named scene assets. Lookups may block on the host,
// so every call takes a context.
type Resolver interface {
	FindObject(ctx context.Context, name string) (*Object, error)
	FindMaterial(ctx context.Context, name string) (*Material, error)
	FindTexture(ctx context.Context, name string) (*Texture, error)
}

// Graph is an in-memory Resolver. The terminal host builds one at startup;
// tests build partial ones to exercise resolution failures.
type Graph struct {
	mu        sync.RWMutex
	objects   map[string]*Object
	materials map[string]*Material
	textures  map[string]*Texture
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		objects:   make(map[string]*Object),
		materials: make(map[string]*Material),
		textures:  make(map[string]*Texture),
	}
}

// AddObject registers a new hidden object and returns it.
// Adding an existing name returns the existing object.
func (g *Graph) AddObject(name string) *Object {
	g.mu.Lock()
	defer g.mu.Unlock()

	if o, ok := g.objects[name]; ok {
		return o
	}
	o := NewObject(name)
	g.objects[name] = o
	return o
}

// AddMaterial registers a material by name.
func (g *Graph) AddMaterial(name string) *Material {
	g.mu.Lock()
	defer g.mu.Unlock()

	if m, ok := g.materials[name]; ok {
		return m
	}
	m := NewMaterial(name)
	g.materials[name] = m
	return m
}

// AddTexture registers a texture by name.
func (g *Graph) AddTexture(name string) *Texture {
	g.mu.Lock()
	defer g.mu.Unlock()

	if t, ok := g.textures[name]; ok {
		return t
	}
	t := &Texture{Name: name}
	g.textures[name] = t
	return t
}

// FindObject implements Resolver.
func (g *Graph) FindObject(ctx context.Context, name string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, &AssetResolutionError{Kind: KindObject, Name: name, Err: err}
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	o, ok := g.objects[name]
	if !ok {
		return nil, &AssetResolutionError{Kind: KindObject, Name: name, Err: ErrAssetNotFound}
	}
	return o, nil
}

// FindMaterial implements Resolver.
func (g *Graph) FindMaterial(ctx context.Context, name string) (*Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, &AssetResolutionError{Kind: KindMaterial, Name: name, Err: err}
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	m, ok := g.materials[name]
	if !ok {
		return nil, &AssetResolutionError{Kind: KindMaterial, Name: name, Err: ErrAssetNotFound}
	}
	return m, nil
}

// FindTexture implements Resolver.
func (g *Graph) FindTexture(ctx context.Context, name string) (*Texture, error) {
	if err := ctx.Err(); err != nil {
		return nil, &AssetResolutionError{Kind: KindTexture, Name: name, Err: err}
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	t, ok := g.textures[name]
	if !ok {
		return nil, &AssetResolutionError{Kind: KindTexture, Name: name, Err: ErrAssetNotFound}
	}
	return t, nil
}

// Ensure Graph implements Resolver
var _ Resolver = (*Graph)(nil)
