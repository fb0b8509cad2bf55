// Package shadow implements the tap-driven switch between the shadow
// visualization and the person segmentation overlay.
package shadow

import (
	"context"
	"sync"

	"github.com/vovakirdan/blockpath/internal/config"
	"github.com/vovakirdan/blockpath/internal/scene"
)

// Toggle flips between the shadow anchor and the segmentation overlay.
// Exactly one of the two is visible at any time after Init.
type Toggle struct {
	mu      sync.Mutex
	enabled bool

	anchor       *scene.Object
	segmentation *scene.Object
	button       *scene.Object
	material     *scene.Material
	textureOn    *scene.Texture
	textureOff   *scene.Texture
}

// New creates a toggle over already resolved assets.
func New(anchor, segmentation, button *scene.Object, material *scene.Material, on, off *scene.Texture) *Toggle {
	return &Toggle{
		anchor:       anchor,
		segmentation: segmentation,
		button:       button,
		material:     material,
		textureOn:    on,
		textureOff:   off,
	}
}

// Resolve looks up every asset named in cfg. The first failure is returned
// as a *scene.AssetResolutionError.
func Resolve(ctx context.Context, r scene.Resolver, cfg config.SceneConfig) (*Toggle, error) {
	anchor, err := r.FindObject(ctx, cfg.ShadowAnchor)
	if err != nil {
		return nil, err
	}
	segmentation, err := r.FindObject(ctx, cfg.Segmentation)
	if err != nil {
		return nil, err
	}
	button, err := r.FindObject(ctx, cfg.ShadowButton)
	if err != nil {
		return nil, err
	}
	material, err := r.FindMaterial(ctx, cfg.ShadowMaterial)
	if err != nil {
		return nil, err
	}
	on, err := r.FindTexture(ctx, cfg.ShadowTextureOn)
	if err != nil {
		return nil, err
	}
	off, err := r.FindTexture(ctx, cfg.ShadowTextureOff)
	if err != nil {
		return nil, err
	}
	return New(anchor, segmentation, button, material, on, off), nil
}

// Init applies the initial state and makes the button visible.
func (t *Toggle) Init(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.button.Hidden = false
	t.apply(enabled)
}

// Flip inverts the state and returns the new one.
func (t *Toggle) Flip() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.apply(!t.enabled)
	return t.enabled
}

// Enabled reports whether the shadow is shown.
func (t *Toggle) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

// Button returns the tappable button object.
func (t *Toggle) Button() *scene.Object {
	return t.button
}

func (t *Toggle) apply(enabled bool) {
	t.enabled = enabled
	if enabled {
		t.material.SetTextureSlot(scene.SlotDiffuse, t.textureOn)
	} else {
		t.material.SetTextureSlot(scene.SlotDiffuse, t.textureOff)
	}
	t.anchor.Hidden = !enabled
	t.segmentation.Hidden = enabled
}
