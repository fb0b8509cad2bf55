// Package scene models the host-owned objects the layout core works on:
// positionable, hideable objects, textures, materials, the level picker,
// and a name-based resolver for looking them up at startup.
package scene

import "fmt"

// Vec2 is a position in local scene coordinates.
type Vec2 struct {
	X, Y float64
}

// Object is a positionable, hideable scene node.
// The layout core only toggles Hidden and overwrites Position.
type Object struct {
	Name     string
	Hidden   bool
	Position Vec2
}

// NewObject creates a hidden object at the origin.
func NewObject(name string) *Object {
	return &Object{Name: name, Hidden: true}
}

// String implements fmt.Stringer.
func (o *Object) String() string {
	state := "visible"
	if o.Hidden {
		state = "hidden"
	}
	return fmt.Sprintf("%s(%s x=%.4f y=%.4f)", o.Name, state, o.Position.X, o.Position.Y)
}

// Texture is an opaque, named image reference.
type Texture struct {
	Name string
}

// TextureSlot identifies a texture binding on a material.
type TextureSlot int

const (
	SlotDiffuse TextureSlot = iota
	SlotNormal
	SlotEmissive
)

// Material holds texture bindings keyed by slot.
type Material struct {
	Name  string
	slots map[TextureSlot]*Texture
}

// NewMaterial creates a material with no textures bound.
func NewMaterial(name string) *Material {
	return &Material{Name: name, slots: make(map[TextureSlot]*Texture)}
}

// SetTextureSlot binds tex to slot, replacing any previous binding.
func (m *Material) SetTextureSlot(slot TextureSlot, tex *Texture) {
	if m.slots == nil {
		m.slots = make(map[TextureSlot]*Texture)
	}
	m.slots[slot] = tex
}

// TextureSlot returns the texture bound to slot, or nil.
func (m *Material) TextureSlot(slot TextureSlot) *Texture {
	if m.slots == nil {
		return nil
	}
	return m.slots[slot]
}
