package scene

// PickerItem is one entry of the level picker.
type PickerItem struct {
	Texture *Texture
}

// SelectionHandler receives picker selection changes.
type SelectionHandler func(oldIndex, newIndex int)

// Picker is the host's level picker: a current selection plus a change
// notification stream. Notifications are delivered synchronously.
type Picker struct {
	items    []PickerItem
	selected int
	Visible  bool
	monitors []SelectionHandler
}

// NewPicker creates an empty, hidden picker.
func NewPicker() *Picker {
	return &Picker{}
}

// Configure replaces the items and sets the selection without notifying.
func (p *Picker) Configure(selectedIndex int, items []PickerItem) {
	p.items = append(p.items[:0], items...)
	p.selected = p.clamp(selectedIndex)
}

// clamp maps an index outside the items to the last item. With no items the
// index is kept as given.
func (p *Picker) clamp(i int) int {
	if len(p.items) == 0 || (i >= 0 && i < len(p.items)) {
		return i
	}
	return len(p.items) - 1
}

// Items returns the configured items.
func (p *Picker) Items() []PickerItem {
	return p.items
}

// SelectedIndex returns the current selection.
func (p *Picker) SelectedIndex() int {
	return p.selected
}

// SetSelectedIndex updates the selection and notifies monitors if it changed.
// Indices outside the items select the last item.
func (p *Picker) SetSelectedIndex(i int) {
	i = p.clamp(i)
	if i == p.selected {
		return
	}
	old := p.selected
	p.selected = i
	for _, h := range p.monitors {
		h(old, i)
	}
}

// Next moves the selection one item forward, wrapping around.
func (p *Picker) Next() {
	if len(p.items) == 0 {
		return
	}
	p.SetSelectedIndex((p.selected + 1) % len(p.items))
}

// Prev moves the selection one item back, wrapping around.
func (p *Picker) Prev() {
	if len(p.items) == 0 {
		return
	}
	p.SetSelectedIndex((p.selected - 1 + len(p.items)) % len(p.items))
}

// Monitor registers h for selection changes.
func (p *Picker) Monitor(h SelectionHandler) {
	p.monitors = append(p.monitors, h)
}
