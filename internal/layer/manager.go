package layer

import (
	"fmt"

	"cogentcore.org/core/base/keylist"
)

// Manager is the registry of layers. At most one layer is selected.
type Manager struct {
	layers   keylist.List[string, *Layer]
	selected *Layer
	queue    *CommandQueue
}

// NewManager returns an empty manager with its own command queue.
func NewManager() *Manager {
	return &Manager{queue: &CommandQueue{}}
}

// Queue returns the queue every registered layer emits to.
func (m *Manager) Queue() *CommandQueue { return m.queue }

// AddLayer registers l under its name and replays its existing shapes onto
// the queue.
func (m *Manager) AddLayer(l *Layer) error {
	if err := m.layers.Add(l.name, l); err != nil {
		return fmt.Errorf("add layer %q: %w", l.name, ErrDuplicateKey)
	}
	l.attach(m.queue)
	return nil
}

// Layer looks up a layer by name.
func (m *Manager) Layer(name string) (*Layer, error) {
	l, ok := m.layers.AtTry(name)
	if !ok {
		return nil, fmt.Errorf("layer %q: %w", name, ErrNotFound)
	}
	return l, nil
}

// SelectLayer makes name the selected layer. An unknown name fails with
// ErrNotFound and leaves the current selection unchanged.
func (m *Manager) SelectLayer(name string) (*Layer, error) {
	l, err := m.Layer(name)
	if err != nil {
		return nil, err
	}
	if m.selected != nil {
		m.selected.Deselect()
	}
	l.Select()
	m.selected = l
	return l, nil
}

// SelectedLayer returns the selected layer, or nil.
func (m *Manager) SelectedLayer() *Layer { return m.selected }

// SetLayerVisibility shows or hides the named layer.
func (m *Manager) SetLayerVisibility(name string, visible bool) error {
	l, err := m.Layer(name)
	if err != nil {
		return err
	}
	l.SetVisible(visible)
	return nil
}

// Layers returns the layers in registration order.
func (m *Manager) Layers() []*Layer {
	out := make([]*Layer, len(m.layers.Values))
	copy(out, m.layers.Values)
	return out
}

// Names returns the layer names in registration order.
func (m *Manager) Names() []string {
	out := make([]string, len(m.layers.Keys))
	copy(out, m.layers.Keys)
	return out
}
