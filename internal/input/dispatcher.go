// Package input routes pointer and keyboard events to subscribed handlers.
package input

import "map-annotator/internal/scene"

// EventKind identifies an input event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Click
	SecondaryClick
	Scroll
	Key
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointer-down"
	case PointerMove:
		return "pointer-move"
	case PointerUp:
		return "pointer-up"
	case Click:
		return "click"
	case SecondaryClick:
		return "secondary-click"
	case Scroll:
		return "scroll"
	case Key:
		return "key"
	}
	return "unknown"
}

// Key names delivered with Key events.
const (
	KeyEscape = "Escape"
	KeyEnter  = "Return"
)

// Event is one input occurrence. Pointer is in normalized device coordinates.
type Event struct {
	Kind    EventKind
	Pointer scene.Pointer
	// Pressed reports whether the primary button is held during PointerMove.
	Pressed bool
	// Ticks is the scroll step count; negative zooms in.
	Ticks int
	Key   string
}

// Handler consumes events. It returns true if the event was handled.
type Handler interface {
	HandleEvent(Event) bool
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(Event) bool

func (f HandlerFunc) HandleEvent(ev Event) bool { return f(ev) }

type subscription struct {
	id int
	h  Handler
}

// Dispatcher delivers events to subscribers in subscription order until one
// handles it. It is used from the UI event loop only.
type Dispatcher struct {
	subs   []subscription
	nextID int
}

// NewDispatcher returns a dispatcher with no subscribers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe adds h and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (d *Dispatcher) Subscribe(h Handler) (unsubscribe func()) {
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription{id: id, h: h})
	return func() {
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev and reports whether any handler consumed it.
func (d *Dispatcher) Dispatch(ev Event) bool {
	subs := append([]subscription(nil), d.subs...)
	for _, s := range subs {
		if s.h.HandleEvent(ev) {
			return true
		}
	}
	return false
}

// Len returns the number of subscribers.
func (d *Dispatcher) Len() int { return len(d.subs) }
