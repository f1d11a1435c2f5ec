// Package canvas provides the map view widget. It renders the editor scene
// into a raster and forwards pointer, wheel and key input to a dispatcher.
package canvas

import (
	"image"
	"image/color"
	"sync"

	"map-annotator/internal/applog"
	"map-annotator/internal/input"
	"map-annotator/internal/scene"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Renderer produces the picture for a w×h pixel viewport.
type Renderer interface {
	Render(w, h int) (*image.RGBA, error)
}

// EditorCanvas displays the annotated map.
type EditorCanvas struct {
	widget.BaseWidget

	source     Renderer
	dispatcher *input.Dispatcher
	raster     *fynecanvas.Raster
	// mu serializes input dispatch and rendering, which fyne runs on
	// different goroutines.
	mu sync.Locker

	pressed  bool
	dragging bool

	onPointer func(p scene.Pointer)
}

// NewEditorCanvas creates a canvas drawing from source and sending input to
// d. Both happen while holding mu; a nil mu gets a private mutex.
func NewEditorCanvas(source Renderer, d *input.Dispatcher, mu sync.Locker) *EditorCanvas {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	ec := &EditorCanvas{source: source, dispatcher: d, mu: mu}
	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.raster.ScaleMode = fynecanvas.ImageScalePixels
	ec.raster.SetMinSize(fyne.NewSize(400, 300))
	ec.ExtendBaseWidget(ec)
	return ec
}

// OnPointer sets a callback for pointer position updates, e.g. for a
// coordinate readout.
func (ec *EditorCanvas) OnPointer(cb func(p scene.Pointer)) {
	ec.onPointer = cb
}

func (ec *EditorCanvas) draw(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	ec.mu.Lock()
	img, err := ec.source.Render(w, h)
	ec.mu.Unlock()
	if err != nil {
		applog.WithComponent("ui").Warn("Canvas: render failed", "error", err)
		blank := image.NewRGBA(image.Rect(0, 0, w, h))
		for i := 3; i < len(blank.Pix); i += 4 {
			blank.Pix[i] = 255
		}
		return blank
	}
	return img
}

// pointer converts a widget-relative position to normalized device
// coordinates. The conversion only depends on the ratio of position to size,
// so device scaling does not matter.
func (ec *EditorCanvas) pointer(pos fyne.Position) (scene.Pointer, bool) {
	size := ec.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return scene.Pointer{}, false
	}
	// Fyne sometimes delivers taps outside the widget bounds.
	if pos.X < 0 || pos.Y < 0 || pos.X > size.Width || pos.Y > size.Height {
		return scene.Pointer{}, false
	}
	p := scene.PointerFromPixels(float64(pos.X), float64(pos.Y), float64(size.Width), float64(size.Height))
	if ec.onPointer != nil {
		ec.onPointer(p)
	}
	return p, true
}

func (ec *EditorCanvas) send(ev input.Event) {
	ec.mu.Lock()
	handled := ec.dispatcher.Dispatch(ev)
	ec.mu.Unlock()
	if handled {
		ec.raster.Refresh()
	}
}

func (ec *EditorCanvas) sendAt(kind input.EventKind, pos fyne.Position, pressed bool) {
	p, ok := ec.pointer(pos)
	if !ok {
		return
	}
	ec.send(input.Event{Kind: kind, Pointer: p, Pressed: pressed})
}

// Tapped handles left-click events.
func (ec *EditorCanvas) Tapped(ev *fyne.PointEvent) {
	if a := fyne.CurrentApp(); a != nil {
		if c := a.Driver().CanvasForObject(ec); c != nil {
			c.Focus(ec)
		}
	}
	ec.sendAt(input.Click, ev.Position, false)
}

// TappedSecondary handles right-click events.
func (ec *EditorCanvas) TappedSecondary(ev *fyne.PointEvent) {
	ec.sendAt(input.SecondaryClick, ev.Position, false)
}

// MouseDown implements desktop.Mouseable.
func (ec *EditorCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	ec.pressed = true
	ec.sendAt(input.PointerDown, ev.Position, true)
}

// MouseUp implements desktop.Mouseable.
func (ec *EditorCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	ec.release()
}

func (ec *EditorCanvas) release() {
	if !ec.pressed && !ec.dragging {
		return
	}
	ec.pressed = false
	ec.dragging = false
	ec.send(input.Event{Kind: input.PointerUp})
}

// Dragged moves the current gesture.
func (ec *EditorCanvas) Dragged(ev *fyne.DragEvent) {
	ec.dragging = true
	ec.sendAt(input.PointerMove, ev.Position, true)
}

// DragEnd finishes the current gesture.
func (ec *EditorCanvas) DragEnd() {
	ec.release()
}

// MouseIn implements desktop.Hoverable.
func (ec *EditorCanvas) MouseIn(ev *desktop.MouseEvent) {
	ec.sendAt(input.PointerMove, ev.Position, false)
}

// MouseMoved updates hover highlighting while no button is held.
func (ec *EditorCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if ec.pressed || ec.dragging {
		return
	}
	ec.sendAt(input.PointerMove, ev.Position, false)
}

// MouseOut implements desktop.Hoverable.
func (ec *EditorCanvas) MouseOut() {}

// Scrolled zooms the camera; scrolling up zooms in.
func (ec *EditorCanvas) Scrolled(ev *fyne.ScrollEvent) {
	switch {
	case ev.Scrolled.DY > 0:
		ec.send(input.Event{Kind: input.Scroll, Ticks: -1})
	case ev.Scrolled.DY < 0:
		ec.send(input.Event{Kind: input.Scroll, Ticks: 1})
	}
}

// FocusGained implements fyne.Focusable.
func (ec *EditorCanvas) FocusGained() {}

// FocusLost implements fyne.Focusable.
func (ec *EditorCanvas) FocusLost() {}

// TypedRune implements fyne.Focusable.
func (ec *EditorCanvas) TypedRune(rune) {}

// TypedKey forwards Escape and Enter to the dispatcher.
func (ec *EditorCanvas) TypedKey(ev *fyne.KeyEvent) {
	ec.Key(ev.Name)
}

// Key dispatches a named key press.
func (ec *EditorCanvas) Key(name fyne.KeyName) {
	switch name {
	case fyne.KeyEscape:
		ec.send(input.Event{Kind: input.Key, Key: input.KeyEscape})
	case fyne.KeyReturn, fyne.KeyEnter:
		ec.send(input.Event{Kind: input.Key, Key: input.KeyEnter})
	}
}

// Refresh redraws the raster.
func (ec *EditorCanvas) Refresh() {
	ec.raster.Refresh()
	ec.BaseWidget.Refresh()
}

// MinSize implements fyne.Widget.
func (ec *EditorCanvas) MinSize() fyne.Size {
	return ec.raster.MinSize()
}

// CreateRenderer implements fyne.Widget.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := fynecanvas.NewRectangle(color.Black)
	return &editorCanvasRenderer{canvas: ec, bg: bg}
}

type editorCanvasRenderer struct {
	canvas *EditorCanvas
	bg     *fynecanvas.Rectangle
}

func (r *editorCanvasRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.canvas.raster.Resize(size)
}

func (r *editorCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *editorCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *editorCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.canvas.raster}
}

func (r *editorCanvasRenderer) Destroy() {}
