package app

import (
	"fmt"
	"image"
	"slices"

	"map-annotator/internal/applog"
	"map-annotator/internal/asset"
	"map-annotator/internal/config"
	"map-annotator/internal/draw"
	"map-annotator/internal/input"
	"map-annotator/internal/layer"
	"map-annotator/internal/mesh"
	"map-annotator/internal/picking"
	"map-annotator/internal/render"
	"map-annotator/internal/scene"
	"map-annotator/internal/transform"
	"map-annotator/pkg/colorutil"
)

// Editor is one annotation session over a background map. All methods except
// On must be called from the UI event loop.
type Editor struct {
	events

	cfg     *config.Config
	Map     *asset.Map
	Camera  *scene.Camera
	Scene   *scene.Scene
	Layers  *layer.Manager
	Session *draw.Session
	Picker  *picking.Adapter
	Raster  *render.Rasterizer

	builder *mesh.Builder
	sync    *render.Sync
}

// NewEditor builds the layers declared in cfg, each with a base plane over
// the map, and activates the first one.
func NewEditor(cfg *config.Config, m *asset.Map) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Editor{
		cfg:    cfg,
		Map:    m,
		Scene:  scene.New(),
		Layers: layer.NewManager(),
		Camera: scene.NewCamera(cfg.Camera.FOV, 1, cfg.Camera.Near, cfg.Camera.Far, cfg.Camera.MaxHeight),
		Raster: render.NewRasterizer(),
	}
	e.sync = render.NewSync(e.Scene)
	asset.FitCamera(e.Camera, m)

	for _, lc := range cfg.Layers {
		l := layer.NewLayer(lc.Name, config.Color(lc.Color, colorutil.Green))
		if err := l.Add(layer.NewBasePlane(m.Bounds())); err != nil {
			return nil, err
		}
		if err := e.Layers.AddLayer(l); err != nil {
			return nil, err
		}
	}

	e.builder = mesh.NewBuilder(mesh.DefaultOptions())
	e.Session = draw.NewSession(e.builder, draw.DefaultOptions())
	e.Picker = picking.New(e.Layers, e.Session, scene.PlanarRaycaster{}, e.Camera, picking.Options{})
	e.ApplyConfig(cfg)

	e.Raster.Background = m.Image
	e.Raster.World = m.Bounds()

	if _, err := e.Picker.SelectLayer(cfg.Layers[0].Name); err != nil {
		return nil, err
	}
	e.sync.Flush(e.Layers.Queue())
	applog.WithComponent("app").Info("Editor: ready", "layers", e.Layers.Names(),
		"map", fmt.Sprintf("%dx%d", m.Width(), m.Height()))
	return e, nil
}

// Config returns the active configuration.
func (e *Editor) Config() *config.Config { return e.cfg }

// ApplyConfig updates styling, tolerances, limits and the log level. Existing
// shapes keep their colors; layer highlight colors apply to future commits.
// The layer set itself is fixed at startup, so added or removed layers are
// only reported.
func (e *Editor) ApplyConfig(cfg *config.Config) {
	log := applog.WithComponent("app")
	if level, err := applog.ParseLevel(cfg.Log.Level); err != nil {
		log.Warn("Config: keeping log level", "error", err)
	} else {
		applog.SetLevel(level)
	}

	e.cfg = cfg
	d := cfg.Drawing
	e.builder.SetOptions(mesh.Options{
		FillOpacity:  d.FillOpacity,
		OutlineColor: config.Color(d.OutlineColor, colorutil.Outline),
	})
	e.Session.SetOptions(draw.Options{SnapRadius: d.SnapRadius})
	lim := transform.Limits{Min: cfg.Camera.MinHeight, Max: cfg.Camera.MaxHeight}
	e.Picker.SetOptions(picking.Options{Zoom: lim})
	e.Picker.SetRaycaster(scene.PlanarRaycaster{LineTolerance: cfg.Picking.LineTolerance})

	e.Raster.ClearColor = config.Color(d.ClearColor, colorutil.Black)
	e.Raster.PreviewColor = config.Color(d.LineColor, colorutil.Preview)
	e.Raster.MarkerRadius = d.MarkerRadius
	e.Raster.LineWidth = d.LineWidth

	for _, lc := range cfg.Layers {
		if l, err := e.Layers.Layer(lc.Name); err == nil {
			l.SetHighlightColor(config.Color(lc.Color, l.HighlightColor()))
		}
	}
	if added, missing := diffNames(cfg.LayerNames(), e.Layers.Names()); len(added)+len(missing) > 0 {
		log.Warn("Config: layer set changed, restart to apply", "added", added, "missing", missing)
	}

	if h := lim.Clamp(e.Camera.Height()); h != e.Camera.Height() {
		e.Camera.SetHeight(h)
		e.Camera.UpdateProjection()
		e.Emit(EventZoomChanged, h)
	}
	e.sync.Touch()
	e.Emit(EventConfigReloaded, cfg)
}

// diffNames returns the names in want that have lacks, and the names in
// have that want lacks.
func diffNames(want, have []string) (added, missing []string) {
	for _, n := range want {
		if !slices.Contains(have, n) {
			added = append(added, n)
		}
	}
	for _, n := range have {
		if !slices.Contains(want, n) {
			missing = append(missing, n)
		}
	}
	return added, missing
}

// Start subscribes the editor to d. The returned function releases the
// subscription.
func (e *Editor) Start(d *input.Dispatcher) (stop func()) {
	return d.Subscribe(e)
}

// HandleEvent routes one input event and reports whether it was consumed.
func (e *Editor) HandleEvent(ev input.Event) bool {
	handled := e.route(ev)
	if e.sync.Flush(e.Layers.Queue()) > 0 {
		handled = true
		e.Emit(EventSceneChanged, e.sync.Generation())
	}
	return handled
}

func (e *Editor) route(ev input.Event) bool {
	log := applog.WithComponent("app")
	switch ev.Kind {
	case input.Click:
		before := e.Picker.Selected()
		outcome, err := e.Picker.Click(ev.Pointer)
		if err != nil {
			log.Warn("Editor: click", "outcome", outcome, "error", err)
		}
		if e.Picker.Selected() != before {
			e.Emit(EventSelectionChanged, e.Picker.Selected())
			e.Emit(EventAngleChanged, e.Picker.Angle())
		}
		switch outcome {
		case picking.OutcomeAppended:
			e.changed()
		case picking.OutcomeCommitted:
			e.sync.Flush(e.Layers.Queue())
			e.Emit(EventShapesCommitted, e.Layers.SelectedLayer())
			e.changed()
		}
		return outcome != picking.OutcomeIgnored
	case input.SecondaryClick:
		_, err := e.Commit()
		return err == nil
	case input.PointerDown:
		return e.Picker.PointerDown(ev.Pointer)
	case input.PointerMove:
		if e.Picker.PointerMove(ev.Pointer, ev.Pressed) {
			e.changed()
			return true
		}
		return false
	case input.PointerUp:
		e.Picker.PointerUp()
		return true
	case input.Scroll:
		e.Zoom(ev.Ticks)
		return true
	case input.Key:
		switch ev.Key {
		case input.KeyEscape:
			e.Cancel()
			return true
		case input.KeyEnter:
			_, err := e.Commit()
			return err == nil
		}
	}
	return false
}

func (e *Editor) changed() {
	e.sync.Touch()
	e.Emit(EventSceneChanged, e.sync.Generation())
}

// SetTool switches the interaction mode.
func (e *Editor) SetTool(t picking.Tool) {
	e.Picker.SetTool(t)
	e.Emit(EventToolChanged, t)
}

// SelectLayer activates the named layer, discarding any drawing in progress.
func (e *Editor) SelectLayer(name string) error {
	l, err := e.Picker.SelectLayer(name)
	if err != nil {
		return err
	}
	e.Emit(EventLayerSelected, l)
	e.Emit(EventSelectionChanged, e.Picker.Selected())
	e.Emit(EventAngleChanged, e.Picker.Angle())
	e.changed()
	return nil
}

// SetLayerVisibility shows or hides a layer.
func (e *Editor) SetLayerVisibility(name string, visible bool) error {
	if err := e.Layers.SetLayerVisibility(name, visible); err != nil {
		return err
	}
	e.sync.Flush(e.Layers.Queue())
	e.Emit(EventLayerVisibility, name)
	e.changed()
	return nil
}

// SetRotation applies the rotation slider value in degrees.
func (e *Editor) SetRotation(deg float64) {
	rotated := e.Picker.SetRotation(deg)
	e.Emit(EventAngleChanged, e.Picker.Angle())
	if rotated {
		e.changed()
	}
}

// Zoom moves the camera by ticks scroll steps; negative zooms in.
func (e *Editor) Zoom(ticks int) {
	h := e.Picker.Scroll(ticks)
	e.Emit(EventZoomChanged, h)
	e.changed()
}

// Commit finishes the current drawing.
func (e *Editor) Commit() ([]*layer.Shape, error) {
	shapes, err := e.Picker.Commit()
	e.sync.Flush(e.Layers.Queue())
	if len(shapes) > 0 {
		e.Emit(EventShapesCommitted, e.Layers.SelectedLayer())
	}
	e.changed()
	return shapes, err
}

// Cancel discards the current drawing.
func (e *Editor) Cancel() {
	e.Picker.Cancel()
	e.changed()
}

// Generation increases whenever the picture needs redrawing.
func (e *Editor) Generation() uint64 { return e.sync.Generation() }

// Render draws the current scene and drawing preview at w×h pixels.
func (e *Editor) Render(w, h int) (*image.RGBA, error) {
	if h > 0 {
		e.Camera.SetAspect(float64(w) / float64(h))
	}
	return e.Raster.Render(w, h, e.Camera, e.Scene, e.Session.Vertices())
}

// Status summarises the session for a status bar.
func (e *Editor) Status() string {
	return e.Picker.Describe()
}
