// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"sync"

	"map-annotator/internal/app"
	"map-annotator/internal/applog"
	"map-annotator/internal/config"
	"map-annotator/internal/input"
	"map-annotator/internal/layer"
	"map-annotator/internal/picking"
	"map-annotator/internal/scene"
	"map-annotator/internal/version"
	"map-annotator/ui/canvas"
	"map-annotator/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

var toolLabels = []string{"Draw", "Drag", "Rotate / Scale"}

var toolByLabel = map[string]picking.Tool{
	"Draw":           picking.ToolDraw,
	"Drag":           picking.ToolTranslate,
	"Rotate / Scale": picking.ToolRotateScale,
}

func labelForTool(t picking.Tool) string {
	for label, tool := range toolByLabel {
		if tool == t {
			return label
		}
	}
	return toolLabels[0]
}

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app        fyne.App
	editor     *app.Editor
	prefs      *prefs.Prefs
	dispatcher *input.Dispatcher
	configPath string

	// mu guards every call into editor.
	mu sync.Mutex

	canvas      *canvas.EditorCanvas
	statusBar   *widget.Label
	pointerInfo *widget.Label
	toolRadio   *widget.RadioGroup
	layerSelect *widget.Select
	visChecks   map[string]*widget.Check
	angleSlider *widget.Slider
	angleLabel  *widget.Label
	zoomLabel   *widget.Label

	// syncing is set while widgets are updated from editor events so their
	// change callbacks do not call back into the editor.
	syncing bool
}

// New creates the main window around ed. Input is routed through d, which
// must already have ed subscribed.
func New(fyneApp fyne.App, ed *app.Editor, d *input.Dispatcher, p *prefs.Prefs, configPath string) *MainWindow {
	win := fyneApp.NewWindow("Map Annotator")

	mw := &MainWindow{
		Window:     win,
		app:        fyneApp,
		editor:     ed,
		prefs:      p,
		dispatcher: d,
		configPath: configPath,
		visChecks:  make(map[string]*widget.Check),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restorePrefs()

	win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		mw.canvas.Key(ev.Name)
	})
	win.SetCloseIntercept(func() {
		mw.savePrefs()
		win.Close()
	})

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewEditorCanvas(mw.editor, mw.dispatcher, &mw.mu)
	mw.canvas.OnPointer(mw.onPointer)

	mw.statusBar = widget.NewLabel("Ready")
	mw.pointerInfo = widget.NewLabel("")

	content := container.NewBorder(
		mw.createToolbar(), // top
		container.NewPadded(container.NewBorder(nil, nil, nil, mw.pointerInfo, mw.statusBar)), // bottom
		nil,       // left
		nil,       // right
		mw.canvas, // center
	)
	mw.SetContent(content)
}

// createToolbar builds the tool, layer, rotation and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	mw.toolRadio = widget.NewRadioGroup(toolLabels, mw.onToolChanged)
	mw.toolRadio.Horizontal = true
	mw.toolRadio.Required = true

	names := mw.editor.Layers.Names()
	mw.layerSelect = widget.NewSelect(names, mw.onLayerChanged)

	visBox := container.NewHBox()
	for _, name := range names {
		name := name
		check := widget.NewCheck(name, func(on bool) { mw.onVisibilityChanged(name, on) })
		check.Checked = true
		mw.visChecks[name] = check
		visBox.Add(check)
	}

	mw.angleLabel = widget.NewLabel("0°")
	mw.angleSlider = widget.NewSlider(0, 360)
	mw.angleSlider.Step = 1
	mw.angleSlider.OnChanged = mw.onAngleChanged

	mw.zoomLabel = widget.NewLabel("")
	mw.updateZoomLabel(mw.editor.Camera.Height())

	row1 := container.NewHBox(
		widget.NewLabel("Tool:"), mw.toolRadio,
		widget.NewSeparator(),
		widget.NewLabel("Layer:"), mw.layerSelect,
		widget.NewSeparator(),
		widget.NewLabel("Show:"), visBox,
	)
	row2 := container.NewBorder(nil, nil,
		widget.NewLabel("Rotation:"),
		container.NewHBox(
			mw.angleLabel,
			widget.NewSeparator(),
			widget.NewLabel("Zoom:"),
			widget.NewButton("-", func() { mw.zoom(1) }),
			widget.NewButton("+", func() { mw.zoom(-1) }),
			mw.zoomLabel,
			widget.NewSeparator(),
			widget.NewButton("Commit", mw.onCommit),
			widget.NewButton("Cancel", mw.onCancel),
		),
		mw.angleSlider,
	)
	return container.NewVBox(row1, row2)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save Config", mw.onSaveConfig),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.savePrefs()
			mw.app.Quit()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Commit Shape", mw.onCommit),
		fyne.NewMenuItem("Cancel Drawing", mw.onCancel),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.zoom(-1) }),
		fyne.NewMenuItem("Zoom Out", func() { mw.zoom(1) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for editor events. Listeners run while mu is
// held, so they only touch widgets.
func (mw *MainWindow) setupEventHandlers() {
	mw.editor.On(app.EventSceneChanged, func(interface{}) {
		mw.statusBar.SetText(mw.editor.Status())
		mw.canvas.Refresh()
	})

	mw.editor.On(app.EventAngleChanged, func(data interface{}) {
		deg, ok := data.(float64)
		if !ok {
			return
		}
		mw.angleLabel.SetText(fmt.Sprintf("%.0f°", deg))
		if mw.angleSlider.Value != deg {
			mw.syncing = true
			mw.angleSlider.SetValue(deg)
			mw.syncing = false
		}
	})

	mw.editor.On(app.EventZoomChanged, func(data interface{}) {
		if h, ok := data.(float64); ok {
			mw.updateZoomLabel(h)
		}
	})

	mw.editor.On(app.EventShapesCommitted, func(data interface{}) {
		if l, ok := data.(*layer.Layer); ok {
			mw.statusBar.SetText(fmt.Sprintf("Committed to %s (%d objects)", l.Name(), l.Len()))
		}
	})

	mw.editor.On(app.EventConfigReloaded, func(interface{}) {
		mw.statusBar.SetText("Configuration reloaded")
	})
}

func (mw *MainWindow) restorePrefs() {
	w, h := mw.prefs.WindowSize(1280, 800)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))

	tool := picking.ToolDraw
	if t, ok := picking.ParseTool(mw.prefs.String(prefs.KeyLastTool)); ok {
		tool = t
	}
	mw.syncing = true
	mw.toolRadio.SetSelected(labelForTool(tool))
	mw.syncing = false

	selected := ""
	if l := mw.editor.Layers.SelectedLayer(); l != nil {
		selected = l.Name()
	}
	if last := mw.prefs.String(prefs.KeyLastLayer); last != "" {
		if _, err := mw.editor.Layers.Layer(last); err == nil {
			selected = last
		}
	}
	mw.syncing = true
	mw.layerSelect.SetSelected(selected)
	mw.syncing = false

	var err error
	mw.withEditor(func(ed *app.Editor) {
		ed.SetTool(tool)
		if selected != "" {
			err = ed.SelectLayer(selected)
		}
	})
	if err != nil {
		applog.WithComponent("ui").Warn("MainWindow: restore layer", "layer", selected, "error", err)
	}
}

func (mw *MainWindow) savePrefs() {
	size := mw.Canvas().Size()
	mw.prefs.SetWindowSize(float64(size.Width), float64(size.Height))
	mw.mu.Lock()
	mw.prefs.SetString(prefs.KeyLastTool, mw.editor.Picker.Tool().String())
	if l := mw.editor.Layers.SelectedLayer(); l != nil {
		mw.prefs.SetString(prefs.KeyLastLayer, l.Name())
	}
	mw.mu.Unlock()
	if err := mw.prefs.Save(); err != nil {
		applog.WithComponent("ui").Warn("MainWindow: save preferences", "error", err)
	}
}

// withEditor runs fn under the editor lock and redraws the canvas.
func (mw *MainWindow) withEditor(fn func(ed *app.Editor)) {
	mw.mu.Lock()
	fn(mw.editor)
	mw.mu.Unlock()
	mw.canvas.Refresh()
}

func (mw *MainWindow) onToolChanged(label string) {
	tool, ok := toolByLabel[label]
	if !ok || mw.syncing {
		return
	}
	mw.withEditor(func(ed *app.Editor) { ed.SetTool(tool) })
	mw.updateStatus(fmt.Sprintf("Tool: %s", label))
}

func (mw *MainWindow) onLayerChanged(name string) {
	if mw.syncing {
		return
	}
	var err error
	mw.withEditor(func(ed *app.Editor) { err = ed.SelectLayer(name) })
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.updateStatus(fmt.Sprintf("Layer: %s", name))
}

func (mw *MainWindow) onVisibilityChanged(name string, visible bool) {
	var err error
	mw.withEditor(func(ed *app.Editor) { err = ed.SetLayerVisibility(name, visible) })
	if err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onAngleChanged(deg float64) {
	if mw.syncing {
		return
	}
	mw.withEditor(func(ed *app.Editor) { ed.SetRotation(deg) })
}

func (mw *MainWindow) zoom(ticks int) {
	mw.withEditor(func(ed *app.Editor) { ed.Zoom(ticks) })
}

func (mw *MainWindow) onCommit() {
	var err error
	mw.withEditor(func(ed *app.Editor) { _, err = ed.Commit() })
	if err != nil {
		mw.updateStatus("Commit failed: " + err.Error())
	}
}

func (mw *MainWindow) onCancel() {
	mw.withEditor(func(ed *app.Editor) { ed.Cancel() })
	mw.updateStatus("Drawing cancelled")
}

func (mw *MainWindow) onSaveConfig() {
	mw.mu.Lock()
	err := mw.editor.Config().Save(mw.configPath)
	mw.mu.Unlock()
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.updateStatus("Configuration saved to " + mw.configPath)
}

// ReloadConfig applies a configuration loaded from disk. It is safe to call
// from any goroutine.
func (mw *MainWindow) ReloadConfig(cfg *config.Config) {
	mw.withEditor(func(ed *app.Editor) { ed.ApplyConfig(cfg) })
}

func (mw *MainWindow) onPointer(p scene.Pointer) {
	mw.mu.Lock()
	ray := mw.editor.Camera.RayFromPointer(p)
	mw.mu.Unlock()
	t, ok := ray.IntersectPlaneZ(0)
	if !ok {
		mw.pointerInfo.SetText("")
		return
	}
	at := ray.At(t)
	mw.pointerInfo.SetText(fmt.Sprintf("%.1f, %.1f", at.X, at.Y))
}

func (mw *MainWindow) updateZoomLabel(height float64) {
	mw.zoomLabel.SetText(fmt.Sprintf("h=%.0f", height))
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Map Annotator",
		fmt.Sprintf("Map Annotator %s\n\nDraw, move, rotate and scale planar annotations\nover a background map.", version.String()),
		mw.Window)
}
