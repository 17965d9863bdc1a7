// Package editor ties the paint panel, terrain preview and camera together
// and routes input events to them.
package editor

import (
	"fmt"
	"image"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/relief-editor/internal/config"
	"github.com/Faultbox/relief-editor/internal/engine/camera"
	"github.com/Faultbox/relief-editor/internal/engine/input"
	"github.com/Faultbox/relief-editor/internal/engine/terrain"
	"github.com/Faultbox/relief-editor/internal/engine/texture"
	"github.com/Faultbox/relief-editor/internal/engine/water"
	"github.com/Faultbox/relief-editor/internal/logger"
	"github.com/Faultbox/relief-editor/internal/paint"
	"github.com/Faultbox/relief-editor/internal/relief"
)

// Dialogs shows file choosers and messages. done is called, possibly from
// another goroutine, only when the user picked a file.
type Dialogs interface {
	OpenFile(title string, done func(path string))
	SaveFile(title string, done func(path string))
	Message(title, text string)
}

// Deps are the platform services the controller calls out to.
type Deps struct {
	Dialogs      Dialogs
	Clipboard    func(text string) error
	CaptureMouse func(on bool)
}

// Controller owns the editor state. Handle is the only entry point for
// input; Frame advances one tick.
type Controller struct {
	cfg  *config.Config
	deps Deps
	log  *zap.Logger

	doc      relief.Document
	surface  *paint.Surface
	camera   *camera.FlyCamera
	sync     *terrain.Synchronizer
	water    *water.Plane
	textures *texture.Set
	texNames []string

	rendering  bool
	exit       bool
	wireframe  bool
	captured   bool
	screenshot bool

	window    image.Point
	panelRect image.Rectangle
	viewRect  image.Rectangle

	pending chan func()
}

// New builds a controller from configuration. No raster is loaded.
func New(cfg *config.Config, deps Deps) *Controller {
	cam := camera.NewFlyCamera()
	cam.X, cam.Y, cam.Z = cfg.Camera.Position[0], cfg.Camera.Position[1], cfg.Camera.Position[2]
	cam.Pitch, cam.Yaw = cfg.Camera.Pitch, cfg.Camera.Yaw
	cam.Speed = cfg.Camera.Speed
	cam.FOV, cam.Near, cam.Far = cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far

	c := &Controller{
		cfg:      cfg,
		deps:     deps,
		log:      logger.Named("editor"),
		surface:  paint.NewSurface(cfg.Paint.Scale, cfg.Paint.Change, cfg.Paint.UndoDepth),
		camera:   cam,
		sync:     terrain.NewSynchronizer(cfg.Terrain.VerticalScale, cfg.Terrain.WaterLevel, cfg.Terrain.NormalInterval),
		water:    water.BuildPlane(terrain.CellSize*terrain.GridSize, 0),
		textures: &texture.Set{},
		pending:  make(chan func(), 8),
	}
	c.Resize(cfg.Window.Width, cfg.Window.Height)
	return c
}

// SetTextures installs the uploaded texture set cycled by E and the
// file names of its slots.
func (c *Controller) SetTextures(s *texture.Set, names []string) {
	c.textures = s
	c.texNames = names
}

// TextureName returns the file name of the selected texture slot, empty
// when no names are known.
func (c *Controller) TextureName() string {
	if i := c.textures.Index(); i < len(c.texNames) {
		return c.texNames[i]
	}
	return ""
}

// Layout splits the window into the paint panel (left half) and the
// preview (right half).
func Layout(width, height int) (panel, view image.Rectangle) {
	half := width / 2
	return image.Rect(0, 0, half, height), image.Rect(half, 0, width, height)
}

// Resize recomputes the layout for a new window size.
func (c *Controller) Resize(width, height int) {
	c.window = image.Pt(width, height)
	c.panelRect, c.viewRect = Layout(width, height)
	c.surface.MarkDirty()
}

// Handle applies one input or window event.
func (c *Controller) Handle(e input.Event) {
	switch e.Type {
	case input.EventQuit, input.EventWindowClose:
		c.exit = true
	case input.EventWindowShown, input.EventWindowRestored:
		c.rendering = true
	case input.EventWindowHidden, input.EventWindowMinimized:
		c.rendering = false
	case input.EventWindowResize:
		c.Resize(e.Width, e.Height)
	case input.EventKeyDown:
		c.keyDown(e)
	case input.EventKeyUp:
		c.keyUp(e)
	case input.EventMouseMove:
		c.mouseMove(e)
	case input.EventMouseDown:
		c.mouseDown(e)
	case input.EventMouseUp:
		c.surface.Release(surfaceButton(e.Button))
	case input.EventMouseWheel:
		c.wheel(e)
	case input.EventMouseLeave:
		if !c.surface.Dragging() {
			c.surface.Leave()
		}
	}
}

func (c *Controller) keyDown(e input.Event) {
	if e.Mod.Has(input.ModCtrl) {
		if !e.Repeat {
			c.command(e)
		}
		return
	}

	switch e.Key {
	case input.KeyW:
		c.camera.Up = true
	case input.KeyS:
		c.camera.Down = true
	case input.KeyA:
		c.camera.Left = true
	case input.KeyD:
		c.camera.Right = true
	case input.KeySpace:
		c.camera.Moving = true
	case input.KeyEquals:
		c.surface.AddChange(1)
	case input.KeyMinus:
		c.surface.AddChange(-1)
	}

	if e.Repeat {
		return
	}
	switch e.Key {
	case input.KeyE:
		c.textures.Cycle()
	case input.KeyEscape:
		c.SetCaptured(!c.captured)
	case input.KeyF1:
		c.wireframe = false
	case input.KeyF2:
		c.wireframe = true
	case input.KeyF12:
		c.screenshot = true
	}
}

func (c *Controller) keyUp(e input.Event) {
	switch e.Key {
	case input.KeyW:
		c.camera.Up = false
	case input.KeyS:
		c.camera.Down = false
	case input.KeyA:
		c.camera.Left = false
	case input.KeyD:
		c.camera.Right = false
	case input.KeySpace:
		c.camera.Moving = false
	}
}

// command runs a Ctrl shortcut.
func (c *Controller) command(e input.Event) {
	switch e.Key {
	case input.KeyN:
		c.NewRelief()
	case input.KeyO:
		c.Open()
	case input.KeyR:
		c.Reopen()
	case input.KeyS:
		if e.Mod.Has(input.ModShift) {
			c.SaveAs()
		} else {
			c.Save()
		}
	case input.KeyE:
		c.ExportSTL()
	case input.KeyZ:
		c.surface.Undo(c.doc.Raster())
	case input.KeyC:
		c.CopySelection()
	case input.KeyQ:
		c.exit = true
	}
}

// SetCaptured turns look mode on or off.
func (c *Controller) SetCaptured(on bool) {
	c.captured = on
	if c.deps.CaptureMouse != nil {
		c.deps.CaptureMouse(on)
	}
}

func surfaceButton(b input.Button) paint.Button {
	switch b {
	case input.ButtonLeft:
		return paint.ButtonPrimary
	case input.ButtonRight:
		return paint.ButtonSecondary
	case input.ButtonMiddle:
		return paint.ButtonMiddle
	}
	return paint.ButtonNone
}

// panelLocal converts window coordinates to panel coordinates.
func (c *Controller) panelLocal(x, y int) (int, int) {
	return x - c.panelRect.Min.X, y - c.panelRect.Min.Y
}

func (c *Controller) mouseMove(e input.Event) {
	if c.captured {
		c.camera.Look(float32(e.XRel), float32(e.YRel))
		return
	}

	// Over the preview the selection is kept; ctrl+wheel edits it there.
	if image.Pt(e.X, e.Y).In(c.panelRect) || c.surface.Dragging() {
		x, y := c.panelLocal(e.X, e.Y)
		c.surface.Move(c.doc.Raster(), x, y)
	}
}

func (c *Controller) mouseDown(e input.Event) {
	if c.captured || !image.Pt(e.X, e.Y).In(c.panelRect) {
		return
	}
	x, y := c.panelLocal(e.X, e.Y)
	c.surface.Press(c.doc.Raster(), surfaceButton(e.Button), x, y)
}

func (c *Controller) wheel(e input.Event) {
	step := 1
	if e.Wheel < 0 {
		step = -1
	}
	switch {
	case e.Mod.Has(input.ModShift):
		c.camera.AddSpeed(float32(step) * camera.SpeedStep)
	case e.Mod.Has(input.ModCtrl):
		c.surface.PaintSelected(c.doc.Raster(), step)
	default:
		c.surface.AddScale(c.cfg.Paint.ZoomStep * float32(e.Wheel))
	}
}

// Frame runs queued dialog results, steps the camera and refreshes the
// mesh from the raster.
func (c *Controller) Frame() {
	c.drain()
	c.camera.Step()
	c.sync.Update(c.doc.Raster())
}

func (c *Controller) drain() {
	for {
		select {
		case fn := <-c.pending:
			fn()
		default:
			return
		}
	}
}

// post queues fn to run on the next Frame.
func (c *Controller) post(fn func()) {
	c.pending <- fn
}

// NewRelief replaces the raster with a blank one.
func (c *Controller) NewRelief() {
	c.doc.New()
	c.surface.Reset()
}

// Open asks for a file and loads it.
func (c *Controller) Open() {
	c.deps.Dialogs.OpenFile("Open relief", func(path string) {
		c.post(func() { c.OpenPath(path) })
	})
}

// OpenPath loads path. Failures are reported and leave the current raster.
func (c *Controller) OpenPath(path string) {
	if err := c.doc.Open(path); err != nil {
		c.fail("Open failed", err)
		return
	}
	c.surface.Reset()
}

// Reopen reloads the current file, or asks for one when there is none.
func (c *Controller) Reopen() {
	if c.doc.Path() == "" {
		c.Open()
		return
	}
	c.OpenPath(c.doc.Path())
}

// Save writes to the current file, or asks for one when there is none.
func (c *Controller) Save() {
	if c.doc.Raster() == nil {
		c.fail("Save failed", relief.ErrNothingToSave)
		return
	}
	if c.doc.Path() == "" {
		c.SaveAs()
		return
	}
	c.SavePath(c.doc.Path())
}

// SaveAs asks for a target file and saves there.
func (c *Controller) SaveAs() {
	if c.doc.Raster() == nil {
		c.fail("Save failed", relief.ErrNothingToSave)
		return
	}
	c.deps.Dialogs.SaveFile("Save relief", func(path string) {
		c.post(func() { c.SavePath(path) })
	})
}

// SavePath writes the raster to path.
func (c *Controller) SavePath(path string) {
	if err := c.doc.SaveAs(path); err != nil {
		c.fail("Save failed", err)
	}
}

// ExportSTL asks for a target and writes the current mesh as STL.
func (c *Controller) ExportSTL() {
	if c.doc.Raster() == nil {
		c.fail("Export failed", relief.ErrNothingToSave)
		return
	}
	c.deps.Dialogs.SaveFile("Export STL", func(path string) {
		c.post(func() { c.ExportPath(path) })
	})
}

// ExportPath writes the mesh to path, adding an .stl extension when missing.
func (c *Controller) ExportPath(path string) {
	if filepath.Ext(path) == "" {
		path += ".stl"
	}
	m := c.sync.Mesh()
	if err := m.ExportSTL(path); err != nil {
		c.fail("Export failed", err)
		return
	}
	b := m.Bounds()
	c.log.Info("mesh exported",
		zap.String("path", path),
		zap.Float32("min_height", b.Min[1]),
		zap.Float32("max_height", b.Max[1]),
	)
}

// CopySelection puts "x y value" of the selected cell on the clipboard.
func (c *Controller) CopySelection() {
	x, y, ok := c.surface.Selection()
	r := c.doc.Raster()
	if !ok || r == nil || c.deps.Clipboard == nil {
		return
	}
	text := fmt.Sprintf("%d %d %d", x, y, r.Value(x, y))
	if err := c.deps.Clipboard(text); err != nil {
		c.log.Warn("clipboard write failed", zap.Error(err))
	}
}

func (c *Controller) fail(title string, err error) {
	c.log.Warn(title, zap.Error(err))
	if c.deps.Dialogs != nil {
		c.deps.Dialogs.Message(title, err.Error())
	}
}

// Title returns the window title: the current document, then the texture.
func (c *Controller) Title() string {
	title := c.cfg.Window.Title
	if p := c.doc.Path(); p != "" {
		title = fmt.Sprintf("%s - %s", title, filepath.Base(p))
	}
	if name := c.TextureName(); name != "" {
		title = fmt.Sprintf("%s [%s]", title, name)
	}
	return title
}

// Cursor returns the selected grid cell and the terrain height under it,
// where the preview marker starts. ok is false without a selection or raster.
func (c *Controller) Cursor() (x, z int, base float32, ok bool) {
	x, z, ok = c.surface.Selection()
	if !ok || c.doc.Raster() == nil {
		return 0, 0, 0, false
	}
	m := c.sync.Mesh()
	return x, z, m.HeightAt(float32(x*terrain.CellSize), float32(z*terrain.CellSize)), true
}

// Exit reports whether the editor should close.
func (c *Controller) Exit() bool { return c.exit }

// Rendering reports whether the window is visible.
func (c *Controller) Rendering() bool { return c.rendering }

// Wireframe reports whether the terrain is drawn as lines.
func (c *Controller) Wireframe() bool { return c.wireframe }

// Captured reports whether look mode is active.
func (c *Controller) Captured() bool { return c.captured }

// TakeScreenshot reports and clears a pending screenshot request.
func (c *Controller) TakeScreenshot() bool {
	s := c.screenshot
	c.screenshot = false
	return s
}

// Document returns the open relief.
func (c *Controller) Document() *relief.Document { return &c.doc }

// Surface returns the paint surface.
func (c *Controller) Surface() *paint.Surface { return c.surface }

// Camera returns the fly camera.
func (c *Controller) Camera() *camera.FlyCamera { return c.camera }

// Mesh returns the synchronized terrain mesh.
func (c *Controller) Mesh() *terrain.Mesh { return c.sync.Mesh() }

// Water returns the water plane.
func (c *Controller) Water() *water.Plane { return c.water }

// Window returns the window size and the panel and preview rectangles.
func (c *Controller) Window() (size image.Point, panel, view image.Rectangle) {
	return c.window, c.panelRect, c.viewRect
}
