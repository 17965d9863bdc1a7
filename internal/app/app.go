// Package app runs the editor window: it pumps SDL events into the editor
// controller and draws each frame.
package app

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/relief-editor/internal/config"
	"github.com/Faultbox/relief-editor/internal/editor"
	"github.com/Faultbox/relief-editor/internal/engine/debug"
	"github.com/Faultbox/relief-editor/internal/engine/input"
	"github.com/Faultbox/relief-editor/internal/engine/renderer"
	"github.com/Faultbox/relief-editor/internal/engine/texture"
	"github.com/Faultbox/relief-editor/internal/engine/window"
	"github.com/Faultbox/relief-editor/internal/logger"
	"github.com/Faultbox/relief-editor/internal/paint"
)

// App is the running editor.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window      *window.Window
	renderer    *renderer.Renderer
	controller  *editor.Controller
	panel       *paint.Panel
	screenshots *debug.Screenshots
	events      *input.Queue

	title string
}

// New opens the window, uploads textures and loads the startup file.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:         cfg,
		log:         logger.Named("app"),
		screenshots: debug.NewScreenshots(cfg.Paths.Screenshots, "relief"),
		events:      input.NewQueue(),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.controller = editor.New(cfg, editor.Deps{
		Dialogs:      &nativeDialogs{log: a.log},
		Clipboard:    writeClipboard,
		CaptureMouse: a.window.SetMouseCaptured,
	})

	lib := texture.Scan(cfg.Paths.Textures)
	a.renderer, err = renderer.New(lib, a.controller.Water())
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.controller.SetTextures(a.renderer.Textures(), lib.Names)

	w, h := a.window.Size()
	a.controller.Resize(w, h)
	_, panelRect, _ := a.controller.Window()
	a.panel, err = paint.NewPanel(panelRect.Dx(), panelRect.Dy())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create paint panel: %w", err)
	}

	// SDL may have delivered SHOWN before the first poll
	a.controller.Handle(input.Event{Type: input.EventWindowShown})

	if cfg.Paths.Open != "" {
		a.controller.OpenPath(cfg.Paths.Open)
	}

	a.log.Info("editor ready",
		zap.Int("textures", lib.Len()),
		zap.Bool("fallback_texture", lib.Fallback),
	)
	return a, nil
}

// Run loops until the controller asks to exit.
func (a *App) Run() error {
	a.log.Info("starting main loop")

	var frameMS uint32
	if !a.cfg.Window.VSync && a.cfg.Window.FPSLimit > 0 {
		frameMS = uint32(1000 / a.cfg.Window.FPSLimit)
	}

	for !a.controller.Exit() {
		start := window.Ticks()

		a.events.Reset()
		a.window.Poll(a.events)
		for _, e := range a.events.Events() {
			a.controller.Handle(e)
		}
		a.syncSize()

		a.controller.Frame()
		if a.controller.Rendering() {
			a.draw()
			a.window.SwapBuffers()
		}
		a.updateTitle()

		if frameMS > 0 {
			if spent := window.Ticks() - start; spent < frameMS {
				window.Delay(frameMS - spent)
			}
		} else if !a.controller.Rendering() {
			// no swap to block on while hidden
			window.Delay(10)
		}
	}

	a.log.Info("main loop finished")
	return nil
}

// syncSize follows the drawable size, which differs from the window size
// reported in resize events on high-DPI displays.
func (a *App) syncSize() {
	w, h := a.window.Size()
	if size, _, _ := a.controller.Window(); size != image.Pt(w, h) {
		a.controller.Resize(w, h)
	}
}

func (a *App) draw() {
	c := a.controller
	size, panelRect, viewRect := c.Window()
	s := c.Surface()

	dirty := s.TakeDirty()
	if dirty {
		a.panel.Resize(panelRect.Dx(), panelRect.Dy())
		a.panel.Compose(c.Document().Raster(), s, c.Document().Path())
	}

	f := &renderer.Frame{
		Mesh:       c.Mesh(),
		Camera:     c.Camera(),
		Water:      c.Water(),
		Wireframe:  c.Wireframe(),
		Panel:      a.panel.Image(),
		PanelDirty: dirty,
		Window:     size,
		PanelRect:  panelRect,
		ViewRect:   viewRect,
	}
	if x, z, base, ok := c.Cursor(); ok {
		f.Cursor, f.CursorX, f.CursorZ, f.CursorBase = true, x, z, base
	}
	a.renderer.Draw(f)

	if c.TakeScreenshot() {
		a.screenshot(size, viewRect)
	}
}

func (a *App) screenshot(size image.Point, view image.Rectangle) {
	pixels, w, h := a.renderer.ReadView(size, view)
	path, err := a.screenshots.Save(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) updateTitle() {
	if t := a.controller.Title(); t != a.title {
		a.title = t
		a.window.SetTitle(t)
	}
}

// Close releases GL objects and the window.
func (a *App) Close() {
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
