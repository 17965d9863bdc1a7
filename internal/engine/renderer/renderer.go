// Package renderer draws the terrain preview and the paint panel with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/relief-editor/internal/engine/camera"
	"github.com/Faultbox/relief-editor/internal/engine/shader"
	"github.com/Faultbox/relief-editor/internal/engine/terrain"
	"github.com/Faultbox/relief-editor/internal/engine/texture"
	"github.com/Faultbox/relief-editor/internal/engine/water"
	"github.com/Faultbox/relief-editor/internal/logger"
)

const (
	ambient      = 0.2
	cursorHeight = 200
)

var (
	lightDir     = mgl32.Vec3{0.5, 0.5, 0}
	cursorColor  = [4]float32{1, 1, 1, 1}
	clearColor   = [4]float32{0.2, 0.2, 0.2, 1}
	floatSize    = int(unsafe.Sizeof(float32(0)))
	terrainBytes = terrain.GridSize * terrain.GridSize * terrain.VertexStride * floatSize
)

// Frame is everything one redraw needs. Rectangles use window pixels with
// the origin at the top left.
type Frame struct {
	Mesh      *terrain.Mesh
	Camera    *camera.FlyCamera
	Water     *water.Plane
	Wireframe bool

	// Cursor draws a vertical line at grid cell (CursorX, CursorZ) rising
	// from CursorBase.
	Cursor           bool
	CursorX, CursorZ int
	CursorBase       float32

	Panel      *image.RGBA
	PanelDirty bool

	Window    image.Point
	PanelRect image.Rectangle
	ViewRect  image.Rectangle
}

// Renderer owns every GL object of the editor.
type Renderer struct {
	log *zap.Logger

	terrainProg *shader.Program
	flatProg    *shader.Program
	panelProg   *shader.Program

	terrainVAO, terrainVBO, terrainEBO uint32
	indexCount                         int32
	vertexData                         []float32

	waterVAO, waterVBO   uint32
	cursorVAO, cursorVBO uint32

	panelVAO, panelVBO uint32
	panelTex           uint32
	panelSize          image.Point

	textures *texture.Set
}

// New initializes GL and uploads static geometry and textures.
// Must be called after the GL context is current.
func New(lib *texture.Library, plane *water.Plane) (*Renderer, error) {
	r := &Renderer{log: logger.Named("renderer")}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])

	var err error
	if r.terrainProg, err = shader.New("terrain", terrainVertexShader, terrainFragmentShader); err != nil {
		return nil, err
	}
	if r.flatProg, err = shader.New("flat", flatVertexShader, flatFragmentShader); err != nil {
		return nil, err
	}
	if r.panelProg, err = shader.New("panel", panelVertexShader, panelFragmentShader); err != nil {
		return nil, err
	}

	r.createTerrain()
	r.createWater(plane)
	r.createCursor()
	r.createPanel()
	r.textures = UploadTextures(lib)

	r.log.Info("renderer ready",
		zap.Int32("indices", r.indexCount),
		zap.Int("textures", len(r.textures.Handles)),
	)
	return r, nil
}

// Textures returns the uploaded terrain texture set.
func (r *Renderer) Textures() *texture.Set {
	return r.textures
}

// Close releases GL resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	vaos := []uint32{r.terrainVAO, r.waterVAO, r.cursorVAO, r.panelVAO}
	bufs := []uint32{r.terrainVBO, r.terrainEBO, r.waterVBO, r.cursorVBO, r.panelVBO}
	gl.DeleteVertexArrays(int32(len(vaos)), &vaos[0])
	gl.DeleteBuffers(int32(len(bufs)), &bufs[0])
	if r.panelTex != 0 {
		gl.DeleteTextures(1, &r.panelTex)
	}
	deleteTextures(r.textures)
	r.terrainProg.Delete()
	r.flatProg.Delete()
	r.panelProg.Delete()
}

// createTerrain allocates the vertex buffer for streaming and uploads
// the fixed index list once.
func (r *Renderer) createTerrain() {
	indices := terrain.NewMesh().Indices()
	r.indexCount = int32(len(indices))

	gl.GenVertexArrays(1, &r.terrainVAO)
	gl.BindVertexArray(r.terrainVAO)

	gl.GenBuffers(1, &r.terrainVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.terrainVBO)
	gl.BufferData(gl.ARRAY_BUFFER, terrainBytes, nil, gl.DYNAMIC_DRAW)

	stride := int32(terrain.VertexStride * floatSize)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, uintptr(3*floatSize))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, stride, uintptr(5*floatSize))
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &r.terrainEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.terrainEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
}

func (r *Renderer) createWater(plane *water.Plane) {
	gl.GenVertexArrays(1, &r.waterVAO)
	gl.BindVertexArray(r.waterVAO)

	gl.GenBuffers(1, &r.waterVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.waterVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(plane.Vertices)*floatSize, unsafe.Pointer(&plane.Vertices[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(3*floatSize), 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
}

// createCursor uploads a unit-height line; the draw translates and scales it.
func (r *Renderer) createCursor() {
	line := []float32{0, 0, 0, 0, 1, 0}

	gl.GenVertexArrays(1, &r.cursorVAO)
	gl.BindVertexArray(r.cursorVAO)

	gl.GenBuffers(1, &r.cursorVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cursorVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(line)*floatSize, unsafe.Pointer(&line[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(3*floatSize), 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
}

// createPanel builds a unit quad with row 0 of the panel image at the top.
func (r *Renderer) createPanel() {
	quad := []float32{
		// x, y, u, v
		0, 0, 0, 0,
		1, 0, 1, 0,
		1, 1, 1, 1,
		0, 0, 0, 0,
		1, 1, 1, 1,
		0, 1, 0, 1,
	}

	gl.GenVertexArrays(1, &r.panelVAO)
	gl.BindVertexArray(r.panelVAO)

	gl.GenBuffers(1, &r.panelVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.panelVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*floatSize, unsafe.Pointer(&quad[0]), gl.STATIC_DRAW)
	stride := int32(4 * floatSize)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, uintptr(2*floatSize))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	gl.GenTextures(1, &r.panelTex)
	gl.BindTexture(gl.TEXTURE_2D, r.panelTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Draw renders one frame: the paint panel on the left, the preview on the right.
func (r *Renderer) Draw(f *Frame) {
	gl.Viewport(0, 0, int32(f.Window.X), int32(f.Window.Y))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if !f.PanelRect.Empty() && f.Panel != nil {
		r.drawPanel(f)
	}
	if !f.ViewRect.Empty() && f.Mesh != nil && f.Camera != nil {
		r.drawView(f)
	}
}

// viewport sets the GL viewport to rect, flipping to GL's bottom-left origin.
func viewport(window image.Point, rect image.Rectangle) {
	gl.Viewport(int32(rect.Min.X), int32(window.Y-rect.Max.Y), int32(rect.Dx()), int32(rect.Dy()))
}

func (r *Renderer) drawPanel(f *Frame) {
	viewport(f.Window, f.PanelRect)
	gl.Disable(gl.DEPTH_TEST)

	gl.BindTexture(gl.TEXTURE_2D, r.panelTex)
	size := f.Panel.Rect.Size()
	switch {
	case size != r.panelSize:
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(size.X), int32(size.Y),
			0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&f.Panel.Pix[0]))
		r.panelSize = size
	case f.PanelDirty:
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(size.X), int32(size.Y),
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&f.Panel.Pix[0]))
	}

	r.panelProg.Use()
	// unit quad, y down, so image row 0 lands at the top
	r.panelProg.SetMat4("uProjection", mgl32.Ortho2D(0, 1, 1, 0))
	r.panelProg.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(r.panelVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.Enable(gl.DEPTH_TEST)
}

func (r *Renderer) drawView(f *Frame) {
	viewport(f.Window, f.ViewRect)

	aspect := float32(f.ViewRect.Dx()) / float32(f.ViewRect.Dy())
	view := f.Camera.ViewMatrix()
	proj := f.Camera.Projection(aspect)
	viewProj := proj.Mul4(view)

	r.vertexData = f.Mesh.Interleave(r.vertexData)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.terrainVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.vertexData)*floatSize, unsafe.Pointer(&r.vertexData[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if f.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	r.terrainProg.Use()
	r.terrainProg.SetMat4("uView", view)
	r.terrainProg.SetMat4("uProjection", proj)
	r.terrainProg.SetVec3("uLightDir", lightDir)
	r.terrainProg.SetFloat("uAmbient", ambient)
	r.terrainProg.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.textures.Current())
	gl.BindVertexArray(r.terrainVAO)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if f.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.flatProg.Use()
	if f.Cursor {
		x := float32(terrain.CellSize * f.CursorX)
		z := float32(terrain.CellSize * f.CursorZ)
		model := mgl32.Translate3D(x, f.CursorBase, z).Mul4(mgl32.Scale3D(1, cursorHeight, 1))
		r.flatProg.SetMat4("uMVP", viewProj.Mul4(model))
		r.flatProg.SetVec4("uColor", cursorColor)
		gl.BindVertexArray(r.cursorVAO)
		gl.DrawArrays(gl.LINES, 0, 2)
	}

	if f.Water != nil {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
		r.flatProg.SetMat4("uMVP", viewProj)
		r.flatProg.SetVec4("uColor", f.Water.Color)
		gl.BindVertexArray(r.waterVAO)
		gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}
	gl.BindVertexArray(0)
}

// ReadView reads the preview viewport back as bottom-up RGBA rows.
func (r *Renderer) ReadView(window image.Point, rect image.Rectangle) ([]byte, int, int) {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(rect.Min.X), int32(window.Y-rect.Max.Y), int32(w), int32(h),
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}
