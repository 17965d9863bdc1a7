package paint

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/f64"

	"github.com/Faultbox/relief-editor/internal/relief"
)

const (
	statusFontSize = 12.0
	statusHeight   = 18
)

var (
	selectionColor = color.RGBA{R: 255, G: 64, B: 64, A: 255}
	statusBack     = color.RGBA{R: 0, G: 0, B: 0, A: 200}
	statusFore     = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

// Panel composes the paint view into an RGBA image for upload.
type Panel struct {
	img  *image.RGBA
	dc   *gg.Context
	face font.Face
}

// NewPanel allocates a w×h panel and loads the status font.
func NewPanel(w, h int) (*Panel, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	p := &Panel{
		face: truetype.NewFace(ttf, &truetype.Options{
			Size:    statusFontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
	}
	p.Resize(w, h)
	return p, nil
}

// Resize reallocates the backing image. Sizes below 1 are raised to 1.
func (p *Panel) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if p.img != nil && p.img.Rect.Dx() == w && p.img.Rect.Dy() == h {
		return
	}
	p.img = image.NewRGBA(image.Rect(0, 0, w, h))
	p.dc = gg.NewContextForRGBA(p.img)
	p.dc.SetFontFace(p.face)
}

// Image returns the last composed frame.
func (p *Panel) Image() *image.RGBA {
	return p.img
}

// Size returns the panel dimensions in pixels.
func (p *Panel) Size() (int, int) {
	return p.img.Rect.Dx(), p.img.Rect.Dy()
}

// Compose redraws the panel: black background, the raster at the surface
// pan and zoom, the selected cell outline and a status line.
// A nil raster leaves the panel black apart from the status line.
func (p *Panel) Compose(r *relief.Raster, s *Surface, file string) *image.RGBA {
	dc := p.dc
	dc.SetColor(color.Black)
	dc.Clear()

	if r != nil {
		aff := f64.Aff3{
			float64(s.Scale), 0, float64(s.CenterX),
			0, float64(s.Scale), float64(s.CenterY),
		}
		src := r.Image()
		draw.NearestNeighbor.Transform(p.img, aff, src, src.Bounds(), draw.Src, nil)
	}

	x, y, ok := s.Selection()
	if ok && r != nil {
		sc := float64(s.Scale)
		dc.SetColor(selectionColor)
		dc.SetLineWidth(1)
		dc.DrawRectangle(float64(s.CenterX)+float64(x)*sc, float64(s.CenterY)+float64(y)*sc, sc, sc)
		dc.Stroke()
	}

	w, h := p.Size()
	dc.SetColor(statusBack)
	dc.DrawRectangle(0, float64(h-statusHeight), float64(w), statusHeight)
	dc.Fill()
	dc.SetColor(statusFore)
	dc.DrawStringAnchored(p.status(r, s, file), 4, float64(h)-statusHeight/2, 0, 0.35)

	return p.img
}

func (p *Panel) status(r *relief.Raster, s *Surface, file string) string {
	name := "untitled"
	if file != "" {
		name = filepath.Base(file)
	}
	line := fmt.Sprintf("%s  change %+d  zoom %.2f", name, s.Change, s.Scale)
	if x, y, ok := s.Selection(); ok && r != nil {
		line += fmt.Sprintf("  (%d,%d)=%d", x, y, r.Value(x, y))
	}
	return line
}
