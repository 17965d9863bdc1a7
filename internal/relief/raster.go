// Package relief holds the heightmap raster and its file document.
package relief

import (
	"image"
	"image/color"
	"image/draw"
)

// Size is the fixed width and height of a relief raster.
const Size = 161

// Raster is a Size×Size grayscale heightmap. Darker pixels are higher terrain.
type Raster struct {
	img *image.Gray
}

// New returns an all-black raster.
func New() *Raster {
	return &Raster{img: image.NewGray(image.Rect(0, 0, Size, Size))}
}

// FromImage converts img to a raster. The caller must have checked the size.
func FromImage(img image.Image) *Raster {
	r := New()
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) {
		copy(r.img.Pix, g.Pix)
		return r
	}
	draw.Draw(r.img, r.img.Bounds(), img, b.Min, draw.Src)
	return r
}

// Image exposes the backing image for drawing and encoding. Do not resize it.
func (r *Raster) Image() *image.Gray {
	return r.img
}

// InBounds reports whether (x, y) addresses a pixel.
func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// Value returns the intensity at (x, y). Out-of-bounds reads return 0.
func (r *Raster) Value(x, y int) uint8 {
	if !InBounds(x, y) {
		return 0
	}
	return r.img.Pix[y*r.img.Stride+x]
}

// Set writes an intensity at (x, y). Out-of-bounds writes are dropped.
func (r *Raster) Set(x, y int, v uint8) {
	if !InBounds(x, y) {
		return
	}
	r.img.SetGray(x, y, color.Gray{Y: v})
}

// Apply lowers the pixel at (x, y) by dv, clamped to [0, 255].
// It returns false and leaves the raster untouched when (x, y) is out of bounds.
func (r *Raster) Apply(x, y, dv int) bool {
	if !InBounds(x, y) {
		return false
	}
	v := clamp(int(r.Value(x, y))-dv, 0, 255)
	r.Set(x, y, uint8(v))
	return true
}

// Clone returns an independent copy.
func (r *Raster) Clone() *Raster {
	c := New()
	copy(c.img.Pix, r.img.Pix)
	return c
}

// Snapshot copies the pixel data for later Restore.
func (r *Raster) Snapshot() []byte {
	out := make([]byte, len(r.img.Pix))
	copy(out, r.img.Pix)
	return out
}

// Restore replaces the pixel data with a Snapshot.
func (r *Raster) Restore(snap []byte) {
	copy(r.img.Pix, snap)
}

func clamp(v, lo, hi int) int {
	return min(hi, max(v, lo))
}
