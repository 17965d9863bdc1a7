package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/relief-editor/internal/logger"
)

// ErrEmptyImage is returned for files that decode to zero pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Library is the ordered set of terrain textures. Slots whose file failed
// to decode hold a nil image.
type Library struct {
	Names    []string
	Images   []*image.RGBA
	Fallback bool
}

// Len returns the number of slots.
func (l *Library) Len() int {
	return len(l.Images)
}

// Scan reads every regular file in dir, in name order, as one slot.
// A missing or empty directory yields the checkerboard alone.
func Scan(dir string) *Library {
	log := logger.Named("texture")

	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("texture directory unreadable", zap.String("dir", dir), zap.Error(err))
	}

	lib := &Library{}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		img, err := LoadFile(path)
		if err != nil {
			log.Warn("texture skipped", zap.String("path", path), zap.Error(err))
		}
		lib.Names = append(lib.Names, e.Name())
		lib.Images = append(lib.Images, img)
	}

	if lib.Len() == 0 {
		log.Info("no textures found, using checkerboard", zap.String("dir", dir))
		return &Library{Names: []string{"checkerboard"}, Images: []*image.RGBA{Checkerboard()}, Fallback: true}
	}
	log.Info("textures loaded", zap.String("dir", dir), zap.Int("count", lib.Len()))
	return lib
}

// LoadFile decodes an image file and returns it as RGBA with the rows
// flipped so row 0 is the bottom, as GL expects.
func LoadFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), ErrEmptyImage)
	}
	return FlipVertical(img), nil
}

// FlipVertical converts img to RGBA, mirroring it top to bottom.
func FlipVertical(img image.Image) *image.RGBA {
	b := img.Bounds()
	src := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)

	dst := image.NewRGBA(src.Bounds())
	h := b.Dy()
	for y := range h {
		copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[(h-1-y)*src.Stride:(h-y)*src.Stride])
	}
	return dst
}

// Checkerboard returns the 2×2 black and white fallback texture.
func Checkerboard() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	img.SetRGBA(0, 0, white)
	img.SetRGBA(1, 0, black)
	img.SetRGBA(0, 1, black)
	img.SetRGBA(1, 1, white)
	return img
}
