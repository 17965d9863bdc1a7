package relief

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // decode only
)

var (
	// ErrInvalidSize is returned when a decoded image is not Size×Size.
	ErrInvalidSize = errors.New("invalid relief size")
	// ErrUnsupportedFormat is returned when no encoder matches the file extension.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Decode reads an image in any registered format and checks its dimensions.
func Decode(r io.Reader) (*Raster, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}

	b := img.Bounds()
	if b.Dx() != Size {
		return nil, format, fmt.Errorf("%w: width %d (not %d)", ErrInvalidSize, b.Dx(), Size)
	}
	if b.Dy() != Size {
		return nil, format, fmt.Errorf("%w: height %d (not %d)", ErrInvalidSize, b.Dy(), Size)
	}

	return FromImage(img), format, nil
}

// Load reads a relief from disk.
func Load(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return r, nil
}

// Encode writes the raster in the named format (png, jpeg, gif, bmp, tiff).
func (r *Raster) Encode(w io.Writer, format string) error {
	switch format {
	case "png":
		return png.Encode(w, r.img)
	case "jpeg":
		return jpeg.Encode(w, r.img, &jpeg.Options{Quality: 100})
	case "gif":
		return gif.Encode(w, r.paletted(), nil)
	case "bmp":
		return bmp.Encode(w, r.img)
	case "tiff":
		return tiff.Encode(w, r.img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Save writes the raster to path, picking the encoder from the extension.
// An existing file is only replaced after the encode succeeds.
func (r *Raster) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".relief-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := r.Encode(tmp, format); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	// CreateTemp makes 0600 files; keep the replaced file's mode
	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// FormatFromPath maps a file extension to an encoder name.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "gif", "bmp":
		return ext, nil
	case "jpg", "jpeg":
		return "jpeg", nil
	case "tif", "tiff":
		return "tiff", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// paletted converts to a 256-level gray palette so GIF output stays lossless.
func (r *Raster) paletted() *image.Paletted {
	pal := make(color.Palette, 256)
	for i := range pal {
		pal[i] = color.Gray{Y: uint8(i)}
	}
	p := image.NewPaletted(r.img.Bounds(), pal)
	copy(p.Pix, r.img.Pix)
	return p
}
