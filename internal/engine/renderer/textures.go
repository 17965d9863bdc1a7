package renderer

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/relief-editor/internal/engine/texture"
)

// UploadTextures creates one GL texture per library slot. Slots that
// failed to decode or hold no pixels keep handle 0.
func UploadTextures(lib *texture.Library) *texture.Set {
	s := &texture.Set{Handles: make([]uint32, lib.Len())}
	for i, img := range lib.Images {
		if img == nil || len(img.Pix) == 0 {
			continue
		}
		s.Handles[i] = uploadRGBA(img, lib.Fallback)
	}
	return s
}

// uploadRGBA uploads img with repeat wrapping. The checkerboard uses
// nearest filtering, other textures are mipmapped.
func uploadRGBA(img *image.RGBA, nearest bool) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(img.Rect.Dx()), int32(img.Rect.Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	if nearest {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	} else {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

func deleteTextures(s *texture.Set) {
	for _, h := range s.Handles {
		if h != 0 {
			gl.DeleteTextures(1, &h)
		}
	}
	s.Handles = nil
}
