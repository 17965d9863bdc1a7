package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// tga builds a 2×2 24-bit TGA header followed by body.
func tga(imageType, descriptor byte, body []byte) []byte {
	h := make([]byte, tgaHeaderSize)
	h[2] = imageType
	h[12] = 2
	h[14] = 2
	h[16] = 24
	h[17] = descriptor
	return append(h, body...)
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// BGR rows, bottom row first: red green / blue white
	body := []byte{
		0, 0, 255, 0, 255, 0,
		255, 0, 0, 255, 255, 255,
	}
	img, err := DecodeTGA(tga(TGATypeUncompressed, 0, body))
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	want := map[image.Point]color.RGBA{
		{0, 1}: {R: 255, A: 255},
		{1, 1}: {G: 255, A: 255},
		{0, 0}: {B: 255, A: 255},
		{1, 0}: {R: 255, G: 255, B: 255, A: 255},
	}
	for p, c := range want {
		if got := img.RGBAAt(p.X, p.Y); got != c {
			t.Errorf("pixel %v = %+v, want %+v", p, got, c)
		}
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// run of three red, then one raw blue; top-to-bottom
	body := []byte{
		0x82, 0, 0, 255,
		0x00, 255, 0, 0,
	}
	img, err := DecodeTGA(tga(TGATypeRLE, 0x20, body))
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	red := color.RGBA{R: 255, A: 255}
	for _, p := range []image.Point{{0, 0}, {1, 0}, {0, 1}} {
		if got := img.RGBAAt(p.X, p.Y); got != red {
			t.Errorf("pixel %v = %+v, want red", p, got)
		}
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("last pixel = %+v, want blue", got)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	cases := map[string][]byte{
		"short header":  {0, 0, 2},
		"truncated":     tga(TGATypeUncompressed, 0, []byte{1, 2, 3}),
		"rle truncated": tga(TGATypeRLE, 0, []byte{0x83}),
		"bad type":      tga(3, 0, make([]byte, 12)),
	}
	for name, data := range cases {
		if _, err := DecodeTGA(data); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestImageDecodeRecognisesTGA(t *testing.T) {
	data := tga(TGATypeUncompressed, 0, make([]byte, 12))
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("image.Decode: %v", err)
	}
	if format != "tga" {
		t.Errorf("format %q, want tga", format)
	}
}

func TestFlipVertical(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 3))
	src.SetRGBA(0, 0, color.RGBA{R: 1, A: 255})
	src.SetRGBA(0, 2, color.RGBA{R: 3, A: 255})

	dst := FlipVertical(src)
	if dst.RGBAAt(0, 0).R != 3 || dst.RGBAAt(0, 2).R != 1 {
		t.Errorf("rows not flipped: %v %v", dst.RGBAAt(0, 0), dst.RGBAAt(0, 2))
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a_grass.png"), buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b_notes.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "c_sub"), 0755); err != nil {
		t.Fatal(err)
	}

	lib := Scan(dir)
	if lib.Fallback {
		t.Fatal("fallback used with textures present")
	}
	if lib.Len() != 2 {
		t.Fatalf("slots %d, want 2 (%v)", lib.Len(), lib.Names)
	}
	if lib.Images[0] == nil || lib.Images[0].Rect.Dx() != 4 {
		t.Error("png slot not decoded")
	}
	if lib.Images[1] != nil {
		t.Error("undecodable file should leave a nil slot")
	}
}

func TestScanSkipsEmptyImage(t *testing.T) {
	dir := t.TempDir()
	empty := make([]byte, tgaHeaderSize)
	empty[2] = TGATypeUncompressed
	empty[16] = 24
	if err := os.WriteFile(filepath.Join(dir, "empty.tga"), empty, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(filepath.Join(dir, "empty.tga")); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("LoadFile error %v, want ErrEmptyImage", err)
	}
	lib := Scan(dir)
	if lib.Len() != 1 || lib.Images[0] != nil || lib.Fallback {
		t.Errorf("empty texture should leave a nil slot, got %d slots fallback=%v", lib.Len(), lib.Fallback)
	}
}

func TestScanFallback(t *testing.T) {
	for name, dir := range map[string]string{
		"empty":   t.TempDir(),
		"missing": filepath.Join(t.TempDir(), "nope"),
	} {
		lib := Scan(dir)
		if !lib.Fallback || lib.Len() != 1 {
			t.Errorf("%s: expected single fallback slot, got %d", name, lib.Len())
			continue
		}
		cb := lib.Images[0]
		if cb.Rect.Dx() != 2 || cb.Rect.Dy() != 2 {
			t.Errorf("%s: checkerboard size %v", name, cb.Rect)
		}
		if cb.RGBAAt(0, 0) != cb.RGBAAt(1, 1) || cb.RGBAAt(0, 0) == cb.RGBAAt(1, 0) {
			t.Errorf("%s: not a checkerboard", name)
		}
	}
}

func TestSetCycle(t *testing.T) {
	s := &Set{Handles: []uint32{5, 0, 7}}
	if s.Current() != 5 {
		t.Errorf("current %d", s.Current())
	}
	s.Cycle()
	if s.Current() != 0 {
		t.Error("failed slot should yield handle 0")
	}
	s.Cycle()
	if s.Cycle() != 0 || s.Current() != 5 {
		t.Error("cycle did not wrap")
	}

	empty := &Set{}
	if empty.Cycle() != 0 || empty.Current() != 0 {
		t.Error("empty set should stay at 0")
	}
}
