package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestScreenshotSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "relief")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	// 1×2, bottom row red, top row blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := s.Save(pixels, 1, 2)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "relief_2024-05-01_12-00-00.png" {
		t.Errorf("unexpected name %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	top := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	if top.B != 255 || top.R != 0 {
		t.Errorf("top pixel %+v, want blue", top)
	}

	second, err := s.Save(pixels, 1, 2)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if second == path || filepath.Base(second) != "relief_2024-05-01_12-00-00_2.png" {
		t.Errorf("second capture path %s", second)
	}
}

func TestScreenshotSizeMismatch(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "x")
	if _, err := s.Save(make([]byte, 3), 1, 1); err == nil {
		t.Error("expected size mismatch error")
	}
}
