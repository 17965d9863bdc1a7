package app

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"
)

// nativeDialogs shows OS file choosers. Choosers block, so each runs on its
// own goroutine and hands the pick back through done.
type nativeDialogs struct {
	log *zap.Logger
}

func (d *nativeDialogs) OpenFile(title string, done func(path string)) {
	go func() {
		path, err := dialog.File().
			Filter("Images", "png", "bmp", "gif", "jpg", "jpeg", "tif", "tiff", "webp", "tga").
			Filter("All Files", "*").
			Title(title).
			Load()
		d.finish(title, path, err, done)
	}()
}

func (d *nativeDialogs) SaveFile(title string, done func(path string)) {
	go func() {
		path, err := dialog.File().
			Filter("Images", "png", "bmp", "gif", "jpg", "jpeg", "tif", "tiff").
			Filter("STL Meshes", "stl").
			Filter("All Files", "*").
			Title(title).
			Save()
		d.finish(title, path, err, done)
	}()
}

func (d *nativeDialogs) finish(title, path string, err error, done func(string)) {
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			d.log.Warn("file dialog failed", zap.String("title", title), zap.Error(err))
		}
		return
	}
	done(path)
}

func (d *nativeDialogs) Message(title, text string) {
	dialog.Message("%s", text).Title(title).Error()
}

func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}
