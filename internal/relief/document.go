package relief

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/relief-editor/internal/logger"
)

var (
	// ErrNothingToSave is returned by Save when no raster is loaded.
	ErrNothingToSave = errors.New("nothing to save")
	// ErrNoCurrentFile is returned when an action needs a file path and none is set.
	ErrNoCurrentFile = errors.New("no current file")
)

// Document is the open relief and the file it came from.
// A failed operation never changes either field.
type Document struct {
	raster *Raster
	path   string
}

// Raster returns the current raster, nil before New or Open.
func (d *Document) Raster() *Raster {
	return d.raster
}

// Path returns the current file, empty when the raster was never opened or saved.
func (d *Document) Path() string {
	return d.path
}

// New replaces the raster with a blank one. The current path is kept, as a
// later Save goes to the file last used.
func (d *Document) New() {
	d.raster = New()
	logger.Info("new relief")
}

// Open loads path and makes it current.
func (d *Document) Open(path string) error {
	r, err := Load(path)
	if err != nil {
		logger.Warn("open failed", zap.String("path", path), zap.Error(err))
		return err
	}
	d.raster = r
	d.path = path
	logger.Info("relief opened", zap.String("path", path))
	return nil
}

// Reopen reloads the current file, discarding unsaved edits.
func (d *Document) Reopen() error {
	if d.path == "" {
		return ErrNoCurrentFile
	}
	return d.Open(d.path)
}

// Save writes to the current file.
func (d *Document) Save() error {
	if d.raster == nil {
		return ErrNothingToSave
	}
	if d.path == "" {
		return ErrNoCurrentFile
	}
	return d.SaveAs(d.path)
}

// SaveAs writes to path and makes it current.
func (d *Document) SaveAs(path string) error {
	if d.raster == nil {
		return ErrNothingToSave
	}
	if err := d.raster.Save(path); err != nil {
		logger.Warn("save failed", zap.String("path", path), zap.Error(err))
		return err
	}
	d.path = path
	logger.Info("relief saved", zap.String("path", path))
	return nil
}
