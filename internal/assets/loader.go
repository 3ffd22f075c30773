// Package assets resolves files under the game's assets directory.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideAssets is returned for names that would escape the assets directory.
var ErrOutsideAssets = errors.New("asset path escapes the assets directory")

// Loader hands out files relative to a single assets directory.
type Loader struct {
	dir string
}

// NewLoader creates a Loader for dir. The directory does not have to exist.
func NewLoader(dir string) (*Loader, error) {
	if dir == "" {
		return nil, errors.New("assets directory is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("assets directory %s: %w", dir, err)
	}
	return &Loader{dir: abs}, nil
}

// Dir returns the absolute assets directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Exists reports whether the assets directory is present on disk.
func (l *Loader) Exists() bool {
	info, err := os.Stat(l.dir)
	return err == nil && info.IsDir()
}

// Resolve returns the absolute path of the named asset.
func (l *Loader) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: %s is absolute", ErrOutsideAssets, name)
	}
	path := filepath.Join(l.dir, name)
	rel, err := filepath.Rel(l.dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideAssets, name)
	}
	return path, nil
}

// Open opens the named asset for reading.
func (l *Loader) Open(name string) (io.ReadCloser, error) {
	path, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// LoadImage decodes the named asset as an image.
func (l *Loader) LoadImage(name string) (image.Image, error) {
	f, err := l.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}
