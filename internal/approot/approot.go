// Package approot locates the directory the game is installed in.
package approot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvRoot overrides the detected root directory when set.
const EnvRoot = "CUBEFIELD_ROOT"

// AssetsSubdir is the assets directory relative to the root.
const AssetsSubdir = "assets"

// ErrNoRoot is returned when the application root cannot be determined.
var ErrNoRoot = errors.New("application root directory not found")

// Dir returns the application root: $CUBEFIELD_ROOT if set, otherwise the
// directory holding the running executable.
func Dir() (string, error) {
	return resolve(os.Getenv, os.Executable)
}

// AssetsDir returns the assets directory under root.
func AssetsDir(root string) string {
	return filepath.Join(root, AssetsSubdir)
}

// Override validates dir as an explicitly chosen root, falling back to Dir
// when dir is empty.
func Override(dir string) (string, error) {
	if dir == "" {
		return Dir()
	}
	return checkDir(dir, "root")
}

func checkDir(dir, source string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s=%s: %v", ErrNoRoot, source, dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s=%s is not a directory", ErrNoRoot, source, dir)
	}
	return filepath.Abs(dir)
}

func resolve(getenv func(string) string, executable func() (string, error)) (string, error) {
	if dir := getenv(EnvRoot); dir != "" {
		return checkDir(dir, EnvRoot)
	}

	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoRoot, err)
	}
	// Symlinked installs resolve to the real location.
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
