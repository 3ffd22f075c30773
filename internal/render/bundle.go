// Package render assembles the rendering pass out of plugins: one plugin
// owns the window target, the others draw into it.
package render

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"cubefield/internal/assets"
)

var (
	// ErrNoTarget is returned by Bundle.Setup when no plugin renders to a window.
	ErrNoTarget = errors.New("rendering bundle has no target plugin")

	// ErrDuplicateTarget is returned when more than one plugin claims the window.
	ErrDuplicateTarget = errors.New("rendering bundle has more than one target plugin")
)

// Window receives display settings during plugin setup.
type Window interface {
	SetTitle(title string)
	SetSize(width, height int)
	SetSizeLimits(minW, minH, maxW, maxH int) // -1 means unlimited
	SetResizable(resizable bool)
	SetFullscreen(fullscreen bool)
	Maximize()
	SetDecorated(decorated bool)
	SetFloating(floating bool)
	SetVsync(enabled bool)
	SetIcon(icons []image.Image)
}

// Env is what plugins may touch while being set up.
type Env struct {
	Window Window
	Assets *assets.Loader
	Logger *log.Logger
}

// Frame describes the frame being drawn.
type Frame struct {
	Index         uint64
	Delta         time.Duration
	Width, Height int
}

// Plugin is one stage of the rendering pass.
type Plugin interface {
	Name() string
	Setup(env *Env) error
	Draw(screen *ebiten.Image, f Frame)
}

// target marks the plugin that owns the window surface.
type target interface {
	isTarget()
}

// Bundle is an ordered set of render plugins.
type Bundle struct {
	plugins []Plugin
}

// NewBundle returns an empty rendering bundle.
func NewBundle() *Bundle {
	return &Bundle{}
}

// WithPlugin appends p to the bundle. Plugins draw in insertion order.
func (b *Bundle) WithPlugin(p Plugin) *Bundle {
	b.plugins = append(b.plugins, p)
	return b
}

// Plugins returns the plugins in draw order.
func (b *Bundle) Plugins() []Plugin {
	return b.plugins
}

// Setup checks that exactly one plugin targets the window and sets every
// plugin up in order, stopping at the first failure.
func (b *Bundle) Setup(env *Env) error {
	targets := 0
	for _, p := range b.plugins {
		if _, ok := p.(target); ok {
			targets++
		}
	}
	switch {
	case targets == 0:
		return ErrNoTarget
	case targets > 1:
		return ErrDuplicateTarget
	}

	for _, p := range b.plugins {
		if err := p.Setup(env); err != nil {
			return fmt.Errorf("render plugin %s: %w", p.Name(), err)
		}
		if env.Logger != nil {
			env.Logger.Debug("render plugin ready", "plugin", p.Name())
		}
	}
	return nil
}

// Draw runs every plugin against screen.
func (b *Bundle) Draw(screen *ebiten.Image, f Frame) {
	for _, p := range b.plugins {
		p.Draw(screen, f)
	}
}
