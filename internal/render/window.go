package render

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"cubefield/internal/config"
)

// Window size used when the display config leaves dimensions unset.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// RenderToWindow opens the window described by a display config and clears
// it every frame.
type RenderToWindow struct {
	display config.DisplayConfig
	clear   config.Color
}

// WindowFromConfig creates the window plugin. The clear color defaults to
// opaque black.
func WindowFromConfig(display config.DisplayConfig) *RenderToWindow {
	return &RenderToWindow{
		display: display,
		clear:   config.Color{0, 0, 0, 1},
	}
}

// WithClear sets the color the window is cleared to each frame.
func (w *RenderToWindow) WithClear(c config.Color) *RenderToWindow {
	w.clear = c
	return w
}

// Display returns the display config the plugin was built from.
func (w *RenderToWindow) Display() config.DisplayConfig {
	return w.display
}

// Clear returns the clear color.
func (w *RenderToWindow) Clear() config.Color {
	return w.clear
}

func (w *RenderToWindow) Name() string { return "render_to_window" }

func (w *RenderToWindow) isTarget() {}

// Setup applies the display config to the window.
func (w *RenderToWindow) Setup(env *Env) error {
	d := w.display
	win := env.Window

	win.SetTitle(d.Title)
	width, height := DefaultWidth, DefaultHeight
	if d.Dimensions != nil {
		width, height = d.Dimensions.Width, d.Dimensions.Height
	}
	win.SetSize(width, height)

	if d.MinDimensions != nil || d.MaxDimensions != nil {
		minW, minH, maxW, maxH := -1, -1, -1, -1
		if d.MinDimensions != nil {
			minW, minH = d.MinDimensions.Width, d.MinDimensions.Height
		}
		if d.MaxDimensions != nil {
			maxW, maxH = d.MaxDimensions.Width, d.MaxDimensions.Height
		}
		win.SetSizeLimits(minW, minH, maxW, maxH)
	}

	win.SetResizable(d.Resizable)
	win.SetDecorated(d.Decorations)
	win.SetFloating(d.AlwaysOnTop)
	win.SetVsync(d.Vsync)
	win.SetFullscreen(d.Fullscreen)
	if d.Maximized {
		win.Maximize()
	}

	if d.Icon != "" {
		if env.Assets == nil {
			return fmt.Errorf("icon %s: no assets loader", d.Icon)
		}
		icon, err := env.Assets.LoadImage(d.Icon)
		if err != nil {
			return fmt.Errorf("load icon: %w", err)
		}
		win.SetIcon([]image.Image{icon})
	}

	if env.Logger != nil {
		env.Logger.Info("window configured", "title", d.Title, "width", width, "height", height)
	}
	return nil
}

// Draw fills the target with the clear color.
func (w *RenderToWindow) Draw(screen *ebiten.Image, _ Frame) {
	screen.Fill(w.clear.NRGBA())
}
