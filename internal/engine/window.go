package engine

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// eventSource is polled once per tick for window events.
type eventSource interface {
	CloseRequested() bool
	Focused() bool
}

// ebitenWindow applies display settings to ebiten's single window.
type ebitenWindow struct{}

func (ebitenWindow) SetTitle(title string) { ebiten.SetWindowTitle(title) }
func (ebitenWindow) SetSize(width, height int) { ebiten.SetWindowSize(width, height) }

func (ebitenWindow) SetSizeLimits(minW, minH, maxW, maxH int) {
	ebiten.SetWindowSizeLimits(minW, minH, maxW, maxH)
}

func (ebitenWindow) SetResizable(resizable bool) {
	mode := ebiten.WindowResizingModeDisabled
	if resizable {
		mode = ebiten.WindowResizingModeEnabled
	}
	ebiten.SetWindowResizingMode(mode)
}

func (ebitenWindow) SetFullscreen(fullscreen bool) { ebiten.SetFullscreen(fullscreen) }
func (ebitenWindow) Maximize() { ebiten.MaximizeWindow() }
func (ebitenWindow) SetDecorated(decorated bool) { ebiten.SetWindowDecorated(decorated) }
func (ebitenWindow) SetFloating(floating bool) { ebiten.SetWindowFloating(floating) }
func (ebitenWindow) SetVsync(enabled bool) { ebiten.SetVsyncEnabled(enabled) }
func (ebitenWindow) SetIcon(icons []image.Image) { ebiten.SetWindowIcon(icons) }

func (ebitenWindow) CloseRequested() bool { return ebiten.IsWindowBeingClosed() }
func (ebitenWindow) Focused() bool { return ebiten.IsFocused() }
