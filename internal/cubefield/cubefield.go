// Package cubefield wires the Cubefield window: a shaded 3D view over a
// light grey background, driven by an empty game state.
package cubefield

import (
	"fmt"

	"cubefield/internal/approot"
	"cubefield/internal/config"
	"cubefield/internal/engine"
	"cubefield/internal/render"
	"cubefield/internal/state"
)

const (
	Title  = "Cubefield"
	Width  = 1024
	Height = 768
)

// ClearColor is the background the window is cleared to.
var ClearColor = config.Color{0.95, 0.95, 0.95, 1.0}

// GameState is the running game. It has no behaviour yet.
type GameState struct {
	state.Simple
}

// Display returns the window settings: engine defaults plus the Cubefield
// title and size.
func Display() config.DisplayConfig {
	d := config.DefaultDisplay()
	d.Title = Title
	d.Dimensions = &config.Dimensions{Width: Width, Height: Height}
	return d
}

// Config returns the default configuration with the Cubefield display and
// clear color.
func Config() config.Config {
	cfg := config.Default()
	cfg.Display = Display()
	cfg.Render.Clear = ClearColor
	return cfg
}

// Bundle builds the rendering bundle: the window target cleared to the
// configured color, then the shaded 3D pass.
func Bundle(cfg config.Config) *render.Bundle {
	return render.NewBundle().
		WithPlugin(render.WindowFromConfig(cfg.Display).WithClear(cfg.Render.Clear)).
		WithPlugin(render.NewShaded3D())
}

// Build assembles the application rooted at root. Nothing is shown until
// Run is called on the result.
func Build(root string, cfg config.Config, opts ...engine.Option) (*engine.Application, error) {
	if root == "" {
		return nil, approot.ErrNoRoot
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	assetsDir := approot.AssetsDir(root)

	data, err := engine.NewGameDataBuilder().
		WithBundle(Bundle(cfg)).
		Build()
	if err != nil {
		return nil, err
	}

	opts = append([]engine.Option{engine.WithTPS(cfg.Render.TPS)}, opts...)
	return engine.New(assetsDir, &GameState{}, data, opts...)
}
