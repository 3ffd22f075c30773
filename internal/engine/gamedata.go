package engine

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"cubefield/internal/render"
)

// Bundle is a group of systems set up together and drawn every frame.
// *render.Bundle is the one the game uses.
type Bundle interface {
	Setup(env *render.Env) error
	Draw(screen *ebiten.Image, f render.Frame)
}

// GameData is the set of bundles an Application runs.
type GameData struct {
	bundles []Bundle
}

// GameDataBuilder collects bundles for an Application.
type GameDataBuilder struct {
	bundles []Bundle
	err     error
}

// NewGameDataBuilder returns an empty builder.
func NewGameDataBuilder() *GameDataBuilder {
	return &GameDataBuilder{}
}

// WithBundle adds b. A nil bundle makes Build fail.
func (g *GameDataBuilder) WithBundle(b Bundle) *GameDataBuilder {
	if b == nil {
		if g.err == nil {
			g.err = fmt.Errorf("bundle %d is nil", len(g.bundles))
		}
		return g
	}
	g.bundles = append(g.bundles, b)
	return g
}

// Build returns the game data or the first error recorded while building.
func (g *GameDataBuilder) Build() (*GameData, error) {
	if g.err != nil {
		return nil, fmt.Errorf("build game data: %w", g.err)
	}
	if len(g.bundles) == 0 {
		return nil, errors.New("build game data: no bundles")
	}
	return &GameData{bundles: append([]Bundle(nil), g.bundles...)}, nil
}

func (d *GameData) setup(env *render.Env) error {
	for _, b := range d.bundles {
		if err := b.Setup(env); err != nil {
			return err
		}
	}
	return nil
}

// Draw draws every bundle in order.
func (d *GameData) Draw(screen *ebiten.Image, f render.Frame) {
	for _, b := range d.bundles {
		b.Draw(screen, f)
	}
}
