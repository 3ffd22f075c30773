// Package engine runs game states and render bundles on top of ebiten.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"cubefield/internal/assets"
	"cubefield/internal/protocol"
	"cubefield/internal/render"
	"cubefield/internal/state"
)

const (
	defaultTPS         = 60
	defaultReportEvery = 60
)

// Reporter receives periodic frame statistics, e.g. the inspector hub.
// Report must not block.
type Reporter interface {
	Report(f protocol.FrameData)
	Stopped(frames uint64)
}

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the logger handed to states and plugins.
func WithLogger(l *log.Logger) Option {
	return func(a *Application) { a.logger = l }
}

// WithWindow replaces the ebiten window, e.g. with a recorder in tests.
func WithWindow(w render.Window) Option {
	return func(a *Application) { a.window = w }
}

// WithTPS sets the fixed update rate.
func WithTPS(tps int) Option {
	return func(a *Application) { a.tps = tps }
}

// WithReporter sends a frame report to r every n frames.
func WithReporter(r Reporter, n int) Option {
	return func(a *Application) {
		a.reporter = r
		a.reportEvery = n
	}
}

// WithIgnoreWindowClose keeps the loop running when the window is closed;
// the active state then decides via its transitions.
func WithIgnoreWindowClose() Option {
	return func(a *Application) { a.ignoreWindowClose = true }
}

// Application owns the game loop. It implements ebiten.Game.
type Application struct {
	assets *assets.Loader
	states *state.Machine
	data   *GameData

	logger            *log.Logger
	window            render.Window
	events            eventSource
	reporter          Reporter
	reportEvery       int
	tps               int
	ignoreWindowClose bool
	rates             func() (tps, fps float64)

	frame         uint64
	last          time.Time
	delta         time.Duration
	width, height int
	focused       bool
	pending       []state.Event
}

// New creates an application rooted at assetsDir, starting in initial and
// running the bundles of data. Every bundle is set up before New returns.
func New(assetsDir string, initial state.State, data *GameData, opts ...Option) (*Application, error) {
	if initial == nil {
		return nil, errors.New("new application: initial state is nil")
	}
	if data == nil {
		return nil, errors.New("new application: game data is nil")
	}
	loader, err := assets.NewLoader(assetsDir)
	if err != nil {
		return nil, fmt.Errorf("new application: %w", err)
	}

	a := &Application{
		assets:      loader,
		states:      state.NewMachine(initial),
		data:        data,
		logger:      log.Default(),
		window:      ebitenWindow{},
		reportEvery: defaultReportEvery,
		tps:         defaultTPS,
		rates:       func() (float64, float64) { return ebiten.ActualTPS(), ebiten.ActualFPS() },
		focused:     true,
		width:       render.DefaultWidth,
		height:      render.DefaultHeight,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.tps <= 0 {
		return nil, fmt.Errorf("new application: tps must be positive, got %d", a.tps)
	}
	if a.reporter != nil && a.reportEvery <= 0 {
		return nil, fmt.Errorf("new application: report interval must be positive, got %d", a.reportEvery)
	}
	if src, ok := a.window.(eventSource); ok {
		a.events = src
	}

	if !loader.Exists() {
		a.logger.Warn("assets directory does not exist", "dir", loader.Dir())
	}

	env := &render.Env{Window: a.window, Assets: loader, Logger: a.logger}
	if err := data.setup(env); err != nil {
		return nil, fmt.Errorf("new application: %w", err)
	}
	a.logger.Debug("application ready", "assets", loader.Dir())
	return a, nil
}

// Assets returns the assets loader.
func (a *Application) Assets() *assets.Loader {
	return a.assets
}

// Run drives the loop until the state machine stops or the window closes.
func (a *Application) Run() error {
	ebiten.SetTPS(a.tps)
	ebiten.SetWindowClosingHandled(true)

	a.start()
	a.logger.Info("game loop started", "tps", a.tps)
	err := ebiten.RunGame(a)
	a.stop()
	a.logger.Info("game loop stopped", "frames", a.frame)

	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (a *Application) start() {
	a.last = time.Now()
	a.states.Start(a.context())
}

func (a *Application) stop() {
	a.states.Stop(a.context())
	if a.reporter != nil {
		a.reporter.Stopped(a.frame)
	}
}

func (a *Application) context() *state.Context {
	return &state.Context{Frame: a.frame, Delta: a.delta, Logger: a.logger}
}

// Update advances one tick: window events first, then the active state.
func (a *Application) Update() error {
	now := time.Now()
	a.delta = now.Sub(a.last)
	a.last = now
	a.frame++
	ctx := a.context()

	a.poll()
	for _, ev := range a.pending {
		a.states.HandleEvent(ctx, ev)
		if ev.Kind == state.EventCloseRequested && !a.ignoreWindowClose {
			a.logger.Info("window close requested")
			a.states.Stop(ctx)
		}
	}
	a.pending = a.pending[:0]

	a.states.Update(ctx)

	if a.reporter != nil && a.frame%uint64(a.reportEvery) == 0 {
		tps, fps := a.rates()
		a.reporter.Report(protocol.FrameData{
			Frame:      a.frame,
			TPS:        tps,
			FPS:        fps,
			Width:      a.width,
			Height:     a.height,
			StateDepth: a.states.Depth(),
		})
	}

	if !a.states.Running() {
		return ebiten.Termination
	}
	return nil
}

func (a *Application) poll() {
	if a.events == nil {
		return
	}
	if a.events.CloseRequested() {
		a.pending = append(a.pending, state.Event{Kind: state.EventCloseRequested})
	}
	if focused := a.events.Focused(); focused != a.focused {
		a.focused = focused
		kind := state.EventFocusLost
		if focused {
			kind = state.EventFocusGained
		}
		a.pending = append(a.pending, state.Event{Kind: kind})
	}
}

// Draw renders every bundle.
func (a *Application) Draw(screen *ebiten.Image) {
	a.data.Draw(screen, render.Frame{
		Index:  a.frame,
		Delta:  a.delta,
		Width:  a.width,
		Height: a.height,
	})
}

// Layout tracks the window size; the render target always matches it.
func (a *Application) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return a.width, a.height
	}
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.pending = append(a.pending, state.Event{
			Kind:   state.EventResized,
			Width:  outsideWidth,
			Height: outsideHeight,
		})
	}
	return a.width, a.height
}
