package cubefield

import (
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"cubefield/internal/approot"
	"cubefield/internal/config"
	"cubefield/internal/engine"
	"cubefield/internal/render"
)

type recordingWindow struct {
	title         string
	width, height int
}

func (w *recordingWindow) SetTitle(t string) { w.title = t }
func (w *recordingWindow) SetSize(width, height int) { w.width, w.height = width, height }
func (w *recordingWindow) SetSizeLimits(int, int, int, int) {}
func (w *recordingWindow) SetResizable(bool) {}
func (w *recordingWindow) SetFullscreen(bool) {}
func (w *recordingWindow) Maximize() {}
func (w *recordingWindow) SetDecorated(bool) {}
func (w *recordingWindow) SetFloating(bool) {}
func (w *recordingWindow) SetVsync(bool) {}
func (w *recordingWindow) SetIcon([]image.Image) {}

func testOptions(win render.Window) []engine.Option {
	return []engine.Option{engine.WithWindow(win), engine.WithLogger(log.New(io.Discard))}
}

func TestDisplayLiterals(t *testing.T) {
	d := Display()
	if d.Title != "Cubefield" {
		t.Errorf("Title = %q, expected Cubefield", d.Title)
	}
	if d.Dimensions == nil || *d.Dimensions != (config.Dimensions{Width: 1024, Height: 768}) {
		t.Errorf("Dimensions = %+v, expected 1024x768", d.Dimensions)
	}
	// Everything else is the engine default.
	d.Title, d.Dimensions = config.DefaultDisplay().Title, nil
	if d != config.DefaultDisplay() {
		t.Errorf("non-literal fields differ from defaults: %+v", d)
	}
}

func TestClearColorLiterals(t *testing.T) {
	want := config.Color{0.95, 0.95, 0.95, 1.0}
	if ClearColor != want {
		t.Errorf("ClearColor = %v, expected %v", ClearColor, want)
	}
	if got := Config().Render.Clear; got != want {
		t.Errorf("Config().Render.Clear = %v, expected %v", got, want)
	}
}

func TestBundleOrder(t *testing.T) {
	plugins := Bundle(Config()).Plugins()
	if len(plugins) != 2 {
		t.Fatalf("plugins = %d, expected 2", len(plugins))
	}
	win, ok := plugins[0].(*render.RenderToWindow)
	if !ok {
		t.Fatalf("first plugin = %T, expected the window target", plugins[0])
	}
	if win.Clear() != ClearColor || win.Display().Title != Title {
		t.Errorf("window plugin = %+v / %v", win.Display(), win.Clear())
	}
	if _, ok := plugins[1].(*render.RenderShaded3D); !ok {
		t.Errorf("second plugin = %T, expected the shaded 3D pass", plugins[1])
	}
}

func TestBuildConfiguresWindow(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "assets"), 0o755); err != nil {
		t.Fatal(err)
	}
	win := &recordingWindow{}

	app, err := Build(root, Config(), testOptions(win)...)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if win.title != "Cubefield" || win.width != 1024 || win.height != 768 {
		t.Errorf("window = %q %dx%d", win.title, win.width, win.height)
	}
	if want := filepath.Join(root, "assets"); app.Assets().Dir() != want {
		t.Errorf("assets dir = %q, expected %q", app.Assets().Dir(), want)
	}
	if !app.Assets().Exists() {
		t.Error("assets dir reported missing")
	}
}

func TestBuildFailures(t *testing.T) {
	bad := Config()
	bad.Render.Clear[3] = 2

	if _, err := Build("", Config(), testOptions(&recordingWindow{})...); !errors.Is(err, approot.ErrNoRoot) {
		t.Errorf("Build(\"\") error = %v, expected ErrNoRoot", err)
	}
	if _, err := Build(t.TempDir(), bad, testOptions(&recordingWindow{})...); err == nil {
		t.Error("Build() with an invalid clear color succeeded")
	}
}

func TestUnresolvableRootIsSurfaced(t *testing.T) {
	t.Setenv(approot.EnvRoot, filepath.Join(t.TempDir(), "gone"))
	if _, err := approot.Dir(); !errors.Is(err, approot.ErrNoRoot) {
		t.Errorf("approot.Dir() error = %v, expected ErrNoRoot", err)
	}
}
