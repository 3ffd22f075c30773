package config

// DefaultTitle is the window title used when none is configured.
const DefaultTitle = "Cubefield game"

// DefaultDisplay returns the engine's display defaults.
func DefaultDisplay() DisplayConfig {
	return DisplayConfig{
		Title:       DefaultTitle,
		Resizable:   true,
		Decorations: true,
		Vsync:       true,
	}
}

// Default returns the default configuration for every section.
func Default() Config {
	return Config{
		Display: DefaultDisplay(),
		Render: RenderConfig{
			Clear: Color{0, 0, 0, 1},
			TPS:   60,
		},
		Logger: LoggerConfig{
			Level:            "info",
			Format:           "text",
			Stdout:           true,
			AllowEnvOverride: true,
		},
		Inspector: InspectorConfig{
			Enabled:     false,
			Addr:        ":7878",
			ReportEvery: 60,
		},
	}
}
