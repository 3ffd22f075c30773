package main

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"cubefield/internal/approot"
	"cubefield/internal/config"
	"cubefield/internal/cubefield"
	"cubefield/internal/engine"
	"cubefield/internal/inspector"
	"cubefield/internal/logging"
	"cubefield/internal/protocol"
	"cubefield/internal/render"
)

var flagInspect string

func init() {
	rootCmd.Flags().StringVar(&flagInspect, "inspect", "", "Serve frame statistics on this address (e.g. :7878)")
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagInspect != "" {
		cfg.Inspector.Enabled = true
		cfg.Inspector.Addr = flagInspect
	}

	logger, closeLog, err := logging.Start(cfg.Logger)
	if err != nil {
		return err
	}
	defer closeLog()

	root, err := approot.Override(flagRoot)
	if err != nil {
		return err
	}
	logger.Debug("application root", "dir", root)

	opts := []engine.Option{engine.WithLogger(logger)}
	if cfg.Inspector.Enabled {
		srv := startInspector(cfg, root, logger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("inspector shutdown", "error", err)
			}
		}()
		opts = append(opts, engine.WithReporter(srv.Hub, cfg.Inspector.ReportEvery))
	}

	app, err := cubefield.Build(root, cfg, opts...)
	if err != nil {
		return err
	}
	return app.Run()
}

// startInspector serves frame statistics in the background.
func startInspector(cfg config.Config, root string, logger *log.Logger) *inspector.Server {
	width, height := render.DefaultWidth, render.DefaultHeight
	if d := cfg.Display.Dimensions; d != nil {
		width, height = d.Width, d.Height
	}
	hub := inspector.NewHub(protocol.HelloData{
		Title:     cfg.Display.Title,
		Width:     width,
		Height:    height,
		AssetsDir: approot.AssetsDir(root),
	}, logger)

	srv := inspector.NewServer(cfg.Inspector.Addr, hub)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Error("inspector stopped", "error", err)
		}
	}()
	return srv
}
