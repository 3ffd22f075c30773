package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"cubefield/internal/inspector"
	"cubefield/internal/logging"
	"cubefield/internal/protocol"
)

var flagURL string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Watch frame statistics of a running game",
	Long: `Connect to a game started with --inspect and log every frame report
until interrupted or the game stops.

Examples:
  cubefield inspect
  cubefield inspect --url ws://192.168.1.20:7878/ws`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&flagURL, "url", inspector.DefaultURL, "Inspector websocket URL")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.Start(cfg.Logger)
	if err != nil {
		return err
	}
	defer closeLog()

	w := inspector.Watch(flagURL, logger)
	defer w.Close()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	for {
		select {
		case <-quit:
			return nil
		case env := <-w.Messages():
			if stop := logEnvelope(logger, env); stop {
				return nil
			}
		}
	}
}

// logEnvelope prints one inspector message and reports whether the game ended.
func logEnvelope(logger *log.Logger, env protocol.Envelope) bool {
	switch env.Type {
	case protocol.MsgHello:
		var hello protocol.HelloData
		if err := json.Unmarshal(env.Data, &hello); err != nil {
			logger.Warn("bad hello", "error", err)
			return false
		}
		logger.Info("attached", "title", hello.Title, "width", hello.Width, "height", hello.Height, "assets", hello.AssetsDir)

	case protocol.MsgFrame:
		var f protocol.FrameData
		if err := json.Unmarshal(env.Data, &f); err != nil {
			logger.Warn("bad frame report", "error", err)
			return false
		}
		logger.Info("frame", "n", f.Frame, "tps", f.TPS, "fps", f.FPS, "size", [2]int{f.Width, f.Height}, "states", f.StateDepth)

	case protocol.MsgStop:
		var s protocol.StopData
		_ = json.Unmarshal(env.Data, &s)
		logger.Info("game stopped", "frames", s.Frames)
		return true

	default:
		logger.Debug("message", "type", env.Type)
	}
	return false
}
