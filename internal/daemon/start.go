//go:build linux

package daemon

import (
	"context"
	"fmt"

	"github.com/1broseidon/windowkey/internal/config"
	"github.com/1broseidon/windowkey/internal/geometry"
	"github.com/1broseidon/windowkey/internal/hotkeys"
	"github.com/1broseidon/windowkey/internal/platform"
	"github.com/charmbracelet/log"
)

// Start connects to the display named in cfg and runs the daemon until ctx
// is cancelled or the exit hotkey is pressed.
func Start(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	minSize := platform.Size{Width: cfg.MinWidth, Height: cfg.MinHeight}
	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display, minSize)
	if err != nil {
		return fmt.Errorf("failed to connect to display: %w", err)
	}
	defer backend.Disconnect()

	grabber, err := hotkeys.NewX11Grabber(backend)
	if err != nil {
		return err
	}

	engine := geometry.NewEngine(backend, geometry.Params{
		Step: cfg.Step,
		MinX: cfg.MinX,
		MinY: cfg.MinY,
	}, logger)
	handler := hotkeys.NewHandler(grabber, logger)

	logger.Info("windowkey started", "step", cfg.Step, "min_x", cfg.MinX, "min_y", cfg.MinY)
	return New(backend, handler, engine, logger).Run(ctx)
}
