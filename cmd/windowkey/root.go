package main

import (
	"context"
	"fmt"
	"os"

	"github.com/1broseidon/windowkey/internal/config"
	"github.com/1broseidon/windowkey/internal/daemon"
	"github.com/1broseidon/windowkey/internal/logging"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const version = "dev"

var (
	configPath string
	verbose    bool
	detach     bool
)

// rootCmd starts the hotkey daemon in the foreground.
var rootCmd = &cobra.Command{
	Use:   "windowkey",
	Short: "Move, snap, resize and grid-place the focused window with global hotkeys",
	Long: `windowkey runs in the background and listens for global hotkeys that move,
snap, resize and grid-place the focused X11 window. Run 'windowkey keys' for
the list of hotkeys; Super+F10 exits.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDaemon,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/windowkey/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&detach, "detach", false, "run in the background")
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	if detach {
		paths, err := daemon.DefaultDetachPaths()
		if err != nil {
			return err
		}
		child, dctx, err := daemon.Daemonize(paths)
		if err != nil {
			return err
		}
		if child != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "windowkey detached (pid %d)\n", child.Pid)
			return nil
		}
		defer func() { _ = dctx.Release() }()
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	log.SetDefault(logger)
	if daemon.IsChild() {
		logger.Info("running detached", "pid", os.Getpid())
	}

	return daemon.Start(cmd.Context(), cfg, logger)
}
