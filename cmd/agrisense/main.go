package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agrisense/agrisense/internal/config"
	"github.com/agrisense/agrisense/internal/logging"
	"github.com/agrisense/agrisense/internal/tui"
)

// cli carries flags and the per-invocation config and logger.
type cli struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "agrisense",
		Short: "AgriSense - field health monitoring for Udawalawe",
		Long: `AgriSense shows satellite crop-health alerts per field zone and walks a
field officer through ground validation of a zone.

Run without arguments to start the terminal UI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.configPath != "" {
				if err := os.Setenv("AGRISENSE_CONFIG", c.configPath); err != nil {
					return err
				}
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log, c.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.cfg = cfg
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/agrisense/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newZonesCmd(c), newWalkCmd(c))
	return root
}

func (c *cli) runTUI(ctx context.Context) error {
	s, err := openSession(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer s.Close()

	router := s.newRouter(nil)
	defer router.Close()

	app := tui.New(ctx, c.cfg, router, s.services(), c.logger)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
