// Package cmd provides Cobra CLI commands for collage-kit.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	collagekit "github.com/menta2k/collage-kit"
	"github.com/menta2k/collage-kit/internal/config"
	"github.com/menta2k/collage-kit/internal/logging"
	"github.com/menta2k/collage-kit/internal/utils"
	"github.com/menta2k/collage-kit/pkg/types"
)

// app is the state shared by every subcommand of one invocation
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger zerolog.Logger
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "collage-kit",
		Short: "Detect and drag the borders of collage layouts",
		Long: `collage-kit finds the draggable borders between the panels of a collage
layout, applies border drags to it and renders the panels into an image.

Layouts are JSON files:
  {"width": 1200, "height": 800, "border": 8,
   "panels": [{"panelId": "panel-1", "x": 0, "y": 0, "width": 596, "height": 800}, ...]}`,
		Version:       collagekit.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default "+config.GetConfigPath()+" when present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: console or json")

	root.AddCommand(newZonesCmd(a), newDragCmd(a), newRenderCmd(a), newFocusCmd(a), newConfigCmd(a))
	return root
}

// init loads configuration and builds the logger
func (a *app) init(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case a.configPath != "":
		cfg, err = config.LoadFromFile(a.configPath)
	case utils.FileExists(config.GetConfigPath()):
		cfg, err = config.LoadFromFile(config.GetConfigPath())
	default:
		cfg, err = config.Load("")
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Logging.Level)
	logCfg.Format = cfg.Logging.Format
	logCfg.Output = cmd.ErrOrStderr()

	a.cfg = cfg
	a.logger = logging.New(logCfg)
	cmd.SetContext(logging.WithContext(cmd.Context(), a.logger))
	return nil
}

// editor loads a layout file into an editor configured from a.cfg
func (a *app) editor(ctx context.Context, layoutPath string, snap bool) (*collagekit.Editor, error) {
	if layoutPath == "" {
		return nil, fmt.Errorf("--layout is required")
	}
	layout, err := types.LoadLayout(layoutPath)
	if err != nil {
		return nil, err
	}

	opts := []collagekit.Option{
		collagekit.WithDetectOptions(a.cfg.DetectOptions()),
		collagekit.WithMinPanelSize(a.cfg.Drag.MinPanelWidthPx, a.cfg.Drag.MinPanelHeightPx),
		collagekit.WithLogger(*logging.FromContext(logging.WithComponent(ctx, "editor"))),
	}
	centerSnap := a.cfg.CenterSnap()
	if snap {
		centerSnap.Enabled = true
	}
	if centerSnap.Enabled {
		opts = append(opts, collagekit.WithCenterSnap(centerSnap))
	}
	return collagekit.New(layout, opts...)
}
