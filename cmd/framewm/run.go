package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/1broseidon/framewm/internal/config"
	"github.com/1broseidon/framewm/internal/logging"
	"github.com/1broseidon/framewm/internal/platform"
	"github.com/1broseidon/framewm/internal/wm"
	"github.com/1broseidon/framewm/internal/x11"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the window manager (foreground)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManager(cmd, opts)
		},
	}
}

func runManager(cmd *cobra.Command, opts *rootOptions) error {
	res, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg := res.Config

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	if res.File != "" {
		logger.Info("configuration loaded", "path", res.File)
	} else {
		logger.Info("no configuration file, using defaults")
	}

	wmOpts, err := managerOptions(cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	session, err := platform.OpenX11Session(cfg.Display, logger)
	if err != nil {
		if errors.Is(err, x11.ErrAnotherManager) {
			return fmt.Errorf("another window manager is already running on %s", displayName(cfg.Display))
		}
		return err
	}
	defer session.Close()

	if screens, err := session.Screens(); err != nil {
		logger.Debug("cannot list screens", "error", err)
	} else {
		for _, sc := range screens {
			logger.Info("screen", "name", sc.Name, "x", sc.Bounds.X, "y", sc.Bounds.Y,
				"width", sc.Bounds.Width, "height", sc.Bounds.Height)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The event fetch blocks; closing the connection is what wakes it.
	go func() {
		<-ctx.Done()
		session.Close()
	}()

	manager := wm.New(session, wmOpts, logger)
	if err := manager.AdoptExisting(); err != nil {
		logger.Warn("failed to adopt existing windows", "error", err)
	}

	err = manager.Run(ctx)
	if ctx.Err() != nil {
		logger.Info("shutting down", "framed", manager.Registry().Len())
		return nil
	}
	logger.Error("event loop stopped", "error", err)
	return err
}

// managerOptions converts validated configuration into manager options.
func managerOptions(cfg *config.Config) (wm.Options, error) {
	style, err := cfg.FrameStyle()
	if err != nil {
		return wm.Options{}, err
	}
	moveButton, err := config.ButtonOf(cfg.MoveBinding)
	if err != nil {
		return wm.Options{}, fmt.Errorf("move_binding: %w", err)
	}
	resizeButton, err := config.ButtonOf(cfg.ResizeBinding)
	if err != nil {
		return wm.Options{}, fmt.Errorf("resize_binding: %w", err)
	}
	return wm.Options{
		Style:         style,
		MoveBinding:   cfg.MoveBinding,
		ResizeBinding: cfg.ResizeBinding,
		CloseBinding:  cfg.CloseBinding,
		MoveMask:      config.ButtonMask(moveButton),
		ResizeMask:    config.ButtonMask(resizeButton),
	}, nil
}

func displayName(display string) string {
	if display == "" {
		return "$DISPLAY"
	}
	return display
}
