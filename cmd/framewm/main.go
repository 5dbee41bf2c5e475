package main

import (
	"fmt"
	"os"

	"github.com/1broseidon/framewm/internal/config"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
	display    string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "framewm:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "framewm",
		Short: "Reparenting window manager for X11",
		Long: `framewm wraps every top-level X11 window in a bordered frame and lets
you move windows with Mod1+Button1 and resize them with Mod1+Button3.

Running framewm without a subcommand starts the window manager.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManager(cmd, opts)
		},
	}

	defaultPath := "~/.config/framewm/config.yaml"
	if p, err := config.DefaultConfigPath(); err == nil {
		defaultPath = p
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default is "+defaultPath+")")
	rootCmd.PersistentFlags().StringVar(&opts.display, "display", "", "X display to manage (default is $DISPLAY)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warning, error")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the framewm version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "framewm %s\n", version)
		},
	}
}

// loadConfig reads the configuration file and applies command-line
// overrides, then validates the result.
func loadConfig(opts *rootOptions) (*config.LoadResult, error) {
	path := opts.configPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}

	if opts.display != "" {
		res.Config.Display = opts.display
	}
	if opts.logLevel != "" {
		res.Config.LogLevel = opts.logLevel
		if err := res.Config.Validate(); err != nil {
			return nil, fmt.Errorf("--log-level: %w", err)
		}
	}
	return res, nil
}
