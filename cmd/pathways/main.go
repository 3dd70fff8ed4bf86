// Package main is the entry point for the pathways CLI: a demo terminal app
// driven by the navigation core, plus inspection and validation tooling for
// persisted navigation state files.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/normanking/pathways/internal/config"
)

var (
	version = "0.1.0"

	cfgPath string
	verbose bool
	cfg     *config.Config
)

func main() {
	lipgloss.SetColorProfile(termenv.ColorProfile())

	rootCmd := &cobra.Command{
		Use:   "pathways",
		Short: "Pathways - navigation state management playground",
		Long: `Pathways is a navigation state management library for terminal apps:
stack, tab and drawer routers over an immutable navigation state tree.

Run the demo:          pathways demo
Inspect a snapshot:    pathways inspect state.json
Validate a snapshot:   pathways validate state.json`,
		Version:           version,
		PersistentPreRunE: initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default ~/.pathways/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initApp loads configuration and wires the global logger the way the rest
// of the code expects it: console output, level from config unless --verbose
// forces debug.
func initApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Pretty {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}
