package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/normanking/pathways/pkg/navstate"
	"github.com/normanking/pathways/pkg/navtree"
	"github.com/normanking/pathways/pkg/tui"
)

func demoCmd() *cobra.Command {
	var (
		flowPath  string
		statePath string
		save      bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive navigation demo",
		Long: `Runs a terminal app driven by the navigation core. The structure comes
from a YAML flow file (or a built-in default), and navigation state can be
saved on exit and restored on the next run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, err := loadFlow(flowPath)
			if err != nil {
				return err
			}
			r, screens, err := flow.build()
			if err != nil {
				return err
			}

			if statePath == "" {
				statePath = cfg.Snapshot.Path
			}
			save = save || cfg.Snapshot.SaveOnExit

			var opts []navtree.Option
			if restored := loadSnapshot(statePath); restored != nil {
				opts = append(opts, navtree.WithInitialState(restored))
			}

			tree, err := navtree.New(r, screens, opts...)
			if err != nil {
				return err
			}

			p := tea.NewProgram(tui.New(tree), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("demo: %w", err)
			}

			if save {
				return saveSnapshot(statePath, tree.RootState())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flowPath, "flow", "", "YAML flow file describing the navigator tree")
	cmd.Flags().StringVar(&statePath, "state", "", "state snapshot file (default from config)")
	cmd.Flags().BoolVar(&save, "save", false, "save navigation state on exit")
	return cmd
}

// loadSnapshot reads a persisted state if one exists. Snapshots are
// untrusted input: whatever comes back goes through rehydration, and a
// snapshot that fails to decode is logged and skipped rather than blocking
// the demo.
func loadSnapshot(path string) navstate.State {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	st, err := navstate.Decode(data)
	if err != nil {
		zlog.Warn().Err(err).Str("path", path).Msg("ignoring unreadable state snapshot")
		return nil
	}
	zlog.Debug().Str("path", path).Msg("restoring navigation state")
	return st
}

func saveSnapshot(path string, state *navstate.NavigationState) error {
	data, err := navstate.Encode(state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	zlog.Info().Str("path", path).Msg("navigation state saved")
	return nil
}
