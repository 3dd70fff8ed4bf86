package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/normanking/pathways/pkg/navstate"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <state.json>",
		Short: "Check a navigation state snapshot against the state invariants",
		Long: `Decodes a snapshot and checks every NavigationState invariant at every
level: index in range, route names registered, keys present and unique,
history consistent. Partial (stale) snapshots are reported as such - they
are legal input for rehydration, not valid states.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			st, err := navstate.Decode(data)
			if err != nil {
				return err
			}

			full, ok := st.(*navstate.NavigationState)
			if !ok {
				fmt.Println("partial: snapshot is stale and needs rehydration before use")
				return nil
			}
			if err := navstate.ValidateDeep(full); err != nil {
				return fmt.Errorf("invalid: %w", err)
			}
			fmt.Println("ok: snapshot satisfies all state invariants")
			return nil
		},
	}
}
