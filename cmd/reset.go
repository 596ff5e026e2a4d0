package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/brainbuilder/internal/state"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all topics and progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("refusing to reset without --yes (run `brainbuilder export` first)")
		}
		return withDeps(cmd, func(d *deps, _ *state.AppState) error {
			if err := d.coord.Update(func(st *state.AppState) error {
				*st = *state.Default()
				return nil
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All topics and progress deleted")
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
