package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/brainbuilder/internal/state"
	"github.com/abhisek/brainbuilder/internal/ui/dashboard"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print streaks, today's progress and mastery per topic",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		return withDeps(cmd, func(_ *deps, st *state.AppState) error {
			fmt.Fprintln(cmd.OutOrStdout(), dashboard.Render(dashboard.Build(st, time.Now()), width))
			return nil
		})
	},
}

func init() {
	statsCmd.Flags().Int("width", 100, "Output width in columns")
}
