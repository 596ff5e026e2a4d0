package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/brainbuilder/internal/mastery"
	"github.com/abhisek/brainbuilder/internal/state"
	"github.com/abhisek/brainbuilder/internal/streak"
)

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Manage topics",
}

var topicAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		color, _ := cmd.Flags().GetString("color")
		name := strings.Join(args, " ")

		return withDeps(cmd, func(d *deps, _ *state.AppState) error {
			var added *state.Topic
			err := d.coord.Update(func(st *state.AppState) error {
				t, err := st.AddTopic(name, color)
				added = t
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added topic %q (%s)\n", added.Name, added.ID)
			return nil
		})
	},
}

var topicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics with streak and mastery",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(_ *deps, st *state.AppState) error {
			out := cmd.OutOrStdout()
			if len(st.Topics) == 0 {
				fmt.Fprintln(out, "No topics yet. Add one with `brainbuilder topic add <name>`.")
				return nil
			}

			now := time.Now()
			fmt.Fprintf(out, "%-36s  %-24s  %5s  %6s  %7s\n", "ID", "Name", "Cards", "Streak", "Mastery")
			fmt.Fprintln(out, strings.Repeat("─", 86))
			for _, t := range st.Topics {
				name := t.Name
				if len(name) > 24 {
					name = name[:21] + "..."
				}
				fmt.Fprintf(out, "%-36s  %-24s  %5d  %6d  %6d%%\n",
					t.ID, name, len(t.Cards),
					streak.TopicStreak(st.Progress, t.ID, now),
					mastery.Compute(st.Progress, t.ID, now))
			}
			fmt.Fprintf(out, "\n%d topics\n", len(st.Topics))
			return nil
		})
	},
}

var topicRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a topic (its history is kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(d *deps, _ *state.AppState) error {
			if err := d.coord.Update(func(st *state.AppState) error {
				return st.RemoveTopic(args[0])
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed topic %s\n", args[0])
			return nil
		})
	},
}

func init() {
	topicAddCmd.Flags().String("color", "", "Hex color, e.g. #3B82F6 (default: next palette color)")

	topicCmd.AddCommand(topicAddCmd)
	topicCmd.AddCommand(topicListCmd)
	topicCmd.AddCommand(topicRmCmd)
}
