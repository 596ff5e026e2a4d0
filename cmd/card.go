package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/brainbuilder/internal/state"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage a topic's flashcards",
}

var cardAddCmd = &cobra.Command{
	Use:   "add <topic-id> <front> <back>",
	Short: "Add a flashcard to a topic",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(d *deps, _ *state.AppState) error {
			var added state.Card
			err := d.coord.Update(func(st *state.AppState) error {
				c, err := st.AddCard(args[0], args[1], args[2])
				added = c
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added card %s\n", added.ID)
			return nil
		})
	},
}

var cardListCmd = &cobra.Command{
	Use:   "list <topic-id>",
	Short: "List a topic's flashcards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(_ *deps, st *state.AppState) error {
			t := st.FindTopic(args[0])
			if t == nil {
				return fmt.Errorf("%w: %s", state.ErrTopicNotFound, args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\n", t.Name, strings.Repeat("─", 60))
			for _, c := range t.Cards {
				fmt.Fprintf(out, "%s  %s → %s\n", c.ID, c.Front, c.Back)
			}
			fmt.Fprintf(out, "\n%d cards\n", len(t.Cards))
			return nil
		})
	},
}

func init() {
	cardCmd.AddCommand(cardAddCmd)
	cardCmd.AddCommand(cardListCmd)
}
