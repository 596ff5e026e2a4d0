package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/brainbuilder/internal/state"
)

var drillCmd = &cobra.Command{
	Use:   "drill <topic-id>",
	Short: "Drill a topic's flashcards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkTopic(cmd, args[0]); err != nil {
			return err
		}
		return runApp(cmd, args[0])
	},
}

// checkTopic fails early when neither the cache nor the remote has the topic.
func checkTopic(cmd *cobra.Command, id string) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()
	if d.load(cmd.Context()).FindTopic(id) == nil {
		return fmt.Errorf("%w: %s (see `brainbuilder topic list`)", state.ErrTopicNotFound, id)
	}
	return nil
}
