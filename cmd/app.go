package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/brainbuilder/internal/app"
)

// runApp opens the cache and launches the TUI, optionally straight into a
// drill for startTopic.
func runApp(cmd *cobra.Command, startTopic string) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	return app.Run(cmd.Context(), d.coord, app.Options{
		StartTopic: startTopic,
		Remote:     d.remote,
	})
}
