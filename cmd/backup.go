package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/brainbuilder/internal/state"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON backup of all topics and progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		return withDeps(cmd, func(d *deps, _ *state.AppState) error {
			path, err := d.coord.Export(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all state with a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(d *deps, _ *state.AppState) error {
			st, err := d.coord.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d topics\n", len(st.Topics))
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().String("dir", ".", "Directory to write the backup into")
}
