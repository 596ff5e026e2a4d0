package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/brainbuilder/internal/config"
	"github.com/abhisek/brainbuilder/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "brainbuilder",
	Short: "Daily flashcard drills with streaks and mastery",
	Long: "Brain Builder: drill a few flashcards per topic every day, keep your streaks alive\n" +
		"and watch mastery grow. State is cached locally and synced to a remote blob when\n" +
		"BRAINBUILDER_API_URL is set.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

// Execute runs the root command; ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite cache file (overrides BRAINBUILDER_DB env var)")
	rootCmd.PersistentFlags().String("api-url", "", "Remote state endpoint (overrides BRAINBUILDER_API_URL env var)")

	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then BRAINBUILDER_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveAPIURL returns --api-url, falling back to BRAINBUILDER_API_URL.
func resolveAPIURL(cmd *cobra.Command, cfg *config.Config) string {
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		return u
	}
	return cfg.APIURL
}
