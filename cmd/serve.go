package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/brainbuilder/internal/config"
	"github.com/abhisek/brainbuilder/internal/server"
	"github.com/abhisek/brainbuilder/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the remote state endpoint at /api/state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		addr := cfg.ServerAddr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		dbPath, err := resolveServerDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve server DB path: %w", err)
		}
		blobs, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer blobs.Close()

		logger := newLogger()
		if cfg.AuthSecret == "" {
			logger.Printf("warning: BRAINBUILDER_AUTH is empty, the endpoint accepts any request")
		}
		return server.Run(cmd.Context(), addr, server.NewHandler(blobs, cfg.AuthSecret, logger), logger)
	},
}

// resolveServerDBPath uses BRAINBUILDER_SERVER_DB, else server.db next to
// the client cache.
func resolveServerDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if cfg.ServerDB != "" {
		return cfg.ServerDB, store.EnsureDir(cfg.ServerDB)
	}
	clientDB, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(clientDB), "server.db"), nil
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides BRAINBUILDER_ADDR, default :8888)")
}
