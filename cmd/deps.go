package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/brainbuilder/internal/config"
	"github.com/abhisek/brainbuilder/internal/persist"
	"github.com/abhisek/brainbuilder/internal/remote"
	"github.com/abhisek/brainbuilder/internal/state"
	"github.com/abhisek/brainbuilder/internal/store"
)

// deps is what every state-touching command needs: the config, the local
// cache and a coordinator wired to the remote, if one is configured.
type deps struct {
	cfg    *config.Config
	store  *store.Store
	coord  *persist.Coordinator
	remote bool
	logger *log.Logger
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "brainbuilder: ", 0)
}

// openDeps resolves configuration and opens the cache. Callers must call
// close.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	logger := newLogger()
	opts := []persist.Option{
		persist.WithDebounce(cfg.SyncDebounce),
		persist.WithTimeout(cfg.Timeout),
		persist.WithLogger(logger),
	}

	if cfg.SyncQueue {
		opts = append(opts, persist.WithPendingWrite())
	}

	d := &deps{cfg: cfg, store: st, logger: logger}
	cfg.APIURL = resolveAPIURL(cmd, cfg)
	if cfg.RemoteEnabled() {
		client := remote.New(cfg.APIURL, cfg.AuthSecret, remote.WithTimeout(cfg.Timeout))
		d.coord = persist.New(st, client, opts...)
		d.remote = true
	} else {
		// A nil Remote interface, not a nil *remote.Client.
		d.coord = persist.New(st, nil, opts...)
	}
	return d, nil
}

// load runs InitState and returns the freshest state it produced.
func (d *deps) load(ctx context.Context) *state.AppState {
	var latest *state.AppState
	d.coord.InitState(ctx, func(st *state.AppState) { latest = st })
	return latest
}

// close flushes pending remote writes and closes the cache.
func (d *deps) close() {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout)
	defer cancel()
	if err := d.coord.Close(ctx); err != nil {
		d.logger.Printf("warning: cloud save did not finish: %v", err)
	}
	if err := d.store.Close(); err != nil {
		d.logger.Printf("warning: close store: %v", err)
	}
}

// withDeps opens deps, loads the state and runs fn.
func withDeps(cmd *cobra.Command, fn func(d *deps, st *state.AppState) error) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()
	return fn(d, d.load(cmd.Context()))
}
