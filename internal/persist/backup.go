package persist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/brainbuilder/internal/state"
)

// ErrReadFile is returned when a backup cannot be read at all.
var ErrReadFile = errors.New("could not read file")

// BackupFilename names a backup taken at now, in UTC, to the second.
func BackupFilename(now time.Time) string {
	return "brainbuilder-backup-" + now.UTC().Format("2006-01-02T15-04-05") + ".json"
}

// ExportState writes st as indented JSON.
func ExportState(w io.Writer, st *state.AppState) error {
	b, err := state.EncodeIndent(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// maxBackupSuffix bounds how many same-second backups Export will number.
const maxBackupSuffix = 99

// Export writes the current state to a new backup file in dir and returns
// its path. Existing files are never overwritten: a second backup within the
// same second gets a -1, -2, ... suffix.
func (c *Coordinator) Export(dir string) (string, error) {
	name := BackupFilename(c.now())
	base := strings.TrimSuffix(name, ".json")

	for n := 0; n <= maxBackupSuffix; n++ {
		path := filepath.Join(dir, name)
		if n > 0 {
			path = filepath.Join(dir, fmt.Sprintf("%s-%d.json", base, n))
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create backup: %w", err)
		}
		if err := ExportState(f, c.State()); err != nil {
			f.Close()
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close backup: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("create backup: %s and %d numbered copies already exist in %s", name, maxBackupSuffix, dir)
}

// ImportState reads a backup from r and, if it is valid, makes it the
// current state: it is cached, written remotely (failures are only logged)
// and returned. On error the current state is left alone; the error wraps
// ErrReadFile, state.ErrInvalidJSON or state.ErrInvalidFormat.
func (c *Coordinator) ImportState(ctx context.Context, r io.Reader) (*state.AppState, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFile, err)
	}
	st, err := state.Parse(data)
	if err != nil {
		return nil, err
	}
	body, err := state.Encode(st)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}

	c.mu.Lock()
	c.state = st
	// A write scheduled before the import would overwrite it.
	c.cancelTimerLocked()
	c.mu.Unlock()

	c.cacheLocal(body)
	if c.remote != nil {
		c.pushGuarded(ctx, body)
	}
	return st, nil
}

// ImportFile is ImportState for a file on disk.
func (c *Coordinator) ImportFile(ctx context.Context, path string) (*state.AppState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFile, err)
	}
	defer f.Close()
	return c.ImportState(ctx, f)
}
