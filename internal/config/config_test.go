package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.SyncDebounce)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, ":8888", cfg.ServerAddr)
	assert.Empty(t, cfg.APIURL)
	assert.False(t, cfg.RemoteEnabled())
	assert.False(t, cfg.SyncQueue)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BRAINBUILDER_DB", "/tmp/bb.db")
	t.Setenv("BRAINBUILDER_API_URL", "https://example.test/api/state")
	t.Setenv("BRAINBUILDER_AUTH", "s3cret")
	t.Setenv("BRAINBUILDER_SYNC_DEBOUNCE", "2s")
	t.Setenv("BRAINBUILDER_ADDR", "127.0.0.1:9000")
	t.Setenv("BRAINBUILDER_SYNC_QUEUE", "true")

	cfg, err := Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/bb.db", cfg.DBPath)
	assert.Equal(t, "s3cret", cfg.AuthSecret)
	assert.Equal(t, 2*time.Second, cfg.SyncDebounce)
	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddr)
	assert.True(t, cfg.RemoteEnabled())
	assert.True(t, cfg.SyncQueue)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BRAINBUILDER_SERVER_DB=/srv/blob.db\nBRAINBUILDER_AUTH=from-file\n"), 0o600))

	// godotenv sets variables for the whole process; restore them afterwards.
	t.Setenv("BRAINBUILDER_SERVER_DB", "")
	os.Unsetenv("BRAINBUILDER_SERVER_DB")
	t.Setenv("BRAINBUILDER_AUTH", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/blob.db", cfg.ServerDB)
	assert.Equal(t, "from-env", cfg.AuthSecret, "the environment wins over the file")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"bad duration", "BRAINBUILDER_TIMEOUT", "soon", "parse env:"},
		{"zero timeout", "BRAINBUILDER_TIMEOUT", "0s", "must be positive"},
		{"bad bool", "BRAINBUILDER_SYNC_QUEUE", "maybe", "parse env:"},
		{"negative debounce", "BRAINBUILDER_SYNC_DEBOUNCE", "-1s", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(missingFile(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
