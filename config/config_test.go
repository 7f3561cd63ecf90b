// ABOUTME: Tests for settings persistence, environment overrides, and validation
// ABOUTME: Redirects XDG data home to a temp dir for isolation
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDataHome(t *testing.T) string {
	t.Helper()
	orig := xdg.DataHome
	tmp := t.TempDir()
	xdg.DataHome = tmp
	t.Cleanup(func() { xdg.DataHome = orig })
	return tmp
}

func TestPath(t *testing.T) {
	home := useTempDataHome(t)
	assert.Equal(t, filepath.Join(home, "phonestore"), Dir())
	assert.Equal(t, "settings.json", filepath.Base(Path()))
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	useTempDataHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageBadger, cfg.Storage)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, log.InfoLevel, cfg.Level())
	assert.Empty(t, cfg.WebhookURL)
}

func TestSaveAndLoad(t *testing.T) {
	useTempDataHome(t)

	original := Defaults()
	original.WebhookURL = "https://n8n.example.com/webhook/shop"
	original.Storage = StorageSQLite
	original.RequestTimeout = Duration(10 * time.Second)
	original.DeviceID = "device001"
	require.NoError(t, Save(original))

	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	raw, err := os.ReadFile(Path())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"request_timeout": "10s"`))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestEnvOverrides(t *testing.T) {
	useTempDataHome(t)
	require.NoError(t, Save(&Settings{Storage: StorageBadger, LogLevel: "info", WebhookURL: "https://file.example"}))

	t.Setenv("PHONESTORE_WEBHOOK_URL", "https://env.example/webhook")
	t.Setenv("PHONESTORE_STORAGE", "memory")
	t.Setenv("PHONESTORE_REQUEST_TIMEOUT", "5s")
	t.Setenv("PHONESTORE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example/webhook", cfg.WebhookURL)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	useTempDataHome(t)
	t.Setenv("PHONESTORE_STORAGE", "floppy")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	useTempDataHome(t)
	require.NoError(t, os.MkdirAll(Dir(), 0700))
	require.NoError(t, os.WriteFile(Path(), []byte("{"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestStoragePaths(t *testing.T) {
	cfg := Defaults()
	cfg.DataDir = "/tmp/shop"
	assert.Equal(t, "/tmp/shop/kv", cfg.BadgerDir())
	assert.Equal(t, "/tmp/shop/phonestore.db", cfg.SQLitePath())
}

func TestEnsureDeviceID(t *testing.T) {
	cfg := Defaults()
	assert.True(t, cfg.EnsureDeviceID())
	_, err := ulid.Parse(cfg.DeviceID)
	require.NoError(t, err)

	id := cfg.DeviceID
	assert.False(t, cfg.EnsureDeviceID())
	assert.Equal(t, id, cfg.DeviceID)
}
