// ABOUTME: Process settings for phonestore stored at XDG paths with environment overrides
// ABOUTME: Handles settings file persistence, .env loading, storage selection, and device IDs
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v6"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/oklog/ulid/v2"
)

// AppName names the XDG data directory.
const AppName = "phonestore"

// Storage backends.
const (
	StorageBadger = "badger"
	StorageSQLite = "sqlite"
	StorageCharm  = "charm"
	StorageMemory = "memory"
)

// Duration is a time.Duration that reads and writes as "30s" in JSON and env.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("failed to parse duration %q: %w", string(b), err)
	}
	*d = Duration(v)
	return nil
}

// Settings are the process-level options. Shop settings shared with the
// backend live in models.Configuration instead.
type Settings struct {
	WebhookURL     string   `json:"webhook_url,omitempty" env:"PHONESTORE_WEBHOOK_URL"`
	Storage        string   `json:"storage" env:"PHONESTORE_STORAGE"`
	DataDir        string   `json:"data_dir,omitempty" env:"PHONESTORE_DATA_DIR"`
	RequestTimeout Duration `json:"request_timeout" env:"PHONESTORE_REQUEST_TIMEOUT"`
	RateLimit      float64  `json:"rate_limit" env:"PHONESTORE_RATE_LIMIT"` // requests per second, 0 = unlimited
	LogLevel       string   `json:"log_level" env:"PHONESTORE_LOG_LEVEL"`
	CharmHost      string   `json:"charm_host,omitempty" env:"PHONESTORE_CHARM_HOST"`
	CharmAutoSync  bool     `json:"charm_auto_sync" env:"PHONESTORE_CHARM_AUTO_SYNC"`
	DeviceID       string   `json:"device_id,omitempty" env:"PHONESTORE_DEVICE_ID"`
}

// Dir returns the XDG data directory for phonestore.
func Dir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Path returns the settings file location.
func Path() string {
	return filepath.Join(Dir(), "settings.json")
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		Storage:        StorageBadger,
		RequestTimeout: Duration(30 * time.Second),
		RateLimit:      5,
		LogLevel:       "info",
		CharmAutoSync:  true,
	}
}

// Load reads settings from the XDG settings file, then applies a .env file
// in the working directory (if present) and PHONESTORE_* environment
// variables. A missing settings file yields defaults.
func Load() (*Settings, error) {
	cfg := Defaults()

	f, err := os.Open(Path())
	switch {
	case err == nil:
		defer func() { _ = f.Close() }()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode settings: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to open settings file: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to the settings file with owner-only permissions.
func Save(cfg *Settings) error {
	if err := os.MkdirAll(Dir(), 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	defer func() { _ = f.Close() }()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return nil
}

// Validate checks enumerated fields.
func (c *Settings) Validate() error {
	switch c.Storage {
	case StorageBadger, StorageSQLite, StorageCharm, StorageMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want badger, sqlite, charm, or memory)", c.Storage)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}

// DataPath returns the directory holding local storage.
func (c *Settings) DataPath() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return Dir()
}

// BadgerDir is where the badger backend keeps its files.
func (c *Settings) BadgerDir() string {
	return filepath.Join(c.DataPath(), "kv")
}

// SQLitePath is the sqlite backend's database file.
func (c *Settings) SQLitePath() string {
	return filepath.Join(c.DataPath(), "phonestore.db")
}

// Level returns the parsed log level, defaulting to info.
func (c *Settings) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Timeout returns the request timeout as a time.Duration.
func (c *Settings) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout)
}

// EnsureDeviceID assigns a device ID if none is set and reports whether it did.
func (c *Settings) EnsureDeviceID() bool {
	if c.DeviceID != "" {
		return false
	}
	c.DeviceID = GenerateDeviceID()
	return true
}

// GenerateDeviceID returns a new ULID identifying this installation.
func GenerateDeviceID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
