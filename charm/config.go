// ABOUTME: Configuration for the Charm KV storage backend
// ABOUTME: Holds server host and auto-sync preferences
package charm

import (
	"os"

	"github.com/charmbracelet/charm/kv"
)

const (
	// DefaultCharmHost is the self-hosted 2389 research server.
	DefaultCharmHost = "charm.2389.dev"

	// AppName is the Charm KV database name.
	AppName = "phonestore"
)

// Config holds charm connection settings.
type Config struct {
	// Host is the charm server hostname (default: charm.2389.dev)
	Host string `json:"host,omitempty"`

	// AutoSync pushes after every write and pulls on open
	AutoSync bool `json:"auto_sync"`
}

// DefaultConfig returns a new config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:     DefaultCharmHost,
		AutoSync: true,
	}
}

// Open sets CHARM_HOST and opens the named KV database with charm's defaults.
func (c *Config) Open() (*kv.KV, error) {
	host := c.Host
	if host == "" {
		host = DefaultCharmHost
	}
	_ = os.Setenv("CHARM_HOST", host)
	return kv.OpenWithDefaults(AppName)
}
