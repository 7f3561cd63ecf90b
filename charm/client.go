// ABOUTME: Charm KV client exposed as a storefront KeyValueStore
// ABOUTME: Writes go to the local charm database and are pushed when auto-sync is on
package charm

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"
)

// backend is the subset of *kv.KV the client uses.
type backend interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
}

// Client wraps charm KV with sync helpers. It implements store.KeyValueStore.
type Client struct {
	kv     backend
	config *Config
	logger *log.Logger
	mu     sync.RWMutex
	remote bool
}

// NewClient opens the charm KV database described by cfg.
func NewClient(cfg *Config, logger *log.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = log.Default()
	}

	db, err := cfg.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := &Client{
		kv:     db,
		config: cfg,
		logger: logger.WithPrefix("charm"),
		remote: true,
	}

	// Pull remote changes on startup
	if cfg.AutoSync {
		if err := db.Sync(); err != nil {
			c.logger.Warn("initial sync failed, continuing with local data", "err", err)
		}
	}

	return c, nil
}

// Config returns the client's config.
func (c *Client) Config() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// ID returns the charm user ID for this device.
func (c *Client) ID() (string, error) {
	if !c.remote {
		return "", errors.New("charm client is running without a server")
	}
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// IsConnected reports whether the charm server answers for this device.
func (c *Client) IsConnected() bool {
	if !c.remote {
		return true
	}
	_, err := c.ID()
	return err == nil
}

// Sync performs a manual sync with the charm server.
func (c *Client) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Sync()
}

func (c *Client) Get(key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(v), true, nil
}

// Set stores a value and syncs if enabled. A failed push is logged and
// does not fail the write: the local copy is authoritative until the next sync.
func (c *Client) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set([]byte(key), []byte(value)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	c.syncLocked()
	return nil
}

// Delete removes a key and syncs if enabled.
func (c *Client) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.kv.Delete([]byte(key))
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	c.syncLocked()
	return nil
}

// Keys returns all keys (for debugging/admin).
func (c *Client) Keys() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(raw))
	for i, k := range raw {
		keys[i] = string(k)
	}
	return keys, nil
}

// Reset wipes all data from the KV store (use with caution!)
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// Close is a no-op: charm/kv does not expose Close and the underlying
// BadgerDB is released on process exit.
func (c *Client) Close() error {
	return nil
}

// syncLocked must be called with mu held.
func (c *Client) syncLocked() {
	if !c.config.AutoSync {
		return
	}
	if err := c.kv.Sync(); err != nil {
		c.logger.Warn("sync after write failed", "err", err)
	}
}
