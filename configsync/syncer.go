// ABOUTME: Two-tier shop configuration cache backed by the local store and the webhook
// ABOUTME: Also owns the live inventory and history snapshots fetched from the backend
package configsync

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/harperreed/phonestore/catalog"
	"github.com/harperreed/phonestore/models"
	"github.com/harperreed/phonestore/outcome"
	"github.com/harperreed/phonestore/store"
	"github.com/harperreed/phonestore/webhook"
)

// User-facing save messages.
const (
	MsgSaved          = "Settings saved"
	MsgSavedLocalOnly = "Settings saved locally, but the cloud sync failed"
	MsgLocalSaveError = "Settings could not be saved on this device"
)

// Sender is the subset of *webhook.Client the syncer uses.
type Sender interface {
	Send(ctx context.Context, url string, req webhook.Request) (*webhook.Response, error)
}

// Options configures a Syncer.
type Options struct {
	Store    store.KeyValueStore
	Client   Sender
	Defaults models.Configuration
	Logger   *log.Logger
}

// Syncer holds the working configuration. Reads never fail; the last good
// value is kept whenever a refresh cannot complete.
type Syncer struct {
	store  store.KeyValueStore
	client Sender
	logger *log.Logger

	mu        sync.RWMutex
	current   models.Configuration
	gen       uint64
	inventory []models.Product
	history   []models.HistoryEntry
}

// New creates a Syncer seeded with opts.Defaults.
func New(opts Options) *Syncer {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Syncer{
		store:   opts.Store,
		client:  opts.Client,
		logger:  logger.WithPrefix("configsync"),
		current: opts.Defaults,
	}
}

// Current returns the working configuration.
func (s *Syncer) Current() models.Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Load adopts the locally cached record, then refreshes from the webhook
// when a URL is known. Failures are logged and the previous value is kept.
func (s *Syncer) Load(ctx context.Context) models.Configuration {
	var cached models.Configuration
	found, err := store.GetJSON(s.store, store.KeyConfig, &cached)
	switch {
	case err != nil:
		s.logger.Warn("ignoring unreadable cached settings", "err", err)
	case found:
		s.adopt(cached)
	}

	s.mu.RLock()
	url := s.current.WebhookURL
	gen := s.gen
	s.mu.RUnlock()

	if url == "" {
		return s.Current()
	}
	if IsTestEndpoint(url) {
		s.logger.Warn("webhook url points at a test endpoint; it only works while the workflow editor is listening", "url", url)
	}

	resp, err := s.client.Send(ctx, url, webhook.GetConfig{})
	if err != nil {
		s.logger.Warn("settings sync: using local values", "err", err)
		return s.Current()
	}
	if !resp.Success() {
		s.logger.Warn("settings sync: server did not return settings")
		return s.Current()
	}

	var remote models.Configuration
	found, err = resp.Decode("config", &remote)
	if err != nil || !found {
		s.logger.Warn("settings sync: missing or malformed config", "err", err)
		return s.Current()
	}
	if ctx.Err() != nil {
		return s.Current()
	}

	s.mu.Lock()
	if s.gen != gen {
		// A save landed while the fetch was in flight.
		s.mu.Unlock()
		s.logger.Debug("discarding stale remote settings")
		return s.Current()
	}
	if remote.WebhookURL == "" {
		remote.WebhookURL = s.current.WebhookURL
	}
	s.current = remote
	s.gen++
	s.mu.Unlock()

	if err := store.SetJSON(s.store, store.KeyConfig, remote); err != nil {
		s.logger.Warn("failed to cache remote settings", "err", err)
	}
	return remote
}

func (s *Syncer) adopt(cfg models.Configuration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cfg
	s.gen++
}

// Save writes cfg locally, adopts it, and pushes it to the webhook when
// cfg has a URL. A failed push yields a partial result.
func (s *Syncer) Save(ctx context.Context, cfg models.Configuration) outcome.Result {
	if err := store.SetJSON(s.store, store.KeyConfig, cfg); err != nil {
		s.logger.Error("failed to save settings locally", "err", err)
		return outcome.Result{Status: outcome.StatusFailed, Message: MsgLocalSaveError, Err: err}
	}
	s.adopt(cfg)

	if cfg.WebhookURL == "" {
		return outcome.Success(MsgSaved)
	}

	resp, err := s.client.Send(ctx, cfg.WebhookURL, webhook.UpdateConfig{Config: cfg})
	if err != nil {
		s.logger.Warn("cloud save failed", "err", err)
		return outcome.Partial(MsgSavedLocalOnly, err)
	}
	if resp.Get("success").Exists() && !resp.Success() {
		err := outcome.Rejected(resp.Message(), fmt.Errorf("update_config was not accepted"))
		s.logger.Warn("cloud save rejected", "err", err)
		return outcome.Partial(MsgSavedLocalOnly, err)
	}
	return outcome.Success(MsgSaved)
}

// FetchInventory refreshes the live inventory. On failure the previous
// snapshot is kept. The returned slice is what the storefront should show.
func (s *Syncer) FetchInventory(ctx context.Context) []models.Product {
	url := s.Current().WebhookURL
	if url == "" {
		return s.Inventory()
	}

	resp, err := s.client.Send(ctx, url, webhook.GetInventory{})
	if err != nil || !resp.Success() {
		s.logger.Debug("inventory refresh skipped", "err", err)
		return s.Inventory()
	}

	var items []models.Product
	found, err := resp.Decode("inventory", &items)
	if err != nil || !found || ctx.Err() != nil {
		s.logger.Debug("inventory refresh skipped", "err", err)
		return s.Inventory()
	}

	s.mu.Lock()
	s.inventory = items
	s.mu.Unlock()
	s.logger.Info("inventory refreshed", "items", len(items))
	return s.Inventory()
}

// Inventory returns the live inventory, or the sample catalog when no live
// items are known.
func (s *Syncer) Inventory() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.inventory) == 0 {
		return catalog.Sample()
	}
	out := make([]models.Product, len(s.inventory))
	copy(out, s.inventory)
	return out
}

// IsLive reports whether Inventory reflects fetched data.
func (s *Syncer) IsLive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.inventory) > 0
}

// FetchHistory refreshes the recent transaction history.
func (s *Syncer) FetchHistory(ctx context.Context) []models.HistoryEntry {
	url := s.Current().WebhookURL
	if url == "" {
		return s.History()
	}

	resp, err := s.client.Send(ctx, url, webhook.GetHistory{})
	if err != nil || !resp.Success() {
		s.logger.Debug("history refresh skipped", "err", err)
		return s.History()
	}

	var entries []models.HistoryEntry
	found, err := resp.Decode("history", &entries)
	if err != nil || !found || ctx.Err() != nil {
		return s.History()
	}

	s.mu.Lock()
	s.history = entries
	s.mu.Unlock()
	return s.History()
}

func (s *Syncer) History() []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// Ping checks that the webhook answers. Any 2xx is healthy.
func (s *Syncer) Ping(ctx context.Context) error {
	url := s.Current().WebhookURL
	if url == "" {
		return outcome.Configuration("Set a webhook URL first")
	}
	if _, err := s.client.Send(ctx, url, webhook.Ping{}); err != nil {
		return fmt.Errorf("failed to reach webhook: %w", err)
	}
	return nil
}

// IsTestEndpoint reports whether url is a workflow-editor test webhook.
func IsTestEndpoint(url string) bool {
	return strings.Contains(url, "webhook-test")
}
