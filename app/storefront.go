// ABOUTME: Application container wiring storage, webhook, and every storefront component
// ABOUTME: Exposes the shopper event hooks that award points and drive checkout
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/harperreed/phonestore/cart"
	"github.com/harperreed/phonestore/catalog"
	"github.com/harperreed/phonestore/charm"
	"github.com/harperreed/phonestore/checkout"
	"github.com/harperreed/phonestore/config"
	"github.com/harperreed/phonestore/configsync"
	"github.com/harperreed/phonestore/db"
	"github.com/harperreed/phonestore/gamification"
	"github.com/harperreed/phonestore/models"
	"github.com/harperreed/phonestore/session"
	"github.com/harperreed/phonestore/staff"
	"github.com/harperreed/phonestore/store"
	"github.com/harperreed/phonestore/webhook"
)

// Storefront owns one instance of every component. It is created by the
// process root and passed explicitly to the surfaces that need it.
type Storefront struct {
	Settings *config.Settings
	Logger   *log.Logger
	Store    store.KeyValueStore
	// Charm is set only when the charm backend is in use.
	Charm *charm.Client

	Webhook  *webhook.Client
	Config   *configsync.Syncer
	Session  *session.Manager
	Rewards  *gamification.Engine
	Cart     *cart.Store
	Checkout *checkout.Orchestrator
	Staff    *staff.Hub
}

// OpenStore opens the storage backend selected in settings.
func OpenStore(settings *config.Settings, logger *log.Logger) (store.KeyValueStore, *charm.Client, error) {
	switch settings.Storage {
	case config.StorageMemory:
		return store.NewMemoryStore(), nil, nil
	case config.StorageSQLite:
		s, err := db.OpenStore(settings.SQLitePath())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return s, nil, nil
	case config.StorageCharm:
		c, err := charm.NewClient(&charm.Config{Host: settings.CharmHost, AutoSync: settings.CharmAutoSync}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open charm store: %w", err)
		}
		return c, c, nil
	}
	s, err := store.OpenBadger(settings.BadgerDir())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open badger store: %w", err)
	}
	return s, nil, nil
}

// Open opens storage and builds a Storefront from settings.
func Open(settings *config.Settings, logger *log.Logger) (*Storefront, error) {
	kv, charmClient, err := OpenStore(settings, logger)
	if err != nil {
		return nil, err
	}
	sf := New(settings, kv, logger)
	sf.Charm = charmClient
	return sf, nil
}

// New builds a Storefront around an already-open store.
func New(settings *config.Settings, kv store.KeyValueStore, logger *log.Logger) *Storefront {
	if settings == nil {
		settings = config.Defaults()
	}
	if logger == nil {
		logger = log.Default()
	}

	client := webhook.New(webhook.Options{
		Timeout:           settings.Timeout(),
		RequestsPerSecond: settings.RateLimit,
		Burst:             2,
		Logger:            logger,
	})

	syncer := configsync.New(configsync.Options{
		Store:    kv,
		Client:   client,
		Defaults: models.DefaultConfiguration(settings.WebhookURL),
		Logger:   logger,
	})

	sessions := session.NewManager(session.Options{
		Store:  kv,
		Client: client,
		Config: syncer,
		Logger: logger,
	})

	rewards := gamification.NewEngine(kv, logger)
	shoppingCart := cart.New()

	return &Storefront{
		Settings: settings,
		Logger:   logger,
		Store:    kv,
		Webhook:  client,
		Config:   syncer,
		Session:  sessions,
		Rewards:  rewards,
		Cart:     shoppingCart,
		Checkout: checkout.New(checkout.Options{
			Client:  client,
			Config:  syncer,
			Cart:    shoppingCart,
			Rewards: rewards,
			Logger:  logger,
		}),
		Staff: staff.NewHub(staff.Options{
			Client:  client,
			Config:  syncer,
			Session: sessions,
			Logger:  logger,
		}),
	}
}

// Init loads configuration, rewards, and the session, then refreshes the
// inventory. It never fails; degraded reads are logged by each component.
func (s *Storefront) Init(ctx context.Context) {
	cfg := s.Config.Load(ctx)
	s.Rewards.Load()
	state := s.Session.Restore()
	s.Config.FetchInventory(ctx)
	s.Logger.Debug("storefront ready", "shop", cfg.ShopName, "webhook", cfg.HasWebhook(), "session", state)
}

// Close releases the store.
func (s *Storefront) Close() error {
	if c, ok := s.Store.(store.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
	}
	return nil
}

// Products returns the visible catalog filtered by query and category.
func (s *Storefront) Products(query, category string) []models.Product {
	return catalog.Filter(s.Config.Inventory(), query, category)
}

// FilterCategory records a category filter interaction.
func (s *Storefront) FilterCategory(category string) gamification.AwardResult {
	s.Logger.Debug("category filter", "category", category)
	return s.Rewards.Award(gamification.RewardFilterCategory, "")
}

// ViewProduct focuses p for a single-item purchase.
func (s *Storefront) ViewProduct(p models.Product) gamification.AwardResult {
	s.Checkout.Select(p)
	return s.Rewards.Award(gamification.RewardViewProduct, "")
}

// CloseProduct drops the focused product.
func (s *Storefront) CloseProduct() {
	s.Checkout.ClearSelection()
}

// AddToCart snapshots p into the cart.
func (s *Storefront) AddToCart(p models.Product) gamification.AwardResult {
	s.Cart.Add(p)
	return s.Rewards.Award(gamification.RewardAddToCart, "")
}

// BuyNow checks out the focused product.
func (s *Storefront) BuyNow(ctx context.Context, buyer models.BuyerFields, payment string) checkout.Outcome {
	return s.Checkout.Submit(ctx, checkout.Request{Flow: checkout.FlowSingleItem, Buyer: buyer, PaymentMethod: payment})
}

// CheckoutCart checks out the whole cart.
func (s *Storefront) CheckoutCart(ctx context.Context, buyer models.BuyerFields, payment string) checkout.Outcome {
	return s.Checkout.Submit(ctx, checkout.Request{Flow: checkout.FlowCart, Buyer: buyer, PaymentMethod: payment})
}

// BackToShop leaves the order confirmation.
func (s *Storefront) BackToShop() {
	s.Checkout.Acknowledge()
}
