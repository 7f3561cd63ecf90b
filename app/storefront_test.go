// ABOUTME: Tests for the storefront container and its shopper event hooks
// ABOUTME: Exercises startup, backend selection, and a full browse-to-order flow
package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/phonestore/catalog"
	"github.com/harperreed/phonestore/checkout"
	"github.com/harperreed/phonestore/config"
	"github.com/harperreed/phonestore/db"
	"github.com/harperreed/phonestore/gamification"
	"github.com/harperreed/phonestore/models"
	"github.com/harperreed/phonestore/session"
	"github.com/harperreed/phonestore/store"
	"github.com/harperreed/phonestore/webhook"
	"github.com/harperreed/phonestore/webhook/webhooktest"
)

func newStorefront(t *testing.T, url string) (*Storefront, *store.MemoryStore) {
	t.Helper()
	settings := config.Defaults()
	settings.WebhookURL = url
	settings.RateLimit = 0
	kv := store.NewMemoryStore()
	return New(settings, kv, nil), kv
}

func TestInitOffline(t *testing.T) {
	sf, _ := newStorefront(t, "")
	sf.Init(context.Background())

	assert.Equal(t, "Tech Mobile Store", sf.Config.Current().ShopName)
	assert.Equal(t, session.Anonymous, sf.Session.State())
	assert.Equal(t, 1, sf.Rewards.State().Level)
	assert.Len(t, sf.Products("", models.CategoryAll), len(catalog.Sample()))
}

func TestInitOnline(t *testing.T) {
	srv := webhooktest.NewServer(t)
	srv.Reply(webhook.ActionGetConfig, http.StatusOK, `{"success":true,"config":{"shopName":"Murang'a Phones"}}`)
	srv.Reply(webhook.ActionGetInventory, http.StatusOK, `{"success":true,"inventory":[{"id":"x1","brand":"Tecno","model":"Spark 20","price":19000,"category":"Budget"}]}`)

	sf, _ := newStorefront(t, srv.URL)
	sf.Init(context.Background())

	assert.Equal(t, "Murang'a Phones", sf.Config.Current().ShopName)
	products := sf.Products("spark", models.CategoryBudget)
	require.Len(t, products, 1)
	assert.Equal(t, "Spark 20", products[0].Model)
}

func TestBrowseToOrder(t *testing.T) {
	srv := webhooktest.NewServer(t)
	sf, kv := newStorefront(t, srv.URL)
	sf.Init(context.Background())

	p, ok := catalog.Find(sf.Config.Inventory(), "12")
	require.True(t, ok)

	sf.FilterCategory(models.CategoryMidRange)
	sf.ViewProduct(p)
	sf.AddToCart(p)
	assert.Equal(t, 16, sf.Rewards.State().Points)

	out := sf.BuyNow(context.Background(), models.BuyerFields{CustomerName: "Ann", CustomerPhone: "+254700111222"}, models.PaymentMpesa)
	require.True(t, out.OK(), out.Message)
	assert.Equal(t, 116, sf.Rewards.State().Points)
	assert.Equal(t, 0, sf.Cart.Len())

	points, _, err := store.GetInt(kv, store.KeyPoints)
	require.NoError(t, err)
	assert.Equal(t, 116, points)

	sf.BackToShop()
	assert.Equal(t, checkout.Idle, sf.Checkout.State())
	_, selected := sf.Checkout.Selected()
	assert.False(t, selected)
}

func TestCheckoutCartAwardsCartBonus(t *testing.T) {
	srv := webhooktest.NewServer(t)
	sf, _ := newStorefront(t, srv.URL)

	for _, p := range catalog.Sample()[:2] {
		sf.AddToCart(p)
	}
	out := sf.CheckoutCart(context.Background(), models.BuyerFields{CustomerName: "Ann", CustomerPhone: "+254700111222"}, "")
	require.True(t, out.OK())
	assert.Equal(t, 2*gamification.RewardAddToCart+gamification.RewardCartOrder, sf.Rewards.State().Points)
}

func TestStaffRequiresSignIn(t *testing.T) {
	srv := webhooktest.NewServer(t)
	sf, _ := newStorefront(t, srv.URL)

	_, err := sf.Staff.SearchCustomers(context.Background(), "ann", "")
	require.Error(t, err)

	require.True(t, sf.Session.Login(context.Background(), session.Credentials{Email: "flix", Password: "Test1111"}).OK())
	_, err = sf.Staff.SearchCustomers(context.Background(), "ann", "")
	require.NoError(t, err)
}

func TestOpenStoreBackends(t *testing.T) {
	settings := config.Defaults()
	settings.DataDir = t.TempDir()

	settings.Storage = config.StorageMemory
	kv, c, err := OpenStore(settings, nil)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.IsType(t, &store.MemoryStore{}, kv)

	settings.Storage = config.StorageSQLite
	kv, _, err = OpenStore(settings, nil)
	require.NoError(t, err)
	assert.IsType(t, &db.Store{}, kv)
	require.NoError(t, New(settings, kv, nil).Close())

	settings.Storage = config.StorageBadger
	kv, _, err = OpenStore(settings, nil)
	require.NoError(t, err)
	assert.IsType(t, &store.BadgerStore{}, kv)
	require.NoError(t, New(settings, kv, nil).Close())
}
