// ABOUTME: Tests for the terminal storefront
// ABOUTME: Drives the model with key messages through browse, cart, and checkout
package tui

import (
	"context"
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/phonestore/app"
	"github.com/harperreed/phonestore/catalog"
	"github.com/harperreed/phonestore/checkout"
	"github.com/harperreed/phonestore/config"
	"github.com/harperreed/phonestore/models"
	"github.com/harperreed/phonestore/store"
	"github.com/harperreed/phonestore/webhook"
	"github.com/harperreed/phonestore/webhook/webhooktest"
)

func setupModel(t *testing.T, url string) Model {
	t.Helper()
	settings := config.Defaults()
	settings.WebhookURL = url
	settings.RateLimit = 0
	sf := app.New(settings, store.NewMemoryStore(), nil)
	sf.Init(context.Background())
	return NewModel(context.Background(), sf)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys in order and returns the model and the last command.
func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(key(k))
		m = updated.(Model)
	}
	return m, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, string(r))
	}
	return m
}

// fillCheckout types a valid buyer into the checkout form.
func fillCheckout(t *testing.T, m Model) Model {
	t.Helper()
	m = typeText(t, m, "Ann")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "+254700111222")
	return m
}

func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	complete, ok := msg.(OrderCompleteMsg)
	require.True(t, ok, "expected OrderCompleteMsg, got %T", msg)
	updated, _ := m.Update(complete)
	return updated.(Model)
}

func TestCatalogRendering(t *testing.T) {
	m := setupModel(t, "")

	assert.Len(t, m.products, len(catalog.Sample()))

	output := m.View()
	assert.Contains(t, output, "TECH MOBILE STORE")
	assert.Contains(t, output, "Level 1")
	assert.Contains(t, output, "(sample catalog)")
	assert.Contains(t, output, "Flagship")
}

func TestCategoryTabAwardsPoint(t *testing.T) {
	m := setupModel(t, "")

	m, _ = press(t, m, "tab")
	assert.Equal(t, 1, m.categoryIndex)
	assert.Equal(t, 1, m.sf.Rewards.State().Points)
	for _, p := range m.products {
		assert.Equal(t, models.CategoryFlagship, p.Category)
	}
}

func TestSearchFiltersCatalog(t *testing.T) {
	m := setupModel(t, "")

	m, _ = press(t, m, "/")
	require.True(t, m.searching)
	m = typeText(t, m, "pixel")
	assert.Len(t, m.products, 3)

	// q is typed into the search box, not treated as quit
	m, _ = press(t, m, "q")
	assert.True(t, m.searching)
	assert.Equal(t, "pixelq", m.search.Value())

	m, _ = press(t, m, "esc")
	assert.False(t, m.searching)
	assert.Len(t, m.products, len(catalog.Sample()))
}

func TestNavigationStaysInBounds(t *testing.T) {
	m := setupModel(t, "")

	m, _ = press(t, m, "up")
	assert.Equal(t, 0, m.selectedRow)

	for range len(m.products) + 5 {
		m, _ = press(t, m, "down")
	}
	assert.Equal(t, len(m.products)-1, m.selectedRow)
}

func TestDetailAndCart(t *testing.T) {
	m := setupModel(t, "")

	m, _ = press(t, m, "enter")
	require.Equal(t, ViewDetail, m.viewMode)
	assert.Equal(t, 5, m.sf.Rewards.State().Points)
	assert.Contains(t, m.View(), m.detail.Model)

	m, _ = press(t, m, "a", "a")
	assert.Equal(t, 2, m.sf.Cart.Len())
	assert.Equal(t, 25, m.sf.Rewards.State().Points)

	m, _ = press(t, m, "esc")
	assert.Equal(t, ViewCatalog, m.viewMode)
	_, selected := m.sf.Checkout.Selected()
	assert.False(t, selected)

	m, _ = press(t, m, "c")
	require.Equal(t, ViewCart, m.viewMode)
	assert.Contains(t, m.View(), "Total")

	m, _ = press(t, m, "x")
	assert.Equal(t, 1, m.sf.Cart.Len())

	m, _ = press(t, m, "D")
	assert.Equal(t, 0, m.sf.Cart.Len())

	m, _ = press(t, m, "enter")
	assert.Equal(t, ViewCart, m.viewMode)
	assert.Equal(t, checkout.MsgEmptyOrder, m.message)
}

func TestBuyNowFlow(t *testing.T) {
	srv := webhooktest.NewServer(t)
	m := setupModel(t, srv.URL)

	m, _ = press(t, m, "enter", "b")
	require.Equal(t, ViewCheckout, m.viewMode)
	assert.Equal(t, checkout.FlowSingleItem, m.flow)

	m = fillCheckout(t, m)
	m, cmd := press(t, m, "enter")
	assert.True(t, m.submitting)
	m = runCmd(t, m, cmd)

	require.Equal(t, ViewSuccess, m.viewMode)
	assert.Contains(t, m.order.OrderRef, "ORD-")
	assert.Contains(t, m.View(), "Order placed")
	assert.Equal(t, 105, m.sf.Rewards.State().Points)
	assert.True(t, m.sf.Rewards.State().HasBadge("First Order"))

	body, ok := srv.Last(webhook.ActionOrderSubmitted)
	require.True(t, ok)
	assert.Equal(t, "Ann", body.Get("customer.customerName").String())
	assert.Equal(t, models.PaymentMpesa, body.Get("customer.paymentMethod").String())

	m, _ = press(t, m, "enter")
	assert.Equal(t, ViewCatalog, m.viewMode)
	assert.Equal(t, checkout.Idle, m.sf.Checkout.State())
}

func TestCheckoutValidationKeepsForm(t *testing.T) {
	srv := webhooktest.NewServer(t)
	m := setupModel(t, srv.URL)

	m, _ = press(t, m, "enter", "b")
	m = typeText(t, m, "Ann")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "0700111222")
	m, cmd := press(t, m, "enter")
	m = runCmd(t, m, cmd)

	assert.Equal(t, ViewCheckout, m.viewMode)
	assert.Equal(t, checkout.MsgBadPhone, m.message)
	assert.Equal(t, 0, srv.Count(webhook.ActionOrderSubmitted))
	assert.Equal(t, "Ann", m.formInputs[fieldName].Value())
}

func TestPaymentAndOptIn(t *testing.T) {
	srv := webhooktest.NewServer(t)
	m := setupModel(t, srv.URL)

	m, _ = press(t, m, "enter", "b")
	m = fillCheckout(t, m)
	m, _ = press(t, m, "tab", "tab")
	require.Equal(t, fieldPayment, m.focusIndex)
	m, _ = press(t, m, "l")
	assert.Equal(t, models.PaymentCash, paymentMethods[m.paymentIndex])

	m, _ = press(t, m, "tab", " ")
	assert.True(t, m.optIn)

	m, cmd := press(t, m, "enter")
	m = runCmd(t, m, cmd)
	require.Equal(t, ViewSuccess, m.viewMode)

	body, ok := srv.Last(webhook.ActionOrderSubmitted)
	require.True(t, ok)
	assert.Equal(t, models.PaymentCash, body.Get("customer.paymentMethod").String())
	assert.True(t, body.Get("customer.marketingOptIn").Bool())
}

func TestCartCheckoutLevelUp(t *testing.T) {
	srv := webhooktest.NewServer(t)
	m := setupModel(t, srv.URL)

	m, _ = press(t, m, "enter", "a", "esc", "c", "enter")
	require.Equal(t, ViewCheckout, m.viewMode)
	assert.Equal(t, checkout.FlowCart, m.flow)
	assert.Contains(t, m.View(), "1 item(s)")

	m = fillCheckout(t, m)
	m, cmd := press(t, m, "enter")
	m = runCmd(t, m, cmd)

	require.Equal(t, ViewSuccess, m.viewMode)
	assert.Equal(t, 0, m.sf.Cart.Len())
	assert.Equal(t, 2, m.sf.Rewards.State().Level)
	assert.True(t, strings.Contains(m.View(), "Level up"))

	// any key clears the banner
	m, _ = press(t, m, "enter")
	assert.Empty(t, m.banner)
}

func TestOrderFailureReturnsToForm(t *testing.T) {
	srv := webhooktest.NewServer(t)
	srv.Reply(webhook.ActionOrderSubmitted, http.StatusInternalServerError, `{"success":false}`)
	m := setupModel(t, srv.URL)

	m, _ = press(t, m, "enter", "b")
	m = fillCheckout(t, m)
	m, cmd := press(t, m, "enter")
	m = runCmd(t, m, cmd)

	assert.Equal(t, ViewCheckout, m.viewMode)
	assert.False(t, m.submitting)
	assert.Equal(t, checkout.MsgOrderFailed, m.message)
	assert.Equal(t, 5, m.sf.Rewards.State().Points)
}

func TestQuitKey(t *testing.T) {
	m := setupModel(t, "")

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "KSh 999", formatPrice(999))
	assert.Equal(t, "KSh 1,000", formatPrice(1000))
	assert.Equal(t, "KSh 145,000", formatPrice(145000))
	assert.Equal(t, "KSh 1,250,000", formatPrice(1250000))
}
