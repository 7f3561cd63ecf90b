// ABOUTME: Tests for staff sale, inventory, offer, and customer search workflows
// ABOUTME: Verifies local validation and the payloads sent to the fake webhook
package staff

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/phonestore/models"
	"github.com/harperreed/phonestore/outcome"
	"github.com/harperreed/phonestore/webhook"
	"github.com/harperreed/phonestore/webhook/webhooktest"
)

type staticConfig models.Configuration

func (c staticConfig) Current() models.Configuration { return models.Configuration(c) }

type fakeSession struct {
	user models.User
	ok   bool
}

func (f fakeSession) Current() (models.User, bool) { return f.user, f.ok }

func newHub(url string, sess SessionSource) *Hub {
	return NewHub(Options{
		Client:  webhook.New(webhook.Options{}),
		Config:  staticConfig(models.DefaultConfiguration(url)),
		Session: sess,
	})
}

var signedIn = fakeSession{user: models.User{Email: "mary@shop.co.ke", FullName: "Mary", Role: models.RoleStaff}, ok: true}

func validSale() models.Sale {
	return models.Sale{
		CustomerName: "Peter Kamau",
		PhoneNumber:  "+254711000111",
		PhoneBought:  "Galaxy A15",
		Amount:       22000,
		PaymentMode:  models.PaymentMpesa,
	}
}

func TestRequiresSession(t *testing.T) {
	srv := webhooktest.NewServer(t)
	h := newHub(srv.URL, fakeSession{})

	_, err := h.RecordSale(context.Background(), validSale())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotSignedIn))
	assert.Equal(t, MsgSignInRequired, outcome.MessageOf(err, ""))
	assert.Empty(t, srv.Requests())
}

func TestRequiresWebhook(t *testing.T) {
	_, err := newHub("", signedIn).BroadcastOffer(context.Background(), models.Offer{PhoneModel: "X", Price: 1})
	assert.Equal(t, outcome.KindConfiguration, outcome.KindOf(err))
	assert.Equal(t, MsgNotConfigured, outcome.MessageOf(err, ""))
}

func TestRecordSale(t *testing.T) {
	srv := webhooktest.NewServer(t)
	srv.Reply(webhook.ActionOrderSubmitted, http.StatusOK, `{"success":true,"receiptNumber":"R-1001"}`)
	h := newHub(srv.URL, signedIn)

	r, err := h.RecordSale(context.Background(), validSale())
	require.NoError(t, err)
	assert.Equal(t, "R-1001", r.Number)
	assert.Equal(t, MsgSaleRecorded, r.Message)

	req, ok := srv.Last(webhook.ActionOrderSubmitted)
	require.True(t, ok)
	assert.Equal(t, "staff", req.Get("source").String())
	assert.Equal(t, "Mary", req.Get("sale.salesPerson").String())
	assert.Equal(t, float64(22000), req.Get("sale.amount").Float())
	assert.Equal(t, "Tech Mobile Store", req.Get("shop.name").String())
	assert.Equal(t, "+254712345678", req.Get("shop.inquiryNumber").String())
	assert.True(t, req.Get("shop.whatsappGroup").Exists())
}

func TestRecordSaleValidation(t *testing.T) {
	srv := webhooktest.NewServer(t)
	h := newHub(srv.URL, nil)

	missing := validSale()
	_, err := h.RecordSale(context.Background(), missing)
	assert.Equal(t, MsgMissingSale, outcome.MessageOf(err, ""), "no session means no default salesperson")

	noCode := validSale()
	noCode.SalesPerson = "Mary"
	noCode.PhoneNumber = "0711000111"
	_, err = h.RecordSale(context.Background(), noCode)
	assert.Equal(t, MsgSalePhone, outcome.MessageOf(err, ""))

	assert.Empty(t, srv.Requests())
}

func TestRecordSaleRejected(t *testing.T) {
	srv := webhooktest.NewServer(t)
	srv.Reply(webhook.ActionOrderSubmitted, http.StatusBadRequest, "")

	_, err := newHub(srv.URL, signedIn).RecordSale(context.Background(), validSale())
	assert.Equal(t, MsgSaleFailed, outcome.MessageOf(err, ""))
	assert.Equal(t, outcome.KindRemoteRejection, outcome.KindOf(err))
}

func TestUpdateInventoryDefaultsAndAlert(t *testing.T) {
	srv := webhooktest.NewServer(t)
	srv.Reply(webhook.ActionInventoryAdded, http.StatusOK, `{"success":true,"lowStockAlert":true}`)
	h := newHub(srv.URL, signedIn)

	res, err := h.UpdateInventory(context.Background(), models.InventorySale, models.InventoryChange{ProductID: "21", Quantity: 3})
	require.NoError(t, err)
	assert.True(t, res.LowStockAlert)
	assert.Equal(t, "Units reduced by 3.", res.Message)

	req, _ := srv.Last(webhook.ActionInventoryAdded)
	assert.Equal(t, "sale", req.Get("actionType").String())
	assert.Equal(t, int64(5), req.Get("data.minimumStock").Int())
	assert.Equal(t, "Tech Mobile Store", req.Get("shop.name").String())
	assert.False(t, req.Get("shop.inquiryNumber").Exists())
}

func TestUpdateInventoryEmptyBody(t *testing.T) {
	srv := webhooktest.NewServer(t)
	srv.Reply(webhook.ActionInventoryAdded, http.StatusOK, "")

	res, err := newHub(srv.URL, signedIn).UpdateInventory(context.Background(), models.InventoryNewProduct, models.InventoryChange{
		Brand: "Nokia", Model: "G42 5G", Quantity: 10, Price: 28000, MinimumStock: 2,
	})
	require.NoError(t, err)
	assert.False(t, res.LowStockAlert)
	assert.Equal(t, "Nokia G42 5G registered.", res.Message)
}

func TestUpdateInventoryValidation(t *testing.T) {
	h := newHub("http://unused.invalid", signedIn)

	_, err := h.UpdateInventory(context.Background(), models.InventoryNewProduct, models.InventoryChange{Brand: "Nokia"})
	assert.Equal(t, MsgMissingProduct, outcome.MessageOf(err, ""))

	_, err = h.UpdateInventory(context.Background(), models.InventoryAddStock, models.InventoryChange{Quantity: 4})
	assert.Equal(t, MsgMissingStock, outcome.MessageOf(err, ""))

	_, err = h.UpdateInventory(context.Background(), "restock", models.InventoryChange{ProductID: "1", Quantity: 4})
	assert.Equal(t, MsgBadInventoryType, outcome.MessageOf(err, ""))
}

func TestBroadcastOffer(t *testing.T) {
	srv := webhooktest.NewServer(t)
	h := newHub(srv.URL, signedIn)

	_, err := h.BroadcastOffer(context.Background(), models.Offer{PhoneModel: "Pixel 8 Pro"})
	assert.Equal(t, MsgMissingOffer, outcome.MessageOf(err, ""))

	msg, err := h.BroadcastOffer(context.Background(), models.Offer{PhoneModel: "Pixel 8 Pro", Price: 99000, Features: "Tensor G3"})
	require.NoError(t, err)
	assert.Equal(t, MsgOfferSent, msg)

	req, _ := srv.Last(webhook.ActionBroadcastOffer)
	assert.Equal(t, "new-arrival", req.Get("offer.dealType").String())
	assert.Equal(t, "+254712345678", req.Get("shop.inquiryNumber").String())
	assert.False(t, req.Get("shop.whatsappGroup").Exists())
}

func TestSearchCustomers(t *testing.T) {
	srv := webhooktest.NewServer(t)
	srv.Reply(webhook.ActionSearchCustomer, http.StatusOK, `{"customers":[{"name":"Peter Kamau","phone":"+254711000111","phoneModel":"Galaxy A15"}]}`)
	h := newHub(srv.URL, signedIn)

	res, err := h.SearchCustomers(context.Background(), " peter ", "")
	require.NoError(t, err)
	require.Len(t, res.Customers, 1)
	assert.Equal(t, "Peter Kamau", res.Customers[0].Name)
	assert.Equal(t, "Found 1 customer(s)", res.Message)

	req, _ := srv.Last(webhook.ActionSearchCustomer)
	assert.Equal(t, "peter", req.Get("search.query").String())
	assert.Equal(t, "name", req.Get("search.type").String())
}

func TestSearchCustomersEmptyAndInvalid(t *testing.T) {
	srv := webhooktest.NewServer(t)
	srv.Reply(webhook.ActionSearchCustomer, http.StatusOK, `{"customers":[]}`)
	h := newHub(srv.URL, signedIn)

	res, err := h.SearchCustomers(context.Background(), "nobody", models.SearchByPhone)
	require.NoError(t, err)
	assert.Empty(t, res.Customers)
	assert.Equal(t, MsgNoCustomers, res.Message)

	_, err = h.SearchCustomers(context.Background(), "  ", "")
	assert.Equal(t, MsgEmptySearch, outcome.MessageOf(err, ""))

	_, err = h.SearchCustomers(context.Background(), "x", "email")
	assert.Equal(t, MsgBadSearchType, outcome.MessageOf(err, ""))
}
