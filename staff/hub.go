// ABOUTME: Staff operations against the backend webhook: sales, stock, offers, customer search
// ABOUTME: Each operation validates locally and returns user-facing messages on failure
package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/harperreed/phonestore/models"
	"github.com/harperreed/phonestore/outcome"
	"github.com/harperreed/phonestore/webhook"
)

// User-facing messages.
const (
	MsgNotConfigured    = "Please configure the webhook URL in Settings"
	MsgSignInRequired   = "Please sign in as staff first"
	MsgMissingSale      = "Please fill in all required fields"
	MsgSalePhone        = "Phone number must start with country code (e.g., +254)"
	MsgSaleFailed       = "Failed to record sale. Please check your webhook."
	MsgSaleRecorded     = "Customer will receive WhatsApp message shortly. Inventory automatically updated!"
	MsgMissingProduct   = "Please fill in all fields for new product"
	MsgMissingStock     = "Please select product and enter quantity"
	MsgBadInventoryType = "Unknown inventory action"
	MsgInventoryFailed  = "Failed to update inventory. Check your webhook."
	MsgLowStock         = "LOW STOCK ALERT: Current level is below minimum!"
	MsgMissingOffer     = "Please enter phone model and price"
	MsgOfferFailed      = "Failed to send offer. Please check your webhook."
	MsgOfferSent        = "AI-generated message will be sent to WhatsApp group shortly."
	MsgEmptySearch      = "Please enter a search term"
	MsgBadSearchType    = "Search by name, phone, model, or nationalId"
	MsgSearchFailed     = "Search failed. Please check your webhook configuration."
	MsgNoCustomers      = "No customers found matching your search"
)

// ErrNotSignedIn is the cause attached when a session is required but absent.
var ErrNotSignedIn = errors.New("no active staff session")

// Sender is the subset of *webhook.Client the hub uses.
type Sender interface {
	Send(ctx context.Context, url string, req webhook.Request) (*webhook.Response, error)
}

type ConfigSource interface {
	Current() models.Configuration
}

// SessionSource yields the signed-in staff member.
type SessionSource interface {
	Current() (models.User, bool)
}

type Options struct {
	Client Sender
	Config ConfigSource
	// Session, when set, gates every operation on an active staff session.
	Session SessionSource
	Logger  *log.Logger
}

// Hub runs staff workflows.
type Hub struct {
	client  Sender
	config  ConfigSource
	session SessionSource
	logger  *log.Logger
}

func NewHub(opts Options) *Hub {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		client:  opts.Client,
		config:  opts.Config,
		session: opts.Session,
		logger:  logger.WithPrefix("staff"),
	}
}

// Receipt is the backend's acknowledgement of a recorded sale.
type Receipt struct {
	Number  string
	Message string
}

// InventoryResult is the backend's acknowledgement of a stock change.
type InventoryResult struct {
	Message       string
	LowStockAlert bool
}

// SearchResult holds matching customers and a summary line.
type SearchResult struct {
	Customers []models.Customer
	Message   string
}

func (h *Hub) ready() (models.Configuration, models.User, error) {
	var user models.User
	if h.session != nil {
		u, ok := h.session.Current()
		if !ok {
			return models.Configuration{}, user, &outcome.Error{Kind: outcome.KindValidation, Message: MsgSignInRequired, Err: ErrNotSignedIn}
		}
		user = u
	}
	cfg := h.config.Current()
	if !cfg.HasWebhook() {
		return cfg, user, outcome.Configuration(MsgNotConfigured)
	}
	return cfg, user, nil
}

// RecordSale sends an in-store sale. SalesPerson defaults to the signed-in user.
func (h *Hub) RecordSale(ctx context.Context, sale models.Sale) (Receipt, error) {
	cfg, user, err := h.ready()
	if err != nil {
		return Receipt{}, err
	}
	if sale.SalesPerson == "" {
		sale.SalesPerson = user.FullName
	}
	sale.CustomerName = strings.TrimSpace(sale.CustomerName)
	sale.PhoneNumber = strings.TrimSpace(sale.PhoneNumber)

	if sale.CustomerName == "" || sale.PhoneNumber == "" || sale.PhoneBought == "" || sale.Amount <= 0 || sale.SalesPerson == "" {
		return Receipt{}, outcome.Validation(MsgMissingSale)
	}
	if !strings.HasPrefix(sale.PhoneNumber, "+") {
		return Receipt{}, outcome.Validation(MsgSalePhone)
	}

	resp, err := h.client.Send(ctx, cfg.WebhookURL, webhook.StaffSale{
		Source: models.SourceStaff,
		Sale:   sale,
		Shop:   models.ShopInfoFrom(cfg),
	})
	if err != nil {
		h.logger.Error("sale not recorded", "err", err)
		return Receipt{}, relabel(err, MsgSaleFailed)
	}

	r := Receipt{Number: resp.Get("receiptNumber").String(), Message: resp.Message()}
	if r.Message == "" {
		r.Message = MsgSaleRecorded
	}
	h.logger.Info("sale recorded", "model", sale.PhoneBought, "amount", sale.Amount, "receipt", r.Number)
	return r, nil
}

// UpdateInventory sends a stock movement or new product registration.
func (h *Hub) UpdateInventory(ctx context.Context, actionType string, change models.InventoryChange) (InventoryResult, error) {
	cfg, _, err := h.ready()
	if err != nil {
		return InventoryResult{}, err
	}

	switch actionType {
	case models.InventoryNewProduct:
		if change.Model == "" || change.Brand == "" || change.Quantity <= 0 || change.Price <= 0 {
			return InventoryResult{}, outcome.Validation(MsgMissingProduct)
		}
	case models.InventoryAddStock, models.InventorySale:
		if change.ProductID == "" || change.Quantity <= 0 {
			return InventoryResult{}, outcome.Validation(MsgMissingStock)
		}
	default:
		return InventoryResult{}, outcome.Validation(MsgBadInventoryType)
	}
	if change.MinimumStock <= 0 {
		change.MinimumStock = models.DefaultMinimumStock
	}

	resp, err := h.client.Send(ctx, cfg.WebhookURL, webhook.InventoryAdded{
		Source:     models.SourceStaff,
		ActionType: actionType,
		Data:       change,
		Shop:       models.ShopInfo{Name: cfg.ShopName, Location: cfg.Location},
	})
	if err != nil {
		h.logger.Error("inventory not updated", "action", actionType, "err", err)
		return InventoryResult{}, relabel(err, MsgInventoryFailed)
	}

	res := InventoryResult{Message: resp.Message(), LowStockAlert: resp.Get("lowStockAlert").Bool()}
	if res.Message == "" {
		res.Message = inventoryDefaultMessage(actionType, change)
	}
	if res.LowStockAlert {
		h.logger.Warn("low stock", "product", change.ProductID, "minimum", change.MinimumStock)
	}
	return res, nil
}

func inventoryDefaultMessage(actionType string, change models.InventoryChange) string {
	switch actionType {
	case models.InventoryAddStock:
		return fmt.Sprintf("%d units added.", change.Quantity)
	case models.InventorySale:
		return fmt.Sprintf("Units reduced by %d.", change.Quantity)
	}
	return fmt.Sprintf("%s %s registered.", change.Brand, change.Model)
}

// BroadcastOffer asks the backend to announce a deal to the shop's group.
func (h *Hub) BroadcastOffer(ctx context.Context, offer models.Offer) (string, error) {
	cfg, _, err := h.ready()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(offer.PhoneModel) == "" || offer.Price <= 0 {
		return "", outcome.Validation(MsgMissingOffer)
	}
	if offer.DealType == "" {
		offer.DealType = models.DealNewArrival
	}

	resp, err := h.client.Send(ctx, cfg.WebhookURL, webhook.BroadcastOffer{
		Offer: offer,
		Shop:  models.ShopInfo{Name: cfg.ShopName, Location: cfg.Location, InquiryNumber: cfg.InquiryNumber},
	})
	if err != nil {
		h.logger.Error("offer not sent", "err", err)
		return "", relabel(err, MsgOfferFailed)
	}
	if msg := resp.Message(); msg != "" {
		return msg, nil
	}
	return MsgOfferSent, nil
}

// SearchCustomers looks customers up by name, phone, model, or national ID.
func (h *Hub) SearchCustomers(ctx context.Context, query, by string) (SearchResult, error) {
	cfg, _, err := h.ready()
	if err != nil {
		return SearchResult{}, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, outcome.Validation(MsgEmptySearch)
	}
	if by == "" {
		by = models.SearchByName
	}
	switch by {
	case models.SearchByName, models.SearchByPhone, models.SearchByModel, models.SearchByNationalID:
	default:
		return SearchResult{}, outcome.Validation(MsgBadSearchType)
	}

	resp, err := h.client.Send(ctx, cfg.WebhookURL, webhook.SearchCustomer{Search: webhook.CustomerQuery{Query: query, Type: by}})
	if err != nil {
		h.logger.Error("customer search failed", "err", err)
		return SearchResult{}, relabel(err, MsgSearchFailed)
	}

	var customers []models.Customer
	if _, err := resp.Decode("customers", &customers); err != nil {
		return SearchResult{}, outcome.Rejected(MsgSearchFailed, err)
	}
	if len(customers) == 0 {
		return SearchResult{Message: MsgNoCustomers}, nil
	}
	return SearchResult{Customers: customers, Message: fmt.Sprintf("Found %d customer(s)", len(customers))}, nil
}

// relabel keeps the kind and cause of a webhook error but swaps in msg.
func relabel(err error, msg string) error {
	kind := outcome.KindOf(err)
	if kind == 0 {
		kind = outcome.KindNetwork
	}
	return &outcome.Error{Kind: kind, Message: msg, Err: err}
}
