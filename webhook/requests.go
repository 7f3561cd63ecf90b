// ABOUTME: Action-tagged request payloads for the backend automation webhook
// ABOUTME: One type per action, each validating its own required fields before sending
package webhook

import (
	"errors"
	"strings"

	"github.com/harperreed/phonestore/models"
)

// Action names understood by the backend workflow.
const (
	ActionGetConfig      = "get_config"
	ActionUpdateConfig   = "update_config"
	ActionGetInventory   = "get_inventory"
	ActionGetHistory     = "get_history"
	ActionPing           = "ping"
	ActionLogin          = "login_request"
	ActionSignup         = "signup_request"
	ActionSearchCustomer = "search_customer"
	ActionInventoryAdded = "inventory_added"
	ActionBroadcastOffer = "broadcast_offer"
	ActionOrderSubmitted = "order_submitted"
)

// Request is one variant of the webhook's tagged request union.
// The envelope fields "action" and "timestamp" are added by the Client.
type Request interface {
	Action() string
}

// validator is implemented by requests with required fields.
type validator interface {
	Validate() error
}

type GetConfig struct{}

func (GetConfig) Action() string { return ActionGetConfig }

type UpdateConfig struct {
	Config models.Configuration `json:"config"`
}

func (UpdateConfig) Action() string { return ActionUpdateConfig }

type GetInventory struct{}

func (GetInventory) Action() string { return ActionGetInventory }

type GetHistory struct{}

func (GetHistory) Action() string { return ActionGetHistory }

type Ping struct{}

func (Ping) Action() string { return ActionPing }

// LoginUser carries the already-hashed credentials.
type LoginUser struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

type LoginRequest struct {
	User LoginUser `json:"user"`
}

func (LoginRequest) Action() string { return ActionLogin }

func (r LoginRequest) Validate() error {
	if r.User.Email == "" || r.User.PasswordHash == "" {
		return errors.New("login_request requires email and passwordHash")
	}
	return nil
}

type SignupUser struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
}

type SignupRequest struct {
	User SignupUser `json:"user"`
}

func (SignupRequest) Action() string { return ActionSignup }

func (r SignupRequest) Validate() error {
	u := r.User
	if u.Email == "" || u.PasswordHash == "" || u.FullName == "" || u.PhoneNumber == "" {
		return errors.New("signup_request requires email, passwordHash, fullName and phoneNumber")
	}
	return nil
}

type CustomerQuery struct {
	Query string `json:"query"`
	Type  string `json:"type"`
}

type SearchCustomer struct {
	Search CustomerQuery `json:"search"`
}

func (SearchCustomer) Action() string { return ActionSearchCustomer }

func (r SearchCustomer) Validate() error {
	if strings.TrimSpace(r.Search.Query) == "" {
		return errors.New("search_customer requires a query")
	}
	return nil
}

type InventoryAdded struct {
	Source     string                 `json:"source"`
	ActionType string                 `json:"actionType"`
	Data       models.InventoryChange `json:"data"`
	Shop       models.ShopInfo        `json:"shop"`
}

func (InventoryAdded) Action() string { return ActionInventoryAdded }

func (r InventoryAdded) Validate() error {
	switch r.ActionType {
	case models.InventoryNewProduct, models.InventoryAddStock, models.InventorySale:
		return nil
	}
	return errors.New("inventory_added requires actionType new_product, add_stock or sale")
}

type BroadcastOffer struct {
	Offer models.Offer    `json:"offer"`
	Shop  models.ShopInfo `json:"shop"`
}

func (BroadcastOffer) Action() string { return ActionBroadcastOffer }

func (r BroadcastOffer) Validate() error {
	if r.Offer.PhoneModel == "" {
		return errors.New("broadcast_offer requires offer.phoneModel")
	}
	return nil
}

// OrderCustomer is the buyer block of a customer order.
type OrderCustomer struct {
	models.BuyerFields
	PaymentMethod string `json:"paymentMethod"`
}

// OrderSubmitted is a storefront checkout. Phone holds a single focused
// item, CartItems the full cart; at least one must be present.
type OrderSubmitted struct {
	Source    string            `json:"source"`
	OrderRef  string            `json:"orderRef,omitempty"`
	Phone     *models.Product   `json:"phone,omitempty"`
	CartItems []models.CartItem `json:"cartItems,omitempty"`
	Customer  OrderCustomer     `json:"customer"`
}

func (OrderSubmitted) Action() string { return ActionOrderSubmitted }

func (r OrderSubmitted) Validate() error {
	if r.Phone == nil && len(r.CartItems) == 0 {
		return errors.New("order_submitted requires phone or cartItems")
	}
	if r.Customer.CustomerPhone == "" {
		return errors.New("order_submitted requires customer.customerPhone")
	}
	return nil
}

// StaffSale is an in-store sale recorded by staff. It shares the
// order_submitted action with customer checkouts and differs by source.
type StaffSale struct {
	Source string          `json:"source"`
	Sale   models.Sale     `json:"sale"`
	Shop   models.ShopInfo `json:"shop"`
}

func (StaffSale) Action() string { return ActionOrderSubmitted }

func (r StaffSale) Validate() error {
	if r.Sale.PhoneNumber == "" || r.Sale.CustomerName == "" {
		return errors.New("staff sale requires customerName and phoneNumber")
	}
	return nil
}
