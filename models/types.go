// ABOUTME: Data models for storefront entities
// ABOUTME: Defines Configuration, Session, Product, CartItem, order and staff records
package models

import (
	"time"
)

// Configuration is the shop-wide settings record shared with the backend webhook.
type Configuration struct {
	WebhookURL    string `json:"webhookUrl"`
	ShopName      string `json:"shopName"`
	Location      string `json:"location"`
	InquiryNumber string `json:"inquiryNumber"`
	WhatsappGroup string `json:"whatsappGroup"`
	OrderFormURL  string `json:"orderFormUrl"`
}

// HasWebhook reports whether network-backed operations can run.
func (c Configuration) HasWebhook() bool {
	return c.WebhookURL != ""
}

// DefaultConfiguration returns the built-in settings used before any cache or remote value exists.
func DefaultConfiguration(webhookURL string) Configuration {
	return Configuration{
		WebhookURL:    webhookURL,
		ShopName:      "Tech Mobile Store",
		Location:      "Murang'a, Kenya",
		InquiryNumber: "+254712345678",
		WhatsappGroup: "https://chat.whatsapp.com/your-group-link",
		OrderFormURL:  "https://forms.google.com/your-form-link",
	}
}

// User roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Session is the persisted proof of staff authentication.
type Session struct {
	ID              string    `json:"id,omitempty"`
	IsAuthenticated bool      `json:"isAuthenticated"`
	User            *User     `json:"user"`
	IssuedAt        time.Time `json:"timestamp"`
}

// SessionTTL is how long a session stays valid after issuance.
const SessionTTL = 24 * time.Hour

// Valid reports whether the session is authenticated and younger than SessionTTL at now.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || !s.IsAuthenticated || s.User == nil || s.IssuedAt.IsZero() {
		return false
	}
	return now.Sub(s.IssuedAt) < SessionTTL
}

// GamificationState holds the shopper's reward progress.
type GamificationState struct {
	Points int      `json:"points"`
	Level  int      `json:"level"`
	Badges []string `json:"badges"`
}

// HasBadge reports whether id has already been earned.
func (g GamificationState) HasBadge(id string) bool {
	for _, b := range g.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// Product categories.
const (
	CategoryAll      = "All"
	CategoryFlagship = "Flagship"
	CategoryMidRange = "Mid-range"
	CategoryBudget   = "Budget"
	CategoryUsed     = "Used"
)

// Categories lists the filter choices in display order.
var Categories = []string{CategoryAll, CategoryFlagship, CategoryMidRange, CategoryBudget, CategoryUsed}

type Product struct {
	ID       FlexID   `json:"id"`
	Brand    string   `json:"brand"`
	Model    string   `json:"model"`
	Price    float64  `json:"price"`
	Category string   `json:"category,omitempty"`
	Stock    int      `json:"stock,omitempty"`
	Rating   float64  `json:"rating,omitempty"`
	Features []string `json:"features,omitempty"`
}

// CartItem is a snapshot of a product taken when it was added to the cart.
type CartItem struct {
	ProductID FlexID    `json:"id"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Price     float64   `json:"price"`
	Category  string    `json:"category,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// NewCartItem copies the fields of p that must not change after add time.
func NewCartItem(p Product, now time.Time) CartItem {
	return CartItem{
		ProductID: p.ID,
		Brand:     p.Brand,
		Model:     p.Model,
		Price:     p.Price,
		Category:  p.Category,
		AddedAt:   now,
	}
}

// Payment methods.
const (
	PaymentMpesa = "mpesa"
	PaymentCash  = "cash"
	PaymentCard  = "card"
)

// BuyerFields are the customer-supplied checkout inputs.
type BuyerFields struct {
	CustomerName   string `json:"customerName"`
	CustomerPhone  string `json:"customerPhone"`
	CustomerEmail  string `json:"customerEmail,omitempty"`
	MarketingOptIn bool   `json:"marketingOptIn"`
}

// OrderSource identifies which flow submitted an order.
const (
	SourceCustomer = "customer"
	SourceStaff    = "staff"
)

// OrderSubmission is the composed checkout payload. It is never stored locally.
type OrderSubmission struct {
	OrderRef      string
	Source        string
	Item          *Product
	CartItems     []CartItem
	Buyer         BuyerFields
	PaymentMethod string
	SubmittedAt   time.Time
}

// Customer is a record returned by the backend customer search.
type Customer struct {
	Name         string  `json:"name"`
	Phone        string  `json:"phone,omitempty"`
	Email        string  `json:"email,omitempty"`
	PhoneModel   string  `json:"phoneModel,omitempty"`
	NationalID   string  `json:"nationalId,omitempty"`
	LastPurchase string  `json:"lastPurchase,omitempty"`
	TotalSpent   float64 `json:"totalSpent,omitempty"`
}

// HistoryEntry is a sale or stock movement reported by the backend.
type HistoryEntry struct {
	Type        string  `json:"type"`
	Description string  `json:"description,omitempty"`
	Model       string  `json:"model,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
}

// ShopInfo is the shop identity block attached to staff requests.
type ShopInfo struct {
	Name          string `json:"name"`
	Location      string `json:"location"`
	InquiryNumber string `json:"inquiryNumber,omitempty"`
	WhatsappGroup string `json:"whatsappGroup,omitempty"`
}

// ShopInfoFrom extracts the shop block from cfg.
func ShopInfoFrom(cfg Configuration) ShopInfo {
	return ShopInfo{
		Name:          cfg.ShopName,
		Location:      cfg.Location,
		InquiryNumber: cfg.InquiryNumber,
		WhatsappGroup: cfg.WhatsappGroup,
	}
}

// Sale is a staff-recorded in-store transaction.
type Sale struct {
	CustomerName string  `json:"customerName"`
	PhoneNumber  string  `json:"phoneNumber"`
	PhoneBought  string  `json:"phoneBought"`
	Amount       float64 `json:"amount"`
	PaymentMode  string  `json:"paymentMode"`
	SalesPerson  string  `json:"salesPerson"`
	NationalID   string  `json:"nationalId,omitempty"`
}

// Inventory action types.
const (
	InventoryNewProduct = "new_product"
	InventoryAddStock   = "add_stock"
	InventorySale       = "sale"
)

// DefaultMinimumStock is used when a change does not set its own threshold.
const DefaultMinimumStock = 5

// InventoryChange is a staff stock movement or new product registration.
type InventoryChange struct {
	ProductID    string  `json:"productId,omitempty"`
	Brand        string  `json:"brand,omitempty"`
	Model        string  `json:"model,omitempty"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price,omitempty"`
	MinimumStock int     `json:"minimumStock"`
}

// Deal types for offer broadcasts.
const (
	DealNewArrival = "new-arrival"
	DealDiscount   = "discount"
	DealFlashSale  = "flash-sale"
)

// Offer is a promotional broadcast to the shop's WhatsApp group.
type Offer struct {
	PhoneModel string   `json:"phoneModel"`
	Price      float64  `json:"price"`
	Features   string   `json:"features,omitempty"`
	DealType   string   `json:"dealType"`
	Images     []string `json:"images,omitempty"`
}

// Customer search types.
const (
	SearchByName       = "name"
	SearchByPhone      = "phone"
	SearchByModel      = "model"
	SearchByNationalID = "nationalId"
)
