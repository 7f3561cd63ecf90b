// ABOUTME: Staff MCP tool handlers
// ABOUTME: Implements record_sale, update_inventory, broadcast_offer, and search_customers tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/phonestore/models"
	"github.com/harperreed/phonestore/outcome"
	"github.com/harperreed/phonestore/staff"
)

type StaffHandlers struct {
	hub *staff.Hub
}

func NewStaffHandlers(hub *staff.Hub) *StaffHandlers {
	return &StaffHandlers{hub: hub}
}

// toolError surfaces the user-facing message of err.
func toolError(action string, err error) error {
	return fmt.Errorf("%s: %s", action, outcome.MessageOf(err, err.Error()))
}

type RecordSaleInput struct {
	CustomerName string  `json:"customer_name" jsonschema:"Customer full name (required)"`
	PhoneNumber  string  `json:"phone_number" jsonschema:"Customer phone with country code, e.g. +254... (required)"`
	PhoneBought  string  `json:"phone_bought" jsonschema:"Model sold (required)"`
	Amount       float64 `json:"amount" jsonschema:"Sale amount in KES (required)"`
	PaymentMode  string  `json:"payment_mode,omitempty" jsonschema:"mpesa, cash, or card (default mpesa)"`
	SalesPerson  string  `json:"sales_person,omitempty" jsonschema:"Defaults to the signed-in staff member"`
	NationalID   string  `json:"national_id,omitempty" jsonschema:"Customer national ID"`
}

type RecordSaleOutput struct {
	ReceiptNumber string `json:"receipt_number,omitempty"`
	Message       string `json:"message"`
}

func (h *StaffHandlers) RecordSale(ctx context.Context, _ *mcp.CallToolRequest, input RecordSaleInput) (*mcp.CallToolResult, RecordSaleOutput, error) {
	payment := input.PaymentMode
	if payment == "" {
		payment = models.PaymentMpesa
	}
	receipt, err := h.hub.RecordSale(ctx, models.Sale{
		CustomerName: input.CustomerName,
		PhoneNumber:  input.PhoneNumber,
		PhoneBought:  input.PhoneBought,
		Amount:       input.Amount,
		PaymentMode:  payment,
		SalesPerson:  input.SalesPerson,
		NationalID:   input.NationalID,
	})
	if err != nil {
		return nil, RecordSaleOutput{}, toolError("record_sale", err)
	}
	return nil, RecordSaleOutput{ReceiptNumber: receipt.Number, Message: receipt.Message}, nil
}

type UpdateInventoryInput struct {
	ActionType   string  `json:"action_type" jsonschema:"new_product, add_stock, or sale (required)"`
	ProductID    string  `json:"product_id,omitempty" jsonschema:"Existing product ID (add_stock and sale)"`
	Brand        string  `json:"brand,omitempty" jsonschema:"Brand (new_product)"`
	Model        string  `json:"model,omitempty" jsonschema:"Model (new_product)"`
	Quantity     int     `json:"quantity" jsonschema:"Units to add or remove (required)"`
	Price        float64 `json:"price,omitempty" jsonschema:"Unit price in KES (new_product)"`
	MinimumStock int     `json:"minimum_stock,omitempty" jsonschema:"Low stock threshold (default 5)"`
}

type UpdateInventoryOutput struct {
	Message       string `json:"message"`
	LowStockAlert bool   `json:"low_stock_alert"`
}

func (h *StaffHandlers) UpdateInventory(ctx context.Context, _ *mcp.CallToolRequest, input UpdateInventoryInput) (*mcp.CallToolResult, UpdateInventoryOutput, error) {
	res, err := h.hub.UpdateInventory(ctx, input.ActionType, models.InventoryChange{
		ProductID:    input.ProductID,
		Brand:        input.Brand,
		Model:        input.Model,
		Quantity:     input.Quantity,
		Price:        input.Price,
		MinimumStock: input.MinimumStock,
	})
	if err != nil {
		return nil, UpdateInventoryOutput{}, toolError("update_inventory", err)
	}
	return nil, UpdateInventoryOutput{Message: res.Message, LowStockAlert: res.LowStockAlert}, nil
}

type BroadcastOfferInput struct {
	PhoneModel string   `json:"phone_model" jsonschema:"Phone model on offer (required)"`
	Price      float64  `json:"price" jsonschema:"Offer price in KES (required)"`
	Features   string   `json:"features,omitempty" jsonschema:"Highlights to mention"`
	DealType   string   `json:"deal_type,omitempty" jsonschema:"new-arrival, discount, or flash-sale"`
	Images     []string `json:"images,omitempty" jsonschema:"Image URLs"`
}

type BroadcastOfferOutput struct {
	Message string `json:"message"`
}

func (h *StaffHandlers) BroadcastOffer(ctx context.Context, _ *mcp.CallToolRequest, input BroadcastOfferInput) (*mcp.CallToolResult, BroadcastOfferOutput, error) {
	msg, err := h.hub.BroadcastOffer(ctx, models.Offer{
		PhoneModel: input.PhoneModel,
		Price:      input.Price,
		Features:   input.Features,
		DealType:   input.DealType,
		Images:     input.Images,
	})
	if err != nil {
		return nil, BroadcastOfferOutput{}, toolError("broadcast_offer", err)
	}
	return nil, BroadcastOfferOutput{Message: msg}, nil
}

type SearchCustomersInput struct {
	Query string `json:"query" jsonschema:"Search term (required)"`
	Type  string `json:"type,omitempty" jsonschema:"name, phone, model, or nationalId (default name)"`
}

type SearchCustomersOutput struct {
	Customers []models.Customer `json:"customers"`
	Message   string            `json:"message"`
}

func (h *StaffHandlers) SearchCustomers(ctx context.Context, _ *mcp.CallToolRequest, input SearchCustomersInput) (*mcp.CallToolResult, SearchCustomersOutput, error) {
	res, err := h.hub.SearchCustomers(ctx, input.Query, input.Type)
	if err != nil {
		return nil, SearchCustomersOutput{}, toolError("search_customers", err)
	}
	customers := res.Customers
	if customers == nil {
		customers = []models.Customer{}
	}
	return nil, SearchCustomersOutput{Customers: customers, Message: res.Message}, nil
}
