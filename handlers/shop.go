// ABOUTME: Shop MCP tool handlers
// ABOUTME: Implements get_config, list_inventory, get_history, and ping_webhook tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/phonestore/catalog"
	"github.com/harperreed/phonestore/configsync"
	"github.com/harperreed/phonestore/models"
)

type ShopHandlers struct {
	config *configsync.Syncer
}

func NewShopHandlers(config *configsync.Syncer) *ShopHandlers {
	return &ShopHandlers{config: config}
}

type GetConfigInput struct{}

type ConfigOutput struct {
	ShopName      string `json:"shop_name"`
	Location      string `json:"location"`
	InquiryNumber string `json:"inquiry_number"`
	WhatsappGroup string `json:"whatsapp_group,omitempty"`
	OrderFormURL  string `json:"order_form_url,omitempty"`
	HasWebhook    bool   `json:"has_webhook"`
	TestEndpoint  bool   `json:"test_endpoint"`
}

func (h *ShopHandlers) GetConfig(_ context.Context, _ *mcp.CallToolRequest, _ GetConfigInput) (*mcp.CallToolResult, ConfigOutput, error) {
	return nil, configToOutput(h.config.Current()), nil
}

// configToOutput never exposes the webhook URL itself.
func configToOutput(cfg models.Configuration) ConfigOutput {
	return ConfigOutput{
		ShopName:      cfg.ShopName,
		Location:      cfg.Location,
		InquiryNumber: cfg.InquiryNumber,
		WhatsappGroup: cfg.WhatsappGroup,
		OrderFormURL:  cfg.OrderFormURL,
		HasWebhook:    cfg.HasWebhook(),
		TestEndpoint:  configsync.IsTestEndpoint(cfg.WebhookURL),
	}
}

type ListInventoryInput struct {
	Query    string `json:"query,omitempty" jsonschema:"Search brand or model (case-insensitive)"`
	Category string `json:"category,omitempty" jsonschema:"Flagship, Mid-range, Budget, Used, or All"`
	Refresh  bool   `json:"refresh,omitempty" jsonschema:"Fetch live inventory from the backend first"`
}

type ProductOutput struct {
	ID       string   `json:"id"`
	Brand    string   `json:"brand"`
	Model    string   `json:"model"`
	Price    float64  `json:"price"`
	Category string   `json:"category,omitempty"`
	Stock    int      `json:"stock"`
	Features []string `json:"features,omitempty"`
}

type ListInventoryOutput struct {
	Products []ProductOutput `json:"products"`
	Live     bool            `json:"live"`
}

func (h *ShopHandlers) ListInventory(ctx context.Context, _ *mcp.CallToolRequest, input ListInventoryInput) (*mcp.CallToolResult, ListInventoryOutput, error) {
	items := h.config.Inventory()
	if input.Refresh {
		items = h.config.FetchInventory(ctx)
	}

	filtered := catalog.Filter(items, input.Query, input.Category)
	out := make([]ProductOutput, len(filtered))
	for i, p := range filtered {
		out[i] = productToOutput(p)
	}
	return nil, ListInventoryOutput{Products: out, Live: h.config.IsLive()}, nil
}

type GetHistoryInput struct{}

type GetHistoryOutput struct {
	Entries []models.HistoryEntry `json:"entries"`
}

func (h *ShopHandlers) GetHistory(ctx context.Context, _ *mcp.CallToolRequest, _ GetHistoryInput) (*mcp.CallToolResult, GetHistoryOutput, error) {
	entries := h.config.FetchHistory(ctx)
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	return nil, GetHistoryOutput{Entries: entries}, nil
}

type PingInput struct{}

type PingOutput struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func (h *ShopHandlers) PingWebhook(ctx context.Context, _ *mcp.CallToolRequest, _ PingInput) (*mcp.CallToolResult, PingOutput, error) {
	if err := h.config.Ping(ctx); err != nil {
		return nil, PingOutput{}, fmt.Errorf("webhook ping failed: %w", err)
	}
	return nil, PingOutput{OK: true, Message: "Webhook is reachable"}, nil
}

func productToOutput(p models.Product) ProductOutput {
	return ProductOutput{
		ID:       p.ID.String(),
		Brand:    p.Brand,
		Model:    p.Model,
		Price:    p.Price,
		Category: p.Category,
		Stock:    p.Stock,
		Features: p.Features,
	}
}
