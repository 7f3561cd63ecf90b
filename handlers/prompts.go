// ABOUTME: MCP prompt handlers for reusable shop workflow templates
// ABOUTME: Provides prompts for offer copy, restock reviews, and customer follow-ups
package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/phonestore/catalog"
	"github.com/harperreed/phonestore/configsync"
	"github.com/harperreed/phonestore/models"
)

type PromptHandlers struct {
	config *configsync.Syncer
}

func NewPromptHandlers(config *configsync.Syncer) *PromptHandlers {
	return &PromptHandlers{config: config}
}

// Prompts lists the prompt templates this handler serves.
func (h *PromptHandlers) Prompts() []*mcp.Prompt {
	return []*mcp.Prompt{
		{
			Name:        "offer-message",
			Description: "Draft a WhatsApp group announcement for a phone in stock",
			Arguments: []*mcp.PromptArgument{
				{Name: "product_id", Description: "Catalog product ID", Required: true},
				{Name: "deal_type", Description: "new-arrival, discount, or flash-sale"},
			},
		},
		{
			Name:        "restock-review",
			Description: "Review stock levels and recent sales and suggest what to reorder",
		},
		{
			Name:        "customer-followup",
			Description: "Write a friendly follow-up message to a past customer",
			Arguments: []*mcp.PromptArgument{
				{Name: "customer_name", Description: "Customer name", Required: true},
				{Name: "phone_model", Description: "Phone they bought"},
			},
		},
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := request.Params.Name
	arguments := request.Params.Arguments
	switch name {
	case "offer-message":
		return h.getOfferMessagePrompt(arguments)
	case "restock-review":
		return h.getRestockReviewPrompt()
	case "customer-followup":
		return h.getCustomerFollowupPrompt(arguments)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", name)
	}
}

func (h *PromptHandlers) getOfferMessagePrompt(args map[string]string) (*mcp.GetPromptResult, error) {
	id, ok := args["product_id"]
	if !ok || id == "" {
		return nil, fmt.Errorf("product_id is required")
	}
	p, ok := catalog.Find(h.config.Inventory(), id)
	if !ok {
		return nil, fmt.Errorf("product not found: %s", id)
	}
	deal := args["deal_type"]
	if deal == "" {
		deal = models.DealNewArrival
	}
	cfg := h.config.Current()

	var promptText strings.Builder
	promptText.WriteString("Write a short WhatsApp group announcement for this phone:\n\n")
	promptText.WriteString(fmt.Sprintf("Phone: %s %s\n", p.Brand, p.Model))
	promptText.WriteString(fmt.Sprintf("Price: KSh %.0f\n", p.Price))
	promptText.WriteString(fmt.Sprintf("Deal: %s\n", deal))
	if len(p.Features) > 0 {
		promptText.WriteString(fmt.Sprintf("Features: %s\n", strings.Join(p.Features, ", ")))
	}
	promptText.WriteString(fmt.Sprintf("\nShop: %s, %s\n", cfg.ShopName, cfg.Location))
	if cfg.InquiryNumber != "" {
		promptText.WriteString(fmt.Sprintf("Inquiries: %s\n", cfg.InquiryNumber))
	}

	promptText.WriteString("\nKeep it under 80 words, use a few emoji, and end with how to order.")
	promptText.WriteString("\nWhen the text is ready, send it with the broadcast_offer tool.")

	return textPrompt(fmt.Sprintf("Offer message for %s %s", p.Brand, p.Model), promptText.String()), nil
}

func (h *PromptHandlers) getRestockReviewPrompt() (*mcp.GetPromptResult, error) {
	items := h.config.Inventory()
	sort.Slice(items, func(i, j int) bool { return items[i].Stock < items[j].Stock })

	var promptText strings.Builder
	promptText.WriteString("Review this phone shop's stock and suggest a reorder list.\n\n")
	promptText.WriteString(fmt.Sprintf("Low-stock threshold: %d units\n\n", models.DefaultMinimumStock))
	promptText.WriteString("Stock (lowest first):\n")
	for _, p := range items {
		marker := ""
		if p.Stock <= models.DefaultMinimumStock {
			marker = " (low)"
		}
		promptText.WriteString(fmt.Sprintf("- %s %s [%s]: %d units @ KSh %.0f%s\n", p.Brand, p.Model, p.Category, p.Stock, p.Price, marker))
	}

	if history := h.config.History(); len(history) > 0 {
		promptText.WriteString("\nRecent activity:\n")
		for _, e := range history {
			label := e.Model
			if label == "" {
				label = e.Description
			}
			promptText.WriteString(fmt.Sprintf("- %s: %s x%d\n", e.Type, label, e.Quantity))
		}
	}

	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. Which models to reorder first and roughly how many")
	promptText.WriteString("\n2. Any slow movers worth discounting")

	return textPrompt("Restock review", promptText.String()), nil
}

func (h *PromptHandlers) getCustomerFollowupPrompt(args map[string]string) (*mcp.GetPromptResult, error) {
	customer, ok := args["customer_name"]
	if !ok || customer == "" {
		return nil, fmt.Errorf("customer_name is required")
	}
	cfg := h.config.Current()

	var promptText strings.Builder
	promptText.WriteString(fmt.Sprintf("Write a short WhatsApp follow-up message from %s to %s.\n", cfg.ShopName, customer))
	if model := args["phone_model"]; model != "" {
		promptText.WriteString(fmt.Sprintf("They recently bought a %s.\n", model))
	}
	promptText.WriteString("\nThank them, ask how the phone is working, and mention accessories or trade-in options.")
	promptText.WriteString(fmt.Sprintf("\nSign off with the shop's inquiry number %s.", cfg.InquiryNumber))

	return textPrompt(fmt.Sprintf("Follow-up for %s", customer), promptText.String()), nil
}

func textPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
