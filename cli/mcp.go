// ABOUTME: MCP server subcommand
// ABOUTME: Starts the staff tool server on stdio for agent integrations
package cli

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/phonestore/app"
	"github.com/harperreed/phonestore/handlers"
)

// NewMCPServer builds the MCP server with every shop and staff tool,
// resource, and prompt registered.
func NewMCPServer(sf *app.Storefront, version string) *mcp.Server {
	shopHandlers := handlers.NewShopHandlers(sf.Config)
	staffHandlers := handlers.NewStaffHandlers(sf.Staff)
	resourceHandlers := handlers.NewResourceHandlers(sf.Config, sf.Rewards)
	promptHandlers := handlers.NewPromptHandlers(sf.Config)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "phonestore",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_config",
		Description: "Show the shop name, location, contact links, and whether a backend webhook is configured",
	}, shopHandlers.GetConfig)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_inventory",
		Description: "List phones in stock, optionally filtered by search text or category",
	}, shopHandlers.ListInventory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_history",
		Description: "Fetch recent sales and stock movements from the backend",
	}, shopHandlers.GetHistory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ping_webhook",
		Description: "Check that the backend webhook is reachable",
	}, shopHandlers.PingWebhook)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_customers",
		Description: "Search customers by name, phone, model, or national ID",
	}, staffHandlers.SearchCustomers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_sale",
		Description: "Record an in-store sale; the customer receives a WhatsApp receipt",
	}, staffHandlers.RecordSale)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_inventory",
		Description: "Register a new product, add stock, or record a stock reduction",
	}, staffHandlers.UpdateInventory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "broadcast_offer",
		Description: "Announce a deal to the shop's WhatsApp group",
	}, staffHandlers.BroadcastOffer)

	for _, r := range []*mcp.Resource{
		{URI: handlers.ResourceScheme + "catalog", Name: "catalog", Description: "Phones currently offered", MIMEType: "application/json"},
		{URI: handlers.ResourceScheme + "config", Name: "config", Description: "Shop settings", MIMEType: "application/json"},
		{URI: handlers.ResourceScheme + "history", Name: "history", Description: "Last fetched sales and stock movements", MIMEType: "application/json"},
		{URI: handlers.ResourceScheme + "rewards", Name: "rewards", Description: "Shopper points, level, and badges", MIMEType: "application/json"},
	} {
		server.AddResource(r, resourceHandlers.ReadResource)
	}
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: handlers.ResourceScheme + "catalog/{id}",
		Name:        "product",
		Description: "A single phone by catalog ID",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	for _, p := range promptHandlers.Prompts() {
		server.AddPrompt(p, promptHandlers.GetPrompt)
	}

	return server
}

// MCPCommand starts the MCP server on stdio.
func MCPCommand(ctx context.Context, sf *app.Storefront, version string) error {
	sf.Logger.Info("starting phonestore MCP server")
	return NewMCPServer(sf, version).Run(ctx, &mcp.StdioTransport{})
}
