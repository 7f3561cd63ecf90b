// ABOUTME: MCP resource handlers for exposing shop data
// ABOUTME: Provides read-only access to the catalog, shop settings, history, and rewards via URI
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/phonestore/catalog"
	"github.com/harperreed/phonestore/configsync"
	"github.com/harperreed/phonestore/gamification"
)

// ResourceScheme prefixes every shop resource URI.
const ResourceScheme = "phonestore://"

type ResourceHandlers struct {
	config  *configsync.Syncer
	rewards *gamification.Engine
}

func NewResourceHandlers(config *configsync.Syncer, rewards *gamification.Engine) *ResourceHandlers {
	return &ResourceHandlers{config: config, rewards: rewards}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, ResourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", ResourceScheme)
	}

	path := strings.TrimPrefix(uri, ResourceScheme)
	parts := strings.Split(path, "/")

	switch parts[0] {
	case "catalog":
		if len(parts) == 1 || parts[1] == "" {
			return jsonResource(uri, h.config.Inventory())
		}
		return h.readProduct(uri, parts[1])

	case "config":
		return jsonResource(uri, configToOutput(h.config.Current()))

	case "history":
		return jsonResource(uri, h.config.History())

	case "rewards":
		if h.rewards == nil {
			return nil, fmt.Errorf("rewards are not available")
		}
		return jsonResource(uri, h.rewards.State())

	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func (h *ResourceHandlers) readProduct(uri, id string) (*mcp.ReadResourceResult, error) {
	p, ok := catalog.Find(h.config.Inventory(), id)
	if !ok {
		return nil, fmt.Errorf("product not found: %s", id)
	}
	return jsonResource(uri, p)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
