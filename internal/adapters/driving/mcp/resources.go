package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for JSM agent resources.
	uriScheme = "jsm://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource listing the reachable Jira instances.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "instances",
		Name:        "instances",
		Description: "Jira instances reachable with the current credentials",
		MIMEType:    "application/json",
	}, s.handleInstancesResource)
}

// handleInstancesResource returns the reachable Jira instances.
func (s *Server) handleInstancesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	out := s.ports.Tenants.List(ctx, s.ports.Session)
	if !out.IsSuccess() {
		return nil, fmt.Errorf("listing instances: %s", out.Message())
	}

	tenants, ok := out.Data().(domain.TenantMap)
	if !ok {
		return nil, fmt.Errorf("listing instances: unexpected payload %T", out.Data())
	}

	type instanceInfo struct {
		URL  string `json:"url"`
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	}

	infos := make([]instanceInfo, 0, len(tenants))
	for _, url := range tenants.URLs() {
		t := tenants[url]
		infos = append(infos, instanceInfo{URL: url, ID: t.ID, Name: t.Name})
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling instances: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
