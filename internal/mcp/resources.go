package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/gymmate/internal/display"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) weeklyTracker(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	programs, err := h.ds.ListPrograms(ctx)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, display.Tracker(programs))
}

func (h *handlers) schedule(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	programs, err := h.ds.ListPrograms(ctx)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, display.Schedule(programs))
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
