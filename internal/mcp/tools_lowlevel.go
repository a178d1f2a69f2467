package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// Passthrough tools: raw API records in and out, no unit conversion.

func (s *Server) registerLowLevelTools() {
	// ── batch_update ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("batch_update",
		mcp.WithDescription("Send raw batchUpdate requests to the Slides API. Lengths are in the API's own units (EMU or PT)."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithArray("requests", mcp.Description("Slides API request objects"), mcp.Required(), mcp.Items(map[string]any{"type": "object"})),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleBatchUpdate)

	// ── get_presentation ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_presentation",
		mcp.WithDescription("Fetch the raw presentation record, optionally limited with a field mask."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithString("fields", mcp.Description("Field mask, e.g. slides.objectId,title (optional)")),
		readOnlyHint(),
	), s.handleGetPresentation)

	// ── get_page ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_page",
		mcp.WithDescription("Fetch the raw record of one page (slide, layout or master)."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithString("page_id", mcp.Description("Page ID"), mcp.Required()),
		readOnlyHint(),
	), s.handleGetPage)
}

func (s *Server) handleBatchUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("batch_update", nil, err)
	}
	items, err := arrayArg(args, "requests")
	if err != nil {
		return s.result("batch_update", nil, err)
	}
	requests := make([]json.RawMessage, len(items))
	for i, item := range items {
		if _, ok := item.(map[string]any); !ok {
			return s.result("batch_update", nil, argError("requests", "entry %d is not an object", i))
		}
		if requests[i], err = json.Marshal(item); err != nil {
			return s.result("batch_update", nil, err)
		}
	}
	raw, err := s.slides.BatchUpdateRaw(ctx, pres, requests)
	if err != nil {
		return s.result("batch_update", nil, err)
	}
	return rawResult(raw)
}

func (s *Server) handleGetPresentation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("get_presentation", nil, err)
	}
	raw, err := s.slides.GetPresentationRaw(ctx, pres, getString(args, "fields"))
	if err != nil {
		return s.result("get_presentation", nil, err)
	}
	return rawResult(raw)
}

func (s *Server) handleGetPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("get_page", nil, err)
	}
	page, err := requireString(args, "page_id")
	if err != nil {
		return s.result("get_page", nil, err)
	}
	raw, err := s.slides.GetPageRaw(ctx, pres, page)
	if err != nil {
		return s.result("get_page", nil, err)
	}
	return rawResult(raw)
}
