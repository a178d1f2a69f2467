package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerAnalysisTools() {
	// ── analyze_presentation ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("analyze_presentation",
		mcp.WithDescription("Summarize a deck's structure and style: slide inventory and categories, color palette, typography, placeholder patterns and recommendations. Optionally renders thumbnails of key slides."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithBoolean("include_thumbnails", mcp.Description("Render thumbnails of key slides (default false)")),
		mcp.WithNumber("max_thumbnail_slides", mcp.Description("Thumbnails to render, 1-10 (default 5)")),
		readOnlyHint(),
	), s.handleAnalyzePresentation)
}

func (s *Server) handleAnalyzePresentation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("analyze_presentation", nil, err)
	}
	thumbs, err := getBool(args, "include_thumbnails", false)
	if err != nil {
		return s.result("analyze_presentation", nil, err)
	}
	limit, err := optInt(args, "max_thumbnail_slides")
	if err != nil {
		return s.result("analyze_presentation", nil, err)
	}
	n := 0
	if limit != nil {
		n = *limit
	}
	res, err := s.slides.AnalyzePresentation(ctx, pres, thumbs, n)
	return s.result("analyze_presentation", res, err)
}
