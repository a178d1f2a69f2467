package mcpserver

import (
	"context"

	"slides/internal/slidesapi"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerUtilityTools() {
	// ── list_slides ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_slides",
		mcp.WithDescription("List the slides of a presentation with their IDs, titles and element counts."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		readOnlyHint(),
	), s.handleListSlides)

	// ── get_element_info ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_element_info",
		mcp.WithDescription("Describe one element: type, position and size in inches, text and type-specific fields."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithString("element_id", mcp.Description("Element ID"), mcp.Required()),
		readOnlyHint(),
	), s.handleGetElementInfo)

	// ── export_thumbnail ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_thumbnail",
		mcp.WithDescription("Render a slide and return a short-lived image URL."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithString("slide_id", mcp.Description("Slide ID"), mcp.Required()),
		mcp.WithString("mime_type", mcp.Description("Image format (default PNG)"), mcp.Enum(slidesapi.MimePNG, slidesapi.MimeJPEG)),
		readOnlyHint(),
	), s.handleExportThumbnail)
}

func (s *Server) handleListSlides(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("list_slides", nil, err)
	}
	slides, err := s.slides.ListSlides(ctx, pres)
	return s.result("list_slides", map[string]any{"presentation_id": pres, "slides": slides}, err)
}

func (s *Server) handleGetElementInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("get_element_info", nil, err)
	}
	id, err := requireString(args, "element_id")
	if err != nil {
		return s.result("get_element_info", nil, err)
	}
	info, err := s.slides.GetElementInfo(ctx, pres, id)
	return s.result("get_element_info", info, err)
}

func (s *Server) handleExportThumbnail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("export_thumbnail", nil, err)
	}
	slide, err := requireString(args, "slide_id")
	if err != nil {
		return s.result("export_thumbnail", nil, err)
	}
	res, err := s.slides.ExportThumbnail(ctx, pres, slide, getString(args, "mime_type"))
	return s.result("export_thumbnail", res, err)
}
