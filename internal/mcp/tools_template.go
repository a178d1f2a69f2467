package mcpserver

import (
	"context"

	"slides/internal/batch"
	"slides/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTemplateTools() {
	// ── copy_template ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("copy_template",
		mcp.WithDescription("Copy a presentation (or a PPTX file) to use as the starting point of a new deck."),
		mcp.WithString("template_id", mcp.Description("File ID of the template"), mcp.Required()),
		mcp.WithString("new_name", mcp.Description("Name of the copy"), mcp.Required()),
		mcp.WithString("destination_folder_id", mcp.Description("Folder to place the copy in (optional)")),
		mcp.WithBoolean("convert_to_slides", mcp.Description("Convert a PPTX template to a native presentation (default false)")),
	), s.handleCopyTemplate)

	// ── replace_placeholders ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("replace_placeholders",
		mcp.WithDescription("Replace every occurrence of each placeholder string (e.g. {{client_name}}) across the whole presentation."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithObject("replacements", mcp.Description("Map of placeholder text to replacement text"), mcp.Required()),
	), s.handleReplacePlaceholders)

	// ── replace_placeholder_with_image ─────────────────
	s.mcp.AddTool(mcp.NewTool("replace_placeholder_with_image",
		mcp.WithDescription("Replace every shape containing the placeholder text with an image from a public URL."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithString("placeholder_text", mcp.Description("Text identifying the shapes to replace"), mcp.Required()),
		mcp.WithString("image_url", mcp.Description("Publicly reachable image URL"), mcp.Required()),
		mcp.WithString("replace_method",
			mcp.Description("How the image fits the shape (default CENTER_INSIDE)"),
			mcp.Enum(batch.CenterInside, batch.CenterCrop),
		),
	), s.handleReplacePlaceholderWithImage)

	// ── search_presentations ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("search_presentations",
		mcp.WithDescription("Search presentations and PPTX files by name, optionally inside one folder."),
		mcp.WithString("query", mcp.Description("Text the file name must contain (optional)")),
		mcp.WithString("folder_id", mcp.Description("Restrict to this folder (optional)")),
		mcp.WithNumber("max_results", mcp.Description("Page size, 1-100 (default 20)")),
		mcp.WithString("page_token", mcp.Description("Token from a previous search to fetch the next page")),
		readOnlyHint(),
	), s.handleSearchPresentations)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleCopyTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	convert, err := getBool(args, "convert_to_slides", false)
	if err != nil {
		return s.result("copy_template", nil, err)
	}
	res, err := s.slides.CopyTemplate(ctx,
		getString(args, "template_id"),
		getString(args, "new_name"),
		getString(args, "destination_folder_id"),
		convert,
	)
	return s.result("copy_template", res, err)
}

func (s *Server) handleReplacePlaceholders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("replace_placeholders", nil, err)
	}
	obj, err := objectArg(args, "replacements")
	if err != nil {
		return s.result("replace_placeholders", nil, err)
	}
	replacements, err := stringMap("replacements", obj)
	if err != nil {
		return s.result("replace_placeholders", nil, err)
	}
	res, err := s.slides.ReplacePlaceholders(ctx, pres, replacements)
	return s.result("replace_placeholders", res, err)
}

func (s *Server) handleReplacePlaceholderWithImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("replace_placeholder_with_image", nil, err)
	}
	res, err := s.slides.ReplacePlaceholderWithImage(ctx, pres,
		getString(args, "placeholder_text"),
		getString(args, "image_url"),
		getString(args, "replace_method"),
	)
	return s.result("replace_placeholder_with_image", res, err)
}

func (s *Server) handleSearchPresentations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	limit, err := optInt(args, "max_results")
	if err != nil {
		return s.result("search_presentations", nil, err)
	}
	q := service.SearchQuery{
		Query:     getString(args, "query"),
		FolderID:  getString(args, "folder_id"),
		PageToken: getString(args, "page_token"),
	}
	if limit != nil {
		q.MaxResults = *limit
	}
	res, err := s.slides.SearchPresentations(ctx, q)
	return s.result("search_presentations", res, err)
}
