package mcpserver

import (
	"context"

	"slides/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerContentTools() {
	// ── update_slide_content ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_slide_content",
		mcp.WithDescription("Replace the text of placeholders on one slide, addressed by placeholder type (TITLE, SUBTITLE, BODY, ...). A list value becomes one paragraph per item."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithString("slide_id", mcp.Description("Slide ID"), mcp.Required()),
		mcp.WithObject("content", mcp.Description(`Map of placeholder type to text or list of lines, e.g. {"TITLE": "Q3", "BODY": ["a", "b"]}`), mcp.Required()),
	), s.handleUpdateSlideContent)

	// ── update_presentation_content ────────────────────
	s.mcp.AddTool(mcp.NewTool("update_presentation_content",
		mcp.WithDescription("Update placeholder text on many slides in a single batch. Unknown slides are reported in errors; the others are still updated."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithArray("slides",
			mcp.Description(`List of {"slide_id": "...", "content": {"TITLE": "..."}} or the flat form {"slide_id": "...", "TITLE": "..."}`),
			mcp.Required(),
			mcp.Items(map[string]any{"type": "object"}),
		),
	), s.handleUpdatePresentationContent)

	// ── apply_text_style ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("apply_text_style",
		mcp.WithDescription("Style every placeholder of one type, on all slides or the listed ones. Only the given fields change."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithString("placeholder_type", mcp.Description("Placeholder type, e.g. TITLE or BODY"), mcp.Required()),
		mcp.WithArray("slide_ids", mcp.Description("Limit to these slides; omit for every slide, an empty list styles none"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithNumber("font_size_pt", mcp.Description("Font size in points")),
		mcp.WithBoolean("bold", mcp.Description("Bold")),
		mcp.WithBoolean("italic", mcp.Description("Italic")),
		mcp.WithString("font_family", mcp.Description("Font family, e.g. Roboto")),
		mcp.WithString("color", mcp.Description("Text color as #RRGGBB")),
		mcp.WithString("alignment", mcp.Description("Paragraph alignment"), mcp.Enum("LEFT", "CENTER", "RIGHT", "JUSTIFIED")),
	), s.handleApplyTextStyle)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleUpdateSlideContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("update_slide_content", nil, err)
	}
	obj, err := objectArg(args, "content")
	if err != nil {
		return s.result("update_slide_content", nil, err)
	}
	content, err := textContent("content", obj)
	if err != nil {
		return s.result("update_slide_content", nil, err)
	}
	res, err := s.slides.UpdateSlideContent(ctx, pres, getString(args, "slide_id"), content)
	return s.result("update_slide_content", res, err)
}

func (s *Server) handleUpdatePresentationContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("update_presentation_content", nil, err)
	}
	items, err := arrayArg(args, "slides")
	if err != nil {
		return s.result("update_presentation_content", nil, err)
	}

	slides := make([]service.SlideContent, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return s.result("update_presentation_content", nil, argError("slides", "each entry must be an object"))
		}
		obj, err := entryContent(entry)
		if err != nil {
			return s.result("update_presentation_content", nil, err)
		}
		content, err := textContent("content", obj)
		if err != nil {
			return s.result("update_presentation_content", nil, err)
		}
		slides = append(slides, service.SlideContent{SlideID: getString(entry, "slide_id"), Content: content})
	}

	res, err := s.slides.UpdatePresentationContent(ctx, pres, slides)
	return s.result("update_presentation_content", res, err)
}

func (s *Server) handleApplyTextStyle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("apply_text_style", nil, err)
	}
	in := service.StyleInput{
		Placeholder: getString(args, "placeholder_type"),
		FontFamily:  optString(args, "font_family"),
		Color:       optString(args, "color"),
		Alignment:   getString(args, "alignment"),
	}
	if in.SlideIDs, err = stringList(args, "slide_ids"); err != nil {
		return s.result("apply_text_style", nil, err)
	}
	if in.FontSizePt, err = optFloat(args, "font_size_pt"); err != nil {
		return s.result("apply_text_style", nil, err)
	}
	if in.Bold, err = optBool(args, "bold"); err != nil {
		return s.result("apply_text_style", nil, err)
	}
	if in.Italic, err = optBool(args, "italic"); err != nil {
		return s.result("apply_text_style", nil, err)
	}
	res, err := s.slides.ApplyTextStyle(ctx, pres, in)
	return s.result("apply_text_style", res, err)
}

// entryContent returns the placeholder text of one bulk entry: its
// "content" object when present, otherwise every key but slide_id.
func entryContent(entry map[string]any) (map[string]any, error) {
	if _, ok := entry["content"]; ok {
		return objectArg(entry, "content")
	}
	out := make(map[string]any, len(entry))
	for k, v := range entry {
		if k != "slide_id" {
			out[k] = v
		}
	}
	return out, nil
}
