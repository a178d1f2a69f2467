package mcpserver

import (
	"context"
	"strings"

	"slides/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

// placementOptions are the geometry arguments shared by the add_* tools.
func placementOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("x", mcp.Description("Left edge in inches")),
		mcp.WithNumber("y", mcp.Description("Top edge in inches")),
		mcp.WithNumber("width", mcp.Description("Width in inches")),
		mcp.WithNumber("height", mcp.Description("Height in inches")),
		mcp.WithString("horizontal_align", mcp.Description("Align on the slide horizontally"), mcp.Enum("left", "center", "right")),
		mcp.WithString("vertical_align", mcp.Description("Align on the slide vertically"), mcp.Enum("top", "middle", "bottom")),
		mcp.WithBoolean("auto_place", mcp.Description("Find free space on the slide when no position or alignment is given")),
	}
}

func placementArgs(args map[string]any) (service.Placement, error) {
	p := service.Placement{
		HorizontalAlign: getString(args, "horizontal_align"),
		VerticalAlign:   getString(args, "vertical_align"),
	}
	var err error
	if p.X, err = optFloat(args, "x"); err != nil {
		return p, err
	}
	if p.Y, err = optFloat(args, "y"); err != nil {
		return p, err
	}
	if p.Width, err = optFloat(args, "width"); err != nil {
		return p, err
	}
	if p.Height, err = optFloat(args, "height"); err != nil {
		return p, err
	}
	p.AutoPlace, err = getBool(args, "auto_place", false)
	return p, err
}

func (s *Server) registerCreationTools() {
	// ── create_presentation ────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_presentation",
		mcp.WithDescription("Create a new, empty presentation."),
		mcp.WithString("title", mcp.Description("Presentation title"), mcp.Required()),
	), s.handleCreatePresentation)

	// ── create_slide ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_slide",
		mcp.WithDescription("Add a slide. The presentation's own layout of that name is used when it has one. Returns the new slide's placeholder IDs by type."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithString("layout", mcp.Description("Layout (default BLANK)"), mcp.Enum(service.Layouts...)),
		mcp.WithNumber("insertion_index", mcp.Description("Zero-based position; appended when omitted")),
	), s.handleCreateSlide)

	// ── add_text_box ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_text_box",
		append([]mcp.ToolOption{
			mcp.WithDescription("Add a styled text box. Defaults: 1in from the top-left, 4x1 inches, 18pt Arial, black, left aligned."),
			mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
			mcp.WithString("slide_id", mcp.Description("Slide ID"), mcp.Required()),
			mcp.WithString("text", mcp.Description("Text content"), mcp.Required()),
			mcp.WithNumber("font_size", mcp.Description("Font size in points (default 18)")),
			mcp.WithString("font_family", mcp.Description("Font family (default Arial)")),
			mcp.WithBoolean("bold", mcp.Description("Bold")),
			mcp.WithBoolean("italic", mcp.Description("Italic")),
			mcp.WithString("color", mcp.Description("Text color as #RRGGBB (default #000000)")),
			mcp.WithString("alignment", mcp.Description("Paragraph alignment (default LEFT)"), mcp.Enum("LEFT", "CENTER", "RIGHT", "JUSTIFIED")),
		}, placementOptions()...)...,
	), s.handleAddTextBox)

	// ── add_image ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_image",
		append([]mcp.ToolOption{
			mcp.WithDescription("Add an image from a public URL. Defaults: 1in from the top-left, 4x3 inches."),
			mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
			mcp.WithString("slide_id", mcp.Description("Slide ID"), mcp.Required()),
			mcp.WithString("image_url", mcp.Description("Publicly reachable image URL"), mcp.Required()),
		}, placementOptions()...)...,
	), s.handleAddImage)

	// ── add_shape ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_shape",
		append([]mcp.ToolOption{
			mcp.WithDescription("Add a shape. Defaults: 1in from the top-left, 2x2 inches, no fill, 1pt black outline."),
			mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
			mcp.WithString("slide_id", mcp.Description("Slide ID"), mcp.Required()),
			mcp.WithString("shape_type", mcp.Description("Shape type, e.g. RECTANGLE, ELLIPSE, ROUND_RECTANGLE, RIGHT_ARROW"), mcp.Required()),
			mcp.WithString("fill_color", mcp.Description("Fill as #RRGGBB (optional)")),
			mcp.WithNumber("fill_alpha", mcp.Description("Fill opacity 0-1 (default 1)")),
			mcp.WithString("outline_color", mcp.Description(`Outline as #RRGGBB, or "none"`)),
			mcp.WithNumber("outline_weight", mcp.Description("Outline weight in points (default 1)")),
		}, placementOptions()...)...,
	), s.handleAddShape)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleCreatePresentation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	res, err := s.slides.CreatePresentation(ctx, getString(args, "title"))
	return s.result("create_presentation", res, err)
}

func (s *Server) handleCreateSlide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("create_slide", nil, err)
	}
	idx, err := optInt(args, "insertion_index")
	if err != nil {
		return s.result("create_slide", nil, err)
	}
	res, err := s.slides.CreateSlide(ctx, pres, getString(args, "layout"), idx)
	return s.result("create_slide", res, err)
}

func (s *Server) handleAddTextBox(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("add_text_box", nil, err)
	}
	text, _ := args["text"].(string)
	in := service.TextBoxInput{
		SlideID:    getString(args, "slide_id"),
		Text:       text,
		FontFamily: getString(args, "font_family"),
		Color:      getString(args, "color"),
		Alignment:  getString(args, "alignment"),
	}
	if in.Placement, err = placementArgs(args); err != nil {
		return s.result("add_text_box", nil, err)
	}
	if in.FontSizePt, err = optFloat(args, "font_size"); err != nil {
		return s.result("add_text_box", nil, err)
	}
	if in.Bold, err = getBool(args, "bold", false); err != nil {
		return s.result("add_text_box", nil, err)
	}
	if in.Italic, err = getBool(args, "italic", false); err != nil {
		return s.result("add_text_box", nil, err)
	}
	res, err := s.slides.AddTextBox(ctx, pres, in)
	return s.result("add_text_box", res, err)
}

func (s *Server) handleAddImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("add_image", nil, err)
	}
	p, err := placementArgs(args)
	if err != nil {
		return s.result("add_image", nil, err)
	}
	res, err := s.slides.AddImage(ctx, pres, getString(args, "slide_id"), getString(args, "image_url"), p)
	return s.result("add_image", res, err)
}

func (s *Server) handleAddShape(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("add_shape", nil, err)
	}
	in := service.ShapeInput{
		SlideID:      getString(args, "slide_id"),
		ShapeType:    strings.ToUpper(getString(args, "shape_type")),
		FillColor:    getString(args, "fill_color"),
		OutlineColor: getString(args, "outline_color"),
	}
	if in.Placement, err = placementArgs(args); err != nil {
		return s.result("add_shape", nil, err)
	}
	if in.FillAlpha, err = optFloat(args, "fill_alpha"); err != nil {
		return s.result("add_shape", nil, err)
	}
	if in.OutlineWeightPt, err = optFloat(args, "outline_weight"); err != nil {
		return s.result("add_shape", nil, err)
	}
	res, err := s.slides.AddShape(ctx, pres, in)
	return s.result("add_shape", res, err)
}
