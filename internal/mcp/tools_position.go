package mcpserver

import (
	"context"
	"strings"

	"slides/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPositioningTools() {
	// ── position_element ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("position_element",
		mcp.WithDescription("Move and optionally resize an element. Coordinates are in inches from the top-left corner; explicit x/y override alignment keywords."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithString("element_id", mcp.Description("Element ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("Left edge in inches")),
		mcp.WithNumber("y", mcp.Description("Top edge in inches")),
		mcp.WithNumber("width", mcp.Description("New width in inches")),
		mcp.WithNumber("height", mcp.Description("New height in inches")),
		mcp.WithString("horizontal_align", mcp.Description("Align on the slide horizontally"), mcp.Enum("left", "center", "right")),
		mcp.WithString("vertical_align", mcp.Description("Align on the slide vertically"), mcp.Enum("top", "middle", "bottom")),
	), s.handlePositionElement)

	// ── distribute_elements ────────────────────────────
	s.mcp.AddTool(mcp.NewTool("distribute_elements",
		mcp.WithDescription("Lay elements out one after another along an axis, in the given order, either evenly across the slide or with a fixed gap."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithArray("element_ids", mcp.Description("At least two element IDs"), mcp.Required(), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("direction", mcp.Description("Axis to distribute along"), mcp.Required(), mcp.Enum("horizontal", "vertical")),
		mcp.WithString("spacing", mcp.Description(`"even" (default) or a gap in inches`)),
	), s.handleDistributeElements)

	// ── align_elements ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("align_elements",
		mcp.WithDescription("Line elements up on an edge or center line of a reference: the first element, the last one, or the slide."),
		mcp.WithString("presentation_id", mcp.Description("Presentation ID"), mcp.Required()),
		mcp.WithArray("element_ids", mcp.Description("Element IDs"), mcp.Required(), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("alignment", mcp.Description("Edge or center line"), mcp.Required(),
			mcp.Enum("left", "center", "right", "top", "middle", "bottom")),
		mcp.WithString("reference", mcp.Description("What to align against (default first)"), mcp.Enum("first", "last", "slide")),
	), s.handleAlignElements)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handlePositionElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("position_element", nil, err)
	}
	id, err := requireString(args, "element_id")
	if err != nil {
		return s.result("position_element", nil, err)
	}
	in := service.PositionInput{
		ElementID:       id,
		HorizontalAlign: getString(args, "horizontal_align"),
		VerticalAlign:   getString(args, "vertical_align"),
	}
	for key, dst := range map[string]**float64{"x": &in.X, "y": &in.Y, "width": &in.Width, "height": &in.Height} {
		if *dst, err = optFloat(args, key); err != nil {
			return s.result("position_element", nil, err)
		}
	}
	res, err := s.slides.PositionElement(ctx, pres, in)
	return s.result("position_element", res, err)
}

// spacingArg reads "even", an empty value, or a gap in inches.
func spacingArg(args map[string]any) (even bool, gap float64, err error) {
	if v, ok := args["spacing"].(string); ok && (strings.TrimSpace(v) == "" || strings.EqualFold(strings.TrimSpace(v), "even")) {
		return true, 0, nil
	}
	g, err := optFloat(args, "spacing")
	if err != nil {
		return false, 0, argError("spacing", `expected "even" or a number of inches`)
	}
	if g == nil {
		return true, 0, nil
	}
	if *g < 0 {
		return false, 0, argError("spacing", "gap must not be negative")
	}
	return false, *g, nil
}

func (s *Server) handleDistributeElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("distribute_elements", nil, err)
	}
	ids, err := stringList(args, "element_ids")
	if err != nil {
		return s.result("distribute_elements", nil, err)
	}
	even, gap, err := spacingArg(args)
	if err != nil {
		return s.result("distribute_elements", nil, err)
	}
	res, err := s.slides.DistributeElements(ctx, pres, service.DistributeInput{
		ElementIDs: ids,
		Direction:  strings.ToLower(getString(args, "direction")),
		Even:       even,
		GapInches:  gap,
	})
	return s.result("distribute_elements", res, err)
}

func (s *Server) handleAlignElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pres, err := requireString(args, "presentation_id")
	if err != nil {
		return s.result("align_elements", nil, err)
	}
	ids, err := stringList(args, "element_ids")
	if err != nil {
		return s.result("align_elements", nil, err)
	}
	res, err := s.slides.AlignElements(ctx, pres, ids,
		strings.ToLower(getString(args, "alignment")),
		strings.ToLower(getString(args, "reference")),
	)
	return s.result("align_elements", res, err)
}
