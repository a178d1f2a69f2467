package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"slides/internal/analysis"
	"slides/internal/batch"
	"slides/internal/colors"
	"slides/internal/geometry"
	"slides/internal/locator"
	"slides/internal/units"
)

// Layouts accepted by CreateSlide.
var Layouts = []string{
	"BLANK",
	"TITLE",
	"TITLE_AND_BODY",
	"TITLE_AND_TWO_COLUMNS",
	"TITLE_ONLY",
	"SECTION_HEADER",
	"ONE_COLUMN_TEXT",
	"MAIN_POINT",
	"BIG_NUMBER",
	"CAPTION_ONLY",
}

type CreatedPresentation struct {
	PresentationID string `json:"presentation_id"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	SlideCount     int    `json:"slide_count"`
}

func (s *SlidesService) CreatePresentation(ctx context.Context, title string) (*CreatedPresentation, error) {
	if strings.TrimSpace(title) == "" {
		return nil, invalid("title is required")
	}
	doc, err := s.slides.CreatePresentation(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}
	s.logger.Info("presentation created", "presentation_id", doc.ID)
	return &CreatedPresentation{
		PresentationID: doc.ID,
		Title:          doc.Title,
		URL:            analysis.PresentationURL(doc.ID),
		SlideCount:     len(doc.Slides),
	}, nil
}

type CreatedSlide struct {
	SlideID        string            `json:"slide_id"`
	PlaceholderIDs map[string]string `json:"placeholder_ids"`
}

// CreateSlide adds a slide using the document's own layout whose name
// matches, falling back to the predefined layout. The new page is
// fetched again to report its placeholder ids.
func (s *SlidesService) CreateSlide(ctx context.Context, presentationID, layout string, insertionIndex *int) (*CreatedSlide, error) {
	layout = strings.ToUpper(strings.TrimSpace(layout))
	if layout == "" {
		layout = "BLANK"
	}
	if !slices.Contains(Layouts, layout) {
		return nil, invalid("unknown layout %q", layout)
	}
	if insertionIndex != nil && *insertionIndex < 0 {
		return nil, invalid("insertion_index must not be negative")
	}

	doc, err := s.document(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	ref := batch.LayoutReference{PredefinedLayout: layout}
	for _, l := range doc.Layouts {
		if strings.ToUpper(l.Name) == layout {
			ref = batch.LayoutReference{LayoutID: l.ID}
			break
		}
	}

	slideID := batch.NewObjectID("slide")
	if _, err := s.submit(ctx, presentationID, []batch.Request{batch.CreateSlide(slideID, ref, insertionIndex)}); err != nil {
		return nil, err
	}

	page, err := s.slides.GetPage(ctx, presentationID, slideID)
	if err != nil {
		return nil, fmt.Errorf("get new slide %s: %w", slideID, err)
	}
	res := &CreatedSlide{SlideID: slideID, PlaceholderIDs: make(map[string]string)}
	for _, m := range locator.FindAllPlaceholders(page) {
		if _, seen := res.PlaceholderIDs[string(m.Placeholder)]; !seen {
			res.PlaceholderIDs[string(m.Placeholder)] = m.ObjectID
		}
	}
	return res, nil
}

// Placement is where a new element goes, in inches. Alignment keywords
// are resolved against the slide size; explicit X/Y override them.
// AutoPlace searches for free space when neither X/Y nor alignment is
// given.
type Placement struct {
	X, Y            *float64
	Width, Height   *float64
	HorizontalAlign string
	VerticalAlign   string
	AutoPlace       bool
}

type CreatedElement struct {
	ElementID  string     `json:"element_id"`
	Position   Position   `json:"position"`
	Size       Dimensions `json:"size"`
	AutoPlaced bool       `json:"auto_placed,omitempty"`
}

type defaults struct {
	x, y, w, h float64
}

// resolve turns a placement into EMU geometry on slideID. The document
// is only fetched when alignment or free-space search needs it.
func (s *SlidesService) resolve(ctx context.Context, presentationID, slideID string, p Placement, def defaults) (batch.Placement, bool, error) {
	h, err := geometry.ParseHorizontal(p.HorizontalAlign)
	if err != nil {
		return batch.Placement{}, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	v, err := geometry.ParseVertical(p.VerticalAlign)
	if err != nil {
		return batch.Placement{}, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if slideID == "" {
		return batch.Placement{}, false, invalid("slide_id is required")
	}

	w, ht := def.w, def.h
	if p.Width != nil {
		w = *p.Width
	}
	if p.Height != nil {
		ht = *p.Height
	}
	if w <= 0 || ht <= 0 {
		return batch.Placement{}, false, invalid("width and height must be positive")
	}
	size := geometry.BuildSize(units.Inches(w), units.Inches(ht))

	x, y := units.Inches(def.x), units.Inches(def.y)
	aligned := h != geometry.AlignNone || v != geometry.AlignNone
	search := p.AutoPlace && !aligned && p.X == nil && p.Y == nil
	placed := false

	if aligned || search {
		doc, err := s.document(ctx, presentationID)
		if err != nil {
			return batch.Placement{}, false, err
		}
		slide, err := locator.FindSlide(doc, slideID)
		if err != nil {
			return batch.Placement{}, false, err
		}
		container := geometry.SlideSizeOf(doc)
		switch {
		case aligned:
			x, y = geometry.AlignPosition(container, size, h, v, 0)
		case search:
			if fx, fy, ok := s.layout.FreeSpot(container, locator.OccupiedBoxes(slide), size.Width, size.Height); ok {
				x, y, placed = fx, fy, true
			} else {
				s.logger.Warn("no free space on slide, using default position", "slide_id", slideID)
			}
		}
	}
	if p.X != nil {
		x = units.Inches(*p.X)
	}
	if p.Y != nil {
		y = units.Inches(*p.Y)
	}

	return batch.Placement{PageID: slideID, Size: size, Transform: geometry.Translate(x, y)}, placed, nil
}

func created(id string, at batch.Placement, auto bool) *CreatedElement {
	return &CreatedElement{
		ElementID:  id,
		Position:   positionOf(at.Transform.TranslateX, at.Transform.TranslateY),
		Size:       dimensionsOf(at.Size.Width, at.Size.Height),
		AutoPlaced: auto,
	}
}

type TextBoxInput struct {
	SlideID    string
	Text       string
	Placement  Placement
	FontSizePt *float64 // 18
	FontFamily string   // Arial
	Bold       bool
	Italic     bool
	Color      string // #000000
	Alignment  string // LEFT
}

// AddTextBox creates a styled text box; defaults to 1,1 and 4×1 inches.
func (s *SlidesService) AddTextBox(ctx context.Context, presentationID string, in TextBoxInput) (*CreatedElement, error) {
	box := batch.TextBox{
		Text:       in.Text,
		FontFamily: in.FontFamily,
		FontSizePt: 18,
		Bold:       in.Bold,
		Italic:     in.Italic,
	}
	if box.FontFamily == "" {
		box.FontFamily = "Arial"
	}
	if in.FontSizePt != nil {
		if *in.FontSizePt <= 0 {
			return nil, invalid("font_size must be positive")
		}
		box.FontSizePt = *in.FontSizePt
	}
	hex := in.Color
	if hex == "" {
		hex = "#000000"
	}
	rgb, err := colors.Decode(hex)
	if err != nil {
		return nil, err
	}
	box.Color = rgb
	alignment := in.Alignment
	if alignment == "" {
		alignment = "LEFT"
	}
	var ok bool
	if box.Alignment, ok = batch.ParseAlignment(alignment); !ok {
		return nil, invalid("unknown alignment %q", in.Alignment)
	}

	at, auto, err := s.resolve(ctx, presentationID, in.SlideID, in.Placement, defaults{x: 1, y: 1, w: 4, h: 1})
	if err != nil {
		return nil, err
	}
	id := batch.NewObjectID("textbox")
	if _, err := s.submit(ctx, presentationID, batch.CreateTextBox(id, at, box)); err != nil {
		return nil, err
	}
	return created(id, at, auto), nil
}

// AddImage places an image from a public URL; defaults to 4×3 inches
// at 1,1.
func (s *SlidesService) AddImage(ctx context.Context, presentationID, slideID, imageURL string, p Placement) (*CreatedElement, error) {
	if imageURL == "" {
		return nil, invalid("image_url is required")
	}
	at, auto, err := s.resolve(ctx, presentationID, slideID, p, defaults{x: 1, y: 1, w: 4, h: 3})
	if err != nil {
		return nil, err
	}
	id := batch.NewObjectID("image")
	if _, err := s.submit(ctx, presentationID, []batch.Request{batch.CreateImage(id, imageURL, at)}); err != nil {
		return nil, err
	}
	return created(id, at, auto), nil
}

// NoOutline disables the shape outline.
const NoOutline = "none"

type ShapeInput struct {
	SlideID         string
	ShapeType       string
	Placement       Placement
	FillColor       string   // empty means no fill
	FillAlpha       *float64 // 1
	OutlineColor    string   // #000000; NoOutline disables it
	OutlineWeightPt *float64 // 1
}

func (s *SlidesService) AddShape(ctx context.Context, presentationID string, in ShapeInput) (*CreatedElement, error) {
	shapeType := strings.ToUpper(strings.TrimSpace(in.ShapeType))
	if shapeType == "" {
		return nil, invalid("shape_type is required")
	}

	var style batch.ShapeStyle
	if in.FillColor != "" {
		alpha := 1.0
		if in.FillAlpha != nil {
			alpha = *in.FillAlpha
		}
		if alpha < 0 || alpha > 1 {
			return nil, fmt.Errorf("fill alpha %v: %w", alpha, colors.ErrOutOfRange)
		}
		fill, err := batch.SolidFillHex(in.FillColor, alpha)
		if err != nil {
			return nil, err
		}
		style.Fill = &fill
	}
	outline := in.OutlineColor
	if outline == "" {
		outline = "#000000"
	}
	if !strings.EqualFold(outline, NoOutline) {
		rgb, err := colors.Decode(outline)
		if err != nil {
			return nil, err
		}
		style.Outline = &rgb
		style.OutlineWeightPt = 1
		if in.OutlineWeightPt != nil {
			style.OutlineWeightPt = *in.OutlineWeightPt
		}
	}

	at, auto, err := s.resolve(ctx, presentationID, in.SlideID, in.Placement, defaults{x: 1, y: 1, w: 2, h: 2})
	if err != nil {
		return nil, err
	}
	id := batch.NewObjectID("shape")
	if _, err := s.submit(ctx, presentationID, batch.CreateShape(id, shapeType, at, style)); err != nil {
		return nil, err
	}
	return created(id, at, auto), nil
}
