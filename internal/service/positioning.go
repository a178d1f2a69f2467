package service

import (
	"context"
	"fmt"

	"slides/internal/batch"
	"slides/internal/domain"
	"slides/internal/geometry"
	"slides/internal/locator"
	"slides/internal/units"
)

type PositionInput struct {
	ElementID       string
	X, Y            *float64 // inches; override alignment when set
	Width, Height   *float64
	HorizontalAlign string
	VerticalAlign   string
}

type PositionResult struct {
	ElementID string     `json:"element_id"`
	Position  Position   `json:"position"`
	Size      Dimensions `json:"size"`
}

// PositionElement moves and optionally resizes one element. A resize
// adds a second absolute transform carrying the scale ratio against the
// element's unscaled size.
func (s *SlidesService) PositionElement(ctx context.Context, presentationID string, in PositionInput) (*PositionResult, error) {
	h, err := geometry.ParseHorizontal(in.HorizontalAlign)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	v, err := geometry.ParseVertical(in.VerticalAlign)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if (in.Width != nil && *in.Width <= 0) || (in.Height != nil && *in.Height <= 0) {
		return nil, invalid("width and height must be positive")
	}

	doc, err := s.document(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	loc, err := locator.FindByID(doc, in.ElementID)
	if err != nil {
		return nil, err
	}
	cur, err := locator.ExtractBounds(loc.Element)
	if err != nil {
		return nil, err
	}

	size := domain.Size{Width: cur.Width, Height: cur.Height}
	if in.Width != nil {
		size.Width = units.Inches(*in.Width)
	}
	if in.Height != nil {
		size.Height = units.Inches(*in.Height)
	}

	x, y := cur.X, cur.Y
	if h != geometry.AlignNone || v != geometry.AlignNone {
		x, y = geometry.AlignPosition(geometry.SlideSizeOf(doc), size, h, v, 0)
	}
	if in.X != nil {
		x = units.Inches(*in.X)
	}
	if in.Y != nil {
		y = units.Inches(*in.Y)
	}

	requests := []batch.Request{batch.UpdateTransform(in.ElementID, geometry.Translate(x, y))}
	if in.Width != nil || in.Height != nil {
		t, err := geometry.BuildTransform(x, y,
			geometry.ScaleRatio(size.Width, cur.Width),
			geometry.ScaleRatio(size.Height, cur.Height), 0)
		if err != nil {
			return nil, err
		}
		requests = append(requests, batch.UpdateTransform(in.ElementID, t))
	}
	if _, err := s.submit(ctx, presentationID, requests); err != nil {
		return nil, err
	}

	return &PositionResult{
		ElementID: in.ElementID,
		Position:  positionOf(x, y),
		Size:      dimensionsOf(size.Width, size.Height),
	}, nil
}

type ElementPosition struct {
	ElementID string  `json:"element_id"`
	XInches   float64 `json:"x_inches"`
	YInches   float64 `json:"y_inches"`
}

type ArrangeResult struct {
	Elements []ElementPosition `json:"elements"`
}

// boxes resolves ids in order and measures each one.
func boxes(doc *domain.Document, ids []string) ([]geometry.Box, error) {
	els, err := locator.FindMany(doc, ids)
	if err != nil {
		return nil, err
	}
	out := make([]geometry.Box, len(els))
	for i, el := range els {
		b, err := locator.ExtractBounds(el)
		if err != nil {
			return nil, err
		}
		out[i] = b.Box()
	}
	return out, nil
}

func (s *SlidesService) applyBoxes(ctx context.Context, presentationID string, ids []string, placed []geometry.Box) (*ArrangeResult, error) {
	requests := make([]batch.Request, len(ids))
	res := &ArrangeResult{Elements: make([]ElementPosition, len(ids))}
	for i, id := range ids {
		b := placed[i]
		requests[i] = batch.UpdateTransform(id, geometry.Translate(b.X, b.Y))
		p := positionOf(b.X, b.Y)
		res.Elements[i] = ElementPosition{ElementID: id, XInches: p.XInches, YInches: p.YInches}
	}
	if _, err := s.submit(ctx, presentationID, requests); err != nil {
		return nil, err
	}
	return res, nil
}

// DistributeInput spaces elements along one axis, either evenly across
// the slide or with a fixed gap in inches.
type DistributeInput struct {
	ElementIDs []string
	Direction  string
	Even       bool
	GapInches  float64
}

// DistributeElements lays the elements out in the given order; the
// other coordinate of each element is kept.
func (s *SlidesService) DistributeElements(ctx context.Context, presentationID string, in DistributeInput) (*ArrangeResult, error) {
	axis := geometry.Axis(in.Direction)
	if axis != geometry.Horizontal && axis != geometry.Vertical {
		return nil, invalid("direction must be horizontal or vertical, got %q", in.Direction)
	}
	if len(in.ElementIDs) < 2 {
		return nil, fmt.Errorf("%w: distribute needs at least 2 elements, got %d", geometry.ErrInsufficientElements, len(in.ElementIDs))
	}

	doc, err := s.document(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	items, err := boxes(doc, in.ElementIDs)
	if err != nil {
		return nil, err
	}

	container := geometry.SlideSizeOf(doc)
	extent := container.Width
	if axis == geometry.Vertical {
		extent = container.Height
	}
	positions, err := geometry.Distribute(items, axis, extent, geometry.Spacing{Even: in.Even, Gap: units.Inches(in.GapInches)})
	if err != nil {
		return nil, err
	}

	for i := range items {
		if axis == geometry.Horizontal {
			items[i].X = positions[i]
		} else {
			items[i].Y = positions[i]
		}
	}
	return s.applyBoxes(ctx, presentationID, in.ElementIDs, items)
}

// AlignElements lines elements up on one edge or center line of the
// reference: the first element, the last one, or the slide.
func (s *SlidesService) AlignElements(ctx context.Context, presentationID string, ids []string, alignment, reference string) (*ArrangeResult, error) {
	edge, err := geometry.ParseEdge(alignment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	ref, err := geometry.ParseReference(reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: align needs at least 1 element", geometry.ErrInsufficientElements)
	}

	doc, err := s.document(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	items, err := boxes(doc, ids)
	if err != nil {
		return nil, err
	}
	placed, err := geometry.AlignTo(items, edge, ref, geometry.SlideSizeOf(doc))
	if err != nil {
		return nil, err
	}
	return s.applyBoxes(ctx, presentationID, ids, placed)
}
