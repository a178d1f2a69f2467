package service

import (
	"context"
	"fmt"
	"strings"

	"slides/internal/domain"
	"slides/internal/locator"
	"slides/internal/slidesapi"
)

type SlideSummary struct {
	SlideID      string `json:"slide_id"`
	Index        int    `json:"index"`
	Title        string `json:"title"`
	ElementCount int    `json:"element_count"`
}

func (s *SlidesService) ListSlides(ctx context.Context, presentationID string) ([]SlideSummary, error) {
	doc, err := s.document(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	out := make([]SlideSummary, len(doc.Slides))
	for i := range doc.Slides {
		sl := &doc.Slides[i]
		out[i] = SlideSummary{
			SlideID:      sl.ID,
			Index:        i,
			Title:        locator.SlideTitle(sl),
			ElementCount: len(sl.Elements),
		}
	}
	return out, nil
}

// GetElementInfo describes one element: position and size in inches,
// its kind and the kind-specific fields.
func (s *SlidesService) GetElementInfo(ctx context.Context, presentationID, elementID string) (map[string]any, error) {
	doc, err := s.document(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	loc, err := locator.FindByID(doc, elementID)
	if err != nil {
		return nil, err
	}
	b, err := locator.ExtractBounds(loc.Element)
	if err != nil {
		return nil, err
	}

	info := domain.Describe(loc.Element)
	info["id"] = elementID
	info["slide_id"] = loc.Slide.ID
	info["position"] = positionOf(b.X, b.Y)
	info["size"] = dimensionsOf(b.Width, b.Height)
	if shape := loc.Element.TextShape(); shape != nil {
		if text := strings.TrimSpace(shape.Text()); text != "" {
			info["text"] = text
		}
	}
	return info, nil
}

type ThumbnailResult struct {
	ContentURL string `json:"content_url"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// ExportThumbnail renders one slide as PNG or JPEG.
func (s *SlidesService) ExportThumbnail(ctx context.Context, presentationID, slideID, mime string) (*ThumbnailResult, error) {
	mime = strings.ToUpper(strings.TrimSpace(mime))
	switch mime {
	case "":
		mime = slidesapi.MimePNG
	case slidesapi.MimePNG, slidesapi.MimeJPEG:
	default:
		return nil, invalid("mime_type must be PNG or JPEG, got %q", mime)
	}
	th, err := s.slides.Thumbnail(ctx, presentationID, slideID, mime)
	if err != nil {
		return nil, fmt.Errorf("thumbnail %s: %w", slideID, err)
	}
	return &ThumbnailResult{ContentURL: th.ContentURL, Width: th.Width, Height: th.Height}, nil
}
