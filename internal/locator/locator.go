// Package locator finds elements inside a fetched presentation.
//
// Object ids are assumed to be unique across the whole presentation, which
// the Slides API guarantees for ids it assigns; FindByID returns the first
// match in slide order.
package locator

import (
	"errors"
	"fmt"
	"strings"

	"slides/internal/domain"
	"slides/internal/geometry"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrMissingGeometry = errors.New("missing geometry")
)

// Match is a placeholder element together with its current text.
type Match struct {
	ObjectID    string             `json:"object_id"`
	Placeholder domain.Placeholder `json:"placeholder_type"`
	Text        string             `json:"current_text"`
}

// Location is an element and the slide that contains it.
type Location struct {
	Slide   *domain.Slide
	Element *domain.Element
}

// FindByID scans every slide, then every element, for elementID.
func FindByID(doc *domain.Document, elementID string) (Location, error) {
	for i := range doc.Slides {
		s := &doc.Slides[i]
		for j := range s.Elements {
			if s.Elements[j].ID == elementID {
				return Location{Slide: s, Element: &s.Elements[j]}, nil
			}
		}
	}
	return Location{}, fmt.Errorf("element %s: %w", elementID, ErrNotFound)
}

// FindMany resolves ids in the given order. It fails on the first id
// that is not in the document.
func FindMany(doc *domain.Document, ids []string) ([]*domain.Element, error) {
	out := make([]*domain.Element, 0, len(ids))
	for _, id := range ids {
		loc, err := FindByID(doc, id)
		if err != nil {
			return nil, err
		}
		out = append(out, loc.Element)
	}
	return out, nil
}

// FindSlide returns the slide with slideID.
func FindSlide(doc *domain.Document, slideID string) (*domain.Slide, error) {
	if s := doc.SlideByID(slideID); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("slide %s: %w", slideID, ErrNotFound)
}

// FindByCategory returns every text shape on slide whose placeholder is
// category, in element order, with its whitespace-trimmed text.
func FindByCategory(slide *domain.Slide, category domain.Placeholder) []Match {
	var out []Match
	for _, m := range FindAllPlaceholders(slide) {
		if m.Placeholder == category {
			out = append(out, m)
		}
	}
	return out
}

// FindAllPlaceholders returns every placeholder text shape on slide.
func FindAllPlaceholders(slide *domain.Slide) []Match {
	var out []Match
	for i := range slide.Elements {
		el := &slide.Elements[i]
		shape := el.TextShape()
		if shape == nil || shape.Placeholder == domain.PlaceholderNone {
			continue
		}
		out = append(out, Match{
			ObjectID:    el.ID,
			Placeholder: shape.Placeholder,
			Text:        strings.TrimSpace(shape.Text()),
		})
	}
	return out
}

// Bounds is an element's position and unscaled size in EMU.
type Bounds struct {
	X, Y, Width, Height int64
}

// Box converts b to a layout box.
func (b Bounds) Box() geometry.Box {
	return geometry.Box{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// ExtractBounds reads the translate fields of the transform and the size
// magnitudes. Both must be present.
func ExtractBounds(el *domain.Element) (Bounds, error) {
	if el.Transform == nil || el.Size == nil {
		return Bounds{}, fmt.Errorf("element %s: %w", el.ID, ErrMissingGeometry)
	}
	return Bounds{
		X:      el.Transform.TranslateX,
		Y:      el.Transform.TranslateY,
		Width:  el.Size.Width,
		Height: el.Size.Height,
	}, nil
}

// OccupiedBoxes returns the bounds of every element on slide that has
// geometry, for free-space search.
func OccupiedBoxes(slide *domain.Slide) []geometry.Box {
	var out []geometry.Box
	for i := range slide.Elements {
		if b, err := ExtractBounds(&slide.Elements[i]); err == nil {
			out = append(out, b.Box())
		}
	}
	return out
}

// SlideTitle returns the text of the first TITLE or CENTERED_TITLE
// placeholder on slide, or "".
func SlideTitle(slide *domain.Slide) string {
	for _, m := range FindAllPlaceholders(slide) {
		if m.Placeholder == domain.PlaceholderTitle || m.Placeholder == domain.PlaceholderCenter {
			return m.Text
		}
	}
	return ""
}
