package domain

import "slides/internal/colors"

// Document is one presentation as fetched from the Slides API.
// It is never cached between tool calls.
type Document struct {
	ID       string   `json:"presentationId"`
	Title    string   `json:"title"`
	PageSize Size     `json:"pageSize"` // zero when the API omitted it
	Slides   []Slide  `json:"slides"`
	Layouts  []Layout `json:"layouts"`
}

// SlideByID returns the slide with the given object id, or nil.
func (d *Document) SlideByID(id string) *Slide {
	for i := range d.Slides {
		if d.Slides[i].ID == id {
			return &d.Slides[i]
		}
	}
	return nil
}

// Layout is a layout template a new slide can be based on.
type Layout struct {
	ID   string `json:"objectId"`
	Name string `json:"name"`
}

type Slide struct {
	ID         string    `json:"objectId"`
	Elements   []Element `json:"pageElements"`
	Background *Color    `json:"background,omitempty"`
}

// Size is a width/height pair in EMU.
type Size struct {
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

// IsZero reports whether either dimension is missing.
func (s Size) IsZero() bool { return s.Width == 0 || s.Height == 0 }

// Transform is an affine transform with translation in EMU.
type Transform struct {
	ScaleX     float64 `json:"scaleX"`
	ScaleY     float64 `json:"scaleY"`
	ShearX     float64 `json:"shearX"`
	ShearY     float64 `json:"shearY"`
	TranslateX int64   `json:"translateX"`
	TranslateY int64   `json:"translateY"`
}

// Color is either an explicit RGB value or a theme color reference.
type Color struct {
	RGB   *colors.RGB `json:"rgb,omitempty"`
	Theme string      `json:"theme,omitempty"`
}
