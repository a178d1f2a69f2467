package analysis

import (
	"slices"
	"strings"
)

// Category is the layout role assigned to a slide.
type Category string

const (
	Cover             Category = "cover"
	SectionDivider    Category = "section_divider"
	Content           Category = "content"
	ImageFocused      Category = "image_focused"
	DataVisualization Category = "data_visualization"
	Mockup            Category = "mockup"
	Infographic       Category = "infographic"
	Other             Category = "other"
)

// Categories lists every category in report order.
var Categories = []Category{
	Cover, SectionDivider, Content, ImageFocused,
	DataVisualization, Mockup, Infographic, Other,
}

type rule struct {
	category Category
	match    func(s *SlideInfo, title string) bool
}

// rules are evaluated in order and the first match wins. Several rules
// can match the same slide, so the order is part of the behaviour.
var rules = []rule{
	{Cover, func(s *SlideInfo, title string) bool {
		return containsAny(title, "cover", "title page") ||
			(s.ElementCount <= 4 && s.hasPlaceholder("TITLE") && s.hasPlaceholder("BODY") && s.Index < 15)
	}},
	{SectionDivider, func(s *SlideInfo, title string) bool {
		return containsAny(title, "section", "divider") ||
			(s.ElementCount <= 3 && s.hasPlaceholder("TITLE") &&
				(s.hasPlaceholder("SUBTITLE") || s.ElementCount == 1))
	}},
	{DataVisualization, func(s *SlideInfo, title string) bool {
		return s.HasChart || containsAny(title, "chart", "graph", "table", "data") || s.HasTable
	}},
	{Infographic, func(s *SlideInfo, title string) bool {
		return strings.Contains(title, "infographic") || s.ElementCount > 15
	}},
	{Mockup, func(s *SlideInfo, title string) bool {
		return containsAny(title, "mockup", "phone", "laptop", "device", "smartphone", "notebook")
	}},
	{ImageFocused, func(s *SlideInfo, _ string) bool {
		return s.HasImage && s.ElementCount <= 5
	}},
	{Content, func(s *SlideInfo, _ string) bool {
		return s.hasPlaceholder("BODY") || s.ElementCount >= 3
	}},
}

// Categorize runs the rule cascade over s.
func Categorize(s *SlideInfo) Category {
	title := strings.ToLower(s.Title)
	for _, r := range rules {
		if r.match(s, title) {
			return r.category
		}
	}
	return Other
}

func (s *SlideInfo) hasPlaceholder(p string) bool {
	return slices.Contains(s.PlaceholderTypes, p)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
