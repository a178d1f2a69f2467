package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"slides/internal/batch"
	"slides/internal/colors"
	"slides/internal/domain"
)

// toCategories keys content by placeholder category. Keys that differ
// only by case or surrounding space name the same category and are
// rejected.
func toCategories(content map[string]string) (map[domain.Placeholder]string, error) {
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make(map[domain.Placeholder]string, len(content))
	seen := make(map[domain.Placeholder]string, len(content))
	for _, k := range keys {
		cat := domain.Placeholder(strings.ToUpper(strings.TrimSpace(k)))
		if prev, dup := seen[cat]; dup {
			return nil, invalid("content keys %q and %q both name placeholder %s", prev, k, cat)
		}
		seen[cat] = k
		out[cat] = content[k]
	}
	return out, nil
}

type SlideContentResult struct {
	Updated  map[string]bool `json:"updated"`
	NotFound []string        `json:"not_found"`
}

// UpdateSlideContent replaces placeholder text on one slide, keyed by
// placeholder category. Categories with no placeholder are reported in
// NotFound.
func (s *SlidesService) UpdateSlideContent(ctx context.Context, presentationID, slideID string, content map[string]string) (*SlideContentResult, error) {
	if slideID == "" {
		return nil, invalid("slide_id is required")
	}
	categories, err := toCategories(content)
	if err != nil {
		return nil, err
	}
	slide, err := s.slides.GetPage(ctx, presentationID, slideID)
	if err != nil {
		return nil, fmt.Errorf("get slide %s: %w", slideID, err)
	}

	plan := batch.PlanSlideContent(slide, categories)
	if _, err := s.submit(ctx, presentationID, plan.Requests); err != nil {
		return nil, err
	}

	res := &SlideContentResult{Updated: make(map[string]bool), NotFound: []string{}}
	for _, p := range plan.Updated {
		res.Updated[string(p)] = true
	}
	for _, p := range plan.NotFound[slide.ID] {
		res.NotFound = append(res.NotFound, string(p))
	}
	return res, nil
}

// SlideContent is the new text for one slide of a bulk update.
type SlideContent struct {
	SlideID string
	Content map[string]string
}

type PresentationContentResult struct {
	SlidesUpdated       int                 `json:"slides_updated"`
	PlaceholdersUpdated int                 `json:"placeholders_updated"`
	Errors              []string            `json:"errors"`
	NotFound            map[string][]string `json:"not_found,omitempty"`
}

// UpdatePresentationContent updates many slides with one fetch and one
// batch. Unknown slides are reported in Errors; the rest still apply.
func (s *SlidesService) UpdatePresentationContent(ctx context.Context, presentationID string, slides []SlideContent) (*PresentationContentResult, error) {
	updates := make([]batch.SlideUpdate, len(slides))
	for i, sc := range slides {
		categories, err := toCategories(sc.Content)
		if err != nil {
			return nil, fmt.Errorf("slide %q: %w", sc.SlideID, err)
		}
		updates[i] = batch.SlideUpdate{SlideID: sc.SlideID, Content: categories}
	}

	doc, err := s.document(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	plan := batch.PlanPresentationContent(doc, updates)

	if _, err := s.submit(ctx, presentationID, plan.Requests); err != nil {
		return nil, err
	}

	res := &PresentationContentResult{
		SlidesUpdated:       plan.SlidesUpdated,
		PlaceholdersUpdated: plan.PlaceholdersUpdated,
		Errors:              plan.Errors,
	}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	for id, cats := range plan.NotFound {
		if res.NotFound == nil {
			res.NotFound = make(map[string][]string)
		}
		for _, c := range cats {
			res.NotFound[id] = append(res.NotFound[id], string(c))
		}
	}
	s.logger.Info("content updated", "presentation_id", presentationID,
		"slides", res.SlidesUpdated, "placeholders", res.PlaceholdersUpdated, "errors", len(res.Errors))
	return res, nil
}

// StyleInput selects placeholders and the style fields to set. Nil
// fields are left untouched.
type StyleInput struct {
	Placeholder string
	SlideIDs    []string // nil means every slide, empty means none
	FontSizePt  *float64
	Bold        *bool
	Italic      *bool
	FontFamily  *string
	Color       *string
	Alignment   string
}

type StyleResult struct {
	ElementsStyled int      `json:"elements_styled"`
	SlidesAffected []string `json:"slides_affected"`
}

// ApplyTextStyle styles every placeholder of one category across the
// selected slides.
func (s *SlidesService) ApplyTextStyle(ctx context.Context, presentationID string, in StyleInput) (*StyleResult, error) {
	if in.Placeholder == "" {
		return nil, invalid("placeholder_type is required")
	}
	opts := batch.TextStyleOptions{
		FontSizePt: in.FontSizePt,
		Bold:       in.Bold,
		Italic:     in.Italic,
		FontFamily: in.FontFamily,
	}
	if in.Color != nil {
		rgb, err := colors.Decode(*in.Color)
		if err != nil {
			return nil, err
		}
		opts.Color = &rgb
	}
	alignment, ok := batch.ParseAlignment(in.Alignment)
	if !ok {
		return nil, invalid("unknown alignment %q", in.Alignment)
	}

	doc, err := s.document(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	category := domain.Placeholder(strings.ToUpper(in.Placeholder))
	plan := batch.PlanTextStyle(doc, category, in.SlideIDs, opts, alignment)
	if _, err := s.submit(ctx, presentationID, plan.Requests); err != nil {
		return nil, err
	}
	return &StyleResult{ElementsStyled: plan.ElementsStyled, SlidesAffected: plan.SlidesAffected}, nil
}
