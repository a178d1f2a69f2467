package batch

import (
	"fmt"
	"slices"

	"slides/internal/domain"
	"slides/internal/locator"
)

// SlideUpdate is the new text for placeholder categories of one slide.
type SlideUpdate struct {
	SlideID string
	Content map[domain.Placeholder]string
}

// ContentPlan is the combined request list of a content update plus
// what it will touch. Lookup misses are recorded, never raised.
type ContentPlan struct {
	Requests            []Request
	Updated             []domain.Placeholder
	SlidesUpdated       int
	PlaceholdersUpdated int
	NotFound            map[string][]domain.Placeholder
	Errors              []string
}

func sortedCategories(content map[domain.Placeholder]string) []domain.Placeholder {
	keys := make([]domain.Placeholder, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// planSlide appends a replacement pair for every placeholder on slide
// matching a category of content. Categories are visited in sorted order.
func (p *ContentPlan) planSlide(slide *domain.Slide, content map[domain.Placeholder]string) {
	touched := false
	for _, category := range sortedCategories(content) {
		matches := locator.FindByCategory(slide, category)
		if len(matches) == 0 {
			if p.NotFound == nil {
				p.NotFound = make(map[string][]domain.Placeholder)
			}
			p.NotFound[slide.ID] = append(p.NotFound[slide.ID], category)
			continue
		}
		for _, m := range matches {
			p.Requests = append(p.Requests, ReplaceText(m.ObjectID, content[category])...)
			p.PlaceholdersUpdated++
		}
		p.Updated = append(p.Updated, category)
		touched = true
	}
	if touched {
		p.SlidesUpdated++
	}
}

// PlanSlideContent replaces the text of placeholders on a single slide.
func PlanSlideContent(slide *domain.Slide, content map[domain.Placeholder]string) ContentPlan {
	var p ContentPlan
	p.planSlide(slide, content)
	return p
}

// PlanPresentationContent accumulates replacements for many slides into
// one request list so the whole update is a single batch call. Updates
// naming a slide the document lacks are reported in Errors and skipped.
func PlanPresentationContent(doc *domain.Document, updates []SlideUpdate) ContentPlan {
	var p ContentPlan
	for _, u := range updates {
		if u.SlideID == "" {
			p.Errors = append(p.Errors, "Missing slide_id in slide entry")
			continue
		}
		slide := doc.SlideByID(u.SlideID)
		if slide == nil {
			p.Errors = append(p.Errors, fmt.Sprintf("Slide %s not found in presentation", u.SlideID))
			continue
		}
		p.planSlide(slide, u.Content)
	}
	return p
}

// StylePlan is the request list of a style pass over placeholders.
type StylePlan struct {
	Requests       []Request
	ElementsStyled int
	SlidesAffected []string
}

// PlanTextStyle styles every placeholder of category on the selected
// slides. A nil slideIDs selects every slide.
func PlanTextStyle(doc *domain.Document, category domain.Placeholder, slideIDs []string, opts TextStyleOptions, alignment string) StylePlan {
	p := StylePlan{SlidesAffected: []string{}}
	for i := range doc.Slides {
		slide := &doc.Slides[i]
		if slideIDs != nil && !slices.Contains(slideIDs, slide.ID) {
			continue
		}
		matches := locator.FindByCategory(slide, category)
		if len(matches) == 0 {
			continue
		}
		p.SlidesAffected = append(p.SlidesAffected, slide.ID)
		for _, m := range matches {
			reqs := StyleRequests(m.ObjectID, opts, alignment)
			if len(reqs) > 0 {
				p.Requests = append(p.Requests, reqs...)
				p.ElementsStyled++
			}
		}
	}
	return p
}
