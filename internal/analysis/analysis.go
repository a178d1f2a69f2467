// Package analysis extracts a style guide from a presentation in a
// single read-only pass: slide categories, colors, fonts and the
// placeholder text patterns a template uses.
package analysis

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"slides/internal/colors"
	"slides/internal/domain"
	"slides/internal/geometry"
	"slides/internal/units"
)

const (
	maxPaletteColors   = 20
	maxFontSizes       = 10
	maxColorContexts   = 5
	maxCategorySlides  = 10
	maxTitlePatterns   = 10
	maxBodyPatterns    = 5
	placeholderTextCap = 100
	bodyPatternCap     = 50
)

// SlideInfo is the per-slide inventory entry.
type SlideInfo struct {
	SlideID          string   `json:"slide_id"`
	Index            int      `json:"index"`
	ElementCount     int      `json:"element_count"`
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	HasImage         bool     `json:"has_image"`
	HasChart         bool     `json:"has_chart"`
	HasTable         bool     `json:"has_table"`
	PlaceholderTypes []string `json:"placeholder_types"`
	Category         Category `json:"category"`
}

type PageSize struct {
	WidthInches  float64 `json:"width_inches"`
	HeightInches float64 `json:"height_inches"`
}

type Overview struct {
	PresentationID string   `json:"presentation_id"`
	Title          string   `json:"title"`
	TotalSlides    int      `json:"total_slides"`
	PageSize       PageSize `json:"page_size"`
	AspectRatio    string   `json:"aspect_ratio"`
	URL            string   `json:"url"`
}

type ColorUsage struct {
	Color      string   `json:"color"`
	UsageCount int      `json:"usage_count"`
	Contexts   []string `json:"contexts"`
}

type FontSize struct {
	SizePt float64 `json:"size_pt"`
	Count  int     `json:"count"`
}

type Typography struct {
	Fonts       []string   `json:"fonts"`
	PrimaryFont *string    `json:"primary_font"`
	FontSizes   []FontSize `json:"font_sizes"`
}

type PatternText struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

type PlaceholderPatterns struct {
	TitlePatterns    []string      `json:"title_patterns"`
	SubtitlePatterns []string      `json:"subtitle_patterns"`
	BodyPatterns     []string      `json:"body_patterns"`
	DatePatterns     []PatternText `json:"date_patterns"`
	NamePatterns     []PatternText `json:"name_patterns"`
}

type SlideRef struct {
	Index   int    `json:"index"`
	SlideID string `json:"slide_id"`
	Title   string `json:"title"`
}

type CategorySummary struct {
	Count  int        `json:"count"`
	Slides []SlideRef `json:"slides"`
}

type Thumbnail struct {
	SlideIndex int      `json:"slide_index"`
	SlideID    string   `json:"slide_id"`
	Title      string   `json:"title"`
	Category   Category `json:"category"`
	URL        string   `json:"url"`
}

// Report is the full analysis of one presentation. Thumbnails is filled
// in by the caller, since fetching them needs the remote service.
type Report struct {
	Overview            Overview                     `json:"overview"`
	SlideInventory      []SlideInfo                  `json:"slide_inventory"`
	ColorPalette        []ColorUsage                 `json:"color_palette"`
	Typography          Typography                   `json:"typography"`
	PlaceholderPatterns PlaceholderPatterns          `json:"placeholder_patterns"`
	LayoutCategories    map[Category]CategorySummary `json:"layout_categories"`
	Recommendations     []string                     `json:"recommendations"`
	Thumbnails          []Thumbnail                  `json:"thumbnails"`
}

// PresentationURL is the editor link for a presentation.
func PresentationURL(id string) string {
	return "https://docs.google.com/presentation/d/" + id
}

// usage records the distinct contexts a key was seen in, keeping keys
// in first-seen order.
type usage struct {
	keys     []string
	contexts map[string][]string
}

func newUsage() *usage { return &usage{contexts: make(map[string][]string)} }

func (u *usage) add(key, context string) {
	ctxs, seen := u.contexts[key]
	if !seen {
		u.keys = append(u.keys, key)
	}
	if !slices.Contains(ctxs, context) {
		u.contexts[key] = append(ctxs, context)
	}
}

// ranked returns keys by descending context count, ties in first-seen order.
func (u *usage) ranked() []string {
	out := slices.Clone(u.keys)
	slices.SortStableFunc(out, func(a, b string) int {
		return len(u.contexts[b]) - len(u.contexts[a])
	})
	return out
}

type placeholderText struct {
	kind string
	text string
}

type aggregator struct {
	colors       *usage
	fonts        *usage
	sizeOrder    []float64
	sizeCounts   map[float64]int
	placeholders []placeholderText
}

// Analyze walks doc once and builds the report.
func Analyze(doc *domain.Document) *Report {
	agg := &aggregator{
		colors:     newUsage(),
		fonts:      newUsage(),
		sizeCounts: make(map[float64]int),
	}

	inventory := make([]SlideInfo, 0, len(doc.Slides))
	for i := range doc.Slides {
		info := agg.slide(i, &doc.Slides[i])
		info.Category = Categorize(&info)
		inventory = append(inventory, info)
	}

	title := doc.Title
	if title == "" {
		title = "Untitled"
	}

	patterns := analyzePatterns(agg.placeholders)
	return &Report{
		Overview: Overview{
			PresentationID: doc.ID,
			Title:          title,
			TotalSlides:    len(doc.Slides),
			PageSize: PageSize{
				WidthInches:  round2(units.ToInches(doc.PageSize.Width)),
				HeightInches: round2(units.ToInches(doc.PageSize.Height)),
			},
			AspectRatio: geometry.AspectRatioLabel(doc.PageSize),
			URL:         PresentationURL(doc.ID),
		},
		SlideInventory:      inventory,
		ColorPalette:        agg.palette(),
		Typography:          agg.typography(),
		PlaceholderPatterns: patterns,
		LayoutCategories:    summarize(inventory),
		Recommendations:     recommend(inventory, patterns, agg),
	}
}

func (agg *aggregator) slide(index int, s *domain.Slide) SlideInfo {
	info := SlideInfo{
		SlideID:          s.ID,
		Index:            index,
		ElementCount:     len(s.Elements),
		PlaceholderTypes: []string{},
	}
	n := index + 1

	for i := range s.Elements {
		el := &s.Elements[i]
		switch p := el.Payload.(type) {
		case *domain.Image:
			info.HasImage = true
		case *domain.Chart:
			info.HasChart = true
		case *domain.Table:
			info.HasTable = true
		case *domain.TextShape:
			agg.shape(&info, p, n)
		case *domain.Line, *domain.Video, nil:
		default:
			panic(fmt.Sprintf("analysis: unhandled element payload %T", p))
		}
	}

	if s.Background != nil {
		agg.color(s.Background, fmt.Sprintf("Background on slide %d", n))
	}
	return info
}

func (agg *aggregator) shape(info *SlideInfo, shape *domain.TextShape, n int) {
	kind := string(shape.Placeholder)
	if kind != "" {
		info.PlaceholderTypes = append(info.PlaceholderTypes, kind)
	}

	for _, run := range shape.Runs {
		content := strings.TrimSpace(run.Content)
		if content == "" {
			continue
		}
		if kind != "" {
			switch shape.Placeholder {
			case domain.PlaceholderTitle:
				info.Title = content
			case domain.PlaceholderSubtitle:
				info.Subtitle = content
			}
			agg.placeholders = append(agg.placeholders, placeholderText{kind: kind, text: truncate(content, placeholderTextCap)})
		}

		st := run.Style
		if st.FontFamily != "" {
			agg.fonts.add(st.FontFamily, fmt.Sprintf("Slide %d", n))
		}
		if st.FontSizePt != 0 {
			if _, ok := agg.sizeCounts[st.FontSizePt]; !ok {
				agg.sizeOrder = append(agg.sizeOrder, st.FontSizePt)
			}
			agg.sizeCounts[st.FontSizePt]++
		}
		if st.Foreground != nil {
			agg.color(st.Foreground, fmt.Sprintf("Text on slide %d", n))
		}
	}

	if shape.Fill != nil {
		agg.color(shape.Fill, fmt.Sprintf("Shape fill on slide %d", n))
	}
}

// color records c under its palette key: theme:NAME for theme colors,
// lowercase #rrggbb otherwise.
func (agg *aggregator) color(c *domain.Color, context string) {
	switch {
	case c.Theme != "":
		agg.colors.add("theme:"+c.Theme, context)
	case c.RGB != nil:
		agg.colors.add(colors.Key(*c.RGB), context)
	}
}

func (agg *aggregator) palette() []ColorUsage {
	out := []ColorUsage{}
	for _, key := range agg.colors.ranked() {
		ctxs := agg.colors.contexts[key]
		out = append(out, ColorUsage{
			Color:      key,
			UsageCount: len(ctxs),
			Contexts:   ctxs[:min(len(ctxs), maxColorContexts)],
		})
		if len(out) == maxPaletteColors {
			break
		}
	}
	return out
}

func (agg *aggregator) primaryFont() *string {
	ranked := agg.fonts.ranked()
	if len(ranked) == 0 {
		return nil
	}
	return &ranked[0]
}

func (agg *aggregator) typography() Typography {
	sizes := slices.Clone(agg.sizeOrder)
	slices.SortStableFunc(sizes, func(a, b float64) int {
		return agg.sizeCounts[b] - agg.sizeCounts[a]
	})
	fontSizes := []FontSize{}
	for _, s := range sizes[:min(len(sizes), maxFontSizes)] {
		fontSizes = append(fontSizes, FontSize{SizePt: s, Count: agg.sizeCounts[s]})
	}
	return Typography{
		Fonts:       append([]string{}, agg.fonts.keys...),
		PrimaryFont: agg.primaryFont(),
		FontSizes:   fontSizes,
	}
}

var (
	dateMarkers = []string{"MM.DD", "YYYY", "mm/dd", "date"}
	nameMarkers = []string{"full name", "name //", "job title"}
)

func analyzePatterns(texts []placeholderText) PlaceholderPatterns {
	p := PlaceholderPatterns{
		TitlePatterns:    []string{},
		SubtitlePatterns: []string{},
		BodyPatterns:     []string{},
		DatePatterns:     []PatternText{},
		NamePatterns:     []PatternText{},
	}
	for _, item := range texts {
		if containsAny(item.text, dateMarkers...) && !hasPattern(p.DatePatterns, item.text) {
			p.DatePatterns = append(p.DatePatterns, PatternText{Text: item.text, Type: item.kind})
		}
		if containsAny(strings.ToLower(item.text), nameMarkers...) && !hasPattern(p.NamePatterns, item.text) {
			p.NamePatterns = append(p.NamePatterns, PatternText{Text: item.text, Type: item.kind})
		}

		switch domain.Placeholder(item.kind) {
		case domain.PlaceholderTitle:
			if len(p.TitlePatterns) < maxTitlePatterns {
				p.TitlePatterns = append(p.TitlePatterns, item.text)
			}
		case domain.PlaceholderSubtitle:
			if len(p.SubtitlePatterns) < maxTitlePatterns {
				p.SubtitlePatterns = append(p.SubtitlePatterns, item.text)
			}
		case domain.PlaceholderBody:
			if len(p.BodyPatterns) < maxBodyPatterns {
				text := item.text
				if len([]rune(text)) > bodyPatternCap {
					text = truncate(text, bodyPatternCap) + "..."
				}
				p.BodyPatterns = append(p.BodyPatterns, text)
			}
		}
	}
	return p
}

func hasPattern(list []PatternText, text string) bool {
	return slices.ContainsFunc(list, func(p PatternText) bool { return p.Text == text })
}

func summarize(inventory []SlideInfo) map[Category]CategorySummary {
	out := make(map[Category]CategorySummary)
	for _, s := range inventory {
		sum := out[s.Category]
		sum.Count++
		if len(sum.Slides) < maxCategorySlides {
			sum.Slides = append(sum.Slides, SlideRef{Index: s.Index, SlideID: s.SlideID, Title: s.Title})
		}
		out[s.Category] = sum
	}
	return out
}

func slideNumbers(slides []SlideInfo, limit int) string {
	nums := make([]string, 0, limit)
	for _, s := range slides[:min(len(slides), limit)] {
		nums = append(nums, fmt.Sprint(s.Index+1))
	}
	return strings.Join(nums, ", ")
}

func ofCategory(inventory []SlideInfo, c Category) []SlideInfo {
	var out []SlideInfo
	for _, s := range inventory {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out
}

// recommend emits one line per rule whose supporting data is present.
// The workflow line is always last.
func recommend(inventory []SlideInfo, patterns PlaceholderPatterns, agg *aggregator) []string {
	var out []string

	if covers := ofCategory(inventory, Cover); len(covers) > 0 {
		out = append(out, fmt.Sprintf("Use slides %s as cover options (found %d cover variants)",
			slideNumbers(covers, 4), len(covers)))
	}
	if sections := ofCategory(inventory, SectionDivider); len(sections) > 0 {
		out = append(out, fmt.Sprintf("Use slides %s as section dividers", slideNumbers(sections, 2)))
	}
	if len(patterns.DatePatterns) > 0 {
		out = append(out, fmt.Sprintf("Replace date placeholder '%s' with actual dates", patterns.DatePatterns[0].Text))
	}
	if len(patterns.NamePatterns) > 0 {
		out = append(out, fmt.Sprintf("Replace name placeholder '%s' with presenter info", patterns.NamePatterns[0].Text))
	}
	if font := agg.primaryFont(); font != nil {
		out = append(out, fmt.Sprintf("Maintain '%s' as the primary font for consistency", *font))
	}
	if ranked := agg.colors.ranked(); len(ranked) > 0 {
		out = append(out, "Primary brand colors detected: "+strings.Join(ranked[:min(len(ranked), 3)], ", "))
	}

	return append(out, "Workflow: copy_template → delete unused slides → replace_placeholders → add images")
}

var keySlidePriority = []Category{Cover, SectionDivider, Content, DataVisualization, Mockup, Infographic}

// SelectKeySlides picks up to limit slides for thumbnails: the first slide
// of each priority category, then the remaining slides in order.
func SelectKeySlides(inventory []SlideInfo, limit int) []SlideInfo {
	var out []SlideInfo
	picked := make(map[int]bool)

	for _, c := range keySlidePriority {
		if len(out) >= limit {
			break
		}
		for _, s := range inventory {
			if s.Category == c {
				out = append(out, s)
				picked[s.Index] = true
				break
			}
		}
	}
	for _, s := range inventory {
		if len(out) >= limit {
			break
		}
		if !picked[s.Index] {
			out = append(out, s)
			picked[s.Index] = true
		}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
