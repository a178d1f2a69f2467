package analysis

import (
	"strings"
	"testing"

	"slides/internal/colors"
	"slides/internal/domain"
	"slides/internal/geometry"
)

func rgb(hex string) *domain.Color {
	c := colors.MustDecode(hex)
	return &domain.Color{RGB: &c}
}

func shapeEl(id string, ph domain.Placeholder, runs ...domain.TextRun) domain.Element {
	return domain.Element{ID: id, Payload: &domain.TextShape{ShapeType: "TEXT_BOX", Placeholder: ph, Runs: runs}}
}

func run(text, font string, size float64, fg *domain.Color) domain.TextRun {
	return domain.TextRun{Content: text, Style: domain.TextStyle{FontFamily: font, FontSizePt: size, Foreground: fg}}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		info SlideInfo
		want Category
	}{
		{
			name: "section keyword beats content",
			info: SlideInfo{Title: "Q1 Section", ElementCount: 2, PlaceholderTypes: []string{"TITLE", "SUBTITLE"}},
			want: SectionDivider,
		},
		{
			name: "cover keyword beats chart",
			info: SlideInfo{Title: "Cover with chart", ElementCount: 2, HasChart: true},
			want: Cover,
		},
		{
			name: "structural cover",
			info: SlideInfo{Index: 3, ElementCount: 4, PlaceholderTypes: []string{"TITLE", "BODY"}},
			want: Cover,
		},
		{
			name: "structural cover only early in deck",
			info: SlideInfo{Index: 15, ElementCount: 4, PlaceholderTypes: []string{"TITLE", "BODY"}},
			want: Content,
		},
		{
			name: "lone title is a divider",
			info: SlideInfo{ElementCount: 1, PlaceholderTypes: []string{"TITLE"}},
			want: SectionDivider,
		},
		{
			name: "divider keyword beats data keyword",
			info: SlideInfo{Title: "Data Divider", ElementCount: 9},
			want: SectionDivider,
		},
		{
			name: "table",
			info: SlideInfo{ElementCount: 6, HasTable: true},
			want: DataVisualization,
		},
		{
			name: "busy slide",
			info: SlideInfo{ElementCount: 16, HasImage: true},
			want: Infographic,
		},
		{
			name: "device mockup",
			info: SlideInfo{Title: "Our phone app", ElementCount: 3, HasImage: true},
			want: Mockup,
		},
		{
			name: "image focused",
			info: SlideInfo{ElementCount: 5, HasImage: true},
			want: ImageFocused,
		},
		{
			name: "body is content",
			info: SlideInfo{ElementCount: 2, PlaceholderTypes: []string{"BODY"}},
			want: Content,
		},
		{
			name: "other",
			info: SlideInfo{ElementCount: 1},
			want: Other,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(&tt.info); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func sampleDeck() *domain.Document {
	navy := rgb("#1A2B3C")
	return &domain.Document{
		ID:       "deck",
		Title:    "Template",
		PageSize: geometry.SlideSizes["16:9"],
		Slides: []domain.Slide{
			{
				ID: "s1",
				Elements: []domain.Element{
					shapeEl("t1", domain.PlaceholderTitle, run("Q1 Section", "Roboto", 36, navy)),
					shapeEl("st1", domain.PlaceholderSubtitle, run("MM.DD.YYYY", "Roboto", 18, nil)),
				},
				Background: &domain.Color{Theme: "DARK1"},
			},
			{
				ID: "s2",
				Elements: []domain.Element{
					shapeEl("t2", domain.PlaceholderTitle, run("Agenda", "Lato", 36, navy)),
					shapeEl("b2", domain.PlaceholderBody,
						run("Full Name // Job Title", "Lato", 14, rgb("#FF0000")),
						run("   ", "Ignored", 99, nil)),
					{ID: "img", Payload: &domain.Image{SourceURL: "https://example.com/x.png"}},
				},
			},
			{
				ID: "s3",
				Elements: []domain.Element{
					{ID: "chart", Payload: &domain.Chart{SpreadsheetID: "sheet", ChartID: 1}},
					{ID: "grp"},
					{
						ID:      "box",
						Payload: &domain.TextShape{ShapeType: "RECTANGLE", Fill: navy, Runs: []domain.TextRun{run("note", "Roboto", 14, nil)}},
					},
				},
			},
		},
	}
}

func TestAnalyze(t *testing.T) {
	r := Analyze(sampleDeck())

	if r.Overview.TotalSlides != 3 || r.Overview.AspectRatio != "16:9 (Widescreen)" {
		t.Errorf("unexpected overview %+v", r.Overview)
	}
	if r.Overview.PageSize.WidthInches != 10 || r.Overview.PageSize.HeightInches != 5.63 {
		t.Errorf("unexpected page size %+v", r.Overview.PageSize)
	}
	if r.Overview.URL != "https://docs.google.com/presentation/d/deck" {
		t.Errorf("unexpected url %q", r.Overview.URL)
	}

	want := []Category{SectionDivider, Cover, DataVisualization}
	for i, s := range r.SlideInventory {
		if s.Category != want[i] {
			t.Errorf("slide %d: expected %s, got %s", i, want[i], s.Category)
		}
	}
	if r.SlideInventory[0].Title != "Q1 Section" || r.SlideInventory[0].Subtitle != "MM.DD.YYYY" {
		t.Errorf("unexpected title/subtitle %+v", r.SlideInventory[0])
	}
	if !r.SlideInventory[1].HasImage || !r.SlideInventory[2].HasChart {
		t.Error("expected image and chart flags")
	}

	if len(r.ColorPalette) != 3 {
		t.Fatalf("expected 3 colors, got %+v", r.ColorPalette)
	}
	top := r.ColorPalette[0]
	if top.Color != "#1a2b3c" || top.UsageCount != 3 {
		t.Errorf("expected navy used in 3 contexts first, got %+v", top)
	}

	if r.Typography.PrimaryFont == nil || *r.Typography.PrimaryFont != "Roboto" {
		t.Errorf("expected Roboto as primary font, got %v", r.Typography.PrimaryFont)
	}
	if strings.Join(r.Typography.Fonts, ",") != "Roboto,Lato" {
		t.Errorf("unexpected fonts %v", r.Typography.Fonts)
	}
	if fs := r.Typography.FontSizes; len(fs) != 3 || fs[0].SizePt != 36 || fs[0].Count != 2 {
		t.Errorf("unexpected font sizes %+v", fs)
	}

	if len(r.PlaceholderPatterns.DatePatterns) != 1 || len(r.PlaceholderPatterns.NamePatterns) != 1 {
		t.Errorf("unexpected patterns %+v", r.PlaceholderPatterns)
	}

	if got := r.LayoutCategories[DataVisualization]; got.Count != 1 || got.Slides[0].SlideID != "s3" {
		t.Errorf("unexpected layout summary %+v", got)
	}
	if _, ok := r.LayoutCategories[Mockup]; ok {
		t.Error("empty categories must be omitted")
	}

	recs := r.Recommendations
	if recs[len(recs)-1] != "Workflow: copy_template → delete unused slides → replace_placeholders → add images" {
		t.Errorf("workflow recommendation must be last, got %v", recs)
	}
	joined := strings.Join(recs, "\n")
	for _, want := range []string{
		"Use slides 2 as cover options (found 1 cover variants)",
		"Use slides 1 as section dividers",
		"Replace date placeholder 'MM.DD.YYYY' with actual dates",
		"Replace name placeholder 'Full Name // Job Title' with presenter info",
		"Maintain 'Roboto' as the primary font for consistency",
		"Primary brand colors detected: #1a2b3c, theme:DARK1, #ff0000",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing recommendation %q in:\n%s", want, joined)
		}
	}
}

func TestAnalyze_EmptyDeck(t *testing.T) {
	r := Analyze(&domain.Document{ID: "empty"})
	if r.Overview.Title != "Untitled" || r.Overview.AspectRatio != "Unknown" {
		t.Errorf("unexpected overview %+v", r.Overview)
	}
	if len(r.Recommendations) != 1 {
		t.Errorf("expected only the workflow recommendation, got %v", r.Recommendations)
	}
	if r.Typography.PrimaryFont != nil {
		t.Error("expected no primary font")
	}
	if r.ColorPalette == nil || r.Typography.FontSizes == nil {
		t.Error("empty lists should not be nil")
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := Analyze(sampleDeck())
	b := Analyze(sampleDeck())
	if strings.Join(a.Recommendations, "|") != strings.Join(b.Recommendations, "|") {
		t.Error("recommendations differ between runs")
	}
}

func TestSelectKeySlides(t *testing.T) {
	inventory := []SlideInfo{
		{Index: 0, Category: Content},
		{Index: 1, Category: Cover},
		{Index: 2, Category: Content},
		{Index: 3, Category: Other},
		{Index: 4, Category: SectionDivider},
	}

	got := SelectKeySlides(inventory, 4)
	idx := make([]int, len(got))
	for i, s := range got {
		idx[i] = s.Index
	}
	want := []int{1, 4, 0, 2}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, idx)
		}
	}

	if got := SelectKeySlides(inventory, 1); len(got) != 1 || got[0].Index != 1 {
		t.Errorf("expected only the cover, got %+v", got)
	}
}
