package locator

import (
	"errors"
	"testing"

	"slides/internal/domain"
)

func textShape(id string, ph domain.Placeholder, runs ...string) domain.Element {
	shape := &domain.TextShape{ShapeType: "TEXT_BOX", Placeholder: ph}
	for _, r := range runs {
		shape.Runs = append(shape.Runs, domain.TextRun{Content: r})
	}
	return domain.Element{
		ID:        id,
		Transform: &domain.Transform{ScaleX: 1, ScaleY: 1, TranslateX: 100, TranslateY: 200},
		Size:      &domain.Size{Width: 300, Height: 400},
		Payload:   shape,
	}
}

func testDocument() *domain.Document {
	return &domain.Document{
		ID: "pres",
		Slides: []domain.Slide{
			{
				ID: "s1",
				Elements: []domain.Element{
					textShape("title", domain.PlaceholderTitle, "Quarterly ", "Review\n"),
					textShape("body1", domain.PlaceholderBody, "First\n"),
					textShape("body2", domain.PlaceholderBody, "Second ", "box\n"),
					{ID: "img", Payload: &domain.Image{SourceURL: "https://example.com/a.png"}},
				},
			},
			{
				ID: "s2",
				Elements: []domain.Element{
					textShape("plain", domain.PlaceholderNone, "free text"),
				},
			},
		},
	}
}

func TestFindByID(t *testing.T) {
	doc := testDocument()

	loc, err := FindByID(doc, "plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Slide.ID != "s2" || loc.Element.ID != "plain" {
		t.Errorf("expected plain on s2, got %s on %s", loc.Element.ID, loc.Slide.ID)
	}

	_, err = FindByID(doc, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByID_ReturnsPointerIntoDocument(t *testing.T) {
	doc := testDocument()
	loc, err := FindByID(doc, "body1")
	if err != nil {
		t.Fatal(err)
	}
	loc.Element.ID = "renamed"
	if doc.Slides[0].Elements[1].ID != "renamed" {
		t.Error("expected location to point into the document")
	}
}

func TestFindMany(t *testing.T) {
	doc := testDocument()
	els, err := FindMany(doc, []string{"body2", "title"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 2 || els[0].ID != "body2" || els[1].ID != "title" {
		t.Errorf("expected input order, got %v", els)
	}

	if _, err := FindMany(doc, []string{"title", "nope"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByCategory_MultipleBodies(t *testing.T) {
	doc := testDocument()
	matches := FindByCategory(&doc.Slides[0], domain.PlaceholderBody)
	if len(matches) != 2 {
		t.Fatalf("expected 2 BODY matches, got %d", len(matches))
	}
	if matches[0].ObjectID != "body1" || matches[0].Text != "First" {
		t.Errorf("unexpected first match %+v", matches[0])
	}
	if matches[1].ObjectID != "body2" || matches[1].Text != "Second box" {
		t.Errorf("unexpected second match %+v", matches[1])
	}
}

func TestFindByCategory_NoMatch(t *testing.T) {
	doc := testDocument()
	if got := FindByCategory(&doc.Slides[1], domain.PlaceholderTitle); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestFindAllPlaceholders(t *testing.T) {
	doc := testDocument()
	all := FindAllPlaceholders(&doc.Slides[0])
	if len(all) != 3 {
		t.Fatalf("expected 3 placeholders, got %d", len(all))
	}
	if all[0].Placeholder != domain.PlaceholderTitle || all[0].Text != "Quarterly Review" {
		t.Errorf("unexpected title match %+v", all[0])
	}
}

func TestExtractBounds(t *testing.T) {
	doc := testDocument()
	b, err := ExtractBounds(&doc.Slides[0].Elements[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != (Bounds{X: 100, Y: 200, Width: 300, Height: 400}) {
		t.Errorf("unexpected bounds %+v", b)
	}

	_, err = ExtractBounds(&doc.Slides[0].Elements[3])
	if !errors.Is(err, ErrMissingGeometry) {
		t.Errorf("expected ErrMissingGeometry, got %v", err)
	}

	onlyTransform := domain.Element{ID: "x", Transform: &domain.Transform{}}
	if _, err := ExtractBounds(&onlyTransform); !errors.Is(err, ErrMissingGeometry) {
		t.Errorf("expected ErrMissingGeometry without size, got %v", err)
	}
}

func TestOccupiedBoxes(t *testing.T) {
	doc := testDocument()
	boxes := OccupiedBoxes(&doc.Slides[0])
	if len(boxes) != 3 {
		t.Errorf("expected 3 boxes (image has no geometry), got %d", len(boxes))
	}
}

func TestSlideTitle(t *testing.T) {
	doc := testDocument()
	if got := SlideTitle(&doc.Slides[0]); got != "Quarterly Review" {
		t.Errorf("expected title, got %q", got)
	}
	if got := SlideTitle(&doc.Slides[1]); got != "" {
		t.Errorf("expected empty title, got %q", got)
	}
}

func TestFindSlide(t *testing.T) {
	doc := testDocument()
	if s, err := FindSlide(doc, "s2"); err != nil || s.ID != "s2" {
		t.Errorf("FindSlide(s2) = %v, %v", s, err)
	}
	if _, err := FindSlide(doc, "s9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
