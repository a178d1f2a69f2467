package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"testing"

	"slides/internal/batch"
	"slides/internal/colors"
	"slides/internal/domain"
	"slides/internal/geometry"
	"slides/internal/locator"
	"slides/internal/service"
	"slides/internal/slidesapi"
)

// ─────────────────────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────────────────────

type fakeSlides struct {
	doc       *domain.Document
	newPage   *domain.Slide // served for ids the document lacks
	replies   []batch.Reply
	batchErr  error
	thumbErr  map[string]error
	fetches   int
	batches   [][]batch.Request
	rawBodies [][]json.RawMessage
}

func (f *fakeSlides) GetPresentation(_ context.Context, id string) (*domain.Document, error) {
	f.fetches++
	if f.doc == nil || f.doc.ID != id {
		return nil, &slidesapi.APIError{Op: "presentations.get", StatusCode: 404, Status: "NOT_FOUND", Message: "not found"}
	}
	return f.doc, nil
}

func (f *fakeSlides) GetPresentationRaw(_ context.Context, id, fields string) (json.RawMessage, error) {
	return json.RawMessage(fmt.Sprintf(`{"presentationId":%q,"fields":%q}`, id, fields)), nil
}

func (f *fakeSlides) GetPage(_ context.Context, _, pageID string) (*domain.Slide, error) {
	if f.doc != nil {
		if s := f.doc.SlideByID(pageID); s != nil {
			return s, nil
		}
	}
	if f.newPage != nil {
		page := *f.newPage
		page.ID = pageID
		return &page, nil
	}
	return nil, &slidesapi.APIError{Op: "presentations.pages.get", StatusCode: 404, Message: "not found"}
}

func (f *fakeSlides) GetPageRaw(_ context.Context, _, pageID string) (json.RawMessage, error) {
	return json.RawMessage(`{"objectId":"` + pageID + `"}`), nil
}

func (f *fakeSlides) BatchUpdate(_ context.Context, id string, requests []batch.Request) (*batch.Response, error) {
	f.batches = append(f.batches, requests)
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	return &batch.Response{PresentationID: id, Replies: f.replies}, nil
}

func (f *fakeSlides) BatchUpdateRaw(_ context.Context, _ string, requests []json.RawMessage) (json.RawMessage, error) {
	f.rawBodies = append(f.rawBodies, requests)
	return json.RawMessage(`{"replies":[{}]}`), nil
}

func (f *fakeSlides) CreatePresentation(_ context.Context, title string) (*domain.Document, error) {
	return &domain.Document{ID: "new1", Title: title, Slides: []domain.Slide{{ID: "p"}}}, nil
}

func (f *fakeSlides) Thumbnail(_ context.Context, _, pageID, mime string) (*slidesapi.Thumbnail, error) {
	if err := f.thumbErr[pageID]; err != nil {
		return nil, err
	}
	return &slidesapi.Thumbnail{Width: 800, Height: 450, ContentURL: "https://thumb/" + pageID + "." + mime}, nil
}

type fakeDrive struct {
	copied []slidesapi.CopyOptions
	query  slidesapi.FileQuery
}

func (d *fakeDrive) CopyFile(_ context.Context, fileID string, opts slidesapi.CopyOptions) (*slidesapi.File, error) {
	d.copied = append(d.copied, opts)
	return &slidesapi.File{ID: "copy_of_" + fileID, Name: opts.Name}, nil
}

func (d *fakeDrive) ListFiles(_ context.Context, q slidesapi.FileQuery) (*slidesapi.FileList, error) {
	d.query = q
	return &slidesapi.FileList{
		Files: []slidesapi.File{
			{ID: "f1", Name: "Deck", MimeType: slidesapi.MimeGoogleSlides, Owners: []slidesapi.Owner{{EmailAddress: "ana@example.com"}}},
			{ID: "f2", Name: "Deck.pptx", MimeType: slidesapi.MimePPTX},
		},
		NextPageToken: "tok2",
	}, nil
}

func newService(doc *domain.Document) (*service.SlidesService, *fakeSlides, *fakeDrive, *service.MockEmitter) {
	fs := &fakeSlides{doc: doc}
	fd := &fakeDrive{}
	em := &service.MockEmitter{}
	return service.NewSlidesService(fs, fd, em, nil), fs, fd, em
}

func placeholder(id string, ph domain.Placeholder, text string) domain.Element {
	return domain.Element{
		ID:        id,
		Transform: &domain.Transform{ScaleX: 1, ScaleY: 1},
		Size:      &domain.Size{Width: 1000, Height: 500},
		Payload: &domain.TextShape{
			ShapeType:   "TEXT_BOX",
			Placeholder: ph,
			Runs:        []domain.TextRun{{Content: text}},
		},
	}
}

func box(id string, x, y, w, h int64) domain.Element {
	return domain.Element{
		ID:        id,
		Transform: &domain.Transform{ScaleX: 1, ScaleY: 1, TranslateX: x, TranslateY: y},
		Size:      &domain.Size{Width: w, Height: h},
		Payload:   &domain.TextShape{ShapeType: "RECTANGLE"},
	}
}

func fourSlideDeck() *domain.Document {
	doc := &domain.Document{ID: "p1", PageSize: geometry.DefaultSlideSize}
	for i := 1; i <= 4; i++ {
		id := fmt.Sprintf("s%d", i)
		doc.Slides = append(doc.Slides, domain.Slide{ID: id, Elements: []domain.Element{
			placeholder(id+"_title", domain.PlaceholderTitle, "Old title"),
		}})
	}
	return doc
}

// ─────────────────────────────────────────────────────────────
// Content
// ─────────────────────────────────────────────────────────────

func TestUpdatePresentationContent_PartialSuccessSingleBatch(t *testing.T) {
	svc, fs, _, em := newService(fourSlideDeck())

	var slides []service.SlideContent
	for _, id := range []string{"s1", "s2", "zz", "s3", "s4"} {
		slides = append(slides, service.SlideContent{SlideID: id, Content: map[string]string{"TITLE": "New " + id}})
	}

	res, err := svc.UpdatePresentationContent(context.Background(), "p1", slides)
	if err != nil {
		t.Fatalf("UpdatePresentationContent: %v", err)
	}
	if len(fs.batches) != 1 {
		t.Fatalf("expected exactly one batch call, got %d", len(fs.batches))
	}
	if fs.fetches != 1 {
		t.Errorf("expected one document fetch, got %d", fs.fetches)
	}
	if len(fs.batches[0]) != 8 {
		t.Errorf("expected 8 requests (4 delete+insert pairs), got %d", len(fs.batches[0]))
	}
	if res.SlidesUpdated != 4 || res.PlaceholdersUpdated != 4 {
		t.Errorf("expected 4 slides and 4 placeholders updated, got %+v", res)
	}
	if !slices.Equal(res.Errors, []string{"Slide zz not found in presentation"}) {
		t.Errorf("expected missing slide in errors, got %v", res.Errors)
	}
	if len(em.Events) != 1 || em.Events[0].Event != service.EventPresentationChanged || em.Events[0].Data != "p1" {
		t.Errorf("expected one change event, got %+v", em.Events)
	}
}

func TestUpdatePresentationContent_ReportsMissingPlaceholders(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())

	res, err := svc.UpdatePresentationContent(context.Background(), "p1", []service.SlideContent{
		{SlideID: "s1", Content: map[string]string{"BODY": "x"}},
		{Content: map[string]string{"TITLE": "no id"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(fs.batches) != 0 {
		t.Errorf("expected no batch when nothing matched, got %d", len(fs.batches))
	}
	if !slices.Equal(res.NotFound["s1"], []string{"BODY"}) {
		t.Errorf("expected BODY not found on s1, got %v", res.NotFound)
	}
	if !slices.Equal(res.Errors, []string{"Missing slide_id in slide entry"}) {
		t.Errorf("unexpected errors %v", res.Errors)
	}
}

func TestUpdateSlideContent(t *testing.T) {
	doc := fourSlideDeck()
	doc.Slides[0].Elements = append(doc.Slides[0].Elements,
		placeholder("b1", domain.PlaceholderBody, "one"),
		placeholder("b2", domain.PlaceholderBody, "two"),
	)
	svc, fs, _, _ := newService(doc)

	res, err := svc.UpdateSlideContent(context.Background(), "p1", "s1", map[string]string{
		"body":     "Point 1\nPoint 2",
		"SUBTITLE": "nope",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Updated["BODY"] || len(res.Updated) != 1 {
		t.Errorf("expected BODY updated, got %v", res.Updated)
	}
	if !slices.Equal(res.NotFound, []string{"SUBTITLE"}) {
		t.Errorf("expected SUBTITLE not found, got %v", res.NotFound)
	}
	reqs := fs.batches[0]
	if len(reqs) != 4 || reqs[1].InsertText.ObjectID != "b1" || reqs[3].InsertText.Text != "Point 1\nPoint 2" {
		t.Errorf("expected replacements for both BODY boxes, got %+v", reqs)
	}
}

func TestApplyTextStyle(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())
	size := 24.0
	color := "#FF0000"

	res, err := svc.ApplyTextStyle(context.Background(), "p1", service.StyleInput{
		Placeholder: "title",
		SlideIDs:    []string{"s2", "s3"},
		FontSizePt:  &size,
		Color:       &color,
		Alignment:   "center",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.ElementsStyled != 2 || !slices.Equal(res.SlidesAffected, []string{"s2", "s3"}) {
		t.Errorf("unexpected result %+v", res)
	}
	reqs := fs.batches[0]
	if len(reqs) != 4 || reqs[0].UpdateTextStyle.Fields != "fontSize,foregroundColor" || reqs[1].UpdateParagraphStyle.Style.Alignment != "CENTER" {
		t.Errorf("unexpected requests %+v", reqs)
	}
}

func TestApplyTextStyle_ValidatesBeforeFetching(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())
	bad := "#GG0000"

	_, err := svc.ApplyTextStyle(context.Background(), "p1", service.StyleInput{Placeholder: "TITLE", Color: &bad})
	if !errors.Is(err, colors.ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
	_, err = svc.ApplyTextStyle(context.Background(), "p1", service.StyleInput{Placeholder: "TITLE", Alignment: "diagonal"})
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if fs.fetches != 0 || len(fs.batches) != 0 {
		t.Errorf("expected no remote calls, got %d fetches and %d batches", fs.fetches, len(fs.batches))
	}
}

func TestApplyTextStyle_EmptySlideListStylesNothing(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())
	bold := true

	res, err := svc.ApplyTextStyle(context.Background(), "p1", service.StyleInput{
		Placeholder: "TITLE",
		SlideIDs:    []string{},
		Bold:        &bold,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.ElementsStyled != 0 || len(res.SlidesAffected) != 0 {
		t.Errorf("expected nothing styled, got %+v", res)
	}
	if len(fs.batches) != 0 {
		t.Errorf("expected no batch, got %d", len(fs.batches))
	}

	res, err = svc.ApplyTextStyle(context.Background(), "p1", service.StyleInput{Placeholder: "TITLE", Bold: &bold})
	if err != nil {
		t.Fatal(err)
	}
	if res.ElementsStyled != 4 {
		t.Errorf("expected every title styled when no list is given, got %+v", res)
	}
}

func TestUpdateContent_RejectsKeysNamingSamePlaceholder(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())

	_, err := svc.UpdateSlideContent(context.Background(), "p1", "s1", map[string]string{
		"TITLE":   "A",
		" title ": "B",
	})
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	_, err = svc.UpdatePresentationContent(context.Background(), "p1", []service.SlideContent{
		{SlideID: "s1", Content: map[string]string{"BODY": "a", "body": "b"}},
	})
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if fs.fetches != 0 || len(fs.batches) != 0 {
		t.Errorf("expected no remote calls, got %d fetches and %d batches", fs.fetches, len(fs.batches))
	}
}

// ─────────────────────────────────────────────────────────────
// Templates
// ─────────────────────────────────────────────────────────────

func TestReplacePlaceholders(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())
	fs.replies = []batch.Reply{
		{ReplaceAllText: &batch.Occurrences{OccurrencesChanged: 2}},
		{ReplaceAllText: &batch.Occurrences{OccurrencesChanged: 0}},
	}

	res, err := svc.ReplacePlaceholders(context.Background(), "p1", map[string]string{
		"{{name}}": "Acme",
		"{{date}}": "2024",
	})
	if err != nil {
		t.Fatal(err)
	}
	reqs := fs.batches[0]
	if reqs[0].ReplaceAllText.ContainsText.Text != "{{date}}" || reqs[1].ReplaceAllText.ContainsText.Text != "{{name}}" {
		t.Errorf("expected keys in sorted order, got %+v", reqs)
	}
	if res.Replacements["{{date}}"] != 2 || res.Replacements["{{name}}"] != 0 || res.Total != 2 {
		t.Errorf("unexpected counts %+v", res)
	}
}

func TestReplacePlaceholderWithImage(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())
	fs.replies = []batch.Reply{{ReplaceAllShapesWithImage: &batch.Occurrences{OccurrencesChanged: 3}}}

	res, err := svc.ReplacePlaceholderWithImage(context.Background(), "p1", "{{logo}}", "https://img/logo.png", "")
	if err != nil {
		t.Fatal(err)
	}
	if res.ShapesReplaced != 3 || fs.batches[0][0].ReplaceAllShapesWithImage.ReplaceMethod != batch.CenterInside {
		t.Errorf("unexpected result %+v", res)
	}
	if _, err := svc.ReplacePlaceholderWithImage(context.Background(), "p1", "x", "u", "STRETCH"); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCopyTemplate(t *testing.T) {
	svc, _, fd, _ := newService(nil)

	res, err := svc.CopyTemplate(context.Background(), "tpl", "Q3 deck", "folder", true)
	if err != nil {
		t.Fatal(err)
	}
	if res.PresentationID != "copy_of_tpl" || res.URL != "https://docs.google.com/presentation/d/copy_of_tpl" || !res.Converted {
		t.Errorf("unexpected result %+v", res)
	}
	if fd.copied[0] != (slidesapi.CopyOptions{Name: "Q3 deck", ParentID: "folder", MimeType: slidesapi.MimeGoogleSlides}) {
		t.Errorf("unexpected copy options %+v", fd.copied[0])
	}
}

func TestSearchPresentations(t *testing.T) {
	svc, _, fd, _ := newService(nil)

	res, err := svc.SearchPresentations(context.Background(), service.SearchQuery{Query: "Deck", MaxResults: 500})
	if err != nil {
		t.Fatal(err)
	}
	if fd.query.PageSize != 100 || fd.query.NameContains != "Deck" || len(fd.query.MimeTypes) != 2 || fd.query.IncludeTrashed {
		t.Errorf("unexpected query %+v", fd.query)
	}
	if res.TotalReturned != 2 || res.NextPageToken != "tok2" || res.Presentations[0].Owner != "ana@example.com" {
		t.Errorf("unexpected result %+v", res)
	}
}

// ─────────────────────────────────────────────────────────────
// Positioning
// ─────────────────────────────────────────────────────────────

func TestPositionElement_CenterAndResize(t *testing.T) {
	doc := &domain.Document{ID: "p1", Slides: []domain.Slide{{ID: "s1", Elements: []domain.Element{
		box("e1", 0, 0, 1828800, 914400),
	}}}}
	svc, fs, _, _ := newService(doc)

	res, err := svc.PositionElement(context.Background(), "p1", service.PositionInput{
		ElementID:       "e1",
		HorizontalAlign: "center",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Position.XInches != 4 || res.Position.YInches != 0 {
		t.Errorf("expected x=4in y=0, got %+v", res.Position)
	}
	if tr := fs.batches[0][0].UpdatePageElementTransform.Transform; tr.TranslateX != 3657600 || tr.ScaleX != 1 {
		t.Errorf("unexpected transform %+v", tr)
	}

	width := 4.0
	x := 0.5
	_, err = svc.PositionElement(context.Background(), "p1", service.PositionInput{ElementID: "e1", Width: &width, X: &x, HorizontalAlign: "right"})
	if err != nil {
		t.Fatal(err)
	}
	reqs := fs.batches[1]
	if len(reqs) != 2 {
		t.Fatalf("expected move then resize, got %d requests", len(reqs))
	}
	resize := reqs[1].UpdatePageElementTransform.Transform
	if resize.ScaleX != 2 || resize.ScaleY != 1 || resize.TranslateX != 457200 {
		t.Errorf("expected explicit x and 2x scale, got %+v", resize)
	}
}

func TestPositionElement_Errors(t *testing.T) {
	doc := &domain.Document{ID: "p1", Slides: []domain.Slide{{ID: "s1", Elements: []domain.Element{
		{ID: "img", Payload: &domain.Image{}},
	}}}}
	svc, fs, _, _ := newService(doc)
	ctx := context.Background()

	if _, err := svc.PositionElement(ctx, "p1", service.PositionInput{ElementID: "img"}); !errors.Is(err, locator.ErrMissingGeometry) {
		t.Errorf("expected ErrMissingGeometry, got %v", err)
	}
	if _, err := svc.PositionElement(ctx, "p1", service.PositionInput{ElementID: "ghost"}); !errors.Is(err, locator.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.PositionElement(ctx, "p1", service.PositionInput{ElementID: "img", HorizontalAlign: "sideways"}); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.PositionElement(ctx, "missing", service.PositionInput{ElementID: "img"}); !errors.Is(err, slidesapi.ErrRemoteRequestFailed) {
		t.Errorf("expected ErrRemoteRequestFailed, got %v", err)
	}
	if len(fs.batches) != 0 {
		t.Errorf("expected no batch on failure, got %d", len(fs.batches))
	}
}

func TestDistributeElements_Even(t *testing.T) {
	doc := &domain.Document{ID: "p1", PageSize: domain.Size{Width: 4000, Height: 1000}, Slides: []domain.Slide{{ID: "s1", Elements: []domain.Element{
		box("c", 0, 30, 1000, 10),
		box("a", 0, 10, 1000, 10),
		box("b", 0, 20, 1000, 10),
	}}}}
	svc, fs, _, _ := newService(doc)

	res, err := svc.DistributeElements(context.Background(), "p1", service.DistributeInput{
		ElementIDs: []string{"a", "b", "c"},
		Direction:  "horizontal",
		Even:       true,
	})
	if err != nil {
		t.Fatal(err)
	}
	var xs []int64
	for _, r := range fs.batches[0] {
		xs = append(xs, r.UpdatePageElementTransform.Transform.TranslateX)
	}
	if !slices.Equal(xs, []int64{250, 1500, 2750}) {
		t.Errorf("expected 250, 1500, 2750, got %v", xs)
	}
	if fs.batches[0][0].UpdatePageElementTransform.ObjectID != "a" || fs.batches[0][2].UpdatePageElementTransform.Transform.TranslateY != 30 {
		t.Errorf("expected caller order with y kept, got %+v", fs.batches[0])
	}
	if len(res.Elements) != 3 || res.Elements[1].ElementID != "b" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestDistributeElements_InsufficientElements(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())

	_, err := svc.DistributeElements(context.Background(), "p1", service.DistributeInput{ElementIDs: []string{"s1_title"}, Direction: "vertical", Even: true})
	if !errors.Is(err, geometry.ErrInsufficientElements) {
		t.Errorf("expected ErrInsufficientElements, got %v", err)
	}
	if fs.fetches != 0 {
		t.Errorf("expected no fetch, got %d", fs.fetches)
	}
}

func TestAlignElements_ToSlideRight(t *testing.T) {
	doc := &domain.Document{ID: "p1", Slides: []domain.Slide{{ID: "s1", Elements: []domain.Element{
		box("a", 0, 100, 914400, 10),
		box("b", 500, 200, 1828800, 10),
	}}}}
	svc, fs, _, _ := newService(doc)

	res, err := svc.AlignElements(context.Background(), "p1", []string{"a", "b"}, "right", "slide")
	if err != nil {
		t.Fatal(err)
	}
	if res.Elements[0].XInches != 9 || res.Elements[1].XInches != 8 {
		t.Errorf("expected right edges at 10in, got %+v", res.Elements)
	}
	if fs.batches[0][1].UpdatePageElementTransform.Transform.TranslateY != 200 {
		t.Errorf("expected y unchanged")
	}
	if _, err := svc.AlignElements(context.Background(), "p1", nil, "left", ""); !errors.Is(err, geometry.ErrInsufficientElements) {
		t.Errorf("expected ErrInsufficientElements for no elements, got %v", err)
	}
}

// ─────────────────────────────────────────────────────────────
// Creation
// ─────────────────────────────────────────────────────────────

func TestCreateSlide_PrefersDocumentLayout(t *testing.T) {
	doc := fourSlideDeck()
	doc.Layouts = []domain.Layout{{ID: "L0", Name: "BLANK"}, {ID: "L1", Name: "TITLE_AND_BODY"}}
	svc, fs, _, _ := newService(doc)
	fs.newPage = &domain.Slide{Elements: []domain.Element{
		placeholder("t1", domain.PlaceholderTitle, ""),
		placeholder("b1", domain.PlaceholderBody, ""),
		placeholder("b2", domain.PlaceholderBody, ""),
	}}
	idx := 1

	res, err := svc.CreateSlide(context.Background(), "p1", "title_and_body", &idx)
	if err != nil {
		t.Fatal(err)
	}
	cs := fs.batches[0][0].CreateSlide
	if cs.SlideLayoutReference.LayoutID != "L1" || cs.SlideLayoutReference.PredefinedLayout != "" || *cs.InsertionIndex != 1 {
		t.Errorf("expected document layout L1 at index 1, got %+v", cs)
	}
	if res.SlideID != cs.ObjectID {
		t.Errorf("expected reported id %q to match request id %q", res.SlideID, cs.ObjectID)
	}
	want := map[string]string{"TITLE": "t1", "BODY": "b1"}
	if len(res.PlaceholderIDs) != 2 || res.PlaceholderIDs["TITLE"] != want["TITLE"] || res.PlaceholderIDs["BODY"] != want["BODY"] {
		t.Errorf("expected %v, got %v", want, res.PlaceholderIDs)
	}
}

func TestCreateSlide_FallsBackToPredefinedLayout(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())
	fs.newPage = &domain.Slide{}

	if _, err := svc.CreateSlide(context.Background(), "p1", "", nil); err != nil {
		t.Fatal(err)
	}
	cs := fs.batches[0][0].CreateSlide
	if cs.SlideLayoutReference.PredefinedLayout != "BLANK" || cs.InsertionIndex != nil {
		t.Errorf("expected predefined BLANK appended, got %+v", cs)
	}

	if _, err := svc.CreateSlide(context.Background(), "p1", "COMIC", nil); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreatePresentation(t *testing.T) {
	svc, _, _, _ := newService(nil)

	res, err := svc.CreatePresentation(context.Background(), "Roadmap")
	if err != nil {
		t.Fatal(err)
	}
	if res.PresentationID != "new1" || res.SlideCount != 1 || res.URL != "https://docs.google.com/presentation/d/new1" {
		t.Errorf("unexpected result %+v", res)
	}
	if _, err := svc.CreatePresentation(context.Background(), "  "); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAddTextBox_Defaults(t *testing.T) {
	svc, fs, _, em := newService(fourSlideDeck())

	res, err := svc.AddTextBox(context.Background(), "p1", service.TextBoxInput{SlideID: "s1", Text: "Hello"})
	if err != nil {
		t.Fatal(err)
	}
	if fs.fetches != 0 {
		t.Errorf("explicit placement should not fetch the document, got %d fetches", fs.fetches)
	}
	if res.Position != (service.Position{XInches: 1, YInches: 1}) || res.Size != (service.Dimensions{WidthInches: 4, HeightInches: 1}) {
		t.Errorf("unexpected geometry %+v", res)
	}

	reqs := fs.batches[0]
	kinds := make([]string, len(reqs))
	for i, r := range reqs {
		kinds[i] = r.Kind()
	}
	if !slices.Equal(kinds, []string{"createShape", "insertText", "updateTextStyle", "updateParagraphStyle"}) {
		t.Fatalf("unexpected request order %v", kinds)
	}
	style := reqs[2].UpdateTextStyle
	if style.ObjectID != res.ElementID || style.Style.FontFamily != "Arial" || style.Style.FontSize.Magnitude != 18 {
		t.Errorf("unexpected style %+v", style)
	}
	if reqs[3].UpdateParagraphStyle.Style.Alignment != "START" {
		t.Errorf("expected LEFT to map to START, got %q", reqs[3].UpdateParagraphStyle.Style.Alignment)
	}
	if len(em.Events) != 1 {
		t.Errorf("expected one change event, got %d", len(em.Events))
	}
}

func TestAddTextBox_InvalidColorMakesNoRemoteCall(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())

	_, err := svc.AddTextBox(context.Background(), "p1", service.TextBoxInput{SlideID: "s1", Text: "x", Color: "#12345"})
	if !errors.Is(err, colors.ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
	if fs.fetches != 0 || len(fs.batches) != 0 {
		t.Errorf("expected no remote calls")
	}
}

func TestAddTextBox_Aligned(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())
	w := 2.0

	res, err := svc.AddTextBox(context.Background(), "p1", service.TextBoxInput{
		SlideID:   "s2",
		Text:      "Centered",
		Placement: service.Placement{Width: &w, HorizontalAlign: "center", VerticalAlign: "top"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if fs.fetches != 1 {
		t.Errorf("alignment needs the page size, expected one fetch, got %d", fs.fetches)
	}
	if res.Position != (service.Position{XInches: 4, YInches: 0}) {
		t.Errorf("expected centered at top, got %+v", res.Position)
	}
}

func TestAddImage_AutoPlace(t *testing.T) {
	doc := &domain.Document{ID: "p1", Slides: []domain.Slide{{ID: "s1", Elements: []domain.Element{
		box("logo", 0, 0, 914400, 914400),
	}}}}
	svc, fs, _, _ := newService(doc)
	w, h := 1.0, 1.0

	res, err := svc.AddImage(context.Background(), "p1", "s1", "https://img/x.png", service.Placement{Width: &w, Height: &h, AutoPlace: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.AutoPlaced {
		t.Fatal("expected auto placement")
	}
	// First grid column clear of the 1in box plus 0.1in padding is 1.25in.
	if res.Position != (service.Position{XInches: 1.25, YInches: 0}) {
		t.Errorf("unexpected position %+v", res.Position)
	}
	img := fs.batches[0][0].CreateImage
	if img.URL != "https://img/x.png" || img.ElementProperties.PageObjectID != "s1" || img.ElementProperties.Transform.TranslateX != 1143000 {
		t.Errorf("unexpected request %+v", img)
	}

	if _, err := svc.AddImage(context.Background(), "p1", "nope", "https://img/x.png", service.Placement{AutoPlace: true}); !errors.Is(err, locator.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown slide, got %v", err)
	}
}

func TestAddShape(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())
	alpha := 0.5

	_, err := svc.AddShape(context.Background(), "p1", service.ShapeInput{
		SlideID:      "s1",
		ShapeType:    "ellipse",
		FillColor:    "#336699",
		FillAlpha:    &alpha,
		OutlineColor: service.NoOutline,
	})
	if err != nil {
		t.Fatal(err)
	}
	reqs := fs.batches[0]
	if len(reqs) != 2 || reqs[0].CreateShape.ShapeType != "ELLIPSE" {
		t.Fatalf("unexpected requests %+v", reqs)
	}
	props := reqs[1].UpdateShapeProperties
	if props.Fields != "shapeBackgroundFill" || props.ShapeProperties.Outline != nil || *props.ShapeProperties.ShapeBackgroundFill.SolidFill.Alpha != 0.5 {
		t.Errorf("expected fill only, got %+v", props)
	}

	tooOpaque := 1.5
	if _, err := svc.AddShape(context.Background(), "p1", service.ShapeInput{SlideID: "s1", ShapeType: "RECTANGLE", FillColor: "#000000", FillAlpha: &tooOpaque}); !errors.Is(err, colors.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if len(fs.batches) != 1 {
		t.Errorf("rejected shape must not reach the API")
	}
}

func TestAddShape_DefaultOutline(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())

	if _, err := svc.AddShape(context.Background(), "p1", service.ShapeInput{SlideID: "s1", ShapeType: "RECTANGLE"}); err != nil {
		t.Fatal(err)
	}
	props := fs.batches[0][1].UpdateShapeProperties
	if props.Fields != "outline" || props.ShapeProperties.Outline.Weight.Magnitude != 1 {
		t.Errorf("expected 1pt default outline, got %+v", props)
	}
}

// ─────────────────────────────────────────────────────────────
// Analysis and utility
// ─────────────────────────────────────────────────────────────

func TestAnalyzePresentation_SkipsFailedThumbnails(t *testing.T) {
	svc, fs, _, _ := newService(fourSlideDeck())
	fs.thumbErr = map[string]error{"s1": &slidesapi.APIError{Op: "thumbnail", StatusCode: 500, Message: "boom"}}

	report, err := svc.AnalyzePresentation(context.Background(), "p1", true, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.SlideInventory) != 4 {
		t.Errorf("expected 4 slides in inventory, got %d", len(report.SlideInventory))
	}
	if len(report.Thumbnails) != 2 {
		t.Fatalf("expected 2 of 3 thumbnails, got %+v", report.Thumbnails)
	}
	for _, th := range report.Thumbnails {
		if th.SlideID == "s1" || th.URL == "" {
			t.Errorf("unexpected thumbnail %+v", th)
		}
	}

	plain, err := svc.AnalyzePresentation(context.Background(), "p1", false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if plain.Thumbnails != nil {
		t.Errorf("expected no thumbnails section, got %+v", plain.Thumbnails)
	}
}

func TestListSlides(t *testing.T) {
	svc, _, _, _ := newService(fourSlideDeck())

	got, err := svc.ListSlides(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 || got[2] != (service.SlideSummary{SlideID: "s3", Index: 2, Title: "Old title", ElementCount: 1}) {
		t.Errorf("unexpected summaries %+v", got)
	}
}

func TestGetElementInfo(t *testing.T) {
	svc, _, _, _ := newService(fourSlideDeck())

	info, err := svc.GetElementInfo(context.Background(), "p1", "s2_title")
	if err != nil {
		t.Fatal(err)
	}
	if info["slide_id"] != "s2" || info["type"] != "SHAPE" || info["placeholder_type"] != "TITLE" || info["text"] != "Old title" {
		t.Errorf("unexpected info %v", info)
	}
	if _, err := svc.GetElementInfo(context.Background(), "p1", "ghost"); !errors.Is(err, locator.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestExportThumbnail(t *testing.T) {
	svc, _, _, _ := newService(fourSlideDeck())

	res, err := svc.ExportThumbnail(context.Background(), "p1", "s1", "jpeg")
	if err != nil {
		t.Fatal(err)
	}
	if res.ContentURL != "https://thumb/s1.JPEG" || res.Width != 800 {
		t.Errorf("unexpected result %+v", res)
	}
	if _, err := svc.ExportThumbnail(context.Background(), "p1", "s1", "GIF"); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

// ─────────────────────────────────────────────────────────────
// Low level and errors
// ─────────────────────────────────────────────────────────────

func TestBatchUpdateRaw(t *testing.T) {
	svc, fs, _, em := newService(fourSlideDeck())

	if _, err := svc.BatchUpdateRaw(context.Background(), "p1", nil); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty list, got %v", err)
	}
	out, err := svc.BatchUpdateRaw(context.Background(), "p1", []json.RawMessage{json.RawMessage(`{"deleteObject":{"objectId":"x"}}`)})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"replies":[{}]}` || len(fs.rawBodies) != 1 || len(em.Events) != 1 {
		t.Errorf("unexpected passthrough: %s, %d calls, %d events", out, len(fs.rawBodies), len(em.Events))
	}
}

func TestRemoteFailureIsPropagated(t *testing.T) {
	svc, fs, _, em := newService(fourSlideDeck())
	fs.batchErr = &slidesapi.APIError{Op: "presentations.batchUpdate", StatusCode: 400, Status: "INVALID_ARGUMENT", Message: "bad request"}

	_, err := svc.ReplacePlaceholders(context.Background(), "p1", map[string]string{"{{x}}": "y"})
	if !errors.Is(err, slidesapi.ErrRemoteRequestFailed) {
		t.Fatalf("expected ErrRemoteRequestFailed, got %v", err)
	}
	var apiErr *slidesapi.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		t.Errorf("expected the API error to be reachable, got %v", err)
	}
	if len(em.Events) != 0 {
		t.Errorf("failed batch must not emit a change event")
	}
}
