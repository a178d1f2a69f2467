// Package service implements the semantic slide operations. Each call
// fetches what it needs, computes the change locally and submits it as
// a single batch.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"slides/internal/batch"
	"slides/internal/domain"
	"slides/internal/geometry"
	"slides/internal/slidesapi"
	"slides/internal/units"
)

// ErrInvalidInput marks caller arguments rejected before any remote call.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// SlidesAPI is the document service collaborator.
type SlidesAPI interface {
	GetPresentation(ctx context.Context, id string) (*domain.Document, error)
	GetPresentationRaw(ctx context.Context, id, fields string) (json.RawMessage, error)
	GetPage(ctx context.Context, presentationID, pageID string) (*domain.Slide, error)
	GetPageRaw(ctx context.Context, presentationID, pageID string) (json.RawMessage, error)
	BatchUpdate(ctx context.Context, presentationID string, requests []batch.Request) (*batch.Response, error)
	BatchUpdateRaw(ctx context.Context, presentationID string, requests []json.RawMessage) (json.RawMessage, error)
	CreatePresentation(ctx context.Context, title string) (*domain.Document, error)
	Thumbnail(ctx context.Context, presentationID, pageID, mime string) (*slidesapi.Thumbnail, error)
}

// DriveAPI is the storage service collaborator.
type DriveAPI interface {
	CopyFile(ctx context.Context, fileID string, opts slidesapi.CopyOptions) (*slidesapi.File, error)
	ListFiles(ctx context.Context, q slidesapi.FileQuery) (*slidesapi.FileList, error)
}

// SlidesService holds no state between calls besides its collaborators.
type SlidesService struct {
	slides  SlidesAPI
	drive   DriveAPI
	emitter EventEmitter
	layout  *geometry.LayoutEngine
	logger  *slog.Logger
}

func NewSlidesService(slides SlidesAPI, drive DriveAPI, emitter EventEmitter, logger *slog.Logger) *SlidesService {
	if emitter == nil {
		emitter = nopEmitter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SlidesService{
		slides:  slides,
		drive:   drive,
		emitter: emitter,
		layout:  geometry.NewLayoutEngine(),
		logger:  logger,
	}
}

// submit sends requests as one batch. An empty list is not sent.
func (s *SlidesService) submit(ctx context.Context, presentationID string, requests []batch.Request) (*batch.Response, error) {
	if len(requests) == 0 {
		return &batch.Response{PresentationID: presentationID}, nil
	}
	resp, err := s.slides.BatchUpdate(ctx, presentationID, requests)
	if err != nil {
		return nil, fmt.Errorf("batch update %s: %w", presentationID, err)
	}
	s.emitter.Emit(ctx, EventPresentationChanged, presentationID)
	return resp, nil
}

func (s *SlidesService) document(ctx context.Context, presentationID string) (*domain.Document, error) {
	doc, err := s.slides.GetPresentation(ctx, presentationID)
	if err != nil {
		return nil, fmt.Errorf("get presentation %s: %w", presentationID, err)
	}
	return doc, nil
}

// ─────────────────────────────────────────────────────────────
// Result shapes shared by several operations (inches)
// ─────────────────────────────────────────────────────────────

type Position struct {
	XInches float64 `json:"x_inches"`
	YInches float64 `json:"y_inches"`
}

type Dimensions struct {
	WidthInches  float64 `json:"width_inches"`
	HeightInches float64 `json:"height_inches"`
}

func positionOf(x, y int64) Position {
	return Position{XInches: units.ToInches(x), YInches: units.ToInches(y)}
}

func dimensionsOf(w, h int64) Dimensions {
	return Dimensions{WidthInches: units.ToInches(w), HeightInches: units.ToInches(h)}
}
