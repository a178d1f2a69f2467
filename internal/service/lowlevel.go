package service

import (
	"context"
	"encoding/json"
	"fmt"
)

// Passthrough operations: raw remote records in, raw records out.

func (s *SlidesService) BatchUpdateRaw(ctx context.Context, presentationID string, requests []json.RawMessage) (json.RawMessage, error) {
	if len(requests) == 0 {
		return nil, invalid("requests must not be empty")
	}
	out, err := s.slides.BatchUpdateRaw(ctx, presentationID, requests)
	if err != nil {
		return nil, fmt.Errorf("batch update %s: %w", presentationID, err)
	}
	s.emitter.Emit(ctx, EventPresentationChanged, presentationID)
	return out, nil
}

func (s *SlidesService) GetPresentationRaw(ctx context.Context, presentationID, fields string) (json.RawMessage, error) {
	return s.slides.GetPresentationRaw(ctx, presentationID, fields)
}

func (s *SlidesService) GetPageRaw(ctx context.Context, presentationID, pageID string) (json.RawMessage, error) {
	return s.slides.GetPageRaw(ctx, presentationID, pageID)
}
