package service

import (
	"context"

	"slides/internal/analysis"
	"slides/internal/slidesapi"
)

// AnalyzePresentation runs the analysis pass over one fetch of the
// document. With thumbnails, up to maxThumbnails key slides (clamped to
// 1..10, 0 means 5) are rendered; failed renders are skipped.
func (s *SlidesService) AnalyzePresentation(ctx context.Context, presentationID string, thumbnails bool, maxThumbnails int) (*analysis.Report, error) {
	doc, err := s.document(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	report := analysis.Analyze(doc)
	if !thumbnails {
		return report, nil
	}

	if maxThumbnails == 0 {
		maxThumbnails = 5
	}
	maxThumbnails = max(1, min(10, maxThumbnails))

	report.Thumbnails = []analysis.Thumbnail{}
	for _, info := range analysis.SelectKeySlides(report.SlideInventory, maxThumbnails) {
		th, err := s.slides.Thumbnail(ctx, presentationID, info.SlideID, slidesapi.MimePNG)
		if err != nil {
			s.logger.Warn("thumbnail skipped", "presentation_id", presentationID, "slide_id", info.SlideID, "err", err)
			continue
		}
		report.Thumbnails = append(report.Thumbnails, analysis.Thumbnail{
			SlideIndex: info.Index,
			SlideID:    info.SlideID,
			Title:      info.Title,
			Category:   info.Category,
			URL:        th.ContentURL,
		})
	}
	return report, nil
}
