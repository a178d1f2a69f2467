package service

import (
	"context"
	"fmt"
	"slices"

	"slides/internal/analysis"
	"slides/internal/batch"
	"slides/internal/slidesapi"
)

type CopyResult struct {
	PresentationID string `json:"presentation_id"`
	URL            string `json:"url"`
	Converted      bool   `json:"converted"`
}

// CopyTemplate copies templateID to a new file. convert turns a PPTX
// source into a native presentation.
func (s *SlidesService) CopyTemplate(ctx context.Context, templateID, newName, folderID string, convert bool) (*CopyResult, error) {
	if templateID == "" || newName == "" {
		return nil, invalid("template_id and new_name are required")
	}
	opts := slidesapi.CopyOptions{Name: newName, ParentID: folderID}
	if convert {
		opts.MimeType = slidesapi.MimeGoogleSlides
	}
	f, err := s.drive.CopyFile(ctx, templateID, opts)
	if err != nil {
		return nil, fmt.Errorf("copy template %s: %w", templateID, err)
	}
	s.logger.Info("template copied", "template_id", templateID, "presentation_id", f.ID, "converted", convert)
	return &CopyResult{PresentationID: f.ID, URL: analysis.PresentationURL(f.ID), Converted: convert}, nil
}

type ReplaceResult struct {
	Replacements map[string]int `json:"replacements"`
	Total        int            `json:"total"`
}

// ReplacePlaceholders issues one replace-all-text per key, in sorted key
// order, and reports the occurrences each one changed.
func (s *SlidesService) ReplacePlaceholders(ctx context.Context, presentationID string, replacements map[string]string) (*ReplaceResult, error) {
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		if k == "" {
			return nil, invalid("placeholder text must not be empty")
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	requests := make([]batch.Request, len(keys))
	for i, k := range keys {
		requests[i] = batch.ReplaceAllText(k, replacements[k])
	}
	resp, err := s.submit(ctx, presentationID, requests)
	if err != nil {
		return nil, err
	}

	res := &ReplaceResult{Replacements: make(map[string]int, len(keys))}
	for i, k := range keys {
		n := resp.Occurrences(i)
		res.Replacements[k] = n
		res.Total += n
	}
	return res, nil
}

type ImageReplaceResult struct {
	ShapesReplaced int `json:"shapes_replaced"`
}

// ReplacePlaceholderWithImage swaps every shape containing text for the
// image. method defaults to CENTER_INSIDE.
func (s *SlidesService) ReplacePlaceholderWithImage(ctx context.Context, presentationID, text, imageURL, method string) (*ImageReplaceResult, error) {
	switch method {
	case "":
		method = batch.CenterInside
	case batch.CenterInside, batch.CenterCrop:
	default:
		return nil, invalid("replace_method must be %s or %s, got %q", batch.CenterInside, batch.CenterCrop, method)
	}
	if text == "" || imageURL == "" {
		return nil, invalid("placeholder_text and image_url are required")
	}

	resp, err := s.submit(ctx, presentationID, []batch.Request{batch.ReplaceAllShapesWithImage(text, imageURL, method)})
	if err != nil {
		return nil, err
	}
	return &ImageReplaceResult{ShapesReplaced: resp.Occurrences(0)}, nil
}

type SearchQuery struct {
	Query      string
	FolderID   string
	MaxResults int // 0 means 20
	PageToken  string
}

type PresentationFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	CreatedTime  string `json:"createdTime,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	URL          string `json:"url"`
	Owner        string `json:"owner,omitempty"`
}

type SearchResult struct {
	Presentations []PresentationFile `json:"presentations"`
	NextPageToken string             `json:"next_page_token,omitempty"`
	TotalReturned int                `json:"total_returned"`
}

// SearchPresentations lists native presentations and PPTX files that
// are not trashed.
func (s *SlidesService) SearchPresentations(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	if q.MaxResults == 0 {
		q.MaxResults = 20
	}
	list, err := s.drive.ListFiles(ctx, slidesapi.FileQuery{
		NameContains: q.Query,
		MimeTypes:    []string{slidesapi.MimeGoogleSlides, slidesapi.MimePPTX},
		FolderID:     q.FolderID,
		PageSize:     slidesapi.ClampPageSize(q.MaxResults),
		PageToken:    q.PageToken,
	})
	if err != nil {
		return nil, fmt.Errorf("search presentations: %w", err)
	}

	res := &SearchResult{Presentations: make([]PresentationFile, 0, len(list.Files)), NextPageToken: list.NextPageToken}
	for _, f := range list.Files {
		p := PresentationFile{
			ID:           f.ID,
			Name:         f.Name,
			MimeType:     f.MimeType,
			CreatedTime:  f.CreatedTime,
			ModifiedTime: f.ModifiedTime,
			URL:          analysis.PresentationURL(f.ID),
		}
		if len(f.Owners) > 0 {
			p.Owner = f.Owners[0].EmailAddress
		}
		res.Presentations = append(res.Presentations, p)
	}
	res.TotalReturned = len(res.Presentations)
	return res, nil
}
