package slidesapi

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/slides/v1"

	"slides/internal/batch"
	"slides/internal/domain"
)

// GetPresentation fetches the whole presentation.
func (c *Client) GetPresentation(ctx context.Context, id string) (*domain.Document, error) {
	p, err := c.slides.Presentations.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr("presentations.get", err)
	}
	return presentationToDomain(p), nil
}

// GetPresentationRaw returns the presentation record as JSON. fields is
// an optional field mask.
func (c *Client) GetPresentationRaw(ctx context.Context, id, fields string) (json.RawMessage, error) {
	call := c.slides.Presentations.Get(id).Context(ctx)
	if fields != "" {
		call = call.Fields(googleapi.Field(fields))
	}
	p, err := call.Do()
	if err != nil {
		return nil, wrapErr("presentations.get", err)
	}
	return json.Marshal(p)
}

func (c *Client) GetPage(ctx context.Context, presentationID, pageID string) (*domain.Slide, error) {
	p, err := c.slides.Presentations.Pages.Get(presentationID, pageID).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr("presentations.pages.get", err)
	}
	s := pageToDomain(p)
	return &s, nil
}

func (c *Client) GetPageRaw(ctx context.Context, presentationID, pageID string) (json.RawMessage, error) {
	p, err := c.slides.Presentations.Pages.Get(presentationID, pageID).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr("presentations.pages.get", err)
	}
	return json.Marshal(p)
}

// BatchUpdate submits requests as one ordered batch. The remote applies
// them in order and returns one reply per request.
func (c *Client) BatchUpdate(ctx context.Context, presentationID string, requests []batch.Request) (*batch.Response, error) {
	const op = "presentations.batchUpdate"

	reqs := make([]*slides.Request, len(requests))
	for i, r := range requests {
		reqs[i] = new(slides.Request)
		if err := remarshal(op, r, reqs[i]); err != nil {
			return nil, err
		}
		keepZeroAlpha(r, reqs[i])
	}

	resp, err := c.slides.Presentations.BatchUpdate(presentationID, &slides.BatchUpdatePresentationRequest{
		Requests: reqs,
	}).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr(op, err)
	}

	var out batch.Response
	if err := remarshal(op, resp, &out); err != nil {
		return nil, err
	}
	c.logger.Info("batch applied", "presentation_id", presentationID, "requests", len(requests))
	return &out, nil
}

// keepZeroAlpha marks an explicit alpha of 0 for sending; the generated
// types omit zero values otherwise and the remote would apply 1.
func keepZeroAlpha(src batch.Request, dst *slides.Request) {
	usp := src.UpdateShapeProperties
	if usp == nil || dst.UpdateShapeProperties == nil || dst.UpdateShapeProperties.ShapeProperties == nil {
		return
	}
	sp := dst.UpdateShapeProperties.ShapeProperties
	if f := usp.ShapeProperties.ShapeBackgroundFill; f != nil && isZero(f.SolidFill.Alpha) &&
		sp.ShapeBackgroundFill != nil && sp.ShapeBackgroundFill.SolidFill != nil {
		sp.ShapeBackgroundFill.SolidFill.ForceSendFields = append(sp.ShapeBackgroundFill.SolidFill.ForceSendFields, "Alpha")
	}
	if o := usp.ShapeProperties.Outline; o != nil && isZero(o.OutlineFill.SolidFill.Alpha) &&
		sp.Outline != nil && sp.Outline.OutlineFill != nil && sp.Outline.OutlineFill.SolidFill != nil {
		sp.Outline.OutlineFill.SolidFill.ForceSendFields = append(sp.Outline.OutlineFill.SolidFill.ForceSendFields, "Alpha")
	}
}

func isZero(p *float64) bool { return p != nil && *p == 0 }

// BatchUpdateRaw submits caller-built request records. Each record must
// be a request kind the Slides API defines.
func (c *Client) BatchUpdateRaw(ctx context.Context, presentationID string, requests []json.RawMessage) (json.RawMessage, error) {
	const op = "presentations.batchUpdate"

	reqs := make([]*slides.Request, len(requests))
	for i, raw := range requests {
		reqs[i] = new(slides.Request)
		if err := json.Unmarshal(raw, reqs[i]); err != nil {
			return nil, fmt.Errorf("%s: request %d: %w", op, i, err)
		}
	}
	resp, err := c.slides.Presentations.BatchUpdate(presentationID, &slides.BatchUpdatePresentationRequest{
		Requests: reqs,
	}).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return json.Marshal(resp)
}

// CreatePresentation creates an empty presentation and returns it.
func (c *Client) CreatePresentation(ctx context.Context, title string) (*domain.Document, error) {
	p, err := c.slides.Presentations.Create(&slides.Presentation{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr("presentations.create", err)
	}
	return presentationToDomain(p), nil
}

// Thumbnail formats accepted by the thumbnail endpoint.
const (
	MimePNG  = "PNG"
	MimeJPEG = "JPEG"
)

// Thumbnail is a rendered page image. ContentURL expires after about
// thirty minutes.
type Thumbnail struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ContentURL string `json:"contentUrl"`
}

func (c *Client) Thumbnail(ctx context.Context, presentationID, pageID, mime string) (*Thumbnail, error) {
	switch mime {
	case "":
		mime = MimePNG
	case MimePNG, MimeJPEG:
	default:
		return nil, fmt.Errorf("unsupported thumbnail mime type %q", mime)
	}

	t, err := c.slides.Presentations.Pages.GetThumbnail(presentationID, pageID).
		ThumbnailPropertiesMimeType(mime).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapErr("presentations.pages.getThumbnail", err)
	}
	return &Thumbnail{Width: int(t.Width), Height: int(t.Height), ContentURL: t.ContentUrl}, nil
}
