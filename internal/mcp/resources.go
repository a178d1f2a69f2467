package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	slidesURIPrefix = "slides://presentation/"
	slidesURISuffix = "/slides"
)

func slidesResourceURI(presentationID string) string {
	return slidesURIPrefix + presentationID + slidesURISuffix
}

func (s *Server) registerResources() {
	// ── slides://presentation/{presentationId}/slides ──
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			slidesURIPrefix+"{presentationId}"+slidesURISuffix,
			"Slides of a Presentation",
			mcp.WithTemplateDescription("Slide IDs, titles and element counts; updated after every change made through this server"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleSlidesResource,
	)
}

func (s *Server) handleSlidesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	id := presentationIDFromURI(uri)
	if id == "" {
		return nil, fmt.Errorf("could not extract presentationId from URI: %s", uri)
	}

	slides, err := s.slides.ListSlides(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(slides, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// presentationIDFromURI extracts the id from "slides://presentation/{id}/slides".
func presentationIDFromURI(uri string) string {
	rest, ok := strings.CutPrefix(uri, slidesURIPrefix)
	if !ok {
		return ""
	}
	id, ok := strings.CutSuffix(rest, slidesURISuffix)
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}
