// Package batch assembles ordered batchUpdate request lists for the Slides
// API. The remote service applies requests strictly in list order, so
// every builder here returns requests in the order they must run.
package batch

import "slides/internal/colors"

// Request is one entry of a batchUpdate call. Exactly one field is set.
type Request struct {
	DeleteText                 *DeleteText                       `json:"deleteText,omitempty"`
	InsertText                 *InsertText                       `json:"insertText,omitempty"`
	UpdateTextStyle            *UpdateTextStyle                  `json:"updateTextStyle,omitempty"`
	UpdateParagraphStyle       *UpdateParagraphStyle             `json:"updateParagraphStyle,omitempty"`
	UpdatePageElementTransform *UpdatePageElementTransform       `json:"updatePageElementTransform,omitempty"`
	UpdateShapeProperties      *UpdateShapeProperties            `json:"updateShapeProperties,omitempty"`
	CreateShape                *CreateShapeRequest               `json:"createShape,omitempty"`
	CreateImage                *CreateImageRequest               `json:"createImage,omitempty"`
	CreateSlide                *CreateSlideRequest               `json:"createSlide,omitempty"`
	ReplaceAllText             *ReplaceAllTextRequest            `json:"replaceAllText,omitempty"`
	ReplaceAllShapesWithImage  *ReplaceAllShapesWithImageRequest `json:"replaceAllShapesWithImage,omitempty"`
}

// Kind names the request variant, as it appears on the wire.
func (r Request) Kind() string {
	switch {
	case r.DeleteText != nil:
		return "deleteText"
	case r.InsertText != nil:
		return "insertText"
	case r.UpdateTextStyle != nil:
		return "updateTextStyle"
	case r.UpdateParagraphStyle != nil:
		return "updateParagraphStyle"
	case r.UpdatePageElementTransform != nil:
		return "updatePageElementTransform"
	case r.UpdateShapeProperties != nil:
		return "updateShapeProperties"
	case r.CreateShape != nil:
		return "createShape"
	case r.CreateImage != nil:
		return "createImage"
	case r.CreateSlide != nil:
		return "createSlide"
	case r.ReplaceAllText != nil:
		return "replaceAllText"
	case r.ReplaceAllShapesWithImage != nil:
		return "replaceAllShapesWithImage"
	}
	return ""
}

// Range types.
const (
	RangeAll = "ALL"
)

// Units accepted by the API for dimensions and transforms.
const (
	UnitEMU = "EMU"
	UnitPT  = "PT"
)

// ApplyModeAbsolute replaces an element's transform outright.
const ApplyModeAbsolute = "ABSOLUTE"

type TextRange struct {
	Type string `json:"type"`
}

type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

type Size struct {
	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`
}

type AffineTransform struct {
	ScaleX     float64 `json:"scaleX"`
	ScaleY     float64 `json:"scaleY"`
	ShearX     float64 `json:"shearX"`
	ShearY     float64 `json:"shearY"`
	TranslateX int64   `json:"translateX"`
	TranslateY int64   `json:"translateY"`
	Unit       string  `json:"unit"`
}

type ElementProperties struct {
	PageObjectID string           `json:"pageObjectId"`
	Size         *Size            `json:"size,omitempty"`
	Transform    *AffineTransform `json:"transform,omitempty"`
}

type OpaqueColor struct {
	RGBColor *colors.RGB `json:"rgbColor,omitempty"`
}

type OptionalColor struct {
	OpaqueColor *OpaqueColor `json:"opaqueColor,omitempty"`
}

type SolidFill struct {
	Color OpaqueColor `json:"color"`
	Alpha *float64    `json:"alpha,omitempty"`
}

type TextStyle struct {
	FontFamily      string         `json:"fontFamily,omitempty"`
	FontSize        *Dimension     `json:"fontSize,omitempty"`
	Bold            *bool          `json:"bold,omitempty"`
	Italic          *bool          `json:"italic,omitempty"`
	ForegroundColor *OptionalColor `json:"foregroundColor,omitempty"`
}

type ParagraphStyle struct {
	Alignment string `json:"alignment,omitempty"`
}

type SubstringMatch struct {
	Text      string `json:"text"`
	MatchCase bool   `json:"matchCase"`
}

type DeleteText struct {
	ObjectID  string    `json:"objectId"`
	TextRange TextRange `json:"textRange"`
}

type InsertText struct {
	ObjectID       string `json:"objectId"`
	Text           string `json:"text"`
	InsertionIndex int    `json:"insertionIndex"`
}

type UpdateTextStyle struct {
	ObjectID  string    `json:"objectId"`
	Style     TextStyle `json:"style"`
	Fields    string    `json:"fields"`
	TextRange TextRange `json:"textRange"`
}

type UpdateParagraphStyle struct {
	ObjectID  string         `json:"objectId"`
	Style     ParagraphStyle `json:"style"`
	Fields    string         `json:"fields"`
	TextRange TextRange      `json:"textRange"`
}

type UpdatePageElementTransform struct {
	ObjectID  string          `json:"objectId"`
	Transform AffineTransform `json:"transform"`
	ApplyMode string          `json:"applyMode"`
}

type Outline struct {
	OutlineFill struct {
		SolidFill SolidFill `json:"solidFill"`
	} `json:"outlineFill"`
	Weight Dimension `json:"weight"`
}

type ShapeBackgroundFill struct {
	SolidFill SolidFill `json:"solidFill"`
}

type ShapeProperties struct {
	ShapeBackgroundFill *ShapeBackgroundFill `json:"shapeBackgroundFill,omitempty"`
	Outline             *Outline             `json:"outline,omitempty"`
}

type UpdateShapeProperties struct {
	ObjectID        string          `json:"objectId"`
	ShapeProperties ShapeProperties `json:"shapeProperties"`
	Fields          string          `json:"fields"`
}

type CreateShapeRequest struct {
	ObjectID          string            `json:"objectId"`
	ShapeType         string            `json:"shapeType"`
	ElementProperties ElementProperties `json:"elementProperties"`
}

type CreateImageRequest struct {
	ObjectID          string            `json:"objectId"`
	URL               string            `json:"url"`
	ElementProperties ElementProperties `json:"elementProperties"`
}

// LayoutReference selects a layout either by the document's own layout
// id or by a predefined layout name.
type LayoutReference struct {
	LayoutID         string `json:"layoutId,omitempty"`
	PredefinedLayout string `json:"predefinedLayout,omitempty"`
}

type CreateSlideRequest struct {
	ObjectID             string          `json:"objectId"`
	InsertionIndex       *int            `json:"insertionIndex,omitempty"`
	SlideLayoutReference LayoutReference `json:"slideLayoutReference"`
}

type ReplaceAllTextRequest struct {
	ContainsText SubstringMatch `json:"containsText"`
	ReplaceText  string         `json:"replaceText"`
}

type ReplaceAllShapesWithImageRequest struct {
	ImageURL      string         `json:"imageUrl"`
	ReplaceMethod string         `json:"replaceMethod"`
	ContainsText  SubstringMatch `json:"containsText"`
}

// Reply is the response to one Request, positionally aligned with it.
// Requests with no interesting reply decode to an empty Reply.
type Reply struct {
	CreateShape               *CreatedObject `json:"createShape,omitempty"`
	CreateImage               *CreatedObject `json:"createImage,omitempty"`
	CreateSlide               *CreatedObject `json:"createSlide,omitempty"`
	ReplaceAllText            *Occurrences   `json:"replaceAllText,omitempty"`
	ReplaceAllShapesWithImage *Occurrences   `json:"replaceAllShapesWithImage,omitempty"`
}

type CreatedObject struct {
	ObjectID string `json:"objectId"`
}

type Occurrences struct {
	OccurrencesChanged int `json:"occurrencesChanged"`
}

// Response is the body returned by batchUpdate.
type Response struct {
	PresentationID string  `json:"presentationId"`
	Replies        []Reply `json:"replies"`
}

// Occurrences returns the occurrencesChanged count of the reply at i,
// or 0 when the reply is missing or of another kind.
func (r *Response) Occurrences(i int) int {
	if r == nil || i < 0 || i >= len(r.Replies) {
		return 0
	}
	switch rep := r.Replies[i]; {
	case rep.ReplaceAllText != nil:
		return rep.ReplaceAllText.OccurrencesChanged
	case rep.ReplaceAllShapesWithImage != nil:
		return rep.ReplaceAllShapesWithImage.OccurrencesChanged
	}
	return 0
}
