package batch

import (
	"strings"

	"github.com/google/uuid"

	"slides/internal/colors"
	"slides/internal/domain"
)

// NewObjectID returns prefix_xxxxxxxx with 8 random hex digits. Ids are
// chosen locally before the batch is sent and are not checked against
// the presentation; a collision surfaces as a remote error.
func NewObjectID(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}

func allText() TextRange { return TextRange{Type: RangeAll} }

// ReplaceText empties objectID and inserts text at index 0. The two
// requests are never merged.
func ReplaceText(objectID, text string) []Request {
	return []Request{
		{DeleteText: &DeleteText{ObjectID: objectID, TextRange: allText()}},
		{InsertText: &InsertText{ObjectID: objectID, Text: text, InsertionIndex: 0}},
	}
}

// TextStyleOptions holds the text style fields to change; nil fields are
// left untouched.
type TextStyleOptions struct {
	FontSizePt *float64
	Bold       *bool
	Italic     *bool
	FontFamily *string
	Color      *colors.RGB
}

// Empty reports whether no field is set.
func (o TextStyleOptions) Empty() bool {
	return o.FontSizePt == nil && o.Bold == nil && o.Italic == nil &&
		o.FontFamily == nil && o.Color == nil
}

// UpdateStyle builds an updateTextStyle over the whole text of objectID.
// ok is false when opts sets no field.
func UpdateStyle(objectID string, opts TextStyleOptions) (Request, bool) {
	var (
		style  TextStyle
		fields []string
	)
	if opts.FontSizePt != nil {
		style.FontSize = &Dimension{Magnitude: *opts.FontSizePt, Unit: UnitPT}
		fields = append(fields, "fontSize")
	}
	if opts.Bold != nil {
		style.Bold = opts.Bold
		fields = append(fields, "bold")
	}
	if opts.Italic != nil {
		style.Italic = opts.Italic
		fields = append(fields, "italic")
	}
	if opts.FontFamily != nil {
		style.FontFamily = *opts.FontFamily
		fields = append(fields, "fontFamily")
	}
	if opts.Color != nil {
		style.ForegroundColor = &OptionalColor{OpaqueColor: &OpaqueColor{RGBColor: opts.Color}}
		fields = append(fields, "foregroundColor")
	}
	if len(fields) == 0 {
		return Request{}, false
	}
	return Request{UpdateTextStyle: &UpdateTextStyle{
		ObjectID:  objectID,
		Style:     style,
		Fields:    strings.Join(fields, ","),
		TextRange: allText(),
	}}, true
}

// ParseAlignment maps a paragraph alignment keyword to the API's enum.
// LEFT and RIGHT are accepted as START and END. Empty stays empty.
func ParseAlignment(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return "", true
	case "LEFT", "START":
		return "START", true
	case "CENTER":
		return "CENTER", true
	case "RIGHT", "END":
		return "END", true
	case "JUSTIFIED":
		return "JUSTIFIED", true
	}
	return "", false
}

// ParagraphAlignment builds an updateParagraphStyle setting alignment.
// ok is false when alignment is empty.
func ParagraphAlignment(objectID, alignment string) (Request, bool) {
	if alignment == "" {
		return Request{}, false
	}
	return Request{UpdateParagraphStyle: &UpdateParagraphStyle{
		ObjectID:  objectID,
		Style:     ParagraphStyle{Alignment: alignment},
		Fields:    "alignment",
		TextRange: allText(),
	}}, true
}

// StyleRequests returns the text style update followed by the paragraph
// alignment update, omitting either when it would change nothing.
func StyleRequests(objectID string, opts TextStyleOptions, alignment string) []Request {
	var out []Request
	if r, ok := UpdateStyle(objectID, opts); ok {
		out = append(out, r)
	}
	if r, ok := ParagraphAlignment(objectID, alignment); ok {
		out = append(out, r)
	}
	return out
}

// Transform converts a domain transform to its EMU wire form.
func Transform(t domain.Transform) AffineTransform {
	return AffineTransform{
		ScaleX:     t.ScaleX,
		ScaleY:     t.ScaleY,
		ShearX:     t.ShearX,
		ShearY:     t.ShearY,
		TranslateX: t.TranslateX,
		TranslateY: t.TranslateY,
		Unit:       UnitEMU,
	}
}

// EMUSize converts a domain size to its EMU wire form.
func EMUSize(s domain.Size) Size {
	return Size{
		Width:  Dimension{Magnitude: float64(s.Width), Unit: UnitEMU},
		Height: Dimension{Magnitude: float64(s.Height), Unit: UnitEMU},
	}
}

// UpdateTransform sets the absolute transform of objectID.
func UpdateTransform(objectID string, t domain.Transform) Request {
	return Request{UpdatePageElementTransform: &UpdatePageElementTransform{
		ObjectID:  objectID,
		Transform: Transform(t),
		ApplyMode: ApplyModeAbsolute,
	}}
}

// Placement is where a new element goes: its page, size and transform.
type Placement struct {
	PageID    string
	Size      domain.Size
	Transform domain.Transform
}

func (p Placement) properties() ElementProperties {
	size := EMUSize(p.Size)
	tr := Transform(p.Transform)
	return ElementProperties{PageObjectID: p.PageID, Size: &size, Transform: &tr}
}

// TextBox describes a new text box and its full styling.
type TextBox struct {
	Text       string
	FontFamily string
	FontSizePt float64
	Bold       bool
	Italic     bool
	Color      colors.RGB
	Alignment  string
}

// CreateTextBox creates a TEXT_BOX shape, inserts its text, then styles
// it. All follow-ups reference objectID.
func CreateTextBox(objectID string, at Placement, box TextBox) []Request {
	size := box.FontSizePt
	bold, italic := box.Bold, box.Italic
	family := box.FontFamily
	color := box.Color

	out := []Request{
		{CreateShape: &CreateShapeRequest{
			ObjectID:          objectID,
			ShapeType:         "TEXT_BOX",
			ElementProperties: at.properties(),
		}},
		{InsertText: &InsertText{ObjectID: objectID, Text: box.Text, InsertionIndex: 0}},
	}
	return append(out, StyleRequests(objectID, TextStyleOptions{
		FontSizePt: &size,
		Bold:       &bold,
		Italic:     &italic,
		FontFamily: &family,
		Color:      &color,
	}, box.Alignment)...)
}

// CreateImage places an image from url.
func CreateImage(objectID, url string, at Placement) Request {
	return Request{CreateImage: &CreateImageRequest{
		ObjectID:          objectID,
		URL:               url,
		ElementProperties: at.properties(),
	}}
}

// ShapeStyle is the optional fill and outline of a new shape. Build
// Fill with SolidFillHex.
type ShapeStyle struct {
	Fill            *SolidFill
	Outline         *colors.RGB
	OutlineWeightPt float64
}

// CreateShape creates a shape of shapeType followed by a shape property
// update when a fill or outline is requested.
func CreateShape(objectID, shapeType string, at Placement, style ShapeStyle) []Request {
	out := []Request{{CreateShape: &CreateShapeRequest{
		ObjectID:          objectID,
		ShapeType:         shapeType,
		ElementProperties: at.properties(),
	}}}

	var (
		props  ShapeProperties
		fields []string
	)
	if style.Fill != nil {
		props.ShapeBackgroundFill = &ShapeBackgroundFill{SolidFill: *style.Fill}
		fields = append(fields, "shapeBackgroundFill")
	}
	if style.Outline != nil {
		o := &Outline{Weight: Dimension{Magnitude: style.OutlineWeightPt, Unit: UnitPT}}
		o.OutlineFill.SolidFill = solid(*style.Outline, nil)
		props.Outline = o
		fields = append(fields, "outline")
	}
	if len(fields) > 0 {
		out = append(out, Request{UpdateShapeProperties: &UpdateShapeProperties{
			ObjectID:        objectID,
			ShapeProperties: props,
			Fields:          strings.Join(fields, ","),
		}})
	}
	return out
}

func solid(rgb colors.RGB, alpha *float64) SolidFill {
	c := rgb
	return SolidFill{Color: OpaqueColor{RGBColor: &c}, Alpha: alpha}
}

// SolidFillHex decodes hex into a solid fill with the given alpha.
func SolidFillHex(hex string, alpha float64) (SolidFill, error) {
	rgb, err := colors.Decode(hex)
	if err != nil {
		return SolidFill{}, err
	}
	return solid(rgb, &alpha), nil
}

// CreateSlide adds a slide. insertionIndex nil appends at the end.
func CreateSlide(objectID string, layout LayoutReference, insertionIndex *int) Request {
	return Request{CreateSlide: &CreateSlideRequest{
		ObjectID:             objectID,
		InsertionIndex:       insertionIndex,
		SlideLayoutReference: layout,
	}}
}

// ReplaceAllText replaces every case-sensitive occurrence of find.
func ReplaceAllText(find, replace string) Request {
	return Request{ReplaceAllText: &ReplaceAllTextRequest{
		ContainsText: SubstringMatch{Text: find, MatchCase: true},
		ReplaceText:  replace,
	}}
}

// Image replace methods.
const (
	CenterInside = "CENTER_INSIDE"
	CenterCrop   = "CENTER_CROP"
)

// ReplaceAllShapesWithImage swaps every shape containing find for the
// image at url.
func ReplaceAllShapesWithImage(find, url, method string) Request {
	return Request{ReplaceAllShapesWithImage: &ReplaceAllShapesWithImageRequest{
		ImageURL:      url,
		ReplaceMethod: method,
		ContainsText:  SubstringMatch{Text: find, MatchCase: true},
	}}
}
