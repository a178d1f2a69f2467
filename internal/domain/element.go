package domain

import "fmt"

// Kind names the variant carried by an Element.
type Kind string

const (
	KindTextShape Kind = "SHAPE"
	KindImage     Kind = "IMAGE"
	KindTable     Kind = "TABLE"
	KindLine      Kind = "LINE"
	KindVideo     Kind = "VIDEO"
	KindChart     Kind = "SHEETS_CHART"
	KindUnknown   Kind = "UNKNOWN"
)

// Element is one page element. Transform and Size are nil when the API
// did not report them. Payload is one of *TextShape, *Image, *Table,
// *Line, *Video or *Chart, or nil for element kinds this server does not
// model (groups, word art).
type Element struct {
	ID        string     `json:"objectId"`
	Transform *Transform `json:"transform,omitempty"`
	Size      *Size      `json:"size,omitempty"`
	Payload   Payload    `json:"-"`
}

// Payload is the closed set of element variants.
type Payload interface {
	kind() Kind
}

// Kind reports the element's variant.
func (e *Element) Kind() Kind {
	if e.Payload == nil {
		return KindUnknown
	}
	return e.Payload.kind()
}

// TextShape returns the shape payload, or nil if e is not a shape.
func (e *Element) TextShape() *TextShape {
	s, _ := e.Payload.(*TextShape)
	return s
}

// Placeholder is a template slot role such as TITLE or BODY.
type Placeholder string

const (
	PlaceholderNone     Placeholder = ""
	PlaceholderTitle    Placeholder = "TITLE"
	PlaceholderSubtitle Placeholder = "SUBTITLE"
	PlaceholderBody     Placeholder = "BODY"
	PlaceholderCenter   Placeholder = "CENTERED_TITLE"
)

type TextShape struct {
	ShapeType   string      `json:"shapeType"`
	Placeholder Placeholder `json:"placeholder,omitempty"`
	Runs        []TextRun   `json:"runs,omitempty"`
	Fill        *Color      `json:"fill,omitempty"`
}

// Text concatenates every run's content with no separator.
func (s *TextShape) Text() string {
	var n int
	for _, r := range s.Runs {
		n += len(r.Content)
	}
	buf := make([]byte, 0, n)
	for _, r := range s.Runs {
		buf = append(buf, r.Content...)
	}
	return string(buf)
}

type TextRun struct {
	Content string    `json:"content"`
	Style   TextStyle `json:"style"`
}

type TextStyle struct {
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSizePt float64 `json:"fontSizePt,omitempty"`
	Foreground *Color  `json:"foreground,omitempty"`
	Bold       bool    `json:"bold,omitempty"`
	Italic     bool    `json:"italic,omitempty"`
}

type Image struct {
	SourceURL  string `json:"sourceUrl"`
	ContentURL string `json:"contentUrl"`
}

type Table struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

type Line struct {
	LineType string `json:"lineType"`
}

type Video struct {
	Source string `json:"source"`
	URL    string `json:"url"`
}

type Chart struct {
	SpreadsheetID string `json:"spreadsheetId"`
	ChartID       int64  `json:"chartId"`
}

func (*TextShape) kind() Kind { return KindTextShape }
func (*Image) kind() Kind     { return KindImage }
func (*Table) kind() Kind     { return KindTable }
func (*Line) kind() Kind      { return KindLine }
func (*Video) kind() Kind     { return KindVideo }
func (*Chart) kind() Kind     { return KindChart }

// Describe returns the kind-specific fields of an element as a flat map,
// for tool output. Every variant must be listed here.
func Describe(e *Element) map[string]any {
	out := map[string]any{"type": string(e.Kind())}
	switch p := e.Payload.(type) {
	case *TextShape:
		out["shape_type"] = p.ShapeType
		if p.Placeholder != PlaceholderNone {
			out["placeholder_type"] = string(p.Placeholder)
		}
	case *Image:
		out["image_url"] = p.SourceURL
		out["content_url"] = p.ContentURL
	case *Table:
		out["rows"] = p.Rows
		out["columns"] = p.Columns
	case *Line:
		out["line_type"] = p.LineType
	case *Video:
		out["video_source"] = p.Source
		out["video_url"] = p.URL
	case *Chart:
		out["spreadsheet_id"] = p.SpreadsheetID
		out["chart_id"] = p.ChartID
	case nil:
	default:
		panic(fmt.Sprintf("domain: unhandled element payload %T", p))
	}
	return out
}
