package slidesapi

import (
	"math"

	"google.golang.org/api/slides/v1"

	"slides/internal/colors"
	"slides/internal/domain"
	"slides/internal/units"
)

// Conversion from the generated Slides resources to the domain model.
// Lengths are normalised to EMU; PT is the only other unit the API
// reports.

func toEMU(v float64, unit string) int64 {
	if unit == "PT" {
		return int64(math.Round(v * units.EMUPerPoint))
	}
	return int64(math.Round(v))
}

func dimensionEMU(d *slides.Dimension) int64 {
	if d == nil {
		return 0
	}
	return toEMU(d.Magnitude, d.Unit)
}

func sizeToDomain(s *slides.Size) domain.Size {
	return domain.Size{Width: dimensionEMU(s.Width), Height: dimensionEMU(s.Height)}
}

func presentationToDomain(p *slides.Presentation) *domain.Document {
	doc := &domain.Document{
		ID:    p.PresentationId,
		Title: p.Title,
	}
	if p.PageSize != nil {
		doc.PageSize = sizeToDomain(p.PageSize)
	}
	doc.Slides = make([]domain.Slide, 0, len(p.Slides))
	for _, s := range p.Slides {
		if s != nil {
			doc.Slides = append(doc.Slides, pageToDomain(s))
		}
	}
	for _, l := range p.Layouts {
		if l == nil {
			continue
		}
		layout := domain.Layout{ID: l.ObjectId}
		if l.LayoutProperties != nil {
			layout.Name = l.LayoutProperties.Name
		}
		doc.Layouts = append(doc.Layouts, layout)
	}
	return doc
}

func pageToDomain(p *slides.Page) domain.Slide {
	s := domain.Slide{ID: p.ObjectId}
	if pp := p.PageProperties; pp != nil && pp.PageBackgroundFill != nil {
		s.Background = solidColor(pp.PageBackgroundFill.SolidFill)
	}
	s.Elements = make([]domain.Element, 0, len(p.PageElements))
	for _, el := range p.PageElements {
		if el != nil {
			s.Elements = append(s.Elements, elementToDomain(el))
		}
	}
	return s
}

func elementToDomain(w *slides.PageElement) domain.Element {
	el := domain.Element{ID: w.ObjectId}
	if w.Size != nil {
		size := sizeToDomain(w.Size)
		el.Size = &size
	}
	if t := w.Transform; t != nil {
		el.Transform = &domain.Transform{
			ScaleX:     t.ScaleX,
			ScaleY:     t.ScaleY,
			ShearX:     t.ShearX,
			ShearY:     t.ShearY,
			TranslateX: toEMU(t.TranslateX, t.Unit),
			TranslateY: toEMU(t.TranslateY, t.Unit),
		}
	}

	switch {
	case w.Shape != nil:
		el.Payload = shapeToDomain(w.Shape)
	case w.Image != nil:
		el.Payload = &domain.Image{SourceURL: w.Image.SourceUrl, ContentURL: w.Image.ContentUrl}
	case w.Table != nil:
		el.Payload = &domain.Table{Rows: int(w.Table.Rows), Columns: int(w.Table.Columns)}
	case w.Line != nil:
		el.Payload = &domain.Line{LineType: w.Line.LineType}
	case w.Video != nil:
		el.Payload = &domain.Video{Source: w.Video.Source, URL: w.Video.Url}
	case w.SheetsChart != nil:
		el.Payload = &domain.Chart{SpreadsheetID: w.SheetsChart.SpreadsheetId, ChartID: w.SheetsChart.ChartId}
	}
	return el
}

func shapeToDomain(w *slides.Shape) *domain.TextShape {
	s := &domain.TextShape{ShapeType: w.ShapeType}
	if w.Placeholder != nil {
		s.Placeholder = domain.Placeholder(w.Placeholder.Type)
	}
	if w.Text != nil {
		for _, te := range w.Text.TextElements {
			if te == nil || te.TextRun == nil {
				continue
			}
			run := domain.TextRun{Content: te.TextRun.Content}
			if st := te.TextRun.Style; st != nil {
				run.Style = domain.TextStyle{
					FontFamily: st.FontFamily,
					Bold:       st.Bold,
					Italic:     st.Italic,
				}
				if st.FontSize != nil {
					run.Style.FontSizePt = fontSizePt(st.FontSize)
				}
				if st.ForegroundColor != nil {
					run.Style.Foreground = opaque(st.ForegroundColor.OpaqueColor)
				}
			}
			s.Runs = append(s.Runs, run)
		}
	}
	if sp := w.ShapeProperties; sp != nil && sp.ShapeBackgroundFill != nil {
		s.Fill = solidColor(sp.ShapeBackgroundFill.SolidFill)
	}
	return s
}

func fontSizePt(d *slides.Dimension) float64 {
	if d.Unit == "EMU" {
		return units.ToPoints(int64(d.Magnitude))
	}
	return d.Magnitude
}

func solidColor(f *slides.SolidFill) *domain.Color {
	if f == nil {
		return nil
	}
	return opaque(f.Color)
}

func opaque(c *slides.OpaqueColor) *domain.Color {
	if c == nil || (c.RgbColor == nil && c.ThemeColor == "") {
		return nil
	}
	out := &domain.Color{Theme: c.ThemeColor}
	if c.RgbColor != nil {
		out.RGB = &colors.RGB{Red: c.RgbColor.Red, Green: c.RgbColor.Green, Blue: c.RgbColor.Blue}
	}
	return out
}
