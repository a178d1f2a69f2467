// Package geometry computes element placement on a slide in EMU.
package geometry

import (
	"fmt"
	"strings"

	"slides/internal/domain"
	"slides/internal/units"
)

// Standard slide heights; every preset is 10 inches wide.
const (
	SlideWidthEMU       = 9144000
	SlideHeight16x9EMU  = 5143500
	SlideHeight4x3EMU   = 6858000
	SlideHeight16x10EMU = 5715000
)

// SlideSizes are the supported aspect-ratio presets.
var SlideSizes = map[string]domain.Size{
	"16:9":  {Width: SlideWidthEMU, Height: SlideHeight16x9EMU},
	"4:3":   {Width: SlideWidthEMU, Height: SlideHeight4x3EMU},
	"16:10": {Width: SlideWidthEMU, Height: SlideHeight16x10EMU},
}

// DefaultSlideSize is used when a document does not report its page size.
var DefaultSlideSize = SlideSizes["16:9"]

// SlideSizeOf returns the document's page size, or the 16:9 preset when
// it is missing or zero.
func SlideSizeOf(doc *domain.Document) domain.Size {
	if doc == nil || doc.PageSize.IsZero() {
		return DefaultSlideSize
	}
	return doc.PageSize
}

// AspectRatioLabel names the preset closest to size, within 0.1.
func AspectRatioLabel(size domain.Size) string {
	w, h := units.ToInches(size.Width), units.ToInches(size.Height)
	if w <= 0 || h <= 0 {
		return "Unknown"
	}
	ratio := w / h
	switch {
	case abs(ratio-16.0/9) < 0.1:
		return "16:9 (Widescreen)"
	case abs(ratio-4.0/3) < 0.1:
		return "4:3 (Standard)"
	case abs(ratio-16.0/10) < 0.1:
		return "16:10"
	}
	return fmt.Sprintf("%.2f:1 (Custom)", ratio)
}

// Align is an alignment keyword along one axis.
type Align string

const (
	AlignNone   Align = ""
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// ParseHorizontal accepts start/center/end and left/center/right.
func ParseHorizontal(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return AlignNone, nil
	case "start", "left":
		return AlignStart, nil
	case "center", "middle":
		return AlignCenter, nil
	case "end", "right":
		return AlignEnd, nil
	}
	return AlignNone, fmt.Errorf("unknown horizontal alignment %q", s)
}

// ParseVertical accepts start/center/end and top/center/middle/bottom.
func ParseVertical(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return AlignNone, nil
	case "start", "top":
		return AlignStart, nil
	case "center", "middle":
		return AlignCenter, nil
	case "end", "bottom":
		return AlignEnd, nil
	}
	return AlignNone, fmt.Errorf("unknown vertical alignment %q", s)
}

// AlignPosition places an element of size elem inside container.
// An absent keyword puts that coordinate at 0.
func AlignPosition(container, elem domain.Size, horizontal, vertical Align, margin int64) (x, y int64) {
	return alignAxis(container.Width, elem.Width, horizontal, margin),
		alignAxis(container.Height, elem.Height, vertical, margin)
}

func alignAxis(extent, size int64, a Align, margin int64) int64 {
	switch a {
	case AlignStart:
		return margin
	case AlignCenter:
		return floorDiv(extent-size, 2)
	case AlignEnd:
		return extent - size - margin
	}
	return 0
}

// floorDiv rounds toward negative infinity, unlike Go's / operator.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
