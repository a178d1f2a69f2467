// Package units converts between the Slides API's English Metric Units
// (EMU) and human-friendly linear units.
package units

import "fmt"

const (
	EMUPerInch       = 914400
	EMUPerPoint      = 12700
	EMUPerCentimeter = 360000
	EMUPerPixel96DPI = 9525
)

// Unit is a linear measurement unit other than EMU.
type Unit string

const (
	Inch       Unit = "in"
	Point      Unit = "pt"
	Centimeter Unit = "cm"
	Pixel      Unit = "px" // at 96 dpi
)

func (u Unit) factor() int64 {
	switch u {
	case Inch:
		return EMUPerInch
	case Point:
		return EMUPerPoint
	case Centimeter:
		return EMUPerCentimeter
	case Pixel:
		return EMUPerPixel96DPI
	}
	panic(fmt.Sprintf("units: unknown unit %q", string(u)))
}

// ParseUnit maps a unit name to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case Inch, Point, Centimeter, Pixel:
		return Unit(s), nil
	}
	switch s {
	case "inch", "inches":
		return Inch, nil
	case "point", "points", "PT":
		return Point, nil
	case "centimeter", "centimeters":
		return Centimeter, nil
	case "pixel", "pixels":
		return Pixel, nil
	}
	return "", fmt.Errorf("unknown unit %q", s)
}

// ToEMU converts v to EMU, truncating toward zero.
func ToEMU(v float64, from Unit) int64 {
	return int64(v * float64(from.factor()))
}

// FromEMU converts an EMU value to the given unit.
func FromEMU(emu int64, to Unit) float64 {
	return float64(emu) / float64(to.factor())
}

// Inches is shorthand for ToEMU(v, Inch).
func Inches(v float64) int64 { return ToEMU(v, Inch) }

// ToInches is shorthand for FromEMU(emu, Inch).
func ToInches(emu int64) float64 { return FromEMU(emu, Inch) }

// Points is shorthand for ToEMU(v, Point).
func Points(v float64) int64 { return ToEMU(v, Point) }

// ToPoints is shorthand for FromEMU(emu, Point).
func ToPoints(emu int64) float64 { return FromEMU(emu, Point) }

// PixelsAt converts pixels at an arbitrary dpi to EMU.
func PixelsAt(px float64, dpi int) int64 {
	if dpi == 96 {
		return ToEMU(px, Pixel)
	}
	return int64(px * EMUPerInch / float64(dpi))
}

// ToPixelsAt converts EMU to pixels at an arbitrary dpi.
func ToPixelsAt(emu int64, dpi int) float64 {
	if dpi == 96 {
		return FromEMU(emu, Pixel)
	}
	return float64(emu) * float64(dpi) / EMUPerInch
}
