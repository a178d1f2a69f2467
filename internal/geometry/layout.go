package geometry

import (
	"errors"
	"fmt"

	"slides/internal/domain"
)

const (
	GridEMU    = 228600 // 0.25 in
	PaddingEMU = 91440  // 0.1 in between auto-placed elements
)

var ErrInsufficientElements = errors.New("insufficient elements")

// Box is an axis-aligned bounding box in EMU.
type Box struct {
	X, Y, W, H int64
}

func (a Box) intersects(b Box) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X &&
		a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// Axis is a distribution direction.
type Axis string

const (
	Horizontal Axis = "horizontal"
	Vertical   Axis = "vertical"
)

// Spacing is either an even split of the free space or a fixed gap.
type Spacing struct {
	Even bool
	Gap  int64
}

// Distribute lays items out one after another along axis. With even
// spacing the gap is (extent - sum of item extents) / (count + 1); the
// first item starts one gap from the origin. It returns each item's new
// leading coordinate, in input order.
func Distribute(items []Box, axis Axis, extent int64, sp Spacing) ([]int64, error) {
	if len(items) < 2 {
		return nil, fmt.Errorf("%w: distribute needs at least 2 elements, got %d", ErrInsufficientElements, len(items))
	}

	size := func(b Box) int64 {
		if axis == Vertical {
			return b.H
		}
		return b.W
	}

	gap := sp.Gap
	if sp.Even {
		var total int64
		for _, b := range items {
			total += size(b)
		}
		gap = floorDiv(extent-total, int64(len(items)+1))
	}

	positions := make([]int64, len(items))
	cur := gap
	for i, b := range items {
		positions[i] = cur
		cur += size(b) + gap
	}
	return positions, nil
}

// Edge is the edge or center line items are aligned on.
type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeCenter Edge = "center"
	EdgeRight  Edge = "right"
	EdgeTop    Edge = "top"
	EdgeMiddle Edge = "middle"
	EdgeBottom Edge = "bottom"
)

// ParseEdge validates an alignment edge name.
func ParseEdge(s string) (Edge, error) {
	switch e := Edge(s); e {
	case EdgeLeft, EdgeCenter, EdgeRight, EdgeTop, EdgeMiddle, EdgeBottom:
		return e, nil
	}
	return "", fmt.Errorf("unknown alignment %q", s)
}

// Reference selects what items are aligned against.
type Reference string

const (
	RefFirst Reference = "first"
	RefLast  Reference = "last"
	RefSlide Reference = "slide"
)

// ParseReference validates a reference name; empty means first.
func ParseReference(s string) (Reference, error) {
	switch r := Reference(s); r {
	case "":
		return RefFirst, nil
	case RefFirst, RefLast, RefSlide:
		return r, nil
	}
	return "", fmt.Errorf("unknown reference %q", s)
}

// AlignTo moves each item so that the chosen edge (or center line)
// matches the reference's. Only the aligned axis changes.
func AlignTo(items []Box, edge Edge, ref Reference, container domain.Size) ([]Box, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: align needs at least 1 element", ErrInsufficientElements)
	}

	var r Box
	switch ref {
	case RefFirst:
		r = items[0]
	case RefLast:
		r = items[len(items)-1]
	case RefSlide:
		r = Box{W: container.Width, H: container.Height}
	default:
		return nil, fmt.Errorf("unknown reference %q", ref)
	}

	out := make([]Box, len(items))
	for i, b := range items {
		switch edge {
		case EdgeLeft:
			b.X = r.X
		case EdgeCenter:
			b.X = r.X + floorDiv(r.W, 2) - floorDiv(b.W, 2)
		case EdgeRight:
			b.X = r.X + r.W - b.W
		case EdgeTop:
			b.Y = r.Y
		case EdgeMiddle:
			b.Y = r.Y + floorDiv(r.H, 2) - floorDiv(b.H, 2)
		case EdgeBottom:
			b.Y = r.Y + r.H - b.H
		default:
			return nil, fmt.Errorf("unknown alignment %q", edge)
		}
		out[i] = b
	}
	return out, nil
}

// LayoutEngine finds free space on a slide for new elements so that
// auto-placed elements don't overlap existing ones.
type LayoutEngine struct {
	grid    int64
	padding int64
}

func NewLayoutEngine() *LayoutEngine {
	return &LayoutEngine{
		grid:    GridEMU,
		padding: PaddingEMU,
	}
}

// FreeSpot scans the slide row by row on the grid and returns the first
// position where a w×h element fits without touching the padded bounds
// of any occupied box. ok is false when nothing fits.
func (le *LayoutEngine) FreeSpot(container domain.Size, occupied []Box, w, h int64) (x, y int64, ok bool) {
	candidate := Box{W: w, H: h}
	for cy := int64(0); cy+h <= container.Height; cy += le.grid {
		for cx := int64(0); cx+w <= container.Width; cx += le.grid {
			candidate.X, candidate.Y = cx, cy

			overlaps := false
			for _, occ := range occupied {
				padded := Box{
					X: occ.X - le.padding,
					Y: occ.Y - le.padding,
					W: occ.W + le.padding*2,
					H: occ.H + le.padding*2,
				}
				if candidate.intersects(padded) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				return cx, cy, true
			}
		}
	}
	return 0, 0, false
}
