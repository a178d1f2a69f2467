// Package colors converts between hex color strings and the normalized
// RGB triples used by the Slides API.
package colors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrOutOfRange   = errors.New("color channel out of range")
)

// RGB is a color with each channel in [0, 1].
type RGB struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// Decode parses "#RRGGBB", "RRGGBB", "#RGB" or "RGB".
func Decode(hex string) (RGB, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	var ch [3]float64
	for i := range ch {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
		}
		ch[i] = float64(v) / 255
	}
	return RGB{Red: ch[0], Green: ch[1], Blue: ch[2]}, nil
}

// Encode formats c as uppercase "#RRGGBB", rounding each channel to the
// nearest 8-bit value.
func Encode(c RGB) (string, error) {
	col := colorful.Color{R: c.Red, G: c.Green, B: c.Blue}
	if !col.IsValid() {
		for _, ch := range []struct {
			name string
			v    float64
		}{{"red", c.Red}, {"green", c.Green}, {"blue", c.Blue}} {
			if ch.v < 0 || ch.v > 1 {
				return "", fmt.Errorf("%w: %s value %v not in [0, 1]", ErrOutOfRange, ch.name, ch.v)
			}
		}
		// NaN fails IsValid without failing the comparisons above.
		return "", fmt.Errorf("%w: %v", ErrOutOfRange, c)
	}
	return strings.ToUpper(col.Hex()), nil
}

// MustDecode is Decode for compile-time constants.
func MustDecode(hex string) RGB {
	c, err := Decode(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Key is the lowercase, truncating hex form used to tally colors found
// in a document. Channels outside [0, 1] are clamped.
func Key(c RGB) string {
	cl := colorful.Color{R: c.Red, G: c.Green, B: c.Blue}.Clamped()
	return fmt.Sprintf("#%02x%02x%02x", int(cl.R*255), int(cl.G*255), int(cl.B*255))
}
