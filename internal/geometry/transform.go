package geometry

import (
	"errors"
	"fmt"

	"slides/internal/domain"
)

var ErrNotImplemented = errors.New("not implemented")

// BuildTransform returns an absolute transform with zero shear.
// Rotation is not supported; any non-zero angle is rejected.
func BuildTransform(translateX, translateY int64, scaleX, scaleY, rotationDeg float64) (domain.Transform, error) {
	if rotationDeg != 0 {
		return domain.Transform{}, fmt.Errorf("%w: rotation transforms (%v°)", ErrNotImplemented, rotationDeg)
	}
	return domain.Transform{
		ScaleX:     scaleX,
		ScaleY:     scaleY,
		TranslateX: translateX,
		TranslateY: translateY,
	}, nil
}

// Translate is BuildTransform with unit scale and no rotation.
func Translate(x, y int64) domain.Transform {
	t, _ := BuildTransform(x, y, 1, 1, 0)
	return t
}

// ScaleRatio is the factor taking current to target, or 1 when current is 0.
func ScaleRatio(target, current int64) float64 {
	if current == 0 {
		return 1
	}
	return float64(target) / float64(current)
}

// BuildSize is a width/height pair in EMU.
func BuildSize(width, height int64) domain.Size {
	return domain.Size{Width: width, Height: height}
}
