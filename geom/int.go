package geom

import "fmt"

// IntPoint is a point with whole pixel coordinates.
type IntPoint struct {
	X, Y int
}

func (p IntPoint) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Neg returns the point mirrored at the origin.
func (p IntPoint) Neg() IntPoint {
	return IntPoint{X: -p.X, Y: -p.Y}
}

// ToLayout converts p to layout units.
func (p IntPoint) ToLayout() LayoutPoint {
	return LayoutPoint{X: FromInt(p.X), Y: FromInt(p.Y)}
}

// IntSize is an extent or vector in whole pixels.
type IntSize struct {
	Width, Height int
}

func (s IntSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// IsZero is true for the null vector.
func (s IntSize) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// IntRect is a rectangle with whole pixel coordinates.
type IntRect struct {
	Origin IntPoint
	Size   IntSize
}

// NewIntRect creates a rectangle from coordinates.
func NewIntRect(x, y, w, h int) IntRect {
	return IntRect{Origin: IntPoint{X: x, Y: y}, Size: IntSize{Width: w, Height: h}}
}

func (r IntRect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height)
}

// MoveBy returns r translated by the coordinates of p.
func (r IntRect) MoveBy(p IntPoint) IntRect {
	r.Origin = IntPoint{X: r.Origin.X + p.X, Y: r.Origin.Y + p.Y}
	return r
}

// ToFloat converts r to a float rectangle.
func (r IntRect) ToFloat() FloatRect {
	return FloatRect{
		X: float64(r.Origin.X), Y: float64(r.Origin.Y),
		Width: float64(r.Size.Width), Height: float64(r.Size.Height),
	}
}
