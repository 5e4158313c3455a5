package geom

import (
	"fmt"
	"math"
)

// FloatPoint is a point in floating point pixels.
type FloatPoint struct {
	X, Y float64
}

// FloatPoint3D is a point in 3D space, used for transform origins.
type FloatPoint3D struct {
	X, Y, Z float64
}

func (p FloatPoint3D) String() string {
	return fmt.Sprintf("(%g,%g,%g)", p.X, p.Y, p.Z)
}

// FloatSize is an extent in floating point pixels.
type FloatSize struct {
	Width, Height float64
}

// IsZero is true for a zero extent.
func (s FloatSize) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// FloatRect is a rectangle in floating point pixels.
type FloatRect struct {
	X, Y, Width, Height float64
}

func (r FloatRect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.Width, r.Height)
}

// MaxX is the right edge.
func (r FloatRect) MaxX() float64 { return r.X + r.Width }

// MaxY is the bottom edge.
func (r FloatRect) MaxY() float64 { return r.Y + r.Height }

// Move returns r translated by (dx, dy).
func (r FloatRect) Move(dx, dy float64) FloatRect {
	r.X += dx
	r.Y += dy
	return r
}

// EnclosingIntRect returns the smallest integer rectangle containing r.
func (r FloatRect) EnclosingIntRect() IntRect {
	x, y := int(math.Floor(r.X)), int(math.Floor(r.Y))
	return IntRect{
		Origin: IntPoint{X: x, Y: y},
		Size: IntSize{
			Width:  int(math.Ceil(r.MaxX())) - x,
			Height: int(math.Ceil(r.MaxY())) - y,
		},
	}
}

// InfiniteFloatRect is the clip rect of the root clip node.
func InfiniteFloatRect() FloatRect {
	return InfiniteLayoutRect().ToFloat()
}

// CornerRadii are the radii of the four corners of a rounded rectangle.
type CornerRadii struct {
	TopLeft, TopRight, BottomLeft, BottomRight FloatSize
}

// IsZero is true if no corner is rounded.
func (c CornerRadii) IsZero() bool {
	return c.TopLeft.IsZero() && c.TopRight.IsZero() &&
		c.BottomLeft.IsZero() && c.BottomRight.IsZero()
}

// shrink reduces every radius by the given edge widths, clamping at zero.
func (c CornerRadii) shrink(top, right, bottom, left float64) CornerRadii {
	sh := func(s FloatSize, dx, dy float64) FloatSize {
		return FloatSize{Width: math.Max(0, s.Width-dx), Height: math.Max(0, s.Height-dy)}
	}
	return CornerRadii{
		TopLeft:     sh(c.TopLeft, left, top),
		TopRight:    sh(c.TopRight, right, top),
		BottomLeft:  sh(c.BottomLeft, left, bottom),
		BottomRight: sh(c.BottomRight, right, bottom),
	}
}

// FloatRoundedRect is a rectangle with optionally rounded corners.
type FloatRoundedRect struct {
	Rect  FloatRect
	Radii CornerRadii
}

// RoundedRect creates a rounded rect without rounded corners.
func RoundedRect(r FloatRect) FloatRoundedRect {
	return FloatRoundedRect{Rect: r}
}

func (rr FloatRoundedRect) String() string {
	if rr.Radii.IsZero() {
		return rr.Rect.String()
	}
	return fmt.Sprintf("%v r=%v", rr.Rect, rr.Radii)
}

// IsRounded is true if at least one corner has a radius.
func (rr FloatRoundedRect) IsRounded() bool {
	return !rr.Radii.IsZero()
}

// InnerRoundedRect returns the rounded rect inset by edge widths, with radii
// reduced accordingly. This is how inner border edges are derived from outer
// border edges.
func (rr FloatRoundedRect) InnerRoundedRect(o LayoutRectOutsets) FloatRoundedRect {
	t, r, b, l := o.Top.ToFloat(), o.Right.ToFloat(), o.Bottom.ToFloat(), o.Left.ToFloat()
	return FloatRoundedRect{
		Rect: FloatRect{
			X:      rr.Rect.X + l,
			Y:      rr.Rect.Y + t,
			Width:  math.Max(0, rr.Rect.Width-l-r),
			Height: math.Max(0, rr.Rect.Height-t-b),
		},
		Radii: rr.Radii.shrink(t, r, b, l),
	}
}
