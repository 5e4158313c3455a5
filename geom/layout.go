package geom

import "fmt"

// LayoutPoint is a point in layout units.
type LayoutPoint struct {
	X, Y LayoutUnit
}

// LayoutPointPx creates a point from pixel values.
func LayoutPointPx(x, y float64) LayoutPoint {
	return LayoutPoint{X: Px(x), Y: Px(y)}
}

func (p LayoutPoint) String() string {
	return fmt.Sprintf("(%g,%g)", p.X.ToFloat(), p.Y.ToFloat())
}

// Add moves p by a size.
func (p LayoutPoint) Add(s LayoutSize) LayoutPoint {
	return LayoutPoint{X: p.X + s.Width, Y: p.Y + s.Height}
}

// MoveBy moves p by the coordinates of another point.
func (p LayoutPoint) MoveBy(q LayoutPoint) LayoutPoint {
	return LayoutPoint{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the distance vector from q to p.
func (p LayoutPoint) Sub(q LayoutPoint) LayoutSize {
	return LayoutSize{Width: p.X - q.X, Height: p.Y - q.Y}
}

// Neg returns the point mirrored at the origin.
func (p LayoutPoint) Neg() LayoutPoint {
	return LayoutPoint{X: -p.X, Y: -p.Y}
}

// IsZero is true for the origin.
func (p LayoutPoint) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Rounded snaps p to the nearest integer point.
func (p LayoutPoint) Rounded() IntPoint {
	return IntPoint{X: p.X.Round(), Y: p.Y.Round()}
}

// ToSize interprets p as a vector.
func (p LayoutPoint) ToSize() LayoutSize {
	return LayoutSize{Width: p.X, Height: p.Y}
}

// ToFloat converts p to float coordinates.
func (p LayoutPoint) ToFloat() FloatPoint {
	return FloatPoint{X: p.X.ToFloat(), Y: p.Y.ToFloat()}
}

// LayoutSize is a 2D extent or vector in layout units.
type LayoutSize struct {
	Width, Height LayoutUnit
}

// LayoutSizePx creates a size from pixel values.
func LayoutSizePx(w, h float64) LayoutSize {
	return LayoutSize{Width: Px(w), Height: Px(h)}
}

func (s LayoutSize) String() string {
	return fmt.Sprintf("%gx%g", s.Width.ToFloat(), s.Height.ToFloat())
}

// Add adds two sizes component-wise.
func (s LayoutSize) Add(t LayoutSize) LayoutSize {
	return LayoutSize{Width: s.Width + t.Width, Height: s.Height + t.Height}
}

// Neg negates both components.
func (s LayoutSize) Neg() LayoutSize {
	return LayoutSize{Width: -s.Width, Height: -s.Height}
}

// IsZero is true for the null vector.
func (s LayoutSize) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// ToPoint interprets s as a point.
func (s LayoutSize) ToPoint() LayoutPoint {
	return LayoutPoint{X: s.Width, Y: s.Height}
}

// ToFloat converts s to float values.
func (s LayoutSize) ToFloat() FloatSize {
	return FloatSize{Width: s.Width.ToFloat(), Height: s.Height.ToFloat()}
}

// LayoutRectOutsets are distances from the edges of a rectangle.
type LayoutRectOutsets struct {
	Top, Right, Bottom, Left LayoutUnit
}

// LayoutRect is an axis-aligned rectangle in layout units.
type LayoutRect struct {
	Origin LayoutPoint
	Size   LayoutSize
}

// LayoutRectPx creates a rectangle from pixel values.
func LayoutRectPx(x, y, w, h float64) LayoutRect {
	return LayoutRect{Origin: LayoutPointPx(x, y), Size: LayoutSizePx(w, h)}
}

func (r LayoutRect) String() string {
	return fmt.Sprintf("[%v %v]", r.Origin, r.Size)
}

// X is the left edge.
func (r LayoutRect) X() LayoutUnit { return r.Origin.X }

// Y is the top edge.
func (r LayoutRect) Y() LayoutUnit { return r.Origin.Y }

// Width of r.
func (r LayoutRect) Width() LayoutUnit { return r.Size.Width }

// Height of r.
func (r LayoutRect) Height() LayoutUnit { return r.Size.Height }

// MaxX is the right edge.
func (r LayoutRect) MaxX() LayoutUnit { return r.Origin.X + r.Size.Width }

// MaxY is the bottom edge.
func (r LayoutRect) MaxY() LayoutUnit { return r.Origin.Y + r.Size.Height }

// IsEmpty is true if r has no area.
func (r LayoutRect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// MoveBy returns r translated by the coordinates of p.
func (r LayoutRect) MoveBy(p LayoutPoint) LayoutRect {
	r.Origin = r.Origin.MoveBy(p)
	return r
}

// Move returns r translated by a size.
func (r LayoutRect) Move(s LayoutSize) LayoutRect {
	r.Origin = r.Origin.Add(s)
	return r
}

// Unite returns the bounding box of r and s. Empty rectangles do not contribute.
func (r LayoutRect) Unite(s LayoutRect) LayoutRect {
	if s.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return s
	}
	x := min(r.X(), s.X())
	y := min(r.Y(), s.Y())
	maxX := max(r.MaxX(), s.MaxX())
	maxY := max(r.MaxY(), s.MaxY())
	return LayoutRect{
		Origin: LayoutPoint{X: x, Y: y},
		Size:   LayoutSize{Width: maxX - x, Height: maxY - y},
	}
}

// Intersects is true if r and s overlap with a non-empty area.
func (r LayoutRect) Intersects(s LayoutRect) bool {
	return !r.IsEmpty() && !s.IsEmpty() &&
		r.X() < s.MaxX() && s.X() < r.MaxX() &&
		r.Y() < s.MaxY() && s.Y() < r.MaxY()
}

// ShiftYEdgeTo moves the top edge to y while keeping the bottom edge in place.
func (r LayoutRect) ShiftYEdgeTo(y LayoutUnit) LayoutRect {
	delta := y - r.Y()
	r.Origin.Y = y
	r.Size.Height = max(0, r.Size.Height-delta)
	return r
}

// Contract shrinks r by the given outsets.
func (r LayoutRect) Contract(o LayoutRectOutsets) LayoutRect {
	return LayoutRect{
		Origin: LayoutPoint{X: r.X() + o.Left, Y: r.Y() + o.Top},
		Size: LayoutSize{
			Width:  r.Width() - o.Left - o.Right,
			Height: r.Height() - o.Top - o.Bottom,
		},
	}
}

// Expand grows r by the given outsets.
func (r LayoutRect) Expand(o LayoutRectOutsets) LayoutRect {
	return r.Contract(LayoutRectOutsets{
		Top: -o.Top, Right: -o.Right, Bottom: -o.Bottom, Left: -o.Left,
	})
}

// PixelSnapped snaps the edges of r to whole pixels.
func (r LayoutRect) PixelSnapped() IntRect {
	x, y := r.X().Round(), r.Y().Round()
	return IntRect{
		Origin: IntPoint{X: x, Y: y},
		Size:   IntSize{Width: r.MaxX().Round() - x, Height: r.MaxY().Round() - y},
	}
}

// ToFloat converts r to a float rectangle.
func (r LayoutRect) ToFloat() FloatRect {
	return FloatRect{
		X: r.X().ToFloat(), Y: r.Y().ToFloat(),
		Width: r.Width().ToFloat(), Height: r.Height().ToFloat(),
	}
}

// InfiniteLayoutRect is used where no clipping takes place.
func InfiniteLayoutRect() LayoutRect {
	return LayoutRect{
		Origin: LayoutPoint{X: -MaxLayoutUnit / 2, Y: -MaxLayoutUnit / 2},
		Size:   LayoutSize{Width: MaxLayoutUnit, Height: MaxLayoutUnit},
	}
}
