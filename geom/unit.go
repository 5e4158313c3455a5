package geom

import (
	"fmt"
	"math"

	"github.com/npillmayer/tyse/core/dimen"
)

// LayoutUnit is the fixed-point unit of layout geometry, with a resolution of
// 1/64 of a CSS pixel.
type LayoutUnit int64

// Pixel is the size of one CSS pixel.
const Pixel LayoutUnit = 64

// MaxLayoutUnit is used for "infinite" extents.
const MaxLayoutUnit LayoutUnit = math.MaxInt32

// Px converts a (possibly fractional) pixel value to layout units.
func Px(v float64) LayoutUnit {
	return LayoutUnit(math.Round(v * float64(Pixel)))
}

// FromInt converts whole pixels to layout units.
func FromInt(px int) LayoutUnit {
	return LayoutUnit(px) * Pixel
}

// ToFloat converts layout units to a pixel value.
func (u LayoutUnit) ToFloat() float64 {
	return float64(u) / float64(Pixel)
}

// Round rounds to whole pixels, with halves rounding up.
func (u LayoutUnit) Round() int {
	return int(math.Floor(u.ToFloat() + 0.5))
}

// Floor truncates to whole pixels towards negative infinity.
func (u LayoutUnit) Floor() int {
	return int(math.Floor(u.ToFloat()))
}

func (u LayoutUnit) String() string {
	return fmt.Sprintf("%gpx", u.ToFloat())
}

// CSS defines 1px as 0.75pt.
const pointsPerPixel = 0.75

// FromDimen converts a typographic dimension to layout units.
func FromDimen(d dimen.DU) LayoutUnit {
	pt := float64(d) / float64(dimen.PT)
	return Px(pt / pointsPerPixel)
}

// ToDimen converts layout units to a typographic dimension.
func (u LayoutUnit) ToDimen() dimen.DU {
	return dimen.DU(math.Round(u.ToFloat() * pointsPerPixel * float64(dimen.PT)))
}
