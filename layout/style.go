package layout

import (
	"github.com/gogpu/gg/scene"
	"github.com/npillmayer/paintprops/dom/style/css"
	"github.com/npillmayer/paintprops/geom"
)

// Animations flags properties with running animations.
type Animations uint8

// Animated properties.
const (
	AnimatesTransform Animations = 1 << iota
	AnimatesOpacity
	AnimatesFilter
)

// Style is the computed style of a layout object, restricted to what paint
// property building consults.
type Style struct {
	Position       css.PositionT
	Floating       bool
	OverflowX      css.Overflow
	OverflowY      css.Overflow
	ColumnSpanAll  bool
	Transform      css.TransformList
	Origin         css.OriginT
	Preserves3D    bool
	Perspective    float64 // 0 is none
	PerspOrigin    css.OriginT
	BackfaceHidden bool
	Opacity        float64
	BlendMode      scene.BlendMode
	Isolate        bool
	Filter         []css.FilterFunc
	Reflection     bool
	Mask           css.MaskT
	Clip           css.ClipT
	BorderRadii    geom.CornerRadii
	WillChange     css.WillChange
	Animations     Animations
	// BackgroundFixed is set for background-attachment: fixed.
	BackgroundFixed bool
}

// DefaultStyle returns the initial values of all properties.
func DefaultStyle() *Style {
	return &Style{
		Position:    css.Static(),
		Origin:      css.CenterOrigin(),
		PerspOrigin: css.CenterOrigin(),
		Opacity:     1,
		BlendMode:   scene.BlendNormal,
	}
}

// Copy returns a shallow copy which may be modified independently.
func (s *Style) Copy() *Style {
	c := *s
	return &c
}

// HasTransform is true if a transform function list or an animation of
// transforms is present.
func (s *Style) HasTransform() bool {
	return !s.Transform.IsNone() || s.Animations&AnimatesTransform != 0
}

// HasTransformRelatedProperty is true for transforms, preserve-3d,
// perspective and will-change: transform.
func (s *Style) HasTransformRelatedProperty() bool {
	return s.HasTransform() || s.Preserves3D || s.HasPerspective() ||
		s.WillChange.Has(css.WillChangeTransform)
}

// HasPerspective is true for a perspective other than none.
func (s *Style) HasPerspective() bool { return s.Perspective > 0 }

// HasOpacity is true for opacity < 1.
func (s *Style) HasOpacity() bool { return s.Opacity < 1 }

// HasBlendMode is true for a blend mode other than normal.
func (s *Style) HasBlendMode() bool { return s.BlendMode != scene.BlendNormal }

// HasFilter is true if any filter function is present.
func (s *Style) HasFilter() bool { return len(s.Filter) > 0 }

// HasMask is true if a mask image is present.
func (s *Style) HasMask() bool { return s.Mask != css.MaskNone }

// HasBorderRadius is true if at least one corner is rounded.
func (s *Style) HasBorderRadius() bool { return !s.BorderRadii.IsZero() }

// HasClip is true for a CSS clip other than auto.
func (s *Style) HasClip() bool { return !s.Clip.IsAuto() }

// HasCurrentOpacityAnimation is true while opacity is animated.
func (s *Style) HasCurrentOpacityAnimation() bool { return s.Animations&AnimatesOpacity != 0 }

// HasCurrentFilterAnimation is true while filters are animated.
func (s *Style) HasCurrentFilterAnimation() bool { return s.Animations&AnimatesFilter != 0 }

// HasCurrentTransformAnimation is true while transforms are animated.
func (s *Style) HasCurrentTransformAnimation() bool { return s.Animations&AnimatesTransform != 0 }

// CreatesGroup is true for properties which make a box render as an isolated
// group.
func (s *Style) CreatesGroup() bool {
	return s.HasOpacity() || s.HasMask() || s.HasFilter() || s.HasBlendMode() ||
		s.Isolate || s.HasCurrentOpacityAnimation() || s.HasCurrentFilterAnimation() ||
		s.WillChange.Has(css.WillChangeOpacity|css.WillChangeFilter)
}

// IsStackingContext is true if the style establishes a stacking context.
func (s *Style) IsStackingContext() bool {
	return s.CreatesGroup() || s.HasTransformRelatedProperty() || s.Reflection ||
		s.Position.IsFixed() || s.Position.IsSticky()
}

// ClipsOverflow is true if content overflowing the padding box is clipped in
// at least one axis.
func (s *Style) ClipsOverflow() bool {
	return s.OverflowX.ClipsContent() || s.OverflowY.ClipsContent()
}

// IsPositioned is true for any position other than static.
func (s *Style) IsPositioned() bool {
	return s.Position.IsInFlowPositioned() || s.Position.IsOutOfFlowPositioned()
}
