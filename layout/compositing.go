package layout

import (
	"github.com/npillmayer/paintprops/dom/style/css"
	"github.com/npillmayer/paintprops/paint/property"
)

// CompositingReasonsForTransform are the direct compositing reasons which
// require a transform node for box o.
func (o *Object) CompositingReasonsForTransform() property.CompositingReasons {
	if !o.IsBox() {
		return property.CompositingNone
	}
	s := o.style
	r := property.CompositingNone
	if o.layer != nil && s.Transform.Has3D() {
		r |= property.Compositing3DTransform
	}
	if s.HasCurrentTransformAnimation() {
		r |= property.CompositingActiveTransformAnimation
	}
	if s.WillChange.Has(css.WillChangeTransform) {
		r |= property.CompositingWillChangeTransform
	}
	if s.BackfaceHidden {
		r |= property.CompositingBackfaceVisibilityHidden
	}
	if o.layer != nil && (s.HasPerspective() || s.Preserves3D) && o.Has3DDescendants() {
		if s.HasPerspective() {
			r |= property.CompositingPerspectiveWith3DDescendants
		}
		if s.Preserves3D {
			r |= property.CompositingPreserve3DWith3DDescendants
		}
	}
	return r
}

// CompositingReasonsForEffect are the direct compositing reasons of an
// effect node for o.
func (o *Object) CompositingReasonsForEffect() property.CompositingReasons {
	r := property.CompositingNone
	if o.style.HasCurrentOpacityAnimation() {
		r |= property.CompositingActiveOpacityAnimation
	}
	if o.style.WillChange.Has(css.WillChangeOpacity) {
		r |= property.CompositingWillChangeOpacity
	}
	return r
}

// CompositingReasonsForFilter are the direct compositing reasons of a filter
// node for o.
func (o *Object) CompositingReasonsForFilter() property.CompositingReasons {
	if o.style.HasCurrentFilterAnimation() {
		return property.CompositingActiveFilterAnimation
	}
	return property.CompositingNone
}

// DirectCompositingReasons unites all direct compositing reasons of o.
func (o *Object) DirectCompositingReasons() property.CompositingReasons {
	if !o.IsBoxModelObject() {
		return property.CompositingNone
	}
	return o.CompositingReasonsForTransform() | o.CompositingReasonsForEffect() |
		o.CompositingReasonsForFilter()
}
