package prepaint

import (
	"github.com/gogpu/gg/scene"
	"github.com/npillmayer/paintprops/layout"
)

// Predicates deciding which property nodes an object needs. They depend on
// the layout object only, except for fragmentation, which depends on the
// painting layer.

func needsScrollNode(o *layout.Object) bool {
	return o.HasOverflowClip() && o.ScrollsOverflow()
}

// needsScrollOrScrollTranslation is true for scrollers and for boxes with a
// static scroll offset, e.g. overflow: hidden scrolled by script.
func needsScrollOrScrollTranslation(o *layout.Object) bool {
	if !o.HasOverflowClip() {
		return false
	}
	off := o.ScrolledContentOffset()
	scrolled := off.Width.Round() != 0 || off.Height.Round() != 0
	return scrolled || needsScrollNode(o)
}

func needsSVGLocalToBorderBoxTransform(o *layout.Object) bool {
	return o.IsSVGRoot()
}

func needsPaintOffsetTranslationForScrollbars(o *layout.Object) bool {
	if sa := o.ScrollableArea(); sa != nil {
		return sa.HasHorizontalScrollbar() || sa.HasVerticalScrollbar()
	}
	return false
}

// needsPaintOffsetTranslation is true for objects which move the integer
// part of their paint offset into a transform node. The frame view provides
// the translation of the layout view.
func needsPaintOffsetTranslation(o *layout.Object) bool {
	if !o.IsBoxModelObject() || o.IsLayoutView() {
		return false
	}
	if o.HasLayer() && o.Layer().PaintsWithTransform() {
		return true
	}
	if needsScrollOrScrollTranslation(o) || needsPaintOffsetTranslationForScrollbars(o) ||
		needsSVGLocalToBorderBoxTransform(o) {
		return true
	}
	// Paint offsets do not cross composited layer boundaries. Floats and
	// column spanners may escape inlines and columns, so this is restricted
	// to blocks outside of pagination.
	return o.IsLayoutBlock() && o.HasLayer() &&
		o.Layer().EnclosingPaginationLayer() == nil &&
		o.Layer().GetCompositingState() == layout.PaintsIntoOwnBacking
}

func needsTransformForNonRootSVG(o *layout.Object) bool {
	return o.IsSVGChild() && !o.LocalToSVGParentTransform().IsIdentity()
}

// needsTransform is true for transforms, preserve-3d and any direct
// compositing reason for transforms.
func needsTransform(o *layout.Object) bool {
	if !o.IsBox() {
		return false
	}
	s := o.Style()
	return s.HasTransform() || s.Preserves3D || o.CompositingReasonsForTransform() != 0
}

// blendMode is the blend mode an object paints with.
func blendMode(o *layout.Object) scene.BlendMode {
	if o.IsBlendingAllowed() {
		return o.Style().BlendMode
	}
	return scene.BlendNormal
}

// needsEffect is true for isolated groups: opacity, blending, masks and
// stacking contexts with blending descendants.
func needsEffect(o *layout.Object) bool {
	s := o.Style()
	isolatedGroup := o.IsBoxModelObject() && o.IsStackingContext()
	if !isolatedGroup && !o.IsSVGChild() {
		return false
	}
	if o.IsSVG() {
		if o.IsSVGRoot() && o.HasNonIsolatedBlendingDescendants() {
			return true
		}
		if o.IsSVGIsolationRequired() {
			return true
		}
	} else if o.HasLayer() && o.Layer().HasNonIsolatedDescendantWithBlendMode() {
		return true
	}
	if blendMode(o) != scene.BlendNormal {
		return true
	}
	if s.Opacity != 1 || s.HasCurrentOpacityAnimation() {
		return true
	}
	return o.HasSVGMasker() || s.HasMask()
}

func needsFilter(o *layout.Object) bool {
	return o.IsBoxModelObject() && o.HasLayer() &&
		(o.Style().HasFilter() || o.HasReflection())
}

func needsFragmentation(pl *layout.PaintLayer) bool {
	return pl != nil && pl.ShouldFragmentCompositedBounds()
}

func needsFragmentationClip(o *layout.Object, pl *layout.PaintLayer) bool {
	return o.HasLayer() && needsFragmentation(pl)
}

func needsCssClip(o *layout.Object) bool {
	return o.HasClipRelatedProperty()
}

func needsOverflowClip(o *layout.Object) bool {
	return o.IsBox() && o.HasOverflowClip()
}

// needsInnerBorderRadiusClip is true for rounded boxes which clip overflow,
// and for rounded replaced content.
func needsInnerBorderRadiusClip(o *layout.Object) bool {
	if !o.Style().HasBorderRadius() {
		return false
	}
	if o.IsBox() && needsOverflowClip(o) {
		return true
	}
	return o.IsLayoutReplaced() && !o.IsSVGRoot()
}

func needsPerspective(o *layout.Object) bool {
	return o.IsBox() && o.Style().HasPerspective()
}

// objectTypeMightNeedPaintProperties is false for objects which never
// create nodes and are not fragmented, e.g. text outside of columns.
func objectTypeMightNeedPaintProperties(o *layout.Object) bool {
	if o.IsBoxModelObject() || o.IsSVG() {
		return true
	}
	pl := o.PaintingLayer()
	return pl != nil && pl.EnclosingPaginationLayer() != nil
}

// needsPaintProperties is true if any of the property slots of o will be
// occupied.
func needsPaintProperties(o *layout.Object, pl *layout.PaintLayer) bool {
	for _, s := range selfSteps {
		if s.needs != nil && s.needs(o, pl) {
			return true
		}
	}
	for _, s := range childSteps {
		if s.needs != nil && s.needs(o, pl) {
			return true
		}
	}
	return false
}
