package prepaint

import (
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/layout"
	"github.com/npillmayer/paintprops/maybe"
	"github.com/npillmayer/paintprops/paint/property"
)

// fragmentBuilder builds the property nodes of one fragment of an object.
type fragmentBuilder struct {
	object     *layout.Object
	full       *Context
	ctx        *FragmentContext
	fragment   *layout.FragmentData
	properties *property.ObjectPaintProperties // nil if no node is needed
	// paintOffsetTranslation is the integer part of the paint offset, if
	// the object moves it into a transform node.
	paintOffsetTranslation maybe.Maybe[geom.IntPoint]
}

func newFragmentBuilder(o *layout.Object, full *Context, ctx *FragmentContext,
	fragment *layout.FragmentData) *fragmentBuilder {
	//
	return &fragmentBuilder{
		object:                 o,
		full:                   full,
		ctx:                    ctx,
		fragment:               fragment,
		properties:             fragment.PaintProperties(),
		paintOffsetTranslation: maybe.Nothing[geom.IntPoint](),
	}
}

// step is an entry of the fixed update tables. needs decides if the object
// occupies the step's slots; it is nil for steps which only propagate
// context. Steps marked withProperties are skipped for fragments without
// property nodes.
type step struct {
	name           string
	needs          func(*layout.Object, *layout.PaintLayer) bool
	withProperties bool
	update         func(b *fragmentBuilder, needed bool)
}

// selfSteps compute the nodes which apply to the object itself, in order.
// They run after the paint offset has been computed.
var selfSteps = []step{
	{"fragment-clip", needsFragmentationClip, true, (*fragmentBuilder).updateFragmentClip},
	{"paint-offset-translation", func(o *layout.Object, _ *layout.PaintLayer) bool {
		return needsPaintOffsetTranslation(o)
	}, true, (*fragmentBuilder).updatePaintOffsetTranslation},
	{"transform", func(o *layout.Object, _ *layout.PaintLayer) bool {
		return needsTransform(o) || needsTransformForNonRootSVG(o)
	}, true, (*fragmentBuilder).updateTransform},
	{"css-clip", objectOnly(needsCssClip), true, (*fragmentBuilder).updateCssClip},
	{"effect", objectOnly(needsEffect), true, (*fragmentBuilder).updateEffect},
	{"filter", objectOnly(needsFilter), true, (*fragmentBuilder).updateFilter},
	{"local-border-box", nil, false, (*fragmentBuilder).updateLocalBorderBoxContext},
}

// childSteps compute the nodes which apply to the object's contents, in
// order.
var childSteps = []step{
	{"inner-border-radius-clip", objectOnly(needsInnerBorderRadiusClip), true, (*fragmentBuilder).updateInnerBorderRadiusClip},
	{"overflow-clip", objectOnly(needsOverflowClip), true, (*fragmentBuilder).updateOverflowClip},
	{"perspective", objectOnly(needsPerspective), true, (*fragmentBuilder).updatePerspective},
	{"svg-local-to-border-box", objectOnly(needsSVGLocalToBorderBoxTransform), true, (*fragmentBuilder).updateSvgLocalToBorderBoxTransform},
	{"scroll", objectOnly(needsScrollOrScrollTranslation), true, (*fragmentBuilder).updateScrollAndScrollTranslation},
	{"out-of-flow", nil, false, (*fragmentBuilder).updateOutOfFlowContext},
}

func objectOnly(pred func(*layout.Object) bool) func(*layout.Object, *layout.PaintLayer) bool {
	return func(o *layout.Object, _ *layout.PaintLayer) bool {
		return pred(o)
	}
}

// needsUpdate is true if the nodes of the object have to be recomputed.
func (b *fragmentBuilder) needsUpdate() bool {
	return b.object.NeedsPaintPropertyUpdate() || b.full.ForceSubtreeUpdate
}

func (b *fragmentBuilder) run(steps []step) {
	for _, s := range steps {
		if s.withProperties && b.properties == nil {
			continue
		}
		needed := false
		if s.needs != nil && b.needsUpdate() {
			needed = s.needs(b.object, b.full.PaintingLayer)
		}
		s.update(b, needed)
	}
}

// UpdateForSelf computes the paint offset of the fragment and the nodes
// which apply to the object itself.
func (b *fragmentBuilder) UpdateForSelf() {
	b.updateForObjectLocationAndSize()
	b.run(selfSteps)
}

// UpdateForChildren computes the nodes which apply to the contents of the
// object and prepares the context for its children.
func (b *fragmentBuilder) UpdateForChildren() {
	b.run(childSteps)
}

// --- Paint offset -----------------------------------------------------------

func (b *fragmentBuilder) updateForObjectLocationAndSize() {
	b.updatePaintOffset()
	b.updateForPaintOffsetTranslation()
	if b.fragment.PaintOffset != b.ctx.Current.PaintOffset {
		// Most nodes depend on the paint offset.
		b.full.ForceSubtreeUpdate = true
		b.fragment.PaintOffset = b.ctx.Current.PaintOffset
	}
	if !b.paintOffsetTranslation.IsNothing() {
		b.ctx.Current.PaintOffsetRoot = b.object
	}
	setNeedsPaintPropertyUpdateIfNeeded(b.object)
}

func (b *fragmentBuilder) updatePaintOffset() {
	o := b.object
	cur := &b.ctx.Current
	// Paint offsets of fragmented content are computed from scratch, unless
	// the paint offset root is paginated itself. In that case the pagination
	// offset is part of its paint offset translation.
	if pagination := b.full.PaintingLayer.EnclosingPaginationLayer(); pagination != nil &&
		cur.PaintOffsetRoot.PaintingLayer().EnclosingPaginationLayer() == nil {
		//
		offset := paintOffsetInPaginationContainer(o, pagination)
		offset = offset.MoveBy(b.fragment.PaginationOffset)
		offset = offset.Add(b.ctx.RepeatingPaintOffsetAdjustment)
		offset = offset.MoveBy(visualOffsetFromPaintOffsetRoot(b.ctx, pagination))
		offset = offset.MoveBy(cur.PaintOffsetRoot.FirstFragment().PaintOffset)
		cur.PaintOffset = offset
		return
	}
	if o.IsFloating() {
		cur.PaintOffset = b.ctx.PaintOffsetForFloat
	}
	if o.IsColumnSpanAll() {
		// spanners paint relative to the multicol container
		cur.PaintOffset = o.Container().FirstFragment().PaintOffset
	}
	if o.IsBoxModelObject() {
		switch {
		case o.IsInFlowPositioned():
			cur.PaintOffset = cur.PaintOffset.Add(o.OffsetForInFlowPosition())
		case o.IsAbsolutePositioned():
			container := b.full.ContainerForAbsolutePosition
			assertThat(container == o.Container(), "container for absolute position of %v is %v",
				o, container)
			b.ctx.Current = b.ctx.AbsolutePosition
			if container != nil && container.IsInFlowPositioned() && container.IsLayoutInline() {
				cur.PaintOffset = cur.PaintOffset.Add(container.OffsetForInFlowPositionedInline())
			}
		case o.IsFixedPositioned():
			b.ctx.Current = b.ctx.FixedPosition
			// Content of an element fixed to the viewport is relative to the
			// element, which lives above the scroll translation of the view.
			if b.ctx.FixedPosition.FixedPositionChildrenFixedToRoot {
				cur.PaintOffsetRoot = o
			}
		}
	}
	if cur.ContainingBlockChangedUnderFilter {
		tracer().Debugf("containing block of %v changed under a filter", o)
	}
	if o.IsBox() {
		cur.PaintOffset = cur.PaintOffset.MoveBy(o.PhysicalLocation())
		// Table cells paint as children of rows, but their location is
		// relative to the section.
		if o.IsTableCell() {
			row := o.ParentObject()
			assertThat(row != nil && row.IsTableRow(), "table cell %v outside of a row", o)
			cur.PaintOffset = cur.PaintOffset.MoveBy(row.PhysicalLocation().Neg())
		}
	}
}

// paintOffsetInPaginationContainer maps the origin of o to the flow thread
// of a pagination layer. Objects without box and layer use the offset of
// their containing block.
func paintOffsetInPaginationContainer(o *layout.Object, pagination *layout.PaintLayer) geom.LayoutPoint {
	if !o.IsBox() && !o.HasLayer() {
		if cb := o.ContainingBlock(); cb != nil {
			return paintOffsetInPaginationContainer(cb, pagination)
		}
	}
	return o.OffsetFromAncestorContainer(pagination.Object()).ToPoint()
}

// visualOffsetFromPaintOffsetRoot is the offset of layer child from the paint
// offset root of fc, in visual coordinates.
func visualOffsetFromPaintOffsetRoot(fc *FragmentContext, child *layout.PaintLayer) geom.LayoutPoint {
	root := fc.Current.PaintOffsetRoot
	painting := root.PaintingLayer()
	result := child.VisualOffsetFromAncestor(painting)
	if !root.HasLayer() || root.Layer() != painting {
		result = result.Add(root.OffsetFromAncestorContainer(painting.Object()).Neg())
	}
	// scroll offsets are part of scroll translation nodes
	if root.HasOverflowClip() {
		result = result.Add(root.ScrolledContentOffset())
	}
	return result
}

// setNeedsPaintPropertyUpdateIfNeeded marks objects whose nodes depend on
// their size if the size changed since the last pass. Fragmented layers
// are always recomputed.
func setNeedsPaintPropertyUpdateIfNeeded(o *layout.Object) {
	if !o.IsBoxModelObject() {
		return
	}
	if o.HasLayer() && o.Layer().ShouldFragmentCompositedBounds() {
		o.SetNeedsPaintPropertyUpdate()
		return
	}
	if !o.IsBox() || o.Size() == o.PreviousSize() {
		return
	}
	s := o.Style()
	if needsOverflowClip(o) || needsInnerBorderRadiusClip(o) || needsCssClip(o) ||
		s.HasTransform() || needsPerspective(o) || s.HasMask() || o.HasReflection() {
		//
		o.SetNeedsPaintPropertyUpdate()
	}
}

func (b *fragmentBuilder) updateForPaintOffsetTranslation() {
	b.paintOffsetTranslation = maybe.Nothing[geom.IntPoint]()
	if !needsPaintOffsetTranslation(b.object) {
		return
	}
	b.paintOffsetTranslation = maybe.Just(applyPaintOffsetTranslation(b.object, &b.ctx.Current.PaintOffset))
}

// applyPaintOffsetTranslation splits offset into an integer translation,
// which is returned, and a fractional remainder, which stays in offset. The
// remainder is dropped if the object's transform is not a translation,
// as it could not be transformed consistently.
func applyPaintOffsetTranslation(o *layout.Object, offset *geom.LayoutPoint) geom.IntPoint {
	translation := offset.Rounded()
	fraction := offset.Sub(translation.ToLayout()).ToPoint()
	if !fraction.IsZero() {
		m := o.Style().Transform.Matrix(geom.FloatSize{})
		if !m.IsIdentityOrTranslation() {
			fraction = geom.LayoutPoint{}
		}
	}
	*offset = fraction
	return translation
}
