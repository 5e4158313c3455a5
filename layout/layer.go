package layout

import (
	"github.com/npillmayer/paintprops/dom/style/css"
	"github.com/npillmayer/paintprops/geom"
)

// CompositingState tells whether a layer paints into its own backing.
type CompositingState uint8

// Compositing states.
const (
	NotComposited CompositingState = iota
	PaintsIntoOwnBacking
)

func (cs CompositingState) String() string {
	if cs == PaintsIntoOwnBacking {
		return "own-backing"
	}
	return "not-composited"
}

// PaintLayer is created for objects which paint in a stacking order of their
// own, or which clip and scroll their content.
type PaintLayer struct {
	object      *Object
	normal      bool // not only for overflow clipping
	compositing *CompositingState
}

// layerTypeRequired decides if o gets a paint layer.
func (o *Object) layerTypeRequired() bool {
	return o.normalLayerRequired() || o.HasOverflowClip()
}

func (o *Object) normalLayerRequired() bool {
	if !o.IsBoxModelObject() {
		return false
	}
	if o.IsLayoutView() || o.IsLayoutFlowThread() {
		return true
	}
	s := o.style
	if s.IsPositioned() || s.CreatesGroup() || s.BackfaceHidden || s.Reflection ||
		s.IsStackingContext() || s.HasCurrentTransformAnimation() {
		return true
	}
	if o.IsBox() && s.HasTransformRelatedProperty() {
		return true
	}
	for _, ch := range o.ChildObjects() {
		if ch.IsLayoutFlowThread() {
			return true
		}
	}
	return false
}

func (l *PaintLayer) update() {
	l.normal = l.object.normalLayerRequired()
}

// Layer returns the paint layer of o, or nil.
func (o *Object) Layer() *PaintLayer { return o.layer }

// HasLayer is true if o has a paint layer.
func (o *Object) HasLayer() bool { return o.layer != nil }

// EnclosingLayer returns the layer of the nearest ancestor-or-self with a
// layer.
func (o *Object) EnclosingLayer() *PaintLayer {
	for cur := o; cur != nil; cur = cur.ParentObject() {
		if cur.layer != nil {
			return cur.layer
		}
	}
	return nil
}

// PaintingLayer returns the self-painting layer which paints o.
func (o *Object) PaintingLayer() *PaintLayer {
	for cur := o; cur != nil; {
		if cur.layer != nil && cur.layer.IsSelfPaintingLayer() {
			return cur.layer
		}
		if cur.IsColumnSpanAll() || cur.IsFloatingWithNonContainingBlockParent() {
			cur = cur.ContainingBlock()
			continue
		}
		cur = cur.ParentObject()
	}
	return nil
}

// IsPaintInvalidationContainer is true for objects whose layer paints into
// a backing of its own.
func (o *Object) IsPaintInvalidationContainer() bool {
	return o.layer != nil && o.layer.GetCompositingState() == PaintsIntoOwnBacking
}

// Object returns the layout object owning l.
func (l *PaintLayer) Object() *Object { return l.object }

func (l *PaintLayer) String() string {
	return "layer(" + l.object.String() + ")"
}

// IsSelfPaintingLayer is true for layers which paint their content
// themselves. Layers created only for overflow clipping paint themselves
// only if they scroll.
func (l *PaintLayer) IsSelfPaintingLayer() bool {
	return l.normal || l.object.ScrollsOverflow()
}

// Parent returns the layer of the nearest ancestor with a layer.
func (l *PaintLayer) Parent() *PaintLayer {
	if p := l.object.ParentObject(); p != nil {
		return p.EnclosingLayer()
	}
	return nil
}

// ContainingLayer returns the layer of the nearest container with a layer.
func (l *PaintLayer) ContainingLayer() *PaintLayer {
	for c := l.object.Container(); c != nil; c = c.Container() {
		if c.layer != nil {
			return c.layer
		}
	}
	return nil
}

// EnclosingPaginationLayer returns the layer of the flow thread l is
// fragmented by, or nil. The layer of a flow thread is its own pagination
// layer.
func (l *PaintLayer) EnclosingPaginationLayer() *PaintLayer {
	for cur := l; cur != nil; cur = cur.ContainingLayer() {
		if cur.object.IsLayoutFlowThread() {
			return cur
		}
	}
	return nil
}

// GetCompositingState tells if l paints into its own backing. The layer of
// the layout view and layers with direct compositing reasons are composited.
func (l *PaintLayer) GetCompositingState() CompositingState {
	if l.compositing != nil {
		return *l.compositing
	}
	o := l.object
	if o.IsLayoutView() || o.DirectCompositingReasons() != 0 {
		return PaintsIntoOwnBacking
	}
	if o.style.WillChange.Has(css.WillChangeScrollPosition) && o.ScrollsOverflow() {
		return PaintsIntoOwnBacking
	}
	return NotComposited
}

// SetCompositingState overrides the compositing decision for l.
func (l *PaintLayer) SetCompositingState(cs CompositingState) {
	l.compositing = &cs
	l.object.SetNeedsPaintPropertyUpdate()
}

// EnclosingLayerWithCompositedLayerMapping returns the nearest composited
// layer in the containing layer chain.
func (l *PaintLayer) EnclosingLayerWithCompositedLayerMapping(includeSelf bool) *PaintLayer {
	start := l
	if !includeSelf {
		start = l.ContainingLayer()
	}
	for cur := start; cur != nil; cur = cur.ContainingLayer() {
		if cur.GetCompositingState() == PaintsIntoOwnBacking {
			return cur
		}
	}
	return nil
}

// ShouldFragmentCompositedBounds is true for paginated layers which are not
// part of a paginated composited layer. Composited layers inside a
// pagination container are painted unfragmented.
func (l *PaintLayer) ShouldFragmentCompositedBounds() bool {
	if l.EnclosingPaginationLayer() == nil {
		return false
	}
	c := l.EnclosingLayerWithCompositedLayerMapping(true)
	return c == nil || c.EnclosingPaginationLayer() == nil
}

// PaintsWithTransform is true for layers with a transform which are not
// composited.
func (l *PaintLayer) PaintsWithTransform() bool {
	return l.object.IsBox() && l.object.style.HasTransform() &&
		l.GetCompositingState() != PaintsIntoOwnBacking
}

// HasNonIsolatedDescendantWithBlendMode is true if a descendant in the
// stacking context of l blends with its backdrop.
func (l *PaintLayer) HasNonIsolatedDescendantWithBlendMode() bool {
	return l.object.HasNonIsolatedBlendingDescendants()
}

// ConvertToLayerCoords returns the offset of l's object from the object of
// ancestor, ignoring transforms and pagination.
func (l *PaintLayer) ConvertToLayerCoords(ancestor *PaintLayer) geom.LayoutPoint {
	if ancestor == nil || ancestor == l {
		return geom.LayoutPoint{}
	}
	return l.object.OffsetFromAncestorContainer(ancestor.object).ToPoint()
}

// PhysicalBoundingBox is the border box of l's object in the coordinates of
// ancestor.
func (l *PaintLayer) PhysicalBoundingBox(ancestor *PaintLayer) geom.LayoutRect {
	return l.object.BorderBoxRect().MoveBy(l.ConvertToLayerCoords(ancestor))
}

// VisualOffsetFromAncestor is the offset of l from ancestor in visual
// coordinates, i.e. after flow thread content has been moved to its column.
func (l *PaintLayer) VisualOffsetFromAncestor(ancestor *PaintLayer) geom.LayoutPoint {
	if ancestor == l {
		return geom.LayoutPoint{}
	}
	pagination := l.EnclosingPaginationLayer()
	if pagination == l {
		pagination = nil
		if p := l.Parent(); p != nil {
			pagination = p.EnclosingPaginationLayer()
		}
	}
	if pagination == nil {
		return l.ConvertToLayerCoords(ancestor)
	}
	offset := l.ConvertToLayerCoords(pagination)
	offset = pagination.object.flowThread.FlowThreadPointToVisualPoint(offset)
	if ancestor == pagination {
		return offset
	}
	if ancestor == nil || ancestor.EnclosingPaginationLayer() != pagination {
		return offset.MoveBy(pagination.VisualOffsetFromAncestor(ancestor))
	}
	return offset.MoveBy(ancestor.VisualOffsetFromAncestor(pagination).Neg())
}
