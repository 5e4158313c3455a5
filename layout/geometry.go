package layout

import (
	"github.com/npillmayer/paintprops/dom/style/css"
	"github.com/npillmayer/paintprops/geom"
)

// IsFloating is true for floated boxes.
func (o *Object) IsFloating() bool {
	return o.style.Floating && o.IsBox() && !o.style.Position.IsOutOfFlowPositioned()
}

// IsFloatingWithNonContainingBlockParent is true for floats whose parent is
// an inline box. Such floats are painted by their containing block.
func (o *Object) IsFloatingWithNonContainingBlockParent() bool {
	if !o.IsFloating() {
		return false
	}
	p := o.ParentObject()
	return p != nil && !p.IsLayoutBlock()
}

// IsColumnSpanAll is true for boxes spanning all columns of a multicol
// container.
func (o *Object) IsColumnSpanAll() bool {
	if !o.style.ColumnSpanAll || !o.IsBox() {
		return false
	}
	p := o.ParentObject()
	return p != nil && p.IsLayoutFlowThread()
}

// IsInFlowPositioned is true for relative and sticky boxes.
func (o *Object) IsInFlowPositioned() bool {
	return o.IsBoxModelObject() && o.style.Position.IsInFlowPositioned()
}

// IsOutOfFlowPositioned is true for absolute and fixed boxes.
func (o *Object) IsOutOfFlowPositioned() bool {
	return o.IsBoxModelObject() && o.style.Position.IsOutOfFlowPositioned()
}

func (o *Object) IsFixedPositioned() bool {
	return o.IsBoxModelObject() && o.style.Position.IsFixed()
}

func (o *Object) IsAbsolutePositioned() bool {
	return o.IsBoxModelObject() && o.style.Position.IsAbsolute()
}

func (o *Object) IsStickyPositioned() bool {
	return o.IsBoxModelObject() && o.style.Position.IsSticky()
}

// CanContainFixedPositionObjects is true for the view and for blocks with
// transform related properties.
func (o *Object) CanContainFixedPositionObjects() bool {
	return o.IsLayoutView() || (o.IsLayoutBlock() && o.style.HasTransformRelatedProperty())
}

// CanContainAbsolutePositionObjects is true for positioned boxes and for
// every object which may contain fixed position objects.
func (o *Object) CanContainAbsolutePositionObjects() bool {
	return (o.IsBoxModelObject() && o.style.IsPositioned()) || o.CanContainFixedPositionObjects()
}

// Container returns the object the location of o is relative to.
func (o *Object) Container() *Object {
	p := o.ParentObject()
	if p == nil || o.IsText() {
		return p
	}
	switch {
	case o.IsColumnSpanAll():
		return p.ParentObject() // the multicol container
	case o.IsFixedPositioned():
		for p != nil && !p.CanContainFixedPositionObjects() {
			p = p.ParentObject()
		}
	case o.IsAbsolutePositioned():
		for p != nil && !p.CanContainAbsolutePositionObjects() {
			p = p.ParentObject()
		}
	}
	return p
}

// ContainingBlock returns the nearest block container of o, starting at its
// container.
func (o *Object) ContainingBlock() *Object {
	c := o.Container()
	for c != nil && !c.IsLayoutBlock() {
		c = c.ParentObject()
	}
	return c
}

// OffsetFromContainer is the offset of o's border box origin from the border
// box origin of container c, after scrolling of c. Inline boxes do not add
// their location: content inside inlines is positioned relative to the
// containing block.
func (o *Object) OffsetFromContainer(c *Object) geom.LayoutSize {
	var offset geom.LayoutSize
	if o.IsInFlowPositioned() {
		offset = o.inFlowOffset
	}
	if o.IsBox() {
		offset = offset.Add(o.location.ToSize())
		if o.IsTableCell() && c != nil && c.IsTableRow() {
			offset = offset.Add(c.location.ToSize().Neg())
		}
	}
	if c != nil {
		if c.HasOverflowClip() {
			offset = offset.Add(c.ScrolledContentOffset().Neg())
		}
		if o.IsOutOfFlowPositioned() && c.IsLayoutInline() && c.IsInFlowPositioned() {
			offset = offset.Add(c.OffsetForInFlowPositionedInline())
		}
	}
	return offset
}

// OffsetFromAncestorContainer sums up container offsets from o up to
// ancestor. Transforms are ignored. If ancestor is not in the container
// chain of o, the offset from the root is returned.
func (o *Object) OffsetFromAncestorContainer(ancestor *Object) geom.LayoutSize {
	var offset geom.LayoutSize
	for cur := o; cur != ancestor; {
		next := cur.Container()
		if next == nil {
			break
		}
		offset = offset.Add(cur.OffsetFromContainer(next))
		cur = next
	}
	return offset
}

// OffsetForInFlowPositionedInline is the position of the first line box of
// an inline box, which absolute descendants of a relative inline are placed
// relative to.
func (o *Object) OffsetForInFlowPositionedInline() geom.LayoutSize {
	if !o.IsLayoutInline() {
		return geom.LayoutSize{}
	}
	return o.location.ToSize()
}

// ScrolledContentOffset is the scroll offset of a box with overflow clip.
func (o *Object) ScrolledContentOffset() geom.LayoutSize {
	if o.scrollableArea == nil {
		return geom.LayoutSize{}
	}
	off := o.scrollableArea.ScrollOffset
	return geom.LayoutSize{Width: geom.Px(off.Width), Height: geom.Px(off.Height)}
}

// HasOverflowClip is true for blocks which clip their content.
func (o *Object) HasOverflowClip() bool {
	return o.IsLayoutBlock() && !o.IsLayoutView() && !o.IsLayoutFlowThread() &&
		o.style.ClipsOverflow()
}

// ScrollsOverflow is true for boxes with overflow clip which either force
// scrollbars or have overflowing content.
func (o *Object) ScrollsOverflow() bool {
	if !o.HasOverflowClip() || o.scrollableArea == nil {
		return false
	}
	s := o.style
	return s.OverflowX == css.OverflowScroll || s.OverflowY == css.OverflowScroll ||
		o.scrollableArea.HasScrollableOverflow()
}

// HasTransformRelatedProperty is true for boxes with transforms, perspective
// or preserve-3d. Inline boxes ignore these properties.
func (o *Object) HasTransformRelatedProperty() bool {
	return (o.IsBox() || o.IsSVGRoot()) && o.style.HasTransformRelatedProperty()
}

// HasReflection is true for layered boxes with a box reflection.
func (o *Object) HasReflection() bool {
	return o.layer != nil && o.style.Reflection
}

// HasClipRelatedProperty is true if o is subject to CSS clip, which applies
// to absolutely positioned boxes only.
func (o *Object) HasClipRelatedProperty() bool {
	return o.IsBox() && o.IsOutOfFlowPositioned() && o.style.HasClip()
}

// IsStackingContext is true if o establishes a stacking context.
func (o *Object) IsStackingContext() bool {
	return o.IsLayoutView() || (o.IsBoxModelObject() && o.style.IsStackingContext())
}

// IsBlendingAllowed is true for objects which may blend with their
// backdrop.
func (o *Object) IsBlendingAllowed() bool {
	return o.IsBoxModelObject() || (o.IsSVGChild() && !o.IsSVGHiddenContainer())
}

// HasNonIsolatedBlendingDescendants is true if a descendant blends with the
// backdrop established by o. Stacking contexts below o isolate blending.
func (o *Object) HasNonIsolatedBlendingDescendants() bool {
	var found bool
	var visit func(*Object)
	visit = func(p *Object) {
		for _, ch := range p.ChildObjects() {
			if found {
				return
			}
			if ch.IsBlendingAllowed() && ch.style.HasBlendMode() {
				found = true
				return
			}
			if !ch.IsStackingContext() {
				visit(ch)
			}
		}
	}
	visit(o)
	return found
}

// Has3DDescendants is true if a descendant has a 3D transform or preserves
// 3D.
func (o *Object) Has3DDescendants() bool {
	var found bool
	var visit func(*Object)
	visit = func(p *Object) {
		for _, ch := range p.ChildObjects() {
			if found {
				return
			}
			if ch.style.Transform.Has3D() || ch.style.Preserves3D {
				found = true
				return
			}
			visit(ch)
		}
	}
	visit(o)
	return found
}
