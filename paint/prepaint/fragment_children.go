package prepaint

import (
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/paint/property"
)

func (b *fragmentBuilder) updateInnerBorderRadiusClip(needed bool) {
	p, cur := b.properties, &b.ctx.Current
	if b.needsUpdate() {
		if needed {
			b.updateClip(p.InnerBorderRadiusClip(), property.ClipValues{
				LocalTransformSpace: cur.Transform,
				ClipRect:            b.object.InnerBorderRoundedRect(cur.PaintOffset),
			}, p.UpdateInnerBorderRadiusClip)
		} else {
			b.onClearClip(p.ClearInnerBorderRadiusClip())
		}
	}
	if c := p.InnerBorderRadiusClip(); c != nil {
		cur.Clip = c
	}
}

func (b *fragmentBuilder) updateOverflowClip(needed bool) {
	p, cur := b.properties, &b.ctx.Current
	if b.needsUpdate() {
		if needed {
			o := b.object
			rect := o.OverflowClipRect(cur.PaintOffset, false).ToFloat()
			excluding := o.OverflowClipRect(cur.PaintOffset, true).ToFloat()
			if excluding == rect {
				excluding = geom.FloatRect{}
			}
			b.updateClip(p.OverflowClip(), property.ClipValues{
				LocalTransformSpace:                cur.Transform,
				ClipRect:                           geom.RoundedRect(rect),
				ClipRectExcludingOverlayScrollbars: excluding,
			}, p.UpdateOverflowClip)
		} else {
			b.onClearClip(p.ClearOverflowClip())
		}
	}
	if c := p.OverflowClip(); c != nil {
		cur.Clip = c
	}
}

// updatePerspective creates a perspective node which never flattens, but
// extends the rendering context of its parent.
func (b *fragmentBuilder) updatePerspective(needed bool) {
	p, cur := b.properties, &b.ctx.Current
	if b.needsUpdate() {
		if needed {
			s := b.object.Style()
			origin := s.PerspOrigin.Resolve(b.object.Size().ToFloat())
			offset := cur.PaintOffset.ToFloat()
			origin.X += offset.X
			origin.Y += offset.Y
			b.onUpdate(p.UpdatePerspective(cur.Transform, property.TransformValues{
				Matrix:                     geom.Identity().ApplyPerspective(s.Perspective),
				Origin:                     origin,
				FlattensInheritedTransform: cur.ShouldFlattenInheritedTransform,
				RenderingContextID:         cur.RenderingContextID,
			}))
		} else {
			b.onClear(p.ClearPerspective())
		}
	}
	if t := p.Perspective(); t != nil {
		cur.Transform = t
		cur.ShouldFlattenInheritedTransform = false
	}
}

// updateSvgLocalToBorderBoxTransform maps the content of SVG roots to their
// pixel-snapped border box. SVG content does not use paint offsets, so the
// paint offset is reset afterwards.
func (b *fragmentBuilder) updateSvgLocalToBorderBoxTransform(needed bool) {
	o, p, cur := b.object, b.properties, &b.ctx.Current
	if !o.IsSVGRoot() {
		return
	}
	if b.needsUpdate() {
		snapped := cur.PaintOffset.Rounded()
		m := geom.FromAffine(o.LocalToBorderBoxTransform()).PostTranslate(float64(snapped.X), float64(snapped.Y))
		if needed && !m.IsIdentity() {
			b.onUpdate(p.UpdateSvgLocalToBorderBoxTransform(cur.Transform, property.TransformValues{
				Matrix: m,
			}))
		} else {
			b.onClear(p.ClearSvgLocalToBorderBoxTransform())
		}
	}
	if t := p.SvgLocalToBorderBoxTransform(); t != nil {
		cur.Transform = t
		cur.ShouldFlattenInheritedTransform = false
		cur.RenderingContextID = 0
	}
	cur.PaintOffset = geom.LayoutPoint{}
}

// --- Scrolling --------------------------------------------------------------

// mainThreadScrollingReasons are inherited from the enclosing scroller.
// Custom scrollbars are painted on the main thread.
func (b *fragmentBuilder) mainThreadScrollingReasons(ancestor property.MainThreadScrollingReasons) property.MainThreadScrollingReasons {
	reasons := ancestor
	if sa := b.object.ScrollableArea(); sa != nil && sa.CustomScrollbars {
		reasons |= property.CustomScrollbarScrolling
	}
	return reasons
}

func (b *fragmentBuilder) updateScrollAndScrollTranslation(needed bool) {
	o, p, cur := b.object, b.properties, &b.ctx.Current
	if b.needsUpdate() {
		if needsScrollNode(o) {
			sa := o.ScrollableArea()
			// container bounds and contents are snapped to integers
			container := o.OverflowClipRect(cur.PaintOffset, false).PixelSnapped()
			contents := sa.ContentsRect().MoveBy(container.Origin)
			reasons := b.mainThreadScrollingReasons(cur.Scroll.MainThreadScrollingReasons())
			// Reasons of descendant scrollers depend on these.
			if s := p.Scroll(); s != nil && s.MainThreadScrollingReasons() != reasons {
				b.full.ForceSubtreeUpdate = true
			}
			b.onUpdate(p.UpdateScroll(cur.Scroll, property.ScrollValues{
				ContainerRect:              container,
				ContentsRect:               contents,
				UserScrollableHorizontal:   sa.UserInputScrollable(true),
				UserScrollableVertical:     sa.UserInputScrollable(false),
				MainThreadScrollingReasons: reasons,
				CompositorElementID:        property.ElementID{ID: o.ID(), Namespace: property.NamespaceScroll},
			}))
		} else {
			b.onClear(p.ClearScroll())
		}
		// Boxes with a static scroll offset, e.g. overflow: hidden, get a
		// scroll translation without a scroll node.
		if needed {
			off := o.ScrolledContentOffset()
			b.onUpdate(p.UpdateScrollTranslation(cur.Transform, property.TransformValues{
				Matrix:                     geom.TranslationMatrix(-float64(off.Width.Round()), -float64(off.Height.Round())),
				FlattensInheritedTransform: cur.ShouldFlattenInheritedTransform,
				RenderingContextID:         cur.RenderingContextID,
				Scroll:                     p.Scroll(),
			}))
		} else {
			b.onClear(p.ClearScrollTranslation())
		}
	}
	if s := p.Scroll(); s != nil {
		cur.Scroll = s
	}
	if t := p.ScrollTranslation(); t != nil {
		cur.Transform = t
		cur.ShouldFlattenInheritedTransform = false
	}
}

// --- Out-of-flow context ----------------------------------------------------

// updateOutOfFlowContext prepares the contexts for floats and for absolute
// and fixed position descendants.
func (b *fragmentBuilder) updateOutOfFlowContext(bool) {
	o, p := b.object, b.properties
	if !o.IsBoxModelObject() && p == nil {
		return
	}
	fc := b.ctx
	if o.IsLayoutBlock() {
		fc.PaintOffsetForFloat = fc.Current.PaintOffset
	}
	if o.CanContainAbsolutePositionObjects() {
		fc.AbsolutePosition = fc.Current
	}
	switch {
	case o.IsLayoutView():
		// The frame view has set up the fixed position context.
	case o.CanContainFixedPositionObjects():
		fc.FixedPosition = fc.Current
		fc.FixedPosition.FixedPositionChildrenFixedToRoot = false
	case p != nil && p.CssClip() != nil:
		// CSS clip applies to all descendants, including fixed position
		// descendants for which o is not the containing block. Reuse the
		// clip if both contexts share its parent.
		cssClip := p.CssClip()
		if fc.FixedPosition.Clip == cssClip.Parent() {
			fc.FixedPosition.Clip = cssClip
			break
		}
		if b.needsUpdate() {
			b.onUpdate(p.UpdateCssClipFixedPosition(fc.FixedPosition.Clip, property.ClipValues{
				LocalTransformSpace: cssClip.LocalTransformSpace(),
				ClipRect:            cssClip.ClipRect(),
			}))
		}
		if c := p.CssClipFixedPosition(); c != nil {
			fc.FixedPosition.Clip = c
		}
		return
	}
	if needsFilter(o) {
		if fc.Current.differs(fc.AbsolutePosition) {
			fc.AbsolutePosition.ContainingBlockChangedUnderFilter = true
		}
		if fc.Current.differs(fc.FixedPosition) {
			fc.FixedPosition.ContainingBlockChangedUnderFilter = true
		}
	}
	if b.needsUpdate() && p != nil {
		b.onClear(p.ClearCssClipFixedPosition())
	}
}
