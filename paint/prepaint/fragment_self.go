package prepaint

import (
	"github.com/gogpu/gg/scene"
	"github.com/npillmayer/paintprops/dom/style/css"
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/layout"
	"github.com/npillmayer/paintprops/paint/property"
)

// --- Bookkeeping of node changes --------------------------------------------

// onUpdate records the result of a transform, effect or scroll slot update.
func (b *fragmentBuilder) onUpdate(r property.UpdateResult) {
	b.full.nodeCreated(r)
}

// onClear records the removal of a transform, effect or scroll node.
func (b *fragmentBuilder) onClear(removed bool) {
	b.full.nodeRemoved(removed)
}

// updateClip updates a clip slot. A new clip rect of an existing node flags
// a clip change, as does creation of a node.
func (b *fragmentBuilder) updateClip(existing *property.ClipNode, v property.ClipValues,
	update func(*property.ClipNode, property.ClipValues) property.UpdateResult) {
	//
	if existing != nil && existing.ClipRect() != v.ClipRect {
		b.full.ClipChanged = true
	}
	if b.full.nodeCreated(update(b.ctx.Current.Clip, v)) {
		b.full.ClipChanged = true
	}
}

// onClearClip records the removal of a clip node.
func (b *fragmentBuilder) onClearClip(removed bool) {
	if b.full.nodeRemoved(removed) {
		b.full.ClipChanged = true
	}
}

// --- Fragment clip ----------------------------------------------------------

func (b *fragmentBuilder) updateFragmentClip(needed bool) {
	if !b.needsUpdate() {
		return
	}
	p, cur := b.properties, &b.ctx.Current
	var clip geom.LayoutRect
	// The fragmentainer iterator may not produce a clip even for fragmented
	// layers.
	switch m := b.ctx.FragmentClip.Match(); m {
	case m.Just(&clip):
		if needed {
			b.updateClip(p.FragmentClip(), property.ClipValues{
				LocalTransformSpace: cur.Transform,
				ClipRect:            geom.RoundedRect(clip.ToFloat()),
			}, p.UpdateFragmentClip)
			return
		}
	}
	b.onClearClip(p.ClearFragmentClip())
}

// --- Paint offset translation -----------------------------------------------

func (b *fragmentBuilder) updatePaintOffsetTranslation(bool) {
	p, cur := b.properties, &b.ctx.Current
	var t geom.IntPoint
	switch m := b.paintOffsetTranslation.Match(); m {
	case m.Just(&t):
		b.onUpdate(p.UpdatePaintOffsetTranslation(cur.Transform, property.TransformValues{
			Matrix:                     geom.TranslationMatrix(float64(t.X), float64(t.Y)),
			FlattensInheritedTransform: cur.ShouldFlattenInheritedTransform,
			RenderingContextID:         cur.RenderingContextID,
		}))
		cur.Transform = p.PaintOffsetTranslation()
	case m.Nothing():
		b.onClear(p.ClearPaintOffsetTranslation())
	}
}

// --- Transform --------------------------------------------------------------

func (b *fragmentBuilder) updateTransform(needed bool) {
	if b.object.IsSVGChild() {
		b.updateTransformForNonRootSVG(needed)
		return
	}
	p, cur := b.properties, &b.ctx.Current
	if b.needsUpdate() {
		if needed {
			o := b.object
			s := o.Style()
			size := o.Size().ToFloat()
			var origin geom.FloatPoint3D
			if s.HasTransform() { // origin is irrelevant without a transform
				origin = s.Origin.Resolve(size)
			}
			// preserve-3d outside of a rendering context establishes a new one
			renderingContext := cur.RenderingContextID
			if s.Preserves3D && renderingContext == 0 {
				renderingContext = o.ID()
			}
			b.onUpdate(p.UpdateTransform(cur.Transform, property.TransformValues{
				Matrix:                     s.Transform.Matrix(size),
				Origin:                     origin,
				FlattensInheritedTransform: cur.ShouldFlattenInheritedTransform,
				RenderingContextID:         renderingContext,
				DirectCompositingReasons:   o.CompositingReasonsForTransform(),
				CompositorElementID:        property.ElementID{ID: o.ID(), Namespace: property.NamespacePrimary},
			}))
		} else {
			b.onClear(p.ClearTransform())
		}
	}
	if t := p.Transform(); t != nil {
		cur.Transform = t
		if b.object.Style().Preserves3D {
			cur.RenderingContextID = t.RenderingContextID()
			cur.ShouldFlattenInheritedTransform = false
		} else {
			cur.RenderingContextID = 0
			cur.ShouldFlattenInheritedTransform = true
		}
	}
}

// updateTransformForNonRootSVG creates 2D transforms for SVG content. The
// origin is part of the local SVG transform.
func (b *fragmentBuilder) updateTransformForNonRootSVG(needed bool) {
	p, cur := b.properties, &b.ctx.Current
	assertThat(cur.PaintOffset.IsZero(), "SVG content %v with paint offset %v", b.object, cur.PaintOffset)
	if b.needsUpdate() {
		if needed {
			b.onUpdate(p.UpdateTransform(cur.Transform, property.TransformValues{
				Matrix: geom.FromAffine(b.object.LocalToSVGParentTransform()),
			}))
		} else {
			b.onClear(p.ClearTransform())
		}
	}
	if t := p.Transform(); t != nil {
		cur.Transform = t
		cur.ShouldFlattenInheritedTransform = false
		cur.RenderingContextID = 0
	}
}

// --- CSS clip ---------------------------------------------------------------

func (b *fragmentBuilder) updateCssClip(needed bool) {
	p, cur := b.properties, &b.ctx.Current
	if b.needsUpdate() {
		if needed {
			// Absolute descendants pick this clip up with the in-flow context
			// in updateOutOfFlowContext, as o contains them.
			assertThat(b.object.CanContainAbsolutePositionObjects(), "CSS clip on non-container %v", b.object)
			rect := b.object.ClipRect(cur.PaintOffset)
			b.updateClip(p.CssClip(), property.ClipValues{
				LocalTransformSpace: cur.Transform,
				ClipRect:            geom.RoundedRect(rect.ToFloat()),
			}, p.UpdateCssClip)
		} else {
			b.onClearClip(p.ClearCssClip())
		}
	}
	if c := p.CssClip(); c != nil {
		cur.Clip = c
	}
}

// --- Effect -----------------------------------------------------------------

// maskParameters computes the clip of a mask and the color filter of the
// mask node. ok is false if o has no mask.
func maskParameters(o *layout.Object, paintOffset geom.LayoutPoint) (clip geom.IntRect,
	filter property.ColorFilter, ok bool) {
	//
	var mask css.MaskT
	if o.IsSVGChild() {
		if !o.HasSVGMasker() {
			return
		}
		mask = o.SVGInfo().Masker
		bbox := geom.LayoutRect{Origin: o.PhysicalLocation(), Size: o.Size()}
		clip = bbox.ToFloat().EnclosingIntRect()
	} else {
		if !o.Style().HasMask() {
			return
		}
		mask = o.Style().Mask
		// the mask painting area extends to the border box at most
		clip = o.BorderBoxRect().MoveBy(paintOffset).PixelSnapped()
	}
	if mask == css.MaskLuminance {
		filter = property.ColorFilterLuminanceToAlpha
	}
	return clip, filter, true
}

func (b *fragmentBuilder) updateEffect(needed bool) {
	p, cur := b.properties, &b.ctx.Current
	if b.needsUpdate() {
		if needed {
			o := b.object
			outputClip := cur.Clip
			maskClip, colorFilter, hasMask := maskParameters(o, cur.PaintOffset)
			if hasMask {
				b.updateClip(p.MaskClip(), property.ClipValues{
					LocalTransformSpace: cur.Transform,
					ClipRect:            geom.RoundedRect(maskClip.ToFloat()),
				}, p.UpdateMaskClip)
				outputClip = p.MaskClip()
			} else {
				b.onClearClip(p.ClearMaskClip())
			}
			b.onUpdate(p.UpdateEffect(b.ctx.CurrentEffect, property.EffectValues{
				LocalTransformSpace:      cur.Transform,
				OutputClip:               outputClip,
				Opacity:                  o.Style().Opacity,
				BlendMode:                blendMode(o),
				DirectCompositingReasons: o.CompositingReasonsForEffect(),
				CompositorElementID:      property.ElementID{ID: o.ID(), Namespace: property.NamespacePrimary},
			}))
			if hasMask {
				b.onUpdate(p.UpdateMask(p.Effect(), property.EffectValues{
					LocalTransformSpace: cur.Transform,
					OutputClip:          outputClip,
					ColorFilter:         colorFilter,
					Opacity:             1,
					BlendMode:           scene.BlendDestinationIn,
					CompositorElementID: property.ElementID{ID: o.ID(), Namespace: property.NamespaceEffectMask},
				}))
			} else {
				b.onClear(p.ClearMask())
			}
		} else {
			b.onClear(p.ClearEffect())
			b.onClear(p.ClearMask())
			b.onClearClip(p.ClearMaskClip())
		}
	}
	if e := p.Effect(); e != nil {
		b.ctx.CurrentEffect = e
		if c := p.MaskClip(); c != nil {
			cur.Clip = c
			b.ctx.AbsolutePosition.Clip = c
			b.ctx.FixedPosition.Clip = c
		}
	}
}

// --- Filter -----------------------------------------------------------------

// filterOperations converts the CSS filter functions of o. A box reflection
// is recorded as an identity operation following the CSS filters, so that
// it takes part in change detection.
func filterOperations(o *layout.Object) property.FilterOperations {
	var ops property.FilterOperations
	for _, f := range o.Style().Filter {
		ops = append(ops, property.FilterOperation{Type: f.Type, Amount: f.Amount})
	}
	if o.HasReflection() {
		ops = append(ops, property.FilterOperation{Type: scene.FilterNone, Amount: o.Size().Height.ToFloat()})
	}
	return ops
}

func (b *fragmentBuilder) updateFilter(needed bool) {
	p, cur := b.properties, &b.ctx.Current
	if b.needsUpdate() {
		if needed {
			o := b.object
			// The output of the filter is clipped by the clips applying to o.
			// Content painting into the filter's input ignores them.
			b.onUpdate(p.UpdateFilter(b.ctx.CurrentEffect, property.EffectValues{
				LocalTransformSpace:      cur.Transform,
				OutputClip:               cur.Clip,
				Filter:                   filterOperations(o),
				Opacity:                  1,
				BlendMode:                scene.BlendNormal,
				DirectCompositingReasons: o.CompositingReasonsForFilter(),
				CompositorElementID:      property.ElementID{ID: o.ID(), Namespace: property.NamespaceEffectFilter},
				PaintOffset:              cur.PaintOffset.ToFloat(),
			}))
		} else {
			b.onClear(p.ClearFilter())
		}
	}
	if f := p.Filter(); f != nil {
		b.ctx.CurrentEffect = f
		clip := f.OutputClip()
		cur.Clip = clip
		b.ctx.AbsolutePosition.Clip = clip
		b.ctx.FixedPosition.Clip = clip
	}
}

// --- Local border box -------------------------------------------------------

func (b *fragmentBuilder) updateLocalBorderBoxContext(bool) {
	if !b.needsUpdate() {
		return
	}
	o := b.object
	if !o.HasLayer() && !needsPaintOffsetTranslation(o) {
		b.fragment.ClearLocalBorderBoxProperties()
		return
	}
	clip := b.ctx.Current.Clip
	if b.properties != nil && b.properties.FragmentClip() != nil {
		clip = b.properties.FragmentClip()
	}
	b.fragment.SetLocalBorderBoxProperties(property.State{
		Transform: b.ctx.Current.Transform,
		Clip:      clip,
		Effect:    b.ctx.CurrentEffect,
	})
}
