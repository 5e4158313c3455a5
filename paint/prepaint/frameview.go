package prepaint

import (
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/layout"
	"github.com/npillmayer/paintprops/paint/property"
)

// Frame level nodes live outside of ObjectPaintProperties. They are updated
// with the same protocol: create if missing, update in place otherwise.

func updateFrameTransform(slot **property.TransformNode, parent *property.TransformNode,
	v property.TransformValues) property.UpdateResult {
	//
	if *slot == nil {
		*slot = property.NewTransformNode(parent, v)
		return property.NewNodeCreated
	}
	if (*slot).Update(parent, v) {
		return property.ValueChanged
	}
	return property.Unchanged
}

func updateFrameClip(slot **property.ClipNode, parent *property.ClipNode,
	v property.ClipValues) property.UpdateResult {
	//
	if *slot == nil {
		*slot = property.NewClipNode(parent, v)
		return property.NewNodeCreated
	}
	if (*slot).Update(parent, v) {
		return property.ValueChanged
	}
	return property.Unchanged
}

func updateFrameScroll(slot **property.ScrollNode, parent *property.ScrollNode,
	v property.ScrollValues) property.UpdateResult {
	//
	if *slot == nil {
		*slot = property.NewScrollNode(parent, v)
		return property.NewNodeCreated
	}
	if (*slot).Update(parent, v) {
		return property.ValueChanged
	}
	return property.Unchanged
}

// frameMainThreadScrollingReasons adds the reasons of a frame to the reasons
// inherited from the enclosing frame.
func frameMainThreadScrollingReasons(fv *layout.FrameView,
	ancestor property.MainThreadScrollingReasons) property.MainThreadScrollingReasons {
	//
	reasons := ancestor
	if fv.ThreadedScrollingDisabled {
		reasons |= property.ThreadedScrollingDisabled
	}
	if fv.HasBackgroundAttachmentFixedObjects() {
		reasons |= property.HasBackgroundAttachmentFixed
	}
	return reasons
}

// UpdateFrameView builds the frame level nodes of fv and initializes the
// context for the layout view. The frame view is never fragmented, so only
// the first fragment context of ctx is used.
func UpdateFrameView(fv *layout.FrameView, ctx *Context) {
	if len(ctx.Fragments) == 0 {
		ctx.Fragments = []FragmentContext{NewFragmentContext()}
	}
	ctx.Fragments = ctx.Fragments[:1]
	fc := &ctx.Fragments[0]
	cur := &fc.Current
	// containing block state of an enclosing frame does not leak into fv
	cur.ContainingBlockChangedUnderFilter = false
	fc.AbsolutePosition.ContainingBlockChangedUnderFilter = false
	fc.FixedPosition.ContainingBlockChangedUnderFilter = false

	props := fv.Properties()
	ancestorScroll := cur.Scroll
	if fv.NeedsPaintPropertyUpdate() || ctx.ForceSubtreeUpdate {
		loc := fv.Location.MoveBy(cur.PaintOffset).ToFloat()
		ctx.nodeCreated(updateFrameTransform(&props.PreTranslation, cur.Transform, property.TransformValues{
			Matrix:                     geom.TranslationMatrix(loc.X, loc.Y),
			FlattensInheritedTransform: true,
		}))
		clip := geom.NewIntRect(0, 0, fv.VisibleContentSize.Width, fv.VisibleContentSize.Height).ToFloat()
		if fv.Printing {
			// printed frames are not clipped to the viewport
			clip = geom.InfiniteFloatRect()
		}
		if r := updateFrameClip(&props.ContentClip, cur.Clip, property.ClipValues{
			LocalTransformSpace: props.PreTranslation,
			ClipRect:            geom.RoundedRect(clip),
		}); r.Changed() {
			ctx.ClipChanged = true
			ctx.nodeCreated(r)
		}
		offset := fv.ScrollOffset
		if fv.IsScrollable() || !offset.IsZero() {
			ctx.nodeCreated(updateFrameScroll(&props.Scroll, ancestorScroll, property.ScrollValues{
				ContainerRect: geom.NewIntRect(0, 0, fv.VisibleContentSize.Width, fv.VisibleContentSize.Height),
				ContentsRect: geom.IntRect{
					Origin: fv.ScrollOrigin.Neg(),
					Size:   fv.ContentsSize,
				},
				UserScrollableHorizontal:   fv.UserInputScrollable(true),
				UserScrollableVertical:     fv.UserInputScrollable(false),
				MainThreadScrollingReasons: frameMainThreadScrollingReasons(fv, ancestorScroll.MainThreadScrollingReasons()),
				CompositorElementID:        fv.CompositorElementID(),
			}))
			ctx.nodeCreated(updateFrameTransform(&props.ScrollTranslation, props.PreTranslation, property.TransformValues{
				Matrix:                     geom.TranslationMatrix(-offset.Width, -offset.Height),
				FlattensInheritedTransform: true,
				Scroll:                     props.Scroll,
			}))
		} else {
			removed := props.Scroll != nil || props.ScrollTranslation != nil
			if props.Scroll != nil {
				ctx.nodeRemoved(true)
			}
			if props.ScrollTranslation != nil {
				ctx.nodeRemoved(true)
			}
			props.Scroll, props.ScrollTranslation = nil, nil
			if removed {
				tracer().Debugf("frame view stopped scrolling")
			}
		}
	}
	if view := fv.LayoutView(); view.HasLayer() {
		ctx.PaintingLayer = view.Layer()
	}

	cur.Transform = props.PreTranslation
	if props.ScrollTranslation != nil {
		cur.Transform = props.ScrollTranslation
		cur.Scroll = props.Scroll
	}
	cur.Clip = props.ContentClip
	cur.PaintOffset = geom.LayoutPoint{}
	cur.PaintOffsetRoot = fv.LayoutView()
	cur.RenderingContextID = 0
	cur.ShouldFlattenInheritedTransform = true
	cur.FixedPositionChildrenFixedToRoot = false
	fc.AbsolutePosition = *cur
	ctx.ContainerForAbsolutePosition = nil
	fc.FixedPosition = *cur
	fc.FixedPosition.Transform = props.PreTranslation
	fc.FixedPosition.Scroll = ancestorScroll
	fc.FixedPosition.FixedPositionChildrenFixedToRoot = true
	fc.PaintOffsetForFloat = geom.LayoutPoint{}

	fv.SetTotalPropertyTreeStateForContents(property.State{
		Transform: cur.Transform,
		Clip:      cur.Clip,
		Effect:    fc.CurrentEffect,
	})
}
