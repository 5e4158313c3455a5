package prepaint

import (
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/layout"
	"github.com/npillmayer/paintprops/maybe"
)

// contextForFragment finds the parent fragment context with the same
// fragmentainer, so that fragments are parented to the transforms and
// effects of the matching parent fragment. Fragments without a match are
// parented to the first parent fragment. Without parent fragments there is
// nothing to inherit from, and the context is a fresh one.
func contextForFragment(clip geom.LayoutRect, logicalTop geom.LayoutUnit,
	parents []FragmentContext) FragmentContext {
	//
	if len(parents) == 0 {
		return NewFragmentContext()
	}
	for _, parent := range parents {
		if parent.LogicalTopInFlowThread == logicalTop {
			fc := parent
			fc.FragmentClip = maybe.Just(clip)
			return fc
		}
	}
	fc := parents[0]
	fc.FragmentClip = maybe.Just(clip)
	fc.LogicalTopInFlowThread = logicalTop
	return fc
}

// initFragmentPaintProperties creates or drops the property slots of a
// fragment and resets its pagination state.
func (ob *objectBuilder) initFragmentPaintProperties(f *layout.FragmentData, needsProperties bool) {
	if needsProperties {
		f.EnsurePaintProperties()
	} else if f.PaintProperties() != nil {
		ob.ctx.ForceSubtreeUpdate = true
		ob.ctx.stats.add(0, f.PaintProperties().NodeCount())
		for _, slot := range f.PaintProperties().Slots() {
			if slot.Clip != nil {
				ob.ctx.ClipChanged = true
			}
		}
		f.ClearPaintProperties()
	}
	f.PaginationOffset = geom.LayoutPoint{}
	f.LogicalTopInFlowThread = 0
}

// initSingleFragmentFromParent reduces o to its first fragment and the
// context to the first parent fragment.
func (ob *objectBuilder) initSingleFragmentFromParent(needsProperties bool) {
	first := ob.object.FirstFragment()
	first.ClearNextFragment()
	ob.initFragmentPaintProperties(first, needsProperties)
	if len(ob.ctx.Fragments) == 0 {
		ob.ctx.Fragments = []FragmentContext{NewFragmentContext()}
		return
	}
	ob.ctx.Fragments = ob.ctx.Fragments[:1]
	ob.ctx.Fragments[0].FragmentClip = maybe.Nothing[geom.LayoutRect]()
	ob.ctx.Fragments[0].LogicalTopInFlowThread = 0
}

// updateFragments sets up one fragment per fragmentainer an object is
// painted in, together with a fragment context for each.
func (ob *objectBuilder) updateFragments() {
	o, ctx := ob.object, ob.ctx
	needsProperties := needsPaintProperties(o, ctx.PaintingLayer)
	if !needsFragmentation(ctx.PaintingLayer) {
		ob.initSingleFragmentFromParent(needsProperties)
		ob.updateCompositedLayerPaginationOffset()
		ctx.IsRepeatingInFragments = false
	} else {
		pagination := ctx.PaintingLayer.EnclosingPaginationLayer()
		flowThread := pagination.Object().FlowThread()
		var bbox geom.LayoutRect
		if ctx.IsRepeatingInFragments {
			// Descendants of a repeating object repeat in the same
			// fragmentainers.
			bbox = ctx.RepeatingBoundingBoxInFlowThread
		} else {
			var repeat bool
			bbox, repeat = boundingBoxInPaginationContainer(o, pagination)
			if repeat {
				ctx.IsRepeatingInFragments = true
				ctx.RepeatingBoundingBoxInFlowThread = bbox
			}
		}
		// All fragment clips are relative to the paint offset root of the
		// first parent fragment, which never has more than one fragment.
		root := ctx.Fragments[0].Current.PaintOffsetRoot
		assertThat(root != nil, "no paint offset root for %v", o)
		visualOffset := visualOffsetFromPaintOffsetRoot(&ctx.Fragments[0], pagination).
			MoveBy(root.FirstFragment().PaintOffset)
		var contexts []FragmentContext
		var fragment *layout.FragmentData
		it := flowThread.Fragmentainers(bbox)
		for count := 0; !it.AtEnd() && count < MaxFragments; it.Advance() {
			if fragment == nil {
				fragment = o.FirstFragment()
			} else {
				fragment = fragment.EnsureNextFragment()
			}
			ob.initFragmentPaintProperties(fragment, needsProperties)
			paginationOffset := it.PaginationOffset()
			logicalTop := it.FragmentainerLogicalTopInFlowThread()
			clip := it.ClipRectInFlowThread().MoveBy(paginationOffset).MoveBy(visualOffset)
			contexts = append(contexts, contextForFragment(clip, logicalTop, ctx.Fragments))
			fragment.PaginationOffset = paginationOffset
			fragment.LogicalTopInFlowThread = logicalTop
			count++
		}
		if fragment != nil {
			fragment.ClearNextFragment()
			ctx.Fragments = contexts
		} else {
			ob.initSingleFragmentFromParent(needsProperties)
		}
	}
	if o.IsSVGHiddenContainer() {
		// SVG resources are painted wherever they are referenced, in
		// property trees of their own.
		fc := NewFragmentContext()
		fc.Current.PaintOffsetRoot = o
		fc.AbsolutePosition.PaintOffsetRoot = o
		fc.FixedPosition.PaintOffsetRoot = o
		ctx.Fragments = []FragmentContext{fc}
		o.FirstFragment().ClearNextFragment()
	}
	ob.updateRepeatingPaintOffsetAdjustment()
}

// borderBoxRectInPaginationContainer maps the border box of o to the flow
// thread of a pagination layer.
func borderBoxRectInPaginationContainer(o *layout.Object, pagination *layout.PaintLayer) geom.LayoutRect {
	return o.BorderBoxRect().Move(o.OffsetFromAncestorContainer(pagination.Object()))
}

// boundingBoxInPaginationContainer is the area of the flow thread o paints
// in. repeat is set for table sections repeating in every fragmentainer.
func boundingBoxInPaginationContainer(o *layout.Object, pagination *layout.PaintLayer) (
	bbox geom.LayoutRect, repeat bool) {
	//
	// non-boxes without layer paint in the space of their containing block
	if !o.IsBox() && !o.HasLayer() {
		if cb := o.ContainingBlock(); cb != nil {
			return boundingBoxInPaginationContainer(cb, pagination)
		}
	}
	// Layers cover their overflow, as fragments of the content are painted
	// starting at the layer. Table sections have no layout overflow.
	if o.HasLayer() && !o.IsTableSection() {
		return o.Layer().PhysicalBoundingBox(pagination), false
	}
	bbox = borderBoxRectInPaginationContainer(o, pagination)
	if !o.IsTableSection() || (!o.IsRepeatingHeaderGroup() && !o.IsRepeatingFooterGroup()) {
		return bbox, false
	}
	table := o.Table()
	if o.IsRepeatingHeaderGroup() {
		// cover every fragmentainer containing any row
		if bottom := table.BottomNonEmptySection(); bottom != nil {
			bbox = bbox.Unite(borderBoxRectInPaginationContainer(bottom, pagination))
		}
		return bbox, true
	}
	if top := table.TopNonEmptySection(); top != nil {
		bbox = bbox.Unite(borderBoxRectInPaginationContainer(top, pagination))
		// The first fragmentainer may be too short for the first row plus
		// the footer. Exclude it, keeping an overlap of one unit for
		// fragmentainers which fit exactly.
		exclusion := table.RowOffsetFromRepeatingFooter()
		assertThat(top != o, "repeating footer %v is the top section", o)
		if row := top.FirstRow(); row != nil {
			exclusion += row.Size().Height + table.VBorderSpacing()
		}
		if exclusion != 0 {
			exclusion -= geom.Pixel
		}
		bbox = bbox.ShiftYEdgeTo(bbox.Y() + exclusion)
	}
	return bbox, true
}

// --- Repeating table sections -----------------------------------------------

func (ob *objectBuilder) updateRepeatingPaintOffsetAdjustment() {
	if !ob.ctx.IsRepeatingInFragments {
		return
	}
	// Descendants of a repeating section inherit the adjustments of their
	// section with the fragment contexts.
	switch o := ob.object; {
	case o.IsTableSection() && o.IsRepeatingHeaderGroup():
		ob.updateRepeatingTableHeaderPaintOffsetAdjustment()
	case o.IsTableSection() && o.IsRepeatingFooterGroup():
		ob.updateRepeatingTableFooterPaintOffsetAdjustment()
	}
}

func (ob *objectBuilder) paginationFlowThread() *layout.FlowThread {
	return ob.ctx.PaintingLayer.EnclosingPaginationLayer().Object().FlowThread()
}

// updateRepeatingTableHeaderPaintOffsetAdjustment moves the repetitions of a
// header group to the top of their fragmentainers. The original header,
// which may be located anywhere in the first fragmentainer, is not moved.
func (ob *objectBuilder) updateRepeatingTableHeaderPaintOffsetAdjustment() {
	section := ob.object
	ft := ob.paginationFlowThread()
	if !ft.IsPageLogicalHeightKnown() {
		return
	}
	orig := ob.ctx.RepeatingBoundingBoxInFlowThread.Y()
	height := ft.PageLogicalHeightForOffset(orig)
	origInFragment := height - ft.PageRemainingLogicalHeightForOffset(orig)
	// the header is the lowest of the repeating headers of nested tables
	repeatingOffset := section.Table().RowOffsetFromRepeatingHeader() - section.Size().Height
	adjustment := repeatingOffset - origInFragment
	offset := orig - origInFragment
	for i := range ob.ctx.Fragments {
		fc := &ob.ctx.Fragments[i]
		fc.RepeatingPaintOffsetAdjustment = geom.LayoutSize{}
		if i > 0 {
			fc.RepeatingPaintOffsetAdjustment.Height = adjustment
		}
		adjustment += height
		offset += height
		height = ft.PageLogicalHeightForOffset(offset)
	}
}

// updateRepeatingTableFooterPaintOffsetAdjustment moves the repetitions of a
// footer group to the bottom of their fragmentainers. The original footer
// lives in the last fragmentainer.
func (ob *objectBuilder) updateRepeatingTableFooterPaintOffsetAdjustment() {
	section := ob.object
	ft := ob.paginationFlowThread()
	if !ft.IsPageLogicalHeightKnown() {
		return
	}
	orig := ob.ctx.RepeatingBoundingBoxInFlowThread.MaxY() - section.Size().Height
	height := ft.PageLogicalHeightForOffset(orig)
	origInFragment := height - ft.PageRemainingLogicalHeightForOffset(orig)
	table := section.Table()
	repeatingOffset := height - table.RowOffsetFromRepeatingFooter() - table.VBorderSpacing()
	if table.ShouldCollapseBorders() {
		// show the whole bottom border of the table
		repeatingOffset -= table.BorderOutsets().Bottom
	}
	adjustment := repeatingOffset - origInFragment
	offset := orig - origInFragment
	n := len(ob.ctx.Fragments)
	for i := n; i > 0; i-- {
		fc := &ob.ctx.Fragments[i-1]
		fc.RepeatingPaintOffsetAdjustment = geom.LayoutSize{}
		if i != n {
			fc.RepeatingPaintOffsetAdjustment.Height = adjustment
		}
		adjustment -= height
		offset -= height
		height = ft.PageLogicalHeightForOffset(offset)
	}
}

// --- Composited layers in pagination ----------------------------------------

// updateCompositedLayerPaginationOffset sets the pagination offset of
// objects in composited layers below a pagination layer. Composited layers
// are not fragmented, but paint offsets still have to be computed relative
// to the fragmentainer the layer starts in.
func (ob *objectBuilder) updateCompositedLayerPaginationOffset() {
	pagination := ob.ctx.PaintingLayer.EnclosingPaginationLayer()
	if pagination == nil {
		return
	}
	o := ob.object
	first := o.FirstFragment()
	isContainer := o.IsPaintInvalidationContainer()
	parentComposited := ob.ctx.PaintingLayer.EnclosingLayerWithCompositedLayerMapping(!isContainer)
	if isContainer && (parentComposited == nil || parentComposited.EnclosingPaginationLayer() == nil) {
		// o is the topmost composited layer under the pagination layer
		bbox, repeat := boundingBoxInPaginationContainer(o, pagination)
		assertThat(!repeat, "composited layer %v repeats in fragments", o)
		it := pagination.Object().FlowThread().Fragmentainers(bbox)
		if !it.AtEnd() {
			first.PaginationOffset = it.PaginationOffset()
			first.LogicalTopInFlowThread = it.FragmentainerLogicalTopInFlowThread()
		}
	} else if parentComposited != nil {
		// everything in a composited layer shares its pagination offset
		f := parentComposited.Object().FirstFragment()
		first.PaginationOffset = f.PaginationOffset
		first.LogicalTopInFlowThread = f.LogicalTopInFlowThread
	}
}
