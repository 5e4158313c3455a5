package prepaint

import (
	"github.com/npillmayer/paintprops/layout"
)

// objectBuilder builds the property nodes of all fragments of a layout
// object. ctx is the object's own copy of its parent's context.
type objectBuilder struct {
	object *layout.Object
	ctx    *Context
}

func newObjectBuilder(o *layout.Object, ctx *Context) *objectBuilder {
	return &objectBuilder{object: o, ctx: ctx}
}

// updatePaintingLayer switches the context to the layer of o, if o paints
// into a layer of its own.
func (ob *objectBuilder) updatePaintingLayer() {
	o := ob.object
	if o.HasLayer() && o.Layer().IsSelfPaintingLayer() {
		ob.ctx.PaintingLayer = o.Layer()
	} else if o.IsColumnSpanAll() || o.IsFloatingWithNonContainingBlockParent() {
		// Spanners and floats escaping inlines may paint into a layer other
		// than the one of their parent.
		ob.ctx.PaintingLayer = o.PaintingLayer()
	}
	assertThat(ob.ctx.PaintingLayer == o.PaintingLayer(), "painting layer of %v is %v, expected %v",
		o, ob.ctx.PaintingLayer, o.PaintingLayer())
}

// UpdateForSelf updates the fragments of o and the nodes applying to o
// itself.
func (ob *objectBuilder) UpdateForSelf() {
	o := ob.object
	ob.updatePaintingLayer()
	if objectTypeMightNeedPaintProperties(o) {
		ob.updateFragments()
	} else {
		o.FirstFragment().ClearNextFragment()
	}
	fragment := o.FirstFragment()
	for i := range ob.ctx.Fragments {
		assertThat(fragment != nil, "%v has fewer fragments than contexts", o)
		newFragmentBuilder(o, ob.ctx, &ob.ctx.Fragments[i], fragment).UpdateForSelf()
		fragment = fragment.NextFragment()
	}
	assertThat(fragment == nil, "%v has more fragments than contexts", o)
}

// UpdateForChildren updates the nodes applying to the contents of o and
// prepares the context for its children.
func (ob *objectBuilder) UpdateForChildren() {
	o := ob.object
	if !objectTypeMightNeedPaintProperties(o) {
		return
	}
	fragment := o.FirstFragment()
	for i := range ob.ctx.Fragments {
		if fragment == nil {
			break
		}
		newFragmentBuilder(o, ob.ctx, &ob.ctx.Fragments[i], fragment).UpdateForChildren()
		fragment = fragment.NextFragment()
	}
	if o.SubtreeNeedsPaintPropertyUpdate() {
		ob.ctx.ForceSubtreeUpdate = true
	}
	if o.CanContainAbsolutePositionObjects() {
		ob.ctx.ContainerForAbsolutePosition = o
	}
}
