package prepaint

import (
	"fmt"

	"github.com/npillmayer/paintprops/layout"
	"github.com/npillmayer/schuko/tracing"
)

// PassResult summarizes a pass of the property tree builder.
type PassResult struct {
	ObjectsVisited      int  // layout objects the builder descended to
	NodesCreated        int  // property nodes created
	NodesRemoved        int  // property nodes removed
	ForcedSubtreeUpdate bool // some object forced an update of its subtree
	ClipChanged         bool // some clip node changed its clip rect
}

func (r *PassResult) add(created, removed int) {
	if r == nil {
		return
	}
	r.NodesCreated += created
	r.NodesRemoved += removed
}

// Changed is true if the pass created or removed nodes.
func (r PassResult) Changed() bool {
	return r.NodesCreated > 0 || r.NodesRemoved > 0
}

func (r PassResult) String() string {
	return fmt.Sprintf("visited=%d created=%d removed=%d forced=%v clip-changed=%v",
		r.ObjectsVisited, r.NodesCreated, r.NodesRemoved, r.ForcedSubtreeUpdate, r.ClipChanged)
}

// Walker drives passes of the property tree builder over the layout tree of
// a frame view.
type Walker struct {
	// ForceFullUpdate recomputes every object, regardless of update flags.
	ForceFullUpdate bool
}

// Update runs a pass over the frame view and the layout tree below it.
// Objects which neither need an update nor have descendants needing one are
// skipped, unless an ancestor forces an update of its subtree.
func (w *Walker) Update(fv *layout.FrameView) PassResult {
	ctx := NewContext()
	ctx.ForceSubtreeUpdate = w.ForceFullUpdate
	UpdateFrameView(fv, ctx)
	view := fv.LayoutView()
	if ctx.ForceSubtreeUpdate || needsWalk(view) {
		w.walk(view, ctx)
	}
	fv.ClearNeedsPaintPropertyUpdate()
	result := ctx.Result()
	if ctx.ForceSubtreeUpdate && !w.ForceFullUpdate {
		result.ForcedSubtreeUpdate = true
	}
	if ctx.ClipChanged {
		result.ClipChanged = true
	}
	tracer().P("pass", "prepaint").Infof("%v", result)
	return result
}

func needsWalk(o *layout.Object) bool {
	return o.NeedsPaintPropertyUpdate() || o.DescendantNeedsPaintPropertyUpdate() ||
		o.SubtreeNeedsPaintPropertyUpdate()
}

// walk builds o in a copy of its parent's context ctx and descends to its
// children.
func (w *Walker) walk(o *layout.Object, parent *Context) {
	ctx := parent.ForChild()
	forcedByParent := ctx.ForceSubtreeUpdate
	clipChangedByParent := ctx.ClipChanged
	ctx.stats.ObjectsVisited++
	if tracer().GetTraceLevel() >= tracing.LevelDebug {
		tracer().Debugf("building %v", o)
	}
	ob := newObjectBuilder(o, ctx)
	ob.UpdateForSelf()
	ob.UpdateForChildren()
	if ctx.ForceSubtreeUpdate && !forcedByParent && !w.ForceFullUpdate {
		ctx.stats.ForcedSubtreeUpdate = true
	}
	if ctx.ClipChanged && !clipChangedByParent {
		ctx.stats.ClipChanged = true
	}
	for _, ch := range o.ChildObjects() {
		if ctx.ForceSubtreeUpdate || needsWalk(ch) {
			w.walk(ch, ctx)
		}
	}
	o.SetPassFlags(ctx.ClipChanged, ctx.ForceSubtreeUpdate && !forcedByParent)
	o.SetPreviousSize(o.Size())
	o.ClearPaintPropertyUpdateFlags()
}
