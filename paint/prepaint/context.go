package prepaint

import (
	"slices"

	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/layout"
	"github.com/npillmayer/paintprops/maybe"
	"github.com/npillmayer/paintprops/paint/property"
)

// MaxFragments limits the number of fragments of a single layout object.
// Fragmentainers beyond the limit are silently dropped.
const MaxFragments = 500

// ContainingBlockContext is the state a containing block hands to the
// objects it contains.
type ContainingBlockContext struct {
	// Transform is the local transform space of the containing block's
	// content.
	Transform *property.TransformNode
	Clip      *property.ClipNode
	Scroll    *property.ScrollNode
	// PaintOffset is the offset of the containing block's border box from
	// the origin of Transform, i.e. the part of the offset which is not
	// baked into a transform node.
	PaintOffset geom.LayoutPoint
	// PaintOffsetRoot is the object whose paint offset translation defines
	// the origin of PaintOffset.
	PaintOffsetRoot                 *layout.Object
	RenderingContextID              uint64
	ShouldFlattenInheritedTransform bool
	// ContainingBlockChangedUnderFilter is set if a filter has been
	// installed between the containing block and an out-of-flow descendant.
	ContainingBlockChangedUnderFilter bool
	// FixedPositionChildrenFixedToRoot is true as long as no ancestor is a
	// containing block for fixed position objects.
	FixedPositionChildrenFixedToRoot bool
}

// differs compares the parts of two contexts which affect painting.
func (cb ContainingBlockContext) differs(other ContainingBlockContext) bool {
	return cb.Clip != other.Clip || cb.Transform != other.Transform ||
		cb.PaintOffset != other.PaintOffset || cb.Scroll != other.Scroll
}

// FragmentContext is the context for one fragment of an object.
type FragmentContext struct {
	Current          ContainingBlockContext
	AbsolutePosition ContainingBlockContext
	FixedPosition    ContainingBlockContext
	CurrentEffect    *property.EffectNode
	// FragmentClip is the clip of the fragmentainer the fragment lives in,
	// in the space of the current transform.
	FragmentClip maybe.Maybe[geom.LayoutRect]
	// LogicalTopInFlowThread identifies the fragmentainer of the fragment.
	LogicalTopInFlowThread geom.LayoutUnit
	// RepeatingPaintOffsetAdjustment moves repeated table headers and
	// footers to their position in a fragmentainer.
	RepeatingPaintOffsetAdjustment geom.LayoutSize
	// PaintOffsetForFloat is the paint offset of the containing block of
	// floats, which is not necessarily the parent of the float.
	PaintOffsetForFloat geom.LayoutPoint
}

// NewFragmentContext returns a fragment context with all containing block
// contexts attached to the root nodes.
func NewFragmentContext() FragmentContext {
	root := ContainingBlockContext{
		Transform:                       property.RootTransform(),
		Clip:                            property.RootClip(),
		Scroll:                          property.RootScroll(),
		ShouldFlattenInheritedTransform: true,
	}
	fc := FragmentContext{
		Current:          root,
		AbsolutePosition: root,
		FixedPosition:    root,
		CurrentEffect:    property.RootEffect(),
		FragmentClip:     maybe.Nothing[geom.LayoutRect](),
	}
	fc.FixedPosition.FixedPositionChildrenFixedToRoot = true
	return fc
}

// Context is the state the builder passes from an object to its children.
// Every child works on a copy of its parent's context (see ForChild).
type Context struct {
	// Fragments holds one fragment context per fragment of the object
	// being built.
	Fragments []FragmentContext
	// PaintingLayer is the self-painting layer which paints the object.
	PaintingLayer                *layout.PaintLayer
	ContainerForAbsolutePosition *layout.Object
	// ForceSubtreeUpdate is set if every object in the subtree has to be
	// recomputed, regardless of its update flags.
	ForceSubtreeUpdate bool
	// ClipChanged is set if a clip node of the object or of an ancestor
	// changed its clip rect.
	ClipChanged bool
	// IsRepeatingInFragments is set below a repeating table section.
	IsRepeatingInFragments           bool
	RepeatingBoundingBoxInFlowThread geom.LayoutRect
	stats                            *PassResult
}

// NewContext creates the context for the root of a pass.
func NewContext() *Context {
	return &Context{
		Fragments: []FragmentContext{NewFragmentContext()},
		stats:     &PassResult{},
	}
}

// ForChild returns a copy of c for a child object. Fragment contexts are
// copied, so that siblings never share mutable state.
func (c *Context) ForChild() *Context {
	child := *c
	child.Fragments = slices.Clone(c.Fragments)
	return &child
}

// Result returns the counters of the pass c belongs to.
func (c *Context) Result() PassResult {
	if c.stats == nil {
		return PassResult{}
	}
	return *c.stats
}

// nodeCreated records the result of a slot update and forces a subtree
// update if a node has been created.
func (c *Context) nodeCreated(r property.UpdateResult) bool {
	if r.NewNodeCreated() {
		c.ForceSubtreeUpdate = true
		c.stats.add(1, 0)
		return true
	}
	return false
}

// nodeRemoved records the result of clearing a slot and forces a subtree
// update if a node has been removed.
func (c *Context) nodeRemoved(removed bool) bool {
	if removed {
		c.ForceSubtreeUpdate = true
		c.stats.add(0, 1)
	}
	return removed
}
