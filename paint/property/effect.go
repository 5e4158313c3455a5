package property

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/gg/scene"
	"github.com/npillmayer/paintprops/geom"
)

// ColorFilter is a color transformation applied by an effect node.
type ColorFilter uint8

// Color filters.
const (
	ColorFilterNone ColorFilter = iota
	ColorFilterLuminanceToAlpha
)

func (cf ColorFilter) String() string {
	if cf == ColorFilterLuminanceToAlpha {
		return "luminance-to-alpha"
	}
	return "none"
}

// FilterOperation is a single CSS filter function.
type FilterOperation struct {
	Type   scene.FilterType
	Amount float64 // e.g., blur radius in px
}

// FilterOperations is a list of filter functions, applied in order.
type FilterOperations []FilterOperation

// IsEmpty is true if no filter function is present.
func (ops FilterOperations) IsEmpty() bool {
	return len(ops) == 0
}

// ExpandsOutput is true if any of the operations moves pixels.
func (ops FilterOperations) ExpandsOutput() bool {
	for _, op := range ops {
		if op.Type.ExpandsOutput() {
			return true
		}
	}
	return false
}

func (ops FilterOperations) String() string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = fmt.Sprintf("%s(%g)", op.Type, op.Amount)
	}
	return strings.Join(parts, " ")
}

// EffectValues are the mutable attributes of an effect node.
type EffectValues struct {
	LocalTransformSpace      *TransformNode
	OutputClip               *ClipNode
	ColorFilter              ColorFilter
	Filter                   FilterOperations
	Opacity                  float64
	BlendMode                scene.BlendMode
	DirectCompositingReasons CompositingReasons
	CompositorElementID      ElementID
	// PaintOffset is the origin of filter effects in local space.
	PaintOffset geom.FloatPoint
}

// Equal compares effect values by value.
func (v EffectValues) Equal(w EffectValues) bool {
	return v.LocalTransformSpace == w.LocalTransformSpace &&
		v.OutputClip == w.OutputClip &&
		v.ColorFilter == w.ColorFilter &&
		slices.Equal(v.Filter, w.Filter) &&
		v.Opacity == w.Opacity &&
		v.BlendMode == w.BlendMode &&
		v.DirectCompositingReasons == w.DirectCompositingReasons &&
		v.CompositorElementID == w.CompositorElementID &&
		v.PaintOffset == w.PaintOffset
}

// EffectNode is a node of the effect tree.
type EffectNode struct {
	parent *EffectNode
	values EffectValues
	frozen bool
}

var rootEffect = &EffectNode{
	values: EffectValues{
		LocalTransformSpace: rootTransform,
		OutputClip:          rootClip,
		Opacity:             1,
		BlendMode:           scene.BlendNormal,
	},
	frozen: true,
}

// RootEffect is the root of the effect tree. It has no visual effect.
func RootEffect() *EffectNode {
	return rootEffect
}

// NewEffectNode creates an effect node as a child of parent.
func NewEffectNode(parent *EffectNode, values EffectValues) *EffectNode {
	assertThat(parent != nil, "effect node must have a parent")
	assertThat(values.LocalTransformSpace != nil, "effect node needs a local transform space")
	e := &EffectNode{parent: parent, values: values}
	e.values.Filter = slices.Clone(values.Filter)
	return e
}

// Update sets parent and values of e and reports whether anything changed.
func (e *EffectNode) Update(parent *EffectNode, values EffectValues) bool {
	assertThat(!e.frozen, "update of frozen effect node %v", e)
	assertThat(parent != nil && parent != e, "illegal parent for effect node")
	if e.parent == parent && e.values.Equal(values) {
		return false
	}
	e.parent, e.values = parent, values
	e.values.Filter = slices.Clone(values.Filter)
	return true
}

// Parent returns the parent node, which is nil for the root.
func (e *EffectNode) Parent() *EffectNode { return e.parent }

// IsRoot is true for the root of the effect tree.
func (e *EffectNode) IsRoot() bool { return e == rootEffect }

// Values returns a copy of the attributes of e.
func (e *EffectNode) Values() EffectValues {
	v := e.values
	v.Filter = slices.Clone(e.values.Filter)
	return v
}

// LocalTransformSpace returns the coordinate space of the effect.
func (e *EffectNode) LocalTransformSpace() *TransformNode { return e.values.LocalTransformSpace }

// OutputClip returns the clip applied to the output of the effect.
func (e *EffectNode) OutputClip() *ClipNode { return e.values.OutputClip }

// Opacity returns the opacity of the effect.
func (e *EffectNode) Opacity() float64 { return e.values.Opacity }

// BlendMode returns the blend mode of the effect.
func (e *EffectNode) BlendMode() scene.BlendMode { return e.values.BlendMode }

// Filter returns the filter operations of e.
func (e *EffectNode) Filter() FilterOperations { return slices.Clone(e.values.Filter) }

func (e *EffectNode) String() string {
	if e == nil {
		return "<nil>"
	}
	if e.IsRoot() {
		return "root effect"
	}
	s := fmt.Sprintf("effect opacity=%g", e.values.Opacity)
	if e.values.BlendMode != scene.BlendNormal {
		s += " blend=" + e.values.BlendMode.String()
	}
	if !e.values.Filter.IsEmpty() {
		s += " filter=" + e.values.Filter.String()
	}
	if e.values.ColorFilter != ColorFilterNone {
		s += " color-filter=" + e.values.ColorFilter.String()
	}
	return s
}
