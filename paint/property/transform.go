package property

import (
	"fmt"

	"github.com/npillmayer/paintprops/geom"
)

// TransformValues are the mutable attributes of a transform node.
type TransformValues struct {
	Matrix geom.Matrix
	Origin geom.FloatPoint3D
	// FlattensInheritedTransform is false inside a 3D rendering context.
	FlattensInheritedTransform bool
	// RenderingContextID groups nodes which are sorted together in 3D.
	// 0 means no rendering context.
	RenderingContextID       uint64
	DirectCompositingReasons CompositingReasons
	CompositorElementID      ElementID
	// Scroll is set for scroll translation nodes only.
	Scroll *ScrollNode
}

// TransformNode is a node of the transform tree.
type TransformNode struct {
	parent *TransformNode
	values TransformValues
	frozen bool
}

var rootTransform = &TransformNode{
	values: TransformValues{
		Matrix:                     geom.Identity(),
		FlattensInheritedTransform: true,
	},
	frozen: true,
}

// RootTransform is the root of the transform tree. It is the identity
// transform.
func RootTransform() *TransformNode {
	return rootTransform
}

// NewTransformNode creates a transform node as a child of parent.
func NewTransformNode(parent *TransformNode, values TransformValues) *TransformNode {
	assertThat(parent != nil, "transform node must have a parent")
	return &TransformNode{parent: parent, values: values}
}

// Update sets parent and values of t and reports whether anything changed.
func (t *TransformNode) Update(parent *TransformNode, values TransformValues) bool {
	assertThat(!t.frozen, "update of frozen transform node %v", t)
	assertThat(parent != nil && parent != t, "illegal parent for transform node")
	if t.parent == parent && t.values == values {
		return false
	}
	t.parent, t.values = parent, values
	return true
}

// Parent returns the parent node, which is nil for the root.
func (t *TransformNode) Parent() *TransformNode { return t.parent }

// IsRoot is true for the root of the transform tree.
func (t *TransformNode) IsRoot() bool { return t == rootTransform }

// Values returns a copy of the attributes of t.
func (t *TransformNode) Values() TransformValues { return t.values }

// Matrix returns the transformation matrix of t.
func (t *TransformNode) Matrix() geom.Matrix { return t.values.Matrix }

// Origin returns the transform origin of t.
func (t *TransformNode) Origin() geom.FloatPoint3D { return t.values.Origin }

// FlattensInheritedTransform is false within 3D rendering contexts.
func (t *TransformNode) FlattensInheritedTransform() bool {
	return t.values.FlattensInheritedTransform
}

// RenderingContextID returns the 3D rendering context of t, or 0.
func (t *TransformNode) RenderingContextID() uint64 { return t.values.RenderingContextID }

// ScrollNode returns the associated scroll node of a scroll translation.
func (t *TransformNode) ScrollNode() *ScrollNode { return t.values.Scroll }

// IsAncestorOrSelf is true if t is ancestor of n or n itself.
func (t *TransformNode) IsAncestorOrSelf(n *TransformNode) bool {
	for ; n != nil; n = n.parent {
		if n == t {
			return true
		}
	}
	return false
}

// Depth returns the distance to the root.
func (t *TransformNode) Depth() int {
	d := 0
	for n := t.parent; n != nil; n = n.parent {
		d++
	}
	return d
}

func (t *TransformNode) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.IsRoot() {
		return "root transform"
	}
	s := fmt.Sprintf("transform %v", t.values.Matrix)
	if t.values.Origin != (geom.FloatPoint3D{}) {
		s += fmt.Sprintf(" origin=%v", t.values.Origin)
	}
	if !t.values.FlattensInheritedTransform {
		s += " 3d"
	}
	if t.values.RenderingContextID != 0 {
		s += fmt.Sprintf(" ctx=%x", t.values.RenderingContextID)
	}
	if t.values.Scroll != nil {
		s += " scroll"
	}
	return s
}
