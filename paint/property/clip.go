package property

import (
	"fmt"

	"github.com/npillmayer/paintprops/geom"
)

// ClipValues are the mutable attributes of a clip node.
type ClipValues struct {
	LocalTransformSpace *TransformNode
	ClipRect            geom.FloatRoundedRect
	// ClipRectExcludingOverlayScrollbars is used for hit testing of overflow
	// clips. The zero rect means it is identical to ClipRect.
	ClipRectExcludingOverlayScrollbars geom.FloatRect
}

// ClipNode is a node of the clip tree.
type ClipNode struct {
	parent *ClipNode
	values ClipValues
	frozen bool
}

var rootClip = &ClipNode{
	values: ClipValues{
		LocalTransformSpace: rootTransform,
		ClipRect:            geom.RoundedRect(geom.InfiniteFloatRect()),
	},
	frozen: true,
}

// RootClip is the root of the clip tree. It does not clip.
func RootClip() *ClipNode {
	return rootClip
}

// NewClipNode creates a clip node as a child of parent.
func NewClipNode(parent *ClipNode, values ClipValues) *ClipNode {
	assertThat(parent != nil, "clip node must have a parent")
	assertThat(values.LocalTransformSpace != nil, "clip node needs a local transform space")
	return &ClipNode{parent: parent, values: values}
}

// Update sets parent and values of c and reports whether anything changed.
func (c *ClipNode) Update(parent *ClipNode, values ClipValues) bool {
	assertThat(!c.frozen, "update of frozen clip node %v", c)
	assertThat(parent != nil && parent != c, "illegal parent for clip node")
	if c.parent == parent && c.values == values {
		return false
	}
	c.parent, c.values = parent, values
	return true
}

// Parent returns the parent node, which is nil for the root.
func (c *ClipNode) Parent() *ClipNode { return c.parent }

// IsRoot is true for the root of the clip tree.
func (c *ClipNode) IsRoot() bool { return c == rootClip }

// Values returns a copy of the attributes of c.
func (c *ClipNode) Values() ClipValues { return c.values }

// LocalTransformSpace returns the coordinate space of the clip rect.
func (c *ClipNode) LocalTransformSpace() *TransformNode { return c.values.LocalTransformSpace }

// ClipRect returns the (possibly rounded) clip rectangle.
func (c *ClipNode) ClipRect() geom.FloatRoundedRect { return c.values.ClipRect }

func (c *ClipNode) String() string {
	if c == nil {
		return "<nil>"
	}
	if c.IsRoot() {
		return "root clip"
	}
	return fmt.Sprintf("clip %v", c.values.ClipRect)
}
