package property

import (
	"fmt"

	"github.com/npillmayer/paintprops/geom"
)

// ScrollValues are the mutable attributes of a scroll node.
type ScrollValues struct {
	// ContainerRect is the clip rect of the scroller, in the space of the
	// scroll translation's parent.
	ContainerRect geom.IntRect
	// ContentsRect is the scrollable contents area.
	ContentsRect               geom.IntRect
	UserScrollableHorizontal   bool
	UserScrollableVertical     bool
	MainThreadScrollingReasons MainThreadScrollingReasons
	CompositorElementID        ElementID
}

// ScrollNode is a node of the scroll tree.
type ScrollNode struct {
	parent *ScrollNode
	values ScrollValues
	frozen bool
}

var rootScroll = &ScrollNode{frozen: true}

// RootScroll is the root of the scroll tree.
func RootScroll() *ScrollNode {
	return rootScroll
}

// NewScrollNode creates a scroll node as a child of parent.
func NewScrollNode(parent *ScrollNode, values ScrollValues) *ScrollNode {
	assertThat(parent != nil, "scroll node must have a parent")
	return &ScrollNode{parent: parent, values: values}
}

// Update sets parent and values of s and reports whether anything changed.
func (s *ScrollNode) Update(parent *ScrollNode, values ScrollValues) bool {
	assertThat(!s.frozen, "update of frozen scroll node %v", s)
	assertThat(parent != nil && parent != s, "illegal parent for scroll node")
	if s.parent == parent && s.values == values {
		return false
	}
	s.parent, s.values = parent, values
	return true
}

// Parent returns the parent node, which is nil for the root.
func (s *ScrollNode) Parent() *ScrollNode { return s.parent }

// IsRoot is true for the root of the scroll tree.
func (s *ScrollNode) IsRoot() bool { return s == rootScroll }

// Values returns a copy of the attributes of s.
func (s *ScrollNode) Values() ScrollValues { return s.values }

// ContainerRect returns the visible area of the scroller.
func (s *ScrollNode) ContainerRect() geom.IntRect { return s.values.ContainerRect }

// ContentsRect returns the scrollable area.
func (s *ScrollNode) ContentsRect() geom.IntRect { return s.values.ContentsRect }

// MainThreadScrollingReasons returns the reasons for main thread scrolling.
func (s *ScrollNode) MainThreadScrollingReasons() MainThreadScrollingReasons {
	return s.values.MainThreadScrollingReasons
}

func (s *ScrollNode) String() string {
	if s == nil {
		return "<nil>"
	}
	if s.IsRoot() {
		return "root scroll"
	}
	axes := ""
	if s.values.UserScrollableHorizontal {
		axes += "x"
	}
	if s.values.UserScrollableVertical {
		axes += "y"
	}
	return fmt.Sprintf("scroll container=%v contents=%v user=%q", s.values.ContainerRect,
		s.values.ContentsRect, axes)
}
