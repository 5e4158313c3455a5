package property

import (
	"fmt"
	"strings"
)

// CompositingReasons is a bitset of reasons for a node to be composited
// directly.
type CompositingReasons uint32

// Direct compositing reasons which are relevant for property nodes.
const (
	Compositing3DTransform CompositingReasons = 1 << iota
	CompositingWillChangeTransform
	CompositingWillChangeOpacity
	CompositingActiveTransformAnimation
	CompositingActiveOpacityAnimation
	CompositingActiveFilterAnimation
	CompositingPerspectiveWith3DDescendants
	CompositingPreserve3DWith3DDescendants
	CompositingBackfaceVisibilityHidden
	CompositingRootScroller
)

// CompositingNone is the empty set of compositing reasons.
const CompositingNone CompositingReasons = 0

// CompositingTransformMask are the reasons which require a transform node.
const CompositingTransformMask = Compositing3DTransform | CompositingWillChangeTransform |
	CompositingActiveTransformAnimation | CompositingPerspectiveWith3DDescendants |
	CompositingPreserve3DWith3DDescendants | CompositingBackfaceVisibilityHidden |
	CompositingRootScroller

// CompositingEffectMask are the reasons which require an effect node.
const CompositingEffectMask = CompositingWillChangeOpacity | CompositingActiveOpacityAnimation

var compositingReasonNames = []string{
	"3d-transform", "will-change-transform", "will-change-opacity",
	"transform-animation", "opacity-animation", "filter-animation",
	"perspective-3d", "preserve-3d", "backface-hidden", "root-scroller",
}

// Has is true if r contains any of the reasons of mask.
func (r CompositingReasons) Has(mask CompositingReasons) bool {
	return r&mask != 0
}

func (r CompositingReasons) String() string {
	return flagsString(uint32(r), compositingReasonNames)
}

// MainThreadScrollingReasons is a bitset of reasons why scrolling of a scroll
// node has to be handled on the main thread.
type MainThreadScrollingReasons uint32

// Main thread scrolling reasons.
const (
	NotScrollingOnMain             MainThreadScrollingReasons = 0
	HasBackgroundAttachmentFixed   MainThreadScrollingReasons = 1 << 0
	ThreadedScrollingDisabled      MainThreadScrollingReasons = 1 << 1
	HasNonLayerViewportConstrained MainThreadScrollingReasons = 1 << 2
	CustomScrollbarScrolling       MainThreadScrollingReasons = 1 << 3
)

var mainThreadReasonNames = []string{
	"background-attachment-fixed", "threaded-scrolling-disabled",
	"non-layer-viewport-constrained", "custom-scrollbar",
}

func (r MainThreadScrollingReasons) String() string {
	return flagsString(uint32(r), mainThreadReasonNames)
}

func flagsString(bits uint32, names []string) string {
	if bits == 0 {
		return "none"
	}
	var b strings.Builder
	for i, n := range names {
		if bits&(1<<uint(i)) != 0 {
			if b.Len() > 0 {
				b.WriteByte('|')
			}
			b.WriteString(n)
		}
	}
	if b.Len() == 0 {
		return fmt.Sprintf("0x%x", bits)
	}
	return b.String()
}

// ElementID identifies a compositor element associated with a property node.
// The zero value means "no element".
type ElementID struct {
	ID        uint64
	Namespace ElementIDNamespace
}

// ElementIDNamespace separates element ids of different node kinds created
// for the same layout object.
type ElementIDNamespace uint8

// Namespaces for compositor element ids.
const (
	NamespacePrimary ElementIDNamespace = iota
	NamespaceScroll
	NamespaceEffectFilter
	NamespaceEffectMask
)

// IsZero is true if id does not identify an element.
func (id ElementID) IsZero() bool {
	return id.ID == 0
}

func (id ElementID) String() string {
	if id.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d/%d", id.ID, id.Namespace)
}
