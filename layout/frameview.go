package layout

import (
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/paint/property"
)

// FrameView is the viewport of a frame. It owns the layout view, the root
// of the layout tree, and the frame level property nodes.
type FrameView struct {
	view *Object
	// Location is the position of the frame in its parent frame.
	Location geom.LayoutPoint
	// VisibleContentSize is the size of the viewport.
	VisibleContentSize geom.IntSize
	// ContentsSize is the size of the scrollable document.
	ContentsSize geom.IntSize
	ScrollOrigin geom.IntPoint
	ScrollOffset geom.FloatSize
	// ScrollingDisabled is set for frames with scrolling="no".
	ScrollingDisabled bool
	// ThreadedScrollingDisabled forces main thread scrolling.
	ThreadedScrollingDisabled bool
	// Printing is set for the root frame of a printed document.
	Printing    bool
	needsUpdate bool
	props       FrameProperties
	contents    *property.State
}

// FrameProperties are the property nodes owned by a frame view.
type FrameProperties struct {
	PreTranslation    *property.TransformNode
	ContentClip       *property.ClipNode
	Scroll            *property.ScrollNode
	ScrollTranslation *property.TransformNode
}

// NewFrameView creates a frame view of a given viewport size together with
// its layout view.
func NewFrameView(viewport geom.IntSize) *FrameView {
	fv := &FrameView{
		VisibleContentSize: viewport,
		ContentsSize:       viewport,
		needsUpdate:        true,
	}
	fv.view = NewObject(KindView, "view", nil)
	fv.view.frameView = fv
	fv.view.size = geom.LayoutSize{Width: geom.FromInt(viewport.Width), Height: geom.FromInt(viewport.Height)}
	return fv
}

// LayoutView returns the root of the layout tree.
func (fv *FrameView) LayoutView() *Object { return fv.view }

// FrameView returns the frame view of a layout view, or nil.
func (o *Object) FrameView() *FrameView { return o.frameView }

// NeedsPaintPropertyUpdate is true if the frame level nodes are stale.
func (fv *FrameView) NeedsPaintPropertyUpdate() bool { return fv.needsUpdate }

// SetNeedsPaintPropertyUpdate marks the frame level nodes as stale.
func (fv *FrameView) SetNeedsPaintPropertyUpdate() {
	fv.needsUpdate = true
	fv.view.SetNeedsPaintPropertyUpdate()
}

// ClearNeedsPaintPropertyUpdate is called after a pass.
func (fv *FrameView) ClearNeedsPaintPropertyUpdate() { fv.needsUpdate = false }

// SetScrollOffset scrolls the frame.
func (fv *FrameView) SetScrollOffset(off geom.FloatSize) {
	if off != fv.ScrollOffset {
		fv.ScrollOffset = off
		fv.SetNeedsPaintPropertyUpdate()
	}
}

// IsScrollable is true if the document is larger than the viewport and
// scrolling is not disabled.
func (fv *FrameView) IsScrollable() bool {
	if fv.ScrollingDisabled {
		return false
	}
	return fv.ContentsSize.Width > fv.VisibleContentSize.Width ||
		fv.ContentsSize.Height > fv.VisibleContentSize.Height
}

// UserInputScrollable is true if the user may scroll in the given direction.
func (fv *FrameView) UserInputScrollable(horizontal bool) bool {
	if fv.ScrollingDisabled {
		return false
	}
	if horizontal {
		return fv.ContentsSize.Width > fv.VisibleContentSize.Width
	}
	return fv.ContentsSize.Height > fv.VisibleContentSize.Height
}

// HasBackgroundAttachmentFixedObjects is true if some object in the frame
// has a fixed background, which is repainted on the main thread while
// scrolling.
func (fv *FrameView) HasBackgroundAttachmentFixedObjects() bool {
	var found bool
	var visit func(*Object)
	visit = func(o *Object) {
		if found {
			return
		}
		if o.style.BackgroundFixed {
			found = true
			return
		}
		for _, ch := range o.ChildObjects() {
			visit(ch)
		}
	}
	visit(fv.view)
	return found
}

// CompositorElementID identifies the frame's scroll node.
func (fv *FrameView) CompositorElementID() property.ElementID {
	return property.ElementID{ID: fv.view.id, Namespace: property.NamespaceScroll}
}

// Properties returns the frame level property nodes. The pointer is owned by
// the frame view and updated in place by the property tree builder.
func (fv *FrameView) Properties() *FrameProperties { return &fv.props }

// TotalPropertyTreeStateForContents is the state the document content is
// painted in. It is set by the property tree builder.
func (fv *FrameView) TotalPropertyTreeStateForContents() (property.State, bool) {
	if fv.contents == nil {
		return property.State{}, false
	}
	return *fv.contents, true
}

// SetTotalPropertyTreeStateForContents records the contents state.
func (fv *FrameView) SetTotalPropertyTreeStateForContents(s property.State) {
	if fv.contents == nil {
		fv.contents = &property.State{}
	}
	*fv.contents = s
}
