package layout

import (
	"fmt"
	"sync/atomic"

	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/tree"
)

var objectIDs atomic.Uint64

// Object is a node of the layout tree.
type Object struct {
	tree.Node[*Object]
	id             uint64
	kind           Kind
	Name           string // for debugging, e.g. "div#main"
	style          *Style
	location       geom.LayoutPoint
	size           geom.LayoutSize
	border         geom.LayoutRectOutsets
	inFlowOffset   geom.LayoutSize
	layer          *PaintLayer
	scrollableArea *ScrollableArea
	flowThread     *FlowThread
	table          *TableInfo
	section        *SectionInfo
	svg            *SVGInfo
	frameView      *FrameView
	painting       paintingState
}

// NewObject creates a layout object of a given kind. A nil style is replaced
// by the default style. New objects need a paint property update.
func NewObject(kind Kind, name string, style *Style) *Object {
	if style == nil {
		style = DefaultStyle()
	}
	o := &Object{
		id:    objectIDs.Add(1),
		kind:  kind,
		Name:  name,
		style: style,
	}
	o.Payload = o
	switch {
	case kind&(KindSVGRoot|kindSVGChild) != 0:
		o.svg = newSVGInfo()
	case kind&KindFlowThread != 0:
		o.flowThread = &FlowThread{object: o}
	case kind&KindTable != 0:
		o.table = &TableInfo{}
	case kind&KindTableSection != 0:
		o.section = &SectionInfo{}
	}
	o.painting.needsUpdate = true
	o.styleDidChange()
	return o
}

func (o *Object) String() string {
	if o == nil {
		return "<nil>"
	}
	if o.Name != "" {
		return fmt.Sprintf("%s(%s)", o.kind, o.Name)
	}
	return fmt.Sprintf("%s#%d", o.kind, o.id)
}

// ID is a process-wide unique, non-zero identity of o.
func (o *Object) ID() uint64 { return o.id }

// TreeNode returns o as a node of the generic tree.
func (o *Object) TreeNode() *tree.Node[*Object] { return &o.Node }

// AppendChild appends ch as the last child of o and returns o.
func (o *Object) AppendChild(ch *Object) *Object {
	assertThat(ch != nil, "cannot append nil child")
	o.AddChild(&ch.Node)
	if ch.IsLayoutFlowThread() {
		o.styleDidChange() // multicol containers need a layer
	}
	if ch.painting.needsUpdate || ch.painting.descendantNeedsUpdate {
		for p := o; p != nil && !p.painting.descendantNeedsUpdate; p = p.ParentObject() {
			p.painting.descendantNeedsUpdate = true
		}
	}
	return o
}

// ParentObject returns the parent layout object, or nil for the root.
func (o *Object) ParentObject() *Object {
	if p := o.Parent(); p != nil {
		return p.Payload
	}
	return nil
}

// ChildObjects returns the children of o in order.
func (o *Object) ChildObjects() []*Object {
	return o.Payloads()
}

// Style returns the computed style. Clients must not modify it; use SetStyle.
func (o *Object) Style() *Style { return o.style }

// SetStyle replaces the computed style and marks o for an update.
func (o *Object) SetStyle(s *Style) {
	assertThat(s != nil, "style must not be nil")
	o.style = s
	o.styleDidChange()
	o.SetNeedsPaintPropertyUpdate()
}

// styleDidChange recomputes the derived state of o: paint layer and
// scrollable area.
func (o *Object) styleDidChange() {
	if o.layerTypeRequired() {
		if o.layer == nil {
			o.layer = &PaintLayer{object: o}
		}
		o.layer.update()
	} else {
		o.layer = nil
	}
	if o.HasOverflowClip() {
		if o.scrollableArea == nil {
			o.scrollableArea = &ScrollableArea{owner: o}
		}
	} else {
		o.scrollableArea = nil
	}
}

// --- Geometry ---------------------------------------------------------------

// PhysicalLocation is the location of o relative to its container, see
// package documentation.
func (o *Object) PhysicalLocation() geom.LayoutPoint { return o.location }

// SetLocation moves o and marks it for an update.
func (o *Object) SetLocation(p geom.LayoutPoint) {
	if p != o.location {
		o.location = p
		o.SetNeedsPaintPropertyUpdate()
	}
}

// Size is the size of the border box.
func (o *Object) Size() geom.LayoutSize { return o.size }

// SetSize resizes o and marks it for an update.
func (o *Object) SetSize(s geom.LayoutSize) {
	if s != o.size {
		o.size = s
		o.SetNeedsPaintPropertyUpdate()
	}
}

// BorderOutsets are the border widths.
func (o *Object) BorderOutsets() geom.LayoutRectOutsets { return o.border }

// SetBorderOutsets sets the border widths.
func (o *Object) SetBorderOutsets(b geom.LayoutRectOutsets) {
	if b != o.border {
		o.border = b
		o.SetNeedsPaintPropertyUpdate()
	}
}

// OffsetForInFlowPosition is the offset of a relative or sticky box from its
// in-flow location.
func (o *Object) OffsetForInFlowPosition() geom.LayoutSize { return o.inFlowOffset }

// SetOffsetForInFlowPosition sets the relative offset.
func (o *Object) SetOffsetForInFlowPosition(s geom.LayoutSize) {
	if s != o.inFlowOffset {
		o.inFlowOffset = s
		o.SetNeedsPaintPropertyUpdate()
	}
}

// BorderBoxRect is the border box in local coordinates.
func (o *Object) BorderBoxRect() geom.LayoutRect {
	return geom.LayoutRect{Size: o.size}
}

// PaddingBoxRect is the border box without borders, in local coordinates.
func (o *Object) PaddingBoxRect() geom.LayoutRect {
	return o.BorderBoxRect().Contract(o.border)
}

// OverflowClipRect is the rect overflow is clipped to, for a border box
// located at location. Overlay scrollbars are subtracted if
// excludeOverlayScrollbars is set.
func (o *Object) OverflowClipRect(location geom.LayoutPoint, excludeOverlayScrollbars bool) geom.LayoutRect {
	r := o.PaddingBoxRect().MoveBy(location)
	if excludeOverlayScrollbars && o.scrollableArea != nil {
		sa := o.scrollableArea
		if sa.HasVerticalScrollbar() {
			r.Size.Width = max(0, r.Size.Width-sa.OverlayScrollbarThickness)
		}
		if sa.HasHorizontalScrollbar() {
			r.Size.Height = max(0, r.Size.Height-sa.OverlayScrollbarThickness)
		}
	}
	return r
}

// ClipRect is the CSS clip rect for a border box located at location.
func (o *Object) ClipRect(location geom.LayoutPoint) geom.LayoutRect {
	return o.style.Clip.Rect(o.size).MoveBy(location)
}

// BorderRoundedRect is the border box at location with the border radii of o.
func (o *Object) BorderRoundedRect(location geom.LayoutPoint) geom.FloatRoundedRect {
	return geom.FloatRoundedRect{
		Rect:  o.BorderBoxRect().MoveBy(location).ToFloat(),
		Radii: o.style.BorderRadii,
	}
}

// InnerBorderRoundedRect is the inner border edge of BorderRoundedRect.
func (o *Object) InnerBorderRoundedRect(location geom.LayoutPoint) geom.FloatRoundedRect {
	return o.BorderRoundedRect(location).InnerRoundedRect(o.border)
}
