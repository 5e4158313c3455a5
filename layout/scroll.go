package layout

import (
	"github.com/npillmayer/paintprops/dom/style/css"
	"github.com/npillmayer/paintprops/geom"
)

// ScrollableArea holds the scrolling state of a box with overflow clip.
type ScrollableArea struct {
	owner *Object
	// ScrollOffset is the current scroll position.
	ScrollOffset geom.FloatSize
	// ScrollOrigin is non-zero for content which may scroll to negative
	// offsets, e.g. in right-to-left writing.
	ScrollOrigin geom.IntPoint
	// OverlayScrollbarThickness is the extent of overlay scrollbars, which
	// do not take up layout space.
	OverlayScrollbarThickness geom.LayoutUnit
	// CustomScrollbars are styled scrollbars, which are painted on the main
	// thread.
	CustomScrollbars bool
	contentsSize     geom.LayoutSize
}

// ScrollableArea returns the scrolling state of o, or nil if o does not clip
// overflow.
func (o *Object) ScrollableArea() *ScrollableArea { return o.scrollableArea }

// Owner returns the box which scrolls.
func (sa *ScrollableArea) Owner() *Object { return sa.owner }

// SetScrollOffset scrolls to off.
func (sa *ScrollableArea) SetScrollOffset(off geom.FloatSize) {
	if off != sa.ScrollOffset {
		sa.ScrollOffset = off
		sa.owner.SetNeedsPaintPropertyUpdate()
	}
}

// SetContentsSize sets the size of the scrollable overflow.
func (sa *ScrollableArea) SetContentsSize(s geom.LayoutSize) {
	if s != sa.contentsSize {
		sa.contentsSize = s
		sa.owner.SetNeedsPaintPropertyUpdate()
	}
}

// ClientSize is the size of the padding box.
func (sa *ScrollableArea) ClientSize() geom.LayoutSize {
	return sa.owner.PaddingBoxRect().Size
}

// ContentsSize is the size of the scrollable overflow, at least as large as
// the client size.
func (sa *ScrollableArea) ContentsSize() geom.LayoutSize {
	client := sa.ClientSize()
	return geom.LayoutSize{
		Width:  max(client.Width, sa.contentsSize.Width),
		Height: max(client.Height, sa.contentsSize.Height),
	}
}

// HasScrollableOverflowX is true if contents overflow horizontally.
func (sa *ScrollableArea) HasScrollableOverflowX() bool {
	return sa.ContentsSize().Width.Round() != sa.ClientSize().Width.Round()
}

// HasScrollableOverflowY is true if contents overflow vertically.
func (sa *ScrollableArea) HasScrollableOverflowY() bool {
	return sa.ContentsSize().Height.Round() != sa.ClientSize().Height.Round()
}

// HasScrollableOverflow is true if contents overflow in any direction.
func (sa *ScrollableArea) HasScrollableOverflow() bool {
	return sa.HasScrollableOverflowX() || sa.HasScrollableOverflowY()
}

// HasHorizontalScrollbar is true for overflow-x: scroll and for
// overflow-x: auto with horizontal overflow.
func (sa *ScrollableArea) HasHorizontalScrollbar() bool {
	ov := sa.owner.style.OverflowX
	return ov == css.OverflowScroll || (ov == css.OverflowAuto && sa.HasScrollableOverflowX())
}

// HasVerticalScrollbar is like HasHorizontalScrollbar for the y-axis.
func (sa *ScrollableArea) HasVerticalScrollbar() bool {
	ov := sa.owner.style.OverflowY
	return ov == css.OverflowScroll || (ov == css.OverflowAuto && sa.HasScrollableOverflowY())
}

// UserInputScrollable is true if the user may scroll in the given direction.
func (sa *ScrollableArea) UserInputScrollable(horizontal bool) bool {
	if horizontal {
		return sa.owner.style.OverflowX.IsScrollable()
	}
	return sa.owner.style.OverflowY.IsScrollable()
}

// ContentsRect is the scrollable contents area in the space of the scroll
// container.
func (sa *ScrollableArea) ContentsRect() geom.IntRect {
	size := sa.ContentsSize()
	return geom.IntRect{
		Origin: sa.ScrollOrigin.Neg(),
		Size:   geom.IntSize{Width: size.Width.Round(), Height: size.Height.Round()},
	}
}
