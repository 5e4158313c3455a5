package layout

import (
	"github.com/npillmayer/paintprops/geom"
)

// FlowThread lays out the content of a multi-column container in a single
// tall strip, which is then cut into columns of equal height. Column i
// covers the flow thread range [i*h, (i+1)*h) and is displayed i column
// widths (plus gaps) to the right of the first column.
//
// Columns are never balanced: content overflowing the last column creates
// additional columns in the inline direction.
type FlowThread struct {
	object       *Object
	ColumnWidth  geom.LayoutUnit
	ColumnGap    geom.LayoutUnit
	ColumnHeight geom.LayoutUnit
}

// FlowThread returns the flow thread state of a flow thread object, or nil.
func (o *Object) FlowThread() *FlowThread { return o.flowThread }

// MultiColumnFlowThread returns the flow thread of a multicol container, or
// nil.
func (o *Object) MultiColumnFlowThread() *FlowThread {
	for _, ch := range o.ChildObjects() {
		if ch.IsLayoutFlowThread() {
			return ch.flowThread
		}
	}
	return nil
}

// Object returns the flow thread object.
func (ft *FlowThread) Object() *Object { return ft.object }

// SetColumns sets the column geometry.
func (ft *FlowThread) SetColumns(width, gap, height geom.LayoutUnit) {
	ft.ColumnWidth, ft.ColumnGap, ft.ColumnHeight = width, gap, height
	ft.object.SetSubtreeNeedsPaintPropertyUpdate()
}

// IsPageLogicalHeightKnown is false as long as column heights have not been
// determined.
func (ft *FlowThread) IsPageLogicalHeightKnown() bool {
	return ft.ColumnHeight > 0
}

// PageLogicalHeightForOffset returns the height of the column at a flow
// thread offset.
func (ft *FlowThread) PageLogicalHeightForOffset(offset geom.LayoutUnit) geom.LayoutUnit {
	return ft.ColumnHeight
}

// PageRemainingLogicalHeightForOffset returns the distance from offset to
// the end of its column. An offset at a column boundary belongs to the
// latter column.
func (ft *FlowThread) PageRemainingLogicalHeightForOffset(offset geom.LayoutUnit) geom.LayoutUnit {
	h := ft.ColumnHeight
	if h <= 0 {
		return 0
	}
	rem := offset % h
	if rem < 0 {
		rem += h
	}
	return h - rem
}

func (ft *FlowThread) columnIndexAt(offset geom.LayoutUnit) int {
	if ft.ColumnHeight <= 0 || offset <= 0 {
		return 0
	}
	return int(offset / ft.ColumnHeight)
}

// PaginationOffset translates flow thread coordinates of column i to visual
// coordinates.
func (ft *FlowThread) PaginationOffset(column int) geom.LayoutPoint {
	i := geom.LayoutUnit(column)
	return geom.LayoutPoint{
		X: i * (ft.ColumnWidth + ft.ColumnGap),
		Y: -i * ft.ColumnHeight,
	}
}

// FlowThreadPointToVisualPoint maps a point of the flow thread to its
// location in the multicol container.
func (ft *FlowThread) FlowThreadPointToVisualPoint(p geom.LayoutPoint) geom.LayoutPoint {
	return p.MoveBy(ft.PaginationOffset(ft.columnIndexAt(p.Y)))
}

// ClipRectInFlowThread is the portion of the flow thread shown in column i.
func (ft *FlowThread) ClipRectInFlowThread(column int) geom.LayoutRect {
	return geom.LayoutRect{
		Origin: geom.LayoutPoint{Y: geom.LayoutUnit(column) * ft.ColumnHeight},
		Size:   geom.LayoutSize{Width: ft.ColumnWidth, Height: ft.ColumnHeight},
	}
}

// FragmentainerIterator iterates over the columns intersecting a box in
// flow thread coordinates.
type FragmentainerIterator struct {
	ft            *FlowThread
	current, last int
}

// Fragmentainers returns an iterator over the columns box intersects. If
// column heights are unknown, the iterator is exhausted from the start.
func (ft *FlowThread) Fragmentainers(box geom.LayoutRect) *FragmentainerIterator {
	it := &FragmentainerIterator{ft: ft, current: 0, last: -1}
	if !ft.IsPageLogicalHeightKnown() {
		return it
	}
	it.current = ft.columnIndexAt(box.Y())
	it.last = it.current
	if bottom := box.MaxY(); bottom > box.Y() {
		// the bottom edge belongs to the former column
		it.last = max(it.current, ft.columnIndexAt(bottom-1))
	}
	return it
}

// AtEnd is true if all columns have been visited.
func (it *FragmentainerIterator) AtEnd() bool {
	return it.current > it.last
}

// Advance moves to the next column.
func (it *FragmentainerIterator) Advance() {
	it.current++
}

// FragmentainerIndex is the index of the current column.
func (it *FragmentainerIterator) FragmentainerIndex() int {
	return it.current
}

// PaginationOffset translates flow thread coordinates of the current column
// to visual coordinates.
func (it *FragmentainerIterator) PaginationOffset() geom.LayoutPoint {
	return it.ft.PaginationOffset(it.current)
}

// FragmentainerLogicalTopInFlowThread is the flow thread offset where the
// current column starts.
func (it *FragmentainerIterator) FragmentainerLogicalTopInFlowThread() geom.LayoutUnit {
	return geom.LayoutUnit(it.current) * it.ft.ColumnHeight
}

// ClipRectInFlowThread is the portion of the flow thread shown in the
// current column.
func (it *FragmentainerIterator) ClipRectInFlowThread() geom.LayoutRect {
	return it.ft.ClipRectInFlowThread(it.current)
}
