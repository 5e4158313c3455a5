package layout

import (
	"testing"

	"github.com/npillmayer/paintprops/dom/style"
	"github.com/npillmayer/paintprops/dom/style/css"
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/paint/property"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func px(v int) geom.LayoutUnit { return geom.FromInt(v) }

func pt(x, y int) geom.LayoutPoint { return geom.LayoutPoint{X: px(x), Y: px(y)} }

func box(name string, x, y, w, h int, mod func(*Style)) *Object {
	s := DefaultStyle()
	if mod != nil {
		mod(s)
	}
	o := NewObject(KindBlock, name, s)
	o.SetLocation(pt(x, y))
	o.SetSize(geom.LayoutSize{Width: px(w), Height: px(h)})
	return o
}

type fixture struct {
	fv                                     *FrameView
	body, rel, abs, fixed, scroller, inner *Object
}

func buildFixture() fixture {
	f := fixture{fv: NewFrameView(geom.IntSize{Width: 800, Height: 600})}
	f.body = box("body", 8, 8, 784, 500, nil)
	f.rel = box("rel", 0, 0, 200, 50, func(s *Style) { s.Position = css.Relative(nil) })
	f.rel.SetOffsetForInFlowPosition(geom.LayoutSize{Width: px(10)})
	f.abs = box("abs", 3, 4, 20, 20, func(s *Style) { s.Position = css.Absolute(nil) })
	f.fixed = box("fixed", 1, 1, 20, 20, func(s *Style) { s.Position = css.Fixed(nil) })
	f.scroller = box("scroller", 0, 100, 100, 100, func(s *Style) {
		s.OverflowX, s.OverflowY = css.OverflowScroll, css.OverflowScroll
	})
	f.inner = box("inner", 0, 0, 100, 300, nil)
	f.fv.LayoutView().AppendChild(f.body)
	f.body.AppendChild(f.rel).AppendChild(f.fixed).AppendChild(f.scroller)
	f.rel.AppendChild(f.abs)
	f.scroller.AppendChild(f.inner)
	f.scroller.ScrollableArea().SetContentsSize(geom.LayoutSize{Width: px(100), Height: px(300)})
	f.scroller.ScrollableArea().SetScrollOffset(geom.FloatSize{Height: 50})
	return f
}

func TestContainers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.layout")
	defer teardown()
	//
	f := buildFixture()
	view := f.fv.LayoutView()
	assert.Same(t, f.rel, f.abs.Container())
	assert.Same(t, view, f.fixed.Container())
	assert.Same(t, f.body, f.rel.Container())
	assert.Same(t, f.rel, f.abs.ContainingBlock())
	assert.True(t, view.CanContainFixedPositionObjects())
	assert.False(t, f.rel.CanContainFixedPositionObjects())
	assert.True(t, f.rel.CanContainAbsolutePositionObjects())
	//
	off := f.abs.OffsetFromAncestorContainer(view)
	t.Logf("offset of abs = %v", off)
	assert.Equal(t, geom.LayoutSize{Width: px(21), Height: px(12)}, off)
	off = f.inner.OffsetFromAncestorContainer(view)
	t.Logf("offset of scrolled content = %v", off)
	assert.Equal(t, geom.LayoutSize{Width: px(8), Height: px(58)}, off)
}

func TestLayers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.layout")
	defer teardown()
	//
	f := buildFixture()
	view := f.fv.LayoutView()
	require.NotNil(t, view.Layer())
	assert.Nil(t, f.body.Layer())
	assert.NotNil(t, f.rel.Layer())
	assert.Same(t, view.Layer(), f.body.PaintingLayer())
	assert.Same(t, f.rel.Layer(), f.abs.Layer().Parent())
	assert.True(t, f.scroller.HasOverflowClip())
	assert.True(t, f.scroller.ScrollsOverflow())
	assert.True(t, f.scroller.Layer().IsSelfPaintingLayer())
	assert.Same(t, f.scroller.Layer(), f.inner.PaintingLayer())
	assert.Equal(t, PaintsIntoOwnBacking, view.Layer().GetCompositingState())
	assert.Equal(t, NotComposited, f.rel.Layer().GetCompositingState())
	//
	hidden := box("hidden", 0, 0, 50, 50, func(s *Style) { s.OverflowY = css.OverflowHidden })
	f.body.AppendChild(hidden)
	require.NotNil(t, hidden.Layer())
	if hidden.Layer().IsSelfPaintingLayer() {
		t.Logf("overflow clip layer of non-scrolling box should not paint itself")
		t.Errorf("expected hidden box without overflow to have a non-self-painting layer")
	}
	assert.Same(t, view.Layer(), hidden.PaintingLayer())
}

func TestCompositingReasons(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.layout")
	defer teardown()
	//
	tl, err := css.ParseTransform(style.Property("translate(10px, 0)"))
	require.NoError(t, err)
	moved := box("moved", 0, 0, 10, 10, func(s *Style) { s.Transform = tl })
	hinted := box("hinted", 0, 0, 10, 10, func(s *Style) { s.WillChange = css.WillChangeTransform })
	fv := NewFrameView(geom.IntSize{Width: 100, Height: 100})
	fv.LayoutView().AppendChild(moved).AppendChild(hinted)
	assert.True(t, moved.Layer().PaintsWithTransform())
	assert.Zero(t, moved.DirectCompositingReasons())
	assert.True(t, hinted.CompositingReasonsForTransform().Has(property.CompositingWillChangeTransform))
	assert.Equal(t, PaintsIntoOwnBacking, hinted.Layer().GetCompositingState())
	hinted.Layer().SetCompositingState(NotComposited)
	assert.Equal(t, NotComposited, hinted.Layer().GetCompositingState())
}

func TestUpdateFlags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.layout")
	defer teardown()
	//
	f := buildFixture()
	view := f.fv.LayoutView()
	assert.True(t, view.DescendantNeedsPaintPropertyUpdate())
	for _, o := range []*Object{view, f.body, f.rel, f.abs, f.fixed, f.scroller, f.inner} {
		o.ClearPaintPropertyUpdateFlags()
	}
	f.inner.SetLocation(pt(0, 1))
	assert.True(t, f.inner.NeedsPaintPropertyUpdate())
	assert.True(t, f.scroller.DescendantNeedsPaintPropertyUpdate())
	assert.True(t, view.DescendantNeedsPaintPropertyUpdate())
	assert.False(t, f.rel.DescendantNeedsPaintPropertyUpdate())
	assert.False(t, f.scroller.NeedsPaintPropertyUpdate())
}

func TestScrollableArea(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.layout")
	defer teardown()
	//
	f := buildFixture()
	sa := f.scroller.ScrollableArea()
	require.NotNil(t, sa)
	assert.Equal(t, geom.NewIntRect(0, 0, 100, 300), sa.ContentsRect())
	assert.True(t, sa.HasVerticalScrollbar())
	assert.True(t, sa.HasHorizontalScrollbar())
	assert.True(t, sa.UserInputScrollable(true))
	assert.True(t, sa.UserInputScrollable(false))
	assert.True(t, sa.HasScrollableOverflowY())
	assert.False(t, sa.HasScrollableOverflowX())
	assert.Equal(t, geom.LayoutSize{Height: px(50)}, f.scroller.ScrolledContentOffset())
	assert.Nil(t, f.body.ScrollableArea())
}

func TestFragmentainerIterator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.layout")
	defer teardown()
	//
	ftObj := NewObject(KindFlowThread, "flow", nil)
	ft := ftObj.FlowThread()
	it := ft.Fragmentainers(geom.LayoutRectPx(0, 0, 100, 100))
	assert.True(t, it.AtEnd(), "unknown column height must not produce columns")
	ft.SetColumns(px(100), px(20), px(50))
	//
	var columns []int
	var offsets []geom.LayoutPoint
	for it = ft.Fragmentainers(geom.LayoutRectPx(0, 30, 100, 80)); !it.AtEnd(); it.Advance() {
		columns = append(columns, it.FragmentainerIndex())
		offsets = append(offsets, it.PaginationOffset())
	}
	t.Logf("columns = %v, offsets = %v", columns, offsets)
	assert.Equal(t, []int{0, 1, 2}, columns)
	assert.Equal(t, pt(120, -50), offsets[1])
	assert.Equal(t, pt(240, -100), offsets[2])
	//
	it = ft.Fragmentainers(geom.LayoutRectPx(0, 0, 100, 100))
	n := 0
	for ; !it.AtEnd(); it.Advance() {
		n++
	}
	assert.Equal(t, 2, n, "bottom edge at a column boundary belongs to the former column")
	//
	it = ft.Fragmentainers(geom.LayoutRectPx(0, 50, 100, 0))
	require.False(t, it.AtEnd())
	assert.Equal(t, 1, it.FragmentainerIndex())
	assert.Equal(t, px(50), it.FragmentainerLogicalTopInFlowThread())
	assert.Equal(t, geom.LayoutRectPx(0, 50, 100, 50), it.ClipRectInFlowThread())
	//
	assert.Equal(t, px(20), ft.PageRemainingLogicalHeightForOffset(px(30)))
	assert.Equal(t, px(50), ft.PageRemainingLogicalHeightForOffset(px(50)))
	assert.Equal(t, px(50), ft.PageLogicalHeightForOffset(px(1234)))
	//
	it = ft.Fragmentainers(geom.LayoutRectPx(0, 0, 100, 50*10000))
	n = 0
	for ; !it.AtEnd(); it.Advance() {
		n++
	}
	assert.Equal(t, 10000, n)
}

func TestPaginationLayers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.layout")
	defer teardown()
	//
	fv := NewFrameView(geom.IntSize{Width: 800, Height: 600})
	view := fv.LayoutView()
	mc := box("multicol", 10, 10, 340, 50, nil)
	flow := NewObject(KindFlowThread, "flow", nil)
	flow.SetSize(geom.LayoutSize{Width: px(100), Height: px(150)})
	flow.FlowThread().SetColumns(px(100), px(20), px(50))
	p := box("p", 0, 120, 100, 20, func(s *Style) { s.Position = css.Relative(nil) })
	view.AppendChild(mc)
	mc.AppendChild(flow)
	flow.AppendChild(p)
	//
	require.NotNil(t, mc.Layer(), "multicol containers have a layer")
	assert.Same(t, flow.FlowThread(), mc.MultiColumnFlowThread())
	assert.Same(t, flow.Layer(), p.Layer().EnclosingPaginationLayer())
	assert.Same(t, flow.Layer(), flow.Layer().EnclosingPaginationLayer())
	assert.Nil(t, mc.Layer().EnclosingPaginationLayer())
	assert.True(t, p.Layer().ShouldFragmentCompositedBounds())
	//
	visual := p.Layer().VisualOffsetFromAncestor(view.Layer())
	t.Logf("visual offset of p = %v", visual)
	assert.Equal(t, pt(250, 30), visual)
	assert.Equal(t, geom.LayoutRectPx(0, 120, 100, 20), p.Layer().PhysicalBoundingBox(flow.Layer()))
}

func TestTableSections(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.layout")
	defer teardown()
	//
	table := NewObject(KindTable, "table", nil)
	table.TableInfo().VBorderSpacing = px(2)
	section := func(name string, kind SectionKind, h int, rows int) *Object {
		s := NewObject(KindTableSection, name, nil)
		s.SetSize(geom.LayoutSize{Width: px(100), Height: px(h)})
		s.SectionInfo().Kind = kind
		s.SectionInfo().Repeating = kind != SectionBody
		for i := 0; i < rows; i++ {
			s.AppendChild(NewObject(KindTableRow, name+"-row", nil))
		}
		return s
	}
	foot := section("tfoot", SectionFooter, 10, 0)
	head := section("thead", SectionHeader, 20, 1)
	body := section("tbody", SectionBody, 200, 3)
	table.AppendChild(foot).AppendChild(head).AppendChild(body)
	//
	assert.Equal(t, px(22), table.RowOffsetFromRepeatingHeader())
	assert.Equal(t, px(12), table.RowOffsetFromRepeatingFooter())
	assert.Same(t, head, table.TopNonEmptySection())
	assert.Same(t, body, table.BottomNonEmptySection(), "empty footer is skipped")
	assert.True(t, head.IsRepeatingHeaderGroup())
	assert.True(t, foot.IsRepeatingFooterGroup())
	assert.False(t, body.IsRepeatingHeaderGroup())
	assert.Same(t, table, body.FirstRow().Table())
}

func TestMiscPredicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.layout")
	defer teardown()
	//
	inline := NewObject(KindInline, "span", nil)
	float := box("float", 0, 0, 10, 10, func(s *Style) { s.Floating = true })
	text := NewObject(KindText, "text", nil)
	block := box("div", 0, 0, 10, 10, nil)
	block.AppendChild(inline)
	inline.AppendChild(float).AppendChild(text)
	assert.True(t, float.IsFloatingWithNonContainingBlockParent())
	assert.Same(t, block, float.ContainingBlock())
	assert.False(t, text.IsBoxModelObject())
	assert.True(t, inline.IsBoxModelObject())
	assert.False(t, inline.IsBox())
	//
	g := NewObject(KindSVGContainer, "g", nil)
	assert.True(t, g.IsSVGChild())
	assert.True(t, g.LocalToSVGParentTransform().IsIdentity())
	assert.Equal(t, "svg-container(g)", g.String())
}
