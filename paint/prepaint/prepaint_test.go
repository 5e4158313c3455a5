package prepaint

import (
	"context"
	"sync"
	"testing"

	"github.com/gogpu/gg/scene"
	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/paintprops/dom/style"
	"github.com/npillmayer/paintprops/dom/style/css"
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/layout"
	"github.com/npillmayer/paintprops/paint/property"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func px(v int) geom.LayoutUnit { return geom.FromInt(v) }

func pt(x, y int) geom.LayoutPoint { return geom.LayoutPoint{X: px(x), Y: px(y)} }

func box(name string, x, y, w, h int, mod func(*layout.Style)) *layout.Object {
	s := layout.DefaultStyle()
	if mod != nil {
		mod(s)
	}
	o := layout.NewObject(layout.KindBlock, name, s)
	o.SetLocation(pt(x, y))
	o.SetSize(geom.LayoutSize{Width: px(w), Height: px(h)})
	return o
}

func relative(s *layout.Style) { s.Position = css.Relative(nil) }

func absolute(s *layout.Style) { s.Position = css.Absolute(nil) }

// page is a document with most kinds of nodes: positioned boxes, a
// scroller, a transform, opacity and a filter.
type page struct {
	fv                                       *layout.FrameView
	body, rel, abs, fixed, scroller, content *layout.Object
	moved, faded, blurred                    *layout.Object
}

func (p page) objects() []*layout.Object {
	return []*layout.Object{p.fv.LayoutView(), p.body, p.rel, p.abs, p.fixed, p.scroller,
		p.content, p.moved, p.faded, p.blurred}
}

func buildPage(t *testing.T) page {
	p := page{fv: layout.NewFrameView(geom.IntSize{Width: 800, Height: 600})}
	p.body = box("body", 8, 8, 784, 500, nil)
	p.rel = box("rel", 0, 0, 200, 50, relative)
	p.rel.SetOffsetForInFlowPosition(geom.LayoutSize{Width: px(10)})
	p.abs = box("abs", 3, 4, 20, 20, absolute)
	p.fixed = box("fixed", 1, 1, 20, 20, func(s *layout.Style) { s.Position = css.Fixed(nil) })
	p.scroller = box("scroller", 0, 100, 100, 100, func(s *layout.Style) {
		s.OverflowX, s.OverflowY = css.OverflowScroll, css.OverflowScroll
	})
	p.content = box("content", 0, 0, 100, 300, nil)
	tl, err := css.ParseTransform(style.Property("translate(10px, 0)"))
	require.NoError(t, err)
	p.moved = box("moved", 0, 200, 50, 50, func(s *layout.Style) { s.Transform = tl })
	p.faded = box("faded", 0, 250, 50, 50, func(s *layout.Style) { s.Opacity = 0.5 })
	p.blurred = box("blurred", 0, 300, 50, 50, func(s *layout.Style) {
		s.Filter = []css.FilterFunc{{Name: "blur", Type: scene.FilterBlur, Amount: 2}}
	})
	p.fv.LayoutView().AppendChild(p.body)
	p.body.AppendChild(p.rel).AppendChild(p.fixed).AppendChild(p.scroller).
		AppendChild(p.moved).AppendChild(p.faded).AppendChild(p.blurred)
	p.rel.AppendChild(p.abs)
	p.scroller.AppendChild(p.content)
	p.scroller.ScrollableArea().SetContentsSize(geom.LayoutSize{Width: px(100), Height: px(300)})
	p.scroller.ScrollableArea().SetScrollOffset(geom.FloatSize{Height: 50})
	return p
}

func borderBoxState(t *testing.T, o *layout.Object) property.State {
	s, ok := o.FirstFragment().LocalBorderBoxProperties()
	require.True(t, ok, "%v has no local border box state", o)
	return s
}

func TestFirstPassBuildsNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	p := buildPage(t)
	r := (&Walker{}).Update(p.fv)
	t.Logf("first pass: %v", r)
	assert.Equal(t, len(p.objects()), r.ObjectsVisited)
	assert.True(t, r.Changed())
	//
	frame := p.fv.Properties()
	require.NotNil(t, frame.PreTranslation)
	require.NotNil(t, frame.ContentClip)
	assert.Nil(t, frame.Scroll, "document fits into the viewport")
	contents, ok := p.fv.TotalPropertyTreeStateForContents()
	require.True(t, ok)
	assert.Same(t, frame.PreTranslation, contents.Transform)
	assert.Same(t, frame.ContentClip, contents.Clip)
	//
	moved := p.moved.FirstFragment().PaintProperties()
	require.NotNil(t, moved)
	require.NotNil(t, moved.PaintOffsetTranslation(), "transformed layers move their offset into a node")
	assert.Equal(t, geom.TranslationMatrix(8, 208), moved.PaintOffsetTranslation().Matrix())
	require.NotNil(t, moved.Transform())
	assert.Same(t, moved.PaintOffsetTranslation(), moved.Transform().Parent())
	assert.Equal(t, geom.LayoutPoint{}, p.moved.FirstFragment().PaintOffset)
	//
	faded := p.faded.FirstFragment().PaintProperties()
	require.NotNil(t, faded)
	require.NotNil(t, faded.Effect())
	assert.Equal(t, 0.5, faded.Effect().Opacity())
	assert.Same(t, property.RootEffect(), faded.Effect().Parent())
	assert.Same(t, faded.Effect(), borderBoxState(t, p.faded).Effect)
	//
	blurred := p.blurred.FirstFragment().PaintProperties()
	require.NotNil(t, blurred)
	require.NotNil(t, blurred.Filter())
	assert.Nil(t, blurred.Effect())
	assert.Equal(t, property.FilterOperations{{Type: scene.FilterBlur, Amount: 2}}, blurred.Filter().Filter())
	//
	assert.Nil(t, p.body.FirstFragment().PaintProperties(), "plain blocks need no nodes")
	_, ok = p.body.FirstFragment().LocalBorderBoxProperties()
	assert.False(t, ok)
}

func TestSecondPassIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	p := buildPage(t)
	w := &Walker{}
	w.Update(p.fv)
	r := w.Update(p.fv)
	if diff := cmp.Diff(PassResult{}, r); diff != "" {
		t.Logf("unchanged tree, second pass: %v", r)
		t.Errorf("expected an empty pass, diff (-want +got):\n%s", diff)
	}
	// every object recomputed, nothing changes shape
	for _, o := range p.objects() {
		o.SetNeedsPaintPropertyUpdate()
	}
	r = w.Update(p.fv)
	if diff := cmp.Diff(PassResult{ObjectsVisited: len(p.objects())}, r); diff != "" {
		t.Logf("all objects marked, pass: %v", r)
		t.Errorf("expected no node changes, diff (-want +got):\n%s", diff)
	}
	forced := &Walker{ForceFullUpdate: true}
	r = forced.Update(p.fv)
	assert.Equal(t, len(p.objects()), r.ObjectsVisited)
	assert.Zero(t, r.NodesCreated)
	assert.Zero(t, r.NodesRemoved)
	assert.False(t, r.ClipChanged)
}

func TestNestedRelativeOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	fv := layout.NewFrameView(geom.IntSize{Width: 400, Height: 400})
	a := box("a", 8, 8, 100, 100, relative)
	a.SetOffsetForInFlowPosition(geom.LayoutSize{Width: px(10)})
	b := box("b", 0, 0, 100, 100, relative)
	b.SetOffsetForInFlowPosition(geom.LayoutSize{Height: px(5)})
	c := box("c", 0, 0, 100, 100, relative)
	c.SetOffsetForInFlowPosition(geom.LayoutSize{Width: px(3), Height: px(3)})
	fv.LayoutView().AppendChild(a)
	a.AppendChild(b)
	b.AppendChild(c)
	(&Walker{}).Update(fv)
	//
	got := c.FirstFragment().PaintOffset
	t.Logf("paint offset of c = %v", got)
	assert.Equal(t, pt(8+13, 8+8), got)
	assert.Same(t, fv.Properties().PreTranslation, borderBoxState(t, c).Transform)
	// moving the outer box moves the whole subtree
	a.SetLocation(pt(20, 8))
	r := (&Walker{}).Update(fv)
	t.Logf("after move: %v", r)
	assert.True(t, r.ForcedSubtreeUpdate)
	assert.Equal(t, pt(20+13, 8+8), c.FirstFragment().PaintOffset)
	assert.True(t, a.SubtreeForcedUpdate())
}

func TestScrollerNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	fv := layout.NewFrameView(geom.IntSize{Width: 400, Height: 400})
	scroller := box("scroller", 0, 0, 100, 100, func(s *layout.Style) {
		s.OverflowX, s.OverflowY = css.OverflowScroll, css.OverflowScroll
	})
	content := box("content", 0, 0, 100, 300, nil)
	fv.LayoutView().AppendChild(scroller)
	scroller.AppendChild(content)
	sa := scroller.ScrollableArea()
	sa.SetContentsSize(geom.LayoutSize{Width: px(100), Height: px(300)})
	sa.SetScrollOffset(geom.FloatSize{Height: 50})
	(&Walker{}).Update(fv)
	//
	props := scroller.FirstFragment().PaintProperties()
	require.NotNil(t, props)
	scroll := props.Scroll()
	require.NotNil(t, scroll)
	assert.Same(t, property.RootScroll(), scroll.Parent())
	assert.Equal(t, geom.NewIntRect(0, 0, 100, 100), scroll.ContainerRect())
	assert.Equal(t, geom.NewIntRect(0, 0, 100, 300), scroll.ContentsRect())
	assert.True(t, scroll.Values().UserScrollableHorizontal)
	assert.True(t, scroll.Values().UserScrollableVertical)
	translation := props.ScrollTranslation()
	require.NotNil(t, translation)
	assert.Equal(t, geom.TranslationMatrix(0, -50), translation.Matrix())
	assert.Same(t, scroll, translation.ScrollNode())
	assert.Same(t, props.PaintOffsetTranslation(), translation.Parent())
	require.NotNil(t, props.OverflowClip())
	assert.Equal(t, geom.RoundedRect(geom.FloatRect{Width: 100, Height: 100}), props.OverflowClip().ClipRect())
	contents, ok := scroller.FirstFragment().ContentsProperties()
	require.True(t, ok)
	assert.Same(t, translation, contents.Transform)
	assert.Same(t, props.OverflowClip(), contents.Clip)
	assert.Equal(t, geom.LayoutPoint{}, content.FirstFragment().PaintOffset)
	// scrolling updates the translation in place
	sa.SetScrollOffset(geom.FloatSize{Height: 80})
	r := (&Walker{}).Update(fv)
	t.Logf("after scroll: %v", r)
	assert.Zero(t, r.NodesCreated)
	assert.Same(t, translation, props.ScrollTranslation())
	assert.Equal(t, geom.TranslationMatrix(0, -80), translation.Matrix())
	// removing the overflow clip removes all scroll nodes
	s := scroller.Style().Copy()
	s.OverflowX, s.OverflowY = css.OverflowVisible, css.OverflowVisible
	scroller.SetStyle(s)
	r = (&Walker{}).Update(fv)
	t.Logf("after overflow: visible: %v", r)
	assert.True(t, r.NodesRemoved > 0)
	assert.True(t, r.ClipChanged)
	assert.Nil(t, scroller.FirstFragment().PaintProperties())
}

func TestAbsoluteClipUnderFilter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	fv := layout.NewFrameView(geom.IntSize{Width: 400, Height: 400})
	container := box("container", 10, 10, 300, 300, relative)
	clipper := box("clipper", 0, 0, 200, 200, func(s *layout.Style) { s.OverflowY = css.OverflowHidden })
	filtered := box("filtered", 0, 0, 100, 100, func(s *layout.Style) {
		s.Filter = []css.FilterFunc{{Name: "blur", Type: scene.FilterBlur, Amount: 1}}
	})
	abs := box("abs", 5, 5, 20, 20, absolute)
	fv.LayoutView().AppendChild(container)
	container.AppendChild(clipper)
	clipper.AppendChild(filtered)
	filtered.AppendChild(abs)
	require.Same(t, container, abs.Container())
	(&Walker{}).Update(fv)
	//
	overflowClip := clipper.FirstFragment().PaintProperties().OverflowClip()
	require.NotNil(t, overflowClip)
	filter := filtered.FirstFragment().PaintProperties().Filter()
	require.NotNil(t, filter)
	assert.Same(t, overflowClip, filter.OutputClip())
	state := borderBoxState(t, abs)
	t.Logf("state of abs = %v", state)
	assert.Same(t, overflowClip, state.Clip, "absolute content is clipped with the filter output")
	assert.Same(t, filter, state.Effect)
	assert.Equal(t, pt(15, 15), abs.FirstFragment().PaintOffset)
	require.NoError(t, Verify(context.Background(), fv))
}

func TestFragmentCountIsCapped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	fv := layout.NewFrameView(geom.IntSize{Width: 400, Height: 400})
	mc := box("multicol", 0, 0, 400, 1, nil)
	flow := layout.NewObject(layout.KindFlowThread, "flow", nil)
	flow.SetSize(geom.LayoutSize{Width: px(100), Height: px(10000)})
	flow.FlowThread().SetColumns(px(100), 0, px(1))
	tall := box("tall", 0, 0, 100, 10000, relative)
	fv.LayoutView().AppendChild(mc)
	mc.AppendChild(flow)
	flow.AppendChild(tall)
	(&Walker{}).Update(fv)
	//
	t.Logf("fragments: flow=%d, tall=%d", flow.FragmentCount(), tall.FragmentCount())
	assert.Equal(t, MaxFragments, tall.FragmentCount())
	assert.Equal(t, MaxFragments, flow.FragmentCount())
	assert.Equal(t, 1, mc.FragmentCount())
	second := tall.FirstFragment().NextFragment()
	require.NotNil(t, second)
	assert.Equal(t, pt(100, -1), second.PaginationOffset)
	assert.Equal(t, px(1), second.LogicalTopInFlowThread)
	require.NotNil(t, second.PaintProperties())
	assert.NotNil(t, second.PaintProperties().FragmentClip())
}

func TestFragmentClipsPerColumn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	fv := layout.NewFrameView(geom.IntSize{Width: 800, Height: 600})
	mc := box("multicol", 10, 10, 340, 50, nil)
	flow := layout.NewObject(layout.KindFlowThread, "flow", nil)
	flow.SetSize(geom.LayoutSize{Width: px(100), Height: px(150)})
	flow.FlowThread().SetColumns(px(100), px(20), px(50))
	para := box("p", 0, 30, 100, 40, relative)
	fv.LayoutView().AppendChild(mc)
	mc.AppendChild(flow)
	flow.AppendChild(para)
	(&Walker{}).Update(fv)
	//
	require.Equal(t, 2, para.FragmentCount())
	first, second := para.FirstFragment(), para.FirstFragment().NextFragment()
	t.Logf("paint offsets: %v, %v", first.PaintOffset, second.PaintOffset)
	assert.Equal(t, pt(10, 40), first.PaintOffset)
	assert.Equal(t, pt(130, -10), second.PaintOffset)
	clip := second.PaintProperties().FragmentClip()
	require.NotNil(t, clip)
	assert.Equal(t, geom.RoundedRect(geom.FloatRect{X: 130, Y: 10, Width: 100, Height: 50}), clip.ClipRect())
	require.NoError(t, Verify(context.Background(), fv))
	// unfragmenting removes the extra fragment and its nodes
	para.SetSize(geom.LayoutSize{Width: px(100), Height: px(10)})
	r := (&Walker{}).Update(fv)
	t.Logf("after shrinking: %v", r)
	assert.Equal(t, 1, para.FragmentCount())
}

func tableFixture() (table, head, foot *layout.Object, flow *layout.Object) {
	fv := layout.NewFrameView(geom.IntSize{Width: 800, Height: 600})
	mc := box("multicol", 0, 0, 300, 100, nil)
	flow = layout.NewObject(layout.KindFlowThread, "flow", nil)
	flow.SetSize(geom.LayoutSize{Width: px(100), Height: px(300)})
	flow.FlowThread().SetColumns(px(100), 0, px(100))
	table = layout.NewObject(layout.KindTable, "table", nil)
	table.TableInfo().VBorderSpacing = px(2)
	section := func(name string, kind layout.SectionKind, h int) *layout.Object {
		s := layout.NewObject(layout.KindTableSection, name, nil)
		s.SetSize(geom.LayoutSize{Width: px(100), Height: px(h)})
		s.SectionInfo().Kind = kind
		s.SectionInfo().Repeating = kind != layout.SectionBody
		s.AppendChild(layout.NewObject(layout.KindTableRow, name+"-row", nil))
		return s
	}
	head = section("thead", layout.SectionHeader, 20)
	foot = section("tfoot", layout.SectionFooter, 10)
	table.AppendChild(head).AppendChild(section("tbody", layout.SectionBody, 240)).AppendChild(foot)
	fv.LayoutView().AppendChild(mc)
	mc.AppendChild(flow)
	flow.AppendChild(table)
	return
}

func repeatingContext(flow *layout.Object, bbox geom.LayoutRect, n int) *Context {
	ctx := NewContext()
	ctx.PaintingLayer = flow.Layer()
	ctx.Fragments = nil
	for i := 0; i < n; i++ {
		ctx.Fragments = append(ctx.Fragments, NewFragmentContext())
	}
	ctx.IsRepeatingInFragments = true
	ctx.RepeatingBoundingBoxInFlowThread = bbox
	return ctx
}

func adjustments(ctx *Context) []geom.LayoutUnit {
	var a []geom.LayoutUnit
	for _, fc := range ctx.Fragments {
		a = append(a, fc.RepeatingPaintOffsetAdjustment.Height)
	}
	return a
}

func TestRepeatingTableHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	table, head, _, flow := tableFixture()
	require.Equal(t, px(22), table.RowOffsetFromRepeatingHeader())
	ctx := repeatingContext(flow, geom.LayoutRectPx(0, 30, 100, 250), 3)
	newObjectBuilder(head, ctx).updateRepeatingPaintOffsetAdjustment()
	// the original header lives at 30 in the first column, repetitions
	// move to 2px below the top of their column
	got := adjustments(ctx)
	t.Logf("header adjustments = %v", got)
	assert.Equal(t, []geom.LayoutUnit{0, px(72), px(172)}, got)
}

func TestRepeatingTableFooter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	table, _, foot, flow := tableFixture()
	require.Equal(t, px(12), table.RowOffsetFromRepeatingFooter())
	ctx := repeatingContext(flow, geom.LayoutRectPx(0, 30, 100, 250), 3)
	newObjectBuilder(foot, ctx).updateRepeatingPaintOffsetAdjustment()
	// the original footer lives at 270, in the last column
	got := adjustments(ctx)
	t.Logf("footer adjustments = %v", got)
	assert.Equal(t, []geom.LayoutUnit{px(-184), px(-84), 0}, got)
}

func TestContextForFragment(t *testing.T) {
	parents := []FragmentContext{NewFragmentContext(), NewFragmentContext()}
	parents[1].LogicalTopInFlowThread = px(50)
	parents[1].Current.PaintOffset = pt(7, 7)
	clip := geom.LayoutRectPx(0, 50, 100, 50)
	fc := contextForFragment(clip, px(50), parents)
	assert.Equal(t, pt(7, 7), fc.Current.PaintOffset, "matching parent fragment")
	assert.Equal(t, clip, fc.FragmentClip.WithDefault(geom.LayoutRect{}))
	fc = contextForFragment(clip, px(100), parents)
	assert.Equal(t, geom.LayoutPoint{}, fc.Current.PaintOffset, "orphans use the first parent fragment")
	assert.Equal(t, px(100), fc.LogicalTopInFlowThread)
	fc.Current.PaintOffset = pt(1, 1)
	assert.Equal(t, geom.LayoutPoint{}, parents[0].Current.PaintOffset)
	//
	fc = contextForFragment(clip, px(100), nil)
	assert.True(t, fc.FragmentClip.IsNothing(), "no parent fragments, no fragment clip")
	assert.Equal(t, geom.LayoutUnit(0), fc.LogicalTopInFlowThread)
}

func TestParentChainsAreValid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	p := buildPage(t)
	(&Walker{}).Update(p.fv)
	require.NoError(t, Verify(context.Background(), p.fv))
	for _, o := range p.objects() {
		props := o.FirstFragment().PaintProperties()
		if props == nil {
			continue
		}
		for _, slot := range props.Slots() {
			if slot.Clip != nil {
				parentSpace := slot.Clip.Parent().LocalTransformSpace()
				if !parentSpace.IsAncestorOrSelf(slot.Clip.LocalTransformSpace()) {
					t.Logf("clip %s of %v: parent space %v", slot.Name, o, parentSpace)
					t.Errorf("parent clip of %v lives in a descendant space", o)
				}
			}
		}
	}
}

func TestPublisher(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	p := buildPage(t)
	w := &Walker{}
	w.Update(p.fv)
	pub := &Publisher{}
	assert.Nil(t, pub.Load())
	snap, err := pub.Publish(p.fv)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Generation)
	assert.Positive(t, snap.NodeCount)
	//
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := pub.Load()
			fs, ok := s.Fragment(p.moved.ID(), 0)
			if !ok || !fs.LocalBorderBox.Transform.IsFrozen() {
				t.Errorf("expected a frozen state for %v", p.moved)
			}
		}()
	}
	wg.Wait()
	//
	fs, ok := snap.Fragment(p.scroller.ID(), 0)
	require.True(t, ok)
	frozenPre := fs.LocalBorderBox.Transform // paint offset translation
	p.fv.SetScrollOffset(geom.FloatSize{Height: 10})
	p.fv.ContentsSize = geom.IntSize{Width: 800, Height: 2000}
	w.Update(p.fv)
	next, err := pub.Publish(p.fv)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), next.Generation)
	assert.Same(t, next, pub.Load())
	assert.Equal(t, geom.TranslationMatrix(8, 108), frozenPre.Matrix())
	live := p.scroller.FirstFragment().PaintProperties().PaintOffsetTranslation()
	require.NotNil(t, live.Parent().ScrollNode(), "the frame scrolls now")
	assert.Nil(t, frozenPre.Parent().ScrollNode(), "old snapshots do not see later passes")
}
