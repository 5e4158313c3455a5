package propdbg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/paintprops/dom/style/css"
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/layout"
	"github.com/npillmayer/paintprops/paint/prepaint"
	"github.com/npillmayer/paintprops/paint/property"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformTreeSharesParents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.propdbg")
	defer teardown()
	//
	root := property.RootTransform()
	a := property.NewTransformNode(root, property.TransformValues{Matrix: geom.TranslationMatrix(1, 2)})
	b := property.NewTransformNode(a, property.TransformValues{Matrix: geom.TranslationMatrix(3, 4)})
	c := property.NewTransformNode(a, property.TransformValues{Matrix: geom.TranslationMatrix(5, 6)})
	out := TransformTree(b, c, a).String()
	t.Logf("transform tree =\n%s", out)
	assert.Equal(t, 1, strings.Count(out, "root transform"))
	assert.Equal(t, 1, strings.Count(out, a.String()))
	assert.Less(t, strings.Index(out, b.String()), strings.Index(out, c.String()),
		"siblings keep the order they were found in")
}

func TestClipTreeOfRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.propdbg")
	defer teardown()
	//
	out := ClipTree(property.RootClip()).String()
	if !strings.Contains(out, "root clip") {
		t.Logf("clip tree =\n%s", out)
		t.Errorf("expected root clip to be printed, isn't")
	}
	assert.NotContains(t, EffectTree().String(), "effect")
	assert.Contains(t, ScrollTree(property.RootScroll()).String(), "root scroll")
}

func scrollingPage() *layout.FrameView {
	fv := layout.NewFrameView(geom.IntSize{Width: 400, Height: 300})
	s := layout.DefaultStyle()
	s.OverflowX, s.OverflowY = css.OverflowAuto, css.OverflowAuto
	s.Opacity = 0.8
	scroller := layout.NewObject(layout.KindBlock, "main", s)
	scroller.SetLocation(geom.LayoutPoint{X: geom.FromInt(10), Y: geom.FromInt(10)})
	scroller.SetSize(geom.LayoutSize{Width: geom.FromInt(200), Height: geom.FromInt(100)})
	fv.LayoutView().AppendChild(scroller)
	scroller.ScrollableArea().SetContentsSize(geom.LayoutSize{Width: geom.FromInt(200), Height: geom.FromInt(500)})
	return fv
}

func TestCollect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.propdbg")
	defer teardown()
	//
	fv := scrollingPage()
	(&prepaint.Walker{}).Update(fv)
	f, err := Collect(fv)
	require.NoError(t, err)
	t.Logf("forest =\n%s", f)
	assert.Equal(t, "frame.PreTranslation", f.Label(fv.Properties().PreTranslation))
	assert.Equal(t, "frame.ContentClip", f.Label(fv.Properties().ContentClip))
	main := fv.LayoutView().ChildObjects()[0]
	props := main.FirstFragment().PaintProperties()
	require.NotNil(t, props)
	require.NotNil(t, props.OverflowClip())
	assert.Equal(t, main.String()+".OverflowClip", f.Label(props.OverflowClip()))
	assert.Equal(t, main.String()+".Scroll", f.Label(props.Scroll()))
	assert.Equal(t, main.String()+".Effect", f.Label(props.Effect()))
	assert.Contains(t, f.String(), "root scroll")
}

func TestToGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.propdbg")
	defer teardown()
	//
	fv := scrollingPage()
	(&prepaint.Walker{}).Update(fv)
	f, err := Collect(fv)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, ToGraphViz(f, &buf))
	dot := buf.String()
	if !strings.HasPrefix(dot, "digraph g {") || !strings.HasSuffix(dot, "}\n") {
		t.Logf("dot =\n%s", dot)
		t.Fatalf("expected a complete digraph")
	}
	for _, cluster := range []string{"cluster_transform", "cluster_clip", "cluster_effect", "cluster_scroll"} {
		assert.Contains(t, dot, cluster)
	}
	assert.Contains(t, dot, `style="solid"`)
	assert.Contains(t, dot, `style="dashed"`, "clips point to their local space")
	assert.Contains(t, dot, `style="dotted"`, "scroll translations point to their scroll node")
	// output is stable
	var again bytes.Buffer
	require.NoError(t, ToGraphViz(f, &again))
	assert.Equal(t, dot, again.String())
}
