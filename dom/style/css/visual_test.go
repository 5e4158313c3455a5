package css

import (
	"testing"

	"github.com/gogpu/gg/scene"
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransform(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.dom")
	defer teardown()
	//
	tl, err := ParseTransform("translate(10px, 50%) scale(2)")
	require.NoError(t, err)
	require.Len(t, tl, 2)
	m := tl.Matrix(geom.FloatSize{Width: 100, Height: 40})
	t.Logf("matrix = %s", m)
	p := m.MapPoint(geom.FloatPoint{X: 1, Y: 1})
	assert.InDelta(t, 12.0, p.X, 1e-9)
	assert.InDelta(t, 22.0, p.Y, 1e-9)
	assert.False(t, tl.Has3D())
	//
	tl, err = ParseTransform("translatez(5px)")
	require.NoError(t, err)
	assert.True(t, tl.Has3D())
	//
	tl, err = ParseTransform("none")
	require.NoError(t, err)
	assert.True(t, tl.IsNone())
	assert.True(t, tl.Matrix(geom.FloatSize{}).IsIdentity())
	//
	_, err = ParseTransform("wobble(3)")
	assert.Error(t, err)
}

func TestParseMatrixFunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.dom")
	defer teardown()
	//
	tl, err := ParseTransform("matrix(1, 0, 0, 1, 7, 9)")
	require.NoError(t, err)
	m := tl.Matrix(geom.FloatSize{})
	assert.True(t, m.IsIdentityOrTranslation())
	assert.Equal(t, geom.FloatSize{Width: 7, Height: 9}, m.Translation2D())
}

func TestParseAngleUnits(t *testing.T) {
	for in, deg := range map[string]float64{"90deg": 90, "0.5turn": 180, "100grad": 90, "0": 0} {
		got, err := ParseAngle(in)
		require.NoError(t, err, in)
		assert.InDelta(t, deg, got, 1e-9, in)
	}
	got, _ := ParseAngle("3.14159265358979rad")
	assert.InDelta(t, 180.0, got, 1e-6)
	_, err := ParseAngle("90")
	assert.Error(t, err)
}

func TestParseOrigin(t *testing.T) {
	o, err := ParseOrigin("right top")
	require.NoError(t, err)
	pt := o.Resolve(geom.FloatSize{Width: 200, Height: 100})
	assert.Equal(t, geom.FloatPoint3D{X: 200, Y: 0}, pt)
	//
	o, err = ParseOrigin("bottom")
	require.NoError(t, err)
	pt = o.Resolve(geom.FloatSize{Width: 200, Height: 100})
	assert.Equal(t, geom.FloatPoint3D{X: 100, Y: 100}, pt)
	//
	o, err = ParseOrigin("10px 20px 4px")
	require.NoError(t, err)
	assert.Equal(t, geom.FloatPoint3D{X: 10, Y: 20, Z: 4}, o.Resolve(geom.FloatSize{}))
}

func TestParseFilterAndBlend(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.dom")
	defer teardown()
	//
	f, err := ParseFilter("blur(3px) grayscale(50%) drop-shadow(2px 2px 4px black)")
	require.NoError(t, err)
	require.Len(t, f, 3)
	assert.Equal(t, scene.FilterBlur, f[0].Type)
	assert.InDelta(t, 3.0, f[0].Amount, 1e-9)
	assert.Equal(t, scene.FilterColorMatrix, f[1].Type)
	assert.InDelta(t, 0.5, f[1].Amount, 1e-9)
	assert.Equal(t, scene.FilterDropShadow, f[2].Type)
	assert.InDelta(t, 4.0, f[2].Amount, 1e-9)
	//
	mode, err := ParseBlendMode("multiply")
	require.NoError(t, err)
	assert.Equal(t, scene.BlendMultiply, mode)
	_, err = ParseBlendMode("sparkle")
	assert.Error(t, err)
}

func TestParseClipAndOverflow(t *testing.T) {
	c, err := ParseClip("rect(10px, 50px, auto, 0)")
	require.NoError(t, err)
	assert.False(t, c.IsAuto())
	r := c.Rect(geom.LayoutSizePx(100, 80))
	assert.Equal(t, geom.LayoutRectPx(0, 10, 50, 70), r)
	c, _ = ParseClip("auto")
	assert.True(t, c.IsAuto())
	//
	o, err := ParseOverflow("scroll")
	require.NoError(t, err)
	assert.True(t, o.IsScrollable())
	assert.True(t, o.ClipsContent())
	o, _ = ParseOverflow("hidden")
	assert.False(t, o.IsScrollable())
	//
	wc := ParseWillChange("opacity, transform")
	assert.True(t, wc.Has(WillChangeOpacity))
	assert.True(t, wc.Has(WillChangeTransform))
	assert.False(t, wc.Has(WillChangeFilter))
	assert.Equal(t, MaskLuminance, ParseMask("url(#m) luminance"))
	assert.Equal(t, MaskNone, ParseMask("none"))
}
