package geom

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestLayoutUnitRounding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.geom")
	defer teardown()
	//
	if Px(10.5).Round() != 11 {
		t.Errorf("expected 10.5px to round to 11, is %d", Px(10.5).Round())
	}
	if Px(-0.5).Round() != 0 {
		t.Errorf("expected -0.5px to round to 0, is %d", Px(-0.5).Round())
	}
	if Px(-1.25).Floor() != -2 {
		t.Errorf("expected floor(-1.25px) = -2, is %d", Px(-1.25).Floor())
	}
	assert.Equal(t, 13.0, (FromInt(10) + FromInt(3)).ToFloat())
}

func TestLayoutPointComposition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.geom")
	defer teardown()
	//
	p := LayoutPointPx(0, 0)
	for _, off := range []LayoutSize{LayoutSizePx(10, 0), LayoutSizePx(0, 5), LayoutSizePx(3, 3)} {
		p = p.Add(off)
	}
	t.Logf("composed offset = %v", p)
	assert.Equal(t, LayoutPointPx(13, 8), p)
	assert.Equal(t, LayoutSizePx(13, 8), p.Sub(LayoutPoint{}))
}

func TestLayoutRectUnite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.geom")
	defer teardown()
	//
	a := LayoutRectPx(0, 0, 10, 10)
	b := LayoutRectPx(20, 5, 10, 10)
	u := a.Unite(b)
	assert.Equal(t, LayoutRectPx(0, 0, 30, 15), u)
	assert.Equal(t, a, a.Unite(LayoutRect{}), "empty rects do not contribute")
	assert.True(t, a.Intersects(LayoutRectPx(5, 5, 1, 1)))
	assert.False(t, a.Intersects(b))
}

func TestPixelSnapping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.geom")
	defer teardown()
	//
	r := LayoutRectPx(0.4, 0.6, 99.8, 99.8)
	snapped := r.PixelSnapped()
	t.Logf("%v snapped = %v", r, snapped)
	assert.Equal(t, NewIntRect(0, 1, 100, 99), snapped)
}

func TestInnerRoundedRect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.geom")
	defer teardown()
	//
	rr := FloatRoundedRect{
		Rect:  FloatRect{X: 0, Y: 0, Width: 100, Height: 50},
		Radii: CornerRadii{TopLeft: FloatSize{10, 10}, BottomRight: FloatSize{4, 4}},
	}
	b := FromInt(5)
	inner := rr.InnerRoundedRect(LayoutRectOutsets{Top: b, Right: b, Bottom: b, Left: b})
	assert.Equal(t, FloatRect{X: 5, Y: 5, Width: 90, Height: 40}, inner.Rect)
	assert.Equal(t, FloatSize{5, 5}, inner.Radii.TopLeft)
	assert.True(t, inner.Radii.BottomRight.IsZero(), "radius smaller than border collapses")
	assert.True(t, inner.IsRounded())
}

func TestMatrixComposition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.geom")
	defer teardown()
	//
	m := TranslationMatrix(10, 20).Multiply(ScaleMatrix(2, 2))
	p := m.MapPoint(FloatPoint{X: 1, Y: 1})
	assert.Equal(t, FloatPoint{X: 12, Y: 22}, p, "scale applies before translation")
	assert.False(t, m.IsIdentityOrTranslation())
	assert.True(t, TranslationMatrix(3, 4).IsIdentityOrTranslation())
	assert.True(t, Identity().IsIdentity())
	assert.Equal(t, "translate(3,4,0)", TranslationMatrix(3, 4).String())
}

func TestMatrixInverse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.geom")
	defer teardown()
	//
	m := TranslationMatrix(5, 7).Multiply(RotationMatrix(30)).ApplyPerspective(200)
	inv, ok := m.Inverse()
	if !ok {
		t.Fatalf("expected matrix %v to be invertible", m)
	}
	id := m.Multiply(inv)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			want := 0.0
			if r == c {
				want = 1
			}
			if math.Abs(id.At(r, c)-want) > 1e-9 {
				t.Errorf("m * m^-1 [%d,%d] = %g, expected %g", r, c, id.At(r, c), want)
			}
		}
	}
	if _, ok := ScaleMatrix(0, 1).Inverse(); ok {
		t.Errorf("expected degenerate scale to be non-invertible")
	}
}

func TestMatrixAffineBridge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.geom")
	defer teardown()
	//
	a := gg.Translate(4, 2).Multiply(gg.Scale(3, 3))
	m := FromAffine(a)
	back, ok := m.Affine()
	assert.True(t, ok)
	assert.Equal(t, a, back)
	_, ok = m.ApplyPerspective(100).Affine()
	assert.False(t, ok, "perspective is not representable as 2D affine")
	assert.Equal(t, FloatSize{Width: 4, Height: 2}, m.Translation2D())
}
