package css_test

import (
	"testing"

	"github.com/npillmayer/paintprops/dom/style/css"
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
)

func TestDimenBasic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.dom")
	defer teardown()
	//
	ten := css.JustDimen(dimen.PT * 10)
	var du dimen.DU
	switch m := ten.Match(); m {
	case m.Just(&du):
		t.Logf("du = %s", du)
	default:
		t.Errorf("expected Just(10pt) to be a fixed value, isn't: %#v", ten)
	}

	auto := css.Auto()
	switch m := auto.Match(); m {
	case m.IsKind(css.Auto()):
		t.Logf("dimen is auto")
	default:
		t.Errorf("expected dimen auto to match auto, isn't: %#v", auto)
	}

	inherit := css.Inherit()
	switch m := inherit.Match(); m {
	case m.Just(nil), m.IsKind(css.Auto()):
		t.Errorf("expected inherit not to match fixed or auto, does: %#v", inherit)
	}

	pcnt := css.Percentage(80)
	var p float64
	switch m := pcnt.Match(); m {
	case m.Percentage(&p):
		t.Logf("percent = %g", p)
	default:
		t.Errorf("expected Percentage(80) to be a percentage value, isn't: %#v", pcnt)
	}
	if p != 80 {
		t.Errorf("expected percentage to be 80, is %g", p)
	}
}

func TestDimenPattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.dom")
	defer teardown()
	//
	ten := css.JustDimen(dimen.PT * 10)
	m := css.DimenPattern[int](ten)
	zehn := m.OneOf(css.DimenPatterns[int]{
		Just:    10,
		Auto:    0,
		Default: -1,
	})
	if zehn != 10 {
		t.Errorf("expected zehn == 10, isn't: %#v", zehn)
	}

	var du dimen.DU
	e := css.DimenPattern[dimen.DU](ten).With(&du)
	distance := e.OneOf(css.DimenPatterns[dimen.DU]{
		Just:    2 * du,
		Auto:    0,
		Default: -1,
	})
	if distance != 2*10*dimen.PT {
		t.Errorf("expected distance to be %v, isn't: %#v", 20*dimen.PT, distance)
	}

	half := css.DimenPattern[string](css.Percentage(50)).OneOf(css.DimenPatterns[string]{
		Percent: "relative",
		Default: "other",
	})
	if half != "relative" {
		t.Errorf("expected 50%% to match the percent pattern, matched %q", half)
	}
}

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.dom")
	defer teardown()
	//
	d, err := css.ParseDimen("12px")
	if err != nil {
		t.Fatal(err)
	}
	if got := d.ResolveLayout(0, 0); got != geom.FromInt(12) {
		t.Errorf("expected 12px to resolve to 12px, is %s", got)
	}
	d, err = css.ParseDimen("25%")
	if err != nil {
		t.Fatal(err)
	}
	if got := d.ResolveLayout(geom.FromInt(200), 0); got != geom.FromInt(50) {
		t.Errorf("expected 25%% of 200px to be 50px, is %s", got)
	}
	d, _ = css.ParseDimen("auto")
	if got := d.ResolveLayout(geom.FromInt(200), geom.FromInt(7)); got != geom.FromInt(7) {
		t.Errorf("expected auto to resolve to the fallback, is %s", got)
	}
	if _, err = css.ParseDimen("3furlongs"); err == nil {
		t.Error("expected unknown unit to be rejected")
	}
}
