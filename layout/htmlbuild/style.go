package htmlbuild

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/paintprops/dom/style"
	"github.com/npillmayer/paintprops/dom/style/css"
	"github.com/npillmayer/paintprops/dom/styledtree"
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/layout"
)

// props reads the properties of a styled node. The first error sticks and
// later reads return zero values.
type props struct {
	sn  *styledtree.StyNode
	err error
}

func (p *props) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: <%s> %s: %v", ErrStyle, p.sn.HTMLNode().Data, key, err)
	}
}

func (p *props) get(key string) style.Property {
	if p.err != nil {
		return style.NullStyle
	}
	v, err := css.GetProperty(p.sn, key)
	if err != nil {
		p.fail(key, err)
		return style.NullStyle
	}
	return style.Property(strings.TrimSpace(string(v)))
}

// length resolves a length against base. auto and unset lengths resolve to
// fallback.
func (p *props) length(key string, base, fallback geom.LayoutUnit) geom.LayoutUnit {
	v := p.get(key)
	if v == style.NullStyle {
		return fallback
	}
	d, err := css.ParseDimen(v)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return d.ResolveLayout(base, fallback)
}

// isSet is true for lengths other than auto.
func (p *props) isSet(key string) bool {
	v := p.get(key)
	return v != style.NullStyle && v != "auto" && v != "none"
}

// borderWidth is the width of one border edge, 0 for borders of style none.
func (p *props) borderWidth(edge string) geom.LayoutUnit {
	switch p.get("border-" + edge + "-style") {
	case style.NullStyle, "none", "hidden":
		return 0
	}
	switch w := p.get("border-" + edge + "-width"); w {
	case "thin":
		return geom.FromInt(1)
	case "medium":
		return geom.FromInt(3)
	case "thick":
		return geom.FromInt(5)
	}
	return p.length("border-"+edge+"-width", 0, 0)
}

func (p *props) outsets(prefix string, base geom.LayoutUnit) geom.LayoutRectOutsets {
	if prefix == "border" {
		return geom.LayoutRectOutsets{
			Top:    p.borderWidth("top"),
			Right:  p.borderWidth("right"),
			Bottom: p.borderWidth("bottom"),
			Left:   p.borderWidth("left"),
		}
	}
	return geom.LayoutRectOutsets{
		Top:    p.length(prefix+"-top", base, 0),
		Right:  p.length(prefix+"-right", base, 0),
		Bottom: p.length(prefix+"-bottom", base, 0),
		Left:   p.length(prefix+"-left", base, 0),
	}
}

func (p *props) radius(corner string) geom.FloatSize {
	r := p.length("border-"+corner+"-radius", 0, 0).ToFloat()
	return geom.FloatSize{Width: r, Height: r}
}

func (p *props) display() css.DisplayMode {
	v := p.get("display")
	d, err := css.ParseDisplay(string(v))
	if err != nil {
		tracer().Infof("<%s>: %v, using display: block", p.sn.HTMLNode().Data, err)
	}
	return d
}

func (p *props) overflow(key string) css.Overflow {
	o, err := css.ParseOverflow(p.get(key))
	if err != nil {
		p.fail(key, err)
	}
	return o
}

func (p *props) integer(key string) int {
	v := p.get(key)
	if v == style.NullStyle || v == "auto" {
		return 0
	}
	n, err := strconv.Atoi(string(v))
	if err != nil {
		p.fail(key, err)
	}
	return n
}

// computeStyle creates the layout style of a styled node.
func computeStyle(p *props) *layout.Style {
	s := layout.DefaultStyle()
	if pos := css.Position(p.get("position")); !pos.IsUnset() {
		s.Position = pos
	}
	switch p.get("float") {
	case "left", "right":
		s.Floating = true
	}
	s.OverflowX = p.overflow("overflow-x")
	s.OverflowY = p.overflow("overflow-y")
	s.ColumnSpanAll = p.get("column-span") == "all"
	var err error
	if s.Transform, err = css.ParseTransform(p.get("transform")); err != nil {
		p.fail("transform", err)
	}
	if s.Origin, err = css.ParseOrigin(p.get("transform-origin")); err != nil {
		p.fail("transform-origin", err)
	}
	s.Preserves3D = p.get("transform-style") == "preserve-3d"
	if p.isSet("perspective") {
		s.Perspective = p.length("perspective", 0, 0).ToFloat()
	}
	if s.PerspOrigin, err = css.ParseOrigin(p.get("perspective-origin")); err != nil {
		p.fail("perspective-origin", err)
	}
	s.BackfaceHidden = p.get("backface-visibility") == "hidden"
	if v := p.get("opacity"); v != style.NullStyle {
		if s.Opacity, err = css.ParseNumber(v); err != nil {
			p.fail("opacity", err)
			s.Opacity = 1
		}
	}
	if s.BlendMode, err = css.ParseBlendMode(p.get("mix-blend-mode")); err != nil {
		p.fail("mix-blend-mode", err)
	}
	s.Isolate = p.get("isolation") == "isolate"
	if s.Filter, err = css.ParseFilter(p.get("filter")); err != nil {
		p.fail("filter", err)
	}
	s.Reflection = css.ParseReflection(p.get("-webkit-box-reflect"))
	if s.Mask = css.ParseMask(p.get("mask-image")); s.Mask == css.MaskNone {
		s.Mask = css.ParseMask(p.get("mask"))
	}
	if s.Clip, err = css.ParseClip(p.get("clip")); err != nil {
		p.fail("clip", err)
	}
	s.BorderRadii = geom.CornerRadii{
		TopLeft:     p.radius("top-left"),
		TopRight:    p.radius("top-right"),
		BottomLeft:  p.radius("bottom-left"),
		BottomRight: p.radius("bottom-right"),
	}
	s.WillChange = css.ParseWillChange(p.get("will-change"))
	s.BackgroundFixed = p.get("background-attachment") == "fixed"
	return s
}
