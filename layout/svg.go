package layout

import (
	"github.com/gogpu/gg"
	"github.com/npillmayer/paintprops/dom/style/css"
)

// SVGInfo holds the SVG specific state of SVG roots and SVG content.
type SVGInfo struct {
	// LocalTransform maps the local coordinates of SVG content to the
	// coordinates of its SVG parent. For SVG roots it maps the viewBox to
	// the border box.
	LocalTransform gg.Matrix
	// Masker is the mask type of an SVG mask resource applied to the
	// object, if any.
	Masker css.MaskT
	// Isolate is set if SVG content has to be composited in isolation.
	Isolate bool
}

func newSVGInfo() *SVGInfo {
	return &SVGInfo{LocalTransform: gg.Identity()}
}

// SVGInfo returns the SVG state of o, or nil if o is not SVG.
func (o *Object) SVGInfo() *SVGInfo { return o.svg }

// LocalToSVGParentTransform maps SVG content to its SVG parent.
func (o *Object) LocalToSVGParentTransform() gg.Matrix {
	if o.svg == nil || !o.IsSVGChild() {
		return gg.Identity()
	}
	return o.svg.LocalTransform
}

// LocalToBorderBoxTransform maps the content of an SVG root to its border
// box.
func (o *Object) LocalToBorderBoxTransform() gg.Matrix {
	if o.svg == nil || !o.IsSVGRoot() {
		return gg.Identity()
	}
	return o.svg.LocalTransform
}

// SetSVGLocalTransform sets the local transform of SVG content or an SVG
// root.
func (o *Object) SetSVGLocalTransform(m gg.Matrix) {
	assertThat(o.svg != nil, "%v is not SVG", o)
	o.svg.LocalTransform = m
	o.SetNeedsPaintPropertyUpdate()
}

// HasSVGMasker is true for SVG content with a mask resource.
func (o *Object) HasSVGMasker() bool {
	return o.IsSVGChild() && o.svg.Masker != css.MaskNone
}

// IsSVGIsolationRequired is true for SVG content which has to be painted as
// an isolated group.
func (o *Object) IsSVGIsolationRequired() bool {
	return o.IsSVGChild() && o.svg.Isolate
}
