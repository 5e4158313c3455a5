/*
Package geom provides the geometry types used by layout and paint property trees.

Layout geometry is expressed in LayoutUnit, a fixed-point unit borrowed from
the typesetting core (dimen.DU). Fixed-point values keep sub-pixel paint
offsets exact, which matters when offsets are rounded into integer translation
nodes and the fractional remainder is carried along to descendants.

Paint property nodes are expressed in floating point: FloatRect,
FloatRoundedRect and the 4×4 Matrix. 2D affine transforms, as used by SVG,
interoperate with gg.Matrix.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package geom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'paintprops.geom'.
func tracer() tracing.Trace {
	return tracing.Select("paintprops.geom")
}
