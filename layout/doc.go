/*
Package layout models the layout tree as far as paint property building needs
it.

Layout objects carry computed style, explicit geometry and the painting-side
state which the property tree builder maintains: a chain of FragmentData
records and paint property update flags. Geometry is set by a layout producer
(see package htmlbuild for a fixture producer); this package does not perform
layout.

Objects are organized as a tree of tree.Node[*Object]. Besides the DOM-like
parent relation, layout knows about containers (the object an object's
location is relative to), containing blocks, paint layers, scrollable areas,
multi-column flow threads and tables.

Coordinates

Every object's Location is relative to the border box origin of its
Container(). Table cells are an exception: their location is relative to the
enclosing table section, i.e. to the grand-parent. Mapping offsets between
objects ignores transforms, which is what paint offset computation requires.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'paintprops.layout'.
func tracer() tracing.Trace {
	return tracing.Select("paintprops.layout")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("layout: "+msg, msgargs...)
		panic(msg)
	}
}
