/*
Package htmlbuild creates layout trees from HTML documents.

The layout trees are fixtures for the paint property tree builder. Documents
are styled with embedded and additional style sheets, and boxes are placed
with a deliberately simple block layout: block boxes stack vertically inside
the content box of their parent, lengths are pixels or percentages, and out
of flow boxes are placed at the (left, top) position of their container.
There is no text layout.

Supported beyond plain blocks are positioned boxes, overflow clips with
scroll offsets taken from data-scroll-left and data-scroll-top attributes,
multi-column containers with an explicit height, tables with header, body
and footer groups, and inline SVG.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package htmlbuild

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'paintprops.htmlbuild'.
func tracer() tracing.Trace {
	return tracing.Select("paintprops.htmlbuild")
}

// ErrStyle is returned for property values the builder cannot interpret.
var ErrStyle = errors.New("illegal style")

// ErrDocument is returned for documents without an <html> element.
var ErrDocument = errors.New("unsupported document")
