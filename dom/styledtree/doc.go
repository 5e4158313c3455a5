/*
Package styledtree is a straightforward implementation of a styled document tree.

Overview

A styled tree mirrors the element nodes of an HTML parse tree. Every styled
node links to its HTML node and carries a property map with the declarations
which matched the element. Package cssom creates styled trees from an HTML
parse tree and a set of style sheets; package css interprets the properties.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'paintprops.dom'..
func tracer() tracing.Trace {
	return tracing.Select("paintprops.dom")
}
