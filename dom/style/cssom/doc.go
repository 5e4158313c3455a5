/*
Package cssom provides functionality for CSS styling.

Overview

CSSOM is the "CSS Object Model", similar to the DOM for HTML. This package
applies style sheets to an HTML parse tree and produces a styled tree
(package styledtree), which is where the layout tree of the fixture builder
gets its properties from.

CSS handling is de-coupled by introducing the interfaces StyleSheet and Rule.
Concrete implementations may be found in sub-packages (see douceuradapter).
Selectors are compiled and matched with
https://godoc.org/github.com/andybalholm/cascadia, and rules are applied in
the order of their specificity, followed by inline styles and declarations
marked as important.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'paintprops.dom'.
func tracer() tracing.Trace {
	return tracing.Select("paintprops.dom")
}
