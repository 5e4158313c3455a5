/*
Package prepaint builds and incrementally updates paint property trees.

The builder visits the layout tree in pre-order. For every layout object, and
for every fragment of an object which is broken across columns, it creates,
updates or removes the transform, clip, effect and scroll nodes the object
needs (see property.ObjectPaintProperties) and records the property tree state
the object's border box paints in.

Descendants inherit a Context. For every fragment it holds a FragmentContext
with three containing block contexts: one for in-flow content, one for
absolutely positioned and one for fixed positioned descendants. Objects
replace the parts of the context their children see, e.g. a box with an
overflow clip installs its clip node as the current clip.

Updates are incremental. Objects are only recomputed if they are marked as
needing an update, or if an ancestor forced an update of its subtree because
it created or removed a node, or because its paint offset changed. A pass
(Walker.Update) returns a PassResult with counters of visited objects and of
created and removed nodes.

After a pass, the forest may be frozen and published to other goroutines
(see Publisher).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package prepaint

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'paintprops.prepaint'.
func tracer() tracing.Trace {
	return tracing.Select("paintprops.prepaint")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if debugAssertions && !that {
		msg = fmt.Sprintf("prepaint: "+msg, msgargs...)
		panic(msg)
	}
}
