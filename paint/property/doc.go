/*
Package property implements paint property nodes.

Paint properties are organized as four separate forests: transforms, clips,
effects and scroll nodes. Every node refers to its parent node of the same kind,
and every parent chain ends at the root node of its kind (RootTransform,
RootClip, RootEffect, RootScroll). Clip and effect nodes additionally refer to
the transform node which defines their local coordinate space, and effect nodes
refer to an output clip.

A PropertyTreeState (State) is a triple of transform, clip and effect node and
describes the coordinate space, clipping and effect under which paint chunks
are drawn.

Nodes are created lazily by the property tree builder, are mutated in place on
subsequent updates, and may be frozen into an immutable copy for publication
to other goroutines (see Freeze).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package property

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'paintprops.property'.
func tracer() tracing.Trace {
	return tracing.Select("paintprops.property")
}

// Errors reported by the Verify* functions.
var (
	ErrDetachedNode     = errors.New("property node is not connected to the root of its tree")
	ErrCycle            = errors.New("property node is its own ancestor")
	ErrSpaceNotAncestor = errors.New("local transform space is not an ancestor of child space")
)

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if debugAssertions && !that {
		msg = fmt.Sprintf("paint.property: "+msg, msgargs...)
		panic(msg)
	}
}
