/*
Package tree implements a generic tree of mutable nodes.

Nodes carry a payload of type parameter T and maintain a concurrency-safe slice
of children. Layout objects embed a Node and set the payload to themselves,
which makes tree navigation return the embedding type.

Trees may be traversed synchronously in pre-order (TopDown, AncestorWith), or
searched concurrently (DescendantsWith). Concurrent searches spawn one
goroutine per child subtree of the start node and require that the tree is
not mutated while the search is running.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'paintprops.tree'.
func tracer() tracing.Trace {
	return tracing.Select("paintprops.tree")
}
