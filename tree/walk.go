package tree

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrEmptyTree is returned if a traversal is started at a nil node.
var ErrEmptyTree = errors.New("cannot walk empty tree")

// ErrSkipSubtree may be returned by an Action to prevent the traversal from
// descending into the children of the current node. It is not reported as an
// error by TopDown.
var ErrSkipSubtree = errors.New("skip subtree")

// Predicate is a function type to match against nodes of a tree.
// test is the node under test, node is the start node of the search.
// A predicate returns test (or a substitute) if it matches and nil otherwise.
type Predicate[T comparable] func(test *Node[T], node *Node[T]) (match *Node[T], err error)

// Whatever is a predicate to match anything (see type Predicate).
// It is useful to match the first node in a given direction.
func Whatever[T comparable]() Predicate[T] {
	return func(test *Node[T], node *Node[T]) (*Node[T], error) {
		return test, nil
	}
}

// NodeIsLeaf is a predicate to match leafs of a tree.
func NodeIsLeaf[T comparable]() Predicate[T] {
	return func(test *Node[T], node *Node[T]) (match *Node[T], err error) {
		if test.ChildCount() == 0 {
			return test, nil
		}
		return nil, nil
	}
}

// Action is a function type to operate on tree nodes during a traversal.
type Action[T comparable] func(n *Node[T], parent *Node[T], position int) error

// TopDown traverses a tree in pre-order, starting at (and including) node.
// Parents are always processed before their children.
//
// If action returns ErrSkipSubtree, the children of the node are not visited.
// Any other error aborts the traversal and is returned.
func TopDown[T comparable](node *Node[T], action Action[T]) error {
	if node == nil {
		return ErrEmptyTree
	}
	return topDown(node, node.Parent(), 0, action)
}

func topDown[T comparable](node, parent *Node[T], position int, action Action[T]) error {
	if err := action(node, parent, position); err != nil {
		if errors.Is(err, ErrSkipSubtree) {
			return nil
		}
		return err
	}
	for i, ch := range node.Children(false) {
		if ch == nil {
			continue
		}
		if err := topDown(ch, node, i, action); err != nil {
			return err
		}
	}
	return nil
}

// AncestorWith finds the nearest ancestor matching the given predicate.
// The search does not include the start node. If no ancestor matches, nil is
// returned.
func AncestorWith[T comparable](node *Node[T], predicate Predicate[T]) (*Node[T], error) {
	if node == nil {
		return nil, ErrEmptyTree
	}
	for anc := node.Parent(); anc != nil; anc = anc.Parent() {
		match, err := predicate(anc, node)
		if err != nil {
			return nil, err
		}
		if match != nil {
			return match, nil
		}
	}
	return nil, nil
}

// DescendantsWith finds all descendants matching a predicate. The search does
// not include the start node. Subtrees are searched concurrently; the result
// is ordered in pre-order, as a sequential search would return it.
//
// The first error returned by predicate cancels the search and is returned.
func DescendantsWith[T comparable](ctx context.Context, node *Node[T], predicate Predicate[T]) ([]*Node[T], error) {
	if node == nil {
		return nil, ErrEmptyTree
	}
	children := node.Children(true)
	results := make([][]*Node[T], len(children))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, ch := range children {
		g.Go(func() error {
			var collected []*Node[T]
			err := topDown(ch, node, i, func(n, _ *Node[T], _ int) error {
				if err := ctx.Err(); err != nil {
					return err
				}
				match, err := predicate(n, node)
				if err != nil {
					return err
				}
				if match != nil {
					collected = append(collected, match)
				}
				return nil
			})
			results[i] = collected
			return err
		})
	}
	if err := g.Wait(); err != nil {
		tracer().Debugf("descendant search aborted: %v", err)
		return nil, err
	}
	var selection []*Node[T]
	for _, r := range results {
		selection = append(selection, r...)
	}
	return selection, nil
}

// Collector is a concurrency-safe accumulator for the results of actions
// which run in parallel.
type Collector[V any] struct {
	mu     sync.Mutex
	values []V
}

// Add appends a value.
func (c *Collector[V]) Add(v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, v)
}

// Values returns the collected values.
func (c *Collector[V]) Values() []V {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]V(nil), c.values...)
}
