package tree

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// buildTree creates a tree of given depth, where each inner node has
// `fanout` children. Payloads are path strings like "0.1.2".
func buildTree(depth, fanout int) *Node[string] {
	root := NewNode("0")
	var grow func(n *Node[string], d int)
	grow = func(n *Node[string], d int) {
		if d == depth {
			return
		}
		for i := 0; i < fanout; i++ {
			ch := NewNode(fmt.Sprintf("%s.%d", n.Payload, i))
			n.AddChild(ch)
			grow(ch, d+1)
		}
	}
	grow(root, 0)
	return root
}

func TestNodeBasics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.tree")
	defer teardown()
	//
	root := buildTree(2, 2)
	assert.Equal(t, 2, root.ChildCount())
	ch, ok := root.Child(1)
	require.True(t, ok)
	assert.Equal(t, "0.1", ch.Payload)
	leaf, _ := ch.Child(0)
	assert.Equal(t, 2, leaf.Depth())
	assert.Same(t, root, leaf.Root())
	assert.Equal(t, []string{"0.1.0", "0.1.1"}, ch.Payloads())
	ch.InsertChildAt(0, NewNode("x"))
	assert.Equal(t, []string{"x", "0.1.0", "0.1.1"}, ch.Payloads())
	leaf.Isolate()
	assert.Equal(t, []string{"x", "0.1.1"}, ch.Payloads())
	assert.Nil(t, leaf.Parent())
	assert.Equal(t, -1, ch.IndexOfChild(leaf))
}

func TestTopDownOrderAndSkip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.tree")
	defer teardown()
	//
	root := buildTree(2, 2)
	var visited []string
	err := TopDown(root, func(n, parent *Node[string], pos int) error {
		visited = append(visited, n.Payload)
		if n.Payload == "0.0" {
			return ErrSkipSubtree
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "0.0", "0.1", "0.1.0", "0.1.1"}, visited)
	boom := errors.New("boom")
	err = TopDown(root, func(n, parent *Node[string], pos int) error {
		if n.Payload == "0.1" {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, TopDown[string](nil, nil), ErrEmptyTree)
}

func TestAncestorWith(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.tree")
	defer teardown()
	//
	root := buildTree(3, 1)
	leaf, _ := root.Child(0)
	leaf, _ = leaf.Child(0)
	leaf, _ = leaf.Child(0)
	anc, err := AncestorWith(leaf, func(test, node *Node[string]) (*Node[string], error) {
		if test.Depth() == 1 {
			return test, nil
		}
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "0.0", anc.Payload)
}

func TestDescendantsWithConcurrent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.tree")
	defer teardown()
	//
	root := buildTree(4, 3)
	leaves, err := DescendantsWith(context.Background(), root, NodeIsLeaf[string]())
	require.NoError(t, err)
	assert.Len(t, leaves, 81)
	assert.Equal(t, "0.0.0.0.0", leaves[0].Payload, "results are in pre-order")
	assert.Equal(t, "0.2.2.2.2", leaves[80].Payload)
	all, err := DescendantsWith(context.Background(), root, Whatever[string]())
	require.NoError(t, err)
	assert.Len(t, all, 3+9+27+81)
}

func TestDescendantsWithError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.tree")
	defer teardown()
	//
	root := buildTree(3, 3)
	bad := errors.New("bad node")
	_, err := DescendantsWith(context.Background(), root, func(test, node *Node[string]) (*Node[string], error) {
		if test.Payload == "0.1.1" {
			return nil, bad
		}
		return test, nil
	})
	assert.ErrorIs(t, err, bad)
}

func TestCollector(t *testing.T) {
	var c Collector[int]
	c.Add(1)
	c.Add(2)
	assert.Equal(t, []int{1, 2}, c.Values())
}
