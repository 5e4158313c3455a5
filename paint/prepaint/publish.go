package prepaint

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/layout"
	"github.com/npillmayer/paintprops/paint/property"
	"github.com/npillmayer/paintprops/tree"
)

// FragmentState is the frozen painting state of one fragment.
type FragmentState struct {
	PaintOffset    geom.LayoutPoint
	LocalBorderBox property.State // zero if the fragment has no state of its own
}

// Snapshot is an immutable copy of the property trees of a frame view, as of
// the end of a pass. It may be shared freely between goroutines.
type Snapshot struct {
	Generation uint64
	// Contents is the state the document is painted in.
	Contents property.State
	// Fragments holds the fragment states of every layout object, keyed by
	// object ID.
	Fragments map[uint64][]FragmentState
	// Names maps object IDs to the debug names of their objects.
	Names     map[uint64]string
	NodeCount int
}

// Fragment returns the state of fragment i of object id.
func (s *Snapshot) Fragment(id uint64, i int) (FragmentState, bool) {
	fs, ok := s.Fragments[id]
	if !ok || i < 0 || i >= len(fs) {
		return FragmentState{}, false
	}
	return fs[i], true
}

// Publisher hands snapshots from the goroutine running passes to readers.
type Publisher struct {
	current    atomic.Pointer[Snapshot]
	generation atomic.Uint64
}

// Publish freezes the property trees of fv and makes the copy the current
// snapshot. It must not run concurrently with a pass over fv.
func (p *Publisher) Publish(fv *layout.FrameView) (*Snapshot, error) {
	f := property.NewFreezer()
	snap := &Snapshot{
		Fragments: make(map[uint64][]FragmentState),
		Names:     make(map[uint64]string),
	}
	if s, ok := fv.TotalPropertyTreeStateForContents(); ok {
		snap.Contents = f.State(s)
	}
	err := tree.TopDown(fv.LayoutView().TreeNode(), func(n, _ *tree.Node[*layout.Object], _ int) error {
		o := n.Payload
		var states []FragmentState
		for fragment := o.FirstFragment(); fragment != nil; fragment = fragment.NextFragment() {
			fs := FragmentState{PaintOffset: fragment.PaintOffset}
			if s, ok := fragment.LocalBorderBoxProperties(); ok {
				fs.LocalBorderBox = f.State(s)
			}
			states = append(states, fs)
		}
		snap.Fragments[o.ID()] = states
		snap.Names[o.ID()] = o.String()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("publishing property trees: %w", err)
	}
	snap.NodeCount = f.NodeCount()
	snap.Generation = p.generation.Add(1)
	p.current.Store(snap)
	tracer().Debugf("published snapshot %d with %d nodes", snap.Generation, snap.NodeCount)
	return snap, nil
}

// Load returns the latest snapshot, or nil if nothing has been published.
func (p *Publisher) Load() *Snapshot {
	return p.current.Load()
}

// Verify checks the parent chains and local transform spaces of the nodes
// of every object below the layout view of fv. Subtrees are checked
// concurrently, so Verify must not run concurrently with a pass over fv.
func Verify(ctx context.Context, fv *layout.FrameView) error {
	if s, ok := fv.TotalPropertyTreeStateForContents(); ok {
		if err := property.VerifyState(s); err != nil {
			return fmt.Errorf("frame view contents: %w", err)
		}
	}
	_, err := tree.DescendantsWith(ctx, fv.LayoutView().TreeNode(),
		func(test, _ *tree.Node[*layout.Object]) (*tree.Node[*layout.Object], error) {
			return nil, verifyObject(test.Payload)
		})
	return err
}

func verifyObject(o *layout.Object) error {
	for fragment := o.FirstFragment(); fragment != nil; fragment = fragment.NextFragment() {
		if p := fragment.PaintProperties(); p != nil {
			if err := property.VerifyObject(p); err != nil {
				return fmt.Errorf("%v: %w", o, err)
			}
		}
		if s, ok := fragment.LocalBorderBoxProperties(); ok {
			if err := property.VerifyState(s); err != nil {
				return fmt.Errorf("%v local border box: %w", o, err)
			}
		}
	}
	return nil
}
