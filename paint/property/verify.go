package property

import "fmt"

// parented is implemented by the node kinds.
type parented[N any] interface {
	comparable
	Parent() N
	IsRoot() bool
}

// verifyChain checks that the parent chain of n ends at a root. Cycles are
// detected with two cursors moving at different speed.
func verifyChain[N parented[N]](n N) error {
	var zero N
	slow, fast := n, n
	for {
		for i := 0; i < 2; i++ {
			if fast == zero {
				return fmt.Errorf("%v: %w", n, ErrDetachedNode)
			}
			if fast.IsRoot() {
				return nil
			}
			fast = fast.Parent()
		}
		slow = slow.Parent()
		if slow == fast {
			return fmt.Errorf("%v: %w", n, ErrCycle)
		}
	}
}

// VerifyTransform checks that t is connected to the root transform.
func VerifyTransform(t *TransformNode) error {
	if t == nil {
		return ErrDetachedNode
	}
	return verifyChain(t)
}

// VerifyScroll checks that s is connected to the root scroll node.
func VerifyScroll(s *ScrollNode) error {
	if s == nil {
		return ErrDetachedNode
	}
	return verifyChain(s)
}

// VerifyClip checks that c is connected to the root clip, that every local
// transform space along the chain is valid, and that the space of a parent
// clip is an ancestor-or-self of the space of its child.
func VerifyClip(c *ClipNode) error {
	if c == nil {
		return ErrDetachedNode
	}
	if err := verifyChain(c); err != nil {
		return err
	}
	for n := c; !n.IsRoot(); n = n.parent {
		space := n.LocalTransformSpace()
		if err := VerifyTransform(space); err != nil {
			return fmt.Errorf("local space of %v: %w", n, err)
		}
		if !n.parent.LocalTransformSpace().IsAncestorOrSelf(space) {
			return fmt.Errorf("%v: %w", n, ErrSpaceNotAncestor)
		}
	}
	return nil
}

// VerifyEffect checks that e is connected to the root effect and that the
// local transform spaces and output clips along the chain are valid.
func VerifyEffect(e *EffectNode) error {
	if e == nil {
		return ErrDetachedNode
	}
	if err := verifyChain(e); err != nil {
		return err
	}
	for n := e; !n.IsRoot(); n = n.parent {
		space := n.LocalTransformSpace()
		// Effects of fixed position content may live outside of the space of
		// their parent effect, e.g. above a scroll translation.
		if err := VerifyTransform(space); err != nil {
			return fmt.Errorf("local space of %v: %w", n, err)
		}
		if clip := n.OutputClip(); clip != nil {
			if err := VerifyClip(clip); err != nil {
				return fmt.Errorf("output clip of %v: %w", n, err)
			}
		}
	}
	return nil
}

// VerifyState verifies all three nodes of a state.
func VerifyState(s State) error {
	if err := VerifyTransform(s.Transform); err != nil {
		return err
	}
	if err := VerifyClip(s.Clip); err != nil {
		return err
	}
	return VerifyEffect(s.Effect)
}

// VerifyObject verifies every occupied slot of p.
func VerifyObject(p *ObjectPaintProperties) error {
	for _, slot := range p.Slots() {
		var err error
		switch {
		case slot.Transform != nil:
			err = VerifyTransform(slot.Transform)
			if err == nil && slot.Transform.ScrollNode() != nil {
				err = VerifyScroll(slot.Transform.ScrollNode())
			}
		case slot.Clip != nil:
			err = VerifyClip(slot.Clip)
		case slot.Effect != nil:
			err = VerifyEffect(slot.Effect)
		case slot.Scroll != nil:
			err = VerifyScroll(slot.Scroll)
		}
		if err != nil {
			return fmt.Errorf("slot %s: %w", slot.Name, err)
		}
	}
	return nil
}
