package property

import "slices"

// Freezer copies property nodes into an immutable forest. Nodes shared between
// the inputs stay shared in the copy. Root nodes are never copied.
type Freezer struct {
	transforms map[*TransformNode]*TransformNode
	clips      map[*ClipNode]*ClipNode
	effects    map[*EffectNode]*EffectNode
	scrolls    map[*ScrollNode]*ScrollNode
}

// NewFreezer creates a freezer with an empty copy forest.
func NewFreezer() *Freezer {
	return &Freezer{
		transforms: make(map[*TransformNode]*TransformNode),
		clips:      make(map[*ClipNode]*ClipNode),
		effects:    make(map[*EffectNode]*EffectNode),
		scrolls:    make(map[*ScrollNode]*ScrollNode),
	}
}

// Transform returns the frozen copy of t.
func (f *Freezer) Transform(t *TransformNode) *TransformNode {
	if t == nil || t.IsRoot() {
		return t
	}
	if c, ok := f.transforms[t]; ok {
		return c
	}
	c := &TransformNode{parent: f.Transform(t.parent), values: t.values, frozen: true}
	c.values.Scroll = f.Scroll(t.values.Scroll)
	f.transforms[t] = c
	return c
}

// Clip returns the frozen copy of c.
func (f *Freezer) Clip(c *ClipNode) *ClipNode {
	if c == nil || c.IsRoot() {
		return c
	}
	if cc, ok := f.clips[c]; ok {
		return cc
	}
	cc := &ClipNode{parent: f.Clip(c.parent), values: c.values, frozen: true}
	cc.values.LocalTransformSpace = f.Transform(c.values.LocalTransformSpace)
	f.clips[c] = cc
	return cc
}

// Effect returns the frozen copy of e.
func (f *Freezer) Effect(e *EffectNode) *EffectNode {
	if e == nil || e.IsRoot() {
		return e
	}
	if c, ok := f.effects[e]; ok {
		return c
	}
	c := &EffectNode{parent: f.Effect(e.parent), values: e.values, frozen: true}
	c.values.Filter = slices.Clone(e.values.Filter)
	c.values.LocalTransformSpace = f.Transform(e.values.LocalTransformSpace)
	c.values.OutputClip = f.Clip(e.values.OutputClip)
	f.effects[e] = c
	return c
}

// Scroll returns the frozen copy of s.
func (f *Freezer) Scroll(s *ScrollNode) *ScrollNode {
	if s == nil || s.IsRoot() {
		return s
	}
	if c, ok := f.scrolls[s]; ok {
		return c
	}
	c := &ScrollNode{parent: f.Scroll(s.parent), values: s.values, frozen: true}
	f.scrolls[s] = c
	return c
}

// State returns the frozen copy of a property tree state.
func (f *Freezer) State(s State) State {
	return State{
		Transform: f.Transform(s.Transform),
		Clip:      f.Clip(s.Clip),
		Effect:    f.Effect(s.Effect),
	}
}

// NodeCount is the number of nodes copied so far.
func (f *Freezer) NodeCount() int {
	return len(f.transforms) + len(f.clips) + len(f.effects) + len(f.scrolls)
}

// Freeze copies every node reachable from states into a new immutable forest
// and returns the states translated to the copy, in order.
func Freeze(states ...State) []State {
	f := NewFreezer()
	frozen := make([]State, len(states))
	for i, s := range states {
		frozen[i] = f.State(s)
	}
	tracer().Debugf("froze %d property nodes", f.NodeCount())
	return frozen
}

// IsFrozen is true if t may not be updated any more.
func (t *TransformNode) IsFrozen() bool { return t.frozen }

// IsFrozen is true if c may not be updated any more.
func (c *ClipNode) IsFrozen() bool { return c.frozen }

// IsFrozen is true if e may not be updated any more.
func (e *EffectNode) IsFrozen() bool { return e.frozen }

// IsFrozen is true if s may not be updated any more.
func (s *ScrollNode) IsFrozen() bool { return s.frozen }
