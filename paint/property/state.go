package property

import "fmt"

// State is a property tree state: the transform space, clip and effect under
// which content is painted.
type State struct {
	Transform *TransformNode
	Clip      *ClipNode
	Effect    *EffectNode
}

// RootState is the state with all three root nodes.
func RootState() State {
	return State{Transform: rootTransform, Clip: rootClip, Effect: rootEffect}
}

// IsZero is true for an unset state.
func (s State) IsZero() bool {
	return s.Transform == nil && s.Clip == nil && s.Effect == nil
}

func (s State) String() string {
	return fmt.Sprintf("state{t=%v c=%v e=%v}", s.Transform, s.Clip, s.Effect)
}
