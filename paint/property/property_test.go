package property

import (
	"errors"
	"testing"

	"github.com/gogpu/gg/scene"
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translation(x, y float64) TransformValues {
	return TransformValues{Matrix: geom.TranslationMatrix(x, y), FlattensInheritedTransform: true}
}

func TestRoots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.property")
	defer teardown()
	//
	s := RootState()
	assert.True(t, s.Transform.IsRoot())
	assert.True(t, s.Clip.IsRoot())
	assert.True(t, s.Effect.IsRoot())
	assert.True(t, RootScroll().IsRoot())
	assert.Nil(t, RootTransform().Parent())
	assert.Equal(t, 1.0, RootEffect().Opacity())
	assert.Same(t, RootTransform(), RootClip().LocalTransformSpace())
	require.NoError(t, VerifyState(s))
}

func TestTransformUpdate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.property")
	defer teardown()
	//
	n := NewTransformNode(RootTransform(), translation(10, 0))
	if n.Update(RootTransform(), translation(10, 0)) {
		t.Errorf("expected update with identical values to report no change")
	}
	if !n.Update(RootTransform(), translation(10, 5)) {
		t.Errorf("expected update with different matrix to report a change")
	}
	child := NewTransformNode(n, translation(1, 1))
	assert.True(t, n.IsAncestorOrSelf(child))
	assert.False(t, child.IsAncestorOrSelf(n))
	assert.Equal(t, 2, child.Depth())
}

func TestUpdateFrozenPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.property")
	defer teardown()
	//
	if !debugAssertions {
		t.Skip("assertions are compiled out")
	}
	assert.Panics(t, func() {
		RootTransform().Update(RootTransform(), translation(1, 1))
	})
}

func TestObjectPaintPropertiesSlots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.property")
	defer teardown()
	//
	props := NewObjectPaintProperties()
	r := props.UpdateTransform(RootTransform(), translation(1, 2))
	assert.Equal(t, NewNodeCreated, r)
	assert.True(t, r.NewNodeCreated())
	r = props.UpdateTransform(RootTransform(), translation(1, 2))
	assert.Equal(t, Unchanged, r)
	r = props.UpdateTransform(RootTransform(), translation(2, 2))
	assert.Equal(t, ValueChanged, r)
	clip := ClipValues{
		LocalTransformSpace: props.Transform(),
		ClipRect:            geom.RoundedRect(geom.FloatRect{Width: 100, Height: 100}),
	}
	props.UpdateOverflowClip(RootClip(), clip)
	props.UpdateScroll(RootScroll(), ScrollValues{UserScrollableVertical: true})
	names := []string{}
	for _, s := range props.Slots() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Transform", "OverflowClip", "Scroll"}, names)
	require.NoError(t, VerifyObject(props))
	assert.True(t, props.ClearOverflowClip())
	assert.False(t, props.ClearOverflowClip(), "second clear finds no node")
	assert.Equal(t, 2, props.NodeCount())
}

func TestEffectValuesEqual(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.property")
	defer teardown()
	//
	v := EffectValues{
		LocalTransformSpace: RootTransform(),
		OutputClip:          RootClip(),
		Opacity:             0.5,
		BlendMode:           scene.BlendMultiply,
		Filter:              FilterOperations{{Type: scene.FilterBlur, Amount: 3}},
	}
	e := NewEffectNode(RootEffect(), v)
	w := v
	w.Filter = FilterOperations{{Type: scene.FilterBlur, Amount: 3}}
	assert.False(t, e.Update(RootEffect(), w), "equal filter lists in different slices")
	w.Filter[0].Amount = 4
	assert.True(t, e.Update(RootEffect(), w))
	assert.True(t, e.Filter().ExpandsOutput())
	t.Logf("effect = %v", e)
}

func TestVerifyDetectsBrokenChains(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.property")
	defer teardown()
	//
	detached := &TransformNode{values: translation(0, 0)}
	child := NewTransformNode(detached, translation(1, 0))
	if err := VerifyTransform(child); !errors.Is(err, ErrDetachedNode) {
		t.Errorf("expected ErrDetachedNode, got %v", err)
	}
	a := NewTransformNode(RootTransform(), translation(1, 0))
	b := NewTransformNode(a, translation(2, 0))
	a.parent = b // bypass assertions
	if err := VerifyTransform(b); !errors.Is(err, ErrCycle) {
		t.Errorf("expected ErrCycle, got %v", err)
	}
	// a clip whose parent lives in a descendant transform space
	space := NewTransformNode(RootTransform(), translation(5, 5))
	inner := NewClipNode(RootClip(), ClipValues{LocalTransformSpace: space})
	outer := NewClipNode(inner, ClipValues{LocalTransformSpace: RootTransform()})
	if err := VerifyClip(outer); !errors.Is(err, ErrSpaceNotAncestor) {
		t.Errorf("expected ErrSpaceNotAncestor, got %v", err)
	}
}

func TestFreezeSharesNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.property")
	defer teardown()
	//
	tr := NewTransformNode(RootTransform(), translation(3, 3))
	clip := NewClipNode(RootClip(), ClipValues{LocalTransformSpace: tr})
	eff := NewEffectNode(RootEffect(), EffectValues{
		LocalTransformSpace: tr, OutputClip: clip, Opacity: 0.3,
	})
	s1 := State{Transform: tr, Clip: clip, Effect: eff}
	s2 := State{Transform: NewTransformNode(tr, translation(1, 1)), Clip: clip, Effect: RootEffect()}
	frozen := Freeze(s1, s2)
	require.Len(t, frozen, 2)
	f1, f2 := frozen[0], frozen[1]
	assert.NotSame(t, tr, f1.Transform)
	assert.Same(t, f1.Transform, f2.Transform.Parent(), "shared parents stay shared")
	assert.Same(t, f1.Clip, f2.Clip)
	assert.Same(t, f1.Transform, f1.Clip.LocalTransformSpace())
	assert.Same(t, f1.Clip, f1.Effect.OutputClip())
	assert.Same(t, RootEffect(), f2.Effect, "roots are not copied")
	assert.True(t, f1.Transform.IsFrozen())
	assert.Equal(t, tr.Values(), f1.Transform.Values())
	require.NoError(t, VerifyState(f1))
	require.NoError(t, VerifyState(f2))
	// mutating the live forest does not affect the snapshot
	tr.Update(RootTransform(), translation(9, 9))
	assert.Equal(t, geom.TranslationMatrix(3, 3), f1.Transform.Matrix())
}

func TestReasonsString(t *testing.T) {
	r := Compositing3DTransform | CompositingWillChangeOpacity
	assert.Equal(t, "3d-transform|will-change-opacity", r.String())
	assert.Equal(t, "none", CompositingNone.String())
	assert.True(t, r.Has(CompositingTransformMask))
	m := HasBackgroundAttachmentFixed | ThreadedScrollingDisabled
	assert.Equal(t, "background-attachment-fixed|threaded-scrolling-disabled", m.String())
}
