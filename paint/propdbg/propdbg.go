/*
Package propdbg implements helpers to debug paint property trees.

Property nodes in use by a frame view are gathered with Collect. The four
forests may then be printed as text trees (TransformTree, ClipTree,
EffectTree, ScrollTree) or drawn as a GraphViz diagram (ToGraphViz).

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package propdbg

import (
	"fmt"

	"github.com/npillmayer/paintprops/layout"
	"github.com/npillmayer/paintprops/paint/property"
	"github.com/npillmayer/paintprops/tree"
	"github.com/npillmayer/schuko/tracing"
	tp "github.com/xlab/treeprint"
)

// tracer traces with key 'paintprops.propdbg'.
func tracer() tracing.Trace {
	return tracing.Select("paintprops.propdbg")
}

// Forest holds the property nodes referenced by a frame view and its layout
// objects, in the order they have been found.
type Forest struct {
	Transforms []*property.TransformNode
	Clips      []*property.ClipNode
	Effects    []*property.EffectNode
	Scrolls    []*property.ScrollNode
	labels     map[any]string
}

// NewForest creates an empty forest.
func NewForest() *Forest {
	return &Forest{labels: make(map[any]string)}
}

// Label returns the owner of node n, e.g. "block(main).OverflowClip", or ""
// if n has not been added by name.
func (f *Forest) Label(n any) string {
	return f.labels[n]
}

func (f *Forest) label(n any, owner, slot string) {
	if _, ok := f.labels[n]; !ok {
		f.labels[n] = owner + "." + slot
	}
}

// AddTransform adds a transform node owned by owner.
func (f *Forest) AddTransform(n *property.TransformNode, owner, slot string) {
	if n == nil {
		return
	}
	f.Transforms = append(f.Transforms, n)
	f.label(n, owner, slot)
	if s := n.ScrollNode(); s != nil {
		f.AddScroll(s, owner, slot+".Scroll")
	}
}

// AddClip adds a clip node owned by owner.
func (f *Forest) AddClip(n *property.ClipNode, owner, slot string) {
	if n == nil {
		return
	}
	f.Clips = append(f.Clips, n)
	f.label(n, owner, slot)
}

// AddEffect adds an effect node owned by owner.
func (f *Forest) AddEffect(n *property.EffectNode, owner, slot string) {
	if n == nil {
		return
	}
	f.Effects = append(f.Effects, n)
	f.label(n, owner, slot)
}

// AddScroll adds a scroll node owned by owner.
func (f *Forest) AddScroll(n *property.ScrollNode, owner, slot string) {
	if n == nil {
		return
	}
	f.Scrolls = append(f.Scrolls, n)
	f.label(n, owner, slot)
}

// AddObject adds the occupied slots of p.
func (f *Forest) AddObject(p *property.ObjectPaintProperties, owner string) {
	for _, slot := range p.Slots() {
		f.AddTransform(slot.Transform, owner, slot.Name)
		f.AddClip(slot.Clip, owner, slot.Name)
		f.AddEffect(slot.Effect, owner, slot.Name)
		f.AddScroll(slot.Scroll, owner, slot.Name)
	}
}

// AddState adds the nodes of a property tree state. Nodes already added keep
// their label.
func (f *Forest) AddState(s property.State, owner string) {
	f.AddTransform(s.Transform, owner, "State")
	f.AddClip(s.Clip, owner, "State")
	f.AddEffect(s.Effect, owner, "State")
}

// Collect gathers the nodes of the frame view fv and of every fragment of
// every layout object below its layout view.
func Collect(fv *layout.FrameView) (*Forest, error) {
	f := NewForest()
	fp := fv.Properties()
	f.AddTransform(fp.PreTranslation, "frame", "PreTranslation")
	f.AddClip(fp.ContentClip, "frame", "ContentClip")
	f.AddScroll(fp.Scroll, "frame", "Scroll")
	f.AddTransform(fp.ScrollTranslation, "frame", "ScrollTranslation")
	err := tree.TopDown(fv.LayoutView().TreeNode(), func(n, _ *tree.Node[*layout.Object], _ int) error {
		o := n.Payload
		i := 0
		for fragment := o.FirstFragment(); fragment != nil; fragment = fragment.NextFragment() {
			owner := o.String()
			if i > 0 {
				owner = fmt.Sprintf("%s[%d]", owner, i)
			}
			f.AddObject(fragment.PaintProperties(), owner)
			if s, ok := fragment.LocalBorderBoxProperties(); ok {
				f.AddState(s, owner)
			}
			i++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting property nodes: %w", err)
	}
	tracer().Debugf("collected %d transforms, %d clips, %d effects, %d scroll nodes",
		len(f.Transforms), len(f.Clips), len(f.Effects), len(f.Scrolls))
	return f, nil
}

// --- Forests ---------------------------------------------------------------

type propertyNode[N any] interface {
	comparable
	Parent() N
	String() string
}

// forest is the part of a property forest reachable from a set of nodes by
// following parent links.
type forest[N propertyNode[N]] struct {
	roots    []N
	children map[N][]N
}

func forestOf[N propertyNode[N]](nodes []N) forest[N] {
	var zero N
	fo := forest[N]{children: make(map[N][]N)}
	seen := make(map[N]bool)
	for _, n := range nodes {
		// Walk up until we meet a node already placed. A chain is placed
		// top-most node first, so siblings keep the order they were found in.
		var chain []N
		for c := n; c != zero && !seen[c]; c = c.Parent() {
			seen[c] = true
			chain = append(chain, c)
		}
		for i := len(chain) - 1; i >= 0; i-- {
			c := chain[i]
			if p := c.Parent(); p == zero {
				fo.roots = append(fo.roots, c)
			} else {
				fo.children[p] = append(fo.children[p], c)
			}
		}
	}
	return fo
}

// preorder calls visit for every node of the forest, parents first.
func (fo forest[N]) preorder(visit func(n N)) {
	var rec func(n N)
	rec = func(n N) {
		visit(n)
		for _, ch := range fo.children[n] {
			rec(ch)
		}
	}
	for _, r := range fo.roots {
		rec(r)
	}
}

func (fo forest[N]) print(labelOf func(any) string) tp.Tree {
	t := tp.New()
	var add func(branch tp.Tree, n N)
	add = func(branch tp.Tree, n N) {
		text := n.String()
		if l := labelOf(n); l != "" {
			text = l + ": " + text
		}
		if len(fo.children[n]) == 0 {
			branch.AddNode(text)
			return
		}
		b := branch.AddBranch(text)
		for _, ch := range fo.children[n] {
			add(b, ch)
		}
	}
	for _, r := range fo.roots {
		add(t, r)
	}
	return t
}

func noLabels(any) string { return "" }

// TransformTree renders the transform forest reachable from nodes.
func TransformTree(nodes ...*property.TransformNode) tp.Tree {
	return forestOf(nodes).print(noLabels)
}

// ClipTree renders the clip forest reachable from nodes.
func ClipTree(nodes ...*property.ClipNode) tp.Tree {
	return forestOf(nodes).print(noLabels)
}

// EffectTree renders the effect forest reachable from nodes.
func EffectTree(nodes ...*property.EffectNode) tp.Tree {
	return forestOf(nodes).print(noLabels)
}

// ScrollTree renders the scroll forest reachable from nodes.
func ScrollTree(nodes ...*property.ScrollNode) tp.Tree {
	return forestOf(nodes).print(noLabels)
}

// String prints all four forests of f, nodes labeled by their owners.
func (f *Forest) String() string {
	return "transforms\n" + forestOf(f.Transforms).print(f.Label).String() +
		"clips\n" + forestOf(f.Clips).print(f.Label).String() +
		"effects\n" + forestOf(f.Effects).print(f.Label).String() +
		"scroll\n" + forestOf(f.Scrolls).print(f.Label).String()
}
