package layout

import (
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/paint/property"
)

// FragmentData is the painting state of one fragment of a layout object.
// Objects which are not fragmented have exactly one FragmentData, the first
// fragment, which is part of the object.
type FragmentData struct {
	properties *property.ObjectPaintProperties
	// PaintOffset is the offset of the fragment's border box from the
	// origin of the local transform space.
	PaintOffset geom.LayoutPoint
	// PaginationOffset translates flow thread coordinates of the fragment
	// to the visual coordinates of the multicol container.
	PaginationOffset geom.LayoutPoint
	// LogicalTopInFlowThread identifies the fragmentainer of this fragment.
	LogicalTopInFlowThread geom.LayoutUnit
	localBorderBox         *property.State
	next                   *FragmentData
}

// PaintProperties returns the property nodes of the fragment, or nil.
func (f *FragmentData) PaintProperties() *property.ObjectPaintProperties {
	return f.properties
}

// EnsurePaintProperties creates the property node holder if necessary.
func (f *FragmentData) EnsurePaintProperties() *property.ObjectPaintProperties {
	if f.properties == nil {
		f.properties = property.NewObjectPaintProperties()
	}
	return f.properties
}

// ClearPaintProperties drops all property nodes of the fragment.
func (f *FragmentData) ClearPaintProperties() {
	f.properties = nil
}

// NextFragment returns the following fragment of the same object, or nil.
func (f *FragmentData) NextFragment() *FragmentData {
	return f.next
}

// EnsureNextFragment appends a fragment if f is the last one.
func (f *FragmentData) EnsureNextFragment() *FragmentData {
	if f.next == nil {
		f.next = &FragmentData{}
	}
	return f.next
}

// ClearNextFragment cuts the chain after f.
func (f *FragmentData) ClearNextFragment() {
	f.next = nil
}

// LocalBorderBoxProperties returns the property tree state the border box
// of the fragment paints in.
func (f *FragmentData) LocalBorderBoxProperties() (property.State, bool) {
	if f.localBorderBox == nil {
		return property.State{}, false
	}
	return *f.localBorderBox, true
}

// SetLocalBorderBoxProperties records the border box state.
func (f *FragmentData) SetLocalBorderBoxProperties(s property.State) {
	if f.localBorderBox == nil {
		f.localBorderBox = &property.State{}
	}
	*f.localBorderBox = s
}

// ClearLocalBorderBoxProperties drops the border box state.
func (f *FragmentData) ClearLocalBorderBoxProperties() {
	f.localBorderBox = nil
}

// ContentsProperties returns the state contents of the fragment are painted
// in: after scrolling, SVG local transform and overflow clipping.
func (f *FragmentData) ContentsProperties() (property.State, bool) {
	s, ok := f.LocalBorderBoxProperties()
	if !ok {
		return s, false
	}
	p := f.properties
	if p == nil {
		return s, true
	}
	switch {
	case p.ScrollTranslation() != nil:
		s.Transform = p.ScrollTranslation()
	case p.SvgLocalToBorderBoxTransform() != nil:
		s.Transform = p.SvgLocalToBorderBoxTransform()
	case p.Perspective() != nil:
		s.Transform = p.Perspective()
	}
	switch {
	case p.OverflowClip() != nil:
		s.Clip = p.OverflowClip()
	case p.InnerBorderRadiusClip() != nil:
		s.Clip = p.InnerBorderRadiusClip()
	}
	return s, true
}

// --- Painting state of objects ----------------------------------------------

type paintingState struct {
	first                 FragmentData
	needsUpdate           bool
	descendantNeedsUpdate bool
	subtreeNeedsUpdate    bool
	clipChanged           bool
	subtreeForcedUpdate   bool
	previousSize          geom.LayoutSize
}

// FirstFragment returns the head of the fragment chain. It is never nil.
func (o *Object) FirstFragment() *FragmentData {
	return &o.painting.first
}

// FragmentCount returns the length of the fragment chain.
func (o *Object) FragmentCount() int {
	n := 0
	for f := o.FirstFragment(); f != nil; f = f.next {
		n++
	}
	return n
}

// NeedsPaintPropertyUpdate is true if the property nodes of o have to be
// recomputed.
func (o *Object) NeedsPaintPropertyUpdate() bool {
	return o.painting.needsUpdate
}

// DescendantNeedsPaintPropertyUpdate is true if some descendant needs an
// update.
func (o *Object) DescendantNeedsPaintPropertyUpdate() bool {
	return o.painting.descendantNeedsUpdate
}

// SubtreeNeedsPaintPropertyUpdate is true if every object of the subtree
// rooted at o has to be recomputed.
func (o *Object) SubtreeNeedsPaintPropertyUpdate() bool {
	return o.painting.subtreeNeedsUpdate
}

// SetNeedsPaintPropertyUpdate marks o for an update and tells all its
// ancestors to descend to o.
func (o *Object) SetNeedsPaintPropertyUpdate() {
	if o.painting.needsUpdate {
		return
	}
	o.painting.needsUpdate = true
	for p := o.ParentObject(); p != nil && !p.painting.descendantNeedsUpdate; p = p.ParentObject() {
		p.painting.descendantNeedsUpdate = true
	}
}

// SetSubtreeNeedsPaintPropertyUpdate forces an update of the subtree rooted
// at o.
func (o *Object) SetSubtreeNeedsPaintPropertyUpdate() {
	o.painting.subtreeNeedsUpdate = true
	o.SetNeedsPaintPropertyUpdate()
}

// ClearPaintPropertyUpdateFlags is called after o has been visited.
func (o *Object) ClearPaintPropertyUpdateFlags() {
	o.painting.needsUpdate = false
	o.painting.descendantNeedsUpdate = false
	o.painting.subtreeNeedsUpdate = false
}

// ClipChanged reports whether a clip node of o changed during the last pass.
func (o *Object) ClipChanged() bool { return o.painting.clipChanged }

// SubtreeForcedUpdate reports whether the last pass forced an update of the
// subtree below o.
func (o *Object) SubtreeForcedUpdate() bool { return o.painting.subtreeForcedUpdate }

// SetPassFlags records the outcome of a pass for o.
func (o *Object) SetPassFlags(clipChanged, forcedSubtree bool) {
	o.painting.clipChanged = clipChanged
	o.painting.subtreeForcedUpdate = forcedSubtree
}

// PreviousSize is the border box size as of the last pass.
func (o *Object) PreviousSize() geom.LayoutSize { return o.painting.previousSize }

// SetPreviousSize records the size at the end of a pass.
func (o *Object) SetPreviousSize(s geom.LayoutSize) { o.painting.previousSize = s }
