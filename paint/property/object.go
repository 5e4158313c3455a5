package property

// UpdateResult is the outcome of updating a property slot of a layout object.
type UpdateResult uint8

// Outcomes of slot updates.
const (
	Unchanged UpdateResult = iota
	ValueChanged
	NewNodeCreated
)

// NewNodeCreated is true if the update had to create a node. This is a shape
// change of the property tree.
func (r UpdateResult) NewNodeCreated() bool {
	return r == NewNodeCreated
}

// Changed is true for every result other than Unchanged.
func (r UpdateResult) Changed() bool {
	return r != Unchanged
}

func (r UpdateResult) String() string {
	switch r {
	case ValueChanged:
		return "changed"
	case NewNodeCreated:
		return "created"
	}
	return "unchanged"
}

// ObjectPaintProperties holds the property nodes a layout object (or one of
// its fragments) has created. All slots are optional.
//
// Nodes created for the object itself:
//
//	PaintOffsetTranslation  integer part of the paint offset
//	Transform               CSS transform
//	Effect                  opacity, blend mode, isolation, masks
//	Filter                  CSS filter
//	Mask, MaskClip          CSS mask
//	FragmentClip            clip of the fragmentainer
//	CssClip                 CSS clip property
//	CssClipFixedPosition    CSS clip for fixed position descendants
//
// Nodes created for the object's children:
//
//	InnerBorderRadiusClip   rounded inner border edge
//	OverflowClip            overflow clip of the content box
//	Perspective             CSS perspective
//	SvgLocalToBorderBoxTransform
//	Scroll, ScrollTranslation
type ObjectPaintProperties struct {
	paintOffsetTranslation       *TransformNode
	transform                    *TransformNode
	effect                       *EffectNode
	filter                       *EffectNode
	mask                         *EffectNode
	maskClip                     *ClipNode
	fragmentClip                 *ClipNode
	cssClip                      *ClipNode
	cssClipFixedPosition         *ClipNode
	innerBorderRadiusClip        *ClipNode
	overflowClip                 *ClipNode
	perspective                  *TransformNode
	svgLocalToBorderBoxTransform *TransformNode
	scroll                       *ScrollNode
	scrollTranslation            *TransformNode
}

// NewObjectPaintProperties creates an empty set of property slots.
func NewObjectPaintProperties() *ObjectPaintProperties {
	return &ObjectPaintProperties{}
}

// --- Generic slot helpers --------------------------------------------------

func updateSlot[N any, P any, V any](slot **N, parent P, values V,
	create func(P, V) *N, update func(*N, P, V) bool) UpdateResult {
	//
	if *slot == nil {
		*slot = create(parent, values)
		return NewNodeCreated
	}
	if update(*slot, parent, values) {
		return ValueChanged
	}
	return Unchanged
}

func clearSlot[N any](slot **N) bool {
	if *slot == nil {
		return false
	}
	*slot = nil
	return true
}

func updateTransform(slot **TransformNode, parent *TransformNode, v TransformValues) UpdateResult {
	return updateSlot(slot, parent, v, NewTransformNode, (*TransformNode).Update)
}

func updateClip(slot **ClipNode, parent *ClipNode, v ClipValues) UpdateResult {
	return updateSlot(slot, parent, v, NewClipNode, (*ClipNode).Update)
}

func updateEffect(slot **EffectNode, parent *EffectNode, v EffectValues) UpdateResult {
	return updateSlot(slot, parent, v, NewEffectNode, (*EffectNode).Update)
}

// --- Getters ---------------------------------------------------------------

func (p *ObjectPaintProperties) PaintOffsetTranslation() *TransformNode {
	return p.paintOffsetTranslation
}
func (p *ObjectPaintProperties) Transform() *TransformNode        { return p.transform }
func (p *ObjectPaintProperties) Effect() *EffectNode              { return p.effect }
func (p *ObjectPaintProperties) Filter() *EffectNode              { return p.filter }
func (p *ObjectPaintProperties) Mask() *EffectNode                { return p.mask }
func (p *ObjectPaintProperties) MaskClip() *ClipNode              { return p.maskClip }
func (p *ObjectPaintProperties) FragmentClip() *ClipNode          { return p.fragmentClip }
func (p *ObjectPaintProperties) CssClip() *ClipNode               { return p.cssClip }
func (p *ObjectPaintProperties) CssClipFixedPosition() *ClipNode  { return p.cssClipFixedPosition }
func (p *ObjectPaintProperties) InnerBorderRadiusClip() *ClipNode { return p.innerBorderRadiusClip }
func (p *ObjectPaintProperties) OverflowClip() *ClipNode          { return p.overflowClip }
func (p *ObjectPaintProperties) Perspective() *TransformNode      { return p.perspective }
func (p *ObjectPaintProperties) SvgLocalToBorderBoxTransform() *TransformNode {
	return p.svgLocalToBorderBoxTransform
}
func (p *ObjectPaintProperties) Scroll() *ScrollNode { return p.scroll }
func (p *ObjectPaintProperties) ScrollTranslation() *TransformNode {
	return p.scrollTranslation
}

// --- Updates ---------------------------------------------------------------

func (p *ObjectPaintProperties) UpdatePaintOffsetTranslation(parent *TransformNode, v TransformValues) UpdateResult {
	return updateTransform(&p.paintOffsetTranslation, parent, v)
}
func (p *ObjectPaintProperties) UpdateTransform(parent *TransformNode, v TransformValues) UpdateResult {
	return updateTransform(&p.transform, parent, v)
}
func (p *ObjectPaintProperties) UpdatePerspective(parent *TransformNode, v TransformValues) UpdateResult {
	return updateTransform(&p.perspective, parent, v)
}
func (p *ObjectPaintProperties) UpdateSvgLocalToBorderBoxTransform(parent *TransformNode, v TransformValues) UpdateResult {
	return updateTransform(&p.svgLocalToBorderBoxTransform, parent, v)
}
func (p *ObjectPaintProperties) UpdateScrollTranslation(parent *TransformNode, v TransformValues) UpdateResult {
	return updateTransform(&p.scrollTranslation, parent, v)
}
func (p *ObjectPaintProperties) UpdateEffect(parent *EffectNode, v EffectValues) UpdateResult {
	return updateEffect(&p.effect, parent, v)
}
func (p *ObjectPaintProperties) UpdateFilter(parent *EffectNode, v EffectValues) UpdateResult {
	return updateEffect(&p.filter, parent, v)
}
func (p *ObjectPaintProperties) UpdateMask(parent *EffectNode, v EffectValues) UpdateResult {
	return updateEffect(&p.mask, parent, v)
}
func (p *ObjectPaintProperties) UpdateMaskClip(parent *ClipNode, v ClipValues) UpdateResult {
	return updateClip(&p.maskClip, parent, v)
}
func (p *ObjectPaintProperties) UpdateFragmentClip(parent *ClipNode, v ClipValues) UpdateResult {
	return updateClip(&p.fragmentClip, parent, v)
}
func (p *ObjectPaintProperties) UpdateCssClip(parent *ClipNode, v ClipValues) UpdateResult {
	return updateClip(&p.cssClip, parent, v)
}
func (p *ObjectPaintProperties) UpdateCssClipFixedPosition(parent *ClipNode, v ClipValues) UpdateResult {
	return updateClip(&p.cssClipFixedPosition, parent, v)
}
func (p *ObjectPaintProperties) UpdateInnerBorderRadiusClip(parent *ClipNode, v ClipValues) UpdateResult {
	return updateClip(&p.innerBorderRadiusClip, parent, v)
}
func (p *ObjectPaintProperties) UpdateOverflowClip(parent *ClipNode, v ClipValues) UpdateResult {
	return updateClip(&p.overflowClip, parent, v)
}
func (p *ObjectPaintProperties) UpdateScroll(parent *ScrollNode, v ScrollValues) UpdateResult {
	return updateSlot(&p.scroll, parent, v, NewScrollNode, (*ScrollNode).Update)
}

// --- Clearing --------------------------------------------------------------

func (p *ObjectPaintProperties) ClearPaintOffsetTranslation() bool {
	return clearSlot(&p.paintOffsetTranslation)
}
func (p *ObjectPaintProperties) ClearTransform() bool    { return clearSlot(&p.transform) }
func (p *ObjectPaintProperties) ClearEffect() bool       { return clearSlot(&p.effect) }
func (p *ObjectPaintProperties) ClearFilter() bool       { return clearSlot(&p.filter) }
func (p *ObjectPaintProperties) ClearMask() bool         { return clearSlot(&p.mask) }
func (p *ObjectPaintProperties) ClearMaskClip() bool     { return clearSlot(&p.maskClip) }
func (p *ObjectPaintProperties) ClearFragmentClip() bool { return clearSlot(&p.fragmentClip) }
func (p *ObjectPaintProperties) ClearCssClip() bool      { return clearSlot(&p.cssClip) }
func (p *ObjectPaintProperties) ClearCssClipFixedPosition() bool {
	return clearSlot(&p.cssClipFixedPosition)
}
func (p *ObjectPaintProperties) ClearInnerBorderRadiusClip() bool {
	return clearSlot(&p.innerBorderRadiusClip)
}
func (p *ObjectPaintProperties) ClearOverflowClip() bool { return clearSlot(&p.overflowClip) }
func (p *ObjectPaintProperties) ClearPerspective() bool  { return clearSlot(&p.perspective) }
func (p *ObjectPaintProperties) ClearSvgLocalToBorderBoxTransform() bool {
	return clearSlot(&p.svgLocalToBorderBoxTransform)
}
func (p *ObjectPaintProperties) ClearScroll() bool { return clearSlot(&p.scroll) }
func (p *ObjectPaintProperties) ClearScrollTranslation() bool {
	return clearSlot(&p.scrollTranslation)
}

// --- Enumeration -----------------------------------------------------------

// Slot is a named, occupied property slot. Exactly one of the node fields is
// set.
type Slot struct {
	Name      string
	Transform *TransformNode
	Clip      *ClipNode
	Effect    *EffectNode
	Scroll    *ScrollNode
}

// Slots lists the occupied slots of p in a fixed order.
func (p *ObjectPaintProperties) Slots() []Slot {
	if p == nil {
		return nil
	}
	var slots []Slot
	t := func(name string, n *TransformNode) {
		if n != nil {
			slots = append(slots, Slot{Name: name, Transform: n})
		}
	}
	c := func(name string, n *ClipNode) {
		if n != nil {
			slots = append(slots, Slot{Name: name, Clip: n})
		}
	}
	e := func(name string, n *EffectNode) {
		if n != nil {
			slots = append(slots, Slot{Name: name, Effect: n})
		}
	}
	t("PaintOffsetTranslation", p.paintOffsetTranslation)
	t("Transform", p.transform)
	e("Effect", p.effect)
	e("Filter", p.filter)
	e("Mask", p.mask)
	c("MaskClip", p.maskClip)
	c("FragmentClip", p.fragmentClip)
	c("CssClip", p.cssClip)
	c("CssClipFixedPosition", p.cssClipFixedPosition)
	c("InnerBorderRadiusClip", p.innerBorderRadiusClip)
	c("OverflowClip", p.overflowClip)
	t("Perspective", p.perspective)
	t("SvgLocalToBorderBoxTransform", p.svgLocalToBorderBoxTransform)
	if p.scroll != nil {
		slots = append(slots, Slot{Name: "Scroll", Scroll: p.scroll})
	}
	t("ScrollTranslation", p.scrollTranslation)
	return slots
}

// IsEmpty is true if no slot is occupied.
func (p *ObjectPaintProperties) IsEmpty() bool {
	return len(p.Slots()) == 0
}

// NodeCount returns the number of occupied slots.
func (p *ObjectPaintProperties) NodeCount() int {
	return len(p.Slots())
}
