package layout

import "strings"

// Kind classifies layout objects.
type Kind uint16

// Kinds of layout objects.
const (
	KindView Kind = 1 << iota
	KindBlock
	KindInline
	KindText
	KindReplaced
	KindTable
	KindTableSection
	KindTableRow
	KindTableCell
	KindFlowThread
	KindSVGRoot
	KindSVGContainer
	KindSVGShape
	KindSVGHiddenContainer
)

var kindNames = []string{
	"view", "block", "inline", "text", "replaced", "table", "table-section",
	"table-row", "table-cell", "flow-thread", "svg-root", "svg-container",
	"svg-shape", "svg-hidden-container",
}

func (k Kind) String() string {
	var names []string
	for i, n := range kindNames {
		if k&(1<<uint(i)) != 0 {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return "?"
	}
	return strings.Join(names, "|")
}

const (
	kindSVGChild    = KindSVGContainer | KindSVGShape | KindSVGHiddenContainer
	kindLayoutBlock = KindView | KindBlock | KindTable | KindTableCell | KindFlowThread
)

// Kind returns the kind of o.
func (o *Object) Kind() Kind { return o.kind }

// IsLayoutView is true for the root of the layout tree.
func (o *Object) IsLayoutView() bool { return o.kind&KindView != 0 }

// IsText is true for text runs.
func (o *Object) IsText() bool { return o.kind&KindText != 0 }

// IsBoxModelObject is true for objects which have CSS boxes, i.e. everything
// except text and SVG content.
func (o *Object) IsBoxModelObject() bool {
	return o.kind&(KindText|kindSVGChild) == 0
}

// IsBox is true for box model objects which are not inline.
func (o *Object) IsBox() bool {
	return o.IsBoxModelObject() && o.kind&KindInline == 0
}

// IsLayoutBlock is true for block containers.
func (o *Object) IsLayoutBlock() bool { return o.kind&kindLayoutBlock != 0 }

// IsLayoutInline is true for inline boxes.
func (o *Object) IsLayoutInline() bool { return o.kind&KindInline != 0 }

// IsLayoutReplaced is true for replaced elements, including SVG roots.
func (o *Object) IsLayoutReplaced() bool { return o.kind&(KindReplaced|KindSVGRoot) != 0 }

func (o *Object) IsTable() bool        { return o.kind&KindTable != 0 }
func (o *Object) IsTableSection() bool { return o.kind&KindTableSection != 0 }
func (o *Object) IsTableRow() bool     { return o.kind&KindTableRow != 0 }
func (o *Object) IsTableCell() bool    { return o.kind&KindTableCell != 0 }

// IsLayoutFlowThread is true for the flow thread of a multi-column container.
func (o *Object) IsLayoutFlowThread() bool { return o.kind&KindFlowThread != 0 }

func (o *Object) IsSVGRoot() bool            { return o.kind&KindSVGRoot != 0 }
func (o *Object) IsSVGChild() bool           { return o.kind&kindSVGChild != 0 }
func (o *Object) IsSVGHiddenContainer() bool { return o.kind&KindSVGHiddenContainer != 0 }

// IsSVG is true for SVG roots and SVG content.
func (o *Object) IsSVG() bool { return o.IsSVGRoot() || o.IsSVGChild() }
