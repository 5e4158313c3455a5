package htmlbuild

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/paintprops/dom/style"
	"github.com/npillmayer/paintprops/dom/style/css"
	"github.com/npillmayer/paintprops/dom/style/cssom"
	"github.com/npillmayer/paintprops/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/paintprops/dom/styledtree"
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/paintprops/layout"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Options configure the builder.
type Options struct {
	// Viewport is the size of the frame view. The default is 800×600.
	Viewport geom.IntSize
	// StyleSheets are CSS sources, applied after the <style> elements of the
	// document.
	StyleSheets []string
	// Printing marks the frame view as the root of a printed document.
	Printing bool
}

// DefaultViewport is used for options without a viewport.
var DefaultViewport = geom.IntSize{Width: 800, Height: 600}

// Document is a layout tree together with the HTML parse tree it has been
// built from.
type Document struct {
	FrameView *layout.FrameView
	root      *html.Node
	objects   map[*html.Node]*layout.Object
}

// Build reads an HTML document and creates a frame view for it.
func Build(r io.Reader, opts Options) (*layout.FrameView, error) {
	doc, err := Parse(r, opts)
	if err != nil {
		return nil, err
	}
	return doc.FrameView, nil
}

// Parse reads an HTML document, styles it and creates a layout tree for it.
func Parse(r io.Reader, opts Options) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	om := cssom.NewCSSOM(nil)
	om.SetInlineParser(douceuradapter.ParseInline)
	sheets, err := douceuradapter.ExtractStyleElements(root)
	if err != nil {
		return nil, err
	}
	for _, sheet := range sheets {
		if err = om.AddStyles(sheet); err != nil {
			return nil, err
		}
	}
	for i, src := range opts.StyleSheets {
		sheet, err := douceuradapter.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("style sheet #%d: %w", i, err)
		}
		if err = om.AddStyles(sheet); err != nil {
			return nil, fmt.Errorf("style sheet #%d: %w", i, err)
		}
	}
	styled, err := om.Style(root)
	if err != nil {
		return nil, err
	}
	var htmlElement *styledtree.StyNode
	for _, ch := range styled.Children(true) {
		if ch.Payload.HTMLNode().DataAtom == atom.Html {
			htmlElement = ch.Payload
		}
	}
	if htmlElement == nil {
		return nil, fmt.Errorf("%w: no <html> element", ErrDocument)
	}
	vp := opts.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = DefaultViewport
	}
	doc := &Document{
		FrameView: layout.NewFrameView(vp),
		root:      root,
		objects:   make(map[*html.Node]*layout.Object),
	}
	fv := doc.FrameView
	fv.Printing = opts.Printing
	view := fv.LayoutView()
	doc.objects[root] = view
	b := &builder{doc: doc}
	height, err := b.element(htmlElement, view, box{width: geom.FromInt(vp.Width)}, 0)
	if err != nil {
		return nil, err
	}
	if h := height.Round(); h > vp.Height {
		fv.ContentsSize = geom.IntSize{Width: vp.Width, Height: h}
	}
	if off, ok, err := scrollOffset(htmlElement); err != nil {
		return nil, err
	} else if ok {
		fv.SetScrollOffset(off)
	}
	tracer().Infof("built layout tree with %d objects, contents size %v", len(doc.objects), fv.ContentsSize)
	return doc, nil
}

// Query returns the layout objects of the elements matching a CSS selector,
// in document order. Elements without a layout object are skipped.
func (d *Document) Query(selector string) ([]*layout.Object, error) {
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	var objects []*layout.Object
	for _, h := range cascadia.QueryAll(d.root, sel) {
		if o, ok := d.objects[h]; ok {
			objects = append(objects, o)
		}
	}
	return objects, nil
}

// Object returns the layout object of the first element matching selector,
// or nil.
func (d *Document) Object(selector string) *layout.Object {
	objects, err := d.Query(selector)
	if err != nil || len(objects) == 0 {
		return nil
	}
	return objects[0]
}

// --- Block layout ----------------------------------------------------------

type builder struct {
	doc *Document
}

// box is the area children are placed in. x and y are the offset of the
// content box from the border box of the container of in-flow children.
type box struct {
	x, y, width geom.LayoutUnit
	paginated   bool // inside a flow thread
	svg         bool // inside an SVG root
}

func pt(x, y geom.LayoutUnit) geom.LayoutPoint {
	return geom.LayoutPoint{X: x, Y: y}
}

// children places the element children of sn into parent, stacking in-flow
// boxes from cb.y downwards. It returns the height taken by in-flow boxes.
func (b *builder) children(sn *styledtree.StyNode, parent *layout.Object, cb box) (geom.LayoutUnit, error) {
	y := cb.y
	for _, ch := range sn.Children(true) {
		advance, err := b.element(ch.Payload, parent, cb, y)
		if err != nil {
			return 0, err
		}
		y += advance
	}
	return y - cb.y, nil
}

// element creates the layout object for sn, at vertical position y of cb if
// it is in flow. It returns the height of its margin box for in-flow boxes,
// 0 otherwise.
func (b *builder) element(sn *styledtree.StyNode, parent *layout.Object, cb box, y geom.LayoutUnit) (geom.LayoutUnit, error) {
	h := sn.HTMLNode()
	if cb.svg || h.DataAtom == atom.Svg {
		return b.svg(sn, parent, cb, y)
	}
	p := &props{sn: sn}
	disp := p.display()
	if disp.Contains(css.DisplayNone) {
		return 0, p.err
	}
	st := computeStyle(p)
	st.Animations = animations(sn)
	kind := layout.KindBlock
	switch {
	case disp.Contains(css.TableMode):
		kind = layout.KindTable
	case disp.Outer() == css.InlineMode && !disp.Contains(css.InnerBlockMode):
		kind = layout.KindInline
	}
	o := layout.NewObject(kind, nameOf(h), st)
	b.doc.objects[h] = o
	parent.AppendChild(o)
	margin := p.outsets("margin", cb.width)
	border := p.outsets("border", 0)
	padding := p.outsets("padding", cb.width)
	o.SetBorderOutsets(border)
	horizontal := border.Left + border.Right + padding.Left + padding.Right
	vertical := border.Top + border.Bottom + padding.Top + padding.Bottom
	width := cb.width - margin.Left - margin.Right
	if p.isSet("width") {
		width = p.length("width", cb.width, 0) + horizontal
	}
	var loc geom.LayoutPoint
	if st.Position.IsOutOfFlowPositioned() {
		loc = pt(p.length("left", cb.width, 0)+margin.Left, p.length("top", 0, 0)+margin.Top)
		if !p.isSet("width") {
			width -= loc.X
		}
	} else {
		loc = pt(cb.x+margin.Left, y+margin.Top)
		if st.Position.IsInFlowPositioned() {
			o.SetOffsetForInFlowPosition(relativeOffset(p, cb.width))
		}
	}
	o.SetLocation(loc)
	inner := box{
		x:         border.Left + padding.Left,
		y:         border.Top + padding.Top,
		width:     width - horizontal,
		paginated: cb.paginated,
	}
	if kind == layout.KindInline {
		// Inline boxes add no offset: their content is placed relative to
		// their container.
		inner.x += loc.X
		inner.y += loc.Y
	}
	var explicit geom.LayoutUnit
	hasHeight := p.isSet("height")
	if hasHeight {
		explicit = p.length("height", 0, 0)
	}
	if p.err != nil {
		return 0, p.err
	}
	var contentHeight geom.LayoutUnit
	var err error
	switch columns := p.integer("column-count"); {
	case kind == layout.KindTable:
		contentHeight, err = b.table(sn, o, inner, p)
	case columns > 0 && hasHeight:
		err = b.multicol(sn, o, inner, columns, explicit, p)
	default:
		contentHeight, err = b.children(sn, o, inner)
	}
	if err != nil {
		return 0, err
	}
	if hasHeight {
		contentHeight = explicit
	}
	size := geom.LayoutSize{Width: width, Height: contentHeight + vertical}
	o.SetSize(size)
	if err := b.scroller(sn, o); err != nil {
		return 0, err
	}
	if p.err != nil || st.Position.IsOutOfFlowPositioned() {
		return 0, p.err
	}
	return margin.Top + size.Height + margin.Bottom, nil
}

// relativeOffset is the in-flow offset of relative and sticky boxes. left
// and top win over right and bottom.
func relativeOffset(p *props, base geom.LayoutUnit) geom.LayoutSize {
	var off geom.LayoutSize
	switch {
	case p.isSet("left"):
		off.Width = p.length("left", base, 0)
	case p.isSet("right"):
		off.Width = -p.length("right", base, 0)
	}
	switch {
	case p.isSet("top"):
		off.Height = p.length("top", 0, 0)
	case p.isSet("bottom"):
		off.Height = -p.length("bottom", 0, 0)
	}
	return off
}

// scroller sets contents size and scroll offset of boxes with overflow clip.
// The contents size covers the padding box and every child.
func (b *builder) scroller(sn *styledtree.StyNode, o *layout.Object) error {
	sa := o.ScrollableArea()
	if sa == nil {
		return nil
	}
	padding := o.PaddingBoxRect()
	extent := padding
	for _, ch := range o.ChildObjects() {
		r := ch.BorderBoxRect().MoveBy(ch.PhysicalLocation())
		extent = extent.Unite(r)
	}
	sa.SetContentsSize(geom.LayoutSize{
		Width:  extent.MaxX() - padding.X(),
		Height: extent.MaxY() - padding.Y(),
	})
	off, ok, err := scrollOffset(sn)
	if ok {
		sa.SetScrollOffset(off)
	}
	return err
}

// scrollOffset reads the data-scroll-left and data-scroll-top attributes.
func scrollOffset(sn *styledtree.StyNode) (geom.FloatSize, bool, error) {
	var off geom.FloatSize
	found := false
	for _, a := range []struct {
		key string
		v   *float64
	}{{"data-scroll-left", &off.Width}, {"data-scroll-top", &off.Height}} {
		s, ok := sn.Attribute(a.key)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return off, false, fmt.Errorf("%w: %s=%q", ErrStyle, a.key, s)
		}
		*a.v = n
		found = true
	}
	return off, found, nil
}

// animations reads the data-animates attribute, a list of the properties
// with running animations.
func animations(sn *styledtree.StyNode) layout.Animations {
	var a layout.Animations
	s, _ := sn.Attribute("data-animates")
	for _, name := range strings.Fields(s) {
		switch name {
		case "transform":
			a |= layout.AnimatesTransform
		case "opacity":
			a |= layout.AnimatesOpacity
		case "filter":
			a |= layout.AnimatesFilter
		default:
			tracer().Infof("ignoring animation of %q", name)
		}
	}
	return a
}

func nameOf(h *html.Node) string {
	name := h.Data
	for _, a := range h.Attr {
		if a.Key == "id" {
			return name + "#" + a.Val
		}
	}
	for _, a := range h.Attr {
		if a.Key == "class" {
			if classes := strings.Fields(a.Val); len(classes) > 0 {
				return name + "." + classes[0]
			}
		}
	}
	return name
}

// --- Multi-column ----------------------------------------------------------

// multicol lays out the children of a multi-column container o into a flow
// thread. Columns are as tall as the content box of o.
func (b *builder) multicol(sn *styledtree.StyNode, o *layout.Object, inner box, columns int,
	height geom.LayoutUnit, p *props) error {
	//
	gap := geom.FromInt(16) // normal is 1em
	if v := p.get("column-gap"); v != "normal" && v != style.NullStyle {
		gap = p.length("column-gap", inner.width, gap)
	}
	if p.err != nil {
		return p.err
	}
	colWidth := (inner.width - gap*geom.LayoutUnit(columns-1)) / geom.LayoutUnit(columns)
	ft := layout.NewObject(layout.KindFlowThread, o.Name+"::flow-thread", nil)
	o.AppendChild(ft)
	ft.SetLocation(pt(inner.x, inner.y))
	ft.FlowThread().SetColumns(colWidth, gap, height)
	h, err := b.children(sn, ft, box{width: colWidth, paginated: true})
	if err != nil {
		return err
	}
	ft.SetSize(geom.LayoutSize{Width: colWidth, Height: h})
	tracer().Debugf("%v: %d columns of %v, flow thread height %v", o, columns, colWidth, h)
	return nil
}

// --- Tables ----------------------------------------------------------------

// table lays out the row groups of table t. Rows of a group stack with the
// vertical border spacing between them, and the spacing also separates the
// groups from each other and from the table edges. Cells of a row share its
// width evenly, unless they have a width of their own.
func (b *builder) table(sn *styledtree.StyNode, t *layout.Object, inner box, p *props) (geom.LayoutUnit, error) {
	// The second of two border-spacing values is the vertical spacing.
	var spacing geom.LayoutUnit
	if fields := strings.Fields(string(p.get("border-spacing"))); len(fields) > 0 {
		d, err := css.ParseDimen(style.Property(fields[len(fields)-1]))
		if err != nil {
			p.fail("border-spacing", err)
		}
		spacing = d.ResolveLayout(0, 0)
	}
	t.TableInfo().VBorderSpacing = spacing
	t.TableInfo().CollapseBorders = p.get("border-collapse") == "collapse"
	if p.err != nil {
		return 0, p.err
	}
	y := inner.y + spacing
	for _, ch := range sn.Children(true) {
		gp := &props{sn: ch.Payload}
		disp := gp.display()
		if !disp.Contains(css.TableRowGroup) {
			advance, err := b.element(ch.Payload, t, box{x: inner.x, width: inner.width, paginated: inner.paginated}, y)
			if err != nil {
				return 0, err
			}
			y += advance
			continue
		}
		section := layout.NewObject(layout.KindTableSection, nameOf(ch.Payload.HTMLNode()), computeStyle(gp))
		b.doc.objects[ch.Payload.HTMLNode()] = section
		switch {
		case disp.Contains(css.TableHeader):
			section.SectionInfo().Kind = layout.SectionHeader
		case disp.Contains(css.TableFooter):
			section.SectionInfo().Kind = layout.SectionFooter
		}
		section.SectionInfo().Repeating = inner.paginated && section.SectionInfo().Kind != layout.SectionBody
		t.AppendChild(section)
		section.SetLocation(pt(inner.x, y))
		h, err := b.rows(ch.Payload, section, inner.width, spacing)
		if err != nil {
			return 0, err
		}
		if gp.err != nil {
			return 0, gp.err
		}
		section.SetSize(geom.LayoutSize{Width: inner.width, Height: h})
		y += h + spacing
	}
	return y - inner.y, nil
}

// rows lays out the rows of a table section. Rows and cells are located
// relative to the section.
func (b *builder) rows(sn *styledtree.StyNode, section *layout.Object, width, spacing geom.LayoutUnit) (geom.LayoutUnit, error) {
	var y geom.LayoutUnit
	rows := sn.Children(true)
	for i, rn := range rows {
		rp := &props{sn: rn.Payload}
		row := layout.NewObject(layout.KindTableRow, nameOf(rn.Payload.HTMLNode()), computeStyle(rp))
		b.doc.objects[rn.Payload.HTMLNode()] = row
		section.AppendChild(row)
		row.SetLocation(pt(0, y))
		height := rp.length("height", 0, 0)
		cells := rn.Payload.Children(true)
		var x geom.LayoutUnit
		for _, cn := range cells {
			cp := &props{sn: cn.Payload}
			cell := layout.NewObject(layout.KindTableCell, nameOf(cn.Payload.HTMLNode()), computeStyle(cp))
			b.doc.objects[cn.Payload.HTMLNode()] = cell
			row.AppendChild(cell)
			cell.SetLocation(pt(x, y))
			border := cp.outsets("border", 0)
			padding := cp.outsets("padding", width)
			cell.SetBorderOutsets(border)
			w := width / geom.LayoutUnit(len(cells))
			if cp.isSet("width") {
				w = cp.length("width", width, 0) + border.Left + border.Right + padding.Left + padding.Right
			}
			inner := box{x: border.Left + padding.Left, y: border.Top + padding.Top,
				width: w - border.Left - border.Right - padding.Left - padding.Right}
			h, err := b.children(cn.Payload, cell, inner)
			if err != nil {
				return 0, err
			}
			if cp.isSet("height") {
				h = cp.length("height", 0, 0)
			}
			h += border.Top + border.Bottom + padding.Top + padding.Bottom
			if cp.err != nil {
				return 0, cp.err
			}
			if h > height {
				height = h
			}
			cell.SetSize(geom.LayoutSize{Width: w, Height: h})
			x += w
		}
		for _, cell := range row.ChildObjects() {
			cell.SetSize(geom.LayoutSize{Width: cell.Size().Width, Height: height})
		}
		if rp.err != nil {
			return 0, rp.err
		}
		row.SetSize(geom.LayoutSize{Width: width, Height: height})
		y += height
		if i < len(rows)-1 {
			y += spacing
		}
	}
	return y, nil
}

// --- SVG -------------------------------------------------------------------

// svg creates SVG roots and SVG content. SVG roots are placed like blocks;
// SVG content is positioned by its transform only.
func (b *builder) svg(sn *styledtree.StyNode, parent *layout.Object, cb box, y geom.LayoutUnit) (geom.LayoutUnit, error) {
	h := sn.HTMLNode()
	if h.Type != html.ElementNode {
		return 0, nil
	}
	p := &props{sn: sn}
	st := computeStyle(p)
	var kind layout.Kind
	switch tag := strings.ToLower(h.Data); {
	case !cb.svg:
		kind = layout.KindSVGRoot
	case tag == "defs" || tag == "mask" || tag == "clippath" || tag == "symbol" ||
		tag == "lineargradient" || tag == "radialgradient" || tag == "pattern":
		kind = layout.KindSVGHiddenContainer
	case tag == "g" || tag == "a" || tag == "svg":
		kind = layout.KindSVGContainer
	default:
		kind = layout.KindSVGShape
	}
	if kind != layout.KindSVGRoot {
		// Positioning is meaningless for SVG content.
		st.Position = css.Static()
	}
	o := layout.NewObject(kind, nameOf(h), st)
	b.doc.objects[h] = o
	parent.AppendChild(o)
	size := geom.LayoutSize{
		Width:  attrLength(sn, "width", p.length("width", cb.width, 0)),
		Height: attrLength(sn, "height", p.length("height", 0, 0)),
	}
	if kind == layout.KindSVGRoot {
		o.SetLocation(pt(cb.x, y))
	} else {
		o.SetLocation(pt(attrLength(sn, "x", 0), attrLength(sn, "y", 0)))
	}
	o.SetSize(size)
	transform, ok := sn.Attribute("transform")
	transform = svgTransform(transform)
	if kind == layout.KindSVGRoot {
		transform, ok = viewBoxTransform(sn, size)
	}
	if ok {
		tl, err := css.ParseTransform(style.Property(transform))
		if err != nil {
			return 0, fmt.Errorf("%w: <%s> transform: %v", ErrStyle, h.Data, err)
		}
		m, _ := tl.Matrix(geom.FloatSize{Width: size.Width.ToFloat(), Height: size.Height.ToFloat()}).Affine()
		o.SetSVGLocalTransform(m)
	}
	if info := o.SVGInfo(); kind != layout.KindSVGRoot {
		if m, ok := sn.Attribute("mask"); ok && m != "none" {
			info.Masker = css.MaskLuminance
		}
		info.Isolate = st.Isolate
	}
	for _, ch := range sn.Children(true) {
		if _, err := b.svg(ch.Payload, o, box{svg: true}, 0); err != nil {
			return 0, err
		}
	}
	if p.err != nil || kind != layout.KindSVGRoot {
		return 0, p.err
	}
	return size.Height, nil
}

// svgTransform rewrites the unitless translations of SVG transform
// attributes to CSS syntax.
func svgTransform(s string) string {
	var out strings.Builder
	for s = strings.TrimSpace(s); s != ""; s = strings.TrimSpace(s) {
		open, end := strings.IndexByte(s, '('), strings.IndexByte(s, ')')
		if open < 0 || end < open {
			out.WriteString(s)
			break
		}
		name := strings.TrimSpace(s[:open])
		args := strings.Fields(strings.ReplaceAll(s[open+1:end], ",", " "))
		if strings.HasPrefix(strings.ToLower(name), "translate") {
			for i, a := range args {
				if _, err := strconv.ParseFloat(a, 64); err == nil {
					args[i] = a + "px"
				}
			}
		}
		fmt.Fprintf(&out, "%s(%s) ", name, strings.Join(args, ", "))
		s = s[end+1:]
	}
	return strings.TrimSpace(out.String())
}

// viewBoxTransform maps the viewBox of an SVG root to its border box.
func viewBoxTransform(sn *styledtree.StyNode, size geom.LayoutSize) (string, bool) {
	vb, ok := sn.Attribute("viewBox")
	if !ok {
		return "", false
	}
	f := strings.Fields(strings.ReplaceAll(vb, ",", " "))
	if len(f) != 4 {
		return "", false
	}
	var n [4]float64
	for i := range f {
		v, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			return "", false
		}
		n[i] = v
	}
	if n[2] <= 0 || n[3] <= 0 {
		return "", false
	}
	return fmt.Sprintf("scale(%g, %g) translate(%gpx, %gpx)",
		size.Width.ToFloat()/n[2], size.Height.ToFloat()/n[3], -n[0], -n[1]), true
}

// attrLength reads a presentation attribute in pixels.
func attrLength(sn *styledtree.StyNode, key string, fallback geom.LayoutUnit) geom.LayoutUnit {
	s, ok := sn.Attribute(key)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
	if err != nil {
		tracer().Infof("ignoring %s=%q", key, s)
		return fallback
	}
	return geom.Px(v)
}

