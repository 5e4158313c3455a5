package layout

import "github.com/npillmayer/paintprops/geom"

// TableInfo holds the table-wide layout state of a table object.
type TableInfo struct {
	// VBorderSpacing is the vertical border spacing between rows.
	VBorderSpacing geom.LayoutUnit
	// CollapseBorders is set for border-collapse: collapse.
	CollapseBorders bool
}

// SectionKind tells table header groups, bodies and footer groups apart.
type SectionKind uint8

// Kinds of table sections.
const (
	SectionBody SectionKind = iota
	SectionHeader
	SectionFooter
)

// SectionInfo holds the layout state of a table section.
type SectionInfo struct {
	Kind SectionKind
	// Repeating is set for header and footer groups which are repeated in
	// every fragmentainer a paginated table spans.
	Repeating bool
}

// TableInfo returns the table state of a table object, or nil.
func (o *Object) TableInfo() *TableInfo { return o.table }

// SectionInfo returns the section state of a table section, or nil.
func (o *Object) SectionInfo() *SectionInfo { return o.section }

// Table returns the table enclosing a table part, or nil.
func (o *Object) Table() *Object {
	for p := o.ParentObject(); p != nil; p = p.ParentObject() {
		if p.IsTable() {
			return p
		}
	}
	return nil
}

// IsRepeatingHeaderGroup is true for table header groups repeated across
// fragmentainers.
func (o *Object) IsRepeatingHeaderGroup() bool {
	return o.section != nil && o.section.Kind == SectionHeader && o.section.Repeating
}

// IsRepeatingFooterGroup is true for table footer groups repeated across
// fragmentainers.
func (o *Object) IsRepeatingFooterGroup() bool {
	return o.section != nil && o.section.Kind == SectionFooter && o.section.Repeating
}

// FirstRow returns the first row of a table section, or nil.
func (o *Object) FirstRow() *Object {
	for _, ch := range o.ChildObjects() {
		if ch.IsTableRow() {
			return ch
		}
	}
	return nil
}

// sections returns the sections of a table in visual order: header groups,
// bodies, footer groups.
func (o *Object) sections() []*Object {
	var head, body, foot []*Object
	for _, ch := range o.ChildObjects() {
		if ch.section == nil {
			continue
		}
		switch ch.section.Kind {
		case SectionHeader:
			head = append(head, ch)
		case SectionFooter:
			foot = append(foot, ch)
		default:
			body = append(body, ch)
		}
	}
	return append(append(head, body...), foot...)
}

// TopNonEmptySection returns the topmost section of a table with at least
// one row.
func (o *Object) TopNonEmptySection() *Object {
	for _, s := range o.sections() {
		if s.FirstRow() != nil {
			return s
		}
	}
	return nil
}

// BottomNonEmptySection returns the bottommost section of a table with at
// least one row.
func (o *Object) BottomNonEmptySection() *Object {
	secs := o.sections()
	for i := len(secs) - 1; i >= 0; i-- {
		if secs[i].FirstRow() != nil {
			return secs[i]
		}
	}
	return nil
}

func (o *Object) repeatingSection(kind SectionKind) *Object {
	for _, s := range o.sections() {
		if s.section.Kind == kind && s.section.Repeating {
			return s
		}
	}
	return nil
}

// RowOffsetFromRepeatingHeader is the space a repeated header group takes
// at the top of every fragmentainer, including border spacing.
func (o *Object) RowOffsetFromRepeatingHeader() geom.LayoutUnit {
	if o.table == nil {
		return 0
	}
	if h := o.repeatingSection(SectionHeader); h != nil {
		return h.size.Height + o.table.VBorderSpacing
	}
	return 0
}

// RowOffsetFromRepeatingFooter is the space a repeated footer group takes
// at the bottom of every fragmentainer, including border spacing.
func (o *Object) RowOffsetFromRepeatingFooter() geom.LayoutUnit {
	if o.table == nil {
		return 0
	}
	if f := o.repeatingSection(SectionFooter); f != nil {
		return f.size.Height + o.table.VBorderSpacing
	}
	return 0
}

// VBorderSpacing is the vertical border spacing of a table.
func (o *Object) VBorderSpacing() geom.LayoutUnit {
	if o.table == nil {
		return 0
	}
	return o.table.VBorderSpacing
}

// ShouldCollapseBorders is true for tables with collapsed borders.
func (o *Object) ShouldCollapseBorders() bool {
	return o.table != nil && o.table.CollapseBorders
}
