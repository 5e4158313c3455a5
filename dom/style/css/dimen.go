package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/paintprops/dom/style"
	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/tyse/core/dimen"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	// Flags for content dependent dimensions
	DimenContentMax uint32 = 0x0010
	DimenContentMin uint32 = 0x0020
	DimenContentFit uint32 = 0x0030
	contentMask     uint32 = 0x00f0

	dimenEM      uint32 = 0x0100
	dimenVW      uint32 = 0x0500
	dimenVH      uint32 = 0x0600
	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// DimenT is an option type for CSS dimensions.
type DimenT struct {
	d       dimen.DU
	percent float64
	flags   uint32
}

/*
type DimenT
	= Auto
	| Inherit
	| Initial
	| JustDimen dimen
	| Percentage float
*/

// Auto creates a CSS dimension of value `auto`.
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// Inherit creates a CSS dimension of value `inherit`.
func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

// Initial creates a CSS dimension of value `initial`.
func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Px creates a CSS dimension of n CSS pixels.
func Px(n float64) DimenT {
	return JustDimen(geom.Px(n).ToDimen())
}

// Percentage creates a CSS dimension with a %-relative value, where
// Percentage(50) is 50%.
func Percentage(n float64) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

func (d DimenT) kind() uint32 {
	return d.flags & kindMask
}

// IsNone is true for the zero value of DimenT, i.e. a dimension which has not
// been set.
func (d DimenT) IsNone() bool {
	return d.flags == dimenNone
}

// IsAuto is true for dimension `auto`.
func (d DimenT) IsAuto() bool {
	return d.kind() == dimenAuto
}

// IsAbsolute is true for fixed dimensions.
func (d DimenT) IsAbsolute() bool {
	return d.kind() == dimenAbsolute
}

// IsPercent is true for %-relative dimensions.
func (d DimenT) IsPercent() bool {
	return d.flags&relativeMask == dimenPercent
}

// Resolve returns the value of d relative to a base dimension. Fixed values
// ignore the base, percentages are taken from it, and everything else
// resolves to the fallback value.
func (d DimenT) Resolve(base, fallback dimen.DU) dimen.DU {
	switch {
	case d.IsAbsolute():
		return d.d
	case d.IsPercent():
		return dimen.DU(math.Round(float64(base) * d.percent / 100))
	}
	return fallback
}

// ResolveLayout is like Resolve, but operates on layout units.
func (d DimenT) ResolveLayout(base, fallback geom.LayoutUnit) geom.LayoutUnit {
	switch {
	case d.IsAbsolute():
		return geom.FromDimen(d.d)
	case d.IsPercent():
		return geom.LayoutUnit(math.Round(float64(base) * d.percent / 100))
	}
	return fallback
}

func (d DimenT) String() string {
	switch {
	case d.IsNone():
		return "none"
	case d.IsAuto():
		return "auto"
	case d.kind() == dimenInherit:
		return "inherit"
	case d.kind() == dimenInitial:
		return "initial"
	case d.IsPercent():
		return strconv.FormatFloat(d.percent, 'g', -1, 64) + "%"
	}
	return geom.FromDimen(d.d).String()
}

// ParseDimen creates a dimension from a CSS property value. Supported units
// are px, pt and %. Unitless zero is accepted.
func ParseDimen(p style.Property) (DimenT, error) {
	s := strings.TrimSpace(strings.ToLower(string(p)))
	switch s {
	case "":
		return DimenT{}, nil
	case "auto":
		return Auto(), nil
	case "inherit":
		return Inherit(), nil
	case "initial":
		return Initial(), nil
	case "0":
		return JustDimen(0), nil
	}
	num := func(suffix string) (float64, error) {
		return strconv.ParseFloat(strings.TrimSuffix(s, suffix), 64)
	}
	switch {
	case strings.HasSuffix(s, "px"):
		n, err := num("px")
		if err != nil {
			return DimenT{}, fmt.Errorf("illegal pixel dimension %q: %w", s, err)
		}
		return Px(n), nil
	case strings.HasSuffix(s, "pt"):
		n, err := num("pt")
		if err != nil {
			return DimenT{}, fmt.Errorf("illegal point dimension %q: %w", s, err)
		}
		return JustDimen(dimen.DU(math.Round(n * float64(dimen.PT)))), nil
	case strings.HasSuffix(s, "%"):
		n, err := num("%")
		if err != nil {
			return DimenT{}, fmt.Errorf("illegal percentage %q: %w", s, err)
		}
		return Percentage(n), nil
	}
	return DimenT{}, fmt.Errorf("unsupported dimension %q", s)
}

// ---------------------------------------------------------------------------

// Match starts matching a dimension against patterns, as in
//
//	switch m := d.Match(); m {
//	case m.Just(&du):
//	case m.Percentage(&p):
//	case m.IsKind(css.Auto()):
//	}
func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

// Matcher is the helper type for matching dimensions.
type Matcher struct {
	dimen DimenT
}

// IsKind matches if the dimension is of the same kind as d.
func (m *Matcher) IsKind(d DimenT) *Matcher {
	switch {
	case m.dimen.kind() != dimenNone && m.dimen.kind() == d.kind():
		return m
	case (m.dimen.flags&relativeMask > 0) && (d.flags&relativeMask > 0):
		if m.dimen.IsPercent() != d.IsPercent() {
			return nil
		}
		return m
	case (m.dimen.flags&contentMask > 0) && (d.flags&contentMask > 0):
		return m
	}
	return nil
}

// Just matches fixed dimensions and extracts the value.
func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.IsAbsolute() {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

// Percentage matches %-relative dimensions and extracts the percentage.
func (m *Matcher) Percentage(p *float64) *Matcher {
	if m.dimen.IsPercent() {
		if p != nil {
			*p = m.dimen.percent
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

// DimenPatterns holds the results of an expression match, per kind.
type DimenPatterns[T any] struct {
	Auto    T
	Inherit T
	Initial T
	Just    T
	Percent T
	Default T
}

// DimenPattern starts an expression match on d.
func DimenPattern[T any](d DimenT) *MatchExpr[T] {
	return &MatchExpr[T]{dimen: d}
}

// MatchExpr is part of pattern matching for DimenT types and intended to be
// instantiated using `DimenPattern()` only.
type MatchExpr[T any] struct {
	dimen DimenT
}

// OneOf selects the pattern result matching the dimension's kind.
func (m *MatchExpr[T]) OneOf(patterns DimenPatterns[T]) T {
	switch {
	case m.dimen.IsAuto():
		return patterns.Auto
	case m.dimen.IsAbsolute():
		return patterns.Just
	case m.dimen.kind() == dimenInitial:
		return patterns.Initial
	case m.dimen.kind() == dimenInherit:
		return patterns.Inherit
	case m.dimen.IsPercent():
		return patterns.Percent
	}
	return patterns.Default
}

// With extracts the fixed value of the dimension.
func (m *MatchExpr[T]) With(du *dimen.DU) *MatchExpr[T] {
	*du = m.dimen.d
	return m
}

// Const returns x.
func (m *MatchExpr[T]) Const(x T) T {
	return x
}
