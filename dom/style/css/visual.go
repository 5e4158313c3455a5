package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
	"github.com/npillmayer/paintprops/dom/style"
	"github.com/npillmayer/paintprops/geom"
)

// --- Overflow ---------------------------------------------------------------

// Overflow is a type for CSS properties overflow-x and overflow-y.
type Overflow uint8

// Values for overflow.
const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
	OverflowClip
)

var overflowNames = [...]string{"visible", "hidden", "scroll", "auto", "clip"}

func (o Overflow) String() string {
	if int(o) < len(overflowNames) {
		return overflowNames[o]
	}
	return "Overflow(" + strconv.Itoa(int(o)) + ")"
}

// ClipsContent is true for every value except visible.
func (o Overflow) ClipsContent() bool {
	return o != OverflowVisible
}

// IsScrollable is true if the user may scroll the content of a box.
func (o Overflow) IsScrollable() bool {
	return o == OverflowScroll || o == OverflowAuto
}

// ParseOverflow reads an overflow value. An empty property is visible.
func ParseOverflow(p style.Property) (Overflow, error) {
	s := strings.TrimSpace(string(p))
	if s == "" {
		return OverflowVisible, nil
	}
	for i, name := range overflowNames {
		if s == name {
			return Overflow(i), nil
		}
	}
	return OverflowVisible, fmt.Errorf("illegal overflow value %q", s)
}

// --- Numbers and angles -----------------------------------------------------

// ParseNumber reads a plain number or a percentage, where 50% is 0.5.
func ParseNumber(p style.Property) (float64, error) {
	s := strings.TrimSpace(string(p))
	if strings.HasSuffix(s, "%") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("illegal percentage %q: %w", s, err)
		}
		return n / 100, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("illegal number %q: %w", s, err)
	}
	return n, nil
}

// ParseAngle reads an angle and returns it in degrees.
func ParseAngle(s string) (float64, error) {
	s = strings.TrimSpace(s)
	units := []struct {
		suffix string
		factor float64
	}{
		{"deg", 1}, {"grad", 0.9}, {"rad", 180 / math.Pi}, {"turn", 360},
	}
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			n, err := strconv.ParseFloat(strings.TrimSuffix(s, u.suffix), 64)
			if err != nil {
				return 0, fmt.Errorf("illegal angle %q: %w", s, err)
			}
			return n * u.factor, nil
		}
	}
	if s == "0" {
		return 0, nil
	}
	return 0, fmt.Errorf("illegal angle %q", s)
}

// --- Functional notation ----------------------------------------------------

type function struct {
	name string
	args []string
}

// splitFunctions splits a list of functions like "translate(1px, 2px) scale(2)".
func splitFunctions(s string) ([]function, error) {
	var fns []function
	s = strings.TrimSpace(s)
	for s != "" {
		open := strings.IndexByte(s, '(')
		end := strings.IndexByte(s, ')')
		if open <= 0 || end < open {
			return nil, fmt.Errorf("malformed function list %q", s)
		}
		name := strings.TrimSpace(s[:open])
		inner := strings.ReplaceAll(s[open+1:end], ",", " ")
		fns = append(fns, function{name: name, args: strings.Fields(inner)})
		s = strings.TrimSpace(s[end+1:])
	}
	return fns, nil
}

func (fn function) lengths(min, max int) ([]DimenT, error) {
	if len(fn.args) < min || len(fn.args) > max {
		return nil, fmt.Errorf("%s: expecting %d to %d arguments, have %d", fn.name, min, max, len(fn.args))
	}
	dims := make([]DimenT, len(fn.args))
	for i, a := range fn.args {
		d, err := ParseDimen(style.Property(a))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.name, err)
		}
		dims[i] = d
	}
	return dims, nil
}

func (fn function) numbers(min, max int) ([]float64, error) {
	if len(fn.args) < min || len(fn.args) > max {
		return nil, fmt.Errorf("%s: expecting %d to %d arguments, have %d", fn.name, min, max, len(fn.args))
	}
	nums := make([]float64, len(fn.args))
	for i, a := range fn.args {
		n, err := ParseNumber(style.Property(a))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.name, err)
		}
		nums[i] = n
	}
	return nums, nil
}

func (fn function) angles(min, max int) ([]float64, error) {
	if len(fn.args) < min || len(fn.args) > max {
		return nil, fmt.Errorf("%s: expecting %d to %d arguments, have %d", fn.name, min, max, len(fn.args))
	}
	angles := make([]float64, len(fn.args))
	for i, a := range fn.args {
		deg, err := ParseAngle(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.name, err)
		}
		angles[i] = deg
	}
	return angles, nil
}

// --- Transforms -------------------------------------------------------------

// TransformKind identifies a CSS transform function.
type TransformKind uint8

// Transform functions.
const (
	TransformTranslate TransformKind = iota
	TransformScale
	TransformRotate
	TransformSkew
	TransformMatrix
	TransformPerspective
)

// TransformOp is a single transform function. Translations keep their
// lengths unresolved because percentages refer to the border box.
type TransformOp struct {
	Kind    TransformKind
	X, Y, Z DimenT
	Values  []float64
}

// TransformList is the value of CSS property transform. A nil list is none.
type TransformList []TransformOp

// ParseTransform reads a transform property.
func ParseTransform(p style.Property) (TransformList, error) {
	s := strings.TrimSpace(string(p))
	if s == "" || s == "none" {
		return nil, nil
	}
	fns, err := splitFunctions(s)
	if err != nil {
		return nil, err
	}
	list := make(TransformList, 0, len(fns))
	zero := JustDimen(0)
	for _, fn := range fns {
		var op TransformOp
		switch fn.name {
		case "translate", "translatex", "translatey", "translatez", "translate3d":
			dims, err := fn.lengths(1, 3)
			if err != nil {
				return nil, err
			}
			op = TransformOp{Kind: TransformTranslate, X: zero, Y: zero, Z: zero}
			switch fn.name {
			case "translatex":
				op.X = dims[0]
			case "translatey":
				op.Y = dims[0]
			case "translatez":
				op.Z = dims[0]
			default:
				op.X = dims[0]
				if len(dims) > 1 {
					op.Y = dims[1]
				}
				if len(dims) > 2 {
					op.Z = dims[2]
				}
			}
		case "scale", "scalex", "scaley":
			nums, err := fn.numbers(1, 2)
			if err != nil {
				return nil, err
			}
			sx, sy := nums[0], nums[0]
			if len(nums) == 2 {
				sy = nums[1]
			}
			switch fn.name {
			case "scalex":
				sy = 1
			case "scaley":
				sx, sy = 1, nums[0]
			}
			op = TransformOp{Kind: TransformScale, Values: []float64{sx, sy}}
		case "rotate", "rotatez":
			deg, err := fn.angles(1, 1)
			if err != nil {
				return nil, err
			}
			op = TransformOp{Kind: TransformRotate, Values: deg}
		case "skew", "skewx", "skewy":
			deg, err := fn.angles(1, 2)
			if err != nil {
				return nil, err
			}
			ax, ay := deg[0], 0.0
			if len(deg) == 2 {
				ay = deg[1]
			}
			if fn.name == "skewy" {
				ax, ay = 0, deg[0]
			}
			op = TransformOp{Kind: TransformSkew, Values: []float64{ax, ay}}
		case "matrix":
			nums, err := fn.numbers(6, 6)
			if err != nil {
				return nil, err
			}
			op = TransformOp{Kind: TransformMatrix, Values: nums}
		case "perspective":
			dims, err := fn.lengths(1, 1)
			if err != nil {
				return nil, err
			}
			op = TransformOp{Kind: TransformPerspective, Z: dims[0]}
		default:
			return nil, fmt.Errorf("unsupported transform function %q", fn.name)
		}
		list = append(list, op)
	}
	return list, nil
}

// IsNone is true for an empty transform list.
func (tl TransformList) IsNone() bool {
	return len(tl) == 0
}

// Has3D is true if any of the transform functions operates in 3D space.
func (tl TransformList) Has3D() bool {
	for _, op := range tl {
		switch op.Kind {
		case TransformPerspective:
			return true
		case TransformTranslate:
			if op.Z.Resolve(0, 0) != 0 {
				return true
			}
		}
	}
	return false
}

// Matrix composes the transform functions. Percentages in translations are
// resolved against the size of the reference box.
func (tl TransformList) Matrix(box geom.FloatSize) geom.Matrix {
	m := geom.Identity()
	for _, op := range tl {
		m = m.Multiply(op.matrix(box))
	}
	return m
}

func (op TransformOp) matrix(box geom.FloatSize) geom.Matrix {
	px := func(d DimenT, base float64) float64 {
		return d.ResolveLayout(geom.Px(base), 0).ToFloat()
	}
	switch op.Kind {
	case TransformTranslate:
		return geom.Translation3dMatrix(px(op.X, box.Width), px(op.Y, box.Height), px(op.Z, 0))
	case TransformScale:
		return geom.ScaleMatrix(op.Values[0], op.Values[1])
	case TransformRotate:
		return geom.RotationMatrix(op.Values[0])
	case TransformSkew:
		return geom.SkewMatrix(op.Values[0], op.Values[1])
	case TransformMatrix:
		v := op.Values
		// CSS matrix(a, b, c, d, e, f) lists the affine matrix column-wise
		return geom.FromAffine(matrixFromCSS(v[0], v[1], v[2], v[3], v[4], v[5]))
	case TransformPerspective:
		return geom.Identity().ApplyPerspective(px(op.Z, 0))
	}
	return geom.Identity()
}

// --- Origins ----------------------------------------------------------------

// OriginT is the value of transform-origin or perspective-origin.
type OriginT struct {
	X, Y DimenT
	Z    float64
}

// CenterOrigin is the initial value of origin properties.
func CenterOrigin() OriginT {
	return OriginT{X: Percentage(50), Y: Percentage(50)}
}

var originKeywords = map[string]DimenT{
	"left":   Percentage(0),
	"top":    Percentage(0),
	"center": Percentage(50),
	"right":  Percentage(100),
	"bottom": Percentage(100),
}

// ParseOrigin reads a transform-origin or perspective-origin value.
func ParseOrigin(p style.Property) (OriginT, error) {
	fields := strings.Fields(string(p))
	if len(fields) == 0 {
		return CenterOrigin(), nil
	}
	if len(fields) > 3 {
		return OriginT{}, fmt.Errorf("illegal origin %q", p)
	}
	if fields[0] == "top" || fields[0] == "bottom" {
		if len(fields) == 1 {
			fields = []string{"center", fields[0]}
		} else {
			fields[0], fields[1] = fields[1], fields[0]
		}
	}
	component := func(s string) (DimenT, error) {
		if d, ok := originKeywords[s]; ok {
			return d, nil
		}
		return ParseDimen(style.Property(s))
	}
	origin := CenterOrigin()
	var err error
	if origin.X, err = component(fields[0]); err != nil {
		return OriginT{}, err
	}
	if len(fields) > 1 {
		if origin.Y, err = component(fields[1]); err != nil {
			return OriginT{}, err
		}
	}
	if len(fields) > 2 {
		z, err := ParseDimen(style.Property(fields[2]))
		if err != nil {
			return OriginT{}, err
		}
		origin.Z = z.ResolveLayout(0, 0).ToFloat()
	}
	return origin, nil
}

// Resolve computes the origin point for a reference box.
func (o OriginT) Resolve(box geom.FloatSize) geom.FloatPoint3D {
	return geom.FloatPoint3D{
		X: o.X.ResolveLayout(geom.Px(box.Width), 0).ToFloat(),
		Y: o.Y.ResolveLayout(geom.Px(box.Height), 0).ToFloat(),
		Z: o.Z,
	}
}

// --- Filters ----------------------------------------------------------------

// FilterFunc is a single CSS filter function.
type FilterFunc struct {
	Name   string
	Type   scene.FilterType
	Amount float64
}

// ParseFilter reads a filter property. Blur and drop-shadow amounts are
// radii in pixels, color functions carry their numeric argument.
func ParseFilter(p style.Property) ([]FilterFunc, error) {
	s := strings.TrimSpace(string(p))
	if s == "" || s == "none" {
		return nil, nil
	}
	fns, err := splitFunctions(s)
	if err != nil {
		return nil, err
	}
	filters := make([]FilterFunc, 0, len(fns))
	for _, fn := range fns {
		f := FilterFunc{Name: fn.name}
		switch fn.name {
		case "blur":
			dims, err := fn.lengths(1, 1)
			if err != nil {
				return nil, err
			}
			f.Type = scene.FilterBlur
			f.Amount = dims[0].ResolveLayout(0, 0).ToFloat()
		case "drop-shadow":
			// offset-x offset-y [blur-radius] [color]
			if len(fn.args) < 2 {
				return nil, fmt.Errorf("drop-shadow: expecting offsets")
			}
			f.Type = scene.FilterDropShadow
			if len(fn.args) > 2 {
				if d, err := ParseDimen(style.Property(fn.args[2])); err == nil {
					f.Amount = d.ResolveLayout(0, 0).ToFloat()
				}
			}
		case "grayscale", "sepia", "saturate", "invert", "opacity", "brightness", "contrast":
			nums, err := fn.numbers(0, 1)
			if err != nil {
				return nil, err
			}
			f.Type, f.Amount = scene.FilterColorMatrix, 1
			if len(nums) == 1 {
				f.Amount = nums[0]
			}
		case "hue-rotate":
			deg, err := fn.angles(1, 1)
			if err != nil {
				return nil, err
			}
			f.Type, f.Amount = scene.FilterColorMatrix, deg[0]
		default:
			return nil, fmt.Errorf("unsupported filter function %q", fn.name)
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// ParseReflection reads -webkit-box-reflect. Any value other than none
// establishes a reflection.
func ParseReflection(p style.Property) bool {
	s := strings.TrimSpace(string(p))
	return s != "" && s != "none"
}

// --- Blending ---------------------------------------------------------------

var blendModes = map[string]scene.BlendMode{
	"normal":      scene.BlendNormal,
	"multiply":    scene.BlendMultiply,
	"screen":      scene.BlendScreen,
	"overlay":     scene.BlendOverlay,
	"darken":      scene.BlendDarken,
	"lighten":     scene.BlendLighten,
	"color-dodge": scene.BlendColorDodge,
	"color-burn":  scene.BlendColorBurn,
	"hard-light":  scene.BlendHardLight,
	"soft-light":  scene.BlendSoftLight,
	"difference":  scene.BlendDifference,
	"exclusion":   scene.BlendExclusion,
	"hue":         scene.BlendHue,
	"saturation":  scene.BlendSaturation,
	"color":       scene.BlendColor,
	"luminosity":  scene.BlendLuminosity,
}

// ParseBlendMode reads mix-blend-mode.
func ParseBlendMode(p style.Property) (scene.BlendMode, error) {
	s := strings.TrimSpace(string(p))
	if s == "" {
		return scene.BlendNormal, nil
	}
	if mode, ok := blendModes[s]; ok {
		return mode, nil
	}
	return scene.BlendNormal, fmt.Errorf("unsupported blend mode %q", s)
}

// --- Masks ------------------------------------------------------------------

// MaskT is the value of CSS property mask.
type MaskT uint8

// Mask values.
const (
	MaskNone MaskT = iota
	MaskAlpha
	MaskLuminance
)

// ParseMask reads a mask or mask-image property. Any image reference
// establishes a mask; keyword luminance selects luminance masking.
func ParseMask(p style.Property) MaskT {
	s := strings.TrimSpace(string(p))
	switch {
	case s == "" || s == "none":
		return MaskNone
	case strings.Contains(s, "luminance"):
		return MaskLuminance
	}
	return MaskAlpha
}

// --- Clip -------------------------------------------------------------------

// ClipT is the value of the CSS 2 clip property.
type ClipT struct {
	Top, Right, Bottom, Left DimenT
	isSet                    bool
}

// IsAuto is true if no clip rectangle is set.
func (c ClipT) IsAuto() bool {
	return !c.isSet
}

// ParseClip reads a clip property of the form rect(top, right, bottom, left).
func ParseClip(p style.Property) (ClipT, error) {
	s := strings.TrimSpace(string(p))
	if s == "" || s == "auto" {
		return ClipT{}, nil
	}
	fns, err := splitFunctions(s)
	if err != nil {
		return ClipT{}, err
	}
	if len(fns) != 1 || fns[0].name != "rect" {
		return ClipT{}, fmt.Errorf("illegal clip %q", s)
	}
	dims, err := fns[0].lengths(4, 4)
	if err != nil {
		return ClipT{}, err
	}
	return ClipT{Top: dims[0], Right: dims[1], Bottom: dims[2], Left: dims[3], isSet: true}, nil
}

// Rect computes the clip rectangle relative to the border box of a box of
// the given size. Auto edges coincide with the border box.
func (c ClipT) Rect(size geom.LayoutSize) geom.LayoutRect {
	top := c.Top.ResolveLayout(0, 0)
	left := c.Left.ResolveLayout(0, 0)
	right := c.Right.ResolveLayout(0, size.Width)
	bottom := c.Bottom.ResolveLayout(0, size.Height)
	return geom.LayoutRect{
		Origin: geom.LayoutPoint{X: left, Y: top},
		Size:   geom.LayoutSize{Width: right - left, Height: bottom - top},
	}
}

// --- will-change ------------------------------------------------------------

// WillChange is a set of properties announced by will-change.
type WillChange uint8

// will-change flags.
const (
	WillChangeTransform WillChange = 1 << iota
	WillChangeOpacity
	WillChangeFilter
	WillChangeScrollPosition
)

// ParseWillChange reads a comma separated will-change list.
func ParseWillChange(p style.Property) WillChange {
	var wc WillChange
	for _, item := range strings.Split(string(p), ",") {
		switch strings.TrimSpace(item) {
		case "transform":
			wc |= WillChangeTransform
		case "opacity":
			wc |= WillChangeOpacity
		case "filter":
			wc |= WillChangeFilter
		case "scroll-position":
			wc |= WillChangeScrollPosition
		}
	}
	return wc
}

// Has checks for a flag.
func (wc WillChange) Has(flag WillChange) bool {
	return wc&flag != 0
}

func matrixFromCSS(a, b, c, d, e, f float64) gg.Matrix {
	return gg.Matrix{A: a, B: c, C: e, D: b, E: d, F: f}
}
