package geom

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"
)

// Matrix is a 4×4 transformation matrix operating on column vectors.
//
//	| m00 m01 m02 m03 |   | x |
//	| m10 m11 m12 m13 | * | y |
//	| m20 m21 m22 m23 |   | z |
//	| m30 m31 m32 m33 |   | 1 |
//
// Matrix is a value type and comparable with ==, which is what property
// nodes rely on for change detection.
type Matrix struct {
	m [4][4]float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	var mx Matrix
	for i := 0; i < 4; i++ {
		mx.m[i][i] = 1
	}
	return mx
}

// TranslationMatrix creates a 2D translation.
func TranslationMatrix(x, y float64) Matrix {
	return Translation3dMatrix(x, y, 0)
}

// Translation3dMatrix creates a 3D translation.
func Translation3dMatrix(x, y, z float64) Matrix {
	mx := Identity()
	mx.m[0][3], mx.m[1][3], mx.m[2][3] = x, y, z
	return mx
}

// ScaleMatrix creates a 2D scale.
func ScaleMatrix(sx, sy float64) Matrix {
	mx := Identity()
	mx.m[0][0], mx.m[1][1] = sx, sy
	return mx
}

// RotationMatrix creates a rotation around the z-axis, angle given in degrees.
func RotationMatrix(deg float64) Matrix {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	mx := Identity()
	mx.m[0][0], mx.m[0][1] = cos, -sin
	mx.m[1][0], mx.m[1][1] = sin, cos
	return mx
}

// SkewMatrix creates a skew, angles given in degrees.
func SkewMatrix(degX, degY float64) Matrix {
	mx := Identity()
	mx.m[0][1] = math.Tan(degX * math.Pi / 180)
	mx.m[1][0] = math.Tan(degY * math.Pi / 180)
	return mx
}

// FromAffine lifts a 2D affine matrix into 3D space.
func FromAffine(a gg.Matrix) Matrix {
	mx := Identity()
	mx.m[0][0], mx.m[0][1], mx.m[0][3] = a.A, a.B, a.C
	mx.m[1][0], mx.m[1][1], mx.m[1][3] = a.D, a.E, a.F
	return mx
}

// At returns the element at row r and column c.
func (mx Matrix) At(r, c int) float64 {
	return mx.m[r][c]
}

// Multiply returns mx * other. When mapping points, other is applied first.
func (mx Matrix) Multiply(other Matrix) Matrix {
	var p Matrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += mx.m[r][k] * other.m[k][c]
			}
			p.m[r][c] = s
		}
	}
	return p
}

// Translate post-multiplies a translation, i.e. the translation is applied
// before mx.
func (mx Matrix) Translate(x, y float64) Matrix {
	return mx.Multiply(TranslationMatrix(x, y))
}

// PostTranslate pre-multiplies a translation, i.e. the translation is applied
// after mx.
func (mx Matrix) PostTranslate(x, y float64) Matrix {
	return TranslationMatrix(x, y).Multiply(mx)
}

// ApplyPerspective post-multiplies a perspective projection with the given
// distance. Non-positive distances leave mx unchanged.
func (mx Matrix) ApplyPerspective(p float64) Matrix {
	if p <= 0 {
		return mx
	}
	persp := Identity()
	persp.m[3][2] = -1 / p
	return mx.Multiply(persp)
}

// IsIdentity is true for the identity matrix.
func (mx Matrix) IsIdentity() bool {
	return mx == Identity()
}

// IsIdentityOrTranslation is true if mx only translates.
func (mx Matrix) IsIdentityOrTranslation() bool {
	t := mx
	t.m[0][3], t.m[1][3], t.m[2][3] = 0, 0, 0
	return t.IsIdentity()
}

// Is2DAffine is true if mx neither touches the z-axis nor projects.
func (mx Matrix) Is2DAffine() bool {
	m := mx.m
	return m[0][2] == 0 && m[1][2] == 0 &&
		m[2][0] == 0 && m[2][1] == 0 && m[2][2] == 1 && m[2][3] == 0 &&
		m[3][0] == 0 && m[3][1] == 0 && m[3][2] == 0 && m[3][3] == 1
}

// Affine projects mx to a 2D affine matrix. The second return value is false
// if information has been lost.
func (mx Matrix) Affine() (gg.Matrix, bool) {
	return gg.Matrix{
		A: mx.m[0][0], B: mx.m[0][1], C: mx.m[0][3],
		D: mx.m[1][0], E: mx.m[1][1], F: mx.m[1][3],
	}, mx.Is2DAffine()
}

// Translation2D returns the 2D translation component.
func (mx Matrix) Translation2D() FloatSize {
	return FloatSize{Width: mx.m[0][3], Height: mx.m[1][3]}
}

// MapPoint maps a point in the plane z=0.
func (mx Matrix) MapPoint(p FloatPoint) FloatPoint {
	m := mx.m
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][3]
	if w != 1 && w != 0 {
		x, y = x/w, y/w
	}
	return FloatPoint{X: x, Y: y}
}

// Inverse returns the inverse of mx. If mx is not invertible, the identity is
// returned together with false.
func (mx Matrix) Inverse() (Matrix, bool) {
	if mx.Is2DAffine() {
		a, _ := mx.Affine()
		det := a.A*a.E - a.B*a.D
		if math.Abs(det) < 1e-10 {
			tracer().Debugf("matrix %v is not invertible", mx)
			return Identity(), false
		}
		return FromAffine(a.Invert()), true
	}
	// Gauss-Jordan elimination with partial pivoting
	a, inv := mx.m, Identity().m
	for c := 0; c < 4; c++ {
		pivot := c
		for r := c + 1; r < 4; r++ {
			if math.Abs(a[r][c]) > math.Abs(a[pivot][c]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][c]) < 1e-12 {
			tracer().Debugf("matrix %v is not invertible", mx)
			return Identity(), false
		}
		a[c], a[pivot] = a[pivot], a[c]
		inv[c], inv[pivot] = inv[pivot], inv[c]
		d := a[c][c]
		for k := 0; k < 4; k++ {
			a[c][k] /= d
			inv[c][k] /= d
		}
		for r := 0; r < 4; r++ {
			if r == c || a[r][c] == 0 {
				continue
			}
			f := a[r][c]
			for k := 0; k < 4; k++ {
				a[r][k] -= f * a[c][k]
				inv[r][k] -= f * inv[c][k]
			}
		}
	}
	return Matrix{m: inv}, true
}

func (mx Matrix) String() string {
	if mx.IsIdentity() {
		return "identity"
	}
	if mx.IsIdentityOrTranslation() {
		return fmt.Sprintf("translate(%g,%g,%g)", mx.m[0][3], mx.m[1][3], mx.m[2][3])
	}
	var b strings.Builder
	b.WriteString("matrix3d(")
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if r+c > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%g", mx.m[r][c])
		}
	}
	b.WriteByte(')')
	return b.String()
}
