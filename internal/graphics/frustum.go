package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Frustum culling margin in blocks (inflates AABBs before testing)
var frustumMargin float32 = 1.0

type plane struct {
	a, b, c, d float32
}

// Frustum is a set of six inward-facing planes.
type Frustum struct {
	planes [6]plane
}

// NewFrustum builds a frustum from the combined projection*view matrix.
func NewFrustum(clip mgl32.Mat4) *Frustum {
	return &Frustum{planes: extractFrustumPlanes(clip)}
}

// extractFrustumPlanes builds six planes from the combined projection*view matrix.
// Planes are returned in order: left, right, bottom, top, near, far.
func extractFrustumPlanes(clip mgl32.Mat4) [6]plane {
	// Matrix is in column-major order in mgl32
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	return [6]plane{
		normalizePlane(plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03}), // left
		normalizePlane(plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03}), // right
		normalizePlane(plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13}), // bottom
		normalizePlane(plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13}), // top
		normalizePlane(plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23}), // near
		normalizePlane(plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23}), // far
	}
}

func normalizePlane(p plane) plane {
	l := float32(math.Sqrt(float64(p.a*p.a + p.b*p.b + p.c*p.c)))
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

// IsBoxVisible tests an axis-aligned box, inflated by the culling margin,
// against every plane. Boxes straddling a plane count as visible.
func (f *Frustum) IsBoxVisible(minX, minY, minZ, maxX, maxY, maxZ float32) bool {
	minX, minY, minZ = minX-frustumMargin, minY-frustumMargin, minZ-frustumMargin
	maxX, maxY, maxZ = maxX+frustumMargin, maxY+frustumMargin, maxZ+frustumMargin

	for _, p := range f.planes {
		// Select the positive vertex for this plane normal
		px := maxX
		if p.a < 0 {
			px = minX
		}
		py := maxY
		if p.b < 0 {
			py = minY
		}
		pz := maxZ
		if p.c < 0 {
			pz = minZ
		}
		// If positive vertex is outside, AABB is outside
		if p.a*px+p.b*py+p.c*pz+p.d < 0 {
			return false
		}
	}
	return true
}

// IsPointVisible reports whether a point lies inside the frustum.
func (f *Frustum) IsPointVisible(p mgl32.Vec3) bool {
	for _, pl := range f.planes {
		if pl.a*p.X()+pl.b*p.Y()+pl.c*p.Z()+pl.d < 0 {
			return false
		}
	}
	return true
}
