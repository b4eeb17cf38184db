package camview

import (
	"github.com/seqsense/pcgol/mat"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mat.Vec3
}

// IsValid reports whether the box is non-empty on every axis.
func (b AABB) IsValid() bool {
	return !(b.Min[0] > b.Max[0] ||
		b.Min[1] > b.Max[1] ||
		b.Min[2] > b.Max[2])
}

// IsInside reports whether v is inside the closed box.
func (b AABB) IsInside(v mat.Vec3) bool {
	return !(v[0] < b.Min[0] ||
		v[1] < b.Min[1] ||
		v[2] < b.Min[2] ||
		b.Max[0] < v[0] ||
		b.Max[1] < v[1] ||
		b.Max[2] < v[2])
}

// Intersect returns the intersection of the two boxes.
// The result may be invalid if the boxes are disjoint.
func (b AABB) Intersect(o AABB) AABB {
	return AABB{
		Min: vec3Max(b.Min, o.Min),
		Max: vec3Min(b.Max, o.Max),
	}
}

func vec3Min(a, b mat.Vec3) mat.Vec3 {
	var out mat.Vec3
	for i := range out {
		if a[i] < b[i] {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}
	return out
}

func vec3Max(a, b mat.Vec3) mat.Vec3 {
	var out mat.Vec3
	for i := range out {
		if a[i] > b[i] {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}
	return out
}
