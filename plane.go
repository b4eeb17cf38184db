package camview

import (
	"errors"

	"github.com/seqsense/pcgol/mat"
)

// ErrDegeneratePlane is returned when a plane is constructed from
// collinear or coincident points.
var ErrDegeneratePlane = errors.New("degenerate plane")

// degenerateSinSq is the squared sine of the minimum angle between the
// edge vectors of a valid plane triangle.
const degenerateSinSq = 1e-8

// Plane is an oriented half-space boundary. A point p is on the inside
// iff dot(p, Normal) >= Distance.
type Plane struct {
	Normal   mat.Vec3
	Distance float32
}

// NewPlane creates a Plane from a unit normal and a distance from the
// origin along the normal.
func NewPlane(normal mat.Vec3, distance float32) Plane {
	return Plane{Normal: normal, Distance: distance}
}

// NewPlaneFromPoints creates the plane through p1, p2 and p3.
// The normal follows the right-hand rule on the edges p1->p2 and p1->p3.
func NewPlaneFromPoints(p1, p2, p3 mat.Vec3) (Plane, error) {
	v12 := p2.Sub(p1)
	v13 := p3.Sub(p1)
	cross := v12.Cross(v13)
	if cross.NormSq() <= v12.NormSq()*v13.NormSq()*degenerateSinSq {
		return Plane{}, ErrDegeneratePlane
	}
	normal := cross.Normalized()
	return Plane{Normal: normal, Distance: normal.Dot(p1)}, nil
}

// IsPointInside reports whether p is in the closed half-space on the
// normal side of the plane.
func (p Plane) IsPointInside(q mat.Vec3) bool {
	return q.Dot(p.Normal) >= p.Distance
}
