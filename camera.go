// Package camview computes a camera's visibility frustum from intrinsic
// parameters and a rigid-body pose, and answers point containment queries
// against it. It is intended for restricting per-point or per-voxel
// processing to the region currently observed by a camera.
package camview

import (
	"errors"
	"fmt"
	"math"

	"github.com/seqsense/pcgol/mat"
)

// Frustum corner indices in the camera frame. The camera looks along +X;
// "right" is +Y and "top" is +Z.
const (
	cornerNearTopRight = iota
	cornerNearBottomRight
	cornerNearBottomLeft
	cornerNearTopLeft
	cornerFarTopRight
	cornerFarBottomRight
	cornerFarBottomLeft
	cornerFarTopLeft
	numCorners
)

// Bounding plane indices.
const (
	planeNear = iota
	planeFar
	planeLeft
	planeRight
	planeTop
	planeBottom
	numPlanes
)

var planeNames = [numPlanes]string{"near", "far", "left", "right", "top", "bottom"}

// planeCorners maps each bounding plane to the ordered corner triple
// defining it. Triples are wound so that the right-hand-rule normal
// points toward the frustum interior.
var planeCorners = [numPlanes][3]int{
	planeNear:   {cornerNearTopRight, cornerNearBottomLeft, cornerNearBottomRight},
	planeFar:    {cornerFarTopRight, cornerFarBottomRight, cornerFarBottomLeft},
	planeLeft:   {cornerNearTopLeft, cornerFarBottomLeft, cornerNearBottomLeft},
	planeRight:  {cornerNearTopRight, cornerFarBottomRight, cornerFarTopRight},
	planeTop:    {cornerNearTopLeft, cornerFarTopRight, cornerFarTopLeft},
	planeBottom: {cornerNearBottomLeft, cornerFarBottomLeft, cornerFarBottomRight},
}

// CameraModel is a camera's view volume: an eight-corner frustum defined
// by the intrinsics, placed in the world by the camera pose, and queried
// through six bounding planes and an axis-aligned bounding box.
//
// Pose updates recompute the planes and the AABB together; queries between
// updates observe a consistent snapshot. CameraModel is not safe for
// concurrent use.
type CameraModel struct {
	corners     [numCorners]mat.Vec3
	initialized bool

	extrinsic mat.Mat4
	pose      mat.Mat4

	planes [numPlanes]Plane
	aabb   AABB
	valid  bool
}

// New creates a CameraModel with identity extrinsic and pose.
// Intrinsics and a pose must be set before view queries.
func New() *CameraModel {
	return &CameraModel{
		extrinsic: mat.Translate(0, 0, 0),
		pose:      mat.Translate(0, 0, 0),
	}
}

// SetIntrinsicsFromFoV defines the view volume by horizontal and vertical
// fields of view in radians and a near/far distance range. The derived
// planes and AABB refresh on the next pose update.
func (c *CameraModel) SetIntrinsicsFromFoV(horizontalFoV, verticalFoV, minDistance, maxDistance float32) error {
	if horizontalFoV <= 0 || math.Pi <= horizontalFoV {
		return errors.New("horizontal fov must be in (0, pi)")
	}
	if verticalFoV <= 0 || math.Pi <= verticalFoV {
		return errors.New("vertical fov must be in (0, pi)")
	}
	if minDistance <= 0 || maxDistance <= minDistance {
		return errors.New("distance range must satisfy 0 < min < max")
	}
	tanH := float32(math.Tan(float64(horizontalFoV) / 2))
	tanV := float32(math.Tan(float64(verticalFoV) / 2))
	nearY, nearZ := minDistance*tanH, minDistance*tanV
	farY, farZ := maxDistance*tanH, maxDistance*tanV
	c.corners = [numCorners]mat.Vec3{
		cornerNearTopRight:    {minDistance, nearY, nearZ},
		cornerNearBottomRight: {minDistance, nearY, -nearZ},
		cornerNearBottomLeft:  {minDistance, -nearY, -nearZ},
		cornerNearTopLeft:     {minDistance, -nearY, nearZ},
		cornerFarTopRight:     {maxDistance, farY, farZ},
		cornerFarBottomRight:  {maxDistance, farY, -farZ},
		cornerFarBottomLeft:   {maxDistance, -farY, -farZ},
		cornerFarTopLeft:      {maxDistance, -farY, farZ},
	}
	c.initialized = true
	return nil
}

// SetIntrinsicsFromFocalLength defines the view volume by an image
// resolution in pixels and a focal length: each field of view is
// 2*atan(size/(2*focalLength)).
func (c *CameraModel) SetIntrinsicsFromFocalLength(width, height, focalLength, minDistance, maxDistance float32) error {
	if width <= 0 || height <= 0 {
		return errors.New("resolution must be >0")
	}
	if focalLength <= 0 {
		return errors.New("focal length must be >0")
	}
	horizontalFoV := 2 * float32(math.Atan(float64(width)/(2*float64(focalLength))))
	verticalFoV := 2 * float32(math.Atan(float64(height)/(2*float64(focalLength))))
	return c.SetIntrinsicsFromFoV(horizontalFoV, verticalFoV, minDistance, maxDistance)
}

// SetExtrinsics sets the transform mapping body-frame coordinates into
// the camera frame, used to convert between body poses and camera poses.
func (c *CameraModel) SetExtrinsics(extrinsic mat.Mat4) {
	c.extrinsic = extrinsic
}

// SetCameraPose sets the camera-to-world pose and recomputes the bounding
// planes and the AABB. Before intrinsics are set, the pose is stored and
// recomputation is skipped. On error the previous planes and AABB are
// retained.
func (c *CameraModel) SetCameraPose(pose mat.Mat4) error {
	c.pose = pose
	return c.recompute()
}

// SetBodyPose sets the pose of the body carrying the camera.
func (c *CameraModel) SetBodyPose(pose mat.Mat4) error {
	return c.SetCameraPose(pose.MulAffine(c.extrinsic.InvAffine()))
}

// CameraPose returns the current camera-to-world pose.
func (c *CameraModel) CameraPose() mat.Mat4 {
	return c.pose
}

// BodyPose returns the pose of the body carrying the camera.
func (c *CameraModel) BodyPose() mat.Mat4 {
	return c.pose.MulAffine(c.extrinsic)
}

// Ready reports whether the bounding planes and AABB are consistent:
// intrinsics are set and a pose update has succeeded.
func (c *CameraModel) Ready() bool {
	return c.valid
}

// AABB returns the axis-aligned bounding box of the view volume computed
// by the last pose update, or the zero box before Ready. It encloses the
// frustum, so it can pre-filter candidates for IsPointInView.
func (c *CameraModel) AABB() AABB {
	return c.aabb
}

// IsPointInView reports whether p is inside the view volume. It is false
// for every point until Ready.
func (c *CameraModel) IsPointInView(p mat.Vec3) bool {
	if !c.valid {
		return false
	}
	for i := range c.planes {
		if !c.planes[i].IsPointInside(p) {
			return false
		}
	}
	return true
}

func (c *CameraModel) recompute() error {
	if !c.initialized {
		return nil
	}
	var transformed [numCorners]mat.Vec3
	for i, p := range c.corners {
		transformed[i] = c.pose.TransformAffine(p)
	}

	var planes [numPlanes]Plane
	for i, t := range planeCorners {
		p, err := NewPlaneFromPoints(transformed[t[0]], transformed[t[1]], transformed[t[2]])
		if err != nil {
			return fmt.Errorf("%s plane: %w", planeNames[i], err)
		}
		planes[i] = p
		tracef("%s plane: normal: %v, distance: %f", planeNames[i], p.Normal, p.Distance)
	}

	aabb := AABB{
		Min: mat.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: mat.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	for _, p := range transformed {
		aabb.Min = vec3Min(aabb.Min, p)
		aabb.Max = vec3Max(aabb.Max, p)
	}
	tracef("aabb: min: %v, max: %v", aabb.Min, aabb.Max)

	c.planes = planes
	c.aabb = aabb
	c.valid = true
	return nil
}
