// Package view filters point clouds against a camera's view volume.
package view

import (
	"errors"

	"github.com/seqsense/camview"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

// ErrNotReady is returned when the camera model has no consistent view
// volume yet.
var ErrNotReady = errors.New("camera model is not ready")

// Filter returns a new point cloud holding exactly the points of pp that
// are inside the view volume of m. The field layout and the non-XYZ
// attributes of the kept points are preserved.
func Filter(m *camview.CameraModel, pp *pc.PointCloud) (*pc.PointCloud, error) {
	if !m.Ready() {
		return nil, ErrNotReady
	}
	aabb := m.AABB()
	return passThrough(pp, func(p mat.Vec3) bool {
		return aabb.IsInside(p) && m.IsPointInView(p)
	})
}

// Mask returns per-point in-view flags for pp.
func Mask(m *camview.CameraModel, pp *pc.PointCloud) ([]bool, error) {
	if !m.Ready() {
		return nil, ErrNotReady
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	aabb := m.AABB()
	mask := make([]bool, pp.Points)
	for i := 0; it.IsValid(); it.Incr() {
		p := it.Vec3()
		mask[i] = aabb.IsInside(p) && m.IsPointInView(p)
		i++
	}
	return mask, nil
}

// passThrough copies the points selected by fn into a new cloud,
// copying contiguous runs of selected points at once.
func passThrough(pp *pc.PointCloud, fn func(mat.Vec3) bool) (*pc.PointCloud, error) {
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	pcNew := &pc.PointCloud{
		PointCloudHeader: pp.PointCloudHeader.Clone(),
		Data:             make([]byte, len(pp.Data)),
		Points:           pp.Points,
	}

	i, j := 0, 0
	is, js, cnt := 0, 0, 0
	n := pp.Points
loop:
	for {
		for {
			if i >= n {
				if cnt > 0 {
					pc.Copy(pcNew, js, pp, is, cnt)
				}
				break loop
			}
			if fn(it.Vec3()) {
				break
			}
			it.Incr()
			i++
			if cnt > 0 {
				pc.Copy(pcNew, js, pp, is, cnt)
				cnt = 0
			}
		}
		if cnt == 0 {
			is, js = i, j
		}
		it.Incr()
		i++
		j++
		cnt++
	}

	pcNew.Points = j
	pcNew.Width = j
	pcNew.Height = 1
	pcNew.Data = pcNew.Data[: j*pcNew.Stride() : j*pcNew.Stride()]
	return pcNew, nil
}
