// Package calib loads camera calibration files describing the intrinsic
// and extrinsic parameters of a camera.
package calib

import (
	"errors"
	"io"

	"github.com/seqsense/camview"
	"github.com/seqsense/pcgol/mat"
	"gopkg.in/yaml.v3"
)

// Config is a camera calibration.
type Config struct {
	Camera     CameraConfig     `yaml:"camera"`
	Extrinsics ExtrinsicsConfig `yaml:"extrinsics"`
}

// CameraConfig describes the intrinsic parameters. Exactly one of FoV and
// the FocalLength/Resolution pair must be given.
type CameraConfig struct {
	FoV         *FoVConfig `yaml:"fov,omitempty"`
	FocalLength float32    `yaml:"focal_length,omitempty"`
	Resolution  []float32  `yaml:"resolution,omitempty"`
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
}

// FoVConfig is a field of view in radians.
type FoVConfig struct {
	Horizontal float32 `yaml:"horizontal"`
	Vertical   float32 `yaml:"vertical"`
}

// ExtrinsicsConfig is the transform mapping body-frame coordinates into
// the camera frame, given as a translation and roll/pitch/yaw angles in
// radians.
type ExtrinsicsConfig struct {
	Translation []float32 `yaml:"translation,omitempty"`
	Rotation    []float32 `yaml:"rotation,omitempty"`
}

// Parse decodes a YAML calibration.
func Parse(b []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and decodes a YAML calibration.
func Load(r io.Reader) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// XYZRPY composes a transform from a translation and roll/pitch/yaw
// angles in radians, applying the translation after Rz(yaw), Ry(pitch),
// Rx(roll).
func XYZRPY(x, y, z, roll, pitch, yaw float32) mat.Mat4 {
	return mat.Translate(x, y, z).
		MulAffine(mat.Rotate(0, 0, 1, yaw)).
		MulAffine(mat.Rotate(0, 1, 0, pitch)).
		MulAffine(mat.Rotate(1, 0, 0, roll))
}

// Transform returns the extrinsics as a transform matrix.
func (e *ExtrinsicsConfig) Transform() (mat.Mat4, error) {
	if e.Translation != nil && len(e.Translation) != 3 {
		return mat.Mat4{}, errors.New("translation must have 3 elements")
	}
	if e.Rotation != nil && len(e.Rotation) != 3 {
		return mat.Mat4{}, errors.New("rotation must have 3 elements")
	}
	var t, r [3]float32
	copy(t[:], e.Translation)
	copy(r[:], e.Rotation)
	return XYZRPY(t[0], t[1], t[2], r[0], r[1], r[2]), nil
}

// Model builds a CameraModel from the calibration. The returned model
// still needs a pose update before view queries.
func (c *Config) Model() (*camview.CameraModel, error) {
	m := camview.New()

	cam := &c.Camera
	switch {
	case cam.FoV != nil && (cam.FocalLength != 0 || cam.Resolution != nil):
		return nil, errors.New("fov and focal_length are exclusive")
	case cam.FoV != nil:
		if err := m.SetIntrinsicsFromFoV(cam.FoV.Horizontal, cam.FoV.Vertical, cam.MinDistance, cam.MaxDistance); err != nil {
			return nil, err
		}
	case cam.FocalLength != 0:
		if len(cam.Resolution) != 2 {
			return nil, errors.New("resolution must have 2 elements")
		}
		if err := m.SetIntrinsicsFromFocalLength(cam.Resolution[0], cam.Resolution[1], cam.FocalLength, cam.MinDistance, cam.MaxDistance); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("camera intrinsics are not given")
	}

	ext, err := c.Extrinsics.Transform()
	if err != nil {
		return nil, err
	}
	m.SetExtrinsics(ext)
	return m, nil
}
