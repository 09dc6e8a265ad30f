package rig

import (
	"github.com/Carmen-Shannon/rig-go/common"
	"github.com/Carmen-Shannon/rig-go/engine/model"
)

// boneAxis is the bone mesh's long axis in its local frame. Derived rotations
// aim this axis from the bone's center toward the `to` joint.
var boneAxis = [3]float32{0, 1, 0}

// Derive computes a bone's geometry from its two joint transforms.
// Pure and deterministic: identical inputs always yield bit-identical output,
// so it can be tested without constructing a rig.
//
// Center is the midpoint of the two positions, length their Euclidean
// distance, and rotation the quaternion aiming the bone's +Y axis from the
// center toward the `to` joint. Coincident joints are a defined degenerate
// state: zero length and identity rotation, never NaN.
//
// Parameters:
//   - from: the parent-side joint transform
//   - to: the child-side joint transform
//
// Returns:
//   - model.BoneGeometry: the derived center, rotation, and length
func Derive(from, to model.Transform) model.BoneGeometry {
	geometry := model.BoneGeometry{
		Center:   common.Midpoint(from.Translation, to.Translation),
		Rotation: common.QuatIdentity(),
		Length:   common.Distance(from.Translation, to.Translation),
	}

	direction, ok := common.Normalize3(common.Sub3(to.Translation, from.Translation))
	if !ok {
		return geometry
	}

	geometry.Rotation = common.QuatFromTo(boneAxis, direction)
	return geometry
}
