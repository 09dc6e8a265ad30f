package model

// --- Transform & Bone Types ---

// Transform represents a decomposed spatial transform in the skeleton's
// root-relative reference frame.
type Transform struct {
	// Translation is the position offset.
	Translation [3]float32

	// Rotation is the orientation as a quaternion (x, y, z, w).
	Rotation [4]float32

	// Scale is the scale factor along each axis.
	Scale [3]float32
}

// IdentityTransform returns a Transform with zero translation, identity
// rotation, and unit scale.
//
// Returns:
//   - Transform: the identity transform
func IdentityTransform() Transform {
	return Transform{
		Translation: [3]float32{0, 0, 0},
		Rotation:    [4]float32{0, 0, 0, 1},
		Scale:       [3]float32{1, 1, 1},
	}
}

// BoneGeometry is the fully derived spatial placement of a single bone.
// Bones never carry their own transform lifecycle; every field is recomputed
// from the bone's two joints on each update.
type BoneGeometry struct {
	// Center is the midpoint between the two joint positions.
	Center [3]float32

	// Rotation is the orientation aiming the bone's long axis (+Y) from
	// Center toward the `to` joint, as a quaternion (x, y, z, w).
	// Identity when the bone is degenerate (zero length).
	Rotation [4]float32

	// Length is the Euclidean distance between the two joint positions.
	// Zero for degenerate bones; never negative.
	Length float32
}
