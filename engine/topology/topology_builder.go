package topology

// TableBuilderOption is a functional option for configuring a Table.
// Use the With* functions to create options.
type TableBuilderOption func(t *tableImpl)

// WithBone appends a bone connecting two joints. The bone's name is derived
// deterministically from the joint pair; definition order is preserved.
//
// Parameters:
//   - from: the parent-side joint name
//   - to: the child-side joint name
//
// Returns:
//   - TableBuilderOption: option function to apply
func WithBone(from, to string) TableBuilderOption {
	return func(t *tableImpl) {
		t.bones = append(t.bones, BoneSpec{
			Name: BoneName(from, to),
			From: from,
			To:   to,
		})
	}
}

// WithRoot designates the skeleton's root joint. When omitted, the root
// defaults to the first from-joint that never appears as a child.
//
// Parameters:
//   - joint: the root joint name
//
// Returns:
//   - TableBuilderOption: option function to apply
func WithRoot(joint string) TableBuilderOption {
	return func(t *tableImpl) {
		t.root = joint
	}
}
