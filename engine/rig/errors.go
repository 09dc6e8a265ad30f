package rig

import "fmt"

// MissingJointError reports that rig construction was attempted without a
// transform for a joint the topology table requires. The rig is not created;
// the caller should retry once the tracking source supplies complete data.
type MissingJointError struct {
	// Joint is the first unresolved joint name, in topology order.
	Joint string
}

func (e *MissingJointError) Error() string {
	return fmt.Sprintf("rig: missing transform for joint %q", e.Joint)
}
