package topology

import "fmt"

// Canonical body-tracking joint names. These follow the naming convention of
// common body-tracking sensors (root-relative, parent-first ordering).
const (
	JointHips          = "hips_joint"
	JointSpine         = "spine_7_joint"
	JointNeck          = "neck_1_joint"
	JointHead          = "head_joint"
	JointLeftShoulder  = "left_shoulder_1_joint"
	JointLeftArm       = "left_arm_joint"
	JointLeftForearm   = "left_forearm_joint"
	JointLeftHand      = "left_hand_joint"
	JointRightShoulder = "right_shoulder_1_joint"
	JointRightArm      = "right_arm_joint"
	JointRightForearm  = "right_forearm_joint"
	JointRightHand     = "right_hand_joint"
	JointLeftUpLeg     = "left_upLeg_joint"
	JointLeftLeg       = "left_leg_joint"
	JointLeftFoot      = "left_foot_joint"
	JointRightUpLeg    = "right_upLeg_joint"
	JointRightLeg      = "right_leg_joint"
	JointRightFoot     = "right_foot_joint"
)

// BodyJointNames is the canonical joint vocabulary of the default body
// topology, in parent-first order.
var BodyJointNames = []string{
	JointHips,
	JointSpine,
	JointNeck,
	JointHead,
	JointLeftShoulder,
	JointLeftArm,
	JointLeftForearm,
	JointLeftHand,
	JointRightShoulder,
	JointRightArm,
	JointRightForearm,
	JointRightHand,
	JointLeftUpLeg,
	JointLeftLeg,
	JointLeftFoot,
	JointRightUpLeg,
	JointRightLeg,
	JointRightFoot,
}

// bodyBones enumerates the 17 bones of the default human body rig: the
// spine/neck/head chain, both shoulder+arm chains, and both leg chains,
// rooted at the hips.
var bodyBones = [][2]string{
	{JointHips, JointSpine},
	{JointSpine, JointNeck},
	{JointNeck, JointHead},
	{JointSpine, JointLeftShoulder},
	{JointLeftShoulder, JointLeftArm},
	{JointLeftArm, JointLeftForearm},
	{JointLeftForearm, JointLeftHand},
	{JointSpine, JointRightShoulder},
	{JointRightShoulder, JointRightArm},
	{JointRightArm, JointRightForearm},
	{JointRightForearm, JointRightHand},
	{JointHips, JointLeftUpLeg},
	{JointLeftUpLeg, JointLeftLeg},
	{JointLeftLeg, JointLeftFoot},
	{JointHips, JointRightUpLeg},
	{JointRightUpLeg, JointRightLeg},
	{JointRightLeg, JointRightFoot},
}

// DefaultBodyTable builds the standard 17-bone human body topology rooted at
// the hips joint. The table is static data; construction cannot fail for the
// built-in bone set, so any error here is a programming bug and panics.
//
// Returns:
//   - Table: the default body topology
func DefaultBodyTable() Table {
	options := make([]TableBuilderOption, 0, len(bodyBones)+1)
	options = append(options, WithRoot(JointHips))
	for _, b := range bodyBones {
		options = append(options, WithBone(b[0], b[1]))
	}
	t, err := NewTable(options...)
	if err != nil {
		panic(fmt.Sprintf("topology: default body table is invalid: %v", err))
	}
	return t
}
