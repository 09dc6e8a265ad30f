package visual

import "github.com/Carmen-Shannon/rig-go/engine/topology"

// JointStyle controls how a single joint marker is rendered: sphere radius
// and RGBA color. Styling is a rendering concern and deliberately lives
// outside the topology table; the rig core never sees it.
type JointStyle struct {
	// Radius is the marker sphere radius in meters.
	Radius float32

	// Color is the marker RGBA color.
	Color [4]float32
}

// DefaultJointRadius is the fallback marker radius for joints without an
// explicit style entry.
const DefaultJointRadius float32 = 0.03

// DefaultBoneThickness is the cross-section width of bone primitives.
const DefaultBoneThickness float32 = 0.02

var (
	// DefaultJointColor is the fallback joint marker color.
	DefaultJointColor = [4]float32{0.9, 0.9, 0.9, 1}

	// DefaultBoneColor is the default bone primitive color.
	DefaultBoneColor = [4]float32{0.35, 0.75, 0.95, 1}
)

// DefaultJointStyles returns the style lookup for the default body topology:
// torso joints render larger, extremities smaller, with the root highlighted.
//
// Returns:
//   - map[string]JointStyle: joint name to style
func DefaultJointStyles() map[string]JointStyle {
	torso := JointStyle{Radius: 0.05, Color: [4]float32{0.95, 0.55, 0.2, 1}}
	limb := JointStyle{Radius: 0.03, Color: DefaultJointColor}
	extremity := JointStyle{Radius: 0.02, Color: [4]float32{0.6, 0.6, 0.6, 1}}

	return map[string]JointStyle{
		topology.JointHips:          {Radius: 0.06, Color: [4]float32{0.95, 0.3, 0.3, 1}},
		topology.JointSpine:         torso,
		topology.JointNeck:          torso,
		topology.JointHead:          {Radius: 0.07, Color: [4]float32{0.95, 0.85, 0.4, 1}},
		topology.JointLeftShoulder:  limb,
		topology.JointLeftArm:       limb,
		topology.JointLeftForearm:   limb,
		topology.JointLeftHand:      extremity,
		topology.JointRightShoulder: limb,
		topology.JointRightArm:      limb,
		topology.JointRightForearm:  limb,
		topology.JointRightHand:     extremity,
		topology.JointLeftUpLeg:     limb,
		topology.JointLeftLeg:       limb,
		topology.JointLeftFoot:      extremity,
		topology.JointRightUpLeg:    limb,
		topology.JointRightLeg:      limb,
		topology.JointRightFoot:     extremity,
	}
}
