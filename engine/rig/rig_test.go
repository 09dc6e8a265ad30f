package rig

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/rig-go/engine/model"
	"github.com/Carmen-Shannon/rig-go/engine/topology"
)

// fullBodyPose returns a complete joint snapshot for the default body
// topology, standing upright at the origin.
func fullBodyPose() map[string]model.Transform {
	return map[string]model.Transform{
		topology.JointHips:          transformAt(0, 0.9, 0),
		topology.JointSpine:         transformAt(0, 1.3, 0),
		topology.JointNeck:          transformAt(0, 1.5, 0),
		topology.JointHead:          transformAt(0, 1.65, 0),
		topology.JointLeftShoulder:  transformAt(-0.18, 1.45, 0),
		topology.JointLeftArm:       transformAt(-0.35, 1.42, 0),
		topology.JointLeftForearm:   transformAt(-0.38, 1.15, 0),
		topology.JointLeftHand:      transformAt(-0.40, 0.90, 0),
		topology.JointRightShoulder: transformAt(0.18, 1.45, 0),
		topology.JointRightArm:      transformAt(0.35, 1.42, 0),
		topology.JointRightForearm:  transformAt(0.38, 1.15, 0),
		topology.JointRightHand:     transformAt(0.40, 0.90, 0),
		topology.JointLeftUpLeg:     transformAt(-0.10, 0.85, 0),
		topology.JointLeftLeg:       transformAt(-0.11, 0.45, 0),
		topology.JointLeftFoot:      transformAt(-0.12, 0.05, 0),
		topology.JointRightUpLeg:    transformAt(0.10, 0.85, 0),
		topology.JointRightLeg:      transformAt(0.11, 0.45, 0),
		topology.JointRightFoot:     transformAt(0.12, 0.05, 0),
	}
}

func TestNewRig(t *testing.T) {
	r, err := NewRig(fullBodyPose())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table := r.Topology()
	if got := len(r.BoneGeometries()); got != table.BoneCount() {
		t.Errorf("bone cache has %d entries, want %d", got, table.BoneCount())
	}
	for _, b := range table.Bones() {
		if _, ok := r.BoneGeometry(b.Name); !ok {
			t.Errorf("bone %q missing from cache", b.Name)
		}
	}

	snap := r.Snapshot()
	if snap == nil {
		t.Fatal("no snapshot published after construction")
	}
	if len(snap.Bones) != table.BoneCount() {
		t.Errorf("snapshot has %d bones, want %d", len(snap.Bones), table.BoneCount())
	}
}

func TestNewRigMissingJoint(t *testing.T) {
	pose := fullBodyPose()
	delete(pose, topology.JointLeftHand)

	r, err := NewRig(pose)
	if r != nil {
		t.Error("partial rig returned alongside an error")
	}

	var missing *MissingJointError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingJointError", err)
	}
	if missing.Joint != topology.JointLeftHand {
		t.Errorf("missing joint = %q, want %q", missing.Joint, topology.JointLeftHand)
	}
}

func TestNewRigMissingJointReportsTopologyOrder(t *testing.T) {
	// With nothing supplied, the first joint in topology order is reported.
	_, err := NewRig(map[string]model.Transform{})

	var missing *MissingJointError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingJointError", err)
	}
	if missing.Joint != topology.JointHips {
		t.Errorf("missing joint = %q, want %q", missing.Joint, topology.JointHips)
	}
}

func TestNewRigVocabularyMismatch(t *testing.T) {
	table, err := topology.NewTable(topology.WithBone("a", "b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = NewRig(
		map[string]model.Transform{"a": transformAt(0, 0, 0), "b": transformAt(0, 1, 0)},
		WithTopology(table),
		WithVocabulary([]string{"a"}),
	)
	if err == nil {
		t.Fatal("expected vocabulary validation error")
	}
}

func TestUpdatePartialInput(t *testing.T) {
	r, err := NewRig(fullBodyPose())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	headBefore, _ := r.JointTransform(topology.JointHead)
	headBone := topology.BoneName(topology.JointNeck, topology.JointHead)
	headBoneBefore, _ := r.BoneGeometry(headBone)

	// Move only the left hand; every other joint keeps its transform.
	r.Update(map[string]model.Transform{
		topology.JointLeftHand: transformAt(-0.5, 1.0, 0.2),
	})

	hand, ok := r.JointTransform(topology.JointLeftHand)
	if !ok || hand.Translation != [3]float32{-0.5, 1.0, 0.2} {
		t.Errorf("left hand = %+v, want translation [-0.5 1 0.2]", hand)
	}

	headAfter, _ := r.JointTransform(topology.JointHead)
	if headAfter != headBefore {
		t.Errorf("head transform changed: %+v vs %+v", headAfter, headBefore)
	}
	headBoneAfter, _ := r.BoneGeometry(headBone)
	if headBoneAfter != headBoneBefore {
		t.Errorf("head bone geometry changed: %+v vs %+v", headBoneAfter, headBoneBefore)
	}

	// The forearm-hand bone tracks the moved joint.
	forearmBone := topology.BoneName(topology.JointLeftForearm, topology.JointLeftHand)
	g, _ := r.BoneGeometry(forearmBone)
	forearm, _ := r.JointTransform(topology.JointLeftForearm)
	wantCenter := [3]float32{
		(forearm.Translation[0] + hand.Translation[0]) * 0.5,
		(forearm.Translation[1] + hand.Translation[1]) * 0.5,
		(forearm.Translation[2] + hand.Translation[2]) * 0.5,
	}
	if g.Center != wantCenter {
		t.Errorf("forearm bone center = %v, want %v", g.Center, wantCenter)
	}
}

func TestUpdateIdempotent(t *testing.T) {
	r, err := NewRig(fullBodyPose())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input := map[string]model.Transform{
		topology.JointHead: transformAt(0.1, 1.7, 0),
	}
	r.Update(input)
	first := r.BoneGeometries()

	r.Update(input)
	second := r.BoneGeometries()

	if len(first) != len(second) {
		t.Fatalf("bone counts differ: %d vs %d", len(first), len(second))
	}
	for name, g := range first {
		if second[name] != g {
			t.Errorf("bone %q changed on identical input: %+v vs %+v", name, g, second[name])
		}
	}
}

func TestUpdateIgnoresUnknownJoints(t *testing.T) {
	r, err := NewRig(fullBodyPose())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := r.JointTransforms()
	r.Update(map[string]model.Transform{
		"left_toes_joint": transformAt(0, 0, 0.1),
	})
	after := r.JointTransforms()

	if _, ok := r.JointTransform("left_toes_joint"); ok {
		t.Error("unknown joint entered the registry")
	}
	if len(before) != len(after) {
		t.Errorf("registry size changed: %d vs %d", len(before), len(after))
	}
}

func TestRootTransform(t *testing.T) {
	r, err := NewRig(fullBodyPose(), WithRootTransform(transformAt(1, 0, 2)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := r.RootTransform(); got.Translation != [3]float32{1, 0, 2} {
		t.Errorf("root = %+v, want translation [1 0 2]", got)
	}

	// A new root takes effect in the snapshot published by the next update.
	r.SetRootTransform(transformAt(3, 0, 4))
	if snap := r.Snapshot(); snap.Root.Translation != [3]float32{1, 0, 2} {
		t.Errorf("snapshot root = %v before update, want [1 0 2]", snap.Root.Translation)
	}
	r.Update(nil)
	if snap := r.Snapshot(); snap.Root.Translation != [3]float32{3, 0, 4} {
		t.Errorf("snapshot root = %v after update, want [3 0 4]", snap.Root.Translation)
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	r, err := NewRig(fullBodyPose())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	old := r.Snapshot()
	oldHead := old.Joints[topology.JointHead]

	r.Update(map[string]model.Transform{
		topology.JointHead: transformAt(0.5, 1.8, 0),
	})

	if got := old.Joints[topology.JointHead]; got != oldHead {
		t.Errorf("published snapshot mutated by a later update: %+v vs %+v", got, oldHead)
	}
	if r.Snapshot() == old {
		t.Error("update did not publish a fresh snapshot")
	}
}

func TestDeriveAllDoesNotAllocate(t *testing.T) {
	r, err := NewRig(fullBodyPose())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The derivation loop runs every frame over the cached bone list and
	// existing map entries; any per-cycle heap allocation is a regression.
	impl := r.(*rigImpl)
	allocs := testing.AllocsPerRun(100, func() {
		impl.deriveAll()
	})
	if allocs != 0 {
		t.Errorf("deriveAll allocated %v objects per run, want 0", allocs)
	}
}

func TestMissingJointErrorMessage(t *testing.T) {
	err := &MissingJointError{Joint: "hips_joint"}
	want := `rig: missing transform for joint "hips_joint"`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
