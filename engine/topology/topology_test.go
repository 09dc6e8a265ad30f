package topology

import (
	"strings"
	"testing"
)

func TestBoneName(t *testing.T) {
	if got := BoneName("hips_joint", "spine_7_joint"); got != "hips_joint-spine_7_joint" {
		t.Errorf("got %q, want %q", got, "hips_joint-spine_7_joint")
	}
}

func TestNewTable(t *testing.T) {
	tests := []struct {
		name    string
		options []TableBuilderOption
		wantErr string
	}{
		{
			name:    "no bones",
			options: nil,
			wantErr: "no bones",
		},
		{
			name:    "self referencing bone",
			options: []TableBuilderOption{WithBone("a", "a")},
			wantErr: "same joint twice",
		},
		{
			name: "duplicate bone",
			options: []TableBuilderOption{
				WithBone("a", "b"),
				WithBone("a", "b"),
			},
			wantErr: "duplicate bone",
		},
		{
			name: "joint with two parents",
			options: []TableBuilderOption{
				WithBone("a", "c"),
				WithBone("b", "c"),
			},
			wantErr: "more than one parent",
		},
		{
			name: "cycle in a subtree",
			options: []TableBuilderOption{
				WithBone("root", "a"),
				WithBone("b", "c"),
				WithBone("c", "d"),
				WithBone("d", "b"),
			},
			wantErr: "cycle",
		},
		{
			name: "disconnected subtree",
			options: []TableBuilderOption{
				WithBone("root", "a"),
				WithBone("x", "y"),
			},
			wantErr: "not connected",
		},
		{
			name: "unreferenced root",
			options: []TableBuilderOption{
				WithBone("a", "b"),
				WithRoot("z"),
			},
			wantErr: "not referenced",
		},
		{
			name: "valid chain",
			options: []TableBuilderOption{
				WithBone("a", "b"),
				WithBone("b", "c"),
			},
		},
		{
			name: "valid branch",
			options: []TableBuilderOption{
				WithBone("a", "b"),
				WithBone("a", "c"),
				WithBone("c", "d"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.options...)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if table == nil {
				t.Fatal("table is nil")
			}
		})
	}
}

func TestNewTableDefaultRoot(t *testing.T) {
	table, err := NewTable(
		WithBone("a", "b"),
		WithBone("b", "c"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := table.Root(); got != "a" {
		t.Errorf("root = %q, want %q", got, "a")
	}
}

func TestNewTableExplicitRoot(t *testing.T) {
	table, err := NewTable(
		WithBone("a", "b"),
		WithRoot("a"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := table.Root(); got != "a" {
		t.Errorf("root = %q, want %q", got, "a")
	}
}

func TestTableLookups(t *testing.T) {
	table, err := NewTable(
		WithBone("a", "b"),
		WithBone("b", "c"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := table.BoneCount(); got != 2 {
		t.Errorf("BoneCount = %d, want 2", got)
	}

	bone, ok := table.Bone("a-b")
	if !ok {
		t.Fatal("bone a-b not found")
	}
	if bone.From != "a" || bone.To != "b" {
		t.Errorf("bone = %+v, want From=a To=b", bone)
	}

	if _, ok := table.Bone("missing"); ok {
		t.Error("lookup of missing bone succeeded")
	}

	joints := table.JointNames()
	want := []string{"a", "b", "c"}
	if len(joints) != len(want) {
		t.Fatalf("JointNames = %v, want %v", joints, want)
	}
	for i := range want {
		if joints[i] != want[i] {
			t.Errorf("joints[%d] = %q, want %q", i, joints[i], want[i])
		}
	}
}

func TestTableCopiesAreIndependent(t *testing.T) {
	table, err := NewTable(WithBone("a", "b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bones := table.Bones()
	bones[0].Name = "mutated"
	if fresh := table.Bones(); fresh[0].Name != "a-b" {
		t.Errorf("mutating the returned slice changed the table: %q", fresh[0].Name)
	}

	joints := table.JointNames()
	joints[0] = "mutated"
	if fresh := table.JointNames(); fresh[0] != "a" {
		t.Errorf("mutating the returned slice changed the table: %q", fresh[0])
	}
}

func TestTableValidate(t *testing.T) {
	table, err := NewTable(WithBone("a", "b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := table.Validate([]string{"a", "b", "c"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err = table.Validate([]string{"a"})
	if err == nil {
		t.Fatal("expected error for missing joint b")
	}
	if !strings.Contains(err.Error(), `"b"`) {
		t.Errorf("error = %q, want it to name joint b", err.Error())
	}
}

func TestDefaultBodyTable(t *testing.T) {
	table := DefaultBodyTable()

	if got := table.BoneCount(); got != 17 {
		t.Errorf("BoneCount = %d, want 17", got)
	}
	if got := table.Root(); got != JointHips {
		t.Errorf("root = %q, want %q", got, JointHips)
	}
	if err := table.Validate(BodyJointNames); err != nil {
		t.Errorf("body table fails its own vocabulary: %v", err)
	}

	// Every canonical body joint participates in at least one bone.
	referenced := make(map[string]bool)
	for _, j := range table.JointNames() {
		referenced[j] = true
	}
	for _, j := range BodyJointNames {
		if !referenced[j] {
			t.Errorf("joint %q is not referenced by any bone", j)
		}
	}

	// Spot-check the spine chain and one limb.
	for _, name := range []string{
		BoneName(JointHips, JointSpine),
		BoneName(JointSpine, JointNeck),
		BoneName(JointNeck, JointHead),
		BoneName(JointLeftArm, JointLeftForearm),
		BoneName(JointRightUpLeg, JointRightLeg),
	} {
		if _, ok := table.Bone(name); !ok {
			t.Errorf("expected bone %q", name)
		}
	}
}
