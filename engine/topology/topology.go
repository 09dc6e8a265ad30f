package topology

import (
	"fmt"
)

// BoneSpec is an immutable (boneName, fromJointName, toJointName) triple.
// Name is always derived as From + "-" + To; the from side is the parent-side
// joint, the to side the child-side joint.
type BoneSpec struct {
	// Name is the derived bone identifier.
	Name string

	// From is the parent-side joint name.
	From string

	// To is the child-side joint name.
	To string
}

// BoneName derives the canonical bone name for a joint pair.
//
// Parameters:
//   - from: the parent-side joint name
//   - to: the child-side joint name
//
// Returns:
//   - string: from + "-" + to
func BoneName(from, to string) string {
	return from + "-" + to
}

// tableImpl is the implementation of the Table interface.
type tableImpl struct {
	bones  []BoneSpec
	byName map[string]int
	joints []string
	root   string
}

// Table is the static skeleton topology: the complete enumerated list of
// bones a rig supports. Fixed at construction and read-only afterwards; a
// single Table instance is safely shared by any number of rigs.
type Table interface {
	// Bones returns a copy of the ordered bone list.
	//
	// Returns:
	//   - []BoneSpec: the bones in definition order
	Bones() []BoneSpec

	// BoneCount returns the number of bones in the table.
	//
	// Returns:
	//   - int: the bone count
	BoneCount() int

	// Bone retrieves a bone spec by its derived name.
	//
	// Parameters:
	//   - name: the derived bone name (from + "-" + to)
	//
	// Returns:
	//   - BoneSpec: the bone spec
	//   - bool: true if the bone exists
	Bone(name string) (BoneSpec, bool)

	// JointNames returns a copy of every joint name the table references,
	// in first-appearance order.
	//
	// Returns:
	//   - []string: the referenced joint names
	JointNames() []string

	// Root returns the designated root joint name.
	//
	// Returns:
	//   - string: the root joint
	Root() string

	// Validate checks that every joint the table references appears in the
	// supplied canonical vocabulary (typically the tracking source's joint
	// list). Returns an error naming the first missing joint.
	//
	// Parameters:
	//   - vocabulary: the canonical joint-name list
	//
	// Returns:
	//   - error: error if a referenced joint is outside the vocabulary
	Validate(vocabulary []string) error
}

var _ Table = &tableImpl{}

// NewTable creates a skeleton topology table from the provided options and
// validates its shape: at least one bone, distinct endpoints per bone, unique
// derived names, at most one parent per joint, and a cycle-free parent chain
// reaching the root.
//
// Parameters:
//   - options: functional options defining bones and the root joint
//
// Returns:
//   - Table: the validated, read-only table
//   - error: error if the topology is malformed
func NewTable(options ...TableBuilderOption) (Table, error) {
	t := &tableImpl{
		byName: make(map[string]int),
	}
	for _, option := range options {
		option(t)
	}

	if len(t.bones) == 0 {
		return nil, fmt.Errorf("topology: table has no bones")
	}

	seenJoint := make(map[string]bool)
	parentOf := make(map[string]string)
	for i, b := range t.bones {
		if b.From == b.To {
			return nil, fmt.Errorf("topology: bone %q references the same joint twice", b.Name)
		}
		if _, dup := t.byName[b.Name]; dup {
			return nil, fmt.Errorf("topology: duplicate bone %q", b.Name)
		}
		t.byName[b.Name] = i

		if _, multi := parentOf[b.To]; multi {
			return nil, fmt.Errorf("topology: joint %q has more than one parent bone", b.To)
		}
		parentOf[b.To] = b.From

		for _, j := range []string{b.From, b.To} {
			if !seenJoint[j] {
				seenJoint[j] = true
				t.joints = append(t.joints, j)
			}
		}
	}

	if t.root == "" {
		// Default root: the first from-joint that is never a child.
		for _, b := range t.bones {
			if _, child := parentOf[b.From]; !child {
				t.root = b.From
				break
			}
		}
	}
	if t.root == "" {
		return nil, fmt.Errorf("topology: no root joint (every joint has a parent)")
	}
	if !seenJoint[t.root] {
		return nil, fmt.Errorf("topology: root joint %q is not referenced by any bone", t.root)
	}

	// Every joint's parent chain must terminate at the root within a bounded
	// number of steps; anything else is a cycle or a disconnected subtree.
	for _, j := range t.joints {
		cur := j
		for steps := 0; cur != t.root; steps++ {
			if steps > len(t.bones) {
				return nil, fmt.Errorf("topology: cycle detected through joint %q", j)
			}
			parent, ok := parentOf[cur]
			if !ok {
				return nil, fmt.Errorf("topology: joint %q is not connected to root %q", j, t.root)
			}
			cur = parent
		}
	}

	return t, nil
}

func (t *tableImpl) Bones() []BoneSpec {
	cp := make([]BoneSpec, len(t.bones))
	copy(cp, t.bones)
	return cp
}

func (t *tableImpl) BoneCount() int {
	return len(t.bones)
}

func (t *tableImpl) Bone(name string) (BoneSpec, bool) {
	i, ok := t.byName[name]
	if !ok {
		return BoneSpec{}, false
	}
	return t.bones[i], true
}

func (t *tableImpl) JointNames() []string {
	cp := make([]string, len(t.joints))
	copy(cp, t.joints)
	return cp
}

func (t *tableImpl) Root() string {
	return t.root
}

func (t *tableImpl) Validate(vocabulary []string) error {
	known := make(map[string]bool, len(vocabulary))
	for _, name := range vocabulary {
		known[name] = true
	}
	for _, j := range t.joints {
		if !known[j] {
			return fmt.Errorf("topology: joint %q is not in the supplied vocabulary", j)
		}
	}
	return nil
}
