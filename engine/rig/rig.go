package rig

import (
	"log"
	"sync/atomic"

	"github.com/Carmen-Shannon/rig-go/engine/model"
	"github.com/Carmen-Shannon/rig-go/engine/topology"
)

// Snapshot is an immutable view of a rig's state at the end of one update
// cycle. The maps are never mutated after publication, so a Snapshot may be
// read from any goroutine without synchronization.
type Snapshot struct {
	// Root is the whole-skeleton world transform at capture time.
	Root model.Transform

	// Joints maps joint name to its transform at capture time.
	Joints map[string]model.Transform

	// Bones maps derived bone name to its geometry at capture time.
	Bones map[string]model.BoneGeometry
}

// rigImpl is the implementation of the Rig interface.
// The joint registry and bone cache are owned by the update goroutine; readers
// on other goroutines must go through Snapshot.
type rigImpl struct {
	table topology.Table

	// boneSpecs is the table's bone list, copied once at construction so the
	// per-frame derivation loop never re-fetches topology.
	boneSpecs []topology.BoneSpec

	joints map[string]model.Transform
	bones  map[string]model.BoneGeometry
	root   model.Transform

	snapshot atomic.Pointer[Snapshot]

	vocabulary []string

	// warnedUnknown tracks joint names already logged as outside the
	// vocabulary, so a chatty tracking source logs each name once.
	warnedUnknown map[string]bool
	logUnknown    bool
}

// Rig is one live skeleton instance: a joint registry plus a derived-bone
// cache, both keyed by its topology table's vocabulary. A rig is created when
// a tracked subject is first acquired and destroyed when tracking is lost;
// there is no paused state, and reacquisition rebuilds from scratch.
//
// Update and the direct read methods must be called from the same goroutine
// (the frame loop). Renderers on other goroutines read via Snapshot, which is
// swapped atomically at the end of each update so a half-updated frame is
// never observable.
type Rig interface {
	// Topology returns the table this rig was built against.
	//
	// Returns:
	//   - topology.Table: the topology table
	Topology() topology.Table

	// Update overwrites the transforms of every known joint present in the
	// input, then re-derives the geometry of every bone in the topology
	// table. Joint names outside the vocabulary are ignored. Idempotent:
	// repeated calls with identical input leave the bone cache unchanged.
	//
	// The entire bone cache is always recomputed; a single moved joint can
	// affect two adjacent bones and the bone count is small and fixed, so
	// dirty tracking buys nothing.
	//
	// Parameters:
	//   - joints: joint name to new transform, possibly a partial set
	Update(joints map[string]model.Transform)

	// SetRootTransform sets the whole-skeleton world transform. Takes effect
	// in the snapshot published by the next Update.
	//
	// Parameters:
	//   - t: the skeleton's world transform
	SetRootTransform(t model.Transform)

	// RootTransform returns the whole-skeleton world transform.
	//
	// Returns:
	//   - model.Transform: the skeleton's world transform
	RootTransform() model.Transform

	// JointTransform returns the current transform of a joint.
	//
	// Parameters:
	//   - name: the joint name
	//
	// Returns:
	//   - model.Transform: the joint's transform
	//   - bool: true if the joint is known and has been set
	JointTransform(name string) (model.Transform, bool)

	// BoneGeometry returns the current derived geometry of a bone.
	//
	// Parameters:
	//   - name: the derived bone name (from + "-" + to)
	//
	// Returns:
	//   - model.BoneGeometry: the bone's geometry
	//   - bool: true if the bone exists in the topology
	BoneGeometry(name string) (model.BoneGeometry, bool)

	// JointTransforms returns a copy of the joint registry.
	//
	// Returns:
	//   - map[string]model.Transform: joint name to current transform
	JointTransforms() map[string]model.Transform

	// BoneGeometries returns a copy of the bone cache.
	//
	// Returns:
	//   - map[string]model.BoneGeometry: bone name to current geometry
	BoneGeometries() map[string]model.BoneGeometry

	// Snapshot returns the immutable state published by the most recent
	// update. Safe to call from any goroutine.
	//
	// Returns:
	//   - *Snapshot: the latest published snapshot
	Snapshot() *Snapshot
}

var _ Rig = &rigImpl{}

// NewRig creates a fully initialized rig from an initial joint snapshot.
// The initial transforms must cover every joint the topology table requires;
// otherwise a *MissingJointError naming the first unresolved joint (in
// topology order) is returned and no partial rig is created. When a
// vocabulary is configured, the table is validated against it first.
//
// Parameters:
//   - initial: joint name to transform, covering the full topology
//   - options: functional options (topology, vocabulary, root transform)
//
// Returns:
//   - Rig: the initialized rig with a fully populated bone cache
//   - error: *MissingJointError or a vocabulary validation error
func NewRig(initial map[string]model.Transform, options ...RigBuilderOption) (Rig, error) {
	r := &rigImpl{
		root:          model.IdentityTransform(),
		warnedUnknown: make(map[string]bool),
	}
	for _, option := range options {
		option(r)
	}

	if r.table == nil {
		r.table = topology.DefaultBodyTable()
	}
	r.boneSpecs = r.table.Bones()
	if r.vocabulary != nil {
		if err := r.table.Validate(r.vocabulary); err != nil {
			return nil, err
		}
	}

	required := r.table.JointNames()
	r.joints = make(map[string]model.Transform, len(required))
	for _, name := range required {
		t, ok := initial[name]
		if !ok {
			return nil, &MissingJointError{Joint: name}
		}
		r.joints[name] = t
	}

	r.bones = make(map[string]model.BoneGeometry, r.table.BoneCount())
	r.deriveAll()
	r.publish()

	return r, nil
}

// deriveAll recomputes the full bone cache from the current joint registry.
// Iterates the cached bone list; runs every frame and must not allocate.
func (r *rigImpl) deriveAll() {
	for _, b := range r.boneSpecs {
		r.bones[b.Name] = Derive(r.joints[b.From], r.joints[b.To])
	}
}

// publish swaps in a fresh immutable snapshot of the current state.
func (r *rigImpl) publish() {
	snap := &Snapshot{
		Root:   r.root,
		Joints: make(map[string]model.Transform, len(r.joints)),
		Bones:  make(map[string]model.BoneGeometry, len(r.bones)),
	}
	for name, t := range r.joints {
		snap.Joints[name] = t
	}
	for name, g := range r.bones {
		snap.Bones[name] = g
	}
	r.snapshot.Store(snap)
}

func (r *rigImpl) Topology() topology.Table {
	return r.table
}

func (r *rigImpl) Update(joints map[string]model.Transform) {
	for name, t := range joints {
		if _, known := r.joints[name]; !known {
			if r.logUnknown && !r.warnedUnknown[name] {
				r.warnedUnknown[name] = true
				log.Printf("rig: ignoring transform for unknown joint %q", name)
			}
			continue
		}
		r.joints[name] = t
	}
	r.deriveAll()
	r.publish()
}

func (r *rigImpl) SetRootTransform(t model.Transform) {
	r.root = t
}

func (r *rigImpl) RootTransform() model.Transform {
	return r.root
}

func (r *rigImpl) JointTransform(name string) (model.Transform, bool) {
	t, ok := r.joints[name]
	return t, ok
}

func (r *rigImpl) BoneGeometry(name string) (model.BoneGeometry, bool) {
	g, ok := r.bones[name]
	return g, ok
}

func (r *rigImpl) JointTransforms() map[string]model.Transform {
	cp := make(map[string]model.Transform, len(r.joints))
	for name, t := range r.joints {
		cp[name] = t
	}
	return cp
}

func (r *rigImpl) BoneGeometries() map[string]model.BoneGeometry {
	cp := make(map[string]model.BoneGeometry, len(r.bones))
	for name, g := range r.bones {
		cp[name] = g
	}
	return cp
}

func (r *rigImpl) Snapshot() *Snapshot {
	return r.snapshot.Load()
}
