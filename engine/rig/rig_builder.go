package rig

import (
	"github.com/Carmen-Shannon/rig-go/engine/model"
	"github.com/Carmen-Shannon/rig-go/engine/topology"
)

// RigBuilderOption is a functional option for configuring a Rig during construction.
// Use the With* functions to create options.
type RigBuilderOption func(r *rigImpl)

// WithTopology sets the topology table the rig is built against.
// Defaults to topology.DefaultBodyTable().
//
// Parameters:
//   - t: the topology table
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithTopology(t topology.Table) RigBuilderOption {
	return func(r *rigImpl) {
		r.table = t
	}
}

// WithVocabulary supplies the tracking collaborator's canonical joint list.
// When set, construction fails if the topology references a joint outside
// this vocabulary instead of assuming the table and source agree.
//
// Parameters:
//   - names: the canonical joint names
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithVocabulary(names []string) RigBuilderOption {
	return func(r *rigImpl) {
		r.vocabulary = names
	}
}

// WithRootTransform sets the initial whole-skeleton world transform.
// Defaults to identity.
//
// Parameters:
//   - t: the skeleton's world transform
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithRootTransform(t model.Transform) RigBuilderOption {
	return func(r *rigImpl) {
		r.root = t
	}
}

// WithUnknownJointLogging enables a one-shot log line per joint name the
// tracking source reports but the topology does not visualize. Off by
// default; unknown writes are always ignored either way.
//
// Parameters:
//   - enabled: true to log ignored joint names
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithUnknownJointLogging(enabled bool) RigBuilderOption {
	return func(r *rigImpl) {
		r.logUnknown = enabled
	}
}
