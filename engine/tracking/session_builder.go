package tracking

import (
	"github.com/Carmen-Shannon/rig-go/engine/rig"
)

// SessionBuilderOption is a functional option for configuring a Session.
// Use the With* functions to create options.
type SessionBuilderOption func(s *sessionImpl)

// WithRigOptions sets the rig builder options applied to every rig the
// session constructs (topology, vocabulary, unknown-joint logging).
//
// Parameters:
//   - options: rig options to apply on each acquisition
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithRigOptions(options ...rig.RigBuilderOption) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.rigOptions = options
	}
}

// WithUpdateWorkers sets the number of worker goroutines used for the
// parallel per-subject update phase. Defaults to runtime.NumCPU()-1.
// Only relevant when the source tracks multiple subjects at once.
//
// Parameters:
//   - n: the number of update workers (minimum 1)
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithUpdateWorkers(n int) SessionBuilderOption {
	return func(s *sessionImpl) {
		if n < 1 {
			n = 1
		}
		s.updateWorkers = n
	}
}

// WithOnAcquire sets the callback invoked when a subject's first complete
// frame constructs its rig. Runs on the session goroutine.
//
// Parameters:
//   - callback: function receiving the subject and its new rig
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithOnAcquire(callback func(SubjectID, rig.Rig)) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.onAcquire = callback
	}
}

// WithOnLost sets the callback invoked after a subject's rig is destroyed in
// response to a loss signal. Runs on the session goroutine.
//
// Parameters:
//   - callback: function receiving the lost subject
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithOnLost(callback func(SubjectID)) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.onLost = callback
	}
}

// WithOnUpdate sets the callback invoked after each rig update. May run on a
// worker goroutine, concurrently across distinct subjects but never
// concurrently for the same subject.
//
// Parameters:
//   - callback: function receiving the subject and its updated rig
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithOnUpdate(callback func(SubjectID, rig.Rig)) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.onUpdate = callback
	}
}

// WithProfiling enables per-cycle latency and memory stats logging.
//
// Parameters:
//   - enabled: true to log profiler output
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithProfiling(enabled bool) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.profiling = enabled
	}
}
