// Package tracking defines the boundary to the body-tracking collaborator and
// the session that drives rig lifecycles from its frame stream. The sensor
// itself is opaque: anything that can emit Frames and Lost signals can drive
// a session.
package tracking

import (
	"time"

	"github.com/Carmen-Shannon/rig-go/engine/model"
)

// SubjectID identifies one tracked subject across frames.
type SubjectID uint64

// Frame is one per-subject snapshot from the tracking source: the subject's
// whole-skeleton world transform plus every resolved joint transform in the
// skeleton-root-relative frame. The joint vocabulary is the source's own and
// may be a superset of what any rig topology visualizes.
type Frame struct {
	// Subject identifies the tracked subject this frame belongs to.
	Subject SubjectID

	// Timestamp is the sensor capture time.
	Timestamp time.Time

	// Root is the whole skeleton's position and orientation in world space.
	Root model.Transform

	// Joints maps joint name to its root-relative transform.
	Joints map[string]model.Transform
}

// Source is the tracking collaborator: a stream of per-subject frames plus
// loss signals. Implementations own the sensor/session plumbing; the engine
// consumes the channels and nothing else.
type Source interface {
	// Frames returns the channel of per-subject tracking frames.
	//
	// Returns:
	//   - <-chan Frame: the frame stream
	Frames() <-chan Frame

	// Lost returns the channel of subject-loss signals. A signal means the
	// subject's rig must be discarded; reacquisition arrives as a fresh
	// Frame for the same SubjectID.
	//
	// Returns:
	//   - <-chan SubjectID: the loss stream
	Lost() <-chan SubjectID

	// Close releases the source's resources and closes both channels.
	//
	// Returns:
	//   - error: error if shutdown fails
	Close() error
}
