package engine

import (
	"time"

	"github.com/Carmen-Shannon/rig-go/engine/tracking"
	"github.com/Carmen-Shannon/rig-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithWindow sets a custom configured window for the engine to use.
// Omit to run headless (Run then blocks until Quit).
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithSession sets the tracking session the engine starts and stops with its
// own lifecycle. The render loop mirrors the session's rigs into
// visualizers each frame.
//
// Parameters:
//   - s: the tracking session to drive
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSession(s tracking.Session) EngineBuilderOption {
	return func(e *engine) {
		e.session = s
	}
}

// WithVisualizerFactory sets the factory used to create a Visualizer when a
// subject is first acquired. Without a factory the engine tracks rigs but
// prepares no visual data.
//
// Parameters:
//   - factory: the per-subject visualizer factory
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithVisualizerFactory(factory VisualizerFactory) EngineBuilderOption {
	return func(e *engine) {
		e.visualizerFactory = factory
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
