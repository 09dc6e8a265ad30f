package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/rig-go/engine/profiler"
	"github.com/Carmen-Shannon/rig-go/engine/rig"
	"github.com/Carmen-Shannon/rig-go/engine/tracking"
	"github.com/Carmen-Shannon/rig-go/engine/visual"
	"github.com/Carmen-Shannon/rig-go/engine/window"
)

// VisualizerFactory creates a Visualizer for a newly acquired subject.
// Called from the render goroutine the first frame a subject's rig appears.
type VisualizerFactory func(id tracking.SubjectID, r rig.Rig) visual.Visualizer

// engine implements the Engine interface.
// Coordinates the tracking session, visual prep/render loop, and window.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	session tracking.Session

	// visualizers are owned by the render goroutine; created via the factory
	// when a subject appears and pruned when its rig is gone.
	visualizers       map[tracking.SubjectID]visual.Visualizer
	visualizerFactory VisualizerFactory

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the frame-loop owner: it starts the tracking session, runs the
// fixed-rate tick loop and the render loop, and keeps one Visualizer per
// tracked subject in sync with the session's rigs. All rig reads on the
// render side go through snapshots, so the session's update cycle and the
// render loop never observe each other mid-frame.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Session returns the tracking session driving the rigs.
	//
	// Returns:
	//   - tracking.Session: the session instance
	Session() tracking.Session

	// Visualizer returns the visualizer for a subject, or nil if the
	// subject is not currently tracked. Only call from the render loop
	// (the render callback).
	//
	// Parameters:
	//   - id: the subject identifier
	//
	// Returns:
	//   - visual.Visualizer: the subject's visualizer or nil
	Visualizer(id tracking.SubjectID) visual.Visualizer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for application logic decoupled from rendering.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame,
	// after all visualizers have been prepared for the frame.
	// Use this for GPU submission and drawing.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the session and engine loops (blocks until the window
	// closes, or until Quit when running headless).
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Initializes the quit channel and profiler with sensible defaults.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (session, window, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		visualizers:      make(map[tracking.SubjectID]visual.Visualizer),
		running:          false,
		wg:               sync.WaitGroup{},
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Session() tracking.Session {
	return e.session
}

func (e *engine) Visualizer(id tracking.SubjectID) visual.Visualizer {
	return e.visualizers[id]
}

func (e *engine) Run() {
	e.running = true
	if e.session != nil {
		e.session.Start()
	}
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
	if e.session != nil {
		e.session.Stop()
	}
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handle launches the tick, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleEngine()
	go e.handleRender()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Fires the tick callback at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Each frame it reconciles the visualizer set against the session's live rigs,
// prepares every visualizer from its rig's latest snapshot, and fires the
// render callback. Recovers from panics to avoid crashing the process and
// signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	// Recover from panics inside the render goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			e.prepareVisualizers()

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// prepareVisualizers reconciles the visualizer set against the session's live
// rigs (create on acquire, prune on loss) and refreshes each one from its
// rig's latest published snapshot.
func (e *engine) prepareVisualizers() {
	if e.session == nil {
		return
	}

	rigs := e.session.Rigs()

	for id := range e.visualizers {
		if _, tracked := rigs[id]; !tracked {
			delete(e.visualizers, id)
		}
	}

	for id, r := range rigs {
		v := e.visualizers[id]
		if v == nil {
			if e.visualizerFactory == nil {
				continue
			}
			v = e.visualizerFactory(id, r)
			e.visualizers[id] = v
		}
		v.PrepareFrame(r.Snapshot())
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Second / time.Duration(fps)

	if e.running {
		// Send to channel for immediate update in running engine loop
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			// Channel has a pending update, drain and send new value
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		// Engine not running, just update the field
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}
