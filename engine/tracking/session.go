package tracking

import (
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/rig-go/engine/profiler"
	"github.com/Carmen-Shannon/rig-go/engine/rig"
)

// sessionImpl is the implementation of the Session interface.
type sessionImpl struct {
	mu     *sync.RWMutex
	source Source

	rigs       map[SubjectID]rig.Rig
	rigOptions []rig.RigBuilderOption

	// updatePool manages a bounded set of reusable goroutines for the
	// parallel per-subject update phase when multiple subjects are tracked.
	updatePool    worker.DynamicWorkerPool
	updateWorkers int

	onAcquire func(SubjectID, rig.Rig)
	onLost    func(SubjectID)
	onUpdate  func(SubjectID, rig.Rig)

	// warnedIncomplete tracks subjects whose frames are still missing
	// required joints, so the dropped-frame log fires once per acquisition
	// attempt rather than every frame.
	warnedIncomplete map[SubjectID]bool

	prof      *profiler.Profiler
	profiling bool

	quitChannel chan struct{}
	quitOnce    sync.Once
	wg          sync.WaitGroup
}

// Session consumes a tracking Source and owns the rig lifecycle for every
// tracked subject: the first complete frame for a subject constructs its rig,
// every later frame updates it, and a loss signal destroys it. Incomplete
// first frames are dropped and construction retries on the next frame.
//
// Rigs are only mutated from the session's own goroutine (and its worker
// tasks, one per subject per cycle); renderers read rig state via
// rig.Snapshot.
type Session interface {
	// Start launches the session's consume loop. Safe to call once.
	Start()

	// Stop signals the consume loop to exit and blocks until it has.
	// Safe to call multiple times; subsequent calls are no-ops.
	Stop()

	// Rig returns the live rig for a subject, or nil if the subject is not
	// currently tracked.
	//
	// Parameters:
	//   - id: the subject identifier
	//
	// Returns:
	//   - rig.Rig: the subject's rig, or nil
	Rig(id SubjectID) rig.Rig

	// Rigs returns a copy of all live rigs keyed by subject.
	//
	// Returns:
	//   - map[SubjectID]rig.Rig: a copy of the rig registry
	Rigs() map[SubjectID]rig.Rig

	// Count returns the number of currently tracked subjects.
	//
	// Returns:
	//   - int: the live rig count
	Count() int
}

var _ Session = &sessionImpl{}

// NewSession creates a Session consuming the given source, configured with
// the provided options. The session is not started; call Start.
//
// Parameters:
//   - source: the tracking source to consume
//   - options: functional options (rig options, callbacks, workers, profiling)
//
// Returns:
//   - Session: the configured session
func NewSession(source Source, options ...SessionBuilderOption) Session {
	s := &sessionImpl{
		mu:               &sync.RWMutex{},
		source:           source,
		rigs:             make(map[SubjectID]rig.Rig),
		warnedIncomplete: make(map[SubjectID]bool),
		updateWorkers:    max(runtime.NumCPU()-1, 1),
		prof:             profiler.NewProfiler(),
		quitChannel:      make(chan struct{}),
	}
	for _, option := range options {
		option(s)
	}

	// Queue size of 64 comfortably exceeds any realistic concurrent subject
	// count for a single sensor.
	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 64, 1*time.Second)

	return s
}

func (s *sessionImpl) Start() {
	s.wg.Add(1)
	go s.consume()
}

func (s *sessionImpl) Stop() {
	s.quitOnce.Do(func() {
		close(s.quitChannel)
	})
	s.wg.Wait()
}

func (s *sessionImpl) Rig(id SubjectID) rig.Rig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rigs[id]
}

func (s *sessionImpl) Rigs() map[SubjectID]rig.Rig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make(map[SubjectID]rig.Rig, len(s.rigs))
	for id, r := range s.rigs {
		cp[id] = r
	}
	return cp
}

func (s *sessionImpl) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rigs)
}

// consume runs the session loop in its own goroutine: it blocks on the
// source's channels, coalesces bursts of frames into one batch per cycle
// (keeping only the newest frame per subject, since each update fully
// overwrites the previous one), and applies losses and updates in order.
// Exits when the quit channel is closed or the frame channel is closed.
func (s *sessionImpl) consume() {
	defer s.wg.Done()
	// Recover from panics inside the session goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("tracking session recovered from panic: %v", r)
		}
	}()

	for {
		select {
		case <-s.quitChannel:
			return
		case id := <-s.source.Lost():
			s.dropSubject(id)
		case frame, ok := <-s.source.Frames():
			if !ok {
				return
			}

			batch := map[SubjectID]Frame{frame.Subject: frame}
			s.drainFrames(batch)
			s.processBatch(batch)
		}
	}
}

// drainFrames pulls every frame already buffered on the source without
// blocking, keeping only the newest frame per subject.
func (s *sessionImpl) drainFrames(batch map[SubjectID]Frame) {
	for {
		select {
		case frame, ok := <-s.source.Frames():
			if !ok {
				return
			}
			batch[frame.Subject] = frame
		default:
			return
		}
	}
}

// processBatch constructs rigs for newly seen subjects and dispatches one
// update task per existing subject to the worker pool, with a WaitGroup as
// the per-cycle barrier (the pool's own Wait blocks until workers idle-exit,
// which is unsuitable for frame-rate cycles).
func (s *sessionImpl) processBatch(batch map[SubjectID]Frame) {
	start := time.Now()

	var wg sync.WaitGroup
	taskID := 0

	for id, frame := range batch {
		s.mu.RLock()
		subjectRig := s.rigs[id]
		s.mu.RUnlock()

		if subjectRig == nil {
			s.acquireSubject(id, frame)
			continue
		}

		wg.Add(1)
		rCap := subjectRig // capture for closure
		fCap := frame
		idCap := id
		tid := taskID
		taskID++
		s.updatePool.SubmitTask(worker.Task{
			ID: tid,
			Do: func() (any, error) {
				defer wg.Done()
				rCap.SetRootTransform(fCap.Root)
				rCap.Update(fCap.Joints)
				if s.onUpdate != nil {
					s.onUpdate(idCap, rCap)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	if s.profiling {
		s.prof.Observe(time.Since(start))
		s.prof.Tick()
	}
}

// acquireSubject attempts to construct a rig from the subject's first frame.
// An incomplete frame is dropped; construction retries on the next frame.
func (s *sessionImpl) acquireSubject(id SubjectID, frame Frame) {
	options := append(
		[]rig.RigBuilderOption{rig.WithRootTransform(frame.Root)},
		s.rigOptions...,
	)
	newRig, err := rig.NewRig(frame.Joints, options...)
	if err != nil {
		if !s.warnedIncomplete[id] {
			s.warnedIncomplete[id] = true
			log.Printf("tracking: dropping frame for subject %d: %v", id, err)
		}
		return
	}
	delete(s.warnedIncomplete, id)

	s.mu.Lock()
	s.rigs[id] = newRig
	s.mu.Unlock()

	if s.onAcquire != nil {
		s.onAcquire(id, newRig)
	}
}

// dropSubject destroys a subject's rig in response to a loss signal.
// Reacquisition rebuilds from scratch; no geometry is carried over.
func (s *sessionImpl) dropSubject(id SubjectID) {
	s.mu.Lock()
	_, tracked := s.rigs[id]
	delete(s.rigs, id)
	s.mu.Unlock()
	delete(s.warnedIncomplete, id)

	if tracked && s.onLost != nil {
		s.onLost(id)
	}
}
