package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/rig-go/engine/model"
	"github.com/Carmen-Shannon/rig-go/engine/rig"
	"github.com/Carmen-Shannon/rig-go/engine/tracking"
	"github.com/Carmen-Shannon/rig-go/engine/topology"
	"github.com/Carmen-Shannon/rig-go/engine/visual"
	"github.com/cogentcore/webgpu/wgpu"
)

type stubSource struct {
	frames chan tracking.Frame
	lost   chan tracking.SubjectID
}

func newStubSource() *stubSource {
	return &stubSource{
		frames: make(chan tracking.Frame, 4),
		lost:   make(chan tracking.SubjectID, 1),
	}
}

func (s *stubSource) Frames() <-chan tracking.Frame { return s.frames }
func (s *stubSource) Lost() <-chan tracking.SubjectID { return s.lost }
func (s *stubSource) Close() error { close(s.frames); return nil }

// stubVisualizer records PrepareFrame calls; the GPU-facing methods are inert.
type stubVisualizer struct {
	prepared atomic.Int64
}

func (s *stubVisualizer) PrepareFrame(*rig.Snapshot) { s.prepared.Add(1) }
func (s *stubVisualizer) SetViewProjection([16]float32) {}
func (s *stubVisualizer) FrameUniformData() []byte { return nil }
func (s *stubVisualizer) UniformBuffer() *wgpu.Buffer { return nil }
func (s *stubVisualizer) JointInstanceCount() int { return 0 }
func (s *stubVisualizer) BoneInstanceCount() int { return 0 }
func (s *stubVisualizer) JointInstanceData() []byte { return nil }
func (s *stubVisualizer) BoneInstanceData() []byte { return nil }
func (s *stubVisualizer) Flush() error { return nil }
func (s *stubVisualizer) JointBuffer() *wgpu.Buffer { return nil }
func (s *stubVisualizer) BoneBuffer() *wgpu.Buffer { return nil }

var _ visual.Visualizer = &stubVisualizer{}

func fullFrame(id tracking.SubjectID) tracking.Frame {
	joints := make(map[string]model.Transform, len(topology.BodyJointNames))
	for i, name := range topology.BodyJointNames {
		t := model.IdentityTransform()
		t.Translation = [3]float32{0, float32(i) * 0.1, 0}
		joints[name] = t
	}
	return tracking.Frame{
		Subject:   id,
		Timestamp: time.Now(),
		Root:      model.IdentityTransform(),
		Joints:    joints,
	}
}

func TestEngineHeadlessRun(t *testing.T) {
	source := newStubSource()
	session := tracking.NewSession(source)

	var ticks, renders atomic.Int64
	stub := &stubVisualizer{}
	created := make(chan tracking.SubjectID, 1)

	e := NewEngine(
		WithSession(session),
		WithTickRate(240),
		WithVisualizerFactory(func(id tracking.SubjectID, _ rig.Rig) visual.Visualizer {
			created <- id
			return stub
		}),
	)
	e.SetTickCallback(func(float32) { ticks.Add(1) })
	e.SetRenderCallback(func(float32) { renders.Add(1) })

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	source.frames <- fullFrame(5)

	select {
	case id := <-created:
		if id != 5 {
			t.Errorf("visualizer created for subject %d, want 5", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("visualizer factory never invoked")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ticks.Load() > 0 && renders.Load() > 0 && stub.prepared.Load() > 0 {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	if ticks.Load() == 0 {
		t.Error("tick callback never fired")
	}
	if renders.Load() == 0 {
		t.Error("render callback never fired")
	}
	if stub.prepared.Load() == 0 {
		t.Error("visualizer never prepared")
	}

	e.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
}

func TestEngineQuitIsIdempotent(t *testing.T) {
	e := NewEngine()

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	e.Quit()
	e.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
}

func TestEngineAccessors(t *testing.T) {
	source := newStubSource()
	session := tracking.NewSession(source)

	e := NewEngine(WithSession(session))
	if e.Session() == nil {
		t.Error("Session() is nil")
	}
	if e.Window() != nil {
		t.Error("Window() is non-nil for a headless engine")
	}
	if e.Visualizer(1) != nil {
		t.Error("Visualizer(1) is non-nil before any subject appears")
	}
}

func TestSetTickRateClampsToDefault(t *testing.T) {
	e := NewEngine().(*engine)
	e.SetTickRate(0)
	if e.engineTickRate != time.Second/60 {
		t.Errorf("tick rate = %v, want %v", e.engineTickRate, time.Second/60)
	}
}

func TestSetRenderFrameLimit(t *testing.T) {
	e := NewEngine().(*engine)

	e.SetRenderFrameLimit(120)
	if e.renderFrameLimit != time.Second/120 {
		t.Errorf("frame limit = %v, want %v", e.renderFrameLimit, time.Second/120)
	}

	e.SetRenderFrameLimit(0)
	if e.renderFrameLimit != 0 {
		t.Errorf("frame limit = %v, want 0", e.renderFrameLimit)
	}
}
