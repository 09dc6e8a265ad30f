package visual

import (
	"fmt"

	"github.com/Carmen-Shannon/rig-go/common"
	"github.com/Carmen-Shannon/rig-go/engine/rig"
	"github.com/Carmen-Shannon/rig-go/engine/topology"
	"github.com/cogentcore/webgpu/wgpu"
)

// visualizerImpl is the implementation of the Visualizer interface.
// Instance slices and scratch matrices are preallocated at construction and
// reused every frame; PrepareFrame performs no heap allocation.
type visualizerImpl struct {
	table topology.Table

	styles        map[string]JointStyle
	defaultStyle  JointStyle
	boneThickness float32
	boneColor     [4]float32

	jointOrder []string
	boneOrder  []topology.BoneSpec

	jointInstances []GPUInstance
	boneInstances  []GPUInstance

	rootMatrix  [16]float32
	localMatrix [16]float32

	frameUniform FrameUniform

	device *wgpu.Device
	queue  *wgpu.Queue

	jointBuffer   *wgpu.Buffer
	boneBuffer    *wgpu.Buffer
	uniformBuffer *wgpu.Buffer
}

// Visualizer turns a rig snapshot into per-joint and per-bone GPU instance
// data: one model matrix + tint per joint marker sphere and per bone box.
// It is the read-only rendering collaborator and never mutates the rig.
//
// Call PrepareFrame once per render frame with the rig's latest snapshot,
// then either read the instance data for an external upload path or call
// Flush to write it into the attached device's buffers.
type Visualizer interface {
	// PrepareFrame recomputes all joint and bone instance matrices from a
	// rig snapshot. Joints compose root × translation × radius; bones
	// compose root × translation × orientation × (thickness, length,
	// thickness). Zero-length bones collapse to zero scale rather than
	// faulting. A nil snapshot leaves the previous frame's data untouched.
	//
	// Parameters:
	//   - snap: the rig snapshot to visualize
	PrepareFrame(snap *rig.Snapshot)

	// SetViewProjection sets the view-projection matrix carried in the
	// frame uniform. Defaults to identity.
	//
	// Parameters:
	//   - m: the column-major view-projection matrix
	SetViewProjection(m [16]float32)

	// FrameUniformData returns the frame uniform as raw bytes for GPU
	// upload. The slice aliases internal memory; do not retain or modify it.
	//
	// Returns:
	//   - []byte: the frame uniform data
	FrameUniformData() []byte

	// JointInstanceCount returns the number of joint marker instances.
	//
	// Returns:
	//   - int: the joint instance count
	JointInstanceCount() int

	// BoneInstanceCount returns the number of bone primitive instances.
	//
	// Returns:
	//   - int: the bone instance count
	BoneInstanceCount() int

	// JointInstanceData returns the joint instance buffer as raw bytes for
	// GPU upload. The slice aliases internal memory valid until the next
	// PrepareFrame; do not retain or modify it.
	//
	// Returns:
	//   - []byte: the joint instance data
	JointInstanceData() []byte

	// BoneInstanceData returns the bone instance buffer as raw bytes for
	// GPU upload. Same aliasing rules as JointInstanceData.
	//
	// Returns:
	//   - []byte: the bone instance data
	BoneInstanceData() []byte

	// Flush uploads the current instance data into GPU buffers on the
	// attached device, creating the buffers lazily on first use.
	//
	// Returns:
	//   - error: error if no device is attached or buffer creation fails
	Flush() error

	// JointBuffer returns the GPU buffer holding joint instances, or nil
	// before the first Flush.
	//
	// Returns:
	//   - *wgpu.Buffer: the joint instance buffer or nil
	JointBuffer() *wgpu.Buffer

	// BoneBuffer returns the GPU buffer holding bone instances, or nil
	// before the first Flush.
	//
	// Returns:
	//   - *wgpu.Buffer: the bone instance buffer or nil
	BoneBuffer() *wgpu.Buffer

	// UniformBuffer returns the GPU buffer holding the frame uniform, or
	// nil before the first Flush.
	//
	// Returns:
	//   - *wgpu.Buffer: the frame uniform buffer or nil
	UniformBuffer() *wgpu.Buffer
}

var _ Visualizer = &visualizerImpl{}

// NewVisualizer creates a Visualizer for the given topology, configured with
// the provided options. Instance ordering follows the table's definition
// order and never changes, so buffer layouts are stable across frames.
//
// Parameters:
//   - table: the topology to visualize
//   - options: functional options (styles, bone appearance, GPU device)
//
// Returns:
//   - Visualizer: the configured visualizer
func NewVisualizer(table topology.Table, options ...VisualizerBuilderOption) Visualizer {
	v := &visualizerImpl{
		table:         table,
		styles:        DefaultJointStyles(),
		defaultStyle:  JointStyle{Radius: DefaultJointRadius, Color: DefaultJointColor},
		boneThickness: DefaultBoneThickness,
		boneColor:     DefaultBoneColor,
		jointOrder:    table.JointNames(),
		boneOrder:     table.Bones(),
	}
	common.Identity(v.frameUniform.ViewProj[:])
	for _, option := range options {
		option(v)
	}

	v.jointInstances = make([]GPUInstance, len(v.jointOrder))
	v.boneInstances = make([]GPUInstance, len(v.boneOrder))

	return v
}

func (v *visualizerImpl) PrepareFrame(snap *rig.Snapshot) {
	if snap == nil {
		return
	}

	common.BuildTRSMatrix(v.rootMatrix[:], snap.Root.Translation, snap.Root.Rotation, snap.Root.Scale)

	for i, name := range v.jointOrder {
		style := v.styleFor(name)
		joint := snap.Joints[name]

		common.BuildTRSMatrix(v.localMatrix[:], joint.Translation, common.QuatIdentity(), [3]float32{style.Radius, style.Radius, style.Radius})
		common.Mul4(v.jointInstances[i].Model[:], v.rootMatrix[:], v.localMatrix[:])
		v.jointInstances[i].Color = style.Color
	}

	for i, bone := range v.boneOrder {
		geometry := snap.Bones[bone.Name]

		common.BuildTRSMatrix(v.localMatrix[:], geometry.Center, geometry.Rotation, [3]float32{v.boneThickness, geometry.Length, v.boneThickness})
		common.Mul4(v.boneInstances[i].Model[:], v.rootMatrix[:], v.localMatrix[:])
		v.boneInstances[i].Color = v.boneColor
	}
}

// styleFor resolves a joint's style, falling back to the default.
// Partially specified styles inherit the missing fields from the default.
func (v *visualizerImpl) styleFor(name string) JointStyle {
	style, ok := v.styles[name]
	if !ok {
		return v.defaultStyle
	}
	style.Radius = common.Coalesce(style.Radius, v.defaultStyle.Radius)
	if style.Color == ([4]float32{}) {
		style.Color = v.defaultStyle.Color
	}
	return style
}

func (v *visualizerImpl) JointInstanceCount() int {
	return len(v.jointInstances)
}

func (v *visualizerImpl) BoneInstanceCount() int {
	return len(v.boneInstances)
}

func (v *visualizerImpl) SetViewProjection(m [16]float32) {
	v.frameUniform.ViewProj = m
}

func (v *visualizerImpl) FrameUniformData() []byte {
	return common.StructToBytes(&v.frameUniform)
}

func (v *visualizerImpl) JointInstanceData() []byte {
	return common.SliceToBytes(v.jointInstances)
}

func (v *visualizerImpl) BoneInstanceData() []byte {
	return common.SliceToBytes(v.boneInstances)
}

func (v *visualizerImpl) Flush() error {
	if v.device == nil || v.queue == nil {
		return fmt.Errorf("visual: no GPU device attached")
	}

	if v.jointBuffer == nil {
		buf, err := v.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            "Joint Instance Buffer",
			Size:             uint64(len(v.JointInstanceData())),
			Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return err
		}
		v.jointBuffer = buf
	}
	if v.boneBuffer == nil {
		buf, err := v.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            "Bone Instance Buffer",
			Size:             uint64(len(v.BoneInstanceData())),
			Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return err
		}
		v.boneBuffer = buf
	}
	if v.uniformBuffer == nil {
		buf, err := v.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            "Frame Uniform Buffer",
			Size:             uint64(v.frameUniform.Size()),
			Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return err
		}
		v.uniformBuffer = buf
	}

	v.queue.WriteBuffer(v.jointBuffer, 0, v.JointInstanceData())
	v.queue.WriteBuffer(v.boneBuffer, 0, v.BoneInstanceData())
	v.queue.WriteBuffer(v.uniformBuffer, 0, v.FrameUniformData())
	return nil
}

func (v *visualizerImpl) JointBuffer() *wgpu.Buffer {
	return v.jointBuffer
}

func (v *visualizerImpl) BoneBuffer() *wgpu.Buffer {
	return v.boneBuffer
}

func (v *visualizerImpl) UniformBuffer() *wgpu.Buffer {
	return v.uniformBuffer
}
