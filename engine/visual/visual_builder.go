package visual

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// VisualizerBuilderOption is a functional option for configuring a Visualizer.
// Use the With* functions to create options.
type VisualizerBuilderOption func(v *visualizerImpl)

// WithJointStyles replaces the joint style lookup table.
// Joints without an entry use the default style.
//
// Parameters:
//   - styles: joint name to style
//
// Returns:
//   - VisualizerBuilderOption: option function to apply
func WithJointStyles(styles map[string]JointStyle) VisualizerBuilderOption {
	return func(v *visualizerImpl) {
		v.styles = styles
	}
}

// WithDefaultStyle sets the fallback style for joints without an explicit
// entry in the style table.
//
// Parameters:
//   - style: the fallback style
//
// Returns:
//   - VisualizerBuilderOption: option function to apply
func WithDefaultStyle(style JointStyle) VisualizerBuilderOption {
	return func(v *visualizerImpl) {
		v.defaultStyle = style
	}
}

// WithBoneThickness sets the cross-section width of bone primitives.
//
// Parameters:
//   - thickness: the bone width in meters
//
// Returns:
//   - VisualizerBuilderOption: option function to apply
func WithBoneThickness(thickness float32) VisualizerBuilderOption {
	return func(v *visualizerImpl) {
		v.boneThickness = thickness
	}
}

// WithBoneColor sets the RGBA tint of bone primitives.
//
// Parameters:
//   - color: the bone color
//
// Returns:
//   - VisualizerBuilderOption: option function to apply
func WithBoneColor(color [4]float32) VisualizerBuilderOption {
	return func(v *visualizerImpl) {
		v.boneColor = color
	}
}

// WithDevice attaches a GPU device and queue, enabling Flush to upload
// instance data directly into wgpu buffers.
//
// Parameters:
//   - device: the wgpu device
//   - queue: the device's queue
//
// Returns:
//   - VisualizerBuilderOption: option function to apply
func WithDevice(device *wgpu.Device, queue *wgpu.Queue) VisualizerBuilderOption {
	return func(v *visualizerImpl) {
		v.device = device
		v.queue = queue
	}
}
