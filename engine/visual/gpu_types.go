package visual

import "unsafe"

// GPUInstance is the GPU-aligned per-instance data for joint marker and bone
// primitive draws: a column-major model matrix plus an RGBA tint.
// Size: 80 bytes (std430 aligned, no padding required).
type GPUInstance struct {
	Model [16]float32 // offset  0: column-major model matrix (64 bytes)
	Color [4]float32  // offset 64: instance RGBA tint (16 bytes)
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// FrameUniform is the GPU-aligned per-frame uniform data shared by the joint
// and bone draw passes: the combined view-projection matrix.
// Size: 64 bytes (std140 aligned, no padding required).
type FrameUniform struct {
	ViewProj [16]float32 // offset 0: column-major view-projection matrix (64 bytes)
}

// Size returns the size of the FrameUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (f *FrameUniform) Size() int {
	return int(unsafe.Sizeof(*f))
}
