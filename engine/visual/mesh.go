package visual

import (
	"math"

	"github.com/Carmen-Shannon/rig-go/engine/model"
)

// SphereMesh generates a unit-radius UV sphere for joint markers.
// Vertices carry outward normals and white color; per-joint radius and tint
// come from the instance data, not the mesh.
//
// Parameters:
//   - rings: number of latitude subdivisions (minimum 3)
//   - segments: number of longitude subdivisions (minimum 3)
//
// Returns:
//   - []model.GPUVertex: the sphere vertices
//   - []uint32: triangle indices
func SphereMesh(rings, segments int) ([]model.GPUVertex, []uint32) {
	if rings < 3 {
		rings = 3
	}
	if segments < 3 {
		segments = 3
	}

	white := [4]float32{1, 1, 1, 1}
	vertices := make([]model.GPUVertex, 0, (rings+1)*(segments+1))
	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		y := float32(math.Cos(phi))
		sinPhi := math.Sin(phi)
		for s := 0; s <= segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			x := float32(sinPhi * math.Cos(theta))
			z := float32(sinPhi * math.Sin(theta))
			p := [3]float32{x, y, z}
			vertices = append(vertices, model.GPUVertex{
				Position: p,
				Normal:   p, // unit sphere: normal equals position
				Color:    white,
			})
		}
	}

	indices := make([]uint32, 0, rings*segments*6)
	stride := uint32(segments + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + stride
			indices = append(indices,
				a, b, a+1,
				a+1, b, b+1,
			)
		}
	}

	return vertices, indices
}

// BoneMesh generates a unit box elongated along +Y for bone primitives:
// 1x1x1, centered at the origin, so instance scale (thickness, length,
// thickness) stretches it to span exactly between two joints.
//
// Returns:
//   - []model.GPUVertex: the box vertices (24, four per face)
//   - []uint32: triangle indices (36)
func BoneMesh() ([]model.GPUVertex, []uint32) {
	white := [4]float32{1, 1, 1, 1}
	h := float32(0.5)

	// Each face gets its own four vertices so normals stay flat.
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}

	vertices := make([]model.GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for _, c := range f.corners {
			vertices = append(vertices, model.GPUVertex{
				Position: c,
				Normal:   f.normal,
				Color:    white,
			})
		}
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}

	return vertices, indices
}
