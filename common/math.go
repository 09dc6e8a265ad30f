package common

import (
	"math"
	"unsafe"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Midpoint returns the component-wise arithmetic mean of two points.
//
// Parameters:
//   - a: first point
//   - b: second point
//
// Returns:
//   - [3]float32: the midpoint between a and b
func Midpoint(a, b [3]float32) [3]float32 {
	return [3]float32{
		(a[0] + b[0]) * 0.5,
		(a[1] + b[1]) * 0.5,
		(a[2] + b[2]) * 0.5,
	}
}

// Sub3 returns the component-wise difference a - b.
//
// Parameters:
//   - a: left-hand vector
//   - b: right-hand vector
//
// Returns:
//   - [3]float32: a - b
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Length3 computes the Euclidean length of a 3D vector.
//
// Parameters:
//   - v: the vector
//
// Returns:
//   - float32: the vector's length
func Length3(v [3]float32) float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// Distance returns the Euclidean distance between two points.
//
// Parameters:
//   - a: first point
//   - b: second point
//
// Returns:
//   - float32: distance between a and b
func Distance(a, b [3]float32) float32 {
	return Length3(Sub3(a, b))
}

// Normalize3 scales a vector to unit length. If the input has (near-)zero
// length the zero vector is returned along with false, so callers can fall
// back to a well-defined default instead of propagating NaN.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - [3]float32: the unit vector, or the zero vector if v is degenerate
//   - bool: true if normalization succeeded
func Normalize3(v [3]float32) ([3]float32, bool) {
	l := Length3(v)
	if l < 1e-8 {
		return [3]float32{}, false
	}
	inv := 1.0 / l
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}, true
}

// Dot3 returns the dot product of two vectors.
//
// Parameters:
//   - a: first vector
//   - b: second vector
//
// Returns:
//   - float32: a · b
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a × b.
//
// Parameters:
//   - a: first vector
//   - b: second vector
//
// Returns:
//   - [3]float32: a × b
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// QuatIdentity returns the identity quaternion (x, y, z, w).
//
// Returns:
//   - [4]float32: the identity quaternion {0, 0, 0, 1}
func QuatIdentity() [4]float32 {
	return [4]float32{0, 0, 0, 1}
}

// QuatNormalize scales a quaternion to unit length. A (near-)zero quaternion
// normalizes to identity rather than NaN.
//
// Parameters:
//   - q: the quaternion (x, y, z, w)
//
// Returns:
//   - [4]float32: the unit quaternion
func QuatNormalize(q [4]float32) [4]float32 {
	l := float32(math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])))
	if l < 1e-8 {
		return QuatIdentity()
	}
	inv := 1.0 / l
	return [4]float32{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

// QuatFromTo computes the shortest-arc rotation taking unit vector from onto
// unit vector to, as a quaternion (x, y, z, w). Both inputs must be normalized.
// The antiparallel case (from ≈ -to) has no unique shortest arc; a 180°
// rotation about a stable perpendicular axis is returned instead.
//
// Parameters:
//   - from: unit source direction
//   - to: unit target direction
//
// Returns:
//   - [4]float32: the rotation quaternion
func QuatFromTo(from, to [3]float32) [4]float32 {
	d := Dot3(from, to)

	if d < -0.999999 {
		// Pick a world axis not aligned with from to build a perpendicular.
		axis := Cross3([3]float32{1, 0, 0}, from)
		if Length3(axis) < 1e-6 {
			axis = Cross3([3]float32{0, 0, 1}, from)
		}
		axis, _ = Normalize3(axis)
		return [4]float32{axis[0], axis[1], axis[2], 0}
	}

	c := Cross3(from, to)
	return QuatNormalize([4]float32{c[0], c[1], c[2], 1 + d})
}

// RotateVec3 rotates a vector by a quaternion (x, y, z, w).
//
// Parameters:
//   - q: the rotation quaternion, assumed normalized
//   - v: the vector to rotate
//
// Returns:
//   - [3]float32: the rotated vector
func RotateVec3(q [4]float32, v [3]float32) [3]float32 {
	// v' = v + 2 * cross(q.xyz, cross(q.xyz, v) + q.w * v)
	u := [3]float32{q[0], q[1], q[2]}
	c1 := Cross3(u, v)
	c1[0] += q[3] * v[0]
	c1[1] += q[3] * v[1]
	c1[2] += q[3] * v[2]
	c2 := Cross3(u, c1)
	return [3]float32{v[0] + 2*c2[0], v[1] + 2*c2[1], v[2] + 2*c2[2]}
}

// BuildTRSMatrix constructs a 4x4 column-major model matrix from a position,
// quaternion rotation, and scale, in T * R * S order.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: translation in world space
//   - rot: rotation quaternion (x, y, z, w), assumed normalized
//   - scale: scale factors along each local axis
func BuildTRSMatrix(out []float32, pos [3]float32, rot [4]float32, scale [3]float32) {
	x, y, z, w := rot[0], rot[1], rot[2], rot[3]

	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	out[0] = (1 - 2*(yy+zz)) * scale[0]
	out[1] = (2 * (xy + wz)) * scale[0]
	out[2] = (2 * (xz - wy)) * scale[0]
	out[3] = 0

	out[4] = (2 * (xy - wz)) * scale[1]
	out[5] = (1 - 2*(xx+zz)) * scale[1]
	out[6] = (2 * (yz + wx)) * scale[1]
	out[7] = 0

	out[8] = (2 * (xz + wy)) * scale[2]
	out[9] = (2 * (yz - wx)) * scale[2]
	out[10] = (1 - 2*(xx+yy)) * scale[2]
	out[11] = 0

	out[12] = pos[0]
	out[13] = pos[1]
	out[14] = pos[2]
	out[15] = 1
}
