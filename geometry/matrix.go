package geometry

import (
	math32 "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mat4 is a 4x4 homogeneous transform stored row-major: element (row, col)
// lives at index row*4+col.
type Mat4 [16]float32

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotationZ builds a rotation about the Z axis. Positive angles rotate
// counter-clockwise.
func RotationZ(angleDegrees float32) Mat4 {
	rad := angleDegrees * math32.Pi / 180
	cosA := math32.Cos(rad)
	sinA := math32.Sin(rad)

	return Mat4{
		cosA, -sinA, 0, 0,
		sinA, cosA, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation builds a matrix that moves points by (x, y, z).
func Translation(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Multiply returns a×b. Applied to a point, b acts first, so
// Multiply(Translation(...), RotationZ(...)) rotates about the origin and
// then moves.
func Multiply(a, b Mat4) Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m[i*4+j] = a[i*4+0]*b[0*4+j] +
				a[i*4+1]*b[1*4+j] +
				a[i*4+2]*b[2*4+j] +
				a[i*4+3]*b[3*4+j]
		}
	}
	return m
}

// At returns the element at row, col.
func (m Mat4) At(row, col int) float32 {
	return m[row*4+col]
}

// MulVertex transforms v as the point (x, y, z, 1). The w row is ignored; the
// matrices built here are affine.
func (m Mat4) MulVertex(v Vertex) Vertex {
	return Vertex{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11],
	}
}

// ColumnMajor converts to GL's memory layout, suitable for
// glUniformMatrix4fv with transpose set to false.
func (m Mat4) ColumnMajor() mgl32.Mat4 {
	return mgl32.Mat4(m).Transpose()
}
