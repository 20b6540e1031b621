package geometry

import (
	"errors"
	"fmt"

	math32 "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrInvalidSegments     = errors.New("segment count must be at least 1")
	ErrVertexCountMismatch = errors.New("vertex buffers do not match the requested vertex count")
)

// Vertex is a single (x, y, z) position.
type Vertex [3]float32

func (v Vertex) X() float32 { return v[0] }
func (v Vertex) Y() float32 { return v[1] }
func (v Vertex) Z() float32 { return v[2] }

// Vec3 returns the vertex as an mgl32 vector.
func (v Vertex) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// VertexBuffer is an ordered list of vertices. Slice order is draw order.
type VertexBuffer []Vertex

// Flatten returns the buffer as x, y, z triples ready for glBufferData.
func (b VertexBuffer) Flatten() []float32 {
	out := make([]float32, 0, len(b)*3)
	for _, v := range b {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

// FromFlat builds a buffer from packed x, y, z triples.
func FromFlat(data []float32) (VertexBuffer, error) {
	if len(data)%3 != 0 {
		return nil, fmt.Errorf("flat vertex data length %d is not a multiple of 3", len(data))
	}
	b := make(VertexBuffer, len(data)/3)
	for i := range b {
		b[i] = Vertex{data[i*3], data[i*3+1], data[i*3+2]}
	}
	return b, nil
}

// CircleVertices approximates a circle in the z=0 plane with a regular polygon.
// The vertices run counter-clockwise from angle 0 and the loop is not closed;
// draw it with a line loop or triangle fan.
func CircleVertices(centerX, centerY, radius float32, segments int) (VertexBuffer, error) {
	if segments < 1 {
		return nil, fmt.Errorf("circle with %d segments: %w", segments, ErrInvalidSegments)
	}

	vertices := make(VertexBuffer, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math32.Pi * float32(i) / float32(segments)
		vertices[i] = Vertex{
			centerX + radius*math32.Cos(angle),
			centerY + radius*math32.Sin(angle),
			0,
		}
	}
	return vertices, nil
}

// legacyPi is the truncated pi the movement demo's outline was built with.
const legacyPi = 3.14159

// LegacyCircleVertices follows the skewed, non-planar outline formula of the
// original movement demo: x is sheared by 2y and z follows cos(angle+x).
func LegacyCircleVertices(centerX, centerY, radius float32, segments int) (VertexBuffer, error) {
	if segments < 1 {
		return nil, fmt.Errorf("circle with %d segments: %w", segments, ErrInvalidSegments)
	}

	vertices := make(VertexBuffer, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * legacyPi * float32(i) / float32(segments)
		x := centerX + radius*math32.Cos(angle)
		y := centerY + radius*math32.Sin(angle)
		vertices[i] = Vertex{2*y + x, y, math32.Cos(angle + x)}
	}
	return vertices, nil
}

// Lerp blends a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Interpolate blends start towards end component-wise. Both buffers must hold
// exactly vertexCount vertices. t is expected to be clamped to [0,1] already.
// At t == 0 and t == 1 the endpoints are reproduced exactly.
func Interpolate(start, end VertexBuffer, t float32, vertexCount int) (VertexBuffer, error) {
	if vertexCount < 0 || len(start) != vertexCount || len(end) != vertexCount {
		return nil, fmt.Errorf("interpolate %d vertices (start %d, end %d): %w",
			vertexCount, len(start), len(end), ErrVertexCountMismatch)
	}

	result := make(VertexBuffer, vertexCount)
	switch t {
	case 0:
		copy(result, start)
		return result, nil
	case 1:
		copy(result, end)
		return result, nil
	}

	for i := range result {
		for c := 0; c < 3; c++ {
			result[i][c] = Lerp(start[i][c], end[i][c], t)
		}
	}
	return result, nil
}
