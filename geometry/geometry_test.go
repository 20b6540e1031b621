package geometry

import (
	"errors"
	"testing"

	math32 "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func requireMatInDelta(t *testing.T, want, got Mat4) {
	t.Helper()
	for i := range want {
		require.InDeltaf(t, want[i], got[i], eps, "element (%d,%d)", i/4, i%4)
	}
}

// fromGL converts a column-major mgl32 matrix back to row-major.
func fromGL(m mgl32.Mat4) Mat4 {
	return Mat4(m.Transpose())
}

func requireVertexInDelta(t *testing.T, want, got Vertex) {
	t.Helper()
	for c := range want {
		require.InDeltaf(t, want[c], got[c], eps, "component %d of %v", c, got)
	}
}

func TestCircleVertices(t *testing.T) {
	t.Run("Quarter Points", func(t *testing.T) {
		got, err := CircleVertices(0, 0, 1, 4)
		require.NoError(t, err)
		require.Len(t, got, 4)

		want := []Vertex{{1, 0, 0}, {0, 1, 0}, {-1, 0, 0}, {0, -1, 0}}
		for i := range want {
			requireVertexInDelta(t, want[i], got[i])
		}
	})

	t.Run("Radius And Plane", func(t *testing.T) {
		for _, segments := range []int{1, 3, 7, 50, 128} {
			got, err := CircleVertices(0.25, -0.5, 0.3, segments)
			require.NoError(t, err)
			require.Len(t, got, segments)
			for _, v := range got {
				dx, dy := v.X()-0.25, v.Y()+0.5
				dist := math32.Sqrt(dx*dx + dy*dy)
				assert.InDelta(t, 0.3, dist, eps)
				assert.Equal(t, float32(0), v.Z())
			}
		}
	})

	t.Run("Counter Clockwise", func(t *testing.T) {
		got, err := CircleVertices(0, 0, 1, 12)
		require.NoError(t, err)
		for i := range got {
			a, b := got[i], got[(i+1)%len(got)]
			cross := a.X()*b.Y() - a.Y()*b.X()
			assert.Greater(t, cross, float32(0))
		}
	})

	t.Run("Invalid Segments", func(t *testing.T) {
		for _, segments := range []int{0, -1, -50} {
			got, err := CircleVertices(0, 0, 1, segments)
			require.Nil(t, got)
			require.True(t, errors.Is(err, ErrInvalidSegments))
		}
	})
}

func TestLegacyCircleVertices(t *testing.T) {
	got, err := LegacyCircleVertices(0, 0, 0.3, 50)
	require.NoError(t, err)
	require.Len(t, got, 50)

	// angle 0: x = 0.3, y = 0
	requireVertexInDelta(t, Vertex{0.3, 0, math32.Cos(0.3)}, got[0])

	// Half turn lands on the truncated pi, just short of the real one, so y
	// stays slightly positive.
	half, err := LegacyCircleVertices(0, 0, 0.3, 2)
	require.NoError(t, err)
	angle := float32(3.14159)
	x := 0.3 * math32.Cos(angle)
	y := 0.3 * math32.Sin(angle)
	require.Equal(t, Vertex{2*y + x, y, math32.Cos(angle + x)}, half[1])
	require.Greater(t, half[1].Y(), float32(0))

	_, err = LegacyCircleVertices(0, 0, 0.3, 0)
	require.ErrorIs(t, err, ErrInvalidSegments)
}

func TestRotationZ(t *testing.T) {
	t.Run("Identity Angles", func(t *testing.T) {
		require.Equal(t, Identity(), RotationZ(0))
		requireMatInDelta(t, Identity(), RotationZ(360))
	})

	t.Run("Quarter Turn", func(t *testing.T) {
		got := RotationZ(90).MulVertex(Vertex{1, 0, 0})
		requireVertexInDelta(t, Vertex{0, 1, 0}, got)
	})

	t.Run("Bottom Row", func(t *testing.T) {
		for _, deg := range []float32{-720, -45, 13, 90, 270} {
			m := RotationZ(deg)
			require.Equal(t, [4]float32{0, 0, 0, 1}, [4]float32{m[12], m[13], m[14], m[15]})
		}
	})

	t.Run("Matches mgl32", func(t *testing.T) {
		for _, deg := range []float32{-130, -50, 0, 33, 50, 180} {
			want := mgl32.HomogRotate3DZ(mgl32.DegToRad(deg))
			requireMatInDelta(t, fromGL(want), RotationZ(deg))

			v := Vertex{0.25, -0.5, 0.75}
			wantV := want.Mul4x1(v.Vec3().Vec4(1)).Vec3()
			requireVertexInDelta(t, Vertex(wantV), RotationZ(deg).MulVertex(v))
		}
	})
}

func TestTranslation(t *testing.T) {
	require.Equal(t, Identity(), Translation(0, 0, 0))

	m := Translation(-0.5, 0.25, 2)
	require.Equal(t, float32(-0.5), m.At(0, 3))
	require.Equal(t, float32(0.25), m.At(1, 3))
	require.Equal(t, float32(2), m.At(2, 3))
	require.Equal(t, Vertex{0.5, 1.25, 2}, m.MulVertex(Vertex{1, 1, 0}))

	want := mgl32.Translate3D(-0.5, 0.25, 2)
	require.Equal(t, want, m.ColumnMajor())
}

func TestMultiply(t *testing.T) {
	samples := []Mat4{
		RotationZ(37),
		Translation(1, -2, 3),
		Multiply(Translation(0.5, 0, 0), RotationZ(-50)),
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
	}

	t.Run("Identity", func(t *testing.T) {
		for _, m := range samples {
			require.Equal(t, m, Multiply(Identity(), m))
			require.Equal(t, m, Multiply(m, Identity()))
		}
	})

	t.Run("Rotate Then Translate", func(t *testing.T) {
		m := Multiply(Translation(-0.5, 0, 0), RotationZ(90))
		got := m.MulVertex(Vertex{1, 0, 0})
		requireVertexInDelta(t, Vertex{-0.5, 1, 0}, got)
	})

	t.Run("Order Matters", func(t *testing.T) {
		tr, rot := Translation(1, 0, 0), RotationZ(90)
		require.NotEqual(t, Multiply(tr, rot), Multiply(rot, tr))
	})

	t.Run("Matches mgl32", func(t *testing.T) {
		a := samples[3]
		b := Multiply(Translation(0.3, 0.1, 0), RotationZ(20))
		want := fromGL(a.ColumnMajor().Mul4(b.ColumnMajor()))
		got := Multiply(a, b)
		for i := range want {
			require.InDelta(t, want[i], got[i], 1e-4)
		}
	})

	t.Run("Self Product", func(t *testing.T) {
		m := RotationZ(45)
		requireMatInDelta(t, RotationZ(90), Multiply(m, m))
	})
}

func TestInterpolate(t *testing.T) {
	triangle := VertexBuffer{{0, 0.5, 0}, {-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0.5, -0.5, 0}}
	square := VertexBuffer{{-0.3, 0.3, 0}, {0.3, 0.3, 0}, {0.3, -0.3, 0}, {-0.3, -0.3, 0}}

	t.Run("Endpoints Exact", func(t *testing.T) {
		for n := 0; n <= len(square); n++ {
			got, err := Interpolate(triangle[:n], square[:n], 0, n)
			require.NoError(t, err)
			require.Equal(t, triangle[:n], got)

			got, err = Interpolate(triangle[:n], square[:n], 1, n)
			require.NoError(t, err)
			require.Equal(t, square[:n], got)
		}
	})

	t.Run("Midpoint", func(t *testing.T) {
		got, err := Interpolate(VertexBuffer{{0, 0, 0}}, VertexBuffer{{10, 0, 0}}, 0.5, 1)
		require.NoError(t, err)
		require.Equal(t, VertexBuffer{{5, 0, 0}}, got)
	})

	t.Run("Monotonic", func(t *testing.T) {
		start, end := VertexBuffer{{0, 0, 0}}, VertexBuffer{{10, -4, 2}}
		prev := start
		for i := 1; i <= 10; i++ {
			got, err := Interpolate(start, end, float32(i)/10, 1)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got[0][0], prev[0][0])
			assert.LessOrEqual(t, got[0][1], prev[0][1])
			assert.GreaterOrEqual(t, got[0][2], prev[0][2])
			prev = got
		}
	})

	t.Run("Inputs Untouched", func(t *testing.T) {
		start := VertexBuffer{{1, 2, 3}}
		end := VertexBuffer{{4, 5, 6}}
		got, err := Interpolate(start, end, 1, 1)
		require.NoError(t, err)
		got[0][0] = 100
		require.Equal(t, VertexBuffer{{4, 5, 6}}, end)
		require.Equal(t, VertexBuffer{{1, 2, 3}}, start)
	})

	t.Run("Count Mismatch", func(t *testing.T) {
		_, err := Interpolate(triangle[:3], square, 0.5, 4)
		require.ErrorIs(t, err, ErrVertexCountMismatch)

		_, err = Interpolate(triangle, square, 0.5, 3)
		require.ErrorIs(t, err, ErrVertexCountMismatch)

		_, err = Interpolate(nil, nil, 0.5, -1)
		require.ErrorIs(t, err, ErrVertexCountMismatch)
	})
}

func TestFlatten(t *testing.T) {
	b := VertexBuffer{{1, 2, 3}, {4, 5, 6}}
	flat := b.Flatten()
	require.Equal(t, []float32{1, 2, 3, 4, 5, 6}, flat)

	back, err := FromFlat(flat)
	require.NoError(t, err)
	require.Equal(t, b, back)

	_, err = FromFlat([]float32{1, 2})
	require.Error(t, err)
}
