package scene

import (
	"github.com/richinsley/glshapes/animation"
	"github.com/richinsley/glshapes/geometry"
	"github.com/richinsley/glshapes/options"
)

// windowScene draws a single static quad built from two indexed triangles.
type windowScene struct {
	quad    geometry.VertexBuffer
	indices []uint32
}

func newWindowScene(options.Settings) (Scene, error) {
	return &windowScene{
		quad: geometry.VertexBuffer{
			{0.5, 0.5, 0},    // top right
			{0.4, -0.4, 0.1}, // bottom right
			{-0.5, -0.5, 0},  // bottom left
			{-0.4, 0.4, 0},   // top left
		},
		indices: []uint32{
			0, 1, 3,
			1, 2, 3,
		},
	}, nil
}

func (s *windowScene) Name() string { return "window" }

func (s *windowScene) Meshes() []Mesh {
	return []Mesh{{Name: "quad", Vertices: s.quad, Indices: s.indices}}
}

func (s *windowScene) Frame(float32) (FrameState, error) {
	return FrameState{
		Background: animation.Slate,
		Draws: []DrawCall{{
			Mesh:      "quad",
			Primitive: Triangles,
			Count:     len(s.indices),
			Indexed:   true,
			Transform: geometry.Identity(),
			Color:     animation.Color{0.8, 0.3, 0.02, 1},
		}},
	}, nil
}
