package scene

import (
	"github.com/richinsley/glshapes/animation"
	"github.com/richinsley/glshapes/geometry"
	"github.com/richinsley/glshapes/options"
)

// transformScene spins two triangles in opposite directions on either side of
// the origin, with a circle outline between them.
type transformScene struct {
	triangles     geometry.VertexBuffer
	circle        geometry.VertexBuffer
	rotationSpeed float32
}

func newTransformScene(settings options.Settings) (Scene, error) {
	c, err := circle(settings, false)
	if err != nil {
		return nil, err
	}
	return &transformScene{
		triangles: geometry.VertexBuffer{
			{0, 0.5, 0}, {-0.5, -0.5, 0}, {0.5, -0.5, 0},
			{0, 0.5, 0}, {0.5, 0.5, 0}, {-0.5, -0.5, 0},
		},
		circle:        c,
		rotationSpeed: settings.RotationSpeed,
	}, nil
}

func (s *transformScene) Name() string { return "transform" }

func (s *transformScene) Meshes() []Mesh {
	return []Mesh{
		{Name: "triangles", Vertices: s.triangles},
		{Name: "circle", Vertices: s.circle},
	}
}

func (s *transformScene) Frame(time float32) (FrameState, error) {
	pulse := animation.Oscillate(time, 2)
	angle := time * s.rotationSpeed

	return FrameState{
		Background: animation.BackgroundColor(time),
		Draws: []DrawCall{
			{
				Mesh:      "triangles",
				Primitive: Triangles,
				First:     0,
				Count:     3,
				Transform: geometry.Multiply(geometry.Translation(-0.5, 0, 0), geometry.RotationZ(angle)),
				Color:     animation.Color{pulse, 0.3, 0.5, 1},
			},
			{
				Mesh:      "triangles",
				Primitive: Triangles,
				First:     3,
				Count:     3,
				Transform: geometry.Multiply(geometry.Translation(0.5, 0, 0), geometry.RotationZ(-angle)),
				Color:     animation.Color{0.3, pulse, 0.8, 1},
			},
			{
				Mesh:      "circle",
				Primitive: LineLoop,
				Count:     len(s.circle),
				Transform: geometry.Identity(),
				Color:     animation.White,
			},
		},
	}, nil
}
