package scene

import (
	math32 "github.com/chewxy/math32"
	"github.com/richinsley/glshapes/animation"
	"github.com/richinsley/glshapes/geometry"
	"github.com/richinsley/glshapes/options"
)

const (
	slideAmplitude = 2.3
	swingAmplitude = 30
)

// movementScene rotates a triangle in place, morphs a second triangle into a
// square while sliding it sideways, and swings a circle outline vertically.
type movementScene struct {
	rotating geometry.VertexBuffer
	// morphFrom is the triangle padded to the square's vertex count by
	// repeating its last corner, so both endpoints have the same length.
	morphFrom geometry.VertexBuffer
	morphTo   geometry.VertexBuffer
	circle    geometry.VertexBuffer

	rotationSpeed      float32
	transitionStart    float32
	transitionDuration float32
}

func newMovementScene(settings options.Settings) (Scene, error) {
	c, err := circle(settings, settings.LegacyCircle)
	if err != nil {
		return nil, err
	}
	triangle := geometry.VertexBuffer{{0, 0.5, 0}, {-0.5, -0.5, 0}, {0.5, -0.5, 0}}
	return &movementScene{
		rotating:  triangle,
		morphFrom: append(append(geometry.VertexBuffer{}, triangle...), triangle[2]),
		morphTo: geometry.VertexBuffer{
			{-0.3, 0.3, 0}, {0.3, 0.3, 0}, {0.3, -0.3, 0}, {-0.3, -0.3, 0},
		},
		circle:             c,
		rotationSpeed:      settings.RotationSpeed,
		transitionStart:    settings.TransitionStart,
		transitionDuration: settings.TransitionDuration,
	}, nil
}

func (s *movementScene) Name() string { return "movement" }

func (s *movementScene) Meshes() []Mesh {
	return []Mesh{
		{Name: "rotating", Vertices: s.rotating},
		{Name: "morph", Vertices: s.morphFrom, Dynamic: true},
		{Name: "circle", Vertices: s.circle},
	}
}

func (s *movementScene) Frame(time float32) (FrameState, error) {
	t := animation.TransitionParam(time, s.transitionStart, s.transitionDuration)
	morphed, err := geometry.Interpolate(s.morphFrom, s.morphTo, t, len(s.morphTo))
	if err != nil {
		return FrameState{}, err
	}

	// The fan only shows the fourth corner once the square is complete.
	morphCount := 3
	if t >= 1 {
		morphCount = len(morphed)
	}

	sin := math32.Sin(time)
	return FrameState{
		Background: animation.BackgroundColor(time),
		Updates:    []MeshUpdate{{Mesh: "morph", Vertices: morphed}},
		Draws: []DrawCall{
			{
				Mesh:      "rotating",
				Primitive: Triangles,
				Count:     len(s.rotating),
				Transform: geometry.RotationZ(time * s.rotationSpeed),
				Color:     animation.Color{1, 0.3, 0.5, 1},
			},
			{
				Mesh:      "morph",
				Primitive: TriangleFan,
				Count:     morphCount,
				Transform: geometry.Translation(sin*slideAmplitude, 0.5, 0),
				Color:     animation.Color{0.5, 0.7, 1, 1},
			},
			{
				Mesh:      "circle",
				Primitive: LineLoop,
				Count:     len(s.circle),
				Transform: geometry.Translation(0, sin*swingAmplitude, 0),
				Color:     animation.White,
			},
		},
	}, nil
}
