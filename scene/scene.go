// Package scene describes each demo as static meshes plus a pure per-frame
// draw list. Nothing here touches OpenGL; the renderer consumes FrameState.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/richinsley/glshapes/animation"
	"github.com/richinsley/glshapes/geometry"
	"github.com/richinsley/glshapes/options"
)

var ErrUnknownScene = errors.New("unknown scene")

// Primitive selects how a draw call connects its vertices.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleFan
	LineLoop
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case TriangleFan:
		return "triangle_fan"
	case LineLoop:
		return "line_loop"
	default:
		return fmt.Sprintf("primitive(%d)", int(p))
	}
}

// Mesh is a named vertex buffer uploaded once when the scene starts. Dynamic
// meshes are rewritten by MeshUpdates every frame.
type Mesh struct {
	Name     string
	Vertices geometry.VertexBuffer
	Indices  []uint32
	Dynamic  bool
}

type MeshUpdate struct {
	Mesh     string
	Vertices geometry.VertexBuffer
}

type DrawCall struct {
	Mesh      string
	Primitive Primitive
	First     int
	Count     int
	Indexed   bool // Count refers to the mesh's element buffer
	Transform geometry.Mat4
	Color     animation.Color
}

// FrameState is everything the renderer needs for one frame.
type FrameState struct {
	Background animation.Color
	Updates    []MeshUpdate
	Draws      []DrawCall
}

type Scene interface {
	Name() string
	Meshes() []Mesh
	Frame(time float32) (FrameState, error)
}

type constructor func(options.Settings) (Scene, error)

var registry = map[string]constructor{
	"window":    newWindowScene,
	"transform": newTransformScene,
	"movement":  newMovementScene,
}

// New builds the scene registered under name.
func New(name string, settings options.Settings) (Scene, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}
	return ctor(settings)
}

// Names lists the registered scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func circle(settings options.Settings, legacy bool) (geometry.VertexBuffer, error) {
	if legacy {
		return geometry.LegacyCircleVertices(0, 0, settings.CircleRadius, settings.CircleSegments)
	}
	return geometry.CircleVertices(0, 0, settings.CircleRadius, settings.CircleSegments)
}
