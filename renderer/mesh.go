package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glshapes/geometry"
	"github.com/richinsley/glshapes/scene"
)

// gpuMesh holds the VAO and buffers for one scene mesh.
type gpuMesh struct {
	name        string
	vao         uint32
	vbo         uint32
	ebo         uint32
	vertexCount int
	indexCount  int
	dynamic     bool
}

func newGPUMesh(m scene.Mesh) (*gpuMesh, error) {
	if len(m.Vertices) == 0 {
		return nil, fmt.Errorf("mesh %s has no vertices", m.Name)
	}

	g := &gpuMesh{
		name:        m.Name,
		vertexCount: len(m.Vertices),
		indexCount:  len(m.Indices),
		dynamic:     m.Dynamic,
	}

	var usage uint32 = gl.STATIC_DRAW
	if m.Dynamic {
		usage = gl.DYNAMIC_DRAW
	}

	data := m.Vertices.Flatten()
	gl.GenVertexArrays(1, &g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.BindVertexArray(g.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usage)

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &g.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	// Unbind the VAO first so it keeps its element buffer binding.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return g, nil
}

// update rewrites the vertex data of a dynamic mesh in place.
func (g *gpuMesh) update(vertices geometry.VertexBuffer) error {
	if !g.dynamic {
		return fmt.Errorf("mesh %s is static", g.name)
	}
	if len(vertices) != g.vertexCount {
		return fmt.Errorf("mesh %s update has %d vertices, want %d", g.name, len(vertices), g.vertexCount)
	}
	data := vertices.Flatten()
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

func (g *gpuMesh) draw(call scene.DrawCall) error {
	mode, err := glMode(call.Primitive)
	if err != nil {
		return err
	}
	limit := g.vertexCount
	if call.Indexed {
		limit = g.indexCount
	}
	if call.First < 0 || call.Count < 0 || call.First+call.Count > limit {
		return fmt.Errorf("draw of %s range [%d,%d) exceeds %d", g.name, call.First, call.First+call.Count, limit)
	}

	gl.BindVertexArray(g.vao)
	if call.Indexed {
		gl.DrawElements(mode, int32(call.Count), gl.UNSIGNED_INT, gl.PtrOffset(call.First*4))
	} else {
		gl.DrawArrays(mode, int32(call.First), int32(call.Count))
	}
	return nil
}

func (g *gpuMesh) destroy() {
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
}

func glMode(p scene.Primitive) (uint32, error) {
	switch p {
	case scene.Triangles:
		return gl.TRIANGLES, nil
	case scene.TriangleFan:
		return gl.TRIANGLE_FAN, nil
	case scene.LineLoop:
		return gl.LINE_LOOP, nil
	default:
		return 0, fmt.Errorf("unsupported primitive %v", p)
	}
}
