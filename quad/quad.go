// Package quad holds the one piece of geometry the engine ever draws:
// a fullscreen quad as two triangles in clip space.
package quad

import (
	"github.com/fragview/fragview/glx"
)

var vertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// VertexCount is the number of vertices a draw of the quad issues.
const VertexCount int32 = 6

// Mesh is the quad's VAO/VBO pair. Created once, never mutated.
type Mesh struct {
	vao uint32
	vbo uint32
}

// New uploads the quad geometry and configures attribute 0 as two
// floats per vertex. Leaves no vertex state bound.
func New(g glx.Funcs) *Mesh {
	m := &Mesh{}
	m.vao = g.GenVertexArray()
	m.vbo = g.GenBuffer()
	g.BindVertexArray(m.vao)
	g.BindBuffer(glx.ArrayBuffer, m.vbo)
	g.BufferData(glx.ArrayBuffer, vertices, glx.StaticDraw)
	g.EnableVertexAttribArray(0)
	g.VertexAttribPointer(0, 2, glx.Float, false, 2*4, 0)
	g.BindBuffer(glx.ArrayBuffer, 0)
	g.BindVertexArray(0)
	return m
}

// Bind makes the quad's vertex state current.
func (m *Mesh) Bind(g glx.Funcs) {
	g.BindVertexArray(m.vao)
}

// Unbind clears the vertex state binding.
func (m *Mesh) Unbind(g glx.Funcs) {
	g.BindVertexArray(0)
}

// Release deletes the VAO and VBO. Safe to call more than once.
func (m *Mesh) Release(g glx.Funcs) {
	if m.vao != 0 {
		g.DeleteVertexArray(m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		g.DeleteBuffer(m.vbo)
		m.vbo = 0
	}
}
