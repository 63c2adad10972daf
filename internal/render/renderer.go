// Package render is the OpenGL side of the demos: window setup, the two
// shader programs, and mesh buffers. Everything here must run on the thread
// that owns the GL context.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"cgdemos/internal/circles"
	"cgdemos/internal/mesh"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Mesh is an uploaded vertex buffer, optionally indexed.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
	mode          uint32
}

// NewMesh uploads vertices with the position/normal/texcoord layout at
// attribute locations 0/1/2. With nil indices the mesh draws as a flat
// triangle list.
func NewMesh(vertices []mesh.Vertex, indices []uint32) *Mesh {
	m := &Mesh{mode: gl.TRIANGLES}
	data := mesh.Flatten(vertices)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, mesh.VertexStride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, mesh.VertexStride, glOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, mesh.VertexStride, glOffset(6*4))

	if len(indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		m.count = int32(len(indices))
	} else {
		m.count = int32(len(vertices))
	}
	gl.BindVertexArray(0)
	return m
}

func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.ebo != 0 {
		gl.DrawElements(m.mode, m.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(m.mode, 0, m.count)
	}
}

func (m *Mesh) Destroy() {
	for _, id := range []uint32{m.vbo, m.ebo} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
}

// Renderer owns the circle and mesh programs with their uniform locations.
type Renderer struct {
	circleProg uint32
	meshProg   uint32

	cAspect, cModel, cColor, cSolid int32
	mAspect, mProj, mView, mModel   int32
	mTcMode                         int32

	wireframe bool
}

func NewRenderer() (*Renderer, error) {
	circleProg, err := linkProgram(circleVertSrc, circleFragSrc)
	if err != nil {
		return nil, fmt.Errorf("circle program: %w", err)
	}
	meshProg, err := linkProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		gl.DeleteProgram(circleProg)
		return nil, fmt.Errorf("mesh program: %w", err)
	}

	r := &Renderer{circleProg: circleProg, meshProg: meshProg}
	r.cAspect = gl.GetUniformLocation(circleProg, gl.Str("aspect_matrix\x00"))
	r.cModel = gl.GetUniformLocation(circleProg, gl.Str("model_matrix\x00"))
	r.cColor = gl.GetUniformLocation(circleProg, gl.Str("solid_color\x00"))
	r.cSolid = gl.GetUniformLocation(circleProg, gl.Str("b_solid_color\x00"))

	r.mAspect = gl.GetUniformLocation(meshProg, gl.Str("aspect_matrix\x00"))
	r.mProj = gl.GetUniformLocation(meshProg, gl.Str("projection_matrix\x00"))
	r.mView = gl.GetUniformLocation(meshProg, gl.Str("view_matrix\x00"))
	r.mModel = gl.GetUniformLocation(meshProg, gl.Str("model_matrix\x00"))
	r.mTcMode = gl.GetUniformLocation(meshProg, gl.Str("tc_mode\x00"))

	gl.ClearColor(39/255.0, 40/255.0, 34/255.0, 1)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.circleProg, r.meshProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

// BeginFrame clears color and depth and applies the fill mode.
func (r *Renderer) BeginFrame() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (r *Renderer) SetWireframe(on bool) { r.wireframe = on }

func (r *Renderer) Wireframe() bool { return r.wireframe }

func setMat4(loc int32, m mgl32.Mat4) {
	if loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// DrawCircles draws one unit circle per instance. With solid unset the
// circles show their texcoords instead of their color.
func (r *Renderer) DrawCircles(circle *Mesh, instances []circles.Instance, aspect mgl32.Mat4, solid bool) {
	// Painter's order: later circles cover earlier ones.
	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(r.circleProg)
	setMat4(r.cAspect, aspect)
	var b int32
	if solid {
		b = 1
	}
	gl.Uniform1i(r.cSolid, b)
	for i := range instances {
		c := instances[i].Color
		gl.Uniform4f(r.cColor, c[0], c[1], c[2], c[3])
		setMat4(r.cModel, instances[i].Transform)
		circle.Draw()
	}
}

// MeshPass holds the per-frame uniforms of the mesh program.
type MeshPass struct {
	Aspect, Projection, View mgl32.Mat4
	TcMode                   int32
}

// BeginMeshes binds the mesh program and uploads the frame uniforms; follow
// with DrawMesh per model.
func (r *Renderer) BeginMeshes(p MeshPass) {
	gl.Enable(gl.DEPTH_TEST)
	gl.UseProgram(r.meshProg)
	setMat4(r.mAspect, p.Aspect)
	setMat4(r.mProj, p.Projection)
	setMat4(r.mView, p.View)
	gl.Uniform1i(r.mTcMode, p.TcMode)
}

func (r *Renderer) DrawMesh(m *Mesh, model mgl32.Mat4) {
	setMat4(r.mModel, model)
	m.Draw()
}
