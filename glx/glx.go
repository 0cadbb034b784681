// Package glx narrows OpenGL down to the entry points the rendering
// engine actually uses. Hosts hand the engine a Funcs backed by a real
// context (see glx/gl41); tests hand it the in-memory fake from
// glx/gltest.
package glx

// Standard GL enum values, mirrored here so packages built against
// Funcs do not need the cgo bindings.
const (
	VertexShader   uint32 = 0x8B31
	FragmentShader uint32 = 0x8B30

	CompileStatus  uint32 = 0x8B81
	LinkStatus     uint32 = 0x8B82
	ActiveUniforms uint32 = 0x8B86

	ArrayBuffer uint32 = 0x8892
	StaticDraw  uint32 = 0x88E4
	Float       uint32 = 0x1406

	Texture2D        uint32 = 0x0DE1
	Texture0         uint32 = 0x84C0
	TextureMinFilter uint32 = 0x2801
	TextureMagFilter uint32 = 0x2800
	TextureWrapS     uint32 = 0x2802
	TextureWrapT     uint32 = 0x2803
	Linear           int32  = 0x2601
	ClampToEdge      int32  = 0x812F

	ColorBufferBit uint32 = 0x4000
	Triangles      uint32 = 0x0004
)

// Funcs is the GL subset used by the engine. Handle values of zero are
// never valid objects; every implementation must honor that.
type Funcs interface {
	// Shaders and programs.
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderi(shader uint32, pname uint32) int32
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program uint32, pname uint32) int32
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// Uniforms. GetUniformLocation returns -1 for names the linked
	// program does not declare. ActiveUniformName indexes the
	// program's active uniform list, 0..GetProgrami(p, ActiveUniforms).
	GetUniformLocation(program uint32, name string) int32
	ActiveUniformName(program uint32, index int32) string
	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	Uniform1i(location int32, v0 int32)
	Uniform2i(location int32, v0, v1 int32)
	Uniform3i(location int32, v0, v1, v2 int32)
	Uniform4i(location int32, v0, v1, v2, v3 int32)

	// Vertex state.
	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, data []float32, usage uint32)
	DeleteBuffer(buffer uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)

	// Textures. TexImage2D always uploads tightly packed RGBA8 pixels.
	GenTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(target, tex uint32)
	TexParameteri(target, pname uint32, param int32)
	TexImage2D(target uint32, width, height int32, pix []byte)
	DeleteTexture(tex uint32)

	// Framebuffer operations. ReadPixels fills pix with tightly packed
	// RGBA8 rows, bottom row first.
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)
	DrawArrays(mode uint32, first, count int32)
	Flush()
	ReadPixels(x, y, width, height int32, pix []byte)
}
