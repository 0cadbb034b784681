// Package gl41 implements glx.Funcs on top of the go-gl bindings for
// OpenGL 4.1 core. A valid context must be current on the calling
// thread before New is called.
package gl41

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/fragview/fragview/glx"
)

// GL dispatches every glx.Funcs call straight to the driver.
type GL struct{}

// New loads the GL function pointers for the current context.
func New() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	return &GL{}, nil
}

var _ glx.Funcs = (*GL)(nil)

func (*GL) CreateShader(xtype uint32) uint32 {
	return gl.CreateShader(xtype)
}

func (*GL) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (*GL) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (*GL) GetShaderi(shader uint32, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (*GL) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (*GL) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (*GL) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (*GL) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (*GL) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (*GL) GetProgrami(program uint32, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (*GL) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (*GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (*GL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (*GL) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*GL) ActiveUniformName(program uint32, index int32) string {
	var length, size int32
	var xtype uint32
	buf := make([]byte, 256)
	gl.GetActiveUniform(program, uint32(index), int32(len(buf)), &length, &size, &xtype, &buf[0])
	return string(buf[:length])
}

func (*GL) Uniform1f(location int32, v0 float32)             { gl.Uniform1f(location, v0) }
func (*GL) Uniform2f(location int32, v0, v1 float32)         { gl.Uniform2f(location, v0, v1) }
func (*GL) Uniform3f(location int32, v0, v1, v2 float32)     { gl.Uniform3f(location, v0, v1, v2) }
func (*GL) Uniform4f(location int32, v0, v1, v2, v3 float32) { gl.Uniform4f(location, v0, v1, v2, v3) }
func (*GL) Uniform1i(location int32, v0 int32)               { gl.Uniform1i(location, v0) }
func (*GL) Uniform2i(location int32, v0, v1 int32)           { gl.Uniform2i(location, v0, v1) }
func (*GL) Uniform3i(location int32, v0, v1, v2 int32)       { gl.Uniform3i(location, v0, v1, v2) }
func (*GL) Uniform4i(location int32, v0, v1, v2, v3 int32)   { gl.Uniform4i(location, v0, v1, v2, v3) }

func (*GL) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (*GL) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (*GL) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (*GL) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (*GL) BindBuffer(target, buffer uint32) {
	gl.BindBuffer(target, buffer)
}

func (*GL) BufferData(target uint32, data []float32, usage uint32) {
	gl.BufferData(target, len(data)*4, gl.Ptr(data), usage)
}

func (*GL) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (*GL) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (*GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (*GL) GenTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (*GL) ActiveTexture(unit uint32) {
	gl.ActiveTexture(unit)
}

func (*GL) BindTexture(target, tex uint32) {
	gl.BindTexture(target, tex)
}

func (*GL) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (*GL) TexImage2D(target uint32, width, height int32, pix []byte) {
	gl.TexImage2D(target, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
}

func (*GL) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (*GL) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (*GL) Clear(mask uint32) {
	gl.Clear(mask)
}

func (*GL) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (*GL) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (*GL) Flush() {
	gl.Flush()
}

func (*GL) ReadPixels(x, y, width, height int32, pix []byte) {
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
}
