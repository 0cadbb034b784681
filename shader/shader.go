// Package shader compiles the fixed fullscreen-quad vertex stage
// together with a caller-supplied fragment stage into a linked
// program. Validation of the fragment source is left to the driver's
// compiler; its diagnostics are surfaced verbatim.
package shader

import (
	"fmt"

	"github.com/fragview/fragview/glx"
)

// Stage names the pipeline step a compile diagnostic came from.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
)

const vertexSourceGL = `#version 330 core
layout (location = 0) in vec2 in_vert;
out vec2 uv;
void main() {
    uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const vertexSourceGLES = `#version 300 es
layout (location = 0) in vec2 in_vert;
out vec2 uv;
void main() {
    uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// VertexSource returns the built-in vertex stage. It passes the quad
// position through and derives the uv interpolant, (0,0) bottom-left
// to (1,1) top-right.
func VertexSource(es bool) string {
	if es {
		return vertexSourceGLES
	}
	return vertexSourceGL
}

// VersionHeader is prepended to the caller's fragment source. The
// header differs between desktop GL and GLES.
func VersionHeader(es bool) string {
	if es {
		return "#version 300 es\nprecision highp float;\n"
	}
	return "#version 330 core\n"
}

// FragmentSource completes a caller-supplied fragment stage. The body
// must declare `in vec2 uv` and a single `out vec4` color output.
func FragmentSource(body string, es bool) string {
	return VersionHeader(es) + body
}

// CompileError carries the driver's compile or link log verbatim.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader error: %s", e.Stage, e.Log)
}

// Program owns one linked program object. It is never mutated in
// place; replacing the shader source means compiling a new Program
// and releasing the old one.
type Program struct {
	id uint32
}

// ID returns the GL program handle, or 0 after Release.
func (p *Program) ID() uint32 { return p.id }

// Compile links the fixed vertex stage with the caller's fragment
// stage. On any failure all intermediate objects are released and a
// *CompileError is returned; no partial program escapes.
func Compile(g glx.Funcs, fragmentBody string, es bool) (*Program, error) {
	vert, err := compileStage(g, VertexSource(es), glx.VertexShader, StageVertex)
	if err != nil {
		return nil, err
	}
	frag, err := compileStage(g, FragmentSource(fragmentBody, es), glx.FragmentShader, StageFragment)
	if err != nil {
		g.DeleteShader(vert)
		return nil, err
	}

	program := g.CreateProgram()
	g.AttachShader(program, vert)
	g.AttachShader(program, frag)
	g.LinkProgram(program)

	if g.GetProgrami(program, glx.LinkStatus) == 0 {
		err := &CompileError{Stage: StageLink, Log: g.ProgramInfoLog(program)}
		g.DeleteShader(vert)
		g.DeleteShader(frag)
		g.DeleteProgram(program)
		return nil, err
	}

	g.DeleteShader(vert)
	g.DeleteShader(frag)
	return &Program{id: program}, nil
}

func compileStage(g glx.Funcs, source string, xtype uint32, stage Stage) (uint32, error) {
	shader := g.CreateShader(xtype)
	g.ShaderSource(shader, source)
	g.CompileShader(shader)
	if g.GetShaderi(shader, glx.CompileStatus) == 0 {
		err := &CompileError{Stage: stage, Log: g.ShaderInfoLog(shader)}
		g.DeleteShader(shader)
		return 0, err
	}
	return shader, nil
}

// ActiveUniformNames enumerates the linked program's active uniforms.
func (p *Program) ActiveUniformNames(g glx.Funcs) []string {
	n := g.GetProgrami(p.id, glx.ActiveUniforms)
	names := make([]string, 0, n)
	for i := int32(0); i < n; i++ {
		names = append(names, g.ActiveUniformName(p.id, i))
	}
	return names
}

// Release deletes the program object. Safe to call more than once.
func (p *Program) Release(g glx.Funcs) {
	if p.id != 0 {
		g.DeleteProgram(p.id)
		p.id = 0
	}
}
