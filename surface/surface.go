// Package surface owns the GPU resources for one shader widget
// instance and drives its realize, render, resize, unrealize
// lifecycle. All calls must come from the thread that owns the GL
// context; the package has no internal locking.
package surface

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/fragview/fragview/glx"
	"github.com/fragview/fragview/quad"
	"github.com/fragview/fragview/shader"
	"github.com/fragview/fragview/texture"
	"github.com/fragview/fragview/uniform"
)

// State tracks where the surface is in its lifecycle.
type State int

const (
	// StateUnrealized holds no GPU resources.
	StateUnrealized State = iota
	// StateRealizing is transient, entered while resources are being
	// acquired on the context thread.
	StateRealizing
	// StateReady has all resources allocated and awaits render or
	// uniform-update requests.
	StateReady
	// StateFailed is absorbing: realize failed, everything acquired so
	// far was released, and the surface refuses further work.
	StateFailed
	// StateDisposed is terminal: resources released, handles invalid.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUnrealized:
		return "unrealized"
	case StateRealizing:
		return "realizing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

var (
	// ErrNotReady reports an operation that needs a realized surface.
	ErrNotReady = errors.New("surface not realized")
	// ErrDisposed reports an operation on a surface whose GPU
	// resources have been released.
	ErrDisposed = errors.New("surface disposed")
)

// Config carries everything a surface needs at construction. Textures
// are bound to the samplers tex0, tex1, ... in path order.
type Config struct {
	FragmentSource  string
	TexturePaths    []string
	InitialUniforms map[string]uniform.Value
}

// Surface aggregates one program, zero or more textures, a uniform
// table and the quad. It references, but does not own, the GL context
// it was realized against.
type Surface struct {
	cfg   Config
	state State

	g  glx.Funcs
	es bool

	program  *shader.Program
	textures []texture.Texture
	mesh     *quad.Mesh
	uniforms *uniform.Table

	// Units of samplers the shader declares but no texture covers;
	// they get the shared default texture.
	defaultTex   uint32
	defaultUnits []int

	width, height int32
	redraw        func()
}

// New builds an unrealized surface. No GPU work happens until Realize
// is called with a current context.
func New(cfg Config) *Surface {
	return &Surface{cfg: cfg, state: StateUnrealized}
}

// OnRedraw registers the host's redraw-request hook, invoked after
// every successful setter. Setters never render synchronously.
func (s *Surface) OnRedraw(fn func()) {
	s.redraw = fn
}

// State returns the current lifecycle state.
func (s *Surface) State() State {
	return s.state
}

// Textures returns the loaded texture set, unit order.
func (s *Surface) Textures() []texture.Texture {
	return s.textures
}

// Realize acquires all GPU resources: quad geometry, textures, the
// linked program, and the seeded uniform table. On any failure the
// resources acquired so far are released, the surface enters the
// failed state, and the originating error is returned.
func (s *Surface) Realize(g glx.Funcs, es bool) error {
	switch s.state {
	case StateUnrealized:
	case StateDisposed:
		return ErrDisposed
	default:
		return fmt.Errorf("realize in state %s", s.state)
	}
	s.state = StateRealizing
	s.g = g
	s.es = es

	s.mesh = quad.New(g)

	textures, err := texture.LoadAll(g, s.cfg.TexturePaths)
	if err != nil {
		s.fail()
		return err
	}
	s.textures = textures

	program, err := shader.Compile(g, s.cfg.FragmentSource, es)
	if err != nil {
		s.fail()
		return err
	}
	s.program = program

	s.bindSamplers()
	s.uniforms = uniform.NewTable(s.cfg.InitialUniforms)
	s.state = StateReady
	return nil
}

// bindSamplers assigns each texture's sampler uniform (tex0, tex1, ...)
// to its unit and applies the default-texture policy: any texN the
// shader declares without a matching loaded texture samples a shared
// 1x1 opaque-black texture, so sampling stays defined.
func (s *Surface) bindSamplers() {
	g := s.g
	g.UseProgram(s.program.ID())
	for _, t := range s.textures {
		name := fmt.Sprintf("tex%d", t.Unit)
		loc := g.GetUniformLocation(s.program.ID(), name)
		if loc < 0 {
			log.Printf("Texture not used in shader: %s", t.Path)
			continue
		}
		g.Uniform1i(loc, int32(t.Unit))
	}

	s.defaultUnits = s.defaultUnits[:0]
	for _, name := range s.program.ActiveUniformNames(g) {
		unit, ok := samplerUnit(name)
		if !ok || unit < len(s.textures) {
			continue
		}
		if s.defaultTex == 0 {
			s.defaultTex = texture.Default(g)
		}
		loc := g.GetUniformLocation(s.program.ID(), name)
		if loc >= 0 {
			g.Uniform1i(loc, int32(unit))
		}
		s.defaultUnits = append(s.defaultUnits, unit)
	}
	g.UseProgram(0)
}

// samplerUnit extracts N from a "texN" uniform name.
func samplerUnit(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "tex")
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// fail releases whatever was acquired and enters the absorbing failed
// state.
func (s *Surface) fail() {
	s.releaseResources()
	s.state = StateFailed
}

func (s *Surface) releaseResources() {
	g := s.g
	if g == nil {
		return
	}
	if s.program != nil {
		s.program.Release(g)
		s.program = nil
	}
	if s.textures != nil {
		texture.Release(g, s.textures)
		s.textures = nil
	}
	if s.defaultTex != 0 {
		g.DeleteTexture(s.defaultTex)
		s.defaultTex = 0
	}
	if s.mesh != nil {
		s.mesh.Release(g)
		s.mesh = nil
	}
}

// Resize records the drawable size; the viewport is applied on the
// next render.
func (s *Surface) Resize(width, height int) {
	s.width = int32(width)
	s.height = int32(height)
}

// Render draws one frame: bind program, upload dirty uniforms, bind
// quad and textures, one draw call. Bindings are restored so no GL
// state leaks across the call.
func (s *Surface) Render() error {
	switch s.state {
	case StateReady:
	case StateDisposed:
		return ErrDisposed
	default:
		return ErrNotReady
	}
	g := s.g

	if s.width > 0 && s.height > 0 {
		g.Viewport(0, 0, s.width, s.height)
	}
	g.ClearColor(0, 0, 0, 0)
	g.Clear(glx.ColorBufferBit)

	g.UseProgram(s.program.ID())
	s.uniforms.UploadDirty(g, s.program.ID())
	s.mesh.Bind(g)

	for _, t := range s.textures {
		g.ActiveTexture(glx.Texture0 + uint32(t.Unit))
		g.BindTexture(glx.Texture2D, t.ID)
	}
	for _, unit := range s.defaultUnits {
		g.ActiveTexture(glx.Texture0 + uint32(unit))
		g.BindTexture(glx.Texture2D, s.defaultTex)
	}

	g.DrawArrays(glx.Triangles, 0, quad.VertexCount)

	for _, t := range s.textures {
		g.ActiveTexture(glx.Texture0 + uint32(t.Unit))
		g.BindTexture(glx.Texture2D, 0)
	}
	for _, unit := range s.defaultUnits {
		g.ActiveTexture(glx.Texture0 + uint32(unit))
		g.BindTexture(glx.Texture2D, 0)
	}
	s.mesh.Unbind(g)
	g.UseProgram(0)
	g.Flush()
	return nil
}

// SetFragmentSource replaces the fragment stage. The previous program
// stays bound for rendering until the replacement links; on failure it
// is retained and the error returned. On success uniform locations are
// re-resolved and every uniform re-uploaded on the next render.
func (s *Surface) SetFragmentSource(src string) error {
	switch s.state {
	case StateReady:
	case StateDisposed:
		return ErrDisposed
	default:
		return ErrNotReady
	}

	program, err := shader.Compile(s.g, src, s.es)
	if err != nil {
		return err
	}
	s.program.Release(s.g)
	s.program = program
	s.cfg.FragmentSource = src

	s.bindSamplers()
	s.uniforms.InvalidateLocations()
	s.uniforms.MarkAllDirty()
	s.requestRedraw()
	return nil
}

func (s *Surface) requestRedraw() {
	if s.redraw != nil {
		s.redraw()
	}
}

// set is the common typed-setter path: valid only after a successful
// realize, mutates the table and requests a redraw.
func (s *Surface) set(name string, v uniform.Value) error {
	switch s.state {
	case StateReady:
	case StateDisposed:
		return ErrDisposed
	default:
		return ErrNotReady
	}
	s.uniforms.Set(name, v)
	s.requestRedraw()
	return nil
}

func (s *Surface) SetFloat(name string, v float32) error {
	return s.set(name, uniform.Float(v))
}

func (s *Surface) SetVec2(name string, x, y float32) error {
	return s.set(name, uniform.Vec2(x, y))
}

func (s *Surface) SetVec3(name string, x, y, z float32) error {
	return s.set(name, uniform.Vec3(x, y, z))
}

func (s *Surface) SetVec4(name string, x, y, z, w float32) error {
	return s.set(name, uniform.Vec4(x, y, z, w))
}

func (s *Surface) SetInt(name string, v int32) error {
	return s.set(name, uniform.Int(v))
}

func (s *Surface) SetIVec2(name string, x, y int32) error {
	return s.set(name, uniform.IVec2(x, y))
}

func (s *Surface) SetIVec3(name string, x, y, z int32) error {
	return s.set(name, uniform.IVec3(x, y, z))
}

func (s *Surface) SetIVec4(name string, x, y, z, w int32) error {
	return s.set(name, uniform.IVec4(x, y, z, w))
}

// SetValue applies an already-classified uniform value.
func (s *Surface) SetValue(name string, v uniform.Value) error {
	return s.set(name, v)
}

// Unrealize releases program, textures and geometry exactly once and
// invalidates the surface. Any later operation fails with ErrDisposed.
// Calling Unrealize again is a no-op.
func (s *Surface) Unrealize() {
	if s.state == StateDisposed {
		return
	}
	s.releaseResources()
	s.state = StateDisposed
}
