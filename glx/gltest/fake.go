// Package gltest provides an in-memory glx.Funcs for tests: object
// handles, compile/link results, uniform uploads and texture bindings
// are all simulated so engine behavior can be asserted without a GPU.
package gltest

import (
	"github.com/fragview/fragview/glx"
)

type Shader struct {
	Type    uint32
	Source  string
	OK      bool
	InfoLog string
	Deleted bool
}

type Program struct {
	Shaders   []uint32
	Linked    bool
	InfoLog   string
	Locations map[string]int32
	Active    []string
	Deleted   bool
}

type Texture struct {
	Width, Height int32
	Pix           []byte
	Params        map[uint32]int32
	Deleted       bool
}

// Draw is a snapshot of relevant state at a DrawArrays call.
type Draw struct {
	Mode         uint32
	First, Count int32
	Program      uint32
	VAO          uint32
	Units        map[int]uint32
}

type Fake struct {
	// CompileErr, when set, returns a non-empty driver log for sources
	// that should fail to compile. LinkErr fails every link.
	CompileErr func(xtype uint32, source string) string
	LinkErr    string

	// UniformDecls is the set of uniform names every linked program
	// declares, in declaration order.
	UniformDecls []string

	Shaders  map[uint32]*Shader
	Programs map[uint32]*Program
	Textures map[uint32]*Texture
	VAOs     map[uint32]bool
	Buffers  map[uint32]bool
	Data     map[uint32][]float32

	CurrentProgram uint32
	BoundVAO       uint32
	boundBuffer    uint32
	activeUnit     int
	UnitBindings   map[int]uint32

	Floats  map[int32][]float32
	Ints    map[int32][]int32
	Uploads map[int32]int

	Draws      []Draw
	Clears     int
	Viewports  [][4]int32
	Flushes    int
	ReadsBack  int
	FramePix   []byte
	nextHandle uint32
	nextLoc    int32
}

func New() *Fake {
	return &Fake{
		Shaders:      make(map[uint32]*Shader),
		Programs:     make(map[uint32]*Program),
		Textures:     make(map[uint32]*Texture),
		VAOs:         make(map[uint32]bool),
		Buffers:      make(map[uint32]bool),
		Data:         make(map[uint32][]float32),
		UnitBindings: make(map[int]uint32),
		Floats:       make(map[int32][]float32),
		Ints:         make(map[int32][]int32),
		Uploads:      make(map[int32]int),
	}
}

var _ glx.Funcs = (*Fake)(nil)

func (f *Fake) handle() uint32 {
	f.nextHandle++
	return f.nextHandle
}

// LiveHandles counts shaders, programs, textures, vertex arrays and
// buffers that have been created but not deleted.
func (f *Fake) LiveHandles() int {
	n := 0
	for _, s := range f.Shaders {
		if !s.Deleted {
			n++
		}
	}
	for _, p := range f.Programs {
		if !p.Deleted {
			n++
		}
	}
	for _, t := range f.Textures {
		if !t.Deleted {
			n++
		}
	}
	for _, deleted := range f.VAOs {
		if !deleted {
			n++
		}
	}
	for _, deleted := range f.Buffers {
		if !deleted {
			n++
		}
	}
	return n
}

// FloatUniform returns the float values last uploaded to the named
// uniform of program.
func (f *Fake) FloatUniform(program uint32, name string) ([]float32, bool) {
	p, ok := f.Programs[program]
	if !ok {
		return nil, false
	}
	loc, ok := p.Locations[name]
	if !ok {
		return nil, false
	}
	v, ok := f.Floats[loc]
	return v, ok
}

// IntUniform returns the integer values last uploaded to the named
// uniform of program.
func (f *Fake) IntUniform(program uint32, name string) ([]int32, bool) {
	p, ok := f.Programs[program]
	if !ok {
		return nil, false
	}
	loc, ok := p.Locations[name]
	if !ok {
		return nil, false
	}
	v, ok := f.Ints[loc]
	return v, ok
}

// UploadCount reports how many uniform calls hit the named uniform.
func (f *Fake) UploadCount(program uint32, name string) int {
	p, ok := f.Programs[program]
	if !ok {
		return 0
	}
	loc, ok := p.Locations[name]
	if !ok {
		return 0
	}
	return f.Uploads[loc]
}

func (f *Fake) CreateShader(xtype uint32) uint32 {
	h := f.handle()
	f.Shaders[h] = &Shader{Type: xtype}
	return h
}

func (f *Fake) ShaderSource(shader uint32, source string) {
	f.Shaders[shader].Source = source
}

func (f *Fake) CompileShader(shader uint32) {
	s := f.Shaders[shader]
	if f.CompileErr != nil {
		if log := f.CompileErr(s.Type, s.Source); log != "" {
			s.OK = false
			s.InfoLog = log
			return
		}
	}
	s.OK = true
}

func (f *Fake) GetShaderi(shader uint32, pname uint32) int32 {
	if pname == glx.CompileStatus && f.Shaders[shader].OK {
		return 1
	}
	return 0
}

func (f *Fake) ShaderInfoLog(shader uint32) string {
	return f.Shaders[shader].InfoLog
}

func (f *Fake) DeleteShader(shader uint32) {
	if s, ok := f.Shaders[shader]; ok {
		s.Deleted = true
	}
}

func (f *Fake) CreateProgram() uint32 {
	h := f.handle()
	f.Programs[h] = &Program{Locations: make(map[string]int32)}
	return h
}

func (f *Fake) AttachShader(program, shader uint32) {
	p := f.Programs[program]
	p.Shaders = append(p.Shaders, shader)
}

func (f *Fake) LinkProgram(program uint32) {
	p := f.Programs[program]
	if f.LinkErr != "" {
		p.Linked = false
		p.InfoLog = f.LinkErr
		return
	}
	for _, sh := range p.Shaders {
		if !f.Shaders[sh].OK {
			p.Linked = false
			p.InfoLog = "attached shader not compiled"
			return
		}
	}
	p.Linked = true
	for _, name := range f.UniformDecls {
		f.nextLoc++
		p.Locations[name] = f.nextLoc
		p.Active = append(p.Active, name)
	}
}

func (f *Fake) GetProgrami(program uint32, pname uint32) int32 {
	p := f.Programs[program]
	switch pname {
	case glx.LinkStatus:
		if p.Linked {
			return 1
		}
		return 0
	case glx.ActiveUniforms:
		return int32(len(p.Active))
	}
	return 0
}

func (f *Fake) ProgramInfoLog(program uint32) string {
	return f.Programs[program].InfoLog
}

func (f *Fake) UseProgram(program uint32) {
	f.CurrentProgram = program
}

func (f *Fake) DeleteProgram(program uint32) {
	if p, ok := f.Programs[program]; ok {
		p.Deleted = true
	}
}

func (f *Fake) GetUniformLocation(program uint32, name string) int32 {
	if loc, ok := f.Programs[program].Locations[name]; ok {
		return loc
	}
	return -1
}

func (f *Fake) ActiveUniformName(program uint32, index int32) string {
	return f.Programs[program].Active[index]
}

func (f *Fake) uploadf(loc int32, v ...float32) {
	f.Floats[loc] = v
	f.Uploads[loc]++
}

func (f *Fake) uploadi(loc int32, v ...int32) {
	f.Ints[loc] = v
	f.Uploads[loc]++
}

func (f *Fake) Uniform1f(loc int32, v0 float32)             { f.uploadf(loc, v0) }
func (f *Fake) Uniform2f(loc int32, v0, v1 float32)         { f.uploadf(loc, v0, v1) }
func (f *Fake) Uniform3f(loc int32, v0, v1, v2 float32)     { f.uploadf(loc, v0, v1, v2) }
func (f *Fake) Uniform4f(loc int32, v0, v1, v2, v3 float32) { f.uploadf(loc, v0, v1, v2, v3) }
func (f *Fake) Uniform1i(loc int32, v0 int32)               { f.uploadi(loc, v0) }
func (f *Fake) Uniform2i(loc int32, v0, v1 int32)           { f.uploadi(loc, v0, v1) }
func (f *Fake) Uniform3i(loc int32, v0, v1, v2 int32)       { f.uploadi(loc, v0, v1, v2) }
func (f *Fake) Uniform4i(loc int32, v0, v1, v2, v3 int32)   { f.uploadi(loc, v0, v1, v2, v3) }

func (f *Fake) GenVertexArray() uint32 {
	h := f.handle()
	f.VAOs[h] = false
	return h
}

func (f *Fake) BindVertexArray(vao uint32) {
	f.BoundVAO = vao
}

func (f *Fake) DeleteVertexArray(vao uint32) {
	if _, ok := f.VAOs[vao]; ok {
		f.VAOs[vao] = true
	}
}

func (f *Fake) GenBuffer() uint32 {
	h := f.handle()
	f.Buffers[h] = false
	return h
}

func (f *Fake) BindBuffer(target, buffer uint32) {
	f.boundBuffer = buffer
}

func (f *Fake) BufferData(target uint32, data []float32, usage uint32) {
	cp := make([]float32, len(data))
	copy(cp, data)
	f.Data[f.boundBuffer] = cp
}

func (f *Fake) DeleteBuffer(buffer uint32) {
	if _, ok := f.Buffers[buffer]; ok {
		f.Buffers[buffer] = true
	}
}

func (f *Fake) EnableVertexAttribArray(index uint32) {}

func (f *Fake) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
}

func (f *Fake) GenTexture() uint32 {
	h := f.handle()
	f.Textures[h] = &Texture{Params: make(map[uint32]int32)}
	return h
}

func (f *Fake) ActiveTexture(unit uint32) {
	f.activeUnit = int(unit - glx.Texture0)
}

func (f *Fake) BindTexture(target, tex uint32) {
	f.UnitBindings[f.activeUnit] = tex
}

func (f *Fake) boundTexture() *Texture {
	return f.Textures[f.UnitBindings[f.activeUnit]]
}

func (f *Fake) TexParameteri(target, pname uint32, param int32) {
	if t := f.boundTexture(); t != nil {
		t.Params[pname] = param
	}
}

func (f *Fake) TexImage2D(target uint32, width, height int32, pix []byte) {
	t := f.boundTexture()
	if t == nil {
		return
	}
	t.Width = width
	t.Height = height
	t.Pix = make([]byte, len(pix))
	copy(t.Pix, pix)
}

func (f *Fake) DeleteTexture(tex uint32) {
	if t, ok := f.Textures[tex]; ok {
		t.Deleted = true
	}
	for unit, id := range f.UnitBindings {
		if id == tex {
			f.UnitBindings[unit] = 0
		}
	}
}

func (f *Fake) ClearColor(r, g, b, a float32) {}

func (f *Fake) Clear(mask uint32) {
	f.Clears++
}

func (f *Fake) Viewport(x, y, width, height int32) {
	f.Viewports = append(f.Viewports, [4]int32{x, y, width, height})
}

func (f *Fake) DrawArrays(mode uint32, first, count int32) {
	units := make(map[int]uint32, len(f.UnitBindings))
	for u, id := range f.UnitBindings {
		units[u] = id
	}
	f.Draws = append(f.Draws, Draw{
		Mode:    mode,
		First:   first,
		Count:   count,
		Program: f.CurrentProgram,
		VAO:     f.BoundVAO,
		Units:   units,
	})
}

func (f *Fake) Flush() {
	f.Flushes++
}

func (f *Fake) ReadPixels(x, y, width, height int32, pix []byte) {
	f.ReadsBack++
	if f.FramePix != nil {
		copy(pix, f.FramePix)
		return
	}
	for i := range pix {
		pix[i] = 0
	}
}
