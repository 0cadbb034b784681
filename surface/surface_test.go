package surface

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragview/fragview/glx"
	"github.com/fragview/fragview/glx/gltest"
	"github.com/fragview/fragview/texture"
	"github.com/fragview/fragview/uniform"
)

const fragBody = `in vec2 uv;
uniform sampler2D tex0;
out vec4 out_color;
void main() { out_color = texture(tex0, uv); }
`

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func texturePaths(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		writePNG(t, paths[i], 2, 2)
	}
	return paths
}

func TestSetterBeforeRealizeFails(t *testing.T) {
	s := New(Config{FragmentSource: fragBody})
	assert.Equal(t, StateUnrealized, s.State())
	assert.ErrorIs(t, s.SetFloat("time", 1), ErrNotReady)
	assert.ErrorIs(t, s.Render(), ErrNotReady)
}

func TestRealizeAndRender(t *testing.T) {
	g := gltest.New()
	g.UniformDecls = []string{"tex0", "time"}

	s := New(Config{
		FragmentSource:  fragBody,
		TexturePaths:    texturePaths(t, "a.png"),
		InitialUniforms: map[string]uniform.Value{"time": uniform.Float(1.5)},
	})
	require.NoError(t, s.Realize(g, false))
	assert.Equal(t, StateReady, s.State())

	s.Resize(640, 480)
	require.NoError(t, s.Render())
	assert.Equal(t, StateReady, s.State())

	require.Len(t, g.Draws, 1)
	draw := g.Draws[0]
	assert.Equal(t, glx.Triangles, draw.Mode)
	assert.Equal(t, int32(6), draw.Count)
	assert.NotZero(t, draw.Program)
	assert.NotZero(t, draw.VAO)
	assert.Equal(t, s.Textures()[0].ID, draw.Units[0])

	// Initial uniforms reach the GPU on the first render.
	got, ok := g.FloatUniform(draw.Program, "time")
	require.True(t, ok)
	assert.Equal(t, []float32{1.5}, got)

	// Viewport matches the last resize.
	require.NotEmpty(t, g.Viewports)
	assert.Equal(t, [4]int32{0, 0, 640, 480}, g.Viewports[len(g.Viewports)-1])

	// No GL state left bound after the pass.
	assert.Zero(t, g.CurrentProgram)
	assert.Zero(t, g.BoundVAO)
	assert.Zero(t, g.UnitBindings[0])
}

func TestUniformRoundTripAllKinds(t *testing.T) {
	g := gltest.New()
	g.UniformDecls = []string{"f", "v2", "v3", "v4", "i", "iv2", "iv3", "iv4"}

	s := New(Config{FragmentSource: fragBody})
	require.NoError(t, s.Realize(g, false))

	require.NoError(t, s.SetFloat("f", 0.5))
	require.NoError(t, s.SetVec2("v2", 1, 2))
	require.NoError(t, s.SetVec3("v3", 1, 2, 3))
	require.NoError(t, s.SetVec4("v4", 1, 2, 3, 4))
	require.NoError(t, s.SetInt("i", 5))
	require.NoError(t, s.SetIVec2("iv2", 1, 2))
	require.NoError(t, s.SetIVec3("iv3", 1, 2, 3))
	require.NoError(t, s.SetIVec4("iv4", 1, 2, 3, 4))
	require.NoError(t, s.Render())

	p := g.Draws[0].Program
	for name, want := range map[string][]float32{
		"f": {0.5}, "v2": {1, 2}, "v3": {1, 2, 3}, "v4": {1, 2, 3, 4},
	} {
		got, ok := g.FloatUniform(p, name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	for name, want := range map[string][]int32{
		"i": {5}, "iv2": {1, 2}, "iv3": {1, 2, 3}, "iv4": {1, 2, 3, 4},
	} {
		got, ok := g.IntUniform(p, name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestDoubleSetUploadsOnlyLastValue(t *testing.T) {
	g := gltest.New()
	g.UniformDecls = []string{"time"}

	s := New(Config{FragmentSource: fragBody})
	require.NoError(t, s.Realize(g, false))

	require.NoError(t, s.SetFloat("time", 1))
	require.NoError(t, s.SetFloat("time", 2))
	require.NoError(t, s.Render())

	p := g.Draws[0].Program
	got, _ := g.FloatUniform(p, "time")
	assert.Equal(t, []float32{2}, got)
	assert.Equal(t, 1, g.UploadCount(p, "time"))
}

func TestSetterRequestsRedraw(t *testing.T) {
	g := gltest.New()
	s := New(Config{FragmentSource: fragBody})
	redraws := 0
	s.OnRedraw(func() { redraws++ })
	require.NoError(t, s.Realize(g, false))

	require.NoError(t, s.SetFloat("time", 1))
	require.NoError(t, s.SetInt("n", 2))
	assert.Equal(t, 2, redraws)
}

func TestCompileFailureLeavesNoHandles(t *testing.T) {
	g := gltest.New()
	g.CompileErr = func(xtype uint32, source string) string {
		if xtype == glx.FragmentShader {
			return "error: bad shader"
		}
		return ""
	}

	s := New(Config{
		FragmentSource: "garbage",
		TexturePaths:   texturePaths(t, "a.png"),
	})
	err := s.Realize(g, false)
	require.Error(t, err)
	assert.Equal(t, StateFailed, s.State())

	// Quad and textures acquired before the failure were released.
	assert.Equal(t, 0, g.LiveHandles())

	// A failed surface stays inert.
	assert.ErrorIs(t, s.SetFloat("time", 1), ErrNotReady)
	assert.ErrorIs(t, s.Render(), ErrNotReady)
}

func TestTextureFailureLeavesNoHandles(t *testing.T) {
	g := gltest.New()
	s := New(Config{
		FragmentSource: fragBody,
		TexturePaths:   []string{filepath.Join(t.TempDir(), "missing.png")},
	})
	err := s.Realize(g, false)
	var le *texture.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, StateFailed, s.State())
	assert.Equal(t, 0, g.LiveHandles())
}

func TestTextureUnitsFollowInputOrder(t *testing.T) {
	g := gltest.New()
	g.UniformDecls = []string{"tex0", "tex1", "tex2"}

	s := New(Config{
		FragmentSource: fragBody,
		TexturePaths:   texturePaths(t, "a.png", "b.png", "c.png"),
	})
	require.NoError(t, s.Realize(g, false))
	require.NoError(t, s.Render())

	p := g.Draws[0].Program
	for i := 0; i < 3; i++ {
		got, ok := g.IntUniform(p, []string{"tex0", "tex1", "tex2"}[i])
		require.True(t, ok)
		assert.Equal(t, []int32{int32(i)}, got)
		assert.Equal(t, s.Textures()[i].ID, g.Draws[0].Units[i])
	}
}

func TestDeclaredSamplerWithoutTextureBindsDefault(t *testing.T) {
	g := gltest.New()
	g.UniformDecls = []string{"tex0"}

	s := New(Config{FragmentSource: fragBody})
	require.NoError(t, s.Realize(g, false))
	require.NoError(t, s.Render())

	// tex0 samples the shared 1x1 opaque-black texture on unit 0.
	p := g.Draws[0].Program
	got, ok := g.IntUniform(p, "tex0")
	require.True(t, ok)
	assert.Equal(t, []int32{0}, got)

	id := g.Draws[0].Units[0]
	require.NotZero(t, id)
	assert.Equal(t, []byte{0, 0, 0, 255}, g.Textures[id].Pix)
}

func TestUnrealizeReleasesOnceAndDisposes(t *testing.T) {
	g := gltest.New()
	s := New(Config{
		FragmentSource: fragBody,
		TexturePaths:   texturePaths(t, "a.png"),
	})
	require.NoError(t, s.Realize(g, false))
	require.NoError(t, s.Render())

	s.Unrealize()
	assert.Equal(t, StateDisposed, s.State())
	assert.Equal(t, 0, g.LiveHandles())

	draws := len(g.Draws)
	uploads := len(g.Floats)
	assert.ErrorIs(t, s.SetFloat("time", 1), ErrDisposed)
	assert.ErrorIs(t, s.Render(), ErrDisposed)
	assert.ErrorIs(t, s.Realize(g, false), ErrDisposed)

	// Disposed operations touch no GL state.
	assert.Equal(t, draws, len(g.Draws))
	assert.Equal(t, uploads, len(g.Floats))

	s.Unrealize() // double unrealize is a no-op
	assert.Equal(t, StateDisposed, s.State())
}

func TestSetFragmentSourceFailureRetainsOldProgram(t *testing.T) {
	g := gltest.New()
	g.UniformDecls = []string{"time"}

	s := New(Config{FragmentSource: fragBody})
	require.NoError(t, s.Realize(g, false))
	require.NoError(t, s.Render())
	oldProgram := g.Draws[0].Program

	g.CompileErr = func(xtype uint32, source string) string {
		if xtype == glx.FragmentShader {
			return "error: nope"
		}
		return ""
	}
	err := s.SetFragmentSource("garbage")
	require.Error(t, err)
	assert.Equal(t, StateReady, s.State())

	require.NoError(t, s.Render())
	assert.Equal(t, oldProgram, g.Draws[len(g.Draws)-1].Program)
}

func TestSetFragmentSourceSwapsAtomically(t *testing.T) {
	g := gltest.New()
	g.UniformDecls = []string{"time"}

	s := New(Config{
		FragmentSource:  fragBody,
		InitialUniforms: map[string]uniform.Value{"time": uniform.Float(3)},
	})
	redraws := 0
	s.OnRedraw(func() { redraws++ })
	require.NoError(t, s.Realize(g, false))
	require.NoError(t, s.Render())
	oldProgram := g.Draws[0].Program

	require.NoError(t, s.SetFragmentSource(fragBody))
	assert.Equal(t, 1, redraws)
	require.NoError(t, s.Render())

	newProgram := g.Draws[len(g.Draws)-1].Program
	assert.NotEqual(t, oldProgram, newProgram)
	assert.True(t, g.Programs[oldProgram].Deleted)

	// Uniforms were re-resolved and re-uploaded against the new program.
	got, ok := g.FloatUniform(newProgram, "time")
	require.True(t, ok)
	assert.Equal(t, []float32{3}, got)
}
