// Package texture loads image files into 2-D GL textures. Units are
// assigned in input order and never change afterwards; a surface's
// texture set is fixed at construction.
package texture

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	// Decoders for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/fragview/fragview/glx"
)

// Texture is one loaded image bound to a texture unit.
type Texture struct {
	Path   string
	Unit   int
	Width  int
	Height int
	ID     uint32
}

// LoadError reports the path that failed during an all-or-nothing
// load.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load texture %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadAll loads every path in order, assigning units 0..N-1. A decode
// or file-access failure on any path releases the textures created so
// far and fails the whole load; partial texture sets never escape.
func LoadAll(g glx.Funcs, paths []string) ([]Texture, error) {
	textures := make([]Texture, 0, len(paths))
	for i, path := range paths {
		tex, err := load(g, i, path)
		if err != nil {
			Release(g, textures)
			return nil, &LoadError{Path: path, Err: err}
		}
		textures = append(textures, tex)
	}
	return textures, nil
}

func load(g glx.Funcs, unit int, path string) (Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return Texture{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Texture{}, err
	}

	// Convert to RGBA for a single upload path.
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, image.Point{}, draw.Src)
	width := rgba.Rect.Dx()
	height := rgba.Rect.Dy()

	id := upload(g, unit, int32(width), int32(height), rgba.Pix)
	return Texture{
		Path:   path,
		Unit:   unit,
		Width:  width,
		Height: height,
		ID:     id,
	}, nil
}

// upload creates a texture on the given unit with the standard 2-D
// sampling defaults: linear filtering, clamp to edge.
func upload(g glx.Funcs, unit int, width, height int32, pix []byte) uint32 {
	id := g.GenTexture()
	g.ActiveTexture(glx.Texture0 + uint32(unit))
	g.BindTexture(glx.Texture2D, id)
	g.TexParameteri(glx.Texture2D, glx.TextureMinFilter, glx.Linear)
	g.TexParameteri(glx.Texture2D, glx.TextureMagFilter, glx.Linear)
	g.TexParameteri(glx.Texture2D, glx.TextureWrapS, glx.ClampToEdge)
	g.TexParameteri(glx.Texture2D, glx.TextureWrapT, glx.ClampToEdge)
	g.TexImage2D(glx.Texture2D, width, height, pix)
	g.BindTexture(glx.Texture2D, 0)
	return id
}

// Release deletes every texture in the slice.
func Release(g glx.Funcs, textures []Texture) {
	for _, t := range textures {
		g.DeleteTexture(t.ID)
	}
}

// Default creates the shared 1x1 opaque-black texture bound to
// samplers the shader declares but the caller supplied no image for.
func Default(g glx.Funcs) uint32 {
	return upload(g, 0, 1, 1, []byte{0, 0, 0, 255})
}
